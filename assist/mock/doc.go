// Package mock provides test double implementations of assist interfaces.
//
// This package contains a mock implementation of assist.Completer for use in
// unit tests. The mock allows tests to run without an external AI service and
// enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	completer := mock.NewMockCompleter()
//	answer, err := completer.Complete(ctx, "test", 100)
//
//	// Custom behavior injection
//	completer.CompleteFunc = func(ctx context.Context, prompt string, maxTokens int) (string, error) {
//	    return "canned answer", nil
//	}
//
//	// Check recorded calls
//	count := completer.CallCount()
//	prompt := completer.LastPrompt()
package mock
