package assist

import "context"

// Completer generates natural-language completions for prompts.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete generates a completion for the prompt, capped at maxTokens
	// output tokens. The returned text is raw provider output; callers that
	// present it to users should pass it through Sanitize first.
	// Returns an error if completion fails.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}
