// Copyright 2025 Campuskit Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/campuskit/wayfinder/assist"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer implements assist.Completer using OpenAI-compatible chat APIs.
type Completer struct {
	client llms.Model
	logger *slog.Logger
}

// newCompleter is an internal constructor that returns the concrete type.
func newCompleter(config *assist.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client: client,
		logger: slog.Default().With("component", "openai-completer"),
	}, nil
}

// NewCompleter creates a new completer using the provided configuration.
//
// Returns assist.Completer interface to enforce abstraction.
func NewCompleter(config *assist.Config) (assist.Completer, error) {
	return newCompleter(config)
}

// Complete generates a completion for the prompt, capped at maxTokens.
func (c *Completer) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	c.logger.Debug("requesting completion", "max_tokens", maxTokens)

	response, err := llms.GenerateFromSinglePrompt(ctx, c.client, prompt,
		llms.WithMaxTokens(maxTokens))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(response), nil
}
