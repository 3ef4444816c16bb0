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


// Package openai provides a completion service implementation using
// OpenAI-compatible APIs.
//
// This package implements the assist.Completer interface using the
// langchaingo library to communicate with OpenAI or OpenAI-compatible
// services (such as Ollama, LocalAI, or vLLM).
//
// # Usage
//
//	config := assist.DefaultConfig()
//	// Or customize:
//	config := assist.NewConfig(
//	    assist.WithHost("http://localhost:11434"),  // /v1 added automatically
//	    assist.WithModel("qwen2.5:3b"),
//	)
//
//	completer, err := openai.NewCompleter(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	answer, err := completer.Complete(ctx, "Where is the library?", 100)
package openai
