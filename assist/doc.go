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


// Package assist provides AI-backed answers for queries the campus
// collections cannot satisfy.
//
// The package is split along the request/response boundary:
//
//   - Broker: submits completion requests to the request store and waits
//     for fulfillment, with a bounded timeout and fixed degrade messages
//   - Agent: watches the request store and fulfills requests through a
//     Completer on a worker pool
//
// Broker and Agent communicate only through storage.AssistRepository, so
// they can run in the same process or in separate ones sharing a store.
//
// # Implementation Packages
//
//   - assist/openai: production Completer using OpenAI-compatible APIs
//   - assist/mock: test double for unit testing without external services
//
// # Usage Example
//
//	broker, err := assist.NewBroker(requests)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer broker.Close()
//
//	completer, err := openai.NewCompleter(assist.DefaultConfig())
//	agent, err := assist.NewAgent(requests, completer)
//	go agent.Run(ctx)
//
//	answer := broker.Ask(ctx, "When was the university founded?")
package assist
