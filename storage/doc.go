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


// Package storage defines the document-store interfaces the query engine
// consumes.
//
// Three collections back the engine:
//
//   - buildings: whole-document building records with a keyword index
//   - calendar: one aggregate document of term-grouped academic events
//   - assist requests: append-only completion requests, each mutated once
//     by an external agent to add the response
//
// Implementations live in sub-packages (storage/badger). All repositories
// must be safe for concurrent use; document reads and writes are atomic.
package storage
