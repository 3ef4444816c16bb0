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


// Package search resolves free-text campus queries into concrete answers.
//
// The Resolver type implements a tiered resolution pipeline:
//   - Academic-calendar matching with keyword-overlap scoring
//   - Building matching via exact keyword, then fuzzy per-token lookup
//   - An AI fallback answer when neither collection matches
//
// Matched buildings pass through intent classification so each result
// carries only the slice of record data the query actually asked for
// (hours, services, contact, location, departments, or description).
package search
