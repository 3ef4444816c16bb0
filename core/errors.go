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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidBuilding indicates a Building failed validation.
	ErrInvalidBuilding = errors.New("invalid building")

	// ErrEmptyBuildingName indicates the building name field is empty.
	ErrEmptyBuildingName = errors.New("building name cannot be empty")

	// ErrNoKeywords indicates the building has no search keywords.
	ErrNoKeywords = errors.New("building needs at least one search keyword")

	// ErrUnpairedCoordinates indicates only one of latitude/longitude is set.
	ErrUnpairedCoordinates = errors.New("latitude and longitude must both be set or both be absent")

	// ErrInvalidEvent indicates a CalendarEvent failed validation.
	ErrInvalidEvent = errors.New("invalid calendar event")

	// ErrEmptyEventTitle indicates the event title field is empty.
	ErrEmptyEventTitle = errors.New("event title cannot be empty")

	// ErrInvalidAssistRequest indicates an AssistRequest failed validation.
	ErrInvalidAssistRequest = errors.New("invalid assist request")

	// ErrEmptyPrompt indicates the request prompt is empty.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrInvalidTokenBudget indicates a non-positive token budget.
	ErrInvalidTokenBudget = errors.New("token budget must be positive")
)
