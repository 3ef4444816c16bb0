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

import "fmt"

// ValidateBuilding validates a Building according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - At least one search keyword must be present
//   - Coordinates must be paired (both set or both absent)
//
// NOT validated (normalized by the storage layer):
//   - ID (derived from the name when empty)
//   - Keyword casing (lowercased on write)
func ValidateBuilding(building *Building) error {
	if building == nil {
		return fmt.Errorf("%w: building is nil", ErrInvalidBuilding)
	}

	if building.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidBuilding, ErrEmptyBuildingName)
	}

	if len(building.Keywords) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidBuilding, ErrNoKeywords)
	}

	if (building.Lat == nil) != (building.Lng == nil) {
		return fmt.Errorf("%w: %w", ErrInvalidBuilding, ErrUnpairedCoordinates)
	}

	return nil
}

// ValidateCalendarEvent validates a CalendarEvent according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//
// Date is free text and not necessarily parseable; it is not validated.
func ValidateCalendarEvent(event *CalendarEvent) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidEvent)
	}

	if event.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, ErrEmptyEventTitle)
	}

	return nil
}

// ValidateAssistRequest validates an AssistRequest according to domain rules.
//
// Validation rules:
//   - Prompt must not be empty
//   - MaxTokens must be positive
//
// NOT validated (populated by the storage layer):
//   - ID (derived from prompt and creation time when zero)
//   - CreatedAt (set on write when zero)
func ValidateAssistRequest(request *AssistRequest) error {
	if request == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidAssistRequest)
	}

	if request.Prompt == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAssistRequest, ErrEmptyPrompt)
	}

	if request.MaxTokens <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidAssistRequest, ErrInvalidTokenBudget)
	}

	return nil
}
