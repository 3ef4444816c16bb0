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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/campuskit/wayfinder/core"
)

// Stored documents are JSON. The records come from schema-flexible scraper
// output where several fields arrive as scalar or array; core.FlexStrings
// absorbs that on decode.

// MarshalBuilding serializes a Building to bytes.
func MarshalBuilding(building *core.Building) ([]byte, error) {
	data, err := json.Marshal(building)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalBuilding deserializes a Building from bytes.
func UnmarshalBuilding(data []byte) (*core.Building, error) {
	var building core.Building
	if err := json.Unmarshal(data, &building); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &building, nil
}

// MarshalCalendar serializes a Calendar to bytes.
func MarshalCalendar(calendar core.Calendar) ([]byte, error) {
	data, err := json.Marshal(calendar)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalCalendar deserializes a Calendar from bytes.
func UnmarshalCalendar(data []byte) (core.Calendar, error) {
	var calendar core.Calendar
	if err := json.Unmarshal(data, &calendar); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return calendar, nil
}

// MarshalAssistRequest serializes an AssistRequest to bytes.
func MarshalAssistRequest(request *core.AssistRequest) ([]byte, error) {
	data, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalAssistRequest deserializes an AssistRequest from bytes.
func UnmarshalAssistRequest(data []byte) (*core.AssistRequest, error) {
	var request core.AssistRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &request, nil
}
