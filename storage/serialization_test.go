package storage

import (
	"testing"
	"time"

	"github.com/campuskit/wayfinder/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildingSerialization(t *testing.T) {
	lat, lng := 41.2565, -95.9345
	building := &core.Building{
		ID:             "lib",
		Name:           "Campus Library",
		Description:    "Main library",
		Keywords:       core.FlexStrings{"library", "books"},
		Phones:         core.FlexStrings{"555-1234"},
		OperatingHours: core.FlexStrings{"Mon-Fri 8am-6pm"},
		Departments: []core.Department{
			{Name: "Archives", Floor: "3", Description: "Special collections"},
		},
		Lat: &lat,
		Lng: &lng,
	}

	data, err := MarshalBuilding(building)
	require.NoError(t, err)

	got, err := UnmarshalBuilding(data)
	require.NoError(t, err)
	assert.Equal(t, building, got)
}

func TestUnmarshalBuilding_ScalarPhoneField(t *testing.T) {
	// phone_num stored as a scalar by older tooling
	data := []byte(`{"id":"gym","building_name":"Fitness Center","search_keywords":["gym"],"phone_num":"555-0000"}`)

	got, err := UnmarshalBuilding(data)
	require.NoError(t, err)
	assert.Equal(t, core.FlexStrings{"555-0000"}, got.Phones)
}

func TestUnmarshalBuilding_Malformed(t *testing.T) {
	_, err := UnmarshalBuilding([]byte(`{not json`))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestCalendarSerialization(t *testing.T) {
	calendar := core.Calendar{
		"Spring-2025": {
			{Title: "Spring Break Begins", Date: "March 16", Keywords: core.FlexStrings{"spring", "break"}},
		},
		"Fall-2025": {
			{Title: "First Day of Classes", Date: "August 25", Keywords: core.FlexStrings{"classes", "first", "day"}},
		},
	}

	data, err := MarshalCalendar(calendar)
	require.NoError(t, err)

	got, err := UnmarshalCalendar(data)
	require.NoError(t, err)
	assert.Equal(t, calendar, got)
}

func TestAssistRequestSerialization(t *testing.T) {
	request := &core.AssistRequest{
		ID:        core.IDFromContent("test"),
		Prompt:    "where is the gym",
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		MaxTokens: 100,
	}

	data, err := MarshalAssistRequest(request)
	require.NoError(t, err)

	got, err := UnmarshalAssistRequest(data)
	require.NoError(t, err)
	assert.Equal(t, request, got)
	assert.False(t, got.Fulfilled())
}
