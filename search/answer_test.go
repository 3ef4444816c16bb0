package search

import (
	"encoding/json"
	"testing"

	"github.com/campuskit/wayfinder/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilding() *core.Building {
	lat, lng := 41.258, -96.010
	return &core.Building{
		ID:             "criss-library",
		Name:           "Criss Library",
		Description:    "The main campus library.",
		Keywords:       core.FlexStrings{"library", "criss library"},
		Phones:         core.FlexStrings{"402-554-2640"},
		Emails:         core.FlexStrings{"library@unomaha.edu"},
		OperatingHours: core.FlexStrings{"Mon-Fri: 7am-11pm", "Sat: 9am-5pm"},
		Services:       core.FlexStrings{"Study rooms", "Printing"},
		Departments: []core.Department{
			{Name: "Archives", Description: "Special collections"},
			{Name: "Circulation"},
		},
		Lat: &lat,
		Lng: &lng,
	}
}

func TestExtractAnswer(t *testing.T) {
	building := testBuilding()

	t.Run("hours query", func(t *testing.T) {
		answer := extractAnswer(building, NormalizeQuery("What are the library hours?"))
		assert.Equal(t, "Operating Hours:\nMon-Fri: 7am-11pm\nSat: 9am-5pm", answer)
	})

	t.Run("services query", func(t *testing.T) {
		answer := extractAnswer(building, NormalizeQuery("what services are offered"))
		assert.Equal(t, "Available Services:\n• Study rooms\n• Printing", answer)
	})

	t.Run("contact query", func(t *testing.T) {
		answer := extractAnswer(building, NormalizeQuery("library contact"))
		assert.Equal(t, "Contact Information:\nPhone:\n• 402-554-2640\nEmail:\nlibrary@unomaha.edu", answer)
	})

	t.Run("location query returns display name only", func(t *testing.T) {
		answer := extractAnswer(building, NormalizeQuery("Where is the library?"))
		assert.Equal(t, "Criss Library", answer)
	})

	t.Run("location without coordinates renders nothing", func(t *testing.T) {
		noCoords := testBuilding()
		noCoords.Lat = nil
		noCoords.Lng = nil
		noCoords.Description = ""
		answer := extractAnswer(noCoords, NormalizeQuery("where is the library"))
		assert.Equal(t, "", answer)
	})

	t.Run("departments query", func(t *testing.T) {
		answer := extractAnswer(building, NormalizeQuery("which departments are here"))
		assert.Equal(t, "Departments:\nArchives: Special collections\nCirculation", answer)
	})

	t.Run("description query", func(t *testing.T) {
		answer := extractAnswer(building, NormalizeQuery("tell me about the library"))
		assert.Equal(t, "Description:\nThe main campus library.", answer)
	})

	t.Run("first triggered category wins", func(t *testing.T) {
		// Both hours and description trigger; hours comes first in the
		// category order.
		answer := extractAnswer(building, NormalizeQuery("info on opening hours"))
		assert.Equal(t, "Operating Hours:\nMon-Fri: 7am-11pm\nSat: 9am-5pm", answer)
	})

	t.Run("empty category falls through to next triggered one", func(t *testing.T) {
		noHours := testBuilding()
		noHours.OperatingHours = nil
		answer := extractAnswer(noHours, NormalizeQuery("info on opening hours"))
		assert.Equal(t, "Description:\nThe main campus library.", answer)
	})

	t.Run("scalar phone field renders one line", func(t *testing.T) {
		var record core.Building
		err := json.Unmarshal([]byte(`{
			"id": "eab",
			"building_name": "Eppley Administration Building",
			"search_keywords": ["admissions"],
			"phone_num": "402-554-2800"
		}`), &record)
		require.NoError(t, err)

		answer := extractAnswer(&record, NormalizeQuery("contact info"))
		assert.Equal(t, "Contact Information:\nPhone:\n• 402-554-2800", answer)
	})

	t.Run("no triggered category", func(t *testing.T) {
		assert.Equal(t, "", extractAnswer(building, NormalizeQuery("library")))
	})

	t.Run("deterministic", func(t *testing.T) {
		normalized := NormalizeQuery("library hours")
		first := extractAnswer(building, normalized)
		second := extractAnswer(building, normalized)
		assert.Equal(t, first, second)
	})
}
