package search

import (
	"strings"

	"github.com/campuskit/wayfinder/core"
)

// extractAnswer derives a natural-language answer for one building from a
// normalized query. Categories are scanned in intentOrder; the first
// triggered category whose backing field renders non-empty wins, and no
// categories are merged. A triggered category with an empty backing field
// does not stop the scan. Returns "" when nothing renders.
//
// Pure function of its inputs: same record and query always produce the
// same answer.
func extractAnswer(building *core.Building, normalized string) string {
	for _, intent := range intentOrder {
		if !matchesIntent(intent, normalized) {
			continue
		}
		if answer := renderIntent(building, intent); answer != "" {
			return answer
		}
	}
	return ""
}

// renderIntent renders one category's answer from the record's backing
// field, or "" when the field is absent or empty.
func renderIntent(building *core.Building, intent Intent) string {
	switch intent {
	case IntentHours:
		return renderHours(building)
	case IntentServices:
		return renderServices(building)
	case IntentContact:
		return renderContact(building)
	case IntentLocation:
		// Location answers are just the display name; the UI pairs the
		// flag with coordinates to draw directions.
		if !building.HasCoordinates() {
			return ""
		}
		return building.Name
	case IntentDepartments:
		return renderDepartments(building)
	case IntentDescription:
		if building.Description == "" {
			return ""
		}
		return "Description:\n" + building.Description
	}
	return ""
}

func renderHours(building *core.Building) string {
	if len(building.OperatingHours) == 0 {
		return ""
	}
	return "Operating Hours:\n" + strings.Join(building.OperatingHours, "\n")
}

func renderServices(building *core.Building) string {
	if len(building.Services) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Available Services:")
	for _, service := range building.Services {
		sb.WriteString("\n• ")
		sb.WriteString(service)
	}
	return sb.String()
}

func renderContact(building *core.Building) string {
	if len(building.Phones) == 0 && len(building.Emails) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Contact Information:")
	if len(building.Phones) > 0 {
		sb.WriteString("\nPhone:")
		for _, phone := range building.Phones {
			sb.WriteString("\n• ")
			sb.WriteString(phone)
		}
	}
	if len(building.Emails) > 0 {
		sb.WriteString("\nEmail:")
		for _, email := range building.Emails {
			sb.WriteString("\n")
			sb.WriteString(email)
		}
	}
	return sb.String()
}

func renderDepartments(building *core.Building) string {
	if len(building.Departments) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Departments:")
	for _, dept := range building.Departments {
		sb.WriteString("\n")
		sb.WriteString(dept.Name)
		if dept.Description != "" {
			sb.WriteString(": ")
			sb.WriteString(dept.Description)
		}
	}
	return sb.String()
}
