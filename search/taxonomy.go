package search

import "strings"

// Intent identifies which structured field of a building record answers a
// query.
type Intent string

const (
	IntentHours       Intent = "hours"
	IntentServices    Intent = "services"
	IntentContact     Intent = "contact"
	IntentLocation    Intent = "location"
	IntentDepartments Intent = "departments"
	IntentDescription Intent = "description"
)

// intentOrder fixes category precedence for answer extraction. This is an
// ordered list, not a map: "hours" is always checked before "description",
// and the first category that renders a non-empty answer wins.
var intentOrder = []Intent{
	IntentHours,
	IntentServices,
	IntentContact,
	IntentLocation,
	IntentDepartments,
	IntentDescription,
}

// triggerPhrases maps each intent category to the phrases that activate it.
// Matching is substring containment against the normalized query. The table
// is immutable process-wide state; it drives both intent classification and
// answer extraction.
var triggerPhrases = map[Intent][]string{
	IntentHours:       {"operating hours", "open", "close", "timing", "hours", "time"},
	IntentServices:    {"services", "assistance", "help", "offer", "available"},
	IntentContact:     {"contact", "phone", "email", "reach"},
	IntentLocation:    {"where is", "located", "find", "address", "how do i get to", "directions", "where can", "location"},
	IntentDepartments: {"department", "office", "team", "departments"},
	IntentDescription: {"about", "info", "description", "information", "details"},
}

// matchesIntent reports whether any of the intent's trigger phrases occurs
// in the normalized query.
func matchesIntent(intent Intent, normalized string) bool {
	for _, phrase := range triggerPhrases[intent] {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}

// IsLocationQuery reports whether the normalized query carries location
// intent. The flag depends on the query alone, not on which record matched
// or which category rendered the answer.
func IsLocationQuery(normalized string) bool {
	return matchesIntent(IntentLocation, normalized)
}
