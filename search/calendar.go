package search

import (
	"context"
	"sort"

	"github.com/campuskit/wayfinder/core"
)

// defaultEventInfo fills in for events stored without a description.
const defaultEventInfo = "No additional info"

// SearchAcademicEvents resolves a query against the academic calendar.
// Events are scored by keyword overlap with the stop-word-filtered query
// tokens; only the single best-scoring event is returned, and a query that
// overlaps nothing returns an empty slice.
func (r *Resolver) SearchAcademicEvents(ctx context.Context, query string) ([]core.CalendarEvent, error) {
	tokens := filterStopWords(tokenize(NormalizeQuery(query)))
	if len(tokens) == 0 {
		return []core.CalendarEvent{}, nil
	}

	calendar, err := r.calendar.GetCalendar(ctx)
	if err != nil {
		return nil, err
	}

	var (
		best      core.CalendarEvent
		bestScore int
	)
	for _, term := range sortedTerms(calendar) {
		for _, event := range calendar[term] {
			score := scoreEvent(event, tokens)
			if score > bestScore {
				bestScore = score
				best = event
				best.Term = term
			}
		}
	}

	if bestScore == 0 {
		return []core.CalendarEvent{}, nil
	}
	if best.Description == "" {
		best.Description = defaultEventInfo
	}
	return []core.CalendarEvent{best}, nil
}

// scoreEvent counts how many query tokens appear among the event's keyword
// tokens. Each query token scores at most once.
func scoreEvent(event core.CalendarEvent, tokens []string) int {
	keywords := make(map[string]struct{})
	for _, kw := range event.KeywordTokens() {
		keywords[kw] = struct{}{}
	}

	score := 0
	for _, token := range tokens {
		if _, ok := keywords[token]; ok {
			score++
		}
	}
	return score
}

// sortedTerms fixes the scan order so ties between equally scored events
// in different terms resolve deterministically.
func sortedTerms(calendar core.Calendar) []string {
	terms := make([]string, 0, len(calendar))
	for term := range calendar {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
