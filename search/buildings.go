package search

import (
	"context"

	"github.com/campuskit/wayfinder/core"
)

// SearchBuildings resolves a query against the building collection.
// Matched records are mapped through answer extraction; when the tiered
// lookup finds nothing, the single AI fallback result is returned instead.
func (r *Resolver) SearchBuildings(ctx context.Context, query string) ([]core.SearchResult, error) {
	normalized := NormalizeQuery(query)
	if normalized == "" {
		// Non-blank input that normalizes away (punctuation only) is a
		// no-structured-match, not an empty query.
		return []core.SearchResult{r.fallbackResult(ctx, query)}, nil
	}

	buildings, err := r.matchBuildings(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if len(buildings) == 0 {
		return []core.SearchResult{r.fallbackResult(ctx, query)}, nil
	}

	locationQuery := IsLocationQuery(normalized)
	results := make([]core.SearchResult, 0, len(buildings))
	for _, building := range buildings {
		results = append(results, core.SearchResult{
			ID:            building.ID,
			Name:          building.Name,
			RelevantInfo:  extractAnswer(building, normalized),
			LocationQuery: locationQuery,
		})
	}
	return results, nil
}

// matchBuildings runs the tiered lookup: an exact-keyword pass on the whole
// normalized query, then a fuzzy any-token pass. The fuzzy pass only runs
// when the exact pass finds nothing.
func (r *Resolver) matchBuildings(ctx context.Context, normalized string) ([]*core.Building, error) {
	exact, err := r.buildings.FindByKeyword(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if len(exact) > 0 {
		return exact, nil
	}

	tokens := tokenize(normalized)
	if len(tokens) == 0 {
		return nil, nil
	}
	if len(tokens) > maxFuzzyTokens {
		tokens = tokens[:maxFuzzyTokens]
	}
	return r.buildings.FindByAnyKeyword(ctx, tokens)
}
