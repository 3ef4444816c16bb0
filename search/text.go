package search

import "strings"

// queryPunct strips the punctuation the pipeline ignores in queries.
var queryPunct = strings.NewReplacer("?", "", ".", "", ",", "", "!", "")

// Stop words filtered out of academic-event queries before overlap scoring
var stopWords = map[string]bool{
	"when": true, "does": true, "do": true, "is": true, "are": true,
	"a": true, "an": true, "the": true, "for": true, "to": true, "of": true,
}

// maxFuzzyTokens caps how many query tokens the fuzzy building pass uses.
const maxFuzzyTokens = 10

// NormalizeQuery lowercases a query, strips "? . , !" and trims whitespace.
// Every matcher works on normalized queries; normalization happens once at
// the pipeline boundary.
func NormalizeQuery(query string) string {
	return strings.TrimSpace(queryPunct.Replace(strings.ToLower(query)))
}

// tokenize splits a normalized query into whitespace-delimited tokens.
func tokenize(normalized string) []string {
	return strings.Fields(normalized)
}

// filterStopWords removes stop words from a token list.
func filterStopWords(tokens []string) []string {
	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !stopWords[token] {
			filtered = append(filtered, token)
		}
	}
	return filtered
}
