package match

import "strings"

// Score rates how well a query matches a candidate phrase set, in [0, 1].
//
// A query that contains a candidate, or is contained by one, scores 1.0
// outright. Otherwise each query token that shares a substring relation
// with some candidate token counts as a hit, and the score is hits divided
// by the longer of the two token lists. The best candidate wins.
//
// An empty or punctuation-only query scores 0 against everything.
func Score(query string, candidates []string) float64 {
	normalizedQuery := Normalize(query)
	if normalizedQuery == "" {
		return 0
	}
	queryTokens := Tokens(normalizedQuery)

	var maxScore float64
	for _, candidate := range candidates {
		normalizedCandidate := Normalize(candidate)
		if normalizedCandidate == "" {
			continue
		}

		if strings.Contains(normalizedQuery, normalizedCandidate) ||
			strings.Contains(normalizedCandidate, normalizedQuery) {
			return 1.0
		}

		candidateTokens := Tokens(normalizedCandidate)
		matching := 0
		for _, qt := range queryTokens {
			for _, ct := range candidateTokens {
				if strings.Contains(ct, qt) || strings.Contains(qt, ct) {
					matching++
					break
				}
			}
		}

		denom := len(queryTokens)
		if len(candidateTokens) > denom {
			denom = len(candidateTokens)
		}
		if score := float64(matching) / float64(denom); score > maxScore {
			maxScore = score
		}
	}

	return maxScore
}
