// Package match scores user queries against the incident catalog.
package match

import (
	"strings"
	"unicode"
)

// Normalize lowercases the query, replaces punctuation and symbols with
// spaces, collapses whitespace runs and trims. Word characters are letters,
// digits and underscore in any script, so Devanagari text passes through
// intact.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Tokens splits normalized text into words. Empty input yields no tokens.
func Tokens(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
