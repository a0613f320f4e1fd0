package verify

import (
	"strings"
	"unicode"
)

// titleSimilarity is the Sorensen-Dice coefficient over token sets: cheap,
// bounded in [0,1], and insensitive to token order.
func titleSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	common := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(setA)+len(setB))
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range splitTokens(s) {
		if len(tok) > 2 {
			if _, stop := stopWords[tok]; !stop {
				set[tok] = struct{}{}
			}
		}
	}
	return set
}

func splitTokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// stopWords are excluded from queries and similarity: function words plus
// sensationalist filler that matches everything and means nothing.
var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {}, "a": {}, "an": {},
	"and": {}, "or": {}, "but": {}, "in": {}, "with": {}, "to": {}, "of": {},
	"for": {}, "by": {}, "from": {}, "as": {}, "was": {}, "were": {}, "are": {},
	"has": {}, "have": {}, "had": {}, "this": {}, "that": {}, "its": {},
	"secret": {}, "shocking": {}, "revealed": {}, "banned": {},
	"yesterday": {}, "today": {},
}
