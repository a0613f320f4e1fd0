// Package correct repairs dictionary-word typos while leaving named entities
// untouched. It is a pure function of its input: same text, same output.
package correct

import (
	"strings"
	"unicode"

	"github.com/veridict/veridict/internal/model"
)

// Corrector proposes the nearest dictionary word for tokens that look like
// typos. Proper nouns, acronyms, preserved vocabulary and anything already
// in the dictionary pass through unchanged.
type Corrector struct {
	words []string
	rank  map[string]int
}

// New creates a Corrector backed by the embedded dictionary. A nil/empty
// word list makes Correct a no-op passthrough rather than an error.
func New() *Corrector {
	return newCorrector(dictionaryWords)
}

// newCorrector indexes the word list, which is ordered by descending usage
// frequency, so that rank can break ties between correction candidates.
func newCorrector(words []string) *Corrector {
	rank := make(map[string]int, len(words))
	for i, w := range words {
		if _, seen := rank[w]; !seen {
			rank[w] = i
		}
	}
	return &Corrector{words: words, rank: rank}
}

// Correct rewrites typos in text. Tokens are whitespace-delimited; leading
// and trailing punctuation survives around a corrected core.
func (c *Corrector) Correct(text string) model.CorrectionResult {
	result := model.CorrectionResult{
		OriginalText:  text,
		CorrectedText: text,
	}
	if len(c.words) == 0 || strings.TrimSpace(text) == "" {
		return result
	}

	fields := strings.Fields(text)
	out := make([]string, len(fields))
	changed := false
	sentenceStart := true

	for i, field := range fields {
		prefix, core, suffix := splitPunct(field)
		corrected := c.correctToken(core, sentenceStart)
		if corrected != core {
			changed = true
		}
		out[i] = prefix + corrected + suffix

		// the next token starts a sentence if this one closed it
		sentenceStart = strings.ContainsAny(suffix, ".!?") ||
			strings.HasSuffix(core, ".") || strings.HasSuffix(core, "!") || strings.HasSuffix(core, "?")
	}

	if changed {
		result.CorrectedText = strings.Join(out, " ")
		result.Changed = true
	}
	return result
}

// correctToken decides whether one token is a correctable typo
func (c *Corrector) correctToken(token string, sentenceStart bool) string {
	if len(token) <= 2 || !isAlphabetic(token) {
		return token
	}
	if isPreserved(token) || inDictionary(token) {
		return token
	}

	// Acronyms keep their shape
	if token == strings.ToUpper(token) {
		return token
	}

	// A capitalized token outside sentence-initial position is a proper noun
	capitalized := unicode.IsUpper([]rune(token)[0])
	if capitalized && !sentenceStart {
		return token
	}

	lower := strings.ToLower(token)
	candidate, dist := c.nearest(lower)
	if candidate == "" || dist > maxDistance(lower) {
		return token
	}

	if capitalized {
		return capitalize(candidate)
	}
	return candidate
}

// nearest returns the closest dictionary word and its edit distance.
// Equally distant candidates resolve to the higher-frequency word, so the
// outcome does not depend on scan order.
func (c *Corrector) nearest(word string) (string, int) {
	best := ""
	bestDist := -1
	for _, w := range c.words {
		// length difference is a lower bound on edit distance
		if diff := len(w) - len(word); diff > 2 || diff < -2 {
			continue
		}
		d := editDistance(word, w)
		switch {
		case bestDist == -1 || d < bestDist:
			best, bestDist = w, d
		case d == bestDist && c.rank[w] < c.rank[best]:
			best = w
		}
	}
	return best, bestDist
}

// maxDistance bounds how far a correction may drift: one edit for short
// tokens, two for longer ones.
func maxDistance(word string) int {
	if len(word) >= 6 {
		return 2
	}
	return 1
}

// editDistance is the Damerau-Levenshtein distance with adjacent
// transpositions (optimal string alignment).
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n, m := len(ra), len(rb)

	prev2 := make([]int, m+1)
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}

	for i := 1; i <= n; i++ {
		cur[0] = i
		for j := 1; j <= m; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < cur[j] {
					cur[j] = t
				}
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[m]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// splitPunct separates punctuation wrapping a token from its core
func splitPunct(field string) (prefix, core, suffix string) {
	runes := []rune(field)
	start, end := 0, len(runes)
	for start < end && !unicode.IsLetter(runes[start]) && !unicode.IsNumber(runes[start]) {
		start++
	}
	for end > start && !unicode.IsLetter(runes[end-1]) && !unicode.IsNumber(runes[end-1]) {
		end--
	}
	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
