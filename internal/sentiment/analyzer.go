// Package sentiment scores polarity and subjectivity of text from an
// embedded lexicon. It is stateless and deterministic, and it never fails:
// text with no sentiment-bearing words scores neutral.
package sentiment

import (
	"strings"
	"unicode"

	"github.com/veridict/veridict/internal/model"
)

// negationWindow is how many tokens back a negation still flips polarity
const negationWindow = 2

// Analyzer buckets polarity into Positive/Negative/Neutral around a dead
// zone of +-epsilon.
type Analyzer struct {
	epsilon float64
}

// New creates an Analyzer with the given neutral dead zone
func New(epsilon float64) *Analyzer {
	return &Analyzer{epsilon: epsilon}
}

// Analyze scores the text. Empty input returns neutral defaults.
func (a *Analyzer) Analyze(text string) model.SentimentResult {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return model.SentimentResult{Label: model.SentimentNeutral}
	}

	var polaritySum, subjectivitySum float64
	hits := 0

	for i, tok := range tokens {
		e, ok := lexicon[tok]
		if !ok {
			continue
		}

		pol, subj := e.polarity, e.subjectivity

		if i > 0 {
			if scale, ok := intensifiers[tokens[i-1]]; ok {
				pol *= scale
				subj *= 1.2
			}
		}
		if negated(tokens, i) {
			pol *= -0.5
		}

		polaritySum += pol
		subjectivitySum += subj
		hits++
	}

	if hits == 0 {
		return model.SentimentResult{Label: model.SentimentNeutral}
	}

	polarity := clamp(polaritySum/float64(hits), -1, 1)
	subjectivity := clamp(subjectivitySum/float64(hits), 0, 1)

	return model.SentimentResult{
		Polarity:     polarity,
		Subjectivity: subjectivity,
		Label:        a.bucket(polarity),
	}
}

func (a *Analyzer) bucket(polarity float64) model.SentimentLabel {
	switch {
	case polarity > a.epsilon:
		return model.SentimentPositive
	case polarity < -a.epsilon:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

func negated(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
		if _, ok := negations[tokens[j]]; ok {
			return true
		}
	}
	return false
}

// tokenize lowercases and strips everything but letters, so "isn't"
// matches the lexicon's "isnt".
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		var b strings.Builder
		for _, r := range f {
			if unicode.IsLetter(r) {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
		}
	}
	return tokens
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
