package verify

import (
	"fmt"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// clickbaitKeywords flag sensationalist language in FAKE explanations
var clickbaitKeywords = []string{
	"shocking", "secret", "banned", "censored", "miracle", "you won't believe",
	"mind-blowing", "exposed", "hidden truth", "conspiracy", "illuminati",
	"deep state", "hoax", "fake news", "mainstream media lies", "viral",
	"destroy", "obliterate", "shreds", "bombshell",
}

// Explain synthesizes the human-readable explanation for a verdict. It is
// deterministic given the same label, text and sources.
func Explain(text string, label model.Label, sources []model.MatchedSource) string {
	if label == model.LabelReal {
		if len(sources) > 0 {
			return fmt.Sprintf("This news is verified by %d trusted source(s) including %s.",
				len(sources), sources[0].Domain)
		}
		return "The language patterns and writing style match those typically found in credible news reporting."
	}

	var reasons []string

	if len(sources) == 0 {
		reasons = append(reasons, "We could not find this specific story on any of our trusted news sources.")
	}

	lower := strings.ToLower(text)
	var found []string
	for _, kw := range clickbaitKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	if len(found) > 0 {
		if len(found) > 3 {
			found = found[:3]
		}
		reasons = append(reasons, fmt.Sprintf("The text contains sensationalist or clickbait language: '%s'.",
			strings.Join(found, ", ")))
	}

	if len(reasons) == 0 {
		return "The content matches patterns often associated with misinformation or unreliable news sources."
	}
	return strings.Join(reasons, " ")
}
