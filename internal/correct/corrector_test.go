package correct

import (
	"strings"
	"testing"
)

func TestCorrect_FixesKnownTypos(t *testing.T) {
	c := New()

	tests := []struct {
		in   string
		want string
	}{
		{"the goverment confirmed the report", "the government confirmed the report"},
		{"scientsts reveal a new study", "scientists reveal a new study"},
		{"Goverment announced the new budget", "Government announced the new budget"},
	}

	for _, tt := range tests {
		got := c.Correct(tt.in)
		if got.CorrectedText != tt.want {
			t.Errorf("Correct(%q) = %q, want %q", tt.in, got.CorrectedText, tt.want)
		}
		if !got.Changed {
			t.Errorf("Correct(%q): expected Changed=true", tt.in)
		}
		if got.OriginalText != tt.in {
			t.Errorf("original text must be preserved, got %q", got.OriginalText)
		}
	}
}

func TestCorrect_PreservesProperNouns(t *testing.T) {
	c := New()

	in := "President Zelensky met Macron in Paris yesterday"
	got := c.Correct(in)

	for _, name := range []string{"Zelensky", "Macron", "Paris"} {
		if !strings.Contains(got.CorrectedText, name) {
			t.Errorf("proper noun %q was altered: %q", name, got.CorrectedText)
		}
	}
}

func TestCorrect_PreservesAcronymsAndShortTokens(t *testing.T) {
	c := New()

	in := "NASA and the EU agreed on a joint gxyzt mission of 12 km"
	got := c.Correct(in)

	for _, tok := range []string{"NASA", "EU", "12", "km"} {
		if !strings.Contains(got.CorrectedText, tok) {
			t.Errorf("token %q was altered: %q", tok, got.CorrectedText)
		}
	}
}

func TestCorrect_PunctuationSurvives(t *testing.T) {
	c := New()

	got := c.Correct(`"Goverment wins," the report said.`)
	if !strings.HasPrefix(got.CorrectedText, `"Government wins,"`) {
		t.Errorf("punctuation around corrected token lost: %q", got.CorrectedText)
	}
}

func TestCorrect_CleanTextPassesThrough(t *testing.T) {
	c := New()

	in := "Scientists confirm the Earth is flat, shocking new study reveals"
	got := c.Correct(in)
	if got.Changed {
		t.Errorf("expected no change, got %q", got.CorrectedText)
	}
	if got.CorrectedText != in {
		t.Errorf("passthrough must return input verbatim, got %q", got.CorrectedText)
	}
}

func TestCorrect_Deterministic(t *testing.T) {
	c := New()

	in := "the goverment scientsts met yesterdy"
	first := c.Correct(in)
	for i := 0; i < 5; i++ {
		if again := c.Correct(in); again != first {
			t.Fatalf("correction not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestCorrect_EmptyDictionaryIsPassthrough(t *testing.T) {
	c := &Corrector{}

	in := "the goverment confirmed"
	got := c.Correct(in)
	if got.Changed || got.CorrectedText != in {
		t.Errorf("missing dictionary must be a no-op, got %+v", got)
	}
}

func TestNearest_TieBreaksByFrequencyRank(t *testing.T) {
	// "aple" is one edit from both candidates; the earlier, more frequent
	// word must win regardless of how the list is scanned
	c := newCorrector([]string{"zebra", "apple", "maple"})
	got, dist := c.nearest("aple")
	if got != "apple" || dist != 1 {
		t.Fatalf("nearest(aple) = %q, %d; want apple, 1", got, dist)
	}

	c = newCorrector([]string{"zebra", "maple", "apple"})
	if got, _ = c.nearest("aple"); got != "maple" {
		t.Fatalf("nearest(aple) = %q, want maple after reordering", got)
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "acb", 1}, // transposition
		{"goverment", "government", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
