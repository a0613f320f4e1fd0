package verify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/veridict/veridict/internal/config"
	"github.com/veridict/veridict/internal/model"
)

// stubSearcher returns canned results or a canned error; fn, when set,
// lets a test answer per query.
type stubSearcher struct {
	results []SearchResult
	err     error
	queries []string
	fn      func(query string) ([]SearchResult, error)
}

func (s *stubSearcher) Search(_ context.Context, query string, _ int) ([]SearchResult, error) {
	s.queries = append(s.queries, query)
	if s.fn != nil {
		return s.fn(query)
	}
	return s.results, s.err
}

func testConfig() config.VerifyConfig {
	cfg := config.Default().Verify
	cfg.SimilarityThreshold = 0.3
	return cfg
}

func TestVerify_TrustedMatchBecomesCorrection(t *testing.T) {
	const text = "Scientists confirm the Earth is flat after shocking new study"
	searcher := &stubSearcher{results: []SearchResult{
		{Title: "Celebrity gossip roundup", URL: "https://tabloid.example/gossip"},
		{Title: "No, scientists did not confirm the Earth is flat", URL: "https://www.reuters.com/science/flat"},
		{Title: "Earth flat claim debunked by scientists", URL: "https://bbc.com/news/earth-flat"},
	}}

	v := New(searcher, testConfig(), nil)
	got := v.Verify(context.Background(), text, model.LabelFake)

	if len(got.MatchedSources) == 0 {
		t.Fatal("expected trusted matches")
	}
	for _, s := range got.MatchedSources {
		if s.Domain != "reuters.com" && s.Domain != "bbc.com" {
			t.Errorf("untrusted domain leaked through: %q", s.Domain)
		}
	}
	if got.Correction == nil {
		t.Fatal("FAKE verdict with trusted matches must carry a correction")
	}
	if got.Correction.Domain != "reuters.com" {
		t.Errorf("correction %+v is not the first trusted fact-check hit", *got.Correction)
	}
	if len(searcher.queries) != 2 {
		t.Fatalf("queries = %v, want headline search plus fact-check search", searcher.queries)
	}
	if !strings.Contains(searcher.queries[1], "fact check") {
		t.Errorf("second query %q should carry the fact-check suffix", searcher.queries[1])
	}
}

func TestVerify_RealVerdictHasNoCorrection(t *testing.T) {
	searcher := &stubSearcher{results: []SearchResult{
		{Title: "Parliament passes budget after overnight session", URL: "https://apnews.com/budget"},
	}}

	v := New(searcher, testConfig(), nil)
	got := v.Verify(context.Background(), "Parliament passes budget after overnight session", model.LabelReal)

	if got.Correction != nil {
		t.Errorf("REAL verdict must not carry a correction, got %+v", got.Correction)
	}
	if len(got.MatchedSources) != 1 {
		t.Errorf("expected 1 matched source, got %d", len(got.MatchedSources))
	}
	if len(searcher.queries) != 1 {
		t.Errorf("queries = %v, REAL verdicts should not trigger the fact-check search", searcher.queries)
	}
}

func TestVerify_FactCheckSearchFindsCorrection(t *testing.T) {
	const text = "Miracle cure turns tap water into fuel, insiders claim"
	searcher := &stubSearcher{fn: func(query string) ([]SearchResult, error) {
		if strings.Contains(query, "fact check") {
			return []SearchResult{
				{Title: "Fact check: tap water cannot be turned into fuel", URL: "https://www.snopes.com/fact-check/tap-water-fuel/"},
			}, nil
		}
		return []SearchResult{
			{Title: "Tap water fuel miracle spreads online", URL: "https://blog.example/fuel"},
		}, nil
	}}

	v := New(searcher, testConfig(), nil)
	got := v.Verify(context.Background(), text, model.LabelFake)

	if len(got.MatchedSources) != 0 {
		t.Fatalf("expected no trusted matches from the headline search, got %+v", got.MatchedSources)
	}
	if got.Correction == nil {
		t.Fatal("fact-check search found a trusted hit, correction must be set")
	}
	if got.Correction.Domain != "snopes.com" {
		t.Errorf("correction domain = %q, want snopes.com", got.Correction.Domain)
	}
	if len(searcher.queries) != 2 {
		t.Fatalf("queries = %v, want headline search plus fact-check search", searcher.queries)
	}
	if !strings.Contains(searcher.queries[1], "fact check") {
		t.Errorf("second query %q should carry the fact-check suffix", searcher.queries[1])
	}
}

func TestVerify_FactCheckFailureFallsBackToTopMatch(t *testing.T) {
	const text = "central bank raises interest rates to fight inflation"
	searcher := &stubSearcher{fn: func(query string) ([]SearchResult, error) {
		if strings.Contains(query, "fact check") {
			return nil, errors.New("quota exceeded")
		}
		return []SearchResult{
			{Title: text, URL: "https://reuters.com/b"},
		}, nil
	}}

	v := New(searcher, testConfig(), nil)
	got := v.Verify(context.Background(), text, model.LabelFake)

	if len(got.MatchedSources) != 1 {
		t.Fatalf("expected 1 matched source, got %+v", got.MatchedSources)
	}
	if got.Correction == nil {
		t.Fatal("fact-check failure should fall back to the top similarity match")
	}
	if *got.Correction != got.MatchedSources[0] {
		t.Errorf("correction %+v, want top match %+v", *got.Correction, got.MatchedSources[0])
	}
}

func TestVerify_NoMatches(t *testing.T) {
	searcher := &stubSearcher{results: []SearchResult{
		{Title: "Entirely unrelated puppy adoption drive", URL: "https://blog.example/puppies"},
	}}

	v := New(searcher, testConfig(), nil)
	got := v.Verify(context.Background(), "Minister resigns over budget dispute in parliament", model.LabelFake)

	if len(got.MatchedSources) != 0 {
		t.Errorf("expected no matches, got %+v", got.MatchedSources)
	}
	if got.Correction != nil {
		t.Errorf("no matches must mean no correction, got %+v", got.Correction)
	}
}

func TestVerify_SearchFailureDegrades(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("network down")}

	v := New(searcher, testConfig(), nil)
	got := v.Verify(context.Background(), "Minister resigns over budget dispute in parliament", model.LabelFake)

	if len(got.MatchedSources) != 0 || got.Correction != nil {
		t.Errorf("search failure must degrade to empty result, got %+v", got)
	}
}

func TestVerify_SimilarityOrderingAndCap(t *testing.T) {
	const text = "central bank raises interest rates to fight inflation"
	searcher := &stubSearcher{results: []SearchResult{
		{Title: "bank mentions rates once", URL: "https://bbc.com/a"},
		{Title: "central bank raises interest rates to fight inflation", URL: "https://reuters.com/b"},
		{Title: "central bank raises rates, inflation fight continues", URL: "https://apnews.com/c"},
		{Title: "bank inflation rates central raises fight", URL: "https://npr.org/d"},
	}}

	cfg := testConfig()
	cfg.MaxSources = 2
	v := New(searcher, cfg, nil)
	got := v.Verify(context.Background(), text, model.LabelReal)

	if len(got.MatchedSources) != 2 {
		t.Fatalf("expected cap of 2 sources, got %d", len(got.MatchedSources))
	}
	if got.MatchedSources[0].Domain != "reuters.com" {
		t.Errorf("highest-similarity hit should rank first, got %+v", got.MatchedSources[0])
	}
}

func TestTitleSimilarity(t *testing.T) {
	if sim := titleSimilarity("central bank raises rates", "central bank raises rates"); sim != 1 {
		t.Errorf("identical titles should score 1, got %v", sim)
	}
	if sim := titleSimilarity("central bank raises rates", "puppy adoption drive"); sim != 0 {
		t.Errorf("disjoint titles should score 0, got %v", sim)
	}
	partial := titleSimilarity("central bank raises interest rates", "central bank cuts interest rates")
	if partial <= 0 || partial >= 1 {
		t.Errorf("overlapping titles should score in (0,1), got %v", partial)
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct{ in, want string }{
		{"https://www.reuters.com/article/x", "reuters.com"},
		{"http://bbc.com:8080/news", "bbc.com"},
		{"reuters.com", "reuters.com"},
		{"WWW.BBC.COM", "bbc.com"},
	}
	for _, tt := range tests {
		if got := normalizeDomain(tt.in); got != tt.want {
			t.Errorf("normalizeDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSalientQuery_DropsStopAndFillerWords(t *testing.T) {
	got := salientQuery("The shocking secret of the minister was revealed today", 12)
	for _, banned := range []string{"the", "shocking", "secret", "revealed", "today"} {
		for _, tok := range strings.Fields(got) {
			if tok == banned {
				t.Errorf("query %q still contains filler token %q", got, banned)
			}
		}
	}
	if !strings.Contains(got, "minister") {
		t.Errorf("query %q lost the salient token", got)
	}
}

func TestExplain(t *testing.T) {
	sources := []model.MatchedSource{{Domain: "reuters.com", URL: "https://reuters.com/x", Title: "x"}}

	real := Explain("some text", model.LabelReal, sources)
	if !strings.Contains(real, "reuters.com") || !strings.Contains(real, "1 trusted source") {
		t.Errorf("unexpected REAL explanation: %q", real)
	}

	fake := Explain("A shocking bombshell conspiracy", model.LabelFake, nil)
	if !strings.Contains(fake, "trusted news sources") {
		t.Errorf("FAKE without sources should mention missing trusted coverage: %q", fake)
	}
	if !strings.Contains(fake, "shocking") {
		t.Errorf("FAKE explanation should call out clickbait terms: %q", fake)
	}

	// same inputs, same output
	if again := Explain("A shocking bombshell conspiracy", model.LabelFake, nil); again != fake {
		t.Error("explanation must be deterministic")
	}
}
