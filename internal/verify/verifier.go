// Package verify cross-references a news item against trusted sources.
// It searches for the item, keeps trusted-domain hits whose titles are
// similar enough to the input, and for FAKE verdicts hunts for a trusted
// counter-story. Verification is best-effort: every failure degrades to an
// empty result, it never aborts an analysis.
package verify

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/veridict/veridict/internal/config"
	"github.com/veridict/veridict/internal/model"
)

const queryTokenBudget = 12

// Verifier filters search hits to a trusted-domain allowlist
type Verifier struct {
	searcher   Searcher
	trusted    []string
	threshold  float64
	maxSources int
	maxResults int
	logger     *slog.Logger
}

// New creates a Verifier. The trusted-domain list and similarity threshold
// come from configuration, not constants.
func New(searcher Searcher, cfg config.VerifyConfig, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	trusted := make([]string, 0, len(cfg.TrustedDomains))
	for _, d := range cfg.TrustedDomains {
		trusted = append(trusted, normalizeDomain(d))
	}
	return &Verifier{
		searcher:   searcher,
		trusted:    trusted,
		threshold:  cfg.SimilarityThreshold,
		maxSources: cfg.MaxSources,
		maxResults: cfg.SearchResults,
		logger:     logger,
	}
}

// Verify cross-references text against the trusted-domain list.
// predictedLabel steers the counter-story search for FAKE verdicts.
func (v *Verifier) Verify(ctx context.Context, text string, predictedLabel model.Label) model.VerificationResult {
	result := model.VerificationResult{MatchedSources: []model.MatchedSource{}}
	if v.searcher == nil {
		return result
	}

	query := salientQuery(text, queryTokenBudget)
	if query == "" {
		return result
	}

	hits, err := v.searcher.Search(ctx, query, v.maxResults)
	if err != nil {
		v.logger.Warn("source search failed, degrading to empty result", "error", err)
		return result
	}

	result.MatchedSources = v.matchTrusted(hits, text)

	// For FAKE verdicts a dedicated fact-check search hunts for a trusted
	// counter-reference, even when the headline search matched nothing.
	if predictedLabel == model.LabelFake {
		result.Correction = v.findCorrection(ctx, query, result.MatchedSources)
	}
	return result
}

// findCorrection runs the fact-check search for a FAKE verdict. The first
// trusted hit wins; if the search fails or turns up nothing trusted, the
// closest headline match, when there is one, serves as the counter-reference.
func (v *Verifier) findCorrection(ctx context.Context, query string, matched []model.MatchedSource) *model.MatchedSource {
	hits, err := v.searcher.Search(ctx, query+" fact check", v.maxResults)
	if err != nil {
		v.logger.Warn("fact-check search failed, using closest trusted match", "error", err)
		return topSource(matched)
	}
	for _, hit := range hits {
		if domain := v.trustedDomain(hit.URL); domain != "" {
			return &model.MatchedSource{Domain: domain, URL: hit.URL, Title: hit.Title}
		}
	}
	return topSource(matched)
}

func topSource(matched []model.MatchedSource) *model.MatchedSource {
	if len(matched) == 0 {
		return nil
	}
	top := matched[0]
	return &top
}

// matchTrusted keeps trusted-domain hits whose titles clear the similarity
// threshold, ordered by similarity descending, capped at maxSources.
func (v *Verifier) matchTrusted(hits []SearchResult, text string) []model.MatchedSource {
	type scored struct {
		source model.MatchedSource
		sim    float64
	}

	var candidates []scored
	for _, hit := range hits {
		domain := v.trustedDomain(hit.URL)
		if domain == "" {
			continue
		}
		sim := titleSimilarity(hit.Title, text)
		if sim < v.threshold {
			continue
		}
		candidates = append(candidates, scored{
			source: model.MatchedSource{Domain: domain, URL: hit.URL, Title: hit.Title},
			sim:    sim,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sim > candidates[j].sim
	})

	matched := make([]model.MatchedSource, 0, v.maxSources)
	for _, c := range candidates {
		matched = append(matched, c.source)
		if len(matched) >= v.maxSources {
			break
		}
	}
	return matched
}

// trustedDomain returns the allowlist entry a URL belongs to, or ""
func (v *Verifier) trustedDomain(rawURL string) string {
	host := normalizeDomain(rawURL)
	if host == "" {
		return ""
	}
	for _, d := range v.trusted {
		if host == d || strings.HasSuffix(host, "."+d) {
			return d
		}
	}
	return ""
}

// normalizeDomain extracts the lowercased host, stripping www. and any port
func normalizeDomain(raw string) string {
	host := raw
	if strings.Contains(raw, "/") || strings.Contains(raw, ":") {
		if u, err := url.Parse(raw); err == nil && u.Host != "" {
			host = u.Host
		}
	}
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimPrefix(host, "www.")
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}

// salientQuery keeps the first n meaningful tokens of the text
func salientQuery(text string, n int) string {
	var keep []string
	for _, tok := range splitTokens(text) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		keep = append(keep, tok)
		if len(keep) >= n {
			break
		}
	}
	return strings.Join(keep, " ")
}
