package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// SearchResult is one ranked hit from the search capability
type SearchResult struct {
	Title  string `json:"title"`
	URL    string `json:"link"`
	Domain string `json:"domain,omitempty"`
}

// Searcher is the bounded search capability the verifier relies on:
// given a query, return ranked candidate URLs with titles.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]SearchResult, error)
}

// APISearcher queries a JSON search API. Results are memoized so repeated
// verification of similar items doesn't burn the request budget, and all
// outbound calls go through a token-bucket limiter.
type APISearcher struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *gocache.Cache
}

// NewAPISearcher creates the search client. CacheTTL bounds how long a
// query's results are reused.
func NewAPISearcher(endpoint, apiKey string, perSecond float64, burst int, cacheTTL time.Duration) *APISearcher {
	if burst <= 0 {
		burst = 1
	}
	return &APISearcher{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(perSecond), burst),
		cache:      gocache.New(cacheTTL, 10*time.Minute),
	}
}

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num,omitempty"`
}

type searchResponse struct {
	Organic []SearchResult `json:"organic"`
	News    []SearchResult `json:"news"`
}

// Search runs the query, newest memoized results first
func (s *APISearcher) Search(ctx context.Context, query string, max int) ([]SearchResult, error) {
	if cached, found := s.cache.Get(query); found {
		return capResults(cached.([]SearchResult), max), nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("search rate limit: %w", err)
	}

	body, err := json.Marshal(searchRequest{Q: query, Num: max})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-API-KEY", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	results := append(parsed.Organic, parsed.News...)
	s.cache.Set(query, results, gocache.DefaultExpiration)

	return capResults(results, max), nil
}

func capResults(results []SearchResult, max int) []SearchResult {
	if max > 0 && len(results) > max {
		return results[:max]
	}
	return results
}
