// Package resolve turns an analysis request into analyzable text. Raw text
// passes through; URLs are fetched and reduced to title plus leading
// paragraphs.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/veridict/veridict/internal/config"
	"github.com/veridict/veridict/internal/model"
)

// minExtractedLength guards against pages that fetched fine but yielded
// no usable article text.
const minExtractedLength = 40

// Resolver fetches and extracts URL content
type Resolver struct {
	fetcher *Fetcher
	robots  *robotsChecker
	logger  *slog.Logger
}

// New creates a Resolver from the outbound HTTP configuration
func New(cfg config.HTTPConfig, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		fetcher: NewFetcher(cfg.Timeout, cfg.UserAgent, cfg.MaxBodyBytes),
		logger:  logger,
	}
	if cfg.RespectRobots {
		r.robots = newRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return r
}

// Resolve reduces the request to text. Text wins unless it is empty; a URL
// that cannot be reduced to text fails with a ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, req model.AnalysisRequest) (model.ResolvedContent, error) {
	text := strings.TrimSpace(req.Text)
	if text != "" || req.URL == "" {
		return model.ResolvedContent{Text: text}, nil
	}

	content, err := r.resolveURL(ctx, req.URL)
	if err != nil {
		return model.ResolvedContent{}, &model.ResolutionError{URL: req.URL, Err: err}
	}
	return content, nil
}

func (r *Resolver) resolveURL(ctx context.Context, rawURL string) (model.ResolvedContent, error) {
	if r.robots != nil && !r.robots.canFetch(ctx, rawURL) {
		return model.ResolvedContent{}, fmt.Errorf("disallowed by robots.txt")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return model.ResolvedContent{}, fmt.Errorf("create request: %w", err)
	}

	fetched, err := r.fetcher.fetch(httpReq)
	if err != nil {
		return model.ResolvedContent{}, err
	}

	title, body, err := extractArticle(fetched.html)
	if err != nil {
		return model.ResolvedContent{}, fmt.Errorf("parse page: %w", err)
	}

	text := strings.TrimSpace(body)
	if title != "" {
		text = strings.TrimSpace(title + ". " + body)
	}
	if len(text) < minExtractedLength {
		return model.ResolvedContent{}, fmt.Errorf("no extractable article text")
	}

	r.logger.Debug("resolved url", "url", rawURL, "final_url", fetched.finalURL, "chars", len(text))

	return model.ResolvedContent{Text: text, SourceURL: fetched.finalURL}, nil
}
