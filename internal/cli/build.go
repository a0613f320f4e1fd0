package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/classify"
	"github.com/veridict/veridict/internal/config"
	"github.com/veridict/veridict/internal/correct"
	"github.com/veridict/veridict/internal/history"
	"github.com/veridict/veridict/internal/pipeline"
	"github.com/veridict/veridict/internal/resolve"
	"github.com/veridict/veridict/internal/sentiment"
	"github.com/veridict/veridict/internal/validate"
	"github.com/veridict/veridict/internal/verify"
)

// buildPipeline assembles the full analysis pipeline from configuration.
// The returned cleanup closes the history store.
func buildPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, func(), error) {
	var primary classify.Model
	if cfg.Primary.BaseURL != "" {
		p, err := classify.NewPrimary(cfg.Primary)
		if err != nil {
			return nil, nil, fmt.Errorf("configure primary model: %w", err)
		}
		probeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if !p.Available(probeCtx) {
			logger.Warn("primary model endpoint not reachable, requests will use the fallback",
				"base_url", cfg.Primary.BaseURL)
		}
		cancel()
		primary = p
	} else {
		logger.Warn("no primary model configured, running in degraded mode")
	}

	fallback := classify.NewFallback()
	if cfg.Fallback.WeightsPath != "" {
		fb, err := classify.NewFallbackFromFile(cfg.Fallback.WeightsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load fallback weights: %w", err)
		}
		fallback = fb
	}

	var searcher verify.Searcher
	if cfg.Verify.SearchURL != "" {
		searcher = verify.NewAPISearcher(
			cfg.Verify.SearchURL,
			cfg.Verify.SearchAPIKey,
			cfg.Verify.SearchRatePerSecond,
			cfg.Verify.SearchBurst,
			cfg.Verify.CacheTTL,
		)
	} else {
		logger.Warn("no search endpoint configured, source verification disabled")
	}

	var results *cache.ResultCache
	if cfg.Cache.Enabled {
		c, err := cache.New(cfg.Cache.Capacity)
		if err != nil {
			return nil, nil, fmt.Errorf("create result cache: %w", err)
		}
		results = c
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open history store: %w", err)
	}

	p := pipeline.New(pipeline.Options{
		Resolver:      resolve.New(cfg.HTTP, logger),
		Validator:     validate.New(),
		Corrector:     correct.New(),
		Engine:        classify.NewEngine(primary, fallback, logger),
		Sentiment:     sentiment.New(cfg.Sentiment.NeutralEpsilon),
		Verifier:      verify.New(searcher, cfg.Verify, logger),
		Cache:         results,
		History:       store,
		EnrichTimeout: cfg.Pipeline.EnrichTimeout,
		Logger:        logger,
	})

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Error("closing history store", "error", err)
		}
	}
	return p, cleanup, nil
}
