// Package pipeline orchestrates one analysis: resolve, fingerprint, cache
// check, validate, correct, then classification, sentiment and source
// verification in parallel, aggregated into a single cacheable verdict.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/classify"
	"github.com/veridict/veridict/internal/correct"
	"github.com/veridict/veridict/internal/history"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/resolve"
	"github.com/veridict/veridict/internal/sentiment"
	"github.com/veridict/veridict/internal/validate"
	"github.com/veridict/veridict/internal/verify"
)

// Pipeline composes the analysis stages. The classifier engine is shared
// read-only across requests; cache and history are the only mutable shared
// state and serialize themselves.
type Pipeline struct {
	resolver      *resolve.Resolver
	validator     *validate.Validator
	corrector     *correct.Corrector
	engine        *classify.Engine
	analyzer      *sentiment.Analyzer
	verifier      *verify.Verifier
	results       *cache.ResultCache
	store         *history.Store
	enrichTimeout time.Duration
	logger        *slog.Logger
}

// Options carries the pipeline's collaborators
type Options struct {
	Resolver      *resolve.Resolver
	Validator     *validate.Validator
	Corrector     *correct.Corrector
	Engine        *classify.Engine
	Sentiment     *sentiment.Analyzer
	Verifier      *verify.Verifier
	Cache         *cache.ResultCache
	History       *history.Store
	EnrichTimeout time.Duration
	Logger        *slog.Logger
}

// New assembles a Pipeline
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	enrich := opts.EnrichTimeout
	if enrich <= 0 {
		enrich = 8 * time.Second
	}
	return &Pipeline{
		resolver:      opts.Resolver,
		validator:     opts.Validator,
		corrector:     opts.Corrector,
		engine:        opts.Engine,
		analyzer:      opts.Sentiment,
		verifier:      opts.Verifier,
		results:       opts.Cache,
		store:         opts.History,
		enrichTimeout: enrich,
		logger:        logger,
	}
}

// Analyze runs the full pipeline for one request. Validation rejections
// come back as a normal INVALID result; ModelUnavailable and resolution
// failures come back as errors and leave no trace in cache or history.
func (p *Pipeline) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AggregatedResult, error) {
	logger := p.logger.With("request_id", uuid.NewString())

	content, err := p.resolver.Resolve(ctx, req)
	if err != nil {
		logger.Warn("content resolution failed", "url", req.URL, "error", err)
		return nil, err
	}

	key := cache.Fingerprint(content.Text)

	if p.results == nil {
		result, err := p.compute(ctx, logger, content, key)
		if err != nil {
			return nil, err
		}
		p.appendHistory(ctx, logger, result)
		return result, nil
	}

	computed := false
	result, hit, err := p.results.GetOrCompute(ctx, key, func(ctx context.Context) (*model.AggregatedResult, error) {
		r, err := p.compute(ctx, logger, content, key)
		if err == nil {
			computed = true
		}
		return r, err
	})
	if err != nil {
		return nil, err
	}
	if hit {
		logger.Debug("cache hit", "fingerprint", key)
	}
	// history records each computation once, after the cache write; cache
	// hits and single-flight joiners don't duplicate the entry
	if computed {
		p.appendHistory(ctx, logger, result)
	}
	return result, nil
}

// compute is the cache-miss path: everything after the fingerprint lookup
func (p *Pipeline) compute(ctx context.Context, logger *slog.Logger, content model.ResolvedContent, key string) (*model.AggregatedResult, error) {
	if v := p.validator.Validate(content.Text); !v.Valid {
		logger.Info("input rejected", "reason", v.Reason)
		return p.invalidResult(content, key, v.Reason), nil
	}

	correction := p.corrector.Correct(content.Text)
	text := correction.CorrectedText

	classification, sentimentResult, verification, err := p.enrich(ctx, logger, text)
	if err != nil {
		return nil, err
	}

	result := p.aggregate(content, key, correction, classification, sentimentResult, verification)

	logger.Info("analysis complete",
		"prediction", result.Prediction,
		"confidence", result.Confidence,
		"model", result.ModelUsed,
		"sources", len(result.Sources))

	return result, nil
}

// appendHistory records a classified verdict. INVALID results are cached
// but never logged; append failures don't disturb the verdict.
func (p *Pipeline) appendHistory(ctx context.Context, logger *slog.Logger, result *model.AggregatedResult) {
	if p.store == nil || result.Prediction == model.PredictionInvalid {
		return
	}
	record := &model.AnalysisRecord{
		Text:       result.AnalyzedText,
		Prediction: result.Prediction,
		Confidence: result.Confidence,
		ModelUsed:  string(result.ModelUsed),
	}
	if err := p.store.Append(ctx, record); err != nil {
		logger.Error("history append failed", "error", err)
	}
}

// enrich fans out the three enrichment branches. Classification is
// mandatory; sentiment and verification degrade to defaults under their
// own timeout and never fail the request.
func (p *Pipeline) enrich(ctx context.Context, logger *slog.Logger, text string) (model.ClassificationResult, model.SentimentResult, model.VerificationResult, error) {
	var (
		classification model.ClassificationResult
		sentimentRes   model.SentimentResult
		verification   model.VerificationResult
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		classification, err = p.engine.Classify(gctx, text)
		if err != nil {
			return fmt.Errorf("classify: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		sentimentRes = p.analyzer.Analyze(text)
		return nil
	})

	// Verification runs concurrently under a speculative FAKE label so the
	// network-bound branch never waits on the classifier. The correction
	// is discarded below if the verdict turned out REAL.
	verifyDone := make(chan model.VerificationResult, 1)
	go func() {
		vctx, cancel := context.WithTimeout(ctx, p.enrichTimeout)
		defer cancel()
		verifyDone <- p.verifier.Verify(vctx, text, model.LabelFake)
	}()

	if err := g.Wait(); err != nil {
		// mandatory branch failed; the verifier goroutine winds down on
		// its own bounded context
		return classification, sentimentRes, verification, err
	}

	select {
	case verification = <-verifyDone:
	case <-time.After(p.enrichTimeout):
		logger.Warn("verification timed out, degrading to empty result")
		verification = model.VerificationResult{MatchedSources: []model.MatchedSource{}}
	case <-ctx.Done():
		verification = model.VerificationResult{MatchedSources: []model.MatchedSource{}}
	}

	// the verifier speculated a FAKE label; drop the correction if the
	// classifier disagreed
	if classification.Label != model.LabelFake {
		verification.Correction = nil
	}

	return classification, sentimentRes, verification, nil
}

// aggregate builds the immutable result from the branch outputs
func (p *Pipeline) aggregate(content model.ResolvedContent, key string, correction model.CorrectionResult, classification model.ClassificationResult, sentimentRes model.SentimentResult, verification model.VerificationResult) *model.AggregatedResult {
	result := &model.AggregatedResult{
		Prediction:   string(classification.Label),
		Confidence:   classification.Confidence,
		ModelUsed:    classification.ModelUsed,
		Explanation:  verify.Explain(correction.CorrectedText, classification.Label, verification.MatchedSources),
		Sources:      verification.MatchedSources,
		Correction:   verification.Correction,
		Sentiment:    sentimentRes,
		SourceURL:    content.SourceURL,
		Fingerprint:  key,
		AnalyzedAt:   time.Now().UTC(),
		AnalyzedText: correction.CorrectedText,
	}
	if correction.Changed {
		result.OriginalText = correction.OriginalText
		result.CorrectedText = correction.CorrectedText
	}
	return result
}

// invalidResult is the short-circuit for rejected input. It is cached so
// identical garbage doesn't re-run validation, but it never reaches
// history.
func (p *Pipeline) invalidResult(content model.ResolvedContent, key, reason string) *model.AggregatedResult {
	return &model.AggregatedResult{
		Prediction:  model.PredictionInvalid,
		Explanation: reason,
		Sources:     []model.MatchedSource{},
		Sentiment:   model.SentimentResult{Label: model.SentimentNeutral},
		SourceURL:   content.SourceURL,
		Fingerprint: key,
		AnalyzedAt:  time.Now().UTC(),
	}
}

// History returns recent analysis records, newest first
func (p *Pipeline) History(ctx context.Context, limit, offset int) ([]model.AnalysisRecord, error) {
	if p.store == nil {
		return []model.AnalysisRecord{}, nil
	}
	return p.store.Recent(ctx, limit, offset)
}

// Degraded reports whether the pipeline is running without its primary model
func (p *Pipeline) Degraded() bool {
	return p.engine.Degraded()
}
