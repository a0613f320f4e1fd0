package classify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/veridict/veridict/internal/model"
)

// Engine applies the selection policy: try the primary, fall back on any
// failure, and surface ErrModelUnavailable only when neither can answer.
// A label is never fabricated.
type Engine struct {
	primary  Model
	fallback Model
	logger   *slog.Logger
}

// NewEngine wires the two strategies. Either model may be nil; an engine
// with a nil primary runs in degraded mode from the start.
func NewEngine(primary, fallback Model, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{primary: primary, fallback: fallback, logger: logger}
}

// Classify runs the selection policy and tags the result with the model
// that actually produced it.
func (e *Engine) Classify(ctx context.Context, text string) (model.ClassificationResult, error) {
	if e.primary != nil {
		result, err := e.primary.Classify(ctx, text)
		if err == nil {
			result.ModelUsed = model.ModelPrimary
			return result, nil
		}
		if ctx.Err() != nil {
			// the request itself is gone, don't burn the fallback on it
			return model.ClassificationResult{}, fmt.Errorf("classify: %w", ctx.Err())
		}
		e.logger.Warn("primary model failed, using fallback",
			"model", e.primary.Name(), "error", err)
	}

	if e.fallback == nil {
		return model.ClassificationResult{}, model.ErrModelUnavailable
	}

	result, err := e.fallback.Classify(ctx, text)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("%w: fallback failed: %v", model.ErrModelUnavailable, err)
	}
	result.ModelUsed = model.ModelFallback
	return result, nil
}

// Degraded reports whether the engine is running without a primary model
func (e *Engine) Degraded() bool {
	return e.primary == nil
}
