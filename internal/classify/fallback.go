package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/veridict/veridict/internal/model"
)

// Fallback is the lightweight bag-of-words linear classifier. It runs
// in-process with no I/O, so it answers in microseconds and cannot be
// unavailable once constructed.
type Fallback struct {
	bias    float64
	weights map[string]float64
}

// NewFallback builds the fallback from the embedded weights
func NewFallback() *Fallback {
	return &Fallback{bias: fallbackBias, weights: fallbackWeights}
}

// NewFallbackFromFile loads a weights override produced by the training
// pipeline: {"bias": float, "terms": {word: weight}}.
func NewFallbackFromFile(path string) (*Fallback, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}

	var payload struct {
		Bias  float64            `json:"bias"`
		Terms map[string]float64 `json:"terms"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse weights: %w", err)
	}
	if len(payload.Terms) == 0 {
		return nil, fmt.Errorf("parse weights: empty term table")
	}

	return &Fallback{bias: payload.Bias, weights: payload.Terms}, nil
}

// Name returns the model identifier used in logs
func (f *Fallback) Name() string {
	return "fallback/bag-of-words"
}

// Classify scores the text with the linear model. The logistic of the
// score is P(REAL); the reported confidence is the probability of the
// predicted class.
func (f *Fallback) Classify(_ context.Context, text string) (model.ClassificationResult, error) {
	tokens := fallbackTokenize(text)
	if len(tokens) == 0 {
		return model.ClassificationResult{}, fmt.Errorf("fallback inference: no tokens")
	}

	score := f.bias
	for _, tok := range tokens {
		score += f.weights[tok]
	}
	// normalize by length so long articles don't saturate the logistic
	score /= math.Sqrt(float64(len(tokens)))

	pReal := 1 / (1 + math.Exp(-score))

	result := model.ClassificationResult{Label: model.LabelReal, Confidence: pReal}
	if pReal < 0.5 {
		result.Label = model.LabelFake
		result.Confidence = 1 - pReal
	}
	return result, nil
}

func fallbackTokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\'' && r != '-'
	})
}
