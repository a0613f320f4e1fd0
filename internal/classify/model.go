// Package classify produces the REAL/FAKE verdict. Two interchangeable
// strategies sit behind one interface: a heavyweight remote model and a
// lightweight in-process fallback.
package classify

import (
	"context"

	"github.com/veridict/veridict/internal/model"
)

// Model is a loaded, stateless-inference classification capability. It is
// safe for concurrent use; Classify never mutates model state.
type Model interface {
	// Name identifies the model in logs
	Name() string

	// Classify returns the label and the model's own confidence for it.
	// ModelUsed is left to the Engine.
	Classify(ctx context.Context, text string) (model.ClassificationResult, error)
}
