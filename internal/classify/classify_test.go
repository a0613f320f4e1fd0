package classify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/veridict/veridict/internal/model"
)

// stubModel lets tests force any outcome from a Model
type stubModel struct {
	name   string
	result model.ClassificationResult
	err    error
}

func (s *stubModel) Name() string { return s.name }

func (s *stubModel) Classify(context.Context, string) (model.ClassificationResult, error) {
	return s.result, s.err
}

func TestEngine_PrimarySucceeds(t *testing.T) {
	primary := &stubModel{name: "p", result: model.ClassificationResult{Label: model.LabelFake, Confidence: 0.93}}
	engine := NewEngine(primary, NewFallback(), nil)

	got, err := engine.Classify(context.Background(), "some headline text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ModelUsed != model.ModelPrimary {
		t.Errorf("model_used = %s, want PRIMARY", got.ModelUsed)
	}
	if got.Label != model.LabelFake || got.Confidence != 0.93 {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestEngine_FallsBackOnPrimaryFailure(t *testing.T) {
	primary := &stubModel{name: "p", err: errors.New("inference exploded")}
	engine := NewEngine(primary, NewFallback(), nil)

	got, err := engine.Classify(context.Background(), "Officials said the budget passed according to the statement")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ModelUsed != model.ModelFallback {
		t.Errorf("model_used = %s, want FALLBACK", got.ModelUsed)
	}
	if got.Label != model.LabelReal && got.Label != model.LabelFake {
		t.Errorf("fallback must still produce a binary label, got %q", got.Label)
	}
	if got.Confidence <= 0 || got.Confidence > 1 {
		t.Errorf("confidence out of (0,1]: %v", got.Confidence)
	}
}

func TestEngine_NoPrimaryUsesFallback(t *testing.T) {
	engine := NewEngine(nil, NewFallback(), nil)
	if !engine.Degraded() {
		t.Error("engine without a primary must report degraded mode")
	}

	got, err := engine.Classify(context.Background(), "Officials said the measure passed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ModelUsed != model.ModelFallback {
		t.Errorf("model_used = %s, want FALLBACK", got.ModelUsed)
	}
}

func TestEngine_BothUnavailable(t *testing.T) {
	primary := &stubModel{name: "p", err: errors.New("down")}
	engine := NewEngine(primary, nil, nil)

	_, err := engine.Classify(context.Background(), "some text")
	if !errors.Is(err, model.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestFallback_SensationalTextIsFake(t *testing.T) {
	f := NewFallback()

	got, err := f.Classify(context.Background(), "SHOCKING secret miracle cure they banned, the hidden conspiracy exposed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Label != model.LabelFake {
		t.Errorf("label = %s, want FAKE (confidence %v)", got.Label, got.Confidence)
	}
	if got.Confidence <= 0.5 || got.Confidence > 1 {
		t.Errorf("confidence of the predicted class must be in (0.5,1], got %v", got.Confidence)
	}
}

func TestFallback_SoberTextIsReal(t *testing.T) {
	f := NewFallback()

	got, err := f.Classify(context.Background(), "The finance minister said on Tuesday the government announced a two percent increase, according to the official statement")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Label != model.LabelReal {
		t.Errorf("label = %s, want REAL (confidence %v)", got.Label, got.Confidence)
	}
}

func TestFallback_EmptyTextErrors(t *testing.T) {
	f := NewFallback()
	if _, err := f.Classify(context.Background(), "   "); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestNewFallbackFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	content := `{"bias": -1.0, "terms": {"anything": -2.0}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := NewFallbackFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := f.Classify(context.Background(), "anything goes")
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != model.LabelFake {
		t.Errorf("label = %s, want FAKE from negative weights", got.Label)
	}

	if _, err := NewFallbackFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    model.Label
		wantErr bool
	}{
		{"plain", `{"label":"FAKE","confidence":0.97}`, model.LabelFake, false},
		{"fenced", "```json\n{\"label\":\"REAL\",\"confidence\":0.8}\n```", model.LabelReal, false},
		{"lowercase label", `{"label":"real","confidence":0.6}`, model.LabelReal, false},
		{"no json", "definitely fake news", "", true},
		{"bad label", `{"label":"MAYBE","confidence":0.5}`, "", true},
		{"confidence out of range", `{"label":"REAL","confidence":1.5}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVerdict(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.content)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Label != tt.want {
				t.Errorf("label = %s, want %s", got.Label, tt.want)
			}
		})
	}
}

// Guard against accidental sign flips when editing the weight table
func TestFallback_WeightTableSanity(t *testing.T) {
	for _, term := range []string{"shocking", "conspiracy", "hoax", "miracle"} {
		if w, ok := fallbackWeights[term]; !ok || w >= 0 {
			t.Errorf("expected negative weight for %q, got %v", term, w)
		}
	}
	for _, term := range []string{"said", "according", "reuters", "officials"} {
		if w, ok := fallbackWeights[term]; !ok || w <= 0 {
			t.Errorf("expected positive weight for %q, got %v", term, w)
		}
	}
}
