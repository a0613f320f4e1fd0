package model

import "time"

// Label is the binary classification verdict
type Label string

const (
	LabelReal Label = "REAL"
	LabelFake Label = "FAKE"
)

// PredictionInvalid is the verdict for input the validator rejected.
// It is not a Label: classification never produces it.
const PredictionInvalid = "INVALID"

// ModelKind identifies which classifier strategy produced a result
type ModelKind string

const (
	ModelPrimary  ModelKind = "PRIMARY"
	ModelFallback ModelKind = "FALLBACK"
)

// CorrectionResult is the output of typo repair. Named-entity tokens are
// never altered; Changed reports whether any token was rewritten.
type CorrectionResult struct {
	OriginalText  string `json:"original_text"`
	CorrectedText string `json:"corrected_text"`
	Changed       bool   `json:"changed"`
}

// ClassificationResult carries the verdict of whichever model ran
type ClassificationResult struct {
	Label      Label     `json:"label"`
	Confidence float64   `json:"confidence"` // model's own score for the predicted class, in [0,1]
	ModelUsed  ModelKind `json:"model_used"`
}

// SentimentLabel buckets polarity around a dead zone
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// SentimentResult is the lexical polarity/subjectivity scoring of the text
type SentimentResult struct {
	Polarity     float64        `json:"polarity"`     // [-1, 1]
	Subjectivity float64        `json:"subjectivity"` // [0, 1]
	Label        SentimentLabel `json:"label"`
}

// MatchedSource is one trusted-domain hit from source verification
type MatchedSource struct {
	Domain string `json:"domain"`
	URL    string `json:"url"`
	Title  string `json:"title"`
}

// VerificationResult lists trusted-domain stories similar to the input.
// Correction is populated only for FAKE verdicts that have a trusted
// counter-story, offering the reader related context.
type VerificationResult struct {
	MatchedSources []MatchedSource `json:"matched_sources"`
	Correction     *MatchedSource  `json:"correction,omitempty"`
}

// AnalysisRecord is one append-only history entry
type AnalysisRecord struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	Prediction string    `json:"prediction"`
	Confidence float64   `json:"confidence"`
	ModelUsed  string    `json:"model_used,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// AggregatedResult is the externally visible artifact of one analysis.
// Immutable once constructed; it is the value stored in the result cache.
type AggregatedResult struct {
	Prediction  string          `json:"prediction"` // REAL, FAKE or INVALID
	Confidence  float64         `json:"confidence"`
	ModelUsed   ModelKind       `json:"model_used,omitempty"`
	Explanation string          `json:"explanation"`
	Sources     []MatchedSource `json:"sources"`
	Correction  *MatchedSource  `json:"correction,omitempty"`
	Sentiment   SentimentResult `json:"sentiment"`

	// Original/Corrected are set only when the corrector changed the text
	OriginalText  string `json:"original_text,omitempty"`
	CorrectedText string `json:"corrected_text,omitempty"`

	SourceURL   string    `json:"source_url,omitempty"`
	Fingerprint string    `json:"fingerprint"`
	CacheHit    bool      `json:"cache_hit"`
	AnalyzedAt  time.Time `json:"analyzed_at"`

	// AnalyzedText is the post-correction text the verdict applies to.
	// It feeds the history log and stays off the wire.
	AnalyzedText string `json:"-"`
}
