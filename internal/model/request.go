package model

// AnalysisRequest is one submitted news item. Exactly one of Text/URL is the
// effective content source; URL wins only when Text is empty at call time.
type AnalysisRequest struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

// ResolvedContent is the request reduced to analyzable text, either the raw
// text as-is or the extracted body of a fetched URL.
type ResolvedContent struct {
	Text      string `json:"text"`
	SourceURL string `json:"source_url,omitempty"` // empty for raw-text requests
}
