package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/veridict/veridict/internal/config"
	"github.com/veridict/veridict/internal/model"
)

const primarySystemPrompt = `You are a news classification model. Given a news item, decide whether it is REAL or FAKE.
Respond with exactly one JSON object and nothing else:
{"label": "REAL" or "FAKE", "confidence": number between 0 and 1}
The confidence is your probability for the predicted label.`

// Primary is the heavyweight contextual classifier, served by an
// OpenAI-compatible inference endpoint. It is constructed once at startup
// and shared read-only across requests.
type Primary struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewPrimary creates the remote classifier client. A missing endpoint is a
// recognized degraded state: the caller gets nil and runs fallback-only.
func NewPrimary(cfg config.PrimaryConfig) (*Primary, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("primary model endpoint not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	client := openai.NewClientWithConfig(clientConfig)

	return &Primary{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Name returns the model identifier used in logs
func (p *Primary) Name() string {
	return "primary/" + p.model
}

// Available probes the endpoint with a lightweight call
func (p *Primary) Available(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Classify asks the endpoint for a strict-JSON verdict
func (p *Primary) Classify(ctx context.Context, text string) (model.ClassificationResult, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: primarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
		MaxTokens:   64,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("primary inference: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.ClassificationResult{}, fmt.Errorf("primary inference: empty response")
	}

	return parseVerdict(resp.Choices[0].Message.Content)
}

// parseVerdict extracts the JSON verdict, tolerating code fences and
// surrounding prose some endpoints add.
func parseVerdict(content string) (model.ClassificationResult, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return model.ClassificationResult{}, fmt.Errorf("parse verdict: no JSON object in %q", content)
	}

	var payload struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return model.ClassificationResult{}, fmt.Errorf("parse verdict: %w", err)
	}

	var label model.Label
	switch strings.ToUpper(strings.TrimSpace(payload.Label)) {
	case "REAL":
		label = model.LabelReal
	case "FAKE":
		label = model.LabelFake
	default:
		return model.ClassificationResult{}, fmt.Errorf("parse verdict: unknown label %q", payload.Label)
	}

	if payload.Confidence < 0 || payload.Confidence > 1 {
		return model.ClassificationResult{}, fmt.Errorf("parse verdict: confidence %v out of [0,1]", payload.Confidence)
	}

	return model.ClassificationResult{Label: label, Confidence: payload.Confidence}, nil
}
