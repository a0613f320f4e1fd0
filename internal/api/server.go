// Package api exposes the analysis pipeline over HTTP. The surface is
// small: one prediction endpoint, a history listing and a health probe,
// behind a per-client token-bucket limiter.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/veridict/veridict/internal/config"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pipeline"
)

const (
	maxRequestBytes   = 1 << 20
	defaultPageSize   = 20
	maxPageSize       = 100
	shutdownGrace     = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Server is the HTTP boundary around a Pipeline
type Server struct {
	pipeline *pipeline.Pipeline
	cfg      config.ServerConfig
	logger   *slog.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New builds a Server. The limiter budget comes from cfg; a zero
// RatePerMinute disables rate limiting.
func New(p *pipeline.Pipeline, cfg config.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		pipeline: p,
		cfg:      cfg,
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Handler assembles the route table with CORS and rate limiting applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/predict", s.handlePredict)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.cors(s.rateLimit(mux))
}

// Run serves until ctx is cancelled, then drains with a bounded grace
// period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

type predictRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// predictResponse is the wire shape of an AggregatedResult. Confidence
// goes out as a percentage string, matching what downstream consumers
// already parse.
type predictResponse struct {
	Prediction    string                `json:"prediction"`
	Confidence    string                `json:"confidence"`
	ModelUsed     string                `json:"model_used,omitempty"`
	Explanation   string                `json:"explanation"`
	Sources       []model.MatchedSource `json:"sources"`
	Correction    *model.MatchedSource  `json:"correction,omitempty"`
	Sentiment     model.SentimentResult `json:"sentiment"`
	OriginalText  string                `json:"original_text,omitempty"`
	CorrectedText string                `json:"corrected_text,omitempty"`
	SourceURL     string                `json:"source_url,omitempty"`
	Fingerprint   string                `json:"fingerprint"`
	CacheHit      bool                  `json:"cache_hit"`
	AnalyzedAt    time.Time             `json:"analyzed_at"`
}

type historyEntry struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	Prediction string    `json:"prediction"`
	Confidence string    `json:"confidence"`
	ModelUsed  string    `json:"model_used,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "either text or url is required"})
		return
	}

	result, err := s.pipeline.Analyze(r.Context(), model.AnalysisRequest{Text: req.Text, URL: req.URL})
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPredictResponse(result))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultPageSize)
	offset := queryInt(r, "offset", 0)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.pipeline.History(r.Context(), limit, offset)
	if err != nil {
		s.logger.Error("history read failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "history unavailable"})
		return
	}

	entries := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, historyEntry{
			ID:         rec.ID,
			Text:       rec.Text,
			Prediction: rec.Prediction,
			Confidence: formatConfidence(rec.Confidence),
			ModelUsed:  rec.ModelUsed,
			Timestamp:  rec.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"degraded": s.pipeline.Degraded(),
	})
}

// writeAnalysisError maps pipeline failures onto HTTP statuses. Rejected
// input never reaches here: the pipeline reports it as a normal INVALID
// result.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	var resErr *model.ResolutionError
	switch {
	case errors.Is(err, model.ErrModelUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no classification model is available"})
	case errors.As(err, &resErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: fmt.Sprintf("could not resolve content from %s", resErr.URL)})
	default:
		s.logger.Error("analysis failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "analysis failed"})
	}
}

// rateLimit enforces a per-client token bucket keyed by remote IP
func (s *Server) rateLimit(next http.Handler) http.Handler {
	if s.cfg.RatePerMinute <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiterFor(clientIP(r)).Allow() {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limiterFor(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	limiter, ok := s.limiters[ip]
	if !ok {
		burst := s.cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(s.cfg.RatePerMinute/60), burst)
		s.limiters[ip] = limiter
	}
	return limiter
}

func (s *Server) cors(next http.Handler) http.Handler {
	origins := strings.TrimSpace(s.cfg.AllowedOrigins)
	if origins == "" {
		return next
	}
	allowed := make(map[string]bool)
	for _, o := range strings.Split(origins, ",") {
		allowed[strings.TrimSpace(o)] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case allowed["*"]:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func toPredictResponse(result *model.AggregatedResult) predictResponse {
	resp := predictResponse{
		Prediction:    result.Prediction,
		Explanation:   result.Explanation,
		Sources:       result.Sources,
		Correction:    result.Correction,
		Sentiment:     result.Sentiment,
		OriginalText:  result.OriginalText,
		CorrectedText: result.CorrectedText,
		SourceURL:     result.SourceURL,
		Fingerprint:   result.Fingerprint,
		CacheHit:      result.CacheHit,
		AnalyzedAt:    result.AnalyzedAt,
	}
	resp.ModelUsed = string(result.ModelUsed)
	if result.Prediction != model.PredictionInvalid {
		resp.Confidence = formatConfidence(result.Confidence)
	}
	return resp
}

// formatConfidence renders a [0,1] score as a one-decimal percentage,
// e.g. 0.973 -> "97.3%".
func formatConfidence(c float64) string {
	return fmt.Sprintf("%.1f%%", c*100)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
