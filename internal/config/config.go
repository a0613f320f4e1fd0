package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration. Defaults are layered under
// the config file, VERIDICT_* environment variables and CLI flags, in that
// order of increasing priority.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	HTTP      HTTPConfig      `mapstructure:"http" yaml:"http"`
	Primary   PrimaryConfig   `mapstructure:"primary" yaml:"primary"`
	Fallback  FallbackConfig  `mapstructure:"fallback" yaml:"fallback"`
	Verify    VerifyConfig    `mapstructure:"verify" yaml:"verify"`
	Sentiment SentimentConfig `mapstructure:"sentiment" yaml:"sentiment"`
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache"`
	History   HistoryConfig   `mapstructure:"history" yaml:"history"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline" yaml:"pipeline"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig controls the HTTP boundary
type ServerConfig struct {
	Addr           string  `mapstructure:"addr" yaml:"addr"`
	RatePerMinute  float64 `mapstructure:"rate_per_minute" yaml:"rate_per_minute"`
	RateBurst      int     `mapstructure:"rate_burst" yaml:"rate_burst"`
	AllowedOrigins string  `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// HTTPConfig controls outbound page fetching
type HTTPConfig struct {
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxBodyBytes  int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	RespectRobots bool          `mapstructure:"respect_robots" yaml:"respect_robots"`
}

// PrimaryConfig describes the heavyweight remote classifier. An empty
// BaseURL leaves the primary unconfigured, which is a recognized degraded
// state rather than a startup failure.
type PrimaryConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string        `mapstructure:"api_key" yaml:"api_key"`
	Model   string        `mapstructure:"model" yaml:"model"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// FallbackConfig describes the lightweight in-process classifier
type FallbackConfig struct {
	// WeightsPath optionally overrides the embedded bag-of-words weights
	WeightsPath string `mapstructure:"weights_path" yaml:"weights_path"`
}

// VerifyConfig controls source verification. TrustedDomains and
// SimilarityThreshold are deliberately configuration, not constants.
type VerifyConfig struct {
	SearchURL           string        `mapstructure:"search_url" yaml:"search_url"`
	SearchAPIKey        string        `mapstructure:"search_api_key" yaml:"search_api_key"`
	SearchResults       int           `mapstructure:"search_results" yaml:"search_results"`
	SearchRatePerSecond float64       `mapstructure:"search_rate_per_second" yaml:"search_rate_per_second"`
	SearchBurst         int           `mapstructure:"search_burst" yaml:"search_burst"`
	TrustedDomains      []string      `mapstructure:"trusted_domains" yaml:"trusted_domains"`
	SimilarityThreshold float64       `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	MaxSources          int           `mapstructure:"max_sources" yaml:"max_sources"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// SentimentConfig controls polarity bucketing
type SentimentConfig struct {
	NeutralEpsilon float64 `mapstructure:"neutral_epsilon" yaml:"neutral_epsilon"`
}

// CacheConfig bounds the aggregated-result cache
type CacheConfig struct {
	Enabled  bool `mapstructure:"enabled" yaml:"enabled"`
	Capacity int  `mapstructure:"capacity" yaml:"capacity"`
}

// HistoryConfig locates the append-only analysis log
type HistoryConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// PipelineConfig bounds the per-request orchestration
type PipelineConfig struct {
	// EnrichTimeout caps the best-effort branches (sentiment, verification)
	// so one slow network call cannot stall the request.
	EnrichTimeout time.Duration `mapstructure:"enrich_timeout" yaml:"enrich_timeout"`
}

// LoggingConfig controls slog construction
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Default returns the baseline configuration. The trusted-domain list and
// thresholds mirror the deployed service's defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			RatePerMinute:  20,
			RateBurst:      5,
			AllowedOrigins: "http://localhost:3000",
		},
		HTTP: HTTPConfig{
			Timeout:       15 * time.Second,
			UserAgent:     "Veridict/0.1 (+https://github.com/veridict/veridict)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Primary: PrimaryConfig{
			Model:   "veridict-news-primary",
			Timeout: 10 * time.Second,
		},
		Verify: VerifyConfig{
			SearchResults:       10,
			SearchRatePerSecond: 1,
			SearchBurst:         3,
			SimilarityThreshold: 0.35,
			MaxSources:          3,
			CacheTTL:            30 * time.Minute,
			TrustedDomains: []string{
				"bbc.com", "reuters.com", "cnn.com", "nytimes.com", "washingtonpost.com",
				"theguardian.com", "apnews.com", "npr.org", "bloomberg.com", "wsj.com",
				"nbcnews.com", "abcnews.go.com", "cbsnews.com", "usatoday.com", "time.com",
				"forbes.com", "economist.com", "ft.com", "snopes.com", "politifact.com",
				"wikipedia.org", "britannica.com", "nationalgeographic.com", "history.com",
				"science.org", "nature.com", "nasa.gov", "who.int", "cdc.gov",
			},
		},
		Sentiment: SentimentConfig{
			NeutralEpsilon: 0.1,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 1024,
		},
		History: HistoryConfig{
			Path: "veridict.db",
		},
		Pipeline: PipelineConfig{
			EnrichTimeout: 8 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// FromViper overlays whatever viper has read (file, env, bound flags) onto
// the defaults.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with
func (c *Config) Validate() error {
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("cache.capacity must be positive, got %d", c.Cache.Capacity)
	}
	if c.Verify.SimilarityThreshold < 0 || c.Verify.SimilarityThreshold > 1 {
		return fmt.Errorf("verify.similarity_threshold must be in [0,1], got %v", c.Verify.SimilarityThreshold)
	}
	if c.Verify.MaxSources <= 0 {
		return fmt.Errorf("verify.max_sources must be positive, got %d", c.Verify.MaxSources)
	}
	if c.Sentiment.NeutralEpsilon < 0 || c.Sentiment.NeutralEpsilon >= 1 {
		return fmt.Errorf("sentiment.neutral_epsilon must be in [0,1), got %v", c.Sentiment.NeutralEpsilon)
	}
	if c.Pipeline.EnrichTimeout <= 0 {
		return fmt.Errorf("pipeline.enrich_timeout must be positive, got %v", c.Pipeline.EnrichTimeout)
	}
	return nil
}
