// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/scoring"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags.
type Config struct {
	// Provider
	Provider       string `json:"provider,omitempty" validate:"omitempty,oneof=gemini openai anthropic"`
	Model          string `json:"model,omitempty"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
	APIKey         string `json:"api_key,omitempty"`
	BaseURL        string `json:"base_url,omitempty" validate:"omitempty,url"`

	// Pre-filter
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty" validate:"gte=0,lte=1"`

	// Scoring
	Weights map[string]float64 `json:"weights,omitempty"`
	Bands   []BandConfig       `json:"bands,omitempty"`
	// StrictDimensions refuses to score when any dimension is unavailable,
	// instead of renormalizing the remaining weights.
	StrictDimensions bool `json:"strict_dimensions,omitempty"`

	// Bias detection
	BiasPatternsFile string `json:"bias_patterns_file,omitempty"`

	// Capability behavior
	CallTimeoutSeconds int  `json:"call_timeout_seconds,omitempty" validate:"gte=0"`
	RetryAttempts      int  `json:"retry_attempts,omitempty" validate:"gte=0,lte=10"`
	BreakerEnabled     bool `json:"breaker_enabled,omitempty"`

	// Batch
	Concurrency int `json:"concurrency,omitempty" validate:"gte=0,lte=64"`

	// Output
	Verbose bool   `json:"verbose,omitempty"`
	Output  string `json:"output,omitempty"`
}

// BandConfig is the JSON shape of one recommendation band.
type BandConfig struct {
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Recommendation string  `json:"recommendation"`
}

var validate = validator.New()

// Load loads configuration from a JSON file. Returns an error if the file
// cannot be read or parsed, or if a field fails validation.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field-level constraints plus the cross-field rules the
// struct tags cannot express (weight sums, band coverage).
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if len(c.Weights) > 0 {
		if _, err := c.ScoringWeights(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if len(c.Bands) > 0 {
		if _, err := c.ScoringBands(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.BiasPatternsFile != "" {
		if _, err := os.Stat(c.BiasPatternsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: bias patterns file not found: %s", c.BiasPatternsFile)
		}
	}
	return nil
}

// ScoringWeights converts the configured weight map into a validated weight
// set, or the default policy when none is configured.
func (c *Config) ScoringWeights() (types.Weights, error) {
	if len(c.Weights) == 0 {
		return types.DefaultWeights(), nil
	}
	raw := make(map[types.Dimension]float64, len(c.Weights))
	for k, v := range c.Weights {
		raw[types.Dimension(k)] = v
	}
	return types.NewWeights(raw)
}

// ScoringBands converts the configured bands into a validated band set, or
// the default bands when none is configured.
func (c *Config) ScoringBands() (scoring.Bands, error) {
	if len(c.Bands) == 0 {
		return scoring.DefaultBands(), nil
	}
	bands := make([]scoring.Band, 0, len(c.Bands))
	for _, b := range c.Bands {
		bands = append(bands, scoring.Band{
			Min:            b.Min,
			Max:            b.Max,
			Recommendation: types.Recommendation(b.Recommendation),
		})
	}
	return scoring.NewBands(bands)
}

// LLMConfig builds the provider configuration from this config.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Provider != "" {
		cfg.Provider = llm.Provider(c.Provider)
	}
	if c.Model != "" {
		cfg.Model = c.Model
	}
	if c.EmbeddingModel != "" {
		cfg.EmbeddingModel = c.EmbeddingModel
	}
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	return cfg
}

// CallTimeout returns the per-dimension call timeout, zero when unset so the
// evaluator default applies.
func (c *Config) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSeconds) * time.Second
}

// ResolveAPIKey returns the configured API key, falling back to the
// provider's conventional environment variable.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch llm.Provider(c.Provider) {
	case llm.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case llm.ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("GOOGLE_API_KEY")
	}
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. This applies config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.BiasPatternsFile == "" {
		result.BiasPatternsFile = defaults.BiasPatternsFile
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}

	if result.SimilarityThreshold == 0 {
		result.SimilarityThreshold = defaults.SimilarityThreshold
	}
	if result.CallTimeoutSeconds == 0 {
		result.CallTimeoutSeconds = defaults.CallTimeoutSeconds
	}
	if result.RetryAttempts == 0 {
		result.RetryAttempts = defaults.RetryAttempts
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	if len(result.Weights) == 0 {
		result.Weights = defaults.Weights
	}
	if len(result.Bands) == 0 {
		result.Bands = defaults.Bands
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
