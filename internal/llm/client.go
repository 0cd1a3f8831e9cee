// Package llm provides the capability interfaces the matcher core depends on
// (natural-language evaluation and text embedding) together with the concrete
// provider clients. The core never branches on vendor identity; it sees only
// these interfaces, and the factory selects an implementation from config.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider represents an LLM provider.
type Provider string

// Supported providers.
const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Client is the evaluation capability: prompt in, text out.
type Client interface {
	// Generate produces free-form text for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateJSON produces a JSON document for the prompt. Providers that
	// support a native JSON response mode use it; the result may still need
	// cleanup (see CleanJSONBlock / RepairJSON).
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Embedder is the embedding capability: text in, fixed-length vector out.
// Dimensionality must be consistent across calls within one run; the caller
// does not otherwise depend on it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config selects and parameterizes a provider.
type Config struct {
	Provider       Provider `json:"provider"`
	Model          string   `json:"model"`
	EmbeddingModel string   `json:"embedding_model"`
	BaseURL        string   `json:"base_url,omitempty"` // OpenAI-compatible endpoints only
}

// DefaultConfig returns the default provider configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGemini,
		Model:          "gemini-2.5-flash",
		EmbeddingModel: "text-embedding-004",
	}
}

// NewClient builds the evaluation and embedding capabilities for the
// configured provider. Anthropic has no embedding endpoint, so its embedder is
// nil; callers treat a nil embedder as an unavailable capability (the
// pre-filter fails open).
func NewClient(ctx context.Context, cfg *Config, apiKey string) (Client, Embedder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if apiKey == "" {
		return nil, nil, fmt.Errorf("API key is required")
	}

	switch Provider(strings.ToLower(string(cfg.Provider))) {
	case ProviderGemini, "":
		c, err := NewGeminiClient(ctx, cfg, apiKey)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	case ProviderOpenAI:
		c := NewOpenAIClient(cfg, apiKey)
		return c, c, nil
	case ProviderAnthropic:
		return NewClaudeClient(cfg, apiKey), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
