package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `{
		"provider": "openai",
		"model": "gpt-4o-mini",
		"similarity_threshold": 0.75,
		"call_timeout_seconds": 30,
		"concurrency": 8
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.InDelta(t, 0.75, cfg.SimilarityThreshold, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.CallTimeout())
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, `{"provider": "bedrock"}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsOutOfRangeThreshold(t *testing.T) {
	path := writeConfig(t, `{"similarity_threshold": 1.5}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadWeights(t *testing.T) {
	path := writeConfig(t, `{"weights": {"technical_skills": 0.9}}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadBands(t *testing.T) {
	path := writeConfig(t, `{"bands": [{"min": 0, "max": 50, "recommendation": "Weak Match"}]}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestScoringWeightsDefaults(t *testing.T) {
	cfg := &Config{}
	w, err := cfg.ScoringWeights()
	require.NoError(t, err)
	assert.InDelta(t, 0.30, w[types.DimTechnicalSkills], 1e-9)
}

func TestScoringWeightsCustom(t *testing.T) {
	cfg := &Config{Weights: map[string]float64{
		"technical_skills":         0.4,
		"experience_relevance":     0.3,
		"education_certifications": 0.1,
		"cultural_fit":             0.1,
		"growth_potential":         0.1,
	}}
	w, err := cfg.ScoringWeights()
	require.NoError(t, err)
	assert.InDelta(t, 0.4, w[types.DimTechnicalSkills], 1e-9)
}

func TestScoringBandsCustom(t *testing.T) {
	cfg := &Config{Bands: []BandConfig{
		{Min: 0, Max: 50, Recommendation: "Not Recommended"},
		{Min: 50, Max: 100, Recommendation: "Strong Match"},
	}}
	bands, err := cfg.ScoringBands()
	require.NoError(t, err)
	assert.Equal(t, types.NotRecommended, bands.Recommend(49))
	assert.Equal(t, types.StrongMatch, bands.Recommend(50))
}

func TestLLMConfig(t *testing.T) {
	cfg := &Config{Provider: "anthropic", Model: "claude-sonnet-4-20250514"}
	lc := cfg.LLMConfig()
	assert.Equal(t, llm.ProviderAnthropic, lc.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", lc.Model)
	// Unset fields keep provider defaults.
	assert.NotEmpty(t, lc.EmbeddingModel)
}

func TestResolveAPIKey(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		cfg := &Config{APIKey: "from-config"}
		assert.Equal(t, "from-config", cfg.ResolveAPIKey())
	})

	t.Run("openai env", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		cfg := &Config{Provider: "openai"}
		assert.Equal(t, "sk-test", cfg.ResolveAPIKey())
	})

	t.Run("gemini env fallback", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GOOGLE_API_KEY", "g-test")
		cfg := &Config{}
		assert.Equal(t, "g-test", cfg.ResolveAPIKey())
	})
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Provider: "openai"}
	defaults := Config{
		Provider:            "gemini",
		Model:               "gemini-2.5-flash",
		SimilarityThreshold: 0.7,
		Concurrency:         4,
	}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, "openai", merged.Provider)
	assert.Equal(t, "gemini-2.5-flash", merged.Model)
	assert.InDelta(t, 0.7, merged.SimilarityThreshold, 1e-9)
	assert.Equal(t, 4, merged.Concurrency)
}
