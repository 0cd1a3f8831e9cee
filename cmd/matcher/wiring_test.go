package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-matcher/internal/config"
	"github.com/jonathan/candidate-matcher/internal/pipeline"
	"github.com/jonathan/candidate-matcher/internal/prefilter"
	"github.com/jonathan/candidate-matcher/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCandidate(t *testing.T) {
	path := writeFile(t, "cand.json", `{"id": "cand-1", "summary": "Go engineer", "skills": ["Go"]}`)

	cand, err := loadCandidate(path)
	require.NoError(t, err)
	assert.Equal(t, "cand-1", cand.ID)
	assert.Equal(t, []string{"Go"}, cand.Skills)
}

func TestLoadCandidateMissingID(t *testing.T) {
	path := writeFile(t, "cand.json", `{"summary": "anonymous"}`)
	_, err := loadCandidate(path)
	assert.Error(t, err)
}

func TestLoadCandidateBadJSON(t *testing.T) {
	path := writeFile(t, "cand.json", `{`)
	_, err := loadCandidate(path)
	assert.Error(t, err)
}

func TestLoadCandidates(t *testing.T) {
	path := writeFile(t, "cands.json", `[{"id": "a"}, {"id": "b"}]`)

	cands, err := loadCandidates(path)
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Equal(t, "a", cands[0].ID)
}

func TestLoadCandidatesMissingID(t *testing.T) {
	path := writeFile(t, "cands.json", `[{"id": "a"}, {"summary": "no id"}]`)
	_, err := loadCandidates(path)
	assert.Error(t, err)
}

func TestLoadRequisition(t *testing.T) {
	path := writeFile(t, "req.json", `{"id": "req-1", "title": "Backend Engineer", "required_skills": ["Go"]}`)

	req, err := loadRequisition(path)
	require.NoError(t, err)
	assert.Equal(t, "req-1", req.ID)
	assert.Equal(t, "Backend Engineer", req.Title)
}

func TestWriteOutputToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeOutput(path, map[string]string{"status": "scored"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status": "scored"`)
}

func TestConfigDefaultsFillGaps(t *testing.T) {
	var empty config.Config
	merged := empty.MergeWithDefaults(configDefaults())

	assert.Equal(t, "gemini", merged.Provider)
	assert.InDelta(t, prefilter.DefaultThreshold, merged.SimilarityThreshold, 1e-9)
	assert.Equal(t, pipeline.DefaultBatchConcurrency, merged.Concurrency)
	require.NoError(t, merged.Validate())
}

func TestConfigDefaultsDoNotOverrideSetValues(t *testing.T) {
	cfg := config.Config{Provider: "openai", SimilarityThreshold: 0.5, Concurrency: 8}
	merged := cfg.MergeWithDefaults(configDefaults())

	assert.Equal(t, "openai", merged.Provider)
	assert.InDelta(t, 0.5, merged.SimilarityThreshold, 1e-9)
	assert.Equal(t, 8, merged.Concurrency)
}

func TestParseMinRecommendation(t *testing.T) {
	rec, err := parseMinRecommendation("Good Match")
	require.NoError(t, err)
	assert.Equal(t, types.GoodMatch, rec)

	rec, err = parseMinRecommendation("")
	require.NoError(t, err)
	assert.Empty(t, rec)

	_, err = parseMinRecommendation("Amazing Match")
	assert.Error(t, err)
}
