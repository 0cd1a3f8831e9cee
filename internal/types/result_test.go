package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestMatchResult_ToMap_Scored(t *testing.T) {
	r := &MatchResult{
		RunID:          "run-1",
		CandidateID:    "cand-1",
		RequisitionID:  "req-1",
		Timestamp:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:         StatusScored,
		Similarity:     floatPtr(0.82),
		OverallScore:   floatPtr(76.5),
		Recommendation: GoodMatch,
		DimensionScores: []DimensionScore{
			{Dimension: DimTechnicalSkills, Score: floatPtr(0.8), Rationale: "solid overlap"},
			{Dimension: DimGrowthPotential, Rationale: "evaluation timed out", Gaps: []string{"unavailable"}},
		},
		BiasFlags: []BiasFlag{
			{Category: BiasAge, Excerpt: "graduated in 1985", Severity: SeverityMedium, Recommendation: "Redact graduation years before review"},
		},
	}

	m := r.ToMap()

	assert.Equal(t, "scored", m["status"])
	assert.Equal(t, 0.82, m["similarity"])
	assert.Equal(t, 76.5, m["overall_score"])
	assert.Equal(t, "Good Match", m["recommendation"])

	dims, ok := m["dimension_scores"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, dims, 2)
	assert.Equal(t, "Technical Skills", dims[0]["dimension"])
	assert.Equal(t, 0.8, dims[0]["score"])
	assert.Equal(t, true, dims[1]["unavailable"])

	flags, ok := m["bias_flags"].([]map[string]any)
	require.True(t, ok)
	assert.Equal(t, "age", flags[0]["category"])
}

func TestMatchResult_ToMap_FilteredOutOmitsScore(t *testing.T) {
	r := &MatchResult{
		RunID:          "run-2",
		CandidateID:    "cand-2",
		RequisitionID:  "req-1",
		Timestamp:      time.Now(),
		Status:         StatusFilteredOut,
		Similarity:     floatPtr(0.41),
		Recommendation: NotRecommended,
		FailureDetail:  "similarity 0.41 below threshold 0.70",
	}

	m := r.ToMap()

	assert.Equal(t, "filtered_out", m["status"])
	assert.NotContains(t, m, "overall_score")
	assert.NotContains(t, m, "confidence")
	assert.Contains(t, m["failure_detail"], "below threshold")
}

func TestMatchResult_Scored(t *testing.T) {
	scored := &MatchResult{Status: StatusScored, OverallScore: floatPtr(50)}
	failed := &MatchResult{Status: StatusEvaluationFailed}

	assert.True(t, scored.Scored())
	assert.False(t, failed.Scored())
}

func TestHighSeverityCount(t *testing.T) {
	flags := []BiasFlag{
		{Category: BiasAge, Severity: SeverityLow},
		{Category: BiasGender, Severity: SeverityHigh},
		{Category: BiasDisability, Severity: SeverityHigh},
	}

	assert.Equal(t, 2, HighSeverityCount(flags))
	assert.Equal(t, 0, HighSeverityCount(nil))
}

func TestStructuredCandidate_AllText(t *testing.T) {
	c := &StructuredCandidate{
		ID:      "cand-3",
		Summary: "Backend engineer focused on distributed systems.",
		Skills:  []string{"Go", "Kubernetes"},
		Experience: []Experience{
			{Company: "Acme", Title: "Engineer", Description: "Built services", Achievements: []string{"Cut latency 40%"}},
		},
		Education: []Education{
			{Degree: "BSc", FieldOfStudy: "CS", Institution: "State University"},
		},
		FreeText: "Marathon runner.",
	}

	text := c.AllText()

	assert.Contains(t, text, "distributed systems")
	assert.Contains(t, text, "Go, Kubernetes")
	assert.Contains(t, text, "Cut latency 40%")
	assert.Contains(t, text, "State University")
	assert.Contains(t, text, "Marathon runner.")
}
