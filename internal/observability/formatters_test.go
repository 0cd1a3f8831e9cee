package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/candidate-matcher/internal/analytics"
	"github.com/jonathan/candidate-matcher/internal/types"
)

func ptr(v float64) *float64 { return &v }

func TestPrintMatchResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.MatchResult{
		CandidateID:    "cand-1",
		Status:         types.StatusScored,
		Similarity:     ptr(0.88),
		OverallScore:   ptr(76.5),
		Recommendation: types.GoodMatch,
		Confidence:     ptr(0.81),
		DimensionScores: []types.DimensionScore{
			{Dimension: types.DimTechnicalSkills, Score: ptr(0.9)},
			{Dimension: types.DimGrowthPotential},
		},
		Strengths:  []string{"Go microservices at scale"},
		Weaknesses: []string{"no formal certifications"},
	}

	p.PrintMatchResult(result)
	output := buf.String()

	assert.Contains(t, output, "MATCH RESULT")
	assert.Contains(t, output, "cand-1")
	assert.Contains(t, output, "76.5")
	assert.Contains(t, output, "Good Match")
	assert.Contains(t, output, "Technical Skills")
	assert.Contains(t, output, "n/a")
	assert.Contains(t, output, "Go microservices at scale")
	assert.Contains(t, output, "no formal certifications")
}

func TestPrintMatchResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintMatchResult_FilteredOut(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.MatchResult{
		CandidateID:   "cand-2",
		Status:        types.StatusFilteredOut,
		Similarity:    ptr(0.4),
		FailureDetail: "similarity 0.400 below threshold 0.700",
	}

	p.PrintMatchResult(result)
	output := buf.String()

	assert.Contains(t, output, "filtered_out")
	assert.Contains(t, output, "below threshold")
}

func TestPrintBiasFlags(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	flags := []types.BiasFlag{
		{Category: types.BiasAge, Excerpt: "graduated in 1985", Severity: types.SeverityHigh},
	}
	p.PrintBiasFlags(flags)
	output := buf.String()

	assert.Contains(t, output, "BIAS REVIEW FLAGS")
	assert.Contains(t, output, "age")
	assert.Contains(t, output, "graduated in 1985")
	assert.Contains(t, output, "not used in scoring")
}

func TestPrintBiasFlags_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBiasFlags(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	stats := analytics.BatchStats{
		Total:              4,
		Scored:             3,
		FilteredOut:        1,
		MeanScore:          68.3,
		MedianScore:        70.0,
		MinScore:           45.0,
		MaxScore:           90.0,
		Recommendations:    map[types.Recommendation]int{types.StrongMatch: 1, types.GoodMatch: 2},
		BiasFlagTotal:      2,
		HighSeverityFlags:  1,
		DiscriminationRisk: analytics.RiskMedium,
		TotalProcessing:    2 * time.Second,
		MeanProcessing:     500 * time.Millisecond,
	}

	p.PrintBatchSummary(stats)
	output := buf.String()

	assert.Contains(t, output, "BATCH SUMMARY")
	assert.Contains(t, output, "3 scored")
	assert.Contains(t, output, "Strong Match")
	assert.Contains(t, output, "medium")
}
