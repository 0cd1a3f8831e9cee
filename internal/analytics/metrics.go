// Package analytics summarizes batches of match results for reporting:
// score distribution, recommendation breakdown, bias-flag totals, and a
// coarse fairness signal.
package analytics

import (
	"sort"
	"time"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Discrimination risk levels derived from the volume of bias flags in a batch.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// flag-count thresholds for the risk levels
const highRiskFlagCount = 5

// BatchStats is the aggregate view of one batch of results.
type BatchStats struct {
	Total            int `json:"total"`
	Scored           int `json:"scored"`
	FilteredOut      int `json:"filtered_out"`
	EvaluationFailed int `json:"evaluation_failed"`

	// Score statistics cover scored results only.
	MeanScore   float64 `json:"mean_score"`
	MedianScore float64 `json:"median_score"`
	MinScore    float64 `json:"min_score"`
	MaxScore    float64 `json:"max_score"`

	Recommendations map[types.Recommendation]int `json:"recommendations"`

	BiasFlagTotal      int                        `json:"bias_flag_total"`
	BiasFlagsByCat     map[types.BiasCategory]int `json:"bias_flags_by_category"`
	HighSeverityFlags  int                        `json:"high_severity_flags"`
	DiscriminationRisk string                     `json:"discrimination_risk"`

	TotalProcessing time.Duration `json:"total_processing_ns"`
	MeanProcessing  time.Duration `json:"mean_processing_ns"`
}

// Summarize computes batch statistics. An empty batch yields a zero-value
// summary with risk low.
func Summarize(results []*types.MatchResult) BatchStats {
	stats := BatchStats{
		Recommendations:    make(map[types.Recommendation]int),
		BiasFlagsByCat:     make(map[types.BiasCategory]int),
		DiscriminationRisk: RiskLow,
	}

	var scores []float64
	for _, r := range results {
		if r == nil {
			continue
		}
		stats.Total++
		stats.TotalProcessing += r.ProcessingTime

		switch r.Status {
		case types.StatusScored:
			stats.Scored++
		case types.StatusFilteredOut:
			stats.FilteredOut++
		case types.StatusEvaluationFailed:
			stats.EvaluationFailed++
		}

		if r.Scored() {
			scores = append(scores, *r.OverallScore)
			stats.Recommendations[r.Recommendation]++
		}

		for _, f := range r.BiasFlags {
			stats.BiasFlagTotal++
			stats.BiasFlagsByCat[f.Category]++
		}
		stats.HighSeverityFlags += types.HighSeverityCount(r.BiasFlags)
	}

	if len(scores) > 0 {
		sort.Float64s(scores)
		stats.MinScore = scores[0]
		stats.MaxScore = scores[len(scores)-1]
		stats.MedianScore = median(scores)
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		stats.MeanScore = sum / float64(len(scores))
	}
	if stats.Total > 0 {
		stats.MeanProcessing = stats.TotalProcessing / time.Duration(stats.Total)
	}

	switch {
	case stats.BiasFlagTotal >= highRiskFlagCount:
		stats.DiscriminationRisk = RiskHigh
	case stats.BiasFlagTotal > 0:
		stats.DiscriminationRisk = RiskMedium
	}
	return stats
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
