package types

import "time"

// MatchStatus describes the terminal state of a scoring run.
type MatchStatus string

// Terminal states. Expected failures fold into the status rather than
// propagating as errors.
const (
	// StatusFilteredOut means the pre-filter rejected the pair before evaluation.
	StatusFilteredOut MatchStatus = "filtered_out"
	// StatusScored means at least one dimension produced a usable score.
	StatusScored MatchStatus = "scored"
	// StatusEvaluationFailed means every dimension was unavailable.
	StatusEvaluationFailed MatchStatus = "evaluation_failed"
)

// Recommendation is the categorical hiring recommendation derived from the
// overall score.
type Recommendation string

// Recommendation categories, ordered weakest to strongest.
const (
	NotRecommended Recommendation = "Not Recommended"
	WeakMatch      Recommendation = "Weak Match"
	GoodMatch      Recommendation = "Good Match"
	StrongMatch    Recommendation = "Strong Match"
)

// MatchResult is the terminal artifact of one (candidate, requisition) scoring
// run. It is created once by the orchestrator and never mutated after return.
type MatchResult struct {
	RunID         string    `json:"run_id"`
	CandidateID   string    `json:"candidate_id"`
	RequisitionID string    `json:"requisition_id"`
	Timestamp     time.Time `json:"timestamp"`

	Status MatchStatus `json:"status"`

	// Similarity is the pre-filter cosine similarity. Nil when the embedding
	// capability was unavailable and the filter failed open.
	Similarity *float64 `json:"similarity,omitempty"`

	// OverallScore is on the 0-100 scale and present only when Status is scored.
	OverallScore   *float64       `json:"overall_score,omitempty"`
	Recommendation Recommendation `json:"recommendation"`

	// Confidence blends dimension-score consistency with pre-filter agreement.
	// Present only when scored and similarity is known.
	Confidence *float64 `json:"confidence,omitempty"`

	DimensionScores []DimensionScore `json:"dimension_scores,omitempty"`
	BiasFlags       []BiasFlag       `json:"bias_flags,omitempty"`

	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`

	// SectionSimilarities carries optional pre-filter diagnostics. They never
	// affect filtering or scoring.
	SectionSimilarities map[string]float64 `json:"section_similarities,omitempty"`

	ProcessingTime time.Duration `json:"processing_time_ns"`

	// FailureDetail explains filtered_out / evaluation_failed outcomes so a
	// reviewer can understand the result without reading logs.
	FailureDetail string `json:"failure_detail,omitempty"`
}

// Scored reports whether the run produced an overall score.
func (r *MatchResult) Scored() bool {
	return r.Status == StatusScored && r.OverallScore != nil
}

// ToMap flattens the result into a plain key/value structure for downstream
// reporting collaborators, mirroring the JSON shape without pointer types.
func (r *MatchResult) ToMap() map[string]any {
	out := map[string]any{
		"run_id":             r.RunID,
		"candidate_id":       r.CandidateID,
		"requisition_id":     r.RequisitionID,
		"timestamp":          r.Timestamp.Format(time.RFC3339),
		"status":             string(r.Status),
		"recommendation":     string(r.Recommendation),
		"processing_time_ms": float64(r.ProcessingTime.Microseconds()) / 1000.0,
	}
	if r.Similarity != nil {
		out["similarity"] = *r.Similarity
	}
	if r.OverallScore != nil {
		out["overall_score"] = *r.OverallScore
	}
	if r.Confidence != nil {
		out["confidence"] = *r.Confidence
	}
	if r.FailureDetail != "" {
		out["failure_detail"] = r.FailureDetail
	}
	if len(r.DimensionScores) > 0 {
		dims := make([]map[string]any, 0, len(r.DimensionScores))
		for _, ds := range r.DimensionScores {
			d := map[string]any{
				"dimension": ds.Dimension.DisplayName(),
				"rationale": ds.Rationale,
				"evidence":  ds.Evidence,
				"gaps":      ds.Gaps,
			}
			if ds.Score != nil {
				d["score"] = *ds.Score
			} else {
				d["unavailable"] = true
			}
			dims = append(dims, d)
		}
		out["dimension_scores"] = dims
	}
	if len(r.BiasFlags) > 0 {
		flags := make([]map[string]any, 0, len(r.BiasFlags))
		for _, f := range r.BiasFlags {
			flags = append(flags, map[string]any{
				"category":       string(f.Category),
				"excerpt":        f.Excerpt,
				"severity":       string(f.Severity),
				"recommendation": f.Recommendation,
			})
		}
		out["bias_flags"] = flags
	}
	if len(r.Strengths) > 0 {
		out["strengths"] = r.Strengths
	}
	if len(r.Weaknesses) > 0 {
		out["weaknesses"] = r.Weaknesses
	}
	if len(r.SectionSimilarities) > 0 {
		out["section_similarities"] = r.SectionSimilarities
	}
	return out
}
