package scoring

import "github.com/jonathan/candidate-matcher/internal/types"

// Thresholds on the [0,1] dimension scale for the strengths/weaknesses digest.
const (
	strengthThreshold = 0.75
	weaknessThreshold = 0.60

	itemsPerDimension = 2
	maxDigestItems    = 5
)

// Strengths collects standout evidence: for each dimension scoring at or
// above the strength threshold, up to two evidence items, capped at five
// overall. Dimensions are walked in the order given, so callers passing
// canonical order get a deterministic digest.
func Strengths(scores []types.DimensionScore) []string {
	var out []string
	for i := range scores {
		ds := &scores[i]
		if !ds.Available() || *ds.Score < strengthThreshold {
			continue
		}
		for j, ev := range ds.Evidence {
			if j >= itemsPerDimension || len(out) >= maxDigestItems {
				break
			}
			out = append(out, ev)
		}
		if len(out) >= maxDigestItems {
			break
		}
	}
	return out
}

// Weaknesses collects the gaps reported by weak dimensions: for each
// dimension scoring below the weakness threshold, up to two gap items,
// capped at five overall. Unavailable dimensions are skipped; absence of a
// score is not evidence of a weakness.
func Weaknesses(scores []types.DimensionScore) []string {
	var out []string
	for i := range scores {
		ds := &scores[i]
		if !ds.Available() || *ds.Score >= weaknessThreshold {
			continue
		}
		for j, gap := range ds.Gaps {
			if j >= itemsPerDimension || len(out) >= maxDigestItems {
				break
			}
			out = append(out, gap)
		}
		if len(out) >= maxDigestItems {
			break
		}
	}
	return out
}
