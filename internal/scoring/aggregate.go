// Package scoring turns per-dimension evaluations into an overall match
// verdict: a renormalized weighted score on the 0-100 scale, a recommendation
// band, a confidence estimate, and the strengths/weaknesses digest.
package scoring

import (
	"fmt"
	"sort"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Band maps a half-open score interval [Min, Max) to a recommendation.
// The top band is closed at 100.
type Band struct {
	Min            float64              `json:"min"`
	Max            float64              `json:"max"`
	Recommendation types.Recommendation `json:"recommendation"`
}

// Bands is an ordered set of recommendation bands covering [0,100].
type Bands []Band

// DefaultBands returns the standard recommendation bands.
func DefaultBands() Bands {
	b, err := NewBands([]Band{
		{Min: 0, Max: 40, Recommendation: types.NotRecommended},
		{Min: 40, Max: 60, Recommendation: types.WeakMatch},
		{Min: 60, Max: 80, Recommendation: types.GoodMatch},
		{Min: 80, Max: 100, Recommendation: types.StrongMatch},
	})
	if err != nil {
		panic(fmt.Sprintf("default bands invalid: %v", err))
	}
	return b
}

// NewBands validates a band set: non-empty, contiguous, starting at 0 and
// ending at 100, so every possible score maps to exactly one recommendation.
func NewBands(bands []Band) (Bands, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("at least one band is required")
	}
	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })

	if sorted[0].Min != 0 {
		return nil, fmt.Errorf("bands must start at 0, got %v", sorted[0].Min)
	}
	for i, b := range sorted {
		if b.Max <= b.Min {
			return nil, fmt.Errorf("band %q has empty range [%v,%v)", b.Recommendation, b.Min, b.Max)
		}
		if b.Recommendation == "" {
			return nil, fmt.Errorf("band [%v,%v) has no recommendation", b.Min, b.Max)
		}
		if i > 0 && b.Min != sorted[i-1].Max {
			return nil, fmt.Errorf("gap between bands at %v", sorted[i-1].Max)
		}
	}
	if last := sorted[len(sorted)-1]; last.Max != 100 {
		return nil, fmt.Errorf("bands must end at 100, got %v", last.Max)
	}
	return Bands(sorted), nil
}

// Recommend maps a 0-100 score to its band's recommendation. Scores are
// compared half-open on the lower edge, so 40 is a Weak Match and 80 a
// Strong Match; 100 falls into the top band.
func (b Bands) Recommend(score float64) types.Recommendation {
	for i, band := range b {
		if score >= band.Min && (score < band.Max || i == len(b)-1) {
			return band.Recommendation
		}
	}
	// Out-of-range scores clamp to the nearest band.
	if score < b[0].Min {
		return b[0].Recommendation
	}
	return b[len(b)-1].Recommendation
}

// Aggregate computes the overall 0-100 score as the weighted mean of the
// available dimension scores, with the weights renormalized over exactly
// those dimensions. Unavailable dimensions contribute nothing; they neither
// drag the score down nor inflate it.
//
// Returns an error when no dimension is available or when the available
// dimensions carry zero weight mass, since no meaningful score exists then.
func Aggregate(scores []types.DimensionScore, weights types.Weights) (float64, error) {
	available := make([]types.Dimension, 0, len(scores))
	for i := range scores {
		if scores[i].Available() {
			available = append(available, scores[i].Dimension)
		}
	}
	if len(available) == 0 {
		return 0, fmt.Errorf("no dimension produced a usable score")
	}

	renorm, err := weights.Renormalize(available)
	if err != nil {
		return 0, fmt.Errorf("failed to renormalize weights: %w", err)
	}

	total := 0.0
	for i := range scores {
		if !scores[i].Available() {
			continue
		}
		total += *scores[i].Score * renorm[scores[i].Dimension]
	}
	return clamp(total*100, 0, 100), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
