package types

import (
	"fmt"
	"math"
)

// weightSumEpsilon is the tolerance for the weights-sum-to-one invariant.
const weightSumEpsilon = 1e-3

// Weights maps each of the five dimensions to its aggregation weight.
// A Weights value is constructed once per scoring policy and treated as
// read-only for the duration of a run; concurrent runs may share it.
type Weights map[Dimension]float64

// NewWeights validates and returns a weight set. Construction fails when a
// dimension is missing, an unknown dimension is present, any weight is outside
// [0,1], or the weights do not sum to 1.0 within tolerance. These are caller
// configuration errors, so they surface synchronously here rather than at
// scoring time.
func NewWeights(w map[Dimension]float64) (Weights, error) {
	if len(w) != len(AllDimensions()) {
		return nil, fmt.Errorf("weights must cover exactly %d dimensions, got %d", len(AllDimensions()), len(w))
	}
	sum := 0.0
	for _, dim := range AllDimensions() {
		weight, ok := w[dim]
		if !ok {
			return nil, fmt.Errorf("missing weight for dimension %q", dim)
		}
		if weight < 0 || weight > 1 {
			return nil, fmt.Errorf("weight for %q must be in [0,1], got %v", dim, weight)
		}
		sum += weight
	}
	if math.Abs(sum-1.0) > weightSumEpsilon {
		return nil, fmt.Errorf("weights must sum to 1.0 (±%v), got %v", weightSumEpsilon, sum)
	}
	out := make(Weights, len(w))
	for dim, weight := range w {
		out[dim] = weight
	}
	return out, nil
}

// DefaultWeights returns the standard scoring policy.
func DefaultWeights() Weights {
	w, err := NewWeights(map[Dimension]float64{
		DimTechnicalSkills:     0.30,
		DimExperienceRelevance: 0.30,
		DimEducation:           0.15,
		DimCulturalFit:         0.15,
		DimGrowthPotential:     0.10,
	})
	if err != nil {
		panic(fmt.Sprintf("default weights invalid: %v", err))
	}
	return w
}

// Renormalize returns a new weight set covering only the given dimensions,
// rescaled so the remaining mass sums to 1.0. This is the explicit policy for
// unavailable dimensions: their weight is redistributed proportionally instead
// of dragging the overall score toward zero. Returns an error when the
// remaining mass is zero.
func (w Weights) Renormalize(available []Dimension) (Weights, error) {
	mass := 0.0
	for _, dim := range available {
		mass += w[dim]
	}
	if mass <= 0 {
		return nil, fmt.Errorf("no weight mass over available dimensions")
	}
	out := make(Weights, len(available))
	for _, dim := range available {
		out[dim] = w[dim] / mass
	}
	return out, nil
}
