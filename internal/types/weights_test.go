package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeights_Valid(t *testing.T) {
	w, err := NewWeights(map[Dimension]float64{
		DimTechnicalSkills:     0.30,
		DimExperienceRelevance: 0.30,
		DimEducation:           0.15,
		DimCulturalFit:         0.15,
		DimGrowthPotential:     0.10,
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.30, w[DimTechnicalSkills], 1e-9)
	assert.InDelta(t, 0.10, w[DimGrowthPotential], 1e-9)
}

func TestNewWeights_WithinEpsilon(t *testing.T) {
	// Sum is 1.0005, inside the 1e-3 tolerance
	_, err := NewWeights(map[Dimension]float64{
		DimTechnicalSkills:     0.3005,
		DimExperienceRelevance: 0.30,
		DimEducation:           0.15,
		DimCulturalFit:         0.15,
		DimGrowthPotential:     0.10,
	})

	assert.NoError(t, err)
}

func TestNewWeights_SumTooFarFromOne(t *testing.T) {
	_, err := NewWeights(map[Dimension]float64{
		DimTechnicalSkills:     0.40,
		DimExperienceRelevance: 0.30,
		DimEducation:           0.15,
		DimCulturalFit:         0.15,
		DimGrowthPotential:     0.10,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestNewWeights_MissingDimension(t *testing.T) {
	_, err := NewWeights(map[Dimension]float64{
		DimTechnicalSkills:     0.50,
		DimExperienceRelevance: 0.50,
	})

	assert.Error(t, err)
}

func TestNewWeights_NegativeWeight(t *testing.T) {
	_, err := NewWeights(map[Dimension]float64{
		DimTechnicalSkills:     -0.10,
		DimExperienceRelevance: 0.50,
		DimEducation:           0.30,
		DimCulturalFit:         0.20,
		DimGrowthPotential:     0.10,
	})

	assert.Error(t, err)
}

func TestNewWeights_CopiesInput(t *testing.T) {
	in := map[Dimension]float64{
		DimTechnicalSkills:     0.30,
		DimExperienceRelevance: 0.30,
		DimEducation:           0.15,
		DimCulturalFit:         0.15,
		DimGrowthPotential:     0.10,
	}
	w, err := NewWeights(in)
	require.NoError(t, err)

	// Mutating the caller's map must not affect the constructed weights.
	in[DimTechnicalSkills] = 0.99
	assert.InDelta(t, 0.30, w[DimTechnicalSkills], 1e-9)
}

func TestDefaultWeights_Valid(t *testing.T) {
	w := DefaultWeights()

	sum := 0.0
	for _, dim := range AllDimensions() {
		sum += w[dim]
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestRenormalize_SingleDimensionDropped(t *testing.T) {
	w := DefaultWeights()

	available := []Dimension{
		DimTechnicalSkills,
		DimExperienceRelevance,
		DimEducation,
		DimCulturalFit,
	}
	rw, err := w.Renormalize(available)
	require.NoError(t, err)

	// Remaining mass is 0.9; each weight scales by 1/0.9.
	assert.InDelta(t, 0.30/0.9, rw[DimTechnicalSkills], 1e-9)
	assert.InDelta(t, 0.15/0.9, rw[DimCulturalFit], 1e-9)

	sum := 0.0
	for _, dim := range available {
		sum += rw[dim]
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestRenormalize_NoMass(t *testing.T) {
	w := DefaultWeights()

	_, err := w.Renormalize(nil)
	assert.Error(t, err)
}
