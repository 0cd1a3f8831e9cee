package types

// Dimension identifies one of the five fixed evaluation axes.
type Dimension string

// The five evaluation dimensions. The set is fixed; weights over it are configuration.
const (
	DimTechnicalSkills     Dimension = "technical_skills"
	DimExperienceRelevance Dimension = "experience_relevance"
	DimEducation           Dimension = "education_certifications"
	DimCulturalFit         Dimension = "cultural_fit"
	DimGrowthPotential     Dimension = "growth_potential"
)

// AllDimensions returns the dimensions in their canonical display order.
func AllDimensions() []Dimension {
	return []Dimension{
		DimTechnicalSkills,
		DimExperienceRelevance,
		DimEducation,
		DimCulturalFit,
		DimGrowthPotential,
	}
}

// DisplayName returns the human-readable dimension name used in reports.
func (d Dimension) DisplayName() string {
	switch d {
	case DimTechnicalSkills:
		return "Technical Skills"
	case DimExperienceRelevance:
		return "Experience Relevance"
	case DimEducation:
		return "Education & Certifications"
	case DimCulturalFit:
		return "Cultural Fit"
	case DimGrowthPotential:
		return "Growth Potential"
	default:
		return string(d)
	}
}

// DimensionScore holds the outcome of evaluating a single dimension.
// Score is in [0,1]; a nil Score means the dimension was unavailable
// (capability unreachable, timed out, or returned an unparseable response
// after the corrective retry). DimensionScores are never mutated once created.
type DimensionScore struct {
	Dimension Dimension `json:"dimension"`
	Score     *float64  `json:"score,omitempty"`
	Rationale string    `json:"rationale"`
	Evidence  []string  `json:"evidence,omitempty"`
	Gaps      []string  `json:"gaps,omitempty"`
}

// Available reports whether the dimension produced a usable numeric score.
func (ds DimensionScore) Available() bool {
	return ds.Score != nil
}
