package types

// BiasCategory enumerates the protected-attribute signal categories the
// detector can flag.
type BiasCategory string

// Supported bias categories.
const (
	BiasAge           BiasCategory = "age"
	BiasGender        BiasCategory = "gender"
	BiasEthnicity     BiasCategory = "ethnicity_origin"
	BiasDisability    BiasCategory = "disability"
	BiasSocioeconomic BiasCategory = "socioeconomic"
	BiasAppearance    BiasCategory = "appearance"
)

// Severity grades how strongly a flagged signal correlates with a protected
// attribute. It comes from the category's configured base severity, not from
// how often the pattern matched.
type Severity string

// Severity levels.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// BiasFlag is an advisory signal raised for human review. Flags never
// influence the overall score or recommendation; they are embedded in the
// MatchResult by value and carry no other relationship to scoring.
type BiasFlag struct {
	Category       BiasCategory `json:"category"`
	Excerpt        string       `json:"excerpt"`
	Severity       Severity     `json:"severity"`
	Recommendation string       `json:"recommendation"`
}

// HighSeverityCount counts flags at high severity. Advisory-only today; kept
// as the hook product would use if flag-based gating is ever approved.
func HighSeverityCount(flags []BiasFlag) int {
	n := 0
	for _, f := range flags {
		if f.Severity == SeverityHigh {
			n++
		}
	}
	return n
}
