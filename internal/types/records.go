// Package types provides type definitions for structured data used throughout the candidate-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// StructuredCandidate represents a candidate record with normalized fields.
// Records are produced externally (parsing is out of scope) and are treated as
// read-only by every component in the pipeline.
type StructuredCandidate struct {
	ID         string       `json:"id" validate:"required"`
	Summary    string       `json:"summary,omitempty"`
	Skills     []string     `json:"skills,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	// Certifications and Languages are optional enrichments some providers emit.
	Certifications []Certification `json:"certifications,omitempty"`
	Languages      []string        `json:"languages,omitempty"`
	// FreeText holds any unstructured sections the provider could not classify.
	FreeText string `json:"free_text,omitempty"`
}

// Experience represents a single work history entry.
type Experience struct {
	Company      string   `json:"company"`
	Title        string   `json:"title"`
	StartDate    string   `json:"start_date,omitempty"` // YYYY-MM
	EndDate      string   `json:"end_date,omitempty"`   // empty means current
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Education represents a single education entry.
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	FieldOfStudy   string `json:"field_of_study,omitempty"`
	GraduationYear int    `json:"graduation_year,omitempty"`
}

// Certification represents a professional certification.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
}

// StructuredRequisition represents a job requisition record with normalized fields.
type StructuredRequisition struct {
	ID                    string   `json:"id" validate:"required"`
	Title                 string   `json:"title"`
	Company               string   `json:"company,omitempty"`
	Summary               string   `json:"summary,omitempty"`
	Responsibilities      []string `json:"responsibilities,omitempty"`
	RequiredSkills        []string `json:"required_skills,omitempty"`
	PreferredSkills       []string `json:"preferred_skills,omitempty"`
	EducationRequirements []string `json:"education_requirements,omitempty"`
	MinExperienceYears    int      `json:"min_experience_years,omitempty"`
	MaxExperienceYears    int      `json:"max_experience_years,omitempty"`
}

// AllText returns the candidate's free-text sections joined into one string.
// This is what the bias detector scans; it deliberately excludes nothing, since
// signals can appear in any section.
func (c *StructuredCandidate) AllText() string {
	parts := make([]string, 0, 8)
	if c.Summary != "" {
		parts = append(parts, c.Summary)
	}
	if len(c.Skills) > 0 {
		parts = append(parts, strings.Join(c.Skills, ", "))
	}
	for _, exp := range c.Experience {
		segs := []string{exp.Title, exp.Company, exp.Description}
		segs = append(segs, exp.Achievements...)
		parts = append(parts, strings.Join(nonEmpty(segs), ". "))
	}
	for _, edu := range c.Education {
		line := strings.Join(nonEmpty([]string{edu.Degree, edu.FieldOfStudy, edu.Institution}), " ")
		if edu.GraduationYear > 0 {
			line += fmt.Sprintf(", graduated %d", edu.GraduationYear)
		}
		parts = append(parts, line)
	}
	if c.FreeText != "" {
		parts = append(parts, c.FreeText)
	}
	return strings.Join(parts, "\n")
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
