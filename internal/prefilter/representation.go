// Package prefilter implements the semantic pre-filter: a cheap embedding
// cosine-similarity gate run before per-dimension evaluation.
package prefilter

import (
	"fmt"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// CandidateText builds the comprehensive text representation of a candidate
// used for whole-record embedding.
func CandidateText(c *types.StructuredCandidate) string {
	var parts []string

	if c.Summary != "" {
		parts = append(parts, "Professional Summary: "+c.Summary)
	}
	if len(c.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(c.Skills, ", "))
	}
	for _, exp := range c.Experience {
		text := fmt.Sprintf("%s at %s. %s", exp.Title, exp.Company, exp.Description)
		if len(exp.Technologies) > 0 {
			text += " Technologies: " + strings.Join(exp.Technologies, ", ")
		}
		parts = append(parts, text)
	}
	for _, edu := range c.Education {
		field := edu.FieldOfStudy
		if field == "" {
			field = "N/A"
		}
		parts = append(parts, fmt.Sprintf("%s in %s from %s", edu.Degree, field, edu.Institution))
	}
	if len(c.Certifications) > 0 {
		certs := make([]string, 0, len(c.Certifications))
		for _, cert := range c.Certifications {
			certs = append(certs, cert.Name)
		}
		parts = append(parts, "Certifications: "+strings.Join(certs, ", "))
	}

	return strings.Join(parts, " ")
}

// RequisitionText builds the comprehensive text representation of a
// requisition used for whole-record embedding.
func RequisitionText(r *types.StructuredRequisition) string {
	parts := []string{
		"Job Title: " + r.Title,
		"Summary: " + r.Summary,
	}

	if len(r.Responsibilities) > 0 {
		parts = append(parts, "Responsibilities: "+strings.Join(r.Responsibilities, " "))
	}
	if len(r.RequiredSkills) > 0 {
		parts = append(parts, "Required Skills: "+strings.Join(r.RequiredSkills, ", "))
	}
	if len(r.PreferredSkills) > 0 {
		parts = append(parts, "Preferred Skills: "+strings.Join(r.PreferredSkills, ", "))
	}
	if len(r.EducationRequirements) > 0 {
		parts = append(parts, "Education: "+strings.Join(r.EducationRequirements, " "))
	}

	return strings.Join(parts, " ")
}

// sectionTexts returns the candidate's per-section representations used for
// diagnostic similarities. Empty sections are omitted.
func sectionTexts(c *types.StructuredCandidate) map[string]string {
	sections := make(map[string]string, 4)

	if c.Summary != "" {
		sections["summary"] = c.Summary
	}
	if len(c.Skills) > 0 {
		sections["skills"] = strings.Join(c.Skills, ", ")
	}
	if len(c.Experience) > 0 {
		var sb strings.Builder
		for _, exp := range c.Experience {
			sb.WriteString(fmt.Sprintf("%s: %s ", exp.Title, exp.Description))
		}
		sections["experience"] = strings.TrimSpace(sb.String())
	}
	if len(c.Education) > 0 {
		var entries []string
		for _, edu := range c.Education {
			entries = append(entries, fmt.Sprintf("%s in %s from %s", edu.Degree, edu.FieldOfStudy, edu.Institution))
		}
		sections["education"] = strings.Join(entries, " ")
	}

	return sections
}
