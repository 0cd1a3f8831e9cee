// Package evaluation runs the per-dimension assessment of a candidate against
// a requisition. Each of the five dimensions is evaluated independently with
// its own prompt; responses are schema-validated and repaired before a score
// is accepted, and a dimension that stays unparseable is marked unavailable
// rather than failing the whole evaluation.
package evaluation

import (
	"fmt"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/prompts"
	"github.com/jonathan/candidate-matcher/internal/types"
)

const promptFile = "evaluation.json"

const noneProvided = "None provided"

// buildPrompt renders the prompt template for one dimension with the
// candidate and requisition fields that dimension looks at.
func buildPrompt(dim types.Dimension, candidate *types.StructuredCandidate, requisition *types.StructuredRequisition) (string, error) {
	template, err := prompts.Get(promptFile, string(dim))
	if err != nil {
		return "", fmt.Errorf("no prompt for dimension %s: %w", dim, err)
	}

	data := map[string]string{
		"JobTitle":                orDefault(requisition.Title, noneProvided),
		"JobSummary":              orDefault(requisition.Summary, noneProvided),
		"RequiredSkills":          joinList(requisition.RequiredSkills),
		"PreferredSkills":         joinList(requisition.PreferredSkills),
		"Responsibilities":        joinList(requisition.Responsibilities),
		"EducationRequirements":   joinList(requisition.EducationRequirements),
		"ExperienceRange":         experienceRange(requisition),
		"CandidateSummary":        orDefault(candidate.Summary, noneProvided),
		"CandidateSkills":         joinList(candidate.Skills),
		"CandidateExperience":     formatExperience(candidate.Experience),
		"CandidateEducation":      formatEducation(candidate.Education),
		"CandidateCertifications": formatCertifications(candidate.Certifications),
		"CandidateAchievements":   formatAchievements(candidate.Experience),
	}
	return prompts.Format(template, data), nil
}

// correctivePrompt wraps the original prompt in a re-ask that pins the
// required response shape. Used once per dimension after a malformed response.
func correctivePrompt(original string) string {
	template := prompts.MustGet(promptFile, "corrective-retry")
	return prompts.Format(template, map[string]string{"OriginalPrompt": original})
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func joinList(items []string) string {
	if len(items) == 0 {
		return noneProvided
	}
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func experienceRange(req *types.StructuredRequisition) string {
	switch {
	case req.MinExperienceYears > 0 && req.MaxExperienceYears > 0:
		return fmt.Sprintf("%d-%d years", req.MinExperienceYears, req.MaxExperienceYears)
	case req.MinExperienceYears > 0:
		return fmt.Sprintf("%d+ years", req.MinExperienceYears)
	case req.MaxExperienceYears > 0:
		return fmt.Sprintf("up to %d years", req.MaxExperienceYears)
	default:
		return "Not specified"
	}
}

func formatExperience(entries []types.Experience) string {
	if len(entries) == 0 {
		return noneProvided
	}
	var sb strings.Builder
	for _, exp := range entries {
		end := exp.EndDate
		if end == "" {
			end = "present"
		}
		fmt.Fprintf(&sb, "- %s at %s (%s to %s)\n", exp.Title, exp.Company, exp.StartDate, end)
		if exp.Description != "" {
			fmt.Fprintf(&sb, "  %s\n", exp.Description)
		}
		for _, ach := range exp.Achievements {
			fmt.Fprintf(&sb, "  * %s\n", ach)
		}
		if len(exp.Technologies) > 0 {
			fmt.Fprintf(&sb, "  Technologies: %s\n", strings.Join(exp.Technologies, ", "))
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func formatEducation(entries []types.Education) string {
	if len(entries) == 0 {
		return noneProvided
	}
	var sb strings.Builder
	for _, edu := range entries {
		fmt.Fprintf(&sb, "- %s", edu.Degree)
		if edu.FieldOfStudy != "" {
			fmt.Fprintf(&sb, " in %s", edu.FieldOfStudy)
		}
		if edu.Institution != "" {
			fmt.Fprintf(&sb, ", %s", edu.Institution)
		}
		if edu.GraduationYear > 0 {
			fmt.Fprintf(&sb, " (%d)", edu.GraduationYear)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func formatCertifications(certs []types.Certification) string {
	if len(certs) == 0 {
		return noneProvided
	}
	var sb strings.Builder
	for _, cert := range certs {
		sb.WriteString("- ")
		sb.WriteString(cert.Name)
		if cert.Issuer != "" {
			fmt.Fprintf(&sb, " (%s)", cert.Issuer)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func formatAchievements(entries []types.Experience) string {
	var all []string
	for _, exp := range entries {
		all = append(all, exp.Achievements...)
	}
	return joinList(all)
}
