// Package bias scans candidate text for protected-attribute signals and
// raises advisory flags for human review. Detection is pure pattern matching
// against a configurable table; nothing here reads or influences scores.
package bias

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/candidate-matcher/internal/types"
)

//go:embed default_patterns.yaml
var defaultPatternsYAML []byte

// CategoryPatterns configures detection for one bias category: the regexes to
// scan with, the severity every resulting flag carries, and the reviewer
// guidance attached to it.
type CategoryPatterns struct {
	Category       types.BiasCategory `yaml:"category"`
	Severity       types.Severity     `yaml:"severity"`
	Recommendation string             `yaml:"recommendation"`
	Patterns       []string           `yaml:"patterns"`
}

// PatternTable is the full detection configuration.
type PatternTable struct {
	Categories []CategoryPatterns `yaml:"categories"`
}

// DefaultTable returns the built-in pattern table. The embedded table is part
// of the build, so a failure to parse it is a defect, not a runtime condition.
func DefaultTable() *PatternTable {
	table, err := ParseTable(defaultPatternsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded bias pattern table invalid: %v", err))
	}
	return table
}

// ParseTable parses and validates a YAML pattern table. Every regex must
// compile and every category must be one of the supported set; a table that
// fails here is rejected whole rather than half-loaded.
func ParseTable(data []byte) (*PatternTable, error) {
	var table PatternTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse bias pattern table: %w", err)
	}
	if len(table.Categories) == 0 {
		return nil, fmt.Errorf("bias pattern table has no categories")
	}
	for _, cat := range table.Categories {
		if !validCategory(cat.Category) {
			return nil, fmt.Errorf("unknown bias category %q", cat.Category)
		}
		if !validSeverity(cat.Severity) {
			return nil, fmt.Errorf("invalid severity %q for category %q", cat.Severity, cat.Category)
		}
		if len(cat.Patterns) == 0 {
			return nil, fmt.Errorf("category %q has no patterns", cat.Category)
		}
		for _, p := range cat.Patterns {
			if _, err := regexp.Compile(p); err != nil {
				return nil, fmt.Errorf("invalid pattern %q in category %q: %w", p, cat.Category, err)
			}
		}
	}
	return &table, nil
}

func validCategory(c types.BiasCategory) bool {
	switch c {
	case types.BiasAge, types.BiasGender, types.BiasEthnicity,
		types.BiasDisability, types.BiasSocioeconomic, types.BiasAppearance:
		return true
	}
	return false
}

func validSeverity(s types.Severity) bool {
	switch s {
	case types.SeverityLow, types.SeverityMedium, types.SeverityHigh:
		return true
	}
	return false
}
