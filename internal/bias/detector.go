package bias

import (
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// excerptContext is how many characters of surrounding text an excerpt keeps
// on each side of the match.
const excerptContext = 30

type compiledCategory struct {
	category       types.BiasCategory
	severity       types.Severity
	recommendation string
	patterns       []*regexp.Regexp
}

// Detector scans text against a compiled pattern table. Safe for concurrent
// use; compiled patterns are read-only after construction.
type Detector struct {
	categories []compiledCategory
	logger     *zap.Logger
}

// NewDetector compiles the given table. A nil table uses the built-in one.
func NewDetector(table *PatternTable, logger *zap.Logger) *Detector {
	if table == nil {
		table = DefaultTable()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Detector{logger: logger}
	for _, cat := range table.Categories {
		cc := compiledCategory{
			category:       cat.Category,
			severity:       cat.Severity,
			recommendation: cat.Recommendation,
		}
		for _, p := range cat.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				// ParseTable validated these; an error here means the caller
				// bypassed it. Skip the pattern rather than panic mid-run.
				logger.Warn("skipping uncompilable bias pattern", zap.String("pattern", p), zap.Error(err))
				continue
			}
			cc.patterns = append(cc.patterns, re)
		}
		d.categories = append(d.categories, cc)
	}
	return d
}

// NewDetectorFromFile loads a pattern table from a YAML file. Loading is
// fail-soft: a missing or invalid file degrades to a detector that produces
// no flags, with a warning. Scoring must never be blocked by a bad table, and
// silently substituting different patterns than the operator configured would
// be worse than flagging nothing.
func NewDetectorFromFile(path string, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("bias pattern file unreadable, detection disabled", zap.String("path", path), zap.Error(err))
		return &Detector{logger: logger}
	}
	table, err := ParseTable(data)
	if err != nil {
		logger.Warn("bias pattern file invalid, detection disabled", zap.String("path", path), zap.Error(err))
		return &Detector{logger: logger}
	}
	return NewDetector(table, logger)
}

// Detect scans the text and returns one flag per pattern match, in table
// order. The flags are advisory: callers attach them to results for human
// review and never feed them back into scoring. Empty text yields no flags.
func (d *Detector) Detect(text string) []types.BiasFlag {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var flags []types.BiasFlag
	for _, cat := range d.categories {
		for _, re := range cat.patterns {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				flags = append(flags, types.BiasFlag{
					Category:       cat.category,
					Excerpt:        excerpt(text, loc[0], loc[1]),
					Severity:       cat.severity,
					Recommendation: cat.recommendation,
				})
			}
		}
	}
	return flags
}

// DetectCandidate scans every text section of a candidate record.
func (d *Detector) DetectCandidate(candidate *types.StructuredCandidate) []types.BiasFlag {
	if candidate == nil {
		return nil
	}
	return d.Detect(candidate.AllText())
}

// excerpt returns the match with a little surrounding context, trimmed to
// whole runes and collapsed onto one line.
func excerpt(text string, start, end int) string {
	lo := start - excerptContext
	if lo < 0 {
		lo = 0
	}
	hi := end + excerptContext
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && !isRuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !isRuneStart(text[hi]) {
		hi++
	}
	out := strings.Join(strings.Fields(text[lo:hi]), " ")
	if lo > 0 {
		out = "…" + out
	}
	if hi < len(text) {
		out += "…"
	}
	return out
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
