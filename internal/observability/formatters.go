// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/candidate-matcher/internal/analytics"
	"github.com/jonathan/candidate-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResult outputs a human-readable summary of one scoring run.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate:  %s\n", result.CandidateID))
	sb.WriteString(fmt.Sprintf("Status:     %s\n", result.Status))
	if result.Similarity != nil {
		sb.WriteString(fmt.Sprintf("Similarity: %.3f\n", *result.Similarity))
	}
	if result.OverallScore != nil {
		sb.WriteString(fmt.Sprintf("Score:      %.1f (%s)\n", *result.OverallScore, result.Recommendation))
	}
	if result.Confidence != nil {
		sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", *result.Confidence))
	}
	if result.FailureDetail != "" {
		sb.WriteString(fmt.Sprintf("Detail:     %s\n", result.FailureDetail))
	}

	if len(result.DimensionScores) > 0 {
		sb.WriteString("\nDimensions:\n")
		for _, ds := range result.DimensionScores {
			if ds.Available() {
				sb.WriteString(fmt.Sprintf("  %-28s %5.1f\n", ds.Dimension.DisplayName(), *ds.Score*100))
			} else {
				sb.WriteString(fmt.Sprintf("  %-28s   n/a\n", ds.Dimension.DisplayName()))
			}
		}
	}

	if len(result.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for i, s := range result.Strengths {
			if i >= maxItemsToShow {
				break
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}
	if len(result.Weaknesses) > 0 {
		sb.WriteString("\nWeaknesses:\n")
		for i, w := range result.Weaknesses {
			if i >= maxItemsToShow {
				break
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", w))
		}
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintBiasFlags(result.BiasFlags)
}

// PrintBiasFlags outputs the advisory bias flags attached to a result.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBiasFlags(flags []types.BiasFlag) {
	if len(flags) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d advisory flags (not used in scoring):\n\n", len(flags)))

	count := min(len(flags), maxItemsToShow)
	for i := 0; i < count; i++ {
		f := flags[i]
		excerpt := f.Excerpt
		if len(excerpt) > 45 {
			excerpt = excerpt[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", f.Category, f.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", excerpt))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(flags) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more flags", len(flags)-maxItemsToShow))
	}

	p.printBox("BIAS REVIEW FLAGS", sb.String())
}

// PrintBatchSummary outputs aggregate statistics for a scored batch.
func (p *Printer) PrintBatchSummary(stats analytics.BatchStats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates:  %d scored, %d filtered, %d failed\n",
		stats.Scored, stats.FilteredOut, stats.EvaluationFailed))

	if stats.Scored > 0 {
		sb.WriteString(fmt.Sprintf("Scores:      mean %.1f, median %.1f, range %.1f-%.1f\n",
			stats.MeanScore, stats.MedianScore, stats.MinScore, stats.MaxScore))

		sb.WriteString("\nRecommendations:\n")
		for _, rec := range []types.Recommendation{types.StrongMatch, types.GoodMatch, types.WeakMatch, types.NotRecommended} {
			if n := stats.Recommendations[rec]; n > 0 {
				sb.WriteString(fmt.Sprintf("  %-16s %d\n", rec, n))
			}
		}
	}

	sb.WriteString(fmt.Sprintf("\nBias flags:  %d total (%d high severity)\n", stats.BiasFlagTotal, stats.HighSeverityFlags))
	sb.WriteString(fmt.Sprintf("Review risk: %s\n", stats.DiscriminationRisk))
	sb.WriteString(fmt.Sprintf("Elapsed:     %s total, %s per candidate",
		stats.TotalProcessing.Round(time.Millisecond), stats.MeanProcessing.Round(time.Millisecond)))

	p.printBox("BATCH SUMMARY", sb.String())
}
