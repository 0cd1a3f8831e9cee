// Package pipeline orchestrates one scoring run: semantic pre-filter, the
// concurrent dimensional evaluation, aggregation into a recommendation, and
// the advisory bias scan. Expected failures fold into the result's status
// instead of propagating as errors; a Match call errs only on cancellation
// or broken wiring.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/bias"
	"github.com/jonathan/candidate-matcher/internal/evaluation"
	"github.com/jonathan/candidate-matcher/internal/prefilter"
	"github.com/jonathan/candidate-matcher/internal/scoring"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Matcher wires the pipeline stages together. Construct once, share across
// runs; all stages are safe for concurrent use.
type Matcher struct {
	filter    *prefilter.Filter
	evaluator *evaluation.Evaluator
	detector  *bias.Detector
	weights   types.Weights
	bands     scoring.Bands
	logger    *zap.Logger

	// sectionDiagnostics enables per-section similarity reporting on scored
	// results. Off by default; it costs one embedding call per section.
	sectionDiagnostics bool

	// strictDimensions refuses to score when any dimension is unavailable,
	// for callers who prefer no score over a renormalized one.
	strictDimensions bool
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithWeights overrides the default scoring weights.
func WithWeights(w types.Weights) MatcherOption {
	return func(m *Matcher) {
		if w != nil {
			m.weights = w
		}
	}
}

// WithBands overrides the default recommendation bands.
func WithBands(b scoring.Bands) MatcherOption {
	return func(m *Matcher) {
		if b != nil {
			m.bands = b
		}
	}
}

// WithMatcherLogger sets the logger.
func WithMatcherLogger(logger *zap.Logger) MatcherOption {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSectionDiagnostics enables per-section similarity diagnostics.
func WithSectionDiagnostics() MatcherOption {
	return func(m *Matcher) { m.sectionDiagnostics = true }
}

// WithStrictDimensions makes any unavailable dimension terminate the run as
// evaluation_failed instead of renormalizing the remaining weights.
func WithStrictDimensions() MatcherOption {
	return func(m *Matcher) { m.strictDimensions = true }
}

// NewMatcher assembles a pipeline from its stages. Filter and evaluator are
// required; a nil detector disables bias flagging.
func NewMatcher(filter *prefilter.Filter, evaluator *evaluation.Evaluator, detector *bias.Detector, opts ...MatcherOption) (*Matcher, error) {
	if filter == nil {
		return nil, fmt.Errorf("pre-filter is required")
	}
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	m := &Matcher{
		filter:    filter,
		evaluator: evaluator,
		detector:  detector,
		weights:   types.DefaultWeights(),
		bands:     scoring.DefaultBands(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Match scores one candidate against one requisition and returns the terminal
// result. The bias scan always runs, concurrently with evaluation, and its
// flags are attached whatever the outcome; they never touch the score.
func (m *Matcher) Match(ctx context.Context, candidate *types.StructuredCandidate, requisition *types.StructuredRequisition) (*types.MatchResult, error) {
	if candidate == nil || requisition == nil {
		return nil, fmt.Errorf("candidate and requisition are required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	result := &types.MatchResult{
		RunID:         uuid.New().String(),
		CandidateID:   candidate.ID,
		RequisitionID: requisition.ID,
		Timestamp:     started.UTC(),
	}

	// Bias scanning is pure CPU work independent of every other stage, so it
	// overlaps with the capability calls.
	flagsCh := make(chan []types.BiasFlag, 1)
	go func() {
		if m.detector == nil {
			flagsCh <- nil
			return
		}
		flagsCh <- m.detector.DetectCandidate(candidate)
	}()

	gate := m.filter.Run(ctx, candidate, requisition)
	result.Similarity = gate.Similarity

	if !gate.Passed {
		result.Status = types.StatusFilteredOut
		result.Recommendation = types.NotRecommended
		result.FailureDetail = fmt.Sprintf("similarity %.3f below threshold %.3f", *gate.Similarity, m.filter.Threshold())
		result.BiasFlags = <-flagsCh
		result.ProcessingTime = time.Since(started)
		m.logger.Info("pair filtered out",
			zap.String("run_id", result.RunID),
			zap.String("candidate_id", candidate.ID),
			zap.String("requisition_id", requisition.ID),
			zap.Float64("similarity", *gate.Similarity),
		)
		return result, nil
	}

	scores, err := m.evaluator.Evaluate(ctx, candidate, requisition)
	if err != nil {
		// Cancellation or missing wiring; drain the scan before returning.
		<-flagsCh
		return nil, fmt.Errorf("evaluation aborted: %w", err)
	}
	result.DimensionScores = scores
	result.BiasFlags = <-flagsCh

	if m.strictDimensions {
		if missing := unavailableDimensions(scores); len(missing) > 0 {
			result.Status = types.StatusEvaluationFailed
			result.Recommendation = types.NotRecommended
			result.FailureDetail = fmt.Sprintf("strict mode: dimensions unavailable: %s", joinDimensions(missing))
			result.ProcessingTime = time.Since(started)
			return result, nil
		}
	}

	overall, err := scoring.Aggregate(scores, m.weights)
	if err != nil {
		result.Status = types.StatusEvaluationFailed
		result.Recommendation = types.NotRecommended
		result.FailureDetail = err.Error()
		result.ProcessingTime = time.Since(started)
		m.logger.Warn("evaluation failed, no usable dimension scores",
			zap.String("run_id", result.RunID),
			zap.String("candidate_id", candidate.ID),
			zap.Error(err),
		)
		return result, nil
	}

	result.Status = types.StatusScored
	result.OverallScore = &overall
	result.Recommendation = m.bands.Recommend(overall)
	// Confidence needs the similarity reading; when the filter failed open
	// there is nothing to align against, so it stays unset.
	if gate.Similarity != nil {
		confidence := scoring.Confidence(scores, *gate.Similarity)
		result.Confidence = &confidence
	}
	result.Strengths = scoring.Strengths(scores)
	result.Weaknesses = scoring.Weaknesses(scores)

	if m.sectionDiagnostics {
		result.SectionSimilarities = m.filter.SectionSimilarities(ctx, candidate, requisition)
	}

	result.ProcessingTime = time.Since(started)
	m.logger.Info("pair scored",
		zap.String("run_id", result.RunID),
		zap.String("candidate_id", candidate.ID),
		zap.String("requisition_id", requisition.ID),
		zap.Float64("overall_score", overall),
		zap.String("recommendation", string(result.Recommendation)),
		zap.Int("bias_flags", len(result.BiasFlags)),
		zap.Duration("elapsed", result.ProcessingTime),
	)
	return result, nil
}

func unavailableDimensions(scores []types.DimensionScore) []types.Dimension {
	var out []types.Dimension
	for i := range scores {
		if !scores[i].Available() {
			out = append(out, scores[i].Dimension)
		}
	}
	return out
}

func joinDimensions(dims []types.Dimension) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = string(d)
	}
	return strings.Join(parts, ", ")
}
