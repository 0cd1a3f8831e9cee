package prefilter

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// DefaultThreshold is the default minimum cosine similarity to pass.
const DefaultThreshold = 0.7

// Result is the outcome of one pre-filter run. Similarity is nil when the
// embedding capability was unavailable and the filter failed open.
type Result struct {
	Similarity *float64
	Passed     bool
	FailedOpen bool
}

// Filter gates candidate/requisition pairs on aggregate embedding similarity.
type Filter struct {
	embedder  llm.Embedder
	threshold float64
	logger    *zap.Logger
}

// New creates a pre-filter. A nil embedder is allowed and makes every run
// fail open. Thresholds outside [0,1] fall back to the default.
func New(embedder llm.Embedder, threshold float64, logger *zap.Logger) *Filter {
	if threshold < 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filter{embedder: embedder, threshold: threshold, logger: logger}
}

// Threshold returns the configured similarity threshold.
func (f *Filter) Threshold() float64 { return f.threshold }

// Run computes the aggregate similarity between the candidate and requisition
// and compares it against the threshold.
//
// When the embedding capability is unavailable the filter fails OPEN: the pair
// is treated as passed with a nil similarity. Rejecting on a capability outage
// could silently drop a strong candidate, so the policy biases toward recall
// and leaves the expensive evaluation to decide.
func (f *Filter) Run(ctx context.Context, candidate *types.StructuredCandidate, requisition *types.StructuredRequisition) Result {
	if f.embedder == nil {
		f.logger.Warn("embedding capability not configured, pre-filter failing open")
		return Result{Passed: true, FailedOpen: true}
	}

	candVec, err := f.embedder.Embed(ctx, CandidateText(candidate))
	if err != nil {
		f.logger.Warn("candidate embedding failed, pre-filter failing open", zap.Error(err))
		return Result{Passed: true, FailedOpen: true}
	}
	reqVec, err := f.embedder.Embed(ctx, RequisitionText(requisition))
	if err != nil {
		f.logger.Warn("requisition embedding failed, pre-filter failing open", zap.Error(err))
		return Result{Passed: true, FailedOpen: true}
	}

	similarity, err := Cosine(candVec, reqVec)
	if err != nil {
		f.logger.Warn("similarity computation failed, pre-filter failing open", zap.Error(err))
		return Result{Passed: true, FailedOpen: true}
	}

	f.logger.Debug("pre-filter similarity computed",
		zap.String("candidate_id", candidate.ID),
		zap.String("requisition_id", requisition.ID),
		zap.Float64("similarity", similarity),
		zap.Float64("threshold", f.threshold),
	)

	return Result{
		Similarity: &similarity,
		Passed:     similarity >= f.threshold,
	}
}

// SectionSimilarities computes per-section similarities between the candidate
// and the whole requisition. Diagnostic only; never affects Run's verdict.
// Sections that fail to embed are omitted rather than failing the call.
func (f *Filter) SectionSimilarities(ctx context.Context, candidate *types.StructuredCandidate, requisition *types.StructuredRequisition) map[string]float64 {
	if f.embedder == nil {
		return nil
	}

	reqVec, err := f.embedder.Embed(ctx, RequisitionText(requisition))
	if err != nil {
		f.logger.Warn("requisition embedding failed for section diagnostics", zap.Error(err))
		return nil
	}

	out := make(map[string]float64)
	for name, text := range sectionTexts(candidate) {
		vec, err := f.embedder.Embed(ctx, text)
		if err != nil {
			f.logger.Warn("section embedding failed", zap.String("section", name), zap.Error(err))
			continue
		}
		sim, err := Cosine(vec, reqVec)
		if err != nil {
			continue
		}
		out[name] = sim
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
