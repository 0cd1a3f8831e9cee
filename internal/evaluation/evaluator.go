package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/schemas"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// DefaultCallTimeout bounds a single dimension evaluation call.
const DefaultCallTimeout = 60 * time.Second

// dimensionResponse mirrors the JSON shape the evaluation prompts require.
type dimensionResponse struct {
	Score     float64  `json:"score"`
	Rationale string   `json:"rationale"`
	Evidence  []string `json:"evidence"`
	Gaps      []string `json:"gaps"`
}

// Evaluator scores a candidate against a requisition on the five fixed
// dimensions, one capability call per dimension, run concurrently.
type Evaluator struct {
	client      llm.Client
	callTimeout time.Duration
	logger      *zap.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCallTimeout sets the per-dimension call timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Evaluator) {
		if d > 0 {
			e.callTimeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Evaluator backed by the given evaluation client.
func New(client llm.Client, opts ...Option) *Evaluator {
	e := &Evaluator{
		client:      client,
		callTimeout: DefaultCallTimeout,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate scores every dimension concurrently and returns the results in
// canonical dimension order. Individual dimension failures do not abort the
// evaluation; the failed dimension comes back with a nil score. The returned
// error is non-nil only when the context is cancelled or the client is
// missing, i.e. when no dimension could be evaluated at all.
func (e *Evaluator) Evaluate(ctx context.Context, candidate *types.StructuredCandidate, requisition *types.StructuredRequisition) ([]types.DimensionScore, error) {
	if e.client == nil {
		return nil, fmt.Errorf("evaluation client is not configured")
	}

	dims := types.AllDimensions()
	results := make([]types.DimensionScore, len(dims))

	g, gctx := errgroup.WithContext(ctx)
	for i, dim := range dims {
		i, dim := i, dim
		g.Go(func() error {
			results[i] = e.evaluateDimension(gctx, dim, candidate, requisition)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluation cancelled: %w", err)
	}
	return results, nil
}

// evaluateDimension runs one dimension end to end: prompt, call, parse. A
// malformed response gets exactly one corrective re-ask with the required
// shape pinned; if that also fails to parse the dimension is unavailable.
func (e *Evaluator) evaluateDimension(ctx context.Context, dim types.Dimension, candidate *types.StructuredCandidate, requisition *types.StructuredRequisition) types.DimensionScore {
	unavailable := func(reason string) types.DimensionScore {
		return types.DimensionScore{
			Dimension: dim,
			Rationale: reason,
		}
	}

	prompt, err := buildPrompt(dim, candidate, requisition)
	if err != nil {
		e.logger.Error("prompt construction failed", zap.String("dimension", string(dim)), zap.Error(err))
		return unavailable("evaluation unavailable: prompt construction failed")
	}

	raw, err := e.callWithTimeout(ctx, prompt)
	if err != nil {
		e.logger.Warn("dimension call failed",
			zap.String("dimension", string(dim)),
			zap.Error(err),
		)
		return unavailable("evaluation unavailable: " + err.Error())
	}

	parsed, parseErr := parseResponse(raw)
	if parseErr != nil {
		e.logger.Warn("malformed dimension response, issuing corrective retry",
			zap.String("dimension", string(dim)),
			zap.Error(parseErr),
		)
		raw, err = e.callWithTimeout(ctx, correctivePrompt(prompt))
		if err != nil {
			return unavailable("evaluation unavailable: " + err.Error())
		}
		parsed, parseErr = parseResponse(raw)
		if parseErr != nil {
			e.logger.Warn("corrective retry still malformed, marking dimension unavailable",
				zap.String("dimension", string(dim)),
				zap.Error(parseErr),
			)
			return unavailable("evaluation unavailable: response could not be parsed")
		}
	}

	score := parsed.Score / 100.0
	return types.DimensionScore{
		Dimension: dim,
		Score:     &score,
		Rationale: parsed.Rationale,
		Evidence:  parsed.Evidence,
		Gaps:      parsed.Gaps,
	}
}

func (e *Evaluator) callWithTimeout(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()
	return e.client.GenerateJSON(callCtx, prompt)
}

// parseResponse validates and decodes a raw capability response. Fenced or
// slightly broken JSON gets one mechanical repair pass before giving up.
func parseResponse(raw string) (*dimensionResponse, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.ValidateDimensionResponse(cleaned); err != nil {
		repaired := llm.RepairJSON(cleaned)
		if repaired == cleaned {
			return nil, err
		}
		if err := schemas.ValidateDimensionResponse(repaired); err != nil {
			return nil, err
		}
		cleaned = repaired
	}

	var resp dimensionResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}
