package pipeline

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// DefaultBatchConcurrency bounds how many candidates are scored at once in a
// batch. Each run fans out its own capability calls, so this stays small.
const DefaultBatchConcurrency = 4

// ScoreBatch scores every candidate against the requisition with bounded
// concurrency and returns the results ranked best first. A single candidate's
// failure statuses are ordinary results; ScoreBatch errs only when a run
// aborts outright (cancellation or broken wiring), and then the whole batch
// stops.
func (m *Matcher) ScoreBatch(ctx context.Context, candidates []*types.StructuredCandidate, requisition *types.StructuredRequisition, concurrency int) ([]*types.MatchResult, error) {
	if requisition == nil {
		return nil, fmt.Errorf("requisition is required")
	}
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]*types.MatchResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			res, err := m.Match(gctx, cand, requisition)
			if err != nil {
				return fmt.Errorf("candidate %s: %w", cand.ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	Rank(results)
	return results, nil
}

// Rank sorts results in place, best first: scored results by descending
// overall score, then everything else, with candidate ID as the tiebreaker so
// output order is stable across runs.
func Rank(results []*types.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		switch {
		case a.Scored() && !b.Scored():
			return true
		case !a.Scored() && b.Scored():
			return false
		case a.Scored() && b.Scored():
			if *a.OverallScore != *b.OverallScore {
				return *a.OverallScore > *b.OverallScore
			}
		}
		return a.CandidateID < b.CandidateID
	})
}

// FilterByRecommendation returns the results whose recommendation is at least
// the given floor (Not Recommended < Weak < Good < Strong). Unscored results
// never pass.
func FilterByRecommendation(results []*types.MatchResult, floor types.Recommendation) []*types.MatchResult {
	min := recommendationRank(floor)
	out := make([]*types.MatchResult, 0, len(results))
	for _, r := range results {
		if r.Scored() && recommendationRank(r.Recommendation) >= min {
			out = append(out, r)
		}
	}
	return out
}

func recommendationRank(r types.Recommendation) int {
	switch r {
	case types.StrongMatch:
		return 3
	case types.GoodMatch:
		return 2
	case types.WeakMatch:
		return 1
	default:
		return 0
	}
}
