package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-matcher/internal/bias"
	"github.com/jonathan/candidate-matcher/internal/config"
	"github.com/jonathan/candidate-matcher/internal/evaluation"
	"github.com/jonathan/candidate-matcher/internal/llm"
	"github.com/jonathan/candidate-matcher/internal/pipeline"
	"github.com/jonathan/candidate-matcher/internal/prefilter"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// configDefaults returns the values filled in for anything neither the config
// file nor the flags set. Commands merge these in after applying overrides.
func configDefaults() config.Config {
	return config.Config{
		Provider:            string(llm.ProviderGemini),
		SimilarityThreshold: prefilter.DefaultThreshold,
		Concurrency:         pipeline.DefaultBatchConcurrency,
	}
}

// buildMatcher assembles the full pipeline from configuration. The returned
// cleanup closes the provider client.
func buildMatcher(ctx context.Context, cfg *config.Config, logger *zap.Logger, extra ...pipeline.MatcherOption) (*pipeline.Matcher, func(), error) {
	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		return nil, nil, fmt.Errorf("no API key configured (set --api-key, config api_key, or the provider's env var)")
	}

	client, embedder, err := llm.NewClient(ctx, cfg.LLMConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create provider client: %w", err)
	}
	cleanup := func() { _ = client.Close() }

	retryPolicy := llm.DefaultRetryPolicy()
	if cfg.RetryAttempts > 0 {
		retryPolicy.MaxAttempts = cfg.RetryAttempts
	}
	wrapped := llm.WithRetry(client, retryPolicy)

	breakerCfg := llm.DefaultBreakerConfig()
	breakerCfg.Enabled = cfg.BreakerEnabled
	wrapped = llm.WithBreaker(wrapped, breakerCfg, logger)

	threshold := cfg.SimilarityThreshold
	if threshold == 0 {
		threshold = prefilter.DefaultThreshold
	}
	filter := prefilter.New(embedder, threshold, logger)

	evalOpts := []evaluation.Option{evaluation.WithLogger(logger)}
	if d := cfg.CallTimeout(); d > 0 {
		evalOpts = append(evalOpts, evaluation.WithCallTimeout(d))
	}
	evaluator := evaluation.New(wrapped, evalOpts...)

	var detector *bias.Detector
	if cfg.BiasPatternsFile != "" {
		detector = bias.NewDetectorFromFile(cfg.BiasPatternsFile, logger)
	} else {
		detector = bias.NewDetector(nil, logger)
	}

	weights, err := cfg.ScoringWeights()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	bands, err := cfg.ScoringBands()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	opts := []pipeline.MatcherOption{
		pipeline.WithWeights(weights),
		pipeline.WithBands(bands),
		pipeline.WithMatcherLogger(logger),
	}
	if cfg.StrictDimensions {
		opts = append(opts, pipeline.WithStrictDimensions())
	}
	opts = append(opts, extra...)
	m, err := pipeline.NewMatcher(filter, evaluator, detector, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return m, cleanup, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

func loadCandidate(path string) (*types.StructuredCandidate, error) {
	var cand types.StructuredCandidate
	if err := loadJSON(path, &cand); err != nil {
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}
	if cand.ID == "" {
		return nil, fmt.Errorf("candidate file %s has no id", path)
	}
	return &cand, nil
}

func loadCandidates(path string) ([]*types.StructuredCandidate, error) {
	var cands []*types.StructuredCandidate
	if err := loadJSON(path, &cands); err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	for i, c := range cands {
		if c == nil || c.ID == "" {
			return nil, fmt.Errorf("candidate %d in %s has no id", i, path)
		}
	}
	return cands, nil
}

func loadRequisition(path string) (*types.StructuredRequisition, error) {
	var req types.StructuredRequisition
	if err := loadJSON(path, &req); err != nil {
		return nil, fmt.Errorf("failed to load requisition: %w", err)
	}
	if req.ID == "" {
		return nil, fmt.Errorf("requisition file %s has no id", path)
	}
	return &req, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// writeOutput writes v as indented JSON to path, or stdout when path is "".
func writeOutput(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
