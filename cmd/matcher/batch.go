package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-matcher/internal/analytics"
	"github.com/jonathan/candidate-matcher/internal/config"
	"github.com/jonathan/candidate-matcher/internal/observability"
	"github.com/jonathan/candidate-matcher/internal/pipeline"
	"github.com/jonathan/candidate-matcher/internal/types"
)

var batchCommand = &cobra.Command{
	Use:   "batch",
	Short: "Score a batch of candidates against one requisition",
	Long: `Scores every candidate in a JSON array file against the requisition with bounded concurrency, ranks the results best first, and prints aggregate statistics including bias-flag totals.`,
	RunE: runBatchCmd,
}

var (
	batchConfigPath  string
	batchCandidates  string
	batchRequisition string
	batchAPIKey      string
	batchProvider    string
	batchConcurrency int
	batchMinRec      string
	batchOutput      string
	batchVerbose     bool
)

func init() {
	batchCommand.Flags().StringVar(&batchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	batchCommand.Flags().StringVarP(&batchCandidates, "candidates", "c", "", "Path to a JSON array of candidate records (required)")
	batchCommand.Flags().StringVarP(&batchRequisition, "requisition", "r", "", "Path to requisition record JSON file (required)")
	batchCommand.Flags().StringVar(&batchProvider, "provider", "", "LLM provider: gemini, openai, or anthropic")
	batchCommand.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Candidates scored in parallel (default 4)")
	batchCommand.Flags().StringVar(&batchMinRec, "min-recommendation", "", `Only output results at or above this recommendation ("Weak Match", "Good Match", "Strong Match")`)
	batchCommand.Flags().StringVarP(&batchOutput, "output", "o", "", "Write the ranked results JSON to this file instead of stdout")
	batchCommand.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print detailed debug information")
	batchCommand.Flags().StringVar(&batchAPIKey, "api-key", "", "Provider API key (optional, defaults to the provider's env var)")

	rootCmd.AddCommand(batchCommand)
}

func runBatchCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var cfg config.Config
	if batchConfigPath != "" {
		loaded, err := config.Load(batchConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = batchProvider
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = batchAPIKey
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = batchConcurrency
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = batchOutput
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = batchVerbose
	}
	cfg = cfg.MergeWithDefaults(configDefaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	if batchCandidates == "" {
		return fmt.Errorf("--candidates is required")
	}
	if batchRequisition == "" {
		return fmt.Errorf("--requisition is required")
	}

	minRec, err := parseMinRecommendation(batchMinRec)
	if err != nil {
		return err
	}

	candidates, err := loadCandidates(batchCandidates)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no candidates in %s", batchCandidates)
	}
	requisition, err := loadRequisition(batchRequisition)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	m, cleanup, err := buildMatcher(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := m.ScoreBatch(ctx, candidates, requisition, cfg.Concurrency)
	if err != nil {
		return err
	}

	stats := analytics.Summarize(results)
	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintBatchSummary(stats)
	}

	output := results
	if minRec != "" {
		output = pipeline.FilterByRecommendation(results, minRec)
	}
	return writeOutput(cfg.Output, map[string]any{
		"requisition_id": requisition.ID,
		"results":        output,
		"stats":          stats,
	})
}

func parseMinRecommendation(s string) (types.Recommendation, error) {
	switch types.Recommendation(s) {
	case "", types.NotRecommended, types.WeakMatch, types.GoodMatch, types.StrongMatch:
		return types.Recommendation(s), nil
	default:
		return "", fmt.Errorf("unknown recommendation %q", s)
	}
}
