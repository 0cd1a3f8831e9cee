package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-matcher/internal/config"
	"github.com/jonathan/candidate-matcher/internal/observability"
	"github.com/jonathan/candidate-matcher/internal/pipeline"
)

var matchCommand = &cobra.Command{
	Use:   "match",
	Short: "Score one candidate against one requisition",
	Long: `Runs the full scoring pipeline for a single candidate/requisition pair: semantic pre-filter, per-dimension evaluation, aggregation, and the advisory bias scan.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runMatchCmd,
}

var (
	matchConfigPath  string
	matchCandidate   string
	matchRequisition string
	matchProvider    string
	matchModel       string
	matchAPIKey      string
	matchThreshold   float64
	matchBiasFile    string
	matchOutput      string
	matchVerbose     bool
	matchDiagnostics bool
)

func init() {
	// Config file flag (processed first)
	matchCommand.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	matchCommand.Flags().StringVarP(&matchCandidate, "candidate", "c", "", "Path to candidate record JSON file (required)")
	matchCommand.Flags().StringVarP(&matchRequisition, "requisition", "r", "", "Path to requisition record JSON file (required)")
	matchCommand.Flags().StringVar(&matchProvider, "provider", "", "LLM provider: gemini, openai, or anthropic")
	matchCommand.Flags().StringVar(&matchModel, "model", "", "Model name override")
	matchCommand.Flags().Float64Var(&matchThreshold, "threshold", 0, "Pre-filter similarity threshold (default 0.7)")
	matchCommand.Flags().StringVar(&matchBiasFile, "bias-patterns", "", "Path to a YAML bias pattern table override")
	matchCommand.Flags().StringVarP(&matchOutput, "output", "o", "", "Write the result JSON to this file instead of stdout")
	matchCommand.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed debug information")
	matchCommand.Flags().BoolVar(&matchDiagnostics, "section-diagnostics", false, "Include per-section similarity diagnostics (extra embedding calls)")

	// API key can be passed as a flag, or read from the provider's env var
	matchCommand.Flags().StringVar(&matchAPIKey, "api-key", "", "Provider API key (optional, defaults to the provider's env var)")

	rootCmd.AddCommand(matchCommand)
}

func runMatchCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := resolveConfig(cmd, matchConfigPath)
	if err != nil {
		return err
	}
	if matchCandidate == "" {
		return fmt.Errorf("--candidate is required")
	}
	if matchRequisition == "" {
		return fmt.Errorf("--requisition is required")
	}

	candidate, err := loadCandidate(matchCandidate)
	if err != nil {
		return err
	}
	requisition, err := loadRequisition(matchRequisition)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var extra []pipeline.MatcherOption
	if matchDiagnostics {
		extra = append(extra, pipeline.WithSectionDiagnostics())
	}
	m, cleanup, err := buildMatcher(ctx, cfg, logger, extra...)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := m.Match(ctx, candidate, requisition)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintMatchResult(result)
	}
	return writeOutput(cfg.Output, result)
}

// resolveConfig loads the config file (when given), applies CLI overrides,
// then fills remaining gaps from configDefaults. Only flags the user actually
// set override file values.
func resolveConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("provider") {
		cfg.Provider = matchProvider
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = matchModel
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = matchAPIKey
	}
	if cmd.Flags().Changed("threshold") {
		cfg.SimilarityThreshold = matchThreshold
	}
	if cmd.Flags().Changed("bias-patterns") {
		cfg.BiasPatternsFile = matchBiasFile
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = matchOutput
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = matchVerbose
	}

	cfg = cfg.MergeWithDefaults(configDefaults())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
