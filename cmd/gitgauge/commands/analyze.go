// Package commands implements CLI command handlers for gitgauge.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitgauge/internal/classify"
	"github.com/Sumatoshi-tech/gitgauge/internal/collect"
	"github.com/Sumatoshi-tech/gitgauge/internal/config"
	"github.com/Sumatoshi-tech/gitgauge/internal/engine"
	"github.com/Sumatoshi-tech/gitgauge/internal/llm"
	"github.com/Sumatoshi-tech/gitgauge/internal/report"
)

// ErrRepositoryLoad indicates a failure to open or read the git repository.
var ErrRepositoryLoad = errors.New("failed to load repository")

// llmBatchSize is how many unique lines one remote classification
// request carries.
const llmBatchSize = 200

type collectFunc func(path string, months int) ([]engine.Commit, error)

// AnalyzeCommand holds configuration and dependencies for the analyze command.
type AnalyzeCommand struct {
	configPath string
	months     int
	sortBy     string
	format     string
	workers    int

	collectFn collectFunc
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	return newAnalyzeCommandWithDeps(collect.Commits)
}

func newAnalyzeCommandWithDeps(collectFn collectFunc) *cobra.Command {
	ac := &AnalyzeCommand{collectFn: collectFn}

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze commit history and score contributors",
		Long: "Analyze git repository commits: classify added lines, verify commit\n" +
			"message intent, and score each contributor's quality, difficulty, and value.",
		Args: cobra.MaximumNArgs(1),
		RunE: ac.run,
	}

	cmd.Flags().StringVar(&ac.configPath, "config", "", "Config file path (default: .gitgauge.yaml in CWD or $HOME)")
	cmd.Flags().IntVarP(&ac.months, "months", "m", config.DefaultMonths, "Months of history to analyze (0 = all commits)")
	cmd.Flags().StringVarP(&ac.sortBy, "sort-by", "s", config.DefaultSortBy, "Sort results by: value, quality, difficulty, commits")
	cmd.Flags().StringVarP(&ac.format, "format", "f", config.DefaultFormat, "Output format: table, detailed, json, yaml")
	cmd.Flags().IntVar(&ac.workers, "workers", config.DefaultWorkers, "Number of parallel workers (0 = use CPU count)")

	return cmd
}

func (ac *AnalyzeCommand) run(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	cfg, err := config.Load(ac.configPath)
	if err != nil {
		return err
	}

	ac.applyFlagOverrides(cmd, cfg)

	// Flag values skipped the load-time check, so validate again.
	if err := cfg.Validate(); err != nil {
		return err
	}

	sortKey, err := report.ParseSortKey(cfg.SortBy)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	commits, err := ac.collectFn(path, cfg.Months)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRepositoryLoad, err)
	}

	classifier, err := buildClassifier(cmd.Context(), cfg, commits, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	coordinator := engine.NewCoordinator(engine.Options{
		Classifier: classifier,
		Workers:    cfg.Workers,
		Logger:     slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)),
	})

	result, err := coordinator.Analyze(cmd.Context(), commits)
	if err != nil {
		return err
	}

	return report.New(result, sortKey).Render(cmd.OutOrStdout(), format)
}

// applyFlagOverrides lets explicit CLI flags win over file and env values.
func (ac *AnalyzeCommand) applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("months") {
		cfg.Months = ac.months
	}

	if cmd.Flags().Changed("sort-by") {
		cfg.SortBy = ac.sortBy
	}

	if cmd.Flags().Changed("format") {
		cfg.Format = ac.format
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workers = ac.workers
	}
}

// buildClassifier returns the configured line classifier. In llm mode the
// unique added lines are primed in batches up front; priming failures
// degrade to the heuristic path with a warning instead of aborting.
func buildClassifier(
	ctx context.Context,
	cfg *config.Config,
	commits []engine.Commit,
	errWriter io.Writer,
) (classify.Classifier, error) {
	if cfg.Classifier.Mode != config.ClassifierLLM {
		return classify.NewHeuristic(), nil
	}

	remote := llm.New(cfg.Classifier.LLM)
	logger := slog.New(slog.NewTextHandler(errWriter, nil))

	for _, batch := range lineBatches(commits, llmBatchSize) {
		if primeErr := remote.Prime(ctx, batch); primeErr != nil {
			logger.Warn("remote classification failed, using heuristic", "error", primeErr)

			break
		}
	}

	return remote, nil
}

// lineBatches collects the distinct added lines across all commits into
// batches of at most size lines.
func lineBatches(commits []engine.Commit, size int) [][]string {
	seen := make(map[string]bool)

	var batches [][]string

	var current []string

	for i := range commits {
		for _, file := range commits[i].Files {
			for _, line := range file.AddedLines {
				if seen[line] {
					continue
				}

				seen[line] = true

				current = append(current, line)
				if len(current) == size {
					batches = append(batches, current)
					current = nil
				}
			}
		}
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches
}
