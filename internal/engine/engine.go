// Package engine orchestrates the per-commit analysis pipeline and the
// per-author reduction. It is a pure computation over an
// already-materialized commit sequence: no I/O, no shared mutable state
// beyond worker-private accumulators.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Sumatoshi-tech/gitgauge/internal/classify"
	"github.com/Sumatoshi-tech/gitgauge/internal/diffstat"
	"github.com/Sumatoshi-tech/gitgauge/internal/intent"
	"github.com/Sumatoshi-tech/gitgauge/internal/scoring"
)

// ErrNilCommits is the only fatal precondition: the input sequence
// itself is invalid. Individual bad commits never abort a run.
var ErrNilCommits = errors.New("engine: nil commit sequence")

// UnknownAuthor is the sentinel bucket for commits without an author.
const UnknownAuthor = "<unknown>"

// Commit is the engine-facing record produced by a commit source.
// DiffErr marks commits whose diff retrieval failed; they are dropped
// from all aggregates with a warning.
type Commit struct {
	Hash      string
	Author    string
	Timestamp time.Time
	Message   string
	Files     []diffstat.FileDiff
	DiffErr   error
}

// Result maps author names to finalized aggregates, plus one warning
// per dropped commit in input order.
type Result struct {
	Authors  map[string]*scoring.Aggregate
	Warnings []string
}

// Options configures a Coordinator.
type Options struct {
	// Classifier overrides the default heuristic line classifier.
	Classifier classify.Classifier

	// Workers is the number of concurrent commit workers.
	// Zero means GOMAXPROCS.
	Workers int

	// Logger receives per-commit warnings. Nil means slog.Default.
	Logger *slog.Logger
}

// Coordinator runs the classification, verification, and scoring stages
// over a commit sequence and reduces results per author.
type Coordinator struct {
	analyzer *diffstat.Analyzer
	verifier *intent.Verifier
	calc     *scoring.Calculator
	workers  int
	logger   *slog.Logger
}

// NewCoordinator creates a coordinator with the given options.
func NewCoordinator(opts Options) *Coordinator {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Coordinator{
		analyzer: diffstat.NewAnalyzer(opts.Classifier),
		verifier: intent.NewVerifier(),
		calc:     scoring.NewCalculator(),
		workers:  workers,
		logger:   logger,
	}
}

// partial is one worker's immutable output: private accumulators plus
// the warnings for its contiguous chunk.
type partial struct {
	authors  map[string]*scoring.Aggregate
	warnings []string
}

// Analyze processes every commit and returns finalized per-author
// aggregates. Commits are mapped in parallel; per-author reduction uses
// field-wise merge, which is exactly equivalent to sequential folding
// because the metric set is order-insensitive.
func (c *Coordinator) Analyze(ctx context.Context, commits []Commit) (*Result, error) {
	if commits == nil {
		return nil, ErrNilCommits
	}

	partials, err := c.mapCommits(ctx, commits)
	if err != nil {
		return nil, err
	}

	result := &Result{Authors: make(map[string]*scoring.Aggregate)}

	for _, p := range partials {
		result.Warnings = append(result.Warnings, p.warnings...)

		for author, agg := range p.authors {
			if existing, ok := result.Authors[author]; ok {
				existing.Merge(agg)
			} else {
				result.Authors[author] = agg
			}
		}
	}

	for _, agg := range result.Authors {
		agg.Finalize()
	}

	return result, nil
}

// mapCommits splits the sequence into contiguous chunks, one worker
// each, and collects the partials in chunk order so warnings stay
// deterministic.
func (c *Coordinator) mapCommits(ctx context.Context, commits []Commit) ([]partial, error) {
	workers := c.workers
	if workers > len(commits) {
		workers = len(commits)
	}

	if workers <= 1 {
		p := c.consumeChunk(ctx, commits)

		return []partial{p}, ctx.Err()
	}

	partials := make([]partial, workers)
	chunkSize := (len(commits) + workers - 1) / workers

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize

		if end > len(commits) {
			end = len(commits)
		}

		wg.Add(1)

		go func(slot int, chunk []Commit) {
			defer wg.Done()

			partials[slot] = c.consumeChunk(ctx, chunk)
		}(i, commits[start:end])
	}

	wg.Wait()

	// Cancelled runs discard partials; nothing external was held.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return partials, nil
}

// consumeChunk folds one chunk of commits into worker-private aggregates.
func (c *Coordinator) consumeChunk(ctx context.Context, commits []Commit) partial {
	p := partial{authors: make(map[string]*scoring.Aggregate)}

	for i := range commits {
		if ctx.Err() != nil {
			return p
		}

		c.consume(&commits[i], &p)
	}

	return p
}

// consume scores one commit and folds it into its author's accumulator.
func (c *Coordinator) consume(commit *Commit, p *partial) {
	if commit.DiffErr != nil {
		warning := fmt.Sprintf("skipping commit %s: diff unavailable", shortHash(commit.Hash))
		p.warnings = append(p.warnings, warning)
		c.logger.Warn("skipping commit", "hash", commit.Hash, "error", commit.DiffErr)

		return
	}

	author := commit.Author
	if author == "" {
		author = UnknownAuthor
	}

	stats := c.analyzer.Analyze(commit.Files)
	verification := c.verifier.Verify(commit.Message, stats)
	score := c.calc.Score(stats, verification)

	// Attribute mismatch explanations to the commit for the report.
	if verification.Mismatch() {
		verification.Explanation = fmt.Sprintf("commit %s: %s", shortHash(commit.Hash), verification.Explanation)
	}

	agg, ok := p.authors[author]
	if !ok {
		agg = scoring.NewAggregate(author)
		p.authors[author] = agg
	}

	agg.Add(score, stats, verification)
}

const shortHashLen = 8

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}

	if hash == "" {
		return "<unknown>"
	}

	return hash
}
