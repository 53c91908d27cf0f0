// Package diffstat aggregates per-commit diff statistics: churn, touched
// files, line category counts, and a per-language breakdown.
package diffstat

import (
	"errors"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/gitgauge/internal/classify"
	"github.com/Sumatoshi-tech/gitgauge/pkg/mathutil"
)

// ErrDiffUnavailable marks a commit whose diff could not be retrieved
// (e.g. missing parent in a shallow clone). Such commits are skipped
// from aggregation, never counted as zero-activity commits.
var ErrDiffUnavailable = errors.New("diffstat: commit diff unavailable")

// langOther is the bucket for files whose language cannot be detected.
const langOther = "Other"

// FileDiff is the diff of a single file within one commit. Binary files
// and renames without content changes carry empty line slices but still
// count as a touched file.
type FileDiff struct {
	Path         string
	AddedLines   []string
	RemovedLines []string
}

// LineStats holds added/removed line counts for one language bucket.
type LineStats struct {
	Added   int `json:"added"   yaml:"added"`
	Removed int `json:"removed" yaml:"removed"`
}

// Stats is the aggregate diff statistics for one commit.
type Stats struct {
	LinesAdded     int
	LinesDeleted   int
	Files          []string
	CategoryCounts map[classify.Category]int
	Languages      map[string]LineStats
}

// FunctionalRatio is the fraction of added lines classified functional.
// Defined as 0 when no lines were added.
func (s *Stats) FunctionalRatio() float64 {
	return mathutil.SafeRatio(float64(s.CategoryCounts[classify.Functional]), float64(s.LinesAdded))
}

// CommentRatio is the fraction of added lines classified as comments.
func (s *Stats) CommentRatio() float64 {
	return mathutil.SafeRatio(float64(s.CategoryCounts[classify.Comment]), float64(s.LinesAdded))
}

// DebugRatio is the fraction of added lines classified as debug output.
func (s *Stats) DebugRatio() float64 {
	return mathutil.SafeRatio(float64(s.CategoryCounts[classify.Debug]), float64(s.LinesAdded))
}

// Churn is the total number of lines added plus deleted.
func (s *Stats) Churn() int {
	return s.LinesAdded + s.LinesDeleted
}

// Analyzer classifies every added line of a commit's diff and tallies
// the results. Removed lines count toward churn but are not classified.
type Analyzer struct {
	classifier classify.Classifier
}

// NewAnalyzer creates a diff analyzer backed by the given classifier.
// A nil classifier falls back to the default heuristic.
func NewAnalyzer(classifier classify.Classifier) *Analyzer {
	if classifier == nil {
		classifier = classify.NewHeuristic()
	}

	return &Analyzer{classifier: classifier}
}

// Analyze tallies one commit's file diffs into Stats.
// Invariant: the category counts sum exactly to LinesAdded.
func (a *Analyzer) Analyze(files []FileDiff) *Stats {
	stats := &Stats{
		CategoryCounts: make(map[classify.Category]int),
		Languages:      make(map[string]LineStats),
	}

	seen := make(map[string]struct{}, len(files))

	for _, file := range files {
		if _, ok := seen[file.Path]; !ok {
			seen[file.Path] = struct{}{}
			stats.Files = append(stats.Files, file.Path)
		}

		lang := detectLanguage(file.Path)
		ls := stats.Languages[lang]

		for _, line := range file.AddedLines {
			stats.LinesAdded++
			stats.CategoryCounts[a.classifier.Classify(line)]++
			ls.Added++
		}

		stats.LinesDeleted += len(file.RemovedLines)
		ls.Removed += len(file.RemovedLines)

		if ls.Added > 0 || ls.Removed > 0 {
			stats.Languages[lang] = ls
		}
	}

	return stats
}

// detectLanguage resolves the language bucket for a path by filename.
func detectLanguage(path string) string {
	lang := enry.GetLanguage(path, nil)
	if lang == "" {
		return langOther
	}

	return lang
}
