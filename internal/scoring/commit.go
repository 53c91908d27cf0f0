// Package scoring derives commit and author level quality metrics from
// diff statistics and intent verification results.
package scoring

import (
	"math"

	"github.com/Sumatoshi-tech/gitgauge/internal/diffstat"
	"github.com/Sumatoshi-tech/gitgauge/internal/intent"
	"github.com/Sumatoshi-tech/gitgauge/pkg/mathutil"
)

// Score scale bounds.
const (
	scoreMax = 100.0
)

// Meaningful-score blend weights. Functional code carries most of the
// value, comments add some, debug statements subtract partial credit.
const (
	weightLogical = 0.80
	weightComment = 0.15
	weightDebug   = 0.05
)

// Quality blend weights: churn balance vs. meaningful content.
const (
	qualityBalanceWeight    = 40.0
	qualityMeaningfulWeight = 60.0
)

// Difficulty scaling. Both terms use log1p so a 500-file commit does not
// dwarf a 20-file one; the reference points pin where each term tops out.
const (
	difficultyFilesCap = 40.0
	difficultyFilesRef = 50.0
	difficultyChurnCap = 60.0
	difficultyChurnRef = 1000.0
)

// CommitScore holds the per-commit metrics. Produced once, immutable.
type CommitScore struct {
	Quality         float64 `json:"quality"          yaml:"quality"`
	Difficulty      float64 `json:"difficulty"       yaml:"difficulty"`
	LogicalImpact   float64 `json:"logical_impact"   yaml:"logical_impact"`
	MessageMatch    float64 `json:"message_match"    yaml:"message_match"`
	MeaningfulScore float64 `json:"meaningful_score" yaml:"meaningful_score"`
}

// Calculator computes per-commit scores from diff statistics.
type Calculator struct{}

// NewCalculator creates a score calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Score derives the commit-level metrics. All ratios are defined as zero
// for diffs that add no lines.
func (c *Calculator) Score(stats *diffstat.Stats, verification intent.Verification) CommitScore {
	logical := stats.FunctionalRatio()
	meaningful := meaningfulScore(stats, logical)

	return CommitScore{
		Quality:         qualityScore(stats, meaningful),
		Difficulty:      difficultyScore(stats),
		LogicalImpact:   logical,
		MessageMatch:    verification.Match,
		MeaningfulScore: meaningful,
	}
}

// meaningfulScore blends category ratios into a 0..1 commit value proxy.
// Every term is zero when no lines were added, including the debug
// complement.
func meaningfulScore(stats *diffstat.Stats, logical float64) float64 {
	if stats.LinesAdded == 0 {
		return 0
	}

	score := weightLogical*logical +
		weightComment*stats.CommentRatio() +
		weightDebug*(1-stats.DebugRatio())

	return mathutil.Clamp01(score)
}

// qualityScore combines churn balance with meaningful content.
// Balanced add/delete ratios (refactors) outscore pure-addition churn.
func qualityScore(stats *diffstat.Stats, meaningful float64) float64 {
	balance := churnBalance(stats)
	quality := balance*qualityBalanceWeight + meaningful*qualityMeaningfulWeight

	return mathutil.Clamp(quality, 0, scoreMax)
}

// churnBalance is min(added, deleted) / max(added, deleted, 1) in 0..1.
func churnBalance(stats *diffstat.Stats) float64 {
	low := mathutil.Min(stats.LinesAdded, stats.LinesDeleted)
	high := mathutil.Max(mathutil.Max(stats.LinesAdded, stats.LinesDeleted), 1)

	return float64(low) / float64(high)
}

// difficultyScore scales file count and churn magnitude to 0..100 with
// diminishing returns.
func difficultyScore(stats *diffstat.Stats) float64 {
	files := logScaled(float64(len(stats.Files)), difficultyFilesRef, difficultyFilesCap)
	churn := logScaled(float64(stats.Churn()), difficultyChurnRef, difficultyChurnCap)

	return mathutil.Clamp(files+churn, 0, scoreMax)
}

// logScaled maps v onto [0, cap] logarithmically, reaching cap at ref.
func logScaled(v, ref, max float64) float64 {
	if v <= 0 {
		return 0
	}

	scaled := max * math.Log1p(v) / math.Log1p(ref)

	return mathutil.Clamp(scaled, 0, max)
}
