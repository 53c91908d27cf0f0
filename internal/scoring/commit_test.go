package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/gitgauge/internal/classify"
	"github.com/Sumatoshi-tech/gitgauge/internal/diffstat"
	"github.com/Sumatoshi-tech/gitgauge/internal/intent"
	"github.com/Sumatoshi-tech/gitgauge/internal/scoring"
)

func newStats(functional, comment, debug, blank, deleted, files int) *diffstat.Stats {
	paths := make([]string, files)
	for i := range paths {
		paths[i] = string(rune('a'+i%26)) + ".go"
	}

	return &diffstat.Stats{
		LinesAdded:   functional + comment + debug + blank,
		LinesDeleted: deleted,
		Files:        paths,
		CategoryCounts: map[classify.Category]int{
			classify.Functional: functional,
			classify.Comment:    comment,
			classify.Debug:      debug,
			classify.Blank:      blank,
		},
	}
}

func neutral() intent.Verification {
	return intent.Verification{Keyword: intent.Unknown, Match: intent.NeutralMatch}
}

func TestScoreMeaningfulBlend(t *testing.T) {
	t.Parallel()

	calc := scoring.NewCalculator()

	// 16 added lines, 14 functional and 2 comment.
	score := calc.Score(newStats(14, 2, 0, 0, 0, 1), neutral())

	assert.InDelta(t, 0.875, score.LogicalImpact, 0.0001)
	// 0.80*0.875 + 0.15*0.125 + 0.05*1 = 0.76875.
	assert.InDelta(t, 0.76875, score.MeaningfulScore, 0.0001)
}

func TestScoreDegenerateDiff(t *testing.T) {
	t.Parallel()

	calc := scoring.NewCalculator()

	score := calc.Score(newStats(0, 0, 0, 0, 0, 0), neutral())

	assert.InDelta(t, 0.0, score.LogicalImpact, 0)
	assert.InDelta(t, 0.0, score.MeaningfulScore, 0)
	assert.InDelta(t, 0.0, score.Quality, 0)
	assert.InDelta(t, 0.0, score.Difficulty, 0)
}

func TestScoreRangesAreBounded(t *testing.T) {
	t.Parallel()

	calc := scoring.NewCalculator()

	cases := []*diffstat.Stats{
		newStats(1000, 0, 0, 0, 1000, 500),
		newStats(0, 0, 50, 0, 0, 1),
		newStats(1, 1, 1, 1, 1, 1),
		newStats(0, 0, 0, 0, 500, 3),
	}

	for _, stats := range cases {
		score := calc.Score(stats, neutral())

		assert.GreaterOrEqual(t, score.Quality, 0.0)
		assert.LessOrEqual(t, score.Quality, 100.0)
		assert.GreaterOrEqual(t, score.Difficulty, 0.0)
		assert.LessOrEqual(t, score.Difficulty, 100.0)
		assert.GreaterOrEqual(t, score.LogicalImpact, 0.0)
		assert.LessOrEqual(t, score.LogicalImpact, 1.0)
		assert.GreaterOrEqual(t, score.MeaningfulScore, 0.0)
		assert.LessOrEqual(t, score.MeaningfulScore, 1.0)
	}
}

func TestScoreLogicalImpactMonotone(t *testing.T) {
	t.Parallel()

	calc := scoring.NewCalculator()

	// Shift counts from comment/debug to functional with lines_added fixed.
	prev := -1.0

	for functional := 0; functional <= 10; functional++ {
		stats := newStats(functional, 10-functional, 0, 0, 0, 1)
		score := calc.Score(stats, neutral())

		assert.GreaterOrEqual(t, score.LogicalImpact, prev)
		prev = score.LogicalImpact
	}
}

func TestScoreBalancedChurnBeatsPureAddition(t *testing.T) {
	t.Parallel()

	calc := scoring.NewCalculator()

	balanced := calc.Score(newStats(50, 0, 0, 0, 50, 2), neutral())
	additive := calc.Score(newStats(50, 0, 0, 0, 0, 2), neutral())

	assert.Greater(t, balanced.Quality, additive.Quality)
}

func TestScoreDifficultyDiminishingReturns(t *testing.T) {
	t.Parallel()

	calc := scoring.NewCalculator()

	small := calc.Score(newStats(100, 0, 0, 0, 0, 20), neutral())
	huge := calc.Score(newStats(100, 0, 0, 0, 0, 500), neutral())

	assert.Greater(t, huge.Difficulty, small.Difficulty)
	// Diminishing returns: 25x the files must not yield 25x the score.
	assert.Less(t, huge.Difficulty, small.Difficulty*3)
}

func TestScoreDebugPenalty(t *testing.T) {
	t.Parallel()

	calc := scoring.NewCalculator()

	clean := calc.Score(newStats(9, 1, 0, 0, 0, 1), neutral())
	noisy := calc.Score(newStats(9, 0, 1, 0, 0, 1), neutral())

	assert.Greater(t, clean.MeaningfulScore, noisy.MeaningfulScore)
}

func TestScoreCarriesMessageMatch(t *testing.T) {
	t.Parallel()

	calc := scoring.NewCalculator()

	verification := intent.Verification{Keyword: intent.Feature, Match: 0.875}
	score := calc.Score(newStats(14, 2, 0, 0, 0, 1), verification)

	assert.InDelta(t, 0.875, score.MessageMatch, 0.0001)
}
