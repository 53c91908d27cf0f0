package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/gitgauge/internal/scoring"
)

func TestWorkStyleRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		quality    float64
		difficulty float64
		value      float64
		commits    int
		want       string
	}{
		{"high impact", 80, 40, 70, 5, scoring.StyleHighImpact},
		{"complex solver", 55, 70, 30, 5, scoring.StyleComplexSolver},
		{"consistent", 65, 40, 50, 25, scoring.StyleConsistent},
		{"high activity low value", 40, 40, 20, 18, scoring.StyleHighActivity},
		{"quality focused", 65, 40, 50, 5, scoring.StyleQualityFocused},
		{"maintenance", 40, 20, 45, 12, scoring.StyleMaintenance},
		{"balanced default", 50, 40, 50, 5, scoring.StyleBalanced},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := scoring.WorkStyleFor(scoring.StyleInput{
				Quality:    tc.quality,
				Difficulty: tc.difficulty,
				Value:      tc.value,
				Commits:    tc.commits,
			})

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWorkStylePriorityResolvesOverlap(t *testing.T) {
	t.Parallel()

	// Qualifies for both high-impact and complex-solver; the earlier
	// rule in the table wins.
	got := scoring.WorkStyleFor(scoring.StyleInput{
		Quality:    90,
		Difficulty: 90,
		Value:      90,
		Commits:    30,
	})

	assert.Equal(t, scoring.StyleHighImpact, got)
}
