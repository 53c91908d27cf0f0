package scoring

// Work-style labels.
const (
	StyleHighImpact     = "High-impact contributor"
	StyleComplexSolver  = "Complex problem solver"
	StyleConsistent     = "Consistent high-quality contributor"
	StyleHighActivity   = "High activity, focus on value"
	StyleQualityFocused = "Quality-focused contributor"
	StyleMaintenance    = "Maintenance contributor"
	StyleBalanced       = "Balanced contributor"
)

// Work-style thresholds.
const (
	styleQualityHigh       = 70.0
	styleValueHigh         = 60.0
	styleDifficultyHigh    = 60.0
	styleQualityMid        = 50.0
	styleCommitsConsistent = 20
	styleQualityGood       = 60.0
	styleCommitsActive     = 15
	styleValueLow          = 40.0
	styleCommitsFew        = 10
	styleDifficultyLow     = 30.0
)

// StyleInput is the finalized author metrics a style rule inspects.
type StyleInput struct {
	Quality    float64
	Difficulty float64
	Value      float64
	Commits    int
}

// styleRule pairs a label with its predicate. Rules are evaluated top to
// bottom and the first match wins, so exactly one label is produced and
// the tie-break order is explicit data.
type styleRule struct {
	Label   string
	Matches func(in StyleInput) bool
}

// styleRules is the ordered decision table, most specific first, ending
// with the catch-all default.
var styleRules = []styleRule{
	{StyleHighImpact, func(in StyleInput) bool {
		return in.Quality > styleQualityHigh && in.Value > styleValueHigh
	}},
	{StyleComplexSolver, func(in StyleInput) bool {
		return in.Difficulty > styleDifficultyHigh && in.Quality > styleQualityMid
	}},
	{StyleConsistent, func(in StyleInput) bool {
		return in.Commits > styleCommitsConsistent && in.Quality > styleQualityGood
	}},
	{StyleHighActivity, func(in StyleInput) bool {
		return in.Commits > styleCommitsActive && in.Value < styleValueLow
	}},
	{StyleQualityFocused, func(in StyleInput) bool {
		return in.Quality > styleQualityGood && in.Commits < styleCommitsFew
	}},
	{StyleMaintenance, func(in StyleInput) bool {
		return in.Difficulty < styleDifficultyLow && in.Commits > styleCommitsFew
	}},
	{StyleBalanced, func(StyleInput) bool { return true }},
}

// WorkStyleFor maps finalized author metrics to a categorical label.
func WorkStyleFor(in StyleInput) string {
	for _, rule := range styleRules {
		if rule.Matches(in) {
			return rule.Label
		}
	}

	return StyleBalanced
}
