package scoring

import (
	"github.com/Sumatoshi-tech/gitgauge/internal/diffstat"
	"github.com/Sumatoshi-tech/gitgauge/internal/intent"
	"github.com/Sumatoshi-tech/gitgauge/pkg/mathutil"
)

// Value-score terms. Net contribution and consistency are both capped so
// raw line volume or commit count alone cannot dominate the score.
const (
	valueNetLinesScale    = 100.0
	valueContributionCap  = 30.0
	valueFrequencyPerUnit = 2.0
	valueFrequencyCap     = 30.0
	valueQualityBase      = 0.5
	valueQualityWeight    = 0.5
	valueDifficultyBonus  = 1.2
	valueDifficultyFloor  = 50.0
)

// Aggregate accumulates per-commit results for a single author. It is a
// plain value accumulator: workers fold commits into private instances
// and the reduce step merges them, so no mutable state is shared.
type Aggregate struct {
	Author       string                        `json:"author"         yaml:"author"`
	CommitCount  int                           `json:"commit_count"   yaml:"commit_count"`
	LinesAdded   int                           `json:"lines_added"    yaml:"lines_added"`
	LinesDeleted int                           `json:"lines_deleted"  yaml:"lines_deleted"`
	FilesChanged int                           `json:"files_changed"  yaml:"files_changed"`
	Languages    map[string]diffstat.LineStats `json:"languages"      yaml:"languages"`
	Mismatches   []string                      `json:"mismatches"     yaml:"mismatches"`

	// Finalized metrics, valid after Finalize.
	AvgQuality       float64 `json:"avg_quality"        yaml:"avg_quality"`
	AvgDifficulty    float64 `json:"avg_difficulty"     yaml:"avg_difficulty"`
	AvgLogicalImpact float64 `json:"avg_logical_impact" yaml:"avg_logical_impact"`
	AvgMessageMatch  float64 `json:"avg_message_match"  yaml:"avg_message_match"`
	AvgMeaningful    float64 `json:"avg_meaningful"     yaml:"avg_meaningful"`
	Value            float64 `json:"value"              yaml:"value"`
	WorkStyle        string  `json:"work_style"         yaml:"work_style"`

	sumQuality    float64
	sumDifficulty float64
	sumLogical    float64
	sumMatch      float64
	sumMeaningful float64
}

// NewAggregate creates an empty accumulator for one author.
func NewAggregate(author string) *Aggregate {
	return &Aggregate{
		Author:    author,
		Languages: make(map[string]diffstat.LineStats),
	}
}

// Add folds one commit's results into the running sums.
func (a *Aggregate) Add(score CommitScore, stats *diffstat.Stats, verification intent.Verification) {
	a.CommitCount++
	a.LinesAdded += stats.LinesAdded
	a.LinesDeleted += stats.LinesDeleted
	a.FilesChanged += len(stats.Files)

	for lang, ls := range stats.Languages {
		cur := a.Languages[lang]
		a.Languages[lang] = diffstat.LineStats{
			Added:   cur.Added + ls.Added,
			Removed: cur.Removed + ls.Removed,
		}
	}

	a.sumQuality += score.Quality
	a.sumDifficulty += score.Difficulty
	a.sumLogical += score.LogicalImpact
	a.sumMatch += score.MessageMatch
	a.sumMeaningful += score.MeaningfulScore

	if verification.Mismatch() {
		a.Mismatches = append(a.Mismatches, verification.Explanation)
	}
}

// Merge folds another partial aggregate for the same author into this
// one. Counts sum field-wise and score sums add directly, which equals a
// weighted-mean merge by each partial's commit count.
func (a *Aggregate) Merge(other *Aggregate) {
	if other == nil {
		return
	}

	a.CommitCount += other.CommitCount
	a.LinesAdded += other.LinesAdded
	a.LinesDeleted += other.LinesDeleted
	a.FilesChanged += other.FilesChanged

	for lang, ls := range other.Languages {
		cur := a.Languages[lang]
		a.Languages[lang] = diffstat.LineStats{
			Added:   cur.Added + ls.Added,
			Removed: cur.Removed + ls.Removed,
		}
	}

	a.sumQuality += other.sumQuality
	a.sumDifficulty += other.sumDifficulty
	a.sumLogical += other.sumLogical
	a.sumMatch += other.sumMatch
	a.sumMeaningful += other.sumMeaningful

	a.Mismatches = append(a.Mismatches, other.Mismatches...)
}

// NetLines is the author's net line contribution.
func (a *Aggregate) NetLines() int {
	return a.LinesAdded - a.LinesDeleted
}

// Finalize computes the averaged metrics, the value score, and the work
// style label. Call once after all commits are consumed; the aggregate
// is not mutated afterwards.
func (a *Aggregate) Finalize() {
	if a.CommitCount > 0 {
		n := float64(a.CommitCount)
		a.AvgQuality = mathutil.Round2(a.sumQuality / n)
		a.AvgDifficulty = mathutil.Round2(a.sumDifficulty / n)
		a.AvgLogicalImpact = mathutil.Round2(a.sumLogical / n)
		a.AvgMessageMatch = mathutil.Round2(a.sumMatch / n)
		a.AvgMeaningful = mathutil.Round2(a.sumMeaningful / n)
	}

	a.Value = a.valueScore()
	a.WorkStyle = WorkStyleFor(StyleInput{
		Quality:    a.AvgQuality,
		Difficulty: a.AvgDifficulty,
		Value:      a.Value,
		Commits:    a.CommitCount,
	})
}

// valueScore rewards net positive, quality-adjusted, consistent
// contribution. Both volume terms are capped, and the quality multiplier
// makes the score monotone in average quality.
func (a *Aggregate) valueScore() float64 {
	if a.CommitCount == 0 {
		return 0
	}

	contribution := mathutil.Clamp(float64(a.NetLines())/valueNetLinesScale, 0, valueContributionCap)
	frequency := mathutil.Clamp(float64(a.CommitCount)*valueFrequencyPerUnit, 0, valueFrequencyCap)
	qualityFactor := a.AvgQuality / scoreMax

	value := (contribution + frequency) * (valueQualityBase + qualityFactor*valueQualityWeight)

	if a.AvgDifficulty > valueDifficultyFloor {
		value *= valueDifficultyBonus
	}

	return mathutil.Round2(mathutil.Clamp(value, 0, scoreMax))
}
