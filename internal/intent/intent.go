// Package intent extracts the declared intent of a commit message and
// verifies it against what the diff actually contains.
package intent

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/gitgauge/internal/classify"
	"github.com/Sumatoshi-tech/gitgauge/internal/diffstat"
)

// Keyword is the dominant declared-intent family of a commit message.
type Keyword int

// Keyword families.
const (
	Unknown Keyword = iota
	Fix
	Feature
	Refactor
	Docs
	Test
)

var keywordNames = map[Keyword]string{
	Unknown:  "unknown",
	Fix:      "fix",
	Feature:  "feature",
	Refactor: "refactor",
	Docs:     "docs",
	Test:     "test",
}

func (k Keyword) String() string {
	if name, ok := keywordNames[k]; ok {
		return name
	}

	return "unknown"
}

// NeutralMatch is the match score for messages with no recognized
// keyword: insufficient signal, not a mismatch.
const NeutralMatch = 0.5

// mismatchThreshold is the score below which an explanation is emitted.
const mismatchThreshold = 0.4

// Family pairs a keyword with its trigger tokens and the diff signal it
// implies. Families form an ordered table: the first family with any
// matching token wins, so priority is visible data, not code order.
type Family struct {
	Keyword Keyword
	Tokens  []string

	// ExpectsFunctional is true for families whose diffs should be
	// dominated by functional code. Docs expects the opposite.
	ExpectsFunctional bool
}

// Families returns the keyword families in fixed priority order.
func Families() []Family {
	return []Family{
		{Keyword: Fix, Tokens: []string{"fix", "bug", "resolve", "patch"}, ExpectsFunctional: true},
		{Keyword: Feature, Tokens: []string{"feat", "add", "implement", "new"}, ExpectsFunctional: true},
		{Keyword: Refactor, Tokens: []string{"refactor", "restructure", "reorganize"}, ExpectsFunctional: true},
		{Keyword: Docs, Tokens: []string{"docs", "documentation", "comment"}, ExpectsFunctional: false},
		{Keyword: Test, Tokens: []string{"test", "spec"}, ExpectsFunctional: true},
	}
}

// Verification is the result of matching a message against its diff.
type Verification struct {
	Keyword     Keyword
	Match       float64
	Explanation string
}

// Mismatch reports whether the verification produced an explanation.
func (v Verification) Mismatch() bool {
	return v.Explanation != ""
}

// Verifier scores how well commit messages describe their diffs.
type Verifier struct {
	families []Family
}

// NewVerifier creates a verifier with the default family table.
func NewVerifier() *Verifier {
	return &Verifier{families: Families()}
}

// Verify extracts the dominant keyword from message and scores it
// against the diff's functional ratio. Unknown keywords score the
// neutral 0.5 and never produce an explanation.
func (v *Verifier) Verify(message string, stats *diffstat.Stats) Verification {
	family, found := v.extract(message)
	if !found {
		return Verification{Keyword: Unknown, Match: NeutralMatch}
	}

	r := stats.FunctionalRatio()

	match := r
	if !family.ExpectsFunctional {
		match = 1 - r
	}

	result := Verification{Keyword: family.Keyword, Match: match}

	if match < mismatchThreshold {
		result.Explanation = fmt.Sprintf(
			"message suggests %q but added lines are mostly %s",
			family.Keyword, dominantCategory(stats),
		)
	}

	return result
}

// extract returns the first family with any token present in message.
func (v *Verifier) extract(message string) (Family, bool) {
	lower := strings.ToLower(message)

	for _, family := range v.families {
		for _, token := range family.Tokens {
			if strings.Contains(lower, token) {
				return family, true
			}
		}
	}

	return Family{}, false
}

// dominantCategory names the category with the highest added-line count.
func dominantCategory(stats *diffstat.Stats) string {
	best := classify.Functional
	bestCount := -1

	for _, cat := range []classify.Category{classify.Functional, classify.Comment, classify.Debug, classify.Blank} {
		if count := stats.CategoryCounts[cat]; count > bestCount {
			best = cat
			bestCount = count
		}
	}

	return best.String()
}
