// Package classify assigns added or removed source lines to content
// categories. The classification is language-agnostic: it relies on
// pattern families shared across common languages rather than a grammar.
package classify

import "strings"

// Category is the content category of a single source line.
// Categories are mutually exclusive; rule order resolves overlaps.
type Category int

// Line categories, in rule priority order.
const (
	Blank Category = iota
	Comment
	Debug
	Functional
)

// categoryNames maps categories to their report identifiers.
var categoryNames = map[Category]string{
	Blank:      "blank",
	Comment:    "comment",
	Debug:      "debug",
	Functional: "functional",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}

	return "unknown"
}

// Classifier is the capability interface for line classification.
// Implementations must be pure and total: every input line maps to
// exactly one category.
type Classifier interface {
	Classify(line string) Category
}

// Rule pairs a predicate with the category it assigns. Rules are
// evaluated top to bottom; the first match wins, so the tie-break
// order is data, not code order.
type Rule struct {
	Name     string
	Matches  func(trimmed string) bool
	Category Category
}

// commentMarkers are the prefixes that mark a line as a comment.
// Checked against the trimmed line as prefixes only, so code that
// merely contains one of these mid-line is not misclassified.
var commentMarkers = []string{
	"#",
	"//",
	"/*",
	"*",
	"--",
	`"""`,
	"'''",
	"<!--",
}

// debugCallees are logging/print identifiers matched as
// "identifier immediately followed by (", case-insensitively.
var debugCallees = []string{
	"print",
	"println",
	"printf",
	"fprintf",
	"console.log",
	"console.debug",
	"console.info",
	"console.warn",
	"console.error",
	"system.out.print",
	"system.out.println",
	"system.err.print",
	"system.err.println",
	"debug",
}

// debugPrefixes are logger-object accesses matched as "identifier.".
var debugPrefixes = []string{
	"logger.",
	"logging.",
	"log.",
}

// debugStreams are C++-style stream writers matched as "identifier <<".
var debugStreams = []string{
	"cout",
	"cerr",
}

// DefaultRules returns the ordered rule table used by the heuristic
// classifier: Blank, Comment, Debug, with Functional as the fallthrough.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "blank", Matches: isBlank, Category: Blank},
		{Name: "comment", Matches: isComment, Category: Comment},
		{Name: "debug", Matches: isDebugCall, Category: Debug},
	}
}

// Heuristic is the default rule-table classifier.
type Heuristic struct {
	rules []Rule
}

// NewHeuristic creates a classifier with the default rule table.
func NewHeuristic() *Heuristic {
	return &Heuristic{rules: DefaultRules()}
}

// Classify returns the category of a single source line.
func (h *Heuristic) Classify(line string) Category {
	trimmed := strings.TrimSpace(line)

	for _, rule := range h.rules {
		if rule.Matches(trimmed) {
			return rule.Category
		}
	}

	return Functional
}

func isBlank(trimmed string) bool {
	return trimmed == ""
}

func isComment(trimmed string) bool {
	for _, marker := range commentMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}

	return false
}

func isDebugCall(trimmed string) bool {
	lower := strings.ToLower(trimmed)

	for _, callee := range debugCallees {
		if containsCall(lower, callee) {
			return true
		}
	}

	for _, prefix := range debugPrefixes {
		if containsIdent(lower, prefix) {
			return true
		}
	}

	for _, stream := range debugStreams {
		if containsStreamWrite(lower, stream) {
			return true
		}
	}

	return false
}

// containsCall reports whether line contains callee at a word boundary,
// immediately followed by an opening parenthesis (spaces allowed).
func containsCall(line, callee string) bool {
	return matchAfterIdent(line, callee, func(rest string) bool {
		rest = strings.TrimLeft(rest, " \t")

		return strings.HasPrefix(rest, "(")
	})
}

// containsIdent reports whether line contains ident at a word boundary.
// Used for dotted logger accesses where the dot is part of ident.
func containsIdent(line, ident string) bool {
	return matchAfterIdent(line, ident, func(string) bool { return true })
}

// containsStreamWrite reports whether line contains ident at a word
// boundary followed by the << operator.
func containsStreamWrite(line, ident string) bool {
	return matchAfterIdent(line, ident, func(rest string) bool {
		rest = strings.TrimLeft(rest, " \t")

		return strings.HasPrefix(rest, "<<")
	})
}

// matchAfterIdent scans line for ident occurrences preceded by a
// non-identifier character and applies follows to the remainder.
func matchAfterIdent(line, ident string, follows func(rest string) bool) bool {
	for start := 0; ; {
		idx := strings.Index(line[start:], ident)
		if idx < 0 {
			return false
		}

		pos := start + idx
		if boundaryBefore(line, pos) && follows(line[pos+len(ident):]) {
			return true
		}

		start = pos + 1
	}
}

func boundaryBefore(line string, pos int) bool {
	if pos == 0 {
		return true
	}

	prev := line[pos-1]

	return !isIdentChar(prev)
}

func isIdentChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_':
		return true
	}

	return false
}
