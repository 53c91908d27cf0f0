package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitgauge/internal/classify"
)

func TestClassifyBlank(t *testing.T) {
	t.Parallel()

	c := classify.NewHeuristic()

	assert.Equal(t, classify.Blank, c.Classify(""))
	assert.Equal(t, classify.Blank, c.Classify("   "))
	assert.Equal(t, classify.Blank, c.Classify("\t\t"))
}

func TestClassifyComment(t *testing.T) {
	t.Parallel()

	c := classify.NewHeuristic()

	lines := []string{
		"# a python comment",
		"// a go comment",
		"/* block start",
		"* block continuation",
		"-- sql comment",
		`"""docstring`,
		"'''docstring",
		"<!-- html comment",
		"    # indented comment",
	}

	for _, line := range lines {
		assert.Equal(t, classify.Comment, c.Classify(line), "line: %q", line)
	}
}

func TestClassifyCommentIsPrefixNotSubstring(t *testing.T) {
	t.Parallel()

	c := classify.NewHeuristic()

	// Mid-line comment characters do not make the line a comment.
	assert.Equal(t, classify.Functional, c.Classify(`url := "http://example.com"`))
	assert.Equal(t, classify.Functional, c.Classify("x = a - -b"))
}

func TestClassifyDebug(t *testing.T) {
	t.Parallel()

	c := classify.NewHeuristic()

	lines := []string{
		`print("hello")`,
		`print ("spaced")`,
		`console.log(value)`,
		`console.error(err)`,
		`System.out.println("x");`,
		`logger.info("started")`,
		`logging.debug("trace")`,
		`log.Printf("%v", err)`,
		`debug(state)`,
		`std::cout << "x" << std::endl;`,
		`cerr << msg;`,
		`fprintf(stderr, "boom")`,
	}

	for _, line := range lines {
		assert.Equal(t, classify.Debug, c.Classify(line), "line: %q", line)
	}
}

func TestClassifyDebugRequiresCallShape(t *testing.T) {
	t.Parallel()

	c := classify.NewHeuristic()

	// Identifier substrings and non-call mentions stay functional.
	assert.Equal(t, classify.Functional, c.Classify("blueprint := load()"))
	assert.Equal(t, classify.Functional, c.Classify("sprintTotal += 1"))
	assert.Equal(t, classify.Functional, c.Classify("catalog = fetch()"))
}

func TestClassifyCommentBeatsDebug(t *testing.T) {
	t.Parallel()

	c := classify.NewHeuristic()

	// A commented-out debug call is a comment: rule 2 precedes rule 3.
	assert.Equal(t, classify.Comment, c.Classify(`# print("x")`))
	assert.Equal(t, classify.Comment, c.Classify(`// console.log(y)`))
}

func TestClassifyFunctional(t *testing.T) {
	t.Parallel()

	c := classify.NewHeuristic()

	lines := []string{
		"func main() {",
		"return nil",
		"x := compute(a, b)",
		"if err != nil {",
		"import os",
	}

	for _, line := range lines {
		assert.Equal(t, classify.Functional, c.Classify(line), "line: %q", line)
	}
}

func TestClassifyIsIdempotentOnCanonicalExamples(t *testing.T) {
	t.Parallel()

	c := classify.NewHeuristic()

	canonical := map[classify.Category]string{
		classify.Blank:      "",
		classify.Comment:    "// comment",
		classify.Debug:      "print(x)",
		classify.Functional: "x := 1",
	}

	for want, line := range canonical {
		got := c.Classify(line)
		require.Equal(t, want, got)
		assert.Equal(t, got, c.Classify(line))
	}
}

func TestDefaultRulesOrder(t *testing.T) {
	t.Parallel()

	rules := classify.DefaultRules()

	require.Len(t, rules, 3)
	assert.Equal(t, classify.Blank, rules[0].Category)
	assert.Equal(t, classify.Comment, rules[1].Category)
	assert.Equal(t, classify.Debug, rules[2].Category)
}

func TestCategoryString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "functional", classify.Functional.String())
	assert.Equal(t, "comment", classify.Comment.String())
	assert.Equal(t, "debug", classify.Debug.String())
	assert.Equal(t, "blank", classify.Blank.String())
	assert.Equal(t, "unknown", classify.Category(99).String())
}
