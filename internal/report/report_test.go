package report_test

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/gitgauge/internal/engine"
	"github.com/Sumatoshi-tech/gitgauge/internal/report"
	"github.com/Sumatoshi-tech/gitgauge/internal/scoring"
)

func TestMain(m *testing.M) {
	color.NoColor = true

	os.Exit(m.Run())
}

func fixtureResult() *engine.Result {
	alice := scoring.NewAggregate("Alice")
	alice.CommitCount = 12
	alice.LinesAdded = 3400
	alice.LinesDeleted = 1200
	alice.FilesChanged = 48
	alice.AvgQuality = 72.5
	alice.AvgDifficulty = 40.1
	alice.Value = 55.3
	alice.WorkStyle = "Balanced contributor"

	bob := scoring.NewAggregate("Bob")
	bob.CommitCount = 3
	bob.LinesAdded = 150
	bob.LinesDeleted = 20
	bob.FilesChanged = 5
	bob.AvgQuality = 90.0
	bob.AvgDifficulty = 10.0
	bob.Value = 30.2
	bob.WorkStyle = "Quality-focused contributor"
	bob.Mismatches = append(bob.Mismatches,
		`commit abc12345: message suggests "fix" but added lines are mostly comment`)

	return &engine.Result{
		Authors:  map[string]*scoring.Aggregate{"Alice": alice, "Bob": bob},
		Warnings: []string{"skipping commit deadbeef: diff unavailable"},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"table", "detailed", "json", "yaml"} {
		_, err := report.ParseFormat(valid)
		require.NoError(t, err)
	}

	_, err := report.ParseFormat("csv")
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"value", "quality", "difficulty", "commits"} {
		_, err := report.ParseSortKey(valid)
		require.NoError(t, err)
	}

	_, err := report.ParseSortKey("name")
	require.ErrorIs(t, err, report.ErrUnknownSortKey)
}

func TestNewSortsDescending(t *testing.T) {
	t.Parallel()

	byValue := report.New(fixtureResult(), report.SortValue)
	require.Len(t, byValue.Authors, 2)
	assert.Equal(t, "Alice", byValue.Authors[0].Author)

	byQuality := report.New(fixtureResult(), report.SortQuality)
	assert.Equal(t, "Bob", byQuality.Authors[0].Author)

	byCommits := report.New(fixtureResult(), report.SortCommits)
	assert.Equal(t, "Alice", byCommits.Authors[0].Author)
}

func TestNewTiebreaksByName(t *testing.T) {
	t.Parallel()

	result := fixtureResult()
	result.Authors["Alice"].Value = 30.2 // Same as Bob.

	r := report.New(result, report.SortValue)

	assert.Equal(t, "Alice", r.Authors[0].Author)
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.New(fixtureResult(), report.SortValue).Render(&buf, report.FormatTable)

	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Balanced contributor")
	assert.Contains(t, out, "3,400")
	assert.Contains(t, out, "Overall Summary")
	assert.Contains(t, out, "warning: skipping commit deadbeef")
}

func TestRenderDetailed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.New(fixtureResult(), report.SortValue).Render(&buf, report.FormatDetailed)

	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "1. Alice")
	assert.Contains(t, out, "2. Bob")
	assert.Contains(t, out, "Intent Mismatches:")
	assert.Contains(t, out, "mostly comment")
	assert.Contains(t, out, "Net Change:")
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.New(fixtureResult(), report.SortValue).Render(&buf, report.FormatJSON)

	require.NoError(t, err)

	var decoded report.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Authors, 2)
	assert.Equal(t, "Alice", decoded.Authors[0].Author)
	assert.Len(t, decoded.Warnings, 1)
}

func TestRenderYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.New(fixtureResult(), report.SortValue).Render(&buf, report.FormatYAML)

	require.NoError(t, err)

	var decoded report.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Authors, 2)
	assert.Equal(t, 12, decoded.Authors[0].CommitCount)
}

func TestRenderEmptyResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	empty := &engine.Result{Authors: map[string]*scoring.Aggregate{}}

	err := report.New(empty, report.SortValue).Render(&buf, report.FormatTable)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No commits found")
}

func TestRenderUnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := report.New(fixtureResult(), report.SortValue).Render(&buf, report.Format("csv"))

	require.ErrorIs(t, err, report.ErrUnknownFormat)
}
