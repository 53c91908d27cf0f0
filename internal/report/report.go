// Package report renders analysis results in human and machine formats.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/gitgauge/internal/engine"
	"github.com/Sumatoshi-tech/gitgauge/internal/scoring"
	"github.com/Sumatoshi-tech/gitgauge/pkg/mathutil"
)

// Format selects the output rendering.
type Format string

// Supported output formats.
const (
	FormatTable    Format = "table"
	FormatDetailed Format = "detailed"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// SortKey selects the metric authors are ordered by.
type SortKey string

// Supported sort keys.
const (
	SortValue      SortKey = "value"
	SortQuality    SortKey = "quality"
	SortDifficulty SortKey = "difficulty"
	SortCommits    SortKey = "commits"
)

// ErrUnknownFormat is returned for an unrecognized output format.
var ErrUnknownFormat = errors.New("unknown output format")

// ErrUnknownSortKey is returned for an unrecognized sort key.
var ErrUnknownSortKey = errors.New("unknown sort key")

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatDetailed, FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ParseSortKey validates a sort key string.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortValue, SortQuality, SortDifficulty, SortCommits:
		return SortKey(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
}

// Report is a sorted, render-ready view of an analysis result.
type Report struct {
	Authors  []*scoring.Aggregate `json:"authors"  yaml:"authors"`
	Warnings []string             `json:"warnings" yaml:"warnings"`
}

// New flattens an engine result into a report sorted by the given key,
// descending, with author name as the tiebreaker.
func New(result *engine.Result, sortBy SortKey) *Report {
	authors := make([]*scoring.Aggregate, 0, len(result.Authors))
	for _, agg := range result.Authors {
		authors = append(authors, agg)
	}

	sort.Slice(authors, func(i, j int) bool {
		ki, kj := sortMetric(authors[i], sortBy), sortMetric(authors[j], sortBy)
		if ki != kj {
			return ki > kj
		}

		return authors[i].Author < authors[j].Author
	})

	return &Report{Authors: authors, Warnings: result.Warnings}
}

func sortMetric(agg *scoring.Aggregate, key SortKey) float64 {
	switch key {
	case SortQuality:
		return agg.AvgQuality
	case SortDifficulty:
		return agg.AvgDifficulty
	case SortCommits:
		return float64(agg.CommitCount)
	case SortValue:
		return agg.Value
	default:
		return agg.Value
	}
}

// Render writes the report to w in the given format. Table and detailed
// formats append the overall summary block.
func (r *Report) Render(w io.Writer, format Format) error {
	switch format {
	case FormatTable:
		r.renderTable(w)
		r.renderSummary(w)

		return nil
	case FormatDetailed:
		r.renderDetailed(w)
		r.renderSummary(w)

		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}

		return nil
	case FormatYAML:
		if err := yaml.NewEncoder(w).Encode(r); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (r *Report) renderTable(w io.Writer) {
	fmt.Fprintf(w, "Contributors:\n\n")

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{
		"Author", "Commits", "Lines +", "Lines -", "Files",
		"Quality", "Difficulty", "Value", "Work Style",
	})

	for _, agg := range r.Authors {
		tbl.AppendRow(table.Row{
			agg.Author,
			agg.CommitCount,
			humanize.Comma(int64(agg.LinesAdded)),
			humanize.Comma(int64(agg.LinesDeleted)),
			agg.FilesChanged,
			fmt.Sprintf("%.1f", agg.AvgQuality),
			fmt.Sprintf("%.1f", agg.AvgDifficulty),
			fmt.Sprintf("%.1f", agg.Value),
			agg.WorkStyle,
		})
	}

	tbl.Render()

	r.renderWarnings(w)
}

func (r *Report) renderDetailed(w io.Writer) {
	fmt.Fprintf(w, "Contributors - Detailed View:\n")

	heading := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgYellow)

	for i, agg := range r.Authors {
		fmt.Fprintln(w)
		heading.Fprintf(w, "%d. %s\n", i+1, agg.Author)

		label.Fprintf(w, "  Activity:\n")
		fmt.Fprintf(w, "    Commits:       %d\n", agg.CommitCount)
		fmt.Fprintf(w, "    Lines Added:   %s\n", humanize.Comma(int64(agg.LinesAdded)))
		fmt.Fprintf(w, "    Lines Deleted: %s\n", humanize.Comma(int64(agg.LinesDeleted)))
		fmt.Fprintf(w, "    Files Changed: %d\n", agg.FilesChanged)
		fmt.Fprintf(w, "    Net Change:    %s lines\n", humanize.Comma(int64(agg.NetLines())))

		label.Fprintf(w, "  Scores:\n")
		fmt.Fprintf(w, "    Quality:    %.2f/100\n", agg.AvgQuality)
		fmt.Fprintf(w, "    Difficulty: %.2f/100\n", agg.AvgDifficulty)
		fmt.Fprintf(w, "    Value:      %.2f/100\n", agg.Value)
		fmt.Fprintf(w, "    Msg Match:  %.2f\n", agg.AvgMessageMatch)

		if len(agg.Languages) > 0 {
			label.Fprintf(w, "  Languages:\n")

			for _, lang := range sortedLanguages(agg) {
				ls := agg.Languages[lang]
				fmt.Fprintf(w, "    %-12s +%d/-%d\n", lang, ls.Added, ls.Removed)
			}
		}

		if len(agg.Mismatches) > 0 {
			label.Fprintf(w, "  Intent Mismatches:\n")

			for _, m := range agg.Mismatches {
				color.New(color.FgRed).Fprintf(w, "    - %s\n", m)
			}
		}

		fmt.Fprintf(w, "  Work Style: %s\n", agg.WorkStyle)
	}

	r.renderWarnings(w)
}

func (r *Report) renderWarnings(w io.Writer) {
	if len(r.Warnings) == 0 {
		return
	}

	fmt.Fprintln(w)

	for _, warning := range r.Warnings {
		color.New(color.FgYellow).Fprintf(w, "warning: %s\n", warning)
	}
}

func (r *Report) renderSummary(w io.Writer) {
	if len(r.Authors) == 0 {
		fmt.Fprintf(w, "\nNo commits found.\n")

		return
	}

	var commits, added, deleted, files int

	var sumQuality, sumDifficulty, sumValue float64

	for _, agg := range r.Authors {
		commits += agg.CommitCount
		added += agg.LinesAdded
		deleted += agg.LinesDeleted
		files += agg.FilesChanged
		sumQuality += agg.AvgQuality
		sumDifficulty += agg.AvgDifficulty
		sumValue += agg.Value
	}

	n := float64(len(r.Authors))

	fmt.Fprintf(w, "\nOverall Summary\n")
	fmt.Fprintf(w, "  Contributors:        %d\n", len(r.Authors))
	fmt.Fprintf(w, "  Total Commits:       %s\n", humanize.Comma(int64(commits)))
	fmt.Fprintf(w, "  Total Lines Added:   %s\n", humanize.Comma(int64(added)))
	fmt.Fprintf(w, "  Total Lines Deleted: %s\n", humanize.Comma(int64(deleted)))
	fmt.Fprintf(w, "  Net Change:          %s lines\n", humanize.Comma(int64(added-deleted)))
	fmt.Fprintf(w, "  Files Changed:       %s\n", humanize.Comma(int64(files)))
	fmt.Fprintf(w, "  Average Quality:     %.2f/100\n", mathutil.Round2(sumQuality/n))
	fmt.Fprintf(w, "  Average Difficulty:  %.2f/100\n", mathutil.Round2(sumDifficulty/n))
	fmt.Fprintf(w, "  Average Value:       %.2f/100\n", mathutil.Round2(sumValue/n))
}

func sortedLanguages(agg *scoring.Aggregate) []string {
	langs := make([]string, 0, len(agg.Languages))
	for lang := range agg.Languages {
		langs = append(langs, lang)
	}

	sort.Strings(langs)

	return langs
}
