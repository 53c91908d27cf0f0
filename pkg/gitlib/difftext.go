package gitlib

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffTexts computes a line-level diff between two text blobs without
// touching libgit2. It returns the added and removed lines, without
// trailing newlines, in document order.
func DiffTexts(oldText, newText string) (added, removed []string) {
	if oldText == newText {
		return nil, nil
	}

	dmp := diffmatchpatch.New()
	src, dst, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(src, dst, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	for _, edit := range diffs {
		switch edit.Type {
		case diffmatchpatch.DiffInsert:
			added = append(added, SplitLines(edit.Text)...)
		case diffmatchpatch.DiffDelete:
			removed = append(removed, SplitLines(edit.Text)...)
		case diffmatchpatch.DiffEqual:
		}
	}

	return added, removed
}

// SplitLines splits text into lines without trailing newlines. A final
// newline does not produce an empty trailing line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
