package gitlib

import (
	"fmt"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// FilePatch holds the line-level changes of one file in a commit.
// Binary files carry no lines but still count as touched.
type FilePatch struct {
	Path         string
	Binary       bool
	AddedLines   []string
	RemovedLines []string
}

// Patch extracts per-file added and removed line text for the commit,
// diffing against the first parent. Root commits diff against the empty
// tree, so every line counts as added.
func (c *Commit) Patch() ([]FilePatch, error) {
	newTree, err := c.tree()
	if err != nil {
		return nil, err
	}
	defer newTree.Free()

	var oldTree *git2go.Tree

	if c.NumParents() > 0 {
		parent, parentErr := c.Parent(0)
		if parentErr != nil {
			return nil, parentErr
		}
		defer parent.Free()

		oldTree, err = parent.tree()
		if err != nil {
			return nil, err
		}
		defer oldTree.Free()
	}

	diff, err := c.repo.diffTreeToTree(oldTree, newTree)
	if err != nil {
		return nil, err
	}

	defer func() {
		// Free() errors are non-actionable in cleanup.
		_ = diff.Free()
	}()

	patches, err := linePatches(diff)
	if err != nil {
		return c.blobPatches(diff)
	}

	return patches, nil
}

// linePatches walks the diff with libgit2 line callbacks, the fast path
// for extracting per-file added and removed text.
func linePatches(diff *git2go.Diff) ([]FilePatch, error) {
	patches := make([]FilePatch, 0)

	err := diff.ForEach(func(delta git2go.DiffDelta, _ float64) (git2go.DiffForEachHunkCallback, error) {
		patches = append(patches, FilePatch{
			Path:   deltaPath(delta),
			Binary: delta.Flags&git2go.DiffFlagBinary != 0,
		})
		idx := len(patches) - 1

		return func(_ git2go.DiffHunk) (git2go.DiffForEachLineCallback, error) {
			return func(line git2go.DiffLine) error {
				switch line.Origin {
				case git2go.DiffLineAddition:
					patches[idx].AddedLines = append(patches[idx].AddedLines, trimLine(line.Content))
				case git2go.DiffLineDeletion:
					patches[idx].RemovedLines = append(patches[idx].RemovedLines, trimLine(line.Content))
				case git2go.DiffLineContext,
					git2go.DiffLineContextEOFNL,
					git2go.DiffLineAddEOFNL,
					git2go.DiffLineDelEOFNL,
					git2go.DiffLineFileHdr,
					git2go.DiffLineHunkHdr,
					git2go.DiffLineBinary:
				}

				return nil
			}, nil
		}, nil
	}, git2go.DiffDetailLines)
	if err != nil {
		return nil, fmt.Errorf("walk commit diff: %w", err)
	}

	return patches, nil
}

// blobPatches rebuilds the patch set by diffing blob texts directly.
// It backs the line-callback walk when libgit2 aborts mid-stream,
// trading callback streaming for a pure text diff of each delta.
func (c *Commit) blobPatches(diff *git2go.Diff) ([]FilePatch, error) {
	count, err := diff.NumDeltas()
	if err != nil {
		return nil, fmt.Errorf("count commit deltas: %w", err)
	}

	patches := make([]FilePatch, 0, count)

	for i := 0; i < count; i++ {
		delta, deltaErr := diff.Delta(i)
		if deltaErr != nil {
			return nil, fmt.Errorf("read commit delta %d: %w", i, deltaErr)
		}

		patch := FilePatch{
			Path:   deltaPath(delta),
			Binary: delta.Flags&git2go.DiffFlagBinary != 0,
		}

		if !patch.Binary {
			oldText := c.blobText(delta.OldFile.Oid)
			newText := c.blobText(delta.NewFile.Oid)
			patch.AddedLines, patch.RemovedLines = DiffTexts(oldText, newText)
		}

		patches = append(patches, patch)
	}

	return patches, nil
}

// blobText loads the text of a blob, returning the empty string for
// absent sides of a delta (file additions and deletions).
func (c *Commit) blobText(oid *git2go.Oid) string {
	if oid == nil || oid.IsZero() {
		return ""
	}

	blob, err := c.repo.repo.LookupBlob(oid)
	if err != nil {
		return ""
	}
	defer blob.Free()

	return string(blob.Contents())
}

func deltaPath(delta git2go.DiffDelta) string {
	if delta.NewFile.Path != "" {
		return delta.NewFile.Path
	}

	return delta.OldFile.Path
}

func trimLine(content string) string {
	return strings.TrimRight(content, "\n")
}
