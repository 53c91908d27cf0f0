// Package collect materializes engine commits from a git repository.
package collect

import (
	"fmt"
	"time"

	"github.com/Sumatoshi-tech/gitgauge/internal/diffstat"
	"github.com/Sumatoshi-tech/gitgauge/internal/engine"
	"github.com/Sumatoshi-tech/gitgauge/pkg/gitlib"
)

// Commits reads the commit history of the repository at path, newest
// first, limited to the last months (0 means full history). Commits
// whose diff cannot be extracted are kept with DiffErr set so the
// engine can report them as skipped.
func Commits(path string, months int) ([]engine.Commit, error) {
	repo, err := gitlib.OpenRepository(path)
	if err != nil {
		return nil, err
	}
	defer repo.Free()

	opts := &gitlib.LogOptions{}

	if months > 0 {
		since := time.Now().AddDate(0, -months, 0)
		opts.Since = &since
	}

	iter, err := repo.Log(opts)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	commits := make([]engine.Commit, 0)

	err = iter.ForEach(func(c *gitlib.Commit) error {
		commits = append(commits, fromGit(c))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk history: %w", err)
	}

	return commits, nil
}

// fromGit converts one git commit into the engine's representation,
// extracting the per-file line changes.
func fromGit(c *gitlib.Commit) engine.Commit {
	author := c.Author()

	commit := engine.Commit{
		Hash:      c.Hash().String(),
		Author:    author.Name,
		Timestamp: author.When,
		Message:   c.Message(),
	}

	patches, err := c.Patch()
	if err != nil {
		commit.DiffErr = fmt.Errorf("%w: %v", diffstat.ErrDiffUnavailable, err)

		return commit
	}

	commit.Files = make([]diffstat.FileDiff, 0, len(patches))

	for _, p := range patches {
		fd := diffstat.FileDiff{Path: p.Path}

		// Binary files count as touched but contribute no lines.
		if !p.Binary {
			fd.AddedLines = p.AddedLines
			fd.RemovedLines = p.RemovedLines
		}

		commit.Files = append(commit.Files, fd)
	}

	return commit
}
