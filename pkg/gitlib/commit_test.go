package gitlib

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// An exhausted iterator holds no walker. Next must keep reporting io.EOF
// and Close must stay a no-op, so a deferred Close after a full ForEach
// never frees the underlying revwalk a second time.
func TestCommitIterExhaustedNextReturnsEOF(t *testing.T) {
	t.Parallel()

	iter := &CommitIter{}

	commit, err := iter.Next()

	require.Nil(t, commit)
	require.ErrorIs(t, err, io.EOF)
}

func TestCommitIterCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	iter := &CommitIter{}

	iter.Close()
	iter.Close()

	require.Nil(t, iter.walk)
}

func TestCommitIterForEachLeavesIterClosed(t *testing.T) {
	t.Parallel()

	iter := &CommitIter{}

	err := iter.ForEach(func(*Commit) error {
		return errors.New("unreachable")
	})

	require.NoError(t, err)
	require.Nil(t, iter.walk)

	// The caller's deferred Close finds no walker left to free.
	iter.Close()
}
