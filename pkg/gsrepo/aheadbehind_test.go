// pkg/gsrepo/aheadbehind_test.go

package gsrepo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func commitFile(t *testing.T, repo *git.Repository, dir, name, content, msg string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "t", Email: "t@example.com", When: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
}

func TestAheadBehindEqualHashesIsZero(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	commitFile(t, repo, dir, "a", "1", "c1")

	head, err := repo.Head()
	require.NoError(t, err)

	ahead, behind, err := AheadBehind(repo.Storer, head.Hash(), head.Hash())
	require.NoError(t, err)
	require.Equal(t, 0, ahead)
	require.Equal(t, 0, behind)
}

func TestAheadBehindCountsLinearHistory(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	commitFile(t, repo, dir, "a", "1", "c1")

	head, err := repo.Head()
	require.NoError(t, err)
	base := head.Hash()

	commitFile(t, repo, dir, "a", "2", "c2")
	commitFile(t, repo, dir, "a", "3", "c3")

	head2, err := repo.Head()
	require.NoError(t, err)

	ahead, behind, err := AheadBehind(repo.Storer, head2.Hash(), base)
	require.NoError(t, err)
	require.Equal(t, 2, ahead)
	require.Equal(t, 0, behind)
}
