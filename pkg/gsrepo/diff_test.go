// pkg/gsrepo/diff_test.go

package gsrepo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/dritter/gitstatusd/pkg/gsdiff"
	"github.com/dritter/gitstatusd/pkg/gspool"
)

func openRepoWithCommit(t *testing.T) (*Repo, string) {
	t.Helper()
	dir := t.TempDir()
	gitRepo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hi\n"), 0o644))
	wt, err := gitRepo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "t", Email: "t@example.com", When: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	r, err := Open(dir)
	require.NoError(t, err)
	return r, dir
}

func TestGetIndexStatsBelowBudgetRunsFullDiff(t *testing.T) {
	r, _ := openRepoWithCommit(t)
	commit, _, err := r.HeadCommit()
	require.NoError(t, err)

	pool := gspool.New(2, 4)
	defer pool.Close()

	res, err := r.GetIndexStats(pool, 2, 1000, commit)
	require.NoError(t, err)
	require.Equal(t, gsdiff.False, res.Staged)
	require.Equal(t, gsdiff.False, res.Unstaged)
}

func TestGetIndexStatsOverBudgetSkipsWorktreeScan(t *testing.T) {
	r, _ := openRepoWithCommit(t)
	commit, _, err := r.HeadCommit()
	require.NoError(t, err)

	pool := gspool.New(2, 4)
	defer pool.Close()

	res, err := r.GetIndexStats(pool, 2, 0, commit)
	require.NoError(t, err)
	require.Equal(t, gsdiff.Unknown, res.Unstaged)
	require.Equal(t, gsdiff.Unknown, res.Untracked)
}
