// pkg/gsdaemon/gsdaemon_test.go

package gsdaemon

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/dritter/gitstatusd/pkg/gsconfig"
	"github.com/dritter/gitstatusd/pkg/gslog"
	"github.com/dritter/gitstatusd/pkg/gspool"
	"github.com/dritter/gitstatusd/pkg/gsrepo"
)

func newTestDaemon(t *testing.T) *Daemon {
	t.Helper()
	cache, err := gsrepo.NewCache(0)
	require.NoError(t, err)
	pool := gspool.New(2, 4)
	t.Cleanup(pool.Close)

	cfg := gsconfig.Defaults()
	return New(cache, pool, gslog.Nop(), cfg)
}

func initRepoWithCommit(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hi\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "t", Email: "t@example.com", When: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	return dir
}

func TestServeReportsCleanRepo(t *testing.T) {
	dir := initRepoWithCommit(t)
	d := newTestDaemon(t)

	in := bytes.NewBufferString("req1\t" + dir + "\x00")
	var out bytes.Buffer
	require.NoError(t, d.Serve(in, &out))

	require.Contains(t, out.String(), "req1\t1\t")
}

func TestServeReportsNotARepo(t *testing.T) {
	dir := t.TempDir()
	d := newTestDaemon(t)

	in := bytes.NewBufferString("req1\t" + dir + "\x00")
	var out bytes.Buffer
	require.NoError(t, d.Serve(in, &out))

	require.Equal(t, "req1\t0\x00", out.String())
}

func TestServeHandlesMultipleRequestsInOneStream(t *testing.T) {
	dir := initRepoWithCommit(t)
	d := newTestDaemon(t)

	in := bytes.NewBufferString("a\t" + dir + "\x00b\t" + dir + "\x00")
	var out bytes.Buffer
	require.NoError(t, d.Serve(in, &out))

	require.Contains(t, out.String(), "a\t1\t")
	require.Contains(t, out.String(), "b\t1\t")
}
