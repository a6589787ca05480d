// pkg/gstag/gstag_test.go

package gstag

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func TestFutureAwaitReturnsCompletedResult(t *testing.T) {
	f := newFuture()
	f.complete("v1.2.3", nil)

	name, err := f.Await()
	require.NoError(t, err)
	require.Equal(t, "v1.2.3", name)
}

func TestResolverCachesByRefsGeneration(t *testing.T) {
	r := &Resolver{futures: make(map[cacheKey]*Future)}

	oid := plumbing.NewHash("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	f1 := newFuture()
	f1.complete("v1", nil)
	r.futures[cacheKey{refsGen: 1, oid: oid}] = f1
	r.gen = 1

	got := r.Resolve(oid, 1)

	r.mu.Lock()
	if 1 != r.gen {
		t.Fatal("generation bookkeeping broken")
	}
	_, ok := r.futures[cacheKey{refsGen: 1, oid: oid}]
	r.mu.Unlock()
	require.True(t, ok)
	require.Same(t, f1, got)
}

func TestResolveTagNamePicksLexicographicMaxOnTie(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("f")
	require.NoError(t, err)
	head, err := wt.Commit("c1", &git.CommitOptions{
		Author: &object.Signature{Name: "t", Email: "t@example.com", When: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	for _, name := range []string{"v1.0.0", "v2.0.0", "v1.5.0"} {
		_, err := repo.CreateTag(name, head, nil)
		require.NoError(t, err)
	}

	best, err := resolveTagName(repo, head)
	require.NoError(t, err)
	require.Equal(t, "v2.0.0", best)
}
