// pkg/gsrepo/upstream_test.go

package gsrepo

import (
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/require"
)

func TestResolveUpstreamNoneConfigured(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	r, err := Open(dir)
	require.NoError(t, err)

	_, ok, err := r.ResolveUpstream("main")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveUpstreamReadsBranchConfig(t *testing.T) {
	dir := t.TempDir()
	gitRepo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = gitRepo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://example.com/repo.git"},
	})
	require.NoError(t, err)

	cfg, err := gitRepo.Config()
	require.NoError(t, err)
	cfg.Branches["main"] = &config.Branch{
		Name:   "main",
		Remote: "origin",
		Merge:  "refs/heads/main",
	}
	require.NoError(t, gitRepo.Storer.SetConfig(cfg))

	r, err := Open(dir)
	require.NoError(t, err)

	up, ok, err := r.ResolveUpstream("main")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "origin", up.Remote)
	require.Equal(t, "main", up.BranchName)
	require.Equal(t, "https://example.com/repo.git", up.RemoteURL)
	require.Equal(t, "refs/remotes/origin/main", string(up.RefName))
}
