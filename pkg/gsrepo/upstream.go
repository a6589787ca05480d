// pkg/gsrepo/upstream.go

package gsrepo

import (
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/dritter/gitstatusd/pkg/gserr"
)

// Upstream is the branch's configured remote-tracking counterpart,
// resolved from .git/config the same way `git status` reports "your
// branch is ahead of 'origin/main' by N commits".
type Upstream struct {
	Remote     string // remote name, e.g. "origin"
	BranchName string // local-looking short name, e.g. "main"
	RefName    plumbing.ReferenceName
	RemoteURL  string
}

// ResolveUpstream reads [branch "<name>"] remote/merge config and
// resolves it to the remote-tracking ref, or ok=false if the branch has
// no configured upstream (a detached HEAD, or a branch nobody ever set
// one for).
func (r *Repo) ResolveUpstream(localBranch string) (Upstream, bool, error) {
	if localBranch == "" {
		return Upstream{}, false, nil
	}
	cfg, err := r.gitRepo.Config()
	if err != nil {
		return Upstream{}, false, gserr.Wrap(gserr.KindLibrary, "reading git config", err)
	}
	b, ok := cfg.Branches[localBranch]
	if !ok || b.Remote == "" || b.Merge == "" {
		return Upstream{}, false, nil
	}

	refName := plumbing.NewRemoteReferenceName(b.Remote, b.Merge.Short())

	var url string
	if rc, ok := cfg.Remotes[b.Remote]; ok && len(rc.URLs) > 0 {
		url = rc.URLs[0]
	}

	return Upstream{
		Remote:     b.Remote,
		BranchName: b.Merge.Short(),
		RefName:    refName,
		RemoteURL:  url,
	}, true, nil
}
