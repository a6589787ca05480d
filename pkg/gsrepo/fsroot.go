// pkg/gsrepo/fsroot.go

package gsrepo

import (
	git "github.com/go-git/go-git/v5"
	gitfs "github.com/go-git/go-git/v5/storage/filesystem"
)

// gitDirOf extracts the on-disk .git directory from a *git.Repository
// backed by a filesystem storer. gitstatusd only ever opens plain,
// filesystem-backed repositories (git.PlainOpenWithOptions), so this
// should always succeed in production; the bool return lets callers
// degrade gracefully (empty repo_state, no stash lookup) instead of
// panicking against an in-memory storer used by some test fixtures.
func gitDirOf(repo *git.Repository) (string, bool) {
	fsStorer, ok := repo.Storer.(*gitfs.Storage)
	if !ok {
		return "", false
	}
	return fsStorer.Filesystem().Root(), true
}
