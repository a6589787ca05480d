// pkg/gsrepo/diff.go

package gsrepo

import (
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dritter/gitstatusd/pkg/gsdiff"
	"github.com/dritter/gitstatusd/pkg/gserr"
	"github.com/dritter/gitstatusd/pkg/gspool"
)

// GetIndexStats is M1's entry point into the diff engine: it checks the
// dirty-max-index-size budget before doing any worktree I/O, and falls
// back to a staged-only result when the index is too large to scan
// cheaply (spec.md §4.M1).
func (r *Repo) GetIndexStats(pool *gspool.Pool, numThreads int, dirtyMaxIndexSize int64, head *object.Commit) (gsdiff.Result, error) {
	snap, err := r.Snapshot(numThreads)
	if err != nil {
		return gsdiff.Result{}, err
	}

	var tree *object.Tree
	if head != nil {
		tree, err = head.Tree()
		if err != nil {
			return gsdiff.Result{}, gserr.Wrap(gserr.KindLibrary, "reading HEAD tree", err)
		}
	}

	if dirtyMaxIndexSize >= 0 && int64(len(snap.Entries)) > dirtyMaxIndexSize {
		staged, err := gsdiff.Staged(tree, snap.Entries)
		if err != nil {
			return gsdiff.Result{}, err
		}
		return gsdiff.Result{
			Staged:    tristateFromBool(staged),
			Unstaged:  gsdiff.Unknown,
			Untracked: gsdiff.Unknown,
		}, nil
	}

	ignore, err := r.ignoreMatcher()
	if err != nil {
		return gsdiff.Result{}, err
	}

	return gsdiff.Run(pool, r.workdir, tree, snap, ignore)
}

func tristateFromBool(b bool) gsdiff.Tri {
	if b {
		return gsdiff.True
	}
	return gsdiff.False
}

// ignoreMatcher loads .gitignore patterns from the worktree root down,
// the way go-git's own status computation does; nil (no patterns) for
// a bare repository.
func (r *Repo) ignoreMatcher() (gitignore.Matcher, error) {
	wt, err := r.gitRepo.Worktree()
	if err != nil {
		return nil, nil
	}
	patterns, err := gitignore.ReadPatterns(wt.Filesystem, nil)
	if err != nil {
		return nil, gserr.Wrap(gserr.KindIO, "reading .gitignore patterns", err)
	}
	return gitignore.NewMatcher(patterns), nil
}
