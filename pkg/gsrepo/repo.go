// pkg/gsrepo/repo.go

// Package gsrepo is the repository handle and repository cache (spec
// components M1 and M5). A Repo owns a go-git repository, a lazily
// rebuilt index snapshot, per-repo tag resolver state, and a last-used
// timestamp; two requests for the same working directory share one Repo
// (invariant: exactly one owner per native handle, spec.md §3).
package gsrepo

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dritter/gitstatusd/pkg/gserr"
	"github.com/dritter/gitstatusd/pkg/gsindex"
	"github.com/dritter/gitstatusd/pkg/gstag"
)

// Repo is the cached handle for one working tree. Opening is expensive
// (walking up the filesystem for .git, parsing config); everything after
// Open is cheap re-use.
type Repo struct {
	// dir is the path Open was originally called with; workdir is the
	// worktree root spec.md §6 wants echoed back (trailing slash
	// stripped, unless root).
	dir     string
	workdir string
	gitRepo *git.Repository

	mu         sync.Mutex // guards indexMTime and snapshot rebuilds
	indexMTime time.Time
	snapshot   atomic.Pointer[gsindex.Snapshot]
	refs       refsWatch

	tags *gstag.Resolver

	lastUsedNanos atomic.Int64
}

// Open validates that dir is inside a git working tree and returns a
// fresh Repo. libgit2's strict-hash-verification / index-checksum /
// filepath-validation knobs from spec.md §4.M1 have no go-git equivalent
// to disable: go-git's read paths already skip that extra verification
// work by default, so there is nothing to configure here.
func Open(dir string) (*Repo, error) {
	gitRepo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, gserr.NotARepo(dir, err)
	}

	var workdir string
	if wt, err := gitRepo.Worktree(); err == nil {
		workdir = strings.TrimRight(wt.Filesystem.Root(), "/")
	}
	// Bare repositories have no worktree; workdir stays empty and the
	// daemon reports is_repo=0 for them, mirroring gitstatus.cc's early
	// return when git_repository_workdir is empty.

	r := &Repo{
		dir:     dir,
		workdir: workdir,
		gitRepo: gitRepo,
		tags:    gstag.NewResolver(gitRepo),
	}
	r.touch()
	return r, nil
}

// Workdir returns the worktree root, or "" for a bare repository.
func (r *Repo) Workdir() string { return r.workdir }

// Git exposes the underlying go-git repository for callers (M3, M4) that
// need direct access to references and objects.
func (r *Repo) Git() *git.Repository { return r.gitRepo }

func (r *Repo) touch() {
	r.lastUsedNanos.Store(time.Now().UnixNano())
}

// LastUsed reports when this Repo was last handed out by the cache.
func (r *Repo) LastUsed() time.Time {
	return time.Unix(0, r.lastUsedNanos.Load())
}

// Head returns the current HEAD reference, or an error if the repository
// has no commits yet (an unborn branch) — callers treat that as a valid
// state with an empty commit field, not a failure.
func (r *Repo) Head() (*plumbing.Reference, error) {
	return r.gitRepo.Head()
}

// HeadCommit resolves HEAD to its commit object. An unborn branch (no
// commits yet) is reported as (nil, nil, nil), a valid state rather than
// an error (spec.md §6 field 4: "empty for an unborn branch").
func (r *Repo) HeadCommit() (*object.Commit, *plumbing.Reference, error) {
	head, err := r.gitRepo.Head()
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return nil, nil, nil
		}
		return nil, nil, gserr.Wrap(gserr.KindLibrary, "resolving HEAD", err)
	}
	commit, err := r.gitRepo.CommitObject(head.Hash())
	if err != nil {
		return nil, head, gserr.Wrap(gserr.KindLibrary, "reading HEAD commit", err)
	}
	return commit, head, nil
}

// ResolveTag starts (or reuses) a background lookup of the tag pointing
// at oid, keyed by the repository's current refs generation. Callers
// must Await the result before the request finishes (invariant I4).
func (r *Repo) ResolveTag(oid plumbing.Hash) *gstag.Future {
	return r.tags.Resolve(oid, r.RefsGeneration())
}

// LocalBranchName returns head's branch short name, or "" if detached.
func LocalBranchName(head *plumbing.Reference) string {
	if head == nil || !head.Name().IsBranch() {
		return ""
	}
	return head.Name().Short()
}

// RefsGeneration returns a counter bumped whenever the mtime of
// packed-refs, the loose refs directory or refs/tags has changed since
// the last call, for keying pkg/gstag's cache (spec.md §4.M3).
func (r *Repo) RefsGeneration() int64 {
	return r.refs.currentGeneration(r.gitDir())
}

func (r *Repo) gitDir() string {
	if s, ok := gitDirOf(r.gitRepo); ok {
		return s
	}
	return ""
}
