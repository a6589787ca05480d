// pkg/gsdiff/engine.go

package gsdiff

import (
	"strings"
	"sync/atomic"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dritter/gitstatusd/pkg/gsindex"
	"github.com/dritter/gitstatusd/pkg/gspool"
)

// Result is the outcome of one M4 diff: whether the index has staged
// changes against HEAD, and the tri-state unstaged/untracked flags the
// parallel worktree scan produced (Unknown when the scan never ran or
// gave up on a directory it couldn't read).
type Result struct {
	Staged    Tri
	Unstaged  Tri
	Untracked Tri
}

// Run computes one full status diff for a snapshot against tree (HEAD's
// tree, nil for an unborn branch). workdir is "" for a bare repository,
// in which case there is no worktree to scan and Unstaged/Untracked are
// reported Unknown (the request loop answers is_repo=0 for a bare
// repository before it gets here).
// ignore may be nil, meaning no .gitignore patterns apply.
func Run(pool *gspool.Pool, workdir string, tree *object.Tree, snap *gsindex.Snapshot, ignore gitignore.Matcher) (Result, error) {
	staged, err := Staged(tree, snap.Entries)
	if err != nil {
		return Result{}, err
	}

	if workdir == "" {
		return Result{Staged: triFromBool(staged), Unstaged: Unknown, Untracked: Unknown}, nil
	}

	flags := &sharedFlags{}
	shards := snap.Shards
	if len(shards) == 0 {
		shards = []gsindex.Shard{{Start: 0, End: 0}}
	}

	// The first shard always lists the worktree root for untracked
	// detection (a shard holding root-level files lists it too); a root
	// listing needs every shard's top-level name so it can recognize
	// those as tracked rather than flag them untracked.
	topLevelTracked := topLevelNames(snap.Entries)

	tasks := make([]gspool.Task, len(shards))
	for i, sh := range shards {
		sh := sh
		includeRoot := i == 0
		tasks[i] = func() {
			scanShard(workdir, snap.Entries[sh.Start:sh.End], ignore, flags, includeRoot, topLevelTracked)
		}
	}
	pool.SubmitWait(tasks...)

	return Result{
		Staged:    triFromBool(staged),
		Unstaged:  resolveTri(&flags.unstagedTrue, &flags.unstagedUnknown),
		Untracked: resolveTri(&flags.untrackedTrue, &flags.untrackedUnknown),
	}, nil
}

// topLevelNames returns the first path component of every tracked
// entry across the whole snapshot, not just one shard.
func topLevelNames(entries []gsindex.Entry) map[string]struct{} {
	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if i := strings.IndexByte(e.Path, '/'); i >= 0 {
			names[e.Path[:i]] = struct{}{}
		} else {
			names[e.Path] = struct{}{}
		}
	}
	return names
}

func resolveTri(trueFlag, unknownFlag *atomic.Bool) Tri {
	if trueFlag.Load() {
		return True
	}
	if unknownFlag.Load() {
		return Unknown
	}
	return False
}
