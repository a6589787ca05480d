// pkg/gsdiff/worktree.go

package gsdiff

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/dritter/gitstatusd/pkg/gsarena"
	"github.com/dritter/gitstatusd/pkg/gsdir"
	"github.com/dritter/gitstatusd/pkg/gsindex"
)

// dotGit is never a candidate for untracked detection; git excludes it
// in its own directory walk (dir.c), not via .gitignore.
const dotGit = ".git"

// sharedFlags are the atomic booleans every shard writes into and every
// shard (plus the request thread, after join) reads, per spec.md §5.
type sharedFlags struct {
	unstagedTrue     atomic.Bool
	unstagedUnknown  atomic.Bool
	untrackedTrue    atomic.Bool
	untrackedUnknown atomic.Bool
}

func (f *sharedFlags) allKnown() bool {
	return (f.unstagedTrue.Load() || f.unstagedUnknown.Load()) &&
		(f.untrackedTrue.Load() || f.untrackedUnknown.Load())
}

// scanShard implements spec.md §4.M4 steps 2 and 3 for one shard: a
// stat/hash pass over the shard's tracked entries for "unstaged", and a
// directory-listing pass over the shard's relevant directories for
// "untracked". It exits at its next natural boundary once both flags are
// already known elsewhere, per the early-exit design.
func scanShard(workdir string, entries []gsindex.Entry, ignore gitignore.Matcher, flags *sharedFlags, includeRoot bool, topLevelTracked map[string]struct{}) {
	tracked := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		tracked[e.Path] = struct{}{}
	}

	if flags.allKnown() {
		return
	}
	scanUnstaged(workdir, entries, flags)

	if flags.allKnown() {
		return
	}
	scanUntracked(workdir, entries, tracked, ignore, flags, includeRoot, topLevelTracked)
}

func scanUnstaged(workdir string, entries []gsindex.Entry, flags *sharedFlags) {
	for _, e := range entries {
		if flags.allKnown() {
			return
		}
		if e.SkipWorktree {
			continue
		}

		full := filepath.Join(workdir, e.Path)
		fi, err := os.Lstat(full)
		if err != nil {
			if os.IsNotExist(err) {
				flags.unstagedTrue.Store(true)
				return
			}
			flags.unstagedUnknown.Store(true)
			return
		}

		// A zero-size index entry is git's "racily clean" marker: the
		// entry was written in the same second as its own mtime, so a
		// stat match alone can't be trusted and the content is hashed
		// regardless (spec.md §4.M4's "smudged" entries).
		if statMatches(fi, e) && e.Size != 0 {
			continue
		}

		got, err := hashBlob(full, fi.Size())
		if err != nil {
			flags.unstagedUnknown.Store(true)
			return
		}
		if got != e.OID {
			flags.unstagedTrue.Store(true)
			return
		}
	}
}

// scanUntracked lists each of this shard's relevant directories and
// flags untracked the moment it finds a child that isn't a tracked
// file, a tracked directory, or (when listing the worktree root) the
// top-level name of any tracked entry in any shard. The shard carrying
// includeRoot always lists the worktree root; another shard lists it
// only when it holds root-level tracked files. Either way, siblings
// living in other shards are never reported as untracked here.
func scanUntracked(workdir string, entries []gsindex.Entry, tracked map[string]struct{}, ignore gitignore.Matcher, flags *sharedFlags, includeRoot bool, topLevelTracked map[string]struct{}) {
	dirs := relevantDirectories(entries)
	if includeRoot {
		dirs[""] = struct{}{}
	}
	arena := gsarena.New(4 * 1024)
	for dir := range dirs {
		if flags.allKnown() {
			return
		}
		full := workdir
		if dir != "" {
			full = filepath.Join(workdir, dir)
		}
		arena.Reset()
		list, err := gsdir.List(full, arena)
		if err != nil {
			flags.untrackedUnknown.Store(true)
			return
		}
		for _, e := range list {
			name := e.Name.String()
			if dir == "" && name == dotGit {
				continue
			}
			childPath := name
			if dir != "" {
				childPath = dir + "/" + childPath
			}
			if _, isTrackedFile := tracked[childPath]; isTrackedFile {
				continue
			}
			if _, isTrackedDir := dirs[childPath]; isTrackedDir {
				continue
			}
			if dir == "" {
				if _, isSiblingTopLevel := topLevelTracked[childPath]; isSiblingTopLevel {
					continue
				}
			}
			if ignore != nil {
				parts := splitPath(childPath)
				if ignore.Match(parts, e.Type == gsdir.TypeDir) {
					continue
				}
			}
			flags.untrackedTrue.Store(true)
			return
		}
	}
}

// relevantDirectories returns every directory that is a prefix of some
// entry's path, stopping at this shard's own top-level directory: it
// never climbs past the first path component, since a shard boundary
// only ever falls between differing top-level directories (gsindex's
// shardEntries), so anything above that point belongs to a sibling
// shard, not this one. The one exception is an entry with no directory
// component at all (a root-level tracked file), which legitimately
// makes "" relevant to this shard. Listing the worktree root for
// untracked siblings that have no tracked file at all is instead the
// sole responsibility of the caller's includeRoot shard.
func relevantDirectories(entries []gsindex.Entry) map[string]struct{} {
	dirs := make(map[string]struct{})
	for _, e := range entries {
		dir := path.Dir(e.Path)
		if dir == "." {
			dir = ""
		}
		for {
			if _, ok := dirs[dir]; ok {
				break
			}
			dirs[dir] = struct{}{}
			if dir == "" || !strings.Contains(dir, "/") {
				break
			}
			parent := path.Dir(dir)
			if parent == "." {
				parent = ""
			}
			dir = parent
		}
	}
	return dirs
}

func splitPath(p string) []string {
	if p == "" {
		return nil
	}
	return filepathSplit(p)
}

func filepathSplit(p string) []string {
	var parts []string
	for _, s := range splitOnSlash(p) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

func splitOnSlash(p string) []string {
	var out []string
	start := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			out = append(out, p[start:i])
			start = i + 1
		}
	}
	out = append(out, p[start:])
	return out
}
