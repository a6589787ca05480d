// pkg/gsindex/gsindex.go

// Package gsindex is the index snapshot (spec component M2): an immutable,
// lexicographically sorted view of tracked paths, partitioned into
// directory-aligned shards for parallel diffing. Entries are read through
// go-git's index codec (plumbing/format/index) rather than parsed by hand,
// since the raw index file format is exactly the kind of version-control
// primitive spec.md §1 delegates to an external library.
package gsindex

import (
	"sort"
	"strings"
	"time"

	gitindex "github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing"
)

// Entry mirrors the fields spec.md §3 says an index entry must carry:
// path, object id, mode bits, cached stat fields, and flags.
type Entry struct {
	Path            string
	OID             plumbing.Hash
	Mode            uint32
	Dev             uint32
	Inode           uint32
	UID             uint32
	GID             uint32
	Size            uint32
	ModifiedAt      time.Time
	CreatedAt       time.Time
	AssumeUnchanged bool
	SkipWorktree    bool
	IntentToAdd     bool
	Conflicted      bool
}

// Shard is a contiguous, directory-aligned range [Start, End) into a
// Snapshot's Entries, the unit of parallel work for the diff engine.
type Shard struct {
	Start, End int
}

// Snapshot is an immutable, sorted index view (invariant I1: once
// published it may be read concurrently without synchronization).
type Snapshot struct {
	Entries []Entry
	Shards  []Shard
}

// Build reads idx's entries, sorts them by path, and computes shard
// boundaries sized for numThreads workers (spec.md §4.M2): a shard ends
// once it has reached entries/(2*numThreads) and the next entry's
// top-level directory differs from the current one, which keeps no path
// split from its ancestor directory across a shard boundary.
func Build(idx *gitindex.Index, numThreads int) *Snapshot {
	entries := make([]Entry, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		entries = append(entries, Entry{
			Path:         e.Name,
			OID:          e.Hash,
			Mode:         uint32(e.Mode),
			Dev:          e.Dev,
			Inode:        e.Inode,
			UID:          e.UID,
			GID:          e.GID,
			Size:         e.Size,
			ModifiedAt:   e.ModifiedAt,
			CreatedAt:    e.CreatedAt,
			SkipWorktree: e.SkipWorktree,
			IntentToAdd:  e.IntentToAdd,
			Conflicted:   e.Stage != gitindex.Merged,
			// go-git's index.Entry does not surface the
			// assume-valid bit as of v5; treat it conservatively
			// as never set rather than guess at an unexported
			// flag layout.
			AssumeUnchanged: false,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	return &Snapshot{
		Entries: entries,
		Shards:  shardEntries(entries, numThreads),
	}
}

func shardEntries(entries []Entry, numThreads int) []Shard {
	if len(entries) == 0 {
		return nil
	}
	if numThreads < 1 {
		numThreads = 1
	}
	target := len(entries) / (2 * numThreads)
	if target < 1 {
		target = 1
	}

	var shards []Shard
	start := 0
	for i := 1; i <= len(entries); i++ {
		atEnd := i == len(entries)
		boundary := false
		if !atEnd {
			curSize := i - start
			if curSize >= target && topLevelDir(entries[i-1].Path) != topLevelDir(entries[i].Path) {
				boundary = true
			}
		}
		if atEnd || boundary {
			shards = append(shards, Shard{Start: start, End: i})
			start = i
		}
	}
	return shards
}

// topLevelDir returns p's first path component, or "" if p has none (a
// root-level file). Paths are forward-slash separated per spec.md §3.
func topLevelDir(p string) string {
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return ""
}
