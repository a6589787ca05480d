// pkg/gsrepo/snapshot.go

package gsrepo

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dritter/gitstatusd/pkg/gserr"
	"github.com/dritter/gitstatusd/pkg/gsindex"
)

// Snapshot returns the current index snapshot, rebuilding it first if the
// on-disk index file has a newer mtime than the last build (spec.md
// §4.M2). Snapshots are published by atomically swapping a shared pointer
// (invariant I3): concurrent readers never observe a partial rebuild.
func (r *Repo) Snapshot(numThreads int) (*gsindex.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	indexPath := r.indexPath()
	var diskMTime time.Time
	if indexPath != "" {
		if fi, err := os.Stat(indexPath); err == nil {
			diskMTime = fi.ModTime()
		}
	}

	if existing := r.snapshot.Load(); existing != nil && !diskMTime.After(r.indexMTime) {
		return existing, nil
	}

	idx, err := r.gitRepo.Storer.Index()
	if err != nil {
		return nil, gserr.Wrap(gserr.KindLibrary, "reading index", err)
	}

	snap := gsindex.Build(idx, numThreads)
	r.snapshot.Store(snap)
	r.indexMTime = diskMTime
	return snap, nil
}

func (r *Repo) indexPath() string {
	gitDir := r.gitDir()
	if gitDir == "" {
		return ""
	}
	return filepath.Join(gitDir, "index")
}
