// pkg/gsrepo/refswatch.go

package gsrepo

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// refsWatch detects that the refs database has changed by comparing a
// cheap signature (mtimes of packed-refs, the refs directory itself and
// refs/tags)
// against the last-seen signature, bumping a generation counter on
// change. This backs pkg/gstag's invalidation key (spec.md §4.M3) without
// re-walking every ref on every request.
type refsWatch struct {
	mu         sync.Mutex
	lastSig    string
	generation int64
}

// currentGeneration returns the current generation, bumping it first if the
// refs database's signature has changed since the last call.
func (w *refsWatch) currentGeneration(gitDir string) int64 {
	sig := refsSignature(gitDir)

	w.mu.Lock()
	defer w.mu.Unlock()
	if sig != w.lastSig {
		w.lastSig = sig
		w.generation++
	}
	return w.generation
}

func refsSignature(gitDir string) string {
	if gitDir == "" {
		return ""
	}
	var sig string
	if fi, err := os.Stat(filepath.Join(gitDir, "packed-refs")); err == nil {
		sig += "p:" + strconv.FormatInt(fi.ModTime().UnixNano(), 36)
	}
	if fi, err := os.Stat(filepath.Join(gitDir, "refs")); err == nil {
		sig += ";r:" + strconv.FormatInt(fi.ModTime().UnixNano(), 36)
	}
	if fi, err := os.Stat(filepath.Join(gitDir, "refs", "tags")); err == nil {
		sig += ";t:" + strconv.FormatInt(fi.ModTime().UnixNano(), 36)
	}
	// HEAD changing (e.g. a detached checkout to a newly-tagged commit)
	// touches none of these paths and needs no generation bump: the tag
	// cache is keyed by commit as well. Writing or deleting a loose tag
	// renames a file inside refs/tags, and a packed tag rewrites
	// packed-refs. A tag nested in a subdirectory of refs/tags changes
	// only that subdirectory's mtime, which is not part of the signature.
	return sig
}
