// pkg/gsrepo/stash.go

package gsrepo

import (
	"bufio"
	"os"
	"path/filepath"
)

// StashCount reports the number of stash entries by counting lines in
// .git/logs/refs/stash, the same source `git stash list` reads. go-git
// has no stash API (it only exposes commit/tree/index primitives), so
// this reads the reflog file directly the way the porcelain does.
func (r *Repo) StashCount() int {
	gitDir := r.gitDir()
	if gitDir == "" {
		return 0
	}
	f, err := os.Open(filepath.Join(gitDir, "logs", "refs", "stash"))
	if err != nil {
		return 0
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) > 0 {
			n++
		}
	}
	return n
}
