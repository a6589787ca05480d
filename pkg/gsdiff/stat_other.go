// pkg/gsdiff/stat_other.go

//go:build !linux

package gsdiff

import (
	"os"

	"github.com/dritter/gitstatusd/pkg/gsindex"
)

// statMatches falls back to the fields os.FileInfo actually exposes on
// platforms without a syscall.Stat_t inode/device/ctime, the same
// conservative-degradation pattern gsdir uses for its directory listing.
func statMatches(fi os.FileInfo, e gsindex.Entry) bool {
	if fi.IsDir() {
		return false
	}
	if uint32(fi.Size()) != e.Size {
		return false
	}
	if modeBits(fi.Mode()) != e.Mode&0o170000 {
		return false
	}
	return fi.ModTime().Equal(e.ModifiedAt)
}
