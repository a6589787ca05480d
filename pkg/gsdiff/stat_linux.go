// pkg/gsdiff/stat_linux.go

//go:build linux

package gsdiff

import (
	"os"
	"syscall"
	"time"

	"github.com/dritter/gitstatusd/pkg/gsindex"
)

// statMatches compares a freshly lstat'd file against the stat fields
// cached in the index entry, per spec.md §4.M4: "Compare cached stat
// fields (mtime with nanosecond precision when available, ctime, size,
// inode, device, mode). If all match ... the file is unchanged." On
// Linux the inode/device/ctime fields come off the raw syscall.Stat_t,
// which os.FileInfo doesn't expose.
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

	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fi.ModTime().Equal(e.ModifiedAt)
	}

	if uint32(st.Ino) != e.Inode || uint32(st.Dev) != e.Dev {
		return false
	}

	mtime := time.Unix(st.Mtim.Sec, st.Mtim.Nsec)
	if !mtime.Equal(e.ModifiedAt) {
		return false
	}
	ctime := time.Unix(st.Ctim.Unix())
	if !ctime.Equal(e.CreatedAt) {
		return false
	}
	return true
}
