// pkg/gsdiff/stat.go

package gsdiff

import "os"

// modeBits maps a Go os.FileMode to the git object-type bits of an index
// entry's mode field (0100000 regular, 0120000 symlink). Trees are never
// index entries; a submodule's gitlink entry (0160000) matches neither
// value returned here.
func modeBits(m os.FileMode) uint32 {
	if m&os.ModeSymlink != 0 {
		return 0o120000
	}
	return 0o100000
}
