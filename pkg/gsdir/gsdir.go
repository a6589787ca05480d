// pkg/gsdir/gsdir.go

// Package gsdir is the directory lister (spec component L1). It enumerates
// a directory's immediate children into a caller-supplied arena and a
// slice of Entry. The arena holds only the entry names, back to back, with
// no type byte and no NUL terminators; each entry's type is kept in its
// Entry next to the view of its name. On Linux it reads raw dirents via
// golang.org/x/sys/unix with a
// 16 KiB stack buffer; elsewhere it falls back to os.ReadDir.
package gsdir

import (
	"os"

	"github.com/dritter/gitstatusd/pkg/gsarena"
	"github.com/dritter/gitstatusd/pkg/gserr"
)

// Type is the filesystem entry kind, stored in each Entry beside the view
// of its name (not in the arena).
type Type byte

const (
	TypeFile Type = iota
	TypeDir
	TypeSymlink
	TypeUnknown
)

// Entry is a lightweight (arena-backed) view over one directory entry.
type Entry struct {
	Type Type
	Name gsarena.View
}

// List reads dir's immediate children into arena, filtering "." and "..".
// The returned slice of Entry is only valid for the lifetime of arena.
func List(dir string, arena *gsarena.Arena) ([]Entry, error) {
	entries, err := listRaw(dir, arena)
	if err == nil {
		return entries, nil
	}
	// Fall back to the portable path on any raw-syscall failure. A
	// directory that is missing or not a directory fails there as well,
	// and callers see that failure as an io-error.
	return listPortable(dir, arena)
}

// listPortable is the portable fallback used on platforms without a raw
// getdents-family syscall, and as a safety net whenever the fast path
// errors.
func listPortable(dir string, arena *gsarena.Arena) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, gserr.Wrap(gserr.KindIO, "reading directory "+dir, err)
	}
	out := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		name := d.Name()
		if name == "." || name == ".." {
			continue
		}
		t := TypeUnknown
		switch {
		case d.Type()&os.ModeSymlink != 0:
			t = TypeSymlink
		case d.IsDir():
			t = TypeDir
		case d.Type().IsRegular():
			t = TypeFile
		}
		out = append(out, Entry{Type: t, Name: arena.AppendString(name)})
	}
	return out, nil
}
