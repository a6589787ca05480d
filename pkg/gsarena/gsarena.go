// pkg/gsarena/gsarena.go

// Package gsarena provides contiguous byte storage and zero-copy views
// into it (spec component L3). The directory lister (pkg/gsdir) fills one
// arena per call with no per-entry allocation; the diff engine borrows
// string views out of it for the duration of a shard's scan and never lets
// them escape the arena's lifetime.
package gsarena

// Arena is an append-only byte buffer. It is not safe for concurrent
// writers; each diff shard owns its own arena.
type Arena struct {
	buf []byte
}

// New returns an Arena pre-sized to reduce reallocation for the expected
// number of directory entries.
func New(sizeHint int) *Arena {
	return &Arena{buf: make([]byte, 0, sizeHint)}
}

// Reset empties the arena while keeping its backing array, so a worker can
// reuse one Arena across shards instead of allocating a fresh one each time.
func (a *Arena) Reset() {
	a.buf = a.buf[:0]
}

// Append copies b into the arena and returns a View over the copied bytes.
func (a *Arena) Append(b []byte) View {
	off := len(a.buf)
	a.buf = append(a.buf, b...)
	return View{a: a, off: off, len: len(b)}
}

// AppendString is Append for a string, avoiding the caller having to
// convert to []byte first.
func (a *Arena) AppendString(s string) View {
	off := len(a.buf)
	a.buf = append(a.buf, s...)
	return View{a: a, off: off, len: len(s)}
}

// Len reports the number of bytes currently stored.
func (a *Arena) Len() int { return len(a.buf) }

// View is a zero-copy reference into an Arena's backing storage. It is
// only valid for the lifetime of the Arena that produced it; never store a
// View beyond the scope that owns its Arena (see pkg/gsscope).
type View struct {
	a   *Arena
	off int
	len int
}

// Bytes returns the referenced byte range. The caller must not retain or
// mutate the slice beyond the Arena's lifetime.
func (v View) Bytes() []byte {
	if v.a == nil {
		return nil
	}
	return v.a.buf[v.off : v.off+v.len]
}

// String materializes the view as a string. This does copy (Go strings are
// immutable), but only at the point a caller actually needs a string
// rather than a byte range.
func (v View) String() string {
	return string(v.Bytes())
}

// Len reports the view's length in bytes.
func (v View) Len() int { return v.len }
