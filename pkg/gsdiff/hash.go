// pkg/gsdiff/hash.go

package gsdiff

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/dritter/gitstatusd/pkg/gserr"
)

// hashBufferSize is the fixed-size buffer spec.md §4.M4 requires: "Hash
// computation uses streaming I/O with a fixed-size buffer (no whole-file
// allocation)." go-git's plumbing.ComputeHash loads the whole content into
// memory first, which is exactly what this requirement rules out, so this
// one primitive is hand-rolled rather than reused from the library.
const hashBufferSize = 64 * 1024

// hashBlob computes the git blob object id of the file at path by
// streaming its content through SHA-1 with a fixed buffer, the same
// "blob <size>\0<content>" framing git itself hashes.
func hashBlob(path string, size int64) (plumbing.Hash, error) {
	f, err := os.Open(path)
	if err != nil {
		return plumbing.ZeroHash, gserr.Wrap(gserr.KindIO, "opening "+path, err)
	}
	defer f.Close()

	h := sha1.New()
	if _, err := fmt.Fprintf(h, "blob %d\x00", size); err != nil {
		return plumbing.ZeroHash, err
	}

	buf := make([]byte, hashBufferSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return plumbing.ZeroHash, gserr.Wrap(gserr.KindIO, "reading "+path, err)
	}

	var sum plumbing.Hash
	copy(sum[:], h.Sum(nil))
	return sum, nil
}
