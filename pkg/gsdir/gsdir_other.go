// pkg/gsdir/gsdir_other.go

//go:build !linux

package gsdir

import (
	"errors"

	"github.com/dritter/gitstatusd/pkg/gsarena"
)

// listRaw has no raw getdents-family syscall on this platform; List falls
// back to listPortable unconditionally.
func listRaw(_ string, _ *gsarena.Arena) ([]Entry, error) {
	return nil, errors.New("no raw directory syscall on this platform")
}
