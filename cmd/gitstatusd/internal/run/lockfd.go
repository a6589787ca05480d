// cmd/gitstatusd/internal/run/lockfd.go

package run

import (
	"io"
	"os"

	"github.com/dritter/gitstatusd/pkg/gslog"
)

// watchLockFD blocks on reads from fd until it returns EOF or an error,
// then exits the process: spec.md §6's liveness contract is "the parent
// holds this fd open and readable; when it becomes EOF-readable (the
// parent died), gitstatusd must not outlive it."
func watchLockFD(fd int, stop <-chan struct{}, log *gslog.Logger) {
	f := os.NewFile(uintptr(fd), "lock-fd")
	if f == nil {
		log.Warn("lock-fd is not a valid file descriptor")
		return
	}
	defer f.Close()

	buf := make([]byte, 1)
	for {
		select {
		case <-stop:
			return
		default:
		}
		_, err := f.Read(buf)
		if err != nil {
			if err != io.EOF {
				log.Warn("lock-fd read error, exiting")
			}
			os.Exit(0)
		}
	}
}
