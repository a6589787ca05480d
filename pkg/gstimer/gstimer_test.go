// pkg/gstimer/gstimer_test.go

package gstimer

import (
	"testing"
	"time"

	"github.com/dritter/gitstatusd/pkg/gslog"
)

func TestTimerReportsPhases(t *testing.T) {
	tm := New(true)
	tm.Phase("scan", func() { time.Sleep(time.Millisecond) })
	tm.Phase("tag", func() {})
	tm.Report(gslog.Nop(), "request")
}

func TestTimerWithoutDiag(t *testing.T) {
	tm := New(false)
	tm.Phase("scan", func() {})
	tm.Report(gslog.Nop(), "request")
}
