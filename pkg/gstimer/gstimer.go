// pkg/gstimer/gstimer.go

// Package gstimer is the monotonic-clock interval reporter (spec component
// G3). It generalizes gitstatus.cc's single ON_SCOPE_EXIT Timer::Report
// into named phases, so a request with diag=1 can report a per-phase
// breakdown instead of one total. The request loop times two phases:
// "open" (repository lookup) and "diff" (snapshot, diff scan and
// ahead/behind together).
package gstimer

import (
	"time"

	"github.com/dritter/gitstatusd/pkg/gslog"
	"go.uber.org/zap"
)

// Timer accumulates named phase durations for a single request.
type Timer struct {
	start  time.Time
	phases []phase
	diag   bool
}

type phase struct {
	name string
	d    time.Duration
}

// New starts a timer. When diag is false, Phase still measures but Report
// only logs the total, matching spec.md's diag request field semantics.
func New(diag bool) *Timer {
	return &Timer{start: time.Now(), diag: diag}
}

// Phase times fn and records it under name.
func (t *Timer) Phase(name string, fn func()) {
	begin := time.Now()
	fn()
	t.phases = append(t.phases, phase{name: name, d: time.Since(begin)})
}

// Report logs the total elapsed time since New, and the per-phase
// breakdown if diag was requested. Intended to be deferred.
func (t *Timer) Report(log *gslog.Logger, label string) {
	total := time.Since(t.start)
	if !t.diag {
		log.Debug(label, zap.Duration("total", total))
		return
	}
	fields := make([]zap.Field, 0, len(t.phases)+1)
	fields = append(fields, zap.Duration("total", total))
	for _, p := range t.phases {
		fields = append(fields, zap.Duration(p.name, p.d))
	}
	log.Debug(label, fields...)
}
