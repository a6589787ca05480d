// pkg/gspool/gspool.go

// Package gspool is the fixed-size worker pool (spec component L2).
// Submission is non-blocking when the bounded queue has room; otherwise
// the submitting goroutine runs the task itself (bounded-queue,
// caller-runs policy), guaranteeing forward progress under load instead of
// blocking the request thread on a full queue.
package gspool

import "sync"

// Task is an opaque unit of work. Tasks are run to completion; there are
// no priorities and no cancellation (spec.md §4.L2).
type Task func()

// Pool is a fixed-size set of worker goroutines draining a bounded queue.
type Pool struct {
	tasks chan Task
	done  chan struct{}
	wg    sync.WaitGroup
}

// New starts a pool of numWorkers goroutines backed by a queue that holds
// up to queueSize pending tasks.
func New(numWorkers, queueSize int) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	p := &Pool{
		tasks: make(chan Task, queueSize),
		done:  make(chan struct{}),
	}
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case t, ok := <-p.tasks:
			if !ok {
				return
			}
			t()
		case <-p.done:
			return
		}
	}
}

// Submit enqueues t if the queue has room; otherwise it runs t on the
// calling goroutine. Submit never blocks.
func (p *Pool) Submit(t Task) {
	select {
	case p.tasks <- t:
	default:
		t()
	}
}

// SubmitWait submits every task and blocks until all of them have run to
// completion. This is how the diff engine (pkg/gsdiff) fans out one task
// per shard and joins them before emitting a response (spec.md §5).
func (p *Pool) SubmitWait(tasks ...Task) {
	if len(tasks) == 0 {
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, t := range tasks {
		t := t
		p.Submit(func() {
			defer wg.Done()
			t()
		})
	}
	wg.Wait()
}

// Close stops all workers once their current task finishes. Queued-but-
// unstarted tasks are abandoned; gitstatusd only closes its pool at
// process shutdown, when no request is in flight (spec.md §5).
func (p *Pool) Close() {
	close(p.done)
	p.wg.Wait()
}
