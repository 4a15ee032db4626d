// File: internal/concurrency/lane.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// OrderedLane serializes tasks over a shared executor: FIFO submission order,
// never two tasks of the same lane in flight at once, while the physical
// worker executing a drain may differ between bursts.

package concurrency

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-runtime/api"
)

// OrderedLane is a serial task queue drained on an api.Executor.
type OrderedLane struct {
	mu       sync.Mutex
	tasks    *queue.Queue
	draining bool
	exec     api.Executor
	panicFn  func(recovered any)
}

// NewOrderedLane creates a lane over exec. panicFn must be non-nil.
func NewOrderedLane(exec api.Executor, panicFn func(recovered any)) *OrderedLane {
	return &OrderedLane{
		tasks:   queue.New(),
		exec:    exec,
		panicFn: panicFn,
	}
}

// Submit enqueues a task. When no drain is in flight, a single drain job is
// handed to the executor; the invariant is at most one drain per lane.
func (l *OrderedLane) Submit(task api.Task) {
	l.mu.Lock()
	l.tasks.Add(task)
	start := !l.draining
	if start {
		l.draining = true
	}
	l.mu.Unlock()
	if start {
		if err := l.exec.Submit(l.drain); err != nil {
			l.mu.Lock()
			l.draining = false
			l.mu.Unlock()
		}
	}
}

// drain runs queued tasks one at a time until the queue empties.
func (l *OrderedLane) drain() {
	for {
		l.mu.Lock()
		if l.tasks.Length() == 0 {
			l.draining = false
			l.mu.Unlock()
			return
		}
		task := l.tasks.Remove().(api.Task)
		l.mu.Unlock()
		l.invoke(task)
	}
}

// invoke isolates task panics so the rest of the lane keeps draining.
func (l *OrderedLane) invoke(task api.Task) {
	defer func() {
		if r := recover(); r != nil {
			l.panicFn(r)
		}
	}()
	task()
}
