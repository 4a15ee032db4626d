// File: internal/concurrency/executor.go
// Package concurrency implements the fixed-size background executor.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Executor dispatches tasks across a fixed set of worker goroutines fed from
// a single unbounded FIFO intake, so Submit never blocks the caller. Ordered
// lanes (lane.go) layer submission-order guarantees on top of it.

package concurrency

import (
	"fmt"
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-runtime/api"
)

// Executor manages a pool of worker goroutines draining one shared queue.
type Executor struct {
	mu      sync.Mutex
	cond    *sync.Cond
	intake  *queue.Queue
	closed  bool
	workers int
	prefix  string

	wg      sync.WaitGroup
	panicFn func(recovered any)
}

var _ api.Executor = (*Executor)(nil)

// NewExecutor starts numWorkers worker goroutines. panicFn receives values
// recovered from panicking tasks; it must be non-nil.
func NewExecutor(numWorkers int, prefix string, panicFn func(recovered any)) *Executor {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	e := &Executor{
		intake:  queue.New(),
		workers: numWorkers,
		prefix:  prefix,
		panicFn: panicFn,
	}
	e.cond = sync.NewCond(&e.mu)
	e.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go e.run(fmt.Sprintf("%s%d", prefix, i))
	}
	return e
}

// Submit enqueues a task, returning api.ErrExecutorClosed after Close.
// Never blocks.
func (e *Executor) Submit(task api.Task) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return api.ErrExecutorClosed
	}
	e.intake.Add(task)
	e.mu.Unlock()
	e.cond.Signal()
	return nil
}

// NumWorkers returns the fixed worker count.
func (e *Executor) NumWorkers() int { return e.workers }

// Close drains queued tasks and waits for workers to exit.
func (e *Executor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.wg.Wait()
		return
	}
	e.closed = true
	e.mu.Unlock()
	e.cond.Broadcast()
	e.wg.Wait()
}

func (e *Executor) run(name string) {
	defer e.wg.Done()
	setWorkerLabel(name)
	for {
		e.mu.Lock()
		for e.intake.Length() == 0 && !e.closed {
			e.cond.Wait()
		}
		if e.intake.Length() == 0 && e.closed {
			e.mu.Unlock()
			return
		}
		task := e.intake.Remove().(api.Task)
		e.mu.Unlock()
		e.invoke(task)
	}
}

// invoke runs the task, recovering panics to keep the worker alive.
func (e *Executor) invoke(task api.Task) {
	defer func() {
		if r := recover(); r != nil {
			e.panicFn(r)
		}
	}()
	task()
}
