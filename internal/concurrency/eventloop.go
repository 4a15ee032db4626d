// File: internal/concurrency/eventloop.go
// Package concurrency implements the single-goroutine event loop backing
// event-loop contexts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Each EventLoop owns exactly one goroutine, locked to an OS thread for the
// loop's lifetime. Every task posted to the loop runs on that goroutine, so
// state owned by a single loop needs no synchronization.

package concurrency

import (
	"sync"

	"github.com/eapache/queue"
	"github.com/petermattis/goid"

	"github.com/momentics/hioload-runtime/api"
)

// EventLoop executes posted tasks sequentially on one dedicated goroutine.
type EventLoop struct {
	id    int
	name  string
	cpuID int // >= 0 pins the loop thread to this CPU

	mu      sync.Mutex
	cond    *sync.Cond
	tasks   *queue.Queue
	stopped bool

	gid     int64 // goroutine id of the loop, for diagnostics
	done    chan struct{}
	panicFn func(recovered any)
}

// NewEventLoop creates a loop. panicFn receives values recovered from
// panicking tasks; it must be non-nil.
func NewEventLoop(id int, name string, cpuID int, panicFn func(recovered any)) *EventLoop {
	el := &EventLoop{
		id:      id,
		name:    name,
		cpuID:   cpuID,
		tasks:   queue.New(),
		done:    make(chan struct{}),
		panicFn: panicFn,
	}
	el.cond = sync.NewCond(&el.mu)
	return el
}

// ID returns the loop's index within its group.
func (el *EventLoop) ID() int { return el.id }

// Name returns the loop's diagnostic name.
func (el *EventLoop) Name() string { return el.name }

// GoroutineID returns the id of the loop goroutine, or zero before Start.
func (el *EventLoop) GoroutineID() int64 {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.gid
}

// Start launches the loop goroutine.
func (el *EventLoop) Start() {
	go el.run()
}

// Post enqueues a task for execution on the loop goroutine. Never blocks.
// Tasks posted after Stop are silently dropped.
func (el *EventLoop) Post(task api.Task) {
	el.mu.Lock()
	if el.stopped {
		el.mu.Unlock()
		return
	}
	el.tasks.Add(task)
	el.mu.Unlock()
	el.cond.Signal()
}

// Pending returns the number of queued tasks.
func (el *EventLoop) Pending() int {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.tasks.Length()
}

// Stop drains already-queued tasks and terminates the loop goroutine.
func (el *EventLoop) Stop() {
	el.mu.Lock()
	if el.stopped {
		el.mu.Unlock()
		<-el.done
		return
	}
	el.stopped = true
	el.mu.Unlock()
	el.cond.Broadcast()
	<-el.done
}

func (el *EventLoop) run() {
	lockLoopThread(el.cpuID)
	setWorkerLabel(el.name)
	el.mu.Lock()
	el.gid = goid.Get()
	for {
		for el.tasks.Length() == 0 && !el.stopped {
			el.cond.Wait()
		}
		if el.tasks.Length() == 0 && el.stopped {
			el.mu.Unlock()
			close(el.done)
			return
		}
		task := el.tasks.Remove().(api.Task)
		el.mu.Unlock()
		el.invoke(task)
		el.mu.Lock()
	}
}

// invoke runs one task, keeping the loop alive across panics.
func (el *EventLoop) invoke(task api.Task) {
	defer func() {
		if r := recover(); r != nil {
			el.panicFn(r)
		}
	}()
	task()
}
