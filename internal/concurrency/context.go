// File: internal/concurrency/context.go
// Package concurrency implements the two api.Context variants.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// EventLoopContext pins every task to the one loop chosen at creation, giving
// single-goroutine semantics for the context's lifetime; protocol handler
// state owned by one such context needs no locking. WorkerContext pins tasks
// to an ordered lane: FIFO, non-overlapping, worker goroutine may vary.
//
// Both variants wrap each task so the ambient binding (current.go) covers
// exactly the task's dynamic extent, including panicking tasks.

package concurrency

import "github.com/momentics/hioload-runtime/api"

// EventLoopContext executes all its tasks on one event loop.
type EventLoopContext struct {
	loop *EventLoop
}

var _ api.Context = (*EventLoopContext)(nil)

// NewEventLoopContext binds a context to the given loop.
func NewEventLoopContext(loop *EventLoop) *EventLoopContext {
	return &EventLoopContext{loop: loop}
}

// Execute posts the task to the bound loop. Never blocks.
func (c *EventLoopContext) Execute(task api.Task) {
	c.loop.Post(c.bind(task))
}

// IsEventLoop reports true.
func (c *EventLoopContext) IsEventLoop() bool { return true }

// Loop exposes the bound loop for diagnostics.
func (c *EventLoopContext) Loop() *EventLoop { return c.loop }

func (c *EventLoopContext) bind(task api.Task) api.Task {
	return func() {
		setCurrent(c)
		defer clearCurrent()
		task()
	}
}

// WorkerContext executes its tasks strictly in submission order on an
// ordered background lane.
type WorkerContext struct {
	lane *OrderedLane
}

var _ api.Context = (*WorkerContext)(nil)

// NewWorkerContext binds a context to the given lane.
func NewWorkerContext(lane *OrderedLane) *WorkerContext {
	return &WorkerContext{lane: lane}
}

// Execute submits the task to the bound lane. Never blocks.
func (c *WorkerContext) Execute(task api.Task) {
	c.lane.Submit(c.bind(task))
}

// IsEventLoop reports false.
func (c *WorkerContext) IsEventLoop() bool { return false }

func (c *WorkerContext) bind(task api.Task) api.Task {
	return func() {
		setCurrent(c)
		defer clearCurrent()
		task()
	}
}
