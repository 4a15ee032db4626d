// File: api/context.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Context contract: the unit of scheduling affinity. All callback execution
// in the runtime flows through a Context, which pins work either to a single
// event-loop goroutine or to an ordered background lane.

package api

// Task is a unit of work submitted to a Context.
type Task func()

// Context determines which execution lane runs work submitted through it.
//
// Execute never blocks the caller. The task eventually runs with the ambient
// context binding set to this Context for exactly the task's dynamic extent,
// and cleared afterward even if the task panics.
type Context interface {
	// Execute schedules task under this context's affinity rules.
	Execute(task Task)

	// IsEventLoop reports whether this context is bound to an event loop.
	IsEventLoop() bool
}
