// Package api
// Author: momentics
//
// Executor contract for task dispatch across pooled worker goroutines.

package api

// Executor abstracts a pool of worker goroutines accepting fire-and-forget tasks.
type Executor interface {
	// Submit schedules task for execution.
	Submit(task Task) error

	// NumWorkers returns current number of active worker routines.
	NumWorkers() int
}
