// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package concurrency implements the execution mechanics of the runtime:
// event loops pinned to dedicated OS-thread-locked goroutines, ordered lanes
// over a fixed background executor, the lazily constructed pool triple, the
// ambient context binding, and the timing-wheel timer subsystem.
//
// Contracts are defined in the api package; this package supplies the only
// implementations used by the facade.
package concurrency
