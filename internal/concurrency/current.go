// File: internal/concurrency/current.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ambient context binding: the Go equivalent of a thread-local slot holding
// the context whose task is currently running on the calling goroutine. The
// binding is keyed by goroutine id and sharded to keep contention off the
// execution hot path. Only the context execution wrappers (context.go) may
// mutate it.

package concurrency

import (
	"sync"

	"github.com/petermattis/goid"

	"github.com/momentics/hioload-runtime/api"
)

const currentShards = 64

type currentShard struct {
	mu sync.RWMutex
	m  map[int64]api.Context
}

var current [currentShards]*currentShard

func init() {
	for i := range current {
		current[i] = &currentShard{m: make(map[int64]api.Context)}
	}
}

func shardFor(gid int64) *currentShard {
	return current[uint64(gid)%currentShards]
}

// setCurrent binds ctx to the calling goroutine.
func setCurrent(ctx api.Context) {
	gid := goid.Get()
	s := shardFor(gid)
	s.mu.Lock()
	s.m[gid] = ctx
	s.mu.Unlock()
}

// clearCurrent removes the calling goroutine's binding.
func clearCurrent() {
	gid := goid.Get()
	s := shardFor(gid)
	s.mu.Lock()
	delete(s.m, gid)
	s.mu.Unlock()
}

// Current returns the context bound to the calling goroutine, or nil when
// called outside any context-managed callback.
func Current() api.Context {
	gid := goid.Get()
	s := shardFor(gid)
	s.mu.RLock()
	ctx := s.m[gid]
	s.mu.RUnlock()
	return ctx
}

// IsEventLoop reports whether the calling goroutine is running under an
// event-loop context.
func IsEventLoop() bool {
	ctx := Current()
	return ctx != nil && ctx.IsEventLoop()
}
