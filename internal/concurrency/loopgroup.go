// File: internal/concurrency/loopgroup.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// LoopGroup is the I/O pool: a fixed set of event loops handed out
// round-robin to new event-loop contexts.

package concurrency

import (
	"fmt"

	uatomic "go.uber.org/atomic"
)

// LoopGroup owns a fixed number of event loops. Size is immutable after
// construction.
type LoopGroup struct {
	loops []*EventLoop
	next  *uatomic.Uint64
}

// NewLoopGroup starts size loops named prefix0..prefix(size-1). When pin is
// true each loop thread is pinned to the CPU matching its index.
func NewLoopGroup(size int, prefix string, pin bool, panicFn func(recovered any)) *LoopGroup {
	g := &LoopGroup{
		loops: make([]*EventLoop, size),
		next:  uatomic.NewUint64(0),
	}
	for i := 0; i < size; i++ {
		cpu := -1
		if pin {
			cpu = i
		}
		g.loops[i] = NewEventLoop(i, fmt.Sprintf("%s%d", prefix, i), cpu, panicFn)
		g.loops[i].Start()
	}
	return g
}

// Size returns the number of loops in the group.
func (g *LoopGroup) Size() int { return len(g.loops) }

// Next selects a loop round-robin.
func (g *LoopGroup) Next() *EventLoop {
	n := g.next.Inc() - 1
	return g.loops[n%uint64(len(g.loops))]
}

// Stop terminates every loop, draining queued tasks first.
func (g *LoopGroup) Stop() {
	for _, el := range g.loops {
		el.Stop()
	}
}
