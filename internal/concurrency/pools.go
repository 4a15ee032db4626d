// File: internal/concurrency/pools.go
// Package concurrency implements the lazily constructed pool triple.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// PoolManager owns the I/O loop group, the background executor, and the
// acceptor pool. Each is constructed at most once, on first demand, with an
// atomic fast-path read and a mutex-guarded re-check on the slow path; sizes
// become immutable at materialization.

package concurrency

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
	uatomic "go.uber.org/atomic"

	"github.com/momentics/hioload-runtime/api"
)

// Diagnostic name prefixes, one per pool.
const (
	loopThreadPrefix     = "hioload-core-thread-"
	workerThreadPrefix   = "hioload-worker-thread-"
	acceptorThreadPrefix = "hioload-acceptor-thread-"
)

// acceptorIdleTimeout is how long an idle acceptor worker survives before
// the pool reclaims it.
const acceptorIdleTimeout = time.Minute

// PoolManager lazily constructs and owns the three process pools.
type PoolManager struct {
	mu sync.Mutex // guards construction and pending sizes

	ioPoolSize         int
	backgroundPoolSize int
	pinLoops           bool

	loops      *uatomic.Pointer[LoopGroup]
	background *uatomic.Pointer[Executor]
	acceptor   *uatomic.Pointer[AcceptorPool]

	logger  zerolog.Logger
	panicFn func(recovered any)
}

// NewPoolManager creates a manager with pending sizes; no pool is built until
// first demand. panicFn receives values recovered from callbacks and must be
// non-nil.
func NewPoolManager(ioPoolSize, backgroundPoolSize int, pinLoops bool, logger zerolog.Logger, panicFn func(recovered any)) *PoolManager {
	if ioPoolSize <= 0 {
		ioPoolSize = runtime.NumCPU()
	}
	if backgroundPoolSize <= 0 {
		backgroundPoolSize = 1
	}
	return &PoolManager{
		ioPoolSize:         ioPoolSize,
		backgroundPoolSize: backgroundPoolSize,
		pinLoops:           pinLoops,
		loops:              uatomic.NewPointer[LoopGroup](nil),
		background:         uatomic.NewPointer[Executor](nil),
		acceptor:           uatomic.NewPointer[AcceptorPool](nil),
		logger:             logger,
		panicFn:            panicFn,
	}
}

// SetIOPoolSize stores a pending loop count. Fails with api.ErrPoolInitialized
// once the loop group has been materialized.
func (m *PoolManager) SetIOPoolSize(n int) error {
	if n <= 0 {
		return api.ErrInvalidArgument
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loops.Load() != nil {
		return api.ErrPoolInitialized
	}
	m.ioPoolSize = n
	return nil
}

// SetBackgroundPoolSize stores a pending worker count. Fails with
// api.ErrPoolInitialized once the background executor has been materialized.
func (m *PoolManager) SetBackgroundPoolSize(n int) error {
	if n <= 0 {
		return api.ErrInvalidArgument
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.background.Load() != nil {
		return api.ErrPoolInitialized
	}
	m.backgroundPoolSize = n
	return nil
}

// LoopGroup returns the I/O pool, constructing it on first call.
func (m *PoolManager) LoopGroup() *LoopGroup {
	if g := m.loops.Load(); g != nil {
		return g
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if g := m.loops.Load(); g != nil {
		return g
	}
	g := NewLoopGroup(m.ioPoolSize, loopThreadPrefix, m.pinLoops, m.panicFn)
	m.loops.Store(g)
	m.logger.Info().Int("size", m.ioPoolSize).Str("prefix", loopThreadPrefix).Msg("event loop pool created")
	return g
}

// BackgroundPool returns the background executor, constructing it on first call.
func (m *PoolManager) BackgroundPool() *Executor {
	if e := m.background.Load(); e != nil {
		return e
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e := m.background.Load(); e != nil {
		return e
	}
	e := NewExecutor(m.backgroundPoolSize, workerThreadPrefix, m.panicFn)
	m.background.Store(e)
	m.logger.Info().Int("size", m.backgroundPoolSize).Str("prefix", workerThreadPrefix).Msg("background pool created")
	return e
}

// AcceptorPool returns the cached acceptor pool, constructing it on first
// call. The pool grows one worker per concurrent listener and reclaims idle
// workers, so it stays small in practice.
func (m *PoolManager) AcceptorPool() *AcceptorPool {
	if p := m.acceptor.Load(); p != nil {
		return p
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.acceptor.Load(); p != nil {
		return p
	}
	p := newAcceptorPool(m.panicFn)
	m.acceptor.Store(p)
	m.logger.Info().Str("prefix", acceptorThreadPrefix).Msg("acceptor pool created")
	return p
}

// NewEventLoopContext creates a context bound round-robin to one loop.
func (m *PoolManager) NewEventLoopContext() *EventLoopContext {
	return NewEventLoopContext(m.LoopGroup().Next())
}

// NewWorkerContext creates a context bound to a fresh ordered lane over the
// background executor.
func (m *PoolManager) NewWorkerContext() *WorkerContext {
	return NewWorkerContext(NewOrderedLane(m.BackgroundPool(), m.panicFn))
}

// Close stops every materialized pool. Pools never constructed stay absent.
func (m *PoolManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g := m.loops.Load(); g != nil {
		g.Stop()
	}
	if e := m.background.Load(); e != nil {
		e.Close()
	}
	if p := m.acceptor.Load(); p != nil {
		p.Close()
	}
}

// AcceptorPool runs one long-lived blocking task per active listener on a
// cached, idle-expiring worker pool.
type AcceptorPool struct {
	pool    *ants.Pool
	panicFn func(recovered any)
}

var _ api.Executor = (*AcceptorPool)(nil)

func newAcceptorPool(panicFn func(recovered any)) *AcceptorPool {
	p, _ := ants.NewPool(
		math.MaxInt32,
		ants.WithExpiryDuration(acceptorIdleTimeout),
		ants.WithPanicHandler(panicFn),
	)
	return &AcceptorPool{pool: p, panicFn: panicFn}
}

// Submit hands an accept loop to a pooled worker.
func (a *AcceptorPool) Submit(task api.Task) error {
	if err := a.pool.Submit(task); err != nil {
		return api.ErrExecutorClosed
	}
	return nil
}

// NumWorkers returns the number of currently running acceptor workers.
func (a *AcceptorPool) NumWorkers() int { return a.pool.Running() }

// Close releases the underlying worker pool.
func (a *AcceptorPool) Close() { a.pool.Release() }
