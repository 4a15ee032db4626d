// File: facade/runtime.go
// Unified facade layer for the hioload-runtime execution core.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime aggregates the pool manager, the timing-wheel timer subsystem and
// the shared-data registry behind the procedural surface consumed by
// protocol layers and deployment logic. Pools stay unmaterialized until the
// first context or listener demands them; the timing wheel starts with the
// runtime because timer ids must be ready before any pool exists.

package facade

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	uatomic "go.uber.org/atomic"

	"github.com/momentics/hioload-runtime/api"
	"github.com/momentics/hioload-runtime/control"
	"github.com/momentics/hioload-runtime/internal/concurrency"
	"github.com/momentics/hioload-runtime/shareddata"
)

// ExceptionHandler receives failures escaping callback execution boundaries.
type ExceptionHandler func(err error)

// Runtime is the execution core facade.
type Runtime struct {
	pools  *concurrency.PoolManager
	wheel  *concurrency.TimingWheel
	timers *concurrency.TimerManager
	shared *shareddata.Registry

	logger zerolog.Logger

	excMu sync.RWMutex
	exc   ExceptionHandler

	closed *uatomic.Bool
}

// New constructs a Runtime from the given configuration; nil selects the
// environment snapshot.
func New(cfg *control.Config) *Runtime {
	if cfg == nil {
		cfg = control.FromEnv()
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "hioload-runtime").Logger()
	r := &Runtime{
		shared: shareddata.NewRegistry(),
		logger: logger,
		closed: uatomic.NewBool(false),
	}
	r.exc = func(err error) {
		r.logger.Error().Err(err).Msg("unhandled exception in context callback")
	}
	r.pools = concurrency.NewPoolManager(cfg.IOPoolSize, cfg.BackgroundPoolSize, cfg.CPUAffinity, logger, r.reportRecovered)
	r.wheel = concurrency.NewTimingWheel(time.Duration(cfg.TimerTickMs)*time.Millisecond, cfg.TimerWheelSize)
	r.timers = concurrency.NewTimerManager(r.wheel)
	return r
}

// StartOnEventLoop creates a fresh event-loop context and schedules task on it.
func (r *Runtime) StartOnEventLoop(task api.Task) api.Context {
	ctx := r.pools.NewEventLoopContext()
	ctx.Execute(task)
	return ctx
}

// StartInBackground creates a fresh worker context and schedules task on it.
func (r *Runtime) StartInBackground(task api.Task) api.Context {
	ctx := r.pools.NewWorkerContext()
	ctx.Execute(task)
	return ctx
}

// NextTick schedules task to run on the calling context in a later iteration.
// Fails with api.ErrNoContext outside any context-managed callback.
func (r *Runtime) NextTick(task api.Task) error {
	ctx := concurrency.Current()
	if ctx == nil {
		return api.ErrNoContext
	}
	ctx.Execute(task)
	return nil
}

// SetTimer arms a one-shot timer owned by the calling context.
func (r *Runtime) SetTimer(delayMs int64, handler api.TimerHandler) (int64, error) {
	return r.setTimeout(delayMs, false, handler)
}

// SetPeriodic arms a periodic timer owned by the calling context.
func (r *Runtime) SetPeriodic(delayMs int64, handler api.TimerHandler) (int64, error) {
	return r.setTimeout(delayMs, true, handler)
}

func (r *Runtime) setTimeout(delayMs int64, periodic bool, handler api.TimerHandler) (int64, error) {
	if r.closed.Load() {
		return 0, api.ErrRuntimeClosed
	}
	ctx := concurrency.Current()
	if ctx == nil {
		return 0, api.ErrNoContext
	}
	return r.timers.Schedule(ctx, delayMs, periodic, handler)
}

// CancelTimer cancels a pending timer. Returns false for unknown ids and
// api.ErrTimerOwnership when called from a context other than the owner.
func (r *Runtime) CancelTimer(id int64) (bool, error) {
	return r.timers.Cancel(id)
}

// CurrentContext returns the context bound to the calling goroutine, or nil.
func (r *Runtime) CurrentContext() api.Context {
	return concurrency.Current()
}

// IsEventLoop reports whether the caller runs under an event-loop context.
func (r *Runtime) IsEventLoop() bool {
	return concurrency.IsEventLoop()
}

// SetIOPoolSize adjusts the pending event loop count; fails once the I/O
// pool has been constructed.
func (r *Runtime) SetIOPoolSize(n int) error {
	return r.pools.SetIOPoolSize(n)
}

// SetBackgroundPoolSize adjusts the pending worker count; fails once the
// background pool has been constructed.
func (r *Runtime) SetBackgroundPoolSize(n int) error {
	return r.pools.SetBackgroundPoolSize(n)
}

// AcceptorPool exposes the cached listener pool to protocol layers.
func (r *Runtime) AcceptorPool() api.Executor {
	return r.pools.AcceptorPool()
}

// GetMap returns the shared map registered under name, created on first use.
func (r *Runtime) GetMap(name string) *shareddata.SharedMap {
	return r.shared.GetMap(name)
}

// GetSet returns the shared set registered under name, created on first use.
func (r *Runtime) GetSet(name string) *shareddata.SharedSet {
	return r.shared.GetSet(name)
}

// RemoveMap unregisters a shared map by name.
func (r *Runtime) RemoveMap(name string) bool {
	return r.shared.RemoveMap(name)
}

// RemoveSet unregisters a shared set by name.
func (r *Runtime) RemoveSet(name string) bool {
	return r.shared.RemoveSet(name)
}

// SetExceptionHandler replaces the process-wide exception sink. A nil
// handler restores the logging default.
func (r *Runtime) SetExceptionHandler(h ExceptionHandler) {
	r.excMu.Lock()
	if h == nil {
		h = func(err error) {
			r.logger.Error().Err(err).Msg("unhandled exception in context callback")
		}
	}
	r.exc = h
	r.excMu.Unlock()
}

// ReportException forwards err to the exception sink.
func (r *Runtime) ReportException(err error) {
	r.excMu.RLock()
	h := r.exc
	r.excMu.RUnlock()
	h(err)
}

// Logger returns the runtime logger.
func (r *Runtime) Logger() zerolog.Logger {
	return r.logger
}

// Close stops the timing wheel and every materialized pool. Idempotent.
func (r *Runtime) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}
	r.wheel.Stop()
	r.pools.Close()
	r.logger.Info().Msg("runtime closed")
}

// reportRecovered adapts recovered panic values into the exception sink.
func (r *Runtime) reportRecovered(recovered any) {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("callback panic: %v", recovered)
	}
	r.ReportException(err)
}
