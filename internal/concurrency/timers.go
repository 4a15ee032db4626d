// File: internal/concurrency/timers.go
// Package concurrency implements the context-affine timer subsystem.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TimerManager maps monotonic timer ids to wheel tasks plus their owning
// context. The pending map is the single source of truth: an id is present
// iff the timer is pending, which is what resolves every fire/cancel race.
// One-shot entries leave the map before their handler runs; periodic entries
// re-arm under the same id only while still present, so a cancel that raced
// in always wins.

package concurrency

import (
	"sync"
	"time"

	uatomic "go.uber.org/atomic"

	"github.com/momentics/hioload-runtime/api"
)

type timerEntry struct {
	task *WheelTask
	ctx  api.Context
}

// TimerManager arms timers against one timing wheel.
type TimerManager struct {
	wheel   *TimingWheel
	counter *uatomic.Int64

	mu     sync.Mutex
	timers map[int64]*timerEntry
}

var _ api.TimerScheduler = (*TimerManager)(nil)

// NewTimerManager wraps an already-running wheel.
func NewTimerManager(wheel *TimingWheel) *TimerManager {
	return &TimerManager{
		wheel:   wheel,
		counter: uatomic.NewInt64(0),
		timers:  make(map[int64]*timerEntry),
	}
}

// Schedule arms a timer owned by ctx and returns its id. Ids are monotonic
// from zero. The handler always runs inside ctx.Execute.
func (m *TimerManager) Schedule(ctx api.Context, delayMs int64, periodic bool, handler api.TimerHandler) (int64, error) {
	if ctx == nil {
		return 0, api.ErrNoContext
	}
	if delayMs <= 0 || handler == nil {
		return 0, api.ErrInvalidArgument
	}
	id := m.counter.Inc() - 1
	delay := time.Duration(delayMs) * time.Millisecond

	var fire func()
	if periodic {
		fire = func() {
			ctx.Execute(func() {
				// A cancel that won the race removed the entry; stay silent.
				if !m.pending(id) {
					return
				}
				handler(id)
				m.rearm(id, ctx, delay, fire)
			})
		}
	} else {
		fire = func() {
			// Remove before invoking so a concurrent cancel after this
			// point is a benign no-op.
			if !m.remove(id) {
				return
			}
			ctx.Execute(func() { handler(id) })
		}
	}

	m.mu.Lock()
	m.timers[id] = &timerEntry{task: m.wheel.Schedule(delay, fire), ctx: ctx}
	m.mu.Unlock()
	return id, nil
}

// Cancel removes a pending timer. Returns false for an unknown id. Fails
// with api.ErrTimerOwnership when the calling context is not the owner.
func (m *TimerManager) Cancel(id int64) (bool, error) {
	m.mu.Lock()
	e, ok := m.timers[id]
	if !ok {
		m.mu.Unlock()
		return false, nil
	}
	if e.ctx != Current() {
		m.mu.Unlock()
		return false, api.ErrTimerOwnership
	}
	delete(m.timers, id)
	m.mu.Unlock()
	e.task.Cancel()
	return true, nil
}

// Pending returns the number of armed timers.
func (m *TimerManager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *TimerManager) pending(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.timers[id]
	return ok
}

func (m *TimerManager) remove(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.timers[id]; !ok {
		return false
	}
	delete(m.timers, id)
	return true
}

// rearm schedules the next period under the same id, unless a cancel removed
// the entry while the handler ran.
func (m *TimerManager) rearm(id int64, ctx api.Context, delay time.Duration, fire func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.timers[id]; !ok {
		return
	}
	m.timers[id] = &timerEntry{task: m.wheel.Schedule(delay, fire), ctx: ctx}
}
