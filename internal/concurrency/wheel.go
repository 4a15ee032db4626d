// File: internal/concurrency/wheel.go
// Package concurrency implements the hashed timing wheel.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The wheel trades precision for volume: a fixed coarse tick (default 20ms),
// a power-of-two slot array, O(1) insertion and cancellation, and a rounds
// counter for delays beyond one revolution. One dedicated goroutine advances
// the cursor; expiry callbacks must not block it, so timer callbacks are
// bounced into their owning context (timers.go) rather than run inline.

package concurrency

import (
	"sync"
	"time"

	uatomic "go.uber.org/atomic"
)

// Wheel task states.
const (
	taskArmed int32 = iota
	taskCancelled
	taskExpired
)

// WheelTask is one scheduled expiry on the wheel.
type WheelTask struct {
	fn     func()
	rounds int64
	state  *uatomic.Int32
}

// Cancel marks the task so the wheel drops it at expiry. Returns false when
// the task already expired or was cancelled.
func (t *WheelTask) Cancel() bool {
	return t.state.CompareAndSwap(taskArmed, taskCancelled)
}

// TimingWheel schedules coarse-tick expiries on a dedicated goroutine.
type TimingWheel struct {
	tick time.Duration
	mask int64

	mu     sync.Mutex
	slots  [][]*WheelTask
	cursor int64

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewTimingWheel creates and starts a wheel. tick is clamped to >= 1ms and
// slotCount is rounded up to a power of two.
func NewTimingWheel(tick time.Duration, slotCount int) *TimingWheel {
	if tick < time.Millisecond {
		tick = time.Millisecond
	}
	size := 1
	for size < slotCount {
		size <<= 1
	}
	w := &TimingWheel{
		tick:  tick,
		mask:  int64(size - 1),
		slots: make([][]*WheelTask, size),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

// Tick returns the wheel resolution.
func (w *TimingWheel) Tick() time.Duration { return w.tick }

// Schedule arms fn to run after delay, rounded up to whole ticks.
func (w *TimingWheel) Schedule(delay time.Duration, fn func()) *WheelTask {
	ticks := int64((delay + w.tick - 1) / w.tick)
	if ticks < 1 {
		ticks = 1
	}
	// The target slot is first visited ceil(ticks/size) revolutions from
	// now, so delays landing exactly on a revolution boundary carry one
	// round fewer than the quotient.
	t := &WheelTask{
		fn:     fn,
		rounds: (ticks - 1) / (w.mask + 1),
		state:  uatomic.NewInt32(taskArmed),
	}
	w.mu.Lock()
	slot := (w.cursor + ticks) & w.mask
	w.slots[slot] = append(w.slots[slot], t)
	w.mu.Unlock()
	return t
}

// Stop terminates the wheel goroutine and waits for it to exit. Armed tasks
// never fire afterwards. Safe to call from multiple goroutines.
func (w *TimingWheel) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}

func (w *TimingWheel) run() {
	setWorkerLabel("hioload-timer-thread")
	defer close(w.done)
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.advance()
		}
	}
}

// advance moves the cursor one slot and expires due tasks.
func (w *TimingWheel) advance() {
	w.mu.Lock()
	w.cursor = (w.cursor + 1) & w.mask
	slot := w.slots[w.cursor]
	var keep []*WheelTask
	var due []*WheelTask
	for _, t := range slot {
		switch {
		case t.state.Load() == taskCancelled:
			// dropped
		case t.rounds > 0:
			t.rounds--
			keep = append(keep, t)
		default:
			due = append(due, t)
		}
	}
	w.slots[w.cursor] = keep
	w.mu.Unlock()

	for _, t := range due {
		if t.state.CompareAndSwap(taskArmed, taskExpired) {
			t.fn()
		}
	}
}
