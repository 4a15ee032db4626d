// Package api
// Author: momentics
//
// Timer scheduler contract: coarse-tick one-shot and periodic timers that
// re-enter the originating context when firing.

package api

// TimerHandler is invoked when a timer fires, receiving the timer id.
type TimerHandler func(id int64)

// TimerScheduler arms timers against a timing wheel. Delays are best-effort,
// bounded below by the wheel tick; callers must not rely on sub-tick precision.
type TimerScheduler interface {
	// Schedule arms a timer owned by ctx. The handler runs inside ctx.Execute.
	// Periodic timers re-arm transparently under the same id until cancelled.
	Schedule(ctx Context, delayMs int64, periodic bool, handler TimerHandler) (int64, error)

	// Cancel removes a pending timer. It returns false when id is unknown and
	// ErrTimerOwnership when the caller's context differs from the owner.
	Cancel(id int64) (bool, error)
}
