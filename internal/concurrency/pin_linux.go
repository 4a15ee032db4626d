//go:build linux

// File: internal/concurrency/pin_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux implementation of loop-thread pinning via sched_setaffinity.

package concurrency

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// lockLoopThread binds the calling goroutine to its OS thread and, when
// cpuID >= 0, restricts that thread to the given CPU. Pinning failure is
// non-fatal; the loop still runs thread-locked.
func lockLoopThread(cpuID int) {
	runtime.LockOSThread()
	if cpuID < 0 {
		return
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	_ = unix.SchedSetaffinity(0, &set)
}
