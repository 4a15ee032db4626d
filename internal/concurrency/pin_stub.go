//go:build !linux

// File: internal/concurrency/pin_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fallback loop-thread pinning for platforms without sched_setaffinity.

package concurrency

import "runtime"

// lockLoopThread binds the calling goroutine to its OS thread. CPU pinning
// is unsupported on this platform and cpuID is ignored.
func lockLoopThread(cpuID int) {
	runtime.LockOSThread()
}
