// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// eventloop_test.go — loop affinity, draining stop, panic isolation.
package concurrency

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/petermattis/goid"
)

func testPanicFn(t *testing.T) func(any) {
	return func(r any) {
		t.Logf("recovered: %v", r)
	}
}

func TestEventLoop_SingleGoroutineAffinity(t *testing.T) {
	el := NewEventLoop(0, "test-loop-0", -1, testPanicFn(t))
	el.Start()
	defer el.Stop()

	const n = 1000
	gids := make(chan int64, n)
	for i := 0; i < n; i++ {
		el.Post(func() { gids <- goid.Get() })
	}

	first := <-gids
	for i := 1; i < n; i++ {
		if g := <-gids; g != first {
			t.Fatalf("task %d ran on goroutine %d, want %d", i, g, first)
		}
	}
}

func TestEventLoop_StopDrainsQueuedTasks(t *testing.T) {
	el := NewEventLoop(0, "test-loop-0", -1, testPanicFn(t))
	el.Start()

	var count int32
	for i := 0; i < 100; i++ {
		el.Post(func() { atomic.AddInt32(&count, 1) })
	}
	el.Stop()

	if got := atomic.LoadInt32(&count); got != 100 {
		t.Errorf("expected 100 tasks drained before stop, got %d", got)
	}
	// Posts after stop are dropped, not executed.
	el.Post(func() { atomic.AddInt32(&count, 1) })
	time.Sleep(10 * time.Millisecond)
	if got := atomic.LoadInt32(&count); got != 100 {
		t.Errorf("task ran after stop, count %d", got)
	}
}

func TestEventLoop_SurvivesPanickingTask(t *testing.T) {
	recovered := make(chan any, 1)
	el := NewEventLoop(0, "test-loop-0", -1, func(r any) { recovered <- r })
	el.Start()
	defer el.Stop()

	el.Post(func() { panic("boom") })
	done := make(chan struct{})
	el.Post(func() { close(done) })

	select {
	case r := <-recovered:
		if r != "boom" {
			t.Errorf("unexpected recovered value %v", r)
		}
	case <-time.After(time.Second):
		t.Fatal("panic was not reported")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop died after panic")
	}
}

func TestEventLoop_SequentialCounterNeedsNoLocking(t *testing.T) {
	el := NewEventLoop(0, "test-loop-0", -1, testPanicFn(t))
	el.Start()
	defer el.Stop()

	counter := 0
	done := make(chan struct{})
	for i := 0; i < 1000; i++ {
		el.Post(func() { counter++ })
	}
	el.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("tasks did not finish")
	}
	if counter != 1000 {
		t.Errorf("expected 1000, got %d", counter)
	}
}
