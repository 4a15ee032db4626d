// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// lane_test.go — ordered lane FIFO and non-overlap over a multi-worker executor.
package concurrency

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestOrderedLane_FIFO(t *testing.T) {
	exec := NewExecutor(4, "test-worker-", testPanicFn(t))
	defer exec.Close()
	lane := NewOrderedLane(exec, testPanicFn(t))

	const n = 1000
	var out []int
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		i := i
		lane.Submit(func() { out = append(out, i) })
	}
	lane.Submit(func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("lane did not drain")
	}
	if len(out) != n {
		t.Fatalf("expected %d tasks, got %d", n, len(out))
	}
	for i, v := range out {
		if v != i {
			t.Fatalf("task %d ran out of order (got %d)", i, v)
		}
	}
}

func TestOrderedLane_NonOverlapping(t *testing.T) {
	exec := NewExecutor(8, "test-worker-", testPanicFn(t))
	defer exec.Close()
	lane := NewOrderedLane(exec, testPanicFn(t))

	var inFlight, maxInFlight int32
	done := make(chan struct{})
	for i := 0; i < 200; i++ {
		lane.Submit(func() {
			cur := atomic.AddInt32(&inFlight, 1)
			for {
				max := atomic.LoadInt32(&maxInFlight)
				if cur <= max || atomic.CompareAndSwapInt32(&maxInFlight, max, cur) {
					break
				}
			}
			time.Sleep(time.Microsecond)
			atomic.AddInt32(&inFlight, -1)
		})
	}
	lane.Submit(func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("lane did not drain")
	}
	if got := atomic.LoadInt32(&maxInFlight); got != 1 {
		t.Errorf("lane tasks overlapped: max in flight %d", got)
	}
}

func TestOrderedLane_IndependentLanesProgress(t *testing.T) {
	exec := NewExecutor(2, "test-worker-", testPanicFn(t))
	defer exec.Close()
	a := NewOrderedLane(exec, testPanicFn(t))
	b := NewOrderedLane(exec, testPanicFn(t))

	var count int32
	done := make(chan struct{}, 2)
	for i := 0; i < 100; i++ {
		a.Submit(func() { atomic.AddInt32(&count, 1) })
		b.Submit(func() { atomic.AddInt32(&count, 1) })
	}
	a.Submit(func() { done <- struct{}{} })
	b.Submit(func() { done <- struct{}{} })

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("lanes did not drain")
		}
	}
	if got := atomic.LoadInt32(&count); got != 200 {
		t.Errorf("expected 200 tasks, got %d", got)
	}
}

func TestOrderedLane_SurvivesPanickingTask(t *testing.T) {
	exec := NewExecutor(1, "test-worker-", testPanicFn(t))
	defer exec.Close()
	recovered := make(chan any, 1)
	lane := NewOrderedLane(exec, func(r any) { recovered <- r })

	lane.Submit(func() { panic("boom") })
	done := make(chan struct{})
	lane.Submit(func() { close(done) })

	select {
	case <-recovered:
	case <-time.After(time.Second):
		t.Fatal("panic was not reported")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lane stalled after panic")
	}
}
