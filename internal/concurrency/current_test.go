// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// current_test.go — ambient context binding lifetime.
package concurrency

import (
	"testing"
	"time"

	"github.com/momentics/hioload-runtime/api"
)

func TestCurrent_NilOutsideCallback(t *testing.T) {
	if ctx := Current(); ctx != nil {
		t.Errorf("expected nil outside any callback, got %v", ctx)
	}
	if IsEventLoop() {
		t.Error("IsEventLoop true outside any callback")
	}
}

func TestCurrent_BoundDuringCallback(t *testing.T) {
	m := testManager(t)
	defer m.Close()

	ctx := m.NewEventLoopContext()
	got := make(chan api.Context, 1)
	isLoop := make(chan bool, 1)
	ctx.Execute(func() {
		got <- Current()
		isLoop <- IsEventLoop()
	})
	if c := <-got; c != api.Context(ctx) {
		t.Errorf("Current returned %v, want the executing context", c)
	}
	if !<-isLoop {
		t.Error("IsEventLoop false inside event loop callback")
	}

	wctx := m.NewWorkerContext()
	wgot := make(chan api.Context, 1)
	wloop := make(chan bool, 1)
	wctx.Execute(func() {
		wgot <- Current()
		wloop <- IsEventLoop()
	})
	if c := <-wgot; c != api.Context(wctx) {
		t.Errorf("Current returned %v, want the worker context", c)
	}
	if <-wloop {
		t.Error("IsEventLoop true inside worker callback")
	}
}

func TestCurrent_ClearedAfterCallback(t *testing.T) {
	m := testManager(t)
	defer m.Close()

	ctx := m.NewEventLoopContext()
	done := make(chan struct{})
	ctx.Execute(func() { close(done) })
	<-done

	// The binding must be gone once the loop goroutine is idle again.
	time.Sleep(10 * time.Millisecond)
	probe := make(chan api.Context, 1)
	ctx.Loop().Post(func() { probe <- Current() })
	if c := <-probe; c != nil {
		t.Errorf("binding leaked outside callback extent: %v", c)
	}
}

func TestCurrent_ClearedAfterPanic(t *testing.T) {
	m := testManager(t)
	defer m.Close()

	ctx := m.NewEventLoopContext()
	ctx.Execute(func() { panic("boom") })

	probe := make(chan api.Context, 1)
	ctx.Loop().Post(func() { probe <- Current() })
	if c := <-probe; c != nil {
		t.Errorf("binding survived a panicking callback: %v", c)
	}
}
