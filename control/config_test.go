// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package control

import (
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IOPoolSize != runtime.NumCPU() {
		t.Errorf("io pool default %d, want NumCPU", cfg.IOPoolSize)
	}
	if cfg.BackgroundPoolSize != 1 {
		t.Errorf("background pool default %d, want 1", cfg.BackgroundPoolSize)
	}
	if cfg.TimerTickMs != 20 {
		t.Errorf("tick default %d, want 20", cfg.TimerTickMs)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvIOPoolSize, "3")
	t.Setenv(EnvBackgroundPoolSize, "5")
	t.Setenv(EnvTimerTickMs, "10")
	t.Setenv(EnvCPUAffinity, "true")

	cfg := FromEnv()
	if cfg.IOPoolSize != 3 || cfg.BackgroundPoolSize != 5 || cfg.TimerTickMs != 10 || !cfg.CPUAffinity {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestFromEnv_IgnoresMalformed(t *testing.T) {
	t.Setenv(EnvIOPoolSize, "not-a-number")
	t.Setenv(EnvBackgroundPoolSize, "-2")

	cfg := FromEnv()
	if cfg.IOPoolSize != runtime.NumCPU() {
		t.Errorf("malformed value overrode default: %d", cfg.IOPoolSize)
	}
	if cfg.BackgroundPoolSize != 1 {
		t.Errorf("negative value overrode default: %d", cfg.BackgroundPoolSize)
	}
}
