// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Process-start configuration for the execution core. Values are read from
// the environment exactly once; the runtime never re-reads them.

package control

import (
	"os"
	"runtime"
	"strconv"
)

// Environment variable names recognized by FromEnv.
const (
	EnvIOPoolSize         = "HIOLOAD_IO_POOL_SIZE"
	EnvBackgroundPoolSize = "HIOLOAD_BACKGROUND_POOL_SIZE"
	EnvTimerTickMs        = "HIOLOAD_TIMER_TICK_MS"
	EnvTimerWheelSize     = "HIOLOAD_TIMER_WHEEL_SIZE"
	EnvCPUAffinity        = "HIOLOAD_CPU_AFFINITY"
)

// Config holds parameters immutable per run.
type Config struct {
	IOPoolSize         int   // Number of event loops; default host CPU count
	BackgroundPoolSize int   // Number of background workers; default 1
	TimerTickMs        int64 // Timing wheel resolution in milliseconds
	TimerWheelSize     int   // Slot count of the timing wheel
	CPUAffinity        bool  // Pin event loop threads to CPUs
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		IOPoolSize:         runtime.NumCPU(),
		BackgroundPoolSize: 1,
		TimerTickMs:        20,
		TimerWheelSize:     512,
		CPUAffinity:        false,
	}
}

// FromEnv snapshots the environment over the defaults. Unset or malformed
// variables keep their default.
func FromEnv() *Config {
	cfg := DefaultConfig()
	if n, ok := lookupInt(EnvIOPoolSize); ok && n > 0 {
		cfg.IOPoolSize = n
	}
	if n, ok := lookupInt(EnvBackgroundPoolSize); ok && n > 0 {
		cfg.BackgroundPoolSize = n
	}
	if n, ok := lookupInt(EnvTimerTickMs); ok && n > 0 {
		cfg.TimerTickMs = int64(n)
	}
	if n, ok := lookupInt(EnvTimerWheelSize); ok && n > 0 {
		cfg.TimerWheelSize = n
	}
	if v, ok := os.LookupEnv(EnvCPUAffinity); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CPUAffinity = b
		}
	}
	return cfg
}

func lookupInt(key string) (int, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
