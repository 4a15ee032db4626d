// File: internal/concurrency/diag.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"context"
	"runtime/pprof"
)

// setWorkerLabel tags the calling goroutine with its pool-assigned name so
// loop and worker goroutines are identifiable in profiles and stack dumps.
func setWorkerLabel(name string) {
	pprof.SetGoroutineLabels(pprof.WithLabels(context.Background(), pprof.Labels("hioload", name)))
}
