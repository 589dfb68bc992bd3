// Copyright DaVinci Authors. All rights reserved.
//
// Use of this source code is governed by the license that can be found in the
// LICENSE file.

// Package sysinfo provides trivial host readings shared by DaVinci
// components: the library version, the current Unix timestamp, and the
// number of logical CPUs usable by this process.
//
// The readers never fail. Host-level errors collapse into fixed
// sentinels (0 for time, 1 for CPU count) so call sites can stay
// one-liners; callers that need richer signals should use a
// ParallelismDetector or a full time API instead.
package sysinfo

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/Joepolymath/DaVinci/internal/version"
)

// Version returns the library version.
func Version() string {
	return version.Version()
}

// UnixTimestamp returns the current wall-clock time as whole seconds
// since the Unix epoch, truncated toward zero. The reading comes from
// the host's real-time clock and may jump or move backwards between
// calls. If the clock reports an instant earlier than the epoch, the
// result is 0.
func UnixTimestamp() uint64 {
	secs := time.Now().Unix()
	if secs < 0 {
		return 0
	}
	return uint64(secs)
}

// CPUCount returns the number of logical CPUs the current process may
// use concurrently. The result is never less than 1, so callers can
// divide by it without a zero check. Each call is a fresh reading.
func CPUCount() int {
	d := NewParallelismDetector(logr.Discard(), DetectorConfig{})
	return d.Detect().Count
}
