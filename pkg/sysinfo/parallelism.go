// Copyright DaVinci Authors. All rights reserved.
//
// Use of this source code is governed by the license that can be found in the
// LICENSE file.

package sysinfo

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/shirou/gopsutil/v4/cpu"
)

const defaultCgroupPath = "/sys/fs/cgroup"

// CPUSource identifies which host facility produced a parallelism
// reading.
type CPUSource string

const (
	// CPUSourceAffinity is the process CPU affinity mask.
	CPUSourceAffinity CPUSource = "affinity"
	// CPUSourceCpuset is the effective cgroup cpuset.
	CPUSourceCpuset CPUSource = "cpuset"
	// CPUSourceQuota is the cgroup CPU bandwidth quota, rounded up to
	// whole cores.
	CPUSourceQuota CPUSource = "quota"
	// CPUSourceMachine is the machine-wide logical processor count.
	CPUSourceMachine CPUSource = "machine"
	// CPUSourceFallback means every query failed and the reading is
	// the fixed lower bound of 1.
	CPUSourceFallback CPUSource = "fallback"
)

// Parallelism is a point-in-time estimate of the logical CPUs usable
// by the current process, together with the source that produced it.
type Parallelism struct {
	Count  int
	Source CPUSource
}

// DetectorConfig configures a ParallelismDetector.
type DetectorConfig struct {
	// CgroupPath is the root of the cgroup filesystem to probe for
	// cpuset and CPU bandwidth limits. Defaults to /sys/fs/cgroup.
	CgroupPath string
}

// ParallelismDetector probes the host for process-scoped parallelism
// hints. Sources are consulted in preference order: the process
// affinity mask, the effective cpuset, the cgroup CPU bandwidth quota
// (which caps the earlier estimates), and finally the machine-wide
// logical processor count.
//
// Most callers want the CPUCount wrapper; the detector exists for
// callers that need to know where the reading came from.
type ParallelismDetector struct {
	logger     logr.Logger
	cgroupPath string
}

// NewParallelismDetector creates a detector probing the given cgroup
// root. Pass logr.Discard() to silence probe diagnostics.
func NewParallelismDetector(logger logr.Logger, config DetectorConfig) *ParallelismDetector {
	path := config.CgroupPath
	if path == "" {
		path = defaultCgroupPath
	}
	return &ParallelismDetector{
		logger:     logger,
		cgroupPath: path,
	}
}

// Detect returns the current parallelism reading. It never fails: if
// every source is unavailable the count is 1.
func (d *ParallelismDetector) Detect() Parallelism {
	var reading Parallelism

	if n, err := affinityCount(); err == nil && n > 0 {
		reading = Parallelism{Count: n, Source: CPUSourceAffinity}
		d.logger.V(2).Info("read process affinity mask", "cpus", n)
	} else if err != nil {
		d.logger.V(2).Info("affinity mask unavailable", "error", err)
	}

	if reading.Count == 0 {
		if n, err := d.cpusetCount(); err == nil && n > 0 {
			reading = Parallelism{Count: n, Source: CPUSourceCpuset}
			d.logger.V(2).Info("read effective cpuset", "cpus", n)
		} else if err != nil {
			d.logger.V(2).Info("cpuset unavailable", "error", err)
		}
	}

	// A bandwidth quota smaller than the affinity or cpuset estimate
	// caps it: the scheduler will not run more than quota/period
	// cores' worth of this process no matter how wide its mask is.
	if q, err := d.quotaCores(); err == nil && q > 0 {
		if reading.Count == 0 || q < reading.Count {
			reading = Parallelism{Count: q, Source: CPUSourceQuota}
			d.logger.V(2).Info("CPU bandwidth quota in effect", "cores", q)
		}
	} else if err != nil {
		d.logger.V(2).Info("cgroup CPU quota unavailable", "error", err)
	}

	if reading.Count == 0 {
		if n := machineCount(); n > 0 {
			reading = Parallelism{Count: n, Source: CPUSourceMachine}
			d.logger.V(2).Info("using machine-wide processor count", "cpus", n)
		}
	}

	if reading.Count == 0 {
		reading = Parallelism{Count: 1, Source: CPUSourceFallback}
		d.logger.V(1).Info("all parallelism sources failed, falling back to 1")
	}

	return reading
}

// cpusetCount returns the number of CPUs in the effective cpuset of
// the cgroup at the configured root, or 0 if no cpuset file exists.
//
// Inside a container with a cgroup namespace the root of the mounted
// hierarchy is the container's own cgroup, so these files carry the
// container's limits.
func (d *ParallelismDetector) cpusetCount() (int, error) {
	candidates := []string{
		filepath.Join(d.cgroupPath, "cpuset.cpus.effective"),          // v2
		filepath.Join(d.cgroupPath, "cpuset", "cpuset.effective_cpus"), // v1
		filepath.Join(d.cgroupPath, "cpuset", "cpuset.cpus"),           // v1, older kernels
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cpus, err := ParseCPUList(string(data))
		if err != nil {
			return 0, err
		}
		if len(cpus) > 0 {
			return len(cpus), nil
		}
	}
	return 0, nil
}

// quotaCores returns the cgroup CPU bandwidth limit rounded up to
// whole cores, or 0 if no limit is in effect. Supports both cgroup v2
// (cpu.max) and v1 (cpu.cfs_quota_us / cpu.cfs_period_us).
func (d *ParallelismDetector) quotaCores() (int, error) {
	// Cgroup v2: cpu.max holds "quota period", with "max" for
	// unlimited.
	if data, err := os.ReadFile(filepath.Join(d.cgroupPath, "cpu.max")); err == nil {
		fields := strings.Fields(string(data))
		if len(fields) != 2 || fields[0] == "max" {
			return 0, nil
		}
		quota, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, err
		}
		period, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, err
		}
		return wholeCores(quota, period), nil
	}

	// Cgroup v1: separate quota and period files; quota -1 means
	// unlimited.
	v1 := filepath.Join(d.cgroupPath, "cpu")
	data, err := os.ReadFile(filepath.Join(v1, "cpu.cfs_quota_us"))
	if err != nil {
		return 0, nil
	}
	quota, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, err
	}
	if quota <= 0 {
		return 0, nil
	}

	data, err = os.ReadFile(filepath.Join(v1, "cpu.cfs_period_us"))
	if err != nil {
		return 0, nil
	}
	period, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, err
	}
	return wholeCores(quota, period), nil
}

// wholeCores converts a quota/period pair to whole cores, rounding
// up. A positive quota smaller than one period still yields 1: the
// process can run, just not at full speed.
func wholeCores(quota, period int64) int {
	if quota <= 0 || period <= 0 {
		return 0
	}
	return int(math.Ceil(float64(quota) / float64(period)))
}

// machineCount returns the machine-wide logical processor count.
func machineCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
