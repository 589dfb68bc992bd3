// Copyright DaVinci Authors. All rights reserved.
//
// Use of this source code is governed by the license that can be found in the
// LICENSE file.

package sysinfo

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCPUList parses the kernel cpu-list format: a comma-separated
// mix of individual CPU ids and inclusive ranges, e.g. "0-3,6,8-10".
//
// This format is used by cpuset files under /sys/fs/cgroup and by the
// NUMA node cpulist files under /sys/devices/system/node. An empty or
// whitespace-only input yields an empty list.
func ParseCPUList(list string) ([]int, error) {
	cpus := make([]int, 0)

	list = strings.TrimSpace(list)
	if list == "" {
		return cpus, nil
	}

	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		first, rest, isRange := strings.Cut(entry, "-")

		start, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			return nil, fmt.Errorf("invalid cpu list entry %q: %w", entry, err)
		}

		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, fmt.Errorf("invalid cpu list range %q: %w", entry, err)
			}
			if end < start {
				return nil, fmt.Errorf("invalid cpu list range %q: end before start", entry)
			}
		}

		for cpu := start; cpu <= end; cpu++ {
			cpus = append(cpus, cpu)
		}
	}

	return cpus, nil
}
