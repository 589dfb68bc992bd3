// Copyright DaVinci Authors. All rights reserved.
//
// Use of this source code is governed by the license that can be found in the
// LICENSE file.

//go:build linux

package sysinfo

import "golang.org/x/sys/unix"

// affinityCount returns the number of CPUs in the calling process's
// affinity mask.
func affinityCount() (int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0, err
	}
	return set.Count(), nil
}
