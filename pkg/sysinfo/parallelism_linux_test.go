// Copyright DaVinci Authors. All rights reserved.
//
// Use of this source code is governed by the license that can be found in the
// LICENSE file.

//go:build linux

package sysinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffinityCount(t *testing.T) {
	n, err := affinityCount()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
}

func TestDetectPrefersAffinityMask(t *testing.T) {
	// With no cgroup limits the affinity mask wins.
	d := newTestDetector(t, t.TempDir())
	reading := d.Detect()

	assert.Equal(t, CPUSourceAffinity, reading.Source)
	assert.GreaterOrEqual(t, reading.Count, 1)
}

func TestDetectQuotaDoesNotRaiseEstimate(t *testing.T) {
	root := t.TempDir()
	// A quota far wider than any machine must never push the reading
	// above the affinity mask.
	writeCgroupFile(t, root, "cpu.max", "102400000 100000\n")

	d := newTestDetector(t, root)
	reading := d.Detect()

	assert.Equal(t, CPUSourceAffinity, reading.Source)

	n, err := affinityCount()
	require.NoError(t, err)
	assert.Equal(t, n, reading.Count)
}
