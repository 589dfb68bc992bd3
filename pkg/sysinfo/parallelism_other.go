// Copyright DaVinci Authors. All rights reserved.
//
// Use of this source code is governed by the license that can be found in the
// LICENSE file.

//go:build !linux

package sysinfo

// Affinity masks are a Linux concept. Other platforms report no
// affinity and fall through to the remaining sources.
func affinityCount() (int, error) {
	return 0, nil
}
