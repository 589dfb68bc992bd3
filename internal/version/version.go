// Copyright DaVinci Authors. All rights reserved.
//
// Use of this source code is governed by the license that can be found in the
// LICENSE file.

// Package version holds the build-time version of the DaVinci shared library.
package version

import "strings"

var (
	// These variables are supplied at build time via -ldflags -X.
	// The defaults track the packaging version so unstamped builds
	// still report something meaningful.
	buildMajor = "0"
	buildMinor = "1"
	buildPatch = "0"
	buildRev   string
)

// Version returns the semantic version (major.minor.patch).
func Version() string {
	return strings.Join([]string{buildMajor, buildMinor, buildPatch}, ".")
}

// Rev returns the revision id of the build, if one was stamped in.
func Rev() string {
	return buildRev
}
