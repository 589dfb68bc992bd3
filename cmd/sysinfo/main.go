// Copyright DaVinci Authors. All rights reserved.
//
// Use of this source code is governed by the license that can be found in the
// LICENSE file.

// Command sysinfo prints the DaVinci shared library version, the
// logical CPU count, and the current Unix timestamp. Arguments are
// ignored and no environment is read; the three-line output format is
// a stability contract for consumers that scrape it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Joepolymath/DaVinci/pkg/sysinfo"
)

func run(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "DaVinci shared-rust v%s\n", sysinfo.Version()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "CPU cores: %d\n", sysinfo.CPUCount()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Unix timestamp: %d\n", sysinfo.UnixTimestamp())
	return err
}

func main() {
	if err := run(os.Stdout); err != nil {
		// The failing stream is the only place we could report to,
		// so the exit status carries the whole signal.
		os.Exit(1)
	}
}
