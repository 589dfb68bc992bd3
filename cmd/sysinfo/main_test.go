// Copyright DaVinci Authors. All rights reserved.
//
// Use of this source code is governed by the license that can be found in the
// LICENSE file.

package main

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOutputFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Regexp(t, regexp.MustCompile(`^DaVinci shared-rust v\S+$`), lines[0])
	assert.Regexp(t, regexp.MustCompile(`^CPU cores: [1-9][0-9]*$`), lines[1])
	assert.Regexp(t, regexp.MustCompile(`^Unix timestamp: [0-9]+$`), lines[2])
}

// failWriter fails after a fixed number of bytes, modeling a closed or
// full sink.
type failWriter struct {
	remaining int
}

func (w *failWriter) Write(p []byte) (int, error) {
	if len(p) > w.remaining {
		n := w.remaining
		w.remaining = 0
		return n, errors.New("sink closed")
	}
	w.remaining -= len(p)
	return len(p), nil
}

func TestRunWriteFailure(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
	}{
		{name: "fails immediately", capacity: 0},
		{name: "fails mid-banner", capacity: 10},
		{name: "fails on last line", capacity: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(&failWriter{remaining: tt.capacity})
			assert.Error(t, err)
		})
	}
}
