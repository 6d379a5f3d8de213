// Copyright 2025 The threadcell Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Goroutine identity extraction.
//
// The fast path reads the goid field straight off the runtime g struct
// via petermattis/goid (~1-2ns per call, with its own per-platform
// fallbacks). The slow path parses runtime.Stack output (~1500ns) and is
// kept for cross-validation: the tests assert both paths agree, which
// catches a goid library that silently returns garbage on a new
// toolchain.
//
// Stack trace format parsed by the slow path:
//
//	"goroutine 123 [running]:\n..."

package owner

import (
	"runtime"

	"github.com/petermattis/goid"
)

// Current returns the calling goroutine's ID.
//
// This sits on the hot path of every cell operation: one call per gate
// check, plus one per guard method.
func Current() int64 {
	return goid.Get()
}

// currentSlow extracts the goroutine ID by parsing runtime.Stack output.
// Used only to cross-check Current.
func currentSlow() int64 {
	// Only the first line is needed. 64 bytes covers
	// "goroutine <id> [running]:".
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseID(buf[:n])
}

// parseID reads the numeric ID out of "goroutine 123 [running]:...",
// returning 0 if the format is not recognized. Direct byte parsing, no
// allocation.
func parseID(buf []byte) int64 {
	const prefix = "goroutine "
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}
	var id int64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
