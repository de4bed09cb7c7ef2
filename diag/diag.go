// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag centralises the console-logging conventions shared by
// the solver and lifecycle packages so that both report progress and
// failures the same way.
package diag

import "github.com/cpmech/gosl/io"

// Step logs a one-line step/progress message. Verbose callers only.
func Step(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	io.Pf(format, args...)
}

// Transition logs a lifecycle status transition in yellow, matching the
// teacher's convention of highlighting stage changes (fem/fem.go uses
// io.Pf for stage messages; lifecycle transitions are rarer and more
// significant, so they get color here).
func Transition(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	io.Pfyel(format, args...)
}

// Success logs a terminal success message in green.
func Success(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	io.PfGreen(format, args...)
}

// Failure logs a terminal failure message in red.
func Failure(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	io.PfRed(format, args...)
}
