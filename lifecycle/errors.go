// Copyright 2024 The Plasma Furnace Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lifecycle

import "github.com/cpmech/gosl/io"

// Category classifies a lifecycle error into the taxonomy of spec.md
// §7, letting the boundary layer map a failure onto the negative
// status codes its callers expect without string-sniffing messages.
type Category int

const (
	InvalidInput Category = iota
	WrongState
	Numerical
	Internal
)

func (c Category) String() string {
	switch c {
	case InvalidInput:
		return "InvalidInput"
	case WrongState:
		return "WrongState"
	case Numerical:
		return "Numerical"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is a categorised lifecycle fault. It is always non-nil when
// returned, never wraps a bare string, so callers can type-assert to
// recover the category.
type Error struct {
	Category Category
	Msg      string
}

func (e *Error) Error() string { return e.Msg }

func newError(cat Category, format string, args ...interface{}) *Error {
	return &Error{Category: cat, Msg: io.Sf(format, args...)}
}

func wrongState(format string, args ...interface{}) *Error {
	return newError(WrongState, format, args...)
}

func invalidInput(format string, args ...interface{}) *Error {
	return newError(InvalidInput, format, args...)
}

// CategoryOf returns the category of err, or Internal if err does not
// carry one (e.g. an error surfaced from a lower layer).
func CategoryOf(err error) Category {
	if e, ok := err.(*Error); ok {
		return e.Category
	}
	return Internal
}
