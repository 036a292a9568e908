// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import (
	"errors"

	"periph.io/x/ftd3xx/d3xx"
)

// Error is the error type returned by every operation that reaches the
// driver boundary. Op names the native call that failed, Status the vendor
// status code.
//
// It unwraps to its d3xx.Err, so callers can match on the status with
// errors.Is:
//
//	if errors.Is(err, d3xx.Timeout) { ... }
type Error struct {
	Op     string
	Status d3xx.Err
}

func (e *Error) Error() string {
	return "ft60x: " + e.Op + ": " + e.Status.String()
}

func (e *Error) Unwrap() error {
	return e.Status
}

// ErrRead and ErrWrite report a short chunk in a streamed transfer: the
// native layer reported success but moved fewer bytes than the requested
// block, which the transport never does legitimately.
var (
	ErrRead  = errors.New("ft60x: read error: short chunk")
	ErrWrite = errors.New("ft60x: write error: short chunk")
)

// toErr converts a raw status code, as returned by a native call, into an
// error. It must be called on every native result before any output buffer
// is touched; outputs are only populated on success.
//
// A status outside the fixed vendor table means the linked library speaks a
// different protocol revision than this package was built for. That is not
// coerced into OtherError; it panics so version skew surfaces immediately.
func toErr(op string, e d3xx.Err) error {
	if e == d3xx.OK {
		return nil
	}
	if !e.IsKnown() {
		panic("ft60x: " + op + ": unknown status code " + e.String() + "; D3XX library version mismatch")
	}
	return &Error{Op: op, Status: e}
}
