// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import (
	"errors"
	"testing"

	"periph.io/x/ftd3xx/d3xx"
)

func TestToErr(t *testing.T) {
	if err := toErr("Op", d3xx.OK); err != nil {
		t.Fatalf("status 0 must not be an error, got %v", err)
	}
	for code := 1; code <= 32; code++ {
		err := toErr("Op", d3xx.Err(code))
		if err == nil {
			t.Fatalf("status %d must be an error", code)
		}
		if !errors.Is(err, d3xx.Err(code)) {
			t.Fatalf("status %d: errors.Is must match the exact status, got %v", code, err)
		}
		for other := 1; other <= 32; other++ {
			if other != code && errors.Is(err, d3xx.Err(other)) {
				t.Fatalf("status %d must not match status %d", code, other)
			}
		}
		var e *Error
		if !errors.As(err, &e) || e.Op != "Op" || e.Status != d3xx.Err(code) {
			t.Fatalf("status %d: unexpected error %#v", code, err)
		}
	}
}

func TestToErrLibraryLoadFailed(t *testing.T) {
	err := toErr("Op", d3xx.LibraryLoadFailed)
	if !errors.Is(err, d3xx.LibraryLoadFailed) {
		t.Fatalf("got %v", err)
	}
}

func TestToErrUnknownPanics(t *testing.T) {
	for _, code := range []d3xx.Err{33, 255, -2} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("status %d must panic, not be coerced to an error", code)
				}
			}()
			_ = toErr("Op", code)
		}()
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Op: "WritePipe", Status: d3xx.Timeout}
	if s := err.Error(); s != "ft60x: WritePipe: timeout" {
		t.Fatalf("got %q", s)
	}
}
