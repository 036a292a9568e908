// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !periph_ftd3xx_debug

package ft60x

import "periph.io/x/ftd3xx/d3xx"

// logf is disabled when the build tag periph_ftd3xx_debug is not specified.
func logf(fmt string, v ...interface{}) {
}

// wrapHandle is a no-op without the periph_ftd3xx_debug build tag.
func wrapHandle(h d3xx.Handle) d3xx.Handle {
	return h
}
