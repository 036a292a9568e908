// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build periph_ftd3xx_debug

package ft60x

import (
	"log"

	"periph.io/x/ftd3xx/d3xx"
	"periph.io/x/ftd3xx/d3xx/d3xxtest"
)

// logf is enabled when the build tag periph_ftd3xx_debug is specified.
func logf(fmt string, v ...interface{}) {
	log.Printf(fmt, v...)
}

// wrapHandle wraps every opened handle so the exact driver traffic is
// logged.
func wrapHandle(h d3xx.Handle) d3xx.Handle {
	return &d3xxtest.Log{H: h, Printf: logf}
}
