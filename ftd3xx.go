// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ftd3xx provides support for FTDI FT60x USB SuperSpeed bridges.
//
// The actual device support lives in package ft60x. This package only
// guarantees that the driver is registered with periph's driver registry.
package ftd3xx

import (
	"periph.io/x/conn/v3/driver/driverreg"

	// Make sure the FT60x driver is registered.
	_ "periph.io/x/ftd3xx/ft60x"
)

// Init calls driverreg.Init() and returns it as-is.
//
// The only difference is that by calling ftd3xx.Init(), you are guaranteed to
// have the FT60x driver implemented in this library to be implicitly loaded.
func Init() (*driverreg.State, error) {
	return driverreg.Init()
}
