// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ft60x implements support for FTDI FT60x USB SuperSpeed bridges.
//
// The supported devices (FT600/FT601) expose up to 4 IN and 4 OUT bulk
// pipes to move FIFO data between a host and an FPGA or instrument at
// USB3 rates. This package covers enumeration, session lifecycle, pipe
// oriented read/write with chunking, timeout and abort-on-error recovery,
// and pipe/descriptor introspection on top of the vendor D3XX library.
//
// All I/O is synchronous; concurrency is the caller's responsibility.
// Operations on different pipes of one device are independent, operations
// on the same pipe must be externally serialized.
//
// Use build tag periph_ftd3xx_debug to enable verbose debugging.
//
// # Datasheet
//
// https://ftdichip.com/wp-content/uploads/2024/05/DS_FT600Q-FT601Q-IC-Datasheet.pdf
package ft60x
