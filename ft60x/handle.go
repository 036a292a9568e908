// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import (
	"time"

	"periph.io/x/ftd3xx/d3xx"
)

// blockSize is the block size used by the streamed transfer variants. 32KiB
// is the sweet spot for sustained throughput on this chip family.
const blockSize = 32 * 1024

// handle is a thin wrapper around the low level d3xx device handle to make
// it more go-idiomatic.
//
// It converts status codes into errors and keeps failed pipes usable: any
// failed transfer is followed by an abort on the same pipe so stalled
// transfer state cannot corrupt the next call. The abort is hygiene only,
// the original transfer error is always what propagates.
type handle struct {
	h d3xx.Handle
}

// close releases the native handle.
//
// A failed release means resource management is corrupted; a
// leaked-but-reported-closed handle would break subsequent enumeration and
// open calls, so it is never swallowed.
func (h *handle) close() error {
	if e := h.h.Close(); e != d3xx.OK {
		panic("ft60x: failed to close device: " + e.String())
	}
	return nil
}

// writePipe issues a single native transfer and blocks until it completes
// or the pipe's configured timeout elapses.
func (h *handle) writePipe(p Pipe, b []byte) (int, error) {
	n, e := h.h.WritePipe(uint8(p), b)
	if e != d3xx.OK {
		// Clear any stalled transfer state. Best effort; the transfer error
		// is what the caller must see.
		_ = h.h.AbortPipe(uint8(p))
		return 0, toErr("WritePipe", e)
	}
	return n, nil
}

// readPipe issues a single native transfer and blocks until it completes or
// the pipe's configured timeout elapses.
func (h *handle) readPipe(p Pipe, b []byte) (int, error) {
	n, e := h.h.ReadPipe(uint8(p), b)
	if e != d3xx.OK {
		_ = h.h.AbortPipe(uint8(p))
		return 0, toErr("ReadPipe", e)
	}
	return n, nil
}

// writeStream writes b in blockSize blocks, one native transfer per block,
// and returns the total number of bytes moved.
//
// The transport guarantees a full block or an explicit failure. A short
// block is therefore an error (ErrWrite), the pipe is aborted and no
// further blocks are attempted.
func (h *handle) writeStream(p Pipe, b []byte) (int, error) {
	total := 0
	for len(b) != 0 {
		c := len(b)
		if c > blockSize {
			c = blockSize
		}
		n, err := h.writePipe(p, b[:c])
		total += n
		if err != nil {
			return total, err
		}
		if n != c {
			_ = h.h.AbortPipe(uint8(p))
			return total, ErrWrite
		}
		b = b[c:]
	}
	return total, nil
}

// readStream reads into b in blockSize blocks, one native transfer per
// block, and returns the total number of bytes moved.
func (h *handle) readStream(p Pipe, b []byte) (int, error) {
	total := 0
	for len(b) != 0 {
		c := len(b)
		if c > blockSize {
			c = blockSize
		}
		n, err := h.readPipe(p, b[:c])
		total += n
		if err != nil {
			return total, err
		}
		if n != c {
			_ = h.h.AbortPipe(uint8(p))
			return total, ErrRead
		}
		b = b[c:]
	}
	return total, nil
}

// setTimeout configures the transfer timeout for one pipe.
//
// The value only lives as long as the handle; reopening the device resets
// it to the native default of 5 seconds.
func (h *handle) setTimeout(p Pipe, d time.Duration) error {
	return toErr("SetPipeTimeout", h.h.SetPipeTimeout(uint8(p), uint32(d.Milliseconds())))
}

func (h *handle) timeout(p Pipe) (time.Duration, error) {
	ms, e := h.h.GetPipeTimeout(uint8(p))
	if e != d3xx.OK {
		return 0, toErr("GetPipeTimeout", e)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func (h *handle) abortPipe(p Pipe) error {
	return toErr("AbortPipe", h.h.AbortPipe(uint8(p)))
}

func (h *handle) flushPipe(p Pipe) error {
	return toErr("FlushPipe", h.h.FlushPipe(uint8(p)))
}
