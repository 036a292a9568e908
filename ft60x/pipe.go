// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import (
	"fmt"

	"periph.io/x/ftd3xx/d3xx"
)

// Pipe identifies one of the 8 fixed FT60x data endpoints, carrying its raw
// USB endpoint address. Bit 0x80 is the direction bit: set for IN (read)
// pipes, clear for OUT (write) pipes.
type Pipe uint8

const (
	PipeIn0  Pipe = 0x82
	PipeIn1  Pipe = 0x83
	PipeIn2  Pipe = 0x84
	PipeIn3  Pipe = 0x85
	PipeOut0 Pipe = 0x02
	PipeOut1 Pipe = 0x03
	PipeOut2 Pipe = 0x04
	PipeOut3 Pipe = 0x05
)

// Pipes is the fixed set of data pipes, write pipes first.
var Pipes = [...]Pipe{
	PipeOut0, PipeOut1, PipeOut2, PipeOut3,
	PipeIn0, PipeIn1, PipeIn2, PipeIn3,
}

// IsRead returns true for device-to-host (IN) pipes.
func (p Pipe) IsRead() bool {
	return uint8(p)&0x80 != 0
}

// IsWrite returns true for host-to-device (OUT) pipes.
func (p Pipe) IsWrite() bool {
	return uint8(p)&0x80 == 0
}

// valid returns true if p is one of the 8 data pipes.
func (p Pipe) valid() bool {
	switch p {
	case PipeIn0, PipeIn1, PipeIn2, PipeIn3, PipeOut0, PipeOut1, PipeOut2, PipeOut3:
		return true
	}
	return false
}

func (p Pipe) String() string {
	switch p {
	case PipeIn0:
		return "In0"
	case PipeIn1:
		return "In1"
	case PipeIn2:
		return "In2"
	case PipeIn3:
		return "In3"
	case PipeOut0:
		return "Out0"
	case PipeOut1:
		return "Out1"
	case PipeOut2:
		return "Out2"
	case PipeOut3:
		return "Out3"
	}
	return fmt.Sprintf("Pipe(%#02x)", uint8(p))
}

// PipeType is the USB transfer type of a pipe.
type PipeType uint8

const (
	PipeTypeControl     PipeType = 0
	PipeTypeIsochronous PipeType = 1
	PipeTypeBulk        PipeType = 2
	PipeTypeInterrupt   PipeType = 3
)

func (t PipeType) String() string {
	switch t {
	case PipeTypeControl:
		return "Control"
	case PipeTypeIsochronous:
		return "Isochronous"
	case PipeTypeBulk:
		return "Bulk"
	case PipeTypeInterrupt:
		return "Interrupt"
	}
	return fmt.Sprintf("PipeType(%d)", uint8(t))
}

// PipeInfo describes the capabilities of one pipe, as reported by the
// device. It is a point-in-time snapshot, fetched per query and not cached.
type PipeInfo struct {
	Type PipeType
	Pipe Pipe
	// MaxPacketSize is the maximum USB packet size in bytes.
	MaxPacketSize int
	// PollInterval is only meaningful for interrupt pipes.
	PollInterval uint8
}

func pipeInfoOf(raw d3xx.PipeInfo) (PipeInfo, error) {
	p := Pipe(raw.PipeID)
	if !p.valid() {
		return PipeInfo{}, fmt.Errorf("ft60x: unknown pipe id %#02x", raw.PipeID)
	}
	if raw.PipeType < 0 || raw.PipeType > int32(PipeTypeInterrupt) {
		return PipeInfo{}, fmt.Errorf("ft60x: unknown pipe type %d", raw.PipeType)
	}
	return PipeInfo{
		Type:          PipeType(raw.PipeType),
		Pipe:          p,
		MaxPacketSize: int(raw.MaximumPacketSize),
		PollInterval:  raw.Interval,
	}, nil
}
