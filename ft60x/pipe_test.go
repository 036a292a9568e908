// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import (
	"testing"

	"periph.io/x/ftd3xx/d3xx"
)

func TestPipeAddresses(t *testing.T) {
	data := []struct {
		p    Pipe
		addr uint8
		read bool
		name string
	}{
		{PipeIn0, 0x82, true, "In0"},
		{PipeIn1, 0x83, true, "In1"},
		{PipeIn2, 0x84, true, "In2"},
		{PipeIn3, 0x85, true, "In3"},
		{PipeOut0, 0x02, false, "Out0"},
		{PipeOut1, 0x03, false, "Out1"},
		{PipeOut2, 0x04, false, "Out2"},
		{PipeOut3, 0x05, false, "Out3"},
	}
	if len(data) != len(Pipes) {
		t.Fatal("the pipe set is fixed at 8")
	}
	for _, line := range data {
		if uint8(line.p) != line.addr {
			t.Fatalf("%s: address %#02x; want %#02x", line.name, uint8(line.p), line.addr)
		}
		if line.p.IsRead() == line.p.IsWrite() {
			t.Fatalf("%s: IsRead and IsWrite must be mutually exclusive and exhaustive", line.name)
		}
		// Direction is carried by bit 0x80.
		if line.p.IsRead() != (line.addr&0x80 != 0) {
			t.Fatalf("%s: IsRead() = %t does not match the direction bit", line.name, line.p.IsRead())
		}
		if line.p.IsRead() != line.read {
			t.Fatalf("%s: IsRead() = %t; want %t", line.name, line.p.IsRead(), line.read)
		}
		if !line.p.valid() {
			t.Fatalf("%s must be valid", line.name)
		}
		if s := line.p.String(); s != line.name {
			t.Fatalf("String() = %q; want %q", s, line.name)
		}
	}
	if Pipe(0x01).valid() || Pipe(0x81).valid() {
		t.Fatal("reserved pipes are not data pipes")
	}
	if s := Pipe(0x42).String(); s != "Pipe(0x42)" {
		t.Fatalf("got %q", s)
	}
}

func TestPipeTypeString(t *testing.T) {
	data := []struct {
		t PipeType
		s string
	}{
		{PipeTypeControl, "Control"},
		{PipeTypeIsochronous, "Isochronous"},
		{PipeTypeBulk, "Bulk"},
		{PipeTypeInterrupt, "Interrupt"},
		{PipeType(9), "PipeType(9)"},
	}
	for _, line := range data {
		if s := line.t.String(); s != line.s {
			t.Fatalf("got %q; want %q", s, line.s)
		}
	}
}

func TestPipeInfoOf(t *testing.T) {
	pi, err := pipeInfoOf(d3xx.PipeInfo{PipeType: 2, PipeID: 0x82, MaximumPacketSize: 1024, Interval: 0})
	if err != nil {
		t.Fatal(err)
	}
	want := PipeInfo{Type: PipeTypeBulk, Pipe: PipeIn0, MaxPacketSize: 1024}
	if pi != want {
		t.Fatalf("got %+v; want %+v", pi, want)
	}
	if _, err := pipeInfoOf(d3xx.PipeInfo{PipeType: 2, PipeID: 0x42}); err == nil {
		t.Fatal("unknown pipe id must fail")
	}
	if _, err := pipeInfoOf(d3xx.PipeInfo{PipeType: 4, PipeID: 0x82}); err == nil {
		t.Fatal("unknown pipe type must fail")
	}
}
