// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package d3xxtest provides fake d3xx handles for testing and debugging.
package d3xxtest

import (
	"periph.io/x/ftd3xx/d3xx"
)

// Fake implements d3xx.Handle that returns scripted data.
//
// The zero value is usable. Every native call increments Calls, so tests can
// assert that an operation never reached the driver boundary.
type Fake struct {
	VID, PID uint16
	// Driver is the raw packed kernel driver version.
	Driver uint32
	Desc   d3xx.DeviceDescriptor
	// Info is returned by GetPipeInformation, keyed by pipe address.
	Info map[uint8]d3xx.PipeInfo
	// Config is the chip configuration blob, moved verbatim by
	// Get/SetChipConfiguration.
	Config []byte
	// Handle is the native handle identity reported by Raw().
	Handle uintptr

	// R is consumed one element per ReadPipe call. A chunk shorter than the
	// caller's buffer produces a short transfer. An exhausted R times out.
	R [][]byte
	// W records every WritePipe payload.
	W [][]byte
	// WriteN, when not empty, is consumed one element per WritePipe call and
	// overrides the reported number of bytes written.
	WriteN []int
	// Err, when non-zero, is returned by every call.
	Err d3xx.Err
	// CloseErr, when non-zero, is returned by Close.
	CloseErr d3xx.Err

	// Calls is the total number of native calls made on this handle.
	Calls   int
	Aborted []uint8
	Flushed []uint8
	Closed  bool
	Cycled  bool

	GPIOMask  uint32
	GPIODir   uint32
	GPIOValue uint32

	timeouts map[uint8]uint32
	streams  map[uint8]uint32
}

// defaultTimeoutMs is the per-pipe timeout a fresh handle reports, matching
// the vendor driver default of 5 seconds.
const defaultTimeoutMs = 5000

func (f *Fake) Close() d3xx.Err {
	f.Calls++
	if f.CloseErr != 0 {
		return f.CloseErr
	}
	f.Closed = true
	return d3xx.OK
}

func (f *Fake) GetDriverVersion() (uint32, d3xx.Err) {
	f.Calls++
	return f.Driver, f.Err
}

func (f *Fake) GetVIDPID() (uint16, uint16, d3xx.Err) {
	f.Calls++
	return f.VID, f.PID, f.Err
}

func (f *Fake) ReadPipe(pipe uint8, b []byte) (int, d3xx.Err) {
	f.Calls++
	if f.Err != 0 {
		return 0, f.Err
	}
	if len(f.R) == 0 {
		return 0, d3xx.Timeout
	}
	n := copy(b, f.R[0])
	f.R = f.R[1:]
	return n, d3xx.OK
}

func (f *Fake) WritePipe(pipe uint8, b []byte) (int, d3xx.Err) {
	f.Calls++
	if f.Err != 0 {
		return 0, f.Err
	}
	f.W = append(f.W, append([]byte(nil), b...))
	if len(f.WriteN) != 0 {
		n := f.WriteN[0]
		f.WriteN = f.WriteN[1:]
		return n, d3xx.OK
	}
	return len(b), d3xx.OK
}

func (f *Fake) FlushPipe(pipe uint8) d3xx.Err {
	f.Calls++
	if f.Err != 0 {
		return f.Err
	}
	f.Flushed = append(f.Flushed, pipe)
	return d3xx.OK
}

func (f *Fake) AbortPipe(pipe uint8) d3xx.Err {
	f.Calls++
	f.Aborted = append(f.Aborted, pipe)
	return d3xx.OK
}

func (f *Fake) GetPipeInformation(iface, pipe uint8) (d3xx.PipeInfo, d3xx.Err) {
	f.Calls++
	if f.Err != 0 {
		return d3xx.PipeInfo{}, f.Err
	}
	if pi, ok := f.Info[pipe]; ok {
		return pi, d3xx.OK
	}
	return d3xx.PipeInfo{}, d3xx.NoMoreItems
}

func (f *Fake) SetPipeTimeout(pipe uint8, ms uint32) d3xx.Err {
	f.Calls++
	if f.Err != 0 {
		return f.Err
	}
	if f.timeouts == nil {
		f.timeouts = map[uint8]uint32{}
	}
	f.timeouts[pipe] = ms
	return d3xx.OK
}

func (f *Fake) GetPipeTimeout(pipe uint8) (uint32, d3xx.Err) {
	f.Calls++
	if f.Err != 0 {
		return 0, f.Err
	}
	if ms, ok := f.timeouts[pipe]; ok {
		return ms, d3xx.OK
	}
	return defaultTimeoutMs, d3xx.OK
}

func (f *Fake) SetStreamPipe(pipe uint8, size uint32) d3xx.Err {
	f.Calls++
	if f.Err != 0 {
		return f.Err
	}
	if f.streams == nil {
		f.streams = map[uint8]uint32{}
	}
	f.streams[pipe] = size
	return d3xx.OK
}

func (f *Fake) ClearStreamPipe(pipe uint8) d3xx.Err {
	f.Calls++
	if f.Err != 0 {
		return f.Err
	}
	delete(f.streams, pipe)
	return d3xx.OK
}

// StreamSize returns the stream size configured on pipe, or 0.
func (f *Fake) StreamSize(pipe uint8) uint32 {
	return f.streams[pipe]
}

func (f *Fake) GetDeviceDescriptor() (d3xx.DeviceDescriptor, d3xx.Err) {
	f.Calls++
	return f.Desc, f.Err
}

func (f *Fake) GetChipConfiguration(b []byte) d3xx.Err {
	f.Calls++
	if f.Err != 0 {
		return f.Err
	}
	copy(b, f.Config)
	return d3xx.OK
}

func (f *Fake) SetChipConfiguration(b []byte) d3xx.Err {
	f.Calls++
	if f.Err != 0 {
		return f.Err
	}
	f.Config = append([]byte(nil), b...)
	return d3xx.OK
}

func (f *Fake) EnableGPIO(mask, direction uint32) d3xx.Err {
	f.Calls++
	if f.Err != 0 {
		return f.Err
	}
	f.GPIOMask = mask
	f.GPIODir = direction
	return d3xx.OK
}

func (f *Fake) WriteGPIO(mask, value uint32) d3xx.Err {
	f.Calls++
	if f.Err != 0 {
		return f.Err
	}
	f.GPIOValue = (f.GPIOValue &^ mask) | (value & mask)
	return d3xx.OK
}

func (f *Fake) ReadGPIO() (uint32, d3xx.Err) {
	f.Calls++
	return f.GPIOValue, f.Err
}

func (f *Fake) CycleDevicePort() d3xx.Err {
	f.Calls++
	if f.Err != 0 {
		return f.Err
	}
	f.Cycled = true
	return d3xx.OK
}

func (f *Fake) Raw() uintptr {
	return f.Handle
}

// Log logs all calls to a d3xx.Handle.
//
// Wrap an open handle with it to debug the exact traffic with the driver:
//
//	d := &d3xxtest.Log{H: h, Printf: log.Printf}
type Log struct {
	H      d3xx.Handle
	Printf func(format string, v ...interface{})
}

func (l *Log) Close() d3xx.Err {
	e := l.H.Close()
	l.Printf("Close() = %s", e)
	return e
}

func (l *Log) GetDriverVersion() (uint32, d3xx.Err) {
	v, e := l.H.GetDriverVersion()
	l.Printf("GetDriverVersion() = %#08x, %s", v, e)
	return v, e
}

func (l *Log) GetVIDPID() (uint16, uint16, d3xx.Err) {
	vid, pid, e := l.H.GetVIDPID()
	l.Printf("GetVIDPID() = %04x:%04x, %s", vid, pid, e)
	return vid, pid, e
}

func (l *Log) ReadPipe(pipe uint8, b []byte) (int, d3xx.Err) {
	n, e := l.H.ReadPipe(pipe, b)
	l.Printf("ReadPipe(%#02x, %d bytes) = %d, %s", pipe, len(b), n, e)
	return n, e
}

func (l *Log) WritePipe(pipe uint8, b []byte) (int, d3xx.Err) {
	n, e := l.H.WritePipe(pipe, b)
	l.Printf("WritePipe(%#02x, %d bytes) = %d, %s", pipe, len(b), n, e)
	return n, e
}

func (l *Log) FlushPipe(pipe uint8) d3xx.Err {
	e := l.H.FlushPipe(pipe)
	l.Printf("FlushPipe(%#02x) = %s", pipe, e)
	return e
}

func (l *Log) AbortPipe(pipe uint8) d3xx.Err {
	e := l.H.AbortPipe(pipe)
	l.Printf("AbortPipe(%#02x) = %s", pipe, e)
	return e
}

func (l *Log) GetPipeInformation(iface, pipe uint8) (d3xx.PipeInfo, d3xx.Err) {
	pi, e := l.H.GetPipeInformation(iface, pipe)
	l.Printf("GetPipeInformation(%d, %#02x) = %+v, %s", iface, pipe, pi, e)
	return pi, e
}

func (l *Log) SetPipeTimeout(pipe uint8, ms uint32) d3xx.Err {
	e := l.H.SetPipeTimeout(pipe, ms)
	l.Printf("SetPipeTimeout(%#02x, %dms) = %s", pipe, ms, e)
	return e
}

func (l *Log) GetPipeTimeout(pipe uint8) (uint32, d3xx.Err) {
	ms, e := l.H.GetPipeTimeout(pipe)
	l.Printf("GetPipeTimeout(%#02x) = %dms, %s", pipe, ms, e)
	return ms, e
}

func (l *Log) SetStreamPipe(pipe uint8, size uint32) d3xx.Err {
	e := l.H.SetStreamPipe(pipe, size)
	l.Printf("SetStreamPipe(%#02x, %d) = %s", pipe, size, e)
	return e
}

func (l *Log) ClearStreamPipe(pipe uint8) d3xx.Err {
	e := l.H.ClearStreamPipe(pipe)
	l.Printf("ClearStreamPipe(%#02x) = %s", pipe, e)
	return e
}

func (l *Log) GetDeviceDescriptor() (d3xx.DeviceDescriptor, d3xx.Err) {
	d, e := l.H.GetDeviceDescriptor()
	l.Printf("GetDeviceDescriptor() = %+v, %s", d, e)
	return d, e
}

func (l *Log) GetChipConfiguration(b []byte) d3xx.Err {
	e := l.H.GetChipConfiguration(b)
	l.Printf("GetChipConfiguration(%d bytes) = %s", len(b), e)
	return e
}

func (l *Log) SetChipConfiguration(b []byte) d3xx.Err {
	e := l.H.SetChipConfiguration(b)
	l.Printf("SetChipConfiguration(%d bytes) = %s", len(b), e)
	return e
}

func (l *Log) EnableGPIO(mask, direction uint32) d3xx.Err {
	e := l.H.EnableGPIO(mask, direction)
	l.Printf("EnableGPIO(%#x, %#x) = %s", mask, direction, e)
	return e
}

func (l *Log) WriteGPIO(mask, value uint32) d3xx.Err {
	e := l.H.WriteGPIO(mask, value)
	l.Printf("WriteGPIO(%#x, %#x) = %s", mask, value, e)
	return e
}

func (l *Log) ReadGPIO() (uint32, d3xx.Err) {
	v, e := l.H.ReadGPIO()
	l.Printf("ReadGPIO() = %#x, %s", v, e)
	return v, e
}

func (l *Log) CycleDevicePort() d3xx.Err {
	e := l.H.CycleDevicePort()
	l.Printf("CycleDevicePort() = %s", e)
	return e
}

func (l *Log) Raw() uintptr {
	return l.H.Raw()
}

var _ d3xx.Handle = &Fake{}
var _ d3xx.Handle = &Log{}
