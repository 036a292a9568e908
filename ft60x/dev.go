// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import (
	"strings"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/ftd3xx/d3xx"
)

// ChipConfigSize is the size in bytes of the FT60x chip configuration
// record. The record is opaque here; only its size and round-trip are
// guaranteed.
const ChipConfigSize = 152

// dataInterface is the USB interface carrying the data pipes.
const dataInterface = 1

// maxSerial is the longest serial number the native layer can encode,
// leaving room for the terminating NUL in its 16 byte buffer.
const maxSerial = 15

// DeviceDescriptor is the standard USB device descriptor of an open device.
type DeviceDescriptor struct {
	// USB is the USB specification release number in BCD (e.g. 0x0300).
	USB uint16
	// Class, SubClass and Protocol are the device codes assigned by the USB
	// organization.
	Class    uint8
	SubClass uint8
	Protocol uint8
	// MaxPacketSize0 is the maximum packet size of the control endpoint.
	MaxPacketSize0 uint8
	VendorID       uint16
	ProductID      uint16
	// Release is the device release number in BCD.
	Release uint16
	// NumConfigurations is the number of possible configurations.
	NumConfigurations uint8
}

// Open opens a device by serial number and returns the exclusive session.
//
// It fails with a d3xx.DeviceNotFound status if no attached device matches,
// and with d3xx.InvalidParameter, without touching the native layer, if the
// serial cannot be encoded (embedded NUL byte or too long).
//
// The native layer enforces exclusivity: opening an already open device
// fails.
func Open(serial string) (*Dev, error) {
	if strings.IndexByte(serial, 0) >= 0 || len(serial) > maxSerial {
		return nil, &Error{Op: "Create", Status: d3xx.InvalidParameter}
	}
	h, e := d3xxCreate(serial)
	if e != d3xx.OK {
		return nil, toErr("Create", e)
	}
	return newDev(h, serial), nil
}

// OpenInfo opens the device described by an enumeration record, by serial
// number.
func OpenInfo(info *DeviceInfo) (*Dev, error) {
	return Open(info.Serial)
}

// OpenIndex opens a device by its position in the current enumeration
// snapshot.
//
// Indices are invalidated by any enumeration; prefer Open with a serial
// number whenever one is programmed.
func OpenIndex(i int) (*Dev, error) {
	h, e := d3xxCreateByIndex(i)
	if e != d3xx.OK {
		return nil, toErr("Create", e)
	}
	return newDev(h, ""), nil
}

func newDev(h d3xx.Handle, serial string) *Dev {
	d := &Dev{h: &handle{h: wrapHandle(h)}, name: "FT60x(" + serial + ")"}
	d.GPIO0 = &gpioPin{d: d, num: 0, name: d.name + ".GPIO0"}
	d.GPIO1 = &gpioPin{d: d, num: 1, name: d.name + ".GPIO1"}
	return d
}

// Dev is an open FT60x device.
//
// A Dev is exclusively owned by the caller and must be released exactly once
// with Close. Methods fail with a d3xx.InvalidHandle status once the device
// is closed.
//
// Methods targeting different pipes may be used concurrently from multiple
// goroutines. Methods targeting the same pipe must be externally
// serialized; the only way to interrupt an in-flight transfer is
// AbortTransfers on its pipe, which makes the blocked call return a
// d3xx.OperationAborted status.
type Dev struct {
	// GPIO0 and GPIO1 are the two general purpose pins of the chip. They
	// must be enabled with EnableGPIO before use.
	GPIO0 gpio.PinIO
	GPIO1 gpio.PinIO

	name string

	// mu guards h and the GPIO direction shadow, not the native calls
	// themselves: holding it across a blocked transfer would prevent
	// AbortTransfers from another goroutine.
	mu      sync.Mutex
	h       *handle
	gpioDir uint32
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return d.name
}

// Halt implements conn.Resource.
//
// It aborts any pending transfer on every pipe.
func (d *Dev) Halt() error {
	h, err := d.handle()
	if err != nil {
		return err
	}
	for _, p := range Pipes {
		if err2 := h.abortPipe(p); err2 != nil && err == nil {
			err = err2
		}
	}
	return err
}

// handle returns the live native handle or an InvalidHandle error after
// Close.
func (d *Dev) handle() (*handle, error) {
	d.mu.Lock()
	h := d.h
	d.mu.Unlock()
	if h == nil {
		return nil, &Error{Op: "Handle", Status: d3xx.InvalidHandle}
	}
	return h, nil
}

// take detaches the native handle from d, leaving it closed.
func (d *Dev) take() (*handle, error) {
	d.mu.Lock()
	h := d.h
	d.h = nil
	d.mu.Unlock()
	if h == nil {
		return nil, &Error{Op: "Handle", Status: d3xx.InvalidHandle}
	}
	return h, nil
}

// Close releases the device handle. The Dev must not be used afterwards.
//
// Close panics if the native release fails: that means resource management
// is corrupted and every future enumeration or open would misbehave.
func (d *Dev) Close() error {
	h, err := d.take()
	if err != nil {
		return err
	}
	return h.close()
}

// Info re-resolves this device in a fresh enumeration snapshot by native
// handle identity.
//
// It fails with a d3xx.DeviceNotFound status if the device is no longer
// attached; the session is then still open but orphaned.
func (d *Dev) Info() (DeviceInfo, error) {
	h, err := d.handle()
	if err != nil {
		return DeviceInfo{}, err
	}
	devs, err := ListDevices()
	if err != nil {
		return DeviceInfo{}, err
	}
	if raw := h.h.Raw(); raw != 0 {
		for i := range devs {
			if devs[i].handle == raw {
				return devs[i], nil
			}
		}
	}
	return DeviceInfo{}, &Error{Op: "Info", Status: d3xx.DeviceNotFound}
}

// VendorID returns the vendor ID of the open device.
func (d *Dev) VendorID() (uint16, error) {
	vid, _, err := d.vidPID()
	return vid, err
}

// ProductID returns the product ID of the open device.
func (d *Dev) ProductID() (uint16, error) {
	_, pid, err := d.vidPID()
	return pid, err
}

func (d *Dev) vidPID() (uint16, uint16, error) {
	h, err := d.handle()
	if err != nil {
		return 0, 0, err
	}
	vid, pid, e := h.h.GetVIDPID()
	if e != d3xx.OK {
		return 0, 0, toErr("GetVIDPID", e)
	}
	return vid, pid, nil
}

// DriverVersion returns the version of the D3XX kernel driver backing this
// device. This is distinct from the process-wide LibraryVersion.
func (d *Dev) DriverVersion() (Version, error) {
	h, err := d.handle()
	if err != nil {
		return Version{}, err
	}
	raw, e := h.h.GetDriverVersion()
	if e != d3xx.OK {
		return Version{}, toErr("GetDriverVersion", e)
	}
	return DecodeVersion(raw), nil
}

// Write writes to an OUT pipe with a single native transfer and returns the
// number of bytes moved. It blocks until completion or the pipe's timeout.
//
// A read pipe fails with a d3xx.InvalidParameter status before any native
// call is made.
func (d *Dev) Write(p Pipe, b []byte) (int, error) {
	if !p.valid() || !p.IsWrite() {
		return 0, &Error{Op: "WritePipe", Status: d3xx.InvalidParameter}
	}
	h, err := d.handle()
	if err != nil {
		return 0, err
	}
	return h.writePipe(p, b)
}

// Read reads from an IN pipe with a single native transfer and returns the
// number of bytes moved. It blocks until completion or the pipe's timeout.
//
// A write pipe fails with a d3xx.InvalidParameter status before any native
// call is made.
func (d *Dev) Read(p Pipe, b []byte) (int, error) {
	if !p.valid() || !p.IsRead() {
		return 0, &Error{Op: "ReadPipe", Status: d3xx.InvalidParameter}
	}
	h, err := d.handle()
	if err != nil {
		return 0, err
	}
	return h.readPipe(p, b)
}

// WriteStream writes b to an OUT pipe in 32KiB blocks, one native transfer
// per block, and returns the total number of bytes moved.
//
// Any failing or short block aborts the pipe, stops the stream and
// surfaces the failure; the transport never legitimately moves a partial
// block.
func (d *Dev) WriteStream(p Pipe, b []byte) (int, error) {
	if !p.valid() || !p.IsWrite() {
		return 0, &Error{Op: "WritePipe", Status: d3xx.InvalidParameter}
	}
	h, err := d.handle()
	if err != nil {
		return 0, err
	}
	return h.writeStream(p, b)
}

// ReadStream reads from an IN pipe into b in 32KiB blocks, one native
// transfer per block, and returns the total number of bytes moved.
func (d *Dev) ReadStream(p Pipe, b []byte) (int, error) {
	if !p.valid() || !p.IsRead() {
		return 0, &Error{Op: "ReadPipe", Status: d3xx.InvalidParameter}
	}
	h, err := d.handle()
	if err != nil {
		return 0, err
	}
	return h.readStream(p, b)
}

// SetTimeout configures the transfer timeout for one pipe.
//
// The setting is per-pipe and per-session: reopening the device resets it
// to the native default of 5 seconds.
func (d *Dev) SetTimeout(p Pipe, timeout time.Duration) error {
	h, err := d.handle()
	if err != nil {
		return err
	}
	return h.setTimeout(p, timeout)
}

// Timeout returns the transfer timeout configured for one pipe.
func (d *Dev) Timeout(p Pipe) (time.Duration, error) {
	h, err := d.handle()
	if err != nil {
		return 0, err
	}
	return h.timeout(p)
}

// SetStreamSize switches a pipe to streaming protocol transfers of exactly
// size bytes per burst. Use ClearStreamSize to return to normal transfers;
// the two modes are mutually exclusive per pipe.
func (d *Dev) SetStreamSize(p Pipe, size uint32) error {
	h, err := d.handle()
	if err != nil {
		return err
	}
	return toErr("SetStreamPipe", h.h.SetStreamPipe(uint8(p), size))
}

// ClearStreamSize clears the streaming transfer mode on a pipe.
func (d *Dev) ClearStreamSize(p Pipe) error {
	h, err := d.handle()
	if err != nil {
		return err
	}
	return toErr("ClearStreamPipe", h.h.ClearStreamPipe(uint8(p)))
}

// AbortTransfers cancels any pending transfer on the pipe. It is idempotent
// if nothing is pending.
//
// It is the only way to interrupt an in-flight transfer: the blocked call
// returns a d3xx.OperationAborted status.
func (d *Dev) AbortTransfers(p Pipe) error {
	h, err := d.handle()
	if err != nil {
		return err
	}
	return h.abortPipe(p)
}

// Flush discards buffered data on the pipe.
func (d *Dev) Flush(p Pipe) error {
	h, err := d.handle()
	if err != nil {
		return err
	}
	return h.flushPipe(p)
}

// PipeInfo queries the capabilities of one pipe. Read-only, no side
// effects.
func (d *Dev) PipeInfo(p Pipe) (PipeInfo, error) {
	if !p.valid() {
		return PipeInfo{}, &Error{Op: "GetPipeInformation", Status: d3xx.InvalidParameter}
	}
	h, err := d.handle()
	if err != nil {
		return PipeInfo{}, err
	}
	raw, e := h.h.GetPipeInformation(dataInterface, uint8(p))
	if e != d3xx.OK {
		return PipeInfo{}, toErr("GetPipeInformation", e)
	}
	return pipeInfoOf(raw)
}

// DeviceDescriptor queries the standard USB device descriptor. Read-only,
// no side effects.
func (d *Dev) DeviceDescriptor() (DeviceDescriptor, error) {
	h, err := d.handle()
	if err != nil {
		return DeviceDescriptor{}, err
	}
	raw, e := h.h.GetDeviceDescriptor()
	if e != d3xx.OK {
		return DeviceDescriptor{}, toErr("GetDeviceDescriptor", e)
	}
	return DeviceDescriptor{
		USB:               raw.USB,
		Class:             raw.DeviceClass,
		SubClass:          raw.DeviceSubClass,
		Protocol:          raw.DeviceProtocol,
		MaxPacketSize0:    raw.MaxPacketSize0,
		VendorID:          raw.VendorID,
		ProductID:         raw.ProductID,
		Release:           raw.Device,
		NumConfigurations: raw.NumConfigurations,
	}, nil
}

// ChipConfig reads the opaque 152 byte chip configuration record.
//
// The interior layout is not interpreted here; the record round-trips
// through SetChipConfig unchanged.
func (d *Dev) ChipConfig() ([]byte, error) {
	h, err := d.handle()
	if err != nil {
		return nil, err
	}
	b := make([]byte, ChipConfigSize)
	if e := h.h.GetChipConfiguration(b); e != d3xx.OK {
		return nil, toErr("GetChipConfiguration", e)
	}
	return b, nil
}

// SetChipConfig programs the opaque chip configuration record. The record
// must be exactly ChipConfigSize bytes.
func (d *Dev) SetChipConfig(b []byte) error {
	if len(b) != ChipConfigSize {
		return &Error{Op: "SetChipConfiguration", Status: d3xx.InvalidParameter}
	}
	h, err := d.handle()
	if err != nil {
		return err
	}
	return toErr("SetChipConfiguration", h.h.SetChipConfiguration(b))
}

// PowerCyclePort power cycles the device port, causing the device to be
// re-enumerated by the host.
//
// The session is consumed: the handle is released and the caller must open
// a new session once the device is back.
func (d *Dev) PowerCyclePort() error {
	h, err := d.take()
	if err != nil {
		return err
	}
	err = toErr("CycleDevicePort", h.h.CycleDevicePort())
	if err2 := h.close(); err == nil {
		err = err2
	}
	return err
}

var _ conn.Resource = &Dev{}
