// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"periph.io/x/ftd3xx/d3xx"
)

// DeviceInfo flag bits.
const (
	// FlagOpened is set when some process holds the device open.
	FlagOpened uint32 = 0x1
	// FlagHiSpeed is set when the device is on a USB2 link.
	FlagHiSpeed uint32 = 0x2
	// FlagSuperSpeed is set when the device is on a USB3 link.
	FlagSuperSpeed uint32 = 0x4
)

// DeviceInfo is the information gathered about one attached FT60x device
// without opening it.
//
// Records are immutable once produced.
type DeviceInfo struct {
	// Index is the ordinal position in the enumeration snapshot that
	// produced this record. It is invalidated by any later enumeration; use
	// Serial as the stable device key.
	Index int
	// Flags is a bitmask of the Flag* constants.
	Flags uint32
	// Type is the raw device-type code.
	Type uint32
	// VenID is the vendor ID from the USB descriptor. It is expected to be
	// 0x0403 (FTDI).
	VenID uint16
	// DevID is the product ID from the USB descriptor. It is expected to be
	// 0x601E (FT600) or 0x601F (FT601).
	DevID uint16
	// LocID is the bus/port locator.
	LocID uint32
	// Serial is the device serial number.
	Serial string
	// Desc is the device description string.
	Desc string
	// Opened is true if the device was already open at snapshot time.
	Opened bool

	// handle is the native handle identity at snapshot time, 0 if not open.
	handle uintptr
}

// IsSuperSpeed returns true if the device is connected over USB3.
func (d *DeviceInfo) IsSuperSpeed() bool {
	return d.Flags&FlagSuperSpeed != 0
}

// IsHiSpeed returns true if the device is connected over USB2.
func (d *DeviceInfo) IsHiSpeed() bool {
	return d.Flags&FlagHiSpeed != 0
}

func (d *DeviceInfo) String() string {
	return fmt.Sprintf("FT60x{%s, %04x:%04x}", d.Serial, d.VenID, d.DevID)
}

// Native entry points. Replaced in tests.
var (
	d3xxNumDevices           = d3xx.NumDevices
	d3xxCreateDeviceInfoList = d3xx.CreateDeviceInfoList
	d3xxGetDeviceInfoList    = d3xx.GetDeviceInfoList
	d3xxLibraryVersion       = d3xx.LibraryVersion
	d3xxCreate               = d3xx.Create
	d3xxCreateByIndex        = d3xx.CreateByIndex
)

// NumDevices returns the number of attached FT60x devices.
//
// Unlike ListDevices it does not allocate per-device records.
func NumDevices() (int, error) {
	n, e := d3xxNumDevices()
	if e != d3xx.OK {
		return 0, toErr("ListDevices", e)
	}
	return n, nil
}

// ListDevices returns a point-in-time snapshot of the attached devices, in
// the order the driver reports them.
//
// The snapshot is taken in two phases: the driver first rebuilds its
// internal device list and reports the count, then all fixed-layout records
// are fetched in one call. Index fields are only meaningful until the next
// enumeration call. The driver cannot track more than d3xx.MaxDevices
// devices; records past that limit are not retrievable.
func ListDevices() ([]DeviceInfo, error) {
	n, e := d3xxCreateDeviceInfoList()
	if e != d3xx.OK {
		return nil, toErr("CreateDeviceInfoList", e)
	}
	if n == 0 {
		return nil, nil
	}
	if n > d3xx.MaxDevices {
		n = d3xx.MaxDevices
	}
	raw, e := d3xxGetDeviceInfoList(n)
	if e != d3xx.OK {
		return nil, toErr("GetDeviceInfoList", e)
	}
	out := make([]DeviceInfo, 0, len(raw))
	for i := range raw {
		d, err := deviceInfoOf(i, &raw[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func deviceInfoOf(index int, n *d3xx.DevInfo) (DeviceInfo, error) {
	serial, err := decodeCStr(n.SerialNumber[:])
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("ft60x: device %d serial number: %w", index, err)
	}
	desc, err := decodeCStr(n.Description[:])
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("ft60x: device %d description: %w", index, err)
	}
	return DeviceInfo{
		Index:  index,
		Flags:  n.Flags,
		Type:   n.Type,
		VenID:  uint16(n.ID >> 16),
		DevID:  uint16(n.ID),
		LocID:  n.LocID,
		Serial: serial,
		Desc:   desc,
		Opened: n.Handle != 0,
		handle: n.Handle,
	}, nil
}

// decodeCStr decodes a fixed-capacity NUL terminated text buffer as received
// from the device. Firmware is not trusted to produce well formed data: a
// missing terminator or invalid UTF-8 is an error, never truncated silently.
func decodeCStr(b []byte) (string, error) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return "", fmt.Errorf("unterminated %d byte string", len(b))
	}
	if !utf8.Valid(b[:i]) {
		return "", fmt.Errorf("invalid UTF-8 in %q", b[:i])
	}
	return string(b[:i]), nil
}

// LibraryVersion returns the version of the D3XX user library. It is
// process-wide state, independent of any open device.
//
// It panics if the library cannot report its own version; nothing else can
// function in that environment either.
func LibraryVersion() Version {
	raw, e := d3xxLibraryVersion()
	if e != d3xx.OK {
		panic("ft60x: failed to get D3XX library version: " + e.String())
	}
	return DecodeVersion(raw)
}

// Available returns true if the D3XX driver stack is installed and
// responding. It never fails; it is meant as an environment preflight
// check.
func Available() bool {
	_, err := NumDevices()
	return err == nil
}
