// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import (
	"errors"
	"testing"

	"periph.io/x/ftd3xx/d3xx"
)

func fakeDevInfo(serial, desc string) d3xx.DevInfo {
	n := d3xx.DevInfo{
		Flags: FlagSuperSpeed,
		Type:  600,
		ID:    0x0403601f,
		LocID: 0x1234,
	}
	copy(n.SerialNumber[:], serial)
	copy(n.Description[:], desc)
	return n
}

func TestNumDevices(t *testing.T) {
	defer resetNative()
	d3xxNumDevices = func() (int, d3xx.Err) { return 3, d3xx.OK }
	if n, err := NumDevices(); n != 3 || err != nil {
		t.Fatalf("got %d, %v", n, err)
	}
	d3xxNumDevices = func() (int, d3xx.Err) { return 0, d3xx.DeviceNotOpened }
	if _, err := NumDevices(); !errors.Is(err, d3xx.DeviceNotOpened) {
		t.Fatalf("got %v", err)
	}
}

func TestListDevices(t *testing.T) {
	defer resetNative()
	d3xxCreateDeviceInfoList = func() (int, d3xx.Err) { return 2, d3xx.OK }
	d3xxGetDeviceInfoList = func(n int) ([]d3xx.DevInfo, d3xx.Err) {
		if n != 2 {
			t.Fatalf("asked for %d records", n)
		}
		return []d3xx.DevInfo{
			fakeDevInfo("FT0AB001", "FTDI SuperSpeed-FIFO Bridge"),
			fakeDevInfo("FT0AB002", "FTDI SuperSpeed-FIFO Bridge"),
		}, d3xx.OK
	}
	devs, err := ListDevices()
	if err != nil {
		t.Fatal(err)
	}
	if len(devs) != 2 {
		t.Fatalf("got %d devices", len(devs))
	}
	for i, d := range devs {
		if d.Index != i {
			t.Fatalf("device %d: Index = %d", i, d.Index)
		}
		if d.VenID != 0x0403 || d.DevID != 0x601f {
			t.Fatalf("device %d: %04x:%04x", i, d.VenID, d.DevID)
		}
		if !d.IsSuperSpeed() || d.IsHiSpeed() {
			t.Fatalf("device %d: flags %#x", i, d.Flags)
		}
		if d.Opened {
			t.Fatalf("device %d: not open, handle is 0", i)
		}
	}
	if devs[0].Serial != "FT0AB001" || devs[1].Serial != "FT0AB002" {
		t.Fatalf("got serials %q, %q", devs[0].Serial, devs[1].Serial)
	}
	if s := devs[0].String(); s != "FT60x{FT0AB001, 0403:601f}" {
		t.Fatalf("got %q", s)
	}
}

func TestListDevicesEmpty(t *testing.T) {
	defer resetNative()
	d3xxCreateDeviceInfoList = func() (int, d3xx.Err) { return 0, d3xx.OK }
	d3xxGetDeviceInfoList = func(n int) ([]d3xx.DevInfo, d3xx.Err) {
		t.Fatal("no record fetch for an empty list")
		return nil, d3xx.OtherError
	}
	if devs, err := ListDevices(); devs != nil || err != nil {
		t.Fatalf("got %v, %v", devs, err)
	}
}

func TestListDevicesCap(t *testing.T) {
	defer resetNative()
	// The driver cannot track more than MaxDevices; the count is clamped.
	d3xxCreateDeviceInfoList = func() (int, d3xx.Err) { return d3xx.MaxDevices + 10, d3xx.OK }
	d3xxGetDeviceInfoList = func(n int) ([]d3xx.DevInfo, d3xx.Err) {
		if n != d3xx.MaxDevices {
			t.Fatalf("asked for %d records", n)
		}
		out := make([]d3xx.DevInfo, n)
		for i := range out {
			out[i] = fakeDevInfo("FT0AB001", "")
		}
		return out, d3xx.OK
	}
	devs, err := ListDevices()
	if err != nil {
		t.Fatal(err)
	}
	if len(devs) != d3xx.MaxDevices {
		t.Fatalf("got %d devices", len(devs))
	}
}

func TestListDevicesBadStrings(t *testing.T) {
	defer resetNative()
	d3xxCreateDeviceInfoList = func() (int, d3xx.Err) { return 1, d3xx.OK }

	// Unterminated serial number.
	unterminated := fakeDevInfo("", "ok")
	for i := range unterminated.SerialNumber {
		unterminated.SerialNumber[i] = 'A'
	}
	d3xxGetDeviceInfoList = func(n int) ([]d3xx.DevInfo, d3xx.Err) {
		return []d3xx.DevInfo{unterminated}, d3xx.OK
	}
	if _, err := ListDevices(); err == nil {
		t.Fatal("unterminated serial must fail")
	}

	// Invalid UTF-8 in the description.
	bad := fakeDevInfo("FT0AB001", "")
	bad.Description[0] = 0xff
	bad.Description[1] = 0xfe
	d3xxGetDeviceInfoList = func(n int) ([]d3xx.DevInfo, d3xx.Err) {
		return []d3xx.DevInfo{bad}, d3xx.OK
	}
	if _, err := ListDevices(); err == nil {
		t.Fatal("invalid UTF-8 must fail")
	}
}

func TestListDevicesErr(t *testing.T) {
	defer resetNative()
	d3xxCreateDeviceInfoList = func() (int, d3xx.Err) { return 0, d3xx.IoError }
	if _, err := ListDevices(); !errors.Is(err, d3xx.IoError) {
		t.Fatalf("got %v", err)
	}
	d3xxCreateDeviceInfoList = func() (int, d3xx.Err) { return 1, d3xx.OK }
	d3xxGetDeviceInfoList = func(n int) ([]d3xx.DevInfo, d3xx.Err) {
		return nil, d3xx.IoError
	}
	if _, err := ListDevices(); !errors.Is(err, d3xx.IoError) {
		t.Fatalf("got %v", err)
	}
}

func TestLibraryVersion(t *testing.T) {
	defer resetNative()
	d3xxLibraryVersion = func() (uint32, d3xx.Err) { return 0x0102030a, d3xx.OK }
	if v := LibraryVersion(); v.String() != "1.2.3.10" {
		t.Fatalf("got %s", v)
	}
	d3xxLibraryVersion = func() (uint32, d3xx.Err) { return 0, d3xx.LibraryLoadFailed }
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	LibraryVersion()
}

func TestAvailable(t *testing.T) {
	defer resetNative()
	d3xxNumDevices = func() (int, d3xx.Err) { return 0, d3xx.OK }
	if !Available() {
		t.Fatal("stack responded; must be available")
	}
	d3xxNumDevices = func() (int, d3xx.Err) { return 0, d3xx.LibraryLoadFailed }
	if Available() {
		t.Fatal("stack did not respond; must not be available")
	}
}

func TestDecodeCStr(t *testing.T) {
	b := make([]byte, 16)
	copy(b, "FT0AB001")
	if s, err := decodeCStr(b); s != "FT0AB001" || err != nil {
		t.Fatalf("got %q, %v", s, err)
	}
	if s, err := decodeCStr(make([]byte, 4)); s != "" || err != nil {
		t.Fatalf("got %q, %v", s, err)
	}
}

// resetNative restores the real native entry points.
func resetNative() {
	d3xxNumDevices = d3xx.NumDevices
	d3xxCreateDeviceInfoList = d3xx.CreateDeviceInfoList
	d3xxGetDeviceInfoList = d3xx.GetDeviceInfoList
	d3xxLibraryVersion = d3xx.LibraryVersion
	d3xxCreate = d3xx.Create
	d3xxCreateByIndex = d3xx.CreateByIndex
}
