// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d3xx

import "testing"

func TestErrTable(t *testing.T) {
	data := []struct {
		e Err
		s string
	}{
		{OK, "success"},
		{InvalidHandle, "invalid handle"},
		{DeviceNotFound, "device not found"},
		{DeviceNotOpened, "device not opened"},
		{IoError, "I/O error"},
		{InsufficientResources, "insufficient resources"},
		{InvalidParameter, "invalid parameter"},
		{InvalidBaudRate, "invalid baud rate"},
		{DeviceNotOpenedForErase, "device not opened for erase"},
		{DeviceNotOpenedForWrite, "device not opened for write"},
		{FailedToWriteDevice, "failed to write device"},
		{EEPROMReadFailed, "EEPROM read failed"},
		{EEPROMWriteFailed, "EEPROM write failed"},
		{EEPROMEraseFailed, "EEPROM erase failed"},
		{EEPROMNotPresent, "EEPROM not present"},
		{EEPROMNotProgrammed, "EEPROM not programmed"},
		{InvalidArgs, "invalid args"},
		{NotSupported, "not supported"},
		{NoMoreItems, "no more items"},
		{Timeout, "timeout"},
		{OperationAborted, "operation aborted"},
		{ReservedPipe, "reserved pipe"},
		{InvalidControlRequestDirection, "invalid control request direction"},
		{InvalidControlRequestType, "invalid control request type"},
		{IoPending, "I/O pending"},
		{IoIncomplete, "I/O incomplete"},
		{HandleEof, "handle EOF"},
		{Busy, "busy"},
		{NoSystemResources, "no system resources"},
		{DeviceListNotReady, "device list not ready"},
		{DeviceNotConnected, "device not connected"},
		{IncorrectDevicePath, "incorrect device path"},
		{OtherError, "other error"},
		{LibraryLoadFailed, "library load failed"},
	}
	seen := map[string]Err{}
	for i, line := range data {
		if s := line.e.String(); s != line.s {
			t.Fatalf("#%d: Err(%d).String() = %q; want %q", i, line.e, s, line.s)
		}
		if s := line.e.Error(); s != line.s {
			t.Fatalf("#%d: Err(%d).Error() = %q; want %q", i, line.e, s, line.s)
		}
		if prev, ok := seen[line.s]; ok {
			t.Fatalf("#%d: %q maps to both %d and %d", i, line.s, prev, line.e)
		}
		seen[line.s] = line.e
	}
	// The vendor codes are exactly 1..32.
	for i := 1; i <= 32; i++ {
		if !Err(i).IsKnown() {
			t.Fatalf("Err(%d) must be known", i)
		}
	}
}

func TestErrValues(t *testing.T) {
	// Bit-exact anchors of the vendor protocol.
	if InvalidHandle != 1 {
		t.Fatal("InvalidHandle must be 1")
	}
	if Timeout != 19 {
		t.Fatal("Timeout must be 19")
	}
	if OperationAborted != 20 {
		t.Fatal("OperationAborted must be 20")
	}
	if OtherError != 32 {
		t.Fatal("OtherError must be 32")
	}
}

func TestErrUnknown(t *testing.T) {
	for _, e := range []Err{33, 1000, -2} {
		if e.IsKnown() {
			t.Fatalf("Err(%d) must not be known", e)
		}
		if s := e.String(); s == "" {
			t.Fatalf("Err(%d).String() must not be empty", e)
		}
	}
}

func TestOpenFlags(t *testing.T) {
	if OpenBySerialNumber != 0x1 || OpenByIndex != 0x10 {
		t.Fatal("open flags are part of the vendor ABI")
	}
}
