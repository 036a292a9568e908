// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package d3xx is a thin Go wrapper for the FTDI D3XX vendor library.
//
// It exposes the raw FTD3XX call surface: numeric status codes, fixed-layout
// structures and an opaque device handle. It intentionally does no error
// translation, buffering or chunking; that is the job of package ft60x.
//
// The library is accessed through cgo when available. When built without cgo
// (or on an OS where libftd3xx cannot be linked), every call fails with
// LibraryLoadFailed and Available is false.
package d3xx

import "strconv"

// MaxDevices is the maximum number of devices the vendor driver can
// enumerate simultaneously.
const MaxDevices = 32

// FT_Create open flags.
const (
	OpenBySerialNumber uint32 = 0x00000001
	OpenByDescription  uint32 = 0x00000002
	OpenByLocation     uint32 = 0x00000004
	OpenByGUID         uint32 = 0x00000008
	OpenByIndex        uint32 = 0x00000010
)

// listNumberOnly asks FT_ListDevices for the device count without
// allocating per-device records.
const listNumberOnly uint32 = 0x80000000

// Reserved pipe addresses on interface 0. Data pipes live on interface 1.
const (
	ReservedPipeSession      uint8 = 0x01
	ReservedPipeNotification uint8 = 0x81
)

// Err is the numeric error type returned by the FTD3XX library.
//
// Use IsKnown() before converting a raw value; anything outside the fixed
// table means the linked library speaks a different protocol revision than
// this package.
type Err int

// Status codes as defined by FTD3XX. 0 is success and is never an error.
const (
	OK                             Err = 0
	InvalidHandle                  Err = 1
	DeviceNotFound                 Err = 2
	DeviceNotOpened                Err = 3
	IoError                        Err = 4
	InsufficientResources          Err = 5
	InvalidParameter               Err = 6
	InvalidBaudRate                Err = 7
	DeviceNotOpenedForErase        Err = 8
	DeviceNotOpenedForWrite        Err = 9
	FailedToWriteDevice            Err = 10
	EEPROMReadFailed               Err = 11
	EEPROMWriteFailed              Err = 12
	EEPROMEraseFailed              Err = 13
	EEPROMNotPresent               Err = 14
	EEPROMNotProgrammed            Err = 15
	InvalidArgs                    Err = 16
	NotSupported                   Err = 17
	NoMoreItems                    Err = 18
	Timeout                        Err = 19
	OperationAborted               Err = 20
	ReservedPipe                   Err = 21
	InvalidControlRequestDirection Err = 22
	InvalidControlRequestType      Err = 23
	IoPending                      Err = 24
	IoIncomplete                   Err = 25
	HandleEof                      Err = 26
	Busy                           Err = 27
	NoSystemResources              Err = 28
	DeviceListNotReady             Err = 29
	DeviceNotConnected             Err = 30
	IncorrectDevicePath            Err = 31
	OtherError                     Err = 32

	// LibraryLoadFailed is not a vendor status code. It is reported when the
	// FTD3XX library itself is unavailable in this build or on this host.
	LibraryLoadFailed Err = -1
)

var errStr = [...]string{
	"success",
	"invalid handle",
	"device not found",
	"device not opened",
	"I/O error",
	"insufficient resources",
	"invalid parameter",
	"invalid baud rate",
	"device not opened for erase",
	"device not opened for write",
	"failed to write device",
	"EEPROM read failed",
	"EEPROM write failed",
	"EEPROM erase failed",
	"EEPROM not present",
	"EEPROM not programmed",
	"invalid args",
	"not supported",
	"no more items",
	"timeout",
	"operation aborted",
	"reserved pipe",
	"invalid control request direction",
	"invalid control request type",
	"I/O pending",
	"I/O incomplete",
	"handle EOF",
	"busy",
	"no system resources",
	"device list not ready",
	"device not connected",
	"incorrect device path",
	"other error",
}

// IsKnown returns true if e is one of the statuses the linked library is
// expected to emit, including success.
func (e Err) IsKnown() bool {
	return (e >= OK && e <= OtherError) || e == LibraryLoadFailed
}

func (e Err) String() string {
	if e == LibraryLoadFailed {
		return "library load failed"
	}
	if e < OK || int(e) >= len(errStr) {
		return "unknown status " + strconv.Itoa(int(e))
	}
	return errStr[e]
}

// Error implements error so status constants can be used as sentinels with
// errors.Is().
func (e Err) Error() string {
	return e.String()
}

// DevInfo mirrors FT_DEVICE_LIST_INFO_NODE.
//
// SerialNumber and Description are NUL terminated byte buffers straight from
// the driver; they are not guaranteed to be well formed.
type DevInfo struct {
	Flags        uint32
	Type         uint32
	ID           uint32
	LocID        uint32
	SerialNumber [16]byte
	Description  [32]byte
	Handle       uintptr
}

// PipeInfo mirrors FT_PIPE_INFORMATION.
type PipeInfo struct {
	PipeType          int32
	PipeID            uint8
	MaximumPacketSize uint16
	Interval          uint8
}

// DeviceDescriptor mirrors FT_DEVICE_DESCRIPTOR, the standard 18 byte USB
// device descriptor.
type DeviceDescriptor struct {
	Length            uint8
	DescriptorType    uint8
	USB               uint16 // bcdUSB
	DeviceClass       uint8
	DeviceSubClass    uint8
	DeviceProtocol    uint8
	MaxPacketSize0    uint8
	VendorID          uint16
	ProductID         uint16
	Device            uint16 // bcdDevice
	Manufacturer      uint8  // string descriptor index
	Product           uint8  // string descriptor index
	SerialNumber      uint8  // string descriptor index
	NumConfigurations uint8
}

// Handle is the handle to an open FT60x device.
//
// Method names mirror the FT_ calls they wrap. No call is retried or
// translated here; every method returns the raw vendor status.
//
// The vendor library is not documented as re-entrant per handle; callers
// must serialize access themselves.
type Handle interface {
	Close() Err
	GetDriverVersion() (uint32, Err)
	GetVIDPID() (uint16, uint16, Err)
	ReadPipe(pipe uint8, b []byte) (int, Err)
	WritePipe(pipe uint8, b []byte) (int, Err)
	FlushPipe(pipe uint8) Err
	AbortPipe(pipe uint8) Err
	GetPipeInformation(iface, pipe uint8) (PipeInfo, Err)
	SetPipeTimeout(pipe uint8, ms uint32) Err
	GetPipeTimeout(pipe uint8) (uint32, Err)
	SetStreamPipe(pipe uint8, size uint32) Err
	ClearStreamPipe(pipe uint8) Err
	GetDeviceDescriptor() (DeviceDescriptor, Err)
	GetChipConfiguration(b []byte) Err
	SetChipConfiguration(b []byte) Err
	EnableGPIO(mask, direction uint32) Err
	WriteGPIO(mask, value uint32) Err
	ReadGPIO() (uint32, Err)
	CycleDevicePort() Err
	// Raw returns the native handle value, as it appears in DevInfo.Handle
	// of a fresh enumeration while this device is open.
	Raw() uintptr
}
