// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build cgo

package d3xx

/*
#cgo LDFLAGS: -lftd3xx

#include <stdlib.h>

// Declarations for the FTD3XX entry points used by this package. The vendor
// header is not redistributable, so the prototypes are declared here, using
// the fixed 32-bit field widths of the published ABI.
typedef unsigned int FT_STATUS;
typedef void*        FT_HANDLE;

typedef struct {
	unsigned int  Flags;
	unsigned int  Type;
	unsigned int  ID;
	unsigned int  LocId;
	char          SerialNumber[16];
	char          Description[32];
	FT_HANDLE     ftHandle;
} FT_DEVICE_LIST_INFO_NODE;

typedef struct {
	int            PipeType;
	unsigned char  PipeId;
	unsigned short MaximumPacketSize;
	unsigned char  Interval;
} FT_PIPE_INFORMATION;

typedef struct {
	unsigned char  bLength;
	unsigned char  bDescriptorType;
	unsigned short bcdUSB;
	unsigned char  bDeviceClass;
	unsigned char  bDeviceSubClass;
	unsigned char  bDeviceProtocol;
	unsigned char  bMaxPacketSize0;
	unsigned short idVendor;
	unsigned short idProduct;
	unsigned short bcdDevice;
	unsigned char  iManufacturer;
	unsigned char  iProduct;
	unsigned char  iSerialNumber;
	unsigned char  bNumConfigurations;
} FT_DEVICE_DESCRIPTOR;

extern FT_STATUS FT_ListDevices(void* pArg1, void* pArg2, unsigned int flags);
extern FT_STATUS FT_CreateDeviceInfoList(unsigned int* lpdwNumDevs);
extern FT_STATUS FT_GetDeviceInfoList(FT_DEVICE_LIST_INFO_NODE* ptDest, unsigned int* lpdwNumDevs);
extern FT_STATUS FT_Create(void* pvArg, unsigned int dwFlags, FT_HANDLE* pftHandle);
extern FT_STATUS FT_Close(FT_HANDLE ftHandle);
extern FT_STATUS FT_GetDriverVersion(FT_HANDLE ftHandle, unsigned int* lpdwVersion);
extern FT_STATUS FT_GetLibraryVersion(unsigned int* lpdwVersion);
extern FT_STATUS FT_GetVIDPID(FT_HANDLE ftHandle, unsigned short* puwVID, unsigned short* puwPID);
extern FT_STATUS FT_ReadPipeEx(FT_HANDLE ftHandle, unsigned char ucPipeID, unsigned char* pucBuffer, unsigned int ulBufferLength, unsigned int* pulBytesTransferred, void* pOverlapped);
extern FT_STATUS FT_WritePipeEx(FT_HANDLE ftHandle, unsigned char ucPipeID, unsigned char* pucBuffer, unsigned int ulBufferLength, unsigned int* pulBytesTransferred, void* pOverlapped);
extern FT_STATUS FT_FlushPipe(FT_HANDLE ftHandle, unsigned char ucPipeID);
extern FT_STATUS FT_AbortPipe(FT_HANDLE ftHandle, unsigned char ucPipeID);
extern FT_STATUS FT_GetPipeInformation(FT_HANDLE ftHandle, unsigned char ucInterfaceIndex, unsigned char ucPipeIndex, FT_PIPE_INFORMATION* pPipeInformation);
extern FT_STATUS FT_SetPipeTimeout(FT_HANDLE ftHandle, unsigned char ucPipeID, unsigned int ulTimeoutInMs);
extern FT_STATUS FT_GetPipeTimeout(FT_HANDLE ftHandle, unsigned char ucPipeID, unsigned int* pulTimeoutInMs);
extern FT_STATUS FT_SetStreamPipe(FT_HANDLE ftHandle, unsigned char bAllWritePipes, unsigned char bAllReadPipes, unsigned char ucPipeID, unsigned int ulStreamSize);
extern FT_STATUS FT_ClearStreamPipe(FT_HANDLE ftHandle, unsigned char bAllWritePipes, unsigned char bAllReadPipes, unsigned char ucPipeID);
extern FT_STATUS FT_GetDeviceDescriptor(FT_HANDLE ftHandle, FT_DEVICE_DESCRIPTOR* pDescriptor);
extern FT_STATUS FT_GetChipConfiguration(FT_HANDLE ftHandle, void* pConfiguration);
extern FT_STATUS FT_SetChipConfiguration(FT_HANDLE ftHandle, void* pConfiguration);
extern FT_STATUS FT_EnableGPIO(FT_HANDLE ftHandle, unsigned int ulMask, unsigned int ulDirection);
extern FT_STATUS FT_WriteGPIO(FT_HANDLE ftHandle, unsigned int ulMask, unsigned int ulData);
extern FT_STATUS FT_ReadGPIO(FT_HANDLE ftHandle, unsigned int* pulData);
extern FT_STATUS FT_CycleDevicePort(FT_HANDLE ftHandle);
*/
import "C"
import "unsafe"

// Available is true when the FTD3XX library is linked into the binary.
const Available = true

// NumDevices returns the number of attached devices without building the
// per-device info list.
func NumDevices() (int, Err) {
	var n C.uint
	st := C.FT_ListDevices(unsafe.Pointer(&n), nil, C.uint(listNumberOnly))
	return int(n), Err(st)
}

// CreateDeviceInfoList asks the driver to rebuild its internal device list
// and returns the number of entries.
func CreateDeviceInfoList() (int, Err) {
	var n C.uint
	st := C.FT_CreateDeviceInfoList(&n)
	return int(n), Err(st)
}

// GetDeviceInfoList fetches up to n fixed-layout device records in one call.
//
// CreateDeviceInfoList must have been called first.
func GetDeviceInfoList(n int) ([]DevInfo, Err) {
	if n <= 0 {
		return nil, OK
	}
	if n > MaxDevices {
		n = MaxDevices
	}
	nodes := make([]C.FT_DEVICE_LIST_INFO_NODE, n)
	num := C.uint(n)
	if st := C.FT_GetDeviceInfoList(&nodes[0], &num); st != 0 {
		return nil, Err(st)
	}
	if int(num) < n {
		n = int(num)
	}
	out := make([]DevInfo, n)
	for i := range out {
		out[i] = DevInfo{
			Flags:  uint32(nodes[i].Flags),
			Type:   uint32(nodes[i].Type),
			ID:     uint32(nodes[i].ID),
			LocID:  uint32(nodes[i].LocId),
			Handle: uintptr(nodes[i].ftHandle),
		}
		for j := range out[i].SerialNumber {
			out[i].SerialNumber[j] = byte(nodes[i].SerialNumber[j])
		}
		for j := range out[i].Description {
			out[i].Description[j] = byte(nodes[i].Description[j])
		}
	}
	return out, OK
}

// Create opens a device by serial number.
//
// The serial must already be validated: no embedded NUL, small enough to fit
// the 16 byte device buffer.
func Create(serial string) (Handle, Err) {
	cs := C.CString(serial)
	defer C.free(unsafe.Pointer(cs))
	var h C.FT_HANDLE
	if st := C.FT_Create(unsafe.Pointer(cs), C.uint(OpenBySerialNumber), &h); st != 0 {
		return nil, Err(st)
	}
	return handle(uintptr(h)), OK
}

// CreateByIndex opens the i-th device of the current device info list.
func CreateByIndex(i int) (Handle, Err) {
	arg := C.uint(i)
	var h C.FT_HANDLE
	if st := C.FT_Create(unsafe.Pointer(uintptr(arg)), C.uint(OpenByIndex), &h); st != 0 {
		return nil, Err(st)
	}
	return handle(uintptr(h)), OK
}

// LibraryVersion returns the packed version number of the loaded library.
func LibraryVersion() (uint32, Err) {
	var v C.uint
	st := C.FT_GetLibraryVersion(&v)
	return uint32(v), Err(st)
}

// handle implements Handle on top of the native FT_HANDLE value.
type handle uintptr

func (h handle) c() C.FT_HANDLE {
	return C.FT_HANDLE(unsafe.Pointer(uintptr(h)))
}

func (h handle) Close() Err {
	return Err(C.FT_Close(h.c()))
}

func (h handle) GetDriverVersion() (uint32, Err) {
	var v C.uint
	st := C.FT_GetDriverVersion(h.c(), &v)
	return uint32(v), Err(st)
}

func (h handle) GetVIDPID() (uint16, uint16, Err) {
	var vid, pid C.ushort
	st := C.FT_GetVIDPID(h.c(), &vid, &pid)
	return uint16(vid), uint16(pid), Err(st)
}

func (h handle) ReadPipe(pipe uint8, b []byte) (int, Err) {
	if len(b) == 0 {
		return 0, OK
	}
	var n C.uint
	st := C.FT_ReadPipeEx(h.c(), C.uchar(pipe), (*C.uchar)(unsafe.Pointer(&b[0])), C.uint(len(b)), &n, nil)
	return int(n), Err(st)
}

func (h handle) WritePipe(pipe uint8, b []byte) (int, Err) {
	if len(b) == 0 {
		return 0, OK
	}
	var n C.uint
	st := C.FT_WritePipeEx(h.c(), C.uchar(pipe), (*C.uchar)(unsafe.Pointer(&b[0])), C.uint(len(b)), &n, nil)
	return int(n), Err(st)
}

func (h handle) FlushPipe(pipe uint8) Err {
	return Err(C.FT_FlushPipe(h.c(), C.uchar(pipe)))
}

func (h handle) AbortPipe(pipe uint8) Err {
	return Err(C.FT_AbortPipe(h.c(), C.uchar(pipe)))
}

func (h handle) GetPipeInformation(iface, pipe uint8) (PipeInfo, Err) {
	var pi C.FT_PIPE_INFORMATION
	if st := C.FT_GetPipeInformation(h.c(), C.uchar(iface), C.uchar(pipe), &pi); st != 0 {
		return PipeInfo{}, Err(st)
	}
	return PipeInfo{
		PipeType:          int32(pi.PipeType),
		PipeID:            uint8(pi.PipeId),
		MaximumPacketSize: uint16(pi.MaximumPacketSize),
		Interval:          uint8(pi.Interval),
	}, OK
}

func (h handle) SetPipeTimeout(pipe uint8, ms uint32) Err {
	return Err(C.FT_SetPipeTimeout(h.c(), C.uchar(pipe), C.uint(ms)))
}

func (h handle) GetPipeTimeout(pipe uint8) (uint32, Err) {
	var ms C.uint
	st := C.FT_GetPipeTimeout(h.c(), C.uchar(pipe), &ms)
	return uint32(ms), Err(st)
}

func (h handle) SetStreamPipe(pipe uint8, size uint32) Err {
	return Err(C.FT_SetStreamPipe(h.c(), 0, 0, C.uchar(pipe), C.uint(size)))
}

func (h handle) ClearStreamPipe(pipe uint8) Err {
	return Err(C.FT_ClearStreamPipe(h.c(), 0, 0, C.uchar(pipe)))
}

func (h handle) GetDeviceDescriptor() (DeviceDescriptor, Err) {
	var d C.FT_DEVICE_DESCRIPTOR
	if st := C.FT_GetDeviceDescriptor(h.c(), &d); st != 0 {
		return DeviceDescriptor{}, Err(st)
	}
	return DeviceDescriptor{
		Length:            uint8(d.bLength),
		DescriptorType:    uint8(d.bDescriptorType),
		USB:               uint16(d.bcdUSB),
		DeviceClass:       uint8(d.bDeviceClass),
		DeviceSubClass:    uint8(d.bDeviceSubClass),
		DeviceProtocol:    uint8(d.bDeviceProtocol),
		MaxPacketSize0:    uint8(d.bMaxPacketSize0),
		VendorID:          uint16(d.idVendor),
		ProductID:         uint16(d.idProduct),
		Device:            uint16(d.bcdDevice),
		Manufacturer:      uint8(d.iManufacturer),
		Product:           uint8(d.iProduct),
		SerialNumber:      uint8(d.iSerialNumber),
		NumConfigurations: uint8(d.bNumConfigurations),
	}, OK
}

func (h handle) GetChipConfiguration(b []byte) Err {
	if len(b) == 0 {
		return InvalidParameter
	}
	return Err(C.FT_GetChipConfiguration(h.c(), unsafe.Pointer(&b[0])))
}

func (h handle) SetChipConfiguration(b []byte) Err {
	if len(b) == 0 {
		return InvalidParameter
	}
	return Err(C.FT_SetChipConfiguration(h.c(), unsafe.Pointer(&b[0])))
}

func (h handle) EnableGPIO(mask, direction uint32) Err {
	return Err(C.FT_EnableGPIO(h.c(), C.uint(mask), C.uint(direction)))
}

func (h handle) WriteGPIO(mask, value uint32) Err {
	return Err(C.FT_WriteGPIO(h.c(), C.uint(mask), C.uint(value)))
}

func (h handle) ReadGPIO() (uint32, Err) {
	var v C.uint
	st := C.FT_ReadGPIO(h.c(), &v)
	return uint32(v), Err(st)
}

func (h handle) CycleDevicePort() Err {
	return Err(C.FT_CycleDevicePort(h.c()))
}

func (h handle) Raw() uintptr {
	return uintptr(h)
}

var _ Handle = handle(0)
