// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !cgo

package d3xx

// Available is true when the FTD3XX library is linked into the binary.
const Available = false

// NumDevices returns the number of attached devices without building the
// per-device info list.
func NumDevices() (int, Err) {
	return 0, LibraryLoadFailed
}

// CreateDeviceInfoList asks the driver to rebuild its internal device list
// and returns the number of entries.
func CreateDeviceInfoList() (int, Err) {
	return 0, LibraryLoadFailed
}

// GetDeviceInfoList fetches up to n fixed-layout device records in one call.
func GetDeviceInfoList(n int) ([]DevInfo, Err) {
	return nil, LibraryLoadFailed
}

// Create opens a device by serial number.
func Create(serial string) (Handle, Err) {
	return nil, LibraryLoadFailed
}

// CreateByIndex opens the i-th device of the current device info list.
func CreateByIndex(i int) (Handle, Err) {
	return nil, LibraryLoadFailed
}

// LibraryVersion returns the packed version number of the loaded library.
func LibraryVersion() (uint32, Err) {
	return 0, LibraryLoadFailed
}
