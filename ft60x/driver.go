// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import (
	"sync"

	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/ftd3xx/d3xx"
)

// All returns the FT60x devices found when the driver was initialized.
//
// The records are an enumeration snapshot taken at Init time; the devices
// are not held open. Use Open with a record's serial number to claim one,
// or ListDevices for a fresh snapshot.
func All() []DeviceInfo {
	drv.mu.Lock()
	defer drv.mu.Unlock()
	out := make([]DeviceInfo, len(drv.all))
	copy(out, drv.all)
	return out
}

// driver implements driver.Impl.
type driver struct {
	mu  sync.Mutex
	all []DeviceInfo

	// Mocked in tests.
	numDevices  func() (int, error)
	listDevices func() ([]DeviceInfo, error)
}

func (d *driver) String() string {
	return "ft60x"
}

func (d *driver) Prerequisites() []string {
	return nil
}

func (d *driver) After() []string {
	return nil
}

func (d *driver) Init() (bool, error) {
	num, err := d.numDevices()
	if err != nil {
		return true, err
	}
	if num == 0 {
		return true, nil
	}
	all, err := d.listDevices()
	d.mu.Lock()
	d.all = all
	d.mu.Unlock()
	return true, err
}

func (d *driver) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.all = nil
	d.numDevices = NumDevices
	d.listDevices = ListDevices
}

func init() {
	if d3xx.Available {
		drv.reset()
		driverreg.MustRegister(&drv)
	}
}

var drv driver
