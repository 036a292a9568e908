// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import (
	"errors"
	"testing"
)

func TestDriver(t *testing.T) {
	defer drv.reset()
	drv.numDevices = func() (int, error) { return 1, nil }
	drv.listDevices = func() ([]DeviceInfo, error) {
		return []DeviceInfo{{Serial: "FT0AB001"}}, nil
	}
	if ok, err := drv.Init(); !ok || err != nil {
		t.Fatalf("got %t, %v", ok, err)
	}
	all := All()
	if len(all) != 1 || all[0].Serial != "FT0AB001" {
		t.Fatalf("got %v", all)
	}
	// All returns a copy; mutating it does not corrupt the snapshot.
	all[0].Serial = "clobbered"
	if All()[0].Serial != "FT0AB001" {
		t.Fatal("snapshot corrupted")
	}
}

func TestDriverNoDevices(t *testing.T) {
	defer drv.reset()
	drv.numDevices = func() (int, error) { return 0, nil }
	drv.listDevices = func() ([]DeviceInfo, error) {
		t.Fatal("no enumeration when no device is attached")
		return nil, nil
	}
	if ok, err := drv.Init(); !ok || err != nil {
		t.Fatalf("got %t, %v", ok, err)
	}
	if all := All(); len(all) != 0 {
		t.Fatalf("got %v", all)
	}
}

func TestDriverErr(t *testing.T) {
	defer drv.reset()
	fail := errors.New("injected")
	drv.numDevices = func() (int, error) { return 0, fail }
	if ok, err := drv.Init(); !ok || err != fail {
		t.Fatalf("got %t, %v", ok, err)
	}
}

func TestDriverName(t *testing.T) {
	if s := drv.String(); s != "ft60x" {
		t.Fatalf("got %q", s)
	}
	if drv.Prerequisites() != nil || drv.After() != nil {
		t.Fatal("no dependency on other drivers")
	}
}
