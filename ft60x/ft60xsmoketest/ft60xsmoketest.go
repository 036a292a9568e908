// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ft60xsmoketest is leveraged by periph-smoketest to verify that a
// FT600/FT601 is working as expected.
//
// The device must run a FIFO loopback, echoing everything written to the
// first OUT pipe back on the first IN pipe.
package ft60xsmoketest

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"periph.io/x/ftd3xx/ft60x"
)

// SmokeTest is imported by periph-smoketest.
type SmokeTest struct {
}

// Name implements the SmokeTest interface.
func (s *SmokeTest) Name() string {
	return "ft60x"
}

// Description implements the SmokeTest interface.
func (s *SmokeTest) Description() string {
	return "Tests FT600/FT601 over a FIFO loopback"
}

// Run implements the SmokeTest interface.
func (s *SmokeTest) Run(f *flag.FlagSet, args []string) error {
	serial := f.String("serial", "", "Serial number of the device to test; defaults to the only attached device")
	size := f.Int("size", 1024*1024, "Payload size in bytes for the throughput test")
	if err := f.Parse(args); err != nil {
		return err
	}
	if f.NArg() != 0 {
		f.Usage()
		return errors.New("unrecognized arguments")
	}

	if *serial == "" {
		all := ft60x.All()
		if len(all) != 1 {
			return fmt.Errorf("exactly one device is expected, got %d; use -serial", len(all))
		}
		*serial = all[0].Serial
	}
	d, err := ft60x.Open(*serial)
	if err != nil {
		return err
	}
	defer d.Close()

	fmt.Printf("  Library: %s\n", ft60x.LibraryVersion())
	if v, err := d.DriverVersion(); err == nil {
		fmt.Printf("  Driver:  %s\n", v)
	}
	if err := infoTest(d); err != nil {
		return err
	}
	if err := timeoutTest(d); err != nil {
		return err
	}
	if err := loopbackTest(d); err != nil {
		return err
	}
	return throughputTest(d, *size)
}

func infoTest(d *ft60x.Dev) error {
	fmt.Printf("  Pipes:\n")
	for _, p := range ft60x.Pipes {
		pi, err := d.PipeInfo(p)
		if err != nil {
			return err
		}
		fmt.Printf("    %s: %s, %d bytes/packet\n", p, pi.Type, pi.MaxPacketSize)
	}
	desc, err := d.DeviceDescriptor()
	if err != nil {
		return err
	}
	fmt.Printf("  USB %x.%02x %04x:%04x\n", desc.USB>>8, desc.USB&0xff, desc.VendorID, desc.ProductID)
	return nil
}

func timeoutTest(d *ft60x.Dev) error {
	if err := d.SetTimeout(ft60x.PipeIn0, 2*time.Second); err != nil {
		return err
	}
	to, err := d.Timeout(ft60x.PipeIn0)
	if err != nil {
		return err
	}
	if to != 2*time.Second {
		return fmt.Errorf("timeout did not stick: %s", to)
	}
	return nil
}

// loopbackTest writes a random payload and expects it echoed back verbatim.
func loopbackTest(d *ft60x.Dev) error {
	fmt.Printf("  Loopback:\n")
	want := make([]byte, 4096)
	rand.New(rand.NewSource(time.Now().UnixNano())).Read(want)
	if _, err := d.Write(ft60x.PipeOut0, want); err != nil {
		return err
	}
	got := make([]byte, len(want))
	n, err := d.Read(ft60x.PipeIn0, got)
	if err != nil {
		return err
	}
	if n != len(want) || !bytes.Equal(got[:n], want) {
		return fmt.Errorf("loopback corrupted %d bytes", len(want))
	}
	fmt.Printf("    %d bytes OK\n", len(want))
	return nil
}

// throughputTest measures sustained streamed transfer rates through the
// loopback.
func throughputTest(d *ft60x.Dev, size int) error {
	fmt.Printf("  Throughput (%d bytes):\n", size)
	b := make([]byte, size)
	start := time.Now()
	if _, err := d.WriteStream(ft60x.PipeOut0, b); err != nil {
		return err
	}
	s := time.Since(start)
	fmt.Printf("    write: %s; %.1f MB/s\n", s, rate(size, s))
	start = time.Now()
	if _, err := d.ReadStream(ft60x.PipeIn0, b); err != nil {
		return err
	}
	s = time.Since(start)
	fmt.Printf("    read:  %s; %.1f MB/s\n", s, rate(size, s))
	return nil
}

func rate(size int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(size) / d.Seconds() / 1e6
}
