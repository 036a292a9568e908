// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// FT60x GPIO0/GPIO1 exposed as periph gpio pins.

package ft60x

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/ftd3xx/d3xx"
)

// EnableGPIO enables the chip's GPIO pins. Bit n of mask selects pin n, bit
// n of direction makes it an output.
//
// It must be called before using GPIO0 or GPIO1.
func (d *Dev) EnableGPIO(mask, direction uint32) error {
	h, err := d.handle()
	if err != nil {
		return err
	}
	if err := toErr("EnableGPIO", h.h.EnableGPIO(mask, direction)); err != nil {
		return err
	}
	d.mu.Lock()
	d.gpioDir = (d.gpioDir &^ mask) | (direction & mask)
	d.mu.Unlock()
	return nil
}

// gpioPin is one of the two general purpose pins on a FT60x.
//
// It implements gpio.PinIO.
type gpioPin struct {
	d    *Dev
	num  int
	name string
}

// String implements pin.Pin.
func (p *gpioPin) String() string {
	return p.name
}

// Name implements pin.Pin.
func (p *gpioPin) Name() string {
	return p.name
}

// Number implements pin.Pin.
func (p *gpioPin) Number() int {
	return p.num
}

// Function implements pin.Pin.
func (p *gpioPin) Function() string {
	p.d.mu.Lock()
	out := p.d.gpioDir&p.mask() != 0
	p.d.mu.Unlock()
	if out {
		return "Out/" + gpio.Level(p.Read()).String()
	}
	return "In/" + p.Read().String()
}

// Halt implements gpio.PinIO.
func (p *gpioPin) Halt() error {
	return nil
}

// In implements gpio.PinIn.
func (p *gpioPin) In(pull gpio.Pull, e gpio.Edge) error {
	if e != gpio.NoEdge {
		return errors.New("ft60x: edge detection is not supported")
	}
	if pull != gpio.PullNoChange && pull != gpio.Float {
		return errors.New("ft60x: pull is configured in the chip configuration record")
	}
	return p.d.EnableGPIO(p.mask(), 0)
}

// Read implements gpio.PinIn.
func (p *gpioPin) Read() gpio.Level {
	h, err := p.d.handle()
	if err != nil {
		return gpio.Low
	}
	v, e := h.h.ReadGPIO()
	if e != d3xx.OK {
		return gpio.Low
	}
	return v&p.mask() != 0
}

// WaitForEdge implements gpio.PinIn.
func (p *gpioPin) WaitForEdge(t time.Duration) bool {
	return false
}

// Pull implements gpio.PinIn.
func (p *gpioPin) Pull() gpio.Pull {
	return gpio.PullNoChange
}

// DefaultPull implements gpio.PinIn.
func (p *gpioPin) DefaultPull() gpio.Pull {
	return gpio.PullNoChange
}

// Out implements gpio.PinOut.
func (p *gpioPin) Out(l gpio.Level) error {
	p.d.mu.Lock()
	out := p.d.gpioDir&p.mask() != 0
	p.d.mu.Unlock()
	if !out {
		if err := p.d.EnableGPIO(p.mask(), p.mask()); err != nil {
			return err
		}
	}
	h, err := p.d.handle()
	if err != nil {
		return err
	}
	v := uint32(0)
	if l {
		v = p.mask()
	}
	return toErr("WriteGPIO", h.h.WriteGPIO(p.mask(), v))
}

// PWM implements gpio.PinOut.
func (p *gpioPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("ft60x: PWM is not supported")
}

func (p *gpioPin) mask() uint32 {
	return 1 << uint(p.num)
}

var _ gpio.PinIO = &gpioPin{}
