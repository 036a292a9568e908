// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import "testing"

func TestDecodeVersion(t *testing.T) {
	data := []struct {
		raw uint32
		v   Version
		s   string
	}{
		{0x01000016, Version{1, 0, 0, 22}, "1.0.0.22"},
		{0x0102030a, Version{1, 2, 3, 10}, "1.2.3.10"},
		{0x00000000, Version{0, 0, 0, 0}, "0.0.0.0"},
		{0xffffffff, Version{255, 255, 255, 255}, "255.255.255.255"},
	}
	for _, line := range data {
		if v := DecodeVersion(line.raw); v != line.v {
			t.Fatalf("DecodeVersion(%#08x) = %+v; want %+v", line.raw, v, line.v)
		}
		if s := line.v.String(); s != line.s {
			t.Fatalf("%+v.String() = %q; want %q", line.v, s, line.s)
		}
	}
}
