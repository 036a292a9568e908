// Copyright 2023 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ft60x

import "strconv"

// Version is a decoded D3XX driver or library version number.
type Version struct {
	Major uint8
	Minor uint8
	SVN   uint8
	Build uint8
}

// DecodeVersion unpacks the packed 32-bit version number used by the D3XX
// library: major in bits 31..24, minor in 23..16, svn in 15..8, build in
// 7..0.
func DecodeVersion(raw uint32) Version {
	return Version{
		Major: uint8(raw >> 24),
		Minor: uint8(raw >> 16),
		SVN:   uint8(raw >> 8),
		Build: uint8(raw),
	}
}

func (v Version) String() string {
	return strconv.Itoa(int(v.Major)) + "." + strconv.Itoa(int(v.Minor)) + "." +
		strconv.Itoa(int(v.SVN)) + "." + strconv.Itoa(int(v.Build))
}
