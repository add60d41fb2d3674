// go-loralink
// Copyright (c) 2026 The LoraLink Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-loralink.
//
// go-loralink is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-loralink is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-loralink; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package frame

import "sync"

// bufPool recycles max-size read buffers for transports that poll the
// radio with fixed-size reads.
var bufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, MaxLength)
		return &buf
	},
}

// GetBuffer returns a zeroed buffer of length n, n <= MaxLength.
func GetBuffer(n int) []byte {
	buf := *bufPool.Get().(*[]byte)
	buf = buf[:n]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// PutBuffer returns a buffer obtained from GetBuffer to the pool.
func PutBuffer(buf []byte) {
	if cap(buf) < MaxLength {
		return
	}
	buf = buf[:MaxLength]
	bufPool.Put(&buf)
}
