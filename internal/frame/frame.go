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

// Package frame provides wire-layout constants and byte-stream scanning
// shared by the codec and the stream transports.
package frame

// Frame delimiters
const (
	Header byte = 0xAA // start of frame
	Footer byte = 0x55 // end of frame
)

// Layout sizes
const (
	// Overhead is every byte that is not payload:
	// header(1) + src(2) + dst(2) + seq(1) + len(1) + crc(2) + footer(1).
	Overhead = 10

	// MinLength is the size of a frame with an empty payload.
	MinLength = Overhead

	// MaxPayload is the largest payload representable by the one-byte
	// length field.
	MaxPayload = 255

	// MaxLength is the largest possible frame on the wire.
	MaxLength = Overhead + MaxPayload

	// LenOffset is the index of the payload length byte within a frame.
	LenOffset = 6
)

// Extract scans buf for the first complete frame and returns it along
// with the number of bytes consumed from the front of buf. The returned
// frame is a copy. When no complete frame is present yet, it returns
// (nil, n) where n is the count of leading bytes that can never start a
// frame and may be discarded; the caller should keep buf[n:] and append
// further reads to it. Extract validates only the delimiters and declared
// length; checksum verification belongs to the codec.
func Extract(buf []byte) (frm []byte, consumed int) {
	for i := 0; i < len(buf); i++ {
		if buf[i] != Header {
			continue
		}
		if len(buf)-i < LenOffset+1 {
			// Length byte not readable yet; wait for more data.
			return nil, i
		}
		total := Overhead + int(buf[i+LenOffset])
		if len(buf)-i < total {
			return nil, i
		}
		if buf[i+total-1] != Footer {
			// False start delimiter; keep scanning.
			continue
		}
		out := make([]byte, total)
		copy(out, buf[i:i+total])
		return out, i + total
	}
	return nil, len(buf)
}
