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

package loralink

import "github.com/sigurn/crc16"

// ChecksumFunc computes a 16-bit checksum over a byte range. It must be a
// pure function of its input: deterministic, no hidden state. The same
// function is used to embed a checksum on encode and to verify it on
// decode; the codec never accepts a caller-supplied checksum value.
type ChecksumFunc func(data []byte) uint16

// crcTable is the CRC-16/CCITT-FALSE table (poly 0x1021, init 0xFFFF).
// Both ends of a link must agree on the variant.
var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// CRC16CCITTFalse is the default frame checksum. It detects all single-bit
// and two-bit errors and all burst errors up to 16 bits.
func CRC16CCITTFalse(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}
