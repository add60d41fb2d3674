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

// SequenceTracker owns the wrapping 8-bit send counter for one local
// identity. It starts at 0, so the first encoded frame carries sequence 1.
// Only the encode path advances it; decoding received frames never does.
type SequenceTracker struct {
	current uint8
}

// Next advances the counter by one, wrapping from 255 to 0, and returns
// the new value. This is the only mutator.
func (t *SequenceTracker) Next() uint8 {
	t.current++
	return t.current
}

// Current returns the sequence number of the most recently encoded frame.
func (t *SequenceTracker) Current() uint8 {
	return t.current
}
