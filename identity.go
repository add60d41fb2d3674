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

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// DeviceID is the 16-bit identity of a node on the link. It is assigned
// when the Link is constructed and is immutable for the node's lifetime.
type DeviceID uint16

// Broadcast is the reserved destination accepted by every receiver.
// Broadcast frames are never acknowledged.
const Broadcast DeviceID = 0xFFFF

func (id DeviceID) String() string {
	return fmt.Sprintf("0x%04X", uint16(id))
}

// IdentityGenerator produces a device identity when none is configured
// explicitly. Tests can inject a deterministic generator.
type IdentityGenerator func() (DeviceID, error)

// RandomIdentity generates a device identity from crypto/rand, avoiding
// the reserved broadcast value.
func RandomIdentity() (DeviceID, error) {
	var buf [2]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("generate device identity: %w", err)
		}
		id := DeviceID(binary.BigEndian.Uint16(buf[:]))
		if id != Broadcast {
			return id, nil
		}
	}
}
