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

/*
Package loralink implements a link-layer framing and reliability protocol
for LoRa packet radios.

The package wraps arbitrary payloads into addressed, sequenced,
CRC-protected frames, parses frames back out of noisy byte streams, and
provides a stop-and-wait ARQ so a sender can retransmit unacknowledged
frames a bounded number of times. The physical radio is abstracted behind
a small Transport interface, so the same protocol runs over a serial LoRa
modem, an I2C radio bridge, or an in-memory mock.

Wire Format:

Every frame uses a fixed, versionless layout with big-endian multi-byte
fields:

	[0xAA][source:2][dest:2][seq:1][len:1][payload:0-255][crc16:2][0x55]

The CRC-16 (CCITT-FALSE by default) covers every byte from the source ID
through the end of the payload. A frame either parses and verifies in full
or is rejected; there is no partially valid frame.

Basic Usage:

	import (
	    "github.com/loralink-project/go-loralink"
	    "github.com/loralink-project/go-loralink/transport/uart"
	)

	// Open a serial LoRa modem
	transport, err := uart.New("/dev/ttyUSB0")
	if err != nil {
	    log.Fatal(err)
	}
	defer transport.Close()

	// Create a link endpoint with a fixed identity
	link, err := loralink.New(transport,
	    loralink.WithDeviceID(0x1234),
	    loralink.WithAckTimeout(2*time.Second),
	    loralink.WithMaxRetries(3),
	)
	if err != nil {
	    log.Fatal(err)
	}

	// Reliable delivery: transmits, waits for an ACK, retries on timeout
	if err := link.Send(0x5678, []byte("hello")); err != nil {
	    log.Fatal(err)
	}

	// Receive side: frames addressed to us are validated, de-duplicated
	// and acknowledged automatically
	frame, err := link.Receive(5 * time.Second)

Acknowledgments:

An ACK is an ordinary frame whose two-byte payload is the marker 0x06
followed by the acknowledged sequence number, addressed back to the data
frame's source. Both directions of the convention are implemented by
Codec.EncodeAck and Frame.AckedSeq, so two endpoints using this package
interoperate without further agreement.

Error Handling:

All operations return inspectable errors:

	if errors.Is(err, loralink.ErrRetriesExhausted) {
	    // peer never acknowledged
	}

Malformed or corrupted inbound frames are never surfaced as errors; Decode
returns nil and receive loops keep scanning.

Thread Safety:

A Link is a single logical thread of control. Methods must be called from
one goroutine or be externally synchronized; use one Link per local
identity. Listener runs its own receive goroutine and owns its Link while
running.
*/
package loralink
