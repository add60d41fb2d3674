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
	"encoding/binary"

	"github.com/loralink-project/go-loralink/internal/frame"
)

// Wire layout constants. Multi-byte fields are big-endian.
//
//	[0xAA][src:2][dst:2][seq:1][len:1][payload:len][crc:2][0x55]
const (
	FrameHeader byte = frame.Header
	FrameFooter byte = frame.Footer

	// MaxPayloadSize is the largest payload a single frame can carry.
	MaxPayloadSize = frame.MaxPayload

	// MinFrameSize is the on-wire size of a frame with an empty payload.
	MinFrameSize = frame.MinLength
)

// Field offsets within an encoded frame.
const (
	srcOffset     = 1
	dstOffset     = 3
	seqOffset     = 5
	lenOffset     = frame.LenOffset
	payloadOffset = 7
)

// ackMarker is the first payload byte of an acknowledgment frame. An ACK
// payload is exactly [ackMarker, ackedSeq].
const ackMarker byte = 0x06

// Frame is one decoded unit of transmission. It is a value type: once
// built it has no shared mutable state and can be freely copied.
type Frame struct {
	Payload     []byte
	Source      DeviceID
	Destination DeviceID
	Seq         uint8
}

// IsAck reports whether the frame follows the acknowledgment payload
// convention. Data payloads of exactly two bytes starting with 0x06 are
// reserved for ACKs and must not be sent as application data.
func (f *Frame) IsAck() bool {
	return len(f.Payload) == 2 && f.Payload[0] == ackMarker
}

// AckedSeq returns the sequence number this frame acknowledges. ok is
// false when the frame is not an ACK.
func (f *Frame) AckedSeq() (seq uint8, ok bool) {
	if !f.IsAck() {
		return 0, false
	}
	return f.Payload[1], true
}

// Codec serializes outbound frames for one local identity and validates
// inbound frames. It owns the identity's SequenceTracker: every Encode
// advances the counter, Decode never touches it.
//
// Codec is not safe for concurrent use; give each goroutine (or each
// peer) its own instance.
type Codec struct {
	checksum ChecksumFunc
	seq      SequenceTracker
	source   DeviceID
}

// NewCodec creates a codec for the given local identity. A nil checksum
// selects CRC16CCITTFalse.
func NewCodec(source DeviceID, checksum ChecksumFunc) *Codec {
	if checksum == nil {
		checksum = CRC16CCITTFalse
	}
	return &Codec{source: source, checksum: checksum}
}

// Source returns the local identity frames are encoded with.
func (c *Codec) Source() DeviceID {
	return c.source
}

// Sequence exposes the send counter, mainly for inspection in tests.
func (c *Codec) Sequence() *SequenceTracker {
	return &c.seq
}

// Encode builds a complete wire frame carrying payload to dst. It
// advances the sequence counter before building, so the emitted sequence
// number is the new value. Payloads over MaxPayloadSize fail with
// ErrPayloadTooLarge before any counter movement or I/O.
func (c *Codec) Encode(dst DeviceID, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, ErrPayloadTooLarge
	}

	seq := c.seq.Next()

	buf := make([]byte, 0, frame.Overhead+len(payload))
	buf = append(buf, FrameHeader)
	buf = binary.BigEndian.AppendUint16(buf, uint16(c.source))
	buf = binary.BigEndian.AppendUint16(buf, uint16(dst))
	buf = append(buf, seq, byte(len(payload)))
	buf = append(buf, payload...)

	// CRC covers src through payload, excluding both delimiters.
	crc := c.checksum(buf[srcOffset:])
	buf = binary.BigEndian.AppendUint16(buf, crc)
	buf = append(buf, FrameFooter)

	return buf, nil
}

// EncodeAck builds an acknowledgment for sequence number ackedSeq,
// addressed to dst (the acknowledged frame's source). The ACK consumes a
// sequence number of its own like any other frame.
func (c *Codec) EncodeAck(dst DeviceID, ackedSeq uint8) ([]byte, error) {
	return c.Encode(dst, []byte{ackMarker, ackedSeq})
}

// Decode parses and validates raw as a single complete frame. It returns
// nil, never an error, when raw is shorter than MinFrameSize, is not
// bracketed by the frame delimiters, declares a payload length that does
// not match the buffer, or fails the checksum. A continuous receive loop
// can therefore keep scanning without error plumbing.
func (c *Codec) Decode(raw []byte) *Frame {
	if len(raw) < MinFrameSize {
		return nil
	}
	if raw[0] != FrameHeader || raw[len(raw)-1] != FrameFooter {
		return nil
	}

	payloadLen := int(raw[lenOffset])
	if len(raw) != frame.Overhead+payloadLen {
		return nil
	}

	crcEnd := payloadOffset + payloadLen
	want := binary.BigEndian.Uint16(raw[crcEnd : crcEnd+2])
	if c.checksum(raw[srcOffset:crcEnd]) != want {
		return nil
	}

	payload := make([]byte, payloadLen)
	copy(payload, raw[payloadOffset:crcEnd])

	return &Frame{
		Source:      DeviceID(binary.BigEndian.Uint16(raw[srcOffset:])),
		Destination: DeviceID(binary.BigEndian.Uint16(raw[dstOffset:])),
		Seq:         raw[seqOffset],
		Payload:     payload,
	}
}
