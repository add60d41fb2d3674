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

import (
	"bytes"
	"testing"
)

// buildFrame assembles a syntactically complete frame with a dummy CRC.
// Extract does not verify checksums, only delimiters and length.
func buildFrame(payload []byte) []byte {
	buf := []byte{Header, 0x12, 0x34, 0x56, 0x78, 0x01, byte(len(payload))}
	buf = append(buf, payload...)
	buf = append(buf, 0xCA, 0xFE, Footer)
	return buf
}

func TestExtract(t *testing.T) {
	t.Parallel()

	valid := buildFrame([]byte("hello"))

	tests := []struct {
		name         string
		buf          []byte
		wantFrame    []byte
		wantConsumed int
	}{
		{
			name:         "empty buffer",
			buf:          nil,
			wantFrame:    nil,
			wantConsumed: 0,
		},
		{
			name:         "pure junk is consumed",
			buf:          []byte{0x01, 0x02, 0x03},
			wantFrame:    nil,
			wantConsumed: 3,
		},
		{
			name:         "exact frame",
			buf:          valid,
			wantFrame:    valid,
			wantConsumed: len(valid),
		},
		{
			name:         "junk before frame",
			buf:          append([]byte{0x00, 0xFF, 0x13}, valid...),
			wantFrame:    valid,
			wantConsumed: 3 + len(valid),
		},
		{
			name:         "incomplete header region waits",
			buf:          valid[:4],
			wantFrame:    nil,
			wantConsumed: 0,
		},
		{
			name:         "incomplete payload waits",
			buf:          valid[:len(valid)-2],
			wantFrame:    nil,
			wantConsumed: 0,
		},
		{
			name:         "junk then partial frame keeps partial",
			buf:          append([]byte{0x42}, valid[:6]...),
			wantFrame:    nil,
			wantConsumed: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			frm, consumed := Extract(tt.buf)
			if !bytes.Equal(frm, tt.wantFrame) {
				t.Errorf("Extract() frame = %x, want %x", frm, tt.wantFrame)
			}
			if consumed != tt.wantConsumed {
				t.Errorf("Extract() consumed = %d, want %d", consumed, tt.wantConsumed)
			}
		})
	}
}

func TestExtract_ResyncsPastFalseHeader(t *testing.T) {
	t.Parallel()

	valid := buildFrame([]byte("resync"))

	// A stray header byte whose declared region has no footer must not
	// shadow the real frame behind it.
	buf := []byte{Header, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	buf = append(buf, valid...)

	frm, consumed := Extract(buf)
	if !bytes.Equal(frm, valid) {
		t.Fatalf("Extract() = %x, want the real frame", frm)
	}
	if consumed != len(buf) {
		t.Fatalf("consumed = %d, want %d", consumed, len(buf))
	}
}

func TestExtract_BackToBackFrames(t *testing.T) {
	t.Parallel()

	first := buildFrame([]byte("first"))
	second := buildFrame([]byte("second"))
	buf := append(append([]byte{}, first...), second...)

	frm, consumed := Extract(buf)
	if !bytes.Equal(frm, first) {
		t.Fatalf("first Extract() = %x, want %x", frm, first)
	}

	frm, consumed2 := Extract(buf[consumed:])
	if !bytes.Equal(frm, second) {
		t.Fatalf("second Extract() = %x, want %x", frm, second)
	}
	if consumed2 != len(second) {
		t.Fatalf("second consumed = %d, want %d", consumed2, len(second))
	}
}

func TestExtract_ReturnsCopy(t *testing.T) {
	t.Parallel()

	valid := buildFrame([]byte("aliasing"))
	frm, _ := Extract(valid)
	valid[8] ^= 0xFF
	if frm[8] == valid[8] {
		t.Fatal("Extract must copy the frame out of the scan buffer")
	}
}

func TestBufferPool(t *testing.T) {
	t.Parallel()

	buf := GetBuffer(64)
	if len(buf) != 64 {
		t.Fatalf("GetBuffer(64) length = %d", len(buf))
	}
	for i := range buf {
		if buf[i] != 0 {
			t.Fatal("GetBuffer must return zeroed buffers")
		}
		buf[i] = 0xFF
	}
	PutBuffer(buf)

	again := GetBuffer(64)
	for i := range again {
		if again[i] != 0 {
			t.Fatal("recycled buffer not zeroed")
		}
	}
	PutBuffer(again)
}
