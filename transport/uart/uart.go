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

// Package uart provides a serial-port transport for LoRa modems that
// expose a transparent byte pipe over UART (USB serial adapters, RYLR
// style modules in passthrough mode, and similar).
package uart

import (
	"fmt"
	"time"

	loralink "github.com/loralink-project/go-loralink"
	"github.com/loralink-project/go-loralink/internal/frame"
	"go.bug.st/serial"
)

const (
	defaultBaudRate = 115200

	// readSlice bounds a single blocking read so the caller's deadline
	// is re-checked regularly.
	readSlice = 100 * time.Millisecond
)

// Transport implements the loralink.Transport interface over a serial
// port. Reads are reassembled into frames by scanning for the frame
// delimiters, so it tolerates partial reads and line noise between
// frames.
type Transport struct {
	port     serial.Port
	portName string
	residual []byte
}

// New opens portName at 115200 8N1.
func New(portName string) (*Transport, error) {
	return NewWithMode(portName, &serial.Mode{BaudRate: defaultBaudRate})
}

// NewWithMode opens portName with an explicit serial mode.
func NewWithMode(portName string, mode *serial.Mode) (*Transport, error) {
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	return &Transport{port: port, portName: portName}, nil
}

// Transmit writes one encoded frame to the port.
func (t *Transport) Transmit(data []byte) error {
	n, err := t.port.Write(data)
	if err != nil {
		return loralink.NewTransportError("transmit", t.portName, err, loralink.ErrorTypeTransient)
	}
	if n != len(data) {
		return loralink.NewTransportError("transmit", t.portName,
			fmt.Errorf("%w: short write (%d of %d bytes)", loralink.ErrTransportWrite, n, len(data)),
			loralink.ErrorTypeTransient)
	}
	return nil
}

// Receive returns the next complete frame observed on the port, waiting
// at most timeout. Bytes that cannot start a frame are discarded; bytes
// of a partially received frame are kept for the next call.
func (t *Transport) Receive(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)

	if frm := t.extract(); frm != nil {
		return frm, nil
	}

	chunk := frame.GetBuffer(frame.MaxLength)
	defer frame.PutBuffer(chunk)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, loralink.NewTimeoutError("receive", t.portName)
		}

		slice := readSlice
		if slice > remaining {
			slice = remaining
		}
		if err := t.port.SetReadTimeout(slice); err != nil {
			return nil, loralink.NewTransportError("receive", t.portName, err, loralink.ErrorTypePermanent)
		}

		n, err := t.port.Read(chunk)
		if err != nil {
			return nil, loralink.NewTransportError("receive", t.portName, err, loralink.ErrorTypeTransient)
		}
		if n == 0 {
			// Read timeout slice elapsed without data.
			continue
		}

		t.residual = append(t.residual, chunk[:n]...)
		if frm := t.extract(); frm != nil {
			return frm, nil
		}
	}
}

// extract pulls the first complete frame out of the residual buffer.
func (t *Transport) extract() []byte {
	frm, consumed := frame.Extract(t.residual)
	if consumed > 0 {
		t.residual = append(t.residual[:0], t.residual[consumed:]...)
	}
	return frm
}

// Close closes the serial port.
func (t *Transport) Close() error {
	if err := t.port.Close(); err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", t.portName, err)
	}
	return nil
}

// IsConnected returns true if the port is open.
func (t *Transport) IsConnected() bool {
	return t.port != nil
}

// Type returns the transport type
func (*Transport) Type() loralink.TransportType {
	return loralink.TransportUART
}

// Ensure Transport implements loralink.Transport
var _ loralink.Transport = (*Transport)(nil)
