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
	"context"
	"time"
)

// Transport moves raw frame bytes to and from the radio hardware. This
// can be implemented by a serial modem, an I2C bridge, or a mock.
//
// Receive must never block longer than the given timeout; on expiry it
// returns an error satisfying errors.Is(err, ErrTransportTimeout). A
// Transmit failure must be surfaced as an error, never swallowed.
type Transport interface {
	// Transmit sends one encoded frame over the radio
	Transmit(data []byte) error

	// Receive returns the next received byte buffer, or a timeout error
	Receive(timeout time.Duration) ([]byte, error)

	// Close closes the transport connection
	Close() error

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportUART represents a serial LoRa modem transport.
	TransportUART TransportType = "uart"
	// TransportI2C represents an I2C radio bridge transport.
	TransportI2C TransportType = "i2c"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)

// ContextTransport is an optional extension for transports whose waits
// can be interrupted by a context.
type ContextTransport interface {
	Transport

	// ReceiveContext behaves like Receive but also unblocks when ctx is
	// done, returning ctx.Err().
	ReceiveContext(ctx context.Context, timeout time.Duration) ([]byte, error)
}

// receiveCtx polls t with ctx awareness. Transports implementing
// ContextTransport unblock immediately on cancellation; plain transports
// are bounded by their own timeout and the context is re-checked between
// polls by the caller.
func receiveCtx(ctx context.Context, t Transport, timeout time.Duration) ([]byte, error) {
	if ct, ok := t.(ContextTransport); ok {
		return ct.ReceiveContext(ctx, timeout)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.Receive(timeout)
}
