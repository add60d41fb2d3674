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

// Package i2c provides a transport for radio bridge boards that expose a
// LoRa modem as an I2C peripheral: written bytes go out over the air
// unchanged, and received packets are read back behind a one-byte ready
// flag. The bridge's radio configuration (frequency, spreading factor,
// power) is the board's own concern and is not touched here.
package i2c

import (
	"fmt"
	"time"

	loralink "github.com/loralink-project/go-loralink"
	"github.com/loralink-project/go-loralink/internal/frame"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

const (
	// Default bridge address.
	defaultAddr = 0x42

	// Ready flag value reported by the bridge when a packet is pending.
	bridgeReady = 0x01

	// Max clock frequency (400 kHz).
	maxClockFreq = 400 * physic.KiloHertz

	pollDelay = time.Millisecond
)

// Transport implements the loralink.Transport interface for I2C radio
// bridges.
type Transport struct {
	dev     *i2c.Dev
	busName string
}

// New opens busName and addresses the bridge at its default address.
func New(busName string) (*Transport, error) {
	return NewWithAddr(busName, defaultAddr)
}

// NewWithAddr opens busName and addresses the bridge at addr.
func NewWithAddr(busName string, addr uint16) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %s: %w", busName, err)
	}

	dev := &i2c.Dev{Addr: addr, Bus: bus}
	_ = bus.SetSpeed(maxClockFreq) // Ignore error, continue with default speed

	return &Transport{dev: dev, busName: busName}, nil
}

// Transmit hands one encoded frame to the bridge for transmission.
func (t *Transport) Transmit(data []byte) error {
	if err := t.dev.Tx(data, nil); err != nil {
		return loralink.NewTransportError("transmit", t.busName, err, loralink.ErrorTypeTransient)
	}
	return nil
}

// Receive polls the bridge's ready flag until a packet is pending, then
// reads and reassembles it. Returns a timeout error when nothing arrives
// within timeout.
func (t *Transport) Receive(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)

	buf := frame.GetBuffer(frame.MaxLength)
	defer frame.PutBuffer(buf)

	for time.Now().Before(deadline) {
		ready, err := t.checkReady()
		if err != nil {
			return nil, err
		}
		if !ready {
			time.Sleep(pollDelay)
			continue
		}

		if err := t.dev.Tx(nil, buf); err != nil {
			return nil, loralink.NewTransportError("receive", t.busName, err, loralink.ErrorTypeTransient)
		}

		frm, _ := frame.Extract(buf)
		if frm == nil {
			// Torn or corrupted read; let the caller's deadline decide.
			time.Sleep(pollDelay)
			continue
		}
		return frm, nil
	}

	return nil, loralink.NewTimeoutError("receive", t.busName)
}

// checkReady reads the bridge's one-byte status register.
func (t *Transport) checkReady() (bool, error) {
	status := frame.GetBuffer(1)
	defer frame.PutBuffer(status)

	if err := t.dev.Tx(nil, status); err != nil {
		return false, loralink.NewTransportError("receive", t.busName, err, loralink.ErrorTypeTransient)
	}
	return status[0] == bridgeReady, nil
}

// Close closes the transport connection
func (*Transport) Close() error {
	// periph.io handles cleanup automatically
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	return t.dev != nil
}

// Type returns the transport type
func (*Transport) Type() loralink.TransportType {
	return loralink.TransportI2C
}

// Ensure Transport implements loralink.Transport
var _ loralink.Transport = (*Transport)(nil)
