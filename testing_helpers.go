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
	"sync"
	"time"
)

// MockTransport is an in-memory Transport for tests. Transmitted buffers
// are recorded; Receive pops from a queue of prepared buffers and sleeps
// out its timeout when the queue is empty, so deadline-driven loops
// behave realistically.
type MockTransport struct {
	onTransmit    func(data []byte) [][]byte
	transmitErr   error
	rxQueue       [][]byte
	transmissions [][]byte
	mu            sync.Mutex
	closed        bool
}

// NewMockTransport creates an empty mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Transmit records data. A configured transmit error is returned after
// recording; an OnTransmit responder may enqueue reply buffers.
func (m *MockTransport) Transmit(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return NewTransportError("transmit", "mock", ErrTransportClosed, ErrorTypePermanent)
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	m.transmissions = append(m.transmissions, cp)

	if m.transmitErr != nil {
		return m.transmitErr
	}
	if m.onTransmit != nil {
		m.rxQueue = append(m.rxQueue, m.onTransmit(cp)...)
	}
	return nil
}

// Receive returns the next queued buffer, or a timeout error after
// sleeping out the given timeout.
func (m *MockTransport) Receive(timeout time.Duration) ([]byte, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, NewTransportError("receive", "mock", ErrTransportClosed, ErrorTypePermanent)
	}
	if len(m.rxQueue) > 0 {
		buf := m.rxQueue[0]
		m.rxQueue = m.rxQueue[1:]
		m.mu.Unlock()
		return buf, nil
	}
	m.mu.Unlock()

	if timeout > 0 {
		time.Sleep(timeout)
	}
	return nil, NewTimeoutError("receive", "mock")
}

// Close marks the transport closed; further operations fail.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Type returns the transport type
func (*MockTransport) Type() TransportType {
	return TransportMock
}

// QueueReceive appends buffers to be returned by subsequent Receives.
func (m *MockTransport) QueueReceive(bufs ...[]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rxQueue = append(m.rxQueue, bufs...)
}

// SetTransmitError makes every following Transmit fail with err.
func (m *MockTransport) SetTransmitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transmitErr = err
}

// OnTransmit installs a responder invoked for each transmission; the
// buffers it returns are queued for Receive.
func (m *MockTransport) OnTransmit(fn func(data []byte) [][]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTransmit = fn
}

// Transmissions returns copies of all transmitted buffers.
func (m *MockTransport) Transmissions() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.transmissions))
	copy(out, m.transmissions)
	return out
}

// TransmitCount returns the number of Transmit calls so far.
func (m *MockTransport) TransmitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transmissions)
}

// Ensure MockTransport implements Transport
var _ Transport = (*MockTransport)(nil)
