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
	"errors"
	"fmt"
	"time"
)

// Config controls the reliability behavior of a Link.
type Config struct {
	// AckTimeout is how long one transmission attempt waits for its
	// acknowledgment before retrying.
	AckTimeout time.Duration
	// PollInterval bounds individual transport.Receive calls so the
	// attempt deadline and cancellation are re-checked regularly.
	PollInterval time.Duration
	// MaxRetries is the number of retransmissions after the initial
	// attempt. 0 means a single transmission.
	MaxRetries int
	// AutoAck makes Receive acknowledge valid unicast data frames.
	AutoAck bool
}

// DefaultConfig returns the default link configuration.
func DefaultConfig() *Config {
	return &Config{
		AckTimeout:   2 * time.Second,
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		AutoAck:      true,
	}
}

// Link is one endpoint of the protocol: a local identity, its send
// counter, and the reliability state machine, bound to a Transport.
//
// Thread Safety: Link is NOT thread-safe. Encode, decode and the ARQ loop
// execute sequentially on the caller's goroutine, matching a cooperative
// controller execution model. Use one Link per local identity; when
// serving multiple peers concurrently, give each its own Link and
// Transport.
type Link struct {
	transport Transport
	codec     *Codec
	config    *Config
	checksum  ChecksumFunc
	generate  IdentityGenerator
	lastSeen  map[DeviceID]uint8
	id        DeviceID
	idSet     bool
}

// Option is a functional option for configuring a Link
type Option func(*Link) error

// WithDeviceID fixes the local identity instead of generating one.
func WithDeviceID(id DeviceID) Option {
	return func(l *Link) error {
		if id == Broadcast {
			return fmt.Errorf("device id %s is reserved for broadcast", id)
		}
		l.id = id
		l.idSet = true
		return nil
	}
}

// WithIdentityGenerator sets the strategy used to derive the local
// identity when WithDeviceID is not given.
func WithIdentityGenerator(gen IdentityGenerator) Option {
	return func(l *Link) error {
		if gen == nil {
			return errors.New("identity generator must not be nil")
		}
		l.generate = gen
		return nil
	}
}

// WithMaxRetries sets the number of retransmissions after the initial
// attempt.
func WithMaxRetries(n int) Option {
	return func(l *Link) error {
		if n < 0 {
			return fmt.Errorf("max retries must be non-negative, got %d", n)
		}
		l.config.MaxRetries = n
		return nil
	}
}

// WithAckTimeout sets the per-attempt acknowledgment deadline.
func WithAckTimeout(d time.Duration) Option {
	return func(l *Link) error {
		if d <= 0 {
			return fmt.Errorf("ack timeout must be positive, got %v", d)
		}
		l.config.AckTimeout = d
		return nil
	}
}

// WithPollInterval sets the upper bound on individual receive polls.
func WithPollInterval(d time.Duration) Option {
	return func(l *Link) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be positive, got %v", d)
		}
		l.config.PollInterval = d
		return nil
	}
}

// WithChecksum replaces the default CRC-16/CCITT-FALSE. Both ends of the
// link must use the same function.
func WithChecksum(fn ChecksumFunc) Option {
	return func(l *Link) error {
		if fn == nil {
			return errors.New("checksum function must not be nil")
		}
		l.checksum = fn
		return nil
	}
}

// WithAutoAck enables or disables automatic acknowledgment of received
// data frames.
func WithAutoAck(enabled bool) Option {
	return func(l *Link) error {
		l.config.AutoAck = enabled
		return nil
	}
}

// New creates a Link over the given transport. Without WithDeviceID the
// identity comes from the configured generator (crypto/rand by default).
func New(transport Transport, opts ...Option) (*Link, error) {
	if transport == nil {
		return nil, errors.New("transport must not be nil")
	}

	link := &Link{
		transport: transport,
		config:    DefaultConfig(),
		generate:  RandomIdentity,
		lastSeen:  make(map[DeviceID]uint8),
	}

	for _, opt := range opts {
		if err := opt(link); err != nil {
			return nil, err
		}
	}

	if !link.idSet {
		id, err := link.generate()
		if err != nil {
			return nil, err
		}
		link.id = id
	}

	link.codec = NewCodec(link.id, link.checksum)
	return link, nil
}

// DeviceID returns the local identity.
func (l *Link) DeviceID() DeviceID {
	return l.id
}

// Codec returns the frame codec bound to this link's identity.
func (l *Link) Codec() *Codec {
	return l.codec
}

// Config returns the active configuration.
func (l *Link) Config() *Config {
	return l.config
}

// Transmit encodes payload for dst and sends it once, without waiting
// for an acknowledgment.
func (l *Link) Transmit(dst DeviceID, payload []byte) error {
	data, err := l.codec.Encode(dst, payload)
	if err != nil {
		return err
	}
	if err := l.transport.Transmit(data); err != nil {
		return fmt.Errorf("transmit to %s: %w", dst, err)
	}
	return nil
}

// Send delivers payload to dst reliably: it transmits the frame, waits
// for a matching acknowledgment, and retries up to MaxRetries times.
// It returns nil once acknowledged, ErrPayloadTooLarge before any I/O
// for oversized payloads, a transport error if a transmission itself
// fails, and ErrRetriesExhausted when every attempt times out.
func (l *Link) Send(dst DeviceID, payload []byte) error {
	return l.SendContext(context.Background(), dst, payload)
}

// SendContext is Send with cooperative cancellation: ctx is observed
// between transmissions and between receive polls, and cancellation
// aborts the wait without a further transmit.
func (l *Link) SendContext(ctx context.Context, dst DeviceID, payload []byte) error {
	data, err := l.codec.Encode(dst, payload)
	if err != nil {
		return err
	}

	att := &transmissionAttempt{
		frame: data,
		seq:   l.codec.Sequence().Current(),
		peer:  dst,
	}
	return l.deliver(ctx, att)
}

// Receive waits up to timeout for the next valid frame addressed to this
// link (or broadcast). Malformed frames, frames for other destinations
// and stray ACKs are skipped silently. Unicast data frames are
// acknowledged when AutoAck is on, and an exact per-source duplicate of
// the last accepted sequence number is dropped but re-acknowledged, so a
// sender whose ACK was lost still completes.
//
// On expiry Receive returns a timeout error. When a frame was accepted
// but its acknowledgment could not be transmitted, the frame is returned
// together with the transmit error.
func (l *Link) Receive(timeout time.Duration) (*Frame, error) {
	deadline := time.Now().Add(timeout)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, NewTimeoutError("receive", string(l.transport.Type()))
		}

		poll := l.config.PollInterval
		if poll <= 0 || poll > remaining {
			poll = remaining
		}

		raw, err := l.transport.Receive(poll)
		if err != nil {
			if errors.Is(err, ErrTransportTimeout) {
				continue
			}
			return nil, fmt.Errorf("receive: %w", err)
		}

		f := l.codec.Decode(raw)
		if f == nil {
			debugf("receive: dropping malformed frame (%d bytes)", len(raw))
			continue
		}
		if f.Destination != l.id && f.Destination != Broadcast {
			continue
		}
		if f.IsAck() {
			// Stray acknowledgment outside a send; nothing awaits it.
			debugf("receive: unexpected ack for seq %d from %s", f.Payload[1], f.Source)
			continue
		}

		last, seen := l.lastSeen[f.Source]
		duplicate := seen && last == f.Seq

		var ackErr error
		if l.config.AutoAck && f.Destination != Broadcast {
			ackErr = l.sendAck(f)
		}
		if duplicate {
			debugf("receive: duplicate seq %d from %s", f.Seq, f.Source)
			continue
		}
		l.lastSeen[f.Source] = f.Seq

		return f, ackErr
	}
}

// sendAck acknowledges f back to its source.
func (l *Link) sendAck(f *Frame) error {
	data, err := l.codec.EncodeAck(f.Source, f.Seq)
	if err != nil {
		return err
	}
	if err := l.transport.Transmit(data); err != nil {
		return fmt.Errorf("ack seq %d to %s: %w", f.Seq, f.Source, err)
	}
	return nil
}
