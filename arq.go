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

// attemptOutcome is the terminal state of a transmission attempt.
type attemptOutcome int

const (
	attemptPending attemptOutcome = iota
	attemptAcknowledged
	attemptExhausted
)

// transmissionAttempt tracks one outbound frame through the send-wait-
// retry loop. It is created by SendContext and does not outlive the call.
type transmissionAttempt struct {
	frame    []byte
	deadline time.Time
	peer     DeviceID
	attempts int
	outcome  attemptOutcome
	seq      uint8
}

// deliver drives the attempt to a terminal state: transmit, await the
// matching acknowledgment until the attempt deadline, and retransmit the
// identical bytes until acknowledged or MaxRetries is exceeded. Retries
// never consume a new sequence number.
func (l *Link) deliver(ctx context.Context, att *transmissionAttempt) error {
	maxAttempts := l.config.MaxRetries + 1

	for att.attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			att.outcome = attemptExhausted
			return fmt.Errorf("send seq %d to %s canceled: %w", att.seq, att.peer, err)
		}

		if err := l.transport.Transmit(att.frame); err != nil {
			att.outcome = attemptExhausted
			return fmt.Errorf("transmit seq %d to %s: %w", att.seq, att.peer, err)
		}
		att.attempts++
		att.deadline = time.Now().Add(l.config.AckTimeout)

		acked, err := l.awaitAck(ctx, att)
		if err != nil {
			att.outcome = attemptExhausted
			return err
		}
		if acked {
			att.outcome = attemptAcknowledged
			debugf("seq %d to %s acknowledged after %d attempt(s)", att.seq, att.peer, att.attempts)
			return nil
		}

		debugf("seq %d to %s: %v (attempt %d/%d)", att.seq, att.peer, ErrNoACK, att.attempts, maxAttempts)
	}

	att.outcome = attemptExhausted
	return fmt.Errorf("send seq %d to %s after %d attempts: %w",
		att.seq, att.peer, att.attempts, ErrRetriesExhausted)
}

// awaitAck polls the transport until the attempt deadline, looking for an
// acknowledgment of att.seq from att.peer. It returns (false, nil) on
// deadline expiry so deliver can decide between retry and exhaustion. The
// deadline and the context are re-checked on every poll, so cumulative
// waiting stays bounded and cancellation never triggers another transmit.
func (l *Link) awaitAck(ctx context.Context, att *transmissionAttempt) (bool, error) {
	for {
		remaining := time.Until(att.deadline)
		if remaining <= 0 {
			return false, nil
		}
		if err := ctx.Err(); err != nil {
			return false, fmt.Errorf("send seq %d to %s canceled: %w", att.seq, att.peer, err)
		}

		poll := l.config.PollInterval
		if poll <= 0 || poll > remaining {
			poll = remaining
		}

		raw, err := receiveCtx(ctx, l.transport, poll)
		if err != nil {
			if errors.Is(err, ErrTransportTimeout) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return false, fmt.Errorf("send seq %d to %s canceled: %w", att.seq, att.peer, err)
			}
			return false, fmt.Errorf("await ack for seq %d: %w", att.seq, err)
		}

		f := l.codec.Decode(raw)
		if f == nil {
			continue
		}
		if f.Destination != l.id || f.Source != att.peer {
			continue
		}
		if acked, ok := f.AckedSeq(); ok && acked == att.seq {
			return true, nil
		}
	}
}
