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
	"errors"
	"fmt"
)

// Protocol errors
var (
	// ErrPayloadTooLarge is returned by Encode when the payload exceeds
	// MaxPayloadSize. The frame is rejected before any I/O is attempted.
	ErrPayloadTooLarge = errors.New("payload exceeds maximum size")

	// ErrNoACK indicates no acknowledgment arrived within the deadline
	// for a single transmission attempt.
	ErrNoACK = errors.New("no acknowledgment received")

	// ErrRetriesExhausted is returned by Send after the initial
	// transmission and all configured retries went unacknowledged.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrFrameCorrupted indicates bytes that could not be reassembled
	// into a well-formed frame. Decode itself never returns this; it is
	// used by transports that scan byte streams.
	ErrFrameCorrupted = errors.New("frame corrupted")
)

// Transport errors
var (
	ErrTransportTimeout = errors.New("transport timeout")
	ErrTransportRead    = errors.New("transport read failed")
	ErrTransportWrite   = errors.New("transport write failed")
	ErrTransportClosed  = errors.New("transport closed")
)

// ErrorType classifies transport errors for retry decisions
type ErrorType int

const (
	// ErrorTypePermanent indicates an error that will not resolve by retrying
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient indicates an error that may resolve by retrying
	ErrorTypeTransient
	// ErrorTypeTimeout indicates a deadline expired
	ErrorTypeTimeout
)

// TransportError wraps an error from a transport operation with enough
// context to decide whether the operation is worth retrying.
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s on %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError. Transient and timeout
// errors are marked retryable.
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType == ErrorTypeTransient || errType == ErrorTypeTimeout,
	}
}

// NewTimeoutError creates a retryable TransportError wrapping
// ErrTransportTimeout.
func NewTimeoutError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportTimeout, ErrorTypeTimeout)
}

// IsRetryable reports whether an operation that failed with err is worth
// retrying. TransportError values carry the decision explicitly; bare
// sentinel errors fall back to a fixed classification.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}

	switch {
	case errors.Is(err, ErrTransportTimeout),
		errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrNoACK),
		errors.Is(err, ErrFrameCorrupted):
		return true
	default:
		return false
	}
}

// GetErrorType returns the classification of err.
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}

	switch {
	case errors.Is(err, ErrTransportTimeout):
		return ErrorTypeTimeout
	case errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrNoACK),
		errors.Is(err, ErrFrameCorrupted):
		return ErrorTypeTransient
	default:
		return ErrorTypePermanent
	}
}
