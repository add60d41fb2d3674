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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListener_Validation(t *testing.T) {
	t.Parallel()

	link, err := New(NewMockTransport(), WithDeviceID(0x1234))
	require.NoError(t, err)

	_, err = NewListener(nil, func(*Frame) {})
	assert.Error(t, err)

	_, err = NewListener(link, nil)
	assert.Error(t, err)
}

func TestListener_DispatchesFrames(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	peer := NewCodec(0x5678, nil)
	first, err := peer.Encode(0x1234, []byte("one"))
	require.NoError(t, err)
	second, err := peer.Encode(0x1234, []byte("two"))
	require.NoError(t, err)
	mock.QueueReceive(first, second)

	link, err := New(mock, fastOptions()...)
	require.NoError(t, err)

	frames := make(chan *Frame, 2)
	listener, err := NewListener(link, func(f *Frame) {
		frames <- f
	})
	require.NoError(t, err)

	listener.Start()
	defer listener.Stop()

	for _, want := range []string{"one", "two"} {
		select {
		case f := <-frames:
			assert.Equal(t, want, string(f.Payload))
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for frame %q", want)
		}
	}
}

func TestListener_StopTerminates(t *testing.T) {
	t.Parallel()

	link, err := New(NewMockTransport(), fastOptions()...)
	require.NoError(t, err)

	listener, err := NewListener(link, func(*Frame) {})
	require.NoError(t, err)

	listener.Start()
	listener.Start() // idempotent

	done := make(chan struct{})
	go func() {
		listener.Stop()
		listener.Stop() // idempotent
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
