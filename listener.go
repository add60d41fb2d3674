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
	"sync"
	"time"
)

// FrameHandler is invoked for each accepted inbound frame. It runs on the
// listener goroutine; slow handlers delay subsequent receives.
type FrameHandler func(*Frame)

// listenPoll bounds each Receive call so Stop is observed promptly.
const listenPoll = 200 * time.Millisecond

// Listener runs a background receive loop on a Link, dispatching accepted
// frames to a handler. Validation, addressing, de-duplication and
// auto-ACK behavior are the Link's; the Listener only owns the loop.
//
// While a Listener is running it is the sole user of its Link.
type Listener struct {
	link    *Link
	handler FrameHandler
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewListener creates a listener dispatching to handler.
func NewListener(link *Link, handler FrameHandler) (*Listener, error) {
	if link == nil {
		return nil, errors.New("link must not be nil")
	}
	if handler == nil {
		return nil, errors.New("handler must not be nil")
	}
	return &Listener{link: link, handler: handler}, nil
}

// Start launches the receive loop. It is a no-op if already running.
func (lr *Listener) Start() {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if lr.running {
		return
	}
	lr.running = true
	lr.stop = make(chan struct{})
	lr.done = make(chan struct{})

	go lr.loop(lr.stop, lr.done)
}

// Stop terminates the receive loop and waits for it to exit.
func (lr *Listener) Stop() {
	lr.mu.Lock()
	if !lr.running {
		lr.mu.Unlock()
		return
	}
	lr.running = false
	stop, done := lr.stop, lr.done
	lr.mu.Unlock()

	close(stop)
	<-done
}

func (lr *Listener) loop(stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}

		f, err := lr.link.Receive(listenPoll)
		if err != nil && !errors.Is(err, ErrTransportTimeout) {
			debugf("listener: %v", err)
		}
		if f != nil {
			lr.handler(f)
		}
	}
}
