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

// linkrecv listens on a LoRa link, prints every accepted frame, and
// acknowledges unicast traffic so senders' retry loops complete.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	loralink "github.com/loralink-project/go-loralink"
	"github.com/loralink-project/go-loralink/transport/i2c"
	"github.com/loralink-project/go-loralink/transport/uart"
)

func main() {
	device := flag.String("device", "", "Transport device path (e.g. /dev/ttyUSB0 or /dev/i2c-1)")
	deviceID := flag.Uint("id", 0, "Local 16-bit device ID (0 = random)")
	noAck := flag.Bool("no-ack", false, "Do not acknowledge received frames")
	debug := flag.Bool("debug", false, "Enable debug output")
	flag.Parse()

	if *debug {
		loralink.SetDebugEnabled(true)
	}
	if *device == "" {
		fatalf("no transport device given (use -device)")
	}

	transport, err := newTransport(*device)
	if err != nil {
		fatalf("%v", err)
	}
	defer func() { _ = transport.Close() }()

	opts := []loralink.Option{loralink.WithAutoAck(!*noAck)}
	if *deviceID != 0 {
		if *deviceID > 0xFFFF {
			fatalf("-id must fit in 16 bits, got %d", *deviceID)
		}
		opts = append(opts, loralink.WithDeviceID(loralink.DeviceID(*deviceID)))
	}

	link, err := loralink.New(transport, opts...)
	if err != nil {
		fatalf("%v", err)
	}

	listener, err := loralink.NewListener(link, func(f *loralink.Frame) {
		fmt.Printf("%s -> %s seq=%d len=%d: %q\n",
			f.Source, f.Destination, f.Seq, len(f.Payload), f.Payload)
	})
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Listening as %s on %s (ctrl-c to stop)\n", link.DeviceID(), *device)
	listener.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt

	listener.Stop()
}

// newTransport creates a transport from a device path.
func newTransport(path string) (loralink.Transport, error) {
	if strings.Contains(strings.ToLower(path), "i2c") {
		transport, err := i2c.New(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create I2C transport: %w", err)
		}
		return transport, nil
	}

	transport, err := uart.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create UART transport: %w", err)
	}
	return transport, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "linkrecv: "+format+"\n", args...)
	os.Exit(1)
}
