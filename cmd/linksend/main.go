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

// linksend delivers one message reliably over a LoRa link and reports
// whether it was acknowledged.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	loralink "github.com/loralink-project/go-loralink"
	"github.com/loralink-project/go-loralink/transport/i2c"
	"github.com/loralink-project/go-loralink/transport/uart"
	"go.bug.st/serial"
)

func main() {
	configPath := flag.String("config", "", "Path to TOML config file (flags override file values)")
	device := flag.String("device", "", "Transport device path (e.g. /dev/ttyUSB0 or /dev/i2c-1)")
	deviceID := flag.Uint("id", 0, "Local 16-bit device ID (0 = random)")
	destination := flag.Uint("dest", 0, "Destination 16-bit device ID")
	message := flag.String("message", "", "Message payload to send")
	retries := flag.Int("retries", -1, "Retransmissions after the initial attempt (-1 = config default)")
	timeout := flag.Duration("timeout", 0, "Per-attempt acknowledgment timeout (0 = config default)")
	debug := flag.Bool("debug", false, "Enable debug output")
	flag.Parse()

	if *debug {
		loralink.SetDebugEnabled(true)
	}

	cfg := defaultSettings()
	if *configPath != "" {
		var err error
		cfg, err = loadSettings(*configPath)
		if err != nil {
			fatalf("%v", err)
		}
	}
	if *device != "" {
		cfg.Device = *device
	}
	if *deviceID != 0 {
		if *deviceID > 0xFFFF {
			fatalf("-id must fit in 16 bits, got %d", *deviceID)
		}
		cfg.DeviceID = uint16(*deviceID)
	}
	if *destination != 0 {
		if *destination > 0xFFFF {
			fatalf("-dest must fit in 16 bits, got %d", *destination)
		}
		cfg.Destination = uint16(*destination)
	}
	if *retries >= 0 {
		cfg.MaxRetries = *retries
	}
	if *timeout > 0 {
		cfg.AckTimeout = *timeout
	}

	if cfg.Device == "" {
		fatalf("no transport device given (use -device or the config file)")
	}
	if cfg.Destination == 0 {
		fatalf("no destination given (use -dest or the config file)")
	}
	if *message == "" {
		fatalf("nothing to send (use -message)")
	}

	transport, err := newTransport(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	defer func() { _ = transport.Close() }()

	opts := []loralink.Option{
		loralink.WithMaxRetries(cfg.MaxRetries),
		loralink.WithAckTimeout(cfg.AckTimeout),
	}
	if cfg.DeviceID != 0 {
		opts = append(opts, loralink.WithDeviceID(loralink.DeviceID(cfg.DeviceID)))
	}

	link, err := loralink.New(transport, opts...)
	if err != nil {
		fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dst := loralink.DeviceID(cfg.Destination)
	fmt.Printf("Sending %d bytes from %s to %s...\n", len(*message), link.DeviceID(), dst)

	start := time.Now()
	err = link.SendContext(ctx, dst, []byte(*message))
	switch {
	case err == nil:
		fmt.Printf("Acknowledged in %v\n", time.Since(start).Round(time.Millisecond))
	case errors.Is(err, loralink.ErrRetriesExhausted):
		fatalf("no acknowledgment after %d attempts: %v", cfg.MaxRetries+1, err)
	default:
		fatalf("send failed: %v", err)
	}
}

// newTransport creates a transport from the configured device path.
func newTransport(cfg settings) (loralink.Transport, error) {
	if strings.Contains(strings.ToLower(cfg.Device), "i2c") {
		transport, err := i2c.New(cfg.Device)
		if err != nil {
			return nil, fmt.Errorf("failed to create I2C transport: %w", err)
		}
		return transport, nil
	}

	transport, err := uart.NewWithMode(cfg.Device, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("failed to create UART transport: %w", err)
	}
	return transport, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "linksend: "+format+"\n", args...)
	os.Exit(1)
}
