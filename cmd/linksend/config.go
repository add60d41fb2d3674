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

package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// linksend config.toml key mapping to link settings.
type fileConfig struct {
	Device       string `toml:"device"`
	BaudRate     int    `toml:"baud_rate"`
	DeviceID     int    `toml:"device_id"`
	Destination  int    `toml:"destination_id"`
	MaxRetries   int    `toml:"max_retries"`
	AckTimeoutMS int    `toml:"ack_timeout_ms"`
}

// settings is the merged runtime configuration: defaults, overlaid by the
// TOML file, overlaid by command-line flags.
type settings struct {
	Device      string
	BaudRate    int
	DeviceID    uint16
	Destination uint16
	MaxRetries  int
	AckTimeout  time.Duration
}

func defaultSettings() settings {
	return settings{
		BaudRate:   115200,
		MaxRetries: 3,
		AckTimeout: 2 * time.Second,
	}
}

// loadSettings reads a TOML config file and overlays any defined keys
// onto the defaults.
func loadSettings(path string) (settings, error) {
	cfg := defaultSettings()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return settings{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("device") {
		cfg.Device = raw.Device
	}
	if meta.IsDefined("baud_rate") {
		if raw.BaudRate <= 0 {
			return settings{}, fmt.Errorf("baud_rate must be positive, got %d", raw.BaudRate)
		}
		cfg.BaudRate = raw.BaudRate
	}
	if meta.IsDefined("device_id") {
		id, err := asDeviceID(raw.DeviceID, "device_id")
		if err != nil {
			return settings{}, err
		}
		cfg.DeviceID = id
	}
	if meta.IsDefined("destination_id") {
		id, err := asDeviceID(raw.Destination, "destination_id")
		if err != nil {
			return settings{}, err
		}
		cfg.Destination = id
	}
	if meta.IsDefined("max_retries") {
		if raw.MaxRetries < 0 {
			return settings{}, fmt.Errorf("max_retries must be non-negative, got %d", raw.MaxRetries)
		}
		cfg.MaxRetries = raw.MaxRetries
	}
	if meta.IsDefined("ack_timeout_ms") {
		if raw.AckTimeoutMS <= 0 {
			return settings{}, fmt.Errorf("ack_timeout_ms must be positive, got %d", raw.AckTimeoutMS)
		}
		cfg.AckTimeout = time.Duration(raw.AckTimeoutMS) * time.Millisecond
	}

	return cfg, nil
}

func asDeviceID(v int, key string) (uint16, error) {
	if v < 0 || v > 0xFFFF {
		return 0, fmt.Errorf("%s must fit in 16 bits, got %d", key, v)
	}
	return uint16(v), nil
}
