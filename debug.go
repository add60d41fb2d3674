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
	"log"
	"os"
	"sync/atomic"
)

var debugEnabled atomic.Bool

func init() {
	if os.Getenv("LORALINK_DEBUG") != "" {
		debugEnabled.Store(true)
	}
}

// SetDebugEnabled toggles debug logging for the package. It can also be
// enabled by setting the LORALINK_DEBUG environment variable.
func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
}

func debugf(format string, args ...any) {
	if debugEnabled.Load() {
		log.Printf("[loralink] "+format, args...)
	}
}
