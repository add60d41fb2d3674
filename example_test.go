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

package loralink_test

import (
	"fmt"

	loralink "github.com/loralink-project/go-loralink"
)

// ExampleCodec shows a frame traveling from one station to another: the
// sender encodes, the receiver decodes and answers with an ACK.
func ExampleCodec() {
	sender := loralink.NewCodec(0x0001, nil)
	receiver := loralink.NewCodec(0x0002, nil)

	raw, err := sender.Encode(0x0002, []byte("hello, radio"))
	if err != nil {
		fmt.Println("encode:", err)
		return
	}

	frm := receiver.Decode(raw)
	if frm == nil {
		fmt.Println("frame rejected")
		return
	}
	fmt.Printf("from %s seq=%d: %s\n", frm.Source, frm.Seq, frm.Payload)

	ack, err := receiver.EncodeAck(frm.Source, frm.Seq)
	if err != nil {
		fmt.Println("encode ack:", err)
		return
	}

	reply := sender.Decode(ack)
	if acked, ok := reply.AckedSeq(); ok {
		fmt.Printf("acknowledged seq=%d\n", acked)
	}

	// Output:
	// from 0x0001 seq=1: hello, radio
	// acknowledged seq=1
}
