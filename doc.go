// go-mfrc522
// Copyright (c) 2025 The go-mfrc522 Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-mfrc522.
//
// go-mfrc522 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-mfrc522 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-mfrc522; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

/*
Package mfrc522 provides a pure Go driver for the NXP MFRC522 contactless
reader IC.

The MFRC522 is a register-addressed 13.56 MHz reader/writer for ISO14443A
proximity cards. This library talks to the chip over a generic full-duplex
bus transport (SPI in practice), runs the vendor self-test, and implements
the ISO14443A REQA/anticollision/select sequence to extract 4, 7 and
10 byte UIDs from tags in the RF field.

Basic Usage:

	import (
	    "github.com/eeemarv/go-mfrc522"
	    "github.com/eeemarv/go-mfrc522/transport/spi"
	)

	transport, err := spi.New("/dev/spidev0.0")
	if err != nil {
	    log.Fatal(err)
	}
	defer transport.Close()

	device, err := mfrc522.New(transport)
	if err != nil {
	    log.Fatal(err)
	}
	if err := device.Init(); err != nil {
	    log.Fatal(err)
	}

	if device.DetectTag() {
	    uid, err := device.ReadUID()
	    if err == nil {
	        fmt.Printf("Tag UID: %s\n", uid)
	    }
	}

Continuous scanning with the polling package:

	scanner, err := polling.NewScanner(device,
	    polling.WithOnUID(func(uid mfrc522.UID) {
	        fmt.Println(uid)
	    }),
	)
	if err != nil {
	    log.Fatal(err)
	}
	if err := scanner.Run(ctx); err != nil {
	    log.Fatal(err)
	}

Protocol outcomes vs faults:

A tag being absent, a collision, or a CRC/SAK mismatch are expected
outcomes of RF communication and are reported through ErrNoTag /
ErrUIDIncomplete sentinels, never through panics or transport errors.
Malformed register frames (ValidationError), unknown silicon
(ErrUnsupportedDevice) and self-test mismatches (ErrSelfTestFailed) are
true faults.

Thread Safety:

Device operations are not thread-safe. The chip's FIFO and command
register are a single shared resource; all operations on one Device must
be strictly sequential. The polling package serializes its own cycles
with a busy flag.
*/
package mfrc522
