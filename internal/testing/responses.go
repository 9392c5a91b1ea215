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

// Package testing builds ISO14443A tag-side replies for driver tests.
package testing

// cascadeTag marks a UID fragment that continues at the next level.
const cascadeTag = 0x88

// BuildATQA creates the 2 byte answer to a REQA for a given UID size
// (4, 7 or 10 bytes).
func BuildATQA(uidSize int) []byte {
	switch uidSize {
	case 7:
		return []byte{0x44, 0x00}
	case 10:
		return []byte{0x84, 0x00}
	default:
		return []byte{0x04, 0x00}
	}
}

// BuildAnticollision creates the 5 byte anticollision reply for one
// cascade level: four UID/cascade bytes followed by their BCC.
func BuildAnticollision(fragment []byte) []byte {
	reply := make([]byte, 5)
	copy(reply, fragment[:4])
	reply[4] = fragment[0] ^ fragment[1] ^ fragment[2] ^ fragment[3]
	return reply
}

// BuildCascadeFragment creates the 4 byte fragment a tag sends at a
// non-final cascade level: the cascade tag followed by three UID bytes.
func BuildCascadeFragment(uid []byte) []byte {
	return append([]byte{cascadeTag}, uid[:3]...)
}

// BuildSAK creates a SAK reply. complete=false raises the cascade bit,
// telling the reader the UID continues at the next level.
func BuildSAK(complete bool) []byte {
	if complete {
		// MIFARE Classic 1K style SAK.
		return []byte{0x08, 0x00, 0x00}
	}
	return []byte{0x04, 0x00, 0x00}
}

// CascadeExchanges lays out the anticollision and SAK replies for a
// full cascade over a 4, 7 or 10 byte UID, in the order the reader
// performs the exchanges.
func CascadeExchanges(uid []byte) [][]byte {
	var exchanges [][]byte
	remaining := uid

	for len(remaining) > 4 {
		exchanges = append(exchanges,
			BuildAnticollision(BuildCascadeFragment(remaining)),
			BuildSAK(false),
		)
		remaining = remaining[3:]
	}

	exchanges = append(exchanges,
		BuildAnticollision(remaining),
		BuildSAK(true),
	)
	return exchanges
}

// Sample UIDs.
var (
	// TestUID4 is a single-size UID.
	TestUID4 = []byte{0x12, 0x34, 0x56, 0x78}

	// TestUID7 is a double-size UID, NTAG style.
	TestUID7 = []byte{0x04, 0xAB, 0xCD, 0xEF, 0x12, 0x34, 0x56}

	// TestUID10 is a triple-size UID.
	TestUID10 = []byte{0x04, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99}
)
