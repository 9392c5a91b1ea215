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

package mfrc522

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ndefTextHi is a short NDEF record: a well-known text record, language
// "en", text "hi".
var ndefTextHi = []byte{0xD1, 0x01, 0x05, 0x54, 0x02, 'e', 'n', 'h', 'i'}

// queueTagMemory scripts READ responses serving 16 byte chunks of a
// Type 2 tag data area.
func queueTagMemory(mock *MockTransport, memory []byte) {
	for off := 0; off < len(memory); off += fifoDrainMax {
		chunk := make([]byte, fifoDrainMax)
		copy(chunk, memory[off:])
		mock.QueueExchange(MockExchange{Data: chunk})
	}
}

func TestReadPage(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	page := make([]byte, 16)
	for i := range page {
		page[i] = byte(0xA0 + i)
	}
	mock.QueueExchange(MockExchange{Data: page})

	data, err := device.ReadPage(4)
	require.NoError(t, err)
	assert.Equal(t, page, data)
}

func TestReadPageTimeout(t *testing.T) {
	t.Parallel()

	device, _ := newTestDevice(t)

	_, err := device.ReadPage(4)
	assert.ErrorIs(t, err, ErrReadFailed)
}

func TestReadPageShortReply(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.QueueExchange(MockExchange{Data: []byte{0x01, 0x02, 0x03, 0x04}})

	_, err := device.ReadPage(4)
	assert.ErrorIs(t, err, ErrReadFailed)
}

func TestReadNDEF(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	memory := []byte{tlvNDEF, byte(len(ndefTextHi))}
	memory = append(memory, ndefTextHi...)
	memory = append(memory, tlvTerminator)
	queueTagMemory(mock, memory)

	msg, err := device.ReadNDEF()
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Contains(t, msg.String(), "hi")
}

func TestReadNDEFSkipsLeadingTLVs(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	// Null TLVs and a lock-control TLV come before the message.
	memory := []byte{tlvNull, tlvNull, 0x01, 0x03, 0xA0, 0x10, 0x44}
	memory = append(memory, tlvNDEF, byte(len(ndefTextHi)))
	memory = append(memory, ndefTextHi...)
	memory = append(memory, tlvTerminator)
	queueTagMemory(mock, memory)

	msg, err := device.ReadNDEF()
	require.NoError(t, err)
	assert.Contains(t, msg.String(), "hi")
}

func TestReadNDEFSpansChunks(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	// Pad with null TLVs so the message TLV straddles the first 16 byte
	// read boundary.
	memory := make([]byte, 14)
	memory = append(memory, tlvNDEF, byte(len(ndefTextHi)))
	memory = append(memory, ndefTextHi...)
	memory = append(memory, tlvTerminator)
	queueTagMemory(mock, memory)

	msg, err := device.ReadNDEF()
	require.NoError(t, err)
	assert.Contains(t, msg.String(), "hi")
}

func TestReadNDEFNotFound(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	queueTagMemory(mock, []byte{tlvNull, tlvNull, tlvTerminator})

	_, err := device.ReadNDEF()
	assert.ErrorIs(t, err, ErrNDEFNotFound)
}

func TestReadNDEFReadFault(t *testing.T) {
	t.Parallel()

	device, _ := newTestDevice(t)

	// The very first page read times out.
	_, err := device.ReadNDEF()
	assert.ErrorIs(t, err, ErrReadFailed)
}
