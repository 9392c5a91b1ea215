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

var testSectorUID = UID{0x12, 0x34, 0x56, 0x78}

func TestMifareAuthenticate(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	err := device.MifareAuthenticate(MifareKeyA, 4, MifareDefaultKey, testSectorUID)
	require.NoError(t, err)
	assert.NotZero(t, mock.Register(regStatus2)&status2Crypto1)

	// The auth frame is key type, block, the six key bytes and the
	// first four UID bytes.
	var fifo []byte
	for _, w := range mock.Writes() {
		if w.Reg == regFIFOData {
			fifo = append(fifo, w.Value)
		}
	}
	require.Len(t, fifo, 12)
	assert.Equal(t, byte(piccAuthKeyA), fifo[0])
	assert.Equal(t, byte(4), fifo[1])
	assert.Equal(t, MifareDefaultKey[:], fifo[2:8])
	assert.Equal(t, []byte(testSectorUID), fifo[8:12])
}

func TestMifareAuthenticateFailure(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.SetMifareAuthFail(true)

	err := device.MifareAuthenticate(MifareKeyB, 7, MifareDefaultKey, testSectorUID)
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestMifareAuthenticateValidation(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	var vErr *ValidationError

	err := device.MifareAuthenticate(MifareKeyType(0x42), 4, MifareDefaultKey, testSectorUID)
	assert.ErrorAs(t, err, &vErr)

	err = device.MifareAuthenticate(MifareKeyA, 4, MifareDefaultKey, UID{0x12, 0x34})
	assert.ErrorAs(t, err, &vErr)

	assert.Zero(t, mock.TransferCount())
}

func TestMifareStopCrypto(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	require.NoError(t, device.MifareAuthenticate(MifareKeyA, 4, MifareDefaultKey, testSectorUID))

	require.NoError(t, device.MifareStopCrypto())
	assert.Zero(t, mock.Register(regStatus2)&status2Crypto1)
}

func TestMifareReadBlock(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	block := make([]byte, 16)
	for i := range block {
		block[i] = byte(i + 1)
	}
	mock.QueueExchange(MockExchange{Data: block})

	data, err := device.MifareReadBlock(4)
	require.NoError(t, err)
	assert.Equal(t, block, data)
}

func TestMifareReadBlockFailure(t *testing.T) {
	t.Parallel()

	device, _ := newTestDevice(t)

	_, err := device.MifareReadBlock(4)
	assert.ErrorIs(t, err, ErrReadFailed)
}

func TestMifareWriteBlock(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	// Address frame and data frame are each acknowledged with the 4 bit
	// ACK nibble.
	mock.QueueExchange(MockExchange{Data: []byte{mifareAck}, Bits: 4})
	mock.QueueExchange(MockExchange{Data: []byte{mifareAck}, Bits: 4})

	data := make([]byte, 16)
	copy(data, "hello")
	require.NoError(t, device.MifareWriteBlock(5, data))
}

func TestMifareWriteBlockNAK(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.QueueExchange(MockExchange{Data: []byte{0x00}, Bits: 4})

	err := device.MifareWriteBlock(5, make([]byte, 16))
	assert.ErrorIs(t, err, ErrWriteFailed)
}

func TestMifareWriteBlockValidation(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	err := device.MifareWriteBlock(5, []byte{0x01, 0x02})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, mock.TransferCount())
}
