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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		reg  byte
		want byte
	}{
		{name: "command register", reg: regCommand, want: 0x82},
		{name: "version register", reg: regVersion, want: 0xEE},
		{name: "FIFO data", reg: regFIFOData, want: 0x92},
		{name: "zero", reg: 0x00, want: 0x80},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, readAddress(tt.reg))
		})
	}

	// Whatever the register, a read address has the MSB set and the LSB
	// clear.
	for reg := 0; reg < 256; reg++ {
		addr := readAddress(byte(reg))
		assert.NotZero(t, addr&0x80)
		assert.Zero(t, addr&0x01)
	}
}

func TestWriteAddress(t *testing.T) {
	t.Parallel()

	assert.Equal(t, byte(0x02), writeAddress(regCommand))
	assert.Equal(t, byte(0x12), writeAddress(regFIFOData))

	for reg := 0; reg < 256; reg++ {
		addr := writeAddress(byte(reg))
		assert.Zero(t, addr&0x80)
		assert.Zero(t, addr&0x01)
	}
}

func TestReadRegister(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.SetRegister(regVersion, 0x92)

	value, err := device.readRegister(regVersion)
	require.NoError(t, err)
	assert.Equal(t, byte(0x92), value)
	assert.Equal(t, 1, mock.TransferCount())
}

func TestReadRegistersOrder(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.SetRegister(regError, 0x04)
	mock.SetRegister(regFIFOLevel, 0x05)
	mock.SetRegister(regControl, 0x07)

	values, err := device.readRegisters(regError, regFIFOLevel, regControl)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x05, 0x07}, values)
}

func TestReadRegistersEmpty(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	_, err := device.readRegisters()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, mock.TransferCount(), "validation must fail before the bus")
}

func TestWriteRegisterRecorded(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	require.NoError(t, device.writeRegister(regTxASK, 0x40))
	assert.Equal(t, []RegisterWrite{{Reg: regTxASK, Value: 0x40}}, mock.Writes())
}

func TestWriteRegistersValidation(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	err := device.writeRegisters(
		[]byte{regTMode, 0x8D},
		[]byte{regTPrescaler},
	)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, mock.TransferCount(), "a bad entry must keep the whole batch off the bus")
}

func TestSetBitMask(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.SetRegister(regTxControl, 0x80)

	require.NoError(t, device.setBitMask(regTxControl, 0x03))
	assert.Equal(t, byte(0x83), mock.Register(regTxControl))
}

func TestSetBitMaskSkipsNoop(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.SetRegister(regTxControl, 0x03)

	require.NoError(t, device.setBitMask(regTxControl, 0x03))
	assert.Zero(t, mock.WriteCount(regTxControl), "already-set bits must not be rewritten")

	require.NoError(t, device.setBitMask(regTxControl, 0x00))
	assert.Equal(t, 1, mock.TransferCount(), "zero mask must not even read")
}

func TestClearBitMask(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.SetRegister(regTxControl, 0x83)

	require.NoError(t, device.clearBitMask(regTxControl, 0x03))
	assert.Equal(t, byte(0x80), mock.Register(regTxControl))

	require.NoError(t, device.clearBitMask(regTxControl, 0x03))
	assert.Equal(t, 1, mock.WriteCount(regTxControl), "already-clear bits must not be rewritten")
}

func TestRegisterIOTransportError(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	busErr := errors.New("bus gone")
	mock.SetError(busErr)

	_, err := device.readRegister(regVersion)
	assert.ErrorIs(t, err, busErr)

	err = device.writeRegister(regTxASK, 0x40)
	assert.ErrorIs(t, err, busErr)
}
