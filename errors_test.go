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
)

func TestSelfTestErrorUnwrap(t *testing.T) {
	t.Parallel()

	err := &SelfTestError{Version: 0x91, Index: 3, Got: 0xAA, Want: 0xBB}
	assert.ErrorIs(t, err, ErrSelfTestFailed)
	assert.Contains(t, err.Error(), "0x91")
	assert.Contains(t, err.Error(), "byte 3")
}

func TestTransportErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("short write")
	err := &TransportError{Op: "Transfer", Port: "/dev/spidev0.0", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "Transfer")
	assert.Contains(t, err.Error(), "/dev/spidev0.0")
}

func TestTransportErrorConstructors(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, NewTransportReadError("readRegisters", "spi"), ErrTransportRead)
	assert.ErrorIs(t, NewTransportWriteError("writeRegisters", "spi"), ErrTransportWrite)
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := newValidationError("Transceive", "no data given")
	assert.Equal(t, "Transceive: no data given", err.Error())
}
