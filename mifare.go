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
	"context"
	"fmt"

	"github.com/eeemarv/go-mfrc522/internal/poll"
)

// MifareKeyType selects which of the two sector keys to authenticate
// with.
type MifareKeyType byte

const (
	// MifareKeyA authenticates with key A.
	MifareKeyA MifareKeyType = piccAuthKeyA

	// MifareKeyB authenticates with key B.
	MifareKeyB MifareKeyType = piccAuthKeyB
)

// MifareKeySize is the length of a MIFARE Classic sector key.
const MifareKeySize = 6

// MifareDefaultKey is the transport-configuration key factory-fresh
// MIFARE Classic tags ship with.
var MifareDefaultKey = [MifareKeySize]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// mifareBlockSize is the MIFARE Classic block payload length.
const mifareBlockSize = 16

// MifareAuthenticate authenticates a block against a selected tag.
func (d *Device) MifareAuthenticate(keyType MifareKeyType, block byte, key [MifareKeySize]byte, uid UID) error {
	return d.MifareAuthenticateContext(context.Background(), keyType, block, key, uid)
}

// MifareAuthenticateContext runs the chip's MFAuthent command for one
// block: the key and the first four UID bytes go into the FIFO, the
// command performs the three-pass Crypto1 handshake in hardware, and
// success is visible as the crypto bit in Status2Reg. On success all
// traffic to the tag is enciphered until MifareStopCrypto or a reset.
func (d *Device) MifareAuthenticateContext(ctx context.Context, keyType MifareKeyType, block byte, key [MifareKeySize]byte, uid UID) error {
	if keyType != MifareKeyA && keyType != MifareKeyB {
		return newValidationError("MifareAuthenticate", fmt.Sprintf("invalid key type 0x%02X", byte(keyType)))
	}
	if len(uid) < 4 {
		return newValidationError("MifareAuthenticate", fmt.Sprintf("UID too short: %d bytes", len(uid)))
	}

	frame := make([]byte, 0, 2+MifareKeySize+4)
	frame = append(frame, byte(keyType), block)
	frame = append(frame, key[:]...)
	frame = append(frame, uid[:4]...)

	if err := d.writeRegisters(
		[]byte{regComIrq, 0x7F},
		[]byte{regFIFOLevel, 0x80},
		append([]byte{regFIFOData}, frame...),
		[]byte{regCommand, cmdMFAuthent},
	); err != nil {
		return err
	}

	// MFAuthent raises IdleIRq when the handshake completes; a dead or
	// mismatched handshake never does.
	done, err := poll.Until(ctx, transceiveAttempts, transceiveInterval, func() (bool, error) {
		irq, irqErr := d.readRegister(regComIrq)
		if irqErr != nil {
			return false, irqErr
		}
		return irq&irqIdle != 0, nil
	})
	if err != nil {
		return err
	}
	if !done {
		return fmt.Errorf("%w: no response for block %d", ErrAuthFailed, block)
	}

	status, err := d.readRegister(regStatus2)
	if err != nil {
		return err
	}
	if status&status2Crypto1 == 0 {
		return fmt.Errorf("%w: crypto unit not active for block %d", ErrAuthFailed, block)
	}
	return nil
}

// MifareStopCrypto takes the Crypto1 unit offline. Required between
// tags; a reader that keeps crypto active cannot talk to the next card.
func (d *Device) MifareStopCrypto() error {
	return d.clearBitMask(regStatus2, status2Crypto1)
}

// MifareReadBlock reads a 16 byte block from an authenticated sector.
func (d *Device) MifareReadBlock(block byte) ([]byte, error) {
	return d.MifareReadBlockContext(context.Background(), block)
}

// MifareReadBlockContext sends the READ command for one block. The
// exchange runs through the active Crypto1 stream, so the sector must be
// authenticated first.
func (d *Device) MifareReadBlockContext(ctx context.Context, block byte) ([]byte, error) {
	request := []byte{piccRead, block}
	crc, ok, err := d.calcCRC(ctx, request)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: CRC coprocessor unavailable", ErrReadFailed)
	}

	res, err := d.TransceiveContext(ctx, append(request, crc...))
	if err != nil {
		return nil, err
	}
	if !res.OK || len(res.Data) < mifareBlockSize {
		return nil, fmt.Errorf("%w: block %d", ErrReadFailed, block)
	}
	return res.Data[:mifareBlockSize], nil
}

// MifareWriteBlock writes a 16 byte block to an authenticated sector.
func (d *Device) MifareWriteBlock(block byte, data []byte) error {
	return d.MifareWriteBlockContext(context.Background(), block, data)
}

// MifareWriteBlockContext runs the two-step WRITE command: the address
// frame and the data frame are each answered with a 4 bit ACK. Anything
// other than the ACK nibble aborts the write.
func (d *Device) MifareWriteBlockContext(ctx context.Context, block byte, data []byte) error {
	if len(data) != mifareBlockSize {
		return newValidationError("MifareWriteBlock", fmt.Sprintf("need %d bytes, got %d", mifareBlockSize, len(data)))
	}

	if err := d.mifareAck(ctx, []byte{piccWrite, block}); err != nil {
		return fmt.Errorf("%w: block %d not accepted: %w", ErrWriteFailed, block, err)
	}
	if err := d.mifareAck(ctx, data); err != nil {
		return fmt.Errorf("%w: block %d data rejected: %w", ErrWriteFailed, block, err)
	}
	return nil
}

// mifareAck transceives a CRC-protected frame and checks for the 4 bit
// MIFARE acknowledge.
func (d *Device) mifareAck(ctx context.Context, frame []byte) error {
	crc, ok, err := d.calcCRC(ctx, frame)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("CRC coprocessor unavailable")
	}

	request := make([]byte, 0, len(frame)+2)
	request = append(request, frame...)
	request = append(request, crc...)

	res, err := d.TransceiveContext(ctx, request)
	if err != nil {
		return err
	}
	if !res.OK || res.Bits != 4 || len(res.Data) == 0 {
		return fmt.Errorf("no acknowledge")
	}
	if res.Data[0]&0x0F != mifareAck {
		return fmt.Errorf("NAK 0x%X", res.Data[0]&0x0F)
	}
	return nil
}
