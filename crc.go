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
	"time"

	"github.com/eeemarv/go-mfrc522/internal/poll"
)

const (
	crcAttempts = 1000
	// The coprocessor finishes within a handful of byte clocks; the
	// interval only keeps the poll from busy-spinning a thread.
	crcInterval = 100 * time.Microsecond
)

// calcCRC delegates a CRC_A computation to the chip's coprocessor and
// returns the [low, high] result bytes. ok=false means the coprocessor
// never raised the done flag within the attempt bound; the caller must
// treat that as a protocol failure, not a fault.
func (d *Device) calcCRC(ctx context.Context, data []byte) (crc []byte, ok bool, err error) {
	if len(data) == 0 {
		return nil, false, newValidationError("calcCRC", "no data given")
	}

	if err := d.writeRegisters(
		[]byte{regDivIrq, divIrqCRC},
		[]byte{regFIFOLevel, 0x80},
		append([]byte{regFIFOData}, data...),
		[]byte{regCommand, cmdCalcCRC},
	); err != nil {
		return nil, false, err
	}

	done, err := poll.Until(ctx, crcAttempts, crcInterval, func() (bool, error) {
		irq, irqErr := d.readRegister(regDivIrq)
		if irqErr != nil {
			return false, irqErr
		}
		return irq&divIrqCRC != 0, nil
	})
	if err != nil {
		return nil, false, err
	}
	if !done {
		debugln("calcCRC: coprocessor did not finish")
		return nil, false, nil
	}

	result, err := d.readRegisters(regCRCResultL, regCRCResultH)
	if err != nil {
		return nil, false, err
	}
	return []byte{result[0], result[1]}, true, nil
}
