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
	transceiveAttempts = 8
	transceiveInterval = 3 * time.Millisecond
)

// Result is the outcome of a single RF exchange. OK is false on timeout
// or a transmission error; Bits is the exact received bit count, which
// honors a partial last byte. Data may be non-empty even when OK is
// false (timer expiry after a partial receive) since the payload can
// still be diagnostically useful.
type Result struct {
	Data []byte
	Bits int
	OK   bool
}

// Transceive sends data to the RF field and collects the reply.
func (d *Device) Transceive(data []byte) (Result, error) {
	return d.TransceiveContext(context.Background(), data)
}

// TransceiveContext loads data into the FIFO, starts the Transceive
// command and polls the interrupt flags for completion. The returned
// error covers bus faults only; RF-level failures come back as a Result
// with OK=false.
func (d *Device) TransceiveContext(ctx context.Context, data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, newValidationError("Transceive", "no data given")
	}

	snapshot, err := d.readRegisters(regComIrq, regFIFOLevel, regBitFraming)
	if err != nil {
		return Result{}, err
	}
	bitFraming := snapshot[2]
	debugf("transceive: irq=0x%02X level=%d framing=0x%02X tx=% X",
		snapshot[0], snapshot[1], bitFraming, data)

	// One batched transaction: enable all interrupt sources, clear
	// pending flags, flush the FIFO, load the payload and start the
	// command with the StartSend bit.
	if err := d.writeRegisters(
		[]byte{regComIEn, 0xFF},
		[]byte{regComIrq, 0x7F},
		[]byte{regFIFOLevel, 0x80},
		[]byte{regCommand, cmdIdle},
		append([]byte{regFIFOData}, data...),
		[]byte{regCommand, cmdTransceive},
		[]byte{regBitFraming, bitFraming | 0x80},
	); err != nil {
		return Result{}, err
	}

	var lastIrq byte
	done, pollErr := poll.Until(ctx, transceiveAttempts, transceiveInterval, func() (bool, error) {
		irq, irqErr := d.readRegister(regComIrq)
		if irqErr != nil {
			return false, irqErr
		}
		lastIrq = irq
		// Either "receive complete" or "no more waiting expected" ends
		// the poll; some silicon only raises one of the two, so both
		// exits are checked.
		return irq&irqRx != 0 || irq&irqWait == 0, nil
	})

	// StartSend is cleared whatever happened above.
	if clearErr := d.clearBitMask(regBitFraming, 0x80); clearErr != nil && pollErr == nil {
		pollErr = clearErr
	}
	if pollErr != nil {
		return Result{}, pollErr
	}
	if !done {
		return Result{}, nil
	}

	status, err := d.readRegisters(regError, regFIFOLevel, regControl)
	if err != nil {
		return Result{}, err
	}
	errorBits, level, control := status[0], status[1], status[2]
	if errorBits&errFatalMask != 0 {
		debugf("transceive: error register 0x%02X", errorBits)
		return Result{}, nil
	}

	// The timer interrupt firing means the exchange ran out of time even
	// though the poll exited; the payload is still drained below.
	ok := lastIrq&irqTimer == 0

	count := int(level)
	lastBits := int(control & 0x07)
	bits := count * 8
	if lastBits != 0 {
		bits = (count-1)*8 + lastBits
	}
	if count < 1 {
		count = 1
	}
	if count > fifoDrainMax {
		count = fifoDrainMax
	}

	fifoRegs := make([]byte, count)
	for i := range fifoRegs {
		fifoRegs[i] = regFIFOData
	}
	payload, err := d.readRegisters(fifoRegs...)
	if err != nil {
		return Result{}, err
	}

	return Result{Data: payload, Bits: bits, OK: ok}, nil
}
