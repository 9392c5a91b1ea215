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
	"time"

	"github.com/eeemarv/go-mfrc522/internal/poll"
)

const (
	selfTestAttempts = 100
	selfTestInterval = 1 * time.Millisecond
)

// SelfTest runs the chip's digital self-test.
func (d *Device) SelfTest() error {
	return d.SelfTestContext(context.Background())
}

// SelfTestContext runs the vendor-defined self-test sequence (datasheet
// 16.1.1) and compares the 64 byte FIFO output against the reference
// vector for the detected silicon revision. This exercises the chip's
// digital core, not the RF protocol; clone chips with incomplete test
// registers fail it even when they read tags fine, which is why Init can
// be configured to skip it.
func (d *Device) SelfTestContext(ctx context.Context) error {
	version, err := d.readRegister(regVersion)
	if err != nil {
		return err
	}
	reference, known := selfTestReference[version]
	if !known {
		return fmt.Errorf("%w: version register 0x%02X", ErrUnsupportedDevice, version)
	}
	d.version = version

	if err := d.Reset(); err != nil {
		return err
	}

	// Clear the internal buffer: flush the FIFO, write 25 zero bytes and
	// store them with the Mem command.
	zeros := make([]byte, 26)
	zeros[0] = regFIFOData
	if err := d.writeRegisters(
		[]byte{regFIFOLevel, 0x80},
		zeros,
		[]byte{regCommand, cmdMem},
	); err != nil {
		return err
	}

	// Enable self-test mode and start it with a CalcCRC on one zero byte.
	if err := d.writeRegisters(
		[]byte{regCommand, cmdIdle},
		[]byte{regFIFOLevel, 0x80},
		[]byte{regAutoTest, 0x09},
		[]byte{regFIFOData, 0x00},
		[]byte{regCommand, cmdCalcCRC},
	); err != nil {
		return err
	}

	done, err := poll.Until(ctx, selfTestAttempts, selfTestInterval, func() (bool, error) {
		irq, irqErr := d.readRegister(regDivIrq)
		if irqErr != nil {
			return false, irqErr
		}
		return irq&divIrqCRC != 0, nil
	})
	if err != nil {
		return err
	}
	if !done {
		return fmt.Errorf("%w: test did not complete", ErrSelfTestFailed)
	}

	fifoRegs := make([]byte, selfTestLen)
	for i := range fifoRegs {
		fifoRegs[i] = regFIFOData
	}
	result, err := d.readRegisters(fifoRegs...)
	if err != nil {
		return err
	}

	if err := d.writeRegister(regAutoTest, 0x00); err != nil {
		return err
	}

	for i, got := range result {
		if got != reference[i] {
			return &SelfTestError{
				Version: version,
				Index:   i,
				Got:     got,
				Want:    reference[i],
			}
		}
	}

	debugf("self-test passed for version 0x%02X", version)
	return nil
}
