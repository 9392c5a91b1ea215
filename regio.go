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

import "fmt"

// readAddress encodes a register number into the byte that requests a
// register read on the bus: address in bits 6..1, MSB set.
func readAddress(reg byte) byte {
	return reg<<1&0x7E | 0x80
}

// writeAddress encodes a register number into the byte that opens a
// register write on the bus: address in bits 6..1, MSB clear.
func writeAddress(reg byte) byte {
	return reg << 1 & 0x7E
}

// readRegisters reads the given registers in one bus transaction. The
// request frame carries one read-address byte per register plus a
// trailing dummy byte; the chip replies one byte behind the request, so
// the first reply byte is an echo and is dropped.
func (d *Device) readRegisters(regs ...byte) ([]byte, error) {
	if len(regs) == 0 {
		return nil, newValidationError("readRegisters", "no registers given")
	}

	tx := make([]byte, len(regs)+1)
	for i, reg := range regs {
		tx[i] = readAddress(reg)
	}
	// tx[len(regs)] stays zero: the dummy byte that clocks out the last
	// register value.

	replies, err := d.transport.Transfer(Segment{Tx: tx})
	if err != nil {
		return nil, fmt.Errorf("register read failed: %w", err)
	}
	if len(replies) != 1 || len(replies[0]) != len(tx) {
		return nil, NewTransportReadError("readRegisters", string(d.transport.Type()))
	}

	return replies[0][1:], nil
}

// readRegister reads a single register.
func (d *Device) readRegister(reg byte) (byte, error) {
	vals, err := d.readRegisters(reg)
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

// writeRegisters performs the given (register, value...) entries as one
// bus transaction. Every entry needs at least one data byte. All entries
// are validated before anything touches the bus; chip select is held
// between entries and released after the last one.
func (d *Device) writeRegisters(entries ...[]byte) error {
	if len(entries) == 0 {
		return newValidationError("writeRegisters", "no entries given")
	}
	for i, entry := range entries {
		if len(entry) < 2 {
			return newValidationError("writeRegisters",
				fmt.Sprintf("entry %d needs a register and at least one value", i))
		}
	}

	segments := make([]Segment, len(entries))
	for i, entry := range entries {
		tx := make([]byte, len(entry))
		tx[0] = writeAddress(entry[0])
		copy(tx[1:], entry[1:])
		segments[i] = Segment{
			Tx:     tx,
			KeepCS: i < len(entries)-1,
		}
	}

	if _, err := d.transport.Transfer(segments...); err != nil {
		return fmt.Errorf("register write failed: %w", err)
	}
	return nil
}

// writeRegister writes a single value to a register.
func (d *Device) writeRegister(reg, value byte) error {
	return d.writeRegisters([]byte{reg, value})
}

// setBitMask sets the masked bits of a register. A zero mask or an
// unchanged value skips the bus write entirely.
func (d *Device) setBitMask(reg, mask byte) error {
	if mask == 0 {
		return nil
	}
	current, err := d.readRegister(reg)
	if err != nil {
		return err
	}
	next := current | mask
	if next == current {
		return nil
	}
	return d.writeRegister(reg, next)
}

// clearBitMask clears the masked bits of a register. A zero mask or an
// unchanged value skips the bus write entirely.
func (d *Device) clearBitMask(reg, mask byte) error {
	if mask == 0 {
		return nil
	}
	current, err := d.readRegister(reg)
	if err != nil {
		return err
	}
	next := current &^ mask
	if next == current {
		return nil
	}
	return d.writeRegister(reg, next)
}
