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
)

// DeviceConfig contains configuration options for the Device.
type DeviceConfig struct {
	// SelfTest runs the digital self-test during Init. Disable it for
	// clone silicon that implements the protocol but not the vendor
	// test registers.
	SelfTest bool

	// AntennaGain is written to RFCfgReg bits 6..4 when non-zero.
	AntennaGain byte
}

// DefaultDeviceConfig returns default device configuration.
func DefaultDeviceConfig() *DeviceConfig {
	return &DeviceConfig{
		SelfTest: true,
	}
}

// Device represents an MFRC522 reader.
//
// Thread Safety: Device is NOT thread-safe. The chip's FIFO and command
// register are a single unbuffered resource; all methods must be called
// from a single goroutine or protected with external synchronization.
type Device struct {
	transport Transport
	config    *DeviceConfig
	version   byte
}

// New creates a new MFRC522 device on the given transport.
func New(transport Transport, opts ...Option) (*Device, error) {
	device := &Device{
		transport: transport,
		config:    DefaultDeviceConfig(),
	}

	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}

	return device, nil
}

// Transport returns the underlying transport.
func (d *Device) Transport() Transport {
	return d.transport
}

// Version returns the VersionReg value captured during Init, or zero if
// Init has not run yet.
func (d *Device) Version() byte {
	return d.version
}

// Init initializes the MFRC522.
func (d *Device) Init() error {
	return d.InitContext(context.Background())
}

// InitContext resets the chip, programs the timer, modulation and mode
// registers, optionally runs the self-test, and enables the antenna. It
// fails with ErrUnsupportedDevice for unknown silicon, ErrSelfTestFailed
// for a reference mismatch and ErrAntennaEnable when the antenna drivers
// do not come up.
func (d *Device) InitContext(ctx context.Context) error {
	if err := d.Reset(); err != nil {
		return err
	}

	version, err := d.readRegister(regVersion)
	if err != nil {
		return err
	}
	if _, known := selfTestReference[version]; !known {
		return fmt.Errorf("%w: version register 0x%02X", ErrUnsupportedDevice, version)
	}
	d.version = version

	if d.config.SelfTest {
		if err := d.SelfTestContext(ctx); err != nil {
			return err
		}
		// The self-test leaves the chip in test mode; start over from a
		// clean reset before programming the RF registers.
		if err := d.Reset(); err != nil {
			return err
		}
	}

	return d.initRF()
}

// Reinit soft-resets and reprograms the RF registers without repeating
// the version gate or the self-test. The scan loop uses it at the start
// of every cycle.
func (d *Device) Reinit() error {
	if err := d.Reset(); err != nil {
		return err
	}
	return d.initRF()
}

// initRF programs the timer, modulation and mode registers and brings
// the antenna up.
func (d *Device) initRF() error {
	// Timer: TAuto, 10us ticks, 30ms reload. 100% ASK modulation,
	// CRC preset 0x6363 for the coprocessor.
	if err := d.writeRegisters(
		[]byte{regTMode, 0x8D},
		[]byte{regTPrescaler, 0x3E},
		[]byte{regTReloadL, 30},
		[]byte{regTReloadH, 0},
		[]byte{regTxASK, 0x40},
		[]byte{regMode, 0x3D},
	); err != nil {
		return err
	}

	if d.config.AntennaGain != 0 {
		if err := d.writeRegister(regRFCfg, d.config.AntennaGain<<4&0x70); err != nil {
			return err
		}
	}

	return d.AntennaOn()
}

// Reset issues a soft reset and waits for the chip to come out of
// power-down.
func (d *Device) Reset() error {
	if err := d.writeRegister(regCommand, cmdSoftReset); err != nil {
		return err
	}
	// Oscillator start-up after soft reset, datasheet 8.8.2.
	time.Sleep(50 * time.Millisecond)
	return nil
}

// AntennaOn enables the antenna drivers and verifies they report
// enabled.
func (d *Device) AntennaOn() error {
	if err := d.setBitMask(regTxControl, 0x03); err != nil {
		return err
	}
	value, err := d.readRegister(regTxControl)
	if err != nil {
		return err
	}
	if value&0x03 != 0x03 {
		return fmt.Errorf("%w: TxControl is 0x%02X", ErrAntennaEnable, value)
	}
	return nil
}

// AntennaOff disables the antenna drivers.
func (d *Device) AntennaOff() error {
	return d.clearBitMask(regTxControl, 0x03)
}

// Close closes the device connection.
func (d *Device) Close() error {
	if d.transport != nil {
		if err := d.transport.Close(); err != nil {
			return fmt.Errorf("failed to close transport: %w", err)
		}
	}
	return nil
}
