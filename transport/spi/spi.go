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

// Package spi provides the SPI bus transport for the MFRC522.
package spi

import (
	"fmt"

	mfrc522 "github.com/eeemarv/go-mfrc522"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

const (
	// The MFRC522 serial interface is specified up to 10 MHz; 1 MHz is
	// a safe default for breakout-board wiring.
	defaultFreq = 1 * physic.MegaHertz

	// CPOL=0, CPHA=0.
	mode = spi.Mode0
)

// Option is a functional option for configuring the transport.
type Option func(*Transport) error

// WithSpeed sets the bus clock in hertz.
func WithSpeed(hz int64) Option {
	return func(t *Transport) error {
		if hz <= 0 {
			return fmt.Errorf("invalid SPI speed %d Hz", hz)
		}
		t.speed = physic.Frequency(hz) * physic.Hertz
		return nil
	}
}

// Transport implements the mfrc522.Transport interface over SPI.
type Transport struct {
	port     spi.PortCloser
	conn     spi.Conn
	portName string
	speed    physic.Frequency
}

// New opens an SPI port (e.g. "/dev/spidev0.0") and connects to the
// reader.
func New(portName string, opts ...Option) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	transport := &Transport{
		portName: portName,
		speed:    defaultFreq,
	}
	for _, opt := range opts {
		if err := opt(transport); err != nil {
			return nil, err
		}
	}

	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port %s: %w", portName, err)
	}

	conn, err := port.Connect(transport.speed, mode, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to connect SPI: %w", err)
	}

	transport.port = port
	transport.conn = conn
	return transport, nil
}

// Transfer performs the segments as one SPI transaction. Segment KeepCS
// maps directly onto packet chip-select continuation, so a multi-entry
// register write stays a single framed transaction on the wire.
func (t *Transport) Transfer(segments ...mfrc522.Segment) ([][]byte, error) {
	if t.conn == nil {
		return nil, mfrc522.ErrTransportClosed
	}

	packets := make([]spi.Packet, len(segments))
	replies := make([][]byte, len(segments))
	for i, seg := range segments {
		reply := make([]byte, len(seg.Tx))
		packets[i] = spi.Packet{
			W:      seg.Tx,
			R:      reply,
			KeepCS: seg.KeepCS,
		}
		replies[i] = reply
	}

	if err := t.conn.TxPackets(packets); err != nil {
		return nil, &mfrc522.TransportError{
			Op:   "Transfer",
			Port: t.portName,
			Err:  err,
		}
	}
	return replies, nil
}

// Close closes the SPI port.
func (t *Transport) Close() error {
	t.conn = nil
	if t.port != nil {
		if err := t.port.Close(); err != nil {
			return fmt.Errorf("SPI close failed: %w", err)
		}
		t.port = nil
	}
	return nil
}

// Type returns the transport type.
func (*Transport) Type() mfrc522.TransportType {
	return mfrc522.TransportSPI
}
