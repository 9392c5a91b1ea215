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

// Segment is one full-duplex exchange within a bus transaction. The bus
// clocks out Tx and returns exactly len(Tx) reply bytes. When KeepCS is
// set, chip select is held asserted into the next segment so that a
// multi-segment register write forms a single framed transaction; the
// final segment of a transaction leaves KeepCS unset, which closes it.
type Segment struct {
	Tx     []byte
	KeepCS bool
}

// Transport is the bus interface the driver talks through. It is
// implemented by the spi subpackage for real hardware and by
// MockTransport for tests; the driver depends only on this contract.
type Transport interface {
	// Transfer performs the given segments as one bus transaction and
	// returns one reply buffer per segment, each the same length as the
	// segment's Tx.
	Transfer(segments ...Segment) ([][]byte, error)

	// Close closes the transport connection.
	Close() error

	// Type returns the transport type.
	Type() TransportType
}

// TransportType represents the type of transport.
type TransportType string

const (
	// TransportSPI represents SPI bus transport.
	TransportSPI TransportType = "spi"
	// TransportMock represents a mock transport for testing.
	TransportMock TransportType = "mock"
)
