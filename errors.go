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
	"fmt"
)

// Initialization faults. These abort device setup and are never retried
// internally.
var (
	// ErrUnsupportedDevice indicates the VersionReg value does not match
	// any known MFRC522 silicon revision.
	ErrUnsupportedDevice = errors.New("unsupported device version")

	// ErrSelfTestFailed indicates the digital self-test output did not
	// match the reference vector for the detected silicon revision.
	ErrSelfTestFailed = errors.New("self-test failed")

	// ErrAntennaEnable indicates the antenna drivers did not report
	// enabled after initialization.
	ErrAntennaEnable = errors.New("antenna drivers not enabled")
)

// Expected protocol outcomes. These are frequent, non-fatal results of
// RF communication with zero or multiple tags in range; callers should
// treat them as "absent", not as faults.
var (
	// ErrNoTag indicates no tag answered the request frame.
	ErrNoTag = errors.New("no tag detected")

	// ErrUIDIncomplete indicates the anticollision cascade did not yield
	// a complete UID (BCC mismatch, CRC/SAK failure or a cascade-tag
	// protocol violation).
	ErrUIDIncomplete = errors.New("incomplete UID read")

	// ErrReadFailed indicates a tag data read did not complete.
	ErrReadFailed = errors.New("tag read failed")

	// ErrNDEFNotFound indicates the tag data area holds no NDEF message
	// TLV.
	ErrNDEFNotFound = errors.New("no NDEF message found")

	// ErrAuthFailed indicates a MIFARE Classic authentication did not
	// bring the Crypto1 unit online (wrong key, wrong sector or a tag
	// that left the field).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrWriteFailed indicates a tag data write was not acknowledged.
	ErrWriteFailed = errors.New("tag write failed")
)

// Transport faults.
var (
	// ErrTransportRead indicates a bus read failed.
	ErrTransportRead = errors.New("transport read failed")

	// ErrTransportWrite indicates a bus write failed.
	ErrTransportWrite = errors.New("transport write failed")

	// ErrTransportClosed indicates the transport is closed.
	ErrTransportClosed = errors.New("transport closed")
)

// ValidationError reports a malformed register frame. It is raised before
// any bus activity happens, so a failed validation never leaves the chip
// in a half-written state.
type ValidationError struct {
	Op     string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func newValidationError(op, reason string) *ValidationError {
	return &ValidationError{Op: op, Reason: reason}
}

// TransportError wraps a bus-level failure with the operation and port
// it occurred on.
type TransportError struct {
	Err  error
	Op   string
	Port string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Port, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportReadError creates a TransportError for a failed bus read.
func NewTransportReadError(op, port string) *TransportError {
	return &TransportError{Op: op, Port: port, Err: ErrTransportRead}
}

// NewTransportWriteError creates a TransportError for a failed bus write.
func NewTransportWriteError(op, port string) *TransportError {
	return &TransportError{Op: op, Port: port, Err: ErrTransportWrite}
}

// SelfTestError reports the first position where the self-test FIFO
// readback diverged from the reference vector. It unwraps to
// ErrSelfTestFailed.
type SelfTestError struct {
	Version byte
	Index   int
	Got     byte
	Want    byte
}

func (e *SelfTestError) Error() string {
	return fmt.Sprintf("self-test failed for version 0x%02X: byte %d is 0x%02X, want 0x%02X",
		e.Version, e.Index, e.Got, e.Want)
}

func (*SelfTestError) Unwrap() error {
	return ErrSelfTestFailed
}
