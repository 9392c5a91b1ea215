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

package polling

import (
	"context"
	"testing"
	"time"

	mfrc522 "github.com/eeemarv/go-mfrc522"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(t *testing.T, opts ...Option) (*Scanner, *mfrc522.MockTransport) {
	t.Helper()

	mock := mfrc522.NewMockTransport()
	device, err := mfrc522.New(mock, mfrc522.WithoutSelfTest())
	require.NoError(t, err)

	scanner, err := NewScanner(device, opts...)
	require.NoError(t, err)
	return scanner, mock
}

func TestNewScannerValidation(t *testing.T) {
	t.Parallel()

	_, err := NewScanner(nil)
	assert.Error(t, err)

	mock := mfrc522.NewMockTransport()
	device, err := mfrc522.New(mock)
	require.NoError(t, err)

	_, err = NewScanner(device, WithPeriod(0))
	assert.Error(t, err)
}

func TestScannerBusySkip(t *testing.T) {
	t.Parallel()

	scanner, mock := newTestScanner(t)
	scanner.busy.Store(true)

	scanner.tick(context.Background())

	stats := scanner.Stats()
	assert.Equal(t, uint64(1), stats.Skips)
	assert.Zero(t, stats.Reads)
	assert.Zero(t, stats.Errors)
	assert.Zero(t, mock.TransferCount(), "skipped tick must not touch the bus")
}

func TestScannerCycleNoTag(t *testing.T) {
	t.Parallel()

	var uids []mfrc522.UID
	scanner, _ := newTestScanner(t, WithOnUID(func(uid mfrc522.UID) {
		uids = append(uids, uid)
	}))

	// No scripted exchanges: REQA times out and the cycle ends quietly.
	scanner.cycle(context.Background())

	stats := scanner.Stats()
	assert.Zero(t, stats.Reads)
	assert.Zero(t, stats.Errors)
	assert.Empty(t, uids)
}

func TestScannerCycleReadsUID(t *testing.T) {
	t.Parallel()

	var uids []mfrc522.UID
	scanner, mock := newTestScanner(t, WithOnUID(func(uid mfrc522.UID) {
		uids = append(uids, uid)
	}))

	// ATQA, then a single-size UID with its BCC, then the SAK. The HLTA
	// at the end of the cycle is left unscripted and times out, which is
	// the normal outcome for a halted tag.
	mock.QueueExchange(mfrc522.MockExchange{Data: []byte{0x04, 0x00}})
	mock.QueueExchange(mfrc522.MockExchange{Data: []byte{0x12, 0x34, 0x56, 0x78, 0x08}})
	mock.QueueExchange(mfrc522.MockExchange{Data: []byte{0x08, 0x00, 0x00}})

	scanner.cycle(context.Background())

	stats := scanner.Stats()
	assert.Equal(t, uint64(1), stats.Reads)
	assert.Zero(t, stats.Errors)
	if assert.Len(t, uids, 1) {
		assert.Equal(t, "12345678", uids[0].String())
	}
}

func TestScannerCycleReadError(t *testing.T) {
	t.Parallel()

	var errs []error
	scanner, mock := newTestScanner(t, WithOnError(func(err error) {
		errs = append(errs, err)
	}))

	// A tag answers REQA but never survives anticollision.
	mock.QueueExchange(mfrc522.MockExchange{Data: []byte{0x04, 0x00}})

	scanner.cycle(context.Background())

	stats := scanner.Stats()
	assert.Zero(t, stats.Reads)
	assert.Equal(t, uint64(1), stats.Errors)
	if assert.Len(t, errs, 1) {
		assert.ErrorIs(t, errs[0], mfrc522.ErrUIDIncomplete)
	}
}

func TestScannerRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	scanner, _ := newTestScanner(t, WithPeriod(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- scanner.Run(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scanner did not stop after cancel")
	}
}
