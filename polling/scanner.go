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

// Package polling runs a periodic card scan loop on top of a Device.
package polling

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	mfrc522 "github.com/eeemarv/go-mfrc522"
)

// defaultPeriod is the interval between scan cycles.
const defaultPeriod = 500 * time.Millisecond

// UIDHandler is called for each card read during a scan cycle.
type UIDHandler func(uid mfrc522.UID)

// ErrorHandler is called when a scan cycle fails.
type ErrorHandler func(err error)

// Option configures a Scanner.
type Option func(*Scanner) error

// WithPeriod sets the interval between scan cycles.
func WithPeriod(period time.Duration) Option {
	return func(s *Scanner) error {
		if period <= 0 {
			return errors.New("scan period must be positive")
		}
		s.period = period
		return nil
	}
}

// WithOnUID sets the card read callback.
func WithOnUID(handler UIDHandler) Option {
	return func(s *Scanner) error {
		s.onUID = handler
		return nil
	}
}

// WithOnError sets the cycle error callback.
func WithOnError(handler ErrorHandler) Option {
	return func(s *Scanner) error {
		s.onError = handler
		return nil
	}
}

// Stats is a snapshot of scanner counters.
type Stats struct {
	// Reads counts cycles that delivered a UID.
	Reads uint64

	// Errors counts cycles that failed.
	Errors uint64

	// Skips counts ticks dropped because the previous cycle was still
	// running.
	Skips uint64
}

// Scanner periodically reinitializes the reader, probes the field for a
// card and reads its UID. Cycles run on their own goroutine; a tick that
// arrives while a cycle is still in flight is dropped rather than
// queued, so a slow bus cannot pile up work.
type Scanner struct {
	device  *mfrc522.Device
	period  time.Duration
	onUID   UIDHandler
	onError ErrorHandler

	busy   atomic.Bool
	reads  atomic.Uint64
	errors atomic.Uint64
	skips  atomic.Uint64
}

// NewScanner creates a scanner over an initialized device.
func NewScanner(device *mfrc522.Device, opts ...Option) (*Scanner, error) {
	if device == nil {
		return nil, errors.New("device is required")
	}

	scanner := &Scanner{
		device: device,
		period: defaultPeriod,
	}
	for _, opt := range opts {
		if err := opt(scanner); err != nil {
			return nil, err
		}
	}
	return scanner, nil
}

// Stats returns a snapshot of the scanner counters.
func (s *Scanner) Stats() Stats {
	return Stats{
		Reads:  s.reads.Load(),
		Errors: s.errors.Load(),
		Skips:  s.skips.Load(),
	}
}

// Run scans until the context is canceled. It blocks; run it on a
// goroutine if the caller needs to keep going.
func (s *Scanner) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick launches one scan cycle unless the previous one is still running.
func (s *Scanner) tick(ctx context.Context) {
	if !s.busy.CompareAndSwap(false, true) {
		s.skips.Add(1)
		return
	}
	go s.runCycle(ctx)
}

func (s *Scanner) runCycle(ctx context.Context) {
	defer s.busy.Store(false)
	s.cycle(ctx)
}

// cycle is one pass: fresh RF state, field probe, UID read, halt. The
// antenna is switched off afterwards so the field is only up while a
// cycle runs.
func (s *Scanner) cycle(ctx context.Context) {
	defer func() {
		_ = s.device.AntennaOff()
	}()

	if err := s.device.Reinit(); err != nil {
		s.reportError(err)
		return
	}

	present, err := s.device.DetectTagContext(ctx)
	if err != nil {
		s.reportError(err)
		return
	}
	if !present {
		return
	}

	uid, err := s.device.ReadUIDContext(ctx)
	if err != nil {
		s.reportError(err)
		return
	}

	s.reads.Add(1)
	if s.onUID != nil {
		s.onUID(uid)
	}

	// A halted card stays quiet until it leaves and re-enters the
	// field, so the same card is not reported on every cycle.
	_ = s.device.HaltContext(ctx)
}

func (s *Scanner) reportError(err error) {
	s.errors.Add(1)
	if s.onError != nil {
		s.onError(err)
	}
}
