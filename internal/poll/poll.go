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

// Package poll provides bounded-iteration polling of hardware flags.
package poll

import (
	"context"
	"time"
)

// Condition checks a hardware flag once. It returns done=true when the
// waited-for state has been reached, or an error for a bus fault that
// should stop the poll immediately.
type Condition func() (done bool, err error)

// Until evaluates cond up to attempts times, sleeping interval between
// evaluations. The bounded attempt count is the contract: the poll never
// blocks indefinitely, it degrades to done=false when the attempts are
// exhausted. A cancelled context also ends the poll early.
func Until(ctx context.Context, attempts int, interval time.Duration, cond Condition) (bool, error) {
	for i := 0; i < attempts; i++ {
		done, err := cond()
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		if i == attempts-1 {
			break
		}
		if interval > 0 {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(interval):
			}
		} else {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			default:
			}
		}
	}
	return false, nil
}
