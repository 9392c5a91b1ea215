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
)

const (
	anticollAttempts = 5
	// First-attempt settle time: lets tags that just entered the field
	// power up before the anticollision round.
	anticollSettle = 2 * time.Millisecond
)

// cascadeSelect lists the select command per cascade level.
var cascadeSelect = [3]byte{piccSelCL1, piccSelCL2, piccSelCL3}

// DetectTag sends a REQA and reports whether a tag answered. Bus faults
// are logged and reported as "no tag".
func (d *Device) DetectTag() bool {
	present, err := d.DetectTagContext(context.Background())
	if err != nil {
		debugf("detect: %v", err)
		return false
	}
	return present
}

// DetectTagContext sends a REQA short frame and waits for the 2 byte
// ATQA. Any other outcome means no tag is present, which is not an
// error.
func (d *Device) DetectTagContext(ctx context.Context) (bool, error) {
	// REQA is a 7 bit short frame.
	if err := d.writeRegister(regBitFraming, 0x07); err != nil {
		return false, err
	}
	res, err := d.TransceiveContext(ctx, []byte{piccReqA})
	if err != nil {
		return false, err
	}
	return res.OK && res.Bits == 16, nil
}

// ReadUID runs the anticollision cascade and returns the tag's UID.
func (d *Device) ReadUID() (UID, error) {
	return d.ReadUIDContext(context.Background())
}

// ReadUIDContext walks cascade levels 1..3, validating each 5 byte
// anticollision reply with its BCC and confirming it with a CRC-protected
// select exchange. The SAK cascade bit decides whether the UID is
// complete at the current level; cascade-tag (0x88) markers must agree
// with it or the read fails. By construction the returned UID is exactly
// 4, 7 or 10 bytes. Protocol failures return ErrUIDIncomplete; only bus
// faults surface as other errors.
func (d *Device) ReadUIDContext(ctx context.Context) (UID, error) {
	var uid UID

	for level, sel := range cascadeSelect {
		part, err := d.anticollision(ctx, sel)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, ErrUIDIncomplete
		}

		sak, ok, err := d.selectTag(ctx, sel, part)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUIDIncomplete
		}

		if level == len(cascadeSelect)-1 {
			// Level 3 always terminates: a triple-size UID takes all
			// four bytes of the last fragment.
			return append(uid, part[:4]...), nil
		}

		if sak&sakCascade == 0 {
			// UID complete at this level. A cascade-tag marker in the
			// first byte would contradict that.
			if part[0] == piccCascadeTag {
				return nil, ErrUIDIncomplete
			}
			return append(uid, part[:4]...), nil
		}

		// Cascade continues: the fragment must lead with the cascade
		// tag, which is a marker, never part of the UID.
		if part[0] != piccCascadeTag {
			return nil, ErrUIDIncomplete
		}
		uid = append(uid, part[1:4]...)
	}

	return nil, ErrUIDIncomplete
}

// anticollision transceives the ANTICOLLISION frame for one cascade
// level, retrying up to anticollAttempts times. It returns the 5 byte
// reply (4 UID/cascade bytes + BCC) or nil when no attempt produced a
// consistent reply.
func (d *Device) anticollision(ctx context.Context, sel byte) ([]byte, error) {
	for attempt := 0; attempt < anticollAttempts; attempt++ {
		if attempt == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(anticollSettle):
			}
		}

		// Full bytes, no partial bits.
		if err := d.writeRegister(regBitFraming, 0x00); err != nil {
			return nil, err
		}
		res, err := d.TransceiveContext(ctx, []byte{sel, nvbAnticoll})
		if err != nil {
			return nil, err
		}
		if !res.OK || res.Bits != 40 || len(res.Data) != 5 {
			continue
		}
		if res.Data[0]^res.Data[1]^res.Data[2]^res.Data[3] != res.Data[4] {
			debugf("anticollision: BCC mismatch on % X", res.Data)
			continue
		}
		return res.Data, nil
	}
	return nil, nil
}

// selectTag sends the SELECT frame for one cascade level and returns the
// SAK byte. ok=false covers CRC coprocessor exhaustion and failed or
// empty SAK exchanges.
func (d *Device) selectTag(ctx context.Context, sel byte, part []byte) (sak byte, ok bool, err error) {
	request := make([]byte, 0, 9)
	request = append(request, sel, nvbSelect)
	request = append(request, part...)

	crc, ok, err := d.calcCRC(ctx, request)
	if err != nil || !ok {
		return 0, false, err
	}

	res, err := d.TransceiveContext(ctx, append(request, crc...))
	if err != nil {
		return 0, false, err
	}
	if !res.OK || len(res.Data) == 0 {
		return 0, false, nil
	}
	return res.Data[0], true, nil
}

// Halt sends HLTA, parking the selected tag so it stops answering REQA
// until it leaves and re-enters the field.
func (d *Device) Halt() error {
	return d.HaltContext(context.Background())
}

// HaltContext sends the CRC-protected HLTA frame. A halted tag does not
// acknowledge, so the expected outcome is a transceive timeout; only bus
// faults are reported.
func (d *Device) HaltContext(ctx context.Context) error {
	request := []byte{piccHaltA, 0x00}
	crc, ok, err := d.calcCRC(ctx, request)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	_, err = d.TransceiveContext(ctx, append(request, crc...))
	return err
}
