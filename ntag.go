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

	"github.com/hsanjuan/go-ndef"
)

const (
	// ntagDataPage is the first user-data page of an NFC Forum Type 2
	// tag; the pages before it hold UID, lock bits and the capability
	// container.
	ntagDataPage = 4

	// ntagPageSize is the page size of Type 2 tags.
	ntagPageSize = 4

	// ntagMaxChunks caps the data-area walk at 1 KiB, past the end of
	// the largest NTAG.
	ntagMaxChunks = 64
)

// NDEF message TLV tags on Type 2 tags.
const (
	tlvNull       = 0x00
	tlvNDEF       = 0x03
	tlvTerminator = 0xFE
)

// ReadPage reads 16 bytes (4 pages) starting at the given page.
func (d *Device) ReadPage(page byte) ([]byte, error) {
	return d.ReadPageContext(context.Background(), page)
}

// ReadPageContext sends a PICC READ for the given page. The 16 data
// bytes fit the FIFO drain cap exactly, so the trailing CRC_A bytes of
// the tag's reply are discarded by the transceive engine. The tag must
// have been selected (ReadUID) first; no authentication is involved on
// NTAG/Ultralight user pages.
func (d *Device) ReadPageContext(ctx context.Context, page byte) ([]byte, error) {
	request := []byte{piccRead, page}
	crc, ok, err := d.calcCRC(ctx, request)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: CRC unavailable", ErrReadFailed)
	}

	res, err := d.TransceiveContext(ctx, append(request, crc...))
	if err != nil {
		return nil, err
	}
	if !res.OK || len(res.Data) < fifoDrainMax {
		return nil, fmt.Errorf("%w: page %d", ErrReadFailed, page)
	}
	return res.Data[:fifoDrainMax], nil
}

// ReadNDEF reads and parses the tag's NDEF message.
func (d *Device) ReadNDEF() (*ndef.Message, error) {
	return d.ReadNDEFContext(context.Background())
}

// ReadNDEFContext walks the Type 2 TLV area from page 4, locates the
// NDEF message TLV and parses its payload.
func (d *Device) ReadNDEFContext(ctx context.Context) (*ndef.Message, error) {
	var buf []byte
	chunks := 0

	// ensure grows buf from sequential page reads until it holds at
	// least n bytes.
	ensure := func(n int) error {
		for len(buf) < n {
			if chunks >= ntagMaxChunks {
				return fmt.Errorf("%w: data area exhausted", ErrNDEFNotFound)
			}
			page := byte(ntagDataPage + chunks*fifoDrainMax/ntagPageSize)
			data, err := d.ReadPageContext(ctx, page)
			if err != nil {
				return err
			}
			buf = append(buf, data...)
			chunks++
		}
		return nil
	}

	// tlvLength decodes the one or three byte TLV length field at i,
	// returning the payload start offset and length.
	tlvLength := func(i int) (start, length int, err error) {
		if err := ensure(i + 2); err != nil {
			return 0, 0, err
		}
		if buf[i+1] != 0xFF {
			return i + 2, int(buf[i+1]), nil
		}
		if err := ensure(i + 4); err != nil {
			return 0, 0, err
		}
		return i + 4, int(buf[i+2])<<8 | int(buf[i+3]), nil
	}

	i := 0
	for {
		if err := ensure(i + 1); err != nil {
			return nil, err
		}
		switch buf[i] {
		case tlvNull:
			i++
		case tlvTerminator:
			return nil, ErrNDEFNotFound
		case tlvNDEF:
			start, length, err := tlvLength(i)
			if err != nil {
				return nil, err
			}
			if err := ensure(start + length); err != nil {
				return nil, err
			}
			msg := &ndef.Message{}
			if _, err := msg.Unmarshal(buf[start : start+length]); err != nil {
				return nil, fmt.Errorf("failed to parse NDEF message: %w", err)
			}
			return msg, nil
		default:
			// Lock/memory control or proprietary TLV: skip over it.
			start, length, err := tlvLength(i)
			if err != nil {
				return nil, err
			}
			i = start + length
		}
	}
}
