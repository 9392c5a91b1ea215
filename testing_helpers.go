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

import "sync"

// RegisterWrite records one register write seen by MockTransport.
type RegisterWrite struct {
	Reg   byte
	Value byte
}

// MockExchange scripts the chip-side outcome of one Transceive command.
type MockExchange struct {
	// Data is the received payload the FIFO will hold.
	Data []byte

	// Bits is the received bit count. Zero means len(Data)*8.
	Bits int

	// Timeout keeps the wait interrupt bits raised without RxIRq so the
	// completion poll runs out of attempts.
	Timeout bool

	// TimerIRq raises the timer interrupt: the poll exits but the
	// result is downgraded to OK=false.
	TimerIRq bool

	// Error is placed in ErrorReg after the exchange.
	Error byte
}

// MockTransport is an in-memory Transport that models the MFRC522's
// register file, FIFO and CRC coprocessor. Tag behavior is scripted per
// Transceive command through a queue of MockExchange values, which lets
// tests drive the detect/anticollision/select flow without hardware.
type MockTransport struct {
	regs           map[byte]byte
	selfTestResult []byte
	authFail       bool
	fifoOut        []byte
	fifoIn         []byte
	writes         []RegisterWrite
	exchanges      []MockExchange
	err            error
	transfers      int
	closed         bool
	mu             sync.Mutex
}

// NewMockTransport creates a mock transport with an empty register file.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		regs: make(map[byte]byte),
	}
}

// SetRegister presets a register value.
func (m *MockTransport) SetRegister(reg, value byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[reg] = value
}

// Register returns the current value of a register.
func (m *MockTransport) Register(reg byte) byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regs[reg]
}

// SetVersion presets VersionReg, selecting the self-test reference
// vector the mock plays back.
func (m *MockTransport) SetVersion(version byte) {
	m.SetRegister(regVersion, version)
}

// SetSelfTestResult overrides the FIFO content the self-test produces.
// Without an override the reference vector for the configured version is
// played back, so the test passes.
func (m *MockTransport) SetSelfTestResult(result []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selfTestResult = append([]byte(nil), result...)
}

// SetMifareAuthFail makes subsequent MFAuthent commands hang without
// completing, the way a wrong key does on hardware.
func (m *MockTransport) SetMifareAuthFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authFail = fail
}

// QueueExchange appends a scripted Transceive outcome.
func (m *MockTransport) QueueExchange(ex MockExchange) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchanges = append(m.exchanges, ex)
}

// SetError makes every Transfer fail with err.
func (m *MockTransport) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// TransferCount returns the number of Transfer calls seen.
func (m *MockTransport) TransferCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transfers
}

// Writes returns all recorded register writes.
func (m *MockTransport) Writes() []RegisterWrite {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RegisterWrite(nil), m.writes...)
}

// WriteCount returns how many writes hit the given register.
func (m *MockTransport) WriteCount(reg byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, w := range m.writes {
		if w.Reg == reg {
			count++
		}
	}
	return count
}

// Transfer implements Transport against the modeled register file.
func (m *MockTransport) Transfer(segments ...Segment) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.closed {
		return nil, ErrTransportClosed
	}
	m.transfers++

	replies := make([][]byte, len(segments))
	for i, seg := range segments {
		reply := make([]byte, len(seg.Tx))
		if len(seg.Tx) > 0 && seg.Tx[0]&0x80 != 0 {
			// Read frame: one address byte per register plus a dummy;
			// values come back one byte behind the requests.
			for j := 0; j < len(seg.Tx)-1; j++ {
				reply[j+1] = m.readReg(seg.Tx[j] & 0x7E >> 1)
			}
		} else if len(seg.Tx) >= 2 {
			m.writeReg(seg.Tx[0]>>1, seg.Tx[1:])
		}
		replies[i] = reply
	}
	return replies, nil
}

// Close implements Transport.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Type implements Transport.
func (*MockTransport) Type() TransportType {
	return TransportMock
}

func (m *MockTransport) readReg(reg byte) byte {
	if reg == regFIFOData {
		if len(m.fifoOut) == 0 {
			return 0
		}
		value := m.fifoOut[0]
		m.fifoOut = m.fifoOut[1:]
		return value
	}
	return m.regs[reg]
}

func (m *MockTransport) writeReg(reg byte, values []byte) {
	for _, v := range values {
		m.writes = append(m.writes, RegisterWrite{Reg: reg, Value: v})
	}

	switch reg {
	case regFIFOData:
		m.fifoIn = append(m.fifoIn, values...)
	case regFIFOLevel:
		if values[len(values)-1]&0x80 != 0 {
			m.fifoIn = nil
			m.fifoOut = nil
			m.regs[regFIFOLevel] = 0
		}
	case regComIrq, regDivIrq:
		// Bit 7 clear means "clear the masked bits".
		v := values[len(values)-1]
		if v&0x80 == 0 {
			m.regs[reg] &^= v
		} else {
			m.regs[reg] |= v & 0x7F
		}
	case regCommand:
		m.regs[reg] = values[len(values)-1]
		switch m.regs[reg] {
		case cmdCalcCRC:
			m.runCalcCRC()
		case cmdMFAuthent:
			if !m.authFail {
				m.regs[regComIrq] |= irqIdle
				m.regs[regStatus2] |= status2Crypto1
			}
		}
	case regBitFraming:
		m.regs[reg] = values[len(values)-1]
		if m.regs[reg]&0x80 != 0 && m.regs[regCommand] == cmdTransceive {
			m.runExchange()
		}
	default:
		m.regs[reg] = values[len(values)-1]
	}
}

func (m *MockTransport) runCalcCRC() {
	if m.regs[regAutoTest] == 0x09 {
		// Self-test mode: the CalcCRC command kicks off the digital
		// self-check instead of a CRC computation.
		result := m.selfTestResult
		if result == nil {
			if ref, ok := selfTestReference[m.regs[regVersion]]; ok {
				result = ref[:]
			}
		}
		m.fifoOut = append([]byte(nil), result...)
		m.regs[regFIFOLevel] = byte(len(result))
		m.regs[regDivIrq] |= divIrqCRC
		return
	}

	lo, hi := crcA(m.fifoIn)
	m.regs[regCRCResultL] = lo
	m.regs[regCRCResultH] = hi
	m.regs[regDivIrq] |= divIrqCRC
}

func (m *MockTransport) runExchange() {
	var ex MockExchange
	if len(m.exchanges) > 0 {
		ex = m.exchanges[0]
		m.exchanges = m.exchanges[1:]
	} else {
		ex = MockExchange{Timeout: true}
	}

	m.regs[regError] = ex.Error
	m.fifoOut = append([]byte(nil), ex.Data...)
	m.regs[regFIFOLevel] = byte(len(ex.Data))

	bits := ex.Bits
	if bits == 0 {
		bits = len(ex.Data) * 8
	}
	m.regs[regControl] = byte(bits % 8)

	switch {
	case ex.Timeout:
		// Wait bits stay up, RxIRq never comes: the completion poll
		// exhausts its attempts.
		m.regs[regComIrq] = irqIdle
	case ex.TimerIRq:
		m.regs[regComIrq] = irqTimer
	default:
		m.regs[regComIrq] = irqRx | irqIdle
	}
}

// crcA computes the ISO14443A CRC_A (poly 0x8408 reflected, preset
// 0x6363) the chip's coprocessor would produce.
func crcA(data []byte) (lo, hi byte) {
	crc := uint16(0x6363)
	for _, b := range data {
		b ^= byte(crc)
		b ^= b << 4
		crc = crc>>8 ^ uint16(b)<<8 ^ uint16(b)<<3 ^ uint16(b)>>4
	}
	return byte(crc), byte(crc >> 8)
}
