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

// MFRC522 register addresses (datasheet section 9). The 6-bit address is
// shifted into the bus frame by readAddress/writeAddress; the constants
// here are the raw register numbers.
const (
	regCommand     = 0x01 // starts and stops command execution
	regComIEn      = 0x02 // interrupt request enable bits
	regDivIEn      = 0x03 // interrupt request enable bits (CRC, MFIN)
	regComIrq      = 0x04 // interrupt request bits
	regDivIrq      = 0x05 // interrupt request bits (CRC, MFIN)
	regError       = 0x06 // error bits of the last command executed
	regStatus1     = 0x07 // communication status bits
	regStatus2     = 0x08 // receiver and transmitter status bits
	regFIFOData    = 0x09 // in/out of the 64 byte FIFO buffer
	regFIFOLevel   = 0x0A // number of bytes stored in the FIFO
	regWaterLevel  = 0x0B // FIFO under/overflow warning level
	regControl     = 0x0C // miscellaneous control, RxLastBits
	regBitFraming  = 0x0D // bit-oriented frame adjustments, StartSend
	regColl        = 0x0E // first bit collision position
	regMode        = 0x11 // general TX and RX mode
	regTxMode      = 0x12 // transmit data rate and framing
	regRxMode      = 0x13 // receive data rate and framing
	regTxControl   = 0x14 // antenna driver control
	regTxASK       = 0x15 // transmit modulation
	regTxSel       = 0x16 // antenna driver input selection
	regRxSel       = 0x17 // receiver input selection
	regRxThreshold = 0x18 // bit decoder thresholds
	regDemod       = 0x19 // demodulator settings
	regMfTx        = 0x1C // ISO14443A transmit parameters
	regMfRx        = 0x1D // ISO14443A receive parameters
	regSerialSpeed = 0x1F // UART speed (unused over SPI)
	regCRCResultH  = 0x21 // CRC coprocessor result, high byte
	regCRCResultL  = 0x22 // CRC coprocessor result, low byte
	regModWidth    = 0x24 // modulation width
	regRFCfg       = 0x26 // receiver gain
	regGsN         = 0x27 // antenna driver conductance (modulation on)
	regCWGsP       = 0x28 // antenna driver conductance (no modulation)
	regModGsP      = 0x29 // antenna driver conductance (modulation)
	regTMode       = 0x2A // timer mode
	regTPrescaler  = 0x2B // timer prescaler low bits
	regTReloadH    = 0x2C // timer reload value, high byte
	regTReloadL    = 0x2D // timer reload value, low byte
	regTCounterH   = 0x2E // timer value, high byte
	regTCounterL   = 0x2F // timer value, low byte
	regTestSel1    = 0x31
	regTestSel2    = 0x32
	regTestPinEn   = 0x33
	regTestPinVal  = 0x34
	regTestBus     = 0x35
	regAutoTest    = 0x36 // self-test control
	regVersion     = 0x37 // silicon version
	regAnalogTest  = 0x38
	regTestDAC1    = 0x39
	regTestDAC2    = 0x3A
	regTestADC     = 0x3B
)

// MFRC522 command set (CommandReg low nibble).
const (
	cmdIdle       = 0x00
	cmdMem        = 0x01 // store 25 FIFO bytes into the internal buffer
	cmdRandomID   = 0x02
	cmdCalcCRC    = 0x03
	cmdTransmit   = 0x04
	cmdNoChange   = 0x07
	cmdReceive    = 0x08
	cmdTransceive = 0x0C
	cmdMFAuthent  = 0x0E
	cmdSoftReset  = 0x0F
)

// ComIrqReg bits.
const (
	irqSet1    = 0x80
	irqTx      = 0x40
	irqRx      = 0x20
	irqIdle    = 0x10
	irqHiAlert = 0x08
	irqLoAlert = 0x04
	irqErr     = 0x02
	irqTimer   = 0x01

	// irqWait are the "command finished" bits the transceive poll
	// watches alongside irqRx.
	irqWait = irqRx | irqIdle
)

// DivIrqReg bits.
const (
	divIrqCRC = 0x04
)

// Status2Reg bit raised while the Crypto1 unit is active.
const status2Crypto1 = 0x08

// ErrorReg bits considered fatal to a transceive: protocol error,
// parity error, collision and buffer overflow.
const errFatalMask = 0x1B

// ISO14443A (PICC) command bytes.
const (
	piccReqA       = 0x26
	piccWupA       = 0x52
	piccHaltA      = 0x50
	piccRead       = 0x30
	piccWrite      = 0xA0
	piccAuthKeyA   = 0x60
	piccAuthKeyB   = 0x61
	piccSelCL1     = 0x93
	piccSelCL2     = 0x95
	piccSelCL3     = 0x97
	piccCascadeTag = 0x88

	// 4 bit MIFARE acknowledge.
	mifareAck = 0x0A

	// NVB (number of valid bits) values for the anticollision and
	// select frames.
	nvbAnticoll = 0x20
	nvbSelect   = 0x70

	// SAK bit signalling the UID is not complete at this cascade level.
	sakCascade = 0x04
)

// selfTestReference maps a VersionReg value to the 64 byte FIFO content
// the digital self-test must produce on that silicon (datasheet 16.1.1).
var selfTestReference = map[byte][selfTestLen]byte{
	// Version 1.0
	0x91: {
		0x00, 0xC6, 0x37, 0xD5, 0x32, 0xB7, 0x57, 0x5C,
		0xC2, 0xD8, 0x7C, 0x4D, 0xD9, 0x70, 0xC7, 0x73,
		0x10, 0xE6, 0xD2, 0xAA, 0x5E, 0xA1, 0x3E, 0x5A,
		0x14, 0xAF, 0x30, 0x61, 0xC9, 0xF8, 0xBB, 0x25,
		0x75, 0xCE, 0xB9, 0x42, 0x9A, 0x66, 0x98, 0x9E,
		0x1D, 0xCE, 0x42, 0x7C, 0xC7, 0x6A, 0x81, 0xF9,
		0x67, 0x49, 0x8E, 0x44, 0x55, 0x95, 0x45, 0x9D,
		0x28, 0x1B, 0x68, 0xAD, 0x5A, 0xB1, 0x7E, 0x83,
	},
	// Version 2.0
	0x92: {
		0x00, 0xEB, 0x66, 0xBA, 0x57, 0xBF, 0x23, 0x95,
		0xD0, 0xE3, 0x0D, 0x3D, 0x27, 0x89, 0x5C, 0xDE,
		0x9D, 0x3B, 0xA7, 0x00, 0x21, 0x5B, 0x89, 0x82,
		0x51, 0x3A, 0xEB, 0x02, 0x0C, 0xA5, 0x00, 0x49,
		0x7C, 0x84, 0x4D, 0xB3, 0xCC, 0xD2, 0x1B, 0x81,
		0x5D, 0x48, 0x76, 0xD5, 0x71, 0x61, 0x21, 0xA9,
		0x86, 0x96, 0x83, 0x38, 0xCF, 0x9D, 0x5B, 0x6D,
		0xDC, 0x15, 0xBA, 0x3E, 0x7D, 0x95, 0x3B, 0x2F,
	},
}

const (
	// selfTestLen is the length of a self-test result readback.
	selfTestLen = 64

	// fifoDrainMax caps how many bytes a single transceive drains from
	// the FIFO.
	fifoDrainMax = 16
)
