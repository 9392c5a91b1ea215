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

// Command readuid scans for ISO14443A cards on an MFRC522 and prints
// each card's UID as lowercase hex.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mfrc522 "github.com/eeemarv/go-mfrc522"
	"github.com/eeemarv/go-mfrc522/detection"
	"github.com/eeemarv/go-mfrc522/polling"
	"github.com/eeemarv/go-mfrc522/transport/spi"
)

func main() {
	var (
		devicePath string
		speed      int64
		noSelfTest bool
		list       bool
		debug      bool
	)
	flag.StringVar(&devicePath, "device", "/dev/spidev0.0", "SPI device path")
	flag.StringVar(&devicePath, "d", "/dev/spidev0.0", "SPI device path (shorthand)")
	flag.Int64Var(&speed, "speed", 1_000_000, "SPI clock speed in Hz")
	flag.Int64Var(&speed, "s", 1_000_000, "SPI clock speed in Hz (shorthand)")
	flag.BoolVar(&noSelfTest, "no-self-test", false, "skip the digital self-test during init")
	flag.BoolVar(&noSelfTest, "n", false, "skip the digital self-test (shorthand)")
	flag.BoolVar(&list, "list", false, "list candidate SPI ports and exit")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.Parse()

	if speed <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid SPI speed %d Hz\n", speed)
		flag.Usage()
		os.Exit(2)
	}

	if err := run(devicePath, speed, noSelfTest, list, debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(devicePath string, speed int64, noSelfTest, list, debug bool) error {
	if debug {
		mfrc522.SetDebugEnabled(true)
	}

	if list {
		return listPorts()
	}

	transport, err := spi.New(devicePath, spi.WithSpeed(speed))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", devicePath, err)
	}

	var opts []mfrc522.Option
	if noSelfTest {
		opts = append(opts, mfrc522.WithoutSelfTest())
	}

	device, err := mfrc522.New(transport, opts...)
	if err != nil {
		_ = transport.Close()
		return err
	}
	defer func() {
		_ = device.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := device.InitContext(ctx); err != nil {
		return fmt.Errorf("init failed: %w", err)
	}
	fmt.Printf("MFRC522 version 0x%02X on %s\n", device.Version(), devicePath)

	scanner, err := polling.NewScanner(device,
		polling.WithOnUID(func(uid mfrc522.UID) {
			fmt.Println(uid)
		}),
		polling.WithOnError(func(err error) {
			if !errors.Is(err, mfrc522.ErrUIDIncomplete) {
				fmt.Fprintf(os.Stderr, "scan: %v\n", err)
			}
		}),
	)
	if err != nil {
		return err
	}

	fmt.Println("Waiting for cards... (Ctrl+C to stop)")
	if err := scanner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	stats := scanner.Stats()
	fmt.Printf("\n%d reads, %d errors\n", stats.Reads, stats.Errors)
	return nil
}

func listPorts() error {
	devices, err := detection.DetectAll(nil)
	if err != nil {
		return err
	}
	for _, dev := range devices {
		fmt.Printf("%s (%s)\n", dev.Path, dev.Transport)
	}
	return nil
}
