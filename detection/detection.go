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

// Package detection enumerates SPI ports an MFRC522 reader may sit on.
package detection

import (
	"errors"
	"fmt"
	"strings"

	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Detection errors.
var (
	// ErrNoDevicesFound indicates no candidate SPI ports were found.
	ErrNoDevicesFound = errors.New("no SPI ports found")
)

// Mode controls how intrusive detection is allowed to be.
type Mode int

const (
	// Safe checks that the port device node is accessible before
	// reporting it.
	Safe Mode = iota

	// Passive reports registered ports without touching them.
	Passive
)

// Options configures detection behavior.
type Options struct {
	Mode Mode
}

// DefaultOptions returns the default detection options.
func DefaultOptions() Options {
	return Options{Mode: Safe}
}

// DeviceInfo describes a candidate reader port.
type DeviceInfo struct {
	Path      string
	Transport string
}

// DetectAll lists SPI ports registered on the host. In Safe mode ports
// whose device node cannot be opened for read/write are skipped.
func DetectAll(opts *Options) ([]DeviceInfo, error) {
	options := DefaultOptions()
	if opts != nil {
		options = *opts
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	var devices []DeviceInfo
	for _, ref := range spireg.All() {
		path := ref.Name
		if options.Mode == Safe && strings.HasPrefix(path, "/dev/") && !accessible(path) {
			continue
		}
		devices = append(devices, DeviceInfo{
			Path:      path,
			Transport: "spi",
		})
	}

	if len(devices) == 0 {
		return nil, ErrNoDevicesFound
	}
	return devices, nil
}
