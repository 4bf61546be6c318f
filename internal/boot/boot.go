// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package boot opens the device and data source shared by the commands.
package boot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/texres"
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/texres/gfx/softgfx"
	"github.com/gogpu/texres/ndata"
)

// Device kinds.
const (
	DeviceAuto   = "auto"
	DeviceSoft   = "soft"
	DeviceVulkan = "vulkan"
)

// ErrNoGPU is returned for the vulkan kind in builds without GPU support:
// those with the nogpu tag and those with cgo enabled, which includes the C
// shared library.
var ErrNoGPU = errors.New("boot: built without GPU support")

// OpenDevice opens a device of the given kind. "auto" tries Vulkan and
// falls back to the in-memory device. The returned func releases it.
func OpenDevice(kind string) (gfx.Device, func(), error) {
	switch strings.ToLower(kind) {
	case "", DeviceAuto:
		dev, closeFn, err := openGPU()
		if err == nil {
			return dev, closeFn, nil
		}
		texres.Logger().Info("boot: no GPU device, using soft device", "error", err)
		return softgfx.New(), func() {}, nil
	case DeviceSoft:
		return softgfx.New(), func() {}, nil
	case DeviceVulkan:
		return openGPU()
	default:
		return nil, nil, fmt.Errorf("boot: unknown device kind %q", kind)
	}
}

// OpenSource returns a source over a directory or, for paths ending in
// ".zip", an archive. Several paths are searched in order.
func OpenSource(paths ...string) (ndata.Source, func(), error) {
	var (
		search  ndata.Search
		closers []func() error
	)
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}
	for _, p := range paths {
		if strings.HasSuffix(strings.ToLower(p), ".zip") {
			a, err := ndata.OpenZip(p)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, a.Close)
			search = append(search, a)
			continue
		}
		search = append(search, ndata.Dir(p))
	}
	return search, closeAll, nil
}

// SetupLogging installs a text logger on stderr at the named level.
// An empty level leaves logging silent.
func SetupLogging(level string) error {
	if level == "" {
		return nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("boot: log level: %w", err)
	}
	texres.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}
