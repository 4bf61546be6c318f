// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu && !cgo

package boot

import (
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/texres/gfx/halgfx"
)

func openGPU() (gfx.Device, func(), error) {
	dev, err := halgfx.Open()
	if err != nil {
		return nil, nil, err
	}
	return dev, dev.Close, nil
}
