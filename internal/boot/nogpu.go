// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build nogpu || cgo

package boot

import "github.com/gogpu/texres/gfx"

func openGPU() (gfx.Device, func(), error) {
	return nil, nil, ErrNoGPU
}
