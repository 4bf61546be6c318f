// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texres is the root of a texture resource manager: it loads image
// assets onto a graphics device once per logical name and shares them
// between many lightweight views.
//
// # Overview
//
// The work is split across packages:
//   - texture: Registry (weak interning), Resource (shared device texture),
//     Builder and View (per-use sampler and sprite framing)
//   - capi: opaque handles for callers that free resources by hand
//   - gfx: the device capability, with softgfx (in memory) and halgfx
//     (gogpu/wgpu HAL) implementations
//   - ndata: logical paths to bytes over directories, zip archives and
//     in-memory trees
//
// This package holds what they share: the error kinds and the logger.
//
// # Quick Start
//
//	dev := softgfx.New()
//	a := capi.NewAdapter(dev, capi.WithSource(ndata.Dir("dat")))
//	defer a.Close()
//
//	h, err := a.NewSprite("gfx/ship/kestrel.png", 6, 6, capi.FlagMipmaps)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer a.Free(h)
//
// # Errors
//
// Failures match exactly one of ErrSource, ErrDecode, ErrGraphicsAllocation
// and ErrUnsupported with errors.Is, and usually an underlying cause as well
// (for example fs.ErrNotExist for a missing asset).
//
// # Logging
//
// Logging is silent by default. Install a *slog.Logger with SetLogger to see
// cache hits, uploads and releases at debug level.
package texres

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
