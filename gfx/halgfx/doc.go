// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package halgfx implements gfx.Device on top of gogpu/wgpu HAL.
//
// The device keeps ID tables mapping gfx identifiers to HAL objects, so the
// texture layer can hand plain integers across the handle boundary while
// HAL objects stay in Go memory. Samplers are immutable in HAL; changing a
// sampler's state recreates the HAL object behind the same gfx.SamplerID.
//
// The HAL backends load the graphics driver without cgo, so the package is
// empty in builds with the nogpu tag or with cgo enabled.
package halgfx
