// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gfx defines the graphics capability consumed by the texture
// subsystem.
//
// The texture layer never talks to a graphics API directly. It needs five
// things from one: create a texture, upload pixels into it, delete it,
// create a sampler with addressing and filtering state, and delete that
// sampler. [Device] captures exactly that surface.
//
// Two implementations are provided:
//   - gfx/halgfx: gogpu/wgpu HAL (Vulkan, or any device shared through gpucontext)
//   - gfx/softgfx: an in-memory device with call accounting, for headless use and tests
//
// # Identifiers
//
// Devices hand out opaque [TextureID] and [SamplerID] values. The zero value
// is [InvalidID] and is never issued. IDs become invalid after destruction
// and are never reused.
package gfx
