// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "errors"

// TextureID is an opaque handle to a device texture.
type TextureID uint64

// SamplerID is an opaque handle to a device sampler.
type SamplerID uint64

// InvalidID is the zero value, representing a null resource.
const InvalidID = 0

// Device errors.
var (
	// ErrInvalidDimensions is returned when a texture has a non-positive size.
	ErrInvalidDimensions = errors.New("gfx: invalid texture dimensions")

	// ErrUnknownTexture is returned when an operation names a texture the
	// device does not own (never created, or already destroyed).
	ErrUnknownTexture = errors.New("gfx: unknown texture")

	// ErrUnknownSampler is returned when an operation names an unknown sampler.
	ErrUnknownSampler = errors.New("gfx: unknown sampler")

	// ErrPixelSize is returned when an upload does not carry width*height*4 bytes.
	ErrPixelSize = errors.New("gfx: pixel data size does not match texture")

	// ErrOutOfMemory is returned when the device cannot allocate another object.
	ErrOutOfMemory = errors.New("gfx: out of device memory")
)

// TextureDesc describes a 2D texture to create.
type TextureDesc struct {
	// Label is an optional debug label.
	Label string

	// Width and Height are the texture size in pixels.
	Width  int
	Height int

	// Format is the internal storage format.
	Format InternalFormat

	// Mipmaps requests a full mip chain. Devices fill levels below 0 from
	// the uploaded pixels with MipChain.
	Mipmaps bool
}

// MipLevelCount returns the number of mip levels the texture needs.
func (d TextureDesc) MipLevelCount() uint32 {
	if !d.Mipmaps {
		return 1
	}
	n := uint32(1)
	for s := max(d.Width, d.Height); s > 1; s >>= 1 {
		n++
	}
	return n
}

// SamplerState is the full sampling configuration of a sampler object.
type SamplerState struct {
	WrapS     AddressMode
	WrapT     AddressMode
	MinFilter FilterMode
	MagFilter FilterMode

	// Border is the border color (RGBA, 0..1) used with AddressClampToBorder.
	// Only meaningful when HasBorder is set.
	Border    [4]float32
	HasBorder bool
}

// DefaultSamplerState returns repeat addressing with linear filtering.
func DefaultSamplerState() SamplerState {
	return SamplerState{
		WrapS:     AddressRepeat,
		WrapT:     AddressRepeat,
		MinFilter: FilterLinear,
		MagFilter: FilterLinear,
	}
}

// Device is the graphics capability used by the texture subsystem.
//
// Implementations must be safe for concurrent use. Calls that touch the
// underlying graphics API are still subject to that API's own threading
// contract.
type Device interface {
	// CreateTexture allocates an uninitialized 2D texture.
	CreateTexture(desc TextureDesc) (TextureID, error)

	// WriteTexture uploads tightly packed RGBA8 pixels (4-byte aligned rows,
	// width*4 bytes per row) into mip level 0.
	WriteTexture(id TextureID, pixels []byte, width, height int) error

	// DestroyTexture releases a texture. Unknown IDs are ignored.
	DestroyTexture(id TextureID)

	// CreateSampler allocates a sampler with the given state.
	CreateSampler(state SamplerState) (SamplerID, error)

	// SamplerState returns the current state of a sampler.
	SamplerState(id SamplerID) (SamplerState, error)

	// SetSamplerState replaces the state of a sampler in place. The ID
	// stays valid.
	SetSamplerState(id SamplerID, state SamplerState) error

	// DestroySampler releases a sampler. Unknown IDs are ignored.
	DestroySampler(id SamplerID)
}
