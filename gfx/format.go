// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// InternalFormat is the storage format of a texture. It combines the color
// space (gamma-encoded sRGB or linear) with alpha presence.
type InternalFormat uint8

const (
	// FormatSRGBAlpha is gamma-encoded color with alpha.
	FormatSRGBAlpha InternalFormat = iota

	// FormatSRGB is gamma-encoded color without alpha.
	FormatSRGB

	// FormatRGBA is linear color with alpha.
	FormatRGBA

	// FormatRGB is linear color without alpha.
	FormatRGB
)

// SelectFormat picks the internal format for a color space and alpha presence.
func SelectFormat(srgb, hasAlpha bool) InternalFormat {
	switch {
	case srgb && hasAlpha:
		return FormatSRGBAlpha
	case srgb:
		return FormatSRGB
	case hasAlpha:
		return FormatRGBA
	default:
		return FormatRGB
	}
}

// String returns a human-readable name for the format.
func (f InternalFormat) String() string {
	switch f {
	case FormatSRGBAlpha:
		return "SRGB_ALPHA"
	case FormatSRGB:
		return "SRGB"
	case FormatRGBA:
		return "RGBA"
	case FormatRGB:
		return "RGB"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// IsSRGB reports whether the format is gamma-encoded.
func (f InternalFormat) IsSRGB() bool {
	return f == FormatSRGBAlpha || f == FormatSRGB
}

// HasAlpha reports whether the format stores alpha.
func (f InternalFormat) HasAlpha() bool {
	return f == FormatSRGBAlpha || f == FormatRGBA
}

// GPUFormat converts to a WebGPU texture format. WebGPU has no three
// channel formats, so the alpha-less variants are stored as RGBA8 with an
// opaque alpha channel.
func (f InternalFormat) GPUFormat() gputypes.TextureFormat {
	if f.IsSRGB() {
		return gputypes.TextureFormatRGBA8UnormSrgb
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// AddressMode controls sampling outside the [0,1] texture coordinate range.
type AddressMode uint8

const (
	// AddressClampToEdge clamps coordinates to the edge texels.
	AddressClampToEdge AddressMode = iota

	// AddressRepeat tiles the texture.
	AddressRepeat

	// AddressMirrorRepeat tiles the texture, mirroring every other tile.
	AddressMirrorRepeat

	// AddressClampToBorder returns the sampler border color outside the texture.
	AddressClampToBorder
)

// String returns a human-readable name for the address mode.
func (m AddressMode) String() string {
	switch m {
	case AddressClampToEdge:
		return "ClampToEdge"
	case AddressRepeat:
		return "Repeat"
	case AddressMirrorRepeat:
		return "MirrorRepeat"
	case AddressClampToBorder:
		return "ClampToBorder"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// GPUAddressMode converts to a WebGPU address mode. WebGPU core has no
// clamp-to-border, so it maps to clamp-to-edge.
func (m AddressMode) GPUAddressMode() gputypes.AddressMode {
	switch m {
	case AddressRepeat:
		return gputypes.AddressModeRepeat
	case AddressMirrorRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

// FilterMode selects texel filtering.
type FilterMode uint8

const (
	// FilterNearest picks the nearest texel.
	FilterNearest FilterMode = iota

	// FilterLinear interpolates between texels.
	FilterLinear
)

// String returns a human-readable name for the filter mode.
func (m FilterMode) String() string {
	switch m {
	case FilterNearest:
		return "Nearest"
	case FilterLinear:
		return "Linear"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// GPUFilterMode converts to a WebGPU filter mode.
func (m FilterMode) GPUFilterMode() gputypes.FilterMode {
	if m == FilterNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}
