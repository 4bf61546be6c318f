// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capi

import (
	"fmt"
	"strings"

	"github.com/gogpu/texres/texture"
)

// Flags is the load-time option bitmask passed across the boundary.
// The bit values are shared with the C headers and must not change.
type Flags uint32

// Flag bits.
const (
	// FlagMapTrans builds a per-pixel transparency map.
	FlagMapTrans Flags = 1 << iota

	// FlagMipmaps allocates a mip chain.
	FlagMipmaps

	// FlagVFlip uploads the image upside down.
	FlagVFlip

	// FlagSkipCache always loads a fresh, unshared texture.
	FlagSkipCache

	// FlagSDF requests a signed distance field. Not implemented.
	FlagSDF

	// FlagClampAlpha samples a transparent border outside the texture.
	FlagClampAlpha

	// FlagNotSRGB stores the texture linearly instead of gamma-encoded.
	FlagNotSRGB
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagMapTrans, "maptrans"},
	{FlagMipmaps, "mipmaps"},
	{FlagVFlip, "vflip"},
	{FlagSkipCache, "skipcache"},
	{FlagSDF, "sdf"},
	{FlagClampAlpha, "clamp_alpha"},
	{FlagNotSRGB, "notsrgb"},
}

// Has reports whether every bit of f2 is set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// String returns the set flag names joined by "|".
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
			f &^= fn.flag
		}
	}
	if f != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(f)))
	}
	return strings.Join(parts, "|")
}

// ParseFlags converts flag names ("mipmaps", "clamp_alpha", ...) into a
// bitmask. Names are case-insensitive.
func ParseFlags(names ...string) (Flags, error) {
	var f Flags
next:
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		for _, fn := range flagNames {
			if fn.name == n {
				f |= fn.flag
				continue next
			}
		}
		return 0, fmt.Errorf("capi: unknown flag %q", n)
	}
	return f, nil
}

// apply configures b according to the flags.
func (f Flags) apply(b *texture.Builder) *texture.Builder {
	b.SRGB(!f.Has(FlagNotSRGB)).
		Mipmaps(f.Has(FlagMipmaps)).
		VFlip(f.Has(FlagVFlip)).
		SkipCache(f.Has(FlagSkipCache)).
		SDF(f.Has(FlagSDF)).
		MapTransparency(f.Has(FlagMapTrans))
	if f.Has(FlagClampAlpha) {
		b.Border([4]float32{0, 0, 0, 0})
	}
	return b
}
