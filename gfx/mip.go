// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"image"

	"golang.org/x/image/draw"
)

// MipLevel is one level of a mip chain below level 0.
type MipLevel struct {
	Level  uint32
	Width  int
	Height int

	// Pix is tightly packed straight-alpha RGBA8.
	Pix []byte
}

// MipChain downsamples a width×height RGBA8 image into levels 1 through
// levels-1. Each level halves the one above it, never below 1 pixel, and is
// filtered from it bilinearly. Pixels that do not hold exactly width*height
// pixels, or fewer than two levels, give nil.
func MipChain(pix []byte, width, height int, levels uint32) []MipLevel {
	if levels < 2 || width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil
	}

	src := &image.NRGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	chain := make([]MipLevel, 0, levels-1)
	for level := uint32(1); level < levels; level++ {
		w := max(src.Rect.Dx()/2, 1)
		h := max(src.Rect.Dy()/2, 1)
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
		chain = append(chain, MipLevel{Level: level, Width: w, Height: h, Pix: dst.Pix})
		src = dst
	}
	return chain
}
