// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package imgdec turns encoded image bytes and raw pixel buffers into
// tightly packed 8-bit RGBA ready for texture upload.
//
// Pixels are straight (non-premultiplied) alpha, rows top to bottom, with a
// stride of exactly Width*4 bytes. PNG, JPEG, GIF, BMP, TIFF and WebP are
// recognized.
package imgdec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Decoding errors.
var (
	// ErrEmptyData is returned when there are no bytes to decode.
	ErrEmptyData = errors.New("imgdec: empty data")

	// ErrNotImage is returned when the content is recognized as something
	// other than an image.
	ErrNotImage = errors.New("imgdec: not an image")

	// ErrEmptyImage is returned for images with no pixels.
	ErrEmptyImage = errors.New("imgdec: image has no pixels")

	// ErrSizeMismatch is returned when a raw buffer does not hold exactly
	// width*height pixels.
	ErrSizeMismatch = errors.New("imgdec: buffer size does not match dimensions")
)

// Image is decoded RGBA pixel data.
type Image struct {
	Width  int
	Height int

	// Pix holds 4 bytes per pixel (R, G, B, A), Width*4 bytes per row.
	Pix []byte

	// HasAlpha reports whether the source format carries an alpha channel.
	// It describes the format, not the content: a PNG with an alpha channel
	// that happens to be fully opaque still reports true.
	HasAlpha bool
}

// Decode decodes an encoded image, auto-detecting the format.
func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown && kind.MIME.Type != "image" {
		return nil, fmt.Errorf("%w: content is %s", ErrNotImage, kind.MIME.Value)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imgdec: decode: %w", err)
	}

	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	out := FromImage(img)
	if decodedWithoutAlpha(format, img) {
		out.HasAlpha = false
	}
	return out, nil
}

// decodedWithoutAlpha reports whether a decoder that returns *image.NRGBA
// for sources with an alpha channel returned its alpha-less representation.
func decodedWithoutAlpha(format string, img image.Image) bool {
	switch format {
	case "png", "bmp":
		switch img.(type) {
		case *image.RGBA, *image.RGBA64:
			return true
		}
	}
	return false
}

// FromImage converts a decoded image to packed RGBA.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	out := &Image{
		Width:    b.Dx(),
		Height:   b.Dy(),
		HasAlpha: HasAlphaChannel(img),
	}

	if n, ok := img.(*image.NRGBA); ok && n.Stride == out.Width*4 && len(n.Pix) == out.Width*out.Height*4 {
		out.Pix = bytes.Clone(n.Pix)
		return out
	}

	dst := image.NewNRGBA(image.Rect(0, 0, out.Width, out.Height))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	out.Pix = dst.Pix
	return out
}

// FromRaw wraps an RGBA byte buffer of the given dimensions. The buffer is
// copied.
func FromRaw(width, height int, pix []byte) (*Image, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrSizeMismatch, width, height, len(pix))
	}
	return &Image{
		Width:    width,
		Height:   height,
		Pix:      bytes.Clone(pix),
		HasAlpha: true,
	}, nil
}

// FromFloat32 converts an RGBA float buffer with components in [0, 1] to
// 8-bit RGBA. Out of range components are clamped.
func FromFloat32(width, height int, data []float32) (*Image, error) {
	if width <= 0 || height <= 0 || len(data) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d floats", ErrSizeMismatch, width, height, len(data))
	}
	pix := make([]byte, len(data))
	for i, v := range data {
		pix[i] = unitToByte(v)
	}
	return &Image{
		Width:    width,
		Height:   height,
		Pix:      pix,
		HasAlpha: true,
	}, nil
}

func unitToByte(v float32) byte {
	switch {
	case v != v || v <= 0: // NaN or negative
		return 0
	case v >= 1:
		return 255
	}
	return byte(math.Round(float64(v) * 255))
}

// FlipV mirrors the image vertically in place.
func (m *Image) FlipV() {
	if m.Width == 0 || m.Height < 2 {
		return
	}
	// Flipping only moves rows, so straight-alpha bytes can travel through
	// an RGBA header without being premultiplied.
	src := &image.RGBA{
		Pix:    m.Pix,
		Stride: m.Width * 4,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
	m.Pix = transform.FlipV(src).Pix
}

// NRGBA returns a view of the pixels as an *image.NRGBA sharing Pix.
func (m *Image) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.Pix,
		Stride: m.Width * 4,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}

// HasAlphaChannel reports whether the color model of img carries alpha.
// Paletted images have alpha only if some palette entry is translucent.
func HasAlphaChannel(img image.Image) bool {
	if p, ok := img.(*image.Paletted); ok {
		for _, c := range p.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.YCbCrModel, color.CMYKModel:
		return false
	}
	return true
}
