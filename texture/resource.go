// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/texres"
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/texres/internal/imgdec"
)

// Resource is a device texture shared by any number of Views.
//
// A Resource starts with one share owned by whoever created it. Acquire adds
// a share and Release drops one; the device texture is destroyed when the
// count reaches zero. Resource is safe for concurrent use.
type Resource struct {
	name   string
	dev    gfx.Device
	tex    gfx.TextureID
	width  int
	height int
	format gfx.InternalFormat
	sdf    bool
	vmax   float64
	trans  *imgdec.TransMap

	refs     atomic.Int64
	released atomic.Bool
}

// UploadDesc describes pixel data to upload as a new Resource.
type UploadDesc struct {
	// Name is the cache key, empty for unnamed resources.
	Name string

	Width  int
	Height int

	// Pixels is tightly packed straight-alpha RGBA8, Width*4 bytes per row.
	Pixels []byte

	// HasAlpha selects an alpha-carrying storage format.
	HasAlpha bool

	// SRGB selects gamma-encoded storage.
	SRGB bool

	// Mipmaps allocates a full mip chain.
	Mipmaps bool
}

// Upload creates a device texture, writes the pixels into it and returns a
// Resource holding one share.
func Upload(dev gfx.Device, desc UploadDesc) (*Resource, error) {
	format := gfx.SelectFormat(desc.SRGB, desc.HasAlpha)
	id, err := dev.CreateTexture(gfx.TextureDesc{
		Label:   desc.Name,
		Width:   desc.Width,
		Height:  desc.Height,
		Format:  format,
		Mipmaps: desc.Mipmaps,
	})
	if err != nil {
		return nil, texres.NewError("create texture", desc.Name, texres.ErrGraphicsAllocation, err)
	}
	if err := dev.WriteTexture(id, desc.Pixels, desc.Width, desc.Height); err != nil {
		dev.DestroyTexture(id)
		return nil, texres.NewError("upload", desc.Name, texres.ErrGraphicsAllocation, err)
	}

	r := &Resource{
		name:   desc.Name,
		dev:    dev,
		tex:    id,
		width:  desc.Width,
		height: desc.Height,
		format: format,
		vmax:   1,
	}
	if len(desc.Pixels) == desc.Width*desc.Height*4 {
		r.trans = imgdec.TransparencyMap(&imgdec.Image{
			Width:  desc.Width,
			Height: desc.Height,
			Pix:    desc.Pixels,
		})
	}
	r.refs.Store(1)

	texres.Logger().Debug("texture: uploaded",
		"name", desc.Name, "id", uint64(id), "width", desc.Width, "height", desc.Height,
		"format", format.String(), "mipmaps", desc.Mipmaps)
	return r, nil
}

// Name returns the cache key, or "" for unnamed resources.
func (r *Resource) Name() string { return r.name }

// TextureID returns the device texture.
func (r *Resource) TextureID() gfx.TextureID { return r.tex }

// Width returns the texture width in pixels.
func (r *Resource) Width() int { return r.width }

// Height returns the texture height in pixels.
func (r *Resource) Height() int { return r.height }

// Format returns the storage format chosen at upload.
func (r *Resource) Format() gfx.InternalFormat { return r.format }

// IsSRGB reports whether the texture is stored gamma-encoded.
func (r *Resource) IsSRGB() bool { return r.format.IsSRGB() }

// IsSDF reports whether the texture holds a signed distance field.
func (r *Resource) IsSDF() bool { return r.sdf }

// VMax returns the distance normalization maximum of an SDF texture.
// It is 1 for ordinary textures.
func (r *Resource) VMax() float64 { return r.vmax }

// Refs returns the current number of shares.
func (r *Resource) Refs() int64 { return r.refs.Load() }

// Released reports whether the device texture has been destroyed.
func (r *Resource) Released() bool { return r.released.Load() }

// Acquire adds a share. The caller must already hold one.
func (r *Resource) Acquire() *Resource {
	if n := r.refs.Add(1); n <= 1 {
		panic(fmt.Sprintf("texture: Acquire on released resource %q", r.name))
	}
	return r
}

// tryAcquire adds a share only if the resource is still live.
func (r *Resource) tryAcquire() bool {
	for {
		n := r.refs.Load()
		if n <= 0 {
			return false
		}
		if r.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release drops a share, destroying the device texture with the last one.
func (r *Resource) Release() {
	n := r.refs.Add(-1)
	if n < 0 {
		panic(fmt.Sprintf("texture: negative share count on resource %q", r.name))
	}
	if n > 0 {
		return
	}
	if r.released.CompareAndSwap(false, true) {
		r.dev.DestroyTexture(r.tex)
		texres.Logger().Debug("texture: released", "name", r.name, "id", uint64(r.tex))
	}
}
