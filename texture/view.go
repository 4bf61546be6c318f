// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"sync/atomic"

	"github.com/gogpu/texres"
	"github.com/gogpu/texres/gfx"
)

// View is a per-use handle on a shared Resource: its own sampler plus
// sprite-sheet framing.
//
// A View holds one share of its Resource and exclusively owns its sampler.
// Destroy releases both.
type View struct {
	path string
	name string

	sx, sy   int
	sw, sh   float64
	srw, srh float64

	res     *Resource
	dev     gfx.Device
	sampler gfx.SamplerID

	created  bool
	vflip    atomic.Bool
	mapTrans bool

	destroyed atomic.Bool
}

// setGrid computes the frame geometry for a columns x rows sheet.
func (v *View) setGrid(columns, rows int) {
	w, h := float64(v.res.width), float64(v.res.height)
	v.sx, v.sy = columns, rows
	v.sw = w / float64(columns)
	v.sh = h / float64(rows)
	v.srw = v.sw / w
	v.srh = v.sh / h
}

// Path returns the logical path the View was loaded from, or "".
func (v *View) Path() string { return v.path }

// Name returns the display name: the explicit name if one was given,
// otherwise the source path.
func (v *View) Name() string { return v.name }

// Resource returns the shared resource.
func (v *View) Resource() *Resource { return v.res }

// Width returns the full resource width in pixels.
func (v *View) Width() int { return v.res.width }

// Height returns the full resource height in pixels.
func (v *View) Height() int { return v.res.height }

// SX returns the number of sprite-sheet columns.
func (v *View) SX() int { return v.sx }

// SY returns the number of sprite-sheet rows.
func (v *View) SY() int { return v.sy }

// SW returns the frame width in pixels.
func (v *View) SW() float64 { return v.sw }

// SH returns the frame height in pixels.
func (v *View) SH() float64 { return v.sh }

// SRW returns the frame width relative to the full width.
func (v *View) SRW() float64 { return v.srw }

// SRH returns the frame height relative to the full height.
func (v *View) SRH() float64 { return v.srh }

// VMax returns the SDF normalization maximum of the resource.
func (v *View) VMax() float64 { return v.res.vmax }

// IsSDF reports whether the resource is a signed distance field.
func (v *View) IsSDF() bool { return v.res.sdf }

// TextureID returns the device texture.
func (v *View) TextureID() gfx.TextureID { return v.res.tex }

// SamplerID returns the View's own sampler.
func (v *View) SamplerID() gfx.SamplerID { return v.sampler }

// Created reports whether building this View uploaded a new resource, as
// opposed to reusing a cached one. Clones report false.
func (v *View) Created() bool { return v.created }

// VFlip reports whether the View is marked vertically flipped.
func (v *View) VFlip() bool { return v.vflip.Load() }

// SetVFlip marks the View as vertically flipped for consumers that flip
// texture coordinates at draw time. Pixel data is not touched.
func (v *View) SetVFlip(enable bool) { v.vflip.Store(enable) }

// HasTransparencyMap reports whether IsTransparent answers per-pixel queries.
func (v *View) HasTransparencyMap() bool {
	return v.mapTrans && v.res.trans != nil
}

// IsTransparent reports whether the pixel at (x, y) of the full texture is
// fully transparent. Without a transparency map it reports false.
func (v *View) IsTransparent(x, y int) bool {
	if !v.HasTransparencyMap() {
		return false
	}
	return v.res.trans.IsTransparent(x, y)
}

// SamplerState returns the current state of the View's sampler.
func (v *View) SamplerState() (gfx.SamplerState, error) {
	return v.dev.SamplerState(v.sampler)
}

// SetSamplerState replaces the state of the View's sampler. Other Views,
// clones included, are unaffected.
func (v *View) SetSamplerState(state gfx.SamplerState) error {
	return v.dev.SetSamplerState(v.sampler, state)
}

// Clone returns a new View sharing the resource, with a fresh sampler that
// copies this View's wrap modes and filters. The border color is not copied.
func (v *View) Clone() (*View, error) {
	cur, err := v.dev.SamplerState(v.sampler)
	if err != nil {
		return nil, texres.NewError("clone", v.name, texres.ErrGraphicsAllocation, err)
	}
	state := gfx.DefaultSamplerState()
	state.WrapS = cur.WrapS
	state.WrapT = cur.WrapT
	state.MinFilter = cur.MinFilter
	state.MagFilter = cur.MagFilter

	sampler, err := v.dev.CreateSampler(state)
	if err != nil {
		return nil, texres.NewError("clone", v.name, texres.ErrGraphicsAllocation, err)
	}

	c := &View{
		path:     v.path,
		name:     v.name,
		sx:       v.sx,
		sy:       v.sy,
		sw:       v.sw,
		sh:       v.sh,
		srw:      v.srw,
		srh:      v.srh,
		res:      v.res.Acquire(),
		dev:      v.dev,
		sampler:  sampler,
		mapTrans: v.mapTrans,
	}
	c.vflip.Store(v.vflip.Load())
	return c, nil
}

// Destroy releases the sampler and the View's share of the resource.
// Calls after the first are no-ops.
func (v *View) Destroy() {
	if !v.destroyed.CompareAndSwap(false, true) {
		return
	}
	v.dev.DestroySampler(v.sampler)
	v.res.Release()
}
