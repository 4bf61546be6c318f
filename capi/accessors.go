// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capi

import (
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/texres/texture"
)

// View returns the view behind h, or nil for an unknown handle. The view
// stays owned by the adapter.
func (a *Adapter) View(h Handle) *texture.View {
	if e := a.lookup(h); e != nil {
		return e.view
	}
	return nil
}

func get[T any](a *Adapter, h Handle, f func(*texture.View) T) T {
	v := a.View(h)
	if v == nil {
		var zero T
		return zero
	}
	return f(v)
}

// Width returns the texture width in pixels.
func (a *Adapter) Width(h Handle) float64 {
	return get(a, h, func(v *texture.View) float64 { return float64(v.Width()) })
}

// Height returns the texture height in pixels.
func (a *Adapter) Height(h Handle) float64 {
	return get(a, h, func(v *texture.View) float64 { return float64(v.Height()) })
}

// SX returns the number of sprite columns.
func (a *Adapter) SX(h Handle) float64 {
	return get(a, h, func(v *texture.View) float64 { return float64(v.SX()) })
}

// SY returns the number of sprite rows.
func (a *Adapter) SY(h Handle) float64 {
	return get(a, h, func(v *texture.View) float64 { return float64(v.SY()) })
}

// SW returns the sprite frame width in pixels.
func (a *Adapter) SW(h Handle) float64 { return get(a, h, (*texture.View).SW) }

// SH returns the sprite frame height in pixels.
func (a *Adapter) SH(h Handle) float64 { return get(a, h, (*texture.View).SH) }

// SRW returns the sprite frame width relative to the texture width.
func (a *Adapter) SRW(h Handle) float64 { return get(a, h, (*texture.View).SRW) }

// SRH returns the sprite frame height relative to the texture height.
func (a *Adapter) SRH(h Handle) float64 { return get(a, h, (*texture.View).SRH) }

// VMax returns the SDF normalization maximum.
func (a *Adapter) VMax(h Handle) float64 { return get(a, h, (*texture.View).VMax) }

// IsSDF reports whether the texture is a signed distance field.
func (a *Adapter) IsSDF(h Handle) bool { return get(a, h, (*texture.View).IsSDF) }

// HasTrans reports whether the handle answers IsTrans queries.
func (a *Adapter) HasTrans(h Handle) bool { return get(a, h, (*texture.View).HasTransparencyMap) }

// IsTrans reports whether pixel (x, y) is fully transparent.
func (a *Adapter) IsTrans(h Handle, x, y int) bool {
	return get(a, h, func(v *texture.View) bool { return v.IsTransparent(x, y) })
}

// TextureID returns the device texture.
func (a *Adapter) TextureID(h Handle) gfx.TextureID { return get(a, h, (*texture.View).TextureID) }

// SamplerID returns the handle's own sampler.
func (a *Adapter) SamplerID(h Handle) gfx.SamplerID { return get(a, h, (*texture.View).SamplerID) }

// Name returns the display name.
func (a *Adapter) Name(h Handle) string { return get(a, h, (*texture.View).Name) }

// Flags returns the flags the handle was created with, with FlagVFlip
// tracking SetVFlip.
func (a *Adapter) Flags(h Handle) Flags {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if e := a.handles[h]; e != nil {
		return e.flags
	}
	return 0
}

// SetVFlip sets or clears the vertical flip mark of a handle.
func (a *Adapter) SetVFlip(h Handle, enable bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	e := a.handles[h]
	if e == nil {
		return
	}
	e.view.SetVFlip(enable)
	if enable {
		e.flags |= FlagVFlip
	} else {
		e.flags &^= FlagVFlip
	}
}

// SpriteFromDir returns the sprite frame facing dir (radians).
func (a *Adapter) SpriteFromDir(h Handle, dir float64) (x, y int) {
	v := a.View(h)
	if v == nil {
		return 0, 0
	}
	return v.SpriteFromDir(dir)
}
