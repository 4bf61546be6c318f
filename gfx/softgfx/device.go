// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package softgfx implements gfx.Device entirely in memory.
//
// A softgfx Device stores texture pixels and sampler state in Go memory
// and keeps running counts of every create, upload and destroy. It is used
// for headless runs (no GPU available) and by tests that need to observe
// how many uploads and deletes the texture layer performs.
//
// Device is safe for concurrent use.
package softgfx

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/texres"
	"github.com/gogpu/texres/gfx"
)

// Stats is a snapshot of device activity counters.
type Stats struct {
	TexturesCreated   uint64
	TexturesDestroyed uint64
	Uploads           uint64
	SamplersCreated   uint64
	SamplersDestroyed uint64

	// InvalidDestroys counts destroy calls naming an ID the device does not
	// own. A correct client never produces any.
	InvalidDestroys uint64

	// UsedBytes is the pixel memory currently held by live textures.
	UsedBytes uint64
}

// String returns a compact summary of the counters.
func (s Stats) String() string {
	return fmt.Sprintf("Stats[textures %d/%d, uploads %d, samplers %d/%d, invalid %d, %d bytes]",
		s.TexturesCreated, s.TexturesDestroyed, s.Uploads,
		s.SamplersCreated, s.SamplersDestroyed, s.InvalidDestroys, s.UsedBytes)
}

type texture struct {
	desc    gfx.TextureDesc
	pixels  []byte
	mips    []gfx.MipLevel
	uploads int
}

// Option configures a Device.
type Option func(*Device)

// WithMaxTextures limits the number of live textures. Creating one more
// fails with gfx.ErrOutOfMemory. Zero means unlimited.
func WithMaxTextures(n int) Option {
	return func(d *Device) { d.maxTextures = n }
}

// WithMaxSamplers limits the number of live samplers. Zero means unlimited.
func WithMaxSamplers(n int) Option {
	return func(d *Device) { d.maxSamplers = n }
}

// Device is an in-memory gfx.Device.
type Device struct {
	mu       sync.RWMutex
	textures map[gfx.TextureID]*texture
	samplers map[gfx.SamplerID]gfx.SamplerState
	stats    Stats

	maxTextures int
	maxSamplers int

	// Start ID generation at 1 (0 is invalid)
	nextID atomic.Uint64
}

var _ gfx.Device = (*Device)(nil)

// New creates an empty device.
func New(opts ...Option) *Device {
	d := &Device{
		textures: make(map[gfx.TextureID]*texture),
		samplers: make(map[gfx.SamplerID]gfx.SamplerState),
	}
	d.nextID.Store(1)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Device) newID() uint64 {
	return d.nextID.Add(1) - 1
}

// CreateTexture allocates a texture with zeroed pixels.
func (d *Device) CreateTexture(desc gfx.TextureDesc) (gfx.TextureID, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return gfx.InvalidID, fmt.Errorf("%w: %dx%d", gfx.ErrInvalidDimensions, desc.Width, desc.Height)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.maxTextures > 0 && len(d.textures) >= d.maxTextures {
		return gfx.InvalidID, fmt.Errorf("%w: %d textures live", gfx.ErrOutOfMemory, len(d.textures))
	}

	id := gfx.TextureID(d.newID())
	size := desc.Width * desc.Height * 4
	d.textures[id] = &texture{desc: desc, pixels: make([]byte, size)}
	d.stats.TexturesCreated++
	d.stats.UsedBytes += uint64(size) //nolint:gosec // size is positive

	texres.Logger().Debug("softgfx: texture created",
		"id", id, "label", desc.Label, "width", desc.Width, "height", desc.Height, "format", desc.Format)
	return id, nil
}

// WriteTexture copies pixels into the texture.
func (d *Device) WriteTexture(id gfx.TextureID, pixels []byte, width, height int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	tex, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", gfx.ErrUnknownTexture, id)
	}
	if width != tex.desc.Width || height != tex.desc.Height || len(pixels) != width*height*4 {
		return fmt.Errorf("%w: got %d bytes for %dx%d, texture is %dx%d",
			gfx.ErrPixelSize, len(pixels), width, height, tex.desc.Width, tex.desc.Height)
	}
	copy(tex.pixels, pixels)
	if tex.desc.Mipmaps {
		tex.mips = gfx.MipChain(tex.pixels, width, height, tex.desc.MipLevelCount())
	}
	tex.uploads++
	d.stats.Uploads++
	return nil
}

// DestroyTexture frees a texture. Unknown IDs are counted as invalid destroys.
func (d *Device) DestroyTexture(id gfx.TextureID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	tex, ok := d.textures[id]
	if !ok {
		d.stats.InvalidDestroys++
		texres.Logger().Warn("softgfx: destroy of unknown texture", "id", id)
		return
	}
	delete(d.textures, id)
	d.stats.TexturesDestroyed++
	d.stats.UsedBytes -= uint64(len(tex.pixels))
}

// CreateSampler allocates a sampler.
func (d *Device) CreateSampler(state gfx.SamplerState) (gfx.SamplerID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.maxSamplers > 0 && len(d.samplers) >= d.maxSamplers {
		return gfx.InvalidID, fmt.Errorf("%w: %d samplers live", gfx.ErrOutOfMemory, len(d.samplers))
	}

	id := gfx.SamplerID(d.newID())
	d.samplers[id] = state
	d.stats.SamplersCreated++
	return id, nil
}

// SamplerState returns the state of a sampler.
func (d *Device) SamplerState(id gfx.SamplerID) (gfx.SamplerState, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	state, ok := d.samplers[id]
	if !ok {
		return gfx.SamplerState{}, fmt.Errorf("%w: %d", gfx.ErrUnknownSampler, id)
	}
	return state, nil
}

// SetSamplerState replaces the state of a sampler.
func (d *Device) SetSamplerState(id gfx.SamplerID, state gfx.SamplerState) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.samplers[id]; !ok {
		return fmt.Errorf("%w: %d", gfx.ErrUnknownSampler, id)
	}
	d.samplers[id] = state
	return nil
}

// DestroySampler frees a sampler. Unknown IDs are counted as invalid destroys.
func (d *Device) DestroySampler(id gfx.SamplerID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.samplers[id]; !ok {
		d.stats.InvalidDestroys++
		texres.Logger().Warn("softgfx: destroy of unknown sampler", "id", id)
		return
	}
	delete(d.samplers, id)
	d.stats.SamplersDestroyed++
}

// Stats returns a snapshot of the activity counters.
func (d *Device) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

// LiveTextures returns the number of textures not yet destroyed.
func (d *Device) LiveTextures() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.textures)
}

// LiveSamplers returns the number of samplers not yet destroyed.
func (d *Device) LiveSamplers() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.samplers)
}

// IsLive reports whether a texture exists.
func (d *Device) IsLive(id gfx.TextureID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.textures[id]
	return ok
}

// Texture returns the descriptor a texture was created with.
func (d *Device) Texture(id gfx.TextureID) (gfx.TextureDesc, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	tex, ok := d.textures[id]
	if !ok {
		return gfx.TextureDesc{}, false
	}
	return tex.desc, true
}

// MipLevel returns a copy of mip level n (n >= 1) as filled by the last
// upload.
func (d *Device) MipLevel(id gfx.TextureID, n uint32) (gfx.MipLevel, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	tex, ok := d.textures[id]
	if !ok || n < 1 || int(n) > len(tex.mips) {
		return gfx.MipLevel{}, false
	}
	m := tex.mips[n-1]
	m.Pix = append([]byte(nil), m.Pix...)
	return m, true
}

// Pixels returns a copy of a texture's pixel data.
func (d *Device) Pixels(id gfx.TextureID) ([]byte, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	tex, ok := d.textures[id]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(tex.pixels))
	copy(out, tex.pixels)
	return out, true
}
