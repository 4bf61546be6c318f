// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu && !cgo

package halgfx

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/texres"
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan backend for Open
)

type textureEntry struct {
	tex  hal.Texture
	desc gfx.TextureDesc
}

type samplerEntry struct {
	sampler hal.Sampler
	state   gfx.SamplerState
}

// Device implements gfx.Device using a HAL device and queue.
//
// Device is safe for concurrent use. All table operations are protected
// by a mutex; HAL calls follow the HAL device's own threading rules.
type Device struct {
	mu     sync.RWMutex
	device hal.Device
	queue  hal.Queue

	// instance is set only when Open created the device.
	instance hal.Instance
	owned    bool

	nextID   atomic.Uint64
	textures map[gfx.TextureID]*textureEntry
	samplers map[gfx.SamplerID]*samplerEntry
}

var _ gfx.Device = (*Device)(nil)

// New wraps an existing HAL device and queue. The caller keeps ownership
// of both; Close releases only the objects created through this Device.
func New(device hal.Device, queue hal.Queue) *Device {
	d := &Device{
		device:   device,
		queue:    queue,
		textures: make(map[gfx.TextureID]*textureEntry),
		samplers: make(map[gfx.SamplerID]*samplerEntry),
	}
	// Start ID generation at 1 (0 is invalid)
	d.nextID.Store(1)
	return d
}

// FromProvider wraps the HAL device shared by a gpucontext provider (for
// example a gogpu application). The provider must expose HalDevice() and
// HalQueue() returning hal.Device and hal.Queue.
func FromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	if provider == nil {
		return nil, fmt.Errorf("halgfx: nil provider")
	}
	return fromHALProvider(provider)
}

func fromHALProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("halgfx: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("halgfx: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("halgfx: provider HalQueue is not hal.Queue")
	}
	return New(device, queue), nil
}

// Open brings up a dedicated Vulkan device, preferring discrete or
// integrated GPUs over software adapters.
func Open() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("halgfx: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("halgfx: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("halgfx: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("halgfx: open device: %w", err)
	}

	d := New(openDev.Device, openDev.Queue)
	d.instance = instance
	d.owned = true
	texres.Logger().Info("halgfx: device opened", "adapter", selected.Info.Name)
	return d, nil
}

func (d *Device) newID() uint64 {
	return d.nextID.Add(1) - 1
}

// CreateTexture creates a sampled 2D texture that can receive uploads.
func (d *Device) CreateTexture(desc gfx.TextureDesc) (gfx.TextureID, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return gfx.InvalidID, fmt.Errorf("%w: %dx%d", gfx.ErrInvalidDimensions, desc.Width, desc.Height)
	}

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              uint32(desc.Width),  //nolint:gosec // validated positive
			Height:             uint32(desc.Height), //nolint:gosec // validated positive
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: desc.MipLevelCount(),
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format.GPUFormat(),
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return gfx.InvalidID, fmt.Errorf("halgfx: create texture %q: %w", desc.Label, err)
	}

	id := gfx.TextureID(d.newID())
	d.mu.Lock()
	d.textures[id] = &textureEntry{tex: tex, desc: desc}
	d.mu.Unlock()

	texres.Logger().Debug("halgfx: texture created", "id", id, "label", desc.Label,
		"width", desc.Width, "height", desc.Height, "format", desc.Format)
	return id, nil
}

// WriteTexture uploads RGBA8 pixels into mip level 0 through the queue.
// For textures created with mipmaps the lower levels are filled from the
// same pixels.
func (d *Device) WriteTexture(id gfx.TextureID, pixels []byte, width, height int) error {
	d.mu.RLock()
	entry, ok := d.textures[id]
	d.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %d", gfx.ErrUnknownTexture, id)
	}
	if width != entry.desc.Width || height != entry.desc.Height || len(pixels) != width*height*4 {
		return fmt.Errorf("%w: got %d bytes for %dx%d, texture is %dx%d",
			gfx.ErrPixelSize, len(pixels), width, height, entry.desc.Width, entry.desc.Height)
	}

	if err := d.writeLevel(entry.tex, 0, pixels, width, height); err != nil {
		return fmt.Errorf("halgfx: write texture %d: %w", id, err)
	}
	if !entry.desc.Mipmaps {
		return nil
	}
	for _, m := range gfx.MipChain(pixels, width, height, entry.desc.MipLevelCount()) {
		if err := d.writeLevel(entry.tex, m.Level, m.Pix, m.Width, m.Height); err != nil {
			return fmt.Errorf("halgfx: write texture %d level %d: %w", id, m.Level, err)
		}
	}
	return nil
}

func (d *Device) writeLevel(tex hal.Texture, level uint32, pixels []byte, width, height int) error {
	w := uint32(width)  //nolint:gosec // matches validated texture size
	h := uint32(height) //nolint:gosec // matches validated texture size
	return d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: level,
			Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		pixels,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
}

// DestroyTexture releases a texture. Unknown IDs are logged and ignored.
func (d *Device) DestroyTexture(id gfx.TextureID) {
	d.mu.Lock()
	entry, ok := d.textures[id]
	if ok {
		delete(d.textures, id)
	}
	d.mu.Unlock()

	if !ok {
		texres.Logger().Warn("halgfx: destroy of unknown texture", "id", id)
		return
	}
	d.device.DestroyTexture(entry.tex)
}

func (d *Device) createHALSampler(state gfx.SamplerState) (hal.Sampler, error) {
	if state.WrapS == gfx.AddressClampToBorder || state.WrapT == gfx.AddressClampToBorder {
		texres.Logger().Debug("halgfx: clamp-to-border sampled as clamp-to-edge")
	}
	return d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "texres_sampler",
		AddressModeU: state.WrapS.GPUAddressMode(),
		AddressModeV: state.WrapT.GPUAddressMode(),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    state.MagFilter.GPUFilterMode(),
		MinFilter:    state.MinFilter.GPUFilterMode(),
		MipmapFilter: gputypes.FilterModeNearest,
	})
}

// CreateSampler creates a HAL sampler for the state.
func (d *Device) CreateSampler(state gfx.SamplerState) (gfx.SamplerID, error) {
	sampler, err := d.createHALSampler(state)
	if err != nil {
		return gfx.InvalidID, fmt.Errorf("halgfx: create sampler: %w", err)
	}

	id := gfx.SamplerID(d.newID())
	d.mu.Lock()
	d.samplers[id] = &samplerEntry{sampler: sampler, state: state}
	d.mu.Unlock()
	return id, nil
}

// SamplerState returns the recorded state of a sampler.
func (d *Device) SamplerState(id gfx.SamplerID) (gfx.SamplerState, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entry, ok := d.samplers[id]
	if !ok {
		return gfx.SamplerState{}, fmt.Errorf("%w: %d", gfx.ErrUnknownSampler, id)
	}
	return entry.state, nil
}

// SetSamplerState recreates the HAL sampler behind id with a new state.
func (d *Device) SetSamplerState(id gfx.SamplerID, state gfx.SamplerState) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.samplers[id]
	if !ok {
		return fmt.Errorf("%w: %d", gfx.ErrUnknownSampler, id)
	}
	sampler, err := d.createHALSampler(state)
	if err != nil {
		return fmt.Errorf("halgfx: recreate sampler %d: %w", id, err)
	}
	d.device.DestroySampler(entry.sampler)
	entry.sampler = sampler
	entry.state = state
	return nil
}

// DestroySampler releases a sampler. Unknown IDs are logged and ignored.
func (d *Device) DestroySampler(id gfx.SamplerID) {
	d.mu.Lock()
	entry, ok := d.samplers[id]
	if ok {
		delete(d.samplers, id)
	}
	d.mu.Unlock()

	if !ok {
		texres.Logger().Warn("halgfx: destroy of unknown sampler", "id", id)
		return
	}
	d.device.DestroySampler(entry.sampler)
}

// HALTexture returns the HAL texture behind id, for binding in render code.
func (d *Device) HALTexture(id gfx.TextureID) (hal.Texture, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.textures[id]
	if !ok {
		return nil, false
	}
	return entry.tex, true
}

// HALSampler returns the HAL sampler behind id.
func (d *Device) HALSampler(id gfx.SamplerID) (hal.Sampler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.samplers[id]
	if !ok {
		return nil, false
	}
	return entry.sampler, true
}

// Len returns the number of live textures and samplers.
func (d *Device) Len() (textures, samplers int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.textures), len(d.samplers)
}

// Close destroys every texture and sampler still owned by the device and,
// if Open created it, the HAL device and instance.
func (d *Device) Close() {
	d.mu.Lock()
	textures := d.textures
	samplers := d.samplers
	d.textures = make(map[gfx.TextureID]*textureEntry)
	d.samplers = make(map[gfx.SamplerID]*samplerEntry)
	d.mu.Unlock()

	for _, e := range samplers {
		d.device.DestroySampler(e.sampler)
	}
	for _, e := range textures {
		d.device.DestroyTexture(e.tex)
	}
	if len(textures) > 0 || len(samplers) > 0 {
		texres.Logger().Warn("halgfx: objects still live at close",
			"textures", len(textures), "samplers", len(samplers))
	}

	if d.owned {
		d.device.Destroy()
		if d.instance != nil {
			d.instance.Destroy()
		}
		d.owned = false
		d.instance = nil
	}
}
