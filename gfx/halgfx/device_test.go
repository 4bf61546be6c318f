// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu && !cgo

package halgfx

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/texres"
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/texres/texture"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// newNoopDevice creates a Device over a noop HAL device.
func newNoopDevice(t *testing.T) *Device {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	d := New(openDev.Device, openDev.Queue)
	t.Cleanup(func() {
		d.Close()
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return d
}

func TestTextureLifecycle(t *testing.T) {
	d := newNoopDevice(t)

	id, err := d.CreateTexture(gfx.TextureDesc{Label: "sheet", Width: 8, Height: 4, Format: gfx.FormatSRGBAlpha})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if id == gfx.InvalidID {
		t.Fatal("CreateTexture returned InvalidID")
	}
	if _, ok := d.HALTexture(id); !ok {
		t.Error("HALTexture() did not find the texture")
	}

	if err := d.WriteTexture(id, make([]byte, 8*4*4), 8, 4); err != nil {
		t.Errorf("WriteTexture: %v", err)
	}
	if err := d.WriteTexture(id, make([]byte, 10), 8, 4); !errors.Is(err, gfx.ErrPixelSize) {
		t.Errorf("short upload: err = %v, want ErrPixelSize", err)
	}

	d.DestroyTexture(id)
	if _, ok := d.HALTexture(id); ok {
		t.Error("texture still present after DestroyTexture")
	}
	if err := d.WriteTexture(id, make([]byte, 8*4*4), 8, 4); !errors.Is(err, gfx.ErrUnknownTexture) {
		t.Errorf("upload after destroy: err = %v, want ErrUnknownTexture", err)
	}
	// Second destroy must be a logged no-op.
	d.DestroyTexture(id)
}

var errQueueLost = errors.New("queue lost")

// failingQueue is a HAL queue whose texture writes always fail.
type failingQueue struct {
	hal.Queue
}

func (failingQueue) WriteTexture(*hal.ImageCopyTexture, []byte, *hal.ImageDataLayout, *hal.Extent3D) error {
	return errQueueLost
}

func TestWriteTextureQueueFailure(t *testing.T) {
	d := newNoopDevice(t)
	d.queue = failingQueue{Queue: d.queue}

	id, err := d.CreateTexture(gfx.TextureDesc{Width: 2, Height: 2, Format: gfx.FormatSRGBAlpha})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if err := d.WriteTexture(id, make([]byte, 2*2*4), 2, 2); !errors.Is(err, errQueueLost) {
		t.Errorf("WriteTexture err = %v, want the queue error", err)
	}
	d.DestroyTexture(id)

	res, err := texture.Upload(d, texture.UploadDesc{
		Name:   "gfx/lost.png",
		Width:  2,
		Height: 2,
		Pixels: make([]byte, 2*2*4),
	})
	if res != nil || !errors.Is(err, texres.ErrGraphicsAllocation) || !errors.Is(err, errQueueLost) {
		t.Errorf("Upload = (%v, %v), want ErrGraphicsAllocation wrapping the queue error", res, err)
	}
	if tex, _ := d.Len(); tex != 0 {
		t.Errorf("%d textures live after failed upload, want 0", tex)
	}
}

// countingQueue records the mip level of every texture write.
type countingQueue struct {
	hal.Queue
	levels []uint32
}

func (q *countingQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	q.levels = append(q.levels, dst.MipLevel)
	return q.Queue.WriteTexture(dst, data, layout, size)
}

func TestWriteTextureMipLevels(t *testing.T) {
	d := newNoopDevice(t)
	q := &countingQueue{Queue: d.queue}
	d.queue = q

	desc := gfx.TextureDesc{Width: 8, Height: 2, Mipmaps: true}
	id, err := d.CreateTexture(desc)
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if err := d.WriteTexture(id, make([]byte, 8*2*4), 8, 2); err != nil {
		t.Fatalf("WriteTexture: %v", err)
	}
	if len(q.levels) != int(desc.MipLevelCount()) {
		t.Fatalf("wrote levels %v, want %d levels", q.levels, desc.MipLevelCount())
	}
	for i, l := range q.levels {
		if l != uint32(i) {
			t.Errorf("write %d went to level %d", i, l)
		}
	}
}

func TestCreateTextureInvalidDimensions(t *testing.T) {
	d := newNoopDevice(t)
	if _, err := d.CreateTexture(gfx.TextureDesc{Width: -1, Height: 4}); !errors.Is(err, gfx.ErrInvalidDimensions) {
		t.Errorf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestSamplerRecreatedOnSetState(t *testing.T) {
	d := newNoopDevice(t)

	id, err := d.CreateSampler(gfx.DefaultSamplerState())
	if err != nil {
		t.Fatalf("CreateSampler: %v", err)
	}

	state := gfx.DefaultSamplerState()
	state.WrapS = gfx.AddressClampToBorder
	state.WrapT = gfx.AddressClampToBorder
	state.Border = [4]float32{0, 0, 0, 0}
	state.HasBorder = true
	if err := d.SetSamplerState(id, state); err != nil {
		t.Fatalf("SetSamplerState: %v", err)
	}

	got, err := d.SamplerState(id)
	if err != nil {
		t.Fatalf("SamplerState: %v", err)
	}
	if got != state {
		t.Errorf("SamplerState() = %+v, want %+v", got, state)
	}
	if _, ok := d.HALSampler(id); !ok {
		t.Error("HALSampler() missing after SetSamplerState")
	}

	d.DestroySampler(id)
	if _, err := d.SamplerState(id); !errors.Is(err, gfx.ErrUnknownSampler) {
		t.Errorf("err = %v, want ErrUnknownSampler", err)
	}
}

func TestCloseReleasesLiveObjects(t *testing.T) {
	d := newNoopDevice(t)

	if _, err := d.CreateTexture(gfx.TextureDesc{Width: 2, Height: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreateSampler(gfx.DefaultSamplerState()); err != nil {
		t.Fatal(err)
	}
	d.Close()
	if tex, smp := d.Len(); tex != 0 || smp != 0 {
		t.Errorf("Len() = %d, %d after Close; want 0, 0", tex, smp)
	}
}

type fakeProvider struct {
	device any
	queue  any
}

func (p fakeProvider) HalDevice() any { return p.device }
func (p fakeProvider) HalQueue() any  { return p.queue }

func TestFromProviderRejectsNonHAL(t *testing.T) {
	var p fakeProvider
	if _, err := fromHALProvider(p); err == nil {
		t.Error("expected error for provider without HAL device")
	}

	d := newNoopDevice(t)
	var dev hal.Device = d.device
	got, err := fromHALProvider(fakeProvider{device: dev, queue: d.queue})
	if err != nil {
		t.Fatalf("fromHALProvider: %v", err)
	}
	if got.device != dev {
		t.Error("provider device not used")
	}
}
