// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/texres"
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/texres/gfx/softgfx"
)

func uploadTest(t *testing.T, dev gfx.Device, name string) *Resource {
	t.Helper()
	res, err := Upload(dev, UploadDesc{
		Name:     name,
		Width:    2,
		Height:   2,
		Pixels:   make([]byte, 16),
		HasAlpha: true,
		SRGB:     true,
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	return res
}

func TestUploadFormatSelection(t *testing.T) {
	tests := []struct {
		srgb, alpha bool
		want        gfx.InternalFormat
	}{
		{true, true, gfx.FormatSRGBAlpha},
		{true, false, gfx.FormatSRGB},
		{false, true, gfx.FormatRGBA},
		{false, false, gfx.FormatRGB},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			dev := softgfx.New()
			res, err := Upload(dev, UploadDesc{
				Width: 1, Height: 1, Pixels: make([]byte, 4),
				HasAlpha: tt.alpha, SRGB: tt.srgb,
			})
			if err != nil {
				t.Fatalf("Upload: %v", err)
			}
			if res.Format() != tt.want {
				t.Errorf("Format = %v, want %v", res.Format(), tt.want)
			}
			if res.IsSRGB() != tt.srgb {
				t.Errorf("IsSRGB = %v, want %v", res.IsSRGB(), tt.srgb)
			}
			desc, ok := dev.Texture(res.TextureID())
			if !ok || desc.Format != tt.want {
				t.Errorf("device format = %v (live %v), want %v", desc.Format, ok, tt.want)
			}
		})
	}
}

func TestUploadDefaults(t *testing.T) {
	res := uploadTest(t, softgfx.New(), "a")
	if res.Refs() != 1 {
		t.Errorf("Refs = %d, want 1", res.Refs())
	}
	if res.VMax() != 1 {
		t.Errorf("VMax = %v, want 1", res.VMax())
	}
	if res.IsSDF() {
		t.Error("IsSDF = true for an ordinary upload")
	}
	if res.Name() != "a" || res.Width() != 2 || res.Height() != 2 {
		t.Errorf("got %q %dx%d, want \"a\" 2x2", res.Name(), res.Width(), res.Height())
	}
}

func TestUploadAllocationFailure(t *testing.T) {
	dev := softgfx.New(softgfx.WithMaxTextures(1))
	_ = uploadTest(t, dev, "first")

	_, err := Upload(dev, UploadDesc{Name: "second", Width: 1, Height: 1, Pixels: make([]byte, 4)})
	if !errors.Is(err, texres.ErrGraphicsAllocation) || !errors.Is(err, gfx.ErrOutOfMemory) {
		t.Errorf("err = %v, want ErrGraphicsAllocation wrapping ErrOutOfMemory", err)
	}
}

func TestUploadWriteFailureDestroysTexture(t *testing.T) {
	dev := softgfx.New()
	_, err := Upload(dev, UploadDesc{Width: 2, Height: 2, Pixels: make([]byte, 3)})
	if !errors.Is(err, texres.ErrGraphicsAllocation) {
		t.Fatalf("err = %v, want ErrGraphicsAllocation", err)
	}
	if dev.LiveTextures() != 0 {
		t.Errorf("LiveTextures = %d, want 0 after failed upload", dev.LiveTextures())
	}
}

func TestResourceReleaseExactlyOnce(t *testing.T) {
	dev := softgfx.New()
	res := uploadTest(t, dev, "")

	const shares = 5
	for range shares - 1 {
		res.Acquire()
	}
	for i := range shares {
		if !dev.IsLive(res.TextureID()) {
			t.Fatalf("texture destroyed after %d of %d releases", i, shares)
		}
		res.Release()
	}
	if dev.IsLive(res.TextureID()) {
		t.Error("texture still live after the last release")
	}
	if !res.Released() {
		t.Error("Released = false after the last release")
	}
	if s := dev.Stats(); s.TexturesDestroyed != 1 || s.InvalidDestroys != 0 {
		t.Errorf("stats = %v, want exactly one destroy", s)
	}
}

func TestResourceConcurrentRelease(t *testing.T) {
	dev := softgfx.New()
	res := uploadTest(t, dev, "")

	const shares = 64
	for range shares - 1 {
		res.Acquire()
	}
	var wg sync.WaitGroup
	for range shares {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res.Release()
		}()
	}
	wg.Wait()

	if s := dev.Stats(); s.TexturesDestroyed != 1 || s.InvalidDestroys != 0 {
		t.Errorf("stats = %v, want exactly one destroy", s)
	}
}

func TestResourceMisuse(t *testing.T) {
	expectPanic := func(t *testing.T, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		f()
	}

	t.Run("release underflow", func(t *testing.T) {
		res := uploadTest(t, softgfx.New(), "")
		res.Release()
		expectPanic(t, res.Release)
	})
	t.Run("acquire after release", func(t *testing.T) {
		res := uploadTest(t, softgfx.New(), "")
		res.Release()
		expectPanic(t, func() { res.Acquire() })
	})
	t.Run("try acquire after release", func(t *testing.T) {
		res := uploadTest(t, softgfx.New(), "")
		res.Release()
		if res.tryAcquire() {
			t.Error("tryAcquire succeeded on a released resource")
		}
	})
}
