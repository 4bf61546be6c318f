// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/texres/gfx/softgfx"
	"github.com/gogpu/texres/ndata"
)

// testEnv is an isolated device, data tree and registry.
type testEnv struct {
	dev  *softgfx.Device
	data *ndata.Mem
	reg  *Registry
}

func newTestEnv(t *testing.T, opts ...softgfx.Option) *testEnv {
	t.Helper()
	data, err := ndata.NewMem()
	if err != nil {
		t.Fatalf("ndata.NewMem: %v", err)
	}
	return &testEnv{
		dev:  softgfx.New(opts...),
		data: data,
		reg:  NewRegistry(),
	}
}

func (e *testEnv) builder() *Builder {
	return NewBuilder(WithSource(e.data), WithRegistry(e.reg))
}

// addPNG stores a w x h PNG under name. The top-left pixel is red and the
// bottom-left pixel is fully transparent.
func (e *testEnv) addPNG(t *testing.T, name string, w, h int) {
	t.Helper()
	if err := e.data.WriteFile(name, pngBytes(t, w, h)); err != nil {
		t.Fatalf("WriteFile(%q): %v", name, err)
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(0, h-1, color.NRGBA{})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func mustBuild(t *testing.T, dev *softgfx.Device, b *Builder) *View {
	t.Helper()
	v, err := b.Build(dev)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return v
}
