// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package capi exposes texture views to callers that manage lifetimes by
// hand, such as C code behind cgo.
//
// Views are issued as opaque [Handle] values. Issuing a handle mints one
// extra share of the view's resource on top of the share the view holds;
// [Adapter.Free] redeems it together with the view's own share. The device
// texture is therefore destroyed exactly when the last handle referencing
// it is freed, however the handles were obtained.
//
// Failures are reported as [NullHandle] together with an error carrying a
// texres kind. Accessors given an unknown handle return zero values.
package capi

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/texres"
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/texres/internal/imgdec"
	"github.com/gogpu/texres/ndata"
	"github.com/gogpu/texres/texture"
)

// Handle is an opaque reference to an issued view. The zero value is the
// null handle.
type Handle uintptr

// NullHandle is returned on failure.
const NullHandle Handle = 0

var (
	// ErrClosed is returned by operations on a closed Adapter.
	ErrClosed = errors.New("capi: adapter closed")

	// ErrInvalidHandle is returned when duplicating an unknown handle.
	ErrInvalidHandle = errors.New("capi: invalid handle")

	errStream = errors.New("loading from a stream is not implemented")
	errRaw    = errors.New("wrapping a raw texture is not implemented")
)

// Option configures an Adapter.
type Option func(*adapterOptions)

type adapterOptions struct {
	source   ndata.Source
	registry *texture.Registry
}

// WithSource sets where logical paths are read from.
func WithSource(src ndata.Source) Option {
	return func(o *adapterOptions) { o.source = src }
}

// WithRegistry sets the interning registry. The process-wide registry is
// used by default.
func WithRegistry(r *texture.Registry) Option {
	return func(o *adapterOptions) { o.registry = r }
}

type entry struct {
	view  *texture.View
	flags Flags
}

// Adapter issues and tracks handles for one device.
//
// Adapter is safe for concurrent use.
type Adapter struct {
	dev  gfx.Device
	opts adapterOptions

	mu      sync.RWMutex
	handles map[Handle]*entry
	next    Handle
	closed  bool
}

// NewAdapter returns an Adapter creating textures on dev.
func NewAdapter(dev gfx.Device, opts ...Option) *Adapter {
	a := &Adapter{
		dev:     dev,
		handles: make(map[Handle]*entry),
		next:    1,
	}
	for _, opt := range opts {
		opt(&a.opts)
	}
	texres.Logger().Info("capi: adapter ready")
	return a
}

func (a *Adapter) builder() *texture.Builder {
	return texture.NewBuilder(texture.WithSource(a.opts.source), texture.WithRegistry(a.opts.registry))
}

// register mints the boundary share for v and issues a handle.
func (a *Adapter) register(v *texture.View, flags Flags) (Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		v.Destroy()
		return NullHandle, ErrClosed
	}
	v.Resource().Acquire()
	h := a.next
	a.next++
	a.handles[h] = &entry{view: v, flags: flags}
	return h, nil
}

func (a *Adapter) lookup(h Handle) *entry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.handles[h]
}

func (a *Adapter) fail(op, name string, err error) (Handle, error) {
	texres.Logger().Warn("capi: "+op+" failed", "name", name, "error", err)
	return NullHandle, err
}

// NewImage loads the image at path as a single-frame view.
func (a *Adapter) NewImage(path string, flags Flags) (Handle, error) {
	return a.NewSprite(path, 1, 1, flags)
}

// NewSprite loads the image at path as a columns x rows sprite sheet.
func (a *Adapter) NewSprite(path string, columns, rows int, flags Flags) (Handle, error) {
	h, _, err := a.ExistsOrCreate(path, flags, columns, rows)
	return h, err
}

// ExistsOrCreate is NewSprite that also reports whether the texture was
// uploaded by this call (true) or reused from the registry (false).
func (a *Adapter) ExistsOrCreate(path string, flags Flags, columns, rows int) (h Handle, created bool, err error) {
	b := flags.apply(a.builder().FromPath(path).Sprite(columns, rows))
	v, err := b.Build(a.dev)
	if err != nil {
		h, err = a.fail("create", path, err)
		return h, false, err
	}
	h, err = a.register(v, flags)
	if err != nil {
		return NullHandle, false, err
	}
	return h, v.Created(), nil
}

// LoadImageData uploads an RGBA float buffer (components in [0, 1]) of
// width x height pixels. A non-empty name makes the texture shareable by
// name; an empty one keeps it private.
func (a *Adapter) LoadImageData(data []float32, width, height, columns, rows int, name string) (Handle, error) {
	img, err := imgdec.FromFloat32(width, height, data)
	if err != nil {
		return a.fail("load image data", name, texres.NewError("decode", name, texres.ErrDecode, err))
	}
	b := a.builder().FromData(width, height, img.Pix).Sprite(columns, rows)
	if name != "" {
		b.Name(name)
	}
	v, err := b.Build(a.dev)
	if err != nil {
		return a.fail("load image data", name, err)
	}
	return a.register(v, 0)
}

// NewImageReader would load an image from a stream. It always fails with
// texres.ErrUnsupported.
func (a *Adapter) NewImageReader(path string, r io.Reader, flags Flags) (Handle, error) {
	return a.NewSpriteReader(path, r, 1, 1, flags)
}

// NewSpriteReader would load a sprite sheet from a stream. It always fails
// with texres.ErrUnsupported.
func (a *Adapter) NewSpriteReader(path string, _ io.Reader, _, _ int, _ Flags) (Handle, error) {
	return a.fail("create from stream", path, texres.NewError("create", path, texres.ErrUnsupported, errStream))
}

// RawTexture would wrap an existing device texture. It always fails with
// texres.ErrUnsupported.
func (a *Adapter) RawTexture(_ Handle, tex gfx.TextureID, _, _ float64) (Handle, error) {
	name := fmt.Sprintf("texture#%d", tex)
	return a.fail("wrap raw texture", name, texres.NewError("wrap", name, texres.ErrUnsupported, errRaw))
}

// Dup issues a new handle sharing h's texture with an independent sampler.
func (a *Adapter) Dup(h Handle) (Handle, error) {
	e := a.lookup(h)
	if e == nil {
		return a.fail("duplicate", "", fmt.Errorf("%w: %d", ErrInvalidHandle, h))
	}
	c, err := e.view.Clone()
	if err != nil {
		return a.fail("duplicate", e.view.Name(), err)
	}
	return a.register(c, e.flags)
}

// Free releases a handle. Freeing NullHandle does nothing; freeing an
// unknown or already freed handle is logged and ignored.
func (a *Adapter) Free(h Handle) {
	if h == NullHandle {
		return
	}
	a.mu.Lock()
	e, ok := a.handles[h]
	delete(a.handles, h)
	a.mu.Unlock()

	if !ok {
		texres.Logger().Warn("capi: free of unknown handle", "handle", uint64(h))
		return
	}
	a.release(e)
}

// release destroys the view and redeems the boundary share.
func (a *Adapter) release(e *entry) {
	res := e.view.Resource()
	e.view.Destroy()
	res.Release()
}

// Count returns the number of outstanding handles.
func (a *Adapter) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.handles)
}

// Close frees every outstanding handle. Later creations fail with ErrClosed.
func (a *Adapter) Close() {
	a.mu.Lock()
	handles := a.handles
	a.handles = make(map[Handle]*entry)
	a.closed = true
	a.mu.Unlock()

	if len(handles) > 0 {
		texres.Logger().Info("capi: freeing outstanding handles", "count", len(handles))
	}
	for _, e := range handles {
		a.release(e)
	}
}
