// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/texres"
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/texres/internal/imgdec"
)

// Builder errors.
var (
	// ErrInvalidSpriteGrid is returned when a sprite sheet has fewer than
	// one column or row.
	ErrInvalidSpriteGrid = errors.New("texture: sprite grid needs at least one column and row")

	// ErrBuilderReused is returned by a second call to Build.
	ErrBuilderReused = errors.New("texture: builder already built")

	errNoSource = errors.New("no pixel source")
	errSDF      = errors.New("signed distance field textures are not implemented")
)

type sourceKind uint8

const (
	sourceNone sourceKind = iota
	sourcePath
	sourceData
	sourceImage
)

// Builder accumulates the configuration of a View. Setters return the
// Builder for chaining; Build consumes it.
//
// Defaults: gamma-encoded storage, a 1x1 sprite grid, repeat addressing,
// linear filtering, no border and no mipmaps.
type Builder struct {
	opts builderOptions

	kind    sourceKind
	path    string
	data    []byte
	dataW   int
	dataH   int
	img     image.Image
	name    string
	hasName bool

	srgb      bool
	sdf       bool
	sx, sy    int
	sampler   gfx.SamplerState
	mipmaps   bool
	vflip     bool
	skipCache bool
	mapTrans  bool

	built bool
}

// NewBuilder returns a Builder with default settings.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		opts:    defaultOptions(),
		srgb:    true,
		sx:      1,
		sy:      1,
		sampler: gfx.DefaultSamplerState(),
	}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// FromPath reads and decodes the image at a logical path. Unless Name or
// SkipCache say otherwise, the path is also the cache key.
func (b *Builder) FromPath(p string) *Builder {
	b.kind = sourcePath
	b.path = p
	return b
}

// FromData uses a raw RGBA8 buffer of the given size. No file is read.
// Raw sources are unnamed unless Name is set.
func (b *Builder) FromData(width, height int, pix []byte) *Builder {
	b.kind = sourceData
	b.dataW, b.dataH = width, height
	b.data = pix
	return b
}

// FromImage uses an already decoded image. Image sources are unnamed
// unless Name is set.
func (b *Builder) FromImage(img image.Image) *Builder {
	b.kind = sourceImage
	b.img = img
	return b
}

// Name sets the cache key and display name. An empty name makes the
// request unnamed: it is never cached.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	b.hasName = true
	return b
}

// SRGB selects gamma-encoded (true, the default) or linear storage.
func (b *Builder) SRGB(enable bool) *Builder {
	b.srgb = enable
	return b
}

// SDF requests a signed distance field texture. Building one fails with
// texres.ErrUnsupported.
func (b *Builder) SDF(enable bool) *Builder {
	b.sdf = enable
	return b
}

// Sprite sets the sprite-sheet grid.
func (b *Builder) Sprite(columns, rows int) *Builder {
	b.sx, b.sy = columns, rows
	return b
}

// AddressMode sets the address mode of both axes.
func (b *Builder) AddressMode(m gfx.AddressMode) *Builder {
	return b.AddressModeU(m).AddressModeV(m)
}

// AddressModeU sets the horizontal address mode.
func (b *Builder) AddressModeU(m gfx.AddressMode) *Builder {
	b.sampler.WrapS = m
	return b
}

// AddressModeV sets the vertical address mode.
func (b *Builder) AddressModeV(m gfx.AddressMode) *Builder {
	b.sampler.WrapT = m
	return b
}

// Filter sets both the minification and magnification filters.
func (b *Builder) Filter(m gfx.FilterMode) *Builder {
	return b.MinFilter(m).MagFilter(m)
}

// MinFilter sets the minification filter.
func (b *Builder) MinFilter(m gfx.FilterMode) *Builder {
	b.sampler.MinFilter = m
	return b
}

// MagFilter sets the magnification filter.
func (b *Builder) MagFilter(m gfx.FilterMode) *Builder {
	b.sampler.MagFilter = m
	return b
}

// Border sets the border color. A border forces clamp-to-border on both
// axes at build time, whatever address modes were set.
func (b *Builder) Border(rgba [4]float32) *Builder {
	b.sampler.Border = rgba
	b.sampler.HasBorder = true
	return b
}

// Mipmaps allocates a full mip chain for the texture.
func (b *Builder) Mipmaps(enable bool) *Builder {
	b.mipmaps = enable
	return b
}

// VFlip uploads the image upside down. Flipped and unflipped loads of the
// same path are cached separately.
func (b *Builder) VFlip(enable bool) *Builder {
	b.vflip = enable
	return b
}

// SkipCache bypasses the registry: the build always decodes and uploads a
// fresh, unnamed resource.
func (b *Builder) SkipCache(enable bool) *Builder {
	b.skipCache = enable
	return b
}

// MapTransparency makes View.IsTransparent answer per-pixel queries.
func (b *Builder) MapTransparency(enable bool) *Builder {
	b.mapTrans = enable
	return b
}

// cacheKey returns the registry key, "" for unnamed requests.
func (b *Builder) cacheKey() string {
	if b.skipCache {
		return ""
	}
	key := ""
	switch {
	case b.hasName:
		key = CacheKey(b.name)
	case b.kind == sourcePath:
		key = CacheKey(b.path)
	}
	if key != "" && b.vflip {
		key += "#vflip"
	}
	return key
}

// displayName is what View.Name reports.
func (b *Builder) displayName() string {
	if b.hasName {
		return b.name
	}
	return b.path
}

// Build resolves the source, interns the resource and creates the View's
// sampler. It can be called once.
func (b *Builder) Build(dev gfx.Device) (*View, error) {
	if b.built {
		return nil, ErrBuilderReused
	}
	b.built = true

	label := b.displayName()
	if b.sx < 1 || b.sy < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSpriteGrid, b.sx, b.sy)
	}
	if b.sdf {
		return nil, texres.NewError("build", label, texres.ErrUnsupported, errSDF)
	}
	if b.kind == sourceNone {
		return nil, texres.NewError("build", label, texres.ErrUnsupported, errNoSource)
	}

	key := b.cacheKey()
	res, created, err := b.opts.registry.LookupOrCreate(key, func() (*Resource, error) {
		img, err := b.decode()
		if err != nil {
			return nil, err
		}
		return Upload(dev, UploadDesc{
			Name:     key,
			Width:    img.Width,
			Height:   img.Height,
			Pixels:   img.Pix,
			HasAlpha: img.HasAlpha,
			SRGB:     b.srgb,
			Mipmaps:  b.mipmaps,
		})
	})
	if err != nil {
		return nil, err
	}

	state := b.sampler
	if state.HasBorder {
		state.WrapS = gfx.AddressClampToBorder
		state.WrapT = gfx.AddressClampToBorder
	}
	sampler, err := dev.CreateSampler(state)
	if err != nil {
		res.Release()
		return nil, texres.NewError("create sampler", label, texres.ErrGraphicsAllocation, err)
	}

	v := &View{
		path:     b.path,
		name:     label,
		res:      res,
		dev:      dev,
		sampler:  sampler,
		created:  created,
		mapTrans: b.mapTrans,
	}
	v.vflip.Store(b.vflip)
	v.setGrid(b.sx, b.sy)

	texres.Logger().Debug("texture: view built",
		"name", label, "texture", uint64(res.tex), "sampler", uint64(sampler),
		"columns", b.sx, "rows", b.sy, "created", created)
	return v, nil
}

// decode produces RGBA pixels from the configured source.
func (b *Builder) decode() (*imgdec.Image, error) {
	var (
		img *imgdec.Image
		err error
	)
	switch b.kind {
	case sourcePath:
		data, rerr := b.opts.source.Read(b.path)
		if rerr != nil {
			if texres.KindOf(rerr) == nil {
				rerr = texres.NewError("read", b.path, texres.ErrSource, rerr)
			}
			return nil, rerr
		}
		img, err = imgdec.Decode(data)
		if err != nil {
			return nil, texres.NewError("decode", b.path, texres.ErrDecode, err)
		}
	case sourceData:
		img, err = imgdec.FromRaw(b.dataW, b.dataH, b.data)
		if err != nil {
			return nil, texres.NewError("decode", b.displayName(), texres.ErrDecode, err)
		}
	case sourceImage:
		if b.img == nil {
			return nil, texres.NewError("decode", b.displayName(), texres.ErrDecode, errNoSource)
		}
		if b.img.Bounds().Empty() {
			return nil, texres.NewError("decode", b.displayName(), texres.ErrDecode, imgdec.ErrEmptyImage)
		}
		img = imgdec.FromImage(b.img)
	}
	if b.vflip {
		img.FlipV()
	}
	return img, nil
}
