// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texture loads pixel data onto a graphics device once per logical
// asset and hands out lightweight views of it.
//
// # Object model
//
// A [Resource] owns one device texture together with its intrinsic size and
// storage format. Resources are shared: every [View] referencing one holds a
// share, and the device texture is destroyed exactly once, when the last
// share is released.
//
// A [View] owns its own sampler and sprite-sheet framing. Views never share
// samplers, so changing the sampling state of one View (for example a
// duplicate made with [View.Clone]) cannot affect another.
//
// # Interning
//
// A [Registry] maps logical names to live resources without keeping them
// alive. Requests for a name whose resource is still referenced somewhere
// reuse it: no second decode, no second upload. Unnamed requests always
// produce a fresh resource.
//
//	b := texture.NewBuilder(texture.WithSource(ndata.Dir("dat"))).
//		FromPath("gfx/ship/kestrel.webp").
//		Sprite(6, 6).
//		Filter(gfx.FilterNearest)
//	view, err := b.Build(dev)
//	if err != nil {
//		return err
//	}
//	defer view.Destroy()
//
// Errors carry the kinds defined in package texres (ErrSource, ErrDecode,
// ErrGraphicsAllocation, ErrUnsupported) and can be tested with errors.Is.
package texture
