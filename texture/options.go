// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import "github.com/gogpu/texres/ndata"

// Option configures a Builder during creation.
//
// Example:
//
//	src := ndata.Search{mods, ndata.Dir("dat")}
//	b := texture.NewBuilder(texture.WithSource(src), texture.WithRegistry(reg))
type Option func(*builderOptions)

// builderOptions holds the collaborators a Builder resolves against.
type builderOptions struct {
	source   ndata.Source
	registry *Registry
}

// defaultOptions reads from the working directory and interns into the
// process-wide registry.
func defaultOptions() builderOptions {
	return builderOptions{
		source:   ndata.Dir("."),
		registry: defaultRegistry,
	}
}

// WithSource sets where logical paths are read from.
func WithSource(src ndata.Source) Option {
	return func(o *builderOptions) {
		if src != nil {
			o.source = src
		}
	}
}

// WithRegistry sets the registry used for interning. Tests use a private
// registry to stay independent of the process-wide one.
func WithRegistry(r *Registry) Option {
	return func(o *builderOptions) {
		if r != nil {
			o.registry = r
		}
	}
}
