// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/texres/capi"
)

// Manifest lists the textures to load.
type Manifest struct {
	// Data is the search path, first entry wins. Relative entries are
	// resolved against the manifest's directory.
	Data []string `toml:"data"`

	// Device is auto, soft or vulkan.
	Device string `toml:"device"`

	// Log is the slog level name; empty keeps logging silent.
	Log string `toml:"log"`

	// Workers is the number of concurrent loaders; 0 means GOMAXPROCS.
	Workers int `toml:"workers"`

	Textures []TextureEntry `toml:"texture"`
}

// TextureEntry is one [[texture]] table.
type TextureEntry struct {
	Path    string   `toml:"path"`
	Columns int      `toml:"columns"`
	Rows    int      `toml:"rows"`
	Flags   []string `toml:"flags"`

	// Dup is the number of extra handles duplicated from the first.
	Dup int `toml:"dup"`

	flags capi.Flags
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("texinspect: open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := ParseManifest(f)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	for i, d := range m.Data {
		if !filepath.IsAbs(d) {
			m.Data[i] = filepath.Join(base, d)
		}
	}
	return m, nil
}

// ParseManifest decodes and validates a manifest. Unknown keys are errors.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("texinspect: manifest %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("texinspect: manifest: %w", err)
	}

	if len(m.Data) == 0 {
		m.Data = []string{"."}
	}
	if m.Device == "" {
		m.Device = "auto"
	}
	if m.Workers < 0 {
		return nil, fmt.Errorf("texinspect: negative workers")
	}
	for i := range m.Textures {
		t := &m.Textures[i]
		if t.Path == "" {
			return nil, fmt.Errorf("texinspect: texture %d: missing path", i+1)
		}
		if t.Columns == 0 {
			t.Columns = 1
		}
		if t.Rows == 0 {
			t.Rows = 1
		}
		if t.Dup < 0 {
			return nil, fmt.Errorf("texinspect: texture %s: negative dup", t.Path)
		}
		flags, err := capi.ParseFlags(t.Flags...)
		if err != nil {
			return nil, fmt.Errorf("texinspect: texture %s: %w", t.Path, err)
		}
		t.flags = flags
	}
	return &m, nil
}
