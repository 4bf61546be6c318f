// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ndata

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
)

// Mem is a writable in-memory Source, used for generated assets and tests.
//
// Mem is safe for concurrent use.
type Mem struct {
	fs *mem.FS
}

// NewMem returns an empty in-memory tree.
func NewMem() (*Mem, error) {
	fsys, err := mem.NewFS()
	if err != nil {
		return nil, fmt.Errorf("ndata: create memory fs: %w", err)
	}
	return &Mem{fs: fsys}, nil
}

// WriteFile stores data under name, creating parent directories.
func (m *Mem) WriteFile(name string, data []byte) error {
	clean := Clean(name)
	if !fs.ValidPath(clean) || clean == "" {
		return fmt.Errorf("ndata: invalid path %q", name)
	}
	if dir := path.Dir(clean); dir != "." {
		if err := hackpadfs.MkdirAll(m.fs, dir, 0o755); err != nil {
			return fmt.Errorf("ndata: mkdir %s: %w", dir, err)
		}
	}
	if err := hackpadfs.WriteFullFile(m.fs, clean, data, 0o644); err != nil {
		return fmt.Errorf("ndata: write %s: %w", clean, err)
	}
	return nil
}

// Remove deletes name.
func (m *Mem) Remove(name string) error {
	return hackpadfs.Remove(m.fs, Clean(name))
}

// Read returns the contents of name.
func (m *Mem) Read(name string) ([]byte, error) {
	clean := Clean(name)
	if !fs.ValidPath(clean) || clean == "" {
		return nil, sourceError(name, fs.ErrInvalid)
	}
	f, err := m.fs.Open(clean)
	if err != nil {
		return nil, sourceError(name, err)
	}
	data, err := readAll(f)
	if err != nil {
		return nil, sourceError(name, err)
	}
	return data, nil
}
