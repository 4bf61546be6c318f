// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ndata resolves logical asset paths to raw bytes.
//
// Logical paths are slash-separated and relative ("gfx/ship/kestrel.webp").
// A [Source] maps them to bytes; [FS] adapts any io/fs.FS (directories,
// zip archives), [Mem] is a writable in-memory tree, and [Search] chains
// several sources so that the first one holding a path wins, the way a
// data search path layers mods over base game data.
//
// Every read failure is reported as a *texres.Error of kind texres.ErrSource.
package ndata

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/gogpu/texres"
)

// Source supplies raw bytes by logical path.
type Source interface {
	Read(name string) ([]byte, error)
}

// Clean converts a logical path into the canonical form used for lookups:
// slash-separated, cleaned, with no leading slash.
func Clean(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

func sourceError(name string, err error) error {
	return texres.NewError("read", name, texres.ErrSource, err)
}

// FS reads logical paths from an io/fs.FS.
type FS struct {
	fsys fs.FS
}

// NewFS returns a Source backed by fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Dir returns a Source rooted at a directory on disk.
func Dir(root string) *FS {
	return NewFS(os.DirFS(root))
}

// Read returns the contents of name.
func (s *FS) Read(name string) ([]byte, error) {
	clean := Clean(name)
	if !fs.ValidPath(clean) || clean == "" {
		return nil, sourceError(name, fs.ErrInvalid)
	}
	data, err := fs.ReadFile(s.fsys, clean)
	if err != nil {
		return nil, sourceError(name, err)
	}
	return data, nil
}

// Archive is a Source reading from a zip file.
type Archive struct {
	*FS
	rc *zip.ReadCloser
}

// OpenZip opens a zip archive as a Source. Close releases the file.
func OpenZip(filename string) (*Archive, error) {
	rc, err := zip.OpenReader(filename)
	if err != nil {
		return nil, sourceError(filename, fmt.Errorf("open archive: %w", err))
	}
	return &Archive{FS: NewFS(rc), rc: rc}, nil
}

// Close closes the underlying archive file.
func (a *Archive) Close() error {
	return a.rc.Close()
}

// Search tries each source in order and returns the first successful read.
// A path missing from every source reports fs.ErrNotExist; any other
// failure stops the search.
type Search []Source

// Read returns the contents of name from the first source that has it.
func (s Search) Read(name string) ([]byte, error) {
	for _, src := range s {
		data, err := src.Read(name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, sourceError(name, fs.ErrNotExist)
}

// readAll reads a file opened from a non io/fs filesystem.
func readAll(f io.ReadCloser) ([]byte, error) {
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
