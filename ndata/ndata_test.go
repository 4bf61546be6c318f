// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ndata

import (
	"archive/zip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/gogpu/texres"
)

func TestClean(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"gfx/ship.png", "gfx/ship.png"},
		{"/gfx/ship.png", "gfx/ship.png"},
		{"gfx//./ship.png", "gfx/ship.png"},
		{"gfx/../gfx/ship.png", "gfx/ship.png"},
		{"../../etc/passwd", "etc/passwd"},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFSRead(t *testing.T) {
	src := NewFS(fstest.MapFS{
		"gfx/ship.png": &fstest.MapFile{Data: []byte("png")},
	})

	data, err := src.Read("/gfx/ship.png")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("Read = %q, want %q", data, "png")
	}

	_, err = src.Read("gfx/missing.png")
	if !errors.Is(err, texres.ErrSource) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: err = %v, want ErrSource wrapping ErrNotExist", err)
	}

	if _, err := src.Read(""); !errors.Is(err, texres.ErrSource) {
		t.Errorf("empty name: err = %v, want ErrSource", err)
	}
}

func TestMem(t *testing.T) {
	m, err := NewMem()
	if err != nil {
		t.Fatalf("NewMem: %v", err)
	}
	if err := m.WriteFile("gfx/outfit/laser.png", []byte{1, 2, 3}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := m.Read("gfx/outfit/laser.png")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 3 || got[2] != 3 {
		t.Errorf("Read = %v, want [1 2 3]", got)
	}

	if err := m.Remove("gfx/outfit/laser.png"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := m.Read("gfx/outfit/laser.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("after remove: err = %v, want ErrNotExist", err)
	}
	if err := m.WriteFile("", nil); err == nil {
		t.Error("WriteFile with empty name should fail")
	}
}

func TestSearchOrder(t *testing.T) {
	base := NewFS(fstest.MapFS{
		"a.png": &fstest.MapFile{Data: []byte("base-a")},
		"b.png": &fstest.MapFile{Data: []byte("base-b")},
	})
	mod, err := NewMem()
	if err != nil {
		t.Fatal(err)
	}
	if err := mod.WriteFile("a.png", []byte("mod-a")); err != nil {
		t.Fatal(err)
	}

	s := Search{mod, base}
	tests := []struct{ name, want string }{
		{"a.png", "mod-a"},
		{"b.png", "base-b"},
	}
	for _, tt := range tests {
		got, err := s.Read(tt.name)
		if err != nil {
			t.Fatalf("Read(%q): %v", tt.name, err)
		}
		if string(got) != tt.want {
			t.Errorf("Read(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}

	if _, err := s.Read("c.png"); !errors.Is(err, fs.ErrNotExist) || !errors.Is(err, texres.ErrSource) {
		t.Errorf("missing everywhere: err = %v", err)
	}
}

func TestOpenZip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "data.zip")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("gfx/planet.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("planet")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	a, err := OpenZip(name)
	if err != nil {
		t.Fatalf("OpenZip: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	got, err := a.Read("gfx/planet.png")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "planet" {
		t.Errorf("Read = %q, want %q", got, "planet")
	}

	if _, err := OpenZip(filepath.Join(t.TempDir(), "nope.zip")); !errors.Is(err, texres.ErrSource) {
		t.Errorf("missing archive: err = %v, want ErrSource", err)
	}
}
