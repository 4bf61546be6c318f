// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"github.com/gogpu/texres"
	"github.com/gogpu/texres/capi"
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/texres/internal/boot"
)

var (
	mu       sync.Mutex
	adapter  *capi.Adapter
	shutdown []func()

	// names holds the C copies returned by tex_name_, freed with the handle.
	names = newNameCache(
		func(s string) *C.char { return C.CString(s) },
		func(s *C.char) { C.free(unsafe.Pointer(s)) },
	)
)

func current() *capi.Adapter {
	mu.Lock()
	defer mu.Unlock()
	return adapter
}

func handle(h C.uintptr_t) capi.Handle { return capi.Handle(h) }

func out(h capi.Handle, _ error) C.uintptr_t { return C.uintptr_t(h) }

//export gl_initTextures_
func gl_initTextures_() C.int {
	mu.Lock()
	defer mu.Unlock()
	if adapter != nil {
		return 0
	}

	if err := boot.SetupLogging(os.Getenv("TEXRES_LOG")); err != nil {
		return -1
	}
	data := os.Getenv("TEXRES_DATA")
	if data == "" {
		data = "dat"
	}
	src, closeSrc, err := boot.OpenSource(filepath.SplitList(data)...)
	if err != nil {
		texres.Logger().Error("libtexres: open data", "error", err)
		return -1
	}
	dev, closeDev, err := boot.OpenDevice(os.Getenv("TEXRES_DEVICE"))
	if err != nil {
		closeSrc()
		texres.Logger().Error("libtexres: open device", "error", err)
		return -1
	}
	adapter = capi.NewAdapter(dev, capi.WithSource(src))
	shutdown = []func(){closeDev, closeSrc}
	return 0
}

//export gl_exitTextures_
func gl_exitTextures_() {
	mu.Lock()
	defer mu.Unlock()
	if adapter == nil {
		return
	}
	adapter.Close()
	adapter = nil
	names.clear()
	for _, f := range shutdown {
		f()
	}
	shutdown = nil
}

//export gl_texExistsOrCreate_
func gl_texExistsOrCreate_(path *C.char, flags C.uint, sx, sy C.int, created *C.int) C.uintptr_t {
	a := current()
	if a == nil {
		return 0
	}
	h, fresh, _ := a.ExistsOrCreate(C.GoString(path), capi.Flags(flags), int(sx), int(sy))
	if created != nil {
		*created = 0
		if fresh {
			*created = 1
		}
	}
	return C.uintptr_t(h)
}

//export gl_loadImageData_
func gl_loadImageData_(data *C.float, w, h, sx, sy C.int, name *C.char) C.uintptr_t {
	a := current()
	if a == nil || data == nil || w <= 0 || h <= 0 {
		return 0
	}
	floats := unsafe.Slice((*float32)(unsafe.Pointer(data)), int(w)*int(h)*4)
	var n string
	if name != nil {
		n = C.GoString(name)
	}
	return out(a.LoadImageData(floats, int(w), int(h), int(sx), int(sy), n))
}

//export gl_newImage_
func gl_newImage_(path *C.char, flags C.uint) C.uintptr_t {
	return gl_newSprite_(path, 1, 1, flags)
}

//export gl_newSprite_
func gl_newSprite_(path *C.char, sx, sy C.int, flags C.uint) C.uintptr_t {
	a := current()
	if a == nil {
		return 0
	}
	return out(a.NewSprite(C.GoString(path), int(sx), int(sy), capi.Flags(flags)))
}

//export gl_newImageRWops_
func gl_newImageRWops_(path *C.char, _ unsafe.Pointer, flags C.uint) C.uintptr_t {
	a := current()
	if a == nil {
		return 0
	}
	return out(a.NewImageReader(C.GoString(path), nil, capi.Flags(flags)))
}

//export gl_newSpriteRWops_
func gl_newSpriteRWops_(path *C.char, _ unsafe.Pointer, sx, sy C.int, flags C.uint) C.uintptr_t {
	a := current()
	if a == nil {
		return 0
	}
	return out(a.NewSpriteReader(C.GoString(path), nil, int(sx), int(sy), capi.Flags(flags)))
}

//export gl_rawTexture_
func gl_rawTexture_(tex C.uintptr_t, id C.uint64_t, w, h C.double) C.uintptr_t {
	a := current()
	if a == nil {
		return 0
	}
	return out(a.RawTexture(handle(tex), gfx.TextureID(id), float64(w), float64(h)))
}

//export gl_dupTexture_
func gl_dupTexture_(tex C.uintptr_t) C.uintptr_t {
	a := current()
	if a == nil {
		return 0
	}
	return out(a.Dup(handle(tex)))
}

//export gl_freeTexture_
func gl_freeTexture_(tex C.uintptr_t) {
	a := current()
	if a == nil {
		return
	}
	h := handle(tex)
	a.Free(h)
	names.drop(h)
}
