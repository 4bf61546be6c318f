// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command libtexres builds the texture subsystem as a C shared library:
//
//	go build -buildmode=c-shared -o libtexres.so ./cmd/libtexres
//
// Handles are returned as uintptr_t tokens, 0 meaning failure. The
// environment configures the library at gl_initTextures_ time:
//
//	TEXRES_DATA    data search path, entries separated by the OS list
//	               separator; entries ending in .zip are archives (default "dat")
//	TEXRES_DEVICE  auto or soft (default auto)
//	TEXRES_LOG     debug, info, warn or error; unset keeps logging silent
//
// A c-shared build requires cgo, and the HAL backends refuse to build with
// cgo enabled, so the library always runs on the in-memory soft device:
// "auto" selects it and "vulkan" makes gl_initTextures_ fail. Texture and
// sampler ids returned by tex_tex_ and tex_sampler are that device's ids.
package main

func main() {}
