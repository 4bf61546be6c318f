// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import "github.com/gogpu/texres/capi"

func number(tex C.uintptr_t, f func(*capi.Adapter, capi.Handle) float64) C.double {
	a := current()
	if a == nil {
		return 0
	}
	return C.double(f(a, handle(tex)))
}

func boolean(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

//export tex_w_
func tex_w_(tex C.uintptr_t) C.double { return number(tex, (*capi.Adapter).Width) }

//export tex_h_
func tex_h_(tex C.uintptr_t) C.double { return number(tex, (*capi.Adapter).Height) }

//export tex_sx_
func tex_sx_(tex C.uintptr_t) C.double { return number(tex, (*capi.Adapter).SX) }

//export tex_sy_
func tex_sy_(tex C.uintptr_t) C.double { return number(tex, (*capi.Adapter).SY) }

//export tex_sw_
func tex_sw_(tex C.uintptr_t) C.double { return number(tex, (*capi.Adapter).SW) }

//export tex_sh_
func tex_sh_(tex C.uintptr_t) C.double { return number(tex, (*capi.Adapter).SH) }

//export tex_srw_
func tex_srw_(tex C.uintptr_t) C.double { return number(tex, (*capi.Adapter).SRW) }

//export tex_srh_
func tex_srh_(tex C.uintptr_t) C.double { return number(tex, (*capi.Adapter).SRH) }

//export tex_vmax_
func tex_vmax_(tex C.uintptr_t) C.double { return number(tex, (*capi.Adapter).VMax) }

//export tex_tex_
func tex_tex_(tex C.uintptr_t) C.uint64_t {
	a := current()
	if a == nil {
		return 0
	}
	return C.uint64_t(a.TextureID(handle(tex)))
}

//export tex_sampler
func tex_sampler(tex C.uintptr_t) C.uint64_t {
	a := current()
	if a == nil {
		return 0
	}
	return C.uint64_t(a.SamplerID(handle(tex)))
}

//export tex_name_
func tex_name_(tex C.uintptr_t) *C.char {
	a := current()
	if a == nil {
		return names.empty
	}
	return names.get(a, handle(tex))
}

//export tex_isSDF_
func tex_isSDF_(tex C.uintptr_t) C.int {
	a := current()
	return boolean(a != nil && a.IsSDF(handle(tex)))
}

//export tex_hasTrans_
func tex_hasTrans_(tex C.uintptr_t) C.int {
	a := current()
	return boolean(a != nil && a.HasTrans(handle(tex)))
}

//export gl_isTrans_
func gl_isTrans_(tex C.uintptr_t, x, y C.int) C.int {
	a := current()
	return boolean(a != nil && a.IsTrans(handle(tex), int(x), int(y)))
}

//export tex_flags_
func tex_flags_(tex C.uintptr_t) C.uint {
	a := current()
	if a == nil {
		return 0
	}
	return C.uint(a.Flags(handle(tex)))
}

//export tex_setVFLIP_
func tex_setVFLIP_(tex C.uintptr_t, flip C.int) {
	if a := current(); a != nil {
		a.SetVFlip(handle(tex), flip != 0)
	}
}

//export gl_getSpriteFromDir_
func gl_getSpriteFromDir_(x, y *C.int, tex C.uintptr_t, dir C.double) {
	a := current()
	if a == nil || x == nil || y == nil {
		return
	}
	sx, sy := a.SpriteFromDir(handle(tex), float64(dir))
	*x, *y = C.int(sx), C.int(sy)
}
