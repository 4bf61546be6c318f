// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package imgdec

// TransMap is a one bit per pixel map of fully transparent pixels, used for
// pixel-exact hit testing against sprites.
type TransMap struct {
	width  int
	height int
	bits   []uint64
}

// TransparencyMap builds the transparency map of m. A pixel is transparent
// when its alpha is zero.
func TransparencyMap(m *Image) *TransMap {
	t := &TransMap{
		width:  m.Width,
		height: m.Height,
		bits:   make([]uint64, (m.Width*m.Height+63)/64),
	}
	for i := 0; i < m.Width*m.Height; i++ {
		if m.Pix[i*4+3] == 0 {
			t.bits[i>>6] |= 1 << (uint(i) & 63)
		}
	}
	return t
}

// IsTransparent reports whether the pixel at (x, y) is fully transparent.
// (0, 0) is the first row of the uploaded data. Coordinates outside the
// image are reported as transparent.
func (t *TransMap) IsTransparent(x, y int) bool {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return true
	}
	i := y*t.width + x
	return t.bits[i>>6]&(1<<(uint(i)&63)) != 0
}

// Size returns the dimensions covered by the map.
func (t *TransMap) Size() (width, height int) {
	return t.width, t.height
}
