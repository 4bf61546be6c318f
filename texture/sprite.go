// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import "math"

// SpriteFromDir returns the frame of a columns x rows sheet that shows an
// object facing dir (radians). Frames are laid out row-major and together
// cover one full turn, frame 0 centered on angle 0.
func SpriteFromDir(columns, rows int, dir float64) (x, y int) {
	n := columns * rows
	if n <= 0 || math.IsNaN(dir) || math.IsInf(dir, 0) {
		return 0, 0
	}
	shard := 2 * math.Pi / float64(n)
	rdir := math.Mod(dir+shard/2, 2*math.Pi)
	if rdir < 0 {
		rdir += 2 * math.Pi
	}
	s := int(rdir/shard) % n
	return s % columns, s / columns
}

// SpriteFromDir returns the frame of the View's sheet facing dir.
func (v *View) SpriteFromDir(dir float64) (x, y int) {
	return SpriteFromDir(v.sx, v.sy, dir)
}

// FrameRect returns the normalized texture coordinates of frame (x, y):
// the top-left corner (s, t) and the frame size.
func (v *View) FrameRect(x, y int) (s, t, w, h float64) {
	return float64(x) * v.srw, float64(y) * v.srh, v.srw, v.srh
}
