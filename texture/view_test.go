// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"errors"
	"testing"

	"github.com/gogpu/texres"
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/texres/gfx/softgfx"
)

func TestViewSharesReleaseAtLastDestroy(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		env := newTestEnv(t)
		env.addPNG(t, "gfx/ship.png", 4, 4)

		views := []*View{mustBuild(t, env.dev, env.builder().FromPath("gfx/ship.png"))}
		for len(views) < n {
			c, err := views[len(views)-1].Clone()
			if err != nil {
				t.Fatalf("Clone: %v", err)
			}
			views = append(views, c)
		}
		id := views[0].TextureID()

		for i, v := range views {
			if !env.dev.IsLive(id) {
				t.Fatalf("n=%d: texture destroyed after %d destroys", n, i)
			}
			v.Destroy()
		}
		if env.dev.IsLive(id) {
			t.Errorf("n=%d: texture leaked after all views destroyed", n)
		}
		s := env.dev.Stats()
		if s.TexturesDestroyed != 1 || s.InvalidDestroys != 0 {
			t.Errorf("n=%d: stats = %v, want exactly one texture destroy", n, s)
		}
		if s.SamplersCreated != uint64(n) || s.SamplersDestroyed != uint64(n) {
			t.Errorf("n=%d: samplers %d created, %d destroyed, want %d", n, s.SamplersCreated, s.SamplersDestroyed, n)
		}
	}
}

func TestViewMixedBuildAndClone(t *testing.T) {
	env := newTestEnv(t)
	env.addPNG(t, "gfx/ship.png", 4, 4)

	a := mustBuild(t, env.dev, env.builder().FromPath("gfx/ship.png"))
	b := mustBuild(t, env.dev, env.builder().FromPath("gfx/ship.png").Sprite(2, 2))
	c, err := b.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if a.Resource().Refs() != 3 {
		t.Fatalf("Refs = %d, want 3", a.Resource().Refs())
	}
	if c.SX() != 2 || c.SRW() != 0.5 {
		t.Errorf("clone grid = %d (%v), want 2 (0.5)", c.SX(), c.SRW())
	}

	id := a.TextureID()
	a.Destroy()
	c.Destroy()
	if !env.dev.IsLive(id) {
		t.Fatal("texture destroyed while a view remains")
	}
	b.Destroy()
	if env.dev.IsLive(id) {
		t.Error("texture leaked")
	}
}

func TestViewCloneSamplerIndependence(t *testing.T) {
	env := newTestEnv(t)
	env.addPNG(t, "a.png", 2, 2)

	orig := mustBuild(t, env.dev, env.builder().
		FromPath("a.png").
		AddressModeU(gfx.AddressMirrorRepeat).
		AddressModeV(gfx.AddressClampToEdge).
		Filter(gfx.FilterNearest))
	defer orig.Destroy()

	dup, err := orig.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	defer dup.Destroy()

	if dup.SamplerID() == orig.SamplerID() {
		t.Fatal("clone shares the original sampler")
	}
	want, _ := orig.SamplerState()
	got, _ := dup.SamplerState()
	if got != want {
		t.Fatalf("clone sampler = %+v, want copy %+v", got, want)
	}

	got.MagFilter = gfx.FilterLinear
	got.WrapS = gfx.AddressRepeat
	if err := dup.SetSamplerState(got); err != nil {
		t.Fatalf("SetSamplerState: %v", err)
	}
	after, _ := orig.SamplerState()
	if after != want {
		t.Errorf("original sampler changed to %+v, want %+v", after, want)
	}
}

func TestViewCloneCopiesFourParameters(t *testing.T) {
	env := newTestEnv(t)
	env.addPNG(t, "a.png", 2, 2)

	orig := mustBuild(t, env.dev, env.builder().FromPath("a.png").Border([4]float32{1, 0, 0, 1}))
	defer orig.Destroy()
	dup, err := orig.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	defer dup.Destroy()

	state, _ := dup.SamplerState()
	if state.WrapS != gfx.AddressClampToBorder || state.WrapT != gfx.AddressClampToBorder {
		t.Errorf("wrap = %v/%v, want clamp-to-border copied", state.WrapS, state.WrapT)
	}
	if state.HasBorder {
		t.Error("border color should not be copied")
	}
}

func TestViewCloneFailure(t *testing.T) {
	env := newTestEnv(t, softgfx.WithMaxSamplers(1))
	env.addPNG(t, "a.png", 2, 2)

	v := mustBuild(t, env.dev, env.builder().FromPath("a.png"))
	defer v.Destroy()

	if _, err := v.Clone(); !errors.Is(err, texres.ErrGraphicsAllocation) {
		t.Errorf("err = %v, want ErrGraphicsAllocation", err)
	}
	if v.Resource().Refs() != 1 {
		t.Errorf("Refs = %d, want 1 after failed clone", v.Resource().Refs())
	}
}

func TestViewDestroyTwice(t *testing.T) {
	env := newTestEnv(t)
	env.addPNG(t, "a.png", 2, 2)

	v := mustBuild(t, env.dev, env.builder().FromPath("a.png"))
	v.Destroy()
	v.Destroy()

	if s := env.dev.Stats(); s.InvalidDestroys != 0 || s.SamplersDestroyed != 1 {
		t.Errorf("stats = %v, want one sampler destroy and no invalid destroys", s)
	}
}

func TestViewSetVFlip(t *testing.T) {
	env := newTestEnv(t)
	env.addPNG(t, "a.png", 2, 2)

	v := mustBuild(t, env.dev, env.builder().FromPath("a.png"))
	defer v.Destroy()
	before, _ := env.dev.Pixels(v.TextureID())

	v.SetVFlip(true)
	if !v.VFlip() {
		t.Error("VFlip = false after SetVFlip(true)")
	}
	after, _ := env.dev.Pixels(v.TextureID())
	if string(before) != string(after) {
		t.Error("SetVFlip touched pixel data")
	}
}
