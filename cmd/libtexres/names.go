// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"sync"

	"github.com/gogpu/texres/capi"
)

// nameCache holds one foreign copy of each handle's name, so tex_name_ can
// return a pointer that stays valid until the handle is freed. Unknown
// handles share the static empty copy and allocate nothing.
type nameCache[S comparable] struct {
	mu    sync.Mutex
	m     map[capi.Handle]S
	alloc func(string) S
	free  func(S)
	empty S
}

func newNameCache[S comparable](alloc func(string) S, free func(S)) *nameCache[S] {
	return &nameCache[S]{
		m:     make(map[capi.Handle]S),
		alloc: alloc,
		free:  free,
		empty: alloc(""),
	}
}

func (c *nameCache[S]) get(a *capi.Adapter, h capi.Handle) S {
	v := a.View(h)
	if v == nil {
		return c.empty
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.m[h]; ok {
		return s
	}
	s := c.alloc(v.Name())
	c.m[h] = s
	return s
}

// drop frees the copy held for h, if any.
func (c *nameCache[S]) drop(h capi.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.m[h]; ok {
		c.free(s)
		delete(c.m, h)
	}
}

// clear frees every per-handle copy. The empty copy is kept.
func (c *nameCache[S]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for h, s := range c.m {
		c.free(s)
		delete(c.m, h)
	}
}

func (c *nameCache[S]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
