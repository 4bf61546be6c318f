// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gogpu/texres/capi"
	"github.com/gogpu/texres/gfx"
	"github.com/gogpu/texres/gfx/softgfx"
	"github.com/gogpu/texres/internal/workpool"
	"github.com/gogpu/texres/ndata"
	"github.com/gogpu/texres/texture"
)

// report summarizes one inspection run.
type report struct {
	Loaded   int
	Failed   int
	Handles  int
	Registry texture.RegistryStats
}

// loaded is the outcome of one manifest entry.
type loaded struct {
	handles []capi.Handle
	created bool
	err     error
}

// inspect loads every manifest entry on m.Workers loaders, prints the
// geometry in manifest order, frees all handles and prints the release
// accounting.
func inspect(w io.Writer, m *Manifest, dev gfx.Device, src ndata.Source) (report, error) {
	reg := texture.NewRegistry()
	a := capi.NewAdapter(dev, capi.WithSource(src), capi.WithRegistry(reg))
	defer a.Close()

	results := make([]loaded, len(m.Textures))
	pool := workpool.New(m.Workers)
	pool.Each(len(m.Textures), func(i int) {
		e := m.Textures[i]
		h, created, err := a.ExistsOrCreate(e.Path, e.flags, e.Columns, e.Rows)
		if err != nil {
			results[i].err = err
			return
		}
		r := loaded{handles: []capi.Handle{h}, created: created}
		for range e.Dup {
			d, err := a.Dup(h)
			if err != nil {
				r.err = fmt.Errorf("texinspect: dup %s: %w", e.Path, err)
				break
			}
			r.handles = append(r.handles, d)
		}
		results[i] = r
	})
	pool.Close()

	var (
		rep     report
		handles []capi.Handle
		dupErr  error
	)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tSIZE\tGRID\tFRAME\tTEXTURE\tCACHED\tFLAGS")
	for i, e := range m.Textures {
		r := results[i]
		handles = append(handles, r.handles...)
		if len(r.handles) == 0 {
			rep.Failed++
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\t%v\n", e.Path, r.err)
			continue
		}
		if r.err != nil && dupErr == nil {
			dupErr = r.err
		}
		rep.Loaded++
		h := r.handles[0]
		fmt.Fprintf(tw, "%s\t%vx%v\t%vx%v\t%vx%v (%.4gx%.4g)\t%d\t%v\t%v\n",
			e.Path, a.Width(h), a.Height(h), a.SX(h), a.SY(h),
			a.SW(h), a.SH(h), a.SRW(h), a.SRH(h),
			a.TextureID(h), !r.created, a.Flags(h))
	}
	if err := tw.Flush(); err != nil {
		return rep, err
	}
	if dupErr != nil {
		return rep, dupErr
	}

	rep.Handles = len(handles)
	rep.Registry = reg.Stats()
	fmt.Fprintf(w, "\nhandles %d, registry: %d entries, %d hits, %d misses, %d failures\n",
		rep.Handles, rep.Registry.Entries, rep.Registry.Hits, rep.Registry.Misses, rep.Registry.Failures)

	for _, h := range handles {
		a.Free(h)
	}
	fmt.Fprintf(w, "after free: %d live entries, %d compacted\n", reg.Live(), reg.Compact())
	if soft, ok := dev.(*softgfx.Device); ok {
		fmt.Fprintf(w, "device: %v\n", soft.Stats())
	}
	return rep, nil
}
