// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"sync"
	"sync/atomic"
	"weak"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/texres"
	"github.com/gogpu/texres/ndata"
)

// Registry interns resources by logical name without owning them.
//
// Entries are weak: a Registry never keeps a Resource alive, and an entry
// whose resource has been released is skipped on lookup. Such dead entries
// stay in the list until Compact is called.
//
// Registry is safe for concurrent use. Creation runs under the registry
// lock, so concurrent first loads are serialized and a name is never loaded
// twice while its resource is live.
type Registry struct {
	mu      sync.Mutex
	entries []registryEntry

	hits      atomic.Uint64
	misses    atomic.Uint64
	failures  atomic.Uint64
	compacted atomic.Uint64
}

type registryEntry struct {
	name string
	ref  weak.Pointer[Resource]
}

// RegistryStats holds registry counters.
type RegistryStats struct {
	// Entries is the current length of the entry list, dead entries included.
	Entries int

	// Live is the number of entries whose resource is still referenced.
	Live int

	Hits     uint64
	Misses   uint64
	Failures uint64

	// Compacted is the total number of dead entries removed by Compact.
	Compacted uint64

	HitRate float64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by builders that
// are not given one explicitly.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// CacheKey returns the registry key for a logical path: slash-cleaned and
// NFC-normalized so that equivalent spellings share one entry.
func CacheKey(name string) string {
	if name == "" {
		return ""
	}
	return norm.NFC.String(ndata.Clean(name))
}

// Lookup returns a new share of the live resource registered under name.
// The caller must Release it.
func (r *Registry) Lookup(name string) (*Resource, bool) {
	if name == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupLocked(name)
}

func (r *Registry) lookupLocked(name string) (*Resource, bool) {
	for _, e := range r.entries {
		if e.name != name {
			continue
		}
		if res := e.ref.Value(); res != nil && res.tryAcquire() {
			return res, true
		}
	}
	return nil, false
}

// LookupOrCreate returns a share of the live resource registered under
// name, or calls create and registers its result. created reports which
// happened. The returned resource carries one share owned by the caller.
//
// An empty name bypasses the registry: create is always called and nothing
// is registered. When create fails nothing is registered either.
func (r *Registry) LookupOrCreate(name string, create func() (*Resource, error)) (res *Resource, created bool, err error) {
	if name == "" {
		res, err = create()
		if err != nil {
			return nil, false, err
		}
		return res, true, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.lookupLocked(name); ok {
		r.hits.Add(1)
		texres.Logger().Debug("texture: cache hit", "name", name, "id", uint64(res.tex))
		return res, false, nil
	}

	r.misses.Add(1)
	res, err = create()
	if err != nil {
		r.failures.Add(1)
		return nil, false, err
	}
	r.entries = append(r.entries, registryEntry{name: name, ref: weak.Make(res)})
	texres.Logger().Debug("texture: cache miss", "name", name, "id", uint64(res.tex))
	return res, true, nil
}

// Len returns the number of entries, dead entries included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Live returns the number of entries whose resource is still referenced.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.liveLocked()
}

func (r *Registry) liveLocked() int {
	n := 0
	for _, e := range r.entries {
		if isLive(e) {
			n++
		}
	}
	return n
}

func isLive(e registryEntry) bool {
	res := e.ref.Value()
	return res != nil && !res.Released()
}

// Compact removes dead entries and returns how many were removed.
// It is never called implicitly.
func (r *Registry) Compact() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	for _, e := range r.entries {
		if isLive(e) {
			kept = append(kept, e)
		}
	}
	removed := len(r.entries) - len(kept)
	clear(r.entries[len(kept):])
	r.entries = kept

	if removed > 0 {
		r.compacted.Add(uint64(removed))
		texres.Logger().Debug("texture: registry compacted", "removed", removed, "kept", len(kept))
	}
	return removed
}

// Stats returns current registry statistics.
func (r *Registry) Stats() RegistryStats {
	r.mu.Lock()
	entries := len(r.entries)
	live := r.liveLocked()
	r.mu.Unlock()

	hits := r.hits.Load()
	misses := r.misses.Load()
	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return RegistryStats{
		Entries:   entries,
		Live:      live,
		Hits:      hits,
		Misses:    misses,
		Failures:  r.failures.Load(),
		Compacted: r.compacted.Load(),
		HitRate:   hitRate,
	}
}
