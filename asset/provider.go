// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// provider.go is the generic core shared by every concrete asset provider
// (shader, texture, material, mesh, skeleton, animation, font, audio).
// Grounded on the teacher's asset.go (depot/assets: cache-or-load, fallback
// on failure, log-and-continue) generalized from a single name-keyed map to
// a per-kind concurrent Uri->Entry map with dependency tracking, per spec
// §4.4. The mutex is released while load_payload runs and re-acquired only
// to insert the finished entry -- two racing loads of the same uri may both
// parse, the second insertion wins; this is fine because loads are pure.
import (
	"log/slog"
	"sync"
	"time"
)

// entry is the provider's per-uri cache record.
type entry[T any] struct {
	payload      *T
	dependencies []Uri
	snapshot     []time.Time // dependency mtimes observed at load time.
}

// LoadFunc parses and constructs the payload for uri, returning the asset's
// dependency Uris (for invalidation tracking) alongside it. An error means
// the provider falls back.
type LoadFunc[T any] func(uri Uri) (payload *T, dependencies []Uri, err error)

// Provider is a typed, concurrent, content-addressed cache for one asset
// kind. The zero value is not usable; use NewProvider.
type Provider[T any] struct {
	kind     string
	vfs      DataSource
	monitor  *UriMonitor
	load     LoadFunc[T]
	fallback func() *T

	mu      sync.Mutex
	entries map[uint64]*entry[T]
}

// NewProvider constructs a provider of the given kind (used only for
// logging). load performs the type-specific parse; fallback (may be nil)
// supplies a degraded default returned on load failure.
func NewProvider[T any](kind string, vfs DataSource, monitor *UriMonitor, load LoadFunc[T], fallback func() *T) *Provider[T] {
	return &Provider[T]{
		kind:     kind,
		vfs:      vfs,
		monitor:  monitor,
		load:     load,
		fallback: fallback,
		entries:  map[uint64]*entry[T]{},
	}
}

// Get returns the cached payload for uri, lazily loading (and caching) it on
// a miss. On load failure, logs a warning and returns the shared fallback
// (nil if no fallback was configured).
func (p *Provider[T]) Get(uri Uri) *T {
	p.mu.Lock()
	if e, ok := p.entries[uri.Hash()]; ok {
		p.mu.Unlock()
		return e.payload
	}
	p.mu.Unlock()

	payload, deps, err := p.load(uri)
	if err != nil {
		slog.Warn("asset provider load failed", "kind", p.kind, "uri", uri.Value(), "error", err)
		if p.fallback != nil {
			return p.fallback()
		}
		return nil
	}

	snapshot := make([]time.Time, len(deps))
	for i, d := range deps {
		if p.monitor != nil {
			p.monitor.Track(d)
			if t, ok := p.monitor.stat(d); ok {
				snapshot[i] = t
			}
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Another goroutine may have already inserted a racing load; second
	// insertion wins, matching the documented concurrency contract.
	p.entries[uri.Hash()] = &entry[T]{payload: payload, dependencies: deps, snapshot: snapshot}
	return payload
}

// Find returns the cached payload for uri without triggering a load.
func (p *Provider[T]) Find(uri Uri) (*T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[uri.Hash()]
	if !ok {
		return nil, false
	}
	return e.payload, true
}

// Add inserts an externally constructed asset with only uri itself as a
// dependency (so it only ever invalidates on its own modification, not a
// transitive one).
func (p *Provider[T]) Add(uri Uri, payload *T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var snapshot []time.Time
	if p.monitor != nil {
		if t, ok := p.monitor.stat(uri); ok {
			snapshot = []time.Time{t}
		}
	}
	p.entries[uri.Hash()] = &entry[T]{payload: payload, dependencies: []Uri{uri}, snapshot: snapshot}
}

// Clear drops all entries.
func (p *Provider[T]) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = map[uint64]*entry[T]{}
}

// ReloadOutOfDate evicts any entry whose dependency timestamp has advanced
// since the entry was created; a subsequent Get re-loads it.
func (p *Provider[T]) ReloadOutOfDate() {
	if p.monitor == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for hash, e := range p.entries {
		for i, dep := range e.dependencies {
			cur, ok := p.monitor.stat(dep)
			if !ok {
				continue
			}
			if i >= len(e.snapshot) || cur.After(e.snapshot[i]) {
				delete(p.entries, hash)
				break
			}
		}
	}
}

// Len reports the number of cached entries, mostly useful for tests.
func (p *Provider[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
