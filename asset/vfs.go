// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// vfs.go provides the mounted, modification-watching byte store between the
// engine and the on-disk data directory. DataSource/DataSink separate read
// and write access; UriMonitor tracks modification times for hot-reload.
// Grounded on the teacher's load.Loader idiom (never returns an error for a
// missing resource, logs instead) and the original disk_vfs.hpp contract.

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

// DataSource reads bytes for a Uri. Implementations never panic; a missing
// or unreadable file returns an empty slice.
type DataSource interface {
	Read(uri Uri) []byte
}

// DataSink additionally writes bytes for a Uri.
type DataSink interface {
	DataSource
	Write(data []byte, uri Uri) bool
}

// ModifiedFunc is invoked when a tracked Uri's on-disk timestamp advances.
type ModifiedFunc func(uri Uri)

// UriMonitor records the last-modified timestamp for every Uri previously
// read through it and, on DispatchModified, fires callbacks registered via
// OnModified for every Uri whose on-disk timestamp has advanced.
type UriMonitor struct {
	mu        sync.Mutex
	stat      func(uri Uri) (time.Time, bool)
	tracked   map[uint64]trackedEntry
	callbacks map[uint64][]ModifiedFunc
	nextSubID uint64
	subs      map[uint64]subKey
}

type trackedEntry struct {
	uri      Uri
	modified time.Time
}

type subKey struct {
	uriHash uint64
	slot    int
}

// NewUriMonitor creates a monitor backed by stat, which resolves a Uri's
// current modification time (false if the Uri does not exist).
func NewUriMonitor(stat func(uri Uri) (time.Time, bool)) *UriMonitor {
	return &UriMonitor{
		stat:      stat,
		tracked:   map[uint64]trackedEntry{},
		callbacks: map[uint64][]ModifiedFunc{},
		subs:      map[uint64]subKey{},
	}
}

// Track records the current modification time for uri, called whenever the
// VFS serves a read for it.
func (m *UriMonitor) Track(uri Uri) {
	t, ok := m.stat(uri)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracked[uri.Hash()] = trackedEntry{uri: uri, modified: t}
}

// Subscription identifies a registered OnModified callback; Unsubscribe
// removes it. The zero value is a no-op subscription.
type Subscription struct {
	monitor *UriMonitor
	id      uint64
}

// Unsubscribe disconnects the callback. Safe to call during dispatch and
// safe to call more than once.
func (s Subscription) Unsubscribe() {
	if s.monitor == nil {
		return
	}
	s.monitor.mu.Lock()
	defer s.monitor.mu.Unlock()
	key, ok := s.monitor.subs[s.id]
	if !ok {
		return
	}
	delete(s.monitor.subs, s.id)
	cbs := s.monitor.callbacks[key.uriHash]
	if key.slot < len(cbs) {
		cbs[key.slot] = nil // tombstone: preserves other slots' indices.
	}
}

// OnModified registers a callback for uri, returning a Subscription that
// can be used to unsubscribe later (including from within a dispatch).
func (m *UriMonitor) OnModified(uri Uri, fn ModifiedFunc) Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	slot := len(m.callbacks[uri.Hash()])
	m.callbacks[uri.Hash()] = append(m.callbacks[uri.Hash()], fn)
	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = subKey{uriHash: uri.Hash(), slot: slot}
	return Subscription{monitor: m, id: id}
}

// DispatchModified checks every tracked Uri's current timestamp against the
// one recorded at last Track and invokes callbacks for any that advanced.
// Callbacks are invoked on the calling goroutine, never concurrently with
// each other. The callback list is snapshotted under the lock then invoked
// outside it, so callbacks may safely (un)subscribe during dispatch.
func (m *UriMonitor) DispatchModified() {
	type fire struct {
		uriHash uint64
		fns     []ModifiedFunc
	}
	var fires []fire

	m.mu.Lock()
	for uriHash, entry := range m.tracked {
		cur, ok := m.stat(entry.uri)
		if !ok {
			continue
		}
		if cur.After(entry.modified) {
			entry.modified = cur
			m.tracked[uriHash] = entry
			fns := append([]ModifiedFunc(nil), m.callbacks[uriHash]...)
			fires = append(fires, fire{uriHash: uriHash, fns: fns})
		}
	}
	m.mu.Unlock()

	for _, f := range fires {
		uri := Uri{hash: f.uriHash}
		m.mu.Lock()
		if entry, ok := m.tracked[f.uriHash]; ok {
			uri = entry.uri
		}
		m.mu.Unlock()
		for _, fn := range f.fns {
			if fn != nil {
				fn(uri)
			}
		}
	}
}

// InvalidateAll forgets every tracked timestamp. The next DispatchModified
// will therefore treat every tracked Uri as fresh (no spurious reload on the
// following read, but a future write will be seen as new).
func (m *UriMonitor) InvalidateAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracked = map[uint64]trackedEntry{}
}

// DiskVFS is a concrete DataSink rooted at a mount point, translating Uris to
// filesystem paths. It does not cache bytes; caching is the asset layer's job.
type DiskVFS struct {
	root    string
	monitor *UriMonitor
}

// NewDiskVFS mounts root as the VFS root directory.
func NewDiskVFS(root string) *DiskVFS {
	vfs := &DiskVFS{root: root}
	vfs.monitor = NewUriMonitor(vfs.stat)
	return vfs
}

// Monitor returns the modification monitor bound to this VFS's mount point.
func (v *DiskVFS) Monitor() *UriMonitor { return v.monitor }

// Root returns the mounted filesystem root.
func (v *DiskVFS) Root() string { return v.root }

// Remount changes the mount point, invalidating every tracked timestamp: the
// next dispatch treats every tracked Uri as fresh.
func (v *DiskVFS) Remount(root string) {
	v.root = root
	v.monitor.InvalidateAll()
}

// Read returns the bytes for uri, or an empty slice if missing/unreadable.
// Never returns an error; callers substitute a fallback on an empty result.
func (v *DiskVFS) Read(uri Uri) []byte {
	path := uri.AbsolutePath(v.root)
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("vfs read failed", "uri", uri.Value(), "error", err)
		return nil
	}
	v.monitor.Track(uri)
	return data
}

// Write stores data at uri's resolved path. Creating intermediate
// directories is out of scope; the caller ensures the parent exists.
func (v *DiskVFS) Write(data []byte, uri Uri) bool {
	path := uri.AbsolutePath(v.root)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Warn("vfs write failed", "uri", uri.Value(), "error", err)
		return false
	}
	v.monitor.Track(uri)
	return true
}

func (v *DiskVFS) stat(uri Uri) (time.Time, bool) {
	info, err := os.Stat(uri.AbsolutePath(v.root))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
