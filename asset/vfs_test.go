// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"testing"
	"time"
)

func TestUriMonitorDispatchFiresOnAdvancedTimestamp(t *testing.T) {
	modTimes := map[string]time.Time{"a.json": time.Unix(100, 0)}
	monitor := NewUriMonitor(func(uri Uri) (time.Time, bool) {
		t, ok := modTimes[uri.Value()]
		return t, ok
	})

	uri := NewUri("a.json")
	monitor.Track(uri)

	fired := 0
	monitor.OnModified(uri, func(u Uri) { fired++ })

	monitor.DispatchModified()
	if fired != 0 {
		t.Fatalf("expected no dispatch before modification, got %d", fired)
	}

	modTimes["a.json"] = time.Unix(200, 0)
	monitor.DispatchModified()
	if fired != 1 {
		t.Fatalf("expected exactly one dispatch after modification, got %d", fired)
	}

	// Dispatching again without a further change should not re-fire.
	monitor.DispatchModified()
	if fired != 1 {
		t.Fatalf("expected no re-dispatch without a new modification, got %d", fired)
	}
}

func TestUriMonitorUnsubscribeDuringDispatch(t *testing.T) {
	modTimes := map[string]time.Time{"a.json": time.Unix(0, 0)}
	monitor := NewUriMonitor(func(uri Uri) (time.Time, bool) {
		t, ok := modTimes[uri.Value()]
		return t, ok
	})
	uri := NewUri("a.json")
	monitor.Track(uri)

	var sub Subscription
	calledOther := false
	sub = monitor.OnModified(uri, func(u Uri) { sub.Unsubscribe() })
	monitor.OnModified(uri, func(u Uri) { calledOther = true })

	modTimes["a.json"] = time.Unix(1, 0)
	monitor.DispatchModified() // must not panic or deadlock.
	if !calledOther {
		t.Fatal("expected second callback to still fire in the same dispatch")
	}

	modTimes["a.json"] = time.Unix(2, 0)
	monitor.DispatchModified() // unsubscribed callback must not fire again.
}

func TestUriMonitorInvalidateAllForgetsTracking(t *testing.T) {
	modTimes := map[string]time.Time{"a.json": time.Unix(0, 0)}
	monitor := NewUriMonitor(func(uri Uri) (time.Time, bool) {
		t, ok := modTimes[uri.Value()]
		return t, ok
	})
	uri := NewUri("a.json")
	monitor.Track(uri)
	monitor.InvalidateAll()

	fired := false
	monitor.OnModified(uri, func(u Uri) { fired = true })
	modTimes["a.json"] = time.Unix(1, 0)
	monitor.DispatchModified()
	if fired {
		t.Fatal("invalidated monitor should not fire for a uri it no longer tracks")
	}
}
