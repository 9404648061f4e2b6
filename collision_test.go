// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

import (
	"testing"

	"github.com/karnkaul/levk/math/lin"
	"github.com/karnkaul/levk/ui"
)

func TestAABBIntersectsOverlap(t *testing.T) {
	a := AABB{Origin: lin.V3{X: 0, Y: 0, Z: 0}, Size: lin.V3{X: 2, Y: 2, Z: 2}}
	b := AABB{Origin: lin.V3{X: 1, Y: 0, Z: 0}, Size: lin.V3{X: 2, Y: 2, Z: 2}}
	if !a.Intersects(b) {
		t.Fatal("expected overlapping boxes to intersect")
	}
}

func TestAABBIntersectsDisjoint(t *testing.T) {
	a := AABB{Origin: lin.V3{X: 0, Y: 0, Z: 0}, Size: lin.V3{X: 1, Y: 1, Z: 1}}
	b := AABB{Origin: lin.V3{X: 10, Y: 0, Z: 0}, Size: lin.V3{X: 1, Y: 1, Z: 1}}
	if a.Intersects(b) {
		t.Fatal("expected far-apart boxes not to intersect")
	}
}

func TestAABBZeroSizeNeverIntersects(t *testing.T) {
	a := AABB{Origin: lin.V3{}, Size: lin.V3{}}
	b := AABB{Origin: lin.V3{}, Size: lin.V3{X: 1, Y: 1, Z: 1}}
	if a.Intersects(b) {
		t.Fatal("expected a zero-sized box never to intersect")
	}
}

func newColliderScene() (*Scene, *Entity, *Entity) {
	s := NewScene("collision")
	a := s.Spawn(CreateInfo{Name: "a", Transform: NewTransform()})
	b := s.Spawn(CreateInfo{Name: "b", Transform: NewTransform()})
	return s, a, b
}

func TestCollisionDetectsOverlapAndInvokesBothCallbacks(t *testing.T) {
	s, a, b := newColliderScene()

	var aHit, bHit EntityId
	Attach(a, &Collider{Size: lin.V3{X: 2, Y: 2, Z: 2}, OnCollision: func(self, other EntityId) { aHit = other }})
	Attach(b, &Collider{Size: lin.V3{X: 2, Y: 2, Z: 2}, OnCollision: func(self, other EntityId) { bHit = other }})

	s.Nodes.Transform(b.Node()).SetPosition(1, 0, 0)

	s.Tick(1.0/60, &ui.Input{})

	if aHit != b.Id() {
		t.Fatalf("expected a's callback to report b (%v), got %v", b.Id(), aHit)
	}
	if bHit != a.Id() {
		t.Fatalf("expected b's callback to report a (%v), got %v", a.Id(), bHit)
	}
}

func TestCollisionIgnoresSharedChannel(t *testing.T) {
	s, a, b := newColliderScene()

	var hit bool
	Attach(a, &Collider{Size: lin.V3{X: 2, Y: 2, Z: 2}, Channels: 1, OnCollision: func(self, other EntityId) { hit = true }})
	Attach(b, &Collider{Size: lin.V3{X: 2, Y: 2, Z: 2}, Channels: 1})

	s.Tick(1.0/60, &ui.Input{})

	if hit {
		t.Fatal("expected colliders sharing a nonzero channel to ignore each other")
	}
}

func TestCollisionNoOverlapNoCallback(t *testing.T) {
	s, a, b := newColliderScene()

	var hit bool
	Attach(a, &Collider{Size: lin.V3{X: 1, Y: 1, Z: 1}, OnCollision: func(self, other EntityId) { hit = true }})
	Attach(b, &Collider{Size: lin.V3{X: 1, Y: 1, Z: 1}})
	s.Nodes.Transform(b.Node()).SetPosition(100, 0, 0)

	s.Tick(1.0/60, &ui.Input{})

	if hit {
		t.Fatal("expected far-apart colliders not to collide")
	}
}

// TestCollisionSweepsFastMovingCollider verifies the substep sweep: a
// collider that starts clear of another and ends clear of it too, but
// passes through it mid-tick, is still detected instead of tunnelling.
func TestCollisionSweepsFastMovingCollider(t *testing.T) {
	s, a, b := newColliderScene()

	var hit bool
	Attach(a, &Collider{Size: lin.V3{X: 1, Y: 1, Z: 1}, OnCollision: func(self, other EntityId) { hit = true }})
	Attach(b, &Collider{Size: lin.V3{X: 1, Y: 1, Z: 1}})
	s.Nodes.Transform(b.Node()).SetPosition(5, 0, 0)

	// First tick establishes a's previous position for the sweep.
	s.Nodes.Transform(a.Node()).SetPosition(-5, 0, 0)
	s.Tick(1.0/60, &ui.Input{})
	if hit {
		t.Fatal("expected no collision before the sweep")
	}

	// Second tick: a jumps straight through b's position in one dt.
	s.Nodes.Transform(a.Node()).SetPosition(15, 0, 0)
	s.Tick(1.0, &ui.Input{})

	if !hit {
		t.Fatal("expected the sweep to catch the pass-through collision")
	}
}
