// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// collision.go is the scene's broad-phase AABB collision subsystem.
// Grounded on the teacher's physics/broad.go for its all-pairs (i, i+1..n)
// loop shape, generalized from bounding-sphere distance checks to AABB
// axis-overlap and substep-swept intersection, per the richer
// channel/callback/previous-position semantics named explicitly.

import "github.com/karnkaul/levk/math/lin"

// ColliderChannel is a bitmask: two colliders with a nonzero, overlapping
// channel mask never collide with each other ("ignore each other").
type ColliderChannel uint32

// AABB is an axis-aligned bounding box. A zero-sized box never intersects
// anything, including another zero-sized box.
type AABB struct {
	Origin lin.V3
	Size   lin.V3
}

// Intersects is the standard per-axis overlap test.
func (a AABB) Intersects(b AABB) bool {
	if a.Size.X == 0 || a.Size.Y == 0 || a.Size.Z == 0 || b.Size.X == 0 || b.Size.Y == 0 || b.Size.Z == 0 {
		return false
	}
	return overlaps1D(a.Origin.X, a.Size.X, b.Origin.X, b.Size.X) &&
		overlaps1D(a.Origin.Y, a.Size.Y, b.Origin.Y, b.Size.Y) &&
		overlaps1D(a.Origin.Z, a.Size.Z, b.Origin.Z, b.Size.Z)
}

func overlaps1D(centerA, sizeA, centerB, sizeB float64) bool {
	halfA, halfB := sizeA/2, sizeB/2
	return centerA-halfA < centerB+halfB && centerB-halfB < centerA+halfA
}

// ColliderCallback is invoked on both sides of a detected collision.
type ColliderCallback func(self, other EntityId)

// Collider is the component marking an entity as participating in broad
// phase collision.
type Collider struct {
	Base
	Size        lin.V3
	Channels    ColliderChannel
	OnCollision ColliderCallback
}

func (c *Collider) setup()          {}
func (c *Collider) tick(dt float64) {}

type collisionEntry struct {
	entity           EntityId
	aabb             AABB
	previousPosition *lin.V3
	collider         *Collider
}

// Collision is the scene's broad-phase subsystem, owning one entry per
// active entity with a Collider.
type Collision struct {
	// TimeSlice is the substep size (seconds) used when sweeping a moving
	// collider's interpolated positions across one tick's dt.
	TimeSlice float64

	entries []collisionEntry
}

// NewCollision returns a subsystem with a 1/30s default substep.
func NewCollision() *Collision {
	return &Collision{TimeSlice: 1.0 / 30.0}
}

// tick rebuilds the entry table from scene's active Collider-bearing
// entities, then checks each pair of entries once for a (possibly swept)
// intersection, invoking callbacks and recording origins for the next
// tick's sweep.
func (c *Collision) tick(dt float64, scene *Scene) {
	prev := make(map[EntityId]lin.V3, len(c.entries))
	for _, e := range c.entries {
		prev[e.entity] = e.aabb.Origin
	}

	next := make([]collisionEntry, 0, len(c.entries))
	for id, e := range scene.entities {
		if !e.Active {
			continue
		}
		collider, ok := Find[*Collider](e)
		if !ok {
			continue
		}
		entry := collisionEntry{
			entity:   id,
			aabb:     AABB{Origin: scene.GlobalPosition(id), Size: collider.Size},
			collider: collider,
		}
		if p, ok := prev[id]; ok {
			pos := p
			entry.previousPosition = &pos
		}
		next = append(next, entry)
	}

	for i := range next {
		a := &next[i]
		for j := i + 1; j < len(next); j++ {
			b := &next[j]
			if a.collider.Channels != 0 && b.collider.Channels != 0 && a.collider.Channels&b.collider.Channels != 0 {
				continue
			}
			if !c.intersects(a, b, dt) {
				continue
			}
			if a.collider.OnCollision != nil {
				a.collider.OnCollision(a.entity, b.entity)
			}
			if b.collider.OnCollision != nil {
				b.collider.OnCollision(b.entity, a.entity)
			}
		}
	}

	c.entries = next
}

// intersects tests the current AABBs, then — if a has moved since last
// tick — sweeps a's interpolated position across [0, dt] in TimeSlice
// substeps against b's current AABB.
func (c *Collision) intersects(a, b *collisionEntry, dt float64) bool {
	if a.aabb.Intersects(b.aabb) {
		return true
	}
	if a.previousPosition == nil || dt <= 0 {
		return false
	}
	for t := 0.0; t <= dt; t += c.TimeSlice {
		ratio := t / dt
		swept := AABB{Origin: lerpV3(*a.previousPosition, a.aabb.Origin, ratio), Size: a.aabb.Size}
		if swept.Intersects(b.aabb) {
			return true
		}
	}
	return false
}

func lerpV3(from, to lin.V3, ratio float64) lin.V3 {
	return lin.V3{
		X: from.X + (to.X-from.X)*ratio,
		Y: from.Y + (to.Y-from.Y)*ratio,
		Z: from.Z + (to.Z-from.Z)*ratio,
	}
}
