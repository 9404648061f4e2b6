// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

import (
	"testing"

	"github.com/karnkaul/levk/draw"
)

func TestSceneSpawnTracksEntitiesAndNodes(t *testing.T) {
	scene := NewScene("test")
	e := scene.Spawn(CreateInfo{Name: "a", Transform: NewTransform()})

	got, ok := scene.Entity(e.Id())
	if !ok || got != e {
		t.Fatalf("expected Entity(%v) to return the spawned entity, got %v, %v", e.Id(), got, ok)
	}
	if scene.Nodes.Transform(e.Node()) == nil {
		t.Fatal("expected Spawn to create a backing node")
	}
}

// TestSceneDestroyEntityRemovesNodeAndEntity is scenario S2: destroying an
// entity must remove both its node subtree and its entry in the entity map.
func TestSceneDestroyEntityRemovesNodeAndEntity(t *testing.T) {
	scene := NewScene("test")
	e := scene.Spawn(CreateInfo{Name: "a", Transform: NewTransform()})

	scene.DestroyEntity(e.Id())

	if _, ok := scene.Entity(e.Id()); ok {
		t.Fatal("expected the entity to be gone after DestroyEntity")
	}
	if scene.Nodes.Transform(e.Node()) != nil {
		t.Fatal("expected the backing node to be removed along with the entity")
	}
}

func TestSceneDestroyEntityUnknownIdIsANoOp(t *testing.T) {
	scene := NewScene("test")
	scene.Spawn(CreateInfo{Name: "a", Transform: NewTransform()})

	scene.DestroyEntity(EntityId(999))

	if len(scene.entityOrder) != 1 {
		t.Fatalf("expected destroying an unknown id to be a no-op, got entityOrder %v", scene.entityOrder)
	}
}

// tickCounter is a minimal Component recording how many times it was ticked,
// and in what order relative to siblings via a shared log.
type tickCounter struct {
	Base
	log   *[]string
	label string
}

func (c *tickCounter) setup()          {}
func (c *tickCounter) tick(dt float64) { *c.log = append(*c.log, c.label) }

// TestSceneTickVisitsEntitiesInSpawnOrder covers the first step of the
// four-step tick sequence: entities tick in spawn (entity-id) order.
func TestSceneTickVisitsEntitiesInSpawnOrder(t *testing.T) {
	scene := NewScene("test")
	var log []string

	a := scene.Spawn(CreateInfo{Name: "a", Transform: NewTransform()})
	b := scene.Spawn(CreateInfo{Name: "b", Transform: NewTransform()})
	c := scene.Spawn(CreateInfo{Name: "c", Transform: NewTransform()})
	Attach(a, &tickCounter{log: &log, label: "a"})
	Attach(b, &tickCounter{log: &log, label: "b"})
	Attach(c, &tickCounter{log: &log, label: "c"})

	scene.Tick(1.0/60, nil)

	want := []string{"a", "b", "c"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
}

func TestSceneTickSkipsInactiveEntities(t *testing.T) {
	scene := NewScene("test")
	var log []string

	e := scene.Spawn(CreateInfo{Name: "a", Transform: NewTransform()})
	Attach(e, &tickCounter{log: &log, label: "a"})
	e.Active = false

	scene.Tick(1.0/60, nil)

	if len(log) != 0 {
		t.Fatalf("expected an inactive entity not to tick, got %v", log)
	}
}

// TestSceneTickFollowsCameraTarget covers the camera-follow step: once
// Camera.Target resolves to a live entity, the scene camera's transform
// tracks that entity's global position every tick.
func TestSceneTickFollowsCameraTarget(t *testing.T) {
	scene := NewScene("test")
	tr := NewTransform()
	tr.SetPosition(1, 2, 3)
	e := scene.Spawn(CreateInfo{Name: "cam-target", Transform: tr})
	scene.Camera.Target = e.Id()

	scene.Tick(1.0/60, nil)

	pos := scene.Camera.Transform.Position
	if pos.X != 1 || pos.Y != 2 || pos.Z != 3 {
		t.Fatalf("expected the camera to follow its target's position, got %+v", pos)
	}
}

func TestSceneTickWithoutCameraTargetLeavesCameraInPlace(t *testing.T) {
	scene := NewScene("test")
	scene.Spawn(CreateInfo{Name: "other", Transform: NewTransform()})

	scene.Tick(1.0/60, nil)

	pos := scene.Camera.Transform.Position
	if pos.X != 0 || pos.Y != 0 || pos.Z != 0 {
		t.Fatalf("expected an unset camera target to leave the camera at the origin, got %+v", pos)
	}
}

// renderTag is a minimal RenderComponent recording render order via a
// shared log, so Scene.Render's entity-order guarantee can be asserted.
type renderTag struct {
	Base
	log   *[]string
	label string
}

func (c *renderTag) setup()                {}
func (c *renderTag) tick(dt float64)       {}
func (c *renderTag) render(out *draw.List) { *c.log = append(*c.log, c.label) }

func TestSceneRenderVisitsEntitiesInSpawnOrder(t *testing.T) {
	scene := NewScene("test")
	var log []string

	a := scene.Spawn(CreateInfo{Name: "a", Transform: NewTransform()})
	b := scene.Spawn(CreateInfo{Name: "b", Transform: NewTransform()})
	Attach(a, &renderTag{log: &log, label: "a"})
	Attach(b, &renderTag{log: &log, label: "b"})

	var out draw.RenderList
	scene.Render(&out)

	if len(log) != 2 || log[0] != "a" || log[1] != "b" {
		t.Fatalf("expected render order [a b], got %v", log)
	}
}

func TestSceneRenderSkipsInactiveEntities(t *testing.T) {
	scene := NewScene("test")
	var log []string

	e := scene.Spawn(CreateInfo{Name: "a", Transform: NewTransform()})
	Attach(e, &renderTag{log: &log, label: "a"})
	e.Active = false

	var out draw.RenderList
	scene.Render(&out)

	if len(log) != 0 {
		t.Fatalf("expected an inactive entity not to render, got %v", log)
	}
}
