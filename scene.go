// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// scene.go ties the node tree, entity store, camera, lights, UI root and
// collision subsystem together into the aggregate that the runtime loop
// ticks and renders once per frame. Grounded on the original
// levk/scene/scene.hpp (spawn/destroy_entity, the four-step tick sequence,
// entity-then-ui render order) and the teacher's scene.go for the
// group-owns-parts idiom the NodeTree/entity map generalize.

import (
	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/draw"
	"github.com/karnkaul/levk/math/lin"
	"github.com/karnkaul/levk/ui"
)

// CreateInfo parametrizes Scene.Spawn: the new entity's display name, its
// node's parent (zero for a root) and its local transform.
type CreateInfo struct {
	Name      string
	Parent    NodeId
	Transform Transform
}

// Scene owns a NodeTree, a monotonic entity store, the active camera and
// lights, the UI view tree root, and the collision subsystem. It is the
// unit the runtime loop ticks and renders once per frame.
type Scene struct {
	Name string

	Nodes     *NodeTree
	Camera    SceneCamera
	Lights    Lights
	UiRoot    *ui.Tree
	Collision *Collision

	// Providers resolves the asset Uris a MeshRenderer/SkeletonController/
	// ShapeRenderer need; nil in scenes built purely for scene-graph tests,
	// which never attach render components that dereference it.
	Providers *asset.AssetProviders

	// Input is this frame's raw window input, set by the runtime loop
	// before Tick so components like FreecamController can read held keys.
	Input *RuntimeInput
	// Window lets a component toggle the cursor mode (FreecamController's
	// right-mouse-held look-around), set by the runtime loop.
	Window Window

	nextEntityId asset.Store[EntityIdTag]
	entities     map[EntityId]*Entity
	entityOrder  []EntityId // insertion order, for deterministic export.
}

// NewScene returns an empty scene with a default camera, lights, UI root
// and collision subsystem.
func NewScene(name string) *Scene {
	return &Scene{
		Name:      name,
		Nodes:     NewNodeTree(),
		Camera:    SceneCamera{Camera: NewCamera(), Transform: NewTransform()},
		Lights:    NewLights(),
		UiRoot:    ui.NewTree(),
		Collision: NewCollision(),
		entities:  map[EntityId]*Entity{},
	}
}

// Spawn creates a node from info and an entity bound to it, and returns the
// entity.
func (s *Scene) Spawn(info CreateInfo) *Entity {
	node := s.Nodes.Add(info.Name, info.Parent, info.Transform)
	return s.spawnBoundTo(node)
}

// spawnBoundTo creates an entity bound to an already-existing node, without
// creating a new one. Used by Spawn and by Import, which builds the node
// tree itself before binding entities to it.
func (s *Scene) spawnBoundTo(node NodeId) *Entity {
	id := s.nextEntityId.Next()
	e := newEntity(id, node, s)
	s.entities[id] = e
	s.entityOrder = append(s.entityOrder, id)
	return e
}

// Entity looks up a live entity by id.
func (s *Scene) Entity(id EntityId) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// DestroyEntity removes id's node subtree and the entity itself in one step.
func (s *Scene) DestroyEntity(id EntityId) {
	e, ok := s.entities[id]
	if !ok {
		return
	}
	s.Nodes.Remove(e.node)
	delete(s.entities, id)
	s.entityOrder = removeEntityId(s.entityOrder, id)
}

// GlobalPosition returns id's global translation, extracted from its node's
// global transform matrix (the translation row, per math/lin.M4's layout).
// Unknown or destroyed entities report the origin.
func (s *Scene) GlobalPosition(id EntityId) lin.V3 {
	e, ok := s.entities[id]
	if !ok {
		return lin.V3{}
	}
	m := s.Nodes.GlobalTransform(e.node)
	return lin.V3{X: m.Wx, Y: m.Wy, Z: m.Wz}
}

// GlobalTransform returns id's node's global transform matrix.
func (s *Scene) GlobalTransform(id EntityId) *lin.M4 {
	e, ok := s.entities[id]
	if !ok {
		return lin.NewM4I()
	}
	return s.Nodes.GlobalTransform(e.node)
}

// Tick advances the scene by dt: ticks every active entity in entity-id
// (spawn) order, ticks the collision subsystem, follows the camera's target
// if it resolves to a live entity, then ticks the UI root.
func (s *Scene) Tick(dt float64, input *ui.Input) {
	for _, id := range s.entityOrder {
		e, ok := s.entities[id]
		if !ok || !e.Active {
			continue
		}
		e.tick(dt)
	}

	s.Collision.tick(dt, s)

	if s.Camera.Target.Valid() {
		if e, ok := s.entities[s.Camera.Target]; ok {
			pos := s.GlobalPosition(s.Camera.Target)
			s.Camera.Transform.SetPosition(pos.X, pos.Y, pos.Z)
			rot := s.Nodes.GlobalRotation(e.node)
			s.Camera.Transform.SetRotation(rot.X, rot.Y, rot.Z, rot.W)
		}
	}

	s.UiRoot.Tick(input, dt)
}

// Render issues every live entity's render components (in spawn order),
// then the UI root, into out.
func (s *Scene) Render(out *draw.RenderList) {
	for _, id := range s.entityOrder {
		if e, ok := s.entities[id]; ok && e.Active {
			e.render(&out.Scene)
		}
	}
	s.UiRoot.Render(&out.Ui)
}

func removeEntityId(ids []EntityId, id EntityId) []EntityId {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
