// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// component.go defines the per-entity behavior unit. Grounded on the
// original levk/scene/component.hpp's Component/RenderComponent split
// (tick vs tick+render), reworked from C++ virtual inheritance into Go
// interfaces plus an embeddable Base that supplies the back-references the
// teacher's Component base class holds (m_id, m_entity, m_scene).

import (
	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/draw"
)

// ComponentIdTag is the phantom type parameter for component ids.
type ComponentIdTag struct{}

// ComponentId identifies a component within the entity that owns it, in
// ascending attachment order.
type ComponentId = asset.Id[ComponentIdTag]

// Component is attached to an Entity and ticked once per frame. setup and
// tick are unexported: only types in this package can implement Component,
// matching the teacher's single-package component zoo (attachment.go holds
// the concrete types).
type Component interface {
	setup()
	tick(dt float64)
}

// RenderComponent additionally contributes drawables every frame.
type RenderComponent interface {
	Component
	render(out *draw.List)
}

// componentBase injects id/entity/scene back-references into a concrete
// component via Attach, mirroring the teacher's Entity::attach() setting
// m_id/m_entity/m_scene directly on the freshly constructed Component.
type componentBase interface {
	setBase(id ComponentId, entity EntityId, scene *Scene)
}

// Base is embedded by concrete component types to satisfy componentBase
// and to provide read access to the back-references.
type Base struct {
	id     ComponentId
	entity EntityId
	scene  *Scene
}

func (b *Base) setBase(id ComponentId, entity EntityId, scene *Scene) {
	b.id, b.entity, b.scene = id, entity, scene
}

// Id returns the component's attachment-order id.
func (b *Base) Id() ComponentId { return b.id }

// Entity returns the id of the entity that owns this component.
func (b *Base) Entity() EntityId { return b.entity }

// Scene returns the owning scene.
func (b *Base) Scene() *Scene { return b.scene }
