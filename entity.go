// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// entity.go is the component container bound to one Node. Grounded on the
// original levk/scene/entity.cpp (TypeId-keyed component map, deferred
// detach list drained at the end of tick, render-component set built
// alongside the type-keyed map, ascending-component-id tick order) plus
// the teacher's entity.go for its monotonic-id/slog idiom. The original's
// `TypeId::value_type` key is reflect.Type here: Go has no compile-time
// type-id intrinsic, and reflect.TypeOf is the idiomatic stand-in used
// throughout the pack's serializer code (see asset/serializer.go).

import (
	"log/slog"
	"reflect"
	"sort"

	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/draw"
)

// EntityIdTag is the phantom type parameter for entity ids.
type EntityIdTag struct{}

// EntityId identifies an Entity within a Scene.
type EntityId = asset.Id[EntityIdTag]

type componentEntry struct {
	component Component
	id        ComponentId
}

// Entity owns zero or more Components, keyed by concrete type, bound to a
// single Node in the owning scene's NodeTree. Active entities are ticked
// and rendered; inactive ones are skipped both ways.
type Entity struct {
	Active bool

	id    EntityId
	node  NodeId
	scene *Scene

	nextComponentId asset.Store[ComponentIdTag]
	components      map[reflect.Type]*componentEntry
	renderOrder     []reflect.Type // insertion order, for spec's "draw in insertion order".
	renderSet       map[reflect.Type]*componentEntry
	toDetach        []reflect.Type
}

// newEntity constructs an Entity bound to node within scene. Entities are
// always created through Scene.Spawn.
func newEntity(id EntityId, node NodeId, scene *Scene) *Entity {
	return &Entity{
		Active:     true,
		id:         id,
		node:       node,
		scene:      scene,
		components: map[reflect.Type]*componentEntry{},
		renderSet:  map[reflect.Type]*componentEntry{},
	}
}

// Id returns the entity's id.
func (e *Entity) Id() EntityId { return e.id }

// Node returns the id of the node this entity is bound to.
func (e *Entity) Node() NodeId { return e.node }

// Attach constructs component c onto e: it assigns c's component id,
// back-references, calls setup(), and — if c also implements
// RenderComponent — registers it for render(). Replaces any existing
// component of the same concrete type immediately (unlike detach, attach
// is not deferred; nothing iterates components mid-attach).
func Attach[T Component](e *Entity, c T) T {
	t := reflect.TypeOf(c)
	id := e.nextComponentId.Next()

	var comp Component = c
	if base, ok := comp.(componentBase); ok {
		base.setBase(id, e.id, e.scene)
	} else {
		slog.Warn("component does not embed Base, missing back-references", "type", t)
	}

	entry := &componentEntry{component: comp, id: id}
	if _, existed := e.components[t]; !existed {
		e.renderOrder = append(e.renderOrder, t)
	}
	e.components[t] = entry

	if _, ok := comp.(RenderComponent); ok {
		e.renderSet[t] = entry
	} else {
		delete(e.renderSet, t)
	}

	comp.setup()
	return c
}

// Find returns entity e's component of concrete type T, if attached.
func Find[T Component](e *Entity) (T, bool) {
	var zero T
	t := reflect.TypeOf(zero)
	entry, ok := e.components[t]
	if !ok {
		return zero, false
	}
	typed, ok := entry.component.(T)
	return typed, ok
}

// Detach schedules entity e's component of concrete type T for removal at
// the end of the entity's next tick, so components may safely detach
// themselves (or others) mid-iteration.
func Detach[T Component](e *Entity) {
	var zero T
	t := reflect.TypeOf(zero)
	if _, ok := e.components[t]; !ok {
		return
	}
	e.toDetach = append(e.toDetach, t)
}

// tick advances every attached component in ascending component-id
// (attachment) order, then applies any detaches queued during this or a
// prior tick.
func (e *Entity) tick(dt float64) {
	ordered := make([]*componentEntry, 0, len(e.components))
	for _, entry := range e.components {
		ordered = append(ordered, entry)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].id < ordered[j].id })
	for _, entry := range ordered {
		entry.component.tick(dt)
	}

	for _, t := range e.toDetach {
		delete(e.components, t)
		delete(e.renderSet, t)
		e.renderOrder = removeType(e.renderOrder, t)
	}
	e.toDetach = e.toDetach[:0]
}

// attachmentExporter is implemented by components that can describe
// themselves as a serializable Attachment, the reverse of Attachment.Attach.
type attachmentExporter interface {
	toAttachment() Attachment
}

// Attachments returns an Attachment record for every attached component
// that supports scene export, in ascending component-id (attachment)
// order, matching the order Tick runs them in.
func (e *Entity) Attachments() []Attachment {
	type ordered struct {
		id  ComponentId
		att Attachment
	}
	var exported []ordered
	for _, entry := range e.components {
		exporter, ok := entry.component.(attachmentExporter)
		if !ok {
			continue
		}
		exported = append(exported, ordered{id: entry.id, att: exporter.toAttachment()})
	}
	sort.Slice(exported, func(i, j int) bool { return exported[i].id < exported[j].id })
	out := make([]Attachment, len(exported))
	for i, entry := range exported {
		out[i] = entry.att
	}
	return out
}

// render draws every attached RenderComponent in insertion order.
func (e *Entity) render(out *draw.List) {
	for _, t := range e.renderOrder {
		if entry, ok := e.renderSet[t]; ok {
			entry.component.(RenderComponent).render(out)
		}
	}
}

func removeType(types []reflect.Type, t reflect.Type) []reflect.Type {
	for i, v := range types {
		if v == t {
			return append(types[:i], types[i+1:]...)
		}
	}
	return types
}
