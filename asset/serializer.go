// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// serializer.go implements the type-name -> factory registry used for
// polymorphic (de)serialization of components, materials and attachments.
// Grounded on original_source's serializer.hpp/component_factory.hpp and on
// the teacher's Design Notes instruction to use an explicit, process-wide
// registry populated by a single register_types() call rather than
// init()-order-dependent global constructors.

import (
	"encoding/json"
	"log/slog"
)

// Serializable is anything the registry can construct and (de)serialize.
type Serializable interface {
	TypeName() string
	Serialize() (json.RawMessage, error)
	Deserialize(data json.RawMessage) error
}

// Tag marks a registered type with an additional capability, eg Component.
type Tag string

// ComponentTag marks a type as a scene component for the purposes of
// entity/attachment deserialization.
const ComponentTag Tag = "Component"

// Factory creates a new, zero-value Serializable instance for its type.
type Factory func() Serializable

type binding struct {
	factory Factory
	tags    map[Tag]bool
}

// Serializer binds type-name -> factory and dispatches polymorphic
// (de)serialize. Binding is process-wide: the zero value is usable, and the
// type app is expected to create exactly one Serializer during setup.
type Serializer struct {
	bindings map[string]binding
}

// NewSerializer returns an empty, ready-to-use registry.
func NewSerializer() *Serializer {
	return &Serializer{bindings: map[string]binding{}}
}

// Bind registers factory under typeName with the given tags. Binding the
// same type name again overwrites the previous binding (last bind wins).
// An empty type name or nil factory is refused with a warning.
func (s *Serializer) Bind(typeName string, factory Factory, tags ...Tag) {
	if typeName == "" || factory == nil {
		slog.Warn("serializer.Bind: refusing invalid binding", "type_name", typeName)
		return
	}
	tagSet := make(map[Tag]bool, len(tags))
	for _, t := range tags {
		tagSet[t] = true
	}
	if s.bindings == nil {
		s.bindings = map[string]binding{}
	}
	s.bindings[typeName] = binding{factory: factory, tags: tagSet}
}

// HasTag reports whether typeName was bound with the given tag.
func (s *Serializer) HasTag(typeName string, tag Tag) bool {
	b, ok := s.bindings[typeName]
	return ok && b.tags[tag]
}

// envelope is the wire shape written by Serialize and read by Deserialize:
// the type name alongside the type's own serialized fields.
type envelope struct {
	TypeName string          `json:"type_name"`
	Payload  json.RawMessage `json:"-"`
}

// Serialize writes {"type_name": v.TypeName(), ...v.Serialize()}.
func (s *Serializer) Serialize(v Serializable) (json.RawMessage, error) {
	payload, err := v.Serialize()
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &fields); err != nil {
			return nil, err
		}
	}
	typeName, err := json.Marshal(v.TypeName())
	if err != nil {
		return nil, err
	}
	fields["type_name"] = typeName
	return json.Marshal(fields)
}

// Deserialized is the tagged result of a successful Deserialize call.
type Deserialized struct {
	Value    Serializable
	TypeName string
}

// Deserialize reads type_name, instantiates via the bound factory, and calls
// Deserialize(data) on the new instance. Any failure (missing name, unknown
// name, deserialize failure) is logged and reported as (Deserialized{}, false)
// rather than an error, matching the empty-result-on-failure contract.
func (s *Serializer) Deserialize(data json.RawMessage) (Deserialized, bool) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil || e.TypeName == "" {
		slog.Warn("serializer.Deserialize: missing or malformed type_name")
		return Deserialized{}, false
	}
	b, ok := s.bindings[e.TypeName]
	if !ok {
		slog.Warn("serializer.Deserialize: unknown type", "type_name", e.TypeName)
		return Deserialized{}, false
	}
	value := b.factory()
	if value == nil {
		slog.Warn("serializer.Deserialize: factory produced nil", "type_name", e.TypeName)
		return Deserialized{}, false
	}
	if err := value.Deserialize(data); err != nil {
		slog.Warn("serializer.Deserialize: deserialize failed", "type_name", e.TypeName, "error", err)
		return Deserialized{}, false
	}
	return Deserialized{Value: value, TypeName: e.TypeName}, true
}
