// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"encoding/json"
	"testing"
)

type fakeComponent struct {
	Tint string `json:"tint"`
}

func (f *fakeComponent) TypeName() string { return "FakeComponent" }
func (f *fakeComponent) Serialize() (json.RawMessage, error) {
	return json.Marshal(map[string]string{"tint": f.Tint})
}
func (f *fakeComponent) Deserialize(data json.RawMessage) error {
	var aux struct {
		Tint string `json:"tint"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.Tint = aux.Tint
	return nil
}

func TestSerializerRoundTrip(t *testing.T) {
	s := NewSerializer()
	s.Bind("FakeComponent", func() Serializable { return &fakeComponent{} }, ComponentTag)

	original := &fakeComponent{Tint: "red"}
	data, err := s.Serialize(original)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	result, ok := s.Deserialize(data)
	if !ok {
		t.Fatal("Deserialize reported failure")
	}
	if result.TypeName != "FakeComponent" {
		t.Errorf("TypeName = %q, want FakeComponent", result.TypeName)
	}
	got := result.Value.(*fakeComponent)
	if got.Tint != "red" {
		t.Errorf("Tint = %q, want red", got.Tint)
	}
	if !s.HasTag("FakeComponent", ComponentTag) {
		t.Error("expected FakeComponent to carry ComponentTag")
	}
}

func TestSerializerDeserializeUnknownType(t *testing.T) {
	s := NewSerializer()
	_, ok := s.Deserialize(json.RawMessage(`{"type_name":"Nope"}`))
	if ok {
		t.Fatal("expected failure for unknown type_name")
	}
}

func TestSerializerDeserializeMissingTypeName(t *testing.T) {
	s := NewSerializer()
	_, ok := s.Deserialize(json.RawMessage(`{}`))
	if ok {
		t.Fatal("expected failure for missing type_name")
	}
}

func TestSerializerBindRefusesEmptyNameOrNilFactory(t *testing.T) {
	s := NewSerializer()
	s.Bind("", func() Serializable { return &fakeComponent{} })
	s.Bind("X", nil)
	if _, ok := s.Deserialize(json.RawMessage(`{"type_name":""}`)); ok {
		t.Fatal("empty type name should never resolve")
	}
	if _, ok := s.Deserialize(json.RawMessage(`{"type_name":"X"}`)); ok {
		t.Fatal("nil factory binding should never resolve")
	}
}

func TestSerializerLastBindWins(t *testing.T) {
	s := NewSerializer()
	// The first factory yields nil, which Deserialize rejects; success below
	// therefore means the second binding replaced it.
	s.Bind("Fake", func() Serializable { return nil })
	s.Bind("Fake", func() Serializable { return &fakeComponent{Tint: "second"} })
	result, ok := s.Deserialize(json.RawMessage(`{"type_name":"Fake","tint":"unused"}`))
	if !ok {
		t.Fatal("expected successful deserialize")
	}
	if result.Value.(*fakeComponent).Tint != "unused" {
		t.Fatalf("deserialize should overwrite factory defaults with wire data")
	}
}
