// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

import (
	"testing"

	"github.com/karnkaul/levk/asset"
)

func newAttachmentSerializer() *asset.Serializer {
	s := asset.NewSerializer()
	RegisterAttachments(s)
	return s
}

func TestMeshAttachmentRoundTrip(t *testing.T) {
	s := newAttachmentSerializer()
	original := &MeshAttachment{Uri: asset.NewUri("cube.mesh.json")}

	data, err := s.Serialize(original)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	result, ok := s.Deserialize(data)
	if !ok {
		t.Fatal("Deserialize reported failure")
	}
	if !s.HasTag(result.TypeName, AttachmentTag) {
		t.Errorf("expected %q to carry AttachmentTag", result.TypeName)
	}
	got := result.Value.(*MeshAttachment)
	if got.Uri != original.Uri {
		t.Errorf("Uri = %v, want %v", got.Uri, original.Uri)
	}
}

func TestSkeletonAttachmentRoundTripWithoutEnabledClip(t *testing.T) {
	s := newAttachmentSerializer()
	original := &SkeletonAttachment{Uri: asset.NewUri("rig.skel.json")}

	data, err := s.Serialize(original)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	result, ok := s.Deserialize(data)
	if !ok {
		t.Fatal("Deserialize reported failure")
	}
	got := result.Value.(*SkeletonAttachment)
	if got.Uri != original.Uri {
		t.Errorf("Uri = %v, want %v", got.Uri, original.Uri)
	}
	if got.HasEnabled {
		t.Error("expected HasEnabled false when no clip was recorded")
	}
}

func TestSkeletonAttachmentRoundTripWithEnabledClip(t *testing.T) {
	s := newAttachmentSerializer()
	original := &SkeletonAttachment{
		Uri:         asset.NewUri("rig.skel.json"),
		EnabledClip: asset.NewUri("walk.clip.json"),
		HasEnabled:  true,
	}

	data, err := s.Serialize(original)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	result, ok := s.Deserialize(data)
	if !ok {
		t.Fatal("Deserialize reported failure")
	}
	got := result.Value.(*SkeletonAttachment)
	if !got.HasEnabled || got.EnabledClip != original.EnabledClip {
		t.Errorf("got %+v, want enabled clip %v", got, original.EnabledClip)
	}
}

func TestFreecamAttachmentRoundTrip(t *testing.T) {
	s := newAttachmentSerializer()
	original := &FreecamAttachment{MoveSpeed: 5, LookSpeed: 0.1, PitchRad: 0.2, YawRad: 1.5}

	data, err := s.Serialize(original)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	result, ok := s.Deserialize(data)
	if !ok {
		t.Fatal("Deserialize reported failure")
	}
	got := result.Value.(*FreecamAttachment)
	if *got != *original {
		t.Errorf("got %+v, want %+v", got, original)
	}
}

func TestShapeAttachmentRoundTrip(t *testing.T) {
	s := newAttachmentSerializer()
	original := &ShapeAttachment{MaterialUri: asset.NewUri("brick.mat.json")}

	data, err := s.Serialize(original)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	result, ok := s.Deserialize(data)
	if !ok {
		t.Fatal("Deserialize reported failure")
	}
	got := result.Value.(*ShapeAttachment)
	if got.MaterialUri != original.MaterialUri {
		t.Errorf("MaterialUri = %v, want %v", got.MaterialUri, original.MaterialUri)
	}
}

func TestMeshAttachmentAttachCreatesMeshRenderer(t *testing.T) {
	scene := NewScene("test")
	e := scene.Spawn(CreateInfo{Name: "e", Transform: NewTransform()})

	a := &MeshAttachment{Uri: asset.NewUri("cube.mesh.json")}
	a.Attach(e)

	r, ok := Find[*MeshRenderer](e)
	if !ok {
		t.Fatal("expected a MeshRenderer to be attached")
	}
	if r.MeshUri != a.Uri {
		t.Errorf("MeshUri = %v, want %v", r.MeshUri, a.Uri)
	}
}

func TestShapeAttachmentAttachResolvesMaterialFromProviders(t *testing.T) {
	providers := newTestProviders()
	materialUri := asset.NewUri("brick.mat.json")
	var mat asset.Material = asset.NewUnlitMaterial()
	providers.Material().Add(materialUri, &mat)

	scene := NewScene("test")
	scene.Providers = providers
	e := scene.Spawn(CreateInfo{Name: "e", Transform: NewTransform()})

	a := &ShapeAttachment{MaterialUri: materialUri}
	a.Attach(e)

	r, ok := Find[*ShapeRenderer](e)
	if !ok {
		t.Fatal("expected a ShapeRenderer to be attached")
	}
	if r.Material != mat {
		t.Errorf("expected the resolved material to be installed, got %v", r.Material)
	}
}
