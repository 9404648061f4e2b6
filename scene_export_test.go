// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

import (
	"testing"

	"github.com/karnkaul/levk/asset"
)

func TestSceneExportImportRoundTrip(t *testing.T) {
	reg := asset.NewSerializer()
	RegisterAttachments(reg)

	scene := NewScene("level-1")
	scene.Lights.Primary.Intensity = 9
	scene.Camera.FieldOfViewDegrees = 60

	parentTr := NewTransform()
	parentTr.SetPosition(1, 2, 3)
	parent := scene.Spawn(CreateInfo{Name: "parent", Transform: parentTr})

	childTr := NewTransform()
	childTr.SetPosition(0, 1, 0)
	child := scene.Spawn(CreateInfo{Name: "child", Parent: parent.Node(), Transform: childTr})
	Attach(child, NewMeshRenderer(asset.NewUri("cube.mesh.json")))

	inactive := scene.Spawn(CreateInfo{Name: "inactive", Transform: NewTransform()})
	inactive.Active = false
	Attach(inactive, NewFreecamController())

	data, err := scene.Export(reg)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	restored := NewScene("")
	if err := restored.Import(reg, data); err != nil {
		t.Fatalf("Import: %v", err)
	}

	if restored.Name != "level-1" {
		t.Errorf("Name = %q, want %q", restored.Name, "level-1")
	}
	if restored.Lights.Primary.Intensity != 9 {
		t.Errorf("Lights.Primary.Intensity = %v, want 9", restored.Lights.Primary.Intensity)
	}
	if restored.Camera.FieldOfViewDegrees != 60 {
		t.Errorf("Camera.FieldOfViewDegrees = %v, want 60", restored.Camera.FieldOfViewDegrees)
	}

	restoredParentId, ok := restored.Nodes.FindByName("parent")
	if !ok {
		t.Fatal("expected a node named \"parent\" after import")
	}
	restoredChildId, ok := restored.Nodes.FindByName("child")
	if !ok {
		t.Fatal("expected a node named \"child\" after import")
	}
	if restored.Nodes.Parent(restoredChildId) != restoredParentId {
		t.Error("expected \"child\" to remain parented under \"parent\" after import")
	}
	if pos := restored.Nodes.Transform(restoredParentId).Position; pos.X != 1 || pos.Y != 2 || pos.Z != 3 {
		t.Errorf("parent position = %+v, want {1 2 3}", pos)
	}

	var foundMesh, foundInactiveFreecam bool
	for _, id := range restored.entityOrder {
		e := restored.entities[id]
		if e.Node() == restoredChildId {
			if r, ok := Find[*MeshRenderer](e); ok && r.MeshUri == asset.NewUri("cube.mesh.json") {
				foundMesh = true
			}
		}
		if _, ok := Find[*FreecamController](e); ok && !e.Active {
			foundInactiveFreecam = true
		}
	}
	if !foundMesh {
		t.Error("expected the child entity's MeshRenderer to survive the round trip")
	}
	if !foundInactiveFreecam {
		t.Error("expected the inactive entity's FreecamController and Active=false to survive the round trip")
	}
}

func TestSceneExportOmitsComponentsWithoutAnAttachment(t *testing.T) {
	reg := asset.NewSerializer()
	RegisterAttachments(reg)

	scene := NewScene("test")
	e := scene.Spawn(CreateInfo{Name: "e", Transform: NewTransform()})
	Attach(e, &tickCounter{log: &[]string{}, label: "untracked"})

	data, err := scene.Export(reg)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	restored := NewScene("")
	if err := restored.Import(reg, data); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(restored.entityOrder) != 1 {
		t.Fatalf("expected the entity itself to survive even with no exportable components, got %d entities", len(restored.entityOrder))
	}
}
