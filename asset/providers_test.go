// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import "testing"

type memVfs struct {
	files map[string][]byte
}

func newMemVfs() *memVfs { return &memVfs{files: map[string][]byte{}} }

func (m *memVfs) Read(uri Uri) []byte { return m.files[uri.Value()] }
func (m *memVfs) Write(data []byte, uri Uri) bool {
	m.files[uri.Value()] = data
	return true
}

func TestBuildAssetListIncludesShaderTransitivelyFromMaterial(t *testing.T) {
	vfs := newMemVfs()
	vfs.files["scene.json"] = []byte(`{
		"type_name": "Scene",
		"entities": [
			{"node_id": 1, "active": true, "attachments": [
				{"type_name": "ShapeAttachment", "material_uri": "brick.mat.json"}
			]}
		]
	}`)
	vfs.files["brick.mat.json"] = []byte(`{"type_name":"UnlitMaterial","tint":[1,1,1,1],"texture":"brick.png"}`)

	providers := NewAssetProviders(vfs, nil)
	list := providers.BuildAssetList(NewUri("scene.json"))

	foundMaterial, foundShader := false, false
	for _, u := range list {
		if u.Value() == "brick.mat.json" {
			foundMaterial = true
		}
		if u.Value() == "shaders/unlit.json" {
			foundShader = true
		}
	}
	if !foundMaterial {
		t.Errorf("expected asset list to include the material itself, got %v", list)
	}
	if !foundShader {
		t.Errorf("expected asset list to transitively include the material's shader, got %v", list)
	}
}

func TestBuildAssetListDedupes(t *testing.T) {
	vfs := newMemVfs()
	vfs.files["scene.json"] = []byte(`{
		"entities": [
			{"node_id": 1, "active": true, "attachments": [{"type_name": "MeshAttachment", "uri": "a.mesh.json"}]},
			{"node_id": 2, "active": true, "attachments": [{"type_name": "MeshAttachment", "uri": "a.mesh.json"}]}
		]
	}`)
	providers := NewAssetProviders(vfs, nil)
	list := providers.BuildAssetList(NewUri("scene.json"))
	if len(list) != 1 {
		t.Fatalf("expected deduplicated list of length 1, got %d: %v", len(list), list)
	}
}

func TestBuildAssetListCollectsSkeletonAndEnabledClip(t *testing.T) {
	vfs := newMemVfs()
	vfs.files["scene.json"] = []byte(`{
		"entities": [
			{"node_id": 1, "active": true, "attachments": [
				{"type_name": "SkeletonAttachment", "uri": "rig.skel.json", "enabled_clip": "walk.clip.json"}
			]}
		]
	}`)
	providers := NewAssetProviders(vfs, nil)
	list := providers.BuildAssetList(NewUri("scene.json"))

	foundSkeleton, foundClip := false, false
	for _, u := range list {
		if u.Value() == "rig.skel.json" {
			foundSkeleton = true
		}
		if u.Value() == "walk.clip.json" {
			foundClip = true
		}
	}
	if !foundSkeleton || !foundClip {
		t.Errorf("expected both skeleton and enabled clip Uris, got %v", list)
	}
}

func TestBuildAssetListMissingSceneReturnsNil(t *testing.T) {
	vfs := newMemVfs()
	providers := NewAssetProviders(vfs, nil)
	if list := providers.BuildAssetList(NewUri("missing.json")); list != nil {
		t.Fatalf("expected nil for missing scene, got %v", list)
	}
}
