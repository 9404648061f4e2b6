// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// mesh.go defines StaticMesh/SkinnedMesh and their shared Primitive, grounded
// on mesh.go's separation of a device-resident buffer from the list of
// primitive+material pairs a mesh is made of, and on the Open Question
// resolution recorded in DESIGN.md: the canonical shape is the
// resource-URI-keyed one, not the root package's now-removed duplicate.

import (
	"encoding/json"
	"fmt"
)

// Topology is the primitive assembly mode for a draw call.
type Topology int

const (
	TopologyTriangleList Topology = iota
	TopologyLineList
	TopologyPointList
)

// Primitive is a host-side vertex/index buffer plus its assembly topology.
// The render device is responsible for uploading it to GPU-resident memory;
// this package only owns the CPU copy and its content hash.
type Primitive struct {
	Geometry Geometry
	Topology Topology
	Hash     uint64
}

// meshPrimitiveJson mirrors "Mesh JSON" §6: { "geometry": uri, "material": uri }.
type meshPrimitiveJson struct {
	Geometry string `json:"geometry"`
	Material string `json:"material"`
}

// meshJson mirrors §6's Mesh JSON shape for both static and skinned meshes;
// a mesh is skinned iff "skeleton" is present.
type meshJson struct {
	AssetType           string              `json:"asset_type"`
	Name                string              `json:"name"`
	Primitives          []meshPrimitiveJson `json:"primitives"`
	InverseBindMatrices [][16]float32       `json:"inverse_bind_matrices,omitempty"`
	Skeleton            string              `json:"skeleton,omitempty"`
}

// MeshPrimitiveRef pairs a loaded Primitive with the Uri<Material> it draws
// with.
type MeshPrimitiveRef struct {
	Primitive *Primitive
	Material  Uri
}

// StaticMesh is an ordered list of primitive+material pairs sharing no
// skinning data.
type StaticMesh struct {
	Name       string
	Primitives []MeshPrimitiveRef
}

// SkinnedMesh is a StaticMesh plus the skeleton it binds to and the inverse
// bind matrices used to compute joint matrices at render time.
type SkinnedMesh struct {
	Name                string
	Primitives          []MeshPrimitiveRef
	Skeleton            Uri
	InverseBindMatrices [][16]float32
}

// NewStaticMeshProvider loads Mesh JSON descriptors without a "skeleton"
// field and their referenced binary geometry.
func NewStaticMeshProvider(vfs DataSource, monitor *UriMonitor) *Provider[StaticMesh] {
	load := func(uri Uri) (*StaticMesh, []Uri, error) {
		raw := vfs.Read(uri)
		if raw == nil {
			return nil, nil, fmt.Errorf("static mesh: read failed: %s", uri.Value())
		}
		var doc meshJson
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, nil, fmt.Errorf("static mesh: decode %s: %w", uri.Value(), err)
		}
		mesh := &StaticMesh{Name: doc.Name}
		deps := []Uri{uri}
		for _, p := range doc.Primitives {
			geomUri := uri.Parent().Append(p.Geometry)
			prim, err := loadPrimitive(vfs, geomUri)
			if err != nil {
				return nil, nil, err
			}
			matUri := NewUri(p.Material)
			mesh.Primitives = append(mesh.Primitives, MeshPrimitiveRef{Primitive: prim, Material: matUri})
			deps = append(deps, geomUri)
		}
		return mesh, deps, nil
	}
	return NewProvider[StaticMesh]("StaticMesh", vfs, monitor, load, nil)
}

// NewSkinnedMeshProvider loads Mesh JSON descriptors that carry a "skeleton"
// field.
func NewSkinnedMeshProvider(vfs DataSource, monitor *UriMonitor) *Provider[SkinnedMesh] {
	load := func(uri Uri) (*SkinnedMesh, []Uri, error) {
		raw := vfs.Read(uri)
		if raw == nil {
			return nil, nil, fmt.Errorf("skinned mesh: read failed: %s", uri.Value())
		}
		var doc meshJson
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, nil, fmt.Errorf("skinned mesh: decode %s: %w", uri.Value(), err)
		}
		mesh := &SkinnedMesh{Name: doc.Name, Skeleton: NewUri(doc.Skeleton), InverseBindMatrices: doc.InverseBindMatrices}
		deps := []Uri{uri}
		for _, p := range doc.Primitives {
			geomUri := uri.Parent().Append(p.Geometry)
			prim, err := loadPrimitive(vfs, geomUri)
			if err != nil {
				return nil, nil, err
			}
			matUri := NewUri(p.Material)
			mesh.Primitives = append(mesh.Primitives, MeshPrimitiveRef{Primitive: prim, Material: matUri})
			deps = append(deps, geomUri)
		}
		return mesh, deps, nil
	}
	return NewProvider[SkinnedMesh]("SkinnedMesh", vfs, monitor, load, nil)
}

func loadPrimitive(vfs DataSource, geomUri Uri) (*Primitive, error) {
	raw := vfs.Read(geomUri)
	if raw == nil {
		return nil, fmt.Errorf("primitive: read failed: %s", geomUri.Value())
	}
	geom, header, err := DecodeGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("primitive: decode %s: %w", geomUri.Value(), err)
	}
	return &Primitive{Geometry: geom, Topology: TopologyTriangleList, Hash: header.Hash}, nil
}
