// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// mesh_renderer.go is the static-geometry render component: resolve a
// StaticMesh by Uri once at setup, then submit it (with the node's current
// global transform) every render call. Grounded on the original
// shape_renderer.hpp/mesh_attachment generalized from "shape in, dynamic
// primitive out" to "mesh Uri in, static mesh primitives out" since
// SPEC_FULL.md's asset providers already own mesh loading.

import (
	"log/slog"

	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/draw"
)

// MeshRenderer draws a StaticMesh's primitives using the owning entity's
// global transform.
type MeshRenderer struct {
	Base

	MeshUri asset.Uri

	mesh *asset.StaticMesh
}

// NewMeshRenderer returns a renderer bound to meshUri.
func NewMeshRenderer(meshUri asset.Uri) *MeshRenderer {
	return &MeshRenderer{MeshUri: meshUri}
}

func (r *MeshRenderer) setup() {
	if r.Scene() == nil || r.Scene().Providers == nil {
		return
	}
	r.mesh = r.Scene().Providers.StaticMesh().Get(r.MeshUri)
	if r.mesh == nil {
		slog.Warn("mesh renderer: mesh not found", "uri", r.MeshUri.Value())
	}
}

func (r *MeshRenderer) tick(dt float64) {}

func (r *MeshRenderer) toAttachment() Attachment {
	return &MeshAttachment{Uri: r.MeshUri}
}

// render submits every primitive in the resolved mesh, falling back to a
// default unlit material per primitive whose material Uri doesn't resolve,
// matching spec's "process-static default material" fallback.
func (r *MeshRenderer) render(out *draw.List) {
	if r.mesh == nil || r.Scene() == nil {
		return
	}
	e := r.Scene().entities[r.Entity()]
	parent := r.Scene().Nodes.GlobalTransform(e.Node())
	out.AddStaticMesh(r.mesh, r.Scene().Providers.Material(), parent, nil, asset.NewUnlitMaterial())
}
