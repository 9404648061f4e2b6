// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package draw holds the per-frame draw submission types shared by the
// scene graph and the UI view tree, kept in their own package so neither
// needs to import the other to build a RenderList. Grounded on the
// original levk/graphics/draw_list.hpp's Static/Dynamic/Skinned tagged
// union, reworked into a Go sum type via a Kind enum plus one struct with
// the union of fields (the pack's asset.Material interface uses the same
// Kind-tag shape, see asset/material.go's RenderMode).
package draw

import (
	"log/slog"

	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/math/lin"
)

// Kind tags which fields of a Drawable are meaningful.
type Kind int

const (
	Static Kind = iota
	Dynamic
	Skinned
)

// Drawable is one geometry+material submission. Static and Dynamic share a
// shape (the distinction is a hint to the renderer about expected update
// frequency, e.g. whether to re-upload or cache instance data); Skinned
// additionally carries the joint matrices driving its vertex skinning.
type Drawable struct {
	Kind      Kind
	Primitive *asset.Primitive
	Material  asset.Material
	ParentMat *lin.M4
	Instances []*lin.M4

	InverseBindMatrices [][16]float32
	Joints              []*lin.M4
}

// List is an append-only collection of Drawables targeting one extent
// (viewport size in pixels).
type List struct {
	Drawables []Drawable
	Extent    [2]int
}

// Add appends a fully formed Drawable.
func (d *List) Add(drawable Drawable) {
	d.Drawables = append(d.Drawables, drawable)
}

// AddStaticMesh expands mesh into one Static drawable per primitive,
// resolving each primitive's material through materials. A primitive whose
// material can't be resolved falls back to defaultMaterial and is logged,
// matching the spec's "process-static default material" fallback.
func (d *List) AddStaticMesh(mesh *asset.StaticMesh, materials *asset.Provider[asset.Material], parentMat *lin.M4, instances []*lin.M4, defaultMaterial asset.Material) {
	for _, ref := range mesh.Primitives {
		mat := defaultMaterial
		if ptr := materials.Get(ref.Material); ptr != nil && *ptr != nil {
			mat = *ptr
		} else {
			slog.Warn("static mesh primitive material not found, using default", "uri", ref.Material.Value())
		}
		d.Add(Drawable{
			Kind:      Static,
			Primitive: ref.Primitive,
			Material:  mat,
			ParentMat: parentMat,
			Instances: instances,
		})
	}
}

// RenderList pairs the scene's 3D drawables with the UI's 2D ones; the
// render device composites UI over 3D.
type RenderList struct {
	Scene List
	Ui    List
}

// Merge concatenates both draw lists into a single flat one, in scene-then-ui
// order, leaving extent as the scene list's.
func (r *RenderList) Merge() List {
	merged := List{Extent: r.Scene.Extent}
	merged.Drawables = append(merged.Drawables, r.Scene.Drawables...)
	merged.Drawables = append(merged.Drawables, r.Ui.Drawables...)
	return merged
}
