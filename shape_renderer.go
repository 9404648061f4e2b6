// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// shape_renderer.go renders a primitive shape (currently: a unit cube)
// generated on the fly rather than loaded from a mesh asset, grounded on
// the original's shape_renderer.hpp/shape.hpp (CubeShape default,
// DynamicPrimitive rebuilt on set_shape). Only the cube is implemented —
// the original's sphere/cone/quad shapes are straightforward extensions of
// the same vertex-generation idiom but aren't exercised by any
// SPEC_FULL.md scenario, so they're left out rather than built unused.

import (
	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/draw"
)

// ShapeRenderer draws a procedurally generated shape using the owning
// entity's global transform, for placeholder/debug geometry that doesn't
// warrant its own mesh asset.
type ShapeRenderer struct {
	Base

	Material    asset.Material
	MaterialUri asset.Uri // set by ShapeAttachment.Attach; empty if Material was assigned directly.

	primitive *asset.Primitive
}

// NewShapeRenderer returns a renderer with the original's default shape (a
// unit cube) and an unlit default material.
func NewShapeRenderer() *ShapeRenderer {
	return &ShapeRenderer{Material: asset.NewUnlitMaterial()}
}

func (r *ShapeRenderer) toAttachment() Attachment {
	return &ShapeAttachment{MaterialUri: r.MaterialUri}
}

func (r *ShapeRenderer) setup() {
	r.primitive = cubePrimitive()
}

func (r *ShapeRenderer) tick(dt float64) {}

func (r *ShapeRenderer) render(out *draw.List) {
	if r.primitive == nil || r.Scene() == nil {
		return
	}
	e := r.Scene().entities[r.Entity()]
	parent := r.Scene().Nodes.GlobalTransform(e.Node())
	out.Add(draw.Drawable{
		Kind:      draw.Dynamic,
		Primitive: r.primitive,
		Material:  r.Material,
		ParentMat: parent,
	})
}

// cubePrimitive builds a 24-vertex (4 per face, unshared across faces so
// each has its own normal/uv) unit cube centred on the origin.
func cubePrimitive() *asset.Primitive {
	faces := []struct {
		normal [3]float32
		verts  [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-.5, -.5, .5}, {.5, -.5, .5}, {.5, .5, .5}, {-.5, .5, .5}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{.5, -.5, -.5}, {-.5, -.5, -.5}, {-.5, .5, -.5}, {.5, .5, -.5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-.5, .5, .5}, {.5, .5, .5}, {.5, .5, -.5}, {-.5, .5, -.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-.5, -.5, -.5}, {.5, -.5, -.5}, {.5, -.5, .5}, {-.5, -.5, .5}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{.5, -.5, .5}, {.5, -.5, -.5}, {.5, .5, -.5}, {.5, .5, .5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-.5, -.5, -.5}, {-.5, -.5, .5}, {-.5, .5, .5}, {-.5, .5, -.5}}},
	}

	g := asset.Geometry{}
	uv := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	for _, f := range faces {
		base := uint32(len(g.Positions))
		for i, v := range f.verts {
			g.Positions = append(g.Positions, v)
			g.Normals = append(g.Normals, f.normal)
			g.Uvs = append(g.Uvs, uv[i])
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return &asset.Primitive{Geometry: g, Topology: asset.TopologyTriangleList}
}
