// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package ui

// drawable.go is the quad-rendering leaf view: a dynamically built
// geometry primitive drawn with an UnlitMaterial, per the original
// levk/ui/drawable.hpp + levk/ui/primitive.hpp (set_quad/texture_uri/tint).

import (
	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/draw"
	"github.com/karnkaul/levk/math/lin"
)

// QuadCreateInfo parametrizes Drawable.SetQuad, mirroring the original's
// QuadCreateInfo{size, rgb, origin, uv}.
type QuadCreateInfo struct {
	Size   Vec2
	Rgba   [4]float32
	Origin Vec2
}

// Drawable is a rectangle view with a dynamically rebuilt quad primitive,
// the UI tree's one concrete leaf type used for panels, buttons, and (via
// Text, which embeds it) glyph runs.
type Drawable struct {
	Base

	Material  asset.UnlitMaterial
	primitive asset.Primitive
}

// NewDrawable returns a Drawable with a default-size white quad.
func NewDrawable() *Drawable {
	d := &Drawable{}
	d.SetQuad(QuadCreateInfo{Size: Vec2{X: 100, Y: 100}, Rgba: [4]float32{1, 1, 1, 1}})
	return d
}

// SetTexture points the drawable's material at a texture asset.
func (d *Drawable) SetTexture(uri asset.Uri) {
	d.Material.Texture = uri
}

// SetQuad rebuilds the drawable's geometry as a single size-by-size quad
// centred on origin, tinted rgba.
func (d *Drawable) SetQuad(info QuadCreateInfo) {
	hw, hh := float32(info.Size.X/2), float32(info.Size.Y/2)
	ox, oy := float32(info.Origin.X), float32(info.Origin.Y)
	positions := [][3]float32{
		{ox - hw, oy - hh, 0},
		{ox + hw, oy - hh, 0},
		{ox + hw, oy + hh, 0},
		{ox - hw, oy + hh, 0},
	}
	uvs := [][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	d.primitive = asset.Primitive{
		Geometry: asset.Geometry{
			Positions: positions,
			Uvs:       uvs,
			Indices:   []uint32{0, 1, 2, 0, 2, 3},
		},
		Topology: asset.TopologyTriangleList,
	}
	d.Material.Tint = info.Rgba
}

func (d *Drawable) tick(input *Input, dt float64) { d.Base.tick(input, dt) }

// render emits the quad as a Dynamic drawable positioned at this view's
// world frame, depth-test disabled being the render device's job (all UI
// drawables are routed through the RenderList's Ui list).
func (d *Drawable) render(out *draw.List) {
	world := d.WorldFrame(Rect{Extent: DefaultExtent})
	m := lin.NewM4I()
	m.TranslateTM(world.Position.X, world.Position.Y, 0)
	out.Add(draw.Drawable{
		Kind:      draw.Dynamic,
		Primitive: &d.primitive,
		Material:  &d.Material,
		ParentMat: m,
	})
	d.Base.render(out)
}
