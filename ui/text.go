// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package ui

// text.go lays out a string as a quad-per-glyph mesh against a bitmap Font,
// rebuilding geometry only when the string or font changes, grounded on the
// original's ui/text.hpp (string/font-driven rebuild-on-change) and the
// teacher's label.go (font-atlas-backed text mesh idiom).

import (
	"golang.org/x/text/width"

	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/draw"
	"github.com/karnkaul/levk/math/lin"
)

// Text is a Drawable specialized to lay out a string of glyphs against a
// Font's atlas; it embeds Drawable so it gets the same world-frame-relative
// positioning and Material.Tint handling for free.
type Text struct {
	Drawable

	font   *asset.Font
	phrase string
	rgba   [4]float32

	width int
}

// NewText returns an empty, white Text view.
func NewText() *Text {
	t := &Text{rgba: [4]float32{1, 1, 1, 1}}
	return t
}

// SetFont binds font as the glyph source and rebuilds geometry.
func (t *Text) SetFont(font *asset.Font) {
	t.font = font
	t.Material.Texture = font.Texture
	t.rebuild()
}

// SetString replaces the displayed phrase and rebuilds geometry, a no-op if
// the phrase is unchanged (mirrors the original's rebuild-on-change guard).
func (t *Text) SetString(phrase string) {
	// Narrow fullwidth/halfwidth forms to their canonical width before
	// layout, so a Font's advance-width table (built against the narrow
	// forms) measures mixed-script phrases correctly.
	phrase = width.Narrow.String(phrase)
	if phrase == t.phrase {
		return
	}
	t.phrase = phrase
	t.rebuild()
}

// SetColour replaces the tint without rebuilding geometry: Material.Tint is
// a whole-primitive value (see Drawable.SetQuad), applied here directly and
// re-applied by every later rebuild.
func (t *Text) SetColour(rgba [4]float32) {
	t.rgba = rgba
	t.Material.Tint = rgba
}

// Width reports the laid-out phrase's total advance width in pixels.
func (t *Text) Width() int { return t.width }

func (t *Text) rebuild() {
	if t.font == nil {
		return
	}
	positions, uvs, indices, width := t.font.Layout(t.phrase)
	t.width = width
	t.setGeometry(positions, uvs, indices)
	t.Material.Tint = t.rgba
}

// setGeometry installs the laid-out glyph mesh directly, bypassing
// Drawable.SetQuad (which always builds a single centred quad): Text's
// geometry is however many quads the phrase needs, already positioned by
// Font.Layout.
func (t *Text) setGeometry(positions [][3]float32, uvs [][2]float32, indices []uint32) {
	t.primitive = asset.Primitive{
		Geometry: asset.Geometry{Positions: positions, Uvs: uvs, Indices: indices},
		Topology: asset.TopologyTriangleList,
	}
}

func (t *Text) tick(input *Input, dt float64) { t.Base.tick(input, dt) }

func (t *Text) render(out *draw.List) {
	world := t.WorldFrame(Rect{Extent: DefaultExtent})
	m := lin.NewM4I()
	m.TranslateTM(world.Position.X, world.Position.Y, 0)
	out.Add(draw.Drawable{
		Kind:      draw.Dynamic,
		Primitive: &t.primitive,
		Material:  &t.Material,
		ParentMat: m,
	})
	t.Base.render(out)
}
