// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// font.go loads an ASCII bitmap font descriptor (glyph atlas coordinates per
// character), grounded on the teacher's font.go char/uvs/AddChar shape,
// adapted from a render.Mesh-writing Panel() method (GPU-bound) to a plain
// Layout() that returns vertex/uv/index arrays the UI package turns into
// Primitive geometry -- this package has no render dependency.

import (
	"encoding/json"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph is one character's location within a font's texture atlas and its
// screen-space placement offsets.
type Glyph struct {
	X, Y, W, H       int
	XOffset, YOffset int
	XAdvance         int
}

// Font is a bitmap font: an atlas texture reference plus one Glyph per
// supported ASCII character.
type Font struct {
	Name    string
	Texture Uri
	AtlasW  int
	AtlasH  int
	Glyphs  map[rune]Glyph
}

// uvs returns the glyph's four (u,v) texture coordinates in the same
// winding order Layout emits vertices, so glyphs render right-side up.
func (f *Font) uvs(g Glyph) [8]float32 {
	w, h := float32(f.AtlasW), float32(f.AtlasH)
	x, y := float32(g.X), float32(g.Y)
	gw, gh := float32(g.W), float32(g.H)
	return [8]float32{
		x / w, (y + gh) / h,
		(x + gw) / w, (y + gh) / h,
		(x + gw) / w, y / h,
		x / w, y / h,
	}
}

// Layout lays out phrase as a quad-per-glyph mesh: positions (xy, z=0), uvs
// and triangle indices, plus the total advance width in pixels. Missing
// glyphs (not in the font) are skipped with their width contributing
// nothing, matching the teacher's "skip spaces" / unknown-char handling.
func (f *Font) Layout(phrase string) (positions [][3]float32, uvs [][2]float32, indices []uint32, width int) {
	for _, r := range phrase {
		g, ok := f.Glyphs[r]
		if !ok {
			continue
		}
		xo, yo := float32(g.XOffset), float32(g.YOffset)
		if g.W != 0 && g.H != 0 {
			gu := f.uvs(g)
			uvs = append(uvs,
				[2]float32{gu[0], gu[1]}, [2]float32{gu[2], gu[3]},
				[2]float32{gu[4], gu[5]}, [2]float32{gu[6], gu[7]})

			base := float32(width)
			gw, gh := float32(g.W), float32(g.H)
			positions = append(positions,
				[3]float32{base + xo, yo, 0},
				[3]float32{base + gw + xo, yo, 0},
				[3]float32{base + gw + xo, gh + yo, 0},
				[3]float32{base + xo, gh + yo, 0},
			)
			i0 := uint32(len(positions) - 4)
			indices = append(indices, i0, i0+1, i0+3, i0+1, i0+2, i0+3)
		}
		width += g.XAdvance
	}
	return positions, uvs, indices, width
}

type glyphJson struct {
	Rune     string `json:"char"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	W        int    `json:"w"`
	H        int    `json:"h"`
	XOffset  int    `json:"x_offset"`
	YOffset  int    `json:"y_offset"`
	XAdvance int    `json:"x_advance"`
}

type fontJson struct {
	AssetType string      `json:"asset_type"`
	Name      string      `json:"name"`
	Texture   string      `json:"texture"`
	AtlasW    int         `json:"atlas_width"`
	AtlasH    int         `json:"atlas_height"`
	Glyphs    []glyphJson `json:"glyphs"`
}

// DefaultRunes is the glyph set NewTtfFontProvider rasterizes when a Font
// JSON descriptor doesn't name its own, covering printable ASCII.
var DefaultRunes = []rune(" ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890`~!@#$%^&*()[]{}/=?+\\|-_.>,<'\";:")

// RasterizeTtf parses a TrueType/OpenType font's bytes and rasterizes runes
// into a single square atlas texture, returning both the Font (glyph
// layout metadata) and the atlas Texture. Grounded on the teacher's
// load/ttf.go (golang.org/x/image/font/opentype face rasterization,
// baseline-aligned glyph placement within per-line height boxes), adapted
// to return this package's Font/Texture shapes instead of a GPU-bound
// render.Mesh-writing type.
func RasterizeTtf(ttfBytes []byte, size int, name string, runes []rune) (*Font, *Texture, error) {
	parsed, err := opentype.Parse(ttfBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("ttf: parse %s: %w", name, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("ttf: face %s: %w", name, err)
	}
	if len(runes) == 0 {
		runes = DefaultRunes
	}

	const atlasSize = 512
	img := image.NewNRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	penX, penY := 0, 0
	lineHeight := face.Metrics().Height.Round()
	ascent := face.Metrics().Ascent.Round()

	f := &Font{Name: name, AtlasW: atlasSize, AtlasH: atlasSize, Glyphs: map[rune]Glyph{}}
	for _, r := range runes {
		bounds, _, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
		maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
		glyphW, glyphH := maxX-minX+2, maxY-minY
		descent := int(float32(maxY) + (float32(bounds.Min.Y)/64.0 - float32(minY)))
		bearingX := int(float32(bounds.Min.X) / 64.0)

		if penX+glyphW >= atlasSize {
			penX = 0
			penY += lineHeight
			if penY >= atlasSize {
				return nil, nil, fmt.Errorf("ttf: atlas too small for %s at size %d", name, size)
			}
		}

		dst := image.NewNRGBA(image.Rect(0, 0, glyphW, glyphH))
		drawer := &font.Drawer{
			Dot:  fixed.P(-minX+1, -minY),
			Dst:  dst,
			Src:  image.White,
			Face: face,
		}
		dr, mask, maskp, xAdvance, _ := drawer.Face.Glyph(drawer.Dot, r)
		draw.DrawMask(drawer.Dst, dr, drawer.Src, image.Point{}, mask, maskp, draw.Over)

		base := maxY - descent + (ascent + minY)
		draw.Draw(img, image.Rect(penX, penY+base, penX+glyphW, penY+base+glyphH), dst, image.Point{}, draw.Src)

		f.Glyphs[r] = Glyph{X: penX, Y: penY, W: glyphW, H: lineHeight, XOffset: bearingX, XAdvance: xAdvance.Round()}
		penX += glyphW
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, image.Point{}, draw.Src)
	tex := &Texture{Width: atlasSize, Height: atlasSize, Pixels: rgba.Pix}
	return f, tex, nil
}

// NewTtfFontProvider loads ".ttf"-suffixed Font URIs by rasterizing the raw
// font bytes through RasterizeTtf at the given point size, registering the
// generated atlas under a synthetic texture Uri derived from the font's so
// Font.Texture resolves through the shared texture provider like any other
// font. Plain Font JSON descriptors still load through NewFontProvider;
// callers route ".ttf" URIs to this provider and everything else to that one.
func NewTtfFontProvider(vfs DataSource, monitor *UriMonitor, textures *Provider[Texture], size int) *Provider[Font] {
	load := func(uri Uri) (*Font, []Uri, error) {
		raw := vfs.Read(uri)
		if raw == nil {
			return nil, nil, fmt.Errorf("ttf font: read failed: %s", uri.Value())
		}
		f, tex, err := RasterizeTtf(raw, size, uri.Value(), nil)
		if err != nil {
			return nil, nil, err
		}
		atlasUri := uri.Concat(".atlas")
		f.Texture = atlasUri
		textures.Add(atlasUri, tex)
		return f, []Uri{uri}, nil
	}
	return NewProvider[Font]("TtfFont", vfs, monitor, load, nil)
}

// NewFontProvider loads a Font JSON descriptor.
func NewFontProvider(vfs DataSource, monitor *UriMonitor) *Provider[Font] {
	load := func(uri Uri) (*Font, []Uri, error) {
		raw := vfs.Read(uri)
		if raw == nil {
			return nil, nil, fmt.Errorf("font: read failed: %s", uri.Value())
		}
		var doc fontJson
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, nil, fmt.Errorf("font: decode %s: %w", uri.Value(), err)
		}
		textureUri := uri.Parent().Append(doc.Texture)
		font := &Font{
			Name:    doc.Name,
			Texture: textureUri,
			AtlasW:  doc.AtlasW,
			AtlasH:  doc.AtlasH,
			Glyphs:  map[rune]Glyph{},
		}
		for _, g := range doc.Glyphs {
			runes := []rune(g.Rune)
			if len(runes) == 0 {
				continue
			}
			font.Glyphs[runes[0]] = Glyph{X: g.X, Y: g.Y, W: g.W, H: g.H, XOffset: g.XOffset, YOffset: g.YOffset, XAdvance: g.XAdvance}
		}
		return font, []Uri{uri, textureUri}, nil
	}
	return NewProvider[Font]("Font", vfs, monitor, load, nil)
}
