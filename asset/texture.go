// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// texture.go loads 2D image textures through the standard image package
// plus golang.org/x/image's extra decoders, grounded on the teacher's
// texture.go (image.Decode dispatch, RGBA normalization) but widened to
// cover the formats the rest of the corpus ships decoders for.

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Texture is a decoded, CPU-side RGBA image ready for GPU upload.
type Texture struct {
	Width, Height int
	Pixels        []byte // tightly packed RGBA8, row-major, top-left origin.
}

// NewTextureProvider builds a Provider[Texture] backed by vfs/monitor. The
// fallback is a 1x1 magenta texture, matching the engine-wide "never render
// nothing, render something wrong-looking" policy (spec §4.4/§7 S4).
func NewTextureProvider(vfs DataSource, monitor *UriMonitor) *Provider[Texture] {
	load := func(uri Uri) (*Texture, []Uri, error) {
		raw := vfs.Read(uri)
		if raw == nil {
			return nil, nil, fmt.Errorf("texture: read failed: %s", uri.Value())
		}
		w, h, pix, err := decodeTextureBytes(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("texture: decode %s: %w", uri.Value(), err)
		}
		return &Texture{Width: w, Height: h, Pixels: pix}, []Uri{uri}, nil
	}
	return NewProvider("Texture", vfs, monitor, load, fallbackTexture)
}

// decodeTextureBytes decodes any image format registered via image.Decode
// (jpeg/png/gif plus golang.org/x/image's bmp/tiff) into tightly packed RGBA8.
func decodeTextureBytes(raw []byte) (width, height int, pixels []byte, err error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, nil, err
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return bounds.Dx(), bounds.Dy(), rgba.Pix, nil
}

// fallbackTexture is the shared degraded-default texture.
func fallbackTexture() *Texture {
	return &Texture{Width: 1, Height: 1, Pixels: []byte{255, 0, 255, 255}}
}
