// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import "testing"

func TestTextureProviderDecodesPng(t *testing.T) {
	vfs := newMemVfs()
	vfs.files["brick.png"] = onePixelPng(t)

	provider := NewTextureProvider(vfs, nil)
	tex := provider.Get(NewUri("brick.png"))

	if tex.Width != 1 || tex.Height != 1 {
		t.Fatalf("expected a 1x1 texture, got %dx%d", tex.Width, tex.Height)
	}
}

// TestTextureProviderFallsBackOnMissingFile covers the engine-wide
// never-render-nothing policy: a missing texture degrades to the shared
// magenta fallback instead of a nil payload.
func TestTextureProviderFallsBackOnMissingFile(t *testing.T) {
	vfs := newMemVfs()
	provider := NewTextureProvider(vfs, nil)

	tex := provider.Get(NewUri("missing.png"))

	if tex == nil {
		t.Fatal("expected a fallback texture, got nil")
	}
	if tex.Width != 1 || tex.Height != 1 {
		t.Fatalf("expected the 1x1 fallback, got %dx%d", tex.Width, tex.Height)
	}
	want := []byte{255, 0, 255, 255}
	if string(tex.Pixels) != string(want) {
		t.Fatalf("Pixels = %v, want magenta %v", tex.Pixels, want)
	}
}

func TestTextureProviderFallsBackOnUndecodableBytes(t *testing.T) {
	vfs := newMemVfs()
	vfs.files["corrupt.png"] = []byte("not an image")
	provider := NewTextureProvider(vfs, nil)

	tex := provider.Get(NewUri("corrupt.png"))

	if tex == nil || tex.Width != 1 || tex.Height != 1 {
		t.Fatalf("expected the 1x1 fallback for undecodable bytes, got %+v", tex)
	}
}

// onePixelPng returns a minimal valid 1x1 PNG (a single opaque white pixel).
func onePixelPng(t *testing.T) []byte {
	t.Helper()
	return []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
		0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
		0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9c, 0x63, 0xfc, 0xcf, 0xc0, 0xf0,
		0x1f, 0x00, 0x05, 0x05, 0x02, 0x00, 0xff, 0xff,
		0x03, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e,
		0x44, 0xae, 0x42, 0x60, 0x82,
	}
}
