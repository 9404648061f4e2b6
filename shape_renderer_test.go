// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

import (
	"testing"

	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/draw"
)

func TestShapeRendererBuildsCubeOnSetup(t *testing.T) {
	scene := NewScene("test")
	e := scene.Spawn(CreateInfo{Name: "shape", Transform: NewTransform()})
	Attach(e, NewShapeRenderer())

	var out draw.List
	e.render(&out)

	if len(out.Drawables) != 1 {
		t.Fatalf("expected 1 drawable, got %d", len(out.Drawables))
	}
	d := out.Drawables[0]
	if d.Kind != draw.Dynamic {
		t.Fatalf("expected a Dynamic drawable, got %v", d.Kind)
	}
	if d.Material == nil {
		t.Fatal("expected the default unlit material")
	}
	// 6 faces * 4 vertices (unshared, one normal/uv per face) and
	// 6 faces * 6 indices (2 triangles).
	if got := len(d.Primitive.Geometry.Positions); got != 24 {
		t.Fatalf("expected 24 positions, got %d", got)
	}
	if got := len(d.Primitive.Geometry.Indices); got != 36 {
		t.Fatalf("expected 36 indices, got %d", got)
	}
}

func TestShapeRendererHonoursCustomMaterial(t *testing.T) {
	scene := NewScene("test")
	e := scene.Spawn(CreateInfo{Name: "shape", Transform: NewTransform()})
	r := NewShapeRenderer()
	r.Material = asset.NewLitMaterial()
	Attach(e, r)

	var out draw.List
	e.render(&out)

	if out.Drawables[0].Material != r.Material {
		t.Fatal("expected the render component's own Material field to be submitted")
	}
}
