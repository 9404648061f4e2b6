// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// transform.go composes math/lin's V3/Q/M4 primitives into a node's local
// translation, rotation and scale, with lazy matrix caching for the scene
// graph's global transform composition. Grounded on the teacher's pov.go
// (cached *lin.M4, dirty-flag invalidation on Set*).

import "github.com/karnkaul/levk/math/lin"

// Transform is a node's local translation, rotation and scale. The
// corresponding 4x4 matrix is computed lazily and cached until the next
// mutation.
type Transform struct {
	Position lin.V3 `json:"position"`
	Rotation lin.Q  `json:"rotation"`
	Scale    lin.V3 `json:"scale"`

	cached *lin.M4
	dirty  bool
}

// NewTransform returns the identity transform (origin, no rotation, unit scale).
func NewTransform() Transform {
	return Transform{
		Position: lin.V3{},
		Rotation: lin.Q{X: 0, Y: 0, Z: 0, W: 1},
		Scale:    lin.V3{X: 1, Y: 1, Z: 1},
		dirty:    true,
	}
}

// SetPosition updates the translation and invalidates the cached matrix.
func (t *Transform) SetPosition(x, y, z float64) {
	t.Position = lin.V3{X: x, Y: y, Z: z}
	t.dirty = true
}

// SetRotation updates the rotation quaternion and invalidates the cache.
func (t *Transform) SetRotation(x, y, z, w float64) {
	t.Rotation = lin.Q{X: x, Y: y, Z: z, W: w}
	t.dirty = true
}

// SetScale updates the scale and invalidates the cache.
func (t *Transform) SetScale(x, y, z float64) {
	t.Scale = lin.V3{X: x, Y: y, Z: z}
	t.dirty = true
}

// Matrix returns the transform's 4x4 matrix (scale, then rotate, then
// translate, applied in that order to a row vector), recomputing only when
// the transform has changed since the last call.
func (t *Transform) Matrix() *lin.M4 {
	if t.cached == nil {
		t.cached = lin.NewM4()
		t.dirty = true
	}
	if t.dirty {
		t.cached.SetQ(&t.Rotation)                                     // m = R
		t.cached.ScaleSM(t.Scale.X, t.Scale.Y, t.Scale.Z)              // m = S * R
		t.cached.TranslateMT(t.Position.X, t.Position.Y, t.Position.Z) // m = (S * R) * T
		t.dirty = false
	}
	return t.cached
}
