// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// camera.go models a 3D camera facing -Z, with either perspective or
// orthographic projection. Grounded on the original levk/graphics/camera.hpp,
// expressed as a Go struct with a tagged-union projection field (Go has no
// std::variant; the pack's materials use an explicit Kind enum for the same
// shape, see asset/material.go's RenderMode).

import "github.com/karnkaul/levk/math/lin"

// ProjectionKind selects between perspective and orthographic projection.
type ProjectionKind int

const (
	ProjectionPerspective ProjectionKind = iota
	ProjectionOrthographic
)

// ViewPlane bounds a camera's near/far clip distance.
type ViewPlane struct {
	Near float64 `json:"near"`
	Far  float64 `json:"far"`
}

// Camera holds the parameters needed to build view and projection matrices;
// the view matrix is derived from an external Transform (a SceneCamera's own,
// or an entity's global transform when following a target).
type Camera struct {
	Name       string         `json:"name"`
	Projection ProjectionKind `json:"projection"`

	FieldOfViewDegrees float64   `json:"fov_degrees,omitempty"` // used when Projection == ProjectionPerspective.
	ViewScale          float64   `json:"view_scale,omitempty"`  // used when Projection == ProjectionOrthographic.
	Plane              ViewPlane `json:"plane"`
	Exposure           float64   `json:"exposure"`
}

// NewCamera returns a perspective camera with the original's defaults
// (75° FOV, near/far 0.1/1000, exposure 2.0).
func NewCamera() Camera {
	return Camera{
		Projection:         ProjectionPerspective,
		FieldOfViewDegrees: 75,
		ViewScale:          1,
		Plane:              ViewPlane{Near: 0.1, Far: 1000},
		Exposure:           2,
	}
}

// View returns the inverse of transform's matrix (Scale*Rotate*Translate):
// the camera's view matrix, built as Translate(-pos) * Rotate(rot⁻¹) *
// Scale(1/scale). Grounded on the teacher's camera.go view-transform
// functions (vp/ivp), which likewise build the view matrix directly from
// the camera's position/rotation rather than via a general matrix inverse
// (this library exposes no general M4 inverse; only the
// quaternion/translation-specific inverses this composes).
func (c *Camera) View(transform *Transform) *lin.M4 {
	view := lin.NewM4I()
	view.TranslateTM(-transform.Position.X, -transform.Position.Y, -transform.Position.Z)

	var invRot lin.Q
	invRot.Inv(&transform.Rotation)
	rot := lin.NewM4().SetQ(&invRot)
	view.Mult(view, rot)

	sx, sy, sz := invScale(transform.Scale.X), invScale(transform.Scale.Y), invScale(transform.Scale.Z)
	view.ScaleMS(sx, sy, sz)
	return view
}

func invScale(s float64) float64 {
	if s == 0 {
		return 0
	}
	return 1 / s
}

// Projection4 builds the camera's projection matrix for the given viewport
// extent (width, height in pixels).
func (c *Camera) Projection4(width, height float64) *lin.M4 {
	p := lin.NewM4()
	aspect := width / height
	switch c.Projection {
	case ProjectionOrthographic:
		halfW, halfH := width/2*c.ViewScale, height/2*c.ViewScale
		p.Ortho(-halfW, halfW, -halfH, halfH, c.Plane.Near, c.Plane.Far)
	default:
		p.Persp(c.FieldOfViewDegrees, aspect, c.Plane.Near, c.Plane.Far)
	}
	return p
}

// SceneCamera is a Camera bound to the scene graph: when Target resolves to
// a live entity, the scene copies that entity's global transform into
// Transform at the end of every tick (spec's camera-follow step).
type SceneCamera struct {
	Camera
	Transform Transform `json:"transform"`
	Target    EntityId  `json:"target,omitempty"`
}
