// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// light.go is the scene-level light data a Scene owns and the renderer
// later packs into render.Light uniform slots (see render/light.go and
// scene_renderer.go). Grounded on the original levk/graphics/lights.hpp
// (DirLight direction quaternion + HDR rgb, Lights{primary, dir_lights}).

import "github.com/karnkaul/levk/math/lin"

// DirLight is a directional light: a rotation (the direction it points)
// and an HDR colour (components may exceed 1 to express intensity).
type DirLight struct {
	Direction lin.Q      `json:"direction"`
	Color     [3]float32 `json:"color"`
	Intensity float32    `json:"intensity"`
}

// NewDirLight returns the original's default: pointing straight down,
// white, intensity 5.
func NewDirLight() DirLight {
	var q lin.Q
	q.SetAa(1, 0, 0, lin.Rad(180))
	return DirLight{Direction: q, Color: [3]float32{1, 1, 1}, Intensity: 5}
}

// Lights is the scene's light set: one primary directional light plus any
// number of supplementary ones.
type Lights struct {
	Primary   DirLight   `json:"primary"`
	DirLights []DirLight `json:"dir_lights,omitempty"`
}

// NewLights returns a Lights with a single default primary light.
func NewLights() Lights {
	return Lights{Primary: NewDirLight()}
}
