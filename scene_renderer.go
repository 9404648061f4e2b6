// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// scene_renderer.go is the thin per-frame orchestrator between a Scene and
// a render.Device: build the draw list, pack the camera/lights into a
// render.Frame, submit. Grounded on the teacher's role.go+frame.go pairing
// (assembling per-model render data immediately before a device call),
// generalized from per-model packet assembly to one whole-scene frame
// assembly since SPEC_FULL.md's Device already accepts a merged RenderList.

import (
	"github.com/karnkaul/levk/draw"
	"github.com/karnkaul/levk/render"
)

// SceneRenderer pulls one frame's draw list and camera/light state out of a
// Scene and submits it to a render.Device.
type SceneRenderer struct {
	Device render.Device
}

// NewSceneRenderer wires device as the submission target.
func NewSceneRenderer(device render.Device) *SceneRenderer {
	return &SceneRenderer{Device: device}
}

// Render builds scene's draw list and camera/light uniforms for the given
// viewport extent and submits one frame.
func (r *SceneRenderer) Render(scene *Scene, viewportWidth, viewportHeight int) error {
	var list draw.RenderList
	scene.Render(&list)
	list.Scene.Extent = [2]int{viewportWidth, viewportHeight}
	list.Ui.Extent = [2]int{viewportWidth, viewportHeight}

	view := scene.Camera.View(&scene.Camera.Transform)
	proj := scene.Camera.Projection4(float64(viewportWidth), float64(viewportHeight))

	frame := render.Frame{
		RenderList: &list,
		Providers:  scene.Providers,
		Lights:     collectLights(scene.Lights),
		ViewPos: [3]float32{
			float32(scene.Camera.Transform.Position.X),
			float32(scene.Camera.Transform.Position.Y),
			float32(scene.Camera.Transform.Position.Z),
		},
		Exposure: float32(scene.Camera.Exposure),
	}
	frame.ViewProj[0] = m4ToArray(view)
	frame.ViewProj[1] = m4ToArray(proj)

	return r.Device.Render(frame)
}
