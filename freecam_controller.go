// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// freecam_controller.go is a WASD+mouselook fly camera, grounded on the
// original's freecam_controller.cpp: right-mouse-held enables mouselook
// (disabling the cursor), held movement keys translate along the camera's
// own basis vectors scaled by dt, and orientation is rebuilt from
// accumulated pitch/yaw each tick (no roll).

import (
	"math"

	"github.com/karnkaul/levk/math/lin"
)

// FreecamController flies its owning entity's transform via WASDQE +
// arrow keys and right-mouse-held look-around, matching the original's
// default move/look speeds.
type FreecamController struct {
	Base

	MoveSpeed float64
	LookSpeed float64
	PitchRad  float64
	YawRad    float64

	prevCursorX, prevCursorY float64
	looking                  bool
}

// NewFreecamController returns a controller with the original's defaults
// (move speed 10, look speed 0.3).
func NewFreecamController() *FreecamController {
	return &FreecamController{MoveSpeed: 10, LookSpeed: 0.3}
}

func (c *FreecamController) setup() {}

func (c *FreecamController) toAttachment() Attachment {
	return &FreecamAttachment{
		MoveSpeed: c.MoveSpeed,
		LookSpeed: c.LookSpeed,
		PitchRad:  c.PitchRad,
		YawRad:    c.YawRad,
	}
}

// tick mirrors the original's exact sequence: toggle cursor mode off
// right-mouse-held, accumulate pitch/yaw from cursor delta while looking,
// translate along the rebuilt orientation's front/right/up axes from held
// movement keys, then write the new orientation back to the transform.
func (c *FreecamController) tick(dt float64) {
	scene := c.Scene()
	if scene == nil || scene.Input == nil {
		return
	}
	input := scene.Input
	e := scene.entities[c.Entity()]
	node := scene.Nodes

	held := input.IsButtonHeld(MouseRight)
	if held && !c.looking {
		if scene.Window != nil {
			scene.Window.SetCursorMode(CursorDisabled)
		}
		c.prevCursorX, c.prevCursorY = input.CursorX, input.CursorY
		c.looking = true
	} else if !held && c.looking {
		if scene.Window != nil {
			scene.Window.SetCursorMode(CursorNormal)
		}
		c.looking = false
	}

	transform := node.Transform(e.Node())
	if transform == nil {
		return
	}

	if c.looking {
		dx := input.CursorX - c.prevCursorX
		dy := -(input.CursorY - c.prevCursorY)
		c.PitchRad -= c.LookSpeed * lin.Rad(dy)
		c.YawRad -= c.LookSpeed * lin.Rad(dx)
		const maxPitch = 89.0 * math.Pi / 180.0
		if c.PitchRad > maxPitch {
			c.PitchRad = maxPitch
		}
		if c.PitchRad < -maxPitch {
			c.PitchRad = -maxPitch
		}

		orientation := eulerPitchYaw(c.PitchRad, c.YawRad)
		var front, right, up lin.V3
		front.MultQ(&lin.V3{Z: -1}, &orientation)
		right.MultQ(&lin.V3{X: 1}, &orientation)
		up.MultQ(&lin.V3{Y: 1}, &orientation)

		var dxyz lin.V3
		if input.IsKeyHeld(KeyW) || input.IsKeyHeld(KeyUp) {
			dxyz.Z -= 1
		}
		if input.IsKeyHeld(KeyS) || input.IsKeyHeld(KeyDown) {
			dxyz.Z += 1
		}
		if input.IsKeyHeld(KeyA) || input.IsKeyHeld(KeyLeft) {
			dxyz.X -= 1
		}
		if input.IsKeyHeld(KeyD) || input.IsKeyHeld(KeyRight) {
			dxyz.X += 1
		}
		if input.IsKeyHeld(KeyQ) {
			dxyz.Y -= 1
		}
		if input.IsKeyHeld(KeyE) {
			dxyz.Y += 1
		}
		if dxyz.X != 0 || dxyz.Y != 0 || dxyz.Z != 0 {
			dxyz.Unit()
			factor := dt * c.MoveSpeed
			pos := transform.Position
			pos.X += factor * (front.X*dxyz.Z + right.X*dxyz.X + up.X*dxyz.Y)
			pos.Y += factor * (front.Y*dxyz.Z + right.Y*dxyz.X + up.Y*dxyz.Y)
			pos.Z += factor * (front.Z*dxyz.Z + right.Z*dxyz.X + up.Z*dxyz.Y)
			transform.SetPosition(pos.X, pos.Y, pos.Z)
		}

		transform.SetRotation(orientation.X, orientation.Y, orientation.Z, orientation.W)
	}

	c.prevCursorX, c.prevCursorY = input.CursorX, input.CursorY
}

// eulerPitchYaw builds a yaw-then-pitch quaternion (yaw about world Y
// applied first, then pitch about the resulting local X), the standard
// FPS-camera composition order with no roll term, mirroring the original's
// `orientation = quat(vec3(pitch, yaw, 0))`.
func eulerPitchYaw(pitch, yaw float64) lin.Q {
	var qYaw, qPitch, out lin.Q
	qYaw.SetAa(0, 1, 0, yaw)
	qPitch.SetAa(1, 0, 0, pitch)
	out.Mult(&qPitch, &qYaw)
	return out
}
