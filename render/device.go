// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

// device.go specifies the render device's contract: a concrete Vulkan
// implementation is the external collaborator that actually produces
// pixels. Grounded on the teacher's render.go Renderer interface shape
// (Init/Clear/Viewport/Render lifecycle, graphicsContext's internal
// binding-method split) generalized from an immediate-mode GL renderer to
// the spec's acquire/record/present frame contract plus explicit pipeline
// caching.

import (
	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/draw"
)

// ColourSpace names a swapchain's colour space.
type ColourSpace int

const (
	ColourSpaceSrgbNonLinear ColourSpace = iota
	ColourSpaceLinear
)

// VsyncMode selects the swapchain's present mode.
type VsyncMode int

const (
	VsyncOn VsyncMode = iota
	VsyncOff
	VsyncMailbox
)

// Info reports a device's current swapchain configuration.
type Info struct {
	ColourSpace ColourSpace
	Msaa        int
	Vsync       VsyncMode
	RenderScale float64
}

// SurfaceSource is the window-supplied collaborator a Device builds its
// surface and swapchain from; the concrete type is platform-specific and
// lives outside this module.
type SurfaceSource interface {
	FramebufferSize() (width, height int)
}

// CreateInfo parametrizes Device construction.
type CreateInfo struct {
	Vsync       VsyncMode
	RenderScale float64
}

// Frame is everything one call to Device.Render needs to submit a complete
// frame: the merged draw list, the asset providers backing its materials,
// the scene's lights, and the active 3D camera.
type Frame struct {
	RenderList *draw.RenderList
	Providers  *asset.AssetProviders
	Lights     []Light
	ViewProj   [2][16]float32 // view, then projection, column-major.
	ViewPos    [3]float32
	Exposure   float32
}

// Device is the abstract render backend contract; spec §4.11 assumes a
// concrete Vulkan implementation satisfies it.
type Device interface {
	// Info reports the current swapchain configuration.
	Info() Info

	// SetRenderScale reconfigures the internal render resolution relative
	// to the swapchain extent, clamped to [0.2, 8.0].
	SetRenderScale(scale float64)

	// SetVsync reconfigures the swapchain present mode.
	SetVsync(mode VsyncMode)

	// SetClear sets the colour used to clear the 3D colour attachment.
	SetClear(rgba [4]float32)

	// Render performs one complete frame: acquire, optional shadow pass,
	// 3D pass, UI composite pass, present.
	Render(frame Frame) error

	// DrawCallsLastFrame reports the number of draw calls issued by the
	// most recently completed Render call.
	DrawCallsLastFrame() int

	// Destroy blocks until every in-flight frame completes, then releases
	// device resources, draining the deferred-destruction queue.
	Destroy()
}

// clampRenderScale enforces the [0.2, 8.0] bound spec §4.11 names.
func clampRenderScale(scale float64) float64 {
	switch {
	case scale < 0.2:
		return 0.2
	case scale > 8.0:
		return 8.0
	default:
		return scale
	}
}
