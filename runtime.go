// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

// runtime.go is the engine's main loop: initialize logger/VFS/providers/
// device/scene, call the user's setup(), then poll/tick/render until the
// window closes, draining the device on the way out. Grounded on the
// teacher's eng.go Action() loop (monotonic-clock dt, capped elapsed time,
// Director callback shape) generalized from a fixed-timestep update loop
// to the spec's variable-dt poll/tick/render sequence, and on the
// original's windowing/input boundary being named only as a contract
// (levk/window/window.hpp), not a concrete backend.

import (
	"log/slog"
	"time"

	"github.com/karnkaul/levk/asset"
	"github.com/karnkaul/levk/math/lin"
	"github.com/karnkaul/levk/render"
	"github.com/karnkaul/levk/ui"
)

// Key names a keyboard key the runtime tracks, grounded on the teacher's
// device.Pressed key-name idiom but typed instead of stringly keyed.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

// MouseButton names a tracked mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// CursorMode selects how the window captures and displays the cursor; a
// freecam controller disables it while look-around is active.
type CursorMode int

const (
	CursorNormal CursorMode = iota
	CursorDisabled
)

// RuntimeInput is the per-frame keyboard/mouse state the window reports,
// grounded on the teacher's device.Pressed (mouse location, held-key set,
// focus/resize flags) generalized from string-keyed to typed Key/MouseButton
// sets.
type RuntimeInput struct {
	CursorX, CursorY float64
	Scroll           float64
	HeldKeys         map[Key]bool
	HeldButtons      map[MouseButton]bool
	Focus            bool
	Resized          bool
}

// IsKeyHeld reports whether k is currently held.
func (i *RuntimeInput) IsKeyHeld(k Key) bool { return i.HeldKeys[k] }

// IsButtonHeld reports whether b is currently held.
func (i *RuntimeInput) IsButtonHeld(b MouseButton) bool { return i.HeldButtons[b] }

// Window is the windowing/input backend contract; a concrete GLFW-or-similar
// implementation is the external collaborator, same spirit as render.Device.
// Grounded on the teacher's device.Device interface (Open/IsAlive/Size/
// Update lifecycle) adapted to report a *render.SurfaceSource for device
// construction instead of binding a GL context directly.
type Window interface {
	Open()
	Close()
	IsAlive() bool
	Surface() render.SurfaceSource
	SetCursorMode(mode CursorMode)
	CursorMode() CursorMode

	// Poll drains OS events into the returned input snapshot; the runtime
	// loop calls it once per frame.
	Poll() *RuntimeInput
}

// SceneManager owns the set of loaded scenes and which one is active; only
// the active scene is ticked and rendered.
type SceneManager struct {
	scenes map[string]*Scene
	active string
}

// NewSceneManager returns an empty manager.
func NewSceneManager() *SceneManager {
	return &SceneManager{scenes: map[string]*Scene{}}
}

// Add registers scene under name. The first scene added becomes active.
func (m *SceneManager) Add(name string, scene *Scene) {
	if m.scenes == nil {
		m.scenes = map[string]*Scene{}
	}
	m.scenes[name] = scene
	if m.active == "" {
		m.active = name
	}
}

// SetActive switches the active scene by name; a no-op if name is unknown.
func (m *SceneManager) SetActive(name string) {
	if _, ok := m.scenes[name]; ok {
		m.active = name
	}
}

// ActiveScene returns the currently active scene, or nil if none is registered.
func (m *SceneManager) ActiveScene() *Scene {
	return m.scenes[m.active]
}

// Runtime wires a Window, a render Device, asset providers and a
// SceneManager into the spec's init→setup→loop→shutdown sequence.
type Runtime struct {
	Window    Window
	Device    render.Device
	Providers *asset.AssetProviders
	Scenes    *SceneManager
	Renderer  *SceneRenderer

	// CapDt bounds a single frame's dt to avoid a "spiral of death" after a
	// long stall (e.g. a debugger pause), matching the teacher's capTime.
	CapDt float64
}

// NewRuntime wires the given collaborators with the teacher's 0.2s dt cap.
func NewRuntime(window Window, device render.Device, providers *asset.AssetProviders) *Runtime {
	return &Runtime{
		Window: window, Device: device, Providers: providers,
		Scenes:   NewSceneManager(),
		Renderer: NewSceneRenderer(device),
		CapDt:    0.2,
	}
}

// Run initializes the window, invokes setup once the first scene is ready
// for the caller to populate, then loops poll→tick→render until the window
// closes or an error occurs, finally draining the device.
func (r *Runtime) Run(setup func(rt *Runtime)) error {
	r.Window.Open()
	setup(r)

	last := time.Now()
	for r.Window.IsAlive() {
		input := r.Window.Poll()

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		if dt > r.CapDt {
			dt = r.CapDt
		}

		scene := r.Scenes.ActiveScene()
		if scene == nil {
			continue
		}

		r.Providers.ReloadOutOfDate()

		scene.Input = input
		scene.Window = r.Window
		scene.Providers = r.Providers

		uiInput := &ui.Input{CursorPosition: ui.Vec2{X: input.CursorX, Y: input.CursorY}, CursorDown: input.IsButtonHeld(MouseLeft)}
		scene.Tick(dt, uiInput)

		width, height := 800, 600
		if surface := r.Window.Surface(); surface != nil {
			width, height = surface.FramebufferSize()
		}
		if err := r.Renderer.Render(scene, width, height); err != nil {
			slog.Error("runtime: render failed", "error", err)
			r.Device.Destroy()
			return err
		}
	}

	r.Device.Destroy()
	return nil
}

func collectLights(lights Lights) []render.Light {
	out := make([]render.Light, 0, 1+len(lights.DirLights))
	out = append(out, dirLightToRenderLight(lights.Primary))
	for _, l := range lights.DirLights {
		out = append(out, dirLightToRenderLight(l))
	}
	return out
}

func dirLightToRenderLight(l DirLight) render.Light {
	return render.Light{Kind: 0, Color: l.Color, Intensity: l.Intensity}
}

// m4ToArray flattens m into a column-major float32 array the way a GPU
// uniform buffer expects it, matching math/lin.M4's row-major field layout
// (Xx..Xw is the first row, etc.) transposed on write.
func m4ToArray(m *lin.M4) [16]float32 {
	return [16]float32{
		float32(m.Xx), float32(m.Yx), float32(m.Zx), float32(m.Wx),
		float32(m.Xy), float32(m.Yy), float32(m.Zy), float32(m.Wy),
		float32(m.Xz), float32(m.Yz), float32(m.Zz), float32(m.Wz),
		float32(m.Xw), float32(m.Yw), float32(m.Zw), float32(m.Ww),
	}
}
