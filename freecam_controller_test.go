// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package levk

import (
	"testing"

	"github.com/karnkaul/levk/render"
)

// fakeWindow records the last CursorMode set by a component under test; it
// never needs to back a real OS window.
type fakeWindow struct {
	mode CursorMode
}

func (w *fakeWindow) Open()                         {}
func (w *fakeWindow) Close()                        {}
func (w *fakeWindow) IsAlive() bool                 { return true }
func (w *fakeWindow) Surface() render.SurfaceSource { return nil }
func (w *fakeWindow) SetCursorMode(mode CursorMode) { w.mode = mode }
func (w *fakeWindow) CursorMode() CursorMode        { return w.mode }
func (w *fakeWindow) Poll() *RuntimeInput           { return &RuntimeInput{} }

func TestFreecamControllerMovesAlongLookedAtForwardAxis(t *testing.T) {
	scene := NewScene("test")
	window := &fakeWindow{}
	scene.Window = window
	scene.Input = &RuntimeInput{
		HeldKeys:    map[Key]bool{KeyW: true},
		HeldButtons: map[MouseButton]bool{MouseRight: true},
	}

	e := scene.Spawn(CreateInfo{Name: "cam", Transform: NewTransform()})
	Attach(e, NewFreecamController())

	scene.Tick(1.0, nil)

	pos := scene.Nodes.Transform(e.Node()).Position
	if pos.X != 0 || pos.Y != 0 {
		t.Fatalf("expected movement confined to the forward axis, got %+v", pos)
	}
	if pos.Z == 0 {
		t.Fatal("expected the entity to have moved along Z")
	}
	if window.mode != CursorDisabled {
		t.Fatalf("expected right-mouse-held to disable the cursor, got %v", window.mode)
	}
}

func TestFreecamControllerReleasingRightMouseRestoresCursor(t *testing.T) {
	scene := NewScene("test")
	window := &fakeWindow{}
	scene.Window = window
	scene.Input = &RuntimeInput{HeldButtons: map[MouseButton]bool{MouseRight: true}}

	e := scene.Spawn(CreateInfo{Name: "cam", Transform: NewTransform()})
	Attach(e, NewFreecamController())
	scene.Tick(1.0, nil)

	scene.Input = &RuntimeInput{HeldButtons: map[MouseButton]bool{}}
	scene.Tick(1.0, nil)

	if window.mode != CursorNormal {
		t.Fatalf("expected releasing right-mouse to restore the normal cursor, got %v", window.mode)
	}
}

func TestFreecamControllerWithoutInputIsANoOp(t *testing.T) {
	scene := NewScene("test")
	e := scene.Spawn(CreateInfo{Name: "cam", Transform: NewTransform()})
	Attach(e, NewFreecamController())

	scene.Tick(1.0, nil)

	pos := scene.Nodes.Transform(e.Node()).Position
	if pos.X != 0 || pos.Y != 0 || pos.Z != 0 {
		t.Fatalf("expected no movement without scene input, got %+v", pos)
	}
}
