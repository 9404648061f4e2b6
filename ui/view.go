// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package ui is the engine's 2D view tree: anchor-relative rectangles
// ticked and rendered independently of the 3D scene graph. Grounded on the
// original levk/ui/view.hpp (frame/world_frame, anchor, z_index/z_rotation,
// sub_views, tick-then-prune-destroyed).
package ui

import "github.com/karnkaul/levk/draw"

// Vec2 is a 2D point or extent; kept local to avoid pulling the 3D
// math/lin package into 2D UI layout, which never needs homogeneous
// coordinates or quaternions.
type Vec2 struct {
	X, Y float64
}

// Rect is a view's local frame: Position is relative to its super view's
// frame, Extent is its width/height.
type Rect struct {
	Position Vec2
	Extent   Vec2
}

// DefaultExtent mirrors the original's frame_v default (100x100).
var DefaultExtent = Vec2{X: 100, Y: 100}

// Input is the subset of window input state views need to react to pointer
// and key events; the runtime loop owns the concrete implementation.
type Input struct {
	CursorPosition Vec2
	CursorDown     bool
}

// View is one node of the UI tree. tick/render are unexported: only this
// package's concrete view types (Base, Drawable, Text) may
// implement it, matching the teacher's closed Component interface idiom
// (see component.go in the root package).
type View interface {
	tick(input *Input, dt float64)
	render(out *draw.List)
	destroyed() bool
}

// Base is a plain rectangle view with no drawable content of its own; it
// only positions and ticks/prunes its sub-views. Concrete leaf views (see
// drawable.go, text.go) embed Base and override render.
type Base struct {
	Frame     Rect
	NAnchor   Vec2 // normalized anchor in [-1, 1]^2, relative to the super view's extent.
	ZIndex    float64
	ZRotation float64

	superView   View
	subViews    []View
	isDestroyed bool
}

// AddSubView appends view as a child, ticked/rendered after Base's own content.
func (b *Base) AddSubView(view View) {
	b.subViews = append(b.subViews, view)
}

// SetDestroyed marks the view for removal by its super view's next tick.
func (b *Base) SetDestroyed() { b.isDestroyed = true }

func (b *Base) destroyed() bool { return b.isDestroyed }

// WorldFrame computes this view's frame in the root's coordinate space:
// super frame centre + anchor * half the super extent + own offset, per spec's
// definition. superFrame is the already-computed world frame of b's super
// view (the zero Rect for a root view).
func (b *Base) WorldFrame(superFrame Rect) Rect {
	center := Vec2{
		X: superFrame.Position.X + b.NAnchor.X*superFrame.Extent.X/2 + b.Frame.Position.X,
		Y: superFrame.Position.Y + b.NAnchor.Y*superFrame.Extent.Y/2 + b.Frame.Position.Y,
	}
	return Rect{Position: center, Extent: b.Frame.Extent}
}

func (b *Base) setup() {}

func (b *Base) tick(input *Input, dt float64) {
	for _, sub := range b.subViews {
		sub.tick(input, dt)
	}
	b.prune()
}

func (b *Base) prune() {
	kept := b.subViews[:0]
	for _, sub := range b.subViews {
		if !sub.destroyed() {
			kept = append(kept, sub)
		}
	}
	b.subViews = kept
}

// render issues no drawable of its own; it just recurses into sub-views.
// Concrete leaf views override this by embedding Base and shadowing render.
func (b *Base) render(out *draw.List) {
	for _, sub := range b.subViews {
		sub.render(out)
	}
}

// Tree is the scene-owned root of the UI view tree.
type Tree struct {
	Root Base
}

// NewTree returns a tree with an empty, default-extent root.
func NewTree() *Tree {
	return &Tree{Root: Base{Frame: Rect{Extent: DefaultExtent}}}
}

// Tick propagates input and dt through the whole tree, then prunes
// destroyed sub-views at every level.
func (t *Tree) Tick(input *Input, dt float64) {
	t.Root.tick(input, dt)
}

// Render issues every view's drawables, in subtree order, depth-test
// disabled (the renderer, not the view tree, enforces that).
func (t *Tree) Render(out *draw.List) {
	t.Root.render(out)
}
