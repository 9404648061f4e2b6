// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

// light.go: a render-side light record, distinct from any scene-graph Light
// component -- the scene package fills these in once per frame from whatever
// light components are active, and Pass carries up to three of them to the
// device as uniform data.

// Light is a single point/directional light's GPU-facing data.
type Light struct {
	Position  [3]float32
	Kind      uint32 // 0 = directional, 1 = point.
	Color     [3]float32
	Intensity float32
}

// reset clears a light back to its zero (off) value.
func (l *Light) reset() {
	*l = Light{}
}
