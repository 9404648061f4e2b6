// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package lin provides the vector, quaternion and matrix math the engine
// needs to place, orient and project entities in 3D space. It only keeps the
// operations actually exercised by the scene graph, skeleton and camera code;
// see DESIGN.md for what was trimmed and why.
package lin

import "math"

// degToRad converts degrees to radians. 2*Pi radians is 360 degrees.
const degToRad float64 = math.Pi * 2 / 360.0

// Rad converts degrees to radians.
func Rad(deg float64) float64 { return deg * degToRad }
