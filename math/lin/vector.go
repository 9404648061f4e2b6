// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "math"

// V3 is a 3 element vector, also usable as a point in space.
type V3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MultQ rotates vector a by quaternion q, storing the result in v and
// returning v. It is safe to call with v == a.
//
// Based on the faster-than-the-textbook-formula approach described at
// http://molecularmusings.wordpress.com/2013/05/24/a-faster-quaternion-vector-multiplication/
func (v *V3) MultQ(a *V3, q *Q) *V3 {
	cx, cy, cz := 2*(q.Y*a.Z-q.Z*a.Y), 2*(q.Z*a.X-q.X*a.Z), 2*(q.X*a.Y-q.Y*a.X)
	dx, dy, dz := q.Y*cz-q.Z*cy, q.Z*cx-q.X*cz, q.X*cy-q.Y*cx
	v.X, v.Y, v.Z = a.X+q.W*cx+dx, a.Y+q.W*cy+dy, a.Z+q.W*cz+dz
	return v
}

// Unit scales v so that its length is 1, leaving v unchanged if it is
// already the zero vector. The updated v is returned.
func (v *V3) Unit() *V3 {
	lenSqr := v.X*v.X + v.Y*v.Y + v.Z*v.Z
	if lenSqr == 0 {
		return v
	}
	inv := 1 / math.Sqrt(lenSqr)
	v.X, v.Y, v.Z = v.X*inv, v.Y*inv, v.Z*inv
	return v
}
