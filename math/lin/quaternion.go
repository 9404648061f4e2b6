// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "math"

// Q is a unit quaternion tracking an orientation/rotation. Quaternions
// compose well under multiplication but, like matrices, are not
// commutative: q.Mult(a, b) is not q.Mult(b, a).
type Q struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Mult multiplies quaternions r and s, applying the rotation of s to r, and
// stores the result in q. It is safe to call with q == r, q == s, or both.
func (q *Q) Mult(r, s *Q) *Q {
	x := r.W*s.X + r.X*s.W - r.Y*s.Z + r.Z*s.Y
	y := r.W*s.Y + r.X*s.Z + r.Y*s.W - r.Z*s.X
	z := r.W*s.Z - r.X*s.Y + r.Y*s.X + r.Z*s.W
	w := r.W*s.W - r.X*s.X - r.Y*s.Y - r.Z*s.Z
	q.X, q.Y, q.Z, q.W = x, y, z, w
	return q
}

// Inv sets q to the inverse of rotation r. For a unit quaternion the
// inverse is the conjugate. The updated q is returned.
func (q *Q) Inv(r *Q) *Q {
	q.X, q.Y, q.Z, q.W = -r.X, -r.Y, -r.Z, r.W
	return q
}

// SetAa sets q to the rotation described by the given axis (ax, ay, az) and
// angle in radians, setting q to the identity rotation if the axis has zero
// length. The updated q is returned.
//
// See http://www.j3d.org/matrix_faq/matrfaq_latest.html#Q56
func (q *Q) SetAa(ax, ay, az, angle float64) *Q {
	axisLenSqr := ax*ax + ay*ay + az*az
	if axisLenSqr == 0 {
		q.X, q.Y, q.Z, q.W = 0, 0, 0, 1
		return q
	}
	s := math.Sin(angle*0.5) / math.Sqrt(axisLenSqr)
	q.X, q.Y, q.Z, q.W = ax*s, ay*s, az*s, math.Cos(angle*0.5)
	return q
}
