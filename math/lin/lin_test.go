// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import (
	"math"
	"testing"
)

func TestRad(t *testing.T) {
	cases := []struct {
		deg, want float64
	}{
		{0, 0},
		{180, math.Pi},
		{360, 2 * math.Pi},
		{90, math.Pi / 2},
	}
	for _, c := range cases {
		if got := Rad(c.deg); !closeEnough(got, c.want) {
			t.Errorf("Rad(%v) = %v, want %v", c.deg, got, c.want)
		}
	}
}

// closeEnough reports whether a and b differ by less than float64 rounding
// noise, used throughout this package's tests instead of an exact ==.
func closeEnough(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
