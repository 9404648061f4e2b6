// Copyright © 2013-2024 Galvanized Logic Inc.

package lin

import "testing"

func qClose(q *Q, want Q) bool {
	return closeEnough(q.X, want.X) && closeEnough(q.Y, want.Y) &&
		closeEnough(q.Z, want.Z) && closeEnough(q.W, want.W)
}

func TestQSetAa(t *testing.T) {
	t.Run("zero axis collapses to identity", func(t *testing.T) {
		q := (&Q{}).SetAa(0, 0, 0, Rad(45))
		if !qClose(q, Q{X: 0, Y: 0, Z: 0, W: 1}) {
			t.Fatalf("SetAa(zero axis) = %+v, want identity", q)
		}
	})

	t.Run("180 degrees about X", func(t *testing.T) {
		q := (&Q{}).SetAa(1, 0, 0, Rad(180))
		if !qClose(q, Q{X: 1, Y: 0, Z: 0, W: 0}) {
			t.Fatalf("SetAa(X, 180) = %+v, want {1 0 0 0}", q)
		}
	})
}

func TestQMult(t *testing.T) {
	t.Run("identity leaves q unchanged", func(t *testing.T) {
		q := (&Q{}).SetAa(0, 1, 0, Rad(30))
		identity := &Q{W: 1}
		want := *q
		q.Mult(q, identity)
		if !qClose(q, want) {
			t.Fatalf("Mult(q, I) = %+v, want %+v", q, want)
		}
	})

	t.Run("composing a rotation with its inverse is identity", func(t *testing.T) {
		q := (&Q{}).SetAa(0, 0, 1, Rad(60))
		inv := (&Q{}).Inv(q)
		q.Mult(q, inv)
		if !qClose(q, Q{X: 0, Y: 0, Z: 0, W: 1}) {
			t.Fatalf("q*Inv(q) = %+v, want identity", q)
		}
	})
}

func TestQInv(t *testing.T) {
	q := &Q{X: 1, Y: 2, Z: 3, W: 4}
	inv := (&Q{}).Inv(q)
	want := Q{X: -1, Y: -2, Z: -3, W: 4}
	if !qClose(inv, want) {
		t.Fatalf("Inv() = %+v, want %+v", inv, want)
	}
}
