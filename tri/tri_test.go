// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tri

import "testing"

// TestTriS1 checks spec.md scenario Tri.S1.
func TestTriS1(t *testing.T) {
	e := Elem{Level: 0, Type: 0}
	rootLen := uint32(1) << uint(MaxLevel)

	c0 := e.Child(0)
	if want := (Elem{Level: 1, Type: 0, X: 0, Y: 0}); c0 != want {
		t.Fatalf("Child(0) = %+v, want %+v", c0, want)
	}
	c1 := e.Child(1)
	if want := (Elem{Level: 1, Type: 0, X: rootLen / 2, Y: 0}); c1 != want {
		t.Fatalf("Child(1) = %+v, want %+v", c1, want)
	}
	c3 := e.Child(3)
	if want := (Elem{Level: 1, Type: 1, X: rootLen / 2, Y: 0}); c3 != want {
		t.Fatalf("Child(3) = %+v, want %+v", c3, want)
	}
}

func TestParentChildRoundTrip(t *testing.T) {
	for typ := int8(0); typ < 2; typ++ {
		e := Elem{Type: typ}
		for childID := 0; childID < Children; childID++ {
			c := e.Child(childID)
			if p := c.Parent(); p != e {
				t.Fatalf("type %d: Child(%d).Parent() = %+v, want %+v", typ, childID, p, e)
			}
			if got := c.ChildID(); got != childID {
				t.Fatalf("type %d: Child(%d).ChildID() = %d", typ, childID, got)
			}
		}
	}
}

// TestTriS2 checks spec.md scenario Tri.S2.
func TestTriS2(t *testing.T) {
	e := InitLinearID(5, 2)
	if got := e.LinearID(2); got != 5 {
		t.Fatalf("LinearID(InitLinearID(5,2)) = %d, want 5", got)
	}
}

func TestLinearIDRoundTrip(t *testing.T) {
	const depth = 5
	var walk func(e Elem, remaining int)
	walk = func(e Elem, remaining int) {
		id := e.LinearID(int(e.Level))
		got := InitLinearID(id, int(e.Level))
		if got != e {
			t.Fatalf("InitLinearID(LinearID(%+v)) = %+v", e, got)
		}
		if remaining == 0 {
			return
		}
		for k := 0; k < Children; k++ {
			walk(e.Child(k), remaining-1)
		}
	}
	// Linear ids are relative to the type-0 root, which InitLinearID
	// always starts from.
	walk(Elem{Type: 0}, depth)
}

func TestIsFamily(t *testing.T) {
	for typ := int8(0); typ < 2; typ++ {
		e := Elem{Type: typ}
		f := make([]Elem, Children)
		e.Children(f)
		if !IsFamily(f) {
			t.Fatalf("type %d: genuine family rejected", typ)
		}
		broken := append([]Elem(nil), f...)
		broken[0], broken[1] = broken[1], broken[0]
		if IsFamily(broken) {
			t.Fatalf("type %d: misordered family accepted", typ)
		}
	}
}

func TestFaceInvolution(t *testing.T) {
	for typ := int8(0); typ < 2; typ++ {
		e := Elem{Type: typ, X: 4, Y: 2, Level: int8(MaxLevel - 2)}
		for f := 0; f < 3; f++ {
			n, f2 := e.FaceNeighbour(f)
			if !n.InsideRoot() {
				continue
			}
			back, fBack := n.FaceNeighbour(f2)
			if back != e || fBack != f {
				t.Fatalf("type %d face %d: involution failed, got (%+v, %d), want (%+v, %d)", typ, f, back, fBack, e, f)
			}
		}
	}
}

func TestEqual(t *testing.T) {
	a := Elem{X: 1, Y: 2, Level: 3, Type: 1}
	b := a
	if !a.Equal(b) {
		t.Fatalf("Equal should be true for identical elements")
	}
	b.Y = 5
	if a.Equal(b) {
		t.Fatalf("Equal should be false when Y differs")
	}
}

func TestNCAIsAncestor(t *testing.T) {
	e := Elem{Type: 0}
	a := e.Child(0).Child(2)
	b := e.Child(0).Child(1)
	n := NCA(a, b)
	if !IsAncestor(n, a) || !IsAncestor(n, b) {
		t.Fatalf("NCA %+v not ancestor of both", n)
	}
}
