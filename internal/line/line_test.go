// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package line

import "testing"

func TestParentChildRoundTrip(t *testing.T) {
	e := Elem{X: 0, Level: 0}
	for childID := 0; childID < Children; childID++ {
		c := e.Child(childID)
		if p := c.Parent(); p != e {
			t.Fatalf("Child(%d).Parent() = %v, want %v", childID, p, e)
		}
		if got := c.ChildID(); got != childID {
			t.Fatalf("Child(%d).ChildID() = %d", childID, got)
		}
	}
}

func TestLinearIDRoundTrip(t *testing.T) {
	const depth = 8
	var walk func(e Elem, remaining int)
	walk = func(e Elem, remaining int) {
		id := e.LinearID(int(e.Level))
		got := InitLinearID(id, int(e.Level))
		if got != e {
			t.Fatalf("InitLinearID(LinearID(%v)) = %v", e, got)
		}
		if remaining == 0 {
			return
		}
		for childID := 0; childID < Children; childID++ {
			walk(e.Child(childID), remaining-1)
		}
	}
	walk(Elem{}, depth)
}

func TestMonotoneSFC(t *testing.T) {
	e := Elem{}
	c0 := e.Child(0)
	c1 := e.Child(1)
	if c0.LinearID(int(c0.Level)) >= c1.LinearID(int(c1.Level)) {
		t.Fatalf("Child(0) linear id not < Child(1) linear id")
	}
}

func TestSuccessor(t *testing.T) {
	e := Elem{}.Child(0).Child(0)
	s := e.Successor(1)
	want := e.Parent().Child(1)
	if s != want {
		t.Fatalf("Successor = %v, want %v", s, want)
	}

	// Compound carry: the last child of a level-1 element steps to the
	// first child of that element's next sibling.
	last := Elem{}.Child(0).Child(1)
	s2 := last.Successor(1)
	wantID := last.LinearID(int(last.Level)) + 1
	if got := s2.LinearID(int(s2.Level)); got != wantID {
		t.Fatalf("Successor linear id = %d, want %d", got, wantID)
	}
}

func TestNCA(t *testing.T) {
	a := Elem{}.Child(0).Child(1)
	b := Elem{}.Child(0).Child(0)
	n := NCA(a, b)
	want := Elem{}.Child(0)
	if n != want {
		t.Fatalf("NCA = %v, want %v", n, want)
	}
}

func TestCompare(t *testing.T) {
	a := Elem{}.Child(0)
	b := Elem{}.Child(1)
	if Compare(a, b) >= 0 {
		t.Fatalf("Compare(Child(0), Child(1)) should be negative")
	}
	if Compare(a, a) != 0 {
		t.Fatalf("Compare(a, a) should be 0")
	}
}
