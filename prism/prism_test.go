// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prism

import (
	"testing"

	"github.com/octreeforest/element/internal/line"
	"github.com/octreeforest/element/tri"
)

func TestParentChildRoundTrip(t *testing.T) {
	e := Elem{Tri: tri.Elem{Type: 1}, Line: line.Elem{}}
	for childID := 0; childID < Children; childID++ {
		c := e.Child(childID)
		if p := c.Parent(); p != e {
			t.Fatalf("Child(%d).Parent() = %+v, want %+v", childID, p, e)
		}
		if got := c.ChildID(); got != childID {
			t.Fatalf("Child(%d).ChildID() = %d", childID, got)
		}
	}
}

func TestMonotoneSFC(t *testing.T) {
	e := Elem{Tri: tri.Elem{Type: 0}, Line: line.Elem{}}
	var prev uint64
	for k := 0; k < Children; k++ {
		c := e.Child(k)
		id := c.LinearID(int(c.Level()))
		if k > 0 && id <= prev {
			t.Fatalf("child %d linear id %d not > previous %d", k, id, prev)
		}
		prev = id
	}
}

func TestLinearIDRoundTrip(t *testing.T) {
	const depth = 3
	var walk func(e Elem, remaining int)
	walk = func(e Elem, remaining int) {
		id := e.LinearID(int(e.Level()))
		got := InitLinearID(id, int(e.Level()))
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
	// Linear ids are relative to the type-0 root triangle, which
	// InitLinearID always starts from.
	walk(Elem{Tri: tri.Elem{Type: 0}, Line: line.Elem{}}, depth)
}

func TestIsFamily(t *testing.T) {
	e := Elem{Tri: tri.Elem{Type: 0}, Line: line.Elem{}}
	f := make([]Elem, Children)
	e.Children(f)
	if !IsFamily(f) {
		t.Fatalf("genuine family rejected")
	}
	broken := append([]Elem(nil), f...)
	broken[0], broken[1] = broken[1], broken[0]
	if IsFamily(broken) {
		t.Fatalf("misordered family accepted")
	}
}

// TestSuccessorCarry exercises the three branches of the coupled carry
// discipline (spec.md §4.4): plain increment, single carry into the line
// factor, and compound carry that ascends a level.
func TestSuccessorCarry(t *testing.T) {
	base := Elem{Tri: tri.Elem{Type: 0}, Line: line.Elem{}}.Child(0).Child(0)

	// Plain increment: tri child 0 -> 1, line child unchanged.
	s := base.Successor(1)
	if s.Tri.ChildID() != 1 || s.Line.ChildID() != base.Line.ChildID() {
		t.Fatalf("plain increment: got tri=%d line=%d", s.Tri.ChildID(), s.Line.ChildID())
	}

	// Single carry: tri child 3, line child 0 -> tri resets to 0, line -> 1.
	atEdge := base.Parent().Child(3) // tri child 3, line child 0
	s2 := atEdge.Successor(1)
	if s2.Tri.ChildID() != 0 || s2.Line.ChildID() != 1 {
		t.Fatalf("single carry: got tri=%d line=%d", s2.Tri.ChildID(), s2.Line.ChildID())
	}

	// Compound carry: both factors maxed, ascend and descend to child 0.
	last := base.Parent().Child(7) // tri child 3, line child 1
	if last.ChildID() != Children-1 {
		t.Fatalf("test setup: last.ChildID() = %d, want %d", last.ChildID(), Children-1)
	}
	s3 := last.Successor(1)
	if s3.Tri.ChildID() != 0 || s3.Line.ChildID() != 0 {
		t.Fatalf("compound carry: got tri=%d line=%d, want first child of next sibling", s3.Tri.ChildID(), s3.Line.ChildID())
	}
	if s3.Level() != last.Level() {
		t.Fatalf("compound carry: level changed from %d to %d", last.Level(), s3.Level())
	}
}

func TestVertex(t *testing.T) {
	e := Elem{Tri: tri.Elem{Type: 0}, Line: line.Elem{}}
	low := e.Vertex(0)
	high := e.Vertex(3)
	if low[0] != high[0] || low[1] != high[1] {
		t.Fatalf("Vertex(0) and Vertex(3) should share (x,y): got %v, %v", low, high)
	}
	if high[2] <= low[2] {
		t.Fatalf("Vertex(3).z should exceed Vertex(0).z: got %v, %v", low, high)
	}
}
