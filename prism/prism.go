// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prism implements the triangular-prism kernel (spec.md §4.4):
// the tensor product of a tri.Elem and an internal/line.Elem sharing one
// level. Every structural operation decomposes into one call per factor,
// except Successor, which must carry overflow from the triangle factor
// into the line factor.
package prism

import (
	"github.com/octreeforest/element/internal/line"
	"github.com/octreeforest/element/tri"
)

const (
	// MaxLevel is the class-specific refinement bound (spec.md §6.2).
	MaxLevel = tri.MaxLevel
	// Children is the uniform branching factor of a refined prism: 4
	// triangle children times 2 line children.
	Children = 8
	// Dim is the spatial dimension of the class.
	Dim = 3
)

const (
	badChildID = "prism: child id out of range"
	badVertex  = "prism: vertex index out of range"
)

// Elem is a triangular prism: the tensor product of a base triangle and a
// vertical line segment, sharing Level.
type Elem struct {
	Tri  tri.Elem
	Line line.Elem
}

// Level returns the shared refinement level of the two factors.
func (e Elem) Level() int8 { return e.Tri.Level }

// Parent calls parent on both factors independently (spec.md §4.4
// parent).
func (e Elem) Parent() Elem {
	return Elem{Tri: e.Tri.Parent(), Line: e.Line.Parent()}
}

// Child returns e's childID-th child. The mapping childID -> (tri child,
// line child) is the Morton order on the product with the triangle
// running faster than the vertical direction: triChild = childID mod 4,
// lineChild = childID / 4 (spec.md §4.4 child).
func (e Elem) Child(childID int) Elem {
	if childID < 0 || childID >= Children {
		panic(badChildID)
	}
	triChild := childID % tri.Children
	lineChild := childID / tri.Children
	return Elem{Tri: e.Tri.Child(triChild), Line: e.Line.Child(lineChild)}
}

// Children fills out with all Children children of e in SFC order.
func (e Elem) Children(out []Elem) {
	if len(out) != Children {
		panic("prism: wrong number of elements in family")
	}
	computed := [Children]Elem{}
	for k := 0; k < Children; k++ {
		computed[k] = e.Child(k)
	}
	copy(out, computed[:])
}

// ChildID returns the index, among its parent's children, e occupies,
// inverting Child's triChild + tri.Children*lineChild packing.
func (e Elem) ChildID() int {
	return e.Line.ChildID()*tri.Children + e.Tri.ChildID()
}

// LinearID returns the prism's linear id at toLevel: the tensor pairing
// id = lineID * CHILDREN_tri^toLevel + triID, where triID is the
// triangle factor's own linear id and lineID the line factor's, each at
// toLevel. The upstream source's prism linear_id asserts and returns
// without a computed value (spec.md §9 Open Question); this is this
// module's defining choice, bijective onto [0, 8^toLevel) and agreeing
// with Child's index packing at every level (see DESIGN.md). Verify
// against a defining test vector before relying on persisted linear ids
// across a version boundary.
func (e Elem) LinearID(toLevel int) uint64 {
	triPow := uint64(1)
	base := uint64(tri.Children)
	for i := 0; i < toLevel; i++ {
		triPow *= base
	}
	return e.Line.LinearID(toLevel)*triPow + e.Tri.LinearID(toLevel)
}

// InitLinearID is the inverse of LinearID at level.
func InitLinearID(id uint64, level int) Elem {
	triPow := uint64(1)
	base := uint64(tri.Children)
	for i := 0; i < level; i++ {
		triPow *= base
	}
	lineID := id / triPow
	triID := id % triPow
	return Elem{Tri: tri.InitLinearID(triID, level), Line: line.InitLinearID(lineID, level)}
}

// Compare orders two prisms by lifting both to the greater level's
// linear id (spec.md §5).
func Compare(a, b Elem) int {
	lvl := a.Level()
	if b.Level() > lvl {
		lvl = b.Level()
	}
	ia, ib := a.LinearID(int(lvl)), b.LinearID(int(lvl))
	switch {
	case ia < ib:
		return -1
	case ia > ib:
		return 1
	default:
		return 0
	}
}

// Successor (dir=+1) or predecessor (dir=-1) of e among its siblings at
// its own level: the coupled carry discipline of spec.md §4.4. Increment
// (or decrement) the triangle factor's child id; on overflow, reset the
// triangle to its first (resp. last) child and step the line factor; on
// compound overflow (both factors simultaneously exhausted), ascend one
// level, recurse on the parent, then descend to the appropriate child of
// the result. Panics if e is already the last (resp. first) element of
// its uniform refinement; callers must check by comparing linear_id
// first, per spec.md §7.
func (e Elem) Successor(dir int) Elem {
	triID := e.Tri.ChildID()
	lineID := e.Line.ChildID()
	nextTri := triID + dir
	if nextTri >= 0 && nextTri < tri.Children {
		return Elem{Tri: e.Tri.Parent().Child(nextTri), Line: e.Line}
	}
	nextLine := lineID + dir
	triEdge := 0
	if dir < 0 {
		triEdge = tri.Children - 1
	}
	if nextLine >= 0 && nextLine < line.Children {
		return Elem{Tri: e.Tri.Parent().Child(triEdge), Line: e.Line.Parent().Child(nextLine)}
	}
	p := e.Parent().Successor(dir)
	lineEdge := 0
	if dir < 0 {
		lineEdge = line.Children - 1
	}
	return Elem{Tri: p.Tri.Child(triEdge), Line: p.Line.Child(lineEdge)}
}

// IsFamily reports whether the given elements, in order, are exactly the
// Children children of a common parent in SFC order.
func IsFamily(f []Elem) bool {
	if len(f) != Children {
		return false
	}
	p := f[0].Parent()
	for i := 1; i < Children; i++ {
		if f[i].Parent() != p {
			return false
		}
	}
	for i := 0; i < Children; i++ {
		if f[i].ChildID() != i {
			return false
		}
	}
	return true
}

// Vertex returns the absolute coordinates of corner v (0..5) of e: v in
// [0,3) are the base triangle's vertices at the line factor's low face,
// v in [3,6) the same triangle vertices at the line factor's high face.
// The source's vertex_coords also numbers apex vertices 6..8, but a
// triangular prism has exactly 6 geometric corners; no construction in
// this module's source material resolves what a 7th-9th vertex would
// denote, so this method covers only the well-defined 6 (see DESIGN.md).
func (e Elem) Vertex(v int) [3]uint32 {
	if v < 0 || v >= 6 {
		panic(badVertex)
	}
	triV := e.Tri.Vertex(v % 3)
	z := e.Line.X
	if v >= 3 {
		z += line.H(int(e.Level()))
	}
	return [3]uint32{triV[0], triV[1], z}
}
