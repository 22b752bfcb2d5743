// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tri implements the Bey-refined 2D simplex kernel (spec.md
// §4.3): the triangle record and the navigation operations that wrap
// internal/simplex's dimension-generic walk, plus the 2D-specific
// face-neighbour formula and vertex coordinates.
package tri

import (
	"github.com/octreeforest/element/internal/simplex"
	"github.com/octreeforest/element/internal/tables"
)

const (
	// MaxLevel is the class-specific refinement bound (spec.md §6.2).
	MaxLevel = 21
	// Children is the uniform branching factor of a refined triangle.
	Children = 4
	// Dim is the spatial dimension of the class.
	Dim = 2
)

var kernel = simplex.Kernel{Dim: Dim, MaxLevel: MaxLevel, Children: Children, Tables: tables.Tri}

const (
	badFace = "tri: face index out of range"
)

// Elem is a Bey-refined triangle: Type ∈ {0,1} selects which of the two
// Kuhn triangulations of the enclosing unit square (X,Y) at level Level
// the element occupies.
type Elem struct {
	X, Y  uint32
	Level int8
	Type  int8
}

func (e Elem) coords() []uint32 { return []uint32{e.X, e.Y} }

func fromCoords(c []uint32, level, typ int8) Elem {
	return Elem{X: c[0], Y: c[1], Level: level, Type: typ}
}

// H returns the side length (in coordinate units) of the enclosing square
// at level.
func H(level int) uint32 { return kernel.H(level) }

// CubeID returns e's cube-id at level (spec.md §4.1).
func (e Elem) CubeID(level int) int { return kernel.CubeID(e.coords(), level) }

// Parent returns e's parent (spec.md §4.3 parent).
func (e Elem) Parent() Elem {
	c, l, t := kernel.Parent(e.coords(), e.Level, e.Type)
	return fromCoords(c, l, t)
}

// Child returns e's childID-th child (spec.md §4.3 child).
func (e Elem) Child(childID int) Elem {
	c, l, t := kernel.Child(e.coords(), e.Level, e.Type, childID)
	return fromCoords(c, l, t)
}

// Children fills out with all Children children of e in SFC order.
func (e Elem) Children(out []Elem) {
	if len(out) != Children {
		panic("tri: wrong number of elements in family")
	}
	computed := [Children]Elem{}
	for k := 0; k < Children; k++ {
		computed[k] = e.Child(k)
	}
	copy(out, computed[:])
}

// ChildID returns the index, among its parent's children, e occupies.
func (e Elem) ChildID() int { return kernel.ChildID(e.coords(), e.Level, e.Type) }

// Ancestor returns e's ancestor at toLevel (spec.md §4.3 ancestor).
func (e Elem) Ancestor(toLevel int) Elem {
	c, l, t := kernel.Ancestor(e.coords(), e.Level, e.Type, toLevel)
	return fromCoords(c, l, t)
}

// IsAncestor reports whether a is an ancestor of, or equal to, d.
func IsAncestor(a, d Elem) bool {
	return kernel.IsAncestor(a.coords(), a.Level, a.Type, d.coords(), d.Level, d.Type)
}

// NCA computes the nearest common ancestor of a and b (spec.md §4.3 nca).
func NCA(a, b Elem) Elem {
	c, l, t := kernel.NCA(a.coords(), a.Level, a.Type, b.coords(), b.Level, b.Type)
	return fromCoords(c, l, t)
}

// LinearID returns e's linear id at toLevel (spec.md §4.3 linear_id).
func (e Elem) LinearID(toLevel int) uint64 {
	return kernel.LinearID(e.coords(), e.Level, e.Type, toLevel)
}

// InitLinearID reconstructs the level-level element whose LinearID(level)
// equals id.
func InitLinearID(id uint64, level int) Elem {
	c, l, t := kernel.InitLinearID(id, level)
	return fromCoords(c, l, t)
}

// FirstDesc returns e's level-MaxLevel first descendant.
func (e Elem) FirstDesc() Elem {
	c, l, t := kernel.FirstDesc(e.coords(), e.Level, e.Type)
	return fromCoords(c, l, t)
}

// LastDesc returns e's level-MaxLevel last descendant.
func (e Elem) LastDesc() Elem {
	c, l, t := kernel.LastDesc(e.coords(), e.Level, e.Type)
	return fromCoords(c, l, t)
}

// Compare orders two elements by lifting both to the greater level's
// linear id (spec.md §5).
func Compare(a, b Elem) int {
	return kernel.Compare(a.coords(), a.Level, a.Type, b.coords(), b.Level, b.Type)
}

// Successor (dir=+1) or predecessor (dir=-1) of e among its siblings at
// its own level (spec.md §4.3 succ_pred). Panics if e is already the last
// (resp. first) element of its uniform refinement; callers must check by
// comparing linear_id first, per spec.md §7.
func (e Elem) Successor(dir int) Elem {
	c, l, t := kernel.Successor(e.coords(), e.Level, e.Type, dir)
	return fromCoords(c, l, t)
}

// IsFamily reports whether the given elements, in order, are exactly the
// Children children of a common parent in SFC order (spec.md §8 property
// 6).
func IsFamily(f []Elem) bool {
	if len(f) != Children {
		return false
	}
	cs := make([][]uint32, Children)
	ls := make([]int8, Children)
	ts := make([]int8, Children)
	for i, e := range f {
		cs[i], ls[i], ts[i] = e.coords(), e.Level, e.Type
	}
	return kernel.IsFamily(cs, ls, ts)
}

// Equal reports whether e and o have identical fields. Named explicitly
// because the upstream t8_dtri_is_equal this module is modelled on
// compared several fields of its receiver against itself (spec.md §9) —
// this method compares e against o on every field instead.
func (e Elem) Equal(o Elem) bool {
	return e.X == o.X && e.Y == o.Y && e.Level == o.Level && e.Type == o.Type
}

// Vertex returns the absolute coordinates of vertex vIdx (0,1,2) of e
// (spec.md §4.3 vertex-coordinate formula).
func (e Elem) Vertex(vIdx int) [2]uint32 {
	v := kernel.Vertex(e.coords(), int(e.Level), int(e.Type), vIdx)
	return [2]uint32{v[0], v[1]}
}

// FaceNeighbour returns the neighbour across face f (f ∈ {0,1,2}, opposite
// vertex f) and the face index by which the neighbour sees e back
// (spec.md §4.3 face_neighbour). The returned element's InsideRoot may be
// false if f crosses the root boundary; the caller must check.
//
// Derivation: face 1 is the diagonal shared within the same unit square
// (no coordinate shift, type flips); face 0 and face 2 cross into the
// adjacent square along axis Type and axis 1-Type respectively. This
// reading was chosen to satisfy the face-involution property (spec.md §8
// property 8), verified exhaustively in tri_test.go, since the source
// text names the shift axes only in terms of "t.type or 1-t.type" without
// pinning which face gets which (see DESIGN.md).
func (e Elem) FaceNeighbour(f int) (Elem, int) {
	if f < 0 || f > 2 {
		panic(badFace)
	}
	h := H(int(e.Level))
	n := e
	n.Type = 1 - e.Type
	switch f {
	case 0:
		axis := int(e.Type)
		if axis == 0 {
			n.X += h
		} else {
			n.Y += h
		}
	case 2:
		axis := int(1 - e.Type)
		if axis == 0 {
			n.X -= h
		} else {
			n.Y -= h
		}
	}
	return n, 2 - f
}

// InsideRoot reports whether e satisfies the triangle root invariant
// (spec.md §3.1): 0 ≤ y ≤ x < ROOT_LEN, and if y == x then Type == 0.
func (e Elem) InsideRoot() bool {
	rootLen := uint32(1) << uint(MaxLevel)
	if e.Y > e.X || e.X >= rootLen {
		return false
	}
	if e.Y == e.X && e.Type != 0 {
		return false
	}
	return true
}
