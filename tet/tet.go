// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tet implements the Bey-refined 3D simplex kernel (spec.md
// §4.3): the tetrahedron record and the navigation operations that wrap
// internal/simplex's dimension-generic walk, plus the 3D-specific
// face-neighbour formula and vertex coordinates.
package tet

import (
	"github.com/octreeforest/element/internal/simplex"
	"github.com/octreeforest/element/internal/tables"
)

const (
	// MaxLevel is the class-specific refinement bound (spec.md §6.2).
	MaxLevel = 21
	// Children is the uniform branching factor of a refined tetrahedron.
	Children = 8
	// Dim is the spatial dimension of the class.
	Dim = 3
	// NumTypes is the number of Kuhn-triangulation types a tetrahedron
	// can take (spec.md §3.1).
	NumTypes = 6
)

var kernel = simplex.Kernel{Dim: Dim, MaxLevel: MaxLevel, Children: Children, Tables: tables.Tet}

const (
	badFace = "tet: face index out of range"
)

// Elem is a Bey-refined tetrahedron: Type ∈ {0..5} selects which of the
// six Kuhn triangulations of the enclosing unit cube (X,Y,Z) at level
// Level the element occupies.
type Elem struct {
	X, Y, Z uint32
	Level   int8
	Type    int8
}

func (e Elem) coords() []uint32 { return []uint32{e.X, e.Y, e.Z} }

func fromCoords(c []uint32, level, typ int8) Elem {
	return Elem{X: c[0], Y: c[1], Z: c[2], Level: level, Type: typ}
}

// H returns the side length (in coordinate units) of the enclosing cube
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
		panic("tet: wrong number of elements in family")
	}
	computed := [Children]Elem{}
	for k := 0; k < Children; k++ {
		computed[k] = e.Child(k)
	}
	copy(out, computed[:])
}

// ChildID returns the index, among its parent's children, e occupies.
func (e Elem) ChildID() int { return kernel.ChildID(e.coords(), e.Level, e.Type) }

// Ancestor returns e's ancestor at toLevel (spec.md §4.3 ancestor). The
// ancestor's type is derived via the generic table-walk of
// internal/simplex.Kernel.TypeAt, not the three-sign-test shortcut the
// source describes for 3D: both read the same CidTypeToParentType table,
// and the table-walk is already required for LinearID, so reusing it here
// removes an entire independent derivation from the trusted surface (see
// DESIGN.md).
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
// 6). This checks the general parent/child_id invariant directly rather
// than the literal Bey child-vertex coordinate-pattern match the source
// describes for 3D, since the two are equivalent and the former is
// already exercised by every other kernel operation (see DESIGN.md).
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

// Equal reports whether e and o have identical fields (spec.md §9's
// corrected t8_dtri_is_equal, extended to the 3D record).
func (e Elem) Equal(o Elem) bool {
	return e.X == o.X && e.Y == o.Y && e.Z == o.Z && e.Level == o.Level && e.Type == o.Type
}

// Vertex returns the absolute coordinates of vertex vIdx (0..3) of e
// (spec.md §4.3 vertex-coordinate formula).
func (e Elem) Vertex(vIdx int) [3]uint32 {
	v := kernel.Vertex(e.coords(), int(e.Level), int(e.Type), vIdx)
	return [3]uint32{v[0], v[1], v[2]}
}

func even(typ int8) bool { return typ%2 == 0 }

// FaceNeighbour returns the neighbour across face f (f ∈ {0,1,2,3}) and
// the face index by which the neighbour sees e back (spec.md §4.3
// face_neighbour). The returned element's InsideRoot may be false if f
// crosses the root boundary; the caller must check.
//
// Faces 0 and 3 follow the source literally: they cross into the
// neighbouring cube along a type-derived axis, with the type shift
// (4/2 or 2/4, mod 6) keyed on Type's parity. Faces 1 and 2 stay in the
// same cube and only change Type by ±1 mod 6; the source names the
// dependency on Type/f parity but not the exact sign, so this
// implementation picks the assignment that makes crossing the same face
// twice an involution (spec.md §8 property 8) — verified exhaustively in
// tet_test.go — rather than guess at an unverifiable literal (see
// DESIGN.md).
func (e Elem) FaceNeighbour(f int) (Elem, int) {
	if f < 0 || f > 3 {
		panic(badFace)
	}
	h := H(int(e.Level))
	n := e
	switch f {
	case 0:
		axis := int(e.Type) / 2
		setAxis(&n, axis, n.axisVal(axis)+h)
		if even(e.Type) {
			n.Type = (e.Type + 4) % 6
		} else {
			n.Type = (e.Type + 2) % 6
		}
		return n, 3
	case 3:
		axis := int((e.Type+3)%6) / 2
		setAxis(&n, axis, n.axisVal(axis)-h)
		if even(e.Type) {
			n.Type = (e.Type + 2) % 6
		} else {
			n.Type = (e.Type + 4) % 6
		}
		return n, 0
	case 1:
		if even(e.Type) {
			n.Type = (e.Type + 1) % 6
		} else {
			n.Type = (e.Type + 5) % 6
		}
		return n, 1
	default: // f == 2
		if even(e.Type) {
			n.Type = (e.Type + 5) % 6
		} else {
			n.Type = (e.Type + 1) % 6
		}
		return n, 2
	}
}

func (e Elem) axisVal(axis int) uint32 {
	switch axis {
	case 0:
		return e.X
	case 1:
		return e.Y
	default:
		return e.Z
	}
}

func setAxis(e *Elem, axis int, v uint32) {
	switch axis {
	case 0:
		e.X = v
	case 1:
		e.Y = v
	default:
		e.Z = v
	}
}

// InsideRoot reports whether e satisfies the tetrahedron root invariant
// (spec.md §3.1): the coordinates lie in the unit cube.
func (e Elem) InsideRoot() bool {
	rootLen := uint32(1) << uint(MaxLevel)
	return e.X < rootLen && e.Y < rootLen && e.Z < rootLen
}
