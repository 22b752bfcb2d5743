// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplex

import (
	"math/bits"

	"github.com/octreeforest/element/internal/tables"
)

const (
	badLevel      = "simplex: level out of range"
	badChildID    = "simplex: child id out of range"
	badRootParent = "simplex: parent of level-0 element"
	badSuccessor  = "simplex: successor/predecessor past root; caller must check linear_id first"
)

// Kernel carries the dimension and table set a concrete class (tri or tet)
// binds its navigation methods to. It holds no per-element state: every
// method takes its element's coordinates, level and type explicitly and
// returns a freshly computed result, per spec.md §5 (compute into locals,
// never mutate shared state).
type Kernel struct {
	Dim      int
	MaxLevel int
	Children int
	Tables   *tables.ClassTables
}

// H returns 1 << (MaxLevel - level), the bit that distinguishes a cube-id
// at level.
func (k Kernel) H(level int) uint32 {
	return uint32(1) << uint(k.MaxLevel-level)
}

// CubeID returns the cube-id of coords at level: the bit pattern formed by
// testing bit H(level) of each coordinate (spec.md §4.1). Returns 0 at
// level 0.
func (k Kernel) CubeID(coords []uint32, level int) int {
	if level == 0 {
		return 0
	}
	h := k.H(level)
	cid := 0
	for a, c := range coords {
		if c&h != 0 {
			cid |= 1 << uint(a)
		}
	}
	return cid
}

// TypeAt returns the type coords/curType would have at level, walking
// upward from curLevel with CidTypeToParentType (spec.md §4.1).
func (k Kernel) TypeAt(coords []uint32, curLevel, curType, level int) int {
	typ := curType
	for i := curLevel; i > level; i-- {
		cid := k.CubeID(coords, i)
		typ = k.Tables.CidTypeToParentType[cid][typ]
	}
	return typ
}

func clone(s []uint32) []uint32 {
	return append([]uint32(nil), s...)
}

// Parent computes the parent of (coords, level, typ) (spec.md §4.3 parent).
func (k Kernel) Parent(coords []uint32, level int8, typ int8) ([]uint32, int8, int8) {
	if level <= 0 {
		panic(badRootParent)
	}
	h := k.H(int(level))
	cid := k.CubeID(coords, int(level))
	out := make([]uint32, len(coords))
	for i, c := range coords {
		out[i] = c &^ h
	}
	parentType := k.Tables.CidTypeToParentType[cid][int(typ)]
	return out, level - 1, int8(parentType)
}

// Vertex returns the absolute coordinates of vertex vIdx (0..Dim) of the
// simplex (coords, level, typ), per spec.md §4.3's vertex-coordinate
// formula. Exported for tri/tet's Vertex methods (prism's Vertex reaches
// it through tri).
func (k Kernel) Vertex(coords []uint32, level int, typ int, vIdx int) []uint32 {
	return k.vertex(coords, level, typ, vIdx)
}

func (k Kernel) vertex(coords []uint32, level int, typ int, vIdx int) []uint32 {
	h := k.H(level)
	unit := tables.VertexUnit(k.Dim, typ, vIdx)
	out := make([]uint32, k.Dim)
	for a := range out {
		out[a] = coords[a]
		if unit[a] != 0 {
			out[a] += h
		}
	}
	return out
}

// Child computes child childID of (coords, level, typ) (spec.md §4.3 child).
func (k Kernel) Child(coords []uint32, level int8, typ int8, childID int) ([]uint32, int8, int8) {
	if childID < 0 || childID >= k.Children {
		panic(badChildID)
	}
	bey := k.Tables.IndexToBeyNumber[typ][childID]
	vIdx := k.Tables.BeyIDToVertex[typ][bey]
	var out []uint32
	if vIdx < 0 {
		out = clone(coords)
	} else {
		v := k.vertex(coords, int(level), int(typ), vIdx)
		out = make([]uint32, len(coords))
		for i := range out {
			out[i] = (coords[i] + v[i]) >> 1
		}
	}
	childType := k.Tables.TypeOfChild[typ][bey]
	return out, level + 1, int8(childType)
}

// ChildID returns the index, among its parent's children, that (coords,
// level, typ) occupies.
func (k Kernel) ChildID(coords []uint32, level int8, typ int8) int {
	if level == 0 {
		panic(badRootParent)
	}
	cid := k.CubeID(coords, int(level))
	return k.Tables.TypeCidToIloc[typ][cid]
}

// Ancestor computes the ancestor of (coords, level, typ) at toLevel
// (spec.md §4.3 ancestor), using TypeAt (spec.md §4.1) rather than the
// three-sign-test shortcut described for the 3D case — both read the same
// table data and the table-walk is already part of the specified API
// (see DESIGN.md).
func (k Kernel) Ancestor(coords []uint32, level int8, typ int8, toLevel int) ([]uint32, int8, int8) {
	if toLevel < 0 || toLevel > int(level) {
		panic(badLevel)
	}
	h := k.H(toLevel)
	mask := ^(h - 1)
	out := make([]uint32, len(coords))
	for i, c := range coords {
		out[i] = c & mask
	}
	t := k.TypeAt(coords, int(level), int(typ), toLevel)
	return out, int8(toLevel), int8(t)
}

// IsAncestor reports whether (ac, al, at) is an ancestor of, or equal to,
// (dc, dl, dt).
func (k Kernel) IsAncestor(ac []uint32, al int8, at int8, dc []uint32, dl int8, dt int8) bool {
	if al > dl {
		return false
	}
	c, l, t := k.Ancestor(dc, dl, dt, int(al))
	if l != al || t != at {
		return false
	}
	for i := range ac {
		if ac[i] != c[i] {
			return false
		}
	}
	return true
}

// NCA computes the nearest common ancestor of (c1,l1,t1) and (c2,l2,t2)
// (spec.md §4.3 nca).
func (k Kernel) NCA(c1 []uint32, l1 int8, t1 int8, c2 []uint32, l2 int8, t2 int8) ([]uint32, int8, int8) {
	var xorAll uint32
	for i := range c1 {
		xorAll |= c1[i] ^ c2[i]
	}
	m := bits.Len32(xorAll)
	level := k.MaxLevel - m
	if int(l1) < level {
		level = int(l1)
	}
	if int(l2) < level {
		level = int(l2)
	}
	return k.Ancestor(c1, l1, t1, level)
}

// LinearID computes the linear id of (coords, level, typ) at toLevel
// (spec.md §4.3 linear_id).
func (k Kernel) LinearID(coords []uint32, level int8, typ int8, toLevel int) uint64 {
	if toLevel > int(level) {
		return k.LinearID(coords, level, typ, int(level)) << uint(k.Dim*(toLevel-int(level)))
	}
	if toLevel < int(level) {
		ac, al, at := k.Ancestor(coords, level, typ, toLevel)
		return k.LinearID(ac, al, at, toLevel)
	}
	ilocs := make([]int, level+1)
	curType := int(typ)
	for i := int(level); i >= 1; i-- {
		cid := k.CubeID(coords, i)
		ilocs[i] = k.Tables.TypeCidToIloc[curType][cid]
		curType = k.Tables.CidTypeToParentType[cid][curType]
	}
	var id uint64
	for i := 1; i <= int(level); i++ {
		id = id<<uint(k.Dim) | uint64(ilocs[i])
	}
	return id
}

// InitLinearID is the inverse of LinearID: it reconstructs the element of
// the given level whose LinearID(..., level) equals id (spec.md §4.3
// init_linear_id).
func (k Kernel) InitLinearID(id uint64, level int) ([]uint32, int8, int8) {
	coords := make([]uint32, k.Dim)
	typ := 0
	mask := uint64(k.Children - 1)
	for i := 1; i <= level; i++ {
		shift := uint(k.Dim * (level - i))
		iloc := int((id >> shift) & mask)
		cid := k.Tables.ParentTypeIlocToCid[typ][iloc]
		h := k.H(i)
		for a := 0; a < k.Dim; a++ {
			if cid&(1<<uint(a)) != 0 {
				coords[a] |= h
			}
		}
		typ = k.Tables.ParentTypeIlocToType[typ][iloc]
	}
	return coords, int8(level), int8(typ)
}

// FirstDesc returns the level-MaxLevel first descendant of (coords, level,
// typ).
func (k Kernel) FirstDesc(coords []uint32, level int8, typ int8) ([]uint32, int8, int8) {
	id := k.LinearID(coords, level, typ, k.MaxLevel)
	return k.InitLinearID(id, k.MaxLevel)
}

// LastDesc returns the level-MaxLevel last descendant of (coords, level,
// typ).
func (k Kernel) LastDesc(coords []uint32, level int8, typ int8) ([]uint32, int8, int8) {
	shift := uint(k.Dim * (k.MaxLevel - int(level)))
	id := k.LinearID(coords, level, typ, int(level))<<shift | (uint64(1)<<shift - 1)
	return k.InitLinearID(id, k.MaxLevel)
}

// Compare orders two elements by lifting both to the greater level's
// linear id (spec.md §5).
func (k Kernel) Compare(c1 []uint32, l1 int8, t1 int8, c2 []uint32, l2 int8, t2 int8) int {
	lvl := l1
	if l2 > lvl {
		lvl = l2
	}
	id1 := k.LinearID(c1, l1, t1, int(lvl))
	id2 := k.LinearID(c2, l2, t2, int(lvl))
	switch {
	case id1 < id2:
		return -1
	case id1 > id2:
		return 1
	default:
		return 0
	}
}

// Successor (dir=+1) or predecessor (dir=-1) of (coords, level, typ) among
// its siblings at level (spec.md §4.3 succ_pred). Panics if t is already
// the last (resp. first) element of its uniform refinement; callers must
// check by comparing linear_id first, per spec.md §7.
func (k Kernel) Successor(coords []uint32, level int8, typ int8, dir int) ([]uint32, int8, int8) {
	if level <= 0 {
		panic(badSuccessor)
	}
	cid := k.CubeID(coords, int(level))
	iloc := k.Tables.TypeCidToIloc[typ][cid]
	next := iloc + dir
	if next < 0 || next >= k.Children {
		pc, pl, pt := k.Ancestor(coords, level, typ, int(level)-1)
		spc, spl, spt := k.Successor(pc, pl, pt, dir)
		childID := 0
		if dir < 0 {
			childID = k.Children - 1
		}
		return k.Child(spc, spl, spt, childID)
	}
	parentType := k.Tables.CidTypeToParentType[cid][typ]
	newCid := k.Tables.ParentTypeIlocToCid[parentType][next]
	newType := k.Tables.ParentTypeIlocToType[parentType][next]
	h := k.H(int(level))
	out := clone(coords)
	for a := range out {
		if newCid&(1<<uint(a)) != 0 {
			out[a] |= h
		} else {
			out[a] &^= h
		}
	}
	return out, level, int8(newType)
}

// IsFamily reports whether the given elements, in order, are exactly the
// Children children of a common parent in SFC order (spec.md §4.3
// is_familypv). Unlike the coordinate-pattern match described there, this
// checks the general, class-independent invariant directly: a common
// parent, and child ids 0..Children-1 in order (see DESIGN.md).
func (k Kernel) IsFamily(coordsList [][]uint32, levels []int8, types []int8) bool {
	if len(levels) != k.Children {
		return false
	}
	lvl := levels[0]
	if lvl < 1 {
		return false
	}
	for i := 1; i < k.Children; i++ {
		if levels[i] != lvl {
			return false
		}
	}
	pc, pl, pt := k.Parent(coordsList[0], levels[0], types[0])
	for i := 1; i < k.Children; i++ {
		c, l, t := k.Parent(coordsList[i], levels[i], types[i])
		if l != pl || t != pt {
			return false
		}
		for a := range c {
			if c[a] != pc[a] {
				return false
			}
		}
	}
	for i := 0; i < k.Children; i++ {
		if k.ChildID(coordsList[i], levels[i], types[i]) != i {
			return false
		}
	}
	return true
}
