// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hex implements the axis-aligned Morton kernel for 3D
// orthotopes (spec.md §4.2), the 3-axis analogue of package quad. A hex
// has no type discriminant.
package hex

import (
	"math/bits"

	"github.com/octreeforest/element/sfc"
)

const (
	// MaxLevel is the class-specific refinement bound (spec.md §6.2).
	MaxLevel = 30
	// Children is the uniform branching factor of a refined hex.
	Children = 8
	// Dim is the spatial dimension of the class.
	Dim = 3
)

const (
	badLevel   = "hex: level out of range"
	badChildID = "hex: child id out of range"
	badRoot    = "hex: operation on level-0 element"
)

// Elem is a 3D axis-aligned element: the cube [x,x+h)×[y,y+h)×[z,z+h) of
// the unit cube at level Level, where h = 1 << (MaxLevel - Level).
type Elem struct {
	X, Y, Z uint32
	Level   int8
}

// H returns the side length (in coordinate units) of an element at level.
func H(level int) uint32 {
	return uint32(1) << uint(MaxLevel-level)
}

// CubeID returns e's cube-id at level (spec.md §4.1), 0 at level 0.
func (e Elem) CubeID(level int) uint {
	if level == 0 {
		return 0
	}
	return sfc.CubeID3(e.X, e.Y, e.Z, uint(MaxLevel-level))
}

// Parent returns e's parent.
func (e Elem) Parent() Elem {
	if e.Level <= 0 {
		panic(badRoot)
	}
	h := H(int(e.Level))
	return Elem{X: e.X &^ h, Y: e.Y &^ h, Z: e.Z &^ h, Level: e.Level - 1}
}

// Child returns e's childID-th child (spec.md §4.2).
func (e Elem) Child(childID int) Elem {
	if childID < 0 || childID >= Children {
		panic(badChildID)
	}
	h := H(int(e.Level) + 1)
	x, y, z := e.X, e.Y, e.Z
	if childID&1 != 0 {
		x |= h
	}
	if childID&2 != 0 {
		y |= h
	}
	if childID&4 != 0 {
		z |= h
	}
	return Elem{X: x, Y: y, Z: z, Level: e.Level + 1}
}

// Children fills out with all Children children of e in SFC order.
// out[0] may alias e, per spec.md §5's quad-kernel aliasing exception,
// which this module extends to hex for the same reason: every child is
// computed into a local before any element of out is written.
func (e Elem) Children(out []Elem) {
	if len(out) != Children {
		panic(badChildID)
	}
	computed := [Children]Elem{}
	for k := 0; k < Children; k++ {
		computed[k] = e.Child(k)
	}
	copy(out, computed[:])
}

// ChildID returns the index, among its parent's children, e occupies.
func (e Elem) ChildID() int {
	if e.Level == 0 {
		panic(badRoot)
	}
	return int(e.CubeID(int(e.Level)))
}

func curve(level int) sfc.Morton3D { return sfc.Morton3D{Level: level} }

func path(level int, x, y, z uint32) [3]uint32 {
	shift := uint(MaxLevel - level)
	return [3]uint32{x >> shift, y >> shift, z >> shift}
}

// LinearID returns e's linear id at toLevel (spec.md §4.3 linear_id).
func (e Elem) LinearID(toLevel int) uint64 {
	if toLevel >= int(e.Level) {
		id := curve(int(e.Level)).Curve(path(int(e.Level), e.X, e.Y, e.Z))
		return id << uint(Dim*(toLevel-int(e.Level)))
	}
	a := e.Ancestor(toLevel)
	return curve(toLevel).Curve(path(toLevel, a.X, a.Y, a.Z))
}

// Ancestor returns e's ancestor at toLevel.
func (e Elem) Ancestor(toLevel int) Elem {
	if toLevel < 0 || toLevel > int(e.Level) {
		panic(badLevel)
	}
	h := H(toLevel)
	mask := ^(h - 1)
	return Elem{X: e.X & mask, Y: e.Y & mask, Z: e.Z & mask, Level: int8(toLevel)}
}

// InitLinearID reconstructs the level-level element whose LinearID(level)
// equals id.
func InitLinearID(id uint64, level int) Elem {
	v := curve(level).Space(id)
	shift := uint(MaxLevel - level)
	return Elem{X: v[0] << shift, Y: v[1] << shift, Z: v[2] << shift, Level: int8(level)}
}

// FirstDesc returns e's level-MaxLevel first descendant.
func (e Elem) FirstDesc() Elem {
	return InitLinearID(e.LinearID(MaxLevel), MaxLevel)
}

// LastDesc returns e's level-MaxLevel last descendant.
func (e Elem) LastDesc() Elem {
	shift := uint(Dim * (MaxLevel - int(e.Level)))
	id := e.LinearID(int(e.Level))<<shift | (uint64(1)<<shift - 1)
	return InitLinearID(id, MaxLevel)
}

// Compare orders two elements by lifting both to the greater level's
// linear id (spec.md §5).
func Compare(a, b Elem) int {
	lvl := a.Level
	if b.Level > lvl {
		lvl = b.Level
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

// NCA computes the nearest common ancestor of a and b (spec.md §4.3 nca).
func NCA(a, b Elem) Elem {
	xor := (a.X ^ b.X) | (a.Y ^ b.Y) | (a.Z ^ b.Z)
	m := bits.Len32(xor)
	level := MaxLevel - m
	if int(a.Level) < level {
		level = int(a.Level)
	}
	if int(b.Level) < level {
		level = int(b.Level)
	}
	return a.Ancestor(level)
}

// IsAncestor reports whether a is an ancestor of, or equal to, d.
func IsAncestor(a, d Elem) bool {
	if a.Level > d.Level {
		return false
	}
	anc := d.Ancestor(int(a.Level))
	return anc.X == a.X && anc.Y == a.Y && anc.Z == a.Z
}

// Successor (dir=+1) or predecessor (dir=-1) of e among its siblings at
// its own level. Panics if e is already the last (resp. first) element of
// its uniform refinement; callers must check by comparing linear_id
// first, per spec.md §7.
func (e Elem) Successor(dir int) Elem {
	if e.Level <= 0 {
		panic(badLevel)
	}
	cid := int(e.CubeID(int(e.Level)))
	next := cid + dir
	if next < 0 || next >= Children {
		p := e.Parent()
		sp := p.Successor(dir)
		childID := 0
		if dir < 0 {
			childID = Children - 1
		}
		return sp.Child(childID)
	}
	h := H(int(e.Level))
	x, y, z := e.X, e.Y, e.Z
	if next&1 != 0 {
		x |= h
	} else {
		x &^= h
	}
	if next&2 != 0 {
		y |= h
	} else {
		y &^= h
	}
	if next&4 != 0 {
		z |= h
	} else {
		z &^= h
	}
	return Elem{X: x, Y: y, Z: z, Level: e.Level}
}

// IsFamily reports whether the given elements, in order, are exactly the
// Children children of a common parent in SFC order (spec.md §8 property
// 6, specialized to orthotopes).
func IsFamily(f []Elem) bool {
	if len(f) != Children {
		return false
	}
	lvl := f[0].Level
	if lvl < 1 {
		return false
	}
	p := f[0].Parent()
	for i := 1; i < Children; i++ {
		if f[i].Level != lvl {
			return false
		}
		pi := f[i].Parent()
		if pi.X != p.X || pi.Y != p.Y || pi.Z != p.Z {
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
