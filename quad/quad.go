// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quad implements the axis-aligned Morton kernel for 2D
// orthotopes (spec.md §4.2): parent, child, linear id and successor all
// reduce to bit operations on the Morton curve in package sfc. A quad has
// no type discriminant.
package quad

import (
	"math/bits"

	"github.com/octreeforest/element/sfc"
)

const (
	// MaxLevel is the class-specific refinement bound (spec.md §6.2).
	MaxLevel = 30
	// Children is the uniform branching factor of a refined quad.
	Children = 4
	// Dim is the spatial dimension of the class.
	Dim = 2
)

const (
	badLevel   = "quad: level out of range"
	badChildID = "quad: child id out of range"
	badRoot    = "quad: operation on level-0 element"
)

// Elem is a 2D axis-aligned element: the square [x,x+h)×[y,y+h) of the
// unit square at level Level, where h = 1 << (MaxLevel - Level).
//
// Surround carries the face-neighbour metadata spec.md §4.2 describes as
// meaningful only when a quad is embedded as the face of a hex tree; this
// package copies it verbatim on every operation and never interprets it.
type Elem struct {
	X, Y     uint32
	Level    int8
	Surround [4]int32
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
	return sfc.CubeID2(e.X, e.Y, uint(MaxLevel-level))
}

// Parent returns e's parent; its Surround is copied unchanged.
func (e Elem) Parent() Elem {
	if e.Level <= 0 {
		panic(badRoot)
	}
	h := H(int(e.Level))
	return Elem{X: e.X &^ h, Y: e.Y &^ h, Level: e.Level - 1, Surround: e.Surround}
}

// Child returns e's childID-th child (spec.md §4.2); its Surround is
// copied unchanged.
func (e Elem) Child(childID int) Elem {
	if childID < 0 || childID >= Children {
		panic(badChildID)
	}
	h := H(int(e.Level) + 1)
	x, y := e.X, e.Y
	if childID&1 != 0 {
		x |= h
	}
	if childID&2 != 0 {
		y |= h
	}
	return Elem{X: x, Y: y, Level: e.Level + 1, Surround: e.Surround}
}

// Children fills out with all Children children of e in SFC order. out[0]
// may alias e, per spec.md §5's quad-kernel aliasing exception: every
// child is computed into a local before any element of out is written.
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

// curve is the Morton curve for the given level.
func curve(level int) sfc.Morton2D { return sfc.Morton2D{Level: level} }

func path(level int, x, y uint32) [2]uint32 {
	shift := uint(MaxLevel - level)
	return [2]uint32{x >> shift, y >> shift}
}

// LinearID returns e's linear id at toLevel (spec.md §4.3 linear_id).
func (e Elem) LinearID(toLevel int) uint64 {
	if toLevel >= int(e.Level) {
		id := curve(int(e.Level)).Curve(path(int(e.Level), e.X, e.Y))
		return id << uint(Dim*(toLevel-int(e.Level)))
	}
	a := e.Ancestor(toLevel)
	return curve(toLevel).Curve(path(toLevel, a.X, a.Y))
}

// Ancestor returns e's ancestor at toLevel (spec.md §4.3 ancestor,
// specialized to orthotopes: no type to derive).
func (e Elem) Ancestor(toLevel int) Elem {
	if toLevel < 0 || toLevel > int(e.Level) {
		panic(badLevel)
	}
	h := H(toLevel)
	mask := ^(h - 1)
	return Elem{X: e.X & mask, Y: e.Y & mask, Level: int8(toLevel), Surround: e.Surround}
}

// InitLinearID reconstructs the level-level element whose LinearID(level)
// equals id.
func InitLinearID(id uint64, level int) Elem {
	v := curve(level).Space(id)
	shift := uint(MaxLevel - level)
	return Elem{X: v[0] << shift, Y: v[1] << shift, Level: int8(level)}
}

// FirstDesc returns e's level-MaxLevel first descendant.
func (e Elem) FirstDesc() Elem {
	id := e.LinearID(MaxLevel)
	d := InitLinearID(id, MaxLevel)
	d.Surround = e.Surround
	return d
}

// LastDesc returns e's level-MaxLevel last descendant.
func (e Elem) LastDesc() Elem {
	shift := uint(Dim * (MaxLevel - int(e.Level)))
	id := e.LinearID(int(e.Level))<<shift | (uint64(1)<<shift - 1)
	d := InitLinearID(id, MaxLevel)
	d.Surround = e.Surround
	return d
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
	xor := (a.X ^ b.X) | (a.Y ^ b.Y)
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
	return anc.X == a.X && anc.Y == a.Y
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
		c := sp.Child(childID)
		c.Surround = e.Surround
		return c
	}
	h := H(int(e.Level))
	x, y := e.X, e.Y
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
	return Elem{X: x, Y: y, Level: e.Level, Surround: e.Surround}
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
		if pi.X != p.X || pi.Y != p.Y {
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
