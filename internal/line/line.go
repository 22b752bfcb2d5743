// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package line implements the one-dimensional Morton kernel used as the
// vertical factor of the prism product (spec.md §4.4). It has no type
// discriminant and CHILDREN = 2; every operation is the degenerate,
// single-axis case of the quad/hex orthotope kernel.
package line

import "math/bits"

const (
	// MaxLevel matches the prism class's MaxLevel (spec.md §6.2): the
	// line factor shares a level with the triangle factor it is paired
	// with in prism.Elem, so the two must agree on bit budget.
	MaxLevel = 21
	// Children is the uniform branching factor of the line kernel.
	Children = 2
)

const (
	badLevel   = "line: level out of range"
	badChildID = "line: child id out of range"
	badRoot    = "line: operation on level-0 element"
)

// Elem is a one-dimensional element: the interval [x, x+h) of the unit
// line at level Level, where h = 1 << (MaxLevel - Level).
type Elem struct {
	X     uint32
	Level int8
}

// H returns the side length (in coordinate units) of an element at level.
func H(level int) uint32 {
	return uint32(1) << uint(MaxLevel-level)
}

// Parent returns e's parent.
func (e Elem) Parent() Elem {
	if e.Level <= 0 {
		panic(badRoot)
	}
	h := H(int(e.Level))
	return Elem{X: e.X &^ h, Level: e.Level - 1}
}

// Child returns e's childID-th child (0 or 1).
func (e Elem) Child(childID int) Elem {
	if childID < 0 || childID >= Children {
		panic(badChildID)
	}
	h := H(int(e.Level) + 1)
	x := e.X
	if childID == 1 {
		x |= h
	}
	return Elem{X: x, Level: e.Level + 1}
}

// ChildID returns the index, among its parent's two children, e occupies.
func (e Elem) ChildID() int {
	if e.Level == 0 {
		panic(badRoot)
	}
	h := H(int(e.Level))
	if e.X&h != 0 {
		return 1
	}
	return 0
}

// LinearID returns e's linear id at toLevel (spec.md §4.3 linear_id,
// specialized to one axis with no type).
func (e Elem) LinearID(toLevel int) uint64 {
	if toLevel > int(e.Level) {
		return e.LinearID(int(e.Level)) << uint(toLevel-int(e.Level))
	}
	shift := uint(MaxLevel - toLevel)
	return uint64(e.X >> shift)
}

// InitLinearID reconstructs the level-level element whose LinearID(level)
// equals id.
func InitLinearID(id uint64, level int) Elem {
	shift := uint(MaxLevel - level)
	return Elem{X: uint32(id) << shift, Level: int8(level)}
}

// FirstDesc returns e's level-MaxLevel first descendant.
func (e Elem) FirstDesc() Elem {
	return Elem{X: e.X, Level: MaxLevel}
}

// LastDesc returns e's level-MaxLevel last descendant.
func (e Elem) LastDesc() Elem {
	h := H(int(e.Level))
	return Elem{X: e.X | (h - 1), Level: MaxLevel}
}

// Compare orders two elements by lifting both to the greater level's
// linear id.
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

// Successor (dir=+1) or predecessor (dir=-1) of e among its siblings.
// Panics if e is already last (resp. first); callers must check by
// comparing linear_id first, per spec.md §7.
func (e Elem) Successor(dir int) Elem {
	if e.Level <= 0 {
		panic(badLevel)
	}
	cid := e.ChildID()
	next := cid + dir
	if next < 0 || next >= Children {
		return e.Parent().Successor(dir).Child(childAt(dir))
	}
	return e.Parent().Child(next)
}

func childAt(dir int) int {
	if dir < 0 {
		return Children - 1
	}
	return 0
}

// NCA computes the nearest common ancestor of a and b, per the XOR
// construction shared with the other classes (spec.md §4.3 nca).
func NCA(a, b Elem) Elem {
	m := bits.Len32(a.X ^ b.X)
	level := MaxLevel - m
	if int(a.Level) < level {
		level = int(a.Level)
	}
	if int(b.Level) < level {
		level = int(b.Level)
	}
	h := H(level)
	mask := ^(h - 1)
	return Elem{X: a.X & mask, Level: int8(level)}
}
