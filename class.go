// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

// Class discriminates an element's cell shape. The surrounding forest
// carries one Class tag per tree rather than per element (spec.md §3.1).
type Class uint8

const (
	Quad Class = iota
	Hex
	Tri
	Tet
	Prism
)

// String returns the lower-case class name.
func (c Class) String() string {
	switch c {
	case Quad:
		return "quad"
	case Hex:
		return "hex"
	case Tri:
		return "tri"
	case Tet:
		return "tet"
	case Prism:
		return "prism"
	default:
		return "unknown"
	}
}

// Children returns CHILDREN for the class: the number of children a
// refined element of this class has, and the base of its linear-id
// numbering system (spec.md §6.2).
func (c Class) Children() int {
	switch c {
	case Quad, Tri:
		return 4
	case Hex, Tet, Prism:
		return 8
	default:
		panic(badClass)
	}
}

// Dim returns the spatial dimension of the class: 2 for quad/tri, 3 for
// hex/tet/prism.
func (c Class) Dim() int {
	switch c {
	case Quad, Tri:
		return 2
	case Hex, Tet, Prism:
		return 3
	default:
		panic(badClass)
	}
}

// MaxLevel returns the class-specific maximum refinement level
// (spec.md §6.2): 30 for quad/hex, 21 for tri/tet/prism.
func (c Class) MaxLevel() int {
	switch c {
	case Quad, Hex:
		return 30
	case Tri, Tet, Prism:
		return 21
	default:
		panic(badClass)
	}
}

// RootLen returns ROOT_LEN = 1 << MaxLevel for the class.
func (c Class) RootLen() uint32 {
	return uint32(1) << uint(c.MaxLevel())
}
