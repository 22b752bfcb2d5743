// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplex

import (
	"testing"

	"github.com/octreeforest/element/internal/tables"
)

func triKernel(maxLevel int) Kernel {
	return Kernel{Dim: 2, MaxLevel: maxLevel, Children: 4, Tables: tables.Tri}
}

func tetKernel(maxLevel int) Kernel {
	return Kernel{Dim: 3, MaxLevel: maxLevel, Children: 8, Tables: tables.Tet}
}

// TestParentChildRoundTrip checks spec.md §8 property 1 and 2 for both
// dimensions, for every type and every child id, several levels deep.
func TestParentChildRoundTrip(t *testing.T) {
	for _, k := range []Kernel{triKernel(6), tetKernel(5)} {
		for typ := 0; typ < k.Tables.NumTypes; typ++ {
			coords := make([]uint32, k.Dim)
			for childID := 0; childID < k.Children; childID++ {
				cc, cl, ct := k.Child(coords, 0, int8(typ), childID)
				pc, pl, pt := k.Parent(cc, cl, ct)
				for a := range pc {
					if pc[a] != coords[a] {
						t.Fatalf("dim %d type %d child %d: parent coords %v, want %v", k.Dim, typ, childID, pc, coords)
					}
				}
				if pl != 0 || pt != int8(typ) {
					t.Fatalf("dim %d type %d child %d: parent (level %d, type %d), want (0, %d)", k.Dim, typ, childID, pl, pt, typ)
				}
				if got := k.ChildID(cc, cl, ct); got != childID {
					t.Fatalf("dim %d type %d child %d: ChildID = %d", k.Dim, typ, childID, got)
				}
			}
		}
	}
}

// TestLinearIDRoundTrip checks spec.md §8 property 3, exhaustively over a
// small tree for both dimensions. Linear ids are relative to the type-0
// root (InitLinearID always starts its walk there), so the tree walked is
// the one under that root.
func TestLinearIDRoundTrip(t *testing.T) {
	testLinearIDRoundTrip(t, triKernel(5), 4)
	testLinearIDRoundTrip(t, tetKernel(4), 3)
}

func testLinearIDRoundTrip(t *testing.T, k Kernel, depth int) {
	t.Helper()
	var walk func(coords []uint32, level int8, typ int8, remaining int)
	walk = func(coords []uint32, level int8, typ int8, remaining int) {
		id := k.LinearID(coords, level, typ, int(level))
		gc, gl, gt := k.InitLinearID(id, int(level))
		for a := range gc {
			if gc[a] != coords[a] {
				t.Fatalf("dim %d: InitLinearID(LinearID) coords = %v, want %v (level %d type %d)", k.Dim, gc, coords, level, typ)
			}
		}
		if gl != level || gt != typ {
			t.Fatalf("dim %d: InitLinearID(LinearID) = (level %d, type %d), want (%d, %d)", k.Dim, gl, gt, level, typ)
		}
		if remaining == 0 {
			return
		}
		for childID := 0; childID < k.Children; childID++ {
			cc, cl, ct := k.Child(coords, level, typ, childID)
			walk(cc, cl, ct, remaining-1)
		}
	}
	walk(make([]uint32, k.Dim), 0, 0, depth)
}

// TestMonotoneSFC checks spec.md §8 property 4.
func TestMonotoneSFC(t *testing.T) {
	for _, k := range []Kernel{triKernel(4), tetKernel(4)} {
		for typ := 0; typ < k.Tables.NumTypes; typ++ {
			coords := make([]uint32, k.Dim)
			var prev uint64
			for childID := 0; childID < k.Children; childID++ {
				cc, cl, ct := k.Child(coords, 0, int8(typ), childID)
				id := k.LinearID(cc, cl, ct, int(cl))
				if childID > 0 && id <= prev {
					t.Fatalf("dim %d type %d: child %d linear id %d not > previous %d", k.Dim, typ, childID, id, prev)
				}
				prev = id
			}
		}
	}
}

// TestIsFamily checks spec.md §8 property 6.
func TestIsFamily(t *testing.T) {
	for _, k := range []Kernel{triKernel(4), tetKernel(4)} {
		for typ := 0; typ < k.Tables.NumTypes; typ++ {
			coords := make([]uint32, k.Dim)
			cs := make([][]uint32, k.Children)
			ls := make([]int8, k.Children)
			ts := make([]int8, k.Children)
			for childID := 0; childID < k.Children; childID++ {
				cs[childID], ls[childID], ts[childID] = k.Child(coords, 0, int8(typ), childID)
			}
			if !k.IsFamily(cs, ls, ts) {
				t.Fatalf("dim %d type %d: genuine family rejected", k.Dim, typ)
			}
			// Corrupt one element's type and check rejection.
			broken := append([]int8(nil), ts...)
			broken[k.Children-1] = (broken[k.Children-1] + 1) % int8(k.Tables.NumTypes)
			if k.IsFamily(cs, ls, broken) {
				t.Fatalf("dim %d type %d: corrupted family accepted", k.Dim, typ)
			}
			// A permutation (swap first two) must also be rejected, since
			// child ids must appear in SFC order.
			if k.Children >= 2 {
				swapped := append([][]uint32(nil), cs...)
				swapped[0], swapped[1] = swapped[1], swapped[0]
				swappedTypes := append([]int8(nil), ts...)
				swappedTypes[0], swappedTypes[1] = swappedTypes[1], swappedTypes[0]
				if k.IsFamily(swapped, ls, swappedTypes) {
					t.Fatalf("dim %d type %d: misordered family accepted", k.Dim, typ)
				}
			}
		}
	}
}

// TestNCAIsAncestor checks spec.md §8 property 7 over many coordinate
// pairs.
func TestNCAIsAncestor(t *testing.T) {
	for _, k := range []Kernel{triKernel(4), tetKernel(4)} {
		for typ := 0; typ < k.Tables.NumTypes; typ++ {
			c1, l1, t1 := descendAll(k, typ, 0, 4)
			c2, l2, t2 := descendAll(k, typ, k.Children-1, 3)
			nc, nl, nt := k.NCA(c1, l1, t1, c2, l2, t2)
			if !k.IsAncestor(nc, nl, nt, c1, l1, t1) {
				t.Fatalf("dim %d type %d: nca not ancestor of t1", k.Dim, typ)
			}
			if !k.IsAncestor(nc, nl, nt, c2, l2, t2) {
				t.Fatalf("dim %d type %d: nca not ancestor of t2", k.Dim, typ)
			}
		}
	}
}

// descendAll builds an element of the given root type by taking child
// first at the first level and child 0 at each of the remaining depth-1
// levels, used only to build distinct test fixtures; it is not a claim
// about any particular geometric path.
func descendAll(k Kernel, typ int, first int, depth int) ([]uint32, int8, int8) {
	coords := make([]uint32, k.Dim)
	var level int8
	t := int8(typ)
	for i := 0; i < depth; i++ {
		childID := 0
		if i == 0 {
			childID = first
		}
		coords, level, t = k.Child(coords, level, t, childID)
	}
	return coords, level, t
}
