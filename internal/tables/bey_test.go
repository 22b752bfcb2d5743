// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tables

import "testing"

// TestTriRoundTrip exhaustively checks, for every (parent type, Iloc) pair,
// that walking child->parent via CidTypeToParentType recovers the parent
// type the child was built from, and that TypeCidToIloc inverts
// ParentTypeIlocToCid/Type.
func TestTriRoundTrip(t *testing.T) {
	roundTrip(t, Tri)
}

func TestTetRoundTrip(t *testing.T) {
	roundTrip(t, Tet)
}

func roundTrip(t *testing.T, ct *ClassTables) {
	t.Helper()
	for typ := 0; typ < ct.NumTypes; typ++ {
		for iloc := 0; iloc < ct.Children; iloc++ {
			cid := ct.ParentTypeIlocToCid[typ][iloc]
			ctyp := ct.ParentTypeIlocToType[typ][iloc]
			if cid < 0 || ctyp < 0 {
				t.Fatalf("dim %d: type %d iloc %d unpopulated", ct.Dim, typ, iloc)
			}
			if got := ct.CidTypeToParentType[cid][ctyp]; got != typ {
				t.Errorf("dim %d: CidTypeToParentType[%d][%d] = %d, want %d", ct.Dim, cid, ctyp, got, typ)
			}
			if got := ct.TypeCidToIloc[ctyp][cid]; got != iloc {
				t.Errorf("dim %d: TypeCidToIloc[%d][%d] = %d, want %d", ct.Dim, ctyp, cid, got, iloc)
			}
			bey := ct.IndexToBeyNumber[typ][iloc]
			if bey < 0 || bey >= ct.Children {
				t.Fatalf("dim %d: type %d iloc %d has no Bey number", ct.Dim, typ, iloc)
			}
			if got := ct.TypeOfChild[typ][bey]; got != ctyp {
				t.Errorf("dim %d: TypeOfChild[%d][%d] = %d, want %d", ct.Dim, typ, bey, got, ctyp)
			}
		}
	}
}

// TestBeyZeroIsAnchorPreserving checks that Bey number 0 always corresponds
// to the child that keeps the parent's anchor unchanged (child(t,k) step 1
// of spec.md §4.3), for every type of both dimensions.
func TestBeyZeroIsAnchorPreserving(t *testing.T) {
	for typ := 0; typ < Tri.NumTypes; typ++ {
		if v := Tri.BeyIDToVertex[typ][0]; v != -1 {
			t.Errorf("tri type %d: BeyIDToVertex[0] = %d, want -1", typ, v)
		}
	}
	for typ := 0; typ < Tet.NumTypes; typ++ {
		if v := Tet.BeyIDToVertex[typ][0]; v != -1 {
			t.Errorf("tet type %d: BeyIDToVertex[0] = %d, want -1", typ, v)
		}
	}
}

// TestEveryIlocPopulated checks that, for every type, each of the Children
// Iloc slots of ParentTypeIlocToCid holds a cube-id in range. It does not
// require the cube-ids to be distinct: a triangle's children use only 3 of
// the 4 cube-ids, two of them sharing one.
func TestEveryIlocPopulated(t *testing.T) {
	checkReachable(t, Tri)
	checkReachable(t, Tet)
}

func checkReachable(t *testing.T, ct *ClassTables) {
	t.Helper()
	for typ := 0; typ < ct.NumTypes; typ++ {
		seen := make(map[int]bool)
		for iloc := 0; iloc < ct.Children; iloc++ {
			cid := ct.ParentTypeIlocToCid[typ][iloc]
			if seen[iloc] {
				t.Fatalf("dim %d type %d: iloc %d duplicated", ct.Dim, typ, iloc)
			}
			seen[iloc] = true
			if cid < 0 || cid >= ct.Children {
				t.Fatalf("dim %d type %d iloc %d: cid %d out of range", ct.Dim, typ, iloc, cid)
			}
		}
		if len(seen) != ct.Children {
			t.Fatalf("dim %d type %d: only %d of %d Iloc slots populated", ct.Dim, typ, len(seen), ct.Children)
		}
	}
}

// TestTetFanChildrenForBothParities checks that fanChildren3 yields
// octahedron children for the even types and for the odd types alike: the
// cube-ids of those children, collected per parity class, are non-empty
// for both classes.
func TestTetFanChildrenForBothParities(t *testing.T) {
	evenCids := map[int]bool{}
	oddCids := map[int]bool{}
	for typ := 0; typ < 6; typ++ {
		children := fanChildren3(typ)
		set := evenCids
		if typ%2 == 1 {
			set = oddCids
		}
		for _, c := range children {
			set[c.cid] = true
		}
	}
	if len(evenCids) == 0 || len(oddCids) == 0 {
		t.Fatalf("expected non-empty cube-id sets for both parities, got even=%v odd=%v", evenCids, oddCids)
	}
}
