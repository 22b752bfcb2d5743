// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tables

import "fmt"

const eps = 1e-9

// ClassTables holds every derived lookup table for one simplex dimension
// (2 for tri, 3 for tet). All fields are indexed [type][...]; cube-ids and
// local indices (Iloc) both range over 0..Children-1.
type ClassTables struct {
	Dim      int
	NumTypes int
	Children int

	// CidTypeToParentType[cid][type] is the parent's type, given a child's
	// cube-id (relative to that parent) and the child's own type.
	CidTypeToParentType [][]int

	// TypeCidToIloc[type][cid] is the child-local SFC index (Iloc) of the
	// element of the given type sitting at the given cube-id. -1 where no
	// child of any type reaches that (type, cid) pair.
	TypeCidToIloc [][]int

	// ParentTypeIlocToType[type][iloc] is the child's type, by parent type
	// and SFC-local index.
	ParentTypeIlocToType [][]int

	// ParentTypeIlocToCid[type][iloc] is the child's cube-id, by parent
	// type and SFC-local index.
	ParentTypeIlocToCid [][]int

	// IndexToBeyNumber[type][iloc] is the Bey number (construction-order
	// child index: 0..Dim are the corner children, Dim+1.. are the
	// octahedron/medial children) of the child at SFC-local index iloc.
	IndexToBeyNumber [][]int

	// BeyIDToVertex[type][bey] is the parent vertex index averaged with the
	// parent's anchor to get that Bey child's anchor (child(t,k) step 2);
	// -1 for bey==0, the anchor-preserving shortcut (child(t,k) step 1).
	BeyIDToVertex [][]int

	// TypeOfChild[type][bey] is the child's type.
	TypeOfChild [][]int
}

// Tri holds the 2D (triangle) class tables, type ∈ {0, 1}.
var Tri = buildClassTables(2)

// Tet holds the 3D (tetrahedron) class tables, type ∈ {0, ..., 5}.
var Tet = buildClassTables(3)

// perm3[type] is the axis order (e0, e1, e2) used to build a tetrahedron's
// vertices: v0 = 0, v1 = v0+e0, v2 = v1+e1, v3 = v2+e2 = (1,1,1). There are
// 3! = 6 such orderings, one per type. It is built by its own initializer
// so that it is ready before the Tet table above is derived from it.
var perm3 = func() [6][3]int {
	var perm [6][3]int
	for typ := 0; typ < 6; typ++ {
		ei := typ / 2
		var ej int
		if typ%2 == 0 {
			ej = (ei + 2) % 3
		} else {
			ej = (ei + 1) % 3
		}
		ek := 3 - ei - ej
		perm[typ] = [3]int{ei, ej, ek}
	}
	return perm
}()

func numTypes(dim int) int {
	if dim == 2 {
		return 2
	}
	return 6
}

func permOf(dim, typ int) []int {
	if dim == 2 {
		return []int{typ, 1 - typ}
	}
	p := perm3[typ]
	return []int{p[0], p[1], p[2]}
}

// vertices returns the dim+1 canonical vertices of a type-typ simplex
// spanning the unit cube, as fractions of the cell edge length: v[0] is the
// anchor (all zero), v[dim] is the cube's far corner (all one).
func vertices(dim, typ int) [][]float64 {
	p := permOf(dim, typ)
	v := make([][]float64, dim+1)
	v[0] = make([]float64, dim)
	for i := 1; i <= dim; i++ {
		v[i] = append([]float64{}, v[i-1]...)
		v[i][p[i-1]]++
	}
	return v
}

// VertexUnit returns the 0/1 offset along each axis of the type-typ
// simplex's vertex vIdx (0..dim), for use in the vertex-coordinate formula
// of spec.md §4.3 (vertex = anchor + h·offset).
func VertexUnit(dim, typ, vIdx int) []int {
	v := vertices(dim, typ)[vIdx]
	out := make([]int, dim)
	for i, f := range v {
		if f > 0.5 {
			out[i] = 1
		}
	}
	return out
}

func avg(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = (a[i] + b[i]) / 2
	}
	return out
}

func scale(a []float64, s float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * s
	}
	return out
}

func sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func vecEq(a, b []float64) bool {
	for i := range a {
		if a[i] < b[i]-eps || a[i] > b[i]+eps {
			return false
		}
	}
	return true
}

// singleAxis reports whether d is exactly +0.5 along one axis and zero
// elsewhere, returning that axis.
func singleAxis(d []float64) (int, bool) {
	axis := -1
	for i, v := range d {
		switch {
		case v > 0.5-eps && v < 0.5+eps:
			if axis != -1 {
				return 0, false
			}
			axis = i
		case v < -eps || v > eps:
			return 0, false
		}
	}
	if axis == -1 {
		return 0, false
	}
	return axis, true
}

// typeOfChain reports the type whose canonical vertex chain has the same
// sequence of positive unit-axis edges as pts, an ordered list of dim+1
// points at half the parent's scale.
func typeOfChain(dim int, pts [][]float64) (int, bool) {
	axes := make([]int, dim)
	for i := 0; i < dim; i++ {
		a, ok := singleAxis(sub(pts[i+1], pts[i]))
		if !ok {
			return 0, false
		}
		axes[i] = a
	}
	for t := 0; t < numTypes(dim); t++ {
		p := permOf(dim, t)
		match := true
		for i := range axes {
			if axes[i] != p[i] {
				match = false
				break
			}
		}
		if match {
			return t, true
		}
	}
	return 0, false
}

// chainOrder searches the permutations of pts (an unordered set of dim+1
// points) for the one ordering that forms a valid simplex chain, returning
// that ordering and its type.
func chainOrder(dim int, pts [][]float64) ([][]float64, int, bool) {
	n := len(pts)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	var result [][]float64
	var typ int
	var found bool
	var permute func(k int) bool
	permute = func(k int) bool {
		if k == n {
			cand := make([][]float64, n)
			for i, id := range idx {
				cand[i] = pts[id]
			}
			if t, ok := typeOfChain(dim, cand); ok {
				result, typ, found = cand, t, true
				return true
			}
			return false
		}
		for i := k; i < n; i++ {
			idx[k], idx[i] = idx[i], idx[k]
			if permute(k + 1) {
				return true
			}
			idx[k], idx[i] = idx[i], idx[k]
		}
		return false
	}
	permute(0)
	return result, typ, found
}

func findVertexIndex(dim, typ int, anchor []float64) int {
	target := scale(anchor, 2)
	for j, v := range vertices(dim, typ) {
		if vecEq(v, target) {
			return j
		}
	}
	panic(fmt.Sprintf("tables: no parent vertex matches anchor %v for type %d", anchor, typ))
}

func cubeIDOf(anchor []float64) int {
	cid := 0
	for a, v := range anchor {
		if v >= 0.5-eps {
			cid |= 1 << uint(a)
		}
	}
	return cid
}

// childInfo is one Bey child of a parent simplex, before assignment of its
// final Bey number and SFC-local index.
type childInfo struct {
	typ    int
	vIndex int // parent vertex averaged with the anchor; -1 for the anchor-preserving child.
	cid    int
}

// cornerChildren returns the dim+1 children similar to the parent, one
// centred at each parent vertex.
func cornerChildren(dim, typ int) []childInfo {
	V := vertices(dim, typ)
	out := make([]childInfo, dim+1)
	for i := 0; i <= dim; i++ {
		anchor := scale(V[i], 0.5)
		vIndex := i
		if i == 0 {
			vIndex = -1
		}
		out[i] = childInfo{typ: typ, vIndex: vIndex, cid: cubeIDOf(anchor)}
	}
	return out
}

// middleChildren2 returns the single medial triangle left after removing
// the 3 corner children from a type-typ triangle.
func middleChildren2(typ int) []childInfo {
	V := vertices(2, typ)
	pts := [][]float64{avg(V[0], V[1]), avg(V[0], V[2]), avg(V[1], V[2])}
	ordered, t, ok := chainOrder(2, pts)
	if !ok {
		panic(fmt.Sprintf("tables: triangle type %d has no valid medial-child chain", typ))
	}
	anchor := ordered[0]
	return []childInfo{{typ: t, vIndex: findVertexIndex(2, typ, anchor), cid: cubeIDOf(anchor)}}
}

// fanChildren3 returns the 4 children of a type-typ tetrahedron left after
// removing the 4 corner children: the octahedron formed by the 6 edge
// midpoints, split by one of its internal diagonals. A right-angle Kuhn
// tetrahedron's midpoint octahedron has one long diagonal (joining the
// midpoints of its first and last chain edges) and two short diagonals of
// equal length. Only the short diagonal joining the midpoints of edges
// v0v2 and v1v3 splits it into four Kuhn tetrahedra (the other short
// diagonal, v0v3 to v1v2, leaves pieces with no axis-aligned vertex
// chain), so every type uses that one.
func fanChildren3(typ int) []childInfo {
	V := vertices(3, typ)
	a, b, c, d := 0, 2, 1, 3
	m := func(x, y int) []float64 { return avg(V[x], V[y]) }
	mab, mcd := m(a, b), m(c, d)
	mac, mad := m(a, c), m(a, d)
	mbc, mbd := m(b, c), m(b, d)
	sets := [][][]float64{
		{mab, mcd, mac, mad},
		{mab, mcd, mad, mbd},
		{mab, mcd, mbd, mbc},
		{mab, mcd, mbc, mac},
	}
	out := make([]childInfo, 4)
	for i, pts := range sets {
		ordered, t, ok := chainOrder(3, pts)
		if !ok {
			panic(fmt.Sprintf("tables: tet type %d has no valid chain for octahedron piece %d", typ, i))
		}
		anchor := ordered[0]
		out[i] = childInfo{typ: t, vIndex: findVertexIndex(3, typ, anchor), cid: cubeIDOf(anchor)}
	}
	return out
}

func childrenOf(dim, typ int) []childInfo {
	out := cornerChildren(dim, typ)
	if dim == 2 {
		return append(out, middleChildren2(typ)...)
	}
	return append(out, fanChildren3(typ)...)
}

func buildClassTables(dim int) *ClassTables {
	nt := numTypes(dim)
	nc := 4
	if dim == 3 {
		nc = 8
	}

	ct := &ClassTables{
		Dim: dim, NumTypes: nt, Children: nc,
		CidTypeToParentType:  make2D(nc, nt, -1),
		TypeCidToIloc:        make2D(nt, nc, -1),
		ParentTypeIlocToType: make2D(nt, nc, -1),
		ParentTypeIlocToCid:  make2D(nt, nc, -1),
		IndexToBeyNumber:     make2D(nt, nc, -1),
		BeyIDToVertex:        make2D(nt, nc, -1),
		TypeOfChild:          make2D(nt, nc, -1),
	}

	for typ := 0; typ < nt; typ++ {
		children := childrenOf(dim, typ)
		if len(children) != nc {
			panic(fmt.Sprintf("tables: type %d produced %d children, want %d", typ, len(children), nc))
		}

		// iloc order is the Bey construction order itself: the dim+1 corner
		// children (Bey numbers 0..dim, in parent-vertex order) followed by
		// the medial/octahedron children (Bey numbers dim+1..), exactly as
		// childrenOf builds them. This is not a cube-id sort — a corner
		// child and its co-located medial/octahedron sibling can tie on
		// cube-id, and the Bey SFC is not cube-id-monotonic (e.g. the type-0
		// triangle's cid-3 corner, iloc 2, precedes its cid-1 medial child,
		// iloc 3, in SFC order). See DESIGN.md.
		order := make([]int, nc)
		for i := range order {
			order[i] = i
		}

		for iloc, bey := range order {
			c := children[bey]
			ct.IndexToBeyNumber[typ][iloc] = bey
			ct.ParentTypeIlocToType[typ][iloc] = c.typ
			ct.ParentTypeIlocToCid[typ][iloc] = c.cid
			ct.BeyIDToVertex[typ][bey] = c.vIndex
			ct.TypeOfChild[typ][bey] = c.typ

			if prev := ct.TypeCidToIloc[c.typ][c.cid]; prev != -1 && prev != iloc {
				panic(fmt.Sprintf("tables: dim %d type %d cid %d: Iloc conflict %d vs %d", dim, c.typ, c.cid, prev, iloc))
			}
			ct.TypeCidToIloc[c.typ][c.cid] = iloc

			if prev := ct.CidTypeToParentType[c.cid][c.typ]; prev != -1 && prev != typ {
				panic(fmt.Sprintf("tables: dim %d cid %d type %d: parent-type conflict %d vs %d", dim, c.cid, c.typ, prev, typ))
			}
			ct.CidTypeToParentType[c.cid][c.typ] = typ
		}
	}

	for typ := 0; typ < nt; typ++ {
		for iloc := 0; iloc < nc; iloc++ {
			if ct.ParentTypeIlocToType[typ][iloc] == -1 {
				panic(fmt.Sprintf("tables: dim %d type %d iloc %d never assigned", dim, typ, iloc))
			}
		}
	}

	return ct
}

func make2D(rows, cols, fill int) [][]int {
	out := make([][]int, rows)
	for i := range out {
		out[i] = make([]int, cols)
		for j := range out[i] {
			out[i][j] = fill
		}
	}
	return out
}
