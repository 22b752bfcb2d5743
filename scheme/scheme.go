// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scheme implements the polymorphic element scheme of spec.md
// §4.5: one capability set per element class, dispatched through a
// tagged variant rather than a vtable of boxed interfaces, per the
// Design Notes of spec.md §9.
//
// Elem holds a Class tag plus the union of primitive fields every
// concrete class record reduces to (X, Y, Z, Level, Type — quad uses
// X,Y,Level; hex X,Y,Z,Level; tri X,Y,Level,Type; tet X,Y,Z,Level,Type;
// prism X,Y,Level,Type for its triangle factor and Z for its line
// factor's coordinate). This is a safe, typed substitute for the
// byte-array-plus-unsafe-reinterpret pattern the source's vtable
// dispatch suggests: every concrete record genuinely is a subset of
// these five primitive fields, so no unsafe aliasing is needed to get
// the same "one struct shape, switch on tag" property (see DESIGN.md).
// Scheme.{Parent,Child,...} switch on Class and forward to the concrete
// class package; the forest driver never names quad.Elem, tri.Elem, etc.
package scheme

import (
	"sync"
	"unsafe"

	"github.com/octreeforest/element"
	"github.com/octreeforest/element/hex"
	"github.com/octreeforest/element/internal/line"
	"github.com/octreeforest/element/prism"
	"github.com/octreeforest/element/quad"
	"github.com/octreeforest/element/tet"
	"github.com/octreeforest/element/tri"
)

const (
	badClass       = "scheme: unknown class"
	badFace        = "scheme: face index out of range"
	badFamilyArity = "scheme: wrong number of elements in family"
)

// Elem is the opaque, fixed-shape element value the forest driver passes
// across the scheme boundary (spec.md §6.1).
type Elem struct {
	Class   element.Class
	X, Y, Z uint32
	Level   int8
	Type    int8
}

func (e Elem) toQuad() quad.Elem { return quad.Elem{X: e.X, Y: e.Y, Level: e.Level} }
func fromQuad(c element.Class, q quad.Elem) Elem {
	return Elem{Class: c, X: q.X, Y: q.Y, Level: q.Level}
}

func (e Elem) toHex() hex.Elem { return hex.Elem{X: e.X, Y: e.Y, Z: e.Z, Level: e.Level} }
func fromHex(c element.Class, h hex.Elem) Elem {
	return Elem{Class: c, X: h.X, Y: h.Y, Z: h.Z, Level: h.Level}
}

func (e Elem) toTri() tri.Elem { return tri.Elem{X: e.X, Y: e.Y, Level: e.Level, Type: e.Type} }
func fromTri(c element.Class, tt tri.Elem) Elem {
	return Elem{Class: c, X: tt.X, Y: tt.Y, Level: tt.Level, Type: tt.Type}
}

func (e Elem) toTet() tet.Elem {
	return tet.Elem{X: e.X, Y: e.Y, Z: e.Z, Level: e.Level, Type: e.Type}
}
func fromTet(c element.Class, tt tet.Elem) Elem {
	return Elem{Class: c, X: tt.X, Y: tt.Y, Z: tt.Z, Level: tt.Level, Type: tt.Type}
}

func (e Elem) toPrism() prism.Elem {
	return prism.Elem{
		Tri:  tri.Elem{X: e.X, Y: e.Y, Level: e.Level, Type: e.Type},
		Line: line.Elem{X: e.Z, Level: e.Level},
	}
}
func fromPrism(c element.Class, p prism.Elem) Elem {
	return Elem{Class: c, X: p.Tri.X, Y: p.Tri.Y, Z: p.Line.X, Level: p.Tri.Level, Type: p.Tri.Type}
}

// Scheme is the capability set for one element class (spec.md §4.5). Its
// pool is a free list of *Elem reused by New0/Destroy; the pool is
// single-threaded (spec.md §5): callers serialize New0/Destroy
// themselves.
type Scheme struct {
	class element.Class
	pool  sync.Pool
}

// New constructs the scheme for class, with an element free-list seeded
// for poolCap concurrent live elements (spec.md §4.5's "context").
func New(class element.Class, poolCap int) *Scheme {
	s := &Scheme{class: class}
	s.pool.New = func() any { return new(Elem) }
	for i := 0; i < poolCap; i++ {
		s.pool.Put(new(Elem))
	}
	return s
}

// Class returns the element class this scheme serves.
func (s *Scheme) Class() element.Class { return s.class }

// Size returns the fixed size in bytes of one Elem value, per spec.md
// §4.5's size operation.
func (s *Scheme) Size() int { return int(unsafe.Sizeof(Elem{})) }

// MaxLevel returns the class's maximum refinement level.
func (s *Scheme) MaxLevel() int { return s.class.MaxLevel() }

// RootLen returns ROOT_LEN for the class.
func (s *Scheme) RootLen() uint32 { return s.class.RootLen() }

// ChildEClass returns the class of child k. Every class in this module
// refines homogeneously (a quad's children are quads, a tet's children
// are tets), so this always equals s.Class(); the operation exists for
// schemes whose refinement can change element class, which none of the
// five classes here do.
func (s *Scheme) ChildEClass(k int) element.Class { return s.class }

// Level returns e's refinement level.
func (s *Scheme) Level(e Elem) int8 { return e.Level }

// Copy returns a value copy of e; Elem is POD so this is the identity
// function, exposed only to match the capability set spec.md §4.5 names.
func (s *Scheme) Copy(e Elem) Elem { return e }

// Anchor returns e's anchor coordinates, zero-padded for lower-dimension
// classes.
func (s *Scheme) Anchor(e Elem) [3]uint32 { return [3]uint32{e.X, e.Y, e.Z} }

// New0 allocates a zero-value element from the scheme's pool (spec.md
// §4.5 new).
func (s *Scheme) New0() *Elem {
	e := s.pool.Get().(*Elem)
	*e = Elem{Class: s.class}
	return e
}

// Destroy returns e to the scheme's pool (spec.md §4.5 destroy).
func (s *Scheme) Destroy(e *Elem) { s.pool.Put(e) }

// Delete releases the scheme's element free list (spec.md §4.5's
// destructor for the scheme itself, distinct from the per-element New0
// and Destroy pair above). The pooled elements are dropped; later New0
// calls allocate fresh elements.
func (s *Scheme) Delete() { s.pool = sync.Pool{New: s.pool.New} }

func (s *Scheme) checkClass(e Elem) {
	if e.Class != s.class {
		panic(badClass)
	}
}

// Parent returns e's parent (spec.md §4.5 parent).
func (s *Scheme) Parent(e Elem) Elem {
	s.checkClass(e)
	switch s.class {
	case element.Quad:
		return fromQuad(s.class, e.toQuad().Parent())
	case element.Hex:
		return fromHex(s.class, e.toHex().Parent())
	case element.Tri:
		return fromTri(s.class, e.toTri().Parent())
	case element.Tet:
		return fromTet(s.class, e.toTet().Parent())
	case element.Prism:
		return fromPrism(s.class, e.toPrism().Parent())
	default:
		panic(badClass)
	}
}

// Child returns e's childID-th child (spec.md §4.5 child).
func (s *Scheme) Child(e Elem, childID int) Elem {
	s.checkClass(e)
	switch s.class {
	case element.Quad:
		return fromQuad(s.class, e.toQuad().Child(childID))
	case element.Hex:
		return fromHex(s.class, e.toHex().Child(childID))
	case element.Tri:
		return fromTri(s.class, e.toTri().Child(childID))
	case element.Tet:
		return fromTet(s.class, e.toTet().Child(childID))
	case element.Prism:
		return fromPrism(s.class, e.toPrism().Child(childID))
	default:
		panic(badClass)
	}
}

// Children fills out with all of e's children in SFC order (spec.md §4.5
// children).
func (s *Scheme) Children(e Elem, out []Elem) {
	s.checkClass(e)
	n := s.class.Children()
	if len(out) != n {
		panic(badFamilyArity)
	}
	for k := 0; k < n; k++ {
		out[k] = s.Child(e, k)
	}
}

// ChildID returns the index, among its parent's children, e occupies
// (spec.md §4.5 child_id).
func (s *Scheme) ChildID(e Elem) int {
	s.checkClass(e)
	switch s.class {
	case element.Quad:
		return e.toQuad().ChildID()
	case element.Hex:
		return e.toHex().ChildID()
	case element.Tri:
		return e.toTri().ChildID()
	case element.Tet:
		return e.toTet().ChildID()
	case element.Prism:
		return e.toPrism().ChildID()
	default:
		panic(badClass)
	}
}

// Sibling returns the siblingID-th child of e's parent (spec.md §4.5
// sibling).
func (s *Scheme) Sibling(e Elem, siblingID int) Elem {
	return s.Child(s.Parent(e), siblingID)
}

// IsFamily reports whether f, in order, are exactly the children of a
// common parent in SFC order (spec.md §4.5 is_family).
func (s *Scheme) IsFamily(f []Elem) bool {
	n := s.class.Children()
	if len(f) != n {
		return false
	}
	for _, e := range f {
		if e.Class != s.class {
			return false
		}
	}
	switch s.class {
	case element.Quad:
		g := make([]quad.Elem, n)
		for i, e := range f {
			g[i] = e.toQuad()
		}
		return quad.IsFamily(g)
	case element.Hex:
		g := make([]hex.Elem, n)
		for i, e := range f {
			g[i] = e.toHex()
		}
		return hex.IsFamily(g)
	case element.Tri:
		g := make([]tri.Elem, n)
		for i, e := range f {
			g[i] = e.toTri()
		}
		return tri.IsFamily(g)
	case element.Tet:
		g := make([]tet.Elem, n)
		for i, e := range f {
			g[i] = e.toTet()
		}
		return tet.IsFamily(g)
	case element.Prism:
		g := make([]prism.Elem, n)
		for i, e := range f {
			g[i] = e.toPrism()
		}
		return prism.IsFamily(g)
	default:
		panic(badClass)
	}
}

// FaceNeighbor returns the neighbour of e across face f, and the face
// index the neighbour sees e across (spec.md §4.5 face_neighbor). Only
// tri and tet carry a face-neighbour formula in this module (spec.md
// §4.3); quad/hex/prism panic, matching the source's specialization of
// face neighbours to the simplex classes.
func (s *Scheme) FaceNeighbor(e Elem, f int) (Elem, int) {
	s.checkClass(e)
	switch s.class {
	case element.Tri:
		n, f2 := e.toTri().FaceNeighbour(f)
		return fromTri(s.class, n), f2
	case element.Tet:
		n, f2 := e.toTet().FaceNeighbour(f)
		return fromTet(s.class, n), f2
	default:
		panic(badFace)
	}
}

// Boundary returns the coordinates of the vertices bounding e's face f
// (spec.md §4.5 boundary). This module has no standalone lower-dimensional
// element class to return a typed sub-element in (spec.md's Non-goals
// exclude a general geometry/mesh-output surface), so Boundary returns the
// bounding vertices directly: 2 for a quad/tri edge, 4 for a hex face, 3
// for a tet face, and 3 or 4 for a prism's triangular caps (faces 0,1) or
// quadrilateral sides (faces 2,3,4) respectively (see DESIGN.md). Results
// are padded to 3 coordinates with a trailing zero for 2D classes.
func (s *Scheme) Boundary(e Elem, f int) [][3]uint32 {
	s.checkClass(e)
	switch s.class {
	case element.Quad:
		return quadBoundary(e, f)
	case element.Hex:
		return hexBoundary(e, f)
	case element.Tri:
		return triBoundary(e, f)
	case element.Tet:
		return tetBoundary(e, f)
	case element.Prism:
		return prismBoundary(e, f)
	default:
		panic(badClass)
	}
}

func quadBoundary(e Elem, f int) [][3]uint32 {
	if f < 0 || f > 3 {
		panic(badFace)
	}
	h := quad.H(int(e.Level))
	c := func(dx, dy uint32) [3]uint32 { return [3]uint32{e.X + dx, e.Y + dy, 0} }
	corners := [4][3]uint32{c(0, 0), c(h, 0), c(0, h), c(h, h)}
	axis, side := f/2, f%2
	var out [][3]uint32
	for i, corner := range corners {
		bit := i >> uint(axis) & 1
		if bit == side {
			out = append(out, corner)
		}
	}
	return out
}

func hexBoundary(e Elem, f int) [][3]uint32 {
	if f < 0 || f > 5 {
		panic(badFace)
	}
	h := hex.H(int(e.Level))
	axis, side := f/2, f%2
	var out [][3]uint32
	for b := 0; b < 8; b++ {
		bit := b >> uint(axis) & 1
		if bit != side {
			continue
		}
		out = append(out, [3]uint32{
			e.X + uint32(b&1)*h,
			e.Y + uint32((b>>1)&1)*h,
			e.Z + uint32((b>>2)&1)*h,
		})
	}
	return out
}

func triBoundary(e Elem, f int) [][3]uint32 {
	if f < 0 || f > 2 {
		panic(badFace)
	}
	t := e.toTri()
	var out [][3]uint32
	for v := 0; v < 3; v++ {
		if v == f {
			continue
		}
		p := t.Vertex(v)
		out = append(out, [3]uint32{p[0], p[1], 0})
	}
	return out
}

func tetBoundary(e Elem, f int) [][3]uint32 {
	if f < 0 || f > 3 {
		panic(badFace)
	}
	t := e.toTet()
	var out [][3]uint32
	for v := 0; v < 4; v++ {
		if v == f {
			continue
		}
		out = append(out, t.Vertex(v))
	}
	return out
}

func prismBoundary(e Elem, f int) [][3]uint32 {
	if f < 0 || f > 4 {
		panic(badFace)
	}
	p := e.toPrism()
	lo := p.Line.X
	hi := lo + line.H(int(p.Line.Level))
	if f < 2 {
		z := lo
		if f == 1 {
			z = hi
		}
		out := make([][3]uint32, 0, 3)
		for v := 0; v < 3; v++ {
			tv := p.Tri.Vertex(v)
			out = append(out, [3]uint32{tv[0], tv[1], z})
		}
		return out
	}
	edgeOpposite := f - 2
	out := make([][3]uint32, 0, 4)
	for v := 0; v < 3; v++ {
		if v == edgeOpposite {
			continue
		}
		tv := p.Tri.Vertex(v)
		out = append(out, [3]uint32{tv[0], tv[1], lo})
		out = append(out, [3]uint32{tv[0], tv[1], hi})
	}
	return out
}

// NCA computes the nearest common ancestor of a and b (spec.md §4.5 nca);
// both must belong to this scheme's class.
func (s *Scheme) NCA(a, b Elem) Elem {
	s.checkClass(a)
	s.checkClass(b)
	switch s.class {
	case element.Quad:
		return fromQuad(s.class, quad.NCA(a.toQuad(), b.toQuad()))
	case element.Hex:
		return fromHex(s.class, hex.NCA(a.toHex(), b.toHex()))
	case element.Tri:
		return fromTri(s.class, tri.NCA(a.toTri(), b.toTri()))
	case element.Tet:
		return fromTet(s.class, tet.NCA(a.toTet(), b.toTet()))
	case element.Prism:
		pa, pb := a.toPrism(), b.toPrism()
		tn := tri.NCA(pa.Tri, pb.Tri)
		ln := line.NCA(pa.Line, pb.Line)
		lvl := int(tn.Level)
		if int(ln.Level) < lvl {
			lvl = int(ln.Level)
		}
		return fromPrism(s.class, prism.Elem{Tri: tn.Ancestor(lvl), Line: line.InitLinearID(ln.LinearID(lvl), lvl)})
	default:
		panic(badClass)
	}
}

// Compare orders a and b by the class's linear id (spec.md §4.5 compare).
func (s *Scheme) Compare(a, b Elem) int {
	s.checkClass(a)
	s.checkClass(b)
	switch s.class {
	case element.Quad:
		return quad.Compare(a.toQuad(), b.toQuad())
	case element.Hex:
		return hex.Compare(a.toHex(), b.toHex())
	case element.Tri:
		return tri.Compare(a.toTri(), b.toTri())
	case element.Tet:
		return tet.Compare(a.toTet(), b.toTet())
	case element.Prism:
		return prism.Compare(a.toPrism(), b.toPrism())
	default:
		panic(badClass)
	}
}

// GetLinearID returns e's linear id at level (spec.md §4.5
// get_linear_id).
func (s *Scheme) GetLinearID(e Elem, level int) uint64 {
	s.checkClass(e)
	switch s.class {
	case element.Quad:
		return e.toQuad().LinearID(level)
	case element.Hex:
		return e.toHex().LinearID(level)
	case element.Tri:
		return e.toTri().LinearID(level)
	case element.Tet:
		return e.toTet().LinearID(level)
	case element.Prism:
		return e.toPrism().LinearID(level)
	default:
		panic(badClass)
	}
}

// SetLinearID reconstructs the level-level element of this class whose
// GetLinearID(level) equals id (spec.md §4.5 set_linear_id).
func (s *Scheme) SetLinearID(id uint64, level int) Elem {
	switch s.class {
	case element.Quad:
		return fromQuad(s.class, quad.InitLinearID(id, level))
	case element.Hex:
		return fromHex(s.class, hex.InitLinearID(id, level))
	case element.Tri:
		return fromTri(s.class, tri.InitLinearID(id, level))
	case element.Tet:
		return fromTet(s.class, tet.InitLinearID(id, level))
	case element.Prism:
		return fromPrism(s.class, prism.InitLinearID(id, level))
	default:
		panic(badClass)
	}
}

// FirstDesc returns e's level-MaxLevel first descendant (spec.md §4.5
// first_desc).
func (s *Scheme) FirstDesc(e Elem) Elem {
	s.checkClass(e)
	switch s.class {
	case element.Quad:
		return fromQuad(s.class, e.toQuad().FirstDesc())
	case element.Hex:
		return fromHex(s.class, e.toHex().FirstDesc())
	case element.Tri:
		return fromTri(s.class, e.toTri().FirstDesc())
	case element.Tet:
		return fromTet(s.class, e.toTet().FirstDesc())
	case element.Prism:
		return s.SetLinearID(s.GetLinearID(e, s.MaxLevel()), s.MaxLevel())
	default:
		panic(badClass)
	}
}

// LastDesc returns e's level-MaxLevel last descendant (spec.md §4.5
// last_desc).
func (s *Scheme) LastDesc(e Elem) Elem {
	s.checkClass(e)
	switch s.class {
	case element.Quad:
		return fromQuad(s.class, e.toQuad().LastDesc())
	case element.Hex:
		return fromHex(s.class, e.toHex().LastDesc())
	case element.Tri:
		return fromTri(s.class, e.toTri().LastDesc())
	case element.Tet:
		return fromTet(s.class, e.toTet().LastDesc())
	case element.Prism:
		p := e.toPrism()
		return fromPrism(s.class, prism.Elem{Tri: p.Tri.LastDesc(), Line: p.Line.LastDesc()})
	default:
		panic(badClass)
	}
}

// Successor returns the successor (dir=+1) or predecessor (dir=-1) of e
// among its siblings (spec.md §4.5 successor). Panics if e is already the
// last (resp. first) element of its uniform refinement; callers must
// check by comparing linear_id first, per spec.md §7.
func (s *Scheme) Successor(e Elem, dir int) Elem {
	s.checkClass(e)
	switch s.class {
	case element.Quad:
		return fromQuad(s.class, e.toQuad().Successor(dir))
	case element.Hex:
		return fromHex(s.class, e.toHex().Successor(dir))
	case element.Tri:
		return fromTri(s.class, e.toTri().Successor(dir))
	case element.Tet:
		return fromTet(s.class, e.toTet().Successor(dir))
	case element.Prism:
		return fromPrism(s.class, e.toPrism().Successor(dir))
	default:
		panic(badClass)
	}
}

// InsideRoot reports whether e satisfies its class's root invariant
// (spec.md §4.5 inside_root). quad/hex/prism have no boundary invariant
// beyond the coordinate range, which anchor alignment already guarantees
// by construction, so they always report true.
func (s *Scheme) InsideRoot(e Elem) bool {
	s.checkClass(e)
	switch s.class {
	case element.Tri:
		return e.toTri().InsideRoot()
	case element.Tet:
		return e.toTet().InsideRoot()
	default:
		return true
	}
}
