// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package element implements the element refinement algebra for a forest
// of adaptive space-trees: the bit-packed per-element record, the class
// tables that drive Bey refinement of simplices, and the pure functions
// that navigate an implicit tree (parent, children, siblings, face
// neighbours, ancestors, descendants) and translate between a tree-local
// coordinate and the total linear order induced by a Morton-like
// space-filling curve.
//
// Element classes live in their own packages: quad and hex hold the
// axis-aligned orthotope kernels, tri and tet hold the Bey-refined simplex
// kernels, and prism composes a triangle with a line. Package scheme
// exposes all five classes behind one tagged-variant capability set for a
// surrounding forest driver, which is out of scope for this module.
//
// Elements are values filled into caller-owned storage. The quad, hex and
// line kernels do not allocate on the refinement path; the tri and tet
// kernels (and prism through tri) do, since internal/simplex builds each
// coordinate slice on the heap. Package scheme's New0 and Destroy hand out
// and reclaim element storage from a class-scoped free list.
package element
