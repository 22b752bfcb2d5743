// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simplex holds the dimension-generic walk logic shared by the tri
// and tet kernels (spec.md §4.1, §4.3): cube-id extraction, the upward
// type_at walk, parent/child navigation, the linear_id/init_linear_id
// round trip, ancestor/nca, successor/predecessor and family recognition.
// Each concrete kernel (tri.Elem, tet.Elem) supplies its own Kernel value
// bound to the right dimension and tables.ClassTables, then forwards its
// exported methods to the functions here — the same split the teacher uses
// between gonum.org/v1/gonum/spatial/r2 and spatial/r3: nearly identical
// math, kept as two thin packages rather than one generic package, except
// here the shared arithmetic is large enough and the two instantiations
// similar enough that factoring it out pays for itself.
package simplex
