// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tables holds the Bey-refinement class tables used by the
// simplex kernels (tri, tet): cid_type_to_parenttype, type_cid_to_Iloc
// and their inverses, index_to_bey_number, beyid_to_vertex and
// type_of_child (spec.md §3.3).
//
// Provenance: the reference table values published alongside the t8code
// simplex kernel were not present in this module's source pack (see
// DESIGN.md). Rather than transcribe remembered literals that cannot be
// checked against that reference, this package derives every table once,
// at package init, directly from the Bey/Kuhn geometric construction
// described in spec.md §4.3 (the simplex vertex formulas and the
// corner/octahedron decomposition of a refined simplex), the same way
// internal/art/base_index.go in github.com/gaissmai/bart documents its
// baseIndex tables' provenance as "the ART paper" rather than asserting
// them as opaque literals. Every derived entry is cross-checked for
// internal consistency at init time (conflicting derivations panic
// immediately) and again exhaustively in bey_test.go, directly
// addressing the spec's Open Question that table derivations be
// "independently verified against small exhaustive enumeration before
// trusting nca for 3D".
package tables
