// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

// Tuple is the fixed-width, endianness-independent persistence shape of a
// single element (spec.md §6.4). The in-memory Elem records of quad, hex,
// tri, tet and prism are bit-packed and endianness-sensitive; Tuple is the
// only representation this module will ever write to a byte stream, and it
// does so nowhere itself — serialization is left to a persistence layer
// outside this module's scope (spec.md §1 Non-goals).
type Tuple struct {
	Class Class
	Level int32
	Type  int32
	X, Y, Z uint32
}
