// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package element

// Precondition violations are fatal (spec.md §7): they are programmer
// errors, not recoverable conditions, so this package panics with one of
// these sentinel strings instead of returning an error; each kernel
// package declares its own sentinel strings in the same style. Grounded
// on the gonum combin package's badNegInput/badSetSize const-and-panic
// idiom.
const (
	badClass       = "element: unknown class"
	badLevel       = "element: level out of range"
	badChildID     = "element: child id out of range"
	badFamilyArity = "element: wrong number of elements in family"
	badRootParent  = "element: parent of level-0 element"
	badFace        = "element: face index out of range"
)
