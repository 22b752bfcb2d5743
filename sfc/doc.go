// Copyright ©2024 The Octree Forest Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sfc implements the Morton (Z-order) space-filling curve that
// underlies the quad and hex kernels' linear_id/init_linear_id pair
// (spec.md §3.2).
//
// The API mirrors gonum.org/v1/gonum/spatial/curve's Curve/Space duality
// (there realized by Hilbert2D/Hilbert3D): Curve maps a per-axis
// tree-local path to its position on the curve, Space is its inverse. The
// difference from that package's Hilbert curves is the absence of any
// rotation step — Morton order is the raw bit interleave, so Curve and
// Space are each other's exact inverse without the per-quadrant rot call
// Hilbert needs.
package sfc
