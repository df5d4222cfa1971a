// Package lattice provides index arithmetic over an axis-aligned
// hyperrectangle of integer grid points, and the core/ghost partitioning
// used to split a regular grid across a fixed number of blocks.
//
// A Lattice is deliberately dimension-generic (d ∈ {3, 4} in practice, the
// spatial axes plus an optional time axis) rather than hard-coded to 2-D or
// 3-D the way gridgraph.GridGraph is; everything else about the shape —
// bounds validation on construction, a cheap InBounds-style membership
// test, deep-copy-on-construct — follows the same pattern.
package lattice
