// Package simplex enumerates k-simplices of the canonical (Kuhn/Freudenthal)
// triangulation of a regular d-dimensional grid and gives every simplex a
// position-derived, totally ordered canonical identifier.
//
// Each unit d-cube is triangulated by walking its corner to its opposite
// corner one axis at a time; a full walk (one step per axis, in some
// order) is a top-dimensional d-simplex, and there are d! such walks — one
// per permutation of the axes, matching spec.md's "d! simplices keyed by
// simplex type ∈ [0, d!)". A k-simplex for k < d is any face of such a
// walk: drop one vertex from an order-d walk and the remaining vertices
// either still form an ordered single-axis-at-a-time walk (dropping an
// endpoint) or a walk whose one merged step advances two axes at once
// (dropping an interior vertex, the "diagonal" face shared by the two
// d-simplices that differ by swapping that pair of steps). Representing a
// k-simplex as (corner, ordered sequence of k disjoint non-empty axis
// subsets) captures both cases uniformly and is exactly the generalization
// spec.md §9 asks for ("model as a tagged variant ... per-dimension
// triangulation") — computed once into small lookup tables keyed by (Dim,
// K) at package init instead of branching on simplex kind at call time.
package simplex
