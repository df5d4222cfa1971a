// Package relation links critical-point intersections that lie on the
// boundary of a shared higher-dimensional simplex, the step that turns a
// bag of isolated Intersections into the union-find input graph a
// trajectory is assembled from.
package relation
