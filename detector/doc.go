// Package detector locates critical points of a scalar field inside a
// simplicial mesh: for each (d-1)-simplex it solves the
// barycentric system that zeroes the interpolated gradient, optionally
// filters by Hessian sign, and records an Intersection for every
// simplex that contains an accepted critical point.
package detector
