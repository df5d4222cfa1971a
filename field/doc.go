// Package field derives gradient and Hessian arrays from a gridded scalar
// volume using central finite differences, restricted to a ghosted
// sub-lattice. The stencils are translated directly from
// derive_gradients3/derive_hessians3 in the original FTK sources, adapted
// from row-major C++ indexing to flat Go slices.
package field
