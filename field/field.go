package field

import (
	"errors"

	"github.com/katalvlaran/critrace/lattice"
)

// ErrShapeMismatch indicates a Scalar/Vector/Tensor whose Data length does
// not match the product of its declared Dims (and, for Vector/Tensor, its
// component count).
var ErrShapeMismatch = errors.New("field: data length does not match dims")

// Scalar is a dense, row-major (axis 0 fastest) d-dimensional array. The
// last axis is conventionally time; the rest are spatial.
type Scalar struct {
	Dims   []int
	Data   []float64
	stride []int
}

// NewScalar validates and wraps data as a Scalar over the given dims.
func NewScalar(dims []int, data []float64) (*Scalar, error) {
	n := 1
	for _, d := range dims {
		n *= d
	}
	if n != len(data) {
		return nil, ErrShapeMismatch
	}

	return &Scalar{Dims: dims, Data: data, stride: strides(dims)}, nil
}

// NewVector validates and wraps data as a Vector of comp-component values
// over dims, for a gradient field built directly rather than derived from
// a Scalar by Gradient.
func NewVector(dims []int, comp int, data []float64) (*Vector, error) {
	if product(dims)*comp != len(data) {
		return nil, ErrShapeMismatch
	}

	return &Vector{Dims: dims, Comp: comp, Data: data, stride: strides(dims)}, nil
}

// NewTensor validates and wraps data as a Tensor of comp×comp matrices over
// dims, mirroring NewVector.
func NewTensor(dims []int, comp int, data []float64) (*Tensor, error) {
	if product(dims)*comp*comp != len(data) {
		return nil, ErrShapeMismatch
	}

	return &Tensor{Dims: dims, Comp: comp, Data: data, stride: strides(dims)}, nil
}

func strides(dims []int) []int {
	s := make([]int, len(dims))
	acc := 1
	for a := 0; a < len(dims); a++ {
		s[a] = acc
		acc *= dims[a]
	}

	return s
}

func flatIndex(stride []int, p []int) int {
	idx := 0
	for a, s := range stride {
		idx += p[a] * s
	}

	return idx
}

// At returns the scalar value at integer grid point p.
func (s *Scalar) At(p []int) float64 { return s.Data[flatIndex(s.stride, p)] }

// Vector is a dense array of Comp-component vectors, one per grid point of
// Dims (the full d-dimensional grid, including the time axis).
type Vector struct {
	Dims   []int
	Comp   int
	Data   []float64
	stride []int
}

// At returns a copy of the Comp-component vector at grid point p.
func (v *Vector) At(p []int) []float64 {
	base := flatIndex(v.stride, p) * v.Comp
	out := make([]float64, v.Comp)
	copy(out, v.Data[base:base+v.Comp])

	return out
}

// Tensor is a dense array of symmetric Comp×Comp matrices, one per grid
// point of the spatial sub-grid (time axis excluded: the Hessian is only
// ever evaluated at a fixed instant).
type Tensor struct {
	Dims   []int // spatial dims only
	Comp   int
	Data   []float64
	stride []int
}

// At returns the Comp×Comp symmetric Hessian at spatial point p, row-major.
func (t *Tensor) At(p []int) []float64 {
	base := flatIndex(t.stride, p) * t.Comp * t.Comp
	out := make([]float64, t.Comp*t.Comp)
	copy(out, t.Data[base:base+t.Comp*t.Comp])

	return out
}

// iterRange walks every integer point within [lo, hi] (inclusive) across
// len(lo) axes, axis 0 fastest, calling fn for each.
func iterRange(lo, hi []int, fn func(p []int)) {
	dim := len(lo)
	if dim == 0 {
		return
	}
	idx := append([]int(nil), lo...)
	for {
		valid := true
		for a := 0; a < dim; a++ {
			if idx[a] > hi[a] {
				valid = false
			}
		}
		if valid {
			fn(idx)
		}

		a := 0
		for a < dim {
			idx[a]++
			if idx[a] <= hi[a] {
				break
			}
			idx[a] = lo[a]
			a++
		}
		if a == dim {
			break
		}
	}
}

// Gradient computes the central-difference spatial gradient of s over the
// points of ghost, generalizing derive_gradients3: each spatial component
// a is (s[p+e_a] - s[p-e_a]) / 2, scaled by (Dims[a]-1) to match the
// original's convention of treating the domain as spanning a unit
// hypercube. The time axis (the last entry of s.Dims) is excluded from the
// gradient's component count, and untouched by the stencil.
func Gradient(s *Scalar, ghost *lattice.Lattice) (*Vector, error) {
	dim := len(s.Dims)
	comp := dim - 1
	if comp < 1 {
		return nil, ErrShapeMismatch
	}

	v := &Vector{Dims: s.Dims, Comp: comp, Data: make([]float64, product(s.Dims)*comp), stride: strides(s.Dims)}

	lo := make([]int, dim)
	hi := make([]int, dim)
	for a := 0; a < dim; a++ {
		lo[a] = clamp(ghost.LowerBound(a)-1, 1, s.Dims[a]-2)
		hi[a] = clamp(ghost.UpperBound(a)+1, 1, s.Dims[a]-2)
		if a == dim-1 {
			lo[a] = max(0, ghost.LowerBound(a))
			hi[a] = min(s.Dims[a]-1, ghost.UpperBound(a))
		}
	}

	iterRange(lo, hi, func(p []int) {
		base := flatIndex(v.stride, p) * comp
		for a := 0; a < comp; a++ {
			pp := append([]int(nil), p...)
			pm := append([]int(nil), p...)
			pp[a]++
			pm[a]--
			scale := float64(s.Dims[a] - 1)
			v.Data[base+a] = 0.5 * (s.At(pp) - s.At(pm)) * scale
		}
	})

	return v, nil
}

// Hessian computes the spatial Hessian of gradient field g (as produced by
// Gradient) over the points of ghost, generalizing derive_hessians3: entry
// (r, c) is the central difference of component r of g along spatial axis
// c, scaled the same way as Gradient.
func Hessian(g *Vector, ghost *lattice.Lattice) (*Tensor, error) {
	comp := g.Comp
	spatialDims := g.Dims[:comp]

	t := &Tensor{Dims: spatialDims, Comp: comp, Data: make([]float64, product(spatialDims)*comp*comp), stride: strides(spatialDims)}

	lo := make([]int, comp)
	hi := make([]int, comp)
	for a := 0; a < comp; a++ {
		lo[a] = clamp(ghost.LowerBound(a), 2, g.Dims[a]-3)
		hi[a] = clamp(ghost.UpperBound(a), 2, g.Dims[a]-3)
	}

	// time axis of g is held fixed at ghost's lower bound; the Hessian is
	// only ever queried at an interpolated point within a single time slab.
	tIdx := ghost.LowerBound(comp)

	iterRange(lo, hi, func(sp []int) {
		p := append(append([]int(nil), sp...), tIdx)
		base := flatIndex(t.stride, sp) * comp * comp
		for r := 0; r < comp; r++ {
			for c := 0; c < comp; c++ {
				pp := append([]int(nil), p...)
				pm := append([]int(nil), p...)
				pp[c]++
				pm[c]--
				scale := float64(g.Dims[c] - 1)
				val := 0.5 * (g.At(pp)[r] - g.At(pm)[r]) * scale
				t.Data[base+r*comp+c] = val
			}
		}
	})

	return t, nil
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}

	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
