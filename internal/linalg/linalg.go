// Package linalg provides the small, fixed-size dense linear algebra this
// module needs for critical point classification: a Doolittle LU solve for
// the barycentric interpolation system, and a Jacobi-rotation symmetric
// eigensolver for Hessian sign tests. Both are adapted from the Doolittle
// LU/inverse and Jacobi eigen routines in the lvlath matrix/ops package,
// rewritten against plain [][]float64 instead of a Matrix interface since
// every system this package solves is at most 4x4.
package linalg

import (
	"errors"
	"fmt"
	"math"
)

// ErrSingular indicates a zero (or near-zero) pivot during LU solve.
var ErrSingular = errors.New("linalg: matrix is singular")

// ErrNotSymmetric indicates Eigen was given a non-symmetric matrix.
var ErrNotSymmetric = errors.New("linalg: matrix is not symmetric")

// ErrEigenFailed indicates the Jacobi sweep did not converge within maxIter.
var ErrEigenFailed = errors.New("linalg: eigen decomposition did not converge")

// Solve returns x such that A·x = b, via Doolittle LU decomposition
// followed by forward and backward substitution. A is consumed by value
// (never mutated); n = len(b) must equal len(A) and len(A[i]) for all i.
// A pivot with absolute value below tol is treated as singular.
func Solve(a [][]float64, b []float64, tol float64) ([]float64, error) {
	n := len(b)
	l := make([][]float64, n)
	u := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
		u[i] = make([]float64, n)
		l[i][i] = 1
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum := 0.0
			for k := 0; k < i; k++ {
				sum += l[i][k] * u[k][j]
			}
			u[i][j] = a[i][j] - sum
		}
		for j := i + 1; j < n; j++ {
			sum := 0.0
			for k := 0; k < i; k++ {
				sum += l[j][k] * u[k][i]
			}
			if math.Abs(u[i][i]) < tol {
				return nil, fmt.Errorf("linalg: zero pivot at %d: %w", i, ErrSingular)
			}
			l[j][i] = (a[j][i] - sum) / u[i][i]
		}
	}

	// forward substitution: L·y = b
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for k := 0; k < i; k++ {
			sum += l[i][k] * y[k]
		}
		y[i] = b[i] - sum
	}

	// backward substitution: U·x = y
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := 0.0
		for k := i + 1; k < n; k++ {
			sum += u[i][k] * x[k]
		}
		if math.Abs(u[i][i]) < tol {
			return nil, fmt.Errorf("linalg: zero pivot at %d: %w", i, ErrSingular)
		}
		x[i] = (y[i] - sum) / u[i][i]
	}

	return x, nil
}

// Eigen returns the eigenvalues of symmetric matrix a via classical Jacobi
// rotation, each step zeroing the largest off-diagonal entry. tol bounds
// both the symmetry check and the off-diagonal convergence test; maxIter
// caps the number of rotations.
func Eigen(a [][]float64, tol float64, maxIter int) ([]float64, error) {
	n := len(a)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(a[i][j]-a[j][i]) > tol {
				return nil, ErrNotSymmetric
			}
		}
	}

	work := make([][]float64, n)
	for i := range work {
		work[i] = append([]float64(nil), a[i]...)
	}

	iter := 0
	for ; iter < maxIter; iter++ {
		p, q, maxOff := -1, -1, 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if off := math.Abs(work[i][j]); off > maxOff {
					maxOff, p, q = off, i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		theta := (work[q][q] - work[p][p]) / (2 * work[p][q])
		t := math.Copysign(1.0/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c := 1.0 / math.Sqrt(t*t+1)
		s := t * c

		for i := 0; i < n; i++ {
			if i != p && i != q {
				aip, aiq := work[i][p], work[i][q]
				work[i][p], work[p][i] = c*aip-s*aiq, c*aip-s*aiq
				work[i][q], work[q][i] = s*aip+c*aiq, s*aip+c*aiq
			}
		}
		app, aqq, apq := work[p][p], work[q][q], work[p][q]
		work[p][p] = c*c*app - 2*c*s*apq + s*s*aqq
		work[q][q] = s*s*app + 2*c*s*apq + c*c*aqq
		work[p][q], work[q][p] = 0, 0
	}
	if iter == maxIter {
		return nil, ErrEigenFailed
	}

	eigs := make([]float64, n)
	for i := 0; i < n; i++ {
		eigs[i] = work[i][i]
	}

	return eigs, nil
}
