package linalg_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/critrace/internal/linalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveIdentity(t *testing.T) {
	a := [][]float64{{1, 0}, {0, 1}}
	x, err := linalg.Solve(a, []float64{3, 4}, 1e-9)
	require.NoError(t, err)
	assert.InDelta(t, 3, x[0], 1e-9)
	assert.InDelta(t, 4, x[1], 1e-9)
}

func TestSolveGeneral(t *testing.T) {
	// 2x + y = 5, x + 3y = 10 -> x=1, y=3
	a := [][]float64{{2, 1}, {1, 3}}
	x, err := linalg.Solve(a, []float64{5, 10}, 1e-9)
	require.NoError(t, err)
	assert.InDelta(t, 1, x[0], 1e-9)
	assert.InDelta(t, 3, x[1], 1e-9)
}

func TestSolveSingular(t *testing.T) {
	a := [][]float64{{1, 1}, {1, 1}}
	_, err := linalg.Solve(a, []float64{1, 2}, 1e-9)
	assert.ErrorIs(t, err, linalg.ErrSingular)
}

func TestEigenDiagonal(t *testing.T) {
	a := [][]float64{{3, 0}, {0, -2}}
	eigs, err := linalg.Eigen(a, 1e-9, 100)
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{3, -2}, roundAll(eigs))
}

func TestEigenSymmetric3x3NegativeDefinite(t *testing.T) {
	a := [][]float64{
		{-2, 0, 0},
		{0, -3, 0},
		{0, 0, -1},
	}
	eigs, err := linalg.Eigen(a, 1e-9, 100)
	require.NoError(t, err)
	for _, e := range eigs {
		assert.Less(t, e, 0.0)
	}
}

func TestEigenRejectsAsymmetric(t *testing.T) {
	a := [][]float64{{1, 2}, {0, 1}}
	_, err := linalg.Eigen(a, 1e-9, 100)
	assert.ErrorIs(t, err, linalg.ErrNotSymmetric)
}

func roundAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Round(x*1e6) / 1e6
	}

	return out
}
