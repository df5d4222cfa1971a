package lattice_test

import (
	"testing"

	"github.com/katalvlaran/critrace/lattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesShape(t *testing.T) {
	_, err := lattice.New(nil, nil)
	assert.ErrorIs(t, err, lattice.ErrEmptyLattice)

	_, err = lattice.New([]int{0, 0}, []int{1, 0})
	assert.ErrorIs(t, err, lattice.ErrBadSize)

	l, err := lattice.New([]int{0, 0, 0}, []int{4, 4, 8})
	require.NoError(t, err)
	assert.Equal(t, 3, l.Dim)
	assert.Equal(t, 8, l.UpperBound(2)+1-l.LowerBound(2))
}

func TestContains(t *testing.T) {
	l, err := lattice.New([]int{0, 0}, []int{4, 4})
	require.NoError(t, err)

	assert.True(t, l.Contains([]int{0, 0}))
	assert.True(t, l.Contains([]int{3, 3}))
	assert.False(t, l.Contains([]int{4, 0}))
	assert.False(t, l.Contains([]int{0, 0, 0}))
}

func TestPartitionCoveringAndGhostClamp(t *testing.T) {
	l, err := lattice.New([]int{0, 0, 0}, []int{32, 32, 10})
	require.NoError(t, err)

	parts, err := l.Partition(4, []bool{false, true, true}, []int{1, 1, 1})
	require.NoError(t, err)
	require.Len(t, parts, 4)

	// cores tile axis 0 exactly, without gaps or overlaps.
	covered := 0
	for rank, p := range parts {
		assert.Equal(t, 0, p.Core.Start[1])
		assert.Equal(t, 32, p.Core.Size[1])
		covered += p.Core.Size[0]
		if rank > 0 {
			assert.Equal(t, parts[rank-1].Core.UpperBound(0)+1, p.Core.LowerBound(0))
		}
	}
	assert.Equal(t, 32, covered)

	// ghost extends core by 1 on the split axis, clamped at the domain edge.
	first := parts[0]
	assert.Equal(t, 0, first.Ghost.LowerBound(0))
	assert.Equal(t, first.Core.UpperBound(0)+1, first.Ghost.UpperBound(0))

	last := parts[len(parts)-1]
	assert.Equal(t, last.Core.LowerBound(0)-1, last.Ghost.LowerBound(0))
	assert.Equal(t, 31, last.Ghost.UpperBound(0))
}

func TestPartitionRejectsAllPinnedAxes(t *testing.T) {
	l, err := lattice.New([]int{0, 0}, []int{4, 4})
	require.NoError(t, err)

	_, err = l.Partition(2, []bool{true, true}, []int{1, 1})
	assert.ErrorIs(t, err, lattice.ErrNoFreeAxis)
}

func TestPartitionRejectsTooManyBlocks(t *testing.T) {
	l, err := lattice.New([]int{0}, []int{2})
	require.NoError(t, err)

	_, err = l.Partition(8, []bool{false}, []int{1})
	assert.ErrorIs(t, err, lattice.ErrBadPartition)
}
