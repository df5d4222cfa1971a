package unionfind_test

import (
	"testing"

	"github.com/katalvlaran/critrace/simplex"
	"github.com/katalvlaran/critrace/unionfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkID(corner int32, k uint8) simplex.ID {
	id := simplex.ID{Dim: 2, K: k}
	id.Corner[0] = corner
	for i := uint8(0); i < k; i++ {
		id.Blocks[i] = 1
	}

	return id
}

func TestAddIsRoot(t *testing.T) {
	b := unionfind.NewBlock(0)
	id := mkID(5, 0)
	b.Add(id)

	assert.True(t, b.IsRoot(id))
	root, complete := b.Find(id)
	assert.True(t, complete)
	assert.Equal(t, id, root)
}

func TestUnitePointsLargerAtSmaller(t *testing.T) {
	b := unionfind.NewBlock(0)
	small := mkID(1, 0)
	large := mkID(9, 0)
	b.Add(small)
	b.Add(large)

	root := b.Unite(large, small)
	assert.Equal(t, small, root)
	assert.False(t, b.IsRoot(large))

	got, complete := b.Find(large)
	assert.True(t, complete)
	assert.Equal(t, small, got)
}

func TestSetParentRejectsWrongDirection(t *testing.T) {
	b := unionfind.NewBlock(0)
	small := mkID(1, 0)
	large := mkID(9, 0)
	b.Add(small)
	b.Add(large)

	err := b.SetParent(small, large)
	assert.ErrorIs(t, err, unionfind.ErrNotLargerParent)

	err = b.SetParent(large, small)
	require.NoError(t, err)
}

func TestFindCompressesPathAndSignalsIncompleteForRemoteParent(t *testing.T) {
	b := unionfind.NewBlock(1)
	local := mkID(3, 0)
	b.Add(local)

	remoteRoot := mkID(1, 0)
	require.NoError(t, b.SetParent(local, remoteRoot))

	root, complete := b.Find(local)
	assert.False(t, complete)
	assert.Equal(t, remoteRoot, root)
}

func TestFindCompressesThreeHopChain(t *testing.T) {
	b := unionfind.NewBlock(0)
	a := mkID(3, 0)
	mid := mkID(2, 0)
	root := mkID(1, 0)
	b.Add(a)
	b.Add(mid)
	b.Add(root)
	require.NoError(t, b.SetParent(mid, root))
	require.NoError(t, b.SetParent(a, mid))

	got, complete := b.Find(a)
	require.True(t, complete)
	assert.Equal(t, root, got)
	assert.Equal(t, root, b.Parent[a], "path should be fully compressed")
}
