package unionfind_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/critrace/exchange"
	"github.com/katalvlaran/critrace/simplex"
	"github.com/katalvlaran/critrace/unionfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConvergeResolvesCrossRankParent builds a two-rank scenario where
// rank 0 owns a non-root id whose canonical parent lives only on rank 1,
// and checks that Converge's Query/Pointer/Union round trip ends with
// rank 0's copy pointed at, and Confirmed on, the true root.
func TestConvergeResolvesCrossRankParent(t *testing.T) {
	x := mkID(1, 0) // global root, owned by rank 1
	y := mkID(5, 0) // owned by rank 0, canonical parent is x

	rank0 := unionfind.NewBlock(0)
	rank0.Add(y)
	require.NoError(t, rank0.SetParent(y, x))

	rank1 := unionfind.NewBlock(1)
	rank1.Add(x)

	blocks := []*unionfind.Block{rank0, rank1}
	owner := func(id simplex.ID) int {
		if id == x {
			return 1
		}

		return 0
	}

	ring := exchange.NewRing(2)
	err := unionfind.Converge(context.Background(), ring, blocks, owner)
	require.NoError(t, err)

	assert.Equal(t, x, rank0.Parent[y])
	assert.True(t, rank0.Resolved[y], "Union confirmation should mark y resolved")
}

// TestConvergeChainsThroughThreeRanks checks a three-hop cross-rank
// chain: rank0's id eventually learns rank2's root after bouncing
// through rank1.
func TestConvergeChainsThroughThreeRanks(t *testing.T) {
	root := mkID(1, 0)  // owned by rank 2
	mid := mkID(5, 0)   // owned by rank 1, parent = root
	leaf := mkID(9, 0)  // owned by rank 0, parent = mid

	rank0 := unionfind.NewBlock(0)
	rank0.Add(leaf)
	require.NoError(t, rank0.SetParent(leaf, mid))

	rank1 := unionfind.NewBlock(1)
	rank1.Add(mid)
	require.NoError(t, rank1.SetParent(mid, root))

	rank2 := unionfind.NewBlock(2)
	rank2.Add(root)

	blocks := []*unionfind.Block{rank0, rank1, rank2}
	owner := func(id simplex.ID) int {
		switch id {
		case root:
			return 2
		case mid:
			return 1
		default:
			return 0
		}
	}

	ring := exchange.NewRing(3)
	err := unionfind.Converge(context.Background(), ring, blocks, owner)
	require.NoError(t, err)

	assert.Equal(t, root, rank0.Parent[leaf])
	assert.True(t, rank0.Resolved[leaf])
	assert.Equal(t, root, rank1.Parent[mid])
	assert.True(t, rank1.Resolved[mid])
}
