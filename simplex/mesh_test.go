package simplex_test

import (
	"testing"

	"github.com/katalvlaran/critrace/lattice"
	"github.com/katalvlaran/critrace/simplex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func smallMesh(t require.TestingT, dim int, n int) *simplex.Mesh {
	l, err := lattice.New(make([]int, dim), repeat(n, dim))
	require.NoError(t, err)
	m, err := simplex.New(dim, l)
	require.NoError(t, err)

	return m
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}

	return out
}

func TestSideOfContainsCellForEachOfItsSides(t *testing.T) {
	m := smallMesh(t, 3, 4)

	var cell simplex.ID
	m.ElementFor(3, func(id simplex.ID) bool {
		cell = id

		return false
	})

	sides := m.Sides(cell)
	require.NotEmpty(t, sides)

	for _, s := range sides {
		cob := m.SideOf(s)
		found := false
		for _, c := range cob {
			if c.Equal(cell) {
				found = true

				break
			}
		}
		assert.True(t, found, "SideOf(%v) should contain %v", s, cell)
	}
}

func TestElementForIsDeterministicAcrossCalls(t *testing.T) {
	m := smallMesh(t, 3, 4)

	var first, second []simplex.ID
	m.ElementFor(2, func(id simplex.ID) bool { first = append(first, id); return true })
	m.ElementFor(2, func(id simplex.ID) bool { second = append(second, id); return true })

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Equal(second[i]))
	}
}

func TestValidRejectsOutOfBoundsSimplex(t *testing.T) {
	m := smallMesh(t, 3, 2)

	id := simplex.ID{Corner: [simplex.MaxDim]int32{5, 5, 5, 0}, Dim: 3, K: 1, Blocks: [simplex.MaxDim]uint8{1}}
	assert.False(t, m.Valid(id))
}

// TestCanonicalIDStabilityProperty checks spec.md §8's "for any simplex,
// id(side_of(id).any().sides()) contains the original id" across randomly
// generated lattices and simplex dimensions.
func TestCanonicalIDStabilityProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dim := rapid.IntRange(2, 4).Draw(rt, "dim")
		n := rapid.IntRange(3, 6).Draw(rt, "n")
		k := rapid.IntRange(1, dim-1).Draw(rt, "k")

		l, err := lattice.New(make([]int, dim), repeat(n, dim))
		if err != nil {
			rt.Fatal(err)
		}
		m, err := simplex.New(dim, l)
		if err != nil {
			rt.Fatal(err)
		}

		var ids []simplex.ID
		m.ElementFor(k, func(id simplex.ID) bool {
			ids = append(ids, id)

			return len(ids) < 8
		})
		if len(ids) == 0 {
			return
		}

		idx := rapid.IntRange(0, len(ids)-1).Draw(rt, "idx")
		target := ids[idx]

		cob := m.SideOf(target)
		if len(cob) == 0 {
			return
		}

		back := m.Sides(cob[0])
		found := false
		for _, b := range back {
			if b.Equal(target) {
				found = true

				break
			}
		}
		if !found {
			rt.Fatalf("Sides(SideOf(%v)[0]) does not contain original id", target)
		}
	})
}
