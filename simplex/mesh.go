package simplex

import (
	"errors"
	"sort"

	"github.com/katalvlaran/critrace/lattice"
)

// ErrDimMismatch indicates an operation mixed simplices or meshes of
// different dimensionality.
var ErrDimMismatch = errors.New("simplex: dimension mismatch")

// Mesh enumerates k-simplices (k in [0, Dim]) inside a lattice using the
// canonical triangulation described in doc.go. Mesh is immutable and
// holds no mutable state of its own; every operation is a pure function of
// (Mesh, ID).
type Mesh struct {
	Dim int
	L   *lattice.Lattice
}

// New builds a Mesh over l. dim must match l.Dim and be in [1, MaxDim].
func New(dim int, l *lattice.Lattice) (*Mesh, error) {
	if dim < 1 || dim > MaxDim || l.Dim != dim {
		return nil, ErrDimMismatch
	}

	return &Mesh{Dim: dim, L: l}, nil
}

// Valid reports whether every vertex of id falls inside the mesh's bounds.
func (m *Mesh) Valid(id ID) bool {
	if int(id.Dim) != m.Dim {
		return false
	}
	for _, v := range id.Vertices() {
		if !m.L.Contains(v[:m.Dim]) {
			return false
		}
	}

	return true
}

// Sides returns the K+1 faces of a k-simplex: drop each vertex of the chain
// in turn. Dropping an endpoint shortens the block sequence by one block;
// dropping an interior vertex merges its two neighboring blocks into one.
func (m *Mesh) Sides(id ID) []ID {
	if id.K == 0 {
		return nil // a vertex has no proper faces in this mesh
	}

	blocks := id.blocks()
	out := make([]ID, 0, id.K+1)

	// Drop the first vertex: new corner advances by blocks[0], remaining
	// blocks are blocks[1:].
	first := ID{Dim: id.Dim, K: id.K - 1}
	first.Corner = id.Vertices()[1]
	copy(first.Blocks[:], blocks[1:])
	out = append(out, first)

	// Drop an interior vertex i (1 <= i <= K-1): merge blocks[i-1] and blocks[i].
	for i := 1; i < int(id.K); i++ {
		face := ID{Dim: id.Dim, K: id.K - 1, Corner: id.Corner}
		nb := face.Blocks[:0]
		nb = append(nb, blocks[:i-1]...)
		nb = append(nb, blocks[i-1]|blocks[i])
		nb = append(nb, blocks[i+1:]...)
		copy(face.Blocks[:], nb)
		out = append(out, face)
	}

	// Drop the last vertex: corner unchanged, blocks shortened by one.
	last := ID{Dim: id.Dim, K: id.K - 1, Corner: id.Corner}
	copy(last.Blocks[:], blocks[:len(blocks)-1])
	out = append(out, last)

	return dedupeIDs(out)
}

// SideOf returns every (K+1)-simplex whose Sides contains id: the
// coboundary of id. Candidates arise three ways: splitting an existing
// block back into its two constituent steps, or prepending/appending a new
// block drawn from axes id does not yet use.
func (m *Mesh) SideOf(id ID) []ID {
	blocks := id.blocks()
	full := uint8(1<<uint(id.Dim)) - 1
	free := full &^ id.unionMask()
	var out []ID

	// Split an existing block into two consecutive steps.
	for i, b := range blocks {
		for _, sp := range splitsOf(b) {
			face := ID{Dim: id.Dim, K: id.K + 1, Corner: id.Corner}
			nb := make([]uint8, 0, id.K+1)
			nb = append(nb, blocks[:i]...)
			nb = append(nb, sp[0], sp[1])
			nb = append(nb, blocks[i+1:]...)
			copy(face.Blocks[:], nb)
			if m.Valid(face) {
				out = append(out, face)
			}
		}
	}

	// Prepend a new first block drawn from the free axes; the new corner
	// moves backward by that block.
	for _, sub := range subsetsOf(free) {
		face := ID{Dim: id.Dim, K: id.K + 1}
		face.Corner = id.Corner
		for a := 0; a < int(id.Dim); a++ {
			if sub&(1<<uint(a)) != 0 {
				face.Corner[a]--
			}
		}
		nb := make([]uint8, 0, id.K+1)
		nb = append(nb, sub)
		nb = append(nb, blocks...)
		copy(face.Blocks[:], nb)
		if m.Valid(face) {
			out = append(out, face)
		}
	}

	// Append a new last block drawn from the free axes; the corner is
	// unchanged.
	for _, sub := range subsetsOf(free) {
		face := ID{Dim: id.Dim, K: id.K + 1, Corner: id.Corner}
		nb := make([]uint8, 0, id.K+1)
		nb = append(nb, blocks...)
		nb = append(nb, sub)
		copy(face.Blocks[:], nb)
		if m.Valid(face) {
			out = append(out, face)
		}
	}

	return dedupeIDs(out)
}

// ElementFor iterates every valid k-simplex in canonical order
// (lexicographic on corner, then on corner's block-sequence table). fn may
// return false to stop iteration early. ElementFor is deterministic and
// independent of iteration parallelism: it never mutates shared state
// itself, only calls fn sequentially.
func (m *Mesh) ElementFor(k int, fn func(ID) bool) {
	seqs := blockSequences(m.Dim, k)

	corners := m.enumerateCorners()
	for _, corner := range corners {
		for _, seq := range seqs {
			id := ID{Dim: uint8(m.Dim), K: uint8(k), Corner: corner}
			copy(id.Blocks[:], seq)
			if !m.Valid(id) {
				continue
			}
			if !fn(id) {
				return
			}
		}
	}
}

// enumerateCorners returns every lattice grid point in row-major canonical
// order, usable as a simplex corner.
func (m *Mesh) enumerateCorners() [][MaxDim]int32 {
	var out [][MaxDim]int32
	idx := make([]int, m.Dim)
	for a := 0; a < m.Dim; a++ {
		idx[a] = m.L.LowerBound(a)
	}

	for {
		var c [MaxDim]int32
		for a := 0; a < m.Dim; a++ {
			c[a] = int32(idx[a])
		}
		out = append(out, c)

		// odometer increment, last axis fastest
		a := m.Dim - 1
		for a >= 0 {
			idx[a]++
			if idx[a] <= m.L.UpperBound(a) {
				break
			}
			idx[a] = m.L.LowerBound(a)
			a--
		}
		if a < 0 {
			break
		}
	}

	return out
}

// dedupeIDs removes duplicate ids (possible when two distinct drop/split
// operations coincidentally yield the same canonical id) and sorts the
// result into canonical order.
func dedupeIDs(in []ID) []ID {
	sort.Slice(in, func(i, j int) bool { return in[i].Less(in[j]) })
	out := in[:0]
	for i, id := range in {
		if i == 0 || !id.Equal(out[len(out)-1]) {
			out = append(out, id)
		}
	}

	return out
}
