package simplex

import (
	"fmt"
	"strings"
)

// MaxDim bounds the supported spatial/temporal dimensionality. spec.md §1
// restricts d to {3, 4}; MaxDim leaves room for a 4th (time) axis on top of
// a 3D spatial volume.
const MaxDim = 4

// ID is a position-derived canonical identifier for a k-simplex: a corner
// (the minimum corner of the unit d-cube the simplex lives in) plus an
// ordered sequence of K disjoint, non-empty axis subsets ("blocks"). Each
// block is a bitmask over [0, Dim) recording which axes are stepped
// together to reach the next vertex of the simplex's vertex chain.
//
// Two simplices are equal iff their canonical ids are equal regardless of
// which rank constructed them (spec.md §3): Blocks only ever stores a
// function of the combinatorial structure, never of iteration order.
type ID struct {
	Corner [MaxDim]int32
	Dim    uint8
	K      uint8
	Blocks [MaxDim]uint8
}

// blocks returns the meaningful prefix of the block sequence.
func (id ID) blocks() []uint8 { return id.Blocks[:id.K] }

// unionMask ORs together every block's axis mask: the set of axes this
// simplex's vertex chain actually advances along.
func (id ID) unionMask() uint8 {
	var u uint8
	for _, b := range id.blocks() {
		u |= b
	}

	return u
}

// Less defines the total, canonical order spec.md §4.1 requires: tie-break
// lexicographically on (corner, type), where "type" here is the ordered
// block sequence. Dim and K are compared first so IDs of differing
// dimensionality never compare equal by coincidence.
func (id ID) Less(other ID) bool {
	if id.Dim != other.Dim {
		return id.Dim < other.Dim
	}
	if id.K != other.K {
		return id.K < other.K
	}
	for i := 0; i < int(id.Dim); i++ {
		if id.Corner[i] != other.Corner[i] {
			return id.Corner[i] < other.Corner[i]
		}
	}
	for i := 0; i < int(id.K); i++ {
		if id.Blocks[i] != other.Blocks[i] {
			return id.Blocks[i] < other.Blocks[i]
		}
	}

	return false
}

// Equal reports whether id and other identify the same simplex.
func (id ID) Equal(other ID) bool {
	return !id.Less(other) && !other.Less(id)
}

// String renders the human-readable form used only by optional text dumps
// (spec.md §9: "string forms remain only for optional text dumps").
func (id ID) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := 0; i < int(id.Dim); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", id.Corner[i])
	}
	sb.WriteString(")/")
	for i := 0; i < int(id.K); i++ {
		if i > 0 {
			sb.WriteByte('-')
		}
		fmt.Fprintf(&sb, "%02b", id.Blocks[i])
	}
	fmt.Fprintf(&sb, "/k%d", id.K)

	return sb.String()
}

// Vertices returns the K+1 integer grid points of the simplex's vertex
// chain, in chain order (w_0 = corner, ..., w_K = corner + unionMask).
func (id ID) Vertices() [][MaxDim]int32 {
	verts := make([][MaxDim]int32, id.K+1)
	verts[0] = id.Corner
	cur := id.Corner
	for i, b := range id.blocks() {
		for a := 0; a < int(id.Dim); a++ {
			if b&(1<<uint(a)) != 0 {
				cur[a]++
			}
		}
		verts[i+1] = cur
	}

	return verts
}
