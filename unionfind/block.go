package unionfind

import (
	"errors"

	"github.com/katalvlaran/critrace/simplex"
)

// ErrNotLargerParent indicates SetParent was asked to point id at a parent
// that is not canonically smaller (spec.md §4.4: "precondition p < id
// canonically").
var ErrNotLargerParent = errors.New("unionfind: parent must be canonically smaller")

// ErrUnknownID indicates an operation referenced an id this block never
// Add-ed.
var ErrUnknownID = errors.New("unionfind: id not present in block")

// Block is one rank's disjoint-set state: a local parent map and a
// gid_of map recording which rank currently owns each known root. A node
// id is a root iff Parent[id] == id. Block is not safe for concurrent use
// by multiple goroutines; callers serialize access per rank (mirrors
// prim_kruskal.Kruskal's single-threaded find/union closures, generalized
// to a sharded, long-lived structure instead of one MST computation's
// scratch maps).
type Block struct {
	GID    int
	Parent map[simplex.ID]simplex.ID
	GIDOf  map[simplex.ID]int

	// Resolved marks ids whose parent pointer is known final: either a
	// local root, or a remote root confirmed by a Union message (see
	// Confirm). Converge re-queries only ids absent from this set, since
	// Find's own complete flag can never go true for a genuinely
	// remote-owned root (spec.md §4.4's asynchronous protocol needs a
	// stopping condition Find alone can't express).
	Resolved map[simplex.ID]bool
}

// NewBlock returns an empty Block owned by rank gid.
func NewBlock(gid int) *Block {
	return &Block{
		GID:      gid,
		Parent:   make(map[simplex.ID]simplex.ID),
		GIDOf:    make(map[simplex.ID]int),
		Resolved: make(map[simplex.ID]bool),
	}
}

// Add inserts id as its own root, owned by this block's rank.
func (b *Block) Add(id simplex.ID) {
	if _, ok := b.Parent[id]; ok {
		return
	}
	b.Parent[id] = id
	b.GIDOf[id] = b.GID
	b.Resolved[id] = true
}

// Confirm marks id's current parent pointer as a Union-confirmed final
// root, so Converge stops re-querying it.
func (b *Block) Confirm(id simplex.ID) {
	b.Resolved[id] = true
}

// IsRoot reports whether id is present and is its own parent.
func (b *Block) IsRoot(id simplex.ID) bool {
	p, ok := b.Parent[id]

	return ok && p == id
}

// SetParent points id at p. p must be canonically smaller than id
// (spec.md §4.4), except when id is being re-rooted to itself.
func (b *Block) SetParent(id, p simplex.ID) error {
	if _, ok := b.Parent[id]; !ok {
		return ErrUnknownID
	}
	if id != p && !p.Less(id) {
		return ErrNotLargerParent
	}
	b.Parent[id] = p
	b.Resolved[id] = id == p

	return nil
}

// Find walks id's parent chain within this block, compressing the path as
// it goes. complete is false if the walk reached an id this block has no
// record of (its true parent is owned by a remote rank, and Find stops at
// the last locally-known node so the caller can issue a Query for it).
func (b *Block) Find(id simplex.ID) (root simplex.ID, complete bool) {
	cur, ok := b.Parent[id]
	if !ok {
		return id, false
	}

	var path []simplex.ID
	for cur != id {
		path = append(path, id)
		id = cur
		next, ok := b.Parent[id]
		if !ok {
			// id itself is known (it was somebody's parent) but has no
			// local entry: its true owner is remote.
			for _, p := range path {
				b.Parent[p] = id
			}

			return id, false
		}
		cur = next
	}

	for _, p := range path {
		b.Parent[p] = id
		b.Resolved[p] = true
	}

	return id, true
}

// Unite merges the sets containing a and b, both already local roots,
// setting the canonically larger root to point at the smaller one
// (spec.md §4.4's "unite" operation) and returns the surviving root.
func (b *Block) Unite(a, bID simplex.ID) simplex.ID {
	if a == bID {
		return a
	}

	smaller, larger := a, bID
	if larger.Less(smaller) {
		smaller, larger = larger, smaller
	}
	b.Parent[larger] = smaller

	return smaller
}
