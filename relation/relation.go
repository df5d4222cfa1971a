package relation

import (
	"sort"

	"github.com/katalvlaran/critrace/detector"
	"github.com/katalvlaran/critrace/lattice"
	"github.com/katalvlaran/critrace/simplex"
)

// Build links every pair of intersections that share a coboundary
// hypercell, writing directly into each Intersection.Related set. For each
// hypercell f with more than one intersecting face, the canonically
// smallest face id is related to every other local face; when the
// hypercell straddles core's boundary, every remote face smaller than a
// local face is related to that local face too (ported from
// add_unions/add_related_elements_to_intersections: only ever relate a
// smaller id into a larger id's Related set, so the later union-find
// convergence always merges toward the smaller canonical id).
func Build(m *simplex.Mesh, core *lattice.Lattice, intersections map[simplex.ID]*detector.Intersection) {
	visited := make(map[simplex.ID]struct{})
	for eid := range intersections {
		for _, hc := range m.SideOf(eid) {
			if _, seen := visited[hc]; seen {
				continue
			}
			visited[hc] = struct{}{}
			addUnions(m, core, hc, intersections)
		}
	}
}

func addUnions(m *simplex.Mesh, core *lattice.Lattice, hc simplex.ID, intersections map[simplex.ID]*detector.Intersection) {
	if !m.Valid(hc) {
		return
	}

	var features, inBlock []simplex.ID
	for _, f := range m.Sides(hc) {
		if _, ok := intersections[f]; !ok {
			continue
		}
		features = append(features, f)
		if core.Contains(cornerInts(f, core.Dim)) {
			inBlock = append(inBlock, f)
		}
	}
	if len(features) <= 1 {
		return
	}

	sort.Slice(inBlock, func(i, j int) bool { return inBlock[i].Less(inBlock[j]) })
	if len(inBlock) > 1 {
		first := inBlock[0]
		for _, curr := range inBlock[1:] {
			relate(first, curr, intersections)
		}
	}

	if len(inBlock) == 0 || len(features) == len(inBlock) {
		return
	}

	local := make(map[simplex.ID]struct{}, len(inBlock))
	for _, b := range inBlock {
		local[b] = struct{}{}
	}
	for _, feat := range features {
		if _, ok := local[feat]; ok {
			continue
		}
		for _, b := range inBlock {
			if feat.Less(b) {
				relate(feat, b, intersections)
			}
		}
	}
}

// relate records that smaller is a relation of larger: larger's Related
// set gains smaller. Only ever called with smaller.Less(larger) true.
func relate(smaller, larger simplex.ID, intersections map[simplex.ID]*detector.Intersection) {
	intersections[larger].Related[smaller] = struct{}{}
}

func cornerInts(id simplex.ID, dim int) []int {
	out := make([]int, dim)
	for i := 0; i < dim; i++ {
		out[i] = int(id.Corner[i])
	}

	return out
}
