package trajectory

import (
	"math"
	"sort"

	"github.com/katalvlaran/critrace/detector"
	"github.com/katalvlaran/critrace/simplex"
)

// Point is one sample along a Trajectory: its physical position and the
// scalar field value at that position.
type Point struct {
	X   []float64
	Val float64
}

// Trajectory is a maximal simple path of critical points traced through
// successive time slabs.
type Trajectory struct {
	Points []Point
}

// Assemble turns connected components of the converged union-find forest
// into Trajectories. Each component is walked once via double-BFS to
// find its longest simple path (the diameter of its Related-edge
// adjacency graph); a path survives if it has at least lengthThreshold
// points and its maximum sampled value exceeds valueThreshold. m is
// accepted for parity with the rest of the pipeline's mesh-aware
// signatures but isn't consulted: every edge this function needs is
// already recorded in intersections' Related sets.
func Assemble(components [][]simplex.ID, intersections map[simplex.ID]*detector.Intersection,
	m *simplex.Mesh, lengthThreshold int, valueThreshold float64) []Trajectory {
	var out []Trajectory

	for _, comp := range components {
		if len(comp) == 0 {
			continue
		}
		adj := buildAdjacency(comp, intersections)
		path := longestPath(comp, adj)
		if len(path) < lengthThreshold {
			continue
		}
		orderByTime(path, intersections)

		points := make([]Point, len(path))
		maxVal := math.Inf(-1)
		for i, id := range path {
			isec := intersections[id]
			points[i] = Point{X: isec.X, Val: isec.Val}
			if isec.Val > maxVal {
				maxVal = isec.Val
			}
		}
		if maxVal <= valueThreshold {
			continue
		}

		out = append(out, Trajectory{Points: points})
	}

	return out
}

// orderByTime sorts path into spec.md §4.6's required order: ascending on
// the last coordinate of X (the time axis), ties broken by canonical id.
func orderByTime(path []simplex.ID, intersections map[simplex.ID]*detector.Intersection) {
	timeOf := func(id simplex.ID) float64 {
		x := intersections[id].X
		if len(x) == 0 {
			return 0
		}

		return x[len(x)-1]
	}
	sort.Slice(path, func(i, j int) bool {
		ti, tj := timeOf(path[i]), timeOf(path[j])
		if ti != tj {
			return ti < tj
		}

		return path[i].Less(path[j])
	})
}

func buildAdjacency(comp []simplex.ID, intersections map[simplex.ID]*detector.Intersection) map[simplex.ID][]simplex.ID {
	member := make(map[simplex.ID]struct{}, len(comp))
	for _, id := range comp {
		member[id] = struct{}{}
	}

	adj := make(map[simplex.ID][]simplex.ID, len(comp))
	for _, id := range comp {
		isec, ok := intersections[id]
		if !ok {
			continue
		}
		for rel := range isec.Related {
			if _, ok := member[rel]; !ok {
				continue
			}
			adj[id] = append(adj[id], rel)
			adj[rel] = append(adj[rel], id)
		}
	}

	return adj
}

// longestPath returns the diameter path of comp's adjacency graph via
// two breadth-first searches: the farthest node from an arbitrary start
// is one endpoint of the diameter, and the farthest node from there is
// the other.
func longestPath(comp []simplex.ID, adj map[simplex.ID][]simplex.ID) []simplex.ID {
	far1, _ := bfsFarthest(comp[0], adj)
	far2, parent := bfsFarthest(far1, adj)

	var path []simplex.ID
	for cur := far2; ; {
		path = append(path, cur)
		p, ok := parent[cur]
		if !ok {
			break
		}
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

func bfsFarthest(start simplex.ID, adj map[simplex.ID][]simplex.ID) (simplex.ID, map[simplex.ID]simplex.ID) {
	visited := map[simplex.ID]bool{start: true}
	parent := make(map[simplex.ID]simplex.ID)
	queue := []simplex.ID{start}
	last := start

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		last = cur

		for _, nb := range adj[cur] {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			parent[nb] = cur
			queue = append(queue, nb)
		}
	}

	return last, parent
}
