// Package trajectory reduces each converged union-find component to a
// single path, its longest simple path, and keeps the paths that clear
// the configured length and value thresholds (spec.md §4.6). Nodes of a
// component that lie off that path, such as side branches, are not
// emitted as trajectories of their own. Adjacency within a component
// comes from the Related edges relation.Build wrote onto each
// detector.Intersection; path extraction is the double-BFS "farthest
// node" technique, reusing the queue-and-visited-set shape of
// algorithms/bfs.go.
package trajectory
