// Package critrace is a distributed feature-tracking toolkit: it extracts
// critical points from a time-varying scalar field on a regular grid,
// stitches them into trajectories across spatial subdomains with a
// distributed union-find, and rebalances detected features across
// processes with a k-d tree partition.
//
// The pipeline, leaves first:
//
//	lattice/    — index arithmetic over an axis-aligned hyperrectangle,
//	              core/ghost partitioning across ranks
//	simplex/    — canonical d-simplex triangulation and ids over a lattice
//	field/      — finite-difference gradient/Hessian of a gridded scalar
//	detector/   — per-simplex critical point solve and classification
//	relation/   — coboundary linking between sibling intersections
//	unionfind/  — per-rank union-find forest, converging via exchange
//	balance/    — k-d tree repartitioning of detected features
//	trajectory/ — component-to-path decomposition and threshold filtering
//	exchange/   — the all-to-all / iterative-exchange message primitive
//	pipeline/   — Runner: wires every phase into one end-to-end pass
//
// trajfile/ and dump/ implement the optional output formats; internal/
// holds the small linear-algebra and logging helpers the above packages
// share but don't expose.
//
//	go get github.com/katalvlaran/critrace
package critrace
