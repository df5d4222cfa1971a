// Package unionfind implements the per-block disjoint-set bookkeeping
// spec.md calls DistributedUnionFind: canonical-order union (the larger
// simplex id always points at the smaller), path compression, and the
// asynchronous Query/Pointer/Union convergence protocol that resolves
// parent pointers owned by a different rank via an exchange.Ring.
package unionfind
