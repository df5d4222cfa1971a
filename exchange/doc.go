// Package exchange abstracts the message substrate spec.md calls the
// "exchange primitive": a Ring of simulated ranks (one goroutine each)
// that trade Query/Pointer/Union messages while resolving a distributed
// union-find. AllToAll implements the two-round enqueue/dequeue protocol;
// IExchange implements the progress-driven loop that runs until global
// quiescence. Both are coordinated with golang.org/x/sync/errgroup, the
// same fan-out idiom the teacher's hprof parser uses for its worker pool.
package exchange
