// Package pipeline threads a scalar volume through gradient/Hessian
// derivation, per-rank critical point detection, relation building,
// optional load balancing, distributed union-find convergence, and
// trajectory assembly. The state that original_source's
// distributed_critical_point_tracking_3d.cpp kept as global mutable
// singletons (intersections, b, m, block_m, ...) lives in local variables
// of Runner.Run and is passed explicitly to each phase (spec.md §9);
// Runner itself holds only the Config and the logger.
package pipeline
