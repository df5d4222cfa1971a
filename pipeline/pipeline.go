package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/critrace/balance"
	"github.com/katalvlaran/critrace/detector"
	"github.com/katalvlaran/critrace/exchange"
	"github.com/katalvlaran/critrace/field"
	"github.com/katalvlaran/critrace/internal/logging"
	"github.com/katalvlaran/critrace/lattice"
	"github.com/katalvlaran/critrace/relation"
	"github.com/katalvlaran/critrace/simplex"
	"github.com/katalvlaran/critrace/trajectory"
	"github.com/katalvlaran/critrace/unionfind"
)

// ErrVolumeTooFlat indicates a volume with fewer than two axes (at least
// one spatial axis plus the time axis is required).
var ErrVolumeTooFlat = errors.New("pipeline: volume needs at least one spatial axis and a time axis")

// Runner orchestrates one end-to-end pass: Gradient/Hessian derivation,
// per-rank detection, relation building, optional rebalancing,
// union-find convergence, and trajectory assembly.
type Runner struct {
	cfg    Config
	logger logging.Logger
}

// NewRunner returns a Runner for cfg. A nil logger is replaced with
// logging.NullLogger{}.
func NewRunner(cfg Config, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NullLogger{}
	}

	return &Runner{cfg: cfg, logger: logger}
}

// Run derives trajectories from volume, partitioning it into r.cfg.NBlocks
// ranks and running every phase spec.md §4 describes.
func (r *Runner) Run(ctx context.Context, volume field.Scalar) ([]trajectory.Trajectory, error) {
	dim := len(volume.Dims)
	if dim < 2 {
		return nil, ErrVolumeTooFlat
	}

	global, err := lattice.New(make([]int, dim), volume.Dims)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	given := make([]bool, dim)
	given[dim-1] = true // the time axis is never split
	ghostMargin := make([]int, dim)
	for i := range ghostMargin {
		ghostMargin[i] = 1
	}

	nblocks := r.cfg.NBlocks
	if nblocks < 1 {
		nblocks = 1
	}
	nthreads := r.cfg.NThreads
	if nthreads < 1 {
		nthreads = 1
	}

	parts, err := global.Partition(nblocks, given, ghostMargin)
	if err != nil {
		return nil, fmt.Errorf("pipeline: partition: %w", err)
	}

	perRank := make([]map[simplex.ID]*detector.Intersection, len(parts))
	var totals detector.Diagnostics
	for rank, part := range parts {
		mesh, err := simplex.New(dim, part.Ghost)
		if err != nil {
			return nil, fmt.Errorf("pipeline: mesh for rank %d: %w", rank, err)
		}

		grad, err := field.Gradient(&volume, part.Ghost)
		if err != nil {
			return nil, fmt.Errorf("pipeline: gradient for rank %d: %w", rank, err)
		}
		hess, err := field.Hessian(grad, part.Ghost)
		if err != nil {
			return nil, fmt.Errorf("pipeline: hessian for rank %d: %w", rank, err)
		}

		isecs, diag, err := detector.Detect(ctx, mesh, &volume, grad, hess, part.Ghost, r.cfg.CriticalPointType, nthreads)
		if err != nil {
			return nil, fmt.Errorf("pipeline: detect for rank %d: %w", rank, err)
		}
		relation.Build(mesh, part.Core, isecs)

		perRank[rank] = isecs
		totals.Singular += diag.Singular
		totals.OutOfRange += diag.OutOfRange
		totals.Rejected += diag.Rejected
		r.logger.WithField("rank", rank).Debug("detected %d candidate intersections", len(isecs))
	}
	r.logger.Info("detection complete: singular=%d out_of_range=%d rejected=%d", totals.Singular, totals.OutOfRange, totals.Rejected)

	merged := mergeIntersections(perRank)

	owner := latticeOwner(parts, dim)
	ring := exchange.NewRing(len(parts))
	if r.cfg.LoadBalancing {
		points := make([]balance.Point, 0, len(merged))
		for id, isec := range merged {
			if isec.X == nil {
				continue
			}
			points = append(points, balance.Point{ID: id, Coord: isec.X})
		}
		if len(points) > 0 {
			bounds, err := balance.Rebalance(ctx, ring, points, len(parts))
			if err != nil {
				return nil, fmt.Errorf("pipeline: rebalance: %w", err)
			}
			owner = boundsOwner(bounds, merged)
			r.logger.Info("rebalanced into %d partitions", len(bounds))
		}
	}

	blocks := make([]*unionfind.Block, len(parts))
	for i := range blocks {
		blocks[i] = unionfind.NewBlock(i)
	}
	for id := range merged {
		blocks[owner(id)].Add(id)
	}
	for id, isec := range merged {
		rank := owner(id)
		for rel := range isec.Related {
			if rel == id {
				continue
			}
			if owner(rel) == rank {
				blocks[rank].Unite(id, rel)
			} else if rel.Less(id) {
				if err := blocks[rank].SetParent(id, rel); err != nil {
					return nil, fmt.Errorf("pipeline: seed parent: %w", err)
				}
			}
		}
	}

	if err := unionfind.Converge(ctx, ring, blocks, owner); err != nil {
		return nil, fmt.Errorf("pipeline: converge: %w", err)
	}

	globalParent := make(map[simplex.ID]simplex.ID, len(merged))
	for _, b := range blocks {
		for id, p := range b.Parent {
			globalParent[id] = p
		}
	}

	return trajectory.Assemble(components(globalParent), merged, nil, r.cfg.LengthThreshold, r.cfg.ValueThreshold), nil
}

func mergeIntersections(perRank []map[simplex.ID]*detector.Intersection) map[simplex.ID]*detector.Intersection {
	merged := make(map[simplex.ID]*detector.Intersection)
	for _, isecs := range perRank {
		for id, isec := range isecs {
			existing, ok := merged[id]
			if !ok {
				clone := *isec
				clone.Related = make(map[simplex.ID]struct{}, len(isec.Related))
				for rel := range isec.Related {
					clone.Related[rel] = struct{}{}
				}
				merged[id] = &clone

				continue
			}
			for rel := range isec.Related {
				existing.Related[rel] = struct{}{}
			}
		}
	}

	return merged
}

func latticeOwner(parts []lattice.Partition, dim int) func(simplex.ID) int {
	return func(id simplex.ID) int {
		c := cornerInts(id, dim)
		for i, p := range parts {
			if p.Core.Contains(c) {
				return i
			}
		}

		return 0
	}
}

// boundsOwner resolves ownership by a forward scan over bounds (rank
// ascending), so the highest-ranked partition wins on a shared split
// boundary (balance.Bounds.Contains is inclusive on both ends).
func boundsOwner(bounds []balance.Bounds, intersections map[simplex.ID]*detector.Intersection) func(simplex.ID) int {
	return func(id simplex.ID) int {
		isec, ok := intersections[id]
		if !ok || isec.X == nil {
			return 0
		}
		owner := 0
		for i, b := range bounds {
			if b.Contains(isec.X) {
				owner = i
			}
		}

		return owner
	}
}

func cornerInts(id simplex.ID, dim int) []int {
	out := make([]int, dim)
	for i := 0; i < dim; i++ {
		out[i] = int(id.Corner[i])
	}

	return out
}

// components groups ids by their fully-resolved root in globalParent.
func components(globalParent map[simplex.ID]simplex.ID) [][]simplex.ID {
	find := func(id simplex.ID) simplex.ID {
		for {
			p, ok := globalParent[id]
			if !ok || p == id {
				return id
			}
			id = p
		}
	}

	groups := make(map[simplex.ID][]simplex.ID)
	for id := range globalParent {
		root := find(id)
		groups[root] = append(groups[root], id)
	}

	out := make([][]simplex.ID, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}

	return out
}
