package detector

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/critrace/field"
	"github.com/katalvlaran/critrace/internal/linalg"
	"github.com/katalvlaran/critrace/lattice"
	"github.com/katalvlaran/critrace/simplex"
	"golang.org/x/sync/errgroup"
)

// solveTol is the relative pivot tolerance below which the barycentric
// system is treated as singular. eigenTol bounds the Jacobi sweep's
// symmetry check and off-diagonal convergence.
const (
	solveTol   = 1e-9
	eigenTol   = 1e-9
	eigenIters = 100
	shardCount = 16
)

// Mode selects which critical points Detect keeps.
type Mode int

const (
	// ModeAll accepts every simplex whose barycentric solve lands inside
	// the closed simplex, regardless of Hessian sign.
	ModeAll Mode = iota
	// ModeMaximum additionally requires every eigenvalue of the
	// interpolated spatial Hessian to be strictly negative.
	ModeMaximum
)

// String renders mode as spec.md §6's configuration value ("all" or
// "maximum").
func (m Mode) String() string {
	if m == ModeMaximum {
		return "maximum"
	}

	return "all"
}

// ParseMode parses spec.md §6's critical_point_type configuration string
// ("all" or "maximum") into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "all":
		return ModeAll, nil
	case "maximum":
		return ModeMaximum, nil
	default:
		return 0, fmt.Errorf("detector: unknown critical_point_type %q", s)
	}
}

// Intersection records a critical point found inside one (d-1)-simplex.
type Intersection struct {
	EID     simplex.ID
	X       []float64
	Val     float64
	Corner  []int32
	Related map[simplex.ID]struct{}
}

// Diagnostics counts why candidate simplices were rejected. Every field is
// updated with atomic adds, so a *Diagnostics may be read concurrently
// with Detect still running as long as the caller tolerates a snapshot
// rather than a final value.
type Diagnostics struct {
	Singular   int64 // barycentric or Hessian system had no stable solve
	OutOfRange int64 // solved mu fell outside the closed simplex
	Rejected   int64 // ModeMaximum Hessian sign test failed
}

type shard struct {
	mu sync.Mutex
	m  map[simplex.ID]*Intersection
}

// Detect iterates every (d-1)-simplex of m whose corner lies inside ghost,
// solving the barycentric system that zeroes the interpolated gradient g
// and, for ModeMaximum, filtering by the sign of the interpolated Hessian
// h. Accepted simplices are recorded against the scalar field s to fill in
// Intersection.Val. Work is fanned out across nthreads goroutines; the
// returned map is safe to range over once Detect returns. On error the
// map is nil and only the Diagnostics gathered so far are returned.
func Detect(ctx context.Context, m *simplex.Mesh, s *field.Scalar, g *field.Vector, h *field.Tensor,
	ghost *lattice.Lattice, mode Mode, nthreads int) (map[simplex.ID]*Intersection, *Diagnostics, error) {
	d := m.Dim
	k := d - 1

	var ids []simplex.ID
	m.ElementFor(k, func(id simplex.ID) bool {
		corner := make([]int, d)
		for a := 0; a < d; a++ {
			corner[a] = int(id.Corner[a])
		}
		if ghost.Contains(corner) {
			ids = append(ids, id)
		}

		return true
	})

	shards := make([]shard, shardCount)
	for i := range shards {
		shards[i].m = make(map[simplex.ID]*Intersection)
	}
	diag := &Diagnostics{}

	tasks := make(chan simplex.ID, len(ids))
	for _, id := range ids {
		tasks <- id
	}
	close(tasks)

	grp, gctx := errgroup.WithContext(ctx)
	if nthreads < 1 {
		nthreads = 1
	}
	grp.SetLimit(nthreads)

	for i := 0; i < nthreads; i++ {
		grp.Go(func() error {
			for id := range tasks {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				isect, ok := classify(id, d, s, g, h, mode, diag)
				if !ok {
					continue
				}

				sh := &shards[uint32(id.Corner[0])%shardCount]
				sh.mu.Lock()
				sh.m[id] = isect
				sh.mu.Unlock()
			}

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, diag, err
	}

	out := make(map[simplex.ID]*Intersection, len(ids))
	for i := range shards {
		for id, isect := range shards[i].m {
			out[id] = isect
		}
	}

	return out, diag, nil
}

// classify solves the barycentric system for id and, on acceptance,
// builds its Intersection. ok is false whenever the candidate was
// rejected (diag has already been updated with the reason).
func classify(id simplex.ID, d int, s *field.Scalar, g *field.Vector, h *field.Tensor, mode Mode, diag *Diagnostics) (*Intersection, bool) {
	verts := id.Vertices()

	a := make([][]float64, d)
	b := make([]float64, d)
	for r := 0; r < d; r++ {
		a[r] = make([]float64, d)
	}
	for c := 0; c < d; c++ {
		p := intsOf(verts[c], d)
		gv := g.At(p)
		for r := 0; r < g.Comp; r++ {
			a[r][c] = gv[r]
		}
		a[d-1][c] = 1
	}
	b[d-1] = 1

	// scale the pivot tolerance by the largest entry of the system so it
	// is relative rather than absolute.
	scale := 0.0
	for r := range a {
		for _, v := range a[r] {
			if v < 0 {
				v = -v
			}
			if v > scale {
				scale = v
			}
		}
	}

	mu, err := linalg.Solve(a, b, solveTol*scale)
	if err != nil {
		atomic.AddInt64(&diag.Singular, 1)

		return nil, false
	}

	for _, m := range mu {
		if m < -solveTol || m > 1+solveTol {
			atomic.AddInt64(&diag.OutOfRange, 1)

			return nil, false
		}
	}

	if mode == ModeMaximum {
		comp := g.Comp
		hmu := make([][]float64, comp)
		for r := range hmu {
			hmu[r] = make([]float64, comp)
		}
		for c := 0; c < d; c++ {
			hv := h.At(intsOf(verts[c], comp))
			for r := 0; r < comp; r++ {
				for cc := 0; cc < comp; cc++ {
					hmu[r][cc] += mu[c] * hv[r*comp+cc]
				}
			}
		}

		eigs, err := linalg.Eigen(hmu, eigenTol, eigenIters)
		if err != nil {
			atomic.AddInt64(&diag.Singular, 1)

			return nil, false
		}
		for _, e := range eigs {
			if e >= 0 {
				atomic.AddInt64(&diag.Rejected, 1)

				return nil, false
			}
		}
	}

	x := make([]float64, d)
	val := 0.0
	for c := 0; c < d; c++ {
		p := intsOf(verts[c], d)
		val += mu[c] * s.At(p)
		for r := 0; r < d; r++ {
			x[r] += mu[c] * float64(verts[c][r])
		}
	}

	corner := make([]int32, d)
	copy(corner, id.Corner[:d])

	return &Intersection{EID: id, X: x, Val: val, Corner: corner, Related: map[simplex.ID]struct{}{}}, true
}

func intsOf(v [simplex.MaxDim]int32, n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = int(v[i])
	}

	return out
}
