package trajfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/critrace/trajectory"
)

// ErrDimMismatch indicates a Trajectory's points don't all share the same
// coordinate dimensionality, or don't match the dimension Read was asked
// to decode with.
var ErrDimMismatch = errors.New("trajfile: point dimension mismatch")

// Write serializes trajs to w using spec.md §6's collective ordered
// layout: each Trajectory is one record, written as a little-endian
// float32 count n followed by n*(d+1) little-endian float32 values (each
// sample's d coordinates then its scalar value). Every trajectory across
// the file must agree on d; Write returns ErrDimMismatch otherwise.
func Write(w io.Writer, trajs []trajectory.Trajectory) error {
	bw := bufio.NewWriter(w)

	dim := -1
	for _, t := range trajs {
		for _, p := range t.Points {
			if dim == -1 {
				dim = len(p.X)
			} else if len(p.X) != dim {
				return ErrDimMismatch
			}
		}
	}

	for ti, t := range trajs {
		if err := binary.Write(bw, binary.LittleEndian, float32(len(t.Points))); err != nil {
			return fmt.Errorf("trajfile: write count for trajectory %d: %w", ti, err)
		}
		for _, p := range t.Points {
			for _, c := range p.X {
				if err := binary.Write(bw, binary.LittleEndian, float32(c)); err != nil {
					return fmt.Errorf("trajfile: write coordinate for trajectory %d: %w", ti, err)
				}
			}
			if err := binary.Write(bw, binary.LittleEndian, float32(p.Val)); err != nil {
				return fmt.Errorf("trajfile: write value for trajectory %d: %w", ti, err)
			}
		}
	}

	return bw.Flush()
}

// Read deserializes r back into a []trajectory.Trajectory, given the
// coordinate dimension dim every point was written with (the file format
// itself carries no dimension tag, matching spec.md §6's fixed-layout
// description). Read stops cleanly at io.EOF between records and returns
// an error if a record is truncated mid-point.
func Read(r io.Reader, dim int) ([]trajectory.Trajectory, error) {
	if dim < 1 {
		return nil, ErrDimMismatch
	}
	br := bufio.NewReader(r)

	var out []trajectory.Trajectory
	for {
		var n float32
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("trajfile: read count: %w", err)
		}

		count := int(n)
		points := make([]trajectory.Point, count)
		for i := 0; i < count; i++ {
			x := make([]float64, dim)
			for a := 0; a < dim; a++ {
				var c float32
				if err := binary.Read(br, binary.LittleEndian, &c); err != nil {
					return nil, fmt.Errorf("trajfile: read coordinate %d of point %d: %w", a, i, err)
				}
				x[a] = float64(c)
			}
			var v float32
			if err := binary.Read(br, binary.LittleEndian, &v); err != nil {
				return nil, fmt.Errorf("trajfile: read value of point %d: %w", i, err)
			}
			points[i] = trajectory.Point{X: x, Val: float64(v)}
		}
		out = append(out, trajectory.Trajectory{Points: points})
	}

	return out, nil
}
