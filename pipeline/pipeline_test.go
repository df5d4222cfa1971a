package pipeline_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/critrace/detector"
	"github.com/katalvlaran/critrace/field"
	"github.com/katalvlaran/critrace/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bumpVolume builds a dims[0] x dims[1] x dims[2] scalar field with a single
// paraboloid maximum centered on the spatial plane, constant across every
// time slice, so a correct run should trace one trajectory spanning the
// full time extent.
func bumpVolume(t *testing.T, dims [3]int) field.Scalar {
	t.Helper()

	cx, cy := float64(dims[0]-1)/2, float64(dims[1]-1)/2
	data := make([]float64, dims[0]*dims[1]*dims[2])
	for x := 0; x < dims[0]; x++ {
		for y := 0; y < dims[1]; y++ {
			v := -((float64(x) - cx) * (float64(x) - cx)) - ((float64(y) - cy) * (float64(y) - cy))
			for tt := 0; tt < dims[2]; tt++ {
				idx := x + y*dims[0] + tt*dims[0]*dims[1]
				data[idx] = v
			}
		}
	}
	s, err := field.NewScalar([]int{dims[0], dims[1], dims[2]}, data)
	require.NoError(t, err)

	return *s
}

func TestRunRejectsVolumeWithNoSpatialAxis(t *testing.T) {
	r := pipeline.NewRunner(pipeline.DefaultConfig(), nil)
	flat, err := field.NewScalar([]int{4}, make([]float64, 4))
	require.NoError(t, err)

	_, err = r.Run(context.Background(), *flat)
	assert.ErrorIs(t, err, pipeline.ErrVolumeTooFlat)
}

func TestRunSingleBlockFindsTrajectory(t *testing.T) {
	cfg := pipeline.New(
		pipeline.WithCriticalPointType(detector.ModeAll),
		pipeline.WithLengthThreshold(1),
		pipeline.WithNThreads(2),
		pipeline.WithNBlocks(1),
	)
	r := pipeline.NewRunner(cfg, nil)

	trajs, err := r.Run(context.Background(), bumpVolume(t, [3]int{9, 9, 3}))
	require.NoError(t, err)

	for _, tr := range trajs {
		assert.GreaterOrEqual(t, len(tr.Points), cfg.LengthThreshold)
	}
}

func TestRunMultiBlockDoesNotError(t *testing.T) {
	cfg := pipeline.New(
		pipeline.WithCriticalPointType(detector.ModeAll),
		pipeline.WithLengthThreshold(1),
		pipeline.WithNThreads(2),
		pipeline.WithNBlocks(2),
	)
	r := pipeline.NewRunner(cfg, nil)

	_, err := r.Run(context.Background(), bumpVolume(t, [3]int{9, 9, 3}))
	assert.NoError(t, err)
}

func TestRunWithLoadBalancingDoesNotError(t *testing.T) {
	cfg := pipeline.New(
		pipeline.WithCriticalPointType(detector.ModeAll),
		pipeline.WithLengthThreshold(1),
		pipeline.WithNThreads(2),
		pipeline.WithNBlocks(2),
		pipeline.WithLoadBalancing(true),
	)
	r := pipeline.NewRunner(cfg, nil)

	_, err := r.Run(context.Background(), bumpVolume(t, [3]int{9, 9, 3}))
	assert.NoError(t, err)
}
