package kmeans

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLloyd_TwoClusters(t *testing.T) {
	ctx := context.Background()
	data := [][]float64{
		{0, 0}, {0, 1}, {1, 0}, // near origin
		{10, 10}, {10, 11}, {11, 10}, // near (10,10)
	}

	res, err := Run(ctx, data, Config{
		K:                2,
		MaxIterations:    100,
		Tolerance:        0,
		Variant:          VariantLloyd,
		InitialCentroids: [][]float64{{0, 0}, {10, 10}},
		Parallelism:      1,
	})
	require.NoError(t, err)
	require.Len(t, res.Centroids, 2)
	assert.True(t, res.Converged)

	// All origin points share one label, all far points the other.
	assert.Equal(t, res.Labels[0], res.Labels[1])
	assert.Equal(t, res.Labels[0], res.Labels[2])
	assert.Equal(t, res.Labels[3], res.Labels[4])
	assert.Equal(t, res.Labels[3], res.Labels[5])
	assert.NotEqual(t, res.Labels[0], res.Labels[3])

	// Centroids are the member means.
	want := map[int][]float64{
		res.Labels[0]: {1.0 / 3, 1.0 / 3},
		res.Labels[3]: {31.0 / 3, 31.0 / 3},
	}
	for c, coords := range want {
		assert.InDelta(t, coords[0], res.Centroids[c][0], 1e-12)
		assert.InDelta(t, coords[1], res.Centroids[c][1], 1e-12)
	}
}

func TestLloyd_MonotonicInertia(t *testing.T) {
	ctx := context.Background()

	rng := rand.New(rand.NewSource(9))
	data := make([][]float64, 300)
	for i := range data {
		data[i] = []float64{rng.Float64() * 10, rng.Float64() * 10}
	}

	// Same seed means the same initial centroids, so inertia after i
	// iterations must be non-increasing in i.
	prev := 0.0
	for iters := 1; iters <= 12; iters++ {
		res, err := Run(ctx, data, Config{
			K:             6,
			MaxIterations: iters,
			Tolerance:     0,
			Variant:       VariantLloyd,
			InitMode:      InitRandom,
			Rand:          rand.New(rand.NewSource(4)),
			Parallelism:   1,
		})
		require.NoError(t, err)

		if iters > 1 {
			assert.LessOrEqual(t, res.Inertia, prev+1e-9, "inertia increased at iteration %d", iters)
		}
		prev = res.Inertia
	}
}

func TestLloyd_EmptyClusterRetainsPosition(t *testing.T) {
	ctx := context.Background()
	data := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

	// The third centroid is so far away it attracts no points; it must
	// keep its position instead of being reinitialized.
	far := []float64{1000, 1000}
	res, err := Run(ctx, data, Config{
		K:                3,
		MaxIterations:    50,
		Tolerance:        0,
		Variant:          VariantLloyd,
		InitialCentroids: [][]float64{{0, 0}, {1, 1}, far},
		Parallelism:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, far, res.Centroids[2])

	for _, l := range res.Labels {
		assert.NotEqual(t, 2, l)
	}
}

func TestLloyd_TieBreaksToLowestIndex(t *testing.T) {
	ctx := context.Background()

	// A single point exactly between two identical-distance centroids.
	data := [][]float64{{0, 0}}
	res, err := Run(ctx, data, Config{
		K:                1,
		MaxIterations:    1,
		Tolerance:        0,
		Variant:          VariantLloyd,
		InitialCentroids: [][]float64{{5, 0}},
		Parallelism:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Labels[0])

	data = [][]float64{{0, 0}, {2, 0}, {-2, 0}}
	res, err = Run(ctx, data, Config{
		K:                2,
		MaxIterations:    1,
		Tolerance:        0,
		Variant:          VariantLloyd,
		InitialCentroids: [][]float64{{1, 0}, {-1, 0}},
		Parallelism:      1,
	})
	require.NoError(t, err)
	// (0,0) is equidistant from both centroids: lowest index wins.
	assert.Equal(t, 0, res.Labels[0])
}

func TestLloyd_DistanceEvalsAccounting(t *testing.T) {
	ctx := context.Background()

	data := make([][]float64, 100)
	rng := rand.New(rand.NewSource(2))
	for i := range data {
		data[i] = []float64{rng.Float64(), rng.Float64()}
	}

	res, err := Run(ctx, data, Config{
		K:             4,
		MaxIterations: 25,
		Tolerance:     0,
		Variant:       VariantLloyd,
		InitMode:      InitRandom,
		Rand:          rand.New(rand.NewSource(1)),
		Parallelism:   1,
	})
	require.NoError(t, err)

	// Lloyd evaluates exactly m*k distances per iteration.
	assert.Equal(t, int64(100*4*res.Iterations), res.DistanceEvals)
}
