package kmeans

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomInitializer(t *testing.T) {
	ctx := context.Background()
	data := [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}

	init := NewRandomInitializer(rand.New(rand.NewSource(1)))
	centroids, err := init.InitCentroids(ctx, data, 3)
	require.NoError(t, err)
	require.Len(t, centroids, 3)

	// Distinct points, selected without replacement.
	seen := make(map[float64]bool)
	for _, c := range centroids {
		require.Len(t, c, 2)
		assert.False(t, seen[c[0]])
		seen[c[0]] = true
	}
}

func TestRandomInitializer_CopiesPoints(t *testing.T) {
	ctx := context.Background()
	data := [][]float64{{1, 1}, {2, 2}}

	init := NewRandomInitializer(rand.New(rand.NewSource(1)))
	centroids, err := init.InitCentroids(ctx, data, 2)
	require.NoError(t, err)

	for _, c := range centroids {
		c[0] = 99
	}
	assert.Equal(t, [][]float64{{1, 1}, {2, 2}}, data)
}

func TestKMeansPlusPlus_SpreadsAcrossBlobs(t *testing.T) {
	ctx := context.Background()

	// Two tight, well-separated blobs. k-means++ must pick one seed from
	// each; uniform random frequently would not.
	var data [][]float64
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		data = append(data, []float64{rng.NormFloat64() * 0.01, rng.NormFloat64() * 0.01})
	}
	for i := 0; i < 50; i++ {
		data = append(data, []float64{100 + rng.NormFloat64()*0.01, 100 + rng.NormFloat64()*0.01})
	}

	init := NewKMeansPlusPlusInitializer(rand.New(rand.NewSource(1)), 1)
	centroids, err := init.InitCentroids(ctx, data, 2)
	require.NoError(t, err)
	require.Len(t, centroids, 2)

	near := func(c []float64, x float64) bool {
		return c[0] > x-1 && c[0] < x+1
	}
	onLeft := near(centroids[0], 0) || near(centroids[1], 0)
	onRight := near(centroids[0], 100) || near(centroids[1], 100)
	assert.True(t, onLeft, "expected one seed near the origin blob")
	assert.True(t, onRight, "expected one seed near the far blob")
}

func TestKMeansPlusPlus_Deterministic(t *testing.T) {
	ctx := context.Background()

	rng := rand.New(rand.NewSource(5))
	data := make([][]float64, 200)
	for i := range data {
		data[i] = []float64{rng.Float64() * 10, rng.Float64() * 10}
	}

	a, err := NewKMeansPlusPlusInitializer(rand.New(rand.NewSource(42)), 1).InitCentroids(ctx, data, 5)
	require.NoError(t, err)
	b, err := NewKMeansPlusPlusInitializer(rand.New(rand.NewSource(42)), 4).InitCentroids(ctx, data, 5)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same seed must pick the same seeds regardless of parallelism")
}

func TestKMeansPlusPlus_AllPointsIdentical(t *testing.T) {
	ctx := context.Background()

	// Every point coincides, so all D(x)^2 mass is zero after the first
	// draw; the initializer must fall back to uniform draws, not loop or
	// divide by zero.
	data := [][]float64{{1, 2}, {1, 2}, {1, 2}, {1, 2}}

	init := NewKMeansPlusPlusInitializer(rand.New(rand.NewSource(1)), 1)
	centroids, err := init.InitCentroids(ctx, data, 3)
	require.NoError(t, err)
	require.Len(t, centroids, 3)
	for _, c := range centroids {
		assert.Equal(t, []float64{1, 2}, c)
	}
}

func TestKMeansPlusPlus_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := make([][]float64, 5000)
	for i := range data {
		data[i] = []float64{float64(i), float64(i)}
	}

	_, err := NewKMeansPlusPlusInitializer(rand.New(rand.NewSource(1)), 4).InitCentroids(ctx, data, 4)
	assert.ErrorIs(t, err, context.Canceled)
}
