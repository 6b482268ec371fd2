package kmeansgo_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmeansgo"
)

func TestModel_Predict(t *testing.T) {
	m := &kmeansgo.Model{
		Centroids: [][]float64{{0, 0}, {10, 10}},
	}

	labels, err := m.Predict([][]float64{{1, 1}, {9, 9}, {5, 5}})
	require.NoError(t, err)
	// (5,5) is equidistant: lowest centroid index wins.
	assert.Equal(t, []int{0, 1, 0}, labels)
}

func TestModel_PredictErrors(t *testing.T) {
	m := &kmeansgo.Model{
		Centroids: [][]float64{{0, 0}, {10, 10}},
	}

	_, err := m.Predict([][]float64{{1, 1, 1}})
	assert.ErrorIs(t, err, kmeansgo.ErrInvalidConfiguration)

	_, err = m.Predict([][]float64{{math.NaN(), 0}})
	assert.ErrorIs(t, err, kmeansgo.ErrDegenerateInput)

	empty := &kmeansgo.Model{}
	_, err = empty.Predict([][]float64{{1, 1}})
	assert.ErrorIs(t, err, kmeansgo.ErrInvalidConfiguration)
}

func TestNewModel_CopiesCentroids(t *testing.T) {
	ctx := context.Background()

	data := [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
	result, err := kmeansgo.Fit(ctx, data, 2, kmeansgo.WithSeed(1))
	require.NoError(t, err)

	m := kmeansgo.NewModel(result)
	assert.Equal(t, result.Centroids, m.Centroids)
	assert.Equal(t, result.Inertia, m.Inertia)
	assert.Equal(t, 2, m.K())
	assert.Equal(t, 2, m.Dimension())

	// Model predictions agree with training labels.
	labels, err := m.Predict(data)
	require.NoError(t, err)
	assert.Equal(t, result.Labels, labels)

	// Mutating the model must not touch the fit result.
	m.Centroids[0][0] = 99
	assert.NotEqual(t, 99.0, result.Centroids[0][0])
}
