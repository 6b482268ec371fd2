package kmeansgo

import (
	"math"

	"github.com/hupe1980/kmeansgo/distance"
)

// Model is a fitted centroid set, detached from the training data.
// It labels new points and round-trips through SaveModel/LoadModel.
type Model struct {
	// Centroids is the final centroid set from the fit.
	Centroids [][]float64 `json:"centroids"`
	// Inertia is the training inertia, carried for reporting.
	Inertia float64 `json:"inertia"`
	// Iterations is the number of training iterations, carried for
	// reporting.
	Iterations int `json:"iterations"`
}

// NewModel extracts a Model from a fit result. The centroids are copied,
// so the model stays valid independently of the result.
func NewModel(result *FitResult) *Model {
	centroids := make([][]float64, len(result.Centroids))
	for i, c := range result.Centroids {
		centroids[i] = make([]float64, len(c))
		copy(centroids[i], c)
	}

	return &Model{
		Centroids:  centroids,
		Inertia:    result.Inertia,
		Iterations: result.Iterations,
	}
}

// Dimension returns the dimension of the model's centroids.
func (m *Model) Dimension() int {
	if len(m.Centroids) == 0 {
		return 0
	}
	return len(m.Centroids[0])
}

// K returns the number of centroids.
func (m *Model) K() int { return len(m.Centroids) }

// Predict labels each point with the index of its nearest centroid,
// ties broken by the lowest centroid index.
func (m *Model) Predict(points [][]float64) ([]int, error) {
	if len(m.Centroids) == 0 {
		return nil, &ErrInvalidParam{Param: "model", Reason: "has no centroids"}
	}

	dim := m.Dimension()
	labels := make([]int, len(points))

	for i, p := range points {
		if len(p) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(p), Point: i}
		}
		for d, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ErrNonFinite{Point: i, Dim: d}
			}
		}

		best := 0
		bestDist := distance.SquaredL2(p, m.Centroids[0])
		for c := 1; c < len(m.Centroids); c++ {
			if d := distance.SquaredL2(p, m.Centroids[c]); d < bestDist {
				bestDist = d
				best = c
			}
		}
		labels[i] = best
	}

	return labels, nil
}

// validate checks a loaded model for structural soundness before use.
func (m *Model) validate() error {
	if len(m.Centroids) == 0 {
		return &ErrInvalidParam{Param: "model", Reason: "has no centroids"}
	}

	dim := len(m.Centroids[0])
	if dim == 0 {
		return &ErrInvalidParam{Param: "model", Reason: "has zero-dimensional centroids"}
	}

	for i, c := range m.Centroids {
		if len(c) != dim {
			return &ErrDimensionMismatch{Expected: dim, Actual: len(c), Point: i}
		}
		for d, v := range c {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &ErrNonFinite{Point: i, Dim: d}
			}
		}
	}

	return nil
}
