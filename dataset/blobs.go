// Package dataset generates synthetic datasets for clustering demos,
// benchmarks and tests.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrInvalidBlobs is returned when blob parameters are out of range.
var ErrInvalidBlobs = errors.New("invalid blob parameters")

// MakeBlobs draws samplesPerCenter points around each center from an
// isotropic Gaussian with the matching standard deviation, then shuffles
// the points. It returns the points and the ground-truth label (center
// index) per point.
//
// All randomness comes from rng; a nil rng defaults to a fixed-seed
// generator so generated datasets are reproducible.
func MakeBlobs(centers [][]float64, stdDevs []float64, samplesPerCenter int, rng *rand.Rand) ([][]float64, []int, error) {
	if len(centers) == 0 {
		return nil, nil, fmt.Errorf("%w: no centers", ErrInvalidBlobs)
	}
	if len(stdDevs) != len(centers) {
		return nil, nil, fmt.Errorf("%w: %d stdDevs for %d centers", ErrInvalidBlobs, len(stdDevs), len(centers))
	}
	if samplesPerCenter < 1 {
		return nil, nil, fmt.Errorf("%w: samplesPerCenter must be >= 1", ErrInvalidBlobs)
	}

	dim := len(centers[0])
	if dim == 0 {
		return nil, nil, fmt.Errorf("%w: zero-dimensional centers", ErrInvalidBlobs)
	}
	for i, c := range centers {
		if len(c) != dim {
			return nil, nil, fmt.Errorf("%w: center %d has dimension %d, expected %d", ErrInvalidBlobs, i, len(c), dim)
		}
	}
	for i, sd := range stdDevs {
		if sd < 0 || math.IsNaN(sd) || math.IsInf(sd, 0) {
			return nil, nil, fmt.Errorf("%w: stdDev %d must be finite and >= 0", ErrInvalidBlobs, i)
		}
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	total := len(centers) * samplesPerCenter
	points := make([][]float64, 0, total)
	labels := make([]int, 0, total)

	for ci, center := range centers {
		sd := stdDevs[ci]
		for s := 0; s < samplesPerCenter; s++ {
			p := make([]float64, dim)
			for d := range p {
				p[d] = center[d] + rng.NormFloat64()*sd
			}
			points = append(points, p)
			labels = append(labels, ci)
		}
	}

	rng.Shuffle(total, func(i, j int) {
		points[i], points[j] = points[j], points[i]
		labels[i], labels[j] = labels[j], labels[i]
	})

	return points, labels, nil
}
