package kmeans

import (
	"context"
	"sync/atomic"

	"github.com/hupe1980/kmeansgo/distance"
)

// lloydState runs the classic full iteration: every point is compared
// against every centroid each round, O(m*k*d) distance evaluations per
// iteration. This is the baseline the Elkan variant is measured against.
type lloydState struct {
	data        [][]float64
	cents       [][]float64
	assign      []int
	parallelism int
	evals       atomic.Int64
}

func newLloyd(data, centroids [][]float64, parallelism int) *lloydState {
	assign := make([]int, len(data))
	for i := range assign {
		assign[i] = -1 // forces every point to count as changed on the first step
	}

	return &lloydState{
		data:        data,
		cents:       centroids,
		assign:      assign,
		parallelism: parallelism,
	}
}

func (s *lloydState) init(_ context.Context) error { return nil }

func (s *lloydState) step(ctx context.Context) (int, float64, error) {
	var changes atomic.Int64

	// Assignment step: nearest centroid per point, ties broken by the
	// lowest centroid index. Points are independent, so the range is
	// sharded across workers.
	err := parallelRange(ctx, len(s.data), s.parallelism, func(ctx context.Context, start, end int) error {
		var evals int64
		for i := start; i < end; i++ {
			if (i-start)%512 == 0 && ctx.Err() != nil {
				return ctx.Err()
			}

			best := 0
			bestDist := distance.SquaredL2(s.data[i], s.cents[0])
			for c := 1; c < len(s.cents); c++ {
				if d := distance.SquaredL2(s.data[i], s.cents[c]); d < bestDist {
					bestDist = d
					best = c
				}
			}
			evals += int64(len(s.cents))

			if s.assign[i] != best {
				s.assign[i] = best
				changes.Add(1)
			}
		}
		s.evals.Add(evals)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	// Update step: each centroid becomes the mean of its members. An
	// empty cluster retains its previous position.
	newCents := s.recalculate()

	maxShift := 0.0
	for c := range s.cents {
		if shift := distance.L2(s.cents[c], newCents[c]); shift > maxShift {
			maxShift = shift
		}
	}
	s.cents = newCents

	return int(changes.Load()), maxShift, nil
}

func (s *lloydState) recalculate() [][]float64 {
	k := len(s.cents)
	dim := len(s.data[0])

	counts := make([]int, k)
	newCents := make([][]float64, k)
	for c := range newCents {
		newCents[c] = make([]float64, dim)
	}

	for i, p := range s.data {
		c := s.assign[i]
		counts[c]++
		for d, v := range p {
			newCents[c][d] += v
		}
	}

	for c := range newCents {
		if counts[c] == 0 {
			copy(newCents[c], s.cents[c])
			continue
		}
		distance.ScaleInPlace(newCents[c], 1/float64(counts[c]))
	}

	return newCents
}

func (s *lloydState) centroids() [][]float64 { return s.cents }
func (s *lloydState) labels() []int          { return s.assign }
func (s *lloydState) distanceEvals() int64   { return s.evals.Load() }
