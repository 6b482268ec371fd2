package kmeans

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/hupe1980/kmeansgo/distance"
)

// elkanState accelerates the iteration with the triangle inequality.
// Per point it caches an upper bound on the distance to the assigned
// centroid and a lower bound per other centroid; per centroid pair it
// caches half the inter-centroid distance. Points whose upper bound is
// at most half the distance from their centroid to its nearest neighbor
// centroid cannot be reassigned and are skipped without evaluating a
// single distance.
//
// All bounds are maintained on true (non-squared) Euclidean distances,
// which is what the triangle inequality requires.
//
// Ref paper: https://cdn.aaai.org/ICML/2003/ICML03-022.pdf
type elkanState struct {
	data   [][]float64
	cents  [][]float64
	assign []int

	// lower is a flattened m*k matrix: lower[i*k+c] <= d(x_i, c).
	lower []float64
	// upper[i] >= d(x_i, assigned centroid). Loose after centroids move.
	upper []float64
	// recompute[i] marks upper[i] as loose; the true distance to the
	// assigned centroid is recomputed at most once per iteration.
	recompute []bool

	// halfDist[a][c] = 0.5 * d(centroid_a, centroid_c). Storing the half
	// avoids the 0.5 multiplication in the inner pruning checks.
	halfDist [][]float64
	// nearestHalf[c] = min over c' != c of halfDist[c][c'], the s(c)/2
	// skip threshold.
	nearestHalf []float64

	k           int
	parallelism int
	evals       atomic.Int64
}

func newElkan(data, centroids [][]float64, parallelism int) *elkanState {
	m := len(data)
	k := len(centroids)

	halfDist := make([][]float64, k)
	for c := range halfDist {
		halfDist[c] = make([]float64, k)
	}

	return &elkanState{
		data:        data,
		cents:       centroids,
		assign:      make([]int, m),
		lower:       make([]float64, m*k),
		upper:       make([]float64, m),
		recompute:   make([]bool, m),
		halfDist:    halfDist,
		nearestHalf: make([]float64, k),
		k:           k,
		parallelism: parallelism,
	}
}

// init performs the initial full assignment, seeding every bound with a
// true distance: lower[i*k+c] = d(x_i, c), upper[i] = min over c.
func (s *elkanState) init(ctx context.Context) error {
	return parallelRange(ctx, len(s.data), s.parallelism, func(ctx context.Context, start, end int) error {
		var evals int64
		for i := start; i < end; i++ {
			if (i-start)%512 == 0 && ctx.Err() != nil {
				return ctx.Err()
			}

			best := 0
			bestDist := math.MaxFloat64
			for c := 0; c < s.k; c++ {
				d := distance.L2(s.data[i], s.cents[c])
				s.lower[i*s.k+c] = d
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			evals += int64(s.k)

			s.assign[i] = best
			s.upper[i] = bestDist
		}
		s.evals.Add(evals)
		return nil
	})
}

func (s *elkanState) step(ctx context.Context) (int, float64, error) {
	s.computeCentroidDistances()

	changes, err := s.assignPoints(ctx)
	if err != nil {
		return 0, 0, err
	}

	newCents := s.recalculate()

	maxShift, err := s.updateBounds(ctx, newCents)
	if err != nil {
		return 0, 0, err
	}
	s.cents = newCents

	return changes, maxShift, nil
}

// computeCentroidDistances fills the half inter-centroid distance matrix
// and the per-centroid skip threshold s(c)/2. O(k^2*d), paid once per
// iteration regardless of dataset size.
func (s *elkanState) computeCentroidDistances() {
	for a := 0; a < s.k; a++ {
		for c := a + 1; c < s.k; c++ {
			d := 0.5 * distance.L2(s.cents[a], s.cents[c])
			s.halfDist[a][c] = d
			s.halfDist[c][a] = d
		}
	}

	for c := 0; c < s.k; c++ {
		nearest := math.MaxFloat64
		for a := 0; a < s.k; a++ {
			if a != c && s.halfDist[c][a] < nearest {
				nearest = s.halfDist[c][a]
			}
		}
		s.nearestHalf[c] = nearest
	}
}

// assignPoints is where the pruning happens. A point is reassigned to a
// candidate centroid only when every bound check fails and the true
// distance really is smaller.
func (s *elkanState) assignPoints(ctx context.Context) (int, error) {
	var changes atomic.Int64

	err := parallelRange(ctx, len(s.data), s.parallelism, func(ctx context.Context, start, end int) error {
		var evals int64
		for i := start; i < end; i++ {
			if (i-start)%512 == 0 && ctx.Err() != nil {
				return ctx.Err()
			}

			a := s.assign[i]

			// Whole-point skip: u(x) <= s(c(x))/2 means no other centroid
			// can be closer.
			if s.upper[i] <= s.nearestHalf[a] {
				continue
			}

			for c := 0; c < s.k; c++ {
				if c == a ||
					s.upper[i] <= s.lower[i*s.k+c] ||
					s.upper[i] <= s.halfDist[a][c] {
					continue
				}

				// The upper bound is loose after the centroids moved;
				// tighten it with one true distance, then retry the
				// cheap checks before evaluating the candidate.
				dxa := s.upper[i]
				if s.recompute[i] {
					s.recompute[i] = false

					dxa = distance.L2(s.data[i], s.cents[a])
					evals++
					s.upper[i] = dxa
					s.lower[i*s.k+a] = dxa

					if dxa <= s.lower[i*s.k+c] {
						continue
					}
					if dxa <= s.halfDist[a][c] {
						continue
					}
				}

				if dxa > s.lower[i*s.k+c] || dxa > s.halfDist[a][c] {
					dxc := distance.L2(s.data[i], s.cents[c])
					evals++
					s.lower[i*s.k+c] = dxc

					if dxc < dxa {
						s.upper[i] = dxc
						s.assign[i] = c
						a = c
						changes.Add(1)
					}
				}
			}
		}
		s.evals.Add(evals)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return int(changes.Load()), nil
}

// recalculate is the same mean update Lloyd performs; an empty cluster
// retains its previous position, so its shift is zero and no bound
// adjustment is needed for it.
func (s *elkanState) recalculate() [][]float64 {
	dim := len(s.data[0])

	counts := make([]int, s.k)
	newCents := make([][]float64, s.k)
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

// updateBounds adjusts every bound by its centroid's displacement so the
// invariants survive the move without any point-to-centroid distance:
// l(x,c) = max(l(x,c) - shift(c), 0) and u(x) += shift(c(x)).
func (s *elkanState) updateBounds(ctx context.Context, newCents [][]float64) (float64, error) {
	shift := make([]float64, s.k)
	maxShift := 0.0
	for c := 0; c < s.k; c++ {
		shift[c] = distance.L2(s.cents[c], newCents[c])
		if shift[c] > maxShift {
			maxShift = shift[c]
		}
	}

	err := parallelRange(ctx, len(s.data), s.parallelism, func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if (i-start)%512 == 0 && ctx.Err() != nil {
				return ctx.Err()
			}

			for c := 0; c < s.k; c++ {
				l := s.lower[i*s.k+c] - shift[c]
				if l < 0 {
					l = 0
				}
				s.lower[i*s.k+c] = l
			}

			s.upper[i] += shift[s.assign[i]]
			s.recompute[i] = true
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return maxShift, nil
}

func (s *elkanState) centroids() [][]float64 { return s.cents }
func (s *elkanState) labels() []int          { return s.assign }
func (s *elkanState) distanceEvals() int64   { return s.evals.Load() }
