package kmeans

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/hupe1980/kmeansgo/distance"
)

// Initializer selects k starting centroids from the dataset.
// Returned centroids are copies, never aliases of dataset points.
type Initializer interface {
	InitCentroids(ctx context.Context, data [][]float64, k int) ([][]float64, error)
}

// Random selects k distinct points uniformly without replacement.
type Random struct {
	rand *rand.Rand
}

// NewRandomInitializer creates a Random initializer backed by rng.
func NewRandomInitializer(rng *rand.Rand) *Random {
	return &Random{rand: rng}
}

// InitCentroids implements Initializer.
func (r *Random) InitCentroids(_ context.Context, data [][]float64, k int) ([][]float64, error) {
	perm := r.rand.Perm(len(data))

	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = make([]float64, len(data[perm[i]]))
		copy(centroids[i], data[perm[i]])
	}

	return centroids, nil
}

// KMeansPlusPlus seeds centroids with the k-means++ scheme: the first
// centroid is uniform, each subsequent one is sampled with probability
// proportional to D(x)^2, where D(x) is the distance from x to its nearest
// already-chosen centroid.
//
// Sampling uses a cumulative-sum plus binary-search draw; D(x)^2 is
// refreshed incrementally against only the last chosen centroid, so
// seeding costs O(k*m*d) total rather than O(k^2*m*d).
//
// Ref paper: https://theory.stanford.edu/~sergei/papers/kMeansPP-soda.pdf
type KMeansPlusPlus struct {
	rand        *rand.Rand
	parallelism int
}

// NewKMeansPlusPlusInitializer creates a KMeansPlusPlus initializer
// backed by rng. parallelism bounds the workers used for the distance
// refresh; values <= 1 run serially.
func NewKMeansPlusPlusInitializer(rng *rand.Rand, parallelism int) *KMeansPlusPlus {
	return &KMeansPlusPlus{rand: rng, parallelism: parallelism}
}

// InitCentroids implements Initializer.
func (kpp *KMeansPlusPlus) InitCentroids(ctx context.Context, data [][]float64, k int) ([][]float64, error) {
	m := len(data)

	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clonePoint(data[kpp.rand.Intn(m)]))

	// minDistSq[i] is D(x_i)^2, the squared distance from point i to its
	// nearest chosen centroid. Each round refreshes it against only the
	// centroid chosen last round. cumsum is rebuilt serially each round
	// so draws are deterministic regardless of worker scheduling.
	minDistSq := make([]float64, m)
	for i := range minDistSq {
		minDistSq[i] = math.MaxFloat64
	}

	cumsum := make([]float64, m)

	for len(centroids) < k {
		last := centroids[len(centroids)-1]
		err := parallelRange(ctx, m, kpp.parallelism, func(ctx context.Context, start, end int) error {
			for i := start; i < end; i++ {
				if (i-start)%512 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				if d := distance.SquaredL2(data[i], last); d < minDistSq[i] {
					minDistSq[i] = d
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		var total float64
		for i, d := range minDistSq {
			total += d
			cumsum[i] = total
		}

		var idx int
		if total > 0 {
			target := kpp.rand.Float64() * total
			idx = sort.SearchFloat64s(cumsum, target)
			if idx >= m {
				idx = m - 1
			}
			// A zero draw can land on a zero-mass point; advance to the
			// first point carrying probability mass.
			for idx < m-1 && minDistSq[idx] == 0 {
				idx++
			}
		} else {
			// All remaining mass is zero (every point coincides with a
			// chosen centroid); fall back to a uniform draw.
			idx = kpp.rand.Intn(m)
		}

		centroids = append(centroids, clonePoint(data[idx]))
	}

	return centroids, nil
}

func clonePoint(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
