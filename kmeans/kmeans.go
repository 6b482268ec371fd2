package kmeans

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/kmeansgo/distance"
)

// Variant selects the iteration strategy used by Run.
type Variant int

const (
	// VariantLloyd is the classic full assignment/update iteration.
	VariantLloyd Variant = iota
	// VariantElkan prunes distance evaluations via the triangle inequality.
	// It produces the same result as VariantLloyd from the same initial
	// centroids, within floating-point rounding.
	VariantElkan
)

func (v Variant) String() string {
	switch v {
	case VariantLloyd:
		return "lloyd"
	case VariantElkan:
		return "elkan"
	default:
		return fmt.Sprintf("Unknown(%d)", int(v))
	}
}

// InitMode selects the centroid initialization scheme.
type InitMode int

const (
	// InitRandom selects k distinct points uniformly without replacement.
	InitRandom InitMode = iota
	// InitKMeansPlusPlus seeds centroids with the k-means++ weighted
	// distance scheme (D(x)^2 sampling).
	InitKMeansPlusPlus
)

func (m InitMode) String() string {
	switch m {
	case InitRandom:
		return "random"
	case InitKMeansPlusPlus:
		return "k-means++"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Config holds all fit parameters. The zero value is not usable; the root
// package fills in defaults via options before calling Run.
type Config struct {
	// K is the number of clusters. Must satisfy 1 <= K <= len(data).
	K int

	// MaxIterations caps the number of assignment/update iterations.
	// Must be >= 1.
	MaxIterations int

	// Tolerance is the convergence threshold on the maximum centroid
	// displacement per iteration. Must be >= 0. A tolerance of 0 stops
	// only when centroids stop moving exactly (or the cap is reached).
	Tolerance float64

	// Variant selects the iteration strategy.
	Variant Variant

	// InitMode selects the initialization scheme. Ignored when
	// InitialCentroids is set.
	InitMode InitMode

	// InitialCentroids, when non-nil, bypasses initialization entirely.
	// Must contain exactly K points of the dataset's dimension.
	InitialCentroids [][]float64

	// Rand is the pseudo-random source for initialization. The engine
	// holds no process-wide random state; a nil Rand defaults to a
	// fixed-seed generator so runs stay reproducible.
	Rand *rand.Rand

	// Parallelism is the number of workers for the assignment step.
	// Values <= 0 default to runtime.GOMAXPROCS(0).
	Parallelism int

	// Logger receives per-iteration debug lines. Nil disables logging.
	Logger *slog.Logger
}

// Result is the outcome of a completed fit.
type Result struct {
	// Centroids is the final centroid set (K points).
	Centroids [][]float64

	// Labels maps each input point to its assigned centroid index.
	Labels []int

	// Inertia is the sum of squared distances from each point to its
	// assigned centroid.
	Inertia float64

	// Iterations is the number of assignment/update iterations run.
	Iterations int

	// Converged reports whether the tolerance criterion was met before
	// the iteration cap.
	Converged bool

	// DistanceEvals counts point-to-centroid distance evaluations
	// performed by the iteration strategy (including Elkan's initial
	// bound setup, excluding initialization and the final inertia pass).
	// This is the cost the Elkan variant reduces.
	DistanceEvals int64
}

// strategy is one interchangeable iteration scheme. Both implementations
// must yield the same centroids and labels from the same initial centroid
// set; they differ only in how many distances they evaluate.
type strategy interface {
	// init prepares per-point state after the initial centroids are set.
	init(ctx context.Context) error

	// step runs one assignment/update iteration and reports the number of
	// reassigned points and the maximum centroid displacement.
	step(ctx context.Context) (changes int, maxShift float64, err error)

	centroids() [][]float64
	labels() []int
	distanceEvals() int64
}

// Run validates the input, initializes centroids and iterates the selected
// strategy to convergence or the iteration cap.
func Run(ctx context.Context, data [][]float64, cfg Config) (*Result, error) {
	if _, err := validate(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(defaultRandSeed))
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.GOMAXPROCS(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Trivial case: every point is its own centroid.
	if cfg.K == len(data) && cfg.InitialCentroids == nil {
		return everyPointACentroid(data), nil
	}

	centroids, err := initialCentroids(ctx, data, cfg)
	if err != nil {
		return nil, err
	}

	var s strategy
	switch cfg.Variant {
	case VariantLloyd:
		s = newLloyd(data, centroids, cfg.Parallelism)
	case VariantElkan:
		s = newElkan(data, centroids, cfg.Parallelism)
	default:
		return nil, &ErrInvalidParam{Param: "variant", Reason: "is not supported"}
	}

	if err := s.init(ctx); err != nil {
		return nil, err
	}

	var (
		iterations int
		converged  bool
	)

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		changes, maxShift, err := s.step(ctx)
		if err != nil {
			return nil, err
		}
		iterations = iter

		cfg.Logger.DebugContext(ctx, "kmeans iteration",
			"variant", cfg.Variant.String(),
			"iteration", iter,
			"changes", changes,
			"max_shift", maxShift,
		)

		if maxShift <= cfg.Tolerance {
			converged = true
			break
		}
	}

	labels := s.labels()

	return &Result{
		Centroids:     s.centroids(),
		Labels:        labels,
		Inertia:       inertia(data, s.centroids(), labels),
		Iterations:    iterations,
		Converged:     converged,
		DistanceEvals: s.distanceEvals(),
	}, nil
}

// defaultRandSeed keeps nil-Rand runs reproducible.
const defaultRandSeed = 1

func validate(data [][]float64, cfg Config) (int, error) {
	m := len(data)
	if m == 0 {
		return 0, &ErrInvalidParam{Param: "dataset", Reason: "must not be empty"}
	}

	dim := len(data[0])
	if dim == 0 {
		return 0, &ErrInvalidParam{Param: "dataset", Reason: "must not contain zero-dimensional points"}
	}

	if cfg.K < 1 {
		return 0, &ErrInvalidParam{Param: "k", Reason: "must be >= 1"}
	}
	if cfg.K > m {
		return 0, &ErrInvalidParam{Param: "k", Reason: fmt.Sprintf("must be <= dataset size (%d > %d)", cfg.K, m)}
	}
	if cfg.MaxIterations < 1 {
		return 0, &ErrInvalidParam{Param: "maxIterations", Reason: "must be >= 1"}
	}
	if cfg.Tolerance < 0 || math.IsNaN(cfg.Tolerance) {
		return 0, &ErrInvalidParam{Param: "tolerance", Reason: "must be >= 0"}
	}

	for i, p := range data {
		if len(p) != dim {
			return 0, &ErrDimensionMismatch{Expected: dim, Actual: len(p), Point: i}
		}
		for d, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, &ErrNonFinite{Point: i, Dim: d}
			}
		}
	}

	if cfg.InitialCentroids != nil {
		if len(cfg.InitialCentroids) != cfg.K {
			return 0, &ErrInvalidParam{
				Param:  "initialCentroids",
				Reason: fmt.Sprintf("must contain exactly k points (%d != %d)", len(cfg.InitialCentroids), cfg.K),
			}
		}
		for i, c := range cfg.InitialCentroids {
			if len(c) != dim {
				return 0, &ErrDimensionMismatch{Expected: dim, Actual: len(c), Point: i}
			}
			for d, v := range c {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return 0, &ErrNonFinite{Point: i, Dim: d}
				}
			}
		}
	}

	return dim, nil
}

func initialCentroids(ctx context.Context, data [][]float64, cfg Config) ([][]float64, error) {
	if cfg.InitialCentroids != nil {
		return clonePoints(cfg.InitialCentroids), nil
	}

	var init Initializer
	switch cfg.InitMode {
	case InitRandom:
		init = NewRandomInitializer(cfg.Rand)
	case InitKMeansPlusPlus:
		init = NewKMeansPlusPlusInitializer(cfg.Rand, cfg.Parallelism)
	default:
		return nil, &ErrInvalidParam{Param: "initMode", Reason: "is not supported"}
	}

	return init.InitCentroids(ctx, data, cfg.K)
}

func everyPointACentroid(data [][]float64) *Result {
	labels := make([]int, len(data))
	for i := range labels {
		labels[i] = i
	}
	return &Result{
		Centroids:  clonePoints(data),
		Labels:     labels,
		Inertia:    0,
		Iterations: 0,
		Converged:  true,
	}
}

// inertia is the within-cluster sum of squared distances. Summed serially
// so the result is bit-stable across runs regardless of parallelism.
func inertia(data, centroids [][]float64, labels []int) float64 {
	var sum float64
	for i, p := range data {
		sum += distance.SquaredL2(p, centroids[labels[i]])
	}
	return sum
}

func clonePoints(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = make([]float64, len(p))
		copy(out[i], p)
	}
	return out
}

// parallelRange splits [0,n) into one contiguous chunk per worker and runs
// fn for each chunk in its own goroutine. fn must only touch per-index
// state inside its chunk; reductions happen after Wait returns.
func parallelRange(ctx context.Context, n, workers int, fn func(ctx context.Context, start, end int) error) error {
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return fn(ctx, 0, n)
	}

	g, gctx := errgroup.WithContext(ctx)

	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		g.Go(func() error {
			return fn(gctx, start, end)
		})
	}

	return g.Wait()
}
