package kmeansgo

import (
	"log/slog"
	"math/rand"
)

const (
	// DefaultMaxIterations caps the iteration count when no option is set.
	DefaultMaxIterations = 300
	// DefaultTolerance is the default convergence threshold on the
	// maximum centroid displacement.
	DefaultTolerance = 1e-4
)

type options struct {
	variant          Variant
	initMode         InitMode
	initialCentroids [][]float64
	maxIterations    int
	tolerance        float64
	rand             *rand.Rand
	parallelism      int
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures Fit behavior.
//
// Defaults: VariantLloyd, InitKMeansPlusPlus, DefaultMaxIterations,
// DefaultTolerance, a fixed-seed RNG, parallelism = GOMAXPROCS, no
// logging, no metrics.
type Option func(*options)

// WithVariant selects the iteration strategy (Lloyd or Elkan).
func WithVariant(v Variant) Option {
	return func(o *options) {
		o.variant = v
	}
}

// WithInitMode selects the centroid initialization scheme.
// Ignored when WithInitialCentroids is set.
func WithInitMode(m InitMode) Option {
	return func(o *options) {
		o.initMode = m
	}
}

// WithInitialCentroids bypasses initialization and starts the iteration
// from the given centroid set. Must contain exactly k points of the
// dataset's dimension. The slice is copied before use.
//
// This is the single-run ("no restart") entry point: combined with a
// fixed centroid set it makes the final inertia reproducible bit for bit.
func WithInitialCentroids(centroids [][]float64) Option {
	return func(o *options) {
		o.initialCentroids = centroids
	}
}

// WithMaxIterations caps the number of assignment/update iterations.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTolerance sets the convergence threshold on the maximum centroid
// displacement per iteration. A tolerance of 0 stops only when centroids
// stop moving exactly (or the cap is reached).
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithSeed seeds the fit's private random generator. Two runs with the
// same seed, data and configuration produce identical results.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rand = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies an explicit random generator, for callers that manage
// random state themselves. Overrides WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rand = rng
		}
	}
}

// WithParallelism bounds the number of workers used for the assignment
// step and the k-means++ distance refresh. Values <= 0 default to
// runtime.GOMAXPROCS(0). Results do not depend on this value.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithLogger configures structured logging for fit operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for fit operations.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metricsCollector = mc
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		variant:          VariantLloyd,
		initMode:         InitKMeansPlusPlus,
		maxIterations:    DefaultMaxIterations,
		tolerance:        DefaultTolerance,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
