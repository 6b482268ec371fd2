package kmeansgo

import (
	"context"
	"time"

	"github.com/hupe1980/kmeansgo/kmeans"
)

// Variant selects the iteration strategy.
type Variant = kmeans.Variant

const (
	// VariantLloyd is the classic full assignment/update iteration.
	VariantLloyd = kmeans.VariantLloyd
	// VariantElkan prunes distance evaluations via the triangle
	// inequality. Same result as VariantLloyd, fewer evaluations.
	VariantElkan = kmeans.VariantElkan
)

// InitMode selects the centroid initialization scheme.
type InitMode = kmeans.InitMode

const (
	// InitRandom selects k distinct points uniformly without replacement.
	InitRandom = kmeans.InitRandom
	// InitKMeansPlusPlus seeds centroids with D(x)^2-weighted sampling.
	InitKMeansPlusPlus = kmeans.InitKMeansPlusPlus
)

// FitResult is the outcome of a completed fit.
type FitResult = kmeans.Result

// Fit clusters data into k groups and returns the final centroids, labels
// and inertia.
//
// data must be a non-empty slice of equal-dimension, finite points; it is
// treated as read-only. Configuration beyond k is supplied via options;
// see Option for defaults.
//
// Fit observes ctx between iterations and aborts with ctx.Err() on
// cancellation.
func Fit(ctx context.Context, data [][]float64, k int, optFns ...Option) (*FitResult, error) {
	o := applyOptions(optFns)

	cfg := kmeans.Config{
		K:                k,
		MaxIterations:    o.maxIterations,
		Tolerance:        o.tolerance,
		Variant:          o.variant,
		InitMode:         o.initMode,
		InitialCentroids: o.initialCentroids,
		Rand:             o.rand,
		Parallelism:      o.parallelism,
		Logger:           o.logger.Logger,
	}

	start := time.Now()
	result, err := kmeans.Run(ctx, data, cfg)
	duration := time.Since(start)

	if err != nil {
		o.metricsCollector.RecordFit(duration, 0, 0, err)
		o.logger.LogFit(ctx, o.variant, 0, 0, err)
		return nil, err
	}

	o.metricsCollector.RecordFit(duration, result.Iterations, result.DistanceEvals, nil)
	o.logger.LogFit(ctx, o.variant, result.Iterations, result.Inertia, nil)

	return result, nil
}
