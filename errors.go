package kmeansgo

import "github.com/hupe1980/kmeansgo/kmeans"

// Sentinel errors, re-exported from the engine package so callers can use
// errors.Is without importing kmeans directly.
var (
	// ErrInvalidConfiguration is returned when fit parameters are out of
	// range (k, maxIterations, tolerance, dataset shape). Not retried;
	// the caller must correct the input.
	ErrInvalidConfiguration = kmeans.ErrInvalidConfiguration

	// ErrDegenerateInput is returned when the dataset contains NaN or
	// Inf coordinates. Fatal, surfaced before any iteration, no partial
	// result.
	ErrDegenerateInput = kmeans.ErrDegenerateInput
)

// Typed errors, accessible via errors.As.
//
// Each unwraps to the matching sentinel above.
type (
	// ErrInvalidParam names the out-of-range parameter.
	ErrInvalidParam = kmeans.ErrInvalidParam

	// ErrNonFinite names the offending point and coordinate.
	ErrNonFinite = kmeans.ErrNonFinite

	// ErrDimensionMismatch reports a ragged dataset or centroid set.
	ErrDimensionMismatch = kmeans.ErrDimensionMismatch
)
