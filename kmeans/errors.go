package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when fit parameters are out of range.
	// The caller must correct the input; the engine never retries.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDegenerateInput is returned when the dataset contains non-finite
	// coordinates. No partial result is produced.
	ErrDegenerateInput = errors.New("degenerate input")
)

// ErrInvalidParam describes a single out-of-range fit parameter.
//
// It unwraps to ErrInvalidConfiguration for errors.Is checks.
type ErrInvalidParam struct {
	Param  string
	Reason string
}

func (e *ErrInvalidParam) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Param, e.Reason)
}

func (e *ErrInvalidParam) Unwrap() error { return ErrInvalidConfiguration }

// ErrNonFinite reports a NaN or Inf coordinate in the dataset.
//
// It unwraps to ErrDegenerateInput for errors.Is checks.
type ErrNonFinite struct {
	Point int // index of the offending point
	Dim   int // index of the offending coordinate
}

func (e *ErrNonFinite) Error() string {
	return fmt.Sprintf("degenerate input: non-finite coordinate at point %d, dimension %d", e.Point, e.Dim)
}

func (e *ErrNonFinite) Unwrap() error { return ErrDegenerateInput }

// ErrDimensionMismatch reports a point whose dimension differs from the
// first point in the dataset.
//
// It unwraps to ErrInvalidConfiguration for errors.Is checks.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	Point    int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch at point %d: expected %d, got %d", e.Point, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return ErrInvalidConfiguration }
