package kmeansgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordFit is called after each fit operation.
	// duration is the total time taken, iterations is the number of
	// iterations run, distanceEvals is the number of point-to-centroid
	// distance evaluations, err is nil if successful.
	RecordFit(duration time.Duration, iterations int, distanceEvals int64, err error)

	// RecordPredict is called after each predict operation.
	// count is the number of points labeled.
	RecordPredict(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFit(time.Duration, int, int64, error) {}
func (NoopMetricsCollector) RecordPredict(int, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FitCount           atomic.Int64
	FitErrors          atomic.Int64
	FitTotalNanos      atomic.Int64
	FitIterations      atomic.Int64
	FitDistanceEvals   atomic.Int64
	PredictCount       atomic.Int64
	PredictErrors      atomic.Int64
	PredictTotalNanos  atomic.Int64
	PredictTotalPoints atomic.Int64
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(duration time.Duration, iterations int, distanceEvals int64, err error) {
	b.FitCount.Add(1)
	b.FitTotalNanos.Add(duration.Nanoseconds())
	b.FitIterations.Add(int64(iterations))
	b.FitDistanceEvals.Add(distanceEvals)
	if err != nil {
		b.FitErrors.Add(1)
	}
}

// RecordPredict implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPredict(count int, duration time.Duration, err error) {
	b.PredictCount.Add(1)
	b.PredictTotalNanos.Add(duration.Nanoseconds())
	b.PredictTotalPoints.Add(int64(count))
	if err != nil {
		b.PredictErrors.Add(1)
	}
}

// Stats is a point-in-time snapshot of BasicMetricsCollector counters.
type Stats struct {
	FitCount         int64
	FitErrors        int64
	FitAvgNanos      int64
	FitIterations    int64
	FitDistanceEvals int64
	PredictCount     int64
	PredictErrors    int64
}

// GetStats returns a consistent-enough snapshot of the counters.
func (b *BasicMetricsCollector) GetStats() Stats {
	s := Stats{
		FitCount:         b.FitCount.Load(),
		FitErrors:        b.FitErrors.Load(),
		FitIterations:    b.FitIterations.Load(),
		FitDistanceEvals: b.FitDistanceEvals.Load(),
		PredictCount:     b.PredictCount.Load(),
		PredictErrors:    b.PredictErrors.Load(),
	}
	if s.FitCount > 0 {
		s.FitAvgNanos = b.FitTotalNanos.Load() / s.FitCount
	}
	return s
}
