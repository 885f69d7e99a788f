package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics is the prometheus-backed implementation of the per-module
// Metrics interfaces declared by the application packages.
type OperationMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec

	rescoredMatches prometheus.Counter
}

// NewOperationMetrics registers and returns operation metrics for one module.
func NewOperationMetrics(reg prometheus.Registerer, module string) *OperationMetrics {
	m := &OperationMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rankforge",
			Subsystem: module,
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rankforge",
			Subsystem: module,
			Name:      "operation_successes_total",
			Help:      "Service operations completed without error.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rankforge",
			Subsystem: module,
			Name:      "operation_failures_total",
			Help:      "Service operations that returned an error.",
		}, []string{"operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rankforge",
			Subsystem: module,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		rescoredMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rankforge",
			Subsystem: module,
			Name:      "rescored_matches_total",
			Help:      "Matches replayed by the rescorer.",
		}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.duration, m.rescoredMatches)
	return m
}

func (m *OperationMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.attempts.WithLabelValues(operation).Inc()
}

func (m *OperationMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.successes.WithLabelValues(operation).Inc()
}

func (m *OperationMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.failures.WithLabelValues(operation).Inc()
}

func (m *OperationMetrics) RecordOperationDuration(_ context.Context, operation string, d time.Duration) {
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *OperationMetrics) RecordRescoredMatches(_ context.Context, n int) {
	m.rescoredMatches.Add(float64(n))
}

// NoOpMetrics satisfies the module Metrics interfaces without recording
// anything. Used in unit tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordRescoredMatches(context.Context, int)                    {}
