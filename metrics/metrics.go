package metrics

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"
)

// Metrics aggregates coarse request counters for one server instance.
// No per-request identity is retained. All methods are safe for
// concurrent use by connection handlers.
type Metrics struct {
	totalRequests      atomic.Int64
	successfulRequests atomic.Int64
	failedRequests     atomic.Int64
	totalResponseTime  atomic.Int64 // milliseconds

	requestCounter   metric.Int64Counter
	successCounter   metric.Int64Counter
	failureCounter   metric.Int64Counter
	responseDuration metric.Int64Histogram
}

func New() *Metrics {
	return &Metrics{}
}

// Instrument mirrors the counters onto OpenTelemetry instruments from
// the given meter. The plain counters keep working either way; the
// /metrics report always reads from them.
func (m *Metrics) Instrument(meter metric.Meter) error {
	var err error

	m.requestCounter, err = meter.Int64Counter("jazzy.requests.total",
		metric.WithDescription("Total number of requests received"),
		metric.WithUnit("{request}"))
	if err != nil {
		return err
	}

	m.successCounter, err = meter.Int64Counter("jazzy.requests.successful",
		metric.WithDescription("Number of requests answered with a fully written response"),
		metric.WithUnit("{request}"))
	if err != nil {
		return err
	}

	m.failureCounter, err = meter.Int64Counter("jazzy.requests.failed",
		metric.WithDescription("Number of requests that ended in an uncaught fault"),
		metric.WithUnit("{request}"))
	if err != nil {
		return err
	}

	m.responseDuration, err = meter.Int64Histogram("jazzy.response.duration",
		metric.WithDescription("Wall clock time spent handling a request"),
		metric.WithUnit("ms"))
	if err != nil {
		return err
	}

	return nil
}

func (m *Metrics) RecordRequest(ctx context.Context) {
	m.totalRequests.Add(1)
	if m.requestCounter != nil {
		m.requestCounter.Add(ctx, 1)
	}
}

func (m *Metrics) RecordSuccess(ctx context.Context) {
	m.successfulRequests.Add(1)
	if m.successCounter != nil {
		m.successCounter.Add(ctx, 1)
	}
}

func (m *Metrics) RecordFailure(ctx context.Context) {
	m.failedRequests.Add(1)
	if m.failureCounter != nil {
		m.failureCounter.Add(ctx, 1)
	}
}

func (m *Metrics) RecordDuration(ctx context.Context, millis int64) {
	m.totalResponseTime.Add(millis)
	if m.responseDuration != nil {
		m.responseDuration.Record(ctx, millis)
	}
}

func (m *Metrics) TotalRequests() int64 {
	return m.totalRequests.Load()
}

func (m *Metrics) SuccessfulRequests() int64 {
	return m.successfulRequests.Load()
}

func (m *Metrics) FailedRequests() int64 {
	return m.failedRequests.Load()
}

func (m *Metrics) TotalResponseTime() int64 {
	return m.totalResponseTime.Load()
}

// AverageResponseTime is the integer average in milliseconds, 0 when no
// requests were recorded.
func (m *Metrics) AverageResponseTime() int64 {
	requests := m.totalRequests.Load()
	if requests == 0 {
		return 0
	}
	return m.totalResponseTime.Load() / requests
}

// Report renders the plain text served by the /metrics endpoint.
func (m *Metrics) Report() string {
	return fmt.Sprintf("Total Requests: %d\nTotal Failed Requests: %d\nAverage Response Time (ms): %d\n",
		m.TotalRequests(), m.FailedRequests(), m.AverageResponseTime())
}

// Reset zeroes all counters. Intended for test harnesses only.
func (m *Metrics) Reset() {
	m.totalRequests.Store(0)
	m.successfulRequests.Store(0)
	m.failedRequests.Store(0)
	m.totalResponseTime.Store(0)
}
