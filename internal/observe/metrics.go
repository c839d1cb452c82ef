// Package observe provides application-wide observability primitives for
// Haven: OpenTelemetry metrics, tracing helpers, structured logging, and HTTP
// middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Haven metrics.
const meterName = "github.com/havenchat/haven"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// TurnDuration tracks the end-to-end latency of one chat turn
	// (history read, sentiment scoring, response selection, append).
	TurnDuration metric.Float64Histogram

	// Responses counts delivered responses. Use with attributes:
	//   attribute.String("category", ...), attribute.String("channel", ...)
	Responses metric.Int64Counter

	// CrisisDetections counts turns that produced the crisis response.
	CrisisDetections metric.Int64Counter

	// ScorerErrors counts sentiment scorer failures. Use with attribute:
	//   attribute.String("provider", ...)
	ScorerErrors metric.Int64Counter

	// StoreErrors counts history store failures. Use with attribute:
	//   attribute.String("op", ...)
	StoreErrors metric.Int64Counter

	// ActiveSessions tracks the number of live chat sessions.
	ActiveSessions metric.Int64UpDownCounter

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Turns are
// pure in-process work, so the buckets skew low.
var latencyBuckets = []float64{
	0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.TurnDuration, err = m.Float64Histogram("haven.turn.duration",
		metric.WithDescription("End-to-end latency of one chat turn."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Responses, err = m.Int64Counter("haven.responses",
		metric.WithDescription("Total responses delivered by category and channel."),
	); err != nil {
		return nil, err
	}
	if met.CrisisDetections, err = m.Int64Counter("haven.crisis.detections",
		metric.WithDescription("Total turns that produced the crisis response."),
	); err != nil {
		return nil, err
	}
	if met.ScorerErrors, err = m.Int64Counter("haven.scorer.errors",
		metric.WithDescription("Total sentiment scorer failures by provider."),
	); err != nil {
		return nil, err
	}
	if met.StoreErrors, err = m.Int64Counter("haven.store.errors",
		metric.WithDescription("Total history store failures by operation."),
	); err != nil {
		return nil, err
	}
	if met.ActiveSessions, err = m.Int64UpDownCounter("haven.active_sessions",
		metric.WithDescription("Number of live chat sessions."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("haven.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordTurn records one completed chat turn: its duration and a response
// counter increment tagged with the selection category and channel
// ("web" or "discord").
func (m *Metrics) RecordTurn(ctx context.Context, category, channel string, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("channel", channel),
	)
	m.TurnDuration.Record(ctx, d.Seconds(), attrs)
	m.Responses.Add(ctx, 1, attrs)
}

// RecordCrisis records a crisis detection counter increment.
func (m *Metrics) RecordCrisis(ctx context.Context, channel string) {
	m.CrisisDetections.Add(ctx, 1,
		metric.WithAttributes(attribute.String("channel", channel)),
	)
}

// RecordScorerError records a sentiment scorer failure.
func (m *Metrics) RecordScorerError(ctx context.Context, provider string) {
	m.ScorerErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("provider", provider)),
	)
}

// RecordStoreError records a history store failure for the given operation
// ("read" or "append").
func (m *Metrics) RecordStoreError(ctx context.Context, op string) {
	m.StoreErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("op", op)),
	)
}

// SessionStarted increments the active-session gauge.
func (m *Metrics) SessionStarted(ctx context.Context) {
	m.ActiveSessions.Add(ctx, 1)
}

// SessionEnded decrements the active-session gauge.
func (m *Metrics) SessionEnded(ctx context.Context) {
	m.ActiveSessions.Add(ctx, -1)
}
