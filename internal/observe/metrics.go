// Package observe provides application-wide observability primitives for
// sevenmind: OpenTelemetry metrics, distributed tracing, structured logging,
// and HTTP middleware that ties them together.
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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all sevenmind metrics.
const meterName = "github.com/mindweave/sevenmind"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms ---

	// StageDuration tracks the latency of a single cognitive stage call.
	// Use with attribute: attribute.String("role", ...)
	StageDuration metric.Float64Histogram

	// TurnDuration tracks end-to-end turn processing latency, covering all
	// stage calls, integration, self-analysis, blending, and persistence.
	TurnDuration metric.Float64Histogram

	// EmbeddingDuration tracks embedding computation latency for
	// associative recall.
	EmbeddingDuration metric.Float64Histogram

	// --- Counters ---

	// ProviderRequests counts provider API calls. Use with attributes:
	//   attribute.String("provider", ...), attribute.String("kind", ...), attribute.String("status", ...)
	ProviderRequests metric.Int64Counter

	// Turns counts processed turns. Use with attribute:
	//   attribute.String("status", ...)
	Turns metric.Int64Counter

	// UnmatchedLabels counts emotional-state labels that resolved to no
	// keyword and fell back to the baseline vector.
	UnmatchedLabels metric.Int64Counter

	// --- Error counters ---

	// ProviderErrors counts provider errors. Use with attributes:
	//   attribute.String("provider", ...), attribute.String("kind", ...)
	ProviderErrors metric.Int64Counter

	// --- Gauges ---

	// ActiveTurns tracks the number of turns currently in flight.
	ActiveTurns metric.Int64UpDownCounter

	// ProgressSubscribers tracks the number of connected progress-stream
	// websocket clients.
	ProgressSubscribers metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Turns
// chain nine sequential completion calls, so the upper buckets reach well
// past single-call latencies.
var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.StageDuration, err = m.Float64Histogram("sevenmind.stage.duration",
		metric.WithDescription("Latency of a single cognitive stage completion call."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.TurnDuration, err = m.Float64Histogram("sevenmind.turn.duration",
		metric.WithDescription("End-to-end turn processing latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.EmbeddingDuration, err = m.Float64Histogram("sevenmind.embedding.duration",
		metric.WithDescription("Latency of embedding computation for associative recall."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.ProviderRequests, err = m.Int64Counter("sevenmind.provider.requests",
		metric.WithDescription("Total provider API requests by provider, kind, and status."),
	); err != nil {
		return nil, err
	}
	if met.Turns, err = m.Int64Counter("sevenmind.turns",
		metric.WithDescription("Total processed turns by status."),
	); err != nil {
		return nil, err
	}
	if met.UnmatchedLabels, err = m.Int64Counter("sevenmind.emotion.unmatched_labels",
		metric.WithDescription("Total emotional-state labels that matched no keyword."),
	); err != nil {
		return nil, err
	}

	// Error counters.
	if met.ProviderErrors, err = m.Int64Counter("sevenmind.provider.errors",
		metric.WithDescription("Total provider errors by provider and kind."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveTurns, err = m.Int64UpDownCounter("sevenmind.active_turns",
		metric.WithDescription("Number of turns currently in flight."),
	); err != nil {
		return nil, err
	}
	if met.ProgressSubscribers, err = m.Int64UpDownCounter("sevenmind.progress_subscribers",
		metric.WithDescription("Number of connected progress-stream clients."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("sevenmind.http.request.duration",
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

// RecordProviderRequest is a convenience method that records a provider
// request counter increment with the standard attribute set.
func (m *Metrics) RecordProviderRequest(ctx context.Context, provider, kind, status string) {
	m.ProviderRequests.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("kind", kind),
			attribute.String("status", status),
		),
	)
}

// RecordProviderError is a convenience method that records a provider error
// counter increment with the standard attribute set.
func (m *Metrics) RecordProviderError(ctx context.Context, provider, kind string) {
	m.ProviderErrors.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("kind", kind),
		),
	)
}

// RecordStageDuration records the latency of one cognitive stage call.
func (m *Metrics) RecordStageDuration(ctx context.Context, role string, seconds float64) {
	m.StageDuration.Record(ctx, seconds,
		metric.WithAttributes(attribute.String("role", role)),
	)
}

// RecordTurn records one finished turn with the given status ("ok" or
// "error") and its total duration.
func (m *Metrics) RecordTurn(ctx context.Context, status string, seconds float64) {
	m.Turns.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", status)),
	)
	m.TurnDuration.Record(ctx, seconds,
		metric.WithAttributes(attribute.String("status", status)),
	)
}
