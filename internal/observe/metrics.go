// Package observe provides the OpenTelemetry metric instruments recorded by
// the controller and the realtime engine.
//
// A package-level default [Metrics] instance ([DefaultMetrics]) uses the
// global meter provider; tests should use [NewMetrics] with a custom
// [metric.MeterProvider] to avoid cross-test pollution. Every Record method
// is safe to call on a nil *Metrics, which records nothing.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "github.com/justyntemme/vcparam"

// Metrics holds the metric instruments. All fields are safe for concurrent
// use; the underlying OTel types handle their own synchronisation.
type Metrics struct {
	// Edits counts external edits. Use with attributes:
	//   attribute.String("kind", ...), attribute.String("result", ...)
	Edits metric.Int64Counter

	// TouchedIDs tracks how many ids a single accepted edit touched.
	TouchedIDs metric.Int64Histogram

	// ModelLoadDuration tracks the time spent parsing a model document and
	// swapping the engine's model.
	ModelLoadDuration metric.Float64Histogram

	// ModelLoads counts model load attempts. Use with attribute:
	//   attribute.String("result", ...)
	ModelLoads metric.Int64Counter
}

// touchedBuckets covers single edits up to a full model bootstrap, which
// touches every per-voice parameter.
var touchedBuckets = []float64{1, 2, 3, 4, 8, 16, 64, 256, 512, 1024}

// loadBuckets defines histogram bucket boundaries (in seconds) for model loads.
var loadBuckets = []float64{
	0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Edits, err = m.Int64Counter("vcparam.edits",
		metric.WithDescription("Total external parameter edits by value kind and result code."),
	); err != nil {
		return nil, err
	}
	if met.TouchedIDs, err = m.Int64Histogram("vcparam.edit.touched",
		metric.WithDescription("Number of parameter ids touched by one accepted edit."),
		metric.WithExplicitBucketBoundaries(touchedBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ModelLoadDuration, err = m.Float64Histogram("vcparam.model_load.duration",
		metric.WithDescription("Latency of loading a model into the engine."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(loadBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ModelLoads, err = m.Int64Counter("vcparam.model_loads",
		metric.WithDescription("Total model load attempts by result."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider].
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

// RecordEdit records one external edit and, when it was accepted, how many
// ids it touched.
func (m *Metrics) RecordEdit(ctx context.Context, kind, result string, touched int) {
	if m == nil {
		return
	}
	m.Edits.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("kind", kind),
			attribute.String("result", result),
		),
	)
	if touched > 0 {
		m.TouchedIDs.Record(ctx, int64(touched))
	}
}

// RecordModelLoad records the outcome and latency of a model load
func (m *Metrics) RecordModelLoad(ctx context.Context, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ModelLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	m.ModelLoadDuration.Record(ctx, elapsed.Seconds())
}
