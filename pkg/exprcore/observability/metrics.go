package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/randalmurphal/exprcore"

// MetricsRecorder records evaluation metrics.
type MetricsRecorder interface {
	// RecordEvaluation records one top-level evaluation.
	RecordEvaluation(ctx context.Context, duration time.Duration, err error)

	// RecordCall records one function call made through the runtime.
	RecordCall(ctx context.Context, name string, duration time.Duration, err error)

	// RecordModuleData records the encoded size of saved module data.
	RecordModuleData(ctx context.Context, module string, sizeBytes int64)
}

type otelMetrics struct {
	evaluations metric.Int64Counter
	evalLatency metric.Float64Histogram
	evalErrors  metric.Int64Counter
	calls       metric.Int64Counter
	callLatency metric.Float64Histogram
	callErrors  metric.Int64Counter
	moduleData  metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter(instrumentationName)
	m := &otelMetrics{}
	var err error

	if m.evaluations, err = meter.Int64Counter("exprcore.eval.count",
		metric.WithDescription("Number of evaluations"),
	); err != nil {
		return nil, err
	}
	if m.evalLatency, err = meter.Float64Histogram("exprcore.eval.latency_ms",
		metric.WithDescription("Evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.evalErrors, err = meter.Int64Counter("exprcore.eval.errors",
		metric.WithDescription("Number of failed evaluations"),
	); err != nil {
		return nil, err
	}
	if m.calls, err = meter.Int64Counter("exprcore.call.count",
		metric.WithDescription("Number of function calls"),
	); err != nil {
		return nil, err
	}
	if m.callLatency, err = meter.Float64Histogram("exprcore.call.latency_ms",
		metric.WithDescription("Function call latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.callErrors, err = meter.Int64Counter("exprcore.call.errors",
		metric.WithDescription("Number of failed function calls"),
	); err != nil {
		return nil, err
	}
	if m.moduleData, err = meter.Int64Histogram("exprcore.module.data_bytes",
		metric.WithDescription("Encoded module data size in bytes"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// NewMetricsRecorder returns an OpenTelemetry recorder backed by the global
// meter provider, or NoopMetrics if the instruments cannot be created.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordEvaluation(ctx context.Context, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))
	m.evaluations.Add(ctx, 1, attrs)
	m.evalLatency.Record(ctx, millis(duration), attrs)
	if err != nil {
		m.evalErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("category", categoryOf(err))))
	}
}

func (m *otelMetrics) RecordCall(ctx context.Context, name string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("function", name))
	m.calls.Add(ctx, 1, attrs)
	m.callLatency.Record(ctx, millis(duration), attrs)
	if err != nil {
		m.callErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("function", name),
			attribute.String("category", categoryOf(err)),
		))
	}
}

func (m *otelMetrics) RecordModuleData(ctx context.Context, module string, sizeBytes int64) {
	m.moduleData.Record(ctx, sizeBytes, metric.WithAttributes(attribute.String("module", module)))
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
