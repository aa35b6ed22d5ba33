package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics records nothing.
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

func (NoopMetrics) RecordEvaluation(context.Context, time.Duration, error)   {}
func (NoopMetrics) RecordCall(context.Context, string, time.Duration, error) {}
func (NoopMetrics) RecordModuleData(context.Context, string, int64)          {}

// NoopSpanManager starts no spans.
type NoopSpanManager struct{}

var _ SpanManager = NoopSpanManager{}

var noopSpan trace.Span = noop.Span{}

func (NoopSpanManager) StartEvalSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

func (NoopSpanManager) StartCallSpan(ctx context.Context, _ string, _ int) (context.Context, trace.Span) {
	return ctx, noopSpan
}

func (NoopSpanManager) EndSpanWithError(trace.Span, error)                          {}
func (NoopSpanManager) AddSpanEvent(context.Context, string, ...attribute.KeyValue) {}
