package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer(instrumentationName)

// SpanManager handles span lifecycle.
type SpanManager interface {
	// StartEvalSpan starts the span covering one evaluation.
	StartEvalSpan(ctx context.Context, runtimeID, evalID string) (context.Context, trace.Span)

	// StartCallSpan starts a child span for one function call.
	StartCallSpan(ctx context.Context, name string, argc int) (context.Context, trace.Span)

	// EndSpanWithError ends span, recording err when non-nil.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the span in ctx.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager using the global tracer provider.
func NewSpanManager() SpanManager {
	return otelSpanManager{}
}

func (otelSpanManager) StartEvalSpan(ctx context.Context, runtimeID, evalID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "exprcore.eval",
		trace.WithAttributes(
			attribute.String("runtime.id", runtimeID),
			attribute.String("eval.id", evalID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (otelSpanManager) StartCallSpan(ctx context.Context, name string, argc int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "exprcore.call."+name,
		trace.WithAttributes(
			attribute.String("function.name", name),
			attribute.Int("function.argc", argc),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

func (otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// EndSpanWithError ends span, recording err and its category when non-nil.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.category", categoryOf(err)))
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
