// Package observability provides structured logging, metrics and tracing for
// expression evaluation.
//
// Logging uses log/slog. Metrics and tracing use OpenTelemetry through the
// global providers; NoopMetrics and NoopSpanManager stand in when either is
// disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds runtime_id and eval_id to a logger.
func EnrichLogger(logger *slog.Logger, runtimeID, evalID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("runtime_id", runtimeID),
		slog.String("eval_id", evalID),
	)
}

// LogEvalStart logs the start of an evaluation.
func LogEvalStart(logger *slog.Logger, evalID string) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation starting", slog.String("eval_id", evalID))
}

// LogEvalComplete logs a successful evaluation and the kind of its result.
func LogEvalComplete(logger *slog.Logger, evalID string, durationMs float64, kind string) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation completed",
		slog.String("eval_id", evalID),
		slog.Float64("duration_ms", durationMs),
		slog.String("result_kind", kind),
	)
}

// LogEvalError logs a failed evaluation.
func LogEvalError(logger *slog.Logger, evalID string, err error, durationMs float64, category string) {
	if logger == nil {
		return
	}
	logger.Error("evaluation failed",
		slog.String("eval_id", evalID),
		slog.String("error", err.Error()),
		slog.String("category", category),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCallError logs a failed function call.
func LogCallError(logger *slog.Logger, name string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("call failed",
		slog.String("function", name),
		slog.String("error", err.Error()),
	)
}

// LogModuleData logs a module data transfer.
func LogModuleData(logger *slog.Logger, module, op string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("module data",
		slog.String("module", module),
		slog.String("operation", op),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogModuleDataError logs a module data failure.
func LogModuleDataError(logger *slog.Logger, module, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("module data failed",
		slog.String("module", module),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation returns a function reporting the milliseconds elapsed since
// TimedOperation was called.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
