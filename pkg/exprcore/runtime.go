package exprcore

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/exprcore/pkg/exprcore/config"
	exerrors "github.com/randalmurphal/exprcore/pkg/exprcore/errors"
	"github.com/randalmurphal/exprcore/pkg/exprcore/module"
	"github.com/randalmurphal/exprcore/pkg/exprcore/observability"
	"github.com/randalmurphal/exprcore/pkg/exprcore/operators"
	"github.com/randalmurphal/exprcore/pkg/exprcore/scope"
	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

// Runtime is one language instance. It is safe for concurrent use as long as
// concurrent evaluations use different scopes.
type Runtime struct {
	id        string
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
	store     module.Store
	ownsStore bool
	registry  *operators.Registry
	settings  config.Settings
}

// New builds a runtime. The registry is frozen before New returns.
func New(opts ...Option) (*Runtime, error) {
	cfg := defaultRuntimeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Runtime{
		id:       cfg.id,
		logger:   cfg.logger,
		metrics:  cfg.metrics,
		spans:    cfg.spans,
		store:    cfg.store,
		registry: cfg.registry,
		settings: cfg.settings,
	}
	if r.id == "" {
		r.id = uuid.NewString()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.metrics == nil {
		r.metrics = observability.NoopMetrics{}
		if r.settings.Metrics {
			r.metrics = observability.NewMetricsRecorder()
		}
	}
	if r.spans == nil {
		r.spans = observability.NoopSpanManager{}
		if r.settings.Tracing {
			r.spans = observability.NewSpanManager()
		}
	}
	if r.registry == nil {
		r.registry = operators.NewDefault()
	}
	if err := r.registry.Disable(r.settings.Disabled...); err != nil {
		return nil, fmt.Errorf("disable operators: %w", err)
	}
	r.registry.Freeze()

	if r.store == nil {
		store, err := module.OpenStore(r.settings.ModuleStore)
		if err != nil {
			return nil, fmt.Errorf("open module store: %w", err)
		}
		r.store, r.ownsStore = store, true
	}
	return r, nil
}

// ID returns the runtime ID.
func (r *Runtime) ID() string { return r.id }

// Registry returns the frozen registry.
func (r *Runtime) Registry() *operators.Registry { return r.registry }

// Logger returns the runtime logger.
func (r *Runtime) Logger() *slog.Logger { return r.logger }

// Settings returns the applied settings.
func (r *Runtime) Settings() config.Settings { return r.settings }

// Store returns the module data store.
func (r *Runtime) Store() module.Store { return r.store }

// NewScope creates a scope holding the configured globals.
func (r *Runtime) NewScope() *scope.Scope {
	s := scope.New()
	for name, v := range r.settings.Globals {
		s.Set(name, v)
	}
	return s
}

// Evaluate forces node in s. A nil scope gets a fresh one from NewScope.
func (r *Runtime) Evaluate(ctx context.Context, s operators.Scope, node operators.Thunk) (value.Value, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	evalID := uuid.NewString()
	if err := ctx.Err(); err != nil {
		return nil, &EvalError{EvalID: evalID, Op: "evaluate", Err: err}
	}
	if s == nil {
		s = r.NewScope()
	}

	logger := observability.EnrichLogger(r.logger, r.id, evalID)
	ctx, span := r.spans.StartEvalSpan(ctx, r.id, evalID)
	elapsed := observability.TimedOperation()
	start := time.Now()
	observability.LogEvalStart(logger, evalID)

	v, err := force(s, node)

	r.metrics.RecordEvaluation(ctx, time.Since(start), err)
	r.spans.EndSpanWithError(span, err)
	if err != nil {
		observability.LogEvalError(logger, evalID, err, elapsed(), exerrors.Categorize(err).String())
		return nil, &EvalError{EvalID: evalID, Op: "evaluate", Err: err}
	}
	observability.LogEvalComplete(logger, evalID, elapsed(), value.Unwrap(v).Kind().String())
	return v, nil
}

// Call applies the function name to args. When no function has that name, a
// binary operator is tried for two arguments and a unary operator for one.
func (r *Runtime) Call(ctx context.Context, s operators.Scope, name string, args ...value.Value) (value.Value, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	op := "call " + name
	node, err := r.callNode(name, args)
	if err != nil {
		observability.LogCallError(r.logger, name, err)
		return nil, &EvalError{Op: op, Err: err}
	}
	if s == nil {
		s = r.NewScope()
	}

	ctx, span := r.spans.StartCallSpan(ctx, name, len(args))
	start := time.Now()
	v, err := force(s, node)
	r.metrics.RecordCall(ctx, name, time.Since(start), err)
	r.spans.EndSpanWithError(span, err)
	if err != nil {
		observability.LogCallError(r.logger, name, err)
		return nil, &EvalError{Op: op, Err: err}
	}
	return v, nil
}

func (r *Runtime) callNode(name string, args []value.Value) (operators.Thunk, error) {
	thunks := make([]operators.Thunk, len(args))
	for i, a := range args {
		thunks[i] = operators.Const(a)
	}
	if _, ok := r.registry.Function(name); ok {
		return scope.Call(r.registry, name, thunks...), nil
	}
	if _, ok := r.registry.BinaryOperator(name); ok && len(args) == 2 {
		return scope.Binary(r.registry, name, thunks[0], thunks[1]), nil
	}
	if _, ok := r.registry.UnaryOperator(name); ok && len(args) == 1 {
		return scope.Unary(r.registry, name, thunks[0]), nil
	}
	return nil, exerrors.Expression(exerrors.ErrUnknownFunction, "%s with %d arguments", name, len(args))
}

// LoadModuleData returns the data saved for m, or Null.
func (r *Runtime) LoadModuleData(ctx context.Context, m module.Module) (value.Value, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	v, err := module.LoadData(r.store, m)
	if err != nil {
		observability.LogModuleDataError(r.logger, m.Name, "load", err)
		return nil, &EvalError{Op: "load data", Err: err}
	}
	return v, nil
}

// SaveModuleData persists v as the data of m.
func (r *Runtime) SaveModuleData(ctx context.Context, m module.Module, v value.Value) error {
	if ctx == nil {
		return ErrNilContext
	}
	size, err := module.SaveData(r.store, m, v)
	if err != nil {
		observability.LogModuleDataError(r.logger, m.Name, "save", err)
		return &EvalError{Op: "save data", Err: err}
	}
	observability.LogModuleData(r.logger, m.Name, "save", size)
	r.metrics.RecordModuleData(ctx, m.Name, int64(size))
	return nil
}

// Close releases the module store if the runtime opened it.
func (r *Runtime) Close() error {
	if !r.ownsStore {
		return nil
	}
	return r.store.Close()
}

// force evaluates node in ContextNone, converting a panic into *PanicError.
func force(s operators.Scope, node operators.Thunk) (v value.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			v, err = nil, &PanicError{Value: p, Stack: string(debug.Stack())}
		}
	}()
	return node.Eval(s, operators.ContextNone)
}
