package exprcore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/exprcore/pkg/exprcore/config"
	exerrors "github.com/randalmurphal/exprcore/pkg/exprcore/errors"
	"github.com/randalmurphal/exprcore/pkg/exprcore/module"
	"github.com/randalmurphal/exprcore/pkg/exprcore/operators"
	"github.com/randalmurphal/exprcore/pkg/exprcore/scope"
	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

type recordedCall struct {
	name string
	err  error
}

// recordingMetrics captures what the runtime reports.
type recordingMetrics struct {
	mu          sync.Mutex
	evaluations []error
	calls       []recordedCall
	moduleData  map[string]int64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{moduleData: make(map[string]int64)}
}

func (m *recordingMetrics) RecordEvaluation(_ context.Context, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evaluations = append(m.evaluations, err)
}

func (m *recordingMetrics) RecordCall(_ context.Context, name string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, recordedCall{name: name, err: err})
}

func (m *recordingMetrics) RecordModuleData(_ context.Context, module string, size int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moduleData[module] = size
}

func newTestRuntime(t *testing.T, opts ...Option) (*Runtime, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rt, err := New(append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	return rt, &buf
}

func logRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	return records
}

func TestNew_Defaults(t *testing.T) {
	rt, _ := newTestRuntime(t)

	assert.NotEmpty(t, rt.ID())
	assert.True(t, rt.Registry().Frozen())
	assert.NotNil(t, rt.Logger())
	assert.NotNil(t, rt.Store())
	assert.Equal(t, slog.LevelInfo, rt.Settings().LogLevel)

	other, _ := newTestRuntime(t)
	assert.NotEqual(t, rt.ID(), other.ID())
	assert.NotSame(t, rt.Registry(), other.Registry())
}

func TestNew_Options(t *testing.T) {
	reg := operators.NewDefault()
	store := module.NewMemoryStore()
	metrics := newRecordingMetrics()

	rt, _ := newTestRuntime(t,
		WithRuntimeID("rt-1"),
		WithRegistry(reg),
		WithStore(store),
		WithMetrics(metrics),
	)

	assert.Equal(t, "rt-1", rt.ID())
	assert.Same(t, reg, rt.Registry())
	assert.True(t, reg.Frozen())
	assert.Same(t, store, rt.Store())

	require.NoError(t, rt.Close())
	_, err := store.List()
	assert.NoError(t, err, "caller-owned store stays open")
}

func TestNew_DisabledNames(t *testing.T) {
	settings := config.Default()
	settings.Disabled = []string{"bitwise_xor", "^"}
	rt, _ := newTestRuntime(t, WithSettings(settings))

	_, ok := rt.Registry().Function("bitwise_xor")
	assert.False(t, ok)
	_, ok = rt.Registry().BinaryOperator("^")
	assert.False(t, ok)
	_, ok = rt.Registry().Function("bitwise_and")
	assert.True(t, ok)

	_, err := rt.Call(context.Background(), nil, "bitwise_xor", value.Int(1), value.Int(3))
	assert.ErrorIs(t, err, exerrors.ErrUnknownFunction)
}

func TestNew_SQLiteStore(t *testing.T) {
	settings := config.Default()
	settings.ModuleStore = t.TempDir() + "/data.db"
	rt, _ := newTestRuntime(t, WithSettings(settings))

	_, ok := rt.Store().(*module.SQLiteStore)
	assert.True(t, ok)
}

func TestNewScope_Globals(t *testing.T) {
	settings := config.Default()
	settings.Globals = map[string]value.Value{
		"limit": value.Int(10),
		"name":  value.String("app"),
	}
	rt, _ := newTestRuntime(t, WithSettings(settings))

	s := rt.NewScope()
	assert.ElementsMatch(t, []string{"limit", "name"}, s.Names())

	v, err := s.Get("limit")
	require.NoError(t, err)
	assert.Equal(t, value.Int(10), value.Unwrap(v))

	// Each scope is seeded independently.
	s.Set("limit", value.Int(1))
	v, err = rt.NewScope().Get("limit")
	require.NoError(t, err)
	assert.Equal(t, value.Int(10), value.Unwrap(v))
}

func TestEvaluate(t *testing.T) {
	metrics := newRecordingMetrics()
	rt, buf := newTestRuntime(t, WithMetrics(metrics), WithRuntimeID("rt"))
	reg := rt.Registry()

	s := rt.NewScope()
	prog := scope.Seq(
		scope.Binary(reg, "=", scope.Var("xs"), scope.Lit(value.NewList())),
		scope.Binary(reg, "+=", scope.Var("xs"), scope.Lit(value.Int(1))),
		scope.Binary(reg, "+=", scope.Var("xs"), scope.Lit(value.Int(2))),
		scope.Call(reg, "sum", scope.Unary(reg, "...", scope.Var("xs")), scope.Lit(value.Int(3))),
	)

	v, err := rt.Evaluate(context.Background(), s, prog)
	require.NoError(t, err)
	assert.Equal(t, "6", v.String())

	xs, err := s.Get("xs")
	require.NoError(t, err)
	assert.Equal(t, "[1, 2]", xs.String())

	require.Len(t, metrics.evaluations, 1)
	assert.NoError(t, metrics.evaluations[0])

	records := logRecords(t, buf)
	require.Len(t, records, 2)
	assert.Equal(t, "rt", records[0]["runtime_id"])
	assert.Equal(t, records[0]["eval_id"], records[1]["eval_id"])
	assert.Equal(t, "number", records[1]["result_kind"])
}

func TestEvaluate_NilScope(t *testing.T) {
	rt, _ := newTestRuntime(t)
	reg := rt.Registry()

	v, err := rt.Evaluate(context.Background(), nil, scope.Binary(reg, "*", scope.Lit(value.Int(6)), scope.Lit(value.Int(7))))
	require.NoError(t, err)
	assert.Equal(t, value.Int(42), value.Unwrap(v))
}

func TestEvaluate_Errors(t *testing.T) {
	metrics := newRecordingMetrics()
	rt, buf := newTestRuntime(t, WithMetrics(metrics))
	reg := rt.Registry()

	tests := []struct {
		name     string
		node     operators.Thunk
		sentinel error
		category string
	}{
		{
			name:     "modulo by zero",
			node:     scope.Binary(reg, "%", scope.Lit(value.Int(5)), scope.Lit(value.Int(0))),
			sentinel: exerrors.ErrDivisionByZero,
			category: "arithmetic",
		},
		{
			name:     "assign to literal",
			node:     scope.Binary(reg, "=", scope.Lit(value.Int(1)), scope.Lit(value.Int(2))),
			sentinel: exerrors.ErrNotAssignable,
			category: "semantic",
		},
		{
			name:     "unknown function",
			node:     scope.Call(reg, "nope"),
			sentinel: exerrors.ErrUnknownFunction,
			category: "semantic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			v, err := rt.Evaluate(context.Background(), nil, tt.node)
			require.Error(t, err)
			assert.Nil(t, v)
			assert.ErrorIs(t, err, tt.sentinel)

			var evalErr *EvalError
			require.True(t, errors.As(err, &evalErr))
			assert.Equal(t, "evaluate", evalErr.Op)
			assert.NotEmpty(t, evalErr.EvalID)

			records := logRecords(t, buf)
			require.NotEmpty(t, records)
			last := records[len(records)-1]
			assert.Equal(t, "ERROR", last["level"])
			assert.Equal(t, tt.category, last["category"])
		})
	}
	assert.Len(t, metrics.evaluations, len(tests))
}

func TestEvaluate_Panic(t *testing.T) {
	rt, _ := newTestRuntime(t)

	boom := operators.Thunk(func(operators.Scope, operators.ContextType) (value.Value, error) {
		panic("boom")
	})
	_, err := rt.Evaluate(context.Background(), nil, boom)
	require.Error(t, err)

	var panicErr *PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "boom", panicErr.Value)
	assert.Contains(t, panicErr.Stack, "runtime_test.go")
	assert.Contains(t, err.Error(), "evaluation panicked: boom")
}

func TestEvaluate_Context(t *testing.T) {
	rt, _ := newTestRuntime(t)
	node := scope.Lit(value.Int(1))

	//nolint:staticcheck // testing nil context handling
	_, err := rt.Evaluate(nil, nil, node)
	assert.ErrorIs(t, err, ErrNilContext)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = rt.Evaluate(ctx, nil, node)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCall(t *testing.T) {
	metrics := newRecordingMetrics()
	rt, _ := newTestRuntime(t, WithMetrics(metrics))
	ctx := context.Background()

	tests := []struct {
		name string
		fn   string
		args []value.Value
		want string
	}{
		{name: "function", fn: "bitwise_roll_left", args: []value.Value{value.Int(1), value.Int(1)}, want: "2"},
		{name: "variadic function", fn: "sum", args: []value.Value{value.Int(1), value.Int(2), value.Int(3)}, want: "6"},
		{name: "binary operator", fn: "+", args: []value.Value{value.String("a"), value.Int(1)}, want: "a1"},
		{name: "unary operator", fn: "!", args: []value.Value{value.False}, want: "true"},
		{name: "unary minus", fn: "-", args: []value.Value{value.Int(4)}, want: "-4"},
		{name: "binary minus", fn: "-", args: []value.Value{value.Int(4), value.Int(1)}, want: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := rt.Call(ctx, nil, tt.fn, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}

	require.Len(t, metrics.calls, len(tests))
	assert.Equal(t, "bitwise_roll_left", metrics.calls[0].name)
}

func TestCall_Errors(t *testing.T) {
	metrics := newRecordingMetrics()
	rt, _ := newTestRuntime(t, WithMetrics(metrics))
	ctx := context.Background()

	_, err := rt.Call(ctx, nil, "%", value.Int(5), value.Float(0))
	require.Error(t, err)
	assert.True(t, exerrors.IsArithmetic(err))
	var evalErr *EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "call %", evalErr.Op)

	_, err = rt.Call(ctx, nil, "!", value.True, value.True)
	assert.ErrorIs(t, err, exerrors.ErrUnknownFunction)

	_, err = rt.Call(ctx, nil, "missing")
	assert.ErrorIs(t, err, exerrors.ErrUnknownFunction)

	// Only the arithmetic fault reached the operator.
	require.Len(t, metrics.calls, 1)
	assert.Error(t, metrics.calls[0].err)
}

func TestModuleData(t *testing.T) {
	metrics := newRecordingMetrics()
	rt, _ := newTestRuntime(t, WithMetrics(metrics))
	ctx := context.Background()

	mod, err := module.New("counter", "", false)
	require.NoError(t, err)

	v, err := rt.LoadModuleData(ctx, mod)
	require.NoError(t, err)
	assert.True(t, value.IsNull(v))

	state := value.MapOf(value.String("count"), value.Int(3))
	require.NoError(t, rt.SaveModuleData(ctx, mod, state))
	assert.Positive(t, metrics.moduleData["counter"])

	v, err = rt.LoadModuleData(ctx, mod)
	require.NoError(t, err)
	assert.True(t, value.Equal(state, v))
}

func TestModuleData_ClosedStore(t *testing.T) {
	store := module.NewMemoryStore()
	rt, _ := newTestRuntime(t, WithStore(store))
	require.NoError(t, store.Close())

	mod, err := module.New("m", "", true)
	require.NoError(t, err)

	err = rt.SaveModuleData(context.Background(), mod, value.Int(1))
	assert.ErrorIs(t, err, module.ErrStoreClosed)

	_, err = rt.LoadModuleData(context.Background(), mod)
	assert.ErrorIs(t, err, module.ErrStoreClosed)
}

func TestConcurrentEvaluations(t *testing.T) {
	rt, _ := newTestRuntime(t)
	reg := rt.Registry()

	var wg sync.WaitGroup
	results := make([]value.Value, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			node := scope.Binary(reg, "*", scope.Lit(value.Int(int64(i))), scope.Lit(value.Int(2)))
			results[i], errs[i] = rt.Evaluate(context.Background(), nil, node)
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, value.Int(int64(i*2)), value.Unwrap(results[i]))
	}
}
