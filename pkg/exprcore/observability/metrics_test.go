package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	exerrors "github.com/randalmurphal/exprcore/pkg/exprcore/errors"
)

func setupMetricsTest(t *testing.T) *sdkmetric.ManualReader {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	original := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() {
		otel.SetMeterProvider(original)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("shutting down meter provider: %v", err)
		}
	})
	return reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func counterTotal(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	require.NotNil(t, m)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewMetricsRecorder(t *testing.T) {
	setupMetricsTest(t)

	recorder := NewMetricsRecorder()
	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop)
}

func TestRecordEvaluation(t *testing.T) {
	reader := setupMetricsTest(t)
	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordEvaluation(ctx, 3*time.Millisecond, nil)
	m.RecordEvaluation(ctx, time.Millisecond, exerrors.ErrDivisionByZero)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(2), counterTotal(t, findMetric(rm, "exprcore.eval.count")))
	assert.Equal(t, int64(1), counterTotal(t, findMetric(rm, "exprcore.eval.errors")))

	latency := findMetric(rm, "exprcore.eval.latency_ms")
	require.NotNil(t, latency)
	hist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)

	errs := findMetric(rm, "exprcore.eval.errors").Data.(metricdata.Sum[int64])
	require.Len(t, errs.DataPoints, 1)
	category, ok := errs.DataPoints[0].Attributes.Value("category")
	require.True(t, ok)
	assert.Equal(t, "arithmetic", category.AsString())
}

func TestRecordCall(t *testing.T) {
	reader := setupMetricsTest(t)
	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordCall(ctx, "sum", time.Millisecond, nil)
	m.RecordCall(ctx, "sum", time.Millisecond, nil)
	m.RecordCall(ctx, "bitwise_not", time.Millisecond, exerrors.Expression(exerrors.ErrArity, "x"))

	rm := collectMetrics(t, reader)
	calls := findMetric(rm, "exprcore.call.count")
	assert.Equal(t, int64(3), counterTotal(t, calls))
	assert.Len(t, calls.Data.(metricdata.Sum[int64]).DataPoints, 2)
	assert.Equal(t, int64(1), counterTotal(t, findMetric(rm, "exprcore.call.errors")))
}

func TestRecordModuleData(t *testing.T) {
	reader := setupMetricsTest(t)
	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordModuleData(context.Background(), "tools", 128)

	rm := collectMetrics(t, reader)
	size := findMetric(rm, "exprcore.module.data_bytes")
	require.NotNil(t, size)
	hist := size.Data.(metricdata.Histogram[int64])
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, int64(128), hist.DataPoints[0].Sum)
}
