package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jeffcwolf/metadata-explorer/pkg/observability"
)

func newReader(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()

	reader := sdkmetric.NewManualReader()

	return reader, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func sumValue(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	require.NotNil(t, m)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}

	return total
}

func TestREDMetrics_RecordRequest(t *testing.T) {
	t.Parallel()

	reader, mp := newReader(t)

	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	red.RecordRequest(ctx, "facets", observability.StatusOK, 10*time.Millisecond)
	red.RecordRequest(ctx, "facets", observability.StatusError, 5*time.Millisecond)

	rm := collect(t, reader)
	assert.Equal(t, int64(2), sumValue(t, findMetric(rm, "explorer.requests.total")))
	assert.Equal(t, int64(1), sumValue(t, findMetric(rm, "explorer.errors.total")))
	assert.NotNil(t, findMetric(rm, "explorer.request.duration.seconds"))
}

func TestREDMetrics_TrackInflight(t *testing.T) {
	t.Parallel()

	reader, mp := newReader(t)

	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	done := red.TrackInflight(context.Background(), "schema")
	assert.Equal(t, int64(1), sumValue(t, findMetric(collect(t, reader), "explorer.inflight.requests")))

	done()
	assert.Equal(t, int64(0), sumValue(t, findMetric(collect(t, reader), "explorer.inflight.requests")))
}

func TestAnalysisMetrics(t *testing.T) {
	t.Parallel()

	reader, mp := newReader(t)

	am, err := observability.NewAnalysisMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	am.RecordAnalysis(ctx, observability.AnalysisStats{Records: 120, Fields: 7, Issues: 3, Duration: time.Second})
	am.RecordLoad(ctx, "json", nil)
	am.RecordLoad(ctx, "json", errors.New("boom"))

	rm := collect(t, reader)
	assert.Equal(t, int64(120), sumValue(t, findMetric(rm, "explorer.analysis.records.total")))
	assert.Equal(t, int64(7), sumValue(t, findMetric(rm, "explorer.analysis.fields.total")))
	assert.Equal(t, int64(3), sumValue(t, findMetric(rm, "explorer.analysis.issues.total")))
	assert.Equal(t, int64(2), sumValue(t, findMetric(rm, "explorer.dataset.loads.total")))
	assert.NotNil(t, findMetric(rm, "explorer.analysis.duration.seconds"))
}
