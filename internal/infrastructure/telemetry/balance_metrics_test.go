package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumFor(t *testing.T, m metricdata.Metrics, key attribute.Key, value string) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(key); ok && v.AsString() == value {
			total += dp.Value
		}
	}
	return total
}

func newTestMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	return reader, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
}

func TestNewBalanceMetrics_NilMeter(t *testing.T) {
	_, err := NewBalanceMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestBalanceMetrics_RecordBuild(t *testing.T) {
	reader, provider := newTestMeter()
	m, err := NewBalanceMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordBuild(ctx, "Balanza", 120*time.Millisecond, 40, "")
	m.RecordBuild(ctx, "Balanza", 80*time.Millisecond, 10, "")
	m.RecordBuild(ctx, "BalanzaDolarizada", 0, 0, "INVALID_COMMAND")

	metrics := collect(t, reader)
	builds := metrics["trial_balance_builds_total"]
	assert.Equal(t, int64(2), sumFor(t, builds, AttrOutcome, "success"))
	assert.Equal(t, int64(1), sumFor(t, builds, AttrErrorCode, "INVALID_COMMAND"))

	hist, ok := metrics["trial_balance_rows"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.Equal(t, float64(50), hist.DataPoints[0].Sum)
}

func TestBalanceMetrics_RecordImportBatch(t *testing.T) {
	reader, provider := newTestMeter()
	m, err := NewBalanceMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordImportBatch(ctx, 48, 2, true)
	m.RecordImportBatch(ctx, 0, 50, false)

	metrics := collect(t, reader)
	assert.Equal(t, int64(48), sumFor(t, metrics["vouchers_imported_total"], AttrOutcome, "imported"))
	assert.Equal(t, int64(52), sumFor(t, metrics["vouchers_imported_total"], AttrOutcome, "failed"))
	assert.Equal(t, int64(1), sumFor(t, metrics["voucher_import_batches_total"], AttrOutcome, "rolled_back"))
}

func TestBalanceMetrics_NilReceiver(t *testing.T) {
	var m *BalanceMetrics
	assert.NotPanics(t, func() {
		m.RecordBuild(context.Background(), "Balanza", time.Second, 1, "")
		m.RecordImportBatch(context.Background(), 1, 0, true)
	})
}

func TestRegisterPoolStats(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(7)

	reader, provider := newTestMeter()
	require.NoError(t, RegisterPoolStats(provider.Meter("test"), db))

	gauge, ok := collect(t, reader)["db_pool_connections"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)

	var maxOpen int64
	for _, dp := range gauge.DataPoints {
		if v, ok := dp.Attributes.Value(AttrDBState); ok && v.AsString() == "max_open" {
			maxOpen = dp.Value
		}
	}
	assert.Equal(t, int64(7), maxOpen)
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}
