package telemetry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestLedgerMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewLedgerMetrics(provider.Meter(MeterName))
	require.NoError(t, err)

	ctx := context.Background()
	tenantID := uuid.New()
	m.RecordDeduction(ctx, tenantID, decimal.RequireFromString("15"), 2)
	m.RecordDeduction(ctx, tenantID, decimal.RequireFromString("0.5"), 1)
	m.RecordRestock(ctx, tenantID, 3)
	m.RecordRestock(ctx, tenantID, 0)
	m.RecordInsufficientStock(ctx, tenantID)

	data := collect(t, reader)

	deductions, ok := data["ledger_deductions_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, deductions.DataPoints, 1)
	assert.Equal(t, int64(2), deductions.DataPoints[0].Value)
	tenant, found := deductions.DataPoints[0].Attributes.Value(AttrTenantID)
	require.True(t, found)
	assert.Equal(t, tenantID.String(), tenant.AsString())

	restocks := data["ledger_restock_entries_total"].(metricdata.Sum[int64])
	assert.Equal(t, int64(3), restocks.DataPoints[0].Value)

	rejected := data["ledger_insufficient_stock_total"].(metricdata.Sum[int64])
	assert.Equal(t, int64(1), rejected.DataPoints[0].Value)

	batches := data["ledger_batches_per_deduction"].(metricdata.Histogram[float64])
	assert.Equal(t, uint64(2), batches.DataPoints[0].Count)
	assert.InDelta(t, 3.0, batches.DataPoints[0].Sum, 1e-9)
}

func TestLedgerMetrics_NilReceiver(t *testing.T) {
	var m *LedgerMetrics
	assert.NotPanics(t, func() {
		m.RecordDeduction(context.Background(), uuid.New(), decimal.NewFromInt(1), 1)
		m.RecordRestock(context.Background(), uuid.New(), 1)
		m.RecordInsufficientStock(context.Background(), uuid.New())
	})
}

func TestMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter(MeterName))
	assert.NoError(t, mp.Shutdown(context.Background()))

	_, err = NewLedgerMetrics(mp.Meter(MeterName))
	assert.NoError(t, err)
}

func TestTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer(TracerName))
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewSampler(t *testing.T) {
	assert.Contains(t, newSampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, newSampler(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, newSampler(0.25).Description(), "TraceIDRatioBased")
}
