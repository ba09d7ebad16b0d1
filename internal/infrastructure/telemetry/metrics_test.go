package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string) map[attribute.Distinct]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[attribute.Distinct]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				out[dp.Attributes.Equivalent()] = dp.Value
			}
		}
	}
	return out
}

func TestWatchlistMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := NewMeterProviderWithReader(reader, zaptest.NewLogger(t))
	ctx := context.Background()

	m, err := NewWatchlistMetrics(mp.Meter("test"))
	require.NoError(t, err)

	m.RecordOperation(ctx, "add", OutcomeSuccess)
	m.RecordOperation(ctx, "add", OutcomeSuccess)
	m.RecordOperation(ctx, "add", OutcomeConflict)
	m.RecordToggle(ctx, true)

	ops := collectSum(t, reader, "watchlist_operation_total")
	addOK := attribute.NewSet(AttrOperation.String("add"), AttrOutcome.String(OutcomeSuccess))
	addDup := attribute.NewSet(AttrOperation.String("add"), AttrOutcome.String(OutcomeConflict))
	assert.Equal(t, int64(2), ops[addOK.Equivalent()])
	assert.Equal(t, int64(1), ops[addDup.Equivalent()])

	toggles := collectSum(t, reader, "watchlist_toggle_total")
	watched := attribute.NewSet(AttrWatched.Bool(true))
	assert.Equal(t, int64(1), toggles[watched.Equivalent()])

	assert.True(t, mp.IsEnabled())
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestWatchlistMetrics_NilIsNoop(t *testing.T) {
	var m *WatchlistMetrics
	assert.NotPanics(t, func() {
		m.RecordOperation(context.Background(), "list", OutcomeFault)
		m.RecordToggle(context.Background(), false)
	})
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("noop"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}
