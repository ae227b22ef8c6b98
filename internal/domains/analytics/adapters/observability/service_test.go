package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Apurer/erpflow/internal/domains/analytics/domain"
)

type stubService struct {
	err error
}

func (s stubService) Dashboard(context.Context) (domain.Dashboard, error) {
	if s.err != nil {
		return domain.Dashboard{}, s.err
	}
	d := domain.EmptyDashboard()
	d.KPIs.Invoices.Total = 3
	return d, nil
}

func failureCount(t *testing.T, reader *sdkmetric.ManualReader) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "analytics.dashboard.failures" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestService_CountsFailures(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	failing := New(stubService{err: errors.New("db down")}, WithMeter(meter), WithLogger(logger))
	_, err := failing.Dashboard(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 1, failureCount(t, reader))
	assert.Contains(t, logs.String(), "dashboard aggregation failed")
	assert.Contains(t, logs.String(), "db down")

	ok := New(stubService{}, WithMeter(meter), WithLogger(logger))
	got, err := ok.Dashboard(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.KPIs.Invoices.Total)
	assert.EqualValues(t, 1, failureCount(t, reader))
}
