package planning

import (
	"context"
	"testing"

	"github.com/alessandrv/FEC-mrp/internal/domain/planning"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

// MockBOMSource is a mock implementation of planning.BOMSource
type MockBOMSource struct {
	mock.Mock
}

func (m *MockBOMSource) GetBOMLinks(ctx context.Context, parentCode string) ([]planning.BOMLink, error) {
	args := m.Called(ctx, parentCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planning.BOMLink), args.Error(1)
}

// MockArticleSource is a mock implementation of planning.ArticleSource
type MockArticleSource struct {
	mock.Mock
}

func (m *MockArticleSource) GetArticleDescription(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

// MockAvailabilitySource is a mock implementation of planning.AvailabilitySource
type MockAvailabilitySource struct {
	mock.Mock
}

func (m *MockAvailabilitySource) GetAvailabilityBatch(ctx context.Context, codes []string) ([]planning.AvailabilityRow, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]planning.AvailabilityRow), args.Error(1)
}

// link builds a BOM link with a textual coefficient
func link(parent, child, description, coefficient string) planning.BOMLink {
	return planning.BOMLink{
		ParentCode:  parent,
		ChildCode:   child,
		Description: description,
		Coefficient: planning.Num(coefficient),
	}
}

// stockRow builds an availability row with only stock and safety stock set
func stockRow(code, description, stock, safety string) planning.AvailabilityRow {
	return planning.AvailabilityRow{
		Code:        code,
		Description: description,
		StockOnHand: planning.Num(stock),
		SafetyStock: planning.Num(safety),
		LeadTime:    planning.Num("7"),
	}
}

// newTestMetrics returns planning metrics backed by a manual reader
func newTestMetrics(t *testing.T) (*telemetry.PlanningMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, zap.NewNop())
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := telemetry.NewPlanningMetrics(mp.Meter("planning"))
	require.NoError(t, err)
	return m, reader
}

// counterValue reads one data point of an int64 counter
func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	want := attribute.NewSet(attrs...)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				if dp.Attributes.Equals(&want) {
					return dp.Value
				}
			}
		}
	}
	return 0
}
