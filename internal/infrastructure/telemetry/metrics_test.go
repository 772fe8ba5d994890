package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.ForceFlush(context.Background()))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMetricHelpers(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := NewMeterProviderWithReader(reader, zap.NewNop())
	defer func() { _ = mp.Shutdown(context.Background()) }()
	require.True(t, mp.IsEnabled())

	meter := mp.Meter("test")
	ctx := context.Background()

	counter, err := NewCounter(meter, "test_total", "test counter", "{op}")
	require.NoError(t, err)
	counter.Inc(ctx, AttrOutcome.String("ok"))
	counter.Add(ctx, 4, AttrOutcome.String("ok"))
	counter.Inc(ctx, AttrOutcome.String("error"))

	hist, err := NewHistogram(meter, HistogramOpts{
		Name:       "test_duration_seconds",
		Unit:       "s",
		Boundaries: SimulationDurationBuckets,
	})
	require.NoError(t, err)
	hist.RecordDuration(ctx, 150*time.Millisecond)
	hist.Record(ctx, 2)

	gauge, err := NewGauge(meter, "test_gauge", "test gauge", "{item}")
	require.NoError(t, err)
	gauge.Record(ctx, 3)
	gauge.Record(ctx, 7)

	rm := collect(t, reader)
	assert.Equal(t, int64(5), sumValue(t, rm, "test_total", AttrOutcome.String("ok")))
	assert.Equal(t, int64(1), sumValue(t, rm, "test_total", AttrOutcome.String("error")))
	assert.Equal(t, uint64(2), histogramCount(t, rm, "test_duration_seconds"))

	v, ok := gaugeValue(t, rm, "test_gauge")
	require.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestPlanningMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := NewMeterProviderWithReader(reader, zap.NewNop())
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewPlanningMetrics(mp.Meter("planning"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordSimulation(ctx, OutcomeOK, 40*time.Millisecond)
	m.RecordSimulation(ctx, OutcomeOK, 60*time.Millisecond)
	m.RecordSimulation(ctx, OutcomeTimeout, 30*time.Second)
	m.RecordComponents(ctx, 3, map[string]int{"OK": 2, "NOT_AVAILABLE": 1})
	m.RecordCacheLookup(ctx, "simulation", CacheMiss)
	m.RecordCacheLookup(ctx, "simulation", CacheHit)
	m.RecordCacheLookup(ctx, "simulation", CacheHit)

	rm := collect(t, reader)
	assert.Equal(t, int64(2), sumValue(t, rm, "mrp_simulation_total", AttrOutcome.String(OutcomeOK)))
	assert.Equal(t, int64(1), sumValue(t, rm, "mrp_simulation_total", AttrOutcome.String(OutcomeTimeout)))
	assert.Equal(t, uint64(3), histogramCount(t, rm, "mrp_simulation_duration_seconds"))
	assert.Equal(t, uint64(1), histogramCount(t, rm, "mrp_simulation_components"))
	assert.Equal(t, int64(2), sumValue(t, rm, "mrp_simulation_component_status_total", AttrStatus.String("OK")))
	assert.Equal(t, int64(1), sumValue(t, rm, "mrp_simulation_component_status_total", AttrStatus.String("NOT_AVAILABLE")))
	assert.Equal(t, int64(2), sumValue(t, rm, "mrp_cache_requests_total",
		AttrCache.String("simulation"), AttrResult.String(CacheHit)))
	assert.Equal(t, int64(1), sumValue(t, rm, "mrp_cache_requests_total",
		AttrCache.String("simulation"), AttrResult.String(CacheMiss)))
}

func TestPlanningMetrics_NilIsNoop(t *testing.T) {
	var m *PlanningMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordSimulation(ctx, OutcomeOK, time.Second)
		m.RecordComponents(ctx, 1, map[string]int{"OK": 1})
		m.RecordCacheLookup(ctx, "simulation", CacheHit)
	})
}
