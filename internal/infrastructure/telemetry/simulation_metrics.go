package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Simulation outcomes recorded on mrp_simulation_total
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeTimeout  = "timeout"
	OutcomeError    = "error"
)

// Cache lookup results recorded on mrp_cache_requests_total
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// PlanningMetrics holds the instruments of the planning services. A nil
// *PlanningMetrics records nothing, so services can run without metrics.
type PlanningMetrics struct {
	simulationTotal    *Counter
	simulationDuration *Histogram
	components         *Histogram
	componentStatus    *Counter
	cacheRequests      *Counter
}

// NewPlanningMetrics creates the planning instruments on meter.
func NewPlanningMetrics(meter metric.Meter) (*PlanningMetrics, error) {
	m := &PlanningMetrics{}
	var err error

	if m.simulationTotal, err = NewCounter(meter, "mrp_simulation_total",
		"Order simulations by outcome", "{simulation}"); err != nil {
		return nil, err
	}
	if m.simulationDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "mrp_simulation_duration_seconds",
		Description: "Order simulation latency in seconds",
		Unit:        "s",
		Boundaries:  SimulationDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.components, err = NewHistogram(meter, HistogramOpts{
		Name:        "mrp_simulation_components",
		Description: "Distinct components per simulated order",
		Unit:        "{component}",
		Boundaries:  ComponentCountBuckets,
	}); err != nil {
		return nil, err
	}
	if m.componentStatus, err = NewCounter(meter, "mrp_simulation_component_status_total",
		"Simulated components by availability status", "{component}"); err != nil {
		return nil, err
	}
	if m.cacheRequests, err = NewCounter(meter, "mrp_cache_requests_total",
		"Result cache lookups by cache and result", "{request}"); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordSimulation records one finished simulation.
func (m *PlanningMetrics) RecordSimulation(ctx context.Context, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.simulationTotal.Inc(ctx, AttrOutcome.String(outcome))
	m.simulationDuration.RecordDuration(ctx, elapsed, AttrOutcome.String(outcome))
}

// RecordComponents records the size of an explosion and the status tally
// of its results.
func (m *PlanningMetrics) RecordComponents(ctx context.Context, total int, byStatus map[string]int) {
	if m == nil {
		return
	}
	m.components.Record(ctx, float64(total))
	for status, n := range byStatus {
		m.componentStatus.Add(ctx, int64(n), AttrStatus.String(status))
	}
}

// RecordCacheLookup records one lookup against the named cache.
func (m *PlanningMetrics) RecordCacheLookup(ctx context.Context, cache, result string) {
	if m == nil {
		return
	}
	m.cacheRequests.Inc(ctx, AttrCache.String(cache), AttrResult.String(result))
}
