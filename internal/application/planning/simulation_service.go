package planning

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/domain/planning"
	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/cache"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/logger"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/telemetry"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const simulationCacheName = "simulation"

// SimulationOptions tunes SimulationService
type SimulationOptions struct {
	// Timeout bounds a whole simulation. Zero leaves only the caller deadline.
	Timeout time.Duration
	// Concurrency bounds parallel BOM lookups within one call
	Concurrency int
	// LegacyNoneParent reports "None" as the parent of articles without a BOM
	LegacyNoneParent bool
	// CacheTTL keeps ranked answers for identical orders. Zero disables it.
	CacheTTL time.Duration
}

// SimulationService runs order simulations: explode the order, fetch
// availability for every component in one batch, net and rank.
type SimulationService struct {
	boms         planning.BOMSource
	articles     planning.ArticleSource
	availability planning.AvailabilitySource
	cache        shared.ResultCache
	metrics      *telemetry.PlanningMetrics
	opts         SimulationOptions
}

// NewSimulationService creates a new SimulationService. cache may be nil.
func NewSimulationService(
	boms planning.BOMSource,
	articles planning.ArticleSource,
	availability planning.AvailabilitySource,
	resultCache shared.ResultCache,
	opts SimulationOptions,
) *SimulationService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &SimulationService{
		boms:         boms,
		articles:     articles,
		availability: availability,
		cache:        resultCache,
		opts:         opts,
	}
}

// SetMetrics sets the planning metrics for simulation monitoring
func (s *SimulationService) SetMetrics(m *telemetry.PlanningMetrics) {
	s.metrics = m
}

// SimulateOrder returns the ranked projected availability of every component
// needed by req. Errors are domain errors: validation, not found, timeout or
// upstream failure.
func (s *SimulationService) SimulateOrder(ctx context.Context, req SimulateOrderRequest) ([]SimulationResultResponse, error) {
	start := time.Now()
	period := requestedPeriod(req.TimePeriod)

	ctx, span := telemetry.StartServiceSpan(ctx, "planning", "simulate_order",
		telemetry.WithAttribute("mrp.line_items", len(req.Items)),
		telemetry.WithAttribute("mrp.time_period", period.String()),
	)
	defer span.End()

	results, hit, err := s.simulateCached(ctx, req.Items, period)
	elapsed := time.Since(start)
	s.metrics.RecordSimulation(ctx, outcomeOf(err), elapsed)

	log := logger.L(ctx).With(
		zap.Int("line_items", len(req.Items)),
		zap.String("time_period", period.String()),
		zap.Duration("elapsed", elapsed),
	)
	if err != nil {
		telemetry.RecordError(span, err)
		if isClientError(err) {
			log.Info("Order simulation rejected", zap.Error(err))
		} else {
			log.Error("Order simulation failed", zap.Error(err))
		}
		return nil, err
	}

	notAvailable := lo.CountBy(results, func(r SimulationResultResponse) bool {
		return r.Status == string(planning.StatusNotAvailable)
	})
	telemetry.SetAttributes(span,
		telemetry.SpanAttrComponentCount, len(results),
		telemetry.SpanAttrNotAvailable, notAvailable,
		telemetry.SpanAttrCacheHit, hit,
	)
	log.Info("Order simulated",
		zap.Int("components", len(results)),
		zap.Int("not_available", notAvailable),
		zap.Bool("cache_hit", hit),
	)
	return results, nil
}

func (s *SimulationService) simulateCached(ctx context.Context, items []SimulateOrderItem, period planning.Period) ([]SimulationResultResponse, bool, error) {
	if len(items) == 0 {
		return nil, false, planning.ErrEmptyOrder
	}
	lines := toLineItems(items)

	return readThrough(ctx, s.cache, s.metrics, simulationCacheName, simulationCacheKey(lines, period), s.opts.CacheTTL,
		func(ctx context.Context) ([]SimulationResultResponse, error) {
			return s.simulate(ctx, lines, period)
		})
}

func (s *SimulationService) simulate(ctx context.Context, lines []planning.LineItem, period planning.Period) ([]SimulationResultResponse, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	explosion, err := s.explode(ctx, lines)
	if err != nil {
		return nil, err
	}

	rows, err := s.fetchAvailability(ctx, explosion.Codes())
	if err != nil {
		return nil, err
	}

	_, span := telemetry.StartServiceSpan(ctx, "planning", "build_results")
	results := planning.BuildResults(explosion, rows, period)
	planning.RankResults(results)
	span.End()

	byStatus := lo.MapKeys(planning.StatusCounts(results), func(_ int, status planning.Status) string {
		return string(status)
	})
	s.metrics.RecordComponents(ctx, len(results), byStatus)

	return ToSimulationResultResponses(results), nil
}

func (s *SimulationService) explode(ctx context.Context, lines []planning.LineItem) (*planning.Explosion, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "planning", "explode")
	defer span.End()

	explosion, err := planning.Explode(ctx, s.boms, s.articles, lines, planning.ExplodeOptions{
		Concurrency:      s.opts.Concurrency,
		LegacyNoneParent: s.opts.LegacyNoneParent,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrComponentCount, explosion.Len())
	return explosion, nil
}

// fetchAvailability loads every component row in a single batch. An empty
// answer means the source knows none of the components.
func (s *SimulationService) fetchAvailability(ctx context.Context, codes []string) ([]planning.AvailabilityRow, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "planning", "fetch_availability",
		telemetry.WithAttribute(telemetry.SpanAttrComponentCount, len(codes)),
	)
	defer span.End()

	rows, err := s.availability.GetAvailabilityBatch(ctx, codes)
	if err != nil {
		err = dataSourceError(ctx, err)
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, planning.ErrNoAvailabilityRows
	}
	telemetry.SetAttributes(span, "mrp.rows", len(rows))
	return rows, nil
}

// simulationCacheKey digests the effective order: lines that survive
// filtering, with coerced quantities, in order, plus the period.
func simulationCacheKey(lines []planning.LineItem, period planning.Period) string {
	parts := make([]string, 0, 1+len(lines))
	parts = append(parts, period.String())
	for _, line := range lines {
		if line.Code == "" {
			continue
		}
		qty := planning.CoerceQuantity(line.Quantity, 0)
		if qty <= 0 {
			continue
		}
		parts = append(parts, line.Code+"="+strconv.FormatInt(qty, 10))
	}
	return cache.Key("simulate", parts...)
}

// dataSourceError maps a repository failure to the domain taxonomy
func dataSourceError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		if errors.Is(err, shared.ErrTimeout) {
			return err
		}
		return shared.ErrTimeout.Wrap(err)
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	return shared.ErrUpstreamData.Wrap(err)
}

func isClientError(err error) bool {
	return errors.Is(err, shared.ErrValidation) || errors.Is(err, shared.ErrNotFound)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeOK
	case errors.Is(err, shared.ErrValidation):
		return telemetry.OutcomeInvalid
	case errors.Is(err, shared.ErrNotFound):
		return telemetry.OutcomeNotFound
	case errors.Is(err, shared.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return telemetry.OutcomeTimeout
	default:
		return telemetry.OutcomeError
	}
}
