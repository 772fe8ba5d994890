package planning

import (
	"context"
	"strings"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/domain/planning"
	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/cache"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/telemetry"
)

const (
	descriptionCacheName  = "article_description"
	availabilityCacheName = "article_availability"
)

// ArticleCacheTTLs sets how long article lookups are served from cache.
// Availability is stock data and should stay short.
type ArticleCacheTTLs struct {
	Description  time.Duration
	Availability time.Duration
}

// ArticleService answers single-article lookups
type ArticleService struct {
	articles     planning.ArticleSource
	availability planning.AvailabilitySource
	cache        shared.ResultCache
	ttls         ArticleCacheTTLs
	metrics      *telemetry.PlanningMetrics
}

// NewArticleService creates a new ArticleService. cache may be nil.
func NewArticleService(articles planning.ArticleSource, availability planning.AvailabilitySource, resultCache shared.ResultCache, ttls ArticleCacheTTLs) *ArticleService {
	return &ArticleService{
		articles:     articles,
		availability: availability,
		cache:        resultCache,
		ttls:         ttls,
	}
}

// SetMetrics sets the planning metrics for cache monitoring
func (s *ArticleService) SetMetrics(m *telemetry.PlanningMetrics) {
	s.metrics = m
}

// GetDescription returns the display description of code
func (s *ArticleService) GetDescription(ctx context.Context, code string) (*ArticleDescriptionResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.ErrValidation.WithMessage("Article code is required")
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "planning", "get_article_description",
		telemetry.WithAttribute(telemetry.SpanAttrArticleCode, code),
	)
	defer span.End()

	resp, hit, err := readThrough(ctx, s.cache, s.metrics, descriptionCacheName, cache.Key("description", code), s.ttls.Description,
		func(ctx context.Context) (ArticleDescriptionResponse, error) {
			desc, err := s.articles.GetArticleDescription(ctx, code)
			if err != nil {
				return ArticleDescriptionResponse{}, dataSourceError(ctx, err)
			}
			return ArticleDescriptionResponse{Code: code, Description: desc}, nil
		})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrCacheHit, hit)
	return &resp, nil
}

// GetAvailability returns the netted stock position of code for every
// period, focused on timePeriod. Unknown periods are treated as today.
func (s *ArticleService) GetAvailability(ctx context.Context, code, timePeriod string) (*ArticleAvailabilityResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.ErrValidation.WithMessage("Article code is required")
	}
	period := planning.ParsePeriod(timePeriod)

	ctx, span := telemetry.StartServiceSpan(ctx, "planning", "get_article_availability",
		telemetry.WithAttribute(telemetry.SpanAttrArticleCode, code),
		telemetry.WithAttribute("mrp.time_period", period.String()),
	)
	defer span.End()

	resp, hit, err := readThrough(ctx, s.cache, s.metrics, availabilityCacheName, cache.Key("availability", code), s.ttls.Availability,
		func(ctx context.Context) (ArticleAvailabilityResponse, error) {
			rows, err := s.availability.GetAvailabilityBatch(ctx, []string{code})
			if err != nil {
				return ArticleAvailabilityResponse{}, dataSourceError(ctx, err)
			}
			for _, row := range rows {
				if row.Code == code {
					return ToArticleAvailabilityResponse(row, period), nil
				}
			}
			return ArticleAvailabilityResponse{}, shared.ErrNotFound.WithMessage("No availability data found for article %s", code)
		})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrCacheHit, hit)

	resp = resp.forPeriod(period)
	return &resp, nil
}
