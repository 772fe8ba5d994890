package planning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/domain/planning"
	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/cache"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArticleService_GetDescription(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the description", func(t *testing.T) {
		articles := new(MockArticleSource)
		code := gofakeit.Numerify("ART-####")
		desc := gofakeit.ProductName()
		articles.On("GetArticleDescription", mock.Anything, code).Return(desc, nil)

		svc := NewArticleService(articles, new(MockAvailabilitySource), nil, ArticleCacheTTLs{})
		resp, err := svc.GetDescription(ctx, "  "+code+" ")

		require.NoError(t, err)
		assert.Equal(t, code, resp.Code)
		assert.Equal(t, desc, resp.Description)
		articles.AssertExpectations(t)
	})

	t.Run("blank code is a validation error", func(t *testing.T) {
		articles := new(MockArticleSource)
		svc := NewArticleService(articles, new(MockAvailabilitySource), nil, ArticleCacheTTLs{})

		_, err := svc.GetDescription(ctx, " ")

		assert.ErrorIs(t, err, shared.ErrValidation)
		articles.AssertNotCalled(t, "GetArticleDescription", mock.Anything, mock.Anything)
	})

	t.Run("unknown article is not found", func(t *testing.T) {
		articles := new(MockArticleSource)
		articles.On("GetArticleDescription", mock.Anything, "GHOST").
			Return("", shared.ErrNotFound.WithMessage("Article GHOST not found"))
		svc := NewArticleService(articles, new(MockAvailabilitySource), nil, ArticleCacheTTLs{})

		_, err := svc.GetDescription(ctx, "GHOST")

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("database failure is an upstream error", func(t *testing.T) {
		articles := new(MockArticleSource)
		articles.On("GetArticleDescription", mock.Anything, "A").Return("", errors.New("driver: bad connection"))
		svc := NewArticleService(articles, new(MockAvailabilitySource), nil, ArticleCacheTTLs{})

		_, err := svc.GetDescription(ctx, "A")

		assert.ErrorIs(t, err, shared.ErrUpstreamData)
	})

	t.Run("repeated lookups are served from cache", func(t *testing.T) {
		articles := new(MockArticleSource)
		articles.On("GetArticleDescription", mock.Anything, "A").Return("Pump body", nil).Once()
		resultCache := cache.NewInMemoryResultCache(0)
		defer resultCache.Close()
		svc := NewArticleService(articles, new(MockAvailabilitySource), resultCache, ArticleCacheTTLs{Description: time.Hour})

		for range 3 {
			resp, err := svc.GetDescription(ctx, "A")
			require.NoError(t, err)
			assert.Equal(t, "Pump body", resp.Description)
		}
		articles.AssertNumberOfCalls(t, "GetArticleDescription", 1)
	})
}

func TestArticleService_GetAvailability(t *testing.T) {
	ctx := context.Background()

	row := stockRow("B", "Bolt M6", "10", "5")
	row.Demand = [planning.BucketCount]planning.RawNumber{planning.Num("8"), planning.Num("4"), planning.NullNumber, planning.Num("1")}
	row.Supply = [planning.BucketCount]planning.RawNumber{planning.Num("0"), planning.Num("10"), planning.Num("3"), planning.Num("x")}

	t.Run("nets every period and focuses the requested one", func(t *testing.T) {
		availability := new(MockAvailabilitySource)
		availability.On("GetAvailabilityBatch", mock.Anything, []string{"B"}).Return([]planning.AvailabilityRow{row}, nil)
		svc := NewArticleService(new(MockArticleSource), availability, nil, ArticleCacheTTLs{})

		resp, err := svc.GetAvailability(ctx, "B", "mc")

		require.NoError(t, err)
		assert.Equal(t, "Bolt M6", resp.Description)
		assert.Equal(t, int64(7), resp.LeadTime)
		assert.Equal(t, int64(5), resp.SafetyStock)
		assert.Equal(t, int64(10), resp.StockOnHand)
		assert.Equal(t, map[string]int64{"today": 10, "mc": 2, "ms": 8, "msa": 11, "mss": 10}, resp.NetByPeriod)
		assert.Equal(t, "mc", resp.TimePeriod)
		assert.Equal(t, int64(2), resp.NetAvailability)
		assert.Equal(t, "PARTIAL", resp.Status)
	})

	t.Run("unknown period falls back to today", func(t *testing.T) {
		availability := new(MockAvailabilitySource)
		availability.On("GetAvailabilityBatch", mock.Anything, []string{"B"}).Return([]planning.AvailabilityRow{row}, nil)
		svc := NewArticleService(new(MockArticleSource), availability, nil, ArticleCacheTTLs{})

		resp, err := svc.GetAvailability(ctx, "B", "next-year")

		require.NoError(t, err)
		assert.Equal(t, "today", resp.TimePeriod)
		assert.Equal(t, int64(10), resp.NetAvailability)
		assert.Equal(t, "OK", resp.Status)
	})

	t.Run("article without row is not found", func(t *testing.T) {
		availability := new(MockAvailabilitySource)
		availability.On("GetAvailabilityBatch", mock.Anything, []string{"Z"}).Return([]planning.AvailabilityRow{}, nil)
		svc := NewArticleService(new(MockArticleSource), availability, nil, ArticleCacheTTLs{})

		_, err := svc.GetAvailability(ctx, "Z", "today")

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "Z")
	})

	t.Run("blank code is a validation error", func(t *testing.T) {
		svc := NewArticleService(new(MockArticleSource), new(MockAvailabilitySource), nil, ArticleCacheTTLs{})

		_, err := svc.GetAvailability(ctx, "", "today")

		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("cached row serves every period", func(t *testing.T) {
		availability := new(MockAvailabilitySource)
		availability.On("GetAvailabilityBatch", mock.Anything, []string{"B"}).Return([]planning.AvailabilityRow{row}, nil).Once()
		resultCache := cache.NewInMemoryResultCache(0)
		defer resultCache.Close()
		svc := NewArticleService(new(MockArticleSource), availability, resultCache, ArticleCacheTTLs{Availability: time.Minute})

		today, err := svc.GetAvailability(ctx, "B", "today")
		require.NoError(t, err)
		later, err := svc.GetAvailability(ctx, "B", "msa")
		require.NoError(t, err)

		assert.Equal(t, int64(10), today.NetAvailability)
		assert.Equal(t, "msa", later.TimePeriod)
		assert.Equal(t, int64(11), later.NetAvailability)
		availability.AssertNumberOfCalls(t, "GetAvailabilityBatch", 1)
	})
}
