package planning

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/logger"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// readThrough serves key from c while the entry is fresh, otherwise runs
// load and stores its result for ttl. A nil cache or a non-positive ttl
// bypasses caching. Cache failures are logged and never fail the call.
// hit reports whether the value came from the cache.
func readThrough[T any](
	ctx context.Context,
	c shared.ResultCache,
	metrics *telemetry.PlanningMetrics,
	name, key string,
	ttl time.Duration,
	load func(context.Context) (T, error),
) (value T, hit bool, err error) {
	if c == nil || ttl <= 0 {
		value, err = load(ctx)
		return value, false, err
	}

	log := logger.L(ctx).With(zap.String("cache", name), zap.String("key", key))

	raw, ok, err := c.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordCacheLookup(ctx, name, telemetry.CacheError)
		log.Warn("Cache read failed, loading from source", zap.Error(err))
	case ok:
		decodeErr := json.Unmarshal(raw, &value)
		if decodeErr == nil {
			metrics.RecordCacheLookup(ctx, name, telemetry.CacheHit)
			return value, true, nil
		}
		log.Warn("Discarding undecodable cache entry", zap.Error(decodeErr))
		_ = c.Delete(ctx, key)
		metrics.RecordCacheLookup(ctx, name, telemetry.CacheMiss)
	default:
		metrics.RecordCacheLookup(ctx, name, telemetry.CacheMiss)
	}

	value, err = load(ctx)
	if err != nil {
		return value, false, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		log.Warn("Result not cacheable", zap.Error(err))
		return value, false, nil
	}
	if err := c.Set(ctx, key, encoded, ttl); err != nil {
		log.Warn("Cache write failed", zap.Error(err))
	}
	return value, false, nil
}
