package cache

import (
	"fmt"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ResultCacheFactory creates the result cache based on configuration
type ResultCacheFactory struct {
	redisConfig           config.RedisConfig
	sweepInterval         time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ResultCacheFactoryOption is a functional option for configuring the factory
type ResultCacheFactoryOption func(*ResultCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ResultCacheFactoryOption {
	return func(f *ResultCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is enabled but unreachable. Default is true.
func WithInMemoryFallback(allow bool) ResultCacheFactoryOption {
	return func(f *ResultCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// WithSweepInterval sets how often the in-memory cache drops expired entries
func WithSweepInterval(interval time.Duration) ResultCacheFactoryOption {
	return func(f *ResultCacheFactory) {
		f.sweepInterval = interval
	}
}

// NewResultCacheFactory creates a new factory
func NewResultCacheFactory(cfg config.RedisConfig, opts ...ResultCacheFactoryOption) *ResultCacheFactory {
	f := &ResultCacheFactory{
		redisConfig:           cfg,
		sweepInterval:         DefaultSweepInterval,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache returns a Redis cache when Redis is enabled and reachable and
// an in-memory cache otherwise
func (f *ResultCacheFactory) CreateCache() (shared.ResultCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-memory result cache", zap.Duration("sweep_interval", f.sweepInterval))
		return NewInMemoryResultCache(f.sweepInterval), nil
	}

	store, err := NewRedisResultCache(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis result cache", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis result cache unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory result cache; instances will not share cached results",
		zap.Error(err),
	)
	return NewInMemoryResultCache(f.sweepInterval), nil
}
