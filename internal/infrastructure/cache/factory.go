package cache

import (
	"fmt"

	"github.com/erp/financial-accounting/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RateCacheFactory creates exchange rate caches based on configuration
type RateCacheFactory struct {
	redisConfig           config.RedisConfig
	keyPrefix             string
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// RateCacheFactoryOption is a functional option for configuring the factory
type RateCacheFactoryOption func(*RateCacheFactory)

// WithLogger sets the logger for the factory and the caches it creates
func WithLogger(logger *zap.Logger) RateCacheFactoryOption {
	return func(f *RateCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) RateCacheFactoryOption {
	return func(f *RateCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// WithKeyPrefix sets the Redis key prefix
func WithKeyPrefix(prefix string) RateCacheFactoryOption {
	return func(f *RateCacheFactory) {
		f.keyPrefix = prefix
	}
}

// NewRateCacheFactory creates a new factory
func NewRateCacheFactory(cfg config.RedisConfig, opts ...RateCacheFactoryOption) *RateCacheFactory {
	f := &RateCacheFactory{
		redisConfig:           cfg,
		keyPrefix:             defaultRateKeyPrefix,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache returns a Redis cache when Redis is enabled and reachable.
// Otherwise it falls back to an in-memory cache if allowed.
func (f *RateCacheFactory) CreateCache() (RateCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory exchange rate cache")
		return NewInMemoryRateCache(), nil
	}

	c, err := NewRedisRateCache(f.redisConfig, f.keyPrefix, f.logger)
	if err == nil {
		f.logger.Info("Using Redis exchange rate cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for exchange rate cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory exchange rate cache", zap.Error(err))
	return NewInMemoryRateCache(), nil
}
