package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/financial-accounting/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultRateKeyPrefix = "fa:exchange_rate:"

// RedisRateCache implements RateCache using Redis. Rates are stored as
// decimal strings so no precision is lost.
type RedisRateCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	keyPrefix  string
	logger     *zap.Logger
}

// NewRedisRateCache connects to Redis and creates a cache that owns the client
func NewRedisRateCache(cfg config.RedisConfig, keyPrefix string, logger *zap.Logger) (*RedisRateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisRateCacheWithClient(client, keyPrefix, logger)
	c.ownsClient = true
	return c, nil
}

// NewRedisRateCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client.
func NewRedisRateCacheWithClient(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisRateCache {
	if keyPrefix == "" {
		keyPrefix = defaultRateKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRateCache{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// Get implements RateCache
func (c *RedisRateCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	cacheKey := c.keyPrefix + key

	raw, err := c.client.Get(ctx, cacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to get exchange rate from cache: %w", err)
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		c.logger.Warn("Dropping corrupted exchange rate cache entry",
			zap.String("key", cacheKey),
			zap.String("value", raw))
		_ = c.client.Del(ctx, cacheKey)
		return decimal.Zero, false, nil
	}
	return rate, true, nil
}

// Set implements RateCache
func (c *RedisRateCache) Set(ctx context.Context, key string, rate decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, rate.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache exchange rate: %w", err)
	}
	return nil
}

// Close closes the Redis client if the cache owns it
func (c *RedisRateCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}

var _ RateCache = (*RedisRateCache)(nil)
