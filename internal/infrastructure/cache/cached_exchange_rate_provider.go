package cache

import (
	"context"
	"time"

	"github.com/erp/financial-accounting/internal/domain/balance"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultRateTTL = 12 * time.Hour

// CachedExchangeRateProvider decorates an ExchangeRateProvider with a
// RateCache. Missing rates are not cached. A failing cache is logged and
// bypassed so valuation keeps working against the store.
type CachedExchangeRateProvider struct {
	next   balance.ExchangeRateProvider
	cache  RateCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedExchangeRateProvider creates the decorator
func NewCachedExchangeRateProvider(next balance.ExchangeRateProvider, cache RateCache, ttl time.Duration, logger *zap.Logger) *CachedExchangeRateProvider {
	if ttl <= 0 {
		ttl = defaultRateTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedExchangeRateProvider{next: next, cache: cache, ttl: ttl, logger: logger}
}

// GetExchangeRate implements balance.ExchangeRateProvider
func (p *CachedExchangeRateProvider) GetExchangeRate(ctx context.Context, rateTypeUID string, date time.Time,
	fromCurrency, toCurrency string) (decimal.Decimal, error) {
	key := rateKey(rateTypeUID, date, fromCurrency, toCurrency)

	rate, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Warn("Exchange rate cache unavailable", zap.String("key", key), zap.Error(err))
	} else if ok {
		p.logger.Debug("Cache hit for exchange rate", zap.String("key", key))
		return rate, nil
	}

	rate, err = p.next.GetExchangeRate(ctx, rateTypeUID, date, fromCurrency, toCurrency)
	if err != nil {
		return decimal.Zero, err
	}

	if err := p.cache.Set(ctx, key, rate, p.ttl); err != nil {
		p.logger.Warn("Failed to cache exchange rate", zap.String("key", key), zap.Error(err))
	}
	return rate, nil
}

var _ balance.ExchangeRateProvider = (*CachedExchangeRateProvider)(nil)
