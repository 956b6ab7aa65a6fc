package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateCache stores exchange rates under a composite key
type RateCache interface {
	// Get returns the cached rate; ok is false on a miss
	Get(ctx context.Context, key string) (rate decimal.Decimal, ok bool, err error)
	Set(ctx context.Context, key string, rate decimal.Decimal, ttl time.Duration) error
	Close() error
}

// rateKey builds the cache key of one rate lookup. Rates are published per
// day so the date is truncated to YYYY-MM-DD.
func rateKey(rateTypeUID string, date time.Time, fromCurrency, toCurrency string) string {
	return rateTypeUID + ":" + date.Format(time.DateOnly) + ":" + fromCurrency + ":" + toCurrency
}
