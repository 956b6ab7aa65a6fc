package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/erp/financial-accounting/internal/domain/balance"
	"github.com/erp/financial-accounting/internal/domain/shared"
	"github.com/erp/financial-accounting/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExchangeRateRepository reads published exchange rates
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// GetExchangeRate returns the latest rate of rateTypeUID published on or
// before date. It returns shared.ErrNotFound when no rate exists.
func (r *GormExchangeRateRepository) GetExchangeRate(ctx context.Context, rateTypeUID string, date time.Time,
	fromCurrency, toCurrency string) (decimal.Decimal, error) {
	var rate models.ExchangeRateModel
	err := r.db.WithContext(ctx).
		Where("rate_type_uid = ? AND from_currency_code = ? AND to_currency_code = ? AND date <= ?",
			rateTypeUID, fromCurrency, toCurrency, date).
		Order("date DESC").
		First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, shared.ErrNotFound
		}
		return decimal.Zero, err
	}
	return rate.Value, nil
}

// Save stores a rate
func (r *GormExchangeRateRepository) Save(ctx context.Context, rate *models.ExchangeRateModel) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

var _ balance.ExchangeRateProvider = (*GormExchangeRateRepository)(nil)
