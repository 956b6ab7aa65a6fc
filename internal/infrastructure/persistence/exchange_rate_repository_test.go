package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/financial-accounting/internal/domain/shared"
	"github.com/erp/financial-accounting/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testRateType = "96c617f6-8ed9-47f3-8d2d-f1240e446e1d"

func TestGormExchangeRateRepository_GetExchangeRate(t *testing.T) {
	db := setupAccountingTestDB(t)
	repo := NewGormExchangeRateRepository(db)
	ctx := context.Background()

	for _, rate := range []models.ExchangeRateModel{
		{RateTypeUID: testRateType, FromCurrencyCode: "01", ToCurrencyCode: "02", Date: day(2024, 1, 1), Value: dec("17.0")},
		{RateTypeUID: testRateType, FromCurrencyCode: "01", ToCurrencyCode: "02", Date: day(2024, 1, 31), Value: dec("17.5")},
		{RateTypeUID: testRateType, FromCurrencyCode: "01", ToCurrencyCode: "03", Date: day(2024, 1, 1), Value: dec("0.05")},
	} {
		require.NoError(t, repo.Save(ctx, &rate))
	}

	tests := []struct {
		name     string
		rateType string
		date     int
		month    int
		to       string
		want     string
		notFound bool
	}{
		{name: "rate published on the date", rateType: testRateType, date: 31, month: 1, to: "02", want: "17.5"},
		{name: "latest earlier rate", rateType: testRateType, date: 15, month: 1, to: "02", want: "17"},
		{name: "rate carried forward", rateType: testRateType, date: 1, month: 2, to: "02", want: "17.5"},
		{name: "other currency pair", rateType: testRateType, date: 15, month: 1, to: "03", want: "0.05"},
		{name: "before the first rate", rateType: testRateType, date: 1, month: 0, to: "02", notFound: true},
		{name: "unknown rate type", rateType: "other", date: 15, month: 1, to: "02", notFound: true},
		{name: "unknown currency", rateType: testRateType, date: 15, month: 1, to: "09", notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := day(2024, 1, 1).AddDate(0, tt.month-1, tt.date-1)
			rate, err := repo.GetExchangeRate(ctx, tt.rateType, date, "01", tt.to)
			if tt.notFound {
				assert.True(t, errors.Is(err, shared.ErrNotFound))
				assert.True(t, rate.IsZero())
				return
			}
			require.NoError(t, err)
			assertDecimal(t, tt.want, rate)
		})
	}
}

func TestGormExchangeRateRepository_DatabaseError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}),
		&gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	repo := NewGormExchangeRateRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "exchange_rates" WHERE .*rate_type_uid = \$1.* ORDER BY date DESC.*`).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.GetExchangeRate(context.Background(), testRateType, day(2024, 1, 1), "01", "02")
	require.Error(t, err)
	assert.False(t, errors.Is(err, shared.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
