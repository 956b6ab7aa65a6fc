package persistence

import (
	"testing"
	"time"

	"github.com/erp/financial-accounting/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testChartUID = "b6f4a1e2-0d7c-4a53-9c1e-5f0a2d3c4b11"

func setupAccountingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), append([]any{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

// seedReferenceData creates one chart with two levels of debtor and creditor
// accounts, one sector, two currencies, two ledgers and a subledger account.
func seedReferenceData(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.AccountsChartModel{UID: testChartUID, Name: "Catalogo", Separator: "-"}).Error)
	require.NoError(t, db.Create(&[]models.StandardAccountModel{
		{AccountsChartUID: testChartUID, Number: "1", Name: "Activo", DebtorCreditor: "D"},
		{AccountsChartUID: testChartUID, Number: "1-01", Name: "Caja", DebtorCreditor: "D"},
		{AccountsChartUID: testChartUID, Number: "2", Name: "Pasivo", DebtorCreditor: "A"},
		{AccountsChartUID: testChartUID, Number: "2-01", Name: "Proveedores", DebtorCreditor: "A", GroupNumber: "20"},
	}).Error)
	require.NoError(t, db.Create(&[]models.SectorModel{
		{Code: "01", Name: "Sector publico"},
		{Code: "02", Name: "Gobierno federal", ParentCode: "01"},
	}).Error)
	require.NoError(t, db.Create(&[]models.CurrencyModel{
		{ID: 1, Code: "01", Name: "Pesos"},
		{ID: 2, Code: "02", Name: "Dolares"},
	}).Error)
	require.NoError(t, db.Create(&[]models.LedgerModel{
		{ID: 1, Number: "01", Name: "General"},
		{ID: 2, Number: "02", Name: "Fideicomisos"},
	}).Error)
	require.NoError(t, db.Create(&models.SubledgerAccountModel{ID: 10, LedgerID: 1, Number: "0001", Name: "Cliente uno"}).Error)
}

func movement(ledgerID, currencyID int64, account, sector string, subledgerID int64, date time.Time, debit, credit string) models.PostingMovementModel {
	return models.PostingMovementModel{
		AccountsChartUID:   testChartUID,
		LedgerID:           ledgerID,
		CurrencyID:         currencyID,
		AccountNumber:      account,
		SectorCode:         sector,
		SubledgerAccountID: subledgerID,
		PostingDate:        date,
		Debit:              dec(debit),
		Credit:             dec(credit),
	}
}

// seedMovements posts the movements of December 2023 to February 2024
func seedMovements(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&[]models.PostingMovementModel{
		movement(1, 1, "1-01", "00", 0, day(2023, 12, 20), "100", "0"),
		movement(1, 1, "1-01", "00", 0, day(2024, 1, 10), "50", "0"),
		movement(1, 1, "1-01", "00", 0, day(2024, 1, 15), "0", "20"),
		movement(1, 1, "2-01", "00", 0, day(2023, 12, 20), "0", "100"),
		movement(1, 1, "2-01", "00", 0, day(2024, 1, 10), "0", "30"),
		movement(1, 2, "1-01", "01", 10, day(2024, 1, 5), "10", "0"),
		movement(2, 1, "1-01", "00", 0, day(2023, 11, 1), "5", "0"),
		movement(1, 1, "1-01", "00", 0, day(2024, 2, 5), "999", "0"),
	}).Error)
}
