package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/financial-accounting/internal/domain/voucher"
	"github.com/erp/financial-accounting/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func voucherLine(account string, debit, credit string) voucher.Line {
	return voucher.Line{CurrencyID: 1, AccountNumber: account, Debit: dec(debit), Credit: dec(credit)}
}

func TestGormVoucherImportRepository_ImportBatch(t *testing.T) {
	db := setupAccountingTestDB(t)
	seedReferenceData(t, db)
	repo := NewGormVoucherImportRepository(db)
	ctx := context.Background()

	vouchers := []*voucher.Voucher{
		{Number: "P-001", AccountsChartUID: testChartUID, LedgerID: 1, AccountingDate: day(2024, 1, 3),
			Lines: []voucher.Line{voucherLine("1-01", "250", "0"), voucherLine("2-01", "0", "250")}},
		{Number: "P-002", AccountsChartUID: testChartUID, LedgerID: 1, AccountingDate: day(2024, 1, 4),
			Lines: []voucher.Line{voucherLine("1-01", "250", "0"), voucherLine("2-01", "0", "200")}},
		{Number: "P-003", AccountsChartUID: testChartUID, LedgerID: 1, AccountingDate: day(2024, 1, 5),
			Lines: []voucher.Line{voucherLine("1-01", "10", "0"), voucherLine("5-01", "0", "10")}},
	}
	for _, v := range vouchers {
		require.NoError(t, repo.Enqueue(ctx, v))
		assert.NotZero(t, v.ID)
	}

	totals, err := repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, voucher.Totals{Pending: 3}, totals)

	first, err := repo.ImportBatch(ctx, "batch-1", 2)
	require.NoError(t, err)
	assert.Equal(t, voucher.BatchResult{BatchID: "batch-1", Imported: 1, Failed: 1}, first)

	second, err := repo.ImportBatch(ctx, "batch-2", 2)
	require.NoError(t, err)
	assert.Equal(t, voucher.BatchResult{BatchID: "batch-2", Failed: 1}, second)

	third, err := repo.ImportBatch(ctx, "batch-3", 2)
	require.NoError(t, err)
	assert.Zero(t, third.Processed())

	totals, err = repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, voucher.Totals{Imported: 1, Failed: 2}, totals)

	t.Run("valid voucher posted as movements", func(t *testing.T) {
		var movements []models.PostingMovementModel
		require.NoError(t, db.Order("id").Find(&movements).Error)
		require.Len(t, movements, 2)
		for _, m := range movements {
			require.NotNil(t, m.VoucherID)
			assert.Equal(t, vouchers[0].ID, *m.VoucherID)
			assert.Equal(t, "00", m.SectorCode)
			assert.True(t, m.PostingDate.Equal(day(2024, 1, 3)))
		}
		assertDecimal(t, "250", movements[0].Debit)
		assertDecimal(t, "250", movements[1].Credit)
	})

	t.Run("invalid vouchers keep the reason", func(t *testing.T) {
		var unbalanced, unknown models.VoucherModel
		require.NoError(t, db.First(&unbalanced, vouchers[1].ID).Error)
		require.NoError(t, db.First(&unknown, vouchers[2].ID).Error)

		assert.Equal(t, models.VoucherFailed, unbalanced.Status)
		assert.Equal(t, "batch-1", unbalanced.BatchID)
		assert.Equal(t, "voucher P-002 is unbalanced by 50 in currency 1", unbalanced.Error)

		assert.Equal(t, models.VoucherFailed, unknown.Status)
		assert.Equal(t, "batch-2", unknown.BatchID)
		assert.Equal(t, "voucher P-003 references unknown account 5-01", unknown.Error)
	})
}

func TestGormVoucherImportRepository_InvalidSize(t *testing.T) {
	repo := NewGormVoucherImportRepository(setupAccountingTestDB(t))

	_, err := repo.ImportBatch(context.Background(), "batch", 0)
	assert.EqualError(t, err, "batch size must be positive")
}

func TestGormVoucherImportRepository_RollbackOnDatabaseError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}),
		&gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	repo := NewGormVoucherImportRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "vouchers" WHERE status = \$1 ORDER BY id ASC .*FOR UPDATE SKIP LOCKED`).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	result, err := repo.ImportBatch(context.Background(), "batch-x", 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock detected")
	assert.Equal(t, "batch-x", result.BatchID)
	assert.Zero(t, result.Processed())
	assert.NoError(t, mock.ExpectationsWereMet())
}
