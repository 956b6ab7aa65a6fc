package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/financial-accounting/internal/domain/shared"
	"github.com/erp/financial-accounting/internal/domain/voucher"
	"github.com/erp/financial-accounting/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVoucherImportRepository implements voucher.ImportRepository using GORM
type GormVoucherImportRepository struct {
	db *gorm.DB
}

// NewGormVoucherImportRepository creates a new GormVoucherImportRepository
func NewGormVoucherImportRepository(db *gorm.DB) *GormVoucherImportRepository {
	return &GormVoucherImportRepository{db: db}
}

// ImportBatch implements voucher.ImportRepository
func (r *GormVoucherImportRepository) ImportBatch(ctx context.Context, batchID string, size int) (voucher.BatchResult, error) {
	result := voucher.BatchResult{BatchID: batchID}
	if size <= 0 {
		return result, shared.NewDomainError(shared.ErrInvalidInput.Code, "batch size must be positive")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result.Imported, result.Failed = 0, 0

		pending, err := r.lockPending(tx, size)
		if err != nil {
			return err
		}
		for i := range pending {
			reason, err := r.postVoucher(tx, &pending[i])
			if err != nil {
				return err
			}
			if reason != "" {
				if err := markVoucher(tx, pending[i].ID, models.VoucherFailed, batchID, reason); err != nil {
					return err
				}
				result.Failed++
				continue
			}
			if err := markVoucher(tx, pending[i].ID, models.VoucherImported, batchID, ""); err != nil {
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return voucher.BatchResult{BatchID: batchID}, fmt.Errorf("failed to import voucher batch %s: %w", batchID, err)
	}
	return result, nil
}

func (r *GormVoucherImportRepository) lockPending(tx *gorm.DB, size int) ([]models.VoucherModel, error) {
	query := tx.Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("status = ?", models.VoucherPending).
		Order("id ASC").
		Limit(size)
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
	}

	var pending []models.VoucherModel
	if err := query.Find(&pending).Error; err != nil {
		return nil, fmt.Errorf("failed to load pending vouchers: %w", err)
	}
	return pending, nil
}

// postVoucher writes the movements of a valid voucher. It returns the
// rejection reason of an invalid voucher, or an error when the database fails.
func (r *GormVoucherImportRepository) postVoucher(tx *gorm.DB, m *models.VoucherModel) (string, error) {
	v := toDomainVoucher(m)
	if err := v.Validate(); err != nil {
		var de *shared.DomainError
		if errors.As(err, &de) {
			return de.Message, nil
		}
		return "", err
	}

	numbers := make([]string, 0, len(v.Lines))
	for _, line := range v.Lines {
		numbers = append(numbers, line.AccountNumber)
	}
	var known []string
	if err := tx.Model(&models.StandardAccountModel{}).
		Where("accounts_chart_uid = ? AND number IN ?", v.AccountsChartUID, numbers).
		Pluck("number", &known).Error; err != nil {
		return "", fmt.Errorf("failed to check accounts of voucher %s: %w", v.Number, err)
	}
	knownSet := make(map[string]struct{}, len(known))
	for _, number := range known {
		knownSet[number] = struct{}{}
	}
	for _, number := range numbers {
		if _, ok := knownSet[number]; !ok {
			return fmt.Sprintf("voucher %s references unknown account %s", v.Number, number), nil
		}
	}

	movements := make([]models.PostingMovementModel, 0, len(v.Lines))
	for _, line := range v.Lines {
		sector := line.SectorCode
		if sector == "" {
			sector = "00"
		}
		voucherID := v.ID
		movements = append(movements, models.PostingMovementModel{
			AccountsChartUID:   v.AccountsChartUID,
			LedgerID:           v.LedgerID,
			CurrencyID:         line.CurrencyID,
			AccountNumber:      line.AccountNumber,
			SectorCode:         sector,
			SubledgerAccountID: line.SubledgerAccountID,
			PostingDate:        v.AccountingDate,
			Debit:              line.Debit,
			Credit:             line.Credit,
			VoucherID:          &voucherID,
		})
	}
	if err := tx.Create(&movements).Error; err != nil {
		return "", fmt.Errorf("failed to post voucher %s: %w", v.Number, err)
	}
	return "", nil
}

func markVoucher(tx *gorm.DB, id int64, status models.VoucherStatus, batchID, reason string) error {
	return tx.Model(&models.VoucherModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":   status,
			"batch_id": batchID,
			"error":    reason,
		}).Error
}

func toDomainVoucher(m *models.VoucherModel) *voucher.Voucher {
	v := &voucher.Voucher{
		ID:               m.ID,
		Number:           m.Number,
		AccountsChartUID: m.AccountsChartUID,
		LedgerID:         m.LedgerID,
		AccountingDate:   m.AccountingDate,
		Lines:            make([]voucher.Line, 0, len(m.Entries)),
	}
	for _, e := range m.Entries {
		v.Lines = append(v.Lines, voucher.Line{
			CurrencyID:         e.CurrencyID,
			AccountNumber:      e.AccountNumber,
			SectorCode:         e.SectorCode,
			SubledgerAccountID: e.SubledgerAccountID,
			Debit:              e.Debit,
			Credit:             e.Credit,
		})
	}
	return v
}

// Totals implements voucher.ImportRepository
func (r *GormVoucherImportRepository) Totals(ctx context.Context) (voucher.Totals, error) {
	var rows []struct {
		Status models.VoucherStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.VoucherModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return voucher.Totals{}, fmt.Errorf("failed to count vouchers: %w", err)
	}

	var totals voucher.Totals
	for _, row := range rows {
		switch row.Status {
		case models.VoucherPending:
			totals.Pending = row.Count
		case models.VoucherImported:
			totals.Imported = row.Count
		case models.VoucherFailed:
			totals.Failed = row.Count
		}
	}
	return totals, nil
}

// Enqueue stores a voucher with its lines as pending
func (r *GormVoucherImportRepository) Enqueue(ctx context.Context, v *voucher.Voucher) error {
	m := models.VoucherModel{
		Number:           v.Number,
		AccountsChartUID: v.AccountsChartUID,
		LedgerID:         v.LedgerID,
		AccountingDate:   v.AccountingDate,
		Status:           models.VoucherPending,
	}
	for _, line := range v.Lines {
		m.Entries = append(m.Entries, models.VoucherEntryModel{
			CurrencyID:         line.CurrencyID,
			AccountNumber:      line.AccountNumber,
			SectorCode:         line.SectorCode,
			SubledgerAccountID: line.SubledgerAccountID,
			Debit:              line.Debit,
			Credit:             line.Credit,
		})
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("failed to enqueue voucher %s: %w", v.Number, err)
	}
	v.ID = m.ID
	return nil
}

var _ voucher.ImportRepository = (*GormVoucherImportRepository)(nil)
