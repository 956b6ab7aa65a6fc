package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/financial-accounting/internal/domain/balance"
	"github.com/erp/financial-accounting/internal/domain/shared"
	"github.com/erp/financial-accounting/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAccountsChartRepository loads accounts charts with their sectors and
// the currency catalog.
type GormAccountsChartRepository struct {
	db               *gorm.DB
	defaultSeparator string
}

// AccountsChartRepositoryOption configures a GormAccountsChartRepository
type AccountsChartRepositoryOption func(*GormAccountsChartRepository)

// WithDefaultSeparator sets the separator used for charts stored without one
func WithDefaultSeparator(sep string) AccountsChartRepositoryOption {
	return func(r *GormAccountsChartRepository) {
		r.defaultSeparator = sep
	}
}

// NewGormAccountsChartRepository creates a new GormAccountsChartRepository
func NewGormAccountsChartRepository(db *gorm.DB, opts ...AccountsChartRepositoryOption) *GormAccountsChartRepository {
	r := &GormAccountsChartRepository{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadReferenceData implements balance.ReferenceDataLoader
func (r *GormAccountsChartRepository) LoadReferenceData(ctx context.Context, accountsChartUID string) (balance.ReferenceData, error) {
	return r.LoadChart(ctx, accountsChartUID)
}

// LoadChart builds an in-memory snapshot of an accounts chart
func (r *GormAccountsChartRepository) LoadChart(ctx context.Context, accountsChartUID string) (*balance.Chart, error) {
	db := r.db.WithContext(ctx)

	var chartModel models.AccountsChartModel
	if err := db.First(&chartModel, "uid = ?", accountsChartUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	separator := chartModel.Separator
	if separator == "" {
		separator = r.defaultSeparator
	}
	chart := balance.NewChart(chartModel.UID, separator)

	var accounts []models.StandardAccountModel
	if err := db.Where("accounts_chart_uid = ?", accountsChartUID).
		Order("number ASC").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to load standard accounts: %w", err)
	}
	for _, m := range accounts {
		nature := balance.DebtorCreditor(m.DebtorCreditor)
		if !nature.IsValid() {
			return nil, fmt.Errorf("account %s has invalid nature %q", m.Number, m.DebtorCreditor)
		}
		chart.PutAccount(&balance.StandardAccount{
			Number:         m.Number,
			Name:           m.Name,
			DebtorCreditor: nature,
			GroupNumber:    m.GroupNumber,
		})
	}

	var sectors []models.SectorModel
	if err := db.Order("code ASC").Find(&sectors).Error; err != nil {
		return nil, fmt.Errorf("failed to load sectors: %w", err)
	}
	for _, m := range sectors {
		if m.Code == balance.RootSectorCode {
			continue
		}
		chart.AddSector(m.Code, m.Name, m.ParentCode)
	}

	var currencies []models.CurrencyModel
	if err := db.Order("code ASC").Find(&currencies).Error; err != nil {
		return nil, fmt.Errorf("failed to load currencies: %w", err)
	}
	for _, m := range currencies {
		chart.AddCurrency(balance.Currency{ID: m.ID, Code: m.Code, Name: m.Name})
	}

	return chart, nil
}

var _ balance.ReferenceDataLoader = (*GormAccountsChartRepository)(nil)
