package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerModel is the persistence model for an accounting book
type LedgerModel struct {
	ID     int64  `gorm:"primaryKey"`
	Number string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name   string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (LedgerModel) TableName() string {
	return "ledgers"
}

// CurrencyModel is the persistence model for a currency catalog entry
type CurrencyModel struct {
	ID   int64  `gorm:"primaryKey"`
	Code string `gorm:"type:varchar(10);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currencies"
}

// AccountsChartModel is the persistence model for an accounts chart
type AccountsChartModel struct {
	UID       string `gorm:"type:varchar(36);primaryKey"`
	Name      string `gorm:"type:varchar(200);not null"`
	Separator string `gorm:"type:varchar(4);not null;default:'-'"`
}

// TableName returns the table name for GORM
func (AccountsChartModel) TableName() string {
	return "accounts_charts"
}

// StandardAccountModel is the persistence model for an accounts chart node
type StandardAccountModel struct {
	ID               int64  `gorm:"primaryKey"`
	AccountsChartUID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_standard_account_number"`
	Number           string `gorm:"type:varchar(60);not null;uniqueIndex:idx_standard_account_number"`
	Name             string `gorm:"type:varchar(300);not null"`
	DebtorCreditor   string `gorm:"type:char(1);not null"`
	GroupNumber      string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (StandardAccountModel) TableName() string {
	return "standard_accounts"
}

// SectorModel is the persistence model for a sector
type SectorModel struct {
	ID         int64  `gorm:"primaryKey"`
	Code       string `gorm:"type:varchar(10);not null;uniqueIndex"`
	Name       string `gorm:"type:varchar(200);not null"`
	ParentCode string `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (SectorModel) TableName() string {
	return "sectors"
}

// SubledgerAccountModel is the persistence model for a subledger (auxiliary) account
type SubledgerAccountModel struct {
	ID       int64  `gorm:"primaryKey"`
	LedgerID int64  `gorm:"not null;index"`
	Number   string `gorm:"type:varchar(40);not null"`
	Name     string `gorm:"type:varchar(300);not null"`
}

// TableName returns the table name for GORM
func (SubledgerAccountModel) TableName() string {
	return "subledger_accounts"
}

// PostingMovementModel is one imported posting line. Trial balances are
// aggregated from these rows.
type PostingMovementModel struct {
	ID                 int64           `gorm:"primaryKey"`
	AccountsChartUID   string          `gorm:"type:varchar(36);not null;index:idx_posting_chart_date"`
	LedgerID           int64           `gorm:"not null;index"`
	CurrencyID         int64           `gorm:"not null"`
	AccountNumber      string          `gorm:"type:varchar(60);not null;index"`
	SectorCode         string          `gorm:"type:varchar(10);not null;default:'00'"`
	SubledgerAccountID int64           `gorm:"not null;default:0"`
	PostingDate        time.Time       `gorm:"not null;index:idx_posting_chart_date"`
	Debit              decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Credit             decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	VoucherID          *int64          `gorm:"index"`
}

// TableName returns the table name for GORM
func (PostingMovementModel) TableName() string {
	return "posting_movements"
}

// ExchangeRateModel is one published exchange rate
type ExchangeRateModel struct {
	ID               int64           `gorm:"primaryKey"`
	RateTypeUID      string          `gorm:"type:varchar(36);not null;index:idx_exchange_rate_lookup"`
	FromCurrencyCode string          `gorm:"type:varchar(10);not null;index:idx_exchange_rate_lookup"`
	ToCurrencyCode   string          `gorm:"type:varchar(10);not null;index:idx_exchange_rate_lookup"`
	Date             time.Time       `gorm:"not null;index:idx_exchange_rate_lookup"`
	Value            decimal.Decimal `gorm:"type:decimal(20,6);not null"`
}

// TableName returns the table name for GORM
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// VoucherStatus is the import state of a voucher
type VoucherStatus string

const (
	VoucherPending  VoucherStatus = "pending"
	VoucherImported VoucherStatus = "imported"
	VoucherFailed   VoucherStatus = "failed"
)

// VoucherModel is a voucher waiting to be imported into posting movements
type VoucherModel struct {
	ID               int64               `gorm:"primaryKey"`
	Number           string              `gorm:"type:varchar(40);not null"`
	AccountsChartUID string              `gorm:"type:varchar(36);not null"`
	LedgerID         int64               `gorm:"not null"`
	AccountingDate   time.Time           `gorm:"not null"`
	Status           VoucherStatus       `gorm:"type:varchar(20);not null;default:'pending';index"`
	BatchID          string              `gorm:"type:varchar(36)"`
	Error            string              `gorm:"type:text"`
	CreatedAt        time.Time           `gorm:"not null"`
	UpdatedAt        time.Time           `gorm:"not null"`
	Entries          []VoucherEntryModel `gorm:"foreignKey:VoucherID"`
}

// TableName returns the table name for GORM
func (VoucherModel) TableName() string {
	return "vouchers"
}

// VoucherEntryModel is one line of a voucher
type VoucherEntryModel struct {
	ID                 int64           `gorm:"primaryKey"`
	VoucherID          int64           `gorm:"not null;index"`
	CurrencyID         int64           `gorm:"not null"`
	AccountNumber      string          `gorm:"type:varchar(60);not null"`
	SectorCode         string          `gorm:"type:varchar(10);not null;default:'00'"`
	SubledgerAccountID int64           `gorm:"not null;default:0"`
	Debit              decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Credit             decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (VoucherEntryModel) TableName() string {
	return "voucher_entries"
}

// All lists the models of the accounting schema in dependency order
func All() []any {
	return []any{
		&LedgerModel{},
		&CurrencyModel{},
		&AccountsChartModel{},
		&StandardAccountModel{},
		&SectorModel{},
		&SubledgerAccountModel{},
		&PostingMovementModel{},
		&ExchangeRateModel{},
		&VoucherModel{},
		&VoucherEntryModel{},
	}
}
