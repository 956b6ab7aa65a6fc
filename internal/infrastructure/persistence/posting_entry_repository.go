package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/erp/financial-accounting/internal/domain/balance"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// chartLoader resolves the accounts chart used to attach account natures
type chartLoader interface {
	LoadChart(ctx context.Context, accountsChartUID string) (*balance.Chart, error)
}

// GormPostingEntryRepository aggregates posting movements into trial balance
// posting rows: one row per ledger, currency, account, sector and, when
// requested, subledger account.
type GormPostingEntryRepository struct {
	db     *gorm.DB
	charts chartLoader
}

// NewGormPostingEntryRepository creates a new GormPostingEntryRepository
func NewGormPostingEntryRepository(db *gorm.DB, charts chartLoader) *GormPostingEntryRepository {
	return &GormPostingEntryRepository{db: db, charts: charts}
}

// postingBalanceRow is the scan target of the aggregation query
type postingBalanceRow struct {
	LedgerID        int64
	LedgerNumber    string
	LedgerName      string
	CurrencyID      int64
	CurrencyCode    string
	CurrencyName    string
	AccountNumber   string
	SectorCode      string
	SubledgerID     int64
	SubledgerNumber string
	SubledgerName   string
	InitialNet      decimal.Decimal
	Debit           decimal.Decimal
	Credit          decimal.Decimal
	LastChangeDate  dbTime
}

// FetchPostingEntries implements balance.PostingEntryReader. Movements
// before FromDate make up the initial balance; movements inside the period
// are the debits and credits. Consolidation is left to the pipeline.
func (r *GormPostingEntryRepository) FetchPostingEntries(ctx context.Context, query balance.PostingQuery) ([]*balance.Entry, error) {
	chart, err := r.charts.LoadChart(ctx, query.AccountsChartUID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts chart %s: %w", query.AccountsChartUID, err)
	}

	var rows []postingBalanceRow
	if err := r.buildQuery(ctx, query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate posting movements: %w", err)
	}

	entries := make([]*balance.Entry, 0, len(rows))
	for i := range rows {
		entry, err := toPostingEntry(chart, &rows[i])
		if err != nil {
			return nil, err
		}
		if keepByBalancesType(entry, query.BalancesType) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (r *GormPostingEntryRepository) buildQuery(ctx context.Context, query balance.PostingQuery) *gorm.DB {
	columns := []string{
		"pm.ledger_id AS ledger_id",
		"l.number AS ledger_number",
		"l.name AS ledger_name",
		"c.id AS currency_id",
		"c.code AS currency_code",
		"c.name AS currency_name",
		"pm.account_number AS account_number",
		"pm.sector_code AS sector_code",
	}
	groupBy := []string{
		"pm.ledger_id", "l.number", "l.name",
		"c.id", "c.code", "c.name",
		"pm.account_number", "pm.sector_code",
	}
	if query.WithSubledgerAccount {
		columns = append(columns,
			"pm.subledger_account_id AS subledger_id",
			"COALESCE(sa.number, '') AS subledger_number",
			"COALESCE(sa.name, '') AS subledger_name",
		)
		groupBy = append(groupBy, "pm.subledger_account_id", "sa.number", "sa.name")
	}
	columns = append(columns,
		"SUM(CASE WHEN pm.posting_date < ? THEN pm.debit - pm.credit ELSE 0 END) AS initial_net",
		"SUM(CASE WHEN pm.posting_date >= ? THEN pm.debit ELSE 0 END) AS debit",
		"SUM(CASE WHEN pm.posting_date >= ? THEN pm.credit ELSE 0 END) AS credit",
		"MAX(pm.posting_date) AS last_change_date",
	)

	db := r.db.WithContext(ctx).
		Table("posting_movements AS pm").
		Select(strings.Join(columns, ", "), query.FromDate, query.FromDate, query.FromDate).
		Joins("JOIN ledgers l ON l.id = pm.ledger_id").
		Joins("JOIN currencies c ON c.id = pm.currency_id").
		Where("pm.accounts_chart_uid = ?", query.AccountsChartUID).
		Where("pm.posting_date <= ?", query.ToDate)

	if query.WithSubledgerAccount || query.SubledgerAccount != "" {
		db = db.Joins("LEFT JOIN subledger_accounts sa ON sa.id = pm.subledger_account_id")
	}
	if len(query.Ledgers) > 0 {
		db = db.Where("l.number IN ?", query.Ledgers)
	}
	if len(query.Currencies) > 0 {
		db = db.Where("c.code IN ?", query.Currencies)
	}
	if len(query.Sectors) > 0 {
		db = db.Where("pm.sector_code IN ?", query.Sectors)
	}
	if query.FromAccount != "" {
		db = db.Where("pm.account_number >= ?", query.FromAccount)
	}
	if query.ToAccount != "" {
		// descendants of ToAccount sort after it and stay in range
		db = db.Where("(pm.account_number <= ? OR pm.account_number LIKE ?)", query.ToAccount, query.ToAccount+"%")
	}
	if query.SubledgerAccount != "" {
		db = db.Where("sa.number = ?", query.SubledgerAccount)
	}

	return db.Group(strings.Join(groupBy, ", ")).
		Order("l.number, c.code, pm.account_number, pm.sector_code")
}

func toPostingEntry(chart *balance.Chart, row *postingBalanceRow) (*balance.Entry, error) {
	account, ok := chart.Account(row.AccountNumber)
	if !ok {
		return nil, fmt.Errorf("account %s is not part of accounts chart %s", row.AccountNumber, chart.UID)
	}
	sector := balance.EmptySector
	if row.SectorCode != "" && row.SectorCode != balance.RootSectorCode {
		if s, found := chart.Sector(row.SectorCode); found {
			sector = s
		} else {
			sector = &balance.Sector{Code: row.SectorCode}
		}
	}

	initial := row.InitialNet
	if account.DebtorCreditor == balance.Creditor {
		initial = initial.Neg()
	}

	entry := balance.NewPostingEntry(
		balance.Ledger{ID: row.LedgerID, Number: row.LedgerNumber, Name: row.LedgerName},
		balance.Currency{ID: row.CurrencyID, Code: row.CurrencyCode, Name: row.CurrencyName},
		account, sector, initial, row.Debit, row.Credit,
	)
	entry.LastChangeDate = row.LastChangeDate.Time
	if row.SubledgerID != 0 {
		entry.SubledgerAccountID = row.SubledgerID
		entry.SubledgerAccountNumber = row.SubledgerNumber
		entry.SubledgerAccountName = row.SubledgerName
		entry.SubledgerNumberOfDigits = len(row.SubledgerNumber)
	}
	return entry, nil
}

func keepByBalancesType(entry *balance.Entry, balancesType balance.BalancesType) bool {
	hasMovements := !entry.Debit.IsZero() || !entry.Credit.IsZero()
	hasBalance := !entry.CurrentBalance.IsZero()

	switch balancesType {
	case balance.BalancesWithCurrentBalance:
		return hasBalance
	case balance.BalancesWithCurrentBalanceOrMovements:
		return hasBalance || hasMovements
	case balance.BalancesWithMovements:
		return hasMovements
	default:
		return true
	}
}

var _ balance.PostingEntryReader = (*GormPostingEntryRepository)(nil)
