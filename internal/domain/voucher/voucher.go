// Package voucher models the accounting vouchers waiting to be imported into
// posting movements.
package voucher

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/financial-accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CodeInvalidVoucher marks a voucher rejected by the importer
const CodeInvalidVoucher = "INVALID_VOUCHER"

// Line is one debit or credit line of a voucher
type Line struct {
	CurrencyID         int64
	AccountNumber      string
	SectorCode         string
	SubledgerAccountID int64
	Debit              decimal.Decimal
	Credit             decimal.Decimal
}

// Voucher is a balanced set of lines posted on one date into one ledger
type Voucher struct {
	ID               int64
	Number           string
	AccountsChartUID string
	LedgerID         int64
	AccountingDate   time.Time
	Lines            []Line
}

// Validate checks the voucher can be posted: it has lines, every line moves
// exactly one side with a positive amount, and debits equal credits per currency.
func (v *Voucher) Validate() error {
	if len(v.Lines) == 0 {
		return invalid("voucher %s has no lines", v.Number)
	}
	if v.AccountingDate.IsZero() {
		return invalid("voucher %s has no accounting date", v.Number)
	}

	sums := make(map[int64]decimal.Decimal)
	for i, line := range v.Lines {
		if line.AccountNumber == "" {
			return invalid("voucher %s line %d has no account", v.Number, i+1)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return invalid("voucher %s line %d has a negative amount", v.Number, i+1)
		}
		if line.Debit.IsZero() == line.Credit.IsZero() {
			return invalid("voucher %s line %d must have either a debit or a credit", v.Number, i+1)
		}
		sums[line.CurrencyID] = sums[line.CurrencyID].Add(line.Debit).Sub(line.Credit)
	}
	for currencyID, diff := range sums {
		if !diff.IsZero() {
			return invalid("voucher %s is unbalanced by %s in currency %d", v.Number, diff.String(), currencyID)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return shared.NewDomainError(CodeInvalidVoucher, fmt.Sprintf(format, args...))
}

// BatchResult summarizes one import batch
type BatchResult struct {
	BatchID  string
	Imported int
	Failed   int
}

// Processed is the number of vouchers taken from the queue
func (r BatchResult) Processed() int {
	return r.Imported + r.Failed
}

// Totals counts the vouchers of the queue by status
type Totals struct {
	Pending  int64 `json:"pending"`
	Imported int64 `json:"imported"`
	Failed   int64 `json:"failed"`
}

// ImportRepository moves pending vouchers into posting movements
type ImportRepository interface {
	// ImportBatch takes up to size pending vouchers and, in one transaction,
	// posts the valid ones and marks the invalid ones failed.
	ImportBatch(ctx context.Context, batchID string, size int) (BatchResult, error)
	// Totals counts the vouchers by status
	Totals(ctx context.Context) (Totals, error)
}
