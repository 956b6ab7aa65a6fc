package balance

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticEntry splits the balance of an account between the base currency
// and the foreign currencies valued into it.
type AnalyticEntry struct {
	Ledger                 Ledger
	Account                *StandardAccount
	Sector                 *Sector
	SubledgerAccountID     int64
	SubledgerAccountNumber string
	SubledgerAccountName   string
	ItemType               ItemType
	DebtorCreditor         DebtorCreditor
	GroupName              string

	DomesticBalance decimal.Decimal
	ForeignBalance  decimal.Decimal
	TotalBalance    decimal.Decimal
	LastChangeDate  time.Time
}

type analyticKey struct {
	ledgerID    int64
	account     string
	sector      string
	subledgerID int64
	itemType    ItemType
}

// buildAnalytic values every foreign row into the base currency and merges
// the currencies of each account into one row.
func buildAnalytic(ctx context.Context, p *pipeline) (*TrialBalance, error) {
	p.cmd.ConsolidateBalancesToTargetCurrency = false
	p.cmd.IsOperationalReport = false
	if !p.cmd.ValuateBalances {
		p.cmd.InitialPeriod.UseDefaultValuation = true
	}

	rows, _, err := p.summaryAndPostingEntries(ctx)
	if err != nil {
		return nil, err
	}
	rows = p.restrictLevels(rows)

	tb := p.result(nil)
	tb.Analytics = p.mergeCurrencies(rows)
	return tb, nil
}

func (p *pipeline) mergeCurrencies(rows []*Entry) []*AnalyticEntry {
	index := make(map[analyticKey]*AnalyticEntry, len(rows))
	out := make([]*AnalyticEntry, 0, len(rows))
	base := p.defaults.BaseCurrency

	for _, row := range rows {
		k := analyticKey{
			ledgerID:    row.Ledger.ID,
			account:     row.AccountNumber(),
			sector:      row.SectorCode(),
			subledgerID: row.SubledgerAccountID,
			itemType:    row.ItemType,
		}
		a, ok := index[k]
		if !ok {
			a = &AnalyticEntry{
				Ledger:                 row.Ledger,
				Account:                row.account(),
				Sector:                 row.Sector,
				SubledgerAccountID:     row.SubledgerAccountID,
				SubledgerAccountNumber: row.SubledgerAccountNumber,
				SubledgerAccountName:   row.SubledgerAccountName,
				ItemType:               row.ItemType,
				DebtorCreditor:         row.account().DebtorCreditor,
				GroupName:              row.GroupName,
			}
			index[k] = a
			out = append(out, a)
		}

		if row.Currency.Code == base {
			a.DomesticBalance = a.DomesticBalance.Add(row.CurrentBalance)
		} else {
			a.ForeignBalance = a.ForeignBalance.Add(row.CurrentBalance)
		}
		a.TotalBalance = a.DomesticBalance.Add(a.ForeignBalance)
		if row.LastChangeDate.After(a.LastChangeDate) {
			a.LastChangeDate = row.LastChangeDate
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Ledger.Number != b.Ledger.Number {
			return a.Ledger.Number < b.Ledger.Number
		}
		if ra, rb := a.DebtorCreditor.rank(), b.DebtorCreditor.rank(); ra != rb {
			return ra > rb
		}
		if a.Account.Number != b.Account.Number {
			return a.Account.Number < b.Account.Number
		}
		if sectorCode(a.Sector) != sectorCode(b.Sector) {
			return sectorCode(a.Sector) < sectorCode(b.Sector)
		}
		return a.SubledgerAccountNumber < b.SubledgerAccountNumber
	})
	return out
}
