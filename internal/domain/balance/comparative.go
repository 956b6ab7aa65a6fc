package balance

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// ComparativeEntry is a row of the valued comparative balance: the same
// account observed in two periods with the rate of each period.
type ComparativeEntry struct {
	Ledger                 Ledger
	Currency               Currency
	Account                *StandardAccount
	Sector                 *Sector
	SubledgerAccountID     int64
	SubledgerAccountNumber string
	SubledgerAccountName   string
	DebtorCreditor         DebtorCreditor

	TotalBalance   decimal.Decimal
	ExchangeRate   decimal.Decimal
	ValuedBalance  decimal.Decimal
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	AverageBalance decimal.Decimal

	TotalBalanceComparative decimal.Decimal
	SecondExchangeRate      decimal.Decimal
	ValuedComparative       decimal.Decimal

	Variation               decimal.Decimal
	VariationByExchangeRate decimal.Decimal
	RealVariation           decimal.Decimal
}

// AccountNumber returns the account number of the row
func (c *ComparativeEntry) AccountNumber() string {
	if c.Account == nil {
		return ""
	}
	return c.Account.Number
}

type comparativeKey struct {
	ledgerID    int64
	currencyID  int64
	account     string
	sector      string
	subledgerID int64
}

func comparativeKeyOf(e *Entry) comparativeKey {
	return comparativeKey{
		ledgerID:    e.Ledger.ID,
		currencyID:  e.Currency.ID,
		account:     e.AccountNumber(),
		sector:      e.SectorCode(),
		subledgerID: e.SubledgerAccountID,
	}
}

// buildComparative fetches both periods, each valued with the display rate
// of its own period, and joins them per account, sector and subledger.
func buildComparative(ctx context.Context, p *pipeline) (*TrialBalance, error) {
	p.cmd.ConsolidateBalancesToTargetCurrency = false
	if !p.cmd.ValuateBalances {
		p.cmd.InitialPeriod.UseDefaultValuation = true
		p.cmd.FinalPeriod.UseDefaultValuation = true
	}

	first, err := p.postingEntries(ctx, p.cmd.InitialPeriod, false)
	if err != nil {
		return nil, err
	}
	second, err := p.postingEntries(ctx, p.cmd.FinalPeriod, true)
	if err != nil {
		return nil, err
	}
	second = p.generateAverageBalance(second)

	rows := joinComparative(first, second)
	rows = restrictComparativeLevels(rows, p.cmd.Level)
	orderComparative(rows)

	tb := p.result(nil)
	tb.Comparatives = rows
	return tb, nil
}

func joinComparative(first, second []*Entry) []*ComparativeEntry {
	index := make(map[comparativeKey]*ComparativeEntry, len(first)+len(second))
	rows := make([]*ComparativeEntry, 0, len(first)+len(second))

	row := func(e *Entry) *ComparativeEntry {
		k := comparativeKeyOf(e)
		if r, ok := index[k]; ok {
			return r
		}
		r := &ComparativeEntry{
			Ledger:                 e.Ledger,
			Currency:               e.Currency,
			Account:                e.account(),
			Sector:                 e.Sector,
			SubledgerAccountID:     e.SubledgerAccountID,
			SubledgerAccountNumber: e.SubledgerAccountNumber,
			SubledgerAccountName:   e.SubledgerAccountName,
			DebtorCreditor:         e.account().DebtorCreditor,
		}
		index[k] = r
		rows = append(rows, r)
		return r
	}

	for _, e := range first {
		r := row(e)
		r.TotalBalance = r.TotalBalance.Add(e.CurrentBalance)
		if r.ExchangeRate.IsZero() {
			r.ExchangeRate = e.ExchangeRate
		}
	}
	for _, e := range second {
		r := row(e)
		r.TotalBalanceComparative = r.TotalBalanceComparative.Add(e.CurrentBalance)
		r.Debit = r.Debit.Add(e.Debit)
		r.Credit = r.Credit.Add(e.Credit)
		r.AverageBalance = r.AverageBalance.Add(e.AverageBalance)
		if r.SecondExchangeRate.IsZero() {
			r.SecondExchangeRate = e.SecondExchangeRate
		}
	}

	for _, r := range rows {
		r.computeVariations()
	}
	return rows
}

// computeVariations values both balances. Base currency rows carry no rate
// and are valued at one.
func (c *ComparativeEntry) computeVariations() {
	if c.ExchangeRate.IsZero() {
		c.ExchangeRate = decimal.NewFromInt(1)
	}
	if c.SecondExchangeRate.IsZero() {
		c.SecondExchangeRate = decimal.NewFromInt(1)
	}
	c.ValuedBalance = c.TotalBalance.Mul(c.ExchangeRate).Round(AmountPlaces)
	c.ValuedComparative = c.TotalBalanceComparative.Mul(c.SecondExchangeRate).Round(AmountPlaces)

	c.Variation = c.ValuedComparative.Sub(c.ValuedBalance)
	c.VariationByExchangeRate = c.TotalBalanceComparative.
		Mul(c.SecondExchangeRate.Sub(c.ExchangeRate)).Round(AmountPlaces)
	c.RealVariation = c.Variation.Sub(c.VariationByExchangeRate)
}

func restrictComparativeLevels(rows []*ComparativeEntry, level int) []*ComparativeEntry {
	if level == 0 {
		return rows
	}
	kept := rows[:0]
	for _, r := range rows {
		if r.Account.Level() <= level {
			kept = append(kept, r)
		}
	}
	return kept
}

func orderComparative(rows []*ComparativeEntry) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Ledger.Number != b.Ledger.Number {
			return a.Ledger.Number < b.Ledger.Number
		}
		if a.Currency.Code != b.Currency.Code {
			return a.Currency.Code < b.Currency.Code
		}
		if a.AccountNumber() != b.AccountNumber() {
			return a.AccountNumber() < b.AccountNumber()
		}
		if sectorCode(a.Sector) != sectorCode(b.Sector) {
			return sectorCode(a.Sector) < sectorCode(b.Sector)
		}
		return a.SubledgerAccountNumber < b.SubledgerAccountNumber
	})
}
