package balance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/financial-accounting/internal/domain/shared"
)

var (
	testLedger   = Ledger{ID: 1, Number: "01", Name: "Corporativo"}
	testLedger2  = Ledger{ID: 2, Number: "02", Name: "Sucursal"}
	testPesos    = Currency{ID: 1, Code: "01", Name: "Pesos"}
	testDollars  = Currency{ID: 2, Code: "02", Name: "Dólares"}
	januaryFrom  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	januaryTo    = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	februaryFrom = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	februaryTo   = time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func testChart() *Chart {
	chart := NewChart("chart-1", ".")
	chart.AddAccount("1010", "Caja", Debtor)
	chart.AddAccount("1010.01", "Caja general", Debtor)
	chart.AddAccount("1010.02", "Caja chica", Debtor)
	chart.AddAccount("2010", "Proveedores", Creditor)
	chart.AddAccount("2010.01", "Proveedores nacionales", Creditor)
	chart.AddSector("01", "Gobierno", "")
	chart.AddSector("0101", "Gobierno federal", "01")
	chart.AddCurrency(testPesos)
	chart.AddCurrency(testDollars)
	return chart
}

func posting(chart *Chart, ledger Ledger, currency Currency, account, sector string, initial, debit, credit float64) *Entry {
	acct, _ := chart.Account(account)
	sec, ok := chart.Sector(sector)
	if !ok {
		sec = EmptySector
	}
	e := NewPostingEntry(ledger, currency, acct, sec, dec(initial), dec(debit), dec(credit))
	e.LastChangeDate = januaryTo
	return e
}

func januaryPeriod() Period {
	return Period{FromDate: januaryFrom, ToDate: januaryTo}
}

func newCommand(t TrialBalanceType) *Command {
	return &Command{
		AccountsChartUID: "chart-1",
		TrialBalanceType: t,
		InitialPeriod:    januaryPeriod(),
	}
}

// fakePostings returns clones of the rows registered for a period start
type fakePostings struct {
	byPeriod map[time.Time][]*Entry
	queries  []PostingQuery
	err      error
}

func newFakePostings(rows ...*Entry) *fakePostings {
	return &fakePostings{byPeriod: map[time.Time][]*Entry{januaryFrom: rows}}
}

func (f *fakePostings) FetchPostingEntries(_ context.Context, q PostingQuery) ([]*Entry, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	rows := f.byPeriod[q.FromDate]
	out := make([]*Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Clone())
	}
	return out, nil
}

// fakeRates resolves rates by target currency and date
type fakeRates struct {
	rates map[string]decimal.Decimal
	calls int
}

func newFakeRates() *fakeRates {
	return &fakeRates{rates: make(map[string]decimal.Decimal)}
}

func rateKey(currency string, date time.Time) string {
	return currency + "@" + date.Format("2006-01-02")
}

func (f *fakeRates) set(currency string, date time.Time, rate float64) *fakeRates {
	f.rates[rateKey(currency, date)] = dec(rate)
	return f
}

func (f *fakeRates) GetExchangeRate(_ context.Context, _ string, date time.Time, _ string, to string) (decimal.Decimal, error) {
	f.calls++
	rate, ok := f.rates[rateKey(to, date)]
	if !ok {
		return decimal.Zero, shared.ErrNotFound
	}
	return rate, nil
}

type fakeRefs struct {
	chart *Chart
}

func (f fakeRefs) LoadReferenceData(_ context.Context, uid string) (ReferenceData, error) {
	if uid != f.chart.UID {
		return nil, shared.ErrNotFound
	}
	return f.chart, nil
}

func newTestEngine(chart *Chart, postings *fakePostings, rates *fakeRates) *Engine {
	if rates == nil {
		rates = newFakeRates()
	}
	return NewEngine(postings, rates, fakeRefs{chart: chart})
}

func rowsOfType(rows []*Entry, itemType ItemType) []*Entry {
	var out []*Entry
	for _, row := range rows {
		if row.ItemType == itemType {
			out = append(out, row)
		}
	}
	return out
}

func findRow(rows []*Entry, itemType ItemType, account, sector string) *Entry {
	for _, row := range rows {
		if row.ItemType == itemType && row.AccountNumber() == account && row.SectorCode() == sector {
			return row
		}
	}
	return nil
}
