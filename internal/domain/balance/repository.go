package balance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PostingQuery selects the posting rows of one period
type PostingQuery struct {
	AccountsChartUID     string
	FromDate             time.Time
	ToDate               time.Time
	Ledgers              []string
	Currencies           []string
	Sectors              []string
	FromAccount          string
	ToAccount            string
	SubledgerAccount     string
	WithSubledgerAccount bool
	Consolidated         bool
	BalancesType         BalancesType
}

// NewPostingQuery builds the query of a command period
func NewPostingQuery(cmd *Command, period Period) PostingQuery {
	return PostingQuery{
		AccountsChartUID:     cmd.AccountsChartUID,
		FromDate:             period.FromDate,
		ToDate:               period.ToDate,
		Ledgers:              cmd.Ledgers,
		Currencies:           cmd.Currencies,
		Sectors:              cmd.Sectors,
		FromAccount:          cmd.FromAccount,
		ToAccount:            cmd.ToAccount,
		SubledgerAccount:     cmd.SubledgerAccount,
		WithSubledgerAccount: cmd.WithSubledgerAccount,
		Consolidated:         cmd.Consolidated,
		BalancesType:         cmd.BalancesType,
	}
}

// PostingEntryReader returns raw posting rows with identity and amounts
// populated. Rows are rounded by the pipeline, not by the reader.
type PostingEntryReader interface {
	FetchPostingEntries(ctx context.Context, query PostingQuery) ([]*Entry, error)
}

// ExchangeRateProvider returns the rate converting fromCurrency into
// toCurrency on date. A missing rate is reported with shared.ErrNotFound.
type ExchangeRateProvider interface {
	GetExchangeRate(ctx context.Context, rateTypeUID string, date time.Time, fromCurrency, toCurrency string) (decimal.Decimal, error)
}

// ReferenceDataLoader loads the accounts chart, sectors and currencies
type ReferenceDataLoader interface {
	LoadReferenceData(ctx context.Context, accountsChartUID string) (ReferenceData, error)
}
