package balance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/financial-accounting/internal/domain/shared"
)

// ValuationMode selects what valuation does with a looked-up rate
type ValuationMode int

const (
	ValuationMultiply          ValuationMode = iota + 1 // Re-express amounts in the target currency
	ValuationDisplayRate                                // Keep amounts, store the rate on ExchangeRate
	ValuationDisplaySecondRate                          // Keep amounts, store the rate on SecondExchangeRate
)

// String returns the mode name
func (m ValuationMode) String() string {
	switch m {
	case ValuationMultiply:
		return "multiply"
	case ValuationDisplayRate:
		return "display"
	case ValuationDisplaySecondRate:
		return "display-second"
	default:
		return "unknown"
	}
}

// ValuationRequest describes the rates to apply
type ValuationRequest struct {
	RateTypeUID    string
	Date           time.Time
	TargetCurrency string
	BaseCurrency   string
}

// ValuationDefaults are used when a period asks for default valuation
type ValuationDefaults struct {
	RateTypeUID  string
	BaseCurrency string
}

// DefaultValuation returns the base currency "01" defaults
func DefaultValuation() ValuationDefaults {
	return ValuationDefaults{
		RateTypeUID:  "96c617f6-8ed9-47f3-8d2d-f1240e446e1d",
		BaseCurrency: "01",
	}
}

// requestFor resolves the valuation request of a period
func (d ValuationDefaults) requestFor(p Period) ValuationRequest {
	if p.UseDefaultValuation {
		return ValuationRequest{
			RateTypeUID:    d.RateTypeUID,
			Date:           p.ToDate,
			TargetCurrency: d.BaseCurrency,
			BaseCurrency:   d.BaseCurrency,
		}
	}
	date := p.ExchangeRateDate
	if date.IsZero() {
		date = p.ToDate
	}
	return ValuationRequest{
		RateTypeUID:    p.ExchangeRateTypeUID,
		Date:           date,
		TargetCurrency: p.ValuateToCurrency,
		BaseCurrency:   d.BaseCurrency,
	}
}

// Valuate applies exchange rates to every entry not in the base currency.
// A currency without a rate aborts the whole valuation.
func Valuate(ctx context.Context, entries []*Entry, rates ExchangeRateProvider, req ValuationRequest, mode ValuationMode) error {
	found := make(map[string]decimal.Decimal)

	for _, entry := range entries {
		if entry.Currency.Code == req.BaseCurrency {
			continue
		}
		rate, ok := found[entry.Currency.Code]
		if !ok {
			var err error
			rate, err = rates.GetExchangeRate(ctx, req.RateTypeUID, req.Date, req.TargetCurrency, entry.Currency.Code)
			if errors.Is(err, shared.ErrNotFound) {
				return shared.MissingExchangeRate(entry.Currency.FullName())
			}
			if err != nil {
				return fmt.Errorf("failed to get exchange rate for %s: %w", entry.Currency.Code, err)
			}
			found[entry.Currency.Code] = rate
		}

		switch mode {
		case ValuationMultiply:
			entry.MultiplyBy(rate)
		case ValuationDisplayRate:
			entry.ExchangeRate = rate
		case ValuationDisplaySecondRate:
			entry.SecondExchangeRate = rate
		default:
			return shared.UnreachableCodePath("unhandled valuation mode %d", mode)
		}
	}
	return nil
}

// ConsolidateToTargetCurrency merges entries of every currency into target.
// Entries already in the target currency are kept as they are; the rest lose
// their currency identity.
func ConsolidateToTargetCurrency(entries []*Entry, target Currency) []*Entry {
	acc := NewAccumulator(len(entries))

	for _, entry := range entries {
		key := TargetCurrencyKey(entry.AccountNumber(), entry.SectorCode(), target.ID,
			entry.Ledger.ID, entry.SubledgerAccountID)

		if entry.Currency.Code == target.Code {
			if existing, ok := acc.Get(key); ok {
				entry.Sum(existing)
			}
			acc.Insert(key, entry)
		} else if existing, ok := acc.Get(key); ok {
			existing.Sum(entry)
		} else {
			entry.Currency = target
			acc.Insert(key, entry)
		}
	}
	return acc.Values()
}

// RoundEntries rounds posting amounts to two decimals
func RoundEntries(entries []*Entry) []*Entry {
	for _, entry := range entries {
		entry.Round(AmountPlaces)
	}
	return entries
}
