package balance

import (
	"time"

	"github.com/shopspring/decimal"
)

// daysBetween counts calendar days, ignoring time of day and zone offset
func daysBetween(from, to time.Time) int {
	return int(calendarDay(to).Sub(calendarDay(from)).Hours() / 24)
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// generateAverageBalance computes the weighted average balance of the
// summary rows: the period movement weighted by the days since the last
// change, over the days of the month, plus the initial balance.
func (p *pipeline) generateAverageBalance(rows []*Entry) []*Entry {
	if !p.cmd.WithAverageBalance {
		return rows
	}
	comparative := p.cmd.TrialBalanceType == TypeBalanzaValorizadaComparativa

	endDate := p.cmd.InitialPeriod.ToDate
	if comparative {
		endDate = p.cmd.FinalPeriod.ToDate
	}
	monthDays := decimal.NewFromInt(int64(p.cmd.InitialPeriod.ToDate.Day()))

	for _, row := range rows {
		eligible := row.ItemType == ItemSummary || comparative ||
			(p.variant.Cascade && (row.ItemType == ItemTotalGroupDebtor || row.ItemType == ItemTotalGroupCreditor))
		if !eligible {
			continue
		}

		lastChange := row.LastChangeDate
		if lastChange.IsZero() {
			lastChange = p.cmd.InitialPeriod.FromDate
		}
		days := decimal.NewFromInt(int64(daysBetween(lastChange, endDate) + 1))

		row.AverageBalance = days.Mul(row.NetMovement()).Div(monthDays).Add(row.InitialBalance).Round(AmountPlaces)
	}
	return rows
}

// GenerateAverageDailyBalance sets the average balance of every row to its
// current balance spread over the days of the period.
func GenerateAverageDailyBalance(rows []*Entry, period Period) []*Entry {
	days := decimal.NewFromInt(int64(period.Days()))
	for _, row := range rows {
		row.AverageBalance = row.CurrentBalance.Div(days).Round(AmountPlaces)
	}
	return rows
}
