package balance

import "context"

// buildTraditional runs the traditional balance: summaries, sector passes,
// the totals chain and the presentation filters.
func buildTraditional(ctx context.Context, p *pipeline) (*TrialBalance, error) {
	rows, postings, err := p.summaryAndPostingEntries(ctx)
	if err != nil {
		return nil, err
	}

	if p.cmd.IsOperationalReport {
		rows = p.operationalBalance(rows)
	} else {
		rows = p.trialBalanceTotals(rows, postings)
		rows = p.withSubledgerAccounts(rows)
		rows = p.generateAverageBalance(rows)
	}

	return p.result(p.restrictLevels(rows)), nil
}

// trialBalanceTotals interleaves group, nature, currency and consolidated
// totals with the rows they summarize.
func (p *pipeline) trialBalanceTotals(rows, postings []*Entry) []*Entry {
	groups := p.generateTotalSummaryGroups(postings)
	rows = p.combineGroupTotals(rows, groups)

	debtorCreditor := p.generateTotalSummaryDebtorCreditor(postings)
	rows = p.combineDebtorCreditorTotals(rows, debtorCreditor)

	currencies := p.generateTotalSummaryCurrency(debtorCreditor)
	rows = p.combineCurrencyTotals(rows, currencies)

	byLedger := p.generateTotalSummaryConsolidatedByLedger(currencies)
	rows = p.combineConsolidatedByLedger(rows, byLedger)

	consolidated := p.generateTotalSummaryConsolidated(currencies)
	return p.combineConsolidated(rows, consolidated)
}

// operationalBalance collapses the rows to one per account
func (p *pipeline) operationalBalance(rows []*Entry) []*Entry {
	acc := NewAccumulator(len(rows))
	for _, row := range rows {
		summaryByAccount(acc, row)
	}
	out := acc.Values()
	if p.cmd.WithAverageBalance {
		out = GenerateAverageDailyBalance(out, p.cmd.InitialPeriod)
	}
	return out
}
