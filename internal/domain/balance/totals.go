package balance

import "sort"

const (
	debtorTotalPrefix        = "TOTAL DEUDORAS "
	creditorTotalPrefix      = "TOTAL ACREEDORAS "
	currencyTotalPrefix      = "TOTAL MONEDA "
	groupTotalPrefix         = "TOTAL GRUPO "
	ledgerConsolidatedPrefix = "TOTAL CONSOLIDADO "
	// ConsolidatedTotalName names the grand total row
	ConsolidatedTotalName = "TOTAL CONSOLIDADO GENERAL"
	// ReportTotalName names the grand total row of the cascade balance
	ReportTotalName = "TOTAL DEL REPORTE"
)

func totalTarget(itemType ItemType) Target {
	return Target{Account: EmptyAccount, Sector: EmptySector, ItemType: itemType}
}

// ledgerScoped reports whether debtor/creditor and group totals are kept
// per ledger. Outside cascade mode they span every ledger of the report.
func (p *pipeline) ledgerScoped() bool {
	return p.cmd.ShowCascadeBalances
}

// totalSource copies a contributing row into the neutral shape used by the
// total accumulators.
func (p *pipeline) totalSource(entry *Entry) *Entry {
	src := entry.Clone()
	src.SubledgerAccountIDParent = 0
	src.GroupNumber = ""
	if !p.ledgerScoped() {
		src.Ledger = Ledger{}
	}
	return src
}

// generateTotalSummaryDebtorCreditor builds one total per currency and nature
func (p *pipeline) generateTotalSummaryDebtorCreditor(postings []*Entry) []*Entry {
	acc := NewAccumulator(len(postings))

	for _, entry := range postings {
		src := p.totalSource(entry)
		src.DebtorCreditor = entry.account().DebtorCreditor

		var itemType ItemType
		switch src.DebtorCreditor {
		case Debtor:
			itemType = ItemTotalDebtor
			src.GroupName = debtorTotalPrefix + src.Currency.FullName()
		case Creditor:
			itemType = ItemTotalCreditor
			src.GroupName = creditorTotalPrefix + src.Currency.FullName()
		default:
			continue
		}
		acc.Accumulate(DebtorCreditorKey(src.GroupName, src.Currency.ID, src.Ledger.ID), src, totalTarget(itemType))
	}
	return acc.Values()
}

// generateTotalSummaryCurrency returns the debtor/creditor totals followed by
// one total per currency. Creditor totals pass through the sign policy.
func (p *pipeline) generateTotalSummaryCurrency(debtorCreditorTotals []*Entry) []*Entry {
	acc := NewAccumulator(len(debtorCreditorTotals))

	for _, total := range debtorCreditorTotals {
		if total.ItemType != ItemTotalDebtor && total.ItemType != ItemTotalCreditor {
			continue
		}
		src := total.Clone()
		p.variant.CreditorSign.apply(src)
		src.DebtorCreditor = ""
		src.GroupName = currencyTotalPrefix + src.Currency.FullName()

		var key EntryKey
		if p.variant.Cascade {
			src.GroupNumber = ""
			src.Ledger = Ledger{}
			key = CurrencyTotalKey(src.GroupName, "", src.Currency.ID, 0)
		} else {
			key = CurrencyTotalKey(src.GroupName, RootSectorCode, src.Currency.ID, src.Ledger.ID)
		}
		acc.Accumulate(key, src, totalTarget(ItemTotalCurrency))
	}

	out := make([]*Entry, 0, len(debtorCreditorTotals)+acc.Len())
	out = append(out, debtorCreditorTotals...)
	return append(out, acc.Values()...)
}

// generateTotalSummaryGroups builds one total per nature, currency and
// account group.
func (p *pipeline) generateTotalSummaryGroups(postings []*Entry) []*Entry {
	acc := NewAccumulator(len(postings))

	for _, entry := range postings {
		account := entry.account()
		src := p.totalSource(entry)
		src.GroupNumber = account.GroupNumber
		src.GroupName = groupTotalPrefix + account.GroupNumber
		src.DebtorCreditor = account.DebtorCreditor

		var itemType ItemType
		switch account.DebtorCreditor {
		case Debtor:
			itemType = ItemTotalGroupDebtor
		case Creditor:
			itemType = ItemTotalGroupCreditor
		default:
			continue
		}
		key := GroupTotalKey(src.DebtorCreditor, src.Currency.ID, src.GroupNumber, src.Ledger.ID)
		acc.Accumulate(key, src, totalTarget(itemType))
	}
	return acc.Values()
}

// cascadeConsolidation reports whether the grand total is keyed by name only
func (p *pipeline) cascadeConsolidation() bool {
	return p.variant.Cascade ||
		(p.cmd.TrialBalanceType == TypeBalanza && p.cmd.ShowCascadeBalances)
}

// generateTotalSummaryConsolidated sums the currency totals into the grand total
func (p *pipeline) generateTotalSummaryConsolidated(totals []*Entry) []*Entry {
	acc := NewAccumulator(1)

	for _, total := range totals {
		if total.ItemType != ItemTotalCurrency {
			continue
		}
		src := total.Clone()
		src.GroupName = ConsolidatedTotalName
		src.Currency = Currency{}

		var key EntryKey
		if p.cascadeConsolidation() {
			if p.variant.Cascade {
				src.GroupName = ReportTotalName
			}
			src.GroupNumber = ""
			src.Ledger = Ledger{}
			key = ConsolidatedKey(src.GroupName, "", 0)
		} else {
			key = ConsolidatedKey(src.GroupName, RootSectorCode, src.Ledger.ID)
		}
		acc.Accumulate(key, src, totalTarget(ItemTotalConsolidated))
	}
	return acc.Values()
}

// generateTotalSummaryConsolidatedByLedger builds one grand total per ledger
// when a traditional balance shows cascade balances.
func (p *pipeline) generateTotalSummaryConsolidatedByLedger(totals []*Entry) []*Entry {
	if p.cmd.TrialBalanceType != TypeBalanza || !p.cmd.ShowCascadeBalances {
		return nil
	}
	acc := NewAccumulator(len(totals))

	for _, total := range totals {
		if total.ItemType != ItemTotalCurrency {
			continue
		}
		src := total.Clone()
		src.GroupName = ledgerConsolidatedPrefix + ledgerName(src.Ledger)
		src.Currency = Currency{}
		acc.Accumulate(ConsolidatedByLedgerKey(src.Ledger.ID, src.GroupName), src,
			totalTarget(ItemTotalConsolidatedByLedger))
	}

	rows := acc.Values()
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Ledger.Number < rows[j].Ledger.Number })
	return rows
}

func ledgerName(l Ledger) string {
	if l.Name != "" {
		return l.Name
	}
	return l.Number
}

// summaryByAccount collapses an operational report to one row per account.
// Level-one sectored summaries carry no amounts so sectors are not counted twice.
func summaryByAccount(acc *Accumulator, entry *Entry) {
	src := entry.Clone()
	if src.ItemType == ItemSummary && src.Level() == 1 && src.HasSector() {
		src.ZeroAmounts()
	}
	acc.Accumulate(ByAccountKey(src.AccountNumber()), src,
		Target{Account: src.account(), Sector: src.Sector, ItemType: ItemEntry})
}
