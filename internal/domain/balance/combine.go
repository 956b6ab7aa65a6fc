package balance

import (
	"sort"
	"strings"
)

// OrderOptions selects the tie-breakers of OrderEntries
type OrderOptions struct {
	// BySubledgerDigits orders subledger numbers by width before value
	BySubledgerDigits bool
}

// OrderEntries sorts rows by ledger, currency, nature (debtor first),
// account, sector and subledger account. The sort is stable.
func OrderEntries(rows []*Entry, opts OrderOptions) []*Entry {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Ledger.Number != b.Ledger.Number {
			return a.Ledger.Number < b.Ledger.Number
		}
		if a.Currency.Code != b.Currency.Code {
			return a.Currency.Code < b.Currency.Code
		}
		if ra, rb := a.account().DebtorCreditor.rank(), b.account().DebtorCreditor.rank(); ra != rb {
			return ra > rb
		}
		if a.AccountNumber() != b.AccountNumber() {
			return a.AccountNumber() < b.AccountNumber()
		}
		if a.SectorCode() != b.SectorCode() {
			return a.SectorCode() < b.SectorCode()
		}
		if opts.BySubledgerDigits && a.SubledgerNumberOfDigits != b.SubledgerNumberOfDigits {
			return a.SubledgerNumberOfDigits < b.SubledgerNumberOfDigits
		}
		return a.SubledgerAccountNumber < b.SubledgerAccountNumber
	})
	return rows
}

// OrderByLedgerAndCurrency is the narrower ordering of the total
// combination steps. Rows of totals spanning every ledger are ordered by
// currency alone.
func OrderByLedgerAndCurrency(rows []*Entry, byLedger bool) []*Entry {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if byLedger && a.Ledger.Number != b.Ledger.Number {
			return a.Ledger.Number < b.Ledger.Number
		}
		return a.Currency.Code < b.Currency.Code
	})
	return rows
}

// RestrictLevels drops rows deeper than level. Level zero keeps everything,
// and subledger rows survive when subledger detail was requested.
func RestrictLevels(rows []*Entry, level int, withSubledger bool) []*Entry {
	if level == 0 {
		return rows
	}
	kept := make([]*Entry, 0, len(rows))
	for _, row := range rows {
		if row.Level() <= level || (withSubledger && row.IsSubledgerRow()) {
			kept = append(kept, row)
		}
	}
	return kept
}

func sameLedger(row, total *Entry) bool {
	return total.Ledger.IsEmpty() || row.Ledger.ID == total.Ledger.ID
}

func spansLedgers(totals []*Entry) bool {
	return len(totals) > 0 && totals[0].Ledger.IsEmpty()
}

// combineSummaryAndPostingEntries merges posting and summary rows and orders them
func (p *pipeline) combineSummaryAndPostingEntries(summaries, postings []*Entry) []*Entry {
	rows := make([]*Entry, 0, len(postings)+len(summaries))
	rows = append(rows, postings...)

	if p.cmd.TrialBalanceType == TypeSaldosPorCuenta {
		for _, row := range summaries {
			if row.SubledgerAccountIDParent > 0 {
				rows = append(rows, row)
			}
		}
	} else {
		rows = append(rows, summaries...)
	}
	return p.orderingTrialBalance(rows)
}

func (p *pipeline) orderingTrialBalance(rows []*Entry) []*Entry {
	switch p.cmd.TrialBalanceType {
	case TypeBalanza, TypeSaldosPorCuenta, TypeAnaliticoDeCuentas:
		if !p.cmd.WithSubledgerAccount {
			break
		}
		kept := rows[:0]
		for _, row := range rows {
			if row.IsSubledgerRow() {
				if row.SubledgerAccountNumber == "0" {
					row.SubledgerAccountNumber = ""
				}
				row.SubledgerNumberOfDigits = len(row.SubledgerAccountNumber)
			}
			if strings.Contains(row.SubledgerAccountNumber, "undefined") {
				continue
			}
			kept = append(kept, row)
		}
		return OrderEntries(kept, OrderOptions{BySubledgerDigits: true})
	}
	return OrderEntries(rows, OrderOptions{})
}

// combineGroupTotals places each group total after the rows of its group
func (p *pipeline) combineGroupTotals(rows, groupTotals []*Entry) []*Entry {
	out := make([]*Entry, 0, len(rows)+len(groupTotals))

	for _, nature := range []struct {
		itemType ItemType
		nature   DebtorCreditor
	}{{ItemTotalGroupDebtor, Debtor}, {ItemTotalGroupCreditor, Creditor}} {
		for _, total := range groupTotals {
			if total.ItemType != nature.itemType {
				continue
			}
			for _, row := range rows {
				account := row.account()
				if account.GroupNumber == total.GroupNumber && sameLedger(row, total) &&
					row.Currency.ID == total.Currency.ID && account.DebtorCreditor == nature.nature {
					out = append(out, row)
				}
			}
			out = append(out, total)
		}
	}
	return OrderByLedgerAndCurrency(out, !spansLedgers(groupTotals))
}

// combineDebtorCreditorTotals places each debtor and creditor total after the
// rows of its nature and currency.
func (p *pipeline) combineDebtorCreditorTotals(rows, totals []*Entry) []*Entry {
	out := make([]*Entry, 0, len(rows)+len(totals))

	for _, nature := range []struct {
		itemType ItemType
		nature   DebtorCreditor
	}{{ItemTotalDebtor, Debtor}, {ItemTotalCreditor, Creditor}} {
		for _, total := range totals {
			if total.ItemType != nature.itemType {
				continue
			}
			matched := 0
			for _, row := range rows {
				if sameLedger(row, total) && row.Currency.Code == total.Currency.Code &&
					row.DebtorCreditor == nature.nature {
					out = append(out, row)
					matched++
				}
			}
			if matched > 0 {
				out = append(out, total)
			}
		}
	}
	return OrderByLedgerAndCurrency(out, !spansLedgers(totals))
}

// combineCurrencyTotals places each currency total after its rows
func (p *pipeline) combineCurrencyTotals(rows, totals []*Entry) []*Entry {
	out := make([]*Entry, 0, len(rows)+len(totals))
	var currencyTotals []*Entry

	for _, total := range totals {
		if total.ItemType != ItemTotalCurrency {
			continue
		}
		currencyTotals = append(currencyTotals, total)
		matched := 0
		for _, row := range rows {
			if sameLedger(row, total) && row.Currency.Code == total.Currency.Code {
				out = append(out, row)
				matched++
			}
		}
		if matched > 0 {
			out = append(out, total)
		}
	}
	return OrderByLedgerAndCurrency(out, !spansLedgers(currencyTotals))
}

// combineConsolidatedByLedger places each ledger grand total after the rows
// of its ledger.
func (p *pipeline) combineConsolidatedByLedger(rows, ledgerTotals []*Entry) []*Entry {
	if len(ledgerTotals) == 0 {
		return rows
	}
	out := make([]*Entry, 0, len(rows)+len(ledgerTotals))
	for _, total := range ledgerTotals {
		matched := 0
		for _, row := range rows {
			if row.Ledger.ID == total.Ledger.ID {
				out = append(out, row)
				matched++
			}
		}
		if matched > 0 {
			out = append(out, total)
		}
	}
	return out
}

// combineConsolidated appends the grand total
func (p *pipeline) combineConsolidated(rows, totals []*Entry) []*Entry {
	for _, total := range totals {
		if total.ItemType == ItemTotalConsolidated {
			return append(rows, total)
		}
	}
	return rows
}

// withSubledgerAccounts hides subledger rows of an account balance report
// requested without subledger detail.
func (p *pipeline) withSubledgerAccounts(rows []*Entry) []*Entry {
	if p.cmd.WithSubledgerAccount || p.cmd.TrialBalanceType != TypeSaldosPorCuenta {
		return rows
	}
	kept := make([]*Entry, 0, len(rows))
	for _, row := range rows {
		if row.SubledgerNumberOfDigits == 0 {
			kept = append(kept, row)
		}
	}
	return kept
}

func (p *pipeline) restrictLevels(rows []*Entry) []*Entry {
	return RestrictLevels(rows, p.cmd.Level, p.cmd.WithSubledgerAccount)
}
