package balance

import (
	"context"
	"sort"
)

// buildBalancesBySubledgerAccount lists, for every subledger account, a
// total row followed by the summary accounts its postings roll up into.
func buildBalancesBySubledgerAccount(ctx context.Context, p *pipeline) (*TrialBalance, error) {
	rows, _, err := p.summaryAndPostingEntries(ctx)
	if err != nil {
		return nil, err
	}

	summaries := p.balancesBySubledgerAccount(subledgerPostings(rows))
	rows = combineSubledgerTotals(summaries)

	return p.result(p.restrictLevels(rows)), nil
}

func subledgerPostings(rows []*Entry) []*Entry {
	var out []*Entry
	for _, row := range rows {
		if row.SubledgerAccountID > 0 {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Ledger.Number != b.Ledger.Number {
			return a.Ledger.Number < b.Ledger.Number
		}
		if a.Currency.Code != b.Currency.Code {
			return a.Currency.Code < b.Currency.Code
		}
		if a.AccountNumber() != b.AccountNumber() {
			return a.AccountNumber() < b.AccountNumber()
		}
		return a.SectorCode() < b.SectorCode()
	})
	return out
}

// balancesBySubledgerAccount rolls each subledger posting up its account
// chain. Rows are owned by the subledger account through
// SubledgerAccountIDParent. Sectored postings also feed the unsectored row
// of their top account.
func (p *pipeline) balancesBySubledgerAccount(postings []*Entry) []*Entry {
	acc := NewAccumulator(len(postings))

	accumulate := func(entry *Entry, account *StandardAccount, sector *Sector) {
		key := SubledgerAccountKey(entry.SubledgerAccountID, account.Number, sectorCode(sector),
			entry.Currency.ID, entry.Ledger.ID)
		row := acc.Accumulate(key, entry, Target{Account: account, Sector: sector, ItemType: ItemBalanceSummary})
		row.SubledgerAccountIDParent = entry.SubledgerAccountID
		row.SubledgerAccountNumber = entry.SubledgerAccountNumber
		row.SubledgerAccountName = entry.SubledgerAccountName
	}

	for _, entry := range postings {
		for account := entry.account(); account != nil; account = p.accountParent(account) {
			accumulate(entry, account, entry.Sector)
			if !account.HasParent() {
				if entry.HasSector() {
					accumulate(entry, account, EmptySector)
				}
				break
			}
		}
	}

	rows := acc.Values()
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Ledger.Number != b.Ledger.Number {
			return a.Ledger.Number < b.Ledger.Number
		}
		if a.Currency.Code != b.Currency.Code {
			return a.Currency.Code < b.Currency.Code
		}
		if a.SubledgerAccountIDParent != b.SubledgerAccountIDParent {
			return a.SubledgerAccountIDParent > b.SubledgerAccountIDParent
		}
		if a.AccountNumber() != b.AccountNumber() {
			return a.AccountNumber() < b.AccountNumber()
		}
		return a.SectorCode() < b.SectorCode()
	})
	return rows
}

// combineSubledgerTotals builds one total per subledger account, ledger and
// currency out of the unsectored top accounts, each followed by the
// summary accounts of the same group.
func combineSubledgerTotals(summaries []*Entry) []*Entry {
	var tops []*Entry
	for _, row := range summaries {
		if row.Level() == 1 && !row.HasSector() {
			tops = append(tops, row)
		}
	}
	sort.SliceStable(tops, func(i, j int) bool { return tops[i].Currency.Code < tops[j].Currency.Code })

	totals := NewAccumulator(len(tops))
	added := make(map[*Entry]bool, len(summaries))
	out := make([]*Entry, 0, len(summaries)+len(tops))

	for _, top := range tops {
		key := SubledgerTotalKey(top.SubledgerAccountIDParent, top.Currency.ID, top.Ledger.ID)
		if _, exists := totals.Get(key); !exists {
			total := newSummaryRow(top, totalTarget(ItemBalanceSummary))
			total.SubledgerAccountID = top.SubledgerAccountIDParent
			total.SubledgerAccountNumber = top.SubledgerAccountNumber
			total.SubledgerAccountName = top.SubledgerAccountName
			totals.Insert(key, total)
			out = append(out, total)
		}
		total, _ := totals.Get(key)
		total.Sum(top)

		for _, row := range summaries {
			if added[row] || row.account().GroupNumber != top.account().GroupNumber ||
				row.SubledgerAccountIDParent != top.SubledgerAccountIDParent ||
				row.Ledger.ID != top.Ledger.ID || row.Currency.ID != top.Currency.ID {
				continue
			}
			added[row] = true
			out = append(out, row)
		}
	}
	return out
}
