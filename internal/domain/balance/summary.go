package balance

// rowKey indexes rows by their display identity for the lookup passes
type rowKey struct {
	ledger   string
	currency string
	account  string
	sector   string
}

func displayKey(e *Entry, sector string) rowKey {
	return rowKey{
		ledger:   e.Ledger.Number,
		currency: e.Currency.Code,
		account:  e.AccountNumber(),
		sector:   sector,
	}
}

// generateSummaryEntries walks the account chain of every posting entry and
// accumulates one summary row per ancestor level.
func (p *pipeline) generateSummaryEntries(postings []*Entry) []*Entry {
	acc := NewAccumulator(len(postings))
	accountsMode := p.cmd.TrialBalanceType == TypeSaldosPorCuenta

	var details []*Entry
	detailSeen := make(map[EntryKey]bool)

	for _, entry := range postings {
		account := entry.account()
		entry.DebtorCreditor = account.DebtorCreditor
		entry.SubledgerAccountIDParent = entry.SubledgerAccountID

		current := account
		if account.HasParent() && !p.cmd.WithSubledgerAccount && !accountsMode {
			current = p.accountParent(account)
		}

		for visited := 1; current != nil; visited++ {
			if entry.Level() > 1 {
				p.summaryByEntry(acc, entry, current, entry.Sector, ItemSummary)
				p.summaryBySectorization(acc, entry, current)
			}

			if visited == 1 && accountsMode {
				key := AccountKey(current.Number, entry.SectorCode(), entry.Currency.ID, entry.Ledger.ID)
				if row, ok := acc.Get(key); ok && !detailSeen[key] {
					detailSeen[key] = true
					details = append(details, row)
				}
			}

			if !current.HasParent() {
				if entry.HasSector() {
					p.entriesAndParentSector(acc, entry, current)
				} else if p.cmd.TrialBalanceType == TypeAnaliticoDeCuentas &&
					p.cmd.WithSubledgerAccount && !account.HasParent() {
					p.summaryByEntry(acc, entry, current, EmptySector, ItemSummary)
				}
				break
			}
			current = p.accountParent(current)
		}
	}

	summaries := acc.Values()
	assignLastChangeDates(p, postings, summaries)

	if accountsMode && len(details) > 0 {
		return details
	}
	return summaries
}

func (p *pipeline) summaryByEntry(acc *Accumulator, entry *Entry, account *StandardAccount, sector *Sector, itemType ItemType) *Entry {
	key := AccountKey(account.Number, sectorCode(sector), entry.Currency.ID, entry.Ledger.ID)
	return acc.Accumulate(key, entry, Target{Account: account, Sector: sector, ItemType: itemType})
}

func (p *pipeline) summaryBySectorization(acc *Accumulator, entry *Entry, current *StandardAccount) {
	if !p.cmd.UseNewSectorizationModel || !p.cmd.WithSectorization {
		return
	}
	if current.HasParent() && entry.HasSector() {
		p.summaryByEntry(acc, entry, current, p.sectorParent(entry.Sector), ItemSummary)
	}
}

// entriesAndParentSector rolls a sectored entry up to the unsectored row of
// the top account, through every sector ancestor when sectorization is on.
func (p *pipeline) entriesAndParentSector(acc *Accumulator, entry *Entry, current *StandardAccount) {
	if !p.cmd.WithSectorization {
		p.summaryByEntry(acc, entry, current, EmptySector, ItemSummary)
		return
	}
	parent := p.sectorParent(entry.Sector)
	for {
		p.summaryByEntry(acc, entry, current, parent, ItemSummary)
		if parent.IsRoot() {
			return
		}
		parent = p.sectorParent(parent)
	}
}

// assignLastChangeDates makes the latest posting date visible on every
// summary ancestor of the posting, including the sectorless top row.
func assignLastChangeDates(p *pipeline, postings, summaries []*Entry) {
	byKey := make(map[rowKey][]*Entry, len(summaries))
	for _, row := range summaries {
		k := rowKey{account: row.AccountNumber(), currency: row.Currency.Code, sector: row.SectorCode()}
		byKey[k] = append(byKey[k], row)
	}
	first := func(account, currency, sector string) *Entry {
		rows := byKey[rowKey{account: account, currency: currency, sector: sector}]
		if len(rows) == 0 {
			return nil
		}
		return rows[0]
	}

	for _, entry := range postings {
		for _, row := range byKey[rowKey{account: entry.AccountNumber(), currency: entry.Currency.Code, sector: entry.SectorCode()}] {
			if entry.LastChangeDate.After(row.LastChangeDate) {
				row.LastChangeDate = entry.LastChangeDate
			}
		}

		current := p.accountParent(entry.account())
		for current != nil {
			if row := first(current.Number, entry.Currency.Code, entry.SectorCode()); row != nil &&
				entry.LastChangeDate.After(row.LastChangeDate) {
				row.LastChangeDate = entry.LastChangeDate
			}
			if !current.HasParent() {
				if row := first(current.Number, entry.Currency.Code, RootSectorCode); row != nil &&
					entry.LastChangeDate.After(row.LastChangeDate) {
					row.LastChangeDate = entry.LastChangeDate
				}
				break
			}
			current = p.accountParent(current)
		}
	}
}

// summaryEntriesAndSectorization runs the sector rollup passes of the new
// sectorization model and removes duplicated unsectored rows.
func (p *pipeline) summaryEntriesAndSectorization(summaries []*Entry) []*Entry {
	entries := mappedForSectorization(summaries)
	returned := make([]*Entry, len(entries))
	copy(returned, entries)

	if p.cmd.UseNewSectorizationModel {
		if p.cmd.WithSectorization {
			returned = p.summaryEntriesWithSectorization(entries, returned)
		} else {
			returned = p.summaryEntriesWithoutSectorization(entries, returned)
		}
	}
	return p.summaryByLevelAndSector(returned)
}

// mappedForSectorization copies the rows when posting rows are present so
// the passes never mutate data-store rows.
func mappedForSectorization(entries []*Entry) []*Entry {
	hasPostings := false
	for _, e := range entries {
		if e.ItemType == ItemEntry {
			hasPostings = true
			break
		}
	}
	if !hasPostings {
		return entries
	}
	mapped := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		mapped = append(mapped, e.Clone())
	}
	return mapped
}

func unsectoredIndex(rows []*Entry) map[rowKey]*Entry {
	idx := make(map[rowKey]*Entry)
	for _, row := range rows {
		if row.SectorCode() != RootSectorCode {
			continue
		}
		k := displayKey(row, RootSectorCode)
		if _, ok := idx[k]; !ok {
			idx[k] = row
		}
	}
	return idx
}

func addAmounts(dst, src *Entry) {
	dst.InitialBalance = dst.InitialBalance.Add(src.InitialBalance)
	dst.Debit = dst.Debit.Add(src.Debit)
	dst.Credit = dst.Credit.Add(src.Credit)
	dst.CurrentBalance = dst.CurrentBalance.Add(src.CurrentBalance)
}

func (p *pipeline) summaryEntriesWithoutSectorization(check, returned []*Entry) []*Entry {
	hashed := NewAccumulator(len(check))
	idx := unsectoredIndex(returned)

	for _, entry := range check {
		parent := p.sectorParent(entry.Sector)
		unsectored := idx[displayKey(entry, RootSectorCode)]

		if unsectored != nil && !parent.IsRoot() && entry.HasSector() && entry.Level() > 1 {
			addAmounts(unsectored, entry)
		} else if entry.HasSector() && entry.Level() > 1 {
			p.summaryByEntry(hashed, entry, entry.account(), EmptySector, entry.ItemType)
		}
	}

	for _, row := range hashed.Values() {
		if _, exists := idx[displayKey(row, RootSectorCode)]; !exists {
			returned = append(returned, row)
		}
	}
	return returned
}

func (p *pipeline) summaryEntriesWithSectorization(check, returned []*Entry) []*Entry {
	hashed := NewAccumulator(len(check))
	idx := unsectoredIndex(returned)

	for _, entry := range check {
		parent := p.sectorParent(entry.Sector)
		unsectored := idx[displayKey(entry, RootSectorCode)]

		if unsectored != nil && !parent.IsRoot() && entry.Level() > 1 {
			addAmounts(unsectored, entry)
		} else if (!parent.IsRoot() || (entry.ItemType == ItemEntry && entry.HasSector())) && entry.Level() > 1 {
			p.summaryByEntry(hashed, entry, entry.account(), EmptySector, entry.ItemType)
		}
	}
	return append(returned, hashed.Values()...)
}

// summaryByLevelAndSector drops the unsectored row of an account when the
// account has exactly one sectored sibling row.
func (p *pipeline) summaryByLevelAndSector(entries []*Entry) []*Entry {
	if !p.cmd.UseNewSectorizationModel {
		return entries
	}

	type accountKey struct{ ledger, currency, account string }
	keyOf := func(e *Entry) accountKey {
		return accountKey{e.Ledger.Number, e.Currency.Code, e.AccountNumber()}
	}

	counts := make(map[accountKey]int)
	unsectored := make(map[accountKey]*Entry)
	for _, e := range entries {
		k := keyOf(e)
		counts[k]++
		if e.SectorCode() == RootSectorCode {
			if _, ok := unsectored[k]; !ok {
				unsectored[k] = e
			}
		}
	}

	removed := make(map[*Entry]bool)
	for _, e := range entries {
		k := keyOf(e)
		pair := counts[k] == 2
		if (e.Level() > 1 && pair && e.ItemType == ItemSummary) ||
			(e.ItemType == ItemEntry && pair && e.SectorCode() != RootSectorCode) {
			if row, ok := unsectored[k]; ok {
				removed[row] = true
			}
		}
	}
	if len(removed) == 0 {
		return entries
	}

	kept := make([]*Entry, 0, len(entries)-len(removed))
	for _, e := range entries {
		if !removed[e] {
			kept = append(kept, e)
		}
	}
	return kept
}
