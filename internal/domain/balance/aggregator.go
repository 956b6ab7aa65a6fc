package balance

// Target describes the identity of a row created by the accumulator. The
// account and sector come from the target, never from the contributing entry.
type Target struct {
	Account  *StandardAccount
	Sector   *Sector
	ItemType ItemType
}

// Accumulator merges entries into one row per EntryKey. Values are kept in
// first-insertion order so results are deterministic. An Accumulator belongs
// to a single pipeline run and is not safe for concurrent use.
type Accumulator struct {
	index map[EntryKey]int
	rows  []*Entry
}

// NewAccumulator creates an accumulator sized for capacity keys
func NewAccumulator(capacity int) *Accumulator {
	return &Accumulator{
		index: make(map[EntryKey]int, capacity),
		rows:  make([]*Entry, 0, capacity),
	}
}

// Get returns the row stored under key
func (a *Accumulator) Get(key EntryKey) (*Entry, bool) {
	i, ok := a.index[key]
	if !ok {
		return nil, false
	}
	return a.rows[i], true
}

// Insert stores entry under key as is, replacing any previous row in place
func (a *Accumulator) Insert(key EntryKey, entry *Entry) {
	if i, ok := a.index[key]; ok {
		a.rows[i] = entry
		return
	}
	a.index[key] = len(a.rows)
	a.rows = append(a.rows, entry)
}

// Accumulate adds entry to the row under key, creating the row from target
// on first observation.
func (a *Accumulator) Accumulate(key EntryKey, entry *Entry, target Target) *Entry {
	row, ok := a.Get(key)
	if !ok {
		row = newSummaryRow(entry, target)
		a.Insert(key, row)
	}
	row.Sum(entry)
	return row
}

// Len returns the number of distinct keys
func (a *Accumulator) Len() int {
	return len(a.rows)
}

// Values returns the rows in insertion order
func (a *Accumulator) Values() []*Entry {
	out := make([]*Entry, len(a.rows))
	copy(out, a.rows)
	return out
}

func newSummaryRow(entry *Entry, target Target) *Entry {
	account := target.Account
	if account == nil {
		account = EmptyAccount
	}
	sector := target.Sector
	if sector == nil {
		sector = EmptySector
	}
	return &Entry{
		Ledger:                   entry.Ledger,
		Currency:                 entry.Currency,
		Account:                  account,
		Sector:                   sector,
		ItemType:                 target.ItemType,
		GroupNumber:              entry.GroupNumber,
		GroupName:                entry.GroupName,
		DebtorCreditor:           entry.DebtorCreditor,
		SubledgerAccountIDParent: entry.SubledgerAccountIDParent,
		LastChangeDate:           entry.LastChangeDate,
	}
}
