package balance

// keyKind separates key spaces so that keys of different totals never
// compare equal even when their populated fields coincide.
type keyKind uint8

const (
	kindAccount keyKind = iota + 1
	kindTargetCurrency
	kindDebtorCreditor
	kindCurrency
	kindGroup
	kindConsolidated
	kindConsolidatedByLedger
	kindByAccount
	kindSubledger
	kindSubledgerAccount
)

// EntryKey is the composite aggregation key. Each total builds its key
// through a constructor that leaves the fields it does not group by empty.
type EntryKey struct {
	kind           keyKind
	AccountNumber  string
	SectorCode     string
	CurrencyID     int64
	LedgerID       int64
	SubledgerID    int64
	GroupName      string
	GroupNumber    string
	DebtorCreditor DebtorCreditor
}

// AccountKey groups rows by target account, sector, currency and ledger
func AccountKey(accountNumber, sectorCode string, currencyID, ledgerID int64) EntryKey {
	return EntryKey{
		kind:          kindAccount,
		AccountNumber: accountNumber,
		SectorCode:    sectorCode,
		CurrencyID:    currencyID,
		LedgerID:      ledgerID,
	}
}

// TargetCurrencyKey groups rows re-expressed in a single target currency.
// The subledger is kept so detail rows never collapse into each other.
func TargetCurrencyKey(accountNumber, sectorCode string, targetCurrencyID, ledgerID, subledgerID int64) EntryKey {
	return EntryKey{
		kind:          kindTargetCurrency,
		AccountNumber: accountNumber,
		SectorCode:    sectorCode,
		CurrencyID:    targetCurrencyID,
		LedgerID:      ledgerID,
		SubledgerID:   subledgerID,
	}
}

// DebtorCreditorKey groups debtor or creditor totals by name and currency;
// ledgerID is zero unless totals are ledger scoped.
func DebtorCreditorKey(groupName string, currencyID, ledgerID int64) EntryKey {
	return EntryKey{
		kind:       kindDebtorCreditor,
		GroupName:  groupName,
		CurrencyID: currencyID,
		LedgerID:   ledgerID,
	}
}

// CurrencyTotalKey groups currency totals
func CurrencyTotalKey(groupName, sectorCode string, currencyID, ledgerID int64) EntryKey {
	return EntryKey{
		kind:       kindCurrency,
		GroupName:  groupName,
		SectorCode: sectorCode,
		CurrencyID: currencyID,
		LedgerID:   ledgerID,
	}
}

// GroupTotalKey groups account-group totals
func GroupTotalKey(nature DebtorCreditor, currencyID int64, groupNumber string, ledgerID int64) EntryKey {
	return EntryKey{
		kind:           kindGroup,
		DebtorCreditor: nature,
		CurrencyID:     currencyID,
		GroupNumber:    groupNumber,
		LedgerID:       ledgerID,
	}
}

// ConsolidatedKey groups the grand total
func ConsolidatedKey(groupName, sectorCode string, ledgerID int64) EntryKey {
	return EntryKey{
		kind:       kindConsolidated,
		GroupName:  groupName,
		SectorCode: sectorCode,
		LedgerID:   ledgerID,
	}
}

// ConsolidatedByLedgerKey groups the grand total of one ledger
func ConsolidatedByLedgerKey(ledgerID int64, groupName string) EntryKey {
	return EntryKey{
		kind:      kindConsolidatedByLedger,
		LedgerID:  ledgerID,
		GroupName: groupName,
	}
}

// ByAccountKey groups rows by account number only
func ByAccountKey(accountNumber string) EntryKey {
	return EntryKey{kind: kindByAccount, AccountNumber: accountNumber}
}

// SubledgerTotalKey groups totals of one subledger account
func SubledgerTotalKey(subledgerID int64, currencyID, ledgerID int64) EntryKey {
	return EntryKey{
		kind:        kindSubledger,
		SubledgerID: subledgerID,
		CurrencyID:  currencyID,
		LedgerID:    ledgerID,
	}
}

// SubledgerAccountKey groups the summary accounts of one subledger account
func SubledgerAccountKey(subledgerID int64, accountNumber, sectorCode string, currencyID, ledgerID int64) EntryKey {
	return EntryKey{
		kind:          kindSubledgerAccount,
		AccountNumber: accountNumber,
		SectorCode:    sectorCode,
		CurrencyID:    currencyID,
		LedgerID:      ledgerID,
		SubledgerID:   subledgerID,
	}
}
