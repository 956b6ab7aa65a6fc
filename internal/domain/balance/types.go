package balance

// TrialBalanceType identifies a report variant produced by the engine
type TrialBalanceType string

const (
	TypeBalanza                           TrialBalanceType = "Balanza"
	TypeBalanzaConAuxiliares              TrialBalanceType = "BalanzaConAuxiliares"
	TypeBalanzaConContabilidadesEnCascada TrialBalanceType = "BalanzaConContabilidadesEnCascada"
	TypeBalanzaDolarizada                 TrialBalanceType = "BalanzaDolarizada"
	TypeBalanzaEnColumnasPorMoneda        TrialBalanceType = "BalanzaEnColumnasPorMoneda"
	TypeBalanzaValorizadaComparativa      TrialBalanceType = "BalanzaValorizadaComparativa"
	TypeAnaliticoDeCuentas                TrialBalanceType = "AnaliticoDeCuentas"
	TypeGeneracionDeSaldos                TrialBalanceType = "GeneracionDeSaldos"
	TypeSaldos                            TrialBalanceType = "Saldos"
	TypeSaldosPorAuxiliar                 TrialBalanceType = "SaldosPorAuxiliar"
	TypeSaldosPorCuenta                   TrialBalanceType = "SaldosPorCuenta"
	TypeSaldosPorCuentaYMayor             TrialBalanceType = "SaldosPorCuentaYMayor"
)

// AllTrialBalanceTypes lists every report variant in declaration order
func AllTrialBalanceTypes() []TrialBalanceType {
	return []TrialBalanceType{
		TypeBalanza,
		TypeBalanzaConAuxiliares,
		TypeBalanzaConContabilidadesEnCascada,
		TypeBalanzaDolarizada,
		TypeBalanzaEnColumnasPorMoneda,
		TypeBalanzaValorizadaComparativa,
		TypeAnaliticoDeCuentas,
		TypeGeneracionDeSaldos,
		TypeSaldos,
		TypeSaldosPorAuxiliar,
		TypeSaldosPorCuenta,
		TypeSaldosPorCuentaYMayor,
	}
}

// IsValid checks if the type is a known report variant
func (t TrialBalanceType) IsValid() bool {
	for _, known := range AllTrialBalanceTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the string representation
func (t TrialBalanceType) String() string {
	return string(t)
}

// ItemType classifies a trial balance row
type ItemType string

const (
	ItemEntry                     ItemType = "Entry"                            // Posting row from the data store
	ItemSummary                   ItemType = "Summary"                          // Rolled-up ancestor row
	ItemBalanceSummary            ItemType = "BalanceSummary"                   // Subledger-keyed rolled-up row
	ItemTotalDebtor               ItemType = "BalanceTotalDebtor"               // Total of debtor accounts per currency
	ItemTotalCreditor             ItemType = "BalanceTotalCreditor"             // Total of creditor accounts per currency
	ItemTotalCurrency             ItemType = "BalanceTotalCurrency"             // Total per currency
	ItemTotalGroupDebtor          ItemType = "BalanceTotalGroupDebtor"          // Total per debtor account group
	ItemTotalGroupCreditor        ItemType = "BalanceTotalGroupCreditor"        // Total per creditor account group
	ItemTotalConsolidated         ItemType = "BalanceTotalConsolidated"         // Grand total
	ItemTotalConsolidatedByLedger ItemType = "BalanceTotalConsolidatedByLedger" // Grand total per ledger
	ItemTotal                     ItemType = "Total"
)

// IsTotal reports whether the row is one of the computed total rows
func (t ItemType) IsTotal() bool {
	switch t {
	case ItemTotalDebtor, ItemTotalCreditor, ItemTotalCurrency, ItemTotalGroupDebtor,
		ItemTotalGroupCreditor, ItemTotalConsolidated, ItemTotalConsolidatedByLedger, ItemTotal:
		return true
	}
	return false
}

// DebtorCreditor is the nature of an account
type DebtorCreditor string

const (
	Debtor   DebtorCreditor = "D" // Deudora: balance grows with debits
	Creditor DebtorCreditor = "A" // Acreedora: balance grows with credits
)

// IsValid checks if the nature is debtor or creditor
func (d DebtorCreditor) IsValid() bool {
	return d == Debtor || d == Creditor
}

// String returns the display name of the nature
func (d DebtorCreditor) String() string {
	switch d {
	case Debtor:
		return "Deudora"
	case Creditor:
		return "Acreedora"
	default:
		return ""
	}
}

// rank orders natures so that debtor rows sort before creditor rows when
// sorting descending.
func (d DebtorCreditor) rank() int {
	switch d {
	case Debtor:
		return 2
	case Creditor:
		return 1
	default:
		return 0
	}
}

// BalancesType filters which posting rows the data store returns
type BalancesType string

const (
	BalancesAllAccounts                   BalancesType = "AllAccounts"
	BalancesWithCurrentBalance            BalancesType = "WithCurrentBalance"
	BalancesWithCurrentBalanceOrMovements BalancesType = "WithCurrentBalanceOrMovements"
	BalancesWithMovements                 BalancesType = "WithMovements"
)

// IsValid checks if the balances type is known
func (b BalancesType) IsValid() bool {
	switch b {
	case BalancesAllAccounts, BalancesWithCurrentBalance, BalancesWithCurrentBalanceOrMovements, BalancesWithMovements:
		return true
	}
	return false
}
