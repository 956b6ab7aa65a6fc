package balance

import (
	"github.com/erp/financial-accounting/internal/domain/shared"
)

// ColumnType is the rendering hint of a column
type ColumnType string

const (
	ColumnText       ColumnType = "text"
	ColumnTextNoWrap ColumnType = "text-nowrap"
	ColumnDecimal    ColumnType = "decimal"
)

// Column describes one output column for downstream renderers
type Column struct {
	Field string     `json:"field"`
	Title string     `json:"title"`
	Type  ColumnType `json:"type"`
}

type columnSet int

const (
	columnsNone columnSet = iota
	columnsTrialBalance
	columnsTwoCurrencies
	columnsComparative
)

// dataColumns returns the column schema of a command under a variant
func dataColumns(cmd *Command, v Variant) ([]Column, error) {
	switch v.columns {
	case columnsTrialBalance:
		return trialBalanceColumns(cmd, v), nil
	case columnsTwoCurrencies:
		return twoCurrenciesColumns(cmd, v), nil
	case columnsComparative:
		return comparativeColumns(cmd), nil
	case columnsNone:
		return nil, shared.InvalidCommand("trial balance type %s has no column schema", cmd.TrialBalanceType)
	default:
		return nil, shared.UnreachableCodePath("unhandled column set %d", v.columns)
	}
}

func leadingColumns(cmd *Command, v Variant) []Column {
	var columns []Column
	if cmd.ReturnLedgerColumn || v.ForceLedgerColumn {
		columns = append(columns, Column{"ledgerNumber", "Cont", ColumnText})
	}
	columns = append(columns, Column{"currencyCode", "Mon", ColumnText})

	if cmd.WithSubledgerAccount || v.ForceSubledgerAccounts {
		columns = append(columns, Column{"accountNumber", "Cuenta / Auxiliar", ColumnTextNoWrap})
	} else {
		columns = append(columns, Column{"accountNumber", "Cuenta", ColumnTextNoWrap})
	}
	return append(columns,
		Column{"sectorCode", "Sct", ColumnText},
		Column{"accountName", "Nombre", ColumnText},
	)
}

func trialBalanceColumns(cmd *Command, v Variant) []Column {
	columns := append(leadingColumns(cmd, v),
		Column{"initialBalance", "Saldo anterior", ColumnDecimal},
		Column{"debit", "Cargos", ColumnDecimal},
		Column{"credit", "Abonos", ColumnDecimal},
		Column{"currentBalance", "Saldo actual", ColumnDecimal},
	)
	if cmd.WithAverageBalance {
		columns = append(columns, Column{"averageBalance", "Saldo promedio", ColumnDecimal})
	}
	if cmd.InitialPeriod.ExchangeRateTypeUID != "" {
		columns = append(columns, Column{"exchangeRate", "TC", ColumnDecimal})
	}
	return columns
}

func twoCurrenciesColumns(cmd *Command, v Variant) []Column {
	return append(leadingColumns(cmd, v),
		Column{"domesticBalance", "Saldo Mon. Nal.", ColumnDecimal},
		Column{"foreignBalance", "Saldo Mon. Ext.", ColumnDecimal},
		Column{"totalBalance", "Total", ColumnDecimal},
	)
}

func comparativeColumns(cmd *Command) []Column {
	from := cmd.InitialPeriod.FromDate
	to := cmd.FinalPeriod.FromDate

	return []Column{
		{"ledgerNumber", "Cont", ColumnText},
		{"currencyCode", "Mon", ColumnText},
		{"accountNumber", "Cuenta", ColumnTextNoWrap},
		{"sectorCode", "Sct", ColumnText},
		{"subledgerAccountNumber", "Auxiliar", ColumnTextNoWrap},
		{"subledgerAccountName", "Nombre", ColumnText},
		{"totalBalance", from.Format("Jan_2006"), ColumnDecimal},
		{"exchangeRate", "Tc_Ini", ColumnDecimal},
		{"valuedBalance", from.Format("Jan") + "_VAL", ColumnDecimal},
		{"debit", "Cargos", ColumnDecimal},
		{"credit", "Abonos", ColumnDecimal},
		{"totalBalanceComparative", to.Format("Jan_2006"), ColumnDecimal},
		{"secondExchangeRate", "Tc_Fin", ColumnDecimal},
		{"valuedComparative", to.Format("Jan") + "_VAL", ColumnDecimal},
		{"accountName", "Nom_Cta", ColumnText},
		{"debtorCreditor", "Nat", ColumnText},
		{"variation", "Variación", ColumnDecimal},
		{"variationByExchangeRate", "Variación por TC", ColumnDecimal},
		{"realVariation", "Variación real", ColumnDecimal},
	}
}
