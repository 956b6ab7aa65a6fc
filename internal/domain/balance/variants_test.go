package balance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/financial-accounting/internal/domain/shared"
)

func TestDefaultVariants(t *testing.T) {
	table := DefaultVariants()

	t.Run("every report type is registered", func(t *testing.T) {
		for _, typ := range AllTrialBalanceTypes() {
			v, ok := table[typ]
			require.True(t, ok, typ)
			assert.Equal(t, typ, v.Type)
		}
	})

	t.Run("supported variants build and have columns", func(t *testing.T) {
		for _, typ := range AllTrialBalanceTypes() {
			v := table[typ]
			if !v.Supported {
				continue
			}
			assert.NotNil(t, v.build, typ)

			cmd := newCommand(typ)
			cmd.FinalPeriod = Period{FromDate: februaryFrom, ToDate: februaryTo}
			columns, err := dataColumns(cmd, v)
			require.NoError(t, err, typ)
			assert.NotEmpty(t, columns, typ)
		}
	})

	t.Run("only the cascade balance keeps the creditor sign", func(t *testing.T) {
		for _, typ := range AllTrialBalanceTypes() {
			expected := NegateCreditorTotals
			if typ == TypeBalanzaConContabilidadesEnCascada {
				expected = KeepCreditorSign
			}
			assert.Equal(t, expected, table[typ].CreditorSign, typ)
		}
	})

	t.Run("forced presentation flags", func(t *testing.T) {
		assert.True(t, table[TypeSaldos].ForceSubledgerAccounts)
		assert.True(t, table[TypeSaldosPorAuxiliar].ForceSubledgerAccounts)
		assert.True(t, table[TypeBalanzaConAuxiliares].ForceSubledgerAccounts)
		assert.False(t, table[TypeBalanza].ForceSubledgerAccounts)
		assert.True(t, table[TypeBalanzaConContabilidadesEnCascada].Cascade)
	})
}

func TestVariantTable_Lookup(t *testing.T) {
	table := DefaultVariants()

	t.Run("unknown type", func(t *testing.T) {
		_, err := table.Lookup(TrialBalanceType("Unknown"))
		assert.True(t, errors.Is(err, shared.ErrInvalidCommand))
	})

	t.Run("registered but unsupported type", func(t *testing.T) {
		_, err := table.Lookup(TypeBalanzaDolarizada)
		assert.True(t, errors.Is(err, shared.ErrInvalidCommand))
		assert.Contains(t, err.Error(), "not supported")
	})

	t.Run("supported type", func(t *testing.T) {
		v, err := table.Lookup(TypeSaldosPorCuenta)
		require.NoError(t, err)
		assert.Equal(t, TypeSaldosPorCuenta, v.Type)
	})
}

func TestVariant_ValuationMode(t *testing.T) {
	table := DefaultVariants()

	tests := []struct {
		name     string
		typ      TrialBalanceType
		mutate   func(*Command)
		second   bool
		expected ValuationMode
	}{
		{name: "traditional multiplies", typ: TypeBalanza, expected: ValuationMultiply},
		{
			name:     "operational displays",
			typ:      TypeBalanza,
			mutate:   func(c *Command) { c.IsOperationalReport = true },
			expected: ValuationDisplayRate,
		},
		{
			name: "consolidated operational multiplies",
			typ:  TypeBalanza,
			mutate: func(c *Command) {
				c.IsOperationalReport = true
				c.ConsolidateBalancesToTargetCurrency = true
			},
			expected: ValuationMultiply,
		},
		{name: "comparative first period", typ: TypeBalanzaValorizadaComparativa, expected: ValuationDisplayRate},
		{name: "comparative second period", typ: TypeBalanzaValorizadaComparativa, second: true, expected: ValuationDisplaySecondRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCommand(tt.typ)
			if tt.mutate != nil {
				tt.mutate(cmd)
			}
			assert.Equal(t, tt.expected, table[tt.typ].valuationMode(cmd, tt.second))
		})
	}
}

func TestEngine_Columns(t *testing.T) {
	engine := newTestEngine(testChart(), newFakePostings(), nil)

	t.Run("standard columns", func(t *testing.T) {
		columns, err := engine.Columns(newCommand(TypeBalanza))
		require.NoError(t, err)

		fields := make([]string, 0, len(columns))
		for _, c := range columns {
			fields = append(fields, c.Field)
		}
		assert.Equal(t, []string{
			"currencyCode", "accountNumber", "sectorCode", "accountName",
			"initialBalance", "debit", "credit", "currentBalance",
		}, fields)
		assert.Equal(t, "Cuenta", columns[1].Title)
		assert.Equal(t, ColumnTextNoWrap, columns[1].Type)
	})

	t.Run("ledger and rate columns", func(t *testing.T) {
		cmd := newCommand(TypeBalanza)
		cmd.ReturnLedgerColumn = true
		cmd.InitialPeriod.ExchangeRateTypeUID = "rate-type"

		columns, err := engine.Columns(cmd)
		require.NoError(t, err)
		assert.Equal(t, "ledgerNumber", columns[0].Field)
		assert.Equal(t, "TC", columns[len(columns)-1].Title)
	})

	t.Run("subledger title", func(t *testing.T) {
		cmd := newCommand(TypeBalanza)
		cmd.WithSubledgerAccount = true

		columns, err := engine.Columns(cmd)
		require.NoError(t, err)
		assert.Equal(t, "Cuenta / Auxiliar", columns[1].Title)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := engine.Columns(newCommand(TypeBalanzaEnColumnasPorMoneda))
		assert.True(t, errors.Is(err, shared.ErrInvalidCommand))
	})

	t.Run("nil command", func(t *testing.T) {
		_, err := engine.Columns(nil)
		assert.True(t, errors.Is(err, shared.ErrInvalidCommand))
	})
}

func TestDataColumns_UnhandledSet(t *testing.T) {
	_, err := dataColumns(newCommand(TypeBalanza), Variant{columns: columnSet(99)})
	assert.True(t, errors.Is(err, shared.ErrUnreachableCodePath))
}
