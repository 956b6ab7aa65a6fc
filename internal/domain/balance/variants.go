package balance

import (
	"context"

	"github.com/erp/financial-accounting/internal/domain/shared"
)

// builder runs the stages of one report variant
type builder func(ctx context.Context, p *pipeline) (*TrialBalance, error)

type valuationPolicy int

const (
	valuationSkipped     valuationPolicy = iota // Rates are never applied
	valuationStandard                           // Multiply, or display for unconsolidated operational reports
	valuationComparative                        // Display the rate of each period
)

// Variant is the static description of a report type: which builder runs,
// how valuation behaves and which presentation flags are forced.
type Variant struct {
	Type                   TrialBalanceType
	Supported              bool
	CreditorSign           CreditorSignPolicy
	Cascade                bool
	ForceSubledgerAccounts bool
	ForceLedgerColumn      bool

	valuation valuationPolicy
	columns   columnSet
	build     builder
}

func (v Variant) valuationMode(cmd *Command, second bool) ValuationMode {
	switch v.valuation {
	case valuationComparative:
		if second {
			return ValuationDisplaySecondRate
		}
		return ValuationDisplayRate
	case valuationStandard:
		if cmd.IsOperationalReport && !cmd.ConsolidateBalancesToTargetCurrency {
			return ValuationDisplayRate
		}
		return ValuationMultiply
	default:
		return 0
	}
}

// VariantTable maps every report type to its variant
type VariantTable map[TrialBalanceType]Variant

// DefaultVariants builds the variant table of the engine
func DefaultVariants() VariantTable {
	traditional := func(t TrialBalanceType) Variant {
		return Variant{
			Type:         t,
			Supported:    true,
			CreditorSign: NegateCreditorTotals,
			valuation:    valuationStandard,
			columns:      columnsTrialBalance,
			build:        buildTraditional,
		}
	}
	unsupported := func(t TrialBalanceType) Variant {
		return Variant{Type: t, CreditorSign: NegateCreditorTotals, valuation: valuationSkipped, columns: columnsNone}
	}

	table := VariantTable{}

	table[TypeBalanza] = traditional(TypeBalanza)
	table[TypeGeneracionDeSaldos] = traditional(TypeGeneracionDeSaldos)
	table[TypeSaldosPorCuenta] = traditional(TypeSaldosPorCuenta)

	withSubledger := traditional(TypeBalanzaConAuxiliares)
	withSubledger.ForceSubledgerAccounts = true
	table[TypeBalanzaConAuxiliares] = withSubledger

	saldos := traditional(TypeSaldos)
	saldos.ForceSubledgerAccounts = true
	table[TypeSaldos] = saldos

	byLedger := traditional(TypeSaldosPorCuentaYMayor)
	byLedger.ForceLedgerColumn = true
	table[TypeSaldosPorCuentaYMayor] = byLedger

	cascade := traditional(TypeBalanzaConContabilidadesEnCascada)
	cascade.Cascade = true
	cascade.CreditorSign = KeepCreditorSign
	cascade.ForceLedgerColumn = true
	table[TypeBalanzaConContabilidadesEnCascada] = cascade

	bySubledger := traditional(TypeSaldosPorAuxiliar)
	bySubledger.ForceSubledgerAccounts = true
	bySubledger.build = buildBalancesBySubledgerAccount
	table[TypeSaldosPorAuxiliar] = bySubledger

	analytic := traditional(TypeAnaliticoDeCuentas)
	analytic.columns = columnsTwoCurrencies
	analytic.build = buildAnalytic
	table[TypeAnaliticoDeCuentas] = analytic

	comparative := traditional(TypeBalanzaValorizadaComparativa)
	comparative.valuation = valuationComparative
	comparative.columns = columnsComparative
	comparative.build = buildComparative
	table[TypeBalanzaValorizadaComparativa] = comparative

	table[TypeBalanzaDolarizada] = unsupported(TypeBalanzaDolarizada)
	table[TypeBalanzaEnColumnasPorMoneda] = unsupported(TypeBalanzaEnColumnasPorMoneda)

	return table
}

// Lookup returns the supported variant of a report type
func (t VariantTable) Lookup(trialBalanceType TrialBalanceType) (Variant, error) {
	v, ok := t[trialBalanceType]
	if !ok {
		return Variant{}, shared.InvalidCommand("unknown trial balance type %q", trialBalanceType)
	}
	if !v.Supported || v.build == nil {
		return Variant{}, shared.InvalidCommand("trial balance type %s is not supported", trialBalanceType)
	}
	return v, nil
}
