package balance

import "github.com/shopspring/decimal"

// CreditorSignPolicy decides how creditor totals enter the currency total
type CreditorSignPolicy int

const (
	// NegateCreditorTotals subtracts creditor totals from the currency total.
	// Every report type uses it except the cascade balance.
	NegateCreditorTotals CreditorSignPolicy = iota + 1
	// KeepCreditorSign adds creditor totals unchanged
	KeepCreditorSign
)

// String returns the policy name
func (s CreditorSignPolicy) String() string {
	switch s {
	case NegateCreditorTotals:
		return "negate-creditor-totals"
	case KeepCreditorSign:
		return "keep-creditor-sign"
	default:
		return "unknown"
	}
}

// apply adjusts a debtor or creditor total before it is summed into a
// currency total.
func (s CreditorSignPolicy) apply(entry *Entry) {
	if s != NegateCreditorTotals || entry.ItemType != ItemTotalCreditor {
		return
	}
	minusOne := decimal.NewFromInt(-1)
	entry.InitialBalance = entry.InitialBalance.Mul(minusOne)
	entry.CurrentBalance = entry.CurrentBalance.Mul(minusOne)
}
