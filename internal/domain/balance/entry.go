package balance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the rounding applied to posting amounts
const AmountPlaces int32 = 2

// Entry is a trial balance row. Posting rows come from the data store;
// summary and total rows are created by the pipeline and accumulated in place.
type Entry struct {
	Ledger   Ledger
	Currency Currency
	Account  *StandardAccount
	Sector   *Sector

	SubledgerAccountID       int64
	SubledgerAccountIDParent int64
	SubledgerAccountNumber   string
	SubledgerAccountName     string
	SubledgerNumberOfDigits  int

	ItemType       ItemType
	DebtorCreditor DebtorCreditor
	GroupNumber    string
	GroupName      string

	InitialBalance     decimal.Decimal
	Debit              decimal.Decimal
	Credit             decimal.Decimal
	CurrentBalance     decimal.Decimal
	AverageBalance     decimal.Decimal
	ExchangeRate       decimal.Decimal
	SecondExchangeRate decimal.Decimal

	LastChangeDate time.Time
}

// NewPostingEntry creates a posting row and computes its current balance from
// the account nature.
func NewPostingEntry(ledger Ledger, currency Currency, account *StandardAccount, sector *Sector,
	initial, debit, credit decimal.Decimal) *Entry {
	if sector == nil {
		sector = EmptySector
	}
	e := &Entry{
		Ledger:         ledger,
		Currency:       currency,
		Account:        account,
		Sector:         sector,
		ItemType:       ItemEntry,
		DebtorCreditor: account.DebtorCreditor,
		InitialBalance: initial,
		Debit:          debit,
		Credit:         credit,
	}
	e.RecalculateCurrentBalance()
	return e
}

// RecalculateCurrentBalance sets CurrentBalance from the initial balance and
// the movements according to the account nature.
func (e *Entry) RecalculateCurrentBalance() {
	e.CurrentBalance = e.InitialBalance.Add(e.NetMovement())
}

// NetMovement is Debit-Credit for debtor rows and Credit-Debit for creditor rows
func (e *Entry) NetMovement() decimal.Decimal {
	if e.nature() == Creditor {
		return e.Credit.Sub(e.Debit)
	}
	return e.Debit.Sub(e.Credit)
}

func (e *Entry) nature() DebtorCreditor {
	if e.DebtorCreditor != "" {
		return e.DebtorCreditor
	}
	if e.Account != nil {
		return e.Account.DebtorCreditor
	}
	return Debtor
}

// Level is the hierarchy depth of the row's account
func (e *Entry) Level() int {
	return e.account().Level()
}

// HasSector reports whether the row carries a sector other than the root
func (e *Entry) HasSector() bool {
	return !e.Sector.IsRoot()
}

// AccountNumber returns the account number, empty for total rows
func (e *Entry) AccountNumber() string {
	return e.account().Number
}

// SectorCode returns the sector code, "00" when unset
func (e *Entry) SectorCode() string {
	return sectorCode(e.Sector)
}

func (e *Entry) account() *StandardAccount {
	if e.Account == nil {
		return EmptyAccount
	}
	return e.Account
}

// Sum accumulates other into e
func (e *Entry) Sum(other *Entry) {
	e.InitialBalance = e.InitialBalance.Add(other.InitialBalance)
	e.Debit = e.Debit.Add(other.Debit)
	e.Credit = e.Credit.Add(other.Credit)
	e.CurrentBalance = e.CurrentBalance.Add(other.CurrentBalance)
	if e.ExchangeRate.IsZero() {
		e.ExchangeRate = other.ExchangeRate
	}
	if e.SecondExchangeRate.IsZero() {
		e.SecondExchangeRate = other.SecondExchangeRate
	}
	if other.LastChangeDate.After(e.LastChangeDate) {
		e.LastChangeDate = other.LastChangeDate
	}
}

// MultiplyBy expresses the amounts in another currency and records the rate
func (e *Entry) MultiplyBy(rate decimal.Decimal) {
	e.InitialBalance = e.InitialBalance.Mul(rate)
	e.Debit = e.Debit.Mul(rate)
	e.Credit = e.Credit.Mul(rate)
	e.CurrentBalance = e.CurrentBalance.Mul(rate)
	e.ExchangeRate = rate
}

// Round rounds the four balance amounts
func (e *Entry) Round(places int32) {
	e.InitialBalance = e.InitialBalance.Round(places)
	e.Debit = e.Debit.Round(places)
	e.Credit = e.Credit.Round(places)
	e.CurrentBalance = e.CurrentBalance.Round(places)
}

// ZeroAmounts clears the four balance amounts
func (e *Entry) ZeroAmounts() {
	e.InitialBalance = decimal.Zero
	e.Debit = decimal.Zero
	e.Credit = decimal.Zero
	e.CurrentBalance = decimal.Zero
}

// Clone returns a shallow copy; account and sector pointers are shared
func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}

// IsSubledgerRow reports whether the row details a subledger account
func (e *Entry) IsSubledgerRow() bool {
	return e.SubledgerAccountID != 0
}
