package balance

import (
	"sort"
	"strings"
)

const (
	// RootSectorCode is the sector meaning "no sector"
	RootSectorCode = "00"
	// DefaultAccountSeparator separates the levels of an account number
	DefaultAccountSeparator = "-"
)

// Ledger is an accounting book
type Ledger struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
	Name   string `json:"name"`
}

// IsEmpty reports whether the ledger is the empty ledger used by totals
func (l Ledger) IsEmpty() bool {
	return l.ID == 0 && l.Number == ""
}

// Currency is a currency catalog entry
type Currency struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// IsEmpty reports whether the currency is the empty currency
func (c Currency) IsEmpty() bool {
	return c.ID == 0 && c.Code == ""
}

// FullName returns the name shown in total rows
func (c Currency) FullName() string {
	if c.Name == "" {
		return c.Code
	}
	return c.Name + " (" + c.Code + ")"
}

// StandardAccount is a node of the accounts chart. Its position in the
// hierarchy is derived from Number alone.
type StandardAccount struct {
	Number         string
	Name           string
	DebtorCreditor DebtorCreditor
	GroupNumber    string
	Separator      string
}

// EmptyAccount is the account carried by total rows
var EmptyAccount = &StandardAccount{}

// NewStandardAccount creates an account; the group defaults to the first
// character of the number.
func NewStandardAccount(number, name string, nature DebtorCreditor, separator string) *StandardAccount {
	if separator == "" {
		separator = DefaultAccountSeparator
	}
	return &StandardAccount{
		Number:         number,
		Name:           name,
		DebtorCreditor: nature,
		GroupNumber:    defaultGroupNumber(number),
		Separator:      separator,
	}
}

func defaultGroupNumber(number string) string {
	if number == "" {
		return ""
	}
	return number[:1]
}

func (a *StandardAccount) separator() string {
	if a.Separator == "" {
		return DefaultAccountSeparator
	}
	return a.Separator
}

// Level is the depth of the account: separators + 1
func (a *StandardAccount) Level() int {
	if a == nil {
		return 1
	}
	return strings.Count(a.Number, a.separator()) + 1
}

// HasParent reports whether the account is below level one
func (a *StandardAccount) HasParent() bool {
	return a.Level() > 1
}

// ParentNumber returns the number of the parent account, if any
func (a *StandardAccount) ParentNumber() (string, bool) {
	if !a.HasParent() {
		return "", false
	}
	return a.Number[:strings.LastIndex(a.Number, a.separator())], true
}

// Sector is a regulatory classification crossing accounts
type Sector struct {
	Code       string
	Name       string
	ParentCode string
}

// EmptySector is the root sector ("no sector")
var EmptySector = &Sector{Code: RootSectorCode}

// IsRoot reports whether the sector is the "no sector" root
func (s *Sector) IsRoot() bool {
	return s == nil || s.Code == RootSectorCode || s.Code == ""
}

func sectorCode(s *Sector) string {
	if s == nil || s.Code == "" {
		return RootSectorCode
	}
	return s.Code
}

// AccountHierarchy resolves account parents
type AccountHierarchy interface {
	AccountParent(account *StandardAccount) (*StandardAccount, bool)
}

// SectorHierarchy resolves sector parents. The parent of a top-level
// sector is the root sector.
type SectorHierarchy interface {
	SectorParent(sector *Sector) *Sector
}

// CurrencyCatalog resolves currencies by code
type CurrencyCatalog interface {
	Currency(code string) (Currency, bool)
}

// ReferenceData bundles the read-only lookups the pipeline needs
type ReferenceData interface {
	AccountHierarchy
	SectorHierarchy
	CurrencyCatalog
}

// Chart is an in-memory snapshot of an accounts chart, its sectors and
// the currency catalog. It is safe for concurrent reads.
type Chart struct {
	UID        string
	Separator  string
	accounts   map[string]*StandardAccount
	sectors    map[string]*Sector
	currencies map[string]Currency
}

// NewChart creates an empty chart
func NewChart(uid, separator string) *Chart {
	if separator == "" {
		separator = DefaultAccountSeparator
	}
	return &Chart{
		UID:        uid,
		Separator:  separator,
		accounts:   make(map[string]*StandardAccount),
		sectors:    map[string]*Sector{RootSectorCode: EmptySector},
		currencies: make(map[string]Currency),
	}
}

// AddAccount registers an account and returns the stored instance
func (c *Chart) AddAccount(number, name string, nature DebtorCreditor) *StandardAccount {
	account := NewStandardAccount(number, name, nature, c.Separator)
	c.accounts[number] = account
	return account
}

// PutAccount registers a fully built account
func (c *Chart) PutAccount(account *StandardAccount) {
	if account.Separator == "" {
		account.Separator = c.Separator
	}
	if account.GroupNumber == "" {
		account.GroupNumber = defaultGroupNumber(account.Number)
	}
	c.accounts[account.Number] = account
}

// AddSector registers a sector
func (c *Chart) AddSector(code, name, parentCode string) *Sector {
	sector := &Sector{Code: code, Name: name, ParentCode: parentCode}
	c.sectors[code] = sector
	return sector
}

// AddCurrency registers a currency
func (c *Chart) AddCurrency(currency Currency) {
	c.currencies[currency.Code] = currency
}

// Account finds an account by number
func (c *Chart) Account(number string) (*StandardAccount, bool) {
	account, ok := c.accounts[number]
	return account, ok
}

// Sector finds a sector by code
func (c *Chart) Sector(code string) (*Sector, bool) {
	sector, ok := c.sectors[code]
	return sector, ok
}

// Currency finds a currency by code
func (c *Chart) Currency(code string) (Currency, bool) {
	currency, ok := c.currencies[code]
	return currency, ok
}

// Accounts returns the accounts ordered by number
func (c *Chart) Accounts() []*StandardAccount {
	accounts := make([]*StandardAccount, 0, len(c.accounts))
	for _, account := range c.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Number < accounts[j].Number })
	return accounts
}

// AccountParent returns the parent account. A parent number missing from the
// chart yields a placeholder carrying the child's nature and group.
func (c *Chart) AccountParent(account *StandardAccount) (*StandardAccount, bool) {
	number, ok := account.ParentNumber()
	if !ok {
		return nil, false
	}
	if parent, found := c.accounts[number]; found {
		return parent, true
	}
	return &StandardAccount{
		Number:         number,
		DebtorCreditor: account.DebtorCreditor,
		GroupNumber:    account.GroupNumber,
		Separator:      account.separator(),
	}, true
}

// SectorParent returns the parent sector, the root for top-level sectors
func (c *Chart) SectorParent(sector *Sector) *Sector {
	if sector.IsRoot() || sector.ParentCode == "" {
		return EmptySector
	}
	if parent, ok := c.sectors[sector.ParentCode]; ok {
		return parent
	}
	return EmptySector
}

var _ ReferenceData = (*Chart)(nil)
