package balance

import (
	"time"

	"github.com/erp/financial-accounting/internal/domain/shared"
)

// Period is a reporting period and its valuation parameters
type Period struct {
	FromDate            time.Time `json:"fromDate"`
	ToDate              time.Time `json:"toDate"`
	ExchangeRateDate    time.Time `json:"exchangeRateDate"`
	ExchangeRateTypeUID string    `json:"exchangeRateTypeUID"`
	ValuateToCurrency   string    `json:"valuateToCurrency"`
	UseDefaultValuation bool      `json:"useDefaultValuation"`
}

// IsZero reports whether the period was not provided
func (p Period) IsZero() bool {
	return p.FromDate.IsZero() && p.ToDate.IsZero()
}

// Days returns the number of calendar days covered, inclusive
func (p Period) Days() int {
	return daysBetween(p.FromDate, p.ToDate) + 1
}

// Command carries the parameters of one trial balance request
type Command struct {
	AccountsChartUID string           `json:"accountsChartUID"`
	TrialBalanceType TrialBalanceType `json:"trialBalanceType"`
	BalancesType     BalancesType     `json:"balancesType"`

	InitialPeriod Period `json:"initialPeriod"`
	FinalPeriod   Period `json:"finalPeriod"`

	Ledgers          []string `json:"ledgers,omitempty"`
	Currencies       []string `json:"currencies,omitempty"`
	Sectors          []string `json:"sectors,omitempty"`
	FromAccount      string   `json:"fromAccount,omitempty"`
	ToAccount        string   `json:"toAccount,omitempty"`
	SubledgerAccount string   `json:"subledgerAccount,omitempty"`

	Level int `json:"level"`

	Consolidated                        bool `json:"consolidated"`
	ValuateBalances                     bool `json:"valuateBalances"`
	ConsolidateBalancesToTargetCurrency bool `json:"consolidateBalancesToTargetCurrency"`
	WithSubledgerAccount                bool `json:"withSubledgerAccount"`
	UseNewSectorizationModel            bool `json:"useNewSectorizationModel"`
	WithSectorization                   bool `json:"withSectorization"`
	ShowCascadeBalances                 bool `json:"showCascadeBalances"`
	WithAverageBalance                  bool `json:"withAverageBalance"`
	IsOperationalReport                 bool `json:"isOperationalReport"`
	ReturnLedgerColumn                  bool `json:"returnLedgerColumn"`
}

// Validate checks the preconditions of a build request
func (c *Command) Validate() error {
	if c == nil {
		return shared.InvalidCommand("trial balance command is required")
	}
	if c.AccountsChartUID == "" {
		return shared.InvalidCommand("accounts chart is required")
	}
	if !c.TrialBalanceType.IsValid() {
		return shared.InvalidCommand("unknown trial balance type %q", c.TrialBalanceType)
	}
	if c.BalancesType != "" && !c.BalancesType.IsValid() {
		return shared.InvalidCommand("unknown balances type %q", c.BalancesType)
	}
	if c.Level < 0 {
		return shared.InvalidCommand("level must not be negative")
	}
	if err := validatePeriod("initial", c.InitialPeriod); err != nil {
		return err
	}
	if c.ValuateBalances && !c.InitialPeriod.UseDefaultValuation {
		if c.InitialPeriod.ValuateToCurrency == "" || c.InitialPeriod.ExchangeRateTypeUID == "" {
			return shared.InvalidCommand("valuation requires a target currency and an exchange rate type")
		}
	}
	if c.ConsolidateBalancesToTargetCurrency && !c.ValuateBalances && !c.InitialPeriod.UseDefaultValuation {
		return shared.InvalidCommand("currency consolidation requires valuation")
	}
	if c.TrialBalanceType == TypeBalanzaValorizadaComparativa {
		if c.FinalPeriod.IsZero() {
			return shared.InvalidCommand("comparative balance requires a final period")
		}
		if err := validatePeriod("final", c.FinalPeriod); err != nil {
			return err
		}
	}
	return nil
}

func validatePeriod(name string, p Period) error {
	if p.FromDate.IsZero() || p.ToDate.IsZero() {
		return shared.InvalidCommand("%s period dates are required", name)
	}
	if p.ToDate.Before(p.FromDate) {
		return shared.InvalidCommand("%s period ends before it starts", name)
	}
	return nil
}
