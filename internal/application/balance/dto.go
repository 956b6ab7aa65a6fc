package balance

import (
	"time"

	"github.com/erp/financial-accounting/internal/domain/balance"
	"github.com/erp/financial-accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DateLayout is the layout of every date accepted by the API
const DateLayout = "2006-01-02"

// ===================== Request DTOs =====================

// PeriodRequest is a reporting period as received over HTTP
type PeriodRequest struct {
	FromDate            string `json:"fromDate" binding:"required,datetime=2006-01-02"`
	ToDate              string `json:"toDate" binding:"required,datetime=2006-01-02"`
	ExchangeRateDate    string `json:"exchangeRateDate" binding:"omitempty,datetime=2006-01-02"`
	ExchangeRateTypeUID string `json:"exchangeRateTypeUID" binding:"omitempty,max=36"`
	ValuateToCurrency   string `json:"valuateToCurrency" binding:"omitempty,max=10"`
	UseDefaultValuation bool   `json:"useDefaultValuation"`
}

// TrialBalanceRequest is the body of a trial balance build
type TrialBalanceRequest struct {
	AccountsChartUID string `json:"accountsChartUID" binding:"omitempty,max=36"`
	TrialBalanceType string `json:"trialBalanceType" binding:"required"`
	BalancesType     string `json:"balancesType"`

	InitialPeriod PeriodRequest  `json:"initialPeriod" binding:"required"`
	FinalPeriod   *PeriodRequest `json:"finalPeriod"`

	Ledgers          []string `json:"ledgers"`
	Currencies       []string `json:"currencies"`
	Sectors          []string `json:"sectors"`
	FromAccount      string   `json:"fromAccount"`
	ToAccount        string   `json:"toAccount"`
	SubledgerAccount string   `json:"subledgerAccount"`

	Level int `json:"level" binding:"min=0"`

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

// ToCommand converts the request into a domain command
func (r *TrialBalanceRequest) ToCommand() (*balance.Command, error) {
	initial, err := r.InitialPeriod.toPeriod("initialPeriod")
	if err != nil {
		return nil, err
	}
	var final balance.Period
	if r.FinalPeriod != nil {
		if final, err = r.FinalPeriod.toPeriod("finalPeriod"); err != nil {
			return nil, err
		}
	}

	balancesType := balance.BalancesType(r.BalancesType)
	if balancesType == "" {
		balancesType = balance.BalancesAllAccounts
	}

	return &balance.Command{
		AccountsChartUID:                    r.AccountsChartUID,
		TrialBalanceType:                    balance.TrialBalanceType(r.TrialBalanceType),
		BalancesType:                        balancesType,
		InitialPeriod:                       initial,
		FinalPeriod:                         final,
		Ledgers:                             r.Ledgers,
		Currencies:                          r.Currencies,
		Sectors:                             r.Sectors,
		FromAccount:                         r.FromAccount,
		ToAccount:                           r.ToAccount,
		SubledgerAccount:                    r.SubledgerAccount,
		Level:                               r.Level,
		Consolidated:                        r.Consolidated,
		ValuateBalances:                     r.ValuateBalances,
		ConsolidateBalancesToTargetCurrency: r.ConsolidateBalancesToTargetCurrency,
		WithSubledgerAccount:                r.WithSubledgerAccount,
		UseNewSectorizationModel:            r.UseNewSectorizationModel,
		WithSectorization:                   r.WithSectorization,
		ShowCascadeBalances:                 r.ShowCascadeBalances,
		WithAverageBalance:                  r.WithAverageBalance,
		IsOperationalReport:                 r.IsOperationalReport,
		ReturnLedgerColumn:                  r.ReturnLedgerColumn,
	}, nil
}

func (p PeriodRequest) toPeriod(name string) (balance.Period, error) {
	from, err := parseDate(name+".fromDate", p.FromDate)
	if err != nil {
		return balance.Period{}, err
	}
	to, err := parseDate(name+".toDate", p.ToDate)
	if err != nil {
		return balance.Period{}, err
	}
	rateDate := to
	if p.ExchangeRateDate != "" {
		if rateDate, err = parseDate(name+".exchangeRateDate", p.ExchangeRateDate); err != nil {
			return balance.Period{}, err
		}
	}
	return balance.Period{
		FromDate:            from,
		ToDate:              to,
		ExchangeRateDate:    rateDate,
		ExchangeRateTypeUID: p.ExchangeRateTypeUID,
		ValuateToCurrency:   p.ValuateToCurrency,
		UseDefaultValuation: p.UseDefaultValuation,
	}, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, shared.InvalidCommand("%s must be a date formatted as %s", field, DateLayout)
	}
	return t, nil
}

// ===================== Response DTOs =====================

// EntryResponse is one row of a traditional trial balance
type EntryResponse struct {
	ItemType               string          `json:"itemType"`
	LedgerNumber           string          `json:"ledgerNumber,omitempty"`
	LedgerName             string          `json:"ledgerName,omitempty"`
	CurrencyCode           string          `json:"currencyCode,omitempty"`
	CurrencyName           string          `json:"currencyName,omitempty"`
	AccountNumber          string          `json:"accountNumber"`
	AccountName            string          `json:"accountName"`
	Level                  int             `json:"level"`
	SectorCode             string          `json:"sectorCode"`
	SubledgerAccountNumber string          `json:"subledgerAccountNumber,omitempty"`
	SubledgerAccountName   string          `json:"subledgerAccountName,omitempty"`
	DebtorCreditor         string          `json:"debtorCreditor"`
	GroupNumber            string          `json:"groupNumber,omitempty"`
	GroupName              string          `json:"groupName,omitempty"`
	InitialBalance         decimal.Decimal `json:"initialBalance"`
	Debit                  decimal.Decimal `json:"debit"`
	Credit                 decimal.Decimal `json:"credit"`
	CurrentBalance         decimal.Decimal `json:"currentBalance"`
	AverageBalance         decimal.Decimal `json:"averageBalance"`
	ExchangeRate           decimal.Decimal `json:"exchangeRate"`
	SecondExchangeRate     decimal.Decimal `json:"secondExchangeRate"`
	LastChangeDate         string          `json:"lastChangeDate,omitempty"`
}

// ComparativeEntryResponse is one row of the valued comparative balance
type ComparativeEntryResponse struct {
	LedgerNumber            string          `json:"ledgerNumber"`
	CurrencyCode            string          `json:"currencyCode"`
	AccountNumber           string          `json:"accountNumber"`
	AccountName             string          `json:"accountName"`
	SectorCode              string          `json:"sectorCode"`
	SubledgerAccountNumber  string          `json:"subledgerAccountNumber,omitempty"`
	SubledgerAccountName    string          `json:"subledgerAccountName,omitempty"`
	DebtorCreditor          string          `json:"debtorCreditor"`
	TotalBalance            decimal.Decimal `json:"totalBalance"`
	ExchangeRate            decimal.Decimal `json:"exchangeRate"`
	ValuedBalance           decimal.Decimal `json:"valuedBalance"`
	Debit                   decimal.Decimal `json:"debit"`
	Credit                  decimal.Decimal `json:"credit"`
	AverageBalance          decimal.Decimal `json:"averageBalance"`
	TotalBalanceComparative decimal.Decimal `json:"totalBalanceComparative"`
	SecondExchangeRate      decimal.Decimal `json:"secondExchangeRate"`
	ValuedComparative       decimal.Decimal `json:"valuedComparative"`
	Variation               decimal.Decimal `json:"variation"`
	VariationByExchangeRate decimal.Decimal `json:"variationByExchangeRate"`
	RealVariation           decimal.Decimal `json:"realVariation"`
}

// AnalyticEntryResponse is one row of the accounts analytic report
type AnalyticEntryResponse struct {
	ItemType               string          `json:"itemType"`
	LedgerNumber           string          `json:"ledgerNumber,omitempty"`
	AccountNumber          string          `json:"accountNumber"`
	AccountName            string          `json:"accountName"`
	SectorCode             string          `json:"sectorCode"`
	SubledgerAccountNumber string          `json:"subledgerAccountNumber,omitempty"`
	SubledgerAccountName   string          `json:"subledgerAccountName,omitempty"`
	DebtorCreditor         string          `json:"debtorCreditor"`
	GroupName              string          `json:"groupName,omitempty"`
	DomesticBalance        decimal.Decimal `json:"domesticBalance"`
	ForeignBalance         decimal.Decimal `json:"foreignBalance"`
	TotalBalance           decimal.Decimal `json:"totalBalance"`
	LastChangeDate         string          `json:"lastChangeDate,omitempty"`
}

// TrialBalanceResponse is the result of a build: the command as executed,
// the column schema and the rows of the populated section.
type TrialBalanceResponse struct {
	Command      balance.Command            `json:"command"`
	Columns      []balance.Column           `json:"columns"`
	RowCount     int                        `json:"rowCount"`
	Entries      []EntryResponse            `json:"entries,omitempty"`
	Comparatives []ComparativeEntryResponse `json:"comparatives,omitempty"`
	Analytics    []AnalyticEntryResponse    `json:"analytics,omitempty"`
}

func toTrialBalanceResponse(tb *balance.TrialBalance) *TrialBalanceResponse {
	resp := &TrialBalanceResponse{
		Command:  tb.Command,
		Columns:  tb.Columns,
		RowCount: tb.Len(),
	}
	if len(tb.Entries) > 0 {
		resp.Entries = make([]EntryResponse, len(tb.Entries))
		for i, e := range tb.Entries {
			resp.Entries[i] = toEntryResponse(e)
		}
	}
	if len(tb.Comparatives) > 0 {
		resp.Comparatives = make([]ComparativeEntryResponse, len(tb.Comparatives))
		for i, c := range tb.Comparatives {
			resp.Comparatives[i] = toComparativeResponse(c)
		}
	}
	if len(tb.Analytics) > 0 {
		resp.Analytics = make([]AnalyticEntryResponse, len(tb.Analytics))
		for i, a := range tb.Analytics {
			resp.Analytics[i] = toAnalyticResponse(a)
		}
	}
	return resp
}

func toEntryResponse(e *balance.Entry) EntryResponse {
	return EntryResponse{
		ItemType:               string(e.ItemType),
		LedgerNumber:           e.Ledger.Number,
		LedgerName:             e.Ledger.Name,
		CurrencyCode:           e.Currency.Code,
		CurrencyName:           e.Currency.Name,
		AccountNumber:          e.AccountNumber(),
		AccountName:            accountName(e.Account),
		Level:                  e.Level(),
		SectorCode:             e.SectorCode(),
		SubledgerAccountNumber: e.SubledgerAccountNumber,
		SubledgerAccountName:   e.SubledgerAccountName,
		DebtorCreditor:         string(e.DebtorCreditor),
		GroupNumber:            e.GroupNumber,
		GroupName:              e.GroupName,
		InitialBalance:         e.InitialBalance,
		Debit:                  e.Debit,
		Credit:                 e.Credit,
		CurrentBalance:         e.CurrentBalance,
		AverageBalance:         e.AverageBalance,
		ExchangeRate:           e.ExchangeRate,
		SecondExchangeRate:     e.SecondExchangeRate,
		LastChangeDate:         formatDate(e.LastChangeDate),
	}
}

func toComparativeResponse(c *balance.ComparativeEntry) ComparativeEntryResponse {
	return ComparativeEntryResponse{
		LedgerNumber:            c.Ledger.Number,
		CurrencyCode:            c.Currency.Code,
		AccountNumber:           c.AccountNumber(),
		AccountName:             accountName(c.Account),
		SectorCode:              sectorCode(c.Sector),
		SubledgerAccountNumber:  c.SubledgerAccountNumber,
		SubledgerAccountName:    c.SubledgerAccountName,
		DebtorCreditor:          string(c.DebtorCreditor),
		TotalBalance:            c.TotalBalance,
		ExchangeRate:            c.ExchangeRate,
		ValuedBalance:           c.ValuedBalance,
		Debit:                   c.Debit,
		Credit:                  c.Credit,
		AverageBalance:          c.AverageBalance,
		TotalBalanceComparative: c.TotalBalanceComparative,
		SecondExchangeRate:      c.SecondExchangeRate,
		ValuedComparative:       c.ValuedComparative,
		Variation:               c.Variation,
		VariationByExchangeRate: c.VariationByExchangeRate,
		RealVariation:           c.RealVariation,
	}
}

func toAnalyticResponse(a *balance.AnalyticEntry) AnalyticEntryResponse {
	number := ""
	if a.Account != nil {
		number = a.Account.Number
	}
	return AnalyticEntryResponse{
		ItemType:               string(a.ItemType),
		LedgerNumber:           a.Ledger.Number,
		AccountNumber:          number,
		AccountName:            accountName(a.Account),
		SectorCode:             sectorCode(a.Sector),
		SubledgerAccountNumber: a.SubledgerAccountNumber,
		SubledgerAccountName:   a.SubledgerAccountName,
		DebtorCreditor:         string(a.DebtorCreditor),
		GroupName:              a.GroupName,
		DomesticBalance:        a.DomesticBalance,
		ForeignBalance:         a.ForeignBalance,
		TotalBalance:           a.TotalBalance,
		LastChangeDate:         formatDate(a.LastChangeDate),
	}
}

func accountName(a *balance.StandardAccount) string {
	if a == nil {
		return ""
	}
	return a.Name
}

func sectorCode(s *balance.Sector) string {
	if s == nil || s.Code == "" {
		return balance.RootSectorCode
	}
	return s.Code
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
