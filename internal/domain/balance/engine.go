package balance

import (
	"context"
	"fmt"

	"github.com/erp/financial-accounting/internal/domain/shared"
)

// TrialBalance is the result of one build. Exactly one of Entries,
// Comparatives or Analytics is populated, depending on the report type.
type TrialBalance struct {
	Command      Command
	Columns      []Column
	Entries      []*Entry
	Comparatives []*ComparativeEntry
	Analytics    []*AnalyticEntry
}

// Len returns the number of rows of the populated section
func (tb *TrialBalance) Len() int {
	return len(tb.Entries) + len(tb.Comparatives) + len(tb.Analytics)
}

func (p *pipeline) result(rows []*Entry) *TrialBalance {
	return &TrialBalance{Command: p.cmd, Entries: rows}
}

// Engine builds trial balances. It holds no per-request state and may be
// shared by concurrent requests.
type Engine struct {
	postings PostingEntryReader
	rates    ExchangeRateProvider
	refs     ReferenceDataLoader
	variants VariantTable
	defaults ValuationDefaults
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithValuationDefaults overrides the default valuation rate type and base currency
func WithValuationDefaults(d ValuationDefaults) EngineOption {
	return func(e *Engine) {
		if d.RateTypeUID != "" {
			e.defaults.RateTypeUID = d.RateTypeUID
		}
		if d.BaseCurrency != "" {
			e.defaults.BaseCurrency = d.BaseCurrency
		}
	}
}

// WithVariants replaces the variant table
func WithVariants(t VariantTable) EngineOption {
	return func(e *Engine) {
		e.variants = t
	}
}

// NewEngine creates an engine over its collaborators
func NewEngine(postings PostingEntryReader, rates ExchangeRateProvider, refs ReferenceDataLoader, opts ...EngineOption) *Engine {
	e := &Engine{
		postings: postings,
		rates:    rates,
		refs:     refs,
		variants: DefaultVariants(),
		defaults: DefaultValuation(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildTrialBalance validates the command, selects the variant of its type
// and runs it. Any failure aborts the build; no partial result is returned.
func (e *Engine) BuildTrialBalance(ctx context.Context, cmd *Command) (*TrialBalance, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	variant, err := e.variants.Lookup(cmd.TrialBalanceType)
	if err != nil {
		return nil, err
	}

	refs, err := e.refs.LoadReferenceData(ctx, cmd.AccountsChartUID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts chart %s: %w", cmd.AccountsChartUID, err)
	}

	p := newPipeline(*cmd, variant, refs, e.postings, e.rates, e.defaults)

	tb, err := variant.build(ctx, p)
	if err != nil {
		return nil, err
	}

	columns, err := dataColumns(&p.cmd, variant)
	if err != nil {
		return nil, err
	}
	tb.Columns = columns
	return tb, nil
}

// Columns returns the column schema of a command without building it
func (e *Engine) Columns(cmd *Command) ([]Column, error) {
	if cmd == nil {
		return nil, shared.InvalidCommand("trial balance command is required")
	}
	variant, err := e.variants.Lookup(cmd.TrialBalanceType)
	if err != nil {
		return nil, err
	}
	return dataColumns(cmd, variant)
}

// Variant returns the variant registered for a report type
func (e *Engine) Variant(t TrialBalanceType) (Variant, error) {
	return e.variants.Lookup(t)
}
