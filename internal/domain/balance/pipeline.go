package balance

import (
	"context"
	"fmt"

	"github.com/erp/financial-accounting/internal/domain/shared"
)

// pipeline holds the state of one build request. Every accumulator created
// during a run is owned by its pipeline and discarded with it.
type pipeline struct {
	cmd      Command
	variant  Variant
	refs     ReferenceData
	postings PostingEntryReader
	rates    ExchangeRateProvider
	defaults ValuationDefaults
}

func newPipeline(cmd Command, variant Variant, refs ReferenceData, postings PostingEntryReader,
	rates ExchangeRateProvider, defaults ValuationDefaults) *pipeline {
	if variant.ForceSubledgerAccounts {
		cmd.WithSubledgerAccount = true
	}
	if variant.Cascade {
		cmd.ShowCascadeBalances = true
	}
	return &pipeline{
		cmd:      cmd,
		variant:  variant,
		refs:     refs,
		postings: postings,
		rates:    rates,
		defaults: defaults,
	}
}

// postingEntries fetches, values, consolidates and rounds the posting rows
// of a period.
func (p *pipeline) postingEntries(ctx context.Context, period Period, second bool) ([]*Entry, error) {
	entries, err := p.postings.FetchPostingEntries(ctx, NewPostingQuery(&p.cmd, period))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posting entries: %w", err)
	}
	for _, entry := range entries {
		if entry.Sector == nil {
			entry.Sector = EmptySector
		}
		if entry.ItemType == "" {
			entry.ItemType = ItemEntry
		}
	}

	if p.variant.valuation != valuationSkipped && (p.cmd.ValuateBalances || period.UseDefaultValuation) {
		mode := p.variant.valuationMode(&p.cmd, second)
		req := p.defaults.requestFor(period)

		if err := Valuate(ctx, entries, p.rates, req, mode); err != nil {
			return nil, err
		}

		if p.cmd.ConsolidateBalancesToTargetCurrency {
			target, ok := p.refs.Currency(req.TargetCurrency)
			if !ok {
				return nil, shared.InvalidCommand("unknown target currency %q", req.TargetCurrency)
			}
			entries = ConsolidateToTargetCurrency(entries, target)
		}
	}

	return RoundEntries(entries), nil
}

// accountParent returns the parent of account or nil at the top
func (p *pipeline) accountParent(account *StandardAccount) *StandardAccount {
	parent, ok := p.refs.AccountParent(account)
	if !ok {
		return nil
	}
	return parent
}

func (p *pipeline) sectorParent(sector *Sector) *Sector {
	if sector.IsRoot() {
		return EmptySector
	}
	return p.refs.SectorParent(sector)
}

// summaryAndPostingEntries runs the shared first half of every builder
func (p *pipeline) summaryAndPostingEntries(ctx context.Context) ([]*Entry, []*Entry, error) {
	postings, err := p.postingEntries(ctx, p.cmd.InitialPeriod, false)
	if err != nil {
		return nil, nil, err
	}
	summaries := p.generateSummaryEntries(postings)
	summaries = p.summaryEntriesAndSectorization(summaries)

	return p.combineSummaryAndPostingEntries(summaries, postings), postings, nil
}
