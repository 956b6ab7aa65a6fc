package balance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/financial-accounting/internal/domain/shared"
)

func TestEngine_BuildTrialBalance_Balanza(t *testing.T) {
	ctx := context.Background()

	t.Run("children roll up into their parent", func(t *testing.T) {
		chart := testChart()
		postings := newFakePostings(
			posting(chart, testLedger, testPesos, "1010.01", "00", 0, 50, 0),
			posting(chart, testLedger, testPesos, "1010.02", "00", 0, 50, 0),
		)
		engine := newTestEngine(chart, postings, nil)

		tb, err := engine.BuildTrialBalance(ctx, newCommand(TypeBalanza))
		require.NoError(t, err)

		parent := findRow(tb.Entries, ItemSummary, "1010", RootSectorCode)
		require.NotNil(t, parent)
		assert.True(t, dec(100).Equal(parent.CurrentBalance))

		types := make([]ItemType, 0, len(tb.Entries))
		for _, row := range tb.Entries {
			types = append(types, row.ItemType)
		}
		assert.Equal(t, []ItemType{
			ItemSummary, ItemEntry, ItemEntry, ItemTotalGroupDebtor, ItemTotalDebtor, ItemTotalCurrency,
			ItemTotalConsolidated,
		}, types)
		assert.NotEmpty(t, tb.Columns)
	})

	t.Run("creditor totals are subtracted from the currency total", func(t *testing.T) {
		chart := testChart()
		postings := newFakePostings(
			posting(chart, testLedger, testPesos, "1010.01", "00", 0, 100, 0),
			posting(chart, testLedger, testPesos, "2010.01", "00", 0, 0, 30),
		)
		engine := newTestEngine(chart, postings, nil)

		tb, err := engine.BuildTrialBalance(ctx, newCommand(TypeBalanza))
		require.NoError(t, err)

		debtor := rowsOfType(tb.Entries, ItemTotalDebtor)
		creditor := rowsOfType(tb.Entries, ItemTotalCreditor)
		currency := rowsOfType(tb.Entries, ItemTotalCurrency)
		consolidated := rowsOfType(tb.Entries, ItemTotalConsolidated)
		require.Len(t, debtor, 1)
		require.Len(t, creditor, 1)
		require.Len(t, currency, 1)
		require.Len(t, consolidated, 1)

		assert.True(t, dec(100).Equal(debtor[0].CurrentBalance))
		assert.True(t, dec(30).Equal(creditor[0].CurrentBalance))
		assert.True(t, debtor[0].CurrentBalance.Sub(creditor[0].CurrentBalance).Equal(currency[0].CurrentBalance))
		assert.True(t, dec(70).Equal(consolidated[0].CurrentBalance))
		assert.Equal(t, ConsolidatedTotalName, consolidated[0].GroupName)
		assert.Equal(t, "TOTAL MONEDA Pesos (01)", currency[0].GroupName)
	})

	t.Run("consolidated total sums every currency total", func(t *testing.T) {
		chart := testChart()
		postings := newFakePostings(
			posting(chart, testLedger, testPesos, "1010.01", "00", 0, 40, 0),
			posting(chart, testLedger, testDollars, "1010.01", "00", 0, 15, 0),
		)
		engine := newTestEngine(chart, postings, nil)

		tb, err := engine.BuildTrialBalance(ctx, newCommand(TypeBalanza))
		require.NoError(t, err)

		currency := rowsOfType(tb.Entries, ItemTotalCurrency)
		require.Len(t, currency, 2)
		consolidated := rowsOfType(tb.Entries, ItemTotalConsolidated)
		require.Len(t, consolidated, 1)

		sum := currency[0].CurrentBalance.Add(currency[1].CurrentBalance)
		assert.True(t, sum.Equal(consolidated[0].CurrentBalance))
		assert.Same(t, consolidated[0], tb.Entries[len(tb.Entries)-1])
	})

	t.Run("sectored entries roll up to the unsectored top row", func(t *testing.T) {
		chart := testChart()
		postings := newFakePostings(
			posting(chart, testLedger, testPesos, "1010.01", "01", 0, 80, 0),
		)
		engine := newTestEngine(chart, postings, nil)

		tb, err := engine.BuildTrialBalance(ctx, newCommand(TypeBalanza))
		require.NoError(t, err)

		sectored := findRow(tb.Entries, ItemSummary, "1010", "01")
		unsectored := findRow(tb.Entries, ItemSummary, "1010", RootSectorCode)
		require.NotNil(t, sectored)
		require.NotNil(t, unsectored)
		assert.True(t, dec(80).Equal(sectored.CurrentBalance))
		assert.True(t, dec(80).Equal(unsectored.CurrentBalance))
		assert.True(t, unsectored.LastChangeDate.Equal(januaryTo))
	})

	t.Run("top-level postings produce no summary rows", func(t *testing.T) {
		chart := testChart()
		postings := newFakePostings(
			posting(chart, testLedger, testPesos, "1010", "00", 0, 100, 0),
			posting(chart, testLedger, testPesos, "1010", "00", 0, 0, 30),
		)
		engine := newTestEngine(chart, postings, nil)

		tb, err := engine.BuildTrialBalance(ctx, newCommand(TypeBalanza))
		require.NoError(t, err)

		assert.Empty(t, rowsOfType(tb.Entries, ItemSummary))
		assert.Len(t, rowsOfType(tb.Entries, ItemEntry), 2)
		consolidated := rowsOfType(tb.Entries, ItemTotalConsolidated)
		require.Len(t, consolidated, 1)
		assert.True(t, dec(70).Equal(consolidated[0].CurrentBalance))
	})

	t.Run("sectored top-level postings feed the unsectored top row", func(t *testing.T) {
		chart := testChart()
		postings := newFakePostings(
			posting(chart, testLedger, testPesos, "1010", "01", 0, 100, 0),
		)
		engine := newTestEngine(chart, postings, nil)

		tb, err := engine.BuildTrialBalance(ctx, newCommand(TypeBalanza))
		require.NoError(t, err)

		unsectored := findRow(tb.Entries, ItemSummary, "1010", RootSectorCode)
		require.NotNil(t, unsectored)
		assert.True(t, dec(100).Equal(unsectored.CurrentBalance))
		assert.Nil(t, findRow(tb.Entries, ItemSummary, "1010", "01"))
		assert.NotNil(t, findRow(tb.Entries, ItemEntry, "1010", "01"))
	})

	t.Run("level cutoff removes deeper rows", func(t *testing.T) {
		chart := testChart()
		postings := newFakePostings(
			posting(chart, testLedger, testPesos, "1010.01", "00", 0, 50, 0),
		)
		engine := newTestEngine(chart, postings, nil)
		cmd := newCommand(TypeBalanza)
		cmd.Level = 1

		tb, err := engine.BuildTrialBalance(ctx, cmd)
		require.NoError(t, err)

		assert.Empty(t, rowsOfType(tb.Entries, ItemEntry))
		assert.NotNil(t, findRow(tb.Entries, ItemSummary, "1010", RootSectorCode))
	})

	t.Run("ledger totals when showing cascade balances", func(t *testing.T) {
		chart := testChart()
		postings := newFakePostings(
			posting(chart, testLedger, testPesos, "1010.01", "00", 0, 50, 0),
			posting(chart, testLedger2, testPesos, "1010.01", "00", 0, 25, 0),
		)
		engine := newTestEngine(chart, postings, nil)
		cmd := newCommand(TypeBalanza)
		cmd.ShowCascadeBalances = true

		tb, err := engine.BuildTrialBalance(ctx, cmd)
		require.NoError(t, err)

		byLedger := rowsOfType(tb.Entries, ItemTotalConsolidatedByLedger)
		require.Len(t, byLedger, 2)
		assert.Equal(t, "TOTAL CONSOLIDADO Corporativo", byLedger[0].GroupName)
		assert.True(t, dec(50).Equal(byLedger[0].CurrentBalance))
		assert.True(t, dec(25).Equal(byLedger[1].CurrentBalance))

		consolidated := rowsOfType(tb.Entries, ItemTotalConsolidated)
		require.Len(t, consolidated, 1)
		assert.True(t, dec(75).Equal(consolidated[0].CurrentBalance))
	})
}

func TestEngine_BuildTrialBalance_GroupTotals(t *testing.T) {
	chart := testChart()
	postings := newFakePostings(
		posting(chart, testLedger, testPesos, "1010.01", "00", 0, 100, 0),
		posting(chart, testLedger, testPesos, "2010.01", "00", 0, 0, 30),
		posting(chart, testLedger, testDollars, "1010.01", "00", 0, 15, 0),
	)
	engine := newTestEngine(chart, postings, nil)

	tb, err := engine.BuildTrialBalance(context.Background(), newCommand(TypeBalanza))
	require.NoError(t, err)

	debtor := rowsOfType(tb.Entries, ItemTotalGroupDebtor)
	creditor := rowsOfType(tb.Entries, ItemTotalGroupCreditor)
	require.Len(t, debtor, 2)
	require.Len(t, creditor, 1)

	tests := []struct {
		name     string
		row      *Entry
		group    string
		nature   DebtorCreditor
		currency Currency
		balance  float64
	}{
		{"debtor pesos", debtor[0], "1", Debtor, testPesos, 100},
		{"debtor dollars", debtor[1], "1", Debtor, testDollars, 15},
		{"creditor pesos", creditor[0], "2", Creditor, testPesos, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.group, tt.row.GroupNumber)
			assert.Equal(t, "TOTAL GRUPO "+tt.group, tt.row.GroupName)
			assert.Equal(t, tt.nature, tt.row.DebtorCreditor)
			assert.Equal(t, tt.currency, tt.row.Currency)
			assert.True(t, dec(tt.balance).Equal(tt.row.CurrentBalance))
			assert.True(t, tt.row.Ledger.IsEmpty())
		})
	}

	t.Run("each group total follows the rows of its group", func(t *testing.T) {
		following := func(account string, currency Currency) *Entry {
			for i, row := range tb.Entries {
				if row.ItemType == ItemEntry && row.AccountNumber() == account && row.Currency == currency {
					require.Less(t, i+1, len(tb.Entries))
					return tb.Entries[i+1]
				}
			}
			return nil
		}
		assert.Same(t, debtor[0], following("1010.01", testPesos))
		assert.Same(t, creditor[0], following("2010.01", testPesos))
		assert.Same(t, debtor[1], following("1010.01", testDollars))
	})
}

func TestEngine_BuildTrialBalance_Sectorization(t *testing.T) {
	chart := testChart()
	chart.AddAccount("1010.01.01", "Caja general moneda nacional", Debtor)

	tests := []struct {
		name              string
		newModel          bool
		withSectorization bool
		want              []string
	}{
		{
			name:              "new model with sectorization",
			newModel:          true,
			withSectorization: true,
			want: []string{
				"1010/00", "1010/01", "1010/0101",
				"1010.01/00", "1010.01/01", "1010.01/0101",
			},
		},
		{
			name:     "new model without sectorization drops the lone unsectored sibling",
			newModel: true,
			want:     []string{"1010/00", "1010/0101", "1010.01/0101"},
		},
		{
			name:              "previous model with sectorization",
			withSectorization: true,
			want:              []string{"1010/00", "1010/01", "1010/0101", "1010.01/0101"},
		},
		{
			name: "previous model without sectorization",
			want: []string{"1010/00", "1010/0101", "1010.01/0101"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postings := newFakePostings(
				posting(chart, testLedger, testPesos, "1010.01.01", "0101", 0, 100, 0),
			)
			engine := newTestEngine(chart, postings, nil)
			cmd := newCommand(TypeBalanza)
			cmd.UseNewSectorizationModel = tt.newModel
			cmd.WithSectorization = tt.withSectorization

			tb, err := engine.BuildTrialBalance(context.Background(), cmd)
			require.NoError(t, err)

			summaries := rowsOfType(tb.Entries, ItemSummary)
			got := make([]string, 0, len(summaries))
			for _, row := range summaries {
				got = append(got, row.AccountNumber()+"/"+row.SectorCode())
				assert.True(t, dec(100).Equal(row.CurrentBalance), "%s/%s", row.AccountNumber(), row.SectorCode())
			}
			assert.Equal(t, tt.want, got)

			entry := findRow(tb.Entries, ItemEntry, "1010.01.01", "0101")
			require.NotNil(t, entry)
			assert.True(t, dec(100).Equal(entry.CurrentBalance))
		})
	}
}

func TestEngine_BuildTrialBalance_Cascade(t *testing.T) {
	chart := testChart()
	postings := newFakePostings(
		posting(chart, testLedger, testPesos, "1010.01", "00", 0, 100, 0),
		posting(chart, testLedger, testPesos, "2010.01", "00", 0, 0, 30),
	)
	engine := newTestEngine(chart, postings, nil)

	tb, err := engine.BuildTrialBalance(context.Background(), newCommand(TypeBalanzaConContabilidadesEnCascada))
	require.NoError(t, err)

	currency := rowsOfType(tb.Entries, ItemTotalCurrency)
	require.Len(t, currency, 1)
	assert.True(t, dec(130).Equal(currency[0].CurrentBalance), "creditor sign is kept")

	consolidated := rowsOfType(tb.Entries, ItemTotalConsolidated)
	require.Len(t, consolidated, 1)
	assert.Equal(t, ReportTotalName, consolidated[0].GroupName)

	assert.Len(t, rowsOfType(tb.Entries, ItemTotalGroupDebtor), 1)
	assert.Len(t, rowsOfType(tb.Entries, ItemTotalGroupCreditor), 1)
	assert.Equal(t, "ledgerNumber", tb.Columns[0].Field)
}

func TestEngine_BuildTrialBalance_Operational(t *testing.T) {
	chart := testChart()
	postings := newFakePostings(
		posting(chart, testLedger, testPesos, "1010.01", "00", 0, 31, 0),
		posting(chart, testLedger2, testPesos, "1010.01", "00", 0, 31, 0),
	)
	engine := newTestEngine(chart, postings, nil)
	cmd := newCommand(TypeBalanza)
	cmd.IsOperationalReport = true
	cmd.WithAverageBalance = true

	tb, err := engine.BuildTrialBalance(context.Background(), cmd)
	require.NoError(t, err)

	require.Len(t, tb.Entries, 2)
	assert.Equal(t, "1010", tb.Entries[0].AccountNumber())
	assert.True(t, dec(62).Equal(tb.Entries[0].CurrentBalance))
	assert.True(t, dec(2).Equal(tb.Entries[0].AverageBalance))
	assert.Equal(t, "1010.01", tb.Entries[1].AccountNumber())
	assert.True(t, dec(62).Equal(tb.Entries[1].CurrentBalance))
	assert.Empty(t, rowsOfType(tb.Entries, ItemTotalConsolidated))
}

func TestEngine_BuildTrialBalance_Valuation(t *testing.T) {
	ctx := context.Background()

	valuated := func() *Command {
		cmd := newCommand(TypeBalanza)
		cmd.ValuateBalances = true
		cmd.InitialPeriod.ValuateToCurrency = testPesos.Code
		cmd.InitialPeriod.ExchangeRateTypeUID = "rate-type"
		return cmd
	}

	t.Run("missing rate fails the build", func(t *testing.T) {
		chart := testChart()
		postings := newFakePostings(
			posting(chart, testLedger, testDollars, "1010.01", "00", 0, 10, 0),
		)
		engine := newTestEngine(chart, postings, newFakeRates())

		tb, err := engine.BuildTrialBalance(ctx, valuated())

		assert.Nil(t, tb)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrMissingExchangeRate))
		assert.Contains(t, err.Error(), "Dólares (02)")
	})

	t.Run("foreign rows are multiplied and consolidated", func(t *testing.T) {
		chart := testChart()
		postings := newFakePostings(
			posting(chart, testLedger, testPesos, "1010.01", "00", 0, 100, 0),
			posting(chart, testLedger, testDollars, "1010.01", "00", 0, 10, 0),
		)
		rates := newFakeRates().set(testDollars.Code, januaryTo, 17.5)
		engine := newTestEngine(chart, postings, rates)
		cmd := valuated()
		cmd.ConsolidateBalancesToTargetCurrency = true

		tb, err := engine.BuildTrialBalance(ctx, cmd)
		require.NoError(t, err)

		entries := rowsOfType(tb.Entries, ItemEntry)
		require.Len(t, entries, 1)
		assert.Equal(t, testPesos, entries[0].Currency)
		assert.True(t, dec(275).Equal(entries[0].CurrentBalance))
		assert.Len(t, rowsOfType(tb.Entries, ItemTotalCurrency), 1)
	})

	t.Run("operational reports only display the rate", func(t *testing.T) {
		chart := testChart()
		postings := newFakePostings(
			posting(chart, testLedger, testDollars, "1010.01", "00", 0, 10, 0),
		)
		rates := newFakeRates().set(testDollars.Code, januaryTo, 17.5)
		engine := newTestEngine(chart, postings, rates)
		cmd := valuated()
		cmd.IsOperationalReport = true

		tb, err := engine.BuildTrialBalance(ctx, cmd)
		require.NoError(t, err)

		row := findRow(tb.Entries, ItemEntry, "1010.01", RootSectorCode)
		require.NotNil(t, row)
		assert.True(t, dec(10).Equal(row.CurrentBalance))
		assert.True(t, dec(17.5).Equal(row.ExchangeRate))
	})
}

func TestEngine_BuildTrialBalance_SaldosPorAuxiliar(t *testing.T) {
	chart := testChart()
	first := posting(chart, testLedger, testPesos, "1010.01", "00", 0, 40, 0)
	first.SubledgerAccountID = 7
	first.SubledgerAccountNumber = "7"
	second := posting(chart, testLedger, testPesos, "1010.01", "00", 0, 60, 0)
	second.SubledgerAccountID = 8
	second.SubledgerAccountNumber = "8"
	engine := newTestEngine(chart, newFakePostings(first, second), nil)

	tb, err := engine.BuildTrialBalance(context.Background(), newCommand(TypeSaldosPorAuxiliar))
	require.NoError(t, err)

	require.Len(t, tb.Entries, 6)
	for _, row := range tb.Entries {
		assert.Equal(t, ItemBalanceSummary, row.ItemType)
	}

	total8 := tb.Entries[0]
	assert.Equal(t, int64(8), total8.SubledgerAccountID)
	assert.Equal(t, "8", total8.SubledgerAccountNumber)
	assert.True(t, dec(60).Equal(total8.CurrentBalance))
	assert.Equal(t, "1010", tb.Entries[1].AccountNumber())
	assert.Equal(t, "1010.01", tb.Entries[2].AccountNumber())
	assert.Equal(t, int64(8), tb.Entries[2].SubledgerAccountIDParent)

	total7 := tb.Entries[3]
	assert.Equal(t, int64(7), total7.SubledgerAccountID)
	assert.True(t, dec(40).Equal(total7.CurrentBalance))

	assert.Equal(t, "Cuenta / Auxiliar", tb.Columns[1].Title)
}

func TestEngine_BuildTrialBalance_Comparative(t *testing.T) {
	chart := testChart()
	postings := &fakePostings{byPeriod: map[time.Time][]*Entry{}}
	postings.byPeriod[januaryFrom] = []*Entry{
		posting(chart, testLedger, testDollars, "1010.01", "00", 0, 100, 0),
		posting(chart, testLedger, testPesos, "1010.02", "00", 0, 50, 0),
	}
	postings.byPeriod[februaryFrom] = []*Entry{
		posting(chart, testLedger, testDollars, "1010.01", "00", 100, 20, 0),
		posting(chart, testLedger, testPesos, "1010.02", "00", 50, 0, 0),
	}
	rates := newFakeRates().
		set(testDollars.Code, januaryTo, 17).
		set(testDollars.Code, februaryTo, 18)
	engine := newTestEngine(chart, postings, rates)

	cmd := newCommand(TypeBalanzaValorizadaComparativa)
	cmd.FinalPeriod = Period{FromDate: februaryFrom, ToDate: februaryTo}

	tb, err := engine.BuildTrialBalance(context.Background(), cmd)
	require.NoError(t, err)

	require.Len(t, tb.Comparatives, 2)
	assert.Empty(t, tb.Entries)

	pesos := tb.Comparatives[0]
	assert.Equal(t, testPesos, pesos.Currency)
	assert.True(t, pesos.Variation.IsZero())

	dollars := tb.Comparatives[1]
	assert.Equal(t, testDollars, dollars.Currency)
	assert.True(t, dec(100).Equal(dollars.TotalBalance))
	assert.True(t, dec(17).Equal(dollars.ExchangeRate))
	assert.True(t, dec(1700).Equal(dollars.ValuedBalance))
	assert.True(t, dec(120).Equal(dollars.TotalBalanceComparative))
	assert.True(t, dec(18).Equal(dollars.SecondExchangeRate))
	assert.True(t, dec(2160).Equal(dollars.ValuedComparative))
	assert.True(t, dec(20).Equal(dollars.Debit))
	assert.True(t, dec(460).Equal(dollars.Variation))
	assert.True(t, dec(120).Equal(dollars.VariationByExchangeRate))
	assert.True(t, dec(340).Equal(dollars.RealVariation))

	assert.Equal(t, "Jan_2024", tb.Columns[6].Title)
	assert.Equal(t, "Feb_2024", tb.Columns[11].Title)
}

func TestEngine_BuildTrialBalance_Analytic(t *testing.T) {
	chart := testChart()
	postings := newFakePostings(
		posting(chart, testLedger, testPesos, "1010.01", "00", 0, 50, 0),
		posting(chart, testLedger, testDollars, "1010.01", "00", 0, 10, 0),
	)
	rates := newFakeRates().set(testDollars.Code, januaryTo, 20)
	engine := newTestEngine(chart, postings, rates)

	tb, err := engine.BuildTrialBalance(context.Background(), newCommand(TypeAnaliticoDeCuentas))
	require.NoError(t, err)

	require.Len(t, tb.Analytics, 2)
	parent := tb.Analytics[0]
	assert.Equal(t, "1010", parent.Account.Number)
	assert.Equal(t, ItemSummary, parent.ItemType)
	assert.True(t, dec(50).Equal(parent.DomesticBalance))
	assert.True(t, dec(200).Equal(parent.ForeignBalance))
	assert.True(t, dec(250).Equal(parent.TotalBalance))

	child := tb.Analytics[1]
	assert.Equal(t, "1010.01", child.Account.Number)
	assert.True(t, dec(250).Equal(child.TotalBalance))

	assert.Equal(t, "totalBalance", tb.Columns[len(tb.Columns)-1].Field)
}

func TestEngine_BuildTrialBalance_Errors(t *testing.T) {
	ctx := context.Background()
	chart := testChart()

	t.Run("unsupported types are invalid commands", func(t *testing.T) {
		engine := newTestEngine(chart, newFakePostings(), nil)
		for _, typ := range []TrialBalanceType{TypeBalanzaDolarizada, TypeBalanzaEnColumnasPorMoneda} {
			_, err := engine.BuildTrialBalance(ctx, newCommand(typ))
			assert.True(t, errors.Is(err, shared.ErrInvalidCommand), typ)
		}
	})

	t.Run("unknown chart is reported", func(t *testing.T) {
		engine := newTestEngine(chart, newFakePostings(), nil)
		cmd := newCommand(TypeBalanza)
		cmd.AccountsChartUID = "other"

		_, err := engine.BuildTrialBalance(ctx, cmd)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("store failures abort the build", func(t *testing.T) {
		postings := newFakePostings()
		postings.err = errors.New("connection reset")
		engine := newTestEngine(chart, postings, nil)

		tb, err := engine.BuildTrialBalance(ctx, newCommand(TypeBalanza))
		assert.Nil(t, tb)
		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("nil command", func(t *testing.T) {
		engine := newTestEngine(chart, newFakePostings(), nil)
		_, err := engine.BuildTrialBalance(ctx, nil)
		assert.True(t, errors.Is(err, shared.ErrInvalidCommand))
	})
}

func TestEngine_BuildTrialBalance_ForcesSubledgerAccounts(t *testing.T) {
	chart := testChart()
	postings := newFakePostings(posting(chart, testLedger, testPesos, "1010.01", "00", 0, 1, 0))
	engine := newTestEngine(chart, postings, nil)

	_, err := engine.BuildTrialBalance(context.Background(), newCommand(TypeSaldos))
	require.NoError(t, err)

	require.Len(t, postings.queries, 1)
	assert.True(t, postings.queries[0].WithSubledgerAccount)
}
