package balance

import (
	"context"
	"errors"
	"time"

	"github.com/erp/financial-accounting/internal/domain/balance"
	"github.com/erp/financial-accounting/internal/domain/shared"
	"github.com/erp/financial-accounting/internal/infrastructure/logger"
	"github.com/erp/financial-accounting/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// TrialBalanceBuilder builds trial balances and describes their columns.
// balance.Engine implements it.
type TrialBalanceBuilder interface {
	BuildTrialBalance(ctx context.Context, cmd *balance.Command) (*balance.TrialBalance, error)
	Columns(cmd *balance.Command) ([]balance.Column, error)
}

// BuildMetrics records trial balance builds
type BuildMetrics interface {
	RecordBuild(ctx context.Context, reportType string, d time.Duration, rows int, errorCode string)
}

// Options holds request defaults applied before a build
type Options struct {
	DefaultAccountsChart string
	MaxLevel             int
}

// TrialBalanceService provides application-level trial balance operations
type TrialBalanceService struct {
	builder TrialBalanceBuilder
	metrics BuildMetrics
	opts    Options
	now     func() time.Time
}

// NewTrialBalanceService creates a new TrialBalanceService. metrics may be nil.
func NewTrialBalanceService(builder TrialBalanceBuilder, metrics BuildMetrics, opts Options) *TrialBalanceService {
	return &TrialBalanceService{
		builder: builder,
		metrics: metrics,
		opts:    opts,
		now:     time.Now,
	}
}

// BuildTrialBalance validates and runs one build request
func (s *TrialBalanceService) BuildTrialBalance(ctx context.Context, req TrialBalanceRequest) (*TrialBalanceResponse, error) {
	cmd, err := req.ToCommand()
	if err != nil {
		return nil, err
	}
	s.applyDefaults(cmd)

	ctx = logger.WithReport(ctx, string(cmd.TrialBalanceType), cmd.AccountsChartUID)
	ctx, span := telemetry.StartServiceSpan(ctx, "trial_balance", "build",
		telemetry.WithAttribute(telemetry.SpanAttrTrialBalanceType, string(cmd.TrialBalanceType)),
		telemetry.WithAttribute(telemetry.SpanAttrAccountsChart, cmd.AccountsChartUID),
		telemetry.WithAttribute(telemetry.SpanAttrLevel, cmd.Level),
	)
	defer span.End()

	log := logger.L(ctx)
	log.Info("Building trial balance",
		zap.Time("from_date", cmd.InitialPeriod.FromDate),
		zap.Time("to_date", cmd.InitialPeriod.ToDate),
		zap.String("balances_type", string(cmd.BalancesType)),
		zap.Bool("valuate", cmd.ValuateBalances),
	)

	start := s.now()
	tb, err := s.builder.BuildTrialBalance(ctx, cmd)
	elapsed := s.now().Sub(start)
	if err != nil {
		code := errorCode(err)
		telemetry.RecordError(span, err)
		s.record(ctx, cmd, elapsed, 0, code)
		log.Warn("Trial balance build failed", zap.String("error_code", code), zap.Error(err))
		return nil, err
	}

	rows := tb.Len()
	telemetry.SetAttributes(span, telemetry.SpanAttrRows, rows)
	telemetry.SetOK(span)
	s.record(ctx, cmd, elapsed, rows, "")
	log.Info("Trial balance built", zap.Int("rows", rows), zap.Duration("elapsed", elapsed))

	return toTrialBalanceResponse(tb), nil
}

// Columns returns the column schema of a report type with the given flags
func (s *TrialBalanceService) Columns(ctx context.Context, req ColumnsRequest) ([]balance.Column, error) {
	cmd := &balance.Command{
		TrialBalanceType:    balance.TrialBalanceType(req.TrialBalanceType),
		ValuateBalances:     req.ValuateBalances,
		WithAverageBalance:  req.WithAverageBalance,
		ShowCascadeBalances: req.ShowCascadeBalances,
		ReturnLedgerColumn:  req.ReturnLedgerColumn,
		WithSectorization:   req.WithSectorization,
	}
	if !cmd.TrialBalanceType.IsValid() {
		return nil, shared.InvalidCommand("unknown trial balance type %q", req.TrialBalanceType)
	}
	columns, err := s.builder.Columns(cmd)
	if err != nil {
		logger.L(ctx).Debug("Column schema unavailable",
			zap.String("trial_balance_type", req.TrialBalanceType), zap.Error(err))
		return nil, err
	}
	return columns, nil
}

// ColumnsRequest holds the flags that shape a column schema
type ColumnsRequest struct {
	TrialBalanceType    string `form:"type" binding:"required"`
	ValuateBalances     bool   `form:"valuateBalances"`
	WithAverageBalance  bool   `form:"withAverageBalance"`
	ShowCascadeBalances bool   `form:"showCascadeBalances"`
	ReturnLedgerColumn  bool   `form:"returnLedgerColumn"`
	WithSectorization   bool   `form:"withSectorization"`
}

func (s *TrialBalanceService) applyDefaults(cmd *balance.Command) {
	if cmd.AccountsChartUID == "" {
		cmd.AccountsChartUID = s.opts.DefaultAccountsChart
	}
	if s.opts.MaxLevel > 0 && (cmd.Level == 0 || cmd.Level > s.opts.MaxLevel) {
		cmd.Level = s.opts.MaxLevel
	}
}

func (s *TrialBalanceService) record(ctx context.Context, cmd *balance.Command, d time.Duration, rows int, code string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordBuild(ctx, string(cmd.TrialBalanceType), d, rows, code)
}

// errorCode returns the domain error code of err, or INTERNAL_ERROR
func errorCode(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "INTERNAL_ERROR"
}
