package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when metrics are constructed without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// BalanceMetrics records trial balance builds and voucher import batches.
type BalanceMetrics struct {
	buildsTotal      *Counter
	buildDuration    *Histogram
	rowsReturned     *Histogram
	importedVouchers *Counter
	importBatches    *Counter
}

// NewBalanceMetrics creates the balance engine instruments on meter.
func NewBalanceMetrics(meter metric.Meter) (*BalanceMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   BalanceMetrics
		err error
	)
	if m.buildsTotal, err = NewCounter(meter, "trial_balance_builds_total",
		"Trial balance builds by report type and outcome", "{build}"); err != nil {
		return nil, err
	}
	if m.buildDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "trial_balance_build_duration_seconds",
		Description: "Time spent building a trial balance",
		Unit:        "s",
		Boundaries:  BuildDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.rowsReturned, err = NewHistogram(meter, HistogramOpts{
		Name:        "trial_balance_rows",
		Description: "Rows returned per trial balance",
		Unit:        "{row}",
		Boundaries:  []float64{10, 100, 1000, 10000, 100000},
	}); err != nil {
		return nil, err
	}
	if m.importedVouchers, err = NewCounter(meter, "vouchers_imported_total",
		"Vouchers processed by the importer by outcome", "{voucher}"); err != nil {
		return nil, err
	}
	if m.importBatches, err = NewCounter(meter, "voucher_import_batches_total",
		"Import batches committed or rolled back", "{batch}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordBuild records one trial balance build. errorCode is empty on success.
func (m *BalanceMetrics) RecordBuild(ctx context.Context, reportType string, d time.Duration, rows int, errorCode string) {
	if m == nil {
		return
	}
	typeAttr := AttrTrialBalanceType.String(reportType)
	if errorCode != "" {
		m.buildsTotal.Inc(ctx, typeAttr, AttrOutcome.String("error"), AttrErrorCode.String(errorCode))
		return
	}
	m.buildsTotal.Inc(ctx, typeAttr, AttrOutcome.String("success"))
	m.buildDuration.RecordDuration(ctx, d, typeAttr)
	m.rowsReturned.Record(ctx, float64(rows), typeAttr)
}

// RecordImportBatch records one importer batch.
func (m *BalanceMetrics) RecordImportBatch(ctx context.Context, imported, failed int, committed bool) {
	if m == nil {
		return
	}
	outcome := "committed"
	if !committed {
		outcome = "rolled_back"
	}
	m.importBatches.Inc(ctx, AttrOutcome.String(outcome))
	if imported > 0 {
		m.importedVouchers.Add(ctx, int64(imported), AttrOutcome.String("imported"))
	}
	if failed > 0 {
		m.importedVouchers.Add(ctx, int64(failed), AttrOutcome.String("failed"))
	}
}

// RegisterPoolStats exports database connection pool usage as observable gauges.
func RegisterPoolStats(meter metric.Meter, db *sql.DB) error {
	if meter == nil {
		return ErrMeterNil
	}
	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Database connections by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return fmt.Errorf("failed to create pool gauge: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_total",
		metric.WithDescription("Connections waited for"),
		metric.WithUnit("{wait}"))
	if err != nil {
		return fmt.Errorf("failed to create pool wait counter: %w", err)
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := db.Stats()
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(connections, int64(stats.MaxOpenConnections), metric.WithAttributes(AttrDBState.String("max_open")))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, connections, waits)
	if err != nil {
		return fmt.Errorf("failed to register pool stats callback: %w", err)
	}
	return nil
}
