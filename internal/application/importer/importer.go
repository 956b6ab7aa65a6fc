// Package importer posts pending vouchers into the posting movements the
// balance engine reads. One Importer runs at most one import at a time.
package importer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/erp/financial-accounting/internal/domain/shared"
	"github.com/erp/financial-accounting/internal/domain/voucher"
	"github.com/erp/financial-accounting/internal/infrastructure/logger"
	"github.com/erp/financial-accounting/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the lifecycle state of the importer
type State string

const (
	StateIdle     State = "Idle"
	StateRunning  State = "Running"
	StateStopping State = "Stopping"
)

const (
	DefaultBatchSize    = 50
	DefaultPollInterval = 5 * time.Second
	maxBatchSize        = 1000
)

// ErrImporterRunning is returned by Start when an import is in progress
var ErrImporterRunning = shared.NewDomainError("IMPORTER_RUNNING", "Voucher importer is already running")

// Metrics records import batches
type Metrics interface {
	RecordImportBatch(ctx context.Context, imported, failed int, committed bool)
}

// Config holds importer defaults
type Config struct {
	BatchSize    int
	PollInterval time.Duration
	BatchTimeout time.Duration
}

// StartCommand parameterizes one import run
type StartCommand struct {
	BatchSize  int  `json:"batchSize" binding:"omitempty,min=1,max=1000"`
	MaxBatches int  `json:"maxBatches" binding:"omitempty,min=0"`
	Continuous bool `json:"continuous"`
}

// Status is a snapshot of the importer
type Status struct {
	State       State          `json:"state"`
	RunID       string         `json:"runId,omitempty"`
	LastBatchID string         `json:"lastBatchId,omitempty"`
	StartedAt   *time.Time     `json:"startedAt,omitempty"`
	FinishedAt  *time.Time     `json:"finishedAt,omitempty"`
	Batches     int            `json:"batches"`
	Imported    int            `json:"imported"`
	Failed      int            `json:"failed"`
	LastError   string         `json:"lastError,omitempty"`
	Totals      voucher.Totals `json:"totals"`
}

// Importer drives voucher import runs. It is safe for concurrent use.
type Importer struct {
	repo    voucher.ImportRepository
	metrics Metrics
	config  Config
	logger  *zap.Logger
	now     func() time.Time

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}
	status Status
}

// New creates an idle importer. metrics may be nil.
func New(repo voucher.ImportRepository, metrics Metrics, cfg Config, log *zap.Logger) *Importer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		repo:    repo,
		metrics: metrics,
		config:  cfg,
		logger:  log,
		now:     time.Now,
		state:   StateIdle,
		status:  Status{State: StateIdle},
	}
}

// Start launches an import run in the background. The run outlives ctx's
// cancellation but keeps its values; use Stop to end it.
func (i *Importer) Start(ctx context.Context, cmd StartCommand) (Status, error) {
	batchSize := cmd.BatchSize
	if batchSize <= 0 {
		batchSize = i.config.BatchSize
	}
	if batchSize > maxBatchSize {
		return Status{}, shared.NewDomainErrorf(shared.ErrInvalidInput.Code, "batch size must not exceed %d", maxBatchSize)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != StateIdle {
		return i.status, ErrImporterRunning
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	startedAt := i.now()
	i.state = StateRunning
	i.cancel = cancel
	i.done = make(chan struct{})
	i.status = Status{
		State:     StateRunning,
		RunID:     uuid.NewString(),
		StartedAt: &startedAt,
		Totals:    i.status.Totals,
	}

	i.logger.Info("Voucher importer started",
		zap.String("run_id", i.status.RunID),
		zap.Int("batch_size", batchSize),
		zap.Int("max_batches", cmd.MaxBatches),
		zap.Bool("continuous", cmd.Continuous),
	)

	go i.run(runCtx, i.done, batchSize, cmd)
	return i.status, nil
}

// Stop asks a running import to finish after its current batch. It is a
// no-op when the importer is idle or already stopping.
func (i *Importer) Stop() Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state == StateRunning {
		i.state = StateStopping
		i.status.State = StateStopping
		i.cancel()
		i.logger.Info("Voucher importer stopping", zap.String("run_id", i.status.RunID))
	}
	return i.status
}

// Wait blocks until the current run, if any, has exited
func (i *Importer) Wait(ctx context.Context) error {
	i.mu.Lock()
	done := i.done
	i.mu.Unlock()
	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops the importer and waits for the worker to exit
func (i *Importer) Shutdown(ctx context.Context) error {
	i.Stop()
	return i.Wait(ctx)
}

// State returns the current lifecycle state
func (i *Importer) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Status returns a snapshot. Queue totals are refreshed from the store
// while no run is in progress.
func (i *Importer) Status(ctx context.Context) (Status, error) {
	i.mu.Lock()
	running := i.state != StateIdle
	i.mu.Unlock()

	if !running {
		totals, err := i.repo.Totals(ctx)
		if err != nil {
			return Status{}, err
		}
		i.mu.Lock()
		i.status.Totals = totals
		i.mu.Unlock()
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status, nil
}

func (i *Importer) run(ctx context.Context, done chan struct{}, batchSize int, cmd StartCommand) {
	defer close(done)

	log := logger.WithLogger(ctx, i.logger).With(zap.String("run_id", i.runID()))
	var runErr error
	defer func() { i.finish(runErr) }()

	for batches := 0; cmd.MaxBatches == 0 || batches < cmd.MaxBatches; batches++ {
		if ctx.Err() != nil {
			return
		}

		result, err := i.importBatch(ctx, batchSize)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("Voucher import batch rolled back", zap.Error(err))
			runErr = err
			return
		}
		i.recordBatch(result)
		if result.Processed() > 0 {
			log.Info("Voucher import batch committed",
				zap.String("batch_id", result.BatchID),
				zap.Int("imported", result.Imported),
				zap.Int("failed", result.Failed),
			)
			continue
		}

		if !cmd.Continuous {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(i.config.PollInterval):
		}
	}
}

func (i *Importer) importBatch(ctx context.Context, batchSize int) (voucher.BatchResult, error) {
	batchID := uuid.NewString()
	ctx, span := telemetry.StartServiceSpan(ctx, "voucher_importer", "import_batch",
		telemetry.WithAttribute(telemetry.SpanAttrImportBatchID, batchID))
	defer span.End()

	if i.config.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.config.BatchTimeout)
		defer cancel()
	}

	result, err := i.repo.ImportBatch(ctx, batchID, batchSize)
	if err != nil {
		telemetry.RecordError(span, err)
		if i.metrics != nil && !errors.Is(err, context.Canceled) {
			i.metrics.RecordImportBatch(ctx, 0, 0, false)
		}
		return result, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrVouchers, result.Processed())
	telemetry.SetOK(span)
	if i.metrics != nil && result.Processed() > 0 {
		i.metrics.RecordImportBatch(ctx, result.Imported, result.Failed, true)
	}
	return result, nil
}

func (i *Importer) runID() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status.RunID
}

func (i *Importer) recordBatch(result voucher.BatchResult) {
	if result.Processed() == 0 {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.status.Batches++
	i.status.Imported += result.Imported
	i.status.Failed += result.Failed
	i.status.LastBatchID = result.BatchID
}

func (i *Importer) finish(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	finishedAt := i.now()
	i.status.FinishedAt = &finishedAt
	if err != nil {
		i.status.LastError = err.Error()
	}
	i.state = StateIdle
	i.status.State = StateIdle
	if i.cancel != nil {
		i.cancel()
		i.cancel = nil
	}

	i.logger.Info("Voucher importer finished",
		zap.String("run_id", i.status.RunID),
		zap.Int("batches", i.status.Batches),
		zap.Int("imported", i.status.Imported),
		zap.Int("failed", i.status.Failed),
	)
}
