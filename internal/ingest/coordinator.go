package ingest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-revenue-sync/internal/adapter"
	"github.com/feral-file/ff-revenue-sync/internal/domain"
	"github.com/feral-file/ff-revenue-sync/internal/logger"
	"github.com/feral-file/ff-revenue-sync/internal/store"
	"github.com/feral-file/ff-revenue-sync/internal/store/schema"
	"github.com/feral-file/ff-revenue-sync/internal/types"
)

const (
	// MAX_FAILURE_MESSAGE_LENGTH bounds the error message stored on failed runs
	MAX_FAILURE_MESSAGE_LENGTH = 500
)

// RunOptions holds the options of one ingestion run
type RunOptions struct {
	// Reason is recorded on the run, e.g. "boot", "interval" or "manual"
	Reason string
	// MetricKinds to ingest, in order; defaults to domain.DefaultMetricKinds
	MetricKinds []domain.MetricKind
	// Concurrency is the worker pool size; defaults to the configured pool size
	Concurrency int
	// DryRun prepares points without writing them
	DryRun bool
	// ProtocolFilter narrows the tracked protocols to these slugs
	ProtocolFilter []string
}

// RunError is one failed (protocol, metric) pair
type RunError struct {
	Slug    string            `json:"slug"`
	Metric  domain.MetricKind `json:"metric"`
	Message string            `json:"message"`
}

// RunResult summarizes one ingestion run
type RunResult struct {
	RunID              string                 `json:"runId"`
	Status             schema.IngestRunStatus `json:"status"`
	DryRun             bool                   `json:"dryRun"`
	ProtocolsProcessed int                    `json:"protocolsProcessed"`
	PointsWritten      int                    `json:"pointsWritten"`
	Errors             []RunError             `json:"errors"`
}

// CoordinatorConfig holds configuration for the ingestion coordinator
type CoordinatorConfig struct {
	WorkerPoolSize int
	DryRun         bool
}

// Coordinator drives ingestion across all tracked protocols
//
//go:generate mockgen -source=coordinator.go -destination=../mocks/coordinator.go -package=mocks -mock_names=Coordinator=MockCoordinator
type Coordinator interface {
	// Run ingests every requested metric of every tracked protocol.
	// Per-pair failures are collected in the result; a returned error means the run failed.
	Run(ctx context.Context, opts RunOptions) (*RunResult, error)
}

type coordinator struct {
	config   CoordinatorConfig
	store    store.Store
	ingestor Ingestor
	sink     logger.EventSink
	clock    adapter.Clock
}

// NewCoordinator creates a new ingestion coordinator
func NewCoordinator(cfg CoordinatorConfig, st store.Store, ingestor Ingestor, sink logger.EventSink, clock adapter.Clock) Coordinator {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = domain.DEFAULT_WORKER_POOL_SIZE
	}
	if sink == nil {
		sink = logger.NopEventSink{}
	}
	return &coordinator{
		config:   cfg,
		store:    st,
		ingestor: ingestor,
		sink:     sink,
		clock:    clock,
	}
}

// Run ingests every requested metric of every tracked protocol
func (c *coordinator) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	dryRun := opts.DryRun || c.config.DryRun
	startedAt := c.clock.Now()
	run := &schema.IngestRun{
		ID:        ulid.MustNewDefault(startedAt).String(),
		Reason:    opts.Reason,
		Status:    schema.IngestRunStatusRunning,
		DryRun:    dryRun,
		StartedAt: startedAt,
	}
	if err := c.store.CreateIngestRun(ctx, run); err != nil {
		return nil, err
	}

	result := &RunResult{
		RunID:  run.ID,
		DryRun: dryRun,
		Errors: []RunError{},
	}

	c.sink.Record(ctx, logger.Event{
		Name:  "ingest_run_started",
		Level: zapcore.InfoLevel,
		Fields: map[string]any{
			"run_id":  run.ID,
			"reason":  opts.Reason,
			"dry_run": dryRun,
		},
	})

	kinds, err := resolveMetricKinds(opts.MetricKinds)
	if err != nil {
		return nil, c.fail(ctx, result, err)
	}

	slugs, err := c.resolveProtocols(ctx, opts.ProtocolFilter)
	if err != nil {
		return nil, c.fail(ctx, result, err)
	}

	if len(slugs) == 0 {
		result.Status = schema.IngestRunStatusSkippedNoTracked
		if err := c.finalize(ctx, result, "no tracked protocols"); err != nil {
			return nil, err
		}
		return result, nil
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = c.config.WorkerPoolSize
	}

	if err := c.drain(ctx, result, slugs, kinds, min(concurrency, len(slugs))); err != nil {
		return nil, c.fail(ctx, result, err)
	}

	result.Status = schema.IngestRunStatusSuccess
	if len(result.Errors) > 0 {
		result.Status = schema.IngestRunStatusSuccessWithErrors
	}
	if err := c.finalize(ctx, result, runNote(result)); err != nil {
		return nil, err
	}

	return result, nil
}

// drain runs the ingestor over slugs with a fixed number of workers.
// Each worker claims the next protocol through a shared index and ingests
// every kind of that protocol before claiming another one.
func (c *coordinator) drain(ctx context.Context, result *RunResult, slugs []string, kinds []domain.MetricKind, workers int) error {
	var (
		next      atomic.Int64
		processed atomic.Int64
		written   atomic.Int64
		mu        sync.Mutex
	)

	pool := pond.NewPool(workers, pond.WithContext(ctx))
	tasks := make([]pond.Task, 0, workers)

	for range workers {
		tasks = append(tasks, pool.Submit(func() {
			for ctx.Err() == nil {
				idx := int(next.Add(1) - 1)
				if idx >= len(slugs) {
					return
				}
				slug := slugs[idx]

				for _, kind := range kinds {
					n, err := c.ingestor.IngestOne(ctx, slug, kind, result.DryRun)
					if err != nil {
						logger.WarnCtx(ctx, "Failed to ingest metric",
							zap.String("run_id", result.RunID),
							zap.String("slug", slug),
							zap.String("metric", string(kind)),
							zap.Error(err),
						)
						c.sink.Record(ctx, logger.Event{
							Name:  "metric_ingest_failed",
							Level: zapcore.WarnLevel,
							Fields: map[string]any{
								"run_id": result.RunID,
								"slug":   slug,
								"metric": string(kind),
								"error":  err.Error(),
							},
						})

						mu.Lock()
						result.Errors = append(result.Errors, RunError{
							Slug:    slug,
							Metric:  kind,
							Message: err.Error(),
						})
						mu.Unlock()
						continue
					}
					written.Add(int64(n))
				}
				processed.Add(1)
			}
		}))
	}

	pool.StopAndWait()

	result.ProtocolsProcessed = int(processed.Load())
	result.PointsWritten = int(written.Load())

	var errs []error
	for _, task := range tasks {
		if err := task.Wait(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("ingestion worker failed: %w", errors.Join(errs...))
	}

	return ctx.Err()
}

// resolveProtocols returns the tracked slugs, narrowed by filter when it is not empty
func (c *coordinator) resolveProtocols(ctx context.Context, filter []string) ([]string, error) {
	tracked, err := c.store.ListTrackedProtocols(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(filter))
	for _, f := range filter {
		if key := types.NormalizeKey(f); key != "" {
			wanted[key] = struct{}{}
		}
	}

	slugs := make([]string, 0, len(tracked))
	for _, t := range tracked {
		if len(wanted) > 0 {
			if _, ok := wanted[types.NormalizeKey(t.Slug)]; !ok {
				continue
			}
		}
		slugs = append(slugs, t.Slug)
	}

	return slugs, nil
}

// fail records the run as failed and returns the original error
func (c *coordinator) fail(ctx context.Context, result *RunResult, cause error) error {
	result.Status = schema.IngestRunStatusFailed
	if err := c.finalize(ctx, result, types.Truncate(cause.Error(), MAX_FAILURE_MESSAGE_LENGTH)); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("run_id", result.RunID))
	}
	return cause
}

// finalize persists the final state of the run.
// It detaches from ctx cancellation so an aborted run is still recorded.
func (c *coordinator) finalize(ctx context.Context, result *RunResult, note string) error {
	ctx = context.WithoutCancel(ctx)

	err := c.store.FinalizeIngestRun(ctx, store.FinalizeIngestRunInput{
		ID:                 result.RunID,
		Status:             result.Status,
		Note:               note,
		ProtocolsProcessed: result.ProtocolsProcessed,
		PointsWritten:      result.PointsWritten,
		ErrorCount:         len(result.Errors),
		FinishedAt:         c.clock.Now(),
	})

	c.sink.Record(ctx, logger.Event{
		Name:  "ingest_run_finished",
		Level: zapcore.InfoLevel,
		Fields: map[string]any{
			"run_id":              result.RunID,
			"status":              string(result.Status),
			"protocols_processed": result.ProtocolsProcessed,
			"points_written":      result.PointsWritten,
			"error_count":         len(result.Errors),
			"note":                note,
		},
	})

	return err
}

func runNote(result *RunResult) string {
	note := fmt.Sprintf("%d protocols, %d points", result.ProtocolsProcessed, result.PointsWritten)
	if len(result.Errors) > 0 {
		note += fmt.Sprintf(", %d errors", len(result.Errors))
	}
	if result.DryRun {
		note += " (dry run)"
	}
	return note
}

// resolveMetricKinds validates and deduplicates the requested kinds, keeping their order
func resolveMetricKinds(kinds []domain.MetricKind) ([]domain.MetricKind, error) {
	if len(kinds) == 0 {
		return slices.Clone(domain.DefaultMetricKinds), nil
	}

	resolved := make([]domain.MetricKind, 0, len(kinds))
	for _, k := range kinds {
		if !k.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMetricKind, k)
		}
		if !slices.Contains(resolved, k) {
			resolved = append(resolved, k)
		}
	}
	return resolved, nil
}
