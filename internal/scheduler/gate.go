package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-revenue-sync/internal/adapter"
	"github.com/feral-file/ff-revenue-sync/internal/ingest"
	"github.com/feral-file/ff-revenue-sync/internal/logger"
)

// Gate serializes ingestion runs within the process.
// A trigger that arrives while a run is active is dropped, not queued.
type Gate struct {
	coordinator ingest.Coordinator
	clock       adapter.Clock
	running     atomic.Bool
}

// NewGate creates a new gate in front of the coordinator
func NewGate(coordinator ingest.Coordinator, clock adapter.Clock) *Gate {
	return &Gate{
		coordinator: coordinator,
		clock:       clock,
	}
}

// IsRunning reports whether a run is active
func (g *Gate) IsRunning() bool {
	return g.running.Load()
}

// TriggerNow runs the coordinator unless a run is already active.
// It returns nil when the trigger was dropped or when the run failed; the
// caller must trigger again if it needs another run.
func (g *Gate) TriggerNow(ctx context.Context, reason string, opts ingest.RunOptions) *ingest.RunResult {
	triggerID := uuid.New().String()
	log := logger.FromContext(ctx).With(
		zap.String("trigger_id", triggerID),
		zap.String("reason", reason),
	)

	if !g.running.CompareAndSwap(false, true) {
		log.Info("Ingestion already running, trigger skipped")
		return nil
	}
	defer g.running.Store(false)

	opts.Reason = reason
	startTime := g.clock.Now()
	log.Info("Ingestion run started")

	result, err := g.run(ctx, opts)
	elapsed := g.clock.Since(startTime)
	if err != nil {
		log.Error("Ingestion run failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil
	}

	log.Info("Ingestion run finished",
		zap.String("run_id", result.RunID),
		zap.String("status", string(result.Status)),
		zap.Int("protocols_processed", result.ProtocolsProcessed),
		zap.Int("points_written", result.PointsWritten),
		zap.Int("error_count", len(result.Errors)),
		zap.Duration("elapsed", elapsed),
	)

	return result
}

// run invokes the coordinator, turning a panic into an error so the flag is always released
func (g *Gate) run(ctx context.Context, opts ingest.RunOptions) (result *ingest.RunResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &panicError{value: r}
		}
	}()
	return g.coordinator.Run(ctx, opts)
}

// panicError wraps a value recovered from a coordinator panic
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}
