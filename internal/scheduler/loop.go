package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-revenue-sync/internal/adapter"
	"github.com/feral-file/ff-revenue-sync/internal/ingest"
	"github.com/feral-file/ff-revenue-sync/internal/logger"
)

const (
	// REASON_BOOT is the trigger reason of the run started with the process
	REASON_BOOT = "boot"
	// REASON_INTERVAL is the trigger reason of periodic runs
	REASON_INTERVAL = "interval"
)

// LoopConfig holds configuration for the periodic trigger
type LoopConfig struct {
	// RunOnBoot triggers a run as soon as the loop starts
	RunOnBoot bool
	// Interval is the time between two triggers
	Interval time.Duration
	// Options are passed to every triggered run
	Options ingest.RunOptions
}

// Loop triggers ingestion through the gate at a fixed interval
type Loop struct {
	config    LoopConfig
	gate      *Gate
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewLoop creates a new periodic trigger
func NewLoop(cfg LoopConfig, gate *Gate, clock adapter.Clock) *Loop {
	return &Loop{
		config:    cfg,
		gate:      gate,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the loop's name
func (l *Loop) Name() string {
	return "ingest-scheduler"
}

// Start runs the loop until the context is canceled or Stop is called
func (l *Loop) Start(ctx context.Context) error {
	if l.config.Interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive")
	}
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("scheduler already running")
	}
	defer func() {
		l.running.Store(false)
		close(l.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting ingestion scheduler",
		zap.Bool("run_on_boot", l.config.RunOnBoot),
		zap.Duration("interval", l.config.Interval),
	)

	if l.config.RunOnBoot {
		l.gate.TriggerNow(ctx, REASON_BOOT, l.config.Options)
	}

	for {
		if !l.sleep(ctx, l.config.Interval) {
			logger.InfoCtx(ctx, "Ingestion scheduler stopping")
			return nil
		}
		l.gate.TriggerNow(ctx, REASON_INTERVAL, l.config.Options)
	}
}

// Stop signals the loop to exit and waits for the current run to finish
func (l *Loop) Stop(ctx context.Context) error {
	if !l.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping ingestion scheduler")

	// Signal stop to the main loop
	close(l.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-l.stoppedCh:
		logger.InfoCtx(ctx, "Ingestion scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Ingestion scheduler stop interrupted by context timeout")
		return ctx.Err()
	}
}

// sleep sleeps for the given duration but can be interrupted
// Returns true if sleep completed normally, false if interrupted
func (l *Loop) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-l.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-l.stopChan:
		return false
	}
}
