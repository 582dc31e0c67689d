package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-revenue-sync/internal/adapter"
	"github.com/feral-file/ff-revenue-sync/internal/aggregate"
	"github.com/feral-file/ff-revenue-sync/internal/catalog"
	"github.com/feral-file/ff-revenue-sync/internal/config"
	"github.com/feral-file/ff-revenue-sync/internal/ingest"
	"github.com/feral-file/ff-revenue-sync/internal/logger"
	"github.com/feral-file/ff-revenue-sync/internal/providers/defillama"
	"github.com/feral-file/ff-revenue-sync/internal/ratelimit"
	"github.com/feral-file/ff-revenue-sync/internal/scheduler"
	"github.com/feral-file/ff-revenue-sync/internal/service"
	"github.com/feral-file/ff-revenue-sync/internal/store"
)

var (
	configFile  = flag.String("config", "", "Path to configuration file")
	envPath     = flag.String("env", "config/", "Path to environment files")
	syncCatalog = flag.Bool("sync-catalog", false, "Sync the protocol catalog before starting")
	track       = flag.String("track", "", "Comma-separated protocol slugs or names to track before starting")
	once        = flag.Bool("once", false, "Run a single ingestion and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSyncerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "revenue-sync",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "revenue-sync",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting revenue-sync", zap.String("database_driver", cfg.Database.Driver))

	// Connect to database
	db, err := store.Open(cfg.Database, cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open database", zap.Error(err))
	}
	if err := store.WaitForDatabase(ctx, db, time.Minute); err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewStore(db)

	// Initialize clock adapter
	clock := adapter.NewClock()

	// Initialize upstream client behind the process-wide request queue
	httpClient := adapter.NewHTTPClient(cfg.Upstream.HTTPTimeout)
	queue := ratelimit.NewQueue(ratelimit.Config{MaxRequestsPerMinute: cfg.Upstream.MaxRequestsPerMinute}, clock)
	defer func() { _ = queue.Close() }()
	upstreamClient := defillama.NewClient(httpClient, queue, cfg.Upstream.BaseURL)

	logger.InfoCtx(ctx, "Initialized upstream client",
		zap.String("base_url", cfg.Upstream.BaseURL),
		zap.Int("max_requests_per_minute", cfg.Upstream.MaxRequestsPerMinute),
		zap.Duration("dispatch_interval", queue.Interval()),
	)

	// Initialize components
	eventSink := logger.NewZapEventSink()
	synchronizer := catalog.NewSynchronizer(upstreamClient, dataStore, eventSink, clock)
	ingestor := ingest.NewIngestor(ingest.IngestorConfig{
		BackfillDays: cfg.Ingest.BackfillDays,
	}, upstreamClient, dataStore, eventSink)
	coordinator := ingest.NewCoordinator(ingest.CoordinatorConfig{
		WorkerPoolSize: cfg.Ingest.WorkerPoolSize,
		DryRun:         cfg.Ingest.DryRun,
	}, dataStore, ingestor, eventSink, clock)
	gate := scheduler.NewGate(coordinator, clock)
	svc := service.NewService(dataStore, synchronizer, gate, aggregate.NewEngine(dataStore, clock), clock)

	logger.InfoCtx(ctx, "Initialized ingestion",
		zap.Int("worker_pool_size", cfg.Ingest.WorkerPoolSize),
		zap.Int("backfill_days", cfg.Ingest.BackfillDays),
		zap.Bool("dry_run", cfg.Ingest.DryRun),
	)

	if *syncCatalog {
		result, err := svc.SyncProtocolCatalog(ctx)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to sync protocol catalog", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Protocol catalog synced",
			zap.Int("processed_count", result.ProcessedCount),
			zap.Int("raw_count", result.RawCount),
		)
	}

	for _, identifier := range strings.Split(*track, ",") {
		identifier = strings.TrimSpace(identifier)
		if identifier == "" {
			continue
		}
		if _, err := svc.AddTrackedProtocol(ctx, identifier); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("identifier", identifier))
		}
	}

	runOptions := ingest.RunOptions{
		Concurrency: cfg.Ingest.WorkerPoolSize,
		DryRun:      cfg.Ingest.DryRun,
	}

	if *once {
		result := svc.TriggerIngestNow(ctx, "cli", runOptions)
		if result == nil {
			logger.FatalCtx(ctx, "Ingestion run failed")
		}
		return
	}

	if cfg.Scheduler.Disabled {
		logger.InfoCtx(ctx, "Scheduler disabled, nothing to run")
		return
	}

	loop := scheduler.NewLoop(scheduler.LoopConfig{
		RunOnBoot: cfg.Scheduler.RunOnBoot,
		Interval:  cfg.Scheduler.Interval,
		Options:   runOptions,
	}, gate, clock)

	// Start the scheduler in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := loop.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the scheduler
	cancel()

	// Give the current run time to finalize
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := loop.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "revenue-sync stopped")
}
