package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-revenue-sync/internal/adapter"
	"github.com/feral-file/ff-revenue-sync/internal/aggregate"
	"github.com/feral-file/ff-revenue-sync/internal/catalog"
	"github.com/feral-file/ff-revenue-sync/internal/domain"
	"github.com/feral-file/ff-revenue-sync/internal/ingest"
	"github.com/feral-file/ff-revenue-sync/internal/logger"
	"github.com/feral-file/ff-revenue-sync/internal/store"
	"github.com/feral-file/ff-revenue-sync/internal/store/schema"
	"github.com/feral-file/ff-revenue-sync/internal/types"
)

// IngestTrigger starts an ingestion run unless one is already active
type IngestTrigger interface {
	TriggerNow(ctx context.Context, reason string, opts ingest.RunOptions) *ingest.RunResult
}

// Service is the interface exposed to the transport layer
//
//go:generate mockgen -source=service.go -destination=../mocks/service.go -package=mocks -mock_names=Service=MockService,IngestTrigger=MockIngestTrigger
type Service interface {
	// AddTrackedProtocol resolves a protocol by slug, display name, name or upstream id and marks it as tracked.
	// The catalog is synced once when the protocol is not known locally.
	// Returns true if the protocol was not tracked before.
	AddTrackedProtocol(ctx context.Context, identifier string) (bool, error)

	// TriggerIngestNow runs an ingestion unless one is already active, nil when dropped or failed
	TriggerIngestNow(ctx context.Context, reason string, opts ingest.RunOptions) *ingest.RunResult

	// SyncProtocolCatalog refreshes the protocol catalog from upstream
	SyncProtocolCatalog(ctx context.Context) (*catalog.SyncResult, error)

	// GetProtocolSeries returns every stored point of a protocol
	GetProtocolSeries(ctx context.Context, identifier string) (*aggregate.ProtocolSeries, error)

	// GetWindowedAggregates returns the per-window totals of the selected protocols
	GetWindowedAggregates(ctx context.Context, filter aggregate.AggregateFilter) ([]aggregate.ProtocolAggregate, error)

	// GetCoverageList returns the stored history per protocol and metric
	GetCoverageList(ctx context.Context, filter aggregate.CoverageFilter) ([]aggregate.CoverageEntry, error)

	// ListIngestRuns returns the most recent ingestion runs first
	ListIngestRuns(ctx context.Context, limit int) ([]schema.IngestRun, error)
}

type service struct {
	store        store.Store
	synchronizer catalog.Synchronizer
	trigger      IngestTrigger
	engine       aggregate.Engine
	clock        adapter.Clock
}

// NewService creates a new service
func NewService(st store.Store, synchronizer catalog.Synchronizer, trigger IngestTrigger, engine aggregate.Engine, clock adapter.Clock) Service {
	return &service{
		store:        st,
		synchronizer: synchronizer,
		trigger:      trigger,
		engine:       engine,
		clock:        clock,
	}
}

func (s *service) AddTrackedProtocol(ctx context.Context, identifier string) (bool, error) {
	if types.NormalizeKey(identifier) == "" {
		return false, fmt.Errorf("%w: empty identifier", domain.ErrProtocolNotFound)
	}

	protocol, err := s.store.FindProtocol(ctx, identifier)
	if err != nil {
		return false, err
	}

	if protocol == nil {
		logger.InfoCtx(ctx, "Protocol not in catalog, syncing", zap.String("identifier", identifier))

		if _, err := s.synchronizer.SyncCatalog(ctx); err != nil {
			return false, fmt.Errorf("failed to sync catalog: %w", err)
		}

		protocol, err = s.store.FindProtocol(ctx, identifier)
		if err != nil {
			return false, err
		}
		if protocol == nil {
			return false, fmt.Errorf("%w: %s", domain.ErrProtocolNotFound, identifier)
		}
	}

	created, err := s.store.AddTrackedProtocol(ctx, protocol.Slug, s.clock.Now())
	if err != nil {
		return false, err
	}

	logger.InfoCtx(ctx, "Protocol tracked",
		zap.String("identifier", identifier),
		zap.String("slug", protocol.Slug),
		zap.Bool("created", created),
	)

	return created, nil
}

func (s *service) TriggerIngestNow(ctx context.Context, reason string, opts ingest.RunOptions) *ingest.RunResult {
	return s.trigger.TriggerNow(ctx, reason, opts)
}

func (s *service) SyncProtocolCatalog(ctx context.Context) (*catalog.SyncResult, error) {
	return s.synchronizer.SyncCatalog(ctx)
}

func (s *service) GetProtocolSeries(ctx context.Context, identifier string) (*aggregate.ProtocolSeries, error) {
	series, err := s.engine.GetSeries(ctx, identifier)
	if err != nil {
		return nil, err
	}

	s.touch(ctx, []string{series.Slug})
	return series, nil
}

func (s *service) GetWindowedAggregates(ctx context.Context, filter aggregate.AggregateFilter) ([]aggregate.ProtocolAggregate, error) {
	aggregates, err := s.engine.GetWindowedAggregates(ctx, filter)
	if err != nil {
		return nil, err
	}

	slugs := make([]string, len(aggregates))
	for i, a := range aggregates {
		slugs[i] = a.Slug
	}
	s.touch(ctx, slugs)

	return aggregates, nil
}

func (s *service) GetCoverageList(ctx context.Context, filter aggregate.CoverageFilter) ([]aggregate.CoverageEntry, error) {
	entries, err := s.engine.GetCoverageList(ctx, filter)
	if err != nil {
		return nil, err
	}

	var slugs []string
	for _, e := range entries {
		if e.Tracked {
			slugs = append(slugs, e.Slug)
		}
	}
	s.touch(ctx, slugs)

	return entries, nil
}

func (s *service) ListIngestRuns(ctx context.Context, limit int) ([]schema.IngestRun, error) {
	return s.store.ListIngestRuns(ctx, limit)
}

// touch records a read access on the given tracked protocols.
// Failures are logged and never fail the read.
func (s *service) touch(ctx context.Context, slugs []string) {
	if len(slugs) == 0 {
		return
	}

	if err := s.store.TouchTrackedProtocols(ctx, slugs, s.clock.Now()); err != nil {
		logger.WarnCtx(ctx, "Failed to touch tracked protocols", zap.Error(err), zap.Strings("slugs", slugs))
	}
}
