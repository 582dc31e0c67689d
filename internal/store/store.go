package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-revenue-sync/internal/domain"
	"github.com/feral-file/ff-revenue-sync/internal/store/schema"
)

// MetricWindowSum is the total of one protocol metric over a date range
type MetricWindowSum struct {
	Slug       string
	MetricType domain.MetricKind
	Total      float64
	Points     int64
}

// MetricCoverage describes the stored history of one protocol metric
type MetricCoverage struct {
	Slug       string
	MetricType domain.MetricKind
	Points     int64
	FirstDate  string
	LastDate   string
}

// UpsertMetricPointsInput is one (protocol, metric) batch of daily points
type UpsertMetricPointsInput struct {
	Slug       string
	MetricType domain.MetricKind
	Points     []schema.ProtocolMetric
}

// FinalizeIngestRunInput holds the final state of an ingestion run
type FinalizeIngestRunInput struct {
	ID                 string
	Status             schema.IngestRunStatus
	Note               string
	ProtocolsProcessed int
	PointsWritten      int
	ErrorCount         int
	FinishedAt         time.Time
}

// CatalogStore defines the catalog operations
type CatalogStore interface {
	// UpsertRawProtocols inserts or replaces raw catalog entries by upstream id
	UpsertRawProtocols(ctx context.Context, protocols []schema.RawProtocol) error
	// UpsertProtocols inserts or replaces deduplicated protocols by slug
	UpsertProtocols(ctx context.Context, protocols []schema.Protocol) error
	// GetProtocolBySlug retrieves a protocol by slug, nil if absent
	GetProtocolBySlug(ctx context.Context, slug string) (*schema.Protocol, error)
	// FindProtocol resolves a protocol by slug, name, display name or upstream id (case-insensitive), nil if absent
	FindProtocol(ctx context.Context, identifier string) (*schema.Protocol, error)
	// GetProtocolsBySlugs retrieves protocols by slug
	GetProtocolsBySlugs(ctx context.Context, slugs []string) ([]schema.Protocol, error)
	// CountProtocols returns the number of deduplicated protocols
	CountProtocols(ctx context.Context) (int64, error)
	// MarkProtocolBreakdown flags a protocol as publishing breakdown data
	MarkProtocolBreakdown(ctx context.Context, slug string) error
}

// TrackingStore defines the tracked protocol operations
type TrackingStore interface {
	// AddTrackedProtocol marks a protocol as tracked, returns true if newly created
	AddTrackedProtocol(ctx context.Context, slug string, at time.Time) (bool, error)
	// ListTrackedProtocols returns all tracked protocols ordered by slug
	ListTrackedProtocols(ctx context.Context) ([]schema.TrackedProtocol, error)
	// TouchTrackedProtocols updates last_accessed_at of the given tracked protocols
	TouchTrackedProtocols(ctx context.Context, slugs []string, at time.Time) error
}

// MetricStore defines the metric point operations
type MetricStore interface {
	// UpsertMetricPoints writes one batch atomically and advances the cursor to the max written date
	UpsertMetricPoints(ctx context.Context, input UpsertMetricPointsInput) (int, error)
	// GetMetricSeries returns all points of a protocol ordered by metric and date
	GetMetricSeries(ctx context.Context, slug string) ([]schema.ProtocolMetric, error)
	// SumMetricsSince sums values per protocol and metric for dates >= sinceDate
	SumMetricsSince(ctx context.Context, slugs []string, sinceDate string) ([]MetricWindowSum, error)
	// GetMetricCoverage returns the stored history per protocol and metric
	GetMetricCoverage(ctx context.Context, slugs []string) ([]MetricCoverage, error)
}

// RunStore defines the ingestion run audit operations
type RunStore interface {
	// CreateIngestRun appends a new run
	CreateIngestRun(ctx context.Context, run *schema.IngestRun) error
	// FinalizeIngestRun sets the final state of a running run
	FinalizeIngestRun(ctx context.Context, input FinalizeIngestRunInput) error
	// GetIngestRun retrieves a run by id, nil if absent
	GetIngestRun(ctx context.Context, id string) (*schema.IngestRun, error)
	// ListIngestRuns returns the most recent runs first
	ListIngestRuns(ctx context.Context, limit int) ([]schema.IngestRun, error)
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	CatalogStore
	TrackingStore
	MetricStore
	RunStore
	CursorStore
}
