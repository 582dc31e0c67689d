package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-revenue-sync/internal/store/schema"
	"github.com/feral-file/ff-revenue-sync/internal/types"
)

type sqlStore struct {
	db *gorm.DB
}

// NewStore creates a new store on top of an opened and migrated database
func NewStore(db *gorm.DB) Store {
	return &sqlStore{db: db}
}

// =============================================================================
// Catalog
// =============================================================================

// UpsertRawProtocols inserts or replaces raw catalog entries by upstream id
func (s *sqlStore) UpsertRawProtocols(ctx context.Context, protocols []schema.RawProtocol) error {
	if len(protocols) == 0 {
		return nil
	}

	batchSize := calculateSafeBatchSize(len(protocols), 13)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "upstream_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"slug", "name", "display_name", "category", "chains", "logo", "module",
			"parent_protocol", "linked_protocols", "has_breakdown", "updated_at",
		}),
	}).CreateInBatches(&protocols, batchSize).Error
	if err != nil {
		return fmt.Errorf("failed to upsert raw protocols: %w", err)
	}

	return nil
}

// UpsertProtocols inserts or replaces deduplicated protocols by slug
func (s *sqlStore) UpsertProtocols(ctx context.Context, protocols []schema.Protocol) error {
	if len(protocols) == 0 {
		return nil
	}

	batchSize := calculateSafeBatchSize(len(protocols), 10)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "display_name", "logo", "category", "chains", "is_parent", "updated_at",
		}),
	}).CreateInBatches(&protocols, batchSize).Error
	if err != nil {
		return fmt.Errorf("failed to upsert protocols: %w", err)
	}

	return nil
}

// GetProtocolBySlug retrieves a protocol by slug
func (s *sqlStore) GetProtocolBySlug(ctx context.Context, slug string) (*schema.Protocol, error) {
	var protocol schema.Protocol
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&protocol).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get protocol: %w", err)
	}

	return &protocol, nil
}

// FindProtocol resolves a protocol by slug first, then by name or display name,
// then by the upstream id of a raw catalog entry
func (s *sqlStore) FindProtocol(ctx context.Context, identifier string) (*schema.Protocol, error) {
	key := types.NormalizeKey(identifier)
	if key == "" {
		return nil, nil
	}

	var protocols []schema.Protocol
	err := s.db.WithContext(ctx).
		Where("LOWER(slug) = ? OR LOWER(name) = ? OR LOWER(display_name) = ?", key, key, key).
		Order("slug ASC").
		Find(&protocols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find protocol: %w", err)
	}
	if len(protocols) == 0 {
		return s.findProtocolByUpstreamID(ctx, key)
	}

	for i := range protocols {
		if types.NormalizeKey(protocols[i].Slug) == key {
			return &protocols[i], nil
		}
	}
	return &protocols[0], nil
}

// findProtocolByUpstreamID maps a raw catalog entry to the protocol it was aggregated into
func (s *sqlStore) findProtocolByUpstreamID(ctx context.Context, key string) (*schema.Protocol, error) {
	var raw []schema.RawProtocol
	err := s.db.WithContext(ctx).
		Where("LOWER(upstream_id) = ?", key).
		Limit(1).
		Find(&raw).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find raw protocol: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	slug := raw[0].Slug
	if !types.StringNilOrEmpty(raw[0].ParentProtocol) {
		slug = types.ParentSlug(*raw[0].ParentProtocol)
	}
	if slug == "" {
		return nil, nil
	}

	return s.GetProtocolBySlug(ctx, slug)
}

// GetProtocolsBySlugs retrieves protocols by slug
func (s *sqlStore) GetProtocolsBySlugs(ctx context.Context, slugs []string) ([]schema.Protocol, error) {
	if len(slugs) == 0 {
		return []schema.Protocol{}, nil
	}

	var protocols []schema.Protocol
	err := s.db.WithContext(ctx).
		Where("slug IN ?", slugs).
		Order("slug ASC").
		Find(&protocols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get protocols by slugs: %w", err)
	}

	return protocols, nil
}

// CountProtocols returns the number of deduplicated protocols
func (s *sqlStore) CountProtocols(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.Protocol{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count protocols: %w", err)
	}
	return count, nil
}

// MarkProtocolBreakdown flags a protocol as publishing breakdown data.
// Catalog upserts never clear the flag.
func (s *sqlStore) MarkProtocolBreakdown(ctx context.Context, slug string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Protocol{}).
		Where("slug = ? AND has_breakdown = ?", slug, false).
		Update("has_breakdown", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark protocol breakdown: %w", err)
	}
	return nil
}

// =============================================================================
// Tracking
// =============================================================================

// AddTrackedProtocol marks a protocol as tracked
func (s *sqlStore) AddTrackedProtocol(ctx context.Context, slug string, at time.Time) (bool, error) {
	tracked := schema.TrackedProtocol{
		Slug:           slug,
		CreatedAt:      at,
		LastAccessedAt: at,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&tracked)
	if result.Error != nil {
		return false, fmt.Errorf("failed to add tracked protocol: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// ListTrackedProtocols returns all tracked protocols ordered by slug
func (s *sqlStore) ListTrackedProtocols(ctx context.Context) ([]schema.TrackedProtocol, error) {
	var tracked []schema.TrackedProtocol
	if err := s.db.WithContext(ctx).Order("slug ASC").Find(&tracked).Error; err != nil {
		return nil, fmt.Errorf("failed to list tracked protocols: %w", err)
	}
	return tracked, nil
}

// TouchTrackedProtocols updates last_accessed_at of the given tracked protocols
func (s *sqlStore) TouchTrackedProtocols(ctx context.Context, slugs []string, at time.Time) error {
	if len(slugs) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&schema.TrackedProtocol{}).
		Where("slug IN ?", slugs).
		Update("last_accessed_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to touch tracked protocols: %w", err)
	}
	return nil
}

// =============================================================================
// Metrics
// =============================================================================

// UpsertMetricPoints writes one (protocol, metric) batch in a single transaction.
// Points overwrite value, breakdown and source timestamp on (slug, metric_type, date).
// The cursor is advanced to the max written date and never moved backward.
func (s *sqlStore) UpsertMetricPoints(ctx context.Context, input UpsertMetricPointsInput) (int, error) {
	if len(input.Points) == 0 {
		return 0, nil
	}

	maxDate := ""
	points := make([]schema.ProtocolMetric, len(input.Points))
	for i, p := range input.Points {
		p.ID = 0
		p.Slug = input.Slug
		p.MetricType = input.MetricType
		points[i] = p
		if p.Date > maxDate {
			maxDate = p.Date
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batchSize := calculateSafeBatchSize(len(points), 8)
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}, {Name: "metric_type"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "breakdown", "source_timestamp", "updated_at"}),
		}).CreateInBatches(&points, batchSize).Error; err != nil {
			return fmt.Errorf("failed to upsert metric points: %w", err)
		}

		return advanceIngestCursor(tx, input.Slug, input.MetricType, maxDate)
	})
	if err != nil {
		return 0, err
	}

	return len(points), nil
}

// GetMetricSeries returns all points of a protocol ordered by metric and date
func (s *sqlStore) GetMetricSeries(ctx context.Context, slug string) ([]schema.ProtocolMetric, error) {
	var points []schema.ProtocolMetric
	err := s.db.WithContext(ctx).
		Where("slug = ?", slug).
		Order("metric_type ASC").
		Order("date ASC").
		Find(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get metric series: %w", err)
	}
	return points, nil
}

// SumMetricsSince sums values per protocol and metric for dates >= sinceDate.
// Protocol/metric pairs without any row in range are absent from the result.
func (s *sqlStore) SumMetricsSince(ctx context.Context, slugs []string, sinceDate string) ([]MetricWindowSum, error) {
	if len(slugs) == 0 {
		return []MetricWindowSum{}, nil
	}

	var sums []MetricWindowSum
	err := s.db.WithContext(ctx).
		Model(&schema.ProtocolMetric{}).
		Select("slug, metric_type, SUM(value) AS total, COUNT(*) AS points").
		Where("slug IN ? AND date >= ?", slugs, sinceDate).
		Group("slug, metric_type").
		Scan(&sums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum metrics: %w", err)
	}
	return sums, nil
}

// GetMetricCoverage returns the stored history per protocol and metric
func (s *sqlStore) GetMetricCoverage(ctx context.Context, slugs []string) ([]MetricCoverage, error) {
	if len(slugs) == 0 {
		return []MetricCoverage{}, nil
	}

	var coverage []MetricCoverage
	err := s.db.WithContext(ctx).
		Model(&schema.ProtocolMetric{}).
		Select("slug, metric_type, COUNT(*) AS points, MIN(date) AS first_date, MAX(date) AS last_date").
		Where("slug IN ?", slugs).
		Group("slug, metric_type").
		Order("slug ASC").
		Order("metric_type ASC").
		Scan(&coverage).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get metric coverage: %w", err)
	}
	return coverage, nil
}

// =============================================================================
// Runs
// =============================================================================

// CreateIngestRun appends a new run
func (s *sqlStore) CreateIngestRun(ctx context.Context, run *schema.IngestRun) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to create ingest run: %w", err)
	}
	return nil
}

// FinalizeIngestRun sets the final state of a running run.
// A run can only be finalized once; finalizing a finished run is an error.
func (s *sqlStore) FinalizeIngestRun(ctx context.Context, input FinalizeIngestRunInput) error {
	finishedAt := input.FinishedAt
	result := s.db.WithContext(ctx).
		Model(&schema.IngestRun{}).
		Where("id = ? AND status = ?", input.ID, schema.IngestRunStatusRunning).
		Updates(map[string]interface{}{
			"status":              input.Status,
			"note":                input.Note,
			"protocols_processed": input.ProtocolsProcessed,
			"points_written":      input.PointsWritten,
			"error_count":         input.ErrorCount,
			"finished_at":         &finishedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to finalize ingest run: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ingest run %s is not running", input.ID)
	}
	return nil
}

// GetIngestRun retrieves a run by id
func (s *sqlStore) GetIngestRun(ctx context.Context, id string) (*schema.IngestRun, error) {
	var run schema.IngestRun
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ingest run: %w", err)
	}
	return &run, nil
}

// ListIngestRuns returns the most recent runs first
func (s *sqlStore) ListIngestRuns(ctx context.Context, limit int) ([]schema.IngestRun, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []schema.IngestRun
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ingest runs: %w", err)
	}
	return runs, nil
}
