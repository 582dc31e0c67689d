package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-revenue-sync/internal/domain"
	"github.com/feral-file/ff-revenue-sync/internal/store/schema"
)

// CursorStore defines the interface for storing and retrieving ingestion cursors
type CursorStore interface {
	// GetIngestCursor retrieves the last written date of a protocol metric, nil if none
	GetIngestCursor(ctx context.Context, slug string, kind domain.MetricKind) (*string, error)
}

// GetIngestCursor retrieves the last written date of a protocol metric
func (s *sqlStore) GetIngestCursor(ctx context.Context, slug string, kind domain.MetricKind) (*string, error) {
	return getIngestCursor(s.db.WithContext(ctx), slug, kind)
}

func getIngestCursor(db *gorm.DB, slug string, kind domain.MetricKind) (*string, error) {
	var cursors []schema.IngestCursor
	err := db.Where("slug = ? AND metric_type = ?", slug, kind).Limit(1).Find(&cursors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ingest cursor: %w", err)
	}
	if len(cursors) == 0 {
		return nil, nil // No cursor yet
	}

	return &cursors[0].LastDate, nil
}

// advanceIngestCursor moves the cursor forward to date, never backward
func advanceIngestCursor(tx *gorm.DB, slug string, kind domain.MetricKind, date string) error {
	current, err := getIngestCursor(tx, slug, kind)
	if err != nil {
		return err
	}
	if current != nil && *current >= date {
		return nil
	}

	cursor := schema.IngestCursor{
		Slug:       slug,
		MetricType: kind,
		LastDate:   date,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}, {Name: "metric_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_date", "updated_at"}),
	}).Create(&cursor).Error
	if err != nil {
		return fmt.Errorf("failed to set ingest cursor: %w", err)
	}

	return nil
}
