package schema

import (
	"time"

	"github.com/feral-file/ff-revenue-sync/internal/domain"
)

// IngestCursor represents the ingest_cursors table - the last written date per protocol and metric
type IngestCursor struct {
	Slug       string            `gorm:"column:slug;primaryKey"`
	MetricType domain.MetricKind `gorm:"column:metric_type;primaryKey"`
	// LastDate is the most recent date written, YYYY-MM-DD
	LastDate  string    `gorm:"column:last_date;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for the IngestCursor model
func (IngestCursor) TableName() string {
	return "ingest_cursors"
}
