package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-revenue-sync/internal/domain"
)

// ProtocolMetric represents the protocol_metrics table - one daily value per protocol and metric
type ProtocolMetric struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Slug references the protocol
	Slug string `gorm:"column:slug;not null;uniqueIndex:idx_protocol_metrics_key,priority:1"`
	// MetricType is fees, revenue or holders_revenue
	MetricType domain.MetricKind `gorm:"column:metric_type;not null;uniqueIndex:idx_protocol_metrics_key,priority:2"`
	// Date is the UTC day in YYYY-MM-DD
	Date string `gorm:"column:date;not null;uniqueIndex:idx_protocol_metrics_key,priority:3"`
	// Value is the daily total
	Value float64 `gorm:"column:value;not null"`
	// Breakdown is the original per sub-entity payload, when published
	Breakdown datatypes.JSON `gorm:"column:breakdown"`
	// SourceTimestamp is the upstream unix timestamp of the point
	SourceTimestamp *int64 `gorm:"column:source_timestamp"`
	// CreatedAt is when the point was first written
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	// UpdatedAt is when the point was last overwritten
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for the ProtocolMetric model
func (ProtocolMetric) TableName() string {
	return "protocol_metrics"
}
