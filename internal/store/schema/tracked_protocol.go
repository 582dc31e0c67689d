package schema

import "time"

// TrackedProtocol represents the tracked_protocols table - protocols subject to ingestion
type TrackedProtocol struct {
	// Slug references the tracked protocol
	Slug string `gorm:"column:slug;primaryKey"`
	// CreatedAt is when tracking was requested
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	// LastAccessedAt is when the protocol was last read by a consumer
	LastAccessedAt time.Time `gorm:"column:last_accessed_at;not null"`
}

// TableName specifies the table name for the TrackedProtocol model
func (TrackedProtocol) TableName() string {
	return "tracked_protocols"
}
