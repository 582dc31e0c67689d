package schema

import "time"

// IngestRunStatus represents the status of an ingestion run
type IngestRunStatus string

const (
	// IngestRunStatusRunning is the status of a run in progress
	IngestRunStatusRunning IngestRunStatus = "running"
	// IngestRunStatusSuccess is the status of a run without errors
	IngestRunStatusSuccess IngestRunStatus = "success"
	// IngestRunStatusSuccessWithErrors is the status of a run where some protocol/metric pairs failed
	IngestRunStatusSuccessWithErrors IngestRunStatus = "success_with_errors"
	// IngestRunStatusSkippedNoTracked is the status of a run with nothing to ingest
	IngestRunStatusSkippedNoTracked IngestRunStatus = "skipped_no_tracked"
	// IngestRunStatusFailed is the status of an aborted run
	IngestRunStatusFailed IngestRunStatus = "failed"
)

// IngestRun represents the ingest_runs table - append-only audit log of coordinator runs
type IngestRun struct {
	// ID is a ULID, sortable by start time
	ID string `gorm:"column:id;primaryKey"`
	// Reason is the caller supplied trigger reason
	Reason string `gorm:"column:reason"`
	// Status is the run status, finalized once
	Status IngestRunStatus `gorm:"column:status;not null;index"`
	// Note is a free-text summary
	Note string `gorm:"column:note"`
	// DryRun indicates nothing was persisted
	DryRun bool `gorm:"column:dry_run;not null;default:false"`
	// ProtocolsProcessed is the number of protocols handled
	ProtocolsProcessed int `gorm:"column:protocols_processed;not null;default:0"`
	// PointsWritten is the number of metric points written (or prepared on dry runs)
	PointsWritten int `gorm:"column:points_written;not null;default:0"`
	// ErrorCount is the number of failed protocol/metric pairs
	ErrorCount int `gorm:"column:error_count;not null;default:0"`
	// StartedAt is when the run started
	StartedAt time.Time `gorm:"column:started_at;not null"`
	// FinishedAt is when the run was finalized
	FinishedAt *time.Time `gorm:"column:finished_at"`
}

// TableName specifies the table name for the IngestRun model
func (IngestRun) TableName() string {
	return "ingest_runs"
}
