package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-orderbook-cache/internal/domain"
)

// JobStatus represents the status of an order update job
type JobStatus string

const (
	// JobStatusWaiting is the status of a job ready to run once run_at has passed (new or awaiting retry)
	JobStatusWaiting JobStatus = "waiting"
	// JobStatusActive is the status of a job claimed by a worker
	JobStatusActive JobStatus = "active"
	// JobStatusCompleted is the status of a successfully processed job
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed is the status of a job that exhausted its attempts
	JobStatusFailed JobStatus = "failed"
)

// IsFinished reports whether the job reached a terminal status
func (s JobStatus) IsFinished() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// OrderUpdateJob represents the order_update_jobs table - the durable recomputation queue
type OrderUpdateJob struct {
	// ID is a time-sortable ULID assigned at enqueue time
	ID string `gorm:"column:id;primaryKey;type:text"`
	// JobID is the deterministic deduplication key: "<context>-<order id>"
	JobID string `gorm:"column:job_id;not null;uniqueIndex;type:text"`
	// Context is the deterministic description of the trigger
	Context string `gorm:"column:context;not null;type:text"`
	// OrderID is the order whose cached pointers must be recomputed
	OrderID string `gorm:"column:order_id;not null;type:text"`
	// Data is the full request payload
	Data datatypes.JSONType[domain.OrderInfo] `gorm:"column:data;not null;type:jsonb"`
	// Status is the job lifecycle status
	Status JobStatus `gorm:"column:status;not null;type:text;index:idx_order_update_jobs_status_run_at,priority:1"`
	// AttemptsMade counts how many times a worker claimed the job
	AttemptsMade int `gorm:"column:attempts_made;not null;default:0"`
	// MaxAttempts is the attempt ceiling captured at enqueue time
	MaxAttempts int `gorm:"column:max_attempts;not null"`
	// BackoffType is the retry backoff strategy captured at enqueue time (exponential or fixed)
	BackoffType string `gorm:"column:backoff_type;not null;type:text"`
	// BackoffDelayMs is the base retry delay captured at enqueue time
	BackoffDelayMs int64 `gorm:"column:backoff_delay_ms;not null"`
	// RunAt is the earliest time the job may be claimed
	RunAt time.Time `gorm:"column:run_at;not null;default:now();type:timestamptz;index:idx_order_update_jobs_status_run_at,priority:2"`
	// LockedBy is the id of the worker instance holding the job
	LockedBy *string `gorm:"column:locked_by;type:text"`
	// LockedUntil is when the worker's claim expires and the job counts as stalled
	LockedUntil *time.Time `gorm:"column:locked_until;type:timestamptz"`
	// LastError is the error message of the most recent failed attempt
	LastError *string `gorm:"column:last_error;type:text"`
	// FinishedAt is the timestamp when the job completed or permanently failed
	FinishedAt *time.Time `gorm:"column:finished_at;type:timestamptz"`
	// CreatedAt is the timestamp when the job was enqueued
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the job was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the OrderUpdateJob model
func (OrderUpdateJob) TableName() string {
	return "order_update_jobs"
}
