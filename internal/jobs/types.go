// Package jobs defines the background work abstraction used to rebuild the
// formatted report view after transactions are appended. Rebuilds are
// best-effort: a failed rebuild never fails the conversation that queued it.
package jobs

import (
	"context"
	"time"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed after exhausting retries.
	JobStatusFailed JobStatus = "failed"
	// JobStatusRetrying indicates the job failed and is being retried.
	JobStatusRetrying JobStatus = "retrying"
)

// RebuildReportJob asks the worker to regenerate the human-readable report
// worksheet from the transaction log.
type RebuildReportJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// UserID is the chat user whose transaction triggered the rebuild.
	UserID string `json:"user_id"`

	// Reason describes what queued the rebuild, for observability.
	Reason string `json:"reason"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	// RetryCount is the number of times this job has been retried.
	RetryCount int `json:"retry_count"`

	// MaxRetries is the maximum number of retries allowed.
	MaxRetries int `json:"max_retries"`
}

// Publisher defines the interface for queueing rebuild jobs.
// This abstraction allows different queue implementations (in-memory now,
// Cloud Tasks or Pub/Sub for multi-instance deployments later).
type Publisher interface {
	// PublishRebuild queues a report rebuild job.
	PublishRebuild(ctx context.Context, job *RebuildReportJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer defines the interface for consuming rebuild jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs from the queue.
	// The handler function is called for each job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler processes one rebuild job. A returned error triggers a retry
// until MaxRetries is exhausted.
type JobHandler func(ctx context.Context, job *RebuildReportJob) error

// JobStore tracks job state so rebuild activity can be inspected.
type JobStore interface {
	// SaveJob saves or updates a job's state.
	SaveJob(ctx context.Context, job *RebuildReportJob) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*RebuildReportJob, error)

	// ListJobs retrieves jobs with optional filtering.
	ListJobs(ctx context.Context, filter JobFilter) ([]*RebuildReportJob, error)
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	// UserID filters jobs by the triggering user.
	UserID string

	// Status filters jobs by status.
	Status JobStatus

	// Limit limits the number of results.
	Limit int
}
