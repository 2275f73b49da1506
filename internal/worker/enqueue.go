package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raviagarwal526/aioscrew/internal/metrics"
	"github.com/raviagarwal526/aioscrew/internal/repository"
)

// Job type constants - these must match the JobHandler.Type() values
const (
	JobTypeExportRoster = "export_roster"
)

// Priority constants for job scheduling
const (
	PriorityLow    = 0
	PriorityNormal = 10
	PriorityHigh   = 20
)

// ExportRosterPayload is the payload for roster snapshot export jobs.
type ExportRosterPayload struct {
	VersionID uuid.UUID `json:"version_id"`
}

// EnqueueOption is a functional option for customizing job enqueue parameters.
type EnqueueOption func(*repository.EnqueueJobParams)

// WithPriority sets the job priority.
func WithPriority(priority int32) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.Priority = priority
	}
}

// WithMaxAttempts sets the maximum number of retry attempts.
func WithMaxAttempts(attempts int32) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.MaxAttempts = attempts
	}
}

// WithDelay schedules the job to run after a delay.
func WithDelay(delay time.Duration) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.ScheduledAt = time.Now().Add(delay)
	}
}

// EnqueueJob marshals payload and inserts a pending job.
func EnqueueJob(
	ctx context.Context,
	q repository.Querier,
	jobType string,
	payload any,
	opts ...EnqueueOption,
) (repository.Job, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return repository.Job{}, fmt.Errorf("marshal payload: %w", err)
	}

	params := repository.EnqueueJobParams{
		JobType:     jobType,
		Payload:     payloadJSON,
		Priority:    PriorityNormal,
		MaxAttempts: 3,
		ScheduledAt: time.Now(),
	}
	for _, opt := range opts {
		opt(&params)
	}

	job, err := q.EnqueueJob(ctx, params)
	if err != nil {
		return repository.Job{}, fmt.Errorf("enqueue job: %w", err)
	}
	metrics.JobEnqueued(jobType)
	return job, nil
}

// EnqueueExportRoster enqueues a snapshot export of a roster version.
func EnqueueExportRoster(
	ctx context.Context,
	q repository.Querier,
	versionID uuid.UUID,
	opts ...EnqueueOption,
) (repository.Job, error) {
	return EnqueueJob(ctx, q, JobTypeExportRoster, ExportRosterPayload{VersionID: versionID}, opts...)
}

// Enqueuer exposes job enqueueing to the HTTP layer.
type Enqueuer struct {
	queries repository.Querier
}

// NewEnqueuer creates an Enqueuer writing to q.
func NewEnqueuer(q repository.Querier) *Enqueuer {
	return &Enqueuer{queries: q}
}

// EnqueueExport schedules an export of versionID and returns the job ID.
func (e *Enqueuer) EnqueueExport(ctx context.Context, versionID uuid.UUID) (uuid.UUID, error) {
	job, err := EnqueueExportRoster(ctx, e.queries, versionID)
	if err != nil {
		return uuid.Nil, err
	}
	return job.ID, nil
}
