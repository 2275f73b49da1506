package worker

import (
	"context"
	"errors"
)

// JobHandler executes one type of background job.
type JobHandler interface {
	// Type returns the job_type value this handler processes.
	Type() string

	// Handle runs the job. payload is the raw JSON stored with the job.
	// Return NewPermanentError to fail the job without retries.
	Handle(ctx context.Context, payload []byte) error
}

// HandlerFunc adapts a function to JobHandler for the given job type.
type HandlerFunc struct {
	JobType string
	Fn      func(ctx context.Context, payload []byte) error
}

// Type returns the job type.
func (h HandlerFunc) Type() string { return h.JobType }

// Handle calls Fn.
func (h HandlerFunc) Handle(ctx context.Context, payload []byte) error { return h.Fn(ctx, payload) }

// PermanentError marks a job failure that must not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// NewPermanentError wraps err so the worker fails the job immediately.
func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err, or anything it wraps, is a PermanentError.
func IsPermanent(err error) bool {
	var permErr *PermanentError
	return errors.As(err, &permErr)
}
