package metrics

import (
	"sync"
	"time"
)

// Job outcome label values.
const (
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"   // retries used up
	JobStatusRejected  = "rejected" // permanent error, never retried
)

// unregisteredJobType labels jobs whose type has no registered handler.
const unregisteredJobType = "unregistered"

var (
	jobTypesMu sync.RWMutex
	jobTypes   = make(map[string]struct{})
)

// RegisterJobType admits jobType as a label value. Jobs of any other type
// are counted under "unregistered", so stray rows in the jobs table cannot
// grow the label set.
func RegisterJobType(jobType string) {
	jobTypesMu.Lock()
	defer jobTypesMu.Unlock()
	jobTypes[jobType] = struct{}{}
}

func jobLabel(jobType string) string {
	jobTypesMu.RLock()
	defer jobTypesMu.RUnlock()
	if _, ok := jobTypes[jobType]; ok {
		return jobType
	}
	return unregisteredJobType
}

// JobEnqueued records a job added to the queue
func JobEnqueued(jobType string) {
	JobsEnqueuedTotal.WithLabelValues(jobLabel(jobType)).Inc()
}

// JobCompleted records a successful job completion
func JobCompleted(jobType string, duration time.Duration) {
	label := jobLabel(jobType)
	JobsTotal.WithLabelValues(label, JobStatusCompleted).Inc()
	JobDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// JobFailed records a job that will not run again. permanent separates jobs
// rejected outright from jobs that ran out of attempts.
func JobFailed(jobType string, permanent bool) {
	status := JobStatusFailed
	if permanent {
		status = JobStatusRejected
	}
	JobsTotal.WithLabelValues(jobLabel(jobType), status).Inc()
}

// JobRetried records a job retry attempt
func JobRetried(jobType string) {
	JobRetriesTotal.WithLabelValues(jobLabel(jobType)).Inc()
}

// StaleJobsRecovered records jobs reset after a worker died mid-run
func StaleJobsRecovered(count int64) {
	if count > 0 {
		StaleJobsRecoveredTotal.Add(float64(count))
	}
}
