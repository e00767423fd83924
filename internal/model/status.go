package model

// JobStatus represents the status of an export or import job
type JobStatus string

const (
	// JobStatusPending means the job is accepted but no step has started
	JobStatusPending JobStatus = "Pending"

	// JobStatusRunning means a processing step is in flight
	JobStatusRunning JobStatus = "Running"

	// JobStatusCompleted means the job finished and its output was committed
	JobStatusCompleted JobStatus = "Completed"

	// JobStatusError means the job failed; nothing was committed
	JobStatusError JobStatus = "Error"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true if the job is pending or running
func (js JobStatus) IsActive() bool {
	return js == JobStatusPending || js == JobStatusRunning
}

// IsFinished returns true if the job completed or failed
func (js JobStatus) IsFinished() bool {
	return js == JobStatusCompleted || js == JobStatusError
}

// ExportState is the per-entity export guard
type ExportState string

const (
	ExportIdle    ExportState = "Idle"
	ExportRunning ExportState = "Running"
)
