package export

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSource is returned when the video to export does not exist
	ErrNoSource = errors.New("no source video")

	// ErrInvalidSource is returned when the video's source handle is empty or unresolvable
	ErrInvalidSource = errors.New("invalid source media")

	// ErrExportInProgress is returned for a second export of the same video
	ErrExportInProgress = errors.New("export already in progress")

	// ErrNothingToExport is returned when the plan has no steps
	ErrNothingToExport = errors.New("nothing to export")
)

// StepError reports the step that aborted a chain
type StepError struct {
	Index int
	Op    Op
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("export step %d (%s) failed: %v", e.Index+1, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
