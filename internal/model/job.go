package model

import (
	"fmt"
	"strings"
	"time"
)

// ExportJob tracks one run of the export chain for a video
type ExportJob struct {
	ID         string
	VideoID    string
	VideoName  string
	Steps      []string  // operation names in execution order
	StepIndex  int       // index of the step in flight, len(Steps) when done
	Status     JobStatus
	Progress   float64   // 0.0 to 1.0
	LastError  string    // last error message if any
	OutputSize int64     // bytes of the committed output
	OutputPath string    // where the artifact was saved, if saved
	StartedAt  time.Time
	FinishedAt time.Time
}

// CurrentStep returns the name of the step in flight, or "" when none is
func (j *ExportJob) CurrentStep() string {
	if j.StepIndex < 0 || j.StepIndex >= len(j.Steps) {
		return ""
	}
	return j.Steps[j.StepIndex]
}

// GetDisplayTitle returns the video name, the output file name, or the job id
func (j *ExportJob) GetDisplayTitle() string {
	if j.VideoName != "" {
		return j.VideoName
	}
	if j.OutputPath != "" {
		parts := strings.FieldsFunc(j.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}
	return j.ID
}

// GetSizeString formats the output size for display, or "—" if unknown
func (j *ExportJob) GetSizeString() string {
	return FormatBytes(j.OutputSize)
}

// Elapsed returns how long the job ran (or has been running)
func (j *ExportJob) Elapsed() time.Duration {
	if j.StartedAt.IsZero() {
		return 0
	}
	if j.FinishedAt.IsZero() {
		return time.Since(j.StartedAt)
	}
	return j.FinishedAt.Sub(j.StartedAt)
}

// ImportTask tracks a remote clip fetched into the media library
type ImportTask struct {
	ID         string
	URL        string
	Status     JobStatus
	Progress   float64 // 0.0 to 1.0
	Title      string
	OutputPath string
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// FormatBytes renders a byte count in binary units, "—" for unknown sizes
func FormatBytes(n int64) string {
	if n <= 0 {
		return "—"
	}
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
