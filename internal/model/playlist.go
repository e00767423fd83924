package model

import (
	"time"
)

// PlaylistStatus represents the current status of a remote playlist listing
type PlaylistStatus string

const (
	PlaylistStatusParsing   PlaylistStatus = "parsing"
	PlaylistStatusReady     PlaylistStatus = "ready"
	PlaylistStatusImporting PlaylistStatus = "importing"
	PlaylistStatusCompleted PlaylistStatus = "completed"
	PlaylistStatusError     PlaylistStatus = "error"
)

// PlaylistEntry is one remote clip that can be imported into the media library
type PlaylistEntry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Status     JobStatus `json:"status"`
	OutputPath string    `json:"output_path,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Playlist is a remote listing of clips
type Playlist struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	URL       string           `json:"url"`
	Entries   []*PlaylistEntry `json:"entries"`
	Status    PlaylistStatus   `json:"status"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewPlaylist creates a playlist that is still being listed
func NewPlaylist(url string) *Playlist {
	now := time.Now()
	return &Playlist{
		URL:       url,
		Status:    PlaylistStatusParsing,
		Entries:   make([]*PlaylistEntry, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddEntry appends an entry in pending state
func (p *Playlist) AddEntry(entry *PlaylistEntry) {
	if entry.Status == "" {
		entry.Status = JobStatusPending
	}
	p.Entries = append(p.Entries, entry)
	p.UpdatedAt = time.Now()
}

// UpdateStatus updates the playlist status
func (p *Playlist) UpdateStatus(status PlaylistStatus) {
	p.Status = status
	p.UpdatedAt = time.Now()
}

// FinishEntry records the outcome of importing one entry
func (p *Playlist) FinishEntry(id, outputPath string, err error) {
	for _, e := range p.Entries {
		if e.ID != id {
			continue
		}
		if err != nil {
			e.Status = JobStatusError
			e.Error = err.Error()
		} else {
			e.Status = JobStatusCompleted
			e.OutputPath = outputPath
		}
		p.UpdatedAt = time.Now()
		return
	}
}

// Pending returns entries not yet imported
func (p *Playlist) Pending() []*PlaylistEntry {
	var pending []*PlaylistEntry
	for _, e := range p.Entries {
		if e.Status == JobStatusPending {
			pending = append(pending, e)
		}
	}
	return pending
}

// Progress returns the share of finished entries, 0.0 to 1.0
func (p *Playlist) Progress() float64 {
	if len(p.Entries) == 0 {
		return 0
	}
	done := 0
	for _, e := range p.Entries {
		if e.Status.IsFinished() {
			done++
		}
	}
	return float64(done) / float64(len(p.Entries))
}

// HasErrors checks if any entry failed
func (p *Playlist) HasErrors() bool {
	for _, e := range p.Entries {
		if e.Status == JobStatusError {
			return true
		}
	}
	return false
}
