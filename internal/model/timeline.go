package model

// TrackType groups clips of one media kind
type TrackType string

const (
	TrackVideo TrackType = "video"
	TrackAudio TrackType = "audio"
	TrackText  TrackType = "text"
	TrackImage TrackType = "image"
)

// Clip is a derived timeline segment referencing one entity
type Clip struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entityId"`
	Type      TrackType `json:"type"`
	Name      string    `json:"name"`
	StartTime float64   `json:"startTime"`
	Duration  float64   `json:"duration"`
	TrackID   string    `json:"trackId"`
	Src       string    `json:"src,omitempty"`
}

// EndTime returns the clip's end on the timeline
func (c Clip) EndTime() float64 {
	return c.StartTime + c.Duration
}

// Track is a same-kind grouping of clips
type Track struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Type  TrackType `json:"type"`
	Clips []Clip    `json:"clips"`
}

// End returns the latest clip end on the track
func (t Track) End() float64 {
	var end float64
	for _, c := range t.Clips {
		if e := c.EndTime(); e > end {
			end = e
		}
	}
	return end
}

// SplitPoint marks a trim range on the source clip
type SplitPoint struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

// Duration returns the length of the kept range
func (s SplitPoint) Duration() float64 {
	return s.EndTime - s.StartTime
}

// Valid reports whether the range is non-empty and starts at or after zero
func (s SplitPoint) Valid() bool {
	return s.StartTime >= 0 && s.EndTime > s.StartTime
}
