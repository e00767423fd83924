package model

import (
	"fmt"
	"strings"
)

// Quality is an export resolution preset
type Quality string

const (
	Quality720p  Quality = "720p"
	Quality1080p Quality = "1080p"
)

// Height returns the output frame height in pixels
func (q Quality) Height() int {
	if q == Quality1080p {
		return 1080
	}
	return 720
}

// Valid reports whether q is a known preset
func (q Quality) Valid() bool {
	return q == Quality720p || q == Quality1080p
}

// ParseQuality accepts "720p", "1080p", "720" or "1080"
func ParseQuality(raw string) (Quality, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasSuffix(s, "p") {
		s += "p"
	}
	q := Quality(s)
	if !q.Valid() {
		return Quality720p, fmt.Errorf("unsupported export quality: %q", raw)
	}
	return q, nil
}
