package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PlaybackSpeed is a playback-rate multiplier from a closed set
type PlaybackSpeed float64

const (
	SpeedHalf          PlaybackSpeed = 0.5
	SpeedThreeQuarters PlaybackSpeed = 0.75
	SpeedNormal        PlaybackSpeed = 1
	SpeedOneAndQuarter PlaybackSpeed = 1.25
	SpeedOneAndHalf    PlaybackSpeed = 1.5
	SpeedDouble        PlaybackSpeed = 2
)

// ErrInvalidSpeed is returned for values outside the supported set
var ErrInvalidSpeed = errors.New("unsupported playback speed")

// PlaybackSpeeds returns the supported speeds in ascending order
func PlaybackSpeeds() []PlaybackSpeed {
	return []PlaybackSpeed{SpeedHalf, SpeedThreeQuarters, SpeedNormal, SpeedOneAndQuarter, SpeedOneAndHalf, SpeedDouble}
}

// Valid reports whether s is one of the supported speeds
func (s PlaybackSpeed) Valid() bool {
	for _, v := range PlaybackSpeeds() {
		if v == s {
			return true
		}
	}
	return false
}

// IsNormal reports whether the speed leaves timing untouched
func (s PlaybackSpeed) IsNormal() bool {
	return s == SpeedNormal
}

// String returns the speed formatted like "1.5x"
func (s PlaybackSpeed) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64) + "x"
}

// NewPlaybackSpeed validates a raw multiplier. Unsupported values are rejected
// rather than clamped.
func NewPlaybackSpeed(v float64) (PlaybackSpeed, error) {
	s := PlaybackSpeed(v)
	if !s.Valid() {
		return SpeedNormal, fmt.Errorf("%w: %v", ErrInvalidSpeed, v)
	}
	return s, nil
}

// ParsePlaybackSpeed accepts "1.5" or "1.5x"
func ParsePlaybackSpeed(raw string) (PlaybackSpeed, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(strings.ToLower(raw)), "x")
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return SpeedNormal, fmt.Errorf("%w: %q", ErrInvalidSpeed, raw)
	}
	return NewPlaybackSpeed(v)
}
