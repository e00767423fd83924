package media

import (
	"sync"
	"time"
)

// Handle is a playable media element the timeline keeps in sync
type Handle interface {
	CurrentTime() float64
	Seek(t float64)
	Play()
	Pause()
	SetPlaybackRate(rate float64)
	IsPlaying() bool
}

// ClockHandle is a software playback clock for a clip of known duration.
// It advances with wall time scaled by the playback rate and stops at the end.
type ClockHandle struct {
	mu       sync.Mutex
	duration float64
	rate     float64
	base     float64   // position at the last play/seek/rate change
	started  time.Time // wall time of the last play/seek/rate change while playing
	playing  bool
	now      func() time.Time
}

// NewClockHandle creates a paused clock at position zero
func NewClockHandle(duration float64) *ClockHandle {
	return &ClockHandle{duration: duration, rate: 1, now: time.Now}
}

// CurrentTime returns the playback position in seconds
func (h *ClockHandle) CurrentTime() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.positionLocked()
}

// Seek moves the clock to t, clamped to the clip
func (h *ClockHandle) Seek(t float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.base = h.clampLocked(t)
	h.started = h.now()
}

func (h *ClockHandle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.playing {
		return
	}
	h.started = h.now()
	h.playing = true
}

func (h *ClockHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.playing {
		return
	}
	h.base = h.positionLocked()
	h.playing = false
}

// SetPlaybackRate changes the speed without moving the position
func (h *ClockHandle) SetPlaybackRate(rate float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.base = h.positionLocked()
	h.started = h.now()
	h.rate = rate
}

// IsPlaying reports whether the clock runs. A clock that reached the end
// of its clip stops by itself.
func (h *ClockHandle) IsPlaying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.playing && h.duration > 0 && h.positionLocked() >= h.duration {
		h.base = h.duration
		h.playing = false
	}
	return h.playing
}

// PlaybackRate returns the current rate
func (h *ClockHandle) PlaybackRate() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rate
}

func (h *ClockHandle) positionLocked() float64 {
	if !h.playing {
		return h.base
	}
	elapsed := h.now().Sub(h.started).Seconds() * h.rate
	return h.clampLocked(h.base + elapsed)
}

func (h *ClockHandle) clampLocked(t float64) float64 {
	if t < 0 {
		return 0
	}
	if h.duration > 0 && t > h.duration {
		return h.duration
	}
	return t
}
