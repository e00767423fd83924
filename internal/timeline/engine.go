package timeline

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/ytget/reel/internal/media"
	"github.com/ytget/reel/internal/model"
)

// Zoom and frame constants
const (
	BasePixelsPerSecond  = 50.0
	ZoomStep             = 1.5
	MinScale             = 0.5
	MaxScale             = 3.0
	DefaultFrameInterval = time.Second / 30
)

// Drag is an in-flight clip drag
type Drag struct {
	EntityID   string
	GrabOffset float64 // pointer distance from the clip's left edge, in pixels
}

// Snapshot is the observable engine state
type Snapshot struct {
	Playing       bool
	CurrentTime   float64
	Scale         float64
	TotalDuration float64
	Rate          model.PlaybackSpeed
	Dragging      string
}

// Engine drives the playhead and keeps media handles in sync
type Engine struct {
	mu          sync.Mutex
	handles     *HandleRegistry
	playing     bool
	starting    bool   // Play is seeking and starting handles
	gen         uint64 // bumped on every play/pause transition
	currentTime float64
	scale       float64
	total       float64
	rate        model.PlaybackSpeed
	drag        *Drag
	onClipMove  func(entityID string, start float64)
	onUpdate    func(Snapshot)
}

// NewEngine creates a paused engine at time zero with scale 1
func NewEngine() *Engine {
	return &Engine{
		handles: NewHandleRegistry(),
		scale:   1,
		total:   MinTotalDuration,
		rate:    model.SpeedNormal,
	}
}

// SetUpdateCallback sets the function called after every state change
func (e *Engine) SetUpdateCallback(callback func(Snapshot)) {
	e.mu.Lock()
	e.onUpdate = callback
	e.mu.Unlock()
}

// SetClipMoveCallback sets where drag results are written
func (e *Engine) SetClipMoveCallback(callback func(entityID string, start float64)) {
	e.mu.Lock()
	e.onClipMove = callback
	e.mu.Unlock()
}

// Handles returns the engine's handle registry
func (e *Engine) Handles() *HandleRegistry {
	return e.handles
}

// Register adds a media handle and applies the current playback rate to it
func (e *Engine) Register(id string, h media.Handle) {
	e.mu.Lock()
	rate := e.rate
	e.mu.Unlock()

	h.SetPlaybackRate(float64(rate))
	e.handles.Register(id, h)
}

// Unregister removes a media handle, pausing it first
func (e *Engine) Unregister(id string) {
	if h, ok := e.handles.Get(id); ok {
		h.Pause()
	}
	e.handles.Unregister(id)
}

// Snapshot returns the current state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// SetTotalDuration sets the ruler length; the playhead is clamped into it
func (e *Engine) SetTotalDuration(total float64) {
	e.mu.Lock()
	if total < 0 {
		total = 0
	}
	e.total = total
	if e.currentTime > total {
		e.currentTime = total
	}
	e.mu.Unlock()
	e.notify()
}

// SetTracks sets the ruler length from a track projection
func (e *Engine) SetTracks(tracks []model.Track) {
	e.SetTotalDuration(TotalDuration(tracks))
}

// Play seeks every handle to the playhead, then starts them
func (e *Engine) Play() {
	e.mu.Lock()
	if e.playing {
		e.mu.Unlock()
		return
	}
	t := e.currentTime
	e.playing = true
	e.starting = true
	e.gen++
	gen := e.gen
	e.mu.Unlock()

	handles := e.handles.Handles()
	for _, h := range handles {
		h.Seek(t)
	}
	for _, h := range handles {
		h.Play()
	}

	e.mu.Lock()
	if e.gen == gen {
		e.starting = false
	}
	e.mu.Unlock()
	e.notify()
}

// Pause stops every handle and pins the playhead to the first handle
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.playing {
		e.mu.Unlock()
		return
	}
	e.playing = false
	e.starting = false
	e.gen++
	gen := e.gen
	e.mu.Unlock()

	handles := e.handles.Handles()
	for _, h := range handles {
		h.Pause()
	}
	if len(handles) > 0 {
		t := handles[0].CurrentTime()
		e.mu.Lock()
		if e.gen == gen {
			e.currentTime = t
		}
		e.mu.Unlock()
	}
	e.notify()
}

// TogglePlayback plays when paused and pauses when playing
func (e *Engine) TogglePlayback() {
	if e.Snapshot().Playing {
		e.Pause()
	} else {
		e.Play()
	}
}

// Seek moves the playhead to t, clamped to the ruler. Scrubbing is only
// honoured while paused; it returns false while playing.
func (e *Engine) Seek(t float64) bool {
	e.mu.Lock()
	if e.playing {
		e.mu.Unlock()
		return false
	}
	t = math.Max(0, math.Min(t, e.total))
	e.currentTime = t
	e.mu.Unlock()

	for _, h := range e.handles.Handles() {
		h.Seek(t)
	}
	e.notify()
	return true
}

// SeekToPixel seeks to the time under a ruler x coordinate
func (e *Engine) SeekToPixel(x float64) bool {
	return e.Seek(e.TimeAt(x))
}

// Sync runs once per frame. While playing the playhead follows the slowest
// playing handle; when every handle has stopped, playback ends. Ticks that
// land while Play is still starting handles, or that race a transition, are
// dropped.
func (e *Engine) Sync() {
	e.mu.Lock()
	if !e.playing || e.starting {
		e.mu.Unlock()
		return
	}
	gen := e.gen
	e.mu.Unlock()

	handles := e.handles.Handles()
	min := math.Inf(1)
	for _, h := range handles {
		if h.IsPlaying() {
			min = math.Min(min, h.CurrentTime())
		}
	}

	e.mu.Lock()
	if !e.playing || e.starting || e.gen != gen {
		e.mu.Unlock()
		return
	}
	switch {
	case !math.IsInf(min, 1):
		e.currentTime = min
	case len(handles) > 0:
		e.playing = false
		e.gen++
	}
	e.mu.Unlock()
	e.notify()
}

// RunFrameLoop calls Sync every interval until ctx is done
func (e *Engine) RunFrameLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Sync()
		}
	}
}

// ZoomIn multiplies the scale by ZoomStep up to MaxScale
func (e *Engine) ZoomIn() float64 {
	e.mu.Lock()
	e.scale = math.Min(e.scale*ZoomStep, MaxScale)
	s := e.scale
	e.mu.Unlock()
	e.notify()
	return s
}

// ZoomOut divides the scale by ZoomStep down to MinScale
func (e *Engine) ZoomOut() float64 {
	e.mu.Lock()
	e.scale = math.Max(e.scale/ZoomStep, MinScale)
	s := e.scale
	e.mu.Unlock()
	e.notify()
	return s
}

// PixelsPerSecond returns the ruler density at the current zoom
func (e *Engine) PixelsPerSecond() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return BasePixelsPerSecond * e.scale
}

// TimeAt converts a ruler x coordinate to seconds
func (e *Engine) TimeAt(x float64) float64 {
	return x / e.PixelsPerSecond()
}

// BeginDrag starts dragging the clip of entityID. pointerX and clipLeft are
// in the same pixel space.
func (e *Engine) BeginDrag(entityID string, pointerX, clipLeft float64) {
	e.mu.Lock()
	e.drag = &Drag{EntityID: entityID, GrabOffset: pointerX - clipLeft}
	e.mu.Unlock()
	e.notify()
}

// DragTo moves the dragged clip so the grab point stays under the pointer.
// originX is the ruler's left edge. It returns the new start time, never
// negative, and false when no drag is in progress.
func (e *Engine) DragTo(pointerX, originX float64) (float64, bool) {
	e.mu.Lock()
	if e.drag == nil {
		e.mu.Unlock()
		return 0, false
	}
	drag := *e.drag
	pps := BasePixelsPerSecond * e.scale
	onMove := e.onClipMove
	e.mu.Unlock()

	start := math.Max(0, (pointerX-originX-drag.GrabOffset)/pps)
	if onMove != nil {
		onMove(drag.EntityID, start)
	}
	return start, true
}

// EndDrag finishes the drag in progress
func (e *Engine) EndDrag() {
	e.mu.Lock()
	e.drag = nil
	e.mu.Unlock()
	e.notify()
}

// SetPlaybackRate applies a supported speed to every handle, now and on
// registration
func (e *Engine) SetPlaybackRate(speed model.PlaybackSpeed) error {
	speed, err := model.NewPlaybackSpeed(float64(speed))
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.rate = speed
	e.mu.Unlock()

	for _, h := range e.handles.Handles() {
		h.SetPlaybackRate(float64(speed))
	}
	e.notify()
	return nil
}

func (e *Engine) snapshotLocked() Snapshot {
	s := Snapshot{
		Playing:       e.playing,
		CurrentTime:   e.currentTime,
		Scale:         e.scale,
		TotalDuration: e.total,
		Rate:          e.rate,
	}
	if e.drag != nil {
		s.Dragging = e.drag.EntityID
	}
	return s
}

func (e *Engine) notify() {
	e.mu.Lock()
	cb := e.onUpdate
	snap := e.snapshotLocked()
	e.mu.Unlock()
	if cb != nil {
		cb(snap)
	}
}
