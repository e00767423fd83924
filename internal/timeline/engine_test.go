package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/ytget/reel/internal/model"
)

type fakeHandle struct {
	time    float64
	playing bool
	rate    float64
	seeks   []float64

	// one-shot hooks run inside the handle call
	onSeek func()
	onTime func()
}

func (h *fakeHandle) Play()                     { h.playing = true }
func (h *fakeHandle) Pause()                    { h.playing = false }
func (h *fakeHandle) IsPlaying() bool           { return h.playing }
func (h *fakeHandle) SetPlaybackRate(r float64) { h.rate = r }

func (h *fakeHandle) CurrentTime() float64 {
	if fn := h.onTime; fn != nil {
		h.onTime = nil
		fn()
	}
	return h.time
}

func (h *fakeHandle) Seek(t float64) {
	h.time = t
	h.seeks = append(h.seeks, t)
	if fn := h.onSeek; fn != nil {
		h.onSeek = nil
		fn()
	}
}

func TestZoomClamps(t *testing.T) {
	e := NewEngine()
	for i := 0; i < 4; i++ {
		e.ZoomIn()
	}
	if s := e.Snapshot().Scale; s != MaxScale {
		t.Errorf("Scale after four zoom-ins = %v, expected %v", s, MaxScale)
	}
	if pps := e.PixelsPerSecond(); pps != 150 {
		t.Errorf("PixelsPerSecond() = %v, expected 150", pps)
	}

	for i := 0; i < 10; i++ {
		e.ZoomOut()
	}
	if s := e.Snapshot().Scale; s != MinScale {
		t.Errorf("Scale after zoom-outs = %v, expected %v", s, MinScale)
	}
}

func TestSeekWhilePaused(t *testing.T) {
	e := NewEngine()
	a, b := &fakeHandle{}, &fakeHandle{}
	e.Register("a", a)
	e.Register("b", b)

	if !e.Seek(5) {
		t.Fatal("Seek while paused should be honoured")
	}
	if a.time != 5 || b.time != 5 {
		t.Errorf("handles at %v,%v, expected 5", a.time, b.time)
	}
	if e.Snapshot().CurrentTime != 5 {
		t.Errorf("CurrentTime = %v, expected 5", e.Snapshot().CurrentTime)
	}

	tests := []struct {
		input    float64
		expected float64
	}{
		{-3, 0},
		{1000, MinTotalDuration},
	}
	for _, test := range tests {
		e.Seek(test.input)
		if got := e.Snapshot().CurrentTime; got != test.expected {
			t.Errorf("Seek(%v) -> %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestSeekIgnoredWhilePlaying(t *testing.T) {
	e := NewEngine()
	h := &fakeHandle{}
	e.Register("a", h)
	e.Play()

	if e.Seek(7) {
		t.Error("Seek while playing should be ignored")
	}
	if h.time != 0 {
		t.Errorf("handle moved to %v while playing", h.time)
	}
}

func TestPlaySeeksThenPlays(t *testing.T) {
	e := NewEngine()
	e.Seek(2)
	h := &fakeHandle{time: 9}
	e.Register("a", h)

	e.Play()
	if !h.playing {
		t.Fatal("Expected handle to play")
	}
	if h.time != 2 {
		t.Errorf("handle at %v, expected seek to 2 before play", h.time)
	}
}

func TestSyncFollowsSlowestHandle(t *testing.T) {
	e := NewEngine()
	a, b, c := &fakeHandle{}, &fakeHandle{}, &fakeHandle{}
	e.Register("a", a)
	e.Register("b", b)
	e.Register("c", c)
	e.Play()

	a.time, b.time = 4.2, 3.9
	c.time, c.playing = 1.0, false // ended clips do not hold the playhead back
	e.Sync()

	if got := e.Snapshot().CurrentTime; got != 3.9 {
		t.Errorf("CurrentTime = %v, expected 3.9", got)
	}
}

func TestSyncStopsWhenAllHandlesEnd(t *testing.T) {
	e := NewEngine()
	h := &fakeHandle{}
	e.Register("a", h)
	e.Play()
	h.playing = false

	e.Sync()
	if e.Snapshot().Playing {
		t.Error("Expected playback to end once every handle stopped")
	}
}

func TestPausePinsToFirstHandle(t *testing.T) {
	e := NewEngine()
	first, second := &fakeHandle{}, &fakeHandle{}
	e.Register("first", first)
	e.Register("second", second)
	e.Play()

	first.time, second.time = 6.5, 6.1
	e.Pause()

	if first.playing || second.playing {
		t.Error("Expected every handle to pause")
	}
	if got := e.Snapshot().CurrentTime; got != 6.5 {
		t.Errorf("CurrentTime = %v, expected 6.5 from the first handle", got)
	}
}

func TestTogglePlayback(t *testing.T) {
	e := NewEngine()
	e.TogglePlayback()
	if !e.Snapshot().Playing {
		t.Error("Expected playing after first toggle")
	}
	e.TogglePlayback()
	if e.Snapshot().Playing {
		t.Error("Expected paused after second toggle")
	}
}

func TestDrag(t *testing.T) {
	e := NewEngine()
	var movedID string
	var movedStart float64
	e.SetClipMoveCallback(func(id string, start float64) {
		movedID, movedStart = id, start
	})

	if _, ok := e.DragTo(100, 0); ok {
		t.Error("DragTo without a drag should report false")
	}

	// clip starts at 150px (3s), grabbed 20px into the clip
	e.BeginDrag("video-1", 170, 150)

	start, ok := e.DragTo(270, 0)
	if !ok || start != 5 {
		t.Errorf("DragTo(270) = %v, %v, expected 5", start, ok)
	}
	if movedID != "video-1" || movedStart != 5 {
		t.Errorf("callback got %s@%v, expected video-1@5", movedID, movedStart)
	}

	if start, _ := e.DragTo(10, 0); start != 0 {
		t.Errorf("DragTo left of origin = %v, expected clamp to 0", start)
	}

	e.EndDrag()
	if e.Snapshot().Dragging != "" {
		t.Error("Expected drag to end")
	}
}

func TestPlaybackRate(t *testing.T) {
	e := NewEngine()
	early := &fakeHandle{}
	e.Register("early", early)

	if err := e.SetPlaybackRate(model.PlaybackSpeed(1.1)); err == nil {
		t.Error("Expected error for unsupported rate")
	}
	if err := e.SetPlaybackRate(model.SpeedOneAndHalf); err != nil {
		t.Fatalf("SetPlaybackRate() error: %v", err)
	}
	if early.rate != 1.5 {
		t.Errorf("registered handle rate = %v, expected 1.5", early.rate)
	}

	late := &fakeHandle{}
	e.Register("late", late)
	if late.rate != 1.5 {
		t.Errorf("late handle rate = %v, expected 1.5", late.rate)
	}
}

func TestUnregister(t *testing.T) {
	e := NewEngine()
	h := &fakeHandle{}
	e.Register("a", h)
	e.Play()
	e.Unregister("a")

	if h.playing {
		t.Error("Unregistered handle should be paused")
	}
	if e.Handles().Len() != 0 {
		t.Errorf("Len() = %d, expected 0", e.Handles().Len())
	}
}

func TestRunFrameLoopStopsOnCancel(t *testing.T) {
	e := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.RunFrameLoop(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunFrameLoop did not return after cancel")
	}
}

func TestUpdateCallback(t *testing.T) {
	e := NewEngine()
	var last Snapshot
	e.SetUpdateCallback(func(s Snapshot) { last = s })
	e.ZoomIn()
	if last.Scale != 1.5 {
		t.Errorf("callback scale = %v, expected 1.5", last.Scale)
	}
}

func TestFrameTickDuringPlayStartIsDropped(t *testing.T) {
	e := NewEngine()
	h := &fakeHandle{}
	e.Register("a", h)
	h.onSeek = e.Sync

	e.Play()

	if !e.Snapshot().Playing {
		t.Error("Playing = false, expected true after a tick during start")
	}
	if !h.playing {
		t.Error("handle should be playing")
	}
}

func TestSyncDoesNotOverwritePausePin(t *testing.T) {
	e := NewEngine()
	h := &fakeHandle{}
	e.Register("a", h)
	e.Seek(2)
	e.Play()

	h.onTime = func() {
		e.Pause()
		h.time = 9
	}
	e.Sync()

	snap := e.Snapshot()
	if snap.Playing {
		t.Error("Playing = true, expected false")
	}
	if snap.CurrentTime != 2 {
		t.Errorf("CurrentTime = %v, expected 2", snap.CurrentTime)
	}
}
