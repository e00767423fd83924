package ui

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/reel/internal/model"
	"github.com/ytget/reel/internal/timeline"
)

// Timeline text sizes
const (
	RulerLabelSize = 10
	ClipLabelSize  = 11
	TrackLabelSize = 12
)

// TimelineView draws the ruler, the tracks and the playhead. Tapping seeks,
// dragging a clip moves it along its track.
type TimelineView struct {
	widget.BaseWidget

	engine *timeline.Engine
	tracks func() []model.Track

	mu       sync.Mutex
	dragging bool
}

// NewTimelineView creates a timeline bound to an engine. tracks is called on
// every redraw.
func NewTimelineView(engine *timeline.Engine, tracks func() []model.Track) *TimelineView {
	tv := &TimelineView{engine: engine, tracks: tracks}
	tv.ExtendBaseWidget(tv)
	return tv
}

// clipFrame returns the on-screen box of a clip in track row row
func clipFrame(c model.Clip, row int, pps float64) (fyne.Position, fyne.Size) {
	x := TrackLabelWidth + float32(c.StartTime*pps)
	y := RulerHeight + float32(row)*TrackRowHeight + ClipPadding
	w := float32(c.Duration * pps)
	return fyne.NewPos(x, y), fyne.NewSize(w, TrackRowHeight-2*ClipPadding)
}

// clipAt returns the top-most clip under pos. Later clips in a row are drawn
// over earlier ones.
func clipAt(tracks []model.Track, pos fyne.Position, pps float64) (model.Clip, fyne.Position, bool) {
	if pos.Y < RulerHeight {
		return model.Clip{}, fyne.Position{}, false
	}
	row := int((pos.Y - RulerHeight) / TrackRowHeight)
	if row < 0 || row >= len(tracks) {
		return model.Clip{}, fyne.Position{}, false
	}
	clips := tracks[row].Clips
	for i := len(clips) - 1; i >= 0; i-- {
		at, size := clipFrame(clips[i], row, pps)
		if pos.X >= at.X && pos.X <= at.X+size.Width && pos.Y >= at.Y && pos.Y <= at.Y+size.Height {
			return clips[i], at, true
		}
	}
	return model.Clip{}, fyne.Position{}, false
}

// rulerX converts a widget x coordinate to the ruler's pixel space
func rulerX(x float32) float64 {
	return math.Max(0, float64(x-TrackLabelWidth))
}

// Tapped seeks to the time under the pointer
func (tv *TimelineView) Tapped(ev *fyne.PointEvent) {
	if ev.Position.X < TrackLabelWidth {
		return
	}
	tv.engine.SeekToPixel(rulerX(ev.Position.X))
}

// Dragged moves the clip grabbed at the start of the gesture
func (tv *TimelineView) Dragged(ev *fyne.DragEvent) {
	tv.mu.Lock()
	defer tv.mu.Unlock()

	if !tv.dragging {
		start := fyne.NewPos(ev.Position.X-ev.Dragged.DX, ev.Position.Y-ev.Dragged.DY)
		clip, at, ok := clipAt(tv.tracks(), start, tv.engine.PixelsPerSecond())
		if !ok {
			return
		}
		tv.engine.BeginDrag(clip.EntityID, float64(start.X), float64(at.X))
		tv.dragging = true
	}
	tv.engine.DragTo(float64(ev.Position.X), float64(TrackLabelWidth))
}

// DragEnd finishes the clip drag
func (tv *TimelineView) DragEnd() {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	if tv.dragging {
		tv.engine.EndDrag()
		tv.dragging = false
	}
}

// CreateRenderer creates the widget renderer
func (tv *TimelineView) CreateRenderer() fyne.WidgetRenderer {
	r := &timelineRenderer{view: tv}
	r.rebuild(tv.Size())
	return r
}

type timelineRenderer struct {
	view    *TimelineView
	objects []fyne.CanvasObject
}

func (r *timelineRenderer) Layout(size fyne.Size) { r.rebuild(size) }

// MinSize grows with the ruler so the view scrolls horizontally
func (r *timelineRenderer) MinSize() fyne.Size {
	snap := r.view.engine.Snapshot()
	pps := r.view.engine.PixelsPerSecond()
	rows := len(r.view.tracks())
	return fyne.NewSize(
		TrackLabelWidth+float32(snap.TotalDuration*pps),
		RulerHeight+float32(rows)*TrackRowHeight,
	)
}

func (r *timelineRenderer) Refresh() {
	r.rebuild(r.view.Size())
	canvas.Refresh(r.view)
}

func (r *timelineRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *timelineRenderer) Destroy() {}

func (r *timelineRenderer) rebuild(size fyne.Size) {
	snap := r.view.engine.Snapshot()
	pps := r.view.engine.PixelsPerSecond()
	tracks := r.view.tracks()

	bg := canvas.NewRectangle(CanvasColor)
	bg.Resize(size)
	objects := []fyne.CanvasObject{bg}
	objects = append(objects, rulerObjects(snap.TotalDuration, pps)...)

	for row, track := range tracks {
		y := RulerHeight + float32(row)*TrackRowHeight
		lane := canvas.NewRectangle(TrackBackgroundTint)
		lane.Move(fyne.NewPos(0, y+1))
		lane.Resize(fyne.NewSize(size.Width, TrackRowHeight-2))
		name := canvas.NewText(track.Name, color.White)
		name.TextSize = TrackLabelSize
		name.Move(fyne.NewPos(ClipPadding, y+ClipPadding))
		objects = append(objects, lane, name)

		for _, c := range track.Clips {
			at, extent := clipFrame(c, row, pps)
			fill := clipColor(c.Type)
			if snap.Dragging == c.EntityID {
				fill = DraggedClipColor
			}
			rect := canvas.NewRectangle(fill)
			rect.CornerRadius = ClipPadding
			rect.Move(at)
			rect.Resize(extent)
			label := canvas.NewText(cleanText(c.Name), color.White)
			label.TextSize = ClipLabelSize
			label.Move(fyne.NewPos(at.X+ClipPadding, at.Y+ClipPadding))
			objects = append(objects, rect, label)
		}
	}

	playhead := canvas.NewRectangle(PlayheadColor)
	playhead.Move(fyne.NewPos(TrackLabelWidth+float32(snap.CurrentTime*pps)-PlayheadWidth/2, 0))
	playhead.Resize(fyne.NewSize(PlayheadWidth, size.Height))
	objects = append(objects, playhead)

	r.objects = objects
}

// rulerObjects draws minor ticks every second and labelled major ticks
func rulerObjects(total, pps float64) []fyne.CanvasObject {
	var objects []fyne.CanvasObject
	for s := 0; float64(s) <= total; s += RulerMinorTick {
		x := TrackLabelWidth + float32(float64(s)*pps)
		tickHeight := RulerHeight / 3
		if s%RulerMajorTick == 0 {
			tickHeight = RulerHeight / 2
			label := canvas.NewText(timeline.FormatTime(float64(s)), RulerColor)
			label.TextSize = RulerLabelSize
			label.Move(fyne.NewPos(x+2, 0))
			objects = append(objects, label)
		}
		tick := canvas.NewLine(RulerColor)
		tick.Position1 = fyne.NewPos(x, RulerHeight-tickHeight)
		tick.Position2 = fyne.NewPos(x, RulerHeight)
		objects = append(objects, tick)
	}
	return objects
}

// TimelineControls holds the transport and zoom controls under the preview
type TimelineControls struct {
	engine    *timeline.Engine
	playBtn   *widget.Button
	timeLabel *widget.Label
	zoomLabel *widget.Label
	box       *fyne.Container
}

// NewTimelineControls creates play/pause and zoom controls for engine
func NewTimelineControls(engine *timeline.Engine) *TimelineControls {
	tc := &TimelineControls{engine: engine}
	tc.playBtn = widget.NewButton(IconPlay, engine.TogglePlayback)
	tc.playBtn.Importance = widget.HighImportance
	tc.timeLabel = widget.NewLabel("")
	tc.timeLabel.TextStyle = fyne.TextStyle{Monospace: true}
	tc.zoomLabel = widget.NewLabel("")

	zoomOut := widget.NewButton(IconZoomOut, func() { engine.ZoomOut() })
	zoomIn := widget.NewButton(IconZoomIn, func() { engine.ZoomIn() })

	tc.box = container.NewHBox(tc.playBtn, tc.timeLabel, widget.NewSeparator(), zoomOut, tc.zoomLabel, zoomIn)
	tc.Update(engine.Snapshot())
	return tc
}

// Container returns the controls row
func (tc *TimelineControls) Container() *fyne.Container {
	return tc.box
}

// Update reflects an engine snapshot. Must run on the UI goroutine.
func (tc *TimelineControls) Update(snap timeline.Snapshot) {
	if snap.Playing {
		tc.playBtn.SetText(IconPause)
	} else {
		tc.playBtn.SetText(IconPlay)
	}
	tc.timeLabel.SetText(fmt.Sprintf(TimeLabelFormat,
		timeline.FormatTime(snap.CurrentTime), timeline.FormatTime(snap.TotalDuration)))
	tc.zoomLabel.SetText(fmt.Sprintf(ProgressLabelFormat, int(math.Round(snap.Scale*MaxProgressPercent))))
}
