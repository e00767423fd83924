package editor

import (
	"fmt"

	"github.com/ytget/reel/internal/effects"
	"github.com/ytget/reel/internal/model"
)

// Editor is the high-level editing surface used by the UI and CLI
type Editor struct {
	store  *Store
	canvas model.Canvas
}

// New creates an editor over store with the given canvas
func New(store *Store, canvas model.Canvas) *Editor {
	return &Editor{store: store, canvas: canvas}
}

// Store returns the underlying store
func (e *Editor) Store() *Store {
	return e.store
}

// State returns the current state
func (e *Editor) State() State {
	return e.store.State()
}

// Canvas returns the canvas placed objects are clamped to
func (e *Editor) Canvas() model.Canvas {
	return e.canvas
}

// AddVideo places an imported clip at the canvas origin, scaled to fit
func (e *Editor) AddVideo(url, name string, duration float64, size model.Size) model.VideoItem {
	v := model.VideoItem{
		ID:       NewID(model.KindVideo),
		URL:      url,
		Name:     name,
		Duration: duration,
		Size:     fitSize(size, e.canvas),
	}
	e.store.Dispatch(AddVideo{Video: v})
	return v
}

// AddImage places an image at pos
func (e *Editor) AddImage(url, name string, pos model.Position, size model.Size) model.ImageItem {
	size = fitSize(size, e.canvas)
	img := model.ImageItem{
		ID:       NewID(model.KindImage),
		URL:      url,
		Name:     name,
		Position: model.ClampPosition(pos, size, e.canvas),
		Size:     size,
	}
	e.store.Dispatch(AddImage{Image: img})
	added, _ := e.State().Layers.Present.Images.Get(img.ID)
	return added
}

// AddText places a text with the preset style for its role
func (e *Editor) AddText(content string, textType model.TextType, pos model.Position) model.TextItem {
	text := model.TextItem{
		ID:       NewID(model.KindText),
		Content:  content,
		Type:     textType,
		Position: pos,
		Style:    model.DefaultTextStyle(textType),
	}
	e.store.Dispatch(AddText{Text: text})
	added, _ := e.State().Layers.Present.Texts.Get(text.ID)
	return added
}

// AddShape places a vector shape
func (e *Editor) AddShape(shapeType model.ShapeType, pos model.Position, size model.Size, color string) model.ShapeItem {
	shape := model.ShapeItem{
		ID:       NewID(model.KindShape),
		Type:     shapeType,
		Position: model.ClampPosition(pos, size, e.canvas),
		Size:     size,
		Color:    color,
	}
	e.store.Dispatch(AddShape{Shape: shape})
	added, _ := e.State().Layers.Present.Shapes.Get(shape.ID)
	return added
}

// AddSticker places an emoji sticker
func (e *Editor) AddSticker(emoji string, pos model.Position, size float64) model.StickerItem {
	sticker := model.StickerItem{
		ID:       NewID(model.KindSticker),
		Emoji:    emoji,
		Position: model.ClampPosition(pos, model.Size{Width: size, Height: size}, e.canvas),
		Size:     size,
	}
	e.store.Dispatch(AddSticker{Sticker: sticker})
	added, _ := e.State().Layers.Present.Stickers.Get(sticker.ID)
	return added
}

// Move drags an entity to pos, keeping it inside the canvas
func (e *Editor) Move(kind model.Kind, id string, pos model.Position) {
	s := e.State()
	size, ok := entitySize(s, kind, id)
	if !ok {
		return
	}
	e.store.Dispatch(MoveItem{Kind: kind, ID: id, Position: model.ClampPosition(pos, size, e.canvas)})
}

// Resize changes the size of an entity, bounded by the canvas
func (e *Editor) Resize(kind model.Kind, id string, size model.Size) {
	e.store.Dispatch(ResizeItem{Kind: kind, ID: id, Size: model.ClampSize(size, e.canvas)})
}

// Delete removes an entity of any kind
func (e *Editor) Delete(kind model.Kind, id string) {
	e.store.Dispatch(RemoveItem{Kind: kind, ID: id})
}

// Select makes id the active entity of its kind and raises it to the front
func (e *Editor) Select(kind model.Kind, id string) {
	if !e.State().Exists(kind, id) {
		return
	}
	actions := []Action{SetActive{Kind: kind, ID: id}}
	if kind != model.KindVideo {
		actions = append(actions, BringToFront{Kind: kind, ID: id})
	}
	e.store.Dispatch(actions...)
}

// ClickAt selects the front-most entity under p, or clears the selection
// when the click lands on empty canvas
func (e *Editor) ClickAt(p model.Position) (Placed, bool) {
	hit, ok := HitTest(e.State(), p)
	if !ok {
		e.store.Dispatch(append([]Action{ClearSelection{}}, stopEditingAll(e.State())...)...)
		return Placed{}, false
	}
	e.Select(hit.Kind, hit.ID)
	return hit, true
}

// BeginTextEditing puts a text into editing mode after taking every other
// text out of it
func (e *Editor) BeginTextEditing(id string) {
	s := e.State()
	if !s.Exists(model.KindText, id) {
		return
	}
	var actions []Action
	for _, t := range SelectTexts(s) {
		if t.IsEditing && t.ID != id {
			actions = append(actions, SetTextEditing{ID: t.ID, Editing: false})
		}
	}
	actions = append(actions,
		SetTextEditing{ID: id, Editing: true},
		SetActive{Kind: model.KindText, ID: id},
	)
	e.store.Dispatch(actions...)
}

// EndTextEditing commits new content and leaves editing mode
func (e *Editor) EndTextEditing(id, content string) {
	s := e.State()
	text, ok := s.Layers.Present.Texts.Get(id)
	if !ok {
		return
	}
	actions := []Action{SetTextEditing{ID: id, Editing: false}}
	if text.Content != content {
		actions = append(actions, UpdateTextContent{ID: id, Content: content})
	}
	e.store.Dispatch(actions...)
}

// SetTextStyle replaces the style of a text
func (e *Editor) SetTextStyle(id string, style model.TextStyle) {
	e.store.Dispatch(UpdateTextStyle{ID: id, Style: style})
}

// SetShapeColor recolors a shape
func (e *Editor) SetShapeColor(id, color string) {
	e.store.Dispatch(SetShapeColor{ID: id, Color: color})
}

// SetFilter applies a preview filter to a video, image or shape
func (e *Editor) SetFilter(kind model.Kind, id string, effect effects.Effect) {
	e.store.Dispatch(SetFilter{Kind: kind, ID: id, Effect: effect.Normalize()})
}

// SetEffect selects the look a video gets on export
func (e *Editor) SetEffect(id string, effect effects.Effect) {
	e.store.Dispatch(SetVideoEffect{ID: id, Effect: effect.Normalize()})
}

// SetPlaybackSpeed validates and stores the export playback speed
func (e *Editor) SetPlaybackSpeed(speed model.PlaybackSpeed) error {
	if !speed.Valid() {
		return fmt.Errorf("%w: %v", model.ErrInvalidSpeed, float64(speed))
	}
	e.store.Dispatch(SetPlaybackSpeed{Speed: speed})
	return nil
}

// AddSplitPoint records a trim range
func (e *Editor) AddSplitPoint(p model.SplitPoint) error {
	if !p.Valid() {
		return fmt.Errorf("invalid split point: %.2f-%.2f", p.StartTime, p.EndTime)
	}
	e.store.Dispatch(AddSplitPoint{Point: p})
	return nil
}

// SetProcessed caches an export output on a video. The previous output is
// released by the store. It reports false when the video is gone and the
// output was not taken; the caller still owns url then.
func (e *Editor) SetProcessed(videoID, url string, data []byte) bool {
	next := e.store.Dispatch(SetProcessedVideo{ID: videoID, URL: url, Data: data})
	v, ok := SelectVideoByID(next, videoID)
	return ok && v.ProcessedURL == url
}

// SetClipStart stores a timeline drag override
func (e *Editor) SetClipStart(entityID string, start float64) {
	e.store.Dispatch(SetClipStart{EntityID: entityID, Start: start})
}

func (e *Editor) Undo() { e.store.Dispatch(Undo{}) }
func (e *Editor) Redo() { e.store.Dispatch(Redo{}) }

func stopEditingAll(s State) []Action {
	var actions []Action
	for _, t := range SelectTexts(s) {
		if t.IsEditing {
			actions = append(actions, SetTextEditing{ID: t.ID, Editing: false})
		}
	}
	return actions
}

func entitySize(s State, kind model.Kind, id string) (model.Size, bool) {
	l := s.Layers.Present
	switch kind {
	case model.KindVideo:
		if v, ok := SelectVideoByID(s, id); ok {
			return v.Size, true
		}
	case model.KindImage:
		if it, ok := l.Images.Get(id); ok {
			return it.Size, true
		}
	case model.KindShape:
		if it, ok := l.Shapes.Get(id); ok {
			return it.Size, true
		}
	case model.KindSticker:
		if it, ok := l.Stickers.Get(id); ok {
			return model.Size{Width: it.Size, Height: it.Size}, true
		}
	case model.KindText:
		if it, ok := l.Texts.Get(id); ok {
			b := it.Bounds()
			return model.Size{Width: b.Max.X - b.Min.X, Height: b.Max.Y - b.Min.Y}, true
		}
	}
	return model.Size{}, false
}

// fitSize scales size down, keeping its aspect ratio, until it fits the canvas
func fitSize(size model.Size, canvas model.Canvas) model.Size {
	if size.Width <= 0 || size.Height <= 0 {
		return model.Size{Width: canvas.Width, Height: canvas.Height}
	}
	scale := 1.0
	if size.Width > canvas.Width {
		scale = canvas.Width / size.Width
	}
	if s := canvas.Height / size.Height; size.Height*scale > canvas.Height {
		scale = s
	}
	return model.Size{Width: size.Width * scale, Height: size.Height * scale}
}
