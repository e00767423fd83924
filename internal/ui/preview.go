package ui

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/reel/internal/editor"
	"github.com/ytget/reel/internal/effects"
	"github.com/ytget/reel/internal/media"
	"github.com/ytget/reel/internal/model"
)

// Preview sizing
const (
	PreviewMinWidth  float32 = 480
	PreviewMinHeight float32 = 270

	StickerGlyphRatio = 0.8
	VideoLabelSize    = 14
)

// viewport maps canvas pixel space onto the widget, letterboxed
type viewport struct {
	scale float64
	offX  float64
	offY  float64
}

// fitViewport scales the canvas to fit size while keeping its aspect ratio
func fitViewport(size fyne.Size, c model.Canvas) viewport {
	if c.Width <= 0 || c.Height <= 0 || size.Width <= 0 || size.Height <= 0 {
		return viewport{scale: 1}
	}
	scale := math.Min(float64(size.Width)/c.Width, float64(size.Height)/c.Height)
	return viewport{
		scale: scale,
		offX:  (float64(size.Width) - c.Width*scale) / 2,
		offY:  (float64(size.Height) - c.Height*scale) / 2,
	}
}

func (v viewport) toCanvas(p fyne.Position) model.Position {
	return model.Position{
		X: (float64(p.X) - v.offX) / v.scale,
		Y: (float64(p.Y) - v.offY) / v.scale,
	}
}

func (v viewport) toScreen(p model.Position) fyne.Position {
	return fyne.NewPos(float32(p.X*v.scale+v.offX), float32(p.Y*v.scale+v.offY))
}

func (v viewport) screenSize(s model.Size) fyne.Size {
	return fyne.NewSize(float32(s.Width*v.scale), float32(s.Height*v.scale))
}

// previewDrag is an in-flight move of one placed object. The move is
// dispatched once on release so a drag is a single undo step.
type previewDrag struct {
	kind   model.Kind
	id     string
	origin model.Position
	delta  model.Position
}

func (d *previewDrag) position() model.Position {
	return model.Position{X: d.origin.X + d.delta.X, Y: d.origin.Y + d.delta.Y}
}

// Preview draws the editor canvas and turns pointer gestures into edits
type Preview struct {
	widget.BaseWidget

	editor *editor.Editor
	images *imageCache

	mu   sync.Mutex
	drag *previewDrag

	onSelect   func(editor.Placed, bool)
	onEditText func(model.TextItem)
}

// NewPreview creates a preview bound to an editor and the media registry
func NewPreview(ed *editor.Editor, registry *media.Registry) *Preview {
	p := &Preview{
		editor: ed,
		images: newImageCache(registry),
	}
	p.ExtendBaseWidget(p)
	return p
}

// SetCallbacks sets the selection and text editing callbacks
func (p *Preview) SetCallbacks(onSelect func(editor.Placed, bool), onEditText func(model.TextItem)) {
	p.onSelect = onSelect
	p.onEditText = onEditText
}

func (p *Preview) viewport() viewport {
	return fitViewport(p.Size(), p.editor.Canvas())
}

// Tapped selects the front-most object under the pointer
func (p *Preview) Tapped(ev *fyne.PointEvent) {
	hit, ok := p.editor.ClickAt(p.viewport().toCanvas(ev.Position))
	if p.onSelect != nil {
		p.onSelect(hit, ok)
	}
}

// DoubleTapped starts editing a text under the pointer
func (p *Preview) DoubleTapped(ev *fyne.PointEvent) {
	st := p.editor.State()
	hit, ok := editor.HitTest(st, p.viewport().toCanvas(ev.Position))
	if !ok || hit.Kind != model.KindText {
		return
	}
	p.editor.BeginTextEditing(hit.ID)
	text, ok := p.editor.State().Layers.Present.Texts.Get(hit.ID)
	if ok && p.onEditText != nil {
		p.onEditText(text)
	}
}

// Dragged moves the object grabbed at the start of the gesture
func (p *Preview) Dragged(ev *fyne.DragEvent) {
	vp := p.viewport()

	p.mu.Lock()
	if p.drag == nil {
		start := fyne.NewPos(ev.Position.X-ev.Dragged.DX, ev.Position.Y-ev.Dragged.DY)
		hit, ok := editor.HitTest(p.editor.State(), vp.toCanvas(start))
		if !ok {
			p.mu.Unlock()
			return
		}
		p.drag = &previewDrag{kind: hit.Kind, id: hit.ID, origin: hit.Bounds.Min}
		p.mu.Unlock()

		p.editor.Select(hit.Kind, hit.ID)
		if p.onSelect != nil {
			p.onSelect(hit, true)
		}
		p.mu.Lock()
	}
	if p.drag != nil {
		p.drag.delta.X += float64(ev.Dragged.DX) / vp.scale
		p.drag.delta.Y += float64(ev.Dragged.DY) / vp.scale
	}
	p.mu.Unlock()
	p.Refresh()
}

// DragEnd commits the move
func (p *Preview) DragEnd() {
	p.mu.Lock()
	drag := p.drag
	p.drag = nil
	p.mu.Unlock()
	if drag == nil {
		return
	}
	p.editor.Move(drag.kind, drag.id, drag.position())
}

// currentDrag returns a copy of the drag in flight
func (p *Preview) currentDrag() (previewDrag, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drag == nil {
		return previewDrag{}, false
	}
	return *p.drag, true
}

// CreateRenderer creates the widget renderer
func (p *Preview) CreateRenderer() fyne.WidgetRenderer {
	r := &previewRenderer{preview: p}
	r.rebuild(p.Size())
	return r
}

type previewRenderer struct {
	preview *Preview
	objects []fyne.CanvasObject
}

func (r *previewRenderer) Layout(size fyne.Size) { r.rebuild(size) }

func (r *previewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(PreviewMinWidth, PreviewMinHeight)
}

func (r *previewRenderer) Refresh() {
	r.rebuild(r.preview.Size())
	canvas.Refresh(r.preview)
}

func (r *previewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *previewRenderer) Destroy() {}

// rebuild redraws every object from the current editor state
func (r *previewRenderer) rebuild(size fyne.Size) {
	p := r.preview
	st := p.editor.State()
	c := p.editor.Canvas()
	vp := fitViewport(size, c)
	drag, dragging := p.currentDrag()

	p.images.prune()

	bg := canvas.NewRectangle(color.Black)
	bg.Resize(size)
	frame := canvas.NewRectangle(CanvasColor)
	place(frame, vp, model.Position{}, model.Size{Width: c.Width, Height: c.Height})
	objects := []fyne.CanvasObject{bg, frame}

	activeVideo := editor.SelectActive(st, model.KindVideo)
	for _, v := range editor.SelectVideos(st) {
		pos := v.Position
		if dragging && drag.kind == model.KindVideo && drag.id == v.ID {
			pos = drag.position()
		}
		objects = append(objects, videoObjects(v, pos, vp, v.ID == activeVideo)...)
	}

	layers := st.Layers.Present
	for _, obj := range editor.PaintOrder(st) {
		pos := obj.Bounds.Min
		if dragging && drag.kind == obj.Kind && drag.id == obj.ID {
			pos = drag.position()
		}
		extent := model.Size{
			Width:  obj.Bounds.Max.X - obj.Bounds.Min.X,
			Height: obj.Bounds.Max.Y - obj.Bounds.Min.Y,
		}
		active := editor.SelectActive(st, obj.Kind) == obj.ID
		outline := SelectionColor

		switch obj.Kind {
		case model.KindImage:
			it, ok := layers.Images.Get(obj.ID)
			if !ok {
				continue
			}
			if img := p.images.get(it.URL, it.AppliedFilter); img != nil {
				ci := canvas.NewImageFromImage(img)
				ci.FillMode = canvas.ImageFillStretch
				place(ci, vp, pos, extent)
				objects = append(objects, ci)
			} else {
				placeholder := canvas.NewRectangle(VideoFrameColor)
				place(placeholder, vp, pos, extent)
				objects = append(objects, placeholder)
			}
		case model.KindShape:
			it, ok := layers.Shapes.Get(obj.ID)
			if !ok {
				continue
			}
			objects = append(objects, shapeObject(it, pos, vp))
		case model.KindSticker:
			it, ok := layers.Stickers.Get(obj.ID)
			if !ok {
				continue
			}
			glyph := canvas.NewText(it.Emoji, DefaultInkColor)
			glyph.TextSize = float32(it.Size * vp.scale * StickerGlyphRatio)
			glyph.Move(vp.toScreen(pos))
			objects = append(objects, glyph)
		case model.KindText:
			it, ok := layers.Texts.Get(obj.ID)
			if !ok {
				continue
			}
			objects = append(objects, textObject(it, pos, vp))
			if it.IsEditing {
				active, outline = true, EditingColor
			}
		}

		if active {
			objects = append(objects, outlineObject(vp, pos, extent, outline))
		}
	}

	r.objects = objects
}

// place positions and sizes an object in canvas coordinates
func place(obj fyne.CanvasObject, vp viewport, pos model.Position, size model.Size) {
	obj.Move(vp.toScreen(pos))
	obj.Resize(vp.screenSize(size))
}

func outlineObject(vp viewport, pos model.Position, size model.Size, stroke color.Color) fyne.CanvasObject {
	rect := canvas.NewRectangle(TransparentColor)
	rect.StrokeColor = stroke
	rect.StrokeWidth = SelectionStroke
	place(rect, vp, pos, size)
	return rect
}

func videoObjects(v model.VideoItem, pos model.Position, vp viewport, active bool) []fyne.CanvasObject {
	fill := VideoFrameColor
	if !v.AppliedFilter.IsNone() {
		fill = tint(fill, v.AppliedFilter)
	}
	rect := canvas.NewRectangle(fill)
	place(rect, vp, pos, v.Size)

	name := v.Name
	if v.HasProcessed() {
		name += MiddleDotSeparator + "processed"
	}
	label := canvas.NewText(name, color.White)
	label.TextSize = VideoLabelSize
	label.Move(vp.toScreen(model.Position{X: pos.X + model.TextPadding, Y: pos.Y + model.TextPadding}))

	objects := []fyne.CanvasObject{rect, label}
	if active {
		objects = append(objects, outlineObject(vp, pos, v.Size, SelectionColor))
	}
	return objects
}

func shapeObject(s model.ShapeItem, pos model.Position, vp viewport) fyne.CanvasObject {
	fill := colorOr(s.Color, SelectionColor)
	if !s.AppliedFilter.IsNone() {
		fill = tint(fill, s.AppliedFilter)
	}
	rect := canvas.NewRectangle(fill)
	size := vp.screenSize(s.Size)
	short := float32(math.Min(float64(size.Width), float64(size.Height)))
	switch s.Type {
	case model.ShapeBlob:
		rect.CornerRadius = short / 2
	case model.ShapeWave, model.ShapeSwirl:
		rect.CornerRadius = short / 4
	}
	place(rect, vp, pos, s.Size)
	return rect
}

func textObject(t model.TextItem, pos model.Position, vp viewport) fyne.CanvasObject {
	txt := canvas.NewText(t.Content, colorOr(t.Style.Color, DefaultInkColor))
	txt.TextSize = float32(t.Style.FontSize * vp.scale)
	switch t.Style.FontWeight {
	case "bold", "600", "700", "800", "900":
		txt.TextStyle = fyne.TextStyle{Bold: true}
	}
	txt.Move(vp.toScreen(model.Position{X: pos.X + model.TextPadding, Y: pos.Y + model.TextPadding}))
	return txt
}

// tint runs a single color through an effect so flat fills follow the filter
func tint(c color.NRGBA, e effects.Effect) color.NRGBA {
	px := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	px.SetNRGBA(0, 0, c)
	return e.Apply(px).NRGBAAt(0, 0)
}

// imageCache keeps decoded and filtered overlay images per handle
type imageCache struct {
	mu       sync.Mutex
	registry *media.Registry
	items    map[string]image.Image
	urls     map[string]string
}

func newImageCache(registry *media.Registry) *imageCache {
	return &imageCache{
		registry: registry,
		items:    make(map[string]image.Image),
		urls:     make(map[string]string),
	}
}

// get returns the image behind url with the effect applied, nil when the
// handle is gone or the data does not decode
func (c *imageCache) get(url string, effect effects.Effect) image.Image {
	key := url + "|" + effect.String()

	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.items[key]; ok {
		return img
	}

	data, err := c.registry.Bytes(url)
	if err != nil {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("Failed to decode overlay %s: %v", url, err)
		return nil
	}
	if !effect.IsNone() {
		img = effect.Apply(img)
	}
	c.items[key] = img
	c.urls[key] = url
	return img
}

// prune drops entries whose handle has been released
func (c *imageCache) prune() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, url := range c.urls {
		if !c.registry.Live(url) {
			delete(c.items, key)
			delete(c.urls, key)
		}
	}
}
