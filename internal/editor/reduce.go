package editor

import (
	"math"

	"github.com/ytget/reel/internal/history"
	"github.com/ytget/reel/internal/model"
)

// Reducer applies actions to a State. The zero value is not usable; create
// one with NewReducer.
type Reducer struct {
	layers func(history.History[LayerState], Action) history.History[LayerState]
}

// NewReducer creates a reducer whose layer history keeps at most limit
// past snapshots. A limit of zero or less means history.DefaultLimit.
func NewReducer(limit int) *Reducer {
	return &Reducer{
		layers: history.Wrap(reduceLayers, history.Options[LayerState, Action]{
			Limit:   limit,
			Neutral: historyNeutral,
		}),
	}
}

var defaultReducer = NewReducer(history.DefaultLimit)

// Reduce applies a with the default history limit
func Reduce(s State, a Action) State {
	return defaultReducer.Reduce(s, a)
}

// Reduce returns the state after a. s is never modified.
func (r *Reducer) Reduce(s State, a Action) State {
	switch a.(type) {
	case Undo:
		s.Layers = s.Layers.Undo()
	case Redo:
		s.Layers = s.Layers.Redo()
	case ClearHistory:
		s.Layers = s.Layers.Clear()
	default:
		s.Videos = reduceVideos(s.Videos, a)
		s.Layers = r.layers(s.Layers, a)
		s.Timeline = reduceTimeline(s.Timeline, a)
		s.Selection = reduceSelection(s.Selection, a)
	}
	return prune(s)
}

func reduceVideos(v VideoState, a Action) VideoState {
	switch a := a.(type) {
	case AddVideo:
		v.Items = append(append([]model.VideoItem(nil), v.Items...), a.Video)
	case RemoveItem:
		if a.Kind == model.KindVideo {
			v.Items = removeVideo(v.Items, a.ID)
		}
	case MoveItem:
		if a.Kind == model.KindVideo {
			v.Items = updateVideo(v.Items, a.ID, func(it *model.VideoItem) { it.Position = a.Position })
		}
	case ResizeItem:
		if a.Kind == model.KindVideo {
			v.Items = updateVideo(v.Items, a.ID, func(it *model.VideoItem) { it.Size = a.Size })
		}
	case SetFilter:
		if a.Kind == model.KindVideo {
			v.Items = updateVideo(v.Items, a.ID, func(it *model.VideoItem) { it.AppliedFilter = a.Effect })
		}
	case SetVideoEffect:
		v.Items = updateVideo(v.Items, a.ID, func(it *model.VideoItem) { it.AppliedEffect = a.Effect })
	case SetProcessedVideo:
		v.Items = updateVideo(v.Items, a.ID, func(it *model.VideoItem) {
			it.ProcessedURL = a.URL
			it.ProcessedData = a.Data
		})
	case ClearProcessedVideo:
		v.Items = updateVideo(v.Items, a.ID, func(it *model.VideoItem) {
			it.ProcessedURL = ""
			it.ProcessedData = nil
		})
	case SetPlaybackSpeed:
		if a.Speed.Valid() {
			v.PlaybackSpeed = a.Speed
		}
	case AddSplitPoint:
		if a.Point.Valid() {
			v.SplitPoints = append(append([]model.SplitPoint(nil), v.SplitPoints...), a.Point)
		}
	case ClearSplitPoints:
		v.SplitPoints = nil
	}
	return v
}

func updateVideo(items []model.VideoItem, id string, fn func(*model.VideoItem)) []model.VideoItem {
	for i := range items {
		if items[i].ID == id {
			next := append([]model.VideoItem(nil), items...)
			fn(&next[i])
			return next
		}
	}
	return items
}

func removeVideo(items []model.VideoItem, id string) []model.VideoItem {
	for i := range items {
		if items[i].ID == id {
			next := make([]model.VideoItem, 0, len(items)-1)
			next = append(next, items[:i]...)
			return append(next, items[i+1:]...)
		}
	}
	return items
}

func reduceLayers(l LayerState, a Action) LayerState {
	switch a := a.(type) {
	case AddImage:
		l.Images = l.Images.Add(a.Image, l.MaxLayer()+1)
	case AddText:
		text := a.Text
		if text.Type == "" {
			text.Type = model.TextBody
		}
		if text.Style == (model.TextStyle{}) {
			text.Style = model.DefaultTextStyle(text.Type)
		}
		text.IsEditing = false
		l.Texts = l.Texts.Add(text, l.MaxLayer()+1)
	case AddShape:
		l.Shapes = l.Shapes.Add(a.Shape, l.MaxLayer()+1)
	case AddSticker:
		l.Stickers = l.Stickers.Add(a.Sticker, l.MaxLayer()+1)
	case UpdateTextContent:
		l.Texts = l.Texts.Update(a.ID, func(t model.TextItem) model.TextItem {
			t.Content = a.Content
			return t
		})
	case UpdateTextStyle:
		l.Texts = l.Texts.Update(a.ID, func(t model.TextItem) model.TextItem {
			t.Style = a.Style
			return t
		})
	case SetTextEditing:
		l.Texts = l.Texts.Update(a.ID, func(t model.TextItem) model.TextItem {
			t.IsEditing = a.Editing
			return t
		})
	case SetShapeColor:
		l.Shapes = l.Shapes.Update(a.ID, func(s model.ShapeItem) model.ShapeItem {
			s.Color = a.Color
			return s
		})
	case RemoveItem:
		switch a.Kind {
		case model.KindImage:
			l.Images = l.Images.Delete(a.ID)
		case model.KindText:
			l.Texts = l.Texts.Delete(a.ID)
		case model.KindShape:
			l.Shapes = l.Shapes.Delete(a.ID)
		case model.KindSticker:
			l.Stickers = l.Stickers.Delete(a.ID)
		}
	case MoveItem:
		switch a.Kind {
		case model.KindImage:
			l.Images = l.Images.UpdatePosition(a.ID, a.Position)
		case model.KindText:
			l.Texts = l.Texts.UpdatePosition(a.ID, a.Position)
		case model.KindShape:
			l.Shapes = l.Shapes.UpdatePosition(a.ID, a.Position)
		case model.KindSticker:
			l.Stickers = l.Stickers.UpdatePosition(a.ID, a.Position)
		}
	case ResizeItem:
		switch a.Kind {
		case model.KindImage:
			l.Images = l.Images.Update(a.ID, func(i model.ImageItem) model.ImageItem {
				i.Size = a.Size
				return i
			})
		case model.KindShape:
			l.Shapes = l.Shapes.Update(a.ID, func(s model.ShapeItem) model.ShapeItem {
				s.Size = a.Size
				return s
			})
		case model.KindSticker:
			l.Stickers = l.Stickers.Update(a.ID, func(s model.StickerItem) model.StickerItem {
				s.Size = math.Max(a.Size.Width, a.Size.Height)
				return s
			})
		}
	case SetFilter:
		switch a.Kind {
		case model.KindImage:
			l.Images = l.Images.Update(a.ID, func(i model.ImageItem) model.ImageItem {
				i.AppliedFilter = a.Effect
				return i
			})
		case model.KindShape:
			l.Shapes = l.Shapes.Update(a.ID, func(s model.ShapeItem) model.ShapeItem {
				s.AppliedFilter = a.Effect
				return s
			})
		}
	case BringToFront:
		l = bringToFront(l, a.Kind, a.ID)
	}
	return l
}

// bringToFront gives the entity max+1 over all placed kinds
func bringToFront(l LayerState, kind model.Kind, id string) LayerState {
	if !l.Has(kind, id) {
		return l
	}
	z := l.MaxLayer() + 1
	switch kind {
	case model.KindImage:
		l.Images = l.Images.BringToFront(id, z)
	case model.KindText:
		l.Texts = l.Texts.BringToFront(id, z)
	case model.KindShape:
		l.Shapes = l.Shapes.BringToFront(id, z)
	case model.KindSticker:
		l.Stickers = l.Stickers.BringToFront(id, z)
	}
	return l
}

func reduceTimeline(t TimelineState, a Action) TimelineState {
	switch a := a.(type) {
	case SetClipStart:
		starts := make(map[string]float64, len(t.ClipStarts)+1)
		for k, v := range t.ClipStarts {
			starts[k] = v
		}
		starts[a.EntityID] = math.Max(0, a.Start)
		t.ClipStarts = starts
	case ResetClipStarts:
		t.ClipStarts = map[string]float64{}
	}
	return t
}

func reduceSelection(s Selection, a Action) Selection {
	switch a := a.(type) {
	case SetActive:
		active := copyActive(s.Active)
		active[a.Kind] = a.ID
		s.Active = active
	case ClearSelection:
		if a.Kind == "" {
			s.Active = map[model.Kind]string{}
			break
		}
		active := copyActive(s.Active)
		delete(active, a.Kind)
		s.Active = active
	}
	return s
}

func copyActive(m map[model.Kind]string) map[model.Kind]string {
	next := make(map[model.Kind]string, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	return next
}

// prune drops selections and clip overrides that point at entities which
// no longer exist, e.g. after a delete or an undo
func prune(s State) State {
	var active map[model.Kind]string
	for kind, id := range s.Selection.Active {
		if !s.Exists(kind, id) {
			if active == nil {
				active = copyActive(s.Selection.Active)
			}
			delete(active, kind)
		}
	}
	if active != nil {
		s.Selection.Active = active
	}

	var starts map[string]float64
	for id := range s.Timeline.ClipStarts {
		if !clipEntityExists(s, id) {
			if starts == nil {
				starts = make(map[string]float64, len(s.Timeline.ClipStarts))
				for k, v := range s.Timeline.ClipStarts {
					starts[k] = v
				}
			}
			delete(starts, id)
		}
	}
	if starts != nil {
		s.Timeline.ClipStarts = starts
	}
	return s
}

func clipEntityExists(s State, id string) bool {
	return s.Exists(model.KindVideo, id) || s.Exists(model.KindImage, id) || s.Exists(model.KindText, id)
}
