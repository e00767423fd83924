package editor

import (
	"github.com/ytget/reel/internal/entity"
	"github.com/ytget/reel/internal/history"
	"github.com/ytget/reel/internal/model"
)

// VideoState holds imported clips and the playback settings applied on export
type VideoState struct {
	Items         []model.VideoItem
	PlaybackSpeed model.PlaybackSpeed
	SplitPoints   []model.SplitPoint
}

// LayerState holds every spatially placed kind. It is the undoable part of State.
type LayerState struct {
	Images   entity.Collection[model.ImageItem]
	Texts    entity.Collection[model.TextItem]
	Shapes   entity.Collection[model.ShapeItem]
	Stickers entity.Collection[model.StickerItem]
}

// MaxLayer returns the highest z-index over all placed kinds
func (l LayerState) MaxLayer() int {
	max := l.Images.MaxLayer()
	for _, z := range []int{l.Texts.MaxLayer(), l.Shapes.MaxLayer(), l.Stickers.MaxLayer()} {
		if z > max {
			max = z
		}
	}
	return max
}

// Has reports whether a placed entity of the given kind exists
func (l LayerState) Has(kind model.Kind, id string) bool {
	switch kind {
	case model.KindImage:
		return l.Images.Has(id)
	case model.KindText:
		return l.Texts.Has(id)
	case model.KindShape:
		return l.Shapes.Has(id)
	case model.KindSticker:
		return l.Stickers.Has(id)
	}
	return false
}

// TimelineState holds drag overrides of clip start times, keyed by entity id
type TimelineState struct {
	ClipStarts map[string]float64
}

// Selection holds at most one active id per kind
type Selection struct {
	Active map[model.Kind]string
}

// State is the whole editor state
type State struct {
	Videos    VideoState
	Layers    history.History[LayerState]
	Timeline  TimelineState
	Selection Selection
}

// NewState returns an empty editor
func NewState() State {
	return State{
		Videos: VideoState{PlaybackSpeed: model.SpeedNormal},
		Layers: history.New(LayerState{}),
		Timeline: TimelineState{
			ClipStarts: map[string]float64{},
		},
		Selection: Selection{
			Active: map[model.Kind]string{},
		},
	}
}

// Exists reports whether an entity of the given kind is present
func (s State) Exists(kind model.Kind, id string) bool {
	if kind == model.KindVideo {
		_, ok := SelectVideoByID(s, id)
		return ok
	}
	return s.Layers.Present.Has(kind, id)
}
