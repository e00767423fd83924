package editor

import (
	"github.com/ytget/reel/internal/effects"
	"github.com/ytget/reel/internal/model"
)

// Action is a typed state transition handled by Reduce
type Action interface {
	isAction()
}

// Video actions. Videos are not recorded in undo history.
type (
	AddVideo struct {
		Video model.VideoItem
	}

	// SetVideoEffect selects the look applied on export
	SetVideoEffect struct {
		ID     string
		Effect effects.Effect
	}

	// SetProcessedVideo caches an export output on the video. The previous
	// output handle, if any, becomes unreferenced.
	SetProcessedVideo struct {
		ID   string
		URL  string
		Data []byte
	}

	// ClearProcessedVideo drops the cached export output
	ClearProcessedVideo struct {
		ID string
	}

	SetPlaybackSpeed struct {
		Speed model.PlaybackSpeed
	}

	AddSplitPoint struct {
		Point model.SplitPoint
	}

	ClearSplitPoints struct{}
)

// Placed-object actions, recorded in undo history.
type (
	AddImage struct {
		Image model.ImageItem
	}

	AddText struct {
		Text model.TextItem
	}

	AddShape struct {
		Shape model.ShapeItem
	}

	AddSticker struct {
		Sticker model.StickerItem
	}

	UpdateTextContent struct {
		ID      string
		Content string
	}

	UpdateTextStyle struct {
		ID    string
		Style model.TextStyle
	}

	// SetTextEditing toggles the editing flag. It does not touch other texts
	// and is never recorded in history.
	SetTextEditing struct {
		ID      string
		Editing bool
	}

	SetShapeColor struct {
		ID    string
		Color string
	}
)

// Kind-addressed actions shared by several kinds.
type (
	// RemoveItem deletes an entity of any kind
	RemoveItem struct {
		Kind model.Kind
		ID   string
	}

	MoveItem struct {
		Kind     model.Kind
		ID       string
		Position model.Position
	}

	// ResizeItem sets the size of a video, image or shape. Stickers take the
	// larger side of Size.
	ResizeItem struct {
		Kind model.Kind
		ID   string
		Size model.Size
	}

	// SetFilter sets the preview filter of a video, image or shape
	SetFilter struct {
		Kind   model.Kind
		ID     string
		Effect effects.Effect
	}

	// BringToFront raises a placed entity above every other placed entity
	BringToFront struct {
		Kind model.Kind
		ID   string
	}
)

// History, timeline and selection actions.
type (
	Undo         struct{}
	Redo         struct{}
	ClearHistory struct{}

	// SetClipStart overrides where an entity's clip starts on the timeline
	SetClipStart struct {
		EntityID string
		Start    float64
	}

	ResetClipStarts struct{}

	SetActive struct {
		Kind model.Kind
		ID   string
	}

	// ClearSelection clears the active id of Kind, or of every kind when
	// Kind is empty
	ClearSelection struct {
		Kind model.Kind
	}
)

func (AddVideo) isAction()            {}
func (SetVideoEffect) isAction()      {}
func (SetProcessedVideo) isAction()   {}
func (ClearProcessedVideo) isAction() {}
func (SetPlaybackSpeed) isAction()    {}
func (AddSplitPoint) isAction()       {}
func (ClearSplitPoints) isAction()    {}
func (AddImage) isAction()            {}
func (AddText) isAction()             {}
func (AddShape) isAction()            {}
func (AddSticker) isAction()          {}
func (UpdateTextContent) isAction()   {}
func (UpdateTextStyle) isAction()     {}
func (SetTextEditing) isAction()      {}
func (SetShapeColor) isAction()       {}
func (RemoveItem) isAction()          {}
func (MoveItem) isAction()            {}
func (ResizeItem) isAction()          {}
func (SetFilter) isAction()           {}
func (BringToFront) isAction()        {}
func (Undo) isAction()                {}
func (Redo) isAction()                {}
func (ClearHistory) isAction()        {}
func (SetClipStart) isAction()        {}
func (ResetClipStarts) isAction()     {}
func (SetActive) isAction()           {}
func (ClearSelection) isAction()      {}

// historyNeutral reports placed-object actions that bypass undo recording
func historyNeutral(a Action) bool {
	_, ok := a.(SetTextEditing)
	return ok
}
