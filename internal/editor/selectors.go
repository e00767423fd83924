package editor

import (
	"github.com/ytget/reel/internal/model"
)

func SelectVideos(s State) []model.VideoItem {
	return append([]model.VideoItem(nil), s.Videos.Items...)
}

func SelectImages(s State) []model.ImageItem {
	return s.Layers.Present.Images.Items()
}

func SelectTexts(s State) []model.TextItem {
	return s.Layers.Present.Texts.Items()
}

func SelectShapes(s State) []model.ShapeItem {
	return s.Layers.Present.Shapes.Items()
}

func SelectStickers(s State) []model.StickerItem {
	return s.Layers.Present.Stickers.Items()
}

// SelectVideoByID returns the video with the given id
func SelectVideoByID(s State, id string) (model.VideoItem, bool) {
	for _, v := range s.Videos.Items {
		if v.ID == id {
			return v, true
		}
	}
	return model.VideoItem{}, false
}

// SelectActive returns the active id of a kind, "" when none
func SelectActive(s State, kind model.Kind) string {
	return s.Selection.Active[kind]
}

// SelectEditingText returns the text currently in editing mode
func SelectEditingText(s State) (model.TextItem, bool) {
	for _, t := range s.Layers.Present.Texts.Items() {
		if t.IsEditing {
			return t, true
		}
	}
	return model.TextItem{}, false
}

// SelectLastSplitPoint returns the split point honoured on export
func SelectLastSplitPoint(s State) (model.SplitPoint, bool) {
	if n := len(s.Videos.SplitPoints); n > 0 {
		return s.Videos.SplitPoints[n-1], true
	}
	return model.SplitPoint{}, false
}

func CanUndo(s State) bool { return s.Layers.CanUndo() }
func CanRedo(s State) bool { return s.Layers.CanRedo() }

// References returns every media handle reachable from s: video sources,
// cached export outputs and image sources in any history snapshot
func References(s State) map[string]struct{} {
	refs := make(map[string]struct{})
	add := func(url string) {
		if url != "" {
			refs[url] = struct{}{}
		}
	}
	for _, v := range s.Videos.Items {
		add(v.URL)
		add(v.ProcessedURL)
	}
	for _, snap := range s.Layers.Snapshots() {
		for _, img := range snap.Images.Items() {
			add(img.URL)
		}
	}
	return refs
}
