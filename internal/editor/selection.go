package editor

import (
	"github.com/ytget/reel/internal/model"
)

// renderOrder ranks kinds drawn later on equal z-index
var renderOrder = map[model.Kind]int{
	model.KindImage:   0,
	model.KindShape:   1,
	model.KindSticker: 2,
	model.KindText:    3,
}

// Placed is a hit-testable object on the canvas
type Placed struct {
	Kind   model.Kind
	ID     string
	Z      int
	Bounds model.Rect
}

// above reports whether p is drawn on top of q
func (p Placed) above(q Placed) bool {
	if p.Z != q.Z {
		return p.Z > q.Z
	}
	return renderOrder[p.Kind] > renderOrder[q.Kind]
}

func placedObjects(l LayerState) []Placed {
	var out []Placed
	for _, it := range l.Images.Items() {
		out = append(out, Placed{model.KindImage, it.ID, it.ZIndex, it.Bounds()})
	}
	for _, it := range l.Shapes.Items() {
		out = append(out, Placed{model.KindShape, it.ID, it.ZIndex, it.Bounds()})
	}
	for _, it := range l.Stickers.Items() {
		out = append(out, Placed{model.KindSticker, it.ID, it.ZIndex, it.Bounds()})
	}
	for _, it := range l.Texts.Items() {
		out = append(out, Placed{model.KindText, it.ID, it.ZIndex, it.Bounds()})
	}
	return out
}

// PaintOrder returns placed objects back to front
func PaintOrder(s State) []Placed {
	objs := placedObjects(s.Layers.Present)
	// insertion sort keeps equal elements in list order
	for i := 1; i < len(objs); i++ {
		for j := i; j > 0 && objs[j-1].above(objs[j]); j-- {
			objs[j-1], objs[j] = objs[j], objs[j-1]
		}
	}
	return objs
}

// HitTest returns the front-most object containing p. Placed kinds win over
// videos, which render beneath every overlay.
func HitTest(s State, p model.Position) (Placed, bool) {
	var best Placed
	found := false
	for _, obj := range placedObjects(s.Layers.Present) {
		if !obj.Bounds.Contains(p) {
			continue
		}
		if !found || obj.above(best) {
			best, found = obj, true
		}
	}
	if found {
		return best, true
	}
	for i := len(s.Videos.Items) - 1; i >= 0; i-- {
		v := s.Videos.Items[i]
		if model.RectAt(v.Position, v.Size).Contains(p) {
			return Placed{Kind: model.KindVideo, ID: v.ID, Bounds: model.RectAt(v.Position, v.Size)}, true
		}
	}
	return Placed{}, false
}
