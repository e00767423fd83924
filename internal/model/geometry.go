package model

// Position is the top-left anchor of an object in canvas pixel space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a rectangular extent in canvas pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Canvas describes the preview surface that placed objects live on.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultCanvas matches the preview area of the editor window
var DefaultCanvas = Canvas{Width: 960, Height: 540}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min Position
	Max Position
}

// RectAt builds a rect from an anchor and a size
func RectAt(pos Position, size Size) Rect {
	return Rect{
		Min: pos,
		Max: Position{X: pos.X + size.Width, Y: pos.Y + size.Height},
	}
}

// Contains reports whether p lies inside the rect (edges inclusive)
func (r Rect) Contains(p Position) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ClampPosition keeps an object of the given size inside the canvas.
// Stores never validate bounds; callers clamp before dispatching.
func ClampPosition(pos Position, size Size, canvas Canvas) Position {
	maxX := canvas.Width - size.Width
	maxY := canvas.Height - size.Height
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	return Position{X: clamp(pos.X, 0, maxX), Y: clamp(pos.Y, 0, maxY)}
}

// ClampSize keeps a size within the canvas extent
func ClampSize(size Size, canvas Canvas) Size {
	return Size{
		Width:  clamp(size.Width, 0, canvas.Width),
		Height: clamp(size.Height, 0, canvas.Height),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
