package export

import (
	"github.com/ytget/reel/internal/effects"
)

// Op names a processing operation
type Op string

const (
	OpTrim         Op = "trim"
	OpEffect       Op = "effect"
	OpSpeed        Op = "speed"
	OpImageOverlay Op = "image_overlay"
	OpTextOverlay  Op = "text_overlay"
)

// Params is the parameter set of one operation. Overlay geometry is
// expressed as fractions of the video frame so it is independent of the
// output resolution.
type Params struct {
	// trim
	Start    float64
	Duration float64

	// effect
	Effect effects.Effect

	// speed
	Speed float64

	// overlays
	X      float64 // left edge, fraction of frame width
	Y      float64 // top edge, fraction of frame height
	Width  float64 // fraction of frame width
	Height float64 // fraction of frame height

	// text overlay
	Text      string
	FontSize  float64 // fraction of frame height
	FontColor string
}

// Request is one call to a Processor
type Request struct {
	Op        Op
	Input     []byte
	InputName string // file name hint for the container format
	Overlay   []byte // image overlay data
	Params    Params

	// Progress, when set, receives the completion of this call in [0,1]
	Progress func(float64)
}
