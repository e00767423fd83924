package ui

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/ytget/reel/internal/model"
)

// Fallback colors
var (
	DefaultInkColor     = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	CanvasColor         = color.NRGBA{R: 24, G: 24, B: 27, A: 255}
	VideoFrameColor     = color.NRGBA{R: 39, G: 39, B: 42, A: 255}
	SelectionColor      = color.NRGBA{R: 59, G: 130, B: 246, A: 255}
	EditingColor        = color.NRGBA{R: 234, G: 179, B: 8, A: 255}
	RulerColor          = color.NRGBA{R: 113, G: 113, B: 122, A: 255}
	PlayheadColor       = color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	TransparentColor    = color.NRGBA{}
	VideoClipColor      = color.NRGBA{R: 59, G: 130, B: 246, A: 200}
	ImageClipColor      = color.NRGBA{R: 34, G: 197, B: 94, A: 200}
	TextClipColor       = color.NRGBA{R: 168, G: 85, B: 247, A: 200}
	DraggedClipColor    = color.NRGBA{R: 250, G: 204, B: 21, A: 220}
	TrackBackgroundTint = color.NRGBA{R: 63, G: 63, B: 70, A: 120}
)

// ParseHexColor parses #rgb, #rrggbb and #rrggbbaa colors
func ParseHexColor(s string) (color.NRGBA, bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}

// colorOr parses s and falls back to def on malformed input
func colorOr(s string, def color.NRGBA) color.NRGBA {
	if c, ok := ParseHexColor(s); ok {
		return c
	}
	return def
}

// clipColor picks the fill for a clip of the given track type
func clipColor(t model.TrackType) color.NRGBA {
	switch t {
	case model.TrackImage:
		return ImageClipColor
	case model.TrackText:
		return TextClipColor
	default:
		return VideoClipColor
	}
}

// ProgressPercent converts a 0..1 progress to a whole percent, never showing
// 0 once work has started
func ProgressPercent(progress float64, status model.JobStatus) int {
	if status == model.JobStatusCompleted {
		return MaxProgressPercent
	}
	percent := int(progress*MaxProgressPercent + RoundingCoefficient)
	if percent == 0 && progress > 0 {
		percent = MinProgressPercent
	}
	if percent < 0 {
		percent = 0
	}
	if percent > MaxProgressPercent {
		percent = MaxProgressPercent
	}
	return percent
}

// cleanText flattens control whitespace so labels stay on one line
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.TrimSpace(s)
}
