// Package effects defines the named visual transforms that can be applied to
// videos, images and shapes. Every effect is described once as a set of colour
// adjustments; the live preview (CSS-style filter string and in-process image
// filter) and the export-time ffmpeg filter chain are both rendered from that
// single description so the two cannot drift apart.
package effects

import (
	"errors"
	"fmt"
	"strings"
)

// Effect is a named visual transform
type Effect string

const (
	None       Effect = "none"
	Grayscale  Effect = "grayscale"
	Sepia      Effect = "sepia"
	Blur       Effect = "blur"
	Brightness Effect = "brightness"
	Contrast   Effect = "contrast"
	Vintage    Effect = "vintage"
	Cool       Effect = "cool"
	Warm       Effect = "warm"
	Cinematic  Effect = "cinematic"
	BW         Effect = "bw"
)

// ErrUnknownEffect is returned by Parse for names outside the closed set
var ErrUnknownEffect = errors.New("unknown effect")

// Adjust is the colour adjustment recipe of an effect. Zero values for the
// multiplicative fields mean "unchanged" (1.0).
type Adjust struct {
	Grayscale  float64 // 0..1
	Sepia      float64 // 0..1
	Blur       float64 // radius in pixels
	Brightness float64 // multiplier, 0 = unchanged
	Contrast   float64 // multiplier, 0 = unchanged
	Saturate   float64 // multiplier, 0 = unchanged
	HueRotate  float64 // degrees
}

type definition struct {
	label  string
	adjust Adjust
}

// definitions is the single source of truth for every effect
var definitions = map[Effect]definition{
	None:       {label: "Original"},
	Grayscale:  {label: "Grayscale", adjust: Adjust{Grayscale: 1}},
	Sepia:      {label: "Sepia", adjust: Adjust{Sepia: 1}},
	Blur:       {label: "Blur", adjust: Adjust{Blur: 4}},
	Brightness: {label: "Brightness", adjust: Adjust{Brightness: 1.5}},
	Contrast:   {label: "Contrast", adjust: Adjust{Contrast: 1.5}},
	Vintage:    {label: "Vintage", adjust: Adjust{Sepia: 0.7, Brightness: 0.8, Contrast: 1.2}},
	Cool:       {label: "Cool Tone", adjust: Adjust{Brightness: 0.9, Contrast: 1.1, HueRotate: 180}},
	Warm:       {label: "Warm Tone", adjust: Adjust{Brightness: 1.1, Contrast: 0.9, HueRotate: -20}},
	Cinematic:  {label: "Cinematic", adjust: Adjust{Contrast: 1.3, Brightness: 0.9, Saturate: 1.1}},
	BW:         {label: "Black & White", adjust: Adjust{Grayscale: 1, Contrast: 1.2}},
}

// order keeps menus and listings stable
var order = []Effect{None, Grayscale, Sepia, Blur, Brightness, Contrast, Vintage, Cool, Warm, Cinematic, BW}

// All returns every effect in display order
func All() []Effect {
	out := make([]Effect, len(order))
	copy(out, order)
	return out
}

// Filters returns the plain filter subset offered in the filter panel
func Filters() []Effect {
	return []Effect{None, Grayscale, Sepia, Blur, Brightness, Contrast}
}

// Looks returns the stylised effect subset offered in the effects panel
func Looks() []Effect {
	return []Effect{None, Vintage, Cool, Warm, Cinematic, BW}
}

// Parse converts a user-supplied name into an Effect. Empty string maps to None.
func Parse(name string) (Effect, error) {
	e := Effect(strings.ToLower(strings.TrimSpace(name)))
	if e == "" {
		return None, nil
	}
	if _, ok := definitions[e]; !ok {
		return None, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return e, nil
}

// Normalize maps the empty tag to None
func (e Effect) Normalize() Effect {
	if e == "" {
		return None
	}
	return e
}

// IsNone reports whether the effect leaves media unchanged
func (e Effect) IsNone() bool {
	return e.Normalize() == None
}

// Valid reports whether e is part of the closed set
func (e Effect) Valid() bool {
	_, ok := definitions[e.Normalize()]
	return ok
}

// String returns the string representation of Effect
func (e Effect) String() string {
	return string(e.Normalize())
}

// Label returns the human readable name
func (e Effect) Label() string {
	if d, ok := definitions[e.Normalize()]; ok {
		return d.label
	}
	return string(e)
}

// Adjust returns the colour recipe of the effect
func (e Effect) Adjust() Adjust {
	return definitions[e.Normalize()].adjust
}
