package effects

import (
	"image"

	"github.com/disintegration/gift"
)

// ImageFilters returns the gift filter list for the effect, in the same pass
// order as Preview and Export
func (e Effect) ImageFilters() []gift.Filter {
	a := e.Adjust()
	var filters []gift.Filter
	if a.Sepia > 0 {
		filters = append(filters, gift.Sepia(float32(a.Sepia*100)))
	}
	switch {
	case a.Grayscale >= 1:
		filters = append(filters, gift.Grayscale())
	case a.Grayscale > 0:
		filters = append(filters, gift.Saturation(float32(-a.Grayscale*100)))
	}
	if a.Brightness > 0 && a.Brightness != 1 {
		filters = append(filters, scaleRGB(float32(a.Brightness)))
	}
	if a.Contrast > 0 && a.Contrast != 1 {
		filters = append(filters, gift.Contrast(float32((a.Contrast-1)*100)))
	}
	if a.Saturate > 0 && a.Saturate != 1 {
		filters = append(filters, gift.Saturation(float32((a.Saturate-1)*100)))
	}
	if a.HueRotate != 0 {
		filters = append(filters, gift.Hue(float32(a.HueRotate)))
	}
	if a.Blur > 0 {
		filters = append(filters, gift.GaussianBlur(float32(a.Blur*blurSigmaRatio)))
	}
	return filters
}

// Apply renders the effect onto an in-memory image for the desktop preview
func (e Effect) Apply(src image.Image) *image.NRGBA {
	g := gift.New(e.ImageFilters()...)
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

// scaleRGB multiplies the colour channels, the CSS brightness() behaviour.
// gift.Brightness shifts additively instead.
func scaleRGB(m float32) gift.Filter {
	return gift.ColorFunc(func(r0, g0, b0, a0 float32) (r, g, b, a float32) {
		return clampUnit(r0 * m), clampUnit(g0 * m), clampUnit(b0 * m), a0
	})
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
