package effects

import (
	"math"
	"strconv"
	"strings"
)

// Export-time tuning. ffmpeg's eq brightness is additive in [-1,1] while the
// preview multiplies, so the multiplier delta is scaled down.
const (
	brightnessScale = 0.5
	blurSigmaRatio  = 0.5
)

// Preview renders the CSS filter expression used by the live preview
func (e Effect) Preview() string {
	a := e.Adjust()
	var parts []string
	if a.Sepia > 0 {
		parts = append(parts, "sepia("+percent(a.Sepia)+")")
	}
	if a.Grayscale > 0 {
		parts = append(parts, "grayscale("+percent(a.Grayscale)+")")
	}
	if a.Brightness > 0 {
		parts = append(parts, "brightness("+num(a.Brightness)+")")
	}
	if a.Contrast > 0 {
		parts = append(parts, "contrast("+num(a.Contrast)+")")
	}
	if a.Saturate > 0 {
		parts = append(parts, "saturate("+num(a.Saturate)+")")
	}
	if a.HueRotate != 0 {
		parts = append(parts, "hue-rotate("+num(a.HueRotate)+"deg)")
	}
	if a.Blur > 0 {
		parts = append(parts, "blur("+num(a.Blur)+"px)")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// Export renders the ffmpeg video filter chain (the -vf argument). None
// renders as the empty string.
func (e Effect) Export() string {
	a := e.Adjust()
	var chain []string
	if a.Sepia > 0 {
		chain = append(chain, sepiaMixer(a.Sepia))
	}
	if a.Grayscale > 0 {
		chain = append(chain, "hue=s="+num(1-a.Grayscale))
	}

	var eq []string
	if a.Brightness > 0 {
		eq = append(eq, "brightness="+num((a.Brightness-1)*brightnessScale))
	}
	if a.Contrast > 0 {
		eq = append(eq, "contrast="+num(a.Contrast))
	}
	if a.Saturate > 0 {
		eq = append(eq, "saturation="+num(a.Saturate))
	}
	if len(eq) > 0 {
		chain = append(chain, "eq="+strings.Join(eq, ":"))
	}

	if a.HueRotate != 0 {
		chain = append(chain, "hue=h="+num(a.HueRotate))
	}
	if a.Blur > 0 {
		chain = append(chain, "gblur=sigma="+num(a.Blur*blurSigmaRatio))
	}
	return strings.Join(chain, ",")
}

// sepiaMixer blends the identity matrix with the standard sepia matrix
func sepiaMixer(amount float64) string {
	sepia := [9]float64{.393, .769, .189, .349, .686, .168, .272, .534, .131}
	identity := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	var m [9]string
	for i := range sepia {
		m[i] = num(identity[i] + (sepia[i]-identity[i])*amount)
	}
	return "colorchannelmixer=" +
		m[0] + ":" + m[1] + ":" + m[2] + ":0:" +
		m[3] + ":" + m[4] + ":" + m[5] + ":0:" +
		m[6] + ":" + m[7] + ":" + m[8]
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

func percent(v float64) string {
	return num(v*100) + "%"
}
