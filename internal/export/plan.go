package export

import (
	"fmt"

	"github.com/ytget/reel/internal/editor"
	"github.com/ytget/reel/internal/model"
)

// Step is one planned operation. Image overlays carry the handle of the
// overlay image, resolved when the step runs.
type Step struct {
	Op         Op
	Params     Params
	OverlayURL string
	Label      string
}

// Plan derives the ordered processing steps for a video: trim (last split
// point only), effect, speed, image overlays and text overlays in list order
func Plan(s editor.State, videoID string) ([]Step, error) {
	video, ok := editor.SelectVideoByID(s, videoID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSource, videoID)
	}
	frame := video.Size
	if frame.Width <= 0 || frame.Height <= 0 {
		frame = model.Size{Width: model.DefaultCanvas.Width, Height: model.DefaultCanvas.Height}
	}

	var steps []Step

	if sp, ok := editor.SelectLastSplitPoint(s); ok && sp.Valid() {
		steps = append(steps, Step{
			Op:     OpTrim,
			Params: Params{Start: sp.StartTime, Duration: sp.Duration()},
			Label:  fmt.Sprintf("Trim %.2fs-%.2fs", sp.StartTime, sp.EndTime),
		})
	}

	if effect := video.AppliedEffect.Normalize(); !effect.IsNone() {
		steps = append(steps, Step{
			Op:     OpEffect,
			Params: Params{Effect: effect},
			Label:  "Effect " + effect.Label(),
		})
	}

	if speed := s.Videos.PlaybackSpeed; speed.Valid() && !speed.IsNormal() {
		steps = append(steps, Step{
			Op:     OpSpeed,
			Params: Params{Speed: float64(speed)},
			Label:  "Speed " + speed.String(),
		})
	}

	for _, img := range editor.SelectImages(s) {
		steps = append(steps, Step{
			Op: OpImageOverlay,
			Params: Params{
				X:      (img.Position.X - video.Position.X) / frame.Width,
				Y:      (img.Position.Y - video.Position.Y) / frame.Height,
				Width:  img.Size.Width / frame.Width,
				Height: img.Size.Height / frame.Height,
			},
			OverlayURL: img.URL,
			Label:      "Image " + img.Name,
		})
	}

	for _, text := range editor.SelectTexts(s) {
		steps = append(steps, Step{
			Op: OpTextOverlay,
			Params: Params{
				X:         (text.Position.X - video.Position.X) / frame.Width,
				Y:         (text.Position.Y - video.Position.Y) / frame.Height,
				Text:      text.Content,
				FontSize:  text.Style.FontSize / frame.Height,
				FontColor: text.Style.Color,
			},
			Label: fmt.Sprintf("Text %q", text.Content),
		})
	}

	return steps, nil
}

// Ops returns the operation names of steps, in order
func Ops(steps []Step) []string {
	ops := make([]string, len(steps))
	for i, s := range steps {
		ops[i] = string(s.Op)
	}
	return ops
}
