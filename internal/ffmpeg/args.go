package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ytget/reel/internal/effects"
	"github.com/ytget/reel/internal/export"
	"github.com/ytget/reel/internal/model"
)

// FFmpeg constants for encoding settings
const (
	VideoCodec    = "libx264"
	AudioCopy     = "copy"
	AudioCodec    = "aac"
	FastStartFlag = "+faststart"
	OutputFormat  = "mp4"

	ProgressPipeTarget = "pipe:2"
	ProgressTimePrefix = "out_time_us="
)

// Encoder holds the libx264 settings of a quality preset
type Encoder struct {
	Preset string
	CRF    string
	Height int
}

// EncoderFor returns the encoder settings for an export quality
func EncoderFor(q model.Quality) Encoder {
	if q == model.Quality1080p {
		return Encoder{Preset: "fast", CRF: "20", Height: q.Height()}
	}
	return Encoder{Preset: "ultrafast", CRF: "23", Height: model.Quality720p.Height()}
}

// Files are the scratch paths of one invocation
type Files struct {
	Input    string
	Overlay  string // image overlay input
	TextFile string // drawtext content
	FontFile string
	Output   string
}

// BuildArgs builds the ffmpeg arguments for one operation
func BuildArgs(req export.Request, files Files, enc Encoder) ([]string, error) {
	args := []string{"-y", "-i", files.Input}
	audio := AudioCopy
	scale := fmt.Sprintf("scale=-2:%d", enc.Height)

	switch req.Op {
	case export.OpTrim:
		if req.Params.Duration <= 0 {
			return nil, fmt.Errorf("invalid trim duration: %v", req.Params.Duration)
		}
		args = append(args,
			"-ss", formatFloat(req.Params.Start),
			"-t", formatFloat(req.Params.Duration),
			"-vf", scale,
		)

	case export.OpEffect:
		chain := req.Params.Effect.Export()
		if chain == "" {
			return nil, fmt.Errorf("%w: %q has no export filter", effects.ErrUnknownEffect, req.Params.Effect)
		}
		args = append(args, "-vf", chain+","+scale)

	case export.OpSpeed:
		speed, err := model.NewPlaybackSpeed(req.Params.Speed)
		if err != nil {
			return nil, err
		}
		args = append(args,
			"-filter:v", fmt.Sprintf("setpts=%s*PTS,%s", formatFloat(1/float64(speed)), scale),
			"-filter:a", "atempo="+formatFloat(float64(speed)),
		)
		audio = AudioCodec

	case export.OpImageOverlay:
		if files.Overlay == "" {
			return nil, fmt.Errorf("image overlay requires an overlay input")
		}
		p := req.Params
		graph := fmt.Sprintf(
			"[1:v][0:v]scale2ref=w=main_w*%s:h=main_h*%s[over][base];[over]format=rgba[o];[base][o]overlay=x=main_w*%s:y=main_h*%s:format=auto,%s[v]",
			formatFloat(p.Width), formatFloat(p.Height), formatFloat(p.X), formatFloat(p.Y), scale,
		)
		args = append(args,
			"-i", files.Overlay,
			"-filter_complex", graph,
			"-map", "[v]",
			"-map", "0:a?",
		)

	case export.OpTextOverlay:
		if files.TextFile == "" {
			return nil, fmt.Errorf("text overlay requires a text file")
		}
		args = append(args, "-vf", DrawText(req.Params, files)+","+scale)

	default:
		return nil, fmt.Errorf("unsupported operation: %s", req.Op)
	}

	return append(args,
		"-c:v", VideoCodec,
		"-preset", enc.Preset,
		"-crf", enc.CRF,
		"-c:a", audio,
		"-movflags", FastStartFlag,
		"-f", OutputFormat,
		"-progress", ProgressPipeTarget,
		"-nostats",
		files.Output,
	), nil
}

// DrawText builds the drawtext filter. Content is read from a file so it
// needs no escaping; position and size scale with the frame.
func DrawText(p export.Params, files Files) string {
	color := p.FontColor
	if color == "" {
		color = "#000000"
	}
	opts := []string{
		"textfile=" + escapeValue(files.TextFile),
		"x=w*" + formatFloat(p.X),
		"y=h*" + formatFloat(p.Y),
		"fontsize=h*" + formatFloat(p.FontSize),
		"fontcolor=" + color,
	}
	if files.FontFile != "" {
		opts = append(opts, "fontfile="+escapeValue(files.FontFile))
	}
	return "drawtext=" + strings.Join(opts, ":")
}

// OutputDuration returns how long the output of req will be, given the
// input duration, for progress reporting
func OutputDuration(req export.Request, input float64) float64 {
	switch req.Op {
	case export.OpTrim:
		return req.Params.Duration
	case export.OpSpeed:
		if req.Params.Speed > 0 {
			return input / req.Params.Speed
		}
	}
	return input
}

// escapeValue quotes a filter option value. Inside quotes only the quote
// itself needs escaping.
func escapeValue(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
