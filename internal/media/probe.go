package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ytget/reel/internal/model"
)

// ffprobe invocation constants
const (
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	FFprobeStreamSelect = "v:0"
	FFprobeSizeEntries  = "stream=width,height"
	FFprobeSizeFormat   = "csv=p=0:s=x"
	ProbeScratchPattern = "reel-probe-*"
)

// Prober reads media metadata through ffprobe
type Prober struct {
	Command string
}

// NewProber creates a prober. An empty command means ffprobe from PATH.
func NewProber(command string) *Prober {
	if command == "" {
		command = FFprobeCommand
	}
	return &Prober{Command: command}
}

// Duration returns the duration of a media file in seconds
func (p *Prober) Duration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, p.Command, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}
	return ParseDuration(string(output))
}

// DurationOf probes an in-memory buffer by spilling it to a scratch file
func (p *Prober) DurationOf(ctx context.Context, data []byte, name string) (float64, error) {
	dir, err := os.MkdirTemp("", ProbeScratchPattern)
	if err != nil {
		return 0, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "input"+filepath.Ext(name))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return 0, fmt.Errorf("failed to write scratch file: %w", err)
	}
	return p.Duration(ctx, path)
}

// ParseDuration parses ffprobe's csv duration output
func ParseDuration(output string) (float64, error) {
	durationStr := strings.TrimSpace(output)
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// VideoSize returns the frame size of the first video stream
func (p *Prober) VideoSize(ctx context.Context, filePath string) (model.Size, error) {
	cmd := exec.CommandContext(ctx, p.Command, "-v", FFprobeLogLevel, "-select_streams", FFprobeStreamSelect,
		"-show_entries", FFprobeSizeEntries, "-of", FFprobeSizeFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return model.Size{}, fmt.Errorf("failed to run ffprobe: %w", err)
	}
	return ParseVideoSize(string(output))
}

// ParseVideoSize parses ffprobe's "WIDTHxHEIGHT" output
func ParseVideoSize(output string) (model.Size, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	w, h, ok := strings.Cut(strings.TrimSpace(line), "x")
	if !ok {
		return model.Size{}, fmt.Errorf("failed to parse video size: %q", output)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return model.Size{}, fmt.Errorf("failed to parse video width: %w", err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return model.Size{}, fmt.Errorf("failed to parse video height: %w", err)
	}
	if width <= 0 || height <= 0 {
		return model.Size{}, fmt.Errorf("invalid video size %dx%d", width, height)
	}
	return model.Size{Width: float64(width), Height: float64(height)}, nil
}

// ImageSize returns the natural pixel size of an encoded image
func ImageSize(data []byte) (model.Size, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.Size{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	return model.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}
