package ffmpeg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/ytget/reel/internal/export"
	"github.com/ytget/reel/internal/media"
	"github.com/ytget/reel/internal/model"
)

// Scratch file names
const (
	FFmpegCommand      = "ffmpeg"
	ScratchPattern     = "reel-ffmpeg-*"
	InputBaseName      = "input"
	DefaultInputExt    = ".mp4"
	OverlayFileName    = "overlay.png"
	TextFileName       = "text.txt"
	OutputFileName     = "output.mp4"
	stderrTailLines    = 8
	microsecondsPerSec = 1000000.0
)

// Options configures a Processor
type Options struct {
	Command    string // ffmpeg binary, "ffmpeg" from PATH when empty
	FFprobe    string // ffprobe binary used for progress, "ffprobe" when empty
	FontFile   string // drawtext font, fontconfig default when empty
	Quality    model.Quality
	ScratchDir string // parent of per-call scratch dirs, os.TempDir when empty
}

// Processor runs export operations through ffmpeg, one call at a time
type Processor struct {
	mu     sync.Mutex
	qualMu sync.RWMutex
	opts   Options
	prober *media.Prober
}

// NewProcessor creates an ffmpeg-backed processor
func NewProcessor(opts Options) *Processor {
	if opts.Command == "" {
		opts.Command = FFmpegCommand
	}
	if !opts.Quality.Valid() {
		opts.Quality = model.Quality720p
	}
	return &Processor{
		opts:   opts,
		prober: media.NewProber(opts.FFprobe),
	}
}

// Quality returns the export quality preset
func (p *Processor) Quality() model.Quality {
	p.qualMu.RLock()
	defer p.qualMu.RUnlock()
	return p.opts.Quality
}

// SetQuality changes the preset used by subsequent operations
func (p *Processor) SetQuality(q model.Quality) {
	if !q.Valid() {
		return
	}
	p.qualMu.Lock()
	p.opts.Quality = q
	p.qualMu.Unlock()
}

// Available reports whether the ffmpeg binary can be found
func (p *Processor) Available() bool {
	_, err := exec.LookPath(p.opts.Command)
	return err == nil
}

// Process runs one operation and returns the encoded output
func (p *Processor) Process(ctx context.Context, req export.Request) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(req.Input) == 0 {
		return nil, fmt.Errorf("empty input for %s", req.Op)
	}

	dir, err := os.MkdirTemp(p.opts.ScratchDir, ScratchPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	files, err := p.writeInputs(dir, req)
	if err != nil {
		return nil, err
	}

	args, err := BuildArgs(req, files, EncoderFor(p.Quality()))
	if err != nil {
		return nil, err
	}

	var total float64
	if req.Progress != nil {
		if d, err := p.prober.Duration(ctx, files.Input); err != nil {
			log.Printf("Failed to get duration for %s, progress disabled: %v", req.Op, err)
		} else {
			total = OutputDuration(req, d)
		}
	}

	cmd := exec.CommandContext(ctx, p.opts.Command, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	tail := make(chan []string, 1)
	go func() {
		tail <- monitorProgress(stderr, total, req.Progress)
	}()

	waitErr := cmd.Wait()
	lines := <-tail
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if waitErr != nil {
		return nil, fmt.Errorf("ffmpeg %s failed: %w: %s", req.Op, waitErr, strings.Join(lines, "; "))
	}

	output, err := os.ReadFile(files.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to read ffmpeg output: %w", err)
	}
	if req.Progress != nil {
		req.Progress(1)
	}
	return output, nil
}

func (p *Processor) writeInputs(dir string, req export.Request) (Files, error) {
	ext := filepath.Ext(req.InputName)
	if ext == "" {
		ext = DefaultInputExt
	}
	files := Files{
		Input:    filepath.Join(dir, InputBaseName+ext),
		Output:   filepath.Join(dir, OutputFileName),
		FontFile: p.opts.FontFile,
	}
	if err := os.WriteFile(files.Input, req.Input, 0o600); err != nil {
		return files, fmt.Errorf("failed to write input: %w", err)
	}

	switch req.Op {
	case export.OpImageOverlay:
		files.Overlay = filepath.Join(dir, OverlayFileName)
		if err := os.WriteFile(files.Overlay, req.Overlay, 0o600); err != nil {
			return files, fmt.Errorf("failed to write overlay: %w", err)
		}
	case export.OpTextOverlay:
		files.TextFile = filepath.Join(dir, TextFileName)
		if err := os.WriteFile(files.TextFile, []byte(req.Params.Text), 0o600); err != nil {
			return files, fmt.Errorf("failed to write text: %w", err)
		}
	}
	return files, nil
}

// monitorProgress parses "-progress pipe:2" output and reports completion.
// It returns the last non-progress lines for error messages.
func monitorProgress(stderr io.ReadCloser, totalDuration float64, report func(float64)) []string {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)
	var tail []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, ProgressTimePrefix) {
			progress, ok := ParseProgress(line, totalDuration)
			if ok && report != nil {
				report(progress)
			}
			continue
		}
		if line == "" || strings.Contains(line, "=") {
			continue
		}
		tail = append(tail, line)
		if len(tail) > stderrTailLines {
			tail = tail[1:]
		}
	}
	return tail
}

// ParseProgress converts an "out_time_us=" line into a fraction of total
func ParseProgress(line string, totalDuration float64) (float64, bool) {
	if totalDuration <= 0 || !strings.HasPrefix(line, ProgressTimePrefix) {
		return 0, false
	}
	timeMicroseconds, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil {
		return 0, false
	}
	progress := float64(timeMicroseconds) / microsecondsPerSec / totalDuration
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0 {
		progress = 0
	}
	return progress, true
}
