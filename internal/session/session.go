package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ytget/reel/internal/config"
	"github.com/ytget/reel/internal/editor"
	"github.com/ytget/reel/internal/export"
	"github.com/ytget/reel/internal/ffmpeg"
	"github.com/ytget/reel/internal/importer"
	"github.com/ytget/reel/internal/journal"
	"github.com/ytget/reel/internal/media"
	"github.com/ytget/reel/internal/model"
	"github.com/ytget/reel/internal/platform"
	"github.com/ytget/reel/internal/timeline"
)

// Naming of saved artifacts
const (
	ExportSuffix    = "-export"
	ExportExtension = ".mp4"
)

var (
	// ErrNotProcessed is returned when saving a video that has no export yet
	ErrNotProcessed = errors.New("video has no processed output")

	// ErrUnknownVideo is returned for ids that are not in the editor
	ErrUnknownVideo = errors.New("unknown video")
)

// Prober reads media metadata
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
	VideoSize(ctx context.Context, path string) (model.Size, error)
}

// Options configures a Session
type Options struct {
	Values      config.Values
	Canvas      model.Canvas
	Processor   export.Processor // ffmpeg when nil
	Prober      Prober           // ffprobe when nil
	JournalPath string           // no journal when empty
}

// Session is one open editor with its services
type Session struct {
	values   config.Values
	registry *media.Registry
	store    *editor.Store
	editor   *editor.Editor
	engine   *timeline.Engine
	pipeline *export.Pipeline
	importer *importer.Service
	journal  *journal.Journal
	prober   Prober
	quality  qualitySetter

	mu          sync.Mutex
	unsubscribe func()
}

// New creates a session. The journal is opened when a path is configured.
func New(ctx context.Context, opts Options) (*Session, error) {
	if opts.Canvas.Width <= 0 || opts.Canvas.Height <= 0 {
		opts.Canvas = model.DefaultCanvas
	}
	v := opts.Values
	if v.HistoryLimit <= 0 {
		v.HistoryLimit = config.DefaultHistoryLimit
	}

	registry := media.NewRegistry()
	store := editor.NewStore(registry, v.HistoryLimit)
	ed := editor.New(store, opts.Canvas)

	processor := opts.Processor
	if processor == nil {
		processor = ffmpeg.NewProcessor(ffmpeg.Options{
			Command:  v.FFmpegPath,
			FFprobe:  v.FFprobePath,
			FontFile: v.FontFile,
			Quality:  v.Quality,
		})
	}
	prober := opts.Prober
	if prober == nil {
		prober = media.NewProber(v.FFprobePath)
	}

	s := &Session{
		values:   v,
		registry: registry,
		store:    store,
		editor:   ed,
		engine:   timeline.NewEngine(),
		pipeline: export.NewPipeline(ed, registry, processor),
		importer: importer.NewService(v.ImportDir),
		prober:   prober,
	}
	if qs, ok := processor.(qualitySetter); ok {
		s.quality = qs
	}

	if opts.JournalPath != "" {
		j, err := journal.Open(ctx, opts.JournalPath)
		if err != nil {
			return nil, err
		}
		s.journal = j
		s.pipeline.SetRecorder(j)
	}

	s.engine.SetClipMoveCallback(ed.SetClipStart)
	s.unsubscribe = store.Subscribe(s.syncTimeline)

	if v.DefaultSpeed.Valid() && !v.DefaultSpeed.IsNormal() {
		if err := ed.SetPlaybackSpeed(v.DefaultSpeed); err != nil {
			log.Printf("Ignoring default playback speed: %v", err)
		}
	}
	s.syncTimeline(store.State())
	return s, nil
}

// qualitySetter is implemented by processors with a switchable preset
type qualitySetter interface {
	Quality() model.Quality
	SetQuality(q model.Quality)
}

// Quality returns the export preset, the configured one when the
// processor has no preset of its own
func (s *Session) Quality() model.Quality {
	if s.quality != nil {
		return s.quality.Quality()
	}
	return s.values.Quality
}

// SetQuality switches the export preset for later exports
func (s *Session) SetQuality(q model.Quality) {
	if s.quality != nil {
		s.quality.SetQuality(q)
	}
}

// Editor returns the editing surface
func (s *Session) Editor() *editor.Editor { return s.editor }

// Engine returns the timeline engine
func (s *Session) Engine() *timeline.Engine { return s.engine }

// Pipeline returns the export pipeline
func (s *Session) Pipeline() *export.Pipeline { return s.pipeline }

// Registry returns the media registry
func (s *Session) Registry() *media.Registry { return s.registry }

// Importer returns the URL import service
func (s *Session) Importer() *importer.Service { return s.importer }

// Journal returns the export journal, nil when disabled
func (s *Session) Journal() *journal.Journal { return s.journal }

// Values returns the settings the session was created with
func (s *Session) Values() config.Values { return s.values }

// Tracks returns the current timeline projection
func (s *Session) Tracks() []model.Track {
	st := s.editor.State()
	return timeline.BuildTracks(editor.SelectVideos(st), editor.SelectImages(st), editor.SelectTexts(st), st.Timeline.ClipStarts)
}

// ImportVideoFile loads a local clip into the editor
func (s *Session) ImportVideoFile(ctx context.Context, path string) (model.VideoItem, error) {
	url, err := s.registry.CreateFromFile(path)
	if err != nil {
		return model.VideoItem{}, err
	}

	duration, err := s.prober.Duration(ctx, path)
	if err != nil {
		log.Printf("Could not probe duration of %s: %v", path, err)
		duration = 0
	}
	size, err := s.prober.VideoSize(ctx, path)
	if err != nil {
		log.Printf("Could not probe frame size of %s: %v", path, err)
		c := s.editor.Canvas()
		size = model.Size{Width: c.Width, Height: c.Height}
	}

	video := s.editor.AddVideo(url, filepath.Base(path), duration, size)
	log.Printf("Imported video %s (%.1fs)", video.Name, duration)
	return video, nil
}

// ImportImageFile loads a local image as an overlay at pos
func (s *Session) ImportImageFile(path string, pos model.Position) (model.ImageItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ImageItem{}, fmt.Errorf("failed to read image: %w", err)
	}
	size, err := media.ImageSize(data)
	if err != nil {
		return model.ImageItem{}, err
	}
	url, err := s.registry.Create(data, filepath.Base(path))
	if err != nil {
		return model.ImageItem{}, err
	}
	return s.editor.AddImage(url, filepath.Base(path), pos, size), nil
}

// ImportURL downloads a remote clip and loads it into the editor
func (s *Session) ImportURL(ctx context.Context, rawURL string) (model.VideoItem, error) {
	if err := platform.CreateDirectoryIfNotExists(s.values.ImportDir); err != nil {
		return model.VideoItem{}, fmt.Errorf("failed to create import directory: %w", err)
	}
	task, err := s.importer.Import(ctx, rawURL)
	if err != nil {
		return model.VideoItem{}, err
	}
	return s.ImportVideoFile(ctx, task.OutputPath)
}

// ImportPlaylist downloads every entry of a playlist and loads the
// successful ones into the editor
func (s *Session) ImportPlaylist(ctx context.Context, rawURL string) (*model.Playlist, []model.VideoItem, error) {
	if err := platform.CreateDirectoryIfNotExists(s.values.ImportDir); err != nil {
		return nil, nil, fmt.Errorf("failed to create import directory: %w", err)
	}
	playlist, err := s.importer.ListPlaylist(ctx, rawURL)
	if err != nil {
		return nil, nil, err
	}
	if err := s.importer.ImportPlaylist(ctx, playlist); err != nil {
		return playlist, nil, err
	}

	var videos []model.VideoItem
	for _, entry := range playlist.Entries {
		if entry.Status != model.JobStatusCompleted {
			continue
		}
		v, err := s.ImportVideoFile(ctx, entry.OutputPath)
		if err != nil {
			log.Printf("Failed to load %s: %v", entry.OutputPath, err)
			continue
		}
		videos = append(videos, v)
	}
	return playlist, videos, nil
}

// Export runs the export chain for a video and waits for it
func (s *Session) Export(ctx context.Context, videoID string) (*model.ExportJob, error) {
	return s.pipeline.Export(ctx, videoID)
}

// SaveExport writes the processed output of a video to the export directory
// and returns the saved path
func (s *Session) SaveExport(ctx context.Context, videoID, jobID string) (string, error) {
	video, ok := editor.SelectVideoByID(s.editor.State(), videoID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownVideo, videoID)
	}
	if video.ProcessedURL == "" {
		return "", fmt.Errorf("%w: %s", ErrNotProcessed, videoID)
	}
	data, err := s.registry.Bytes(video.ProcessedURL)
	if err != nil {
		return "", err
	}

	path, err := platform.SaveArtifact(s.values.ExportDir, ExportFileName(video.Name), data)
	if err != nil {
		return "", err
	}
	log.Printf("Saved export of %s to %s", video.Name, path)

	if s.journal != nil && jobID != "" {
		if err := s.journal.SetOutputPath(ctx, jobID, path); err != nil {
			log.Printf("Failed to store output path for %s: %v", jobID, err)
		}
	}
	return path, nil
}

// RecentExports lists journal entries, newest first
func (s *Session) RecentExports(ctx context.Context, n int) ([]*model.ExportJob, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.Recent(ctx, n)
}

// Close stops the session and closes the journal
func (s *Session) Close() error {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}

	s.engine.Pause()
	for _, id := range s.engine.Handles().IDs() {
		s.engine.Unregister(id)
	}
	if s.journal != nil {
		return s.journal.Close()
	}
	return nil
}

// syncTimeline keeps the engine's handles, ruler and rate in line with the editor
func (s *Session) syncTimeline(st editor.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	videos := editor.SelectVideos(st)
	live := make(map[string]struct{}, len(videos))
	for _, v := range videos {
		live[v.ID] = struct{}{}
		if _, ok := s.engine.Handles().Get(v.ID); !ok {
			s.engine.Register(v.ID, media.NewClockHandle(v.Duration))
		}
	}
	for _, id := range s.engine.Handles().IDs() {
		if _, ok := live[id]; !ok {
			s.engine.Unregister(id)
		}
	}

	s.engine.SetTracks(timeline.BuildTracks(videos, editor.SelectImages(st), editor.SelectTexts(st), st.Timeline.ClipStarts))
	if s.engine.Snapshot().Rate != st.Videos.PlaybackSpeed {
		if err := s.engine.SetPlaybackRate(st.Videos.PlaybackSpeed); err != nil {
			log.Printf("Failed to apply playback speed: %v", err)
		}
	}
}

// ExportFileName names a saved export after its source clip
func ExportFileName(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "video"
	}
	return base + ExportSuffix + ExportExtension
}
