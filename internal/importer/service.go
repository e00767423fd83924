package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"
	"github.com/ytget/reel/internal/model"
)

// yt-dlp settings
const (
	OutputTemplate     = "%(title)s.%(ext)s"
	FormatSelector     = "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/bv*+ba/b"
	MergeFormat        = "mp4"
	ProgressInterval   = 500 * time.Millisecond
	MaxRetries         = 1
	RetryBackoff       = 2 * time.Second
	TaskIDPrefix       = "import-"
	SupportedURLScheme = "https"
)

var (
	// ErrInvalidURL is returned for anything that is not an absolute http(s) URL
	ErrInvalidURL = errors.New("invalid import URL")

	// ErrImportInProgress is returned when the same URL is already being imported
	ErrImportInProgress = errors.New("import already in progress")
)

// Service downloads remote clips into a directory
type Service struct {
	dir        string
	tasks      map[string]*model.ImportTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.ImportTask) // callback for UI updates
	lister     PlaylistLister
}

// NewService creates an import service writing into dir
func NewService(dir string) *Service {
	return &Service{
		dir:    dir,
		tasks:  make(map[string]*model.ImportTask),
		lister: NewPlaylistLister(),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ImportTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// SetDirectory changes where new imports are written
func (s *Service) SetDirectory(dir string) {
	s.tasksMutex.Lock()
	s.dir = dir
	s.tasksMutex.Unlock()
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.ImportTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	snap := *task
	return &snap, true
}

// Import downloads url and returns the finished task with its output path
func (s *Service) Import(ctx context.Context, rawURL string) (*model.ImportTask, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	s.tasksMutex.Lock()
	for _, task := range s.tasks {
		if task.URL == rawURL && task.Status.IsActive() {
			s.tasksMutex.Unlock()
			return nil, fmt.Errorf("%w for URL: %s", ErrImportInProgress, rawURL)
		}
	}
	task := &model.ImportTask{
		ID:        generateTaskID(),
		URL:       rawURL,
		Status:    model.JobStatusPending,
		StartedAt: time.Now(),
	}
	s.tasks[task.ID] = task
	dir := s.dir
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	s.setStatus(task, model.JobStatusRunning)

	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		Format(FormatSelector).
		MergeOutputFormat(MergeFormat).
		Output(filepath.Join(dir, OutputTemplate))

	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		s.updateTaskProgress(task, &update)
	})

	result, err := s.downloadWithRetry(ctx, dl, task)

	s.tasksMutex.Lock()
	if err != nil {
		task.Status = model.JobStatusError
		task.LastError = err.Error()
	} else {
		task.Status = model.JobStatusCompleted
		task.Progress = 1.0
		if result != nil {
			info, err := result.GetExtractedInfo()
			if err == nil && len(info) > 0 && info[0].Filename != nil {
				task.OutputPath = *info[0].Filename
			}
		}
		if task.OutputPath == "" {
			err = fmt.Errorf("yt-dlp did not report an output file for %s", rawURL)
			task.Status = model.JobStatusError
			task.LastError = err.Error()
		}
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)

	snap, _ := s.GetTask(task.ID)
	if err != nil {
		return snap, fmt.Errorf("import failed: %w", err)
	}
	return snap, nil
}

// downloadWithRetry attempts the download with one retry after a backoff
func (s *Service) downloadWithRetry(ctx context.Context, dl *ytdlp.Command, task *model.ImportTask) (*ytdlp.Result, error) {
	var lastErr error
	var result *ytdlp.Result

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(RetryBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			log.Printf("Retrying import %s, attempt %d", task.ID, attempt+1)
		}

		res, err := dl.Run(ctx, task.URL)
		if err == nil {
			return res, nil
		}

		lastErr = err
		result = res
		log.Printf("Import attempt %d failed for %s: %v", attempt+1, task.URL, err)

		if ctx.Err() != nil {
			return result, ctx.Err()
		}
	}

	return result, lastErr
}

// updateTaskProgress updates task progress from yt-dlp info
func (s *Service) updateTaskProgress(task *model.ImportTask, update *ytdlp.ProgressUpdate) {
	s.tasksMutex.Lock()
	if update.TotalBytes > 0 {
		task.Progress = float64(update.DownloadedBytes) / float64(update.TotalBytes)
	}
	if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" && task.Title == "" {
		task.Title = *update.Info.Title
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

func (s *Service) setStatus(task *model.ImportTask, status model.JobStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback with a copy of the task
func (s *Service) notifyUpdate(task *model.ImportTask) {
	s.tasksMutex.RLock()
	cb := s.onUpdate
	snap := *task
	s.tasksMutex.RUnlock()
	if cb != nil {
		cb(&snap)
	}
}

// ValidateURL accepts absolute http and https URLs
func ValidateURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if u.Scheme != SupportedURLScheme && u.Scheme != "http" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	return nil
}

// generateTaskID generates a unique task ID using UUID v7
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
