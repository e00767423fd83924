package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/reel/internal/model"
)

const (
	JobIDPrefix        = "export-"
	IntermediateSuffix = "-step"
	ExportedSuffix     = "-export"
	OutputExtension    = ".mp4"
)

// Pipeline runs export chains, one at a time per video
type Pipeline struct {
	source    Source
	media     Media
	processor Processor
	recorder  Recorder

	mu       sync.RWMutex
	states   map[string]model.ExportState
	jobs     map[string]*model.ExportJob
	onUpdate func(*model.ExportJob) // callback for UI updates
}

// NewPipeline creates an export pipeline
func NewPipeline(source Source, media Media, processor Processor) *Pipeline {
	return &Pipeline{
		source:    source,
		media:     media,
		processor: processor,
		states:    make(map[string]model.ExportState),
		jobs:      make(map[string]*model.ExportJob),
	}
}

// SetUpdateCallback sets the callback function for job updates
func (p *Pipeline) SetUpdateCallback(callback func(*model.ExportJob)) {
	p.mu.Lock()
	p.onUpdate = callback
	p.mu.Unlock()
}

// SetRecorder sets where finished jobs are persisted
func (p *Pipeline) SetRecorder(r Recorder) {
	p.mu.Lock()
	p.recorder = r
	p.mu.Unlock()
}

// State returns the export state of a video
func (p *Pipeline) State(videoID string) model.ExportState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if st, ok := p.states[videoID]; ok {
		return st
	}
	return model.ExportIdle
}

// GetJob returns a job by ID
func (p *Pipeline) GetJob(jobID string) (*model.ExportJob, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	job, ok := p.jobs[jobID]
	if !ok {
		return nil, false
	}
	snap := *job
	return &snap, true
}

// Export runs the chain for videoID and returns the finished job
func (p *Pipeline) Export(ctx context.Context, videoID string) (*model.ExportJob, error) {
	run, err := p.prepare(videoID)
	if err != nil {
		return nil, err
	}
	err = p.execute(ctx, run)
	return p.snapshot(run.job), err
}

// Start validates the request and runs the chain in the background
func (p *Pipeline) Start(ctx context.Context, videoID string) (*model.ExportJob, error) {
	run, err := p.prepare(videoID)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := p.execute(ctx, run); err != nil {
			log.Printf("Export %s failed: %v", run.job.ID, err)
		}
	}()
	return p.snapshot(run.job), nil
}

type exportRun struct {
	job    *model.ExportJob
	video  model.VideoItem
	steps  []Step
	source []byte
}

// prepare checks inputs and claims the video. Nothing is mutated on error.
func (p *Pipeline) prepare(videoID string) (*exportRun, error) {
	state := p.source.State()
	video, ok := findVideo(state.Videos.Items, videoID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSource, videoID)
	}
	if strings.TrimSpace(video.URL) == "" {
		return nil, fmt.Errorf("%w: video %s has no source", ErrInvalidSource, videoID)
	}
	source, err := p.media.Bytes(video.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	steps, err := Plan(state, videoID)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, ErrNothingToExport
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.states[videoID] == model.ExportRunning {
		return nil, fmt.Errorf("%w for video: %s", ErrExportInProgress, video.Name)
	}
	p.states[videoID] = model.ExportRunning

	job := &model.ExportJob{
		ID:        generateJobID(),
		VideoID:   videoID,
		VideoName: video.Name,
		Steps:     Ops(steps),
		Status:    model.JobStatusPending,
		StartedAt: time.Now(),
	}
	p.jobs[job.ID] = job

	return &exportRun{job: job, video: video, steps: steps, source: source}, nil
}

// execute runs the steps strictly in order. Each output is registered as a
// handle and becomes the next input; the previous intermediate is released
// once its successor exists. The original source is never released here.
func (p *Pipeline) execute(ctx context.Context, run *exportRun) error {
	job := run.job
	defer func() {
		p.mu.Lock()
		p.states[run.video.ID] = model.ExportIdle
		p.mu.Unlock()
	}()

	input := run.source
	intermediate := ""
	name := run.video.Name
	n := len(run.steps)

	fail := func(stepErr error) error {
		if intermediate != "" {
			p.media.Release(intermediate)
		}
		p.mu.Lock()
		job.Status = model.JobStatusError
		job.LastError = stepErr.Error()
		job.FinishedAt = time.Now()
		p.mu.Unlock()
		log.Printf("Export of %s failed: %v", run.video.Name, stepErr)
		p.notifyUpdate(job)
		p.record(job)
		return stepErr
	}

	for i, step := range run.steps {
		if err := ctx.Err(); err != nil {
			return fail(&StepError{Index: i, Op: step.Op, Err: err})
		}

		p.mu.Lock()
		job.Status = model.JobStatusRunning
		job.StepIndex = i
		job.Progress = float64(i) / float64(n)
		p.mu.Unlock()
		p.notifyUpdate(job)

		req := Request{
			Op:        step.Op,
			Input:     input,
			InputName: name,
			Params:    step.Params,
			Progress: func(f float64) {
				p.mu.Lock()
				job.Progress = (float64(i) + clampUnit(f)) / float64(n)
				p.mu.Unlock()
				p.notifyUpdate(job)
			},
		}
		if step.Op == OpImageOverlay {
			overlay, err := p.media.Bytes(step.OverlayURL)
			if err != nil {
				return fail(&StepError{Index: i, Op: step.Op, Err: err})
			}
			req.Overlay = overlay
		}

		output, err := p.processor.Process(ctx, req)
		if err == nil && len(output) == 0 {
			err = errors.New("processor returned empty output")
		}
		if err != nil {
			return fail(&StepError{Index: i, Op: step.Op, Err: err})
		}

		name = outputName(run.video.Name, i, n)
		url, err := p.media.Create(output, name)
		if err != nil {
			return fail(&StepError{Index: i, Op: step.Op, Err: err})
		}
		if intermediate != "" {
			p.media.Release(intermediate)
		}
		intermediate = url
		input = output
	}

	// the last intermediate is the final output; ownership moves to the video
	if !p.source.SetProcessed(run.video.ID, intermediate, input) {
		return fail(fmt.Errorf("%w: %s was removed during export", ErrNoSource, run.video.ID))
	}

	p.mu.Lock()
	job.Status = model.JobStatusCompleted
	job.StepIndex = n
	job.Progress = 1.0
	job.OutputSize = int64(len(input))
	job.FinishedAt = time.Now()
	p.mu.Unlock()

	log.Printf("Exported %s in %d steps (%s)", run.video.Name, n, job.GetSizeString())
	p.notifyUpdate(job)
	p.record(job)
	return nil
}

func (p *Pipeline) record(job *model.ExportJob) {
	p.mu.RLock()
	r := p.recorder
	p.mu.RUnlock()
	if r == nil {
		return
	}
	if err := r.Record(context.Background(), p.snapshot(job)); err != nil {
		log.Printf("Failed to record export %s: %v", job.ID, err)
	}
}

// notifyUpdate calls the update callback if set
func (p *Pipeline) notifyUpdate(job *model.ExportJob) {
	p.mu.RLock()
	cb := p.onUpdate
	p.mu.RUnlock()
	if cb != nil {
		cb(p.snapshot(job))
	}
}

func (p *Pipeline) snapshot(job *model.ExportJob) *model.ExportJob {
	p.mu.RLock()
	defer p.mu.RUnlock()
	snap := *job
	snap.Steps = append([]string(nil), job.Steps...)
	return &snap
}

func findVideo(items []model.VideoItem, id string) (model.VideoItem, bool) {
	for _, v := range items {
		if v.ID == id {
			return v, true
		}
	}
	return model.VideoItem{}, false
}

// outputName names a step output after the source file
func outputName(source string, index, total int) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	if base == "" {
		base = "video"
	}
	if index == total-1 {
		return base + ExportedSuffix + OutputExtension
	}
	return fmt.Sprintf("%s%s%d%s", base, IntermediateSuffix, index+1, OutputExtension)
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// generateJobID generates a unique job ID using UUID v7
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
