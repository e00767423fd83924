package export

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/ytget/reel/internal/editor"
	"github.com/ytget/reel/internal/effects"
	"github.com/ytget/reel/internal/media"
	"github.com/ytget/reel/internal/model"
)

type call struct {
	op    Op
	input string
}

// fakeProcessor appends the op name to its input, so every output is
// traceable to the chain that produced it
type fakeProcessor struct {
	mu     sync.Mutex
	calls  []call
	failOn int // 1-based call number to fail, 0 never
	block  chan struct{}
	during func()
}

func (f *fakeProcessor) Process(ctx context.Context, req Request) ([]byte, error) {
	if f.block != nil {
		<-f.block
	}
	if f.during != nil {
		f.during()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: req.Op, input: string(req.Input)})
	if f.failOn == len(f.calls) {
		return nil, errors.New("processing failed")
	}
	if req.Progress != nil {
		req.Progress(0.5)
	}
	return []byte(string(req.Input) + "|" + string(req.Op)), nil
}

func (f *fakeProcessor) ops() []Op {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]Op, len(f.calls))
	for i, c := range f.calls {
		ops[i] = c.op
	}
	return ops
}

type fixture struct {
	registry *media.Registry
	editor   *editor.Editor
	proc     *fakeProcessor
	pipeline *Pipeline
	video    model.VideoItem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := media.NewRegistry()
	ed := editor.New(editor.NewStore(reg, 10), model.DefaultCanvas)
	url, err := reg.Create([]byte("src"), "clip.mp4")
	if err != nil {
		t.Fatal(err)
	}
	video := ed.AddVideo(url, "clip.mp4", 10, model.Size{Width: 960, Height: 540})
	proc := &fakeProcessor{}
	return &fixture{
		registry: reg,
		editor:   ed,
		proc:     proc,
		pipeline: NewPipeline(ed, reg, proc),
		video:    video,
	}
}

func TestExportTwoTextOverlaysChainsOutputs(t *testing.T) {
	f := newFixture(t)
	f.editor.AddText("first", model.TextHeading, model.Position{X: 10, Y: 10})
	f.editor.AddText("second", model.TextBody, model.Position{X: 20, Y: 40})

	job, err := f.pipeline.Export(context.Background(), f.video.ID)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	expected := []call{
		{OpTextOverlay, "src"},
		{OpTextOverlay, "src|text_overlay"},
	}
	if !reflect.DeepEqual(f.proc.calls, expected) {
		t.Fatalf("calls = %+v, expected %+v", f.proc.calls, expected)
	}
	if job.Status != model.JobStatusCompleted || job.Progress != 1 {
		t.Errorf("job = %+v, expected completed", job)
	}

	got, _ := editor.SelectVideoByID(f.editor.State(), f.video.ID)
	if string(got.ProcessedData) != "src|text_overlay|text_overlay" {
		t.Errorf("ProcessedData = %q", got.ProcessedData)
	}
	if !f.registry.Live(got.ProcessedURL) || !f.registry.Live(got.URL) {
		t.Error("Original and final output must stay live")
	}
	if f.registry.LiveCount() != 2 {
		t.Errorf("LiveCount() = %d, expected 2 (intermediates released)", f.registry.LiveCount())
	}
}

func TestPlanOrderIsFixed(t *testing.T) {
	f := newFixture(t)
	f.editor.AddText("caption", model.TextBody, model.Position{})
	imgA, _ := f.registry.Create([]byte("a"), "a.png")
	imgB, _ := f.registry.Create([]byte("b"), "b.png")
	f.editor.AddImage(imgA, "a.png", model.Position{}, model.Size{Width: 10, Height: 10})
	f.editor.AddImage(imgB, "b.png", model.Position{}, model.Size{Width: 10, Height: 10})
	f.editor.SetEffect(f.video.ID, effects.Cinematic)
	_ = f.editor.SetPlaybackSpeed(model.SpeedHalf)
	_ = f.editor.AddSplitPoint(model.SplitPoint{StartTime: 1, EndTime: 2})
	_ = f.editor.AddSplitPoint(model.SplitPoint{StartTime: 2, EndTime: 5})

	first, err := Plan(f.editor.State(), f.video.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := Plan(f.editor.State(), f.video.ID)

	expected := []string{"trim", "effect", "speed", "image_overlay", "image_overlay", "text_overlay"}
	if !reflect.DeepEqual(Ops(first), expected) {
		t.Fatalf("Ops() = %v, expected %v", Ops(first), expected)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Plan is not deterministic")
	}
	if first[0].Params.Start != 2 || first[0].Params.Duration != 3 {
		t.Errorf("trim params = %+v, expected the last split point", first[0].Params)
	}
	if first[3].OverlayURL != imgA || first[4].OverlayURL != imgB {
		t.Error("image overlays must follow list order")
	}

	if _, err := f.pipeline.Export(context.Background(), f.video.ID); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	ops := f.proc.ops()
	for i := range expected {
		if string(ops[i]) != expected[i] {
			t.Errorf("call %d = %s, expected %s", i, ops[i], expected[i])
		}
	}
}

func TestOverlayGeometryIsRelativeToVideo(t *testing.T) {
	f := newFixture(t)
	f.editor.Move(model.KindVideo, f.video.ID, model.Position{})
	f.editor.AddText("t", model.TextBody, model.Position{X: 96, Y: 54})

	steps, _ := Plan(f.editor.State(), f.video.ID)
	p := steps[0].Params
	if p.X != 0.1 || p.Y != 0.1 {
		t.Errorf("text position = %v,%v, expected 0.1,0.1", p.X, p.Y)
	}
}

func TestFailureLeavesProcessedUntouched(t *testing.T) {
	f := newFixture(t)
	prev, _ := f.registry.Create([]byte("good"), "good.mp4")
	f.editor.SetProcessed(f.video.ID, prev, []byte("good"))
	f.editor.AddText("a", model.TextBody, model.Position{})
	f.editor.AddText("b", model.TextBody, model.Position{})
	f.editor.AddText("c", model.TextBody, model.Position{})
	f.proc.failOn = 2

	var last *model.ExportJob
	f.pipeline.SetUpdateCallback(func(j *model.ExportJob) { last = j })

	_, err := f.pipeline.Export(context.Background(), f.video.ID)
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Index != 1 || stepErr.Op != OpTextOverlay {
		t.Fatalf("Export() error = %v, expected step 2 failure", err)
	}
	if len(f.proc.calls) != 2 {
		t.Errorf("%d calls, expected the chain to stop after the failure", len(f.proc.calls))
	}

	got, _ := editor.SelectVideoByID(f.editor.State(), f.video.ID)
	if got.ProcessedURL != prev || string(got.ProcessedData) != "good" {
		t.Errorf("processed output changed to %s", got.ProcessedURL)
	}
	if f.registry.LiveCount() != 2 {
		t.Errorf("LiveCount() = %d, expected 2 (intermediate released)", f.registry.LiveCount())
	}
	if last == nil || last.Status != model.JobStatusError || last.LastError == "" {
		t.Errorf("last update = %+v, expected error status", last)
	}
	if f.pipeline.State(f.video.ID) != model.ExportIdle {
		t.Error("Expected the video to be idle after a failed export")
	}
}

func TestSecondSuccessReleasesPreviousOutput(t *testing.T) {
	f := newFixture(t)
	f.editor.AddText("a", model.TextBody, model.Position{})

	if _, err := f.pipeline.Export(context.Background(), f.video.ID); err != nil {
		t.Fatal(err)
	}
	first, _ := editor.SelectVideoByID(f.editor.State(), f.video.ID)
	if _, err := f.pipeline.Export(context.Background(), f.video.ID); err != nil {
		t.Fatal(err)
	}

	if f.registry.Live(first.ProcessedURL) {
		t.Error("Previous output should be released when replaced")
	}
	second, _ := editor.SelectVideoByID(f.editor.State(), f.video.ID)
	if string(second.ProcessedData) != "src|text_overlay" {
		t.Errorf("re-export must start from the original, got %q", second.ProcessedData)
	}
}

func TestConcurrentExportRejected(t *testing.T) {
	f := newFixture(t)
	f.editor.AddText("a", model.TextBody, model.Position{})
	f.proc.block = make(chan struct{})

	done := make(chan struct{})
	var updates sync.WaitGroup
	updates.Add(1)
	var once sync.Once
	f.pipeline.SetUpdateCallback(func(j *model.ExportJob) {
		if j.Status.IsFinished() {
			once.Do(updates.Done)
		}
	})

	job, err := f.pipeline.Start(context.Background(), f.video.ID)
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if f.pipeline.State(f.video.ID) != model.ExportRunning {
		t.Error("Expected running state after Start")
	}

	if _, err := f.pipeline.Export(context.Background(), f.video.ID); !errors.Is(err, ErrExportInProgress) {
		t.Errorf("second Export() error = %v, expected ErrExportInProgress", err)
	}

	go func() {
		updates.Wait()
		close(done)
	}()
	close(f.proc.block)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("export did not finish")
	}
	if final, ok := f.pipeline.GetJob(job.ID); !ok || final.Status != model.JobStatusCompleted {
		t.Errorf("final job = %+v, expected completed", final)
	}
}

func TestInputErrors(t *testing.T) {
	f := newFixture(t)
	f.editor.AddText("a", model.TextBody, model.Position{})
	dangling := f.editor.AddVideo("blob:missing", "gone.mp4", 3, model.Size{})
	empty := f.editor.AddVideo("", "empty.mp4", 3, model.Size{})

	tests := []struct {
		name     string
		videoID  string
		expected error
	}{
		{"unknown video", "video-nope", ErrNoSource},
		{"unresolved handle", dangling.ID, ErrInvalidSource},
		{"empty url", empty.ID, ErrInvalidSource},
	}
	for _, test := range tests {
		if _, err := f.pipeline.Export(context.Background(), test.videoID); !errors.Is(err, test.expected) {
			t.Errorf("%s: error = %v, expected %v", test.name, err, test.expected)
		}
	}
	if len(f.proc.calls) != 0 {
		t.Errorf("processor called %d times on input errors", len(f.proc.calls))
	}
}

func TestNothingToExport(t *testing.T) {
	f := newFixture(t)
	if _, err := f.pipeline.Export(context.Background(), f.video.ID); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("Export() error = %v, expected ErrNothingToExport", err)
	}
	if f.pipeline.State(f.video.ID) != model.ExportIdle {
		t.Error("Expected idle state")
	}
}

func TestCancelledContextStopsBeforeFirstCall(t *testing.T) {
	f := newFixture(t)
	f.editor.AddText("a", model.TextBody, model.Position{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.pipeline.Export(ctx, f.video.ID)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Export() error = %v, expected context.Canceled", err)
	}
	if len(f.proc.calls) != 0 {
		t.Error("processor should not run after cancellation")
	}
}

type memoryRecorder struct {
	jobs []*model.ExportJob
}

func (r *memoryRecorder) Record(_ context.Context, job *model.ExportJob) error {
	r.jobs = append(r.jobs, job)
	return nil
}

func TestRecorderReceivesFinishedJob(t *testing.T) {
	f := newFixture(t)
	f.editor.AddText("a", model.TextBody, model.Position{})
	rec := &memoryRecorder{}
	f.pipeline.SetRecorder(rec)

	if _, err := f.pipeline.Export(context.Background(), f.video.ID); err != nil {
		t.Fatal(err)
	}
	if len(rec.jobs) != 1 || rec.jobs[0].Status != model.JobStatusCompleted || rec.jobs[0].VideoName != "clip.mp4" {
		t.Errorf("recorded %+v", rec.jobs)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		source   string
		index    int
		total    int
		expected string
	}{
		{"clip.mp4", 0, 3, "clip-step1.mp4"},
		{"clip.mp4", 2, 3, "clip-export.mp4"},
		{"", 0, 1, "video-export.mp4"},
	}
	for _, test := range tests {
		if result := outputName(test.source, test.index, test.total); result != test.expected {
			t.Errorf("outputName(%q, %d, %d) = %s, expected %s", test.source, test.index, test.total, result, test.expected)
		}
	}
}

func TestExportOfDeletedVideoReleasesOutput(t *testing.T) {
	f := newFixture(t)
	f.editor.AddText("caption", model.TextBody, model.Position{})
	f.proc.during = func() { f.editor.Delete(model.KindVideo, f.video.ID) }

	job, err := f.pipeline.Export(context.Background(), f.video.ID)
	if !errors.Is(err, ErrNoSource) {
		t.Fatalf("Export() error = %v, expected %v", err, ErrNoSource)
	}
	if job.Status != model.JobStatusError {
		t.Errorf("Status = %v, expected %v", job.Status, model.JobStatusError)
	}
	if n := len(editor.SelectVideos(f.editor.State())); n != 0 {
		t.Errorf("videos = %d, expected 0", n)
	}
	if f.registry.LiveCount() != 0 {
		t.Errorf("LiveCount() = %d, expected 0", f.registry.LiveCount())
	}
	if f.pipeline.State(f.video.ID) != model.ExportIdle {
		t.Error("video must return to idle after a failed commit")
	}
}
