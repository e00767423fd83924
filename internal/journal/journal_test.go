package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ytget/reel/internal/model"
)

func openTest(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", DefaultFileName))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTest(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	jobs := []*model.ExportJob{
		{ID: "export-1", VideoID: "video-a", VideoName: "a.mp4", Steps: []string{"trim", "effect"},
			Status: model.JobStatusCompleted, OutputSize: 2048, StartedAt: base, FinishedAt: base.Add(time.Second)},
		{ID: "export-2", VideoID: "video-b", VideoName: "b.mp4", Steps: []string{"speed"},
			Status: model.JobStatusError, LastError: "step 1 (speed) failed", StartedAt: base.Add(time.Minute)},
	}
	for _, job := range jobs {
		if err := j.Record(ctx, job); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(Recent()) = %d, expected 2", len(got))
	}
	if got[0].ID != "export-2" {
		t.Errorf("newest first: got %s, expected export-2", got[0].ID)
	}
	if got[1].OutputSize != 2048 || len(got[1].Steps) != 2 || got[1].Steps[1] != "effect" {
		t.Errorf("row = %+v", got[1])
	}
	if got[1].Progress != 1 {
		t.Errorf("completed Progress = %v, expected 1", got[1].Progress)
	}
	if !got[1].StartedAt.Equal(base) {
		t.Errorf("StartedAt = %v, expected %v", got[1].StartedAt, base)
	}
	if !got[0].FinishedAt.IsZero() {
		t.Errorf("FinishedAt = %v, expected zero", got[0].FinishedAt)
	}
	if got[0].LastError == "" {
		t.Error("LastError should be kept")
	}
}

func TestRecordUpsertKeepsOutputPath(t *testing.T) {
	j := openTest(t)
	ctx := context.Background()
	job := &model.ExportJob{ID: "export-1", VideoID: "v", VideoName: "v.mp4", Status: model.JobStatusCompleted, StartedAt: time.Now()}

	if err := j.Record(ctx, job); err != nil {
		t.Fatal(err)
	}
	if err := j.SetOutputPath(ctx, job.ID, "/out/v-export.mp4"); err != nil {
		t.Fatalf("SetOutputPath() error = %v", err)
	}
	job.OutputSize = 99
	if err := j.Record(ctx, job); err != nil {
		t.Fatal(err)
	}

	got, err := j.Recent(ctx, 1)
	if err != nil || len(got) != 1 {
		t.Fatalf("Recent() = %v, %v", got, err)
	}
	if got[0].OutputPath != "/out/v-export.mp4" {
		t.Errorf("OutputPath = %q, expected saved path", got[0].OutputPath)
	}
	if got[0].OutputSize != 99 {
		t.Errorf("OutputSize = %d, expected 99", got[0].OutputSize)
	}
}

func TestRecentLimit(t *testing.T) {
	j := openTest(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		job := &model.ExportJob{ID: "export-" + string(rune('a'+i)), VideoID: "v", VideoName: "v", StartedAt: time.Now().Add(time.Duration(i) * time.Second)}
		if err := j.Record(ctx, job); err != nil {
			t.Fatal(err)
		}
	}
	got, err := j.Recent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, expected 3", len(got))
	}
}

func TestSetOutputPathUnknown(t *testing.T) {
	j := openTest(t)
	if err := j.SetOutputPath(context.Background(), "export-missing", "/x"); err == nil {
		t.Error("Expected error for unknown job")
	}
}

func TestClosed(t *testing.T) {
	j := openTest(t)
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}
	if err := j.Record(context.Background(), &model.ExportJob{ID: "x"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Record() after Close error = %v, expected ErrClosed", err)
	}
	if _, err := j.Recent(context.Background(), 1); !errors.Is(err, ErrClosed) {
		t.Errorf("Recent() after Close error = %v, expected ErrClosed", err)
	}
}

func TestRecordRejectsMissingID(t *testing.T) {
	j := openTest(t)
	if err := j.Record(context.Background(), &model.ExportJob{}); err == nil {
		t.Error("Expected error for job without id")
	}
}
