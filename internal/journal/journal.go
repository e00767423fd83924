package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ytget/reel/internal/model"
	"github.com/ytget/reel/internal/platform"

	_ "modernc.org/sqlite"
)

// Database settings
const (
	DriverName      = "sqlite"
	DefaultFileName = "journal.sqlite"
	DefaultRecent   = 20
	stepsSeparator  = ","
)

// ErrClosed is returned after Close
var ErrClosed = errors.New("journal is closed")

// Journal is the export history store
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal at path
func Open(ctx context.Context, path string) (*Journal, error) {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to configure journal: %w", err)
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}
	return &Journal{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			video_id TEXT NOT NULL,
			video_name TEXT NOT NULL,
			steps TEXT NOT NULL,
			status TEXT NOT NULL,
			last_error TEXT NOT NULL DEFAULT '',
			output_size INTEGER NOT NULL DEFAULT 0,
			output_path TEXT NOT NULL DEFAULT '',
			started_at_unixms INTEGER NOT NULL,
			finished_at_unixms INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_exports_started ON exports(started_at_unixms DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_exports_video ON exports(video_id);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// Record inserts or updates a job by id
func (j *Journal) Record(ctx context.Context, job *model.ExportJob) error {
	if j.db == nil {
		return ErrClosed
	}
	if job == nil || job.ID == "" {
		return errors.New("export job has no id")
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO exports (id, video_id, video_name, steps, status, last_error, output_size, output_path, started_at_unixms, finished_at_unixms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			steps = excluded.steps,
			status = excluded.status,
			last_error = excluded.last_error,
			output_size = excluded.output_size,
			output_path = CASE WHEN excluded.output_path = '' THEN exports.output_path ELSE excluded.output_path END,
			finished_at_unixms = excluded.finished_at_unixms`,
		job.ID, job.VideoID, job.VideoName, strings.Join(job.Steps, stepsSeparator),
		string(job.Status), job.LastError, job.OutputSize, job.OutputPath,
		unixMillis(job.StartedAt), unixMillis(job.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to record export %s: %w", job.ID, err)
	}
	return nil
}

// SetOutputPath stores where a finished export was saved
func (j *Journal) SetOutputPath(ctx context.Context, jobID, path string) error {
	if j.db == nil {
		return ErrClosed
	}
	res, err := j.db.ExecContext(ctx, `UPDATE exports SET output_path = ? WHERE id = ?`, path, jobID)
	if err != nil {
		return fmt.Errorf("failed to update export %s: %w", jobID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("export %s not found", jobID)
	}
	return nil
}

// Recent returns up to n jobs, newest first
func (j *Journal) Recent(ctx context.Context, n int) ([]*model.ExportJob, error) {
	if j.db == nil {
		return nil, ErrClosed
	}
	if n <= 0 {
		n = DefaultRecent
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, video_id, video_name, steps, status, last_error, output_size, output_path, started_at_unixms, finished_at_unixms
		FROM exports
		ORDER BY started_at_unixms DESC, id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var jobs []*model.ExportJob
	for rows.Next() {
		var (
			job               model.ExportJob
			steps, status     string
			started, finished int64
		)
		if err := rows.Scan(&job.ID, &job.VideoID, &job.VideoName, &steps, &status, &job.LastError,
			&job.OutputSize, &job.OutputPath, &started, &finished); err != nil {
			return nil, fmt.Errorf("failed to read export row: %w", err)
		}
		if steps != "" {
			job.Steps = strings.Split(steps, stepsSeparator)
		}
		job.StepIndex = len(job.Steps)
		job.Status = model.JobStatus(status)
		job.StartedAt = fromUnixMillis(started)
		job.FinishedAt = fromUnixMillis(finished)
		if job.Status == model.JobStatusCompleted {
			job.Progress = 1
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

func unixMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromUnixMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
