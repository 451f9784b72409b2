package tablescrub

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver for the job history store
)

// historySchema creates the job table on first open.
const historySchema = `
CREATE TABLE IF NOT EXISTS cleaning_jobs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	source        TEXT NOT NULL,
	issues_found  INTEGER NOT NULL,
	rows_removed  INTEGER NOT NULL,
	cells_fixed   INTEGER NOT NULL,
	cells_flagged INTEGER NOT NULL,
	created_at    TEXT NOT NULL
)`

// Job is one recorded cleaning run.
type Job struct {
	// ID is the auto-assigned job id
	ID int64
	// Source is the cleaned table or file name
	Source string
	// IssuesFound is the total number of report entries
	IssuesFound int
	// RowsRemoved counts duplicate rows dropped
	RowsRemoved int
	// CellsFixed counts cell rewrites applied
	CellsFixed int
	// CellsFlagged counts findings left unfixed
	CellsFlagged int
	// CreatedAt is the recording time in UTC
	CreatedAt time.Time
}

// History persists one row per cleaning run in a local SQLite database.
// It records job outcomes only; files and reports live elsewhere.
type History struct {
	db *sql.DB
}

// OpenHistory opens (or creates) a history database at the given path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Close releases the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores the outcome of one cleaning run and returns the stored job.
func (h *History) Record(ctx context.Context, source string, report *CleaningReport) (Job, error) {
	job := Job{
		Source:       source,
		IssuesFound:  len(report.Entries),
		RowsRemoved:  report.RowsRemoved(),
		CellsFixed:   report.CellsFixed(),
		CellsFlagged: report.Flagged(),
		CreatedAt:    time.Now().UTC(),
	}

	result, err := h.db.ExecContext(ctx,
		`INSERT INTO cleaning_jobs (source, issues_found, rows_removed, cells_fixed, cells_flagged, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		job.Source, job.IssuesFound, job.RowsRemoved, job.CellsFixed, job.CellsFlagged,
		job.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Job{}, fmt.Errorf("failed to record cleaning job: %w", err)
	}

	job.ID, err = result.LastInsertId()
	if err != nil {
		return Job{}, fmt.Errorf("failed to read job id: %w", err)
	}
	return job, nil
}

// List returns all recorded jobs, newest first.
func (h *History) List(ctx context.Context) ([]Job, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, source, issues_found, rows_removed, cells_fixed, cells_flagged, created_at
		 FROM cleaning_jobs
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cleaning jobs: %w", err)
	}
	defer func() {
		_ = rows.Close() // Ignore close error after full read
	}()

	var jobs []Job
	for rows.Next() {
		var job Job
		var createdAt string
		if err := rows.Scan(&job.ID, &job.Source, &job.IssuesFound, &job.RowsRemoved,
			&job.CellsFixed, &job.CellsFlagged, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan cleaning job: %w", err)
		}
		job.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse job timestamp: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cleaning jobs: %w", err)
	}
	return jobs, nil
}
