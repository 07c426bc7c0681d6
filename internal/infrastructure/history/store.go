// Package history keeps the application history in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"

	_ "modernc.org/sqlite"
)

var _ output.HistoryPort = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS job_applications (
	job_id     TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT '',
	link       TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	applied_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_job_applications_status ON job_applications(status);
`

type Store struct {
	pool *sql.DB
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite wants a single writer
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}
	if _, err := pool.ExecContext(ctx, schema); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Record stores the latest outcome for a job. A job once Applied stays
// Applied.
func (s *Store) Record(ctx context.Context, rec entity.ApplicationRecord) error {
	_, err := s.pool.ExecContext(ctx, `
INSERT INTO job_applications (job_id, title, company, link, status, notes, applied_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(job_id) DO UPDATE SET
	title = excluded.title,
	company = excluded.company,
	link = excluded.link,
	status = CASE WHEN job_applications.status = ? THEN job_applications.status ELSE excluded.status END,
	notes = excluded.notes,
	applied_at = excluded.applied_at;`,
		rec.JobID, rec.Title, rec.Company, rec.Link, string(rec.Status), rec.Notes,
		rec.AppliedAt.UTC().Format(time.RFC3339), string(entity.OutcomeApplied),
	)
	if err != nil {
		return fmt.Errorf("record application: %w", err)
	}
	return nil
}

func (s *Store) Applied(ctx context.Context, jobID string) (bool, error) {
	var n int
	err := s.pool.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM job_applications WHERE job_id = ? AND status = ?;`,
		jobID, string(entity.OutcomeApplied),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("lookup application: %w", err)
	}
	return n > 0, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]entity.ApplicationRecord, error) {
	rows, err := s.pool.QueryContext(ctx, `
SELECT job_id, title, company, link, status, notes, applied_at
FROM job_applications
ORDER BY applied_at DESC, job_id
LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []entity.ApplicationRecord
	for rows.Next() {
		var (
			rec       entity.ApplicationRecord
			status    string
			appliedAt string
		)
		if err := rows.Scan(&rec.JobID, &rec.Title, &rec.Company, &rec.Link, &status, &rec.Notes, &appliedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		rec.Status = entity.SessionOutcome(status)
		if t, err := time.Parse(time.RFC3339, appliedAt); err == nil {
			rec.AppliedAt = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Counts returns the number of jobs per recorded outcome.
func (s *Store) Counts(ctx context.Context) (map[entity.SessionOutcome]int, error) {
	rows, err := s.pool.QueryContext(ctx, `SELECT status, COUNT(1) FROM job_applications GROUP BY status;`)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.SessionOutcome]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[entity.SessionOutcome(status)] = n
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	return s.pool.Close()
}
