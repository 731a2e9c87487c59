package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

// LogRepository stores append-only job log entries.
type LogRepository struct {
	db *sqlx.DB
}

// NewLogRepository creates a new log repository.
func NewLogRepository(db *sqlx.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Add appends a log entry and fills in its ID and creation time.
func (r *LogRepository) Add(ctx context.Context, entry *domain.LogEntry) error {
	query := `
		INSERT INTO job_logs (job_id, level, message, url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, entry.JobID, entry.Level, entry.Message, entry.URL).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add job log: %w", err)
	}

	return nil
}

// ListByJob returns a job's log entries oldest first.
func (r *LogRepository) ListByJob(ctx context.Context, jobID string, limit, offset int) ([]*domain.LogEntry, error) {
	query := `
		SELECT id, job_id, level, message, url, created_at
		FROM job_logs
		WHERE job_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	var entries []*domain.LogEntry
	if err := r.db.SelectContext(ctx, &entries, query, jobID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list job logs: %w", err)
	}

	if entries == nil {
		entries = []*domain.LogEntry{}
	}

	return entries, nil
}
