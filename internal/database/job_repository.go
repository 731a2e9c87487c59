package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

// jobSelectColumns lists columns for SELECT queries on jobs.
const jobSelectColumns = `id, name, status, job_type, industries, config,
	total_urls, processed_urls, companies_found, contacts_found, errors_count,
	created_at, started_at, completed_at`

// ListJobsParams filters job listings.
type ListJobsParams struct {
	Status string
	Limit  int
	Offset int
}

// JobRepository handles database operations for jobs.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository creates a new job repository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job and fills in its creation time.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	if job.Status == "" {
		job.Status = domain.JobStatusPending
	}
	if job.Config == nil {
		job.Config = domain.JSONBMap{}
	}

	query := `
		INSERT INTO jobs (id, name, status, job_type, industries, config)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		job.ID,
		job.Name,
		job.Status,
		job.JobType,
		job.Industries,
		job.Config,
	).Scan(&job.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetByID retrieves a job by its ID.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	query := `SELECT ` + jobSelectColumns + ` FROM jobs WHERE id = $1`

	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// GetStatus returns only the status column of a job.
func (r *JobRepository) GetStatus(ctx context.Context, id string) (string, error) {
	var status string
	query := `SELECT status FROM jobs WHERE id = $1`

	if err := r.db.GetContext(ctx, &status, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("failed to get job status: %w", err)
	}

	return status, nil
}

// List retrieves jobs newest first with optional status filtering.
func (r *JobRepository) List(ctx context.Context, params ListJobsParams) ([]*domain.Job, error) {
	var jobs []*domain.Job
	var query string
	var args []any

	if params.Status != "" {
		query = `SELECT ` + jobSelectColumns + ` FROM jobs
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		args = []any{params.Status, params.Limit, params.Offset}
	} else {
		query = `SELECT ` + jobSelectColumns + ` FROM jobs
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`
		args = []any{params.Limit, params.Offset}
	}

	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	if jobs == nil {
		jobs = []*domain.Job{}
	}

	return jobs, nil
}

// Count returns the number of jobs, optionally filtered by status.
func (r *JobRepository) Count(ctx context.Context, status string) (int, error) {
	var count int
	var err error

	if status != "" {
		err = r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM jobs WHERE status = $1`, status)
	} else {
		err = r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM jobs`)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return count, nil
}

// TransitionStatus moves a job to status to, but only while its stored status
// is one of from. Moving to running stamps started_at once; terminal statuses
// stamp completed_at. A job in any other status yields ErrStatusConflict.
func (r *JobRepository) TransitionStatus(ctx context.Context, id string, from []string, to string) error {
	query := `
		UPDATE jobs
		SET status = $2,
			started_at = CASE WHEN $2::text = 'running' THEN COALESCE(started_at, NOW()) ELSE started_at END,
			completed_at = CASE WHEN $2::text IN ('completed', 'failed', 'cancelled') THEN NOW() ELSE completed_at END
		WHERE id = $1 AND status = ANY($3)
	`

	result, err := r.db.ExecContext(ctx, query, id, to, pq.StringArray(from))
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	n, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	current, err := r.GetStatus(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("job %s is %s, not moving to %s: %w", id, current, to, ErrStatusConflict)
}

// UpdateProgress writes all progress counters in one statement.
func (r *JobRepository) UpdateProgress(ctx context.Context, id string, p domain.Progress) error {
	query := `
		UPDATE jobs
		SET total_urls = $2, processed_urls = $3, companies_found = $4,
			contacts_found = $5, errors_count = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx, query, id,
		p.TotalURLs, p.ProcessedURLs, p.CompaniesFound, p.ContactsFound, p.ErrorsCount,
	)
	return execRequireRows(result, err, fmt.Errorf("job %s: %w", id, ErrNotFound))
}

// Delete removes a job. Logs and queue items cascade.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	return execRequireRows(result, err, fmt.Errorf("job %s: %w", id, ErrNotFound))
}

// FailStale marks every running or pending job as failed and returns their IDs.
func (r *JobRepository) FailStale(ctx context.Context) ([]string, error) {
	query := `
		UPDATE jobs
		SET status = 'failed', completed_at = NOW()
		WHERE status IN ('running', 'pending')
		RETURNING id
	`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("failed to clean up stale jobs: %w", err)
	}

	return ids, nil
}
