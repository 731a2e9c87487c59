package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

// QueueRepository records the URLs a job has worked through.
type QueueRepository struct {
	db *sqlx.DB
}

// NewQueueRepository creates a new queue repository.
func NewQueueRepository(db *sqlx.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

// Add inserts a queue item and fills in its ID and creation time.
func (r *QueueRepository) Add(ctx context.Context, item *domain.QueueItem) error {
	if item.Status == "" {
		item.Status = domain.QueueStatusPending
	}

	query := `
		INSERT INTO queue_items (job_id, url, url_type, status, priority, retry_count, error_message, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx, query,
		item.JobID, item.URL, item.URLType, item.Status, item.Priority, item.RetryCount,
		item.ErrorMessage, item.ProcessedAt,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add queue item: %w", err)
	}

	return nil
}

// Finish moves an item to completed or failed and stamps processed_at.
func (r *QueueRepository) Finish(ctx context.Context, id int64, status string, errMsg string) error {
	query := `
		UPDATE queue_items
		SET status = $2, error_message = $3, processed_at = NOW(),
			retry_count = retry_count + CASE WHEN $2::text = 'failed' THEN 1 ELSE 0 END
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, nullable(errMsg))
	return execRequireRows(result, err, fmt.Errorf("queue item %d: %w", id, ErrNotFound))
}

// CountByStatus returns queue item counts for a job keyed by status.
func (r *QueueRepository) CountByStatus(ctx context.Context, jobID string) (map[string]int, error) {
	query := `SELECT status, COUNT(*) AS count FROM queue_items WHERE job_id = $1 GROUP BY status`

	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, jobID); err != nil {
		return nil, fmt.Errorf("failed to count queue items: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
