package domain

import "time"

// Queue item URL types.
const (
	URLTypeSearchResult = "search_result"
	URLTypeCompanyPage  = "company_page"
	URLTypeContactPage  = "contact_page"
)

// Queue item statuses.
const (
	QueueStatusPending    = "pending"
	QueueStatusProcessing = "processing"
	QueueStatusCompleted  = "completed"
	QueueStatusFailed     = "failed"
)

// QueueItem records a unit of crawl work for a job.
type QueueItem struct {
	ID           int64      `db:"id"            json:"id"`
	JobID        string     `db:"job_id"        json:"job_id"`
	URL          string     `db:"url"           json:"url"`
	URLType      string     `db:"url_type"      json:"url_type"`
	Status       string     `db:"status"        json:"status"`
	Priority     int        `db:"priority"      json:"priority"`
	RetryCount   int        `db:"retry_count"   json:"retry_count"`
	ErrorMessage *string    `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time  `db:"created_at"    json:"created_at"`
	ProcessedAt  *time.Time `db:"processed_at"  json:"processed_at,omitempty"`
}
