package domain

import "time"

// Log levels stored on job log entries.
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// LogEntry is an append-only message attached to a job.
type LogEntry struct {
	ID        int64     `db:"id"         json:"id"`
	JobID     string    `db:"job_id"     json:"job_id"`
	Level     string    `db:"level"      json:"level"`
	Message   string    `db:"message"    json:"message"`
	URL       *string   `db:"url"        json:"url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
