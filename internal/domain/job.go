// Package domain provides the entities persisted and exchanged by the engine.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Job types.
const (
	JobTypeDiscovery  = "discovery"
	JobTypeEnrichment = "enrichment"
	JobTypeFull       = "full"
)

// Job statuses.
const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusPaused    = "paused"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusCancelled = "cancelled"
)

// Job is a discovery/enrichment run and its progress counters.
type Job struct {
	ID             string         `db:"id"              json:"id"`
	Name           string         `db:"name"            json:"name"`
	Status         string         `db:"status"          json:"status"`
	JobType        string         `db:"job_type"        json:"job_type"`
	Industries     pq.StringArray `db:"industries"      json:"industries"`
	Config         JSONBMap       `db:"config"          json:"config"`
	TotalURLs      int            `db:"total_urls"      json:"total_urls"`
	ProcessedURLs  int            `db:"processed_urls"  json:"processed_urls"`
	CompaniesFound int            `db:"companies_found" json:"companies_found"`
	ContactsFound  int            `db:"contacts_found"  json:"contacts_found"`
	ErrorsCount    int            `db:"errors_count"    json:"errors_count"`
	CreatedAt      time.Time      `db:"created_at"      json:"created_at"`
	StartedAt      *time.Time     `db:"started_at"      json:"started_at,omitempty"`
	CompletedAt    *time.Time     `db:"completed_at"    json:"completed_at,omitempty"`
}

// IsValidJobType reports whether t is a known job type.
func IsValidJobType(t string) bool {
	switch t {
	case JobTypeDiscovery, JobTypeEnrichment, JobTypeFull:
		return true
	default:
		return false
	}
}

// Job validation errors.
var (
	ErrJobNameRequired    = errors.New("name is required")
	ErrInvalidJobType     = errors.New("job_type must be one of discovery, enrichment, full")
	ErrIndustriesRequired = errors.New("at least one industry is required")
)

// NewJob validates the inputs and builds a pending job with a fresh ID.
// An empty jobType means full. Only enrichment jobs may omit industries.
func NewJob(name, jobType string, industries []string, opts JobOptions) (*Job, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrJobNameRequired
	}

	if jobType == "" {
		jobType = JobTypeFull
	}
	if !IsValidJobType(jobType) {
		return nil, ErrInvalidJobType
	}

	cleaned := make([]string, 0, len(industries))
	for _, ind := range industries {
		if trimmed := strings.TrimSpace(ind); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 && jobType != JobTypeEnrichment {
		return nil, ErrIndustriesRequired
	}

	opts.Location = strings.TrimSpace(opts.Location)
	return &Job{
		ID:         uuid.New().String(),
		Name:       name,
		Status:     JobStatusPending,
		JobType:    jobType,
		Industries: cleaned,
		Config:     opts.ToConfig(),
	}, nil
}

// Progress holds the monotonic job counters written after each unit of work.
type Progress struct {
	TotalURLs      int `json:"total_urls"`
	ProcessedURLs  int `json:"processed_urls"`
	CompaniesFound int `json:"companies_found"`
	ContactsFound  int `json:"contacts_found"`
	ErrorsCount    int `json:"errors_count"`
}

// Progress returns the job's current counters.
func (j *Job) Progress() Progress {
	return Progress{
		TotalURLs:      j.TotalURLs,
		ProcessedURLs:  j.ProcessedURLs,
		CompaniesFound: j.CompaniesFound,
		ContactsFound:  j.ContactsFound,
		ErrorsCount:    j.ErrorsCount,
	}
}
