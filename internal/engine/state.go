package engine

import (
	"fmt"
	"sort"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

// validTransitions lists the statuses reachable from each status.
var validTransitions = map[string][]string{
	domain.JobStatusPending: {
		domain.JobStatusRunning,   // Started
		domain.JobStatusCancelled, // Cancelled before start
		domain.JobStatusFailed,    // Orphaned by a restart
	},
	domain.JobStatusRunning: {
		domain.JobStatusPaused,
		domain.JobStatusCompleted,
		domain.JobStatusFailed,
		domain.JobStatusCancelled,
	},
	domain.JobStatusPaused: {
		domain.JobStatusRunning,
		domain.JobStatusCancelled,
	},
	// Terminal
	domain.JobStatusCompleted: {},
	domain.JobStatusFailed:    {},
	domain.JobStatusCancelled: {},
}

// ValidateStateTransition checks if a status transition is allowed.
func ValidateStateTransition(from, to string) error {
	allowed, exists := validTransitions[from]
	if !exists {
		return fmt.Errorf("%w: unknown source state %q", ErrInvalidTransition, from)
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, from, to)
}

// runStatuses are the stored statuses a finishing run may record its outcome
// over. A run can end while paused after its last checkpoint.
var runStatuses = []string{domain.JobStatusRunning, domain.JobStatusPaused}

// sourcesOf returns the statuses that may transition to status to.
func sourcesOf(to string) []string {
	var from []string
	for src, targets := range validTransitions {
		for _, t := range targets {
			if t == to {
				from = append(from, src)
				break
			}
		}
	}
	sort.Strings(from)
	return from
}

// CanStart checks if a job can be started in its current status.
func CanStart(job *domain.Job) bool {
	return job.Status == domain.JobStatusPending
}

// CanPause checks if a job can be paused in its current status.
func CanPause(job *domain.Job) bool {
	return job.Status == domain.JobStatusRunning
}

// CanResume checks if a job can be resumed from its current status.
func CanResume(job *domain.Job) bool {
	return job.Status == domain.JobStatusPaused
}

// CanCancel checks if a job can be cancelled in its current status.
func CanCancel(job *domain.Job) bool {
	return !IsTerminalState(job.Status)
}

// IsTerminalState checks if a status is terminal (no further transitions).
func IsTerminalState(status string) bool {
	return status == domain.JobStatusCompleted ||
		status == domain.JobStatusFailed ||
		status == domain.JobStatusCancelled
}
