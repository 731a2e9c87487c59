package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/north-cloud/prospector/internal/database"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
)

// run is the state of one job execution.
type run struct {
	e      *Engine
	job    *domain.Job
	opts   domain.JobOptions
	filter extract.LocationFilter

	mu       sync.Mutex
	progress domain.Progress
	seen     map[string]struct{}

	// flushMu keeps concurrent flushes from writing an older snapshot last.
	flushMu sync.Mutex
}

// execute runs the job's phases and records the outcome. Terminal writes use
// a context detached from cancellation.
func (e *Engine) execute(ctx context.Context, job *domain.Job) {
	start := time.Now()
	e.Metrics.JobStarted()

	r := &run{
		e:        e,
		job:      job,
		progress: job.Progress(),
		seen:     make(map[string]struct{}),
	}
	r.log(ctx, domain.LogLevelInfo, "Job started")

	err := r.phases(ctx)

	final := context.WithoutCancel(ctx)
	status := domain.JobStatusCompleted
	switch {
	case err == nil:
		r.log(final, domain.LogLevelInfo, "Job completed successfully")
	case isCancellation(err):
		status = domain.JobStatusCancelled
		r.log(final, domain.LogLevelInfo, "Job cancelled")
	default:
		status = domain.JobStatusFailed
		e.Logger.Error("Job failed", logger.String("job_id", job.ID), logger.Error(err))
		r.log(final, domain.LogLevelError, fmt.Sprintf("Job failed: %v", err))
	}

	updateErr := e.Jobs.TransitionStatus(final, job.ID, runStatuses, status)
	switch {
	case errors.Is(updateErr, database.ErrStatusConflict):
		e.Logger.Debug("Job status already final",
			logger.String("job_id", job.ID),
			logger.String("status", status),
			logger.Error(updateErr),
		)
	case updateErr != nil:
		e.Logger.Error("Failed to record job status",
			logger.String("job_id", job.ID),
			logger.String("status", status),
			logger.Error(updateErr),
		)
	}
	e.Metrics.JobFinished(status, time.Since(start))
}

func (r *run) phases(ctx context.Context) error {
	opts, err := r.job.Options()
	if err != nil {
		return err
	}
	r.opts = opts
	r.filter = extract.ParseLocationFilter(opts.Location)

	jobType := r.job.JobType
	if jobType == "" {
		jobType = domain.JobTypeFull
	}

	if jobType == domain.JobTypeDiscovery || jobType == domain.JobTypeFull {
		if discoverErr := r.discover(ctx); discoverErr != nil {
			return discoverErr
		}
	}
	if jobType == domain.JobTypeEnrichment {
		if enrichErr := r.enrichData(ctx); enrichErr != nil {
			return enrichErr
		}
	}
	if jobType == domain.JobTypeEnrichment || jobType == domain.JobTypeFull {
		if contactErr := r.enrichContacts(ctx); contactErr != nil {
			return contactErr
		}
		if r.e.cfg.EnableEmailPatterns {
			if patternErr := r.guessEmails(ctx); patternErr != nil {
				return patternErr
			}
		}
	}
	return nil
}

// isCancellation reports whether err stops the run as cancelled rather than failed.
func isCancellation(err error) bool {
	return errors.Is(err, ErrJobCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// checkpoint stops the run when the job was cancelled or deleted and blocks
// while it is paused.
func (r *run) checkpoint(ctx context.Context) error {
	if ctx.Err() != nil {
		return ErrJobCancelled
	}

	status, err := r.status(ctx)
	if err != nil {
		return err
	}
	switch {
	case status == domain.JobStatusPaused:
		return r.waitWhilePaused(ctx)
	case IsTerminalState(status):
		return ErrJobCancelled
	}
	return nil
}

func (r *run) waitWhilePaused(ctx context.Context) error {
	ticker := time.NewTicker(r.e.cfg.StatusPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ErrJobCancelled
		case <-ticker.C:
		}

		status, err := r.status(ctx)
		if err != nil {
			return err
		}
		switch {
		case status == domain.JobStatusRunning:
			return nil
		case IsTerminalState(status):
			return ErrJobCancelled
		}
	}
}

// status reads the stored job status. A missing job counts as cancelled.
func (r *run) status(ctx context.Context) (string, error) {
	status, err := r.e.Jobs.GetStatus(ctx, r.job.ID)
	if errors.Is(err, database.ErrNotFound) {
		return "", ErrJobCancelled
	}
	if err != nil {
		if ctx.Err() != nil {
			return "", ErrJobCancelled
		}
		return "", fmt.Errorf("check job status: %w", err)
	}
	return status, nil
}

// update mutates the counters under the run's lock.
func (r *run) update(fn func(p *domain.Progress)) {
	r.mu.Lock()
	fn(&r.progress)
	r.mu.Unlock()
}

func (r *run) snapshot() domain.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}

// flush writes the counters in one statement. Failures are logged only.
func (r *run) flush(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	r.flushMu.Lock()
	defer r.flushMu.Unlock()
	if err := r.e.Jobs.UpdateProgress(ctx, r.job.ID, r.snapshot()); err != nil && ctx.Err() == nil {
		r.e.Logger.Warn("Failed to update job progress", logger.String("job_id", r.job.ID), logger.Error(err))
	}
}

func (r *run) countError() {
	r.update(func(p *domain.Progress) { p.ErrorsCount++ })
}

// claim records a domain for this run and reports whether it was new.
func (r *run) claim(companyDomain string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.seen[companyDomain]; dup {
		return false
	}
	r.seen[companyDomain] = struct{}{}
	return true
}

func (r *run) log(ctx context.Context, level, msg string) {
	r.e.addLog(ctx, r.job.ID, level, msg, "")
}

func (r *run) logURL(ctx context.Context, level, msg, url string) {
	r.e.addLog(ctx, r.job.ID, level, msg, url)
}

// targetCompanies selects the companies the post-discovery phases work on:
// those this job discovered, or for enrichment-only jobs every stored
// company in the job's industries.
func (r *run) targetCompanies(ctx context.Context) ([]*domain.Company, error) {
	if r.job.JobType == domain.JobTypeEnrichment {
		companies, err := r.e.Companies.ListByIndustries(ctx, r.job.Industries)
		if err != nil {
			return nil, fmt.Errorf("list companies: %w", err)
		}
		return companies, nil
	}
	companies, err := r.e.Companies.ListByJob(ctx, r.job.ID)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}
