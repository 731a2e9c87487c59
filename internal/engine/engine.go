// Package engine runs prospecting jobs: discovery, firmographic enrichment,
// contact scraping and email pattern guessing, with pause, resume and cancel
// driven through the job's stored status.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonesrussell/north-cloud/prospector/internal/database"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/enrich"
	"github.com/jonesrussell/north-cloud/prospector/internal/fetcher"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/jonesrussell/north-cloud/prospector/internal/metrics"
	"github.com/jonesrussell/north-cloud/prospector/internal/sources"
)

// Defaults applied to zero-value Config fields.
const (
	DefaultMaxConcurrentJobs  = 3
	DefaultContactBatchSize   = 5
	DefaultStatusPollInterval = 2 * time.Second
)

// Config holds engine settings.
type Config struct {
	MaxConcurrentJobs   int
	ContactBatchSize    int
	EnableEmailPatterns bool
	StatusPollInterval  time.Duration
}

// WithDefaults returns a copy of the config with defaults for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.MaxConcurrentJobs <= 0 {
		c.MaxConcurrentJobs = DefaultMaxConcurrentJobs
	}
	if c.ContactBatchSize <= 0 {
		c.ContactBatchSize = DefaultContactBatchSize
	}
	if c.StatusPollInterval <= 0 {
		c.StatusPollInterval = DefaultStatusPollInterval
	}
	return c
}

// CompanyEnricher fills missing firmographics for one company.
type CompanyEnricher interface {
	EnrichCompany(
		ctx context.Context, name, companyDomain string, kg map[string]any, industry string, known enrich.Fields,
	) (enrich.Fields, error)
}

// Deps are the collaborators the engine drives.
type Deps struct {
	Jobs      database.JobRepositoryInterface
	Logs      database.LogRepositoryInterface
	Companies database.CompanyRepositoryInterface
	Contacts  database.ContactRepositoryInterface
	Queue     database.QueueRepositoryInterface
	Sources   *sources.Registry
	Enricher  CompanyEnricher
	Fetcher   fetcher.Fetcher
	Metrics   *metrics.Metrics
	Logger    logger.Logger
}

// Engine owns the set of jobs running in this process.
type Engine struct {
	cfg Config
	Deps

	ctx    context.Context
	cancel context.CancelFunc

	activeJobs   map[string]context.CancelFunc
	activeJobsMu sync.RWMutex
	wg           sync.WaitGroup
}

// New creates an Engine.
func New(cfg Config, deps Deps) *Engine {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.Sources == nil {
		deps.Sources = sources.NewRegistry()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		cfg:        cfg.WithDefaults(),
		Deps:       deps,
		ctx:        ctx,
		cancel:     cancel,
		activeJobs: make(map[string]context.CancelFunc),
	}
}

// StartJob starts a pending job in the background.
func (e *Engine) StartJob(ctx context.Context, id string) error {
	job, err := e.getJob(ctx, id)
	if err != nil {
		return err
	}
	if !CanStart(job) {
		return fmt.Errorf("%w: cannot start job in status %s", ErrInvalidTransition, job.Status)
	}
	return e.launch(ctx, job)
}

// RunJob runs a pending job in the calling goroutine and returns its final state.
func (e *Engine) RunJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := e.getJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanStart(job) {
		return nil, fmt.Errorf("%w: cannot start job in status %s", ErrInvalidTransition, job.Status)
	}

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if regErr := e.register(id, cancel); regErr != nil {
		return nil, regErr
	}
	defer e.release(id)

	if statusErr := e.transition(ctx, id, domain.JobStatusRunning); statusErr != nil {
		return nil, fmt.Errorf("mark job running: %w", statusErr)
	}
	e.execute(jobCtx, job)

	return e.getJob(context.WithoutCancel(ctx), id)
}

// PauseJob pauses a running job. The run blocks at its next checkpoint.
func (e *Engine) PauseJob(ctx context.Context, id string) error {
	job, err := e.getJob(ctx, id)
	if err != nil {
		return err
	}
	if !CanPause(job) {
		return fmt.Errorf("%w: cannot pause job in status %s", ErrInvalidTransition, job.Status)
	}
	if updateErr := e.transition(ctx, id, domain.JobStatusPaused); updateErr != nil {
		return fmt.Errorf("pause job: %w", updateErr)
	}
	e.addLog(ctx, id, domain.LogLevelInfo, "Job paused", "")
	return nil
}

// ResumeJob resumes a paused job. A paused job with no run in this process,
// such as one paused before a restart, is started again.
func (e *Engine) ResumeJob(ctx context.Context, id string) error {
	job, err := e.getJob(ctx, id)
	if err != nil {
		return err
	}
	if !CanResume(job) {
		return fmt.Errorf("%w: cannot resume job in status %s", ErrInvalidTransition, job.Status)
	}
	if !e.IsActive(id) {
		if launchErr := e.launch(ctx, job); launchErr != nil {
			return launchErr
		}
		e.addLog(ctx, id, domain.LogLevelInfo, "Job resumed", "")
		return nil
	}
	if updateErr := e.transition(ctx, id, domain.JobStatusRunning); updateErr != nil {
		return fmt.Errorf("resume job: %w", updateErr)
	}
	e.addLog(ctx, id, domain.LogLevelInfo, "Job resumed", "")
	return nil
}

// CancelJob cancels a job that has not finished. A running job stops at its
// next checkpoint or blocking call.
func (e *Engine) CancelJob(ctx context.Context, id string) error {
	job, err := e.getJob(ctx, id)
	if err != nil {
		return err
	}
	if !CanCancel(job) {
		return fmt.Errorf("%w: cannot cancel job in status %s", ErrInvalidTransition, job.Status)
	}
	if updateErr := e.transition(ctx, id, domain.JobStatusCancelled); updateErr != nil {
		return fmt.Errorf("cancel job: %w", updateErr)
	}

	e.activeJobsMu.RLock()
	cancel, running := e.activeJobs[id]
	e.activeJobsMu.RUnlock()
	if running {
		cancel()
		return nil
	}
	e.addLog(ctx, id, domain.LogLevelInfo, "Job cancelled", "")
	return nil
}

// CleanupStaleJobs fails jobs left running or pending by a previous process.
func (e *Engine) CleanupStaleJobs(ctx context.Context) (int, error) {
	ids, err := e.Jobs.FailStale(ctx)
	if err != nil {
		return 0, fmt.Errorf("cleanup stale jobs: %w", err)
	}
	if len(ids) > 0 {
		e.Logger.Info("Cleaned up stale jobs", logger.Int("count", len(ids)), logger.Strings("job_ids", ids))
	}
	return len(ids), nil
}

// ActiveJobs lists the IDs of jobs running in this process.
func (e *Engine) ActiveJobs() []string {
	e.activeJobsMu.RLock()
	defer e.activeJobsMu.RUnlock()

	ids := make([]string, 0, len(e.activeJobs))
	for id := range e.activeJobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsActive reports whether the job runs in this process.
func (e *Engine) IsActive(id string) bool {
	e.activeJobsMu.RLock()
	defer e.activeJobsMu.RUnlock()
	_, ok := e.activeJobs[id]
	return ok
}

// Shutdown cancels every active job and waits for the runs to record their
// final status, or for ctx to expire.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.Logger.Info("Stopping job engine")
	e.cancel()

	e.activeJobsMu.Lock()
	for id, cancel := range e.activeJobs {
		e.Logger.Info("Cancelling active job", logger.String("job_id", id))
		cancel()
	}
	e.activeJobsMu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.Logger.Info("Job engine stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for jobs: %w", ctx.Err())
	}
}

// launch registers the job and runs it in a goroutine bound to the engine's lifetime.
func (e *Engine) launch(ctx context.Context, job *domain.Job) error {
	if err := e.ctx.Err(); err != nil {
		return fmt.Errorf("engine stopped: %w", err)
	}

	jobCtx, cancel := context.WithCancel(e.ctx)
	if err := e.register(job.ID, cancel); err != nil {
		cancel()
		return err
	}
	if err := e.transition(ctx, job.ID, domain.JobStatusRunning); err != nil {
		e.release(job.ID)
		cancel()
		return fmt.Errorf("mark job running: %w", err)
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer e.release(job.ID)
		defer cancel()
		e.execute(jobCtx, job)
	}()
	return nil
}

func (e *Engine) register(id string, cancel context.CancelFunc) error {
	e.activeJobsMu.Lock()
	defer e.activeJobsMu.Unlock()

	if _, exists := e.activeJobs[id]; exists {
		return fmt.Errorf("%w: %s", ErrJobAlreadyRunning, id)
	}
	if len(e.activeJobs) >= e.cfg.MaxConcurrentJobs {
		return fmt.Errorf("%w: limit is %d", ErrTooManyJobs, e.cfg.MaxConcurrentJobs)
	}
	e.activeJobs[id] = cancel
	return nil
}

func (e *Engine) release(id string) {
	e.activeJobsMu.Lock()
	delete(e.activeJobs, id)
	e.activeJobsMu.Unlock()
}

// transition stores status to only while the job is still in a status that
// may move there, so a status read earlier cannot overwrite a newer one.
func (e *Engine) transition(ctx context.Context, id, to string) error {
	err := e.Jobs.TransitionStatus(ctx, id, sourcesOf(to), to)
	switch {
	case errors.Is(err, database.ErrStatusConflict):
		return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	case errors.Is(err, database.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return err
}

func (e *Engine) getJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := e.Jobs.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// addLog appends a job log entry and mirrors it to the process logger.
func (e *Engine) addLog(ctx context.Context, jobID, level, msg, url string) {
	fields := []logger.Field{logger.String("job_id", jobID)}
	if url != "" {
		fields = append(fields, logger.String("url", url))
	}
	switch level {
	case domain.LogLevelError:
		e.Logger.Error(msg, fields...)
	case domain.LogLevelWarning:
		e.Logger.Warn(msg, fields...)
	case domain.LogLevelDebug:
		e.Logger.Debug(msg, fields...)
	default:
		e.Logger.Info(msg, fields...)
	}

	if e.Logs == nil {
		return
	}
	entry := &domain.LogEntry{JobID: jobID, Level: level, Message: msg}
	if url != "" {
		entry.URL = &url
	}
	if err := e.Logs.Add(ctx, entry); err != nil {
		e.Logger.Debug("Failed to write job log", logger.String("job_id", jobID), logger.Error(err))
	}
}
