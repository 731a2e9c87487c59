package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/prospector/internal/database"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
)

const (
	defaultJobsLimit = 50
	maxJobsLimit     = 200
	defaultLogsLimit = 100
	maxLogsLimit     = 500
)

// CreateJobRequest is the body of POST /api/v1/jobs.
type CreateJobRequest struct {
	Name       string          `json:"name"        binding:"required"`
	JobType    string          `json:"job_type"`
	Industries []string        `json:"industries"`
	Sources    []string        `json:"sources"`
	Location   string          `json:"location"`
	Config     domain.JSONBMap `json:"config"`
}

// JobsHandler handles job HTTP requests.
type JobsHandler struct {
	repo    database.JobRepositoryInterface
	logRepo database.LogRepositoryInterface
	engine  JobController
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(
	repo database.JobRepositoryInterface,
	logRepo database.LogRepositoryInterface,
	engine JobController,
) *JobsHandler {
	return &JobsHandler{
		repo:    repo,
		logRepo: logRepo,
		engine:  engine,
	}
}

// ListJobs handles GET /api/v1/jobs
func (h *JobsHandler) ListJobs(c *gin.Context) {
	status := c.Query("status")
	limit, offset := parseLimitOffset(c, defaultJobsLimit, maxJobsLimit)

	jobs, err := h.repo.List(c.Request.Context(), database.ListJobsParams{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondInternalError(c, "Failed to retrieve jobs", err)
		return
	}

	total, err := h.repo.Count(c.Request.Context(), status)
	if err != nil {
		respondInternalError(c, "Failed to get total count", err)
		return
	}

	if jobs == nil {
		jobs = []*domain.Job{}
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":   jobs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// CreateJob handles POST /api/v1/jobs
func (h *JobsHandler) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	job, err := req.toJob()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if createErr := h.repo.Create(c.Request.Context(), job); createErr != nil {
		respondInternalError(c, "Failed to create job", createErr)
		return
	}

	logger.FromContext(c.Request.Context()).Info("Job created",
		logger.String("job_id", job.ID),
		logger.String("job_type", job.JobType),
		logger.Strings("industries", job.Industries),
	)

	c.JSON(http.StatusCreated, job)
}

// toJob validates the request and builds a pending job. Sources and
// location take precedence over the same keys in Config.
func (req CreateJobRequest) toJob() (*domain.Job, error) {
	job, err := domain.NewJob(req.Name, req.JobType, req.Industries, domain.JobOptions{
		Sources:  req.Sources,
		Location: req.Location,
	})
	if err != nil {
		return nil, err
	}

	cfg := domain.JSONBMap{}
	for k, v := range req.Config {
		cfg[k] = v
	}
	for k, v := range job.Config {
		cfg[k] = v
	}
	job.Config = cfg
	return job, nil
}

// GetJob handles GET /api/v1/jobs/:id
func (h *JobsHandler) GetJob(c *gin.Context) {
	job, ok := h.loadJob(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob handles DELETE /api/v1/jobs/:id
func (h *JobsHandler) DeleteJob(c *gin.Context) {
	id := c.Param("id")
	if h.engine != nil && h.engine.IsActive(id) {
		respondError(c, http.StatusConflict, "Job is running; cancel it first")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "Job")
			return
		}
		respondInternalError(c, "Failed to delete job", err)
		return
	}

	logger.FromContext(c.Request.Context()).Info("Job deleted", logger.String("job_id", id))

	c.Status(http.StatusNoContent)
}

// StartJob handles POST /api/v1/jobs/:id/start
func (h *JobsHandler) StartJob(c *gin.Context) {
	h.control(c, "start", JobController.StartJob)
}

// PauseJob handles POST /api/v1/jobs/:id/pause
func (h *JobsHandler) PauseJob(c *gin.Context) {
	h.control(c, "pause", JobController.PauseJob)
}

// ResumeJob handles POST /api/v1/jobs/:id/resume
func (h *JobsHandler) ResumeJob(c *gin.Context) {
	h.control(c, "resume", JobController.ResumeJob)
}

// CancelJob handles POST /api/v1/jobs/:id/cancel
func (h *JobsHandler) CancelJob(c *gin.Context) {
	h.control(c, "cancel", JobController.CancelJob)
}

// GetJobLogs handles GET /api/v1/jobs/:id/logs
func (h *JobsHandler) GetJobLogs(c *gin.Context) {
	job, ok := h.loadJob(c)
	if !ok {
		return
	}
	limit, offset := parseLimitOffset(c, defaultLogsLimit, maxLogsLimit)

	logs, err := h.logRepo.ListByJob(c.Request.Context(), job.ID, limit, offset)
	if err != nil {
		respondInternalError(c, "Failed to retrieve logs", err)
		return
	}
	if logs == nil {
		logs = []*domain.LogEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.ID,
		"logs":   logs,
		"limit":  limit,
		"offset": offset,
	})
}

// control runs one engine operation and responds with the refreshed job.
func (h *JobsHandler) control(c *gin.Context, action string, op func(JobController, context.Context, string) error) {
	if h.engine == nil {
		respondError(c, http.StatusServiceUnavailable, "Job engine not available")
		return
	}

	id := c.Param("id")
	log := logger.FromContext(c.Request.Context()).With(
		logger.String("job_id", id),
		logger.String("action", action),
	)
	if err := op(h.engine, c.Request.Context(), id); err != nil {
		log.Debug("Job control rejected", logger.Error(err))
		respondEngineError(c, err)
		return
	}
	log.Info("Job control applied")

	h.GetJob(c)
}

// loadJob fetches the job named by the id path param, responding on failure.
func (h *JobsHandler) loadJob(c *gin.Context) (*domain.Job, bool) {
	job, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "Job")
		return nil, false
	}
	if err != nil {
		respondInternalError(c, "Failed to retrieve job", err)
		return nil, false
	}
	return job, true
}
