// Package api implements the HTTP API for the prospector service.
package api

//go:generate mockgen -source=api.go -destination=../../testutils/mocks/mock_api.go -package=mocks

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonesrussell/north-cloud/prospector/internal/database"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/jonesrussell/north-cloud/prospector/internal/search"
)

// JobController drives job execution.
type JobController interface {
	StartJob(ctx context.Context, id string) error
	PauseJob(ctx context.Context, id string) error
	ResumeJob(ctx context.Context, id string) error
	CancelJob(ctx context.Context, id string) error
	IsActive(id string) bool
}

// KeyReporter reports the remaining credit of the search API keys and
// clears their exhaustion flags.
type KeyReporter interface {
	Balances(ctx context.Context) []search.Balance
	ResetKeys()
}

// Deps are the collaborators the handlers use.
type Deps struct {
	Jobs      database.JobRepositoryInterface
	Logs      database.LogRepositoryInterface
	Companies database.CompanyRepositoryInterface
	Contacts  database.ContactRepositoryInterface
	Engine    JobController
	// Keys is optional; without it the keys endpoint reports no keys.
	Keys KeyReporter
	// Ping checks the database for /health. Optional.
	Ping func(ctx context.Context) error
	// Gatherer backs /metrics; the default registry when nil.
	Gatherer prometheus.Gatherer
	Logger   logger.Logger
	Version  string
}

// NewRouter creates the gin engine with middleware and every route.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(recoveryMiddleware(deps.Logger))
	router.Use(loggerMiddleware(deps.Logger))

	health := NewHealthHandler(serviceName, deps.Version, deps.Ping)
	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	jobs := NewJobsHandler(deps.Jobs, deps.Logs, deps.Engine)
	companies := NewCompaniesHandler(deps.Companies, deps.Contacts)
	catalog := NewCatalogHandler(deps.Keys)

	v1 := router.Group("/api/v1")

	v1.GET("/jobs", jobs.ListJobs)
	v1.POST("/jobs", jobs.CreateJob)
	v1.GET("/jobs/:id", jobs.GetJob)
	v1.DELETE("/jobs/:id", jobs.DeleteJob)
	v1.POST("/jobs/:id/start", jobs.StartJob)
	v1.POST("/jobs/:id/pause", jobs.PauseJob)
	v1.POST("/jobs/:id/resume", jobs.ResumeJob)
	v1.POST("/jobs/:id/cancel", jobs.CancelJob)
	v1.GET("/jobs/:id/logs", jobs.GetJobLogs)

	v1.GET("/companies", companies.ListCompanies)
	v1.GET("/companies/:id", companies.GetCompany)
	v1.GET("/companies/:id/contacts", companies.ListContacts)

	v1.GET("/industries", catalog.ListIndustries)
	v1.GET("/keys", catalog.ListKeys)
	v1.POST("/keys/reset", catalog.ResetKeys)

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "route not found")
	})

	return router
}
