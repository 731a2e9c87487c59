package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health statuses.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)

const healthCheckTimeout = 3 * time.Second

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version,omitempty"`
	Uptime  string            `json:"uptime"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	service   string
	version   string
	ping      func(ctx context.Context) error
	startTime time.Time
}

// NewHealthHandler creates a health handler. ping may be nil.
func NewHealthHandler(service, version string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{
		service:   service,
		version:   version,
		ping:      ping,
		startTime: time.Now(),
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  HealthStatusHealthy,
		Service: h.service,
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	}

	statusCode := http.StatusOK
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		response.Checks = map[string]string{"database": HealthStatusHealthy}
		if err := h.ping(ctx); err != nil {
			_ = c.Error(err)
			response.Status = HealthStatusUnhealthy
			response.Checks["database"] = HealthStatusUnhealthy
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.JSON(statusCode, response)
}
