package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/prospector/internal/database"
	"github.com/jonesrussell/north-cloud/prospector/internal/engine"
)

const serviceName = "prospector"

// parseLimitOffset parses limit and offset query params with defaults.
// Limits above maxLimit are clamped.
func parseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseID parses a numeric path parameter.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

// respondError sends a JSON error response.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondNotFound sends a 404 with resource not found message.
func respondNotFound(c *gin.Context, resource string) {
	respondError(c, http.StatusNotFound, resource+" not found")
}

// respondBadRequest sends a 400 with message.
func respondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}

// respondInternalError sends a 500 with message and records err on the context.
func respondInternalError(c *gin.Context, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	respondError(c, http.StatusInternalServerError, message)
}

// respondEngineError maps job control errors to status codes.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrJobNotFound), errors.Is(err, database.ErrNotFound):
		respondNotFound(c, "Job")
	case errors.Is(err, engine.ErrInvalidTransition):
		respondBadRequest(c, err.Error())
	case errors.Is(err, engine.ErrJobAlreadyRunning):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrTooManyJobs):
		respondError(c, http.StatusTooManyRequests, err.Error())
	default:
		respondInternalError(c, "Job operation failed", err)
	}
}
