package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/prospector/internal/industry"
	"github.com/jonesrussell/north-cloud/prospector/internal/search"
)

// CatalogHandler serves the industry catalog and search key balances.
type CatalogHandler struct {
	keys KeyReporter
}

// NewCatalogHandler creates a catalog handler. keys may be nil.
func NewCatalogHandler(keys KeyReporter) *CatalogHandler {
	return &CatalogHandler{keys: keys}
}

// ListIndustries handles GET /api/v1/industries
func (h *CatalogHandler) ListIndustries(c *gin.Context) {
	industries := industry.All()
	c.JSON(http.StatusOK, gin.H{
		"industries": industries,
		"total":      len(industries),
	})
}

// ListKeys handles GET /api/v1/keys
func (h *CatalogHandler) ListKeys(c *gin.Context) {
	balances := []search.Balance{}
	if h.keys != nil {
		if reported := h.keys.Balances(c.Request.Context()); reported != nil {
			balances = reported
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"keys":         balances,
		"total_credit": search.TotalCredit(balances),
	})
}

// ResetKeys handles POST /api/v1/keys/reset
func (h *CatalogHandler) ResetKeys(c *gin.Context) {
	if h.keys == nil {
		respondError(c, http.StatusServiceUnavailable, "Search keys not configured")
		return
	}
	h.keys.ResetKeys()
	h.ListKeys(c)
}
