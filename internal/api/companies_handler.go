package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/prospector/internal/database"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
)

const (
	defaultCompaniesLimit = 25
	maxCompaniesLimit     = 100
)

// CompaniesHandler serves the discovered companies and their contacts.
type CompaniesHandler struct {
	repo        database.CompanyRepositoryInterface
	contactRepo database.ContactRepositoryInterface
}

// NewCompaniesHandler creates a new companies handler.
func NewCompaniesHandler(
	repo database.CompanyRepositoryInterface,
	contactRepo database.ContactRepositoryInterface,
) *CompaniesHandler {
	return &CompaniesHandler{repo: repo, contactRepo: contactRepo}
}

// ListCompanies handles GET /api/v1/companies
func (h *CompaniesHandler) ListCompanies(c *gin.Context) {
	limit, offset := parseLimitOffset(c, defaultCompaniesLimit, maxCompaniesLimit)
	filter := database.CompanyFilter{
		Industry: c.Query("industry"),
		State:    c.Query("state"),
		JobID:    c.Query("job_id"),
	}

	bracket := c.Query("revenue_bracket")
	if bracket != "" {
		if _, ok := extract.LookupRevenueBracket(bracket); !ok {
			respondBadRequest(c, "Unknown revenue_bracket: "+bracket)
			return
		}
		h.listByBracket(c, filter, bracket, limit, offset)
		return
	}

	filter.Limit, filter.Offset = limit, offset
	companies, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, "Failed to retrieve companies", err)
		return
	}
	total, err := h.repo.Count(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, "Failed to get total count", err)
		return
	}

	respondCompanies(c, companies, total, limit, offset)
}

// listByBracket filters on the parsed revenue string, which SQL cannot
// compare, then paginates the matches.
func (h *CompaniesHandler) listByBracket(c *gin.Context, filter database.CompanyFilter, bracket string, limit, offset int) {
	all, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, "Failed to retrieve companies", err)
		return
	}

	matched := make([]*domain.Company, 0, len(all))
	for _, company := range all {
		if name, ok := extract.RevenueBracketOf(company.EstimatedRevenue); ok && name == bracket {
			matched = append(matched, company)
		}
	}

	logger.FromContext(c.Request.Context()).Debug("Filtered companies by revenue bracket",
		logger.String("revenue_bracket", bracket),
		logger.Int("scanned", len(all)),
		logger.Int("matched", len(matched)),
	)

	total := len(matched)
	start := min(offset, total)
	end := min(start+limit, total)
	respondCompanies(c, matched[start:end], total, limit, offset)
}

func respondCompanies(c *gin.Context, companies []*domain.Company, total, limit, offset int) {
	if companies == nil {
		companies = []*domain.Company{}
	}
	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetCompany handles GET /api/v1/companies/:id
func (h *CompaniesHandler) GetCompany(c *gin.Context) {
	company, ok := h.loadCompany(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, company)
}

// ListContacts handles GET /api/v1/companies/:id/contacts
func (h *CompaniesHandler) ListContacts(c *gin.Context) {
	company, ok := h.loadCompany(c)
	if !ok {
		return
	}

	contacts, err := h.contactRepo.ListByCompany(c.Request.Context(), company.ID)
	if err != nil {
		respondInternalError(c, "Failed to retrieve contacts", err)
		return
	}
	if contacts == nil {
		contacts = []*domain.Contact{}
	}

	c.JSON(http.StatusOK, gin.H{
		"company_id": company.ID,
		"contacts":   contacts,
		"total":      len(contacts),
	})
}

func (h *CompaniesHandler) loadCompany(c *gin.Context) (*domain.Company, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}

	company, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "Company")
		return nil, false
	}
	if err != nil {
		respondInternalError(c, "Failed to retrieve company", err)
		return nil, false
	}
	return company, true
}
