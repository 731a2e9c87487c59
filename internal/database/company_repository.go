package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/lib/pq"
)

// companySelectColumns lists columns for SELECT queries on companies.
const companySelectColumns = `id, name, domain, website, industry, sub_industry, description,
	city, state, zip_code, country, phone, employee_count, employee_count_range,
	estimated_revenue, revenue_source, source, source_url, job_id, created_at, updated_at`

// CompanyFilter narrows company listings. A zero Limit returns every match.
type CompanyFilter struct {
	Industry string
	State    string
	JobID    string
	Limit    int
	Offset   int
}

// CompanyRepository handles database operations for companies.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts a company keyed by domain. When the domain already exists the
// stored row is returned unchanged and created is false.
// Uses INSERT ... ON CONFLICT DO NOTHING then SELECT.
func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) (*domain.Company, bool, error) {
	if c.Country == "" {
		c.Country = domain.DefaultCountry
	}

	insertQuery := `
		INSERT INTO companies (
			name, domain, website, industry, sub_industry, description,
			city, state, zip_code, country, phone, employee_count, employee_count_range,
			estimated_revenue, revenue_source, source, source_url, job_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (domain) DO NOTHING
	`

	result, err := r.db.ExecContext(
		ctx, insertQuery,
		c.Name, c.Domain, c.Website, c.Industry, c.SubIndustry, c.Description,
		c.City, c.State, c.ZipCode, c.Country, c.Phone, c.EmployeeCount, c.EmployeeCountRange,
		c.EstimatedRevenue, c.RevenueSource, c.Source, c.SourceURL, c.JobID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert company: %w", err)
	}

	inserted, affectedErr := rowsAffected(result)
	if affectedErr != nil {
		return nil, false, fmt.Errorf("failed to read insert result: %w", affectedErr)
	}

	stored, getErr := r.GetByDomain(ctx, c.Domain)
	if getErr != nil {
		return nil, false, getErr
	}

	return stored, inserted > 0, nil
}

// GetByID retrieves a company by ID.
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	var company domain.Company
	query := `SELECT ` + companySelectColumns + ` FROM companies WHERE id = $1`

	if err := r.db.GetContext(ctx, &company, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("company %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &company, nil
}

// GetByDomain retrieves a company by its unique domain.
func (r *CompanyRepository) GetByDomain(ctx context.Context, companyDomain string) (*domain.Company, error) {
	var company domain.Company
	query := `SELECT ` + companySelectColumns + ` FROM companies WHERE domain = $1`

	if err := r.db.GetContext(ctx, &company, query, companyDomain); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("company %s: %w", companyDomain, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get company by domain: %w", err)
	}

	return &company, nil
}

// ExistsDomain reports whether a company with the domain is stored.
func (r *CompanyRepository) ExistsDomain(ctx context.Context, companyDomain string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM companies WHERE domain = $1)`

	if err := r.db.GetContext(ctx, &exists, query, companyDomain); err != nil {
		return false, fmt.Errorf("failed to check company domain: %w", err)
	}

	return exists, nil
}

// Update writes every mutable column of a company.
func (r *CompanyRepository) Update(ctx context.Context, c *domain.Company) error {
	query := `
		UPDATE companies
		SET name = $2, website = $3, industry = $4, sub_industry = $5, description = $6,
			city = $7, state = $8, zip_code = $9, country = $10, phone = $11,
			employee_count = $12, employee_count_range = $13,
			estimated_revenue = $14, revenue_source = $15, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx, query, c.ID,
		c.Name, c.Website, c.Industry, c.SubIndustry, c.Description,
		c.City, c.State, c.ZipCode, c.Country, c.Phone,
		c.EmployeeCount, c.EmployeeCountRange,
		c.EstimatedRevenue, c.RevenueSource,
	)
	return execRequireRows(result, err, fmt.Errorf("company %d: %w", c.ID, ErrNotFound))
}

// Delete removes a company. Its contacts cascade.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	return execRequireRows(result, err, fmt.Errorf("company %d: %w", id, ErrNotFound))
}

// ListByJob returns the companies discovered by a job, oldest first.
func (r *CompanyRepository) ListByJob(ctx context.Context, jobID string) ([]*domain.Company, error) {
	query := `SELECT ` + companySelectColumns + ` FROM companies WHERE job_id = $1 ORDER BY id`

	var companies []*domain.Company
	if err := r.db.SelectContext(ctx, &companies, query, jobID); err != nil {
		return nil, fmt.Errorf("failed to list job companies: %w", err)
	}

	return companies, nil
}

// ListByIndustries returns stored companies in any of the industries, or all
// companies when industries is empty.
func (r *CompanyRepository) ListByIndustries(ctx context.Context, industries []string) ([]*domain.Company, error) {
	query := `SELECT ` + companySelectColumns + ` FROM companies
		WHERE cardinality($1::text[]) = 0 OR industry = ANY($1::text[])
		ORDER BY id`

	var companies []*domain.Company
	if err := r.db.SelectContext(ctx, &companies, query, pq.StringArray(industries)); err != nil {
		return nil, fmt.Errorf("failed to list companies by industry: %w", err)
	}

	return companies, nil
}

// List returns companies matching the filter, newest first.
func (r *CompanyRepository) List(ctx context.Context, filter CompanyFilter) ([]*domain.Company, error) {
	where, args := filter.conditions()
	query := `SELECT ` + companySelectColumns + ` FROM companies` + where + ` ORDER BY created_at DESC, id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	var companies []*domain.Company
	if err := r.db.SelectContext(ctx, &companies, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	if companies == nil {
		companies = []*domain.Company{}
	}

	return companies, nil
}

// Count returns the number of companies matching the filter.
func (r *CompanyRepository) Count(ctx context.Context, filter CompanyFilter) (int, error) {
	where, args := filter.conditions()

	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM companies`+where, args...); err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}

	return count, nil
}

func (f CompanyFilter) conditions() (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Industry != "" {
		add("industry = $%d", f.Industry)
	}
	if f.State != "" {
		add("state = $%d", strings.ToUpper(f.State))
	}
	if f.JobID != "" {
		add("job_id = $%d", f.JobID)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
