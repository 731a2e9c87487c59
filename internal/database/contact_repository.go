package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

// contactSelectColumns lists columns for SELECT queries on contacts.
// email is nullable so contacts without one do not collide on the unique key.
const contactSelectColumns = `id, company_id, first_name, last_name, full_name, title,
	COALESCE(email, '') AS email, email_confidence, phone, linkedin_url, source, source_url,
	created_at, updated_at`

// ContactRepository handles database operations for contacts.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a contact. A duplicate (company_id, email) is a silent no-op
// reported as created=false.
func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (bool, error) {
	query := `
		INSERT INTO contacts (
			company_id, first_name, last_name, full_name, title, email, email_confidence,
			phone, linkedin_url, source, source_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (company_id, email) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx, query,
		c.CompanyID, c.FirstName, c.LastName, c.FullName, c.Title, nullable(c.Email), c.EmailConfidence,
		c.Phone, c.LinkedInURL, c.Source, c.SourceURL,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create contact: %w", err)
	}

	return true, nil
}

// ListByCompany returns a company's contacts in insertion order.
func (r *ContactRepository) ListByCompany(ctx context.Context, companyID int64) ([]*domain.Contact, error) {
	query := `SELECT ` + contactSelectColumns + ` FROM contacts WHERE company_id = $1 ORDER BY id`

	var contacts []*domain.Contact
	if err := r.db.SelectContext(ctx, &contacts, query, companyID); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	if contacts == nil {
		contacts = []*domain.Contact{}
	}

	return contacts, nil
}

// UpdateEmail back-fills an email guess on a contact that has none.
// It reports false when the contact already had an email or the address is
// already taken by another contact of the same company.
func (r *ContactRepository) UpdateEmail(ctx context.Context, id int64, email string, confidence float64) (bool, error) {
	query := `
		UPDATE contacts
		SET email = $2, email_confidence = $3, updated_at = NOW()
		WHERE id = $1 AND (email IS NULL OR email = '')
	`

	result, err := r.db.ExecContext(ctx, query, id, email, confidence)
	if err != nil {
		if IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update contact email: %w", err)
	}

	n, affectedErr := rowsAffected(result)
	if affectedErr != nil {
		return false, fmt.Errorf("failed to read update result: %w", affectedErr)
	}

	return n > 0, nil
}
