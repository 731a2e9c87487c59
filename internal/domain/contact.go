package domain

import "time"

// Contact is a person associated with exactly one company.
type Contact struct {
	ID              int64     `db:"id"               json:"id"`
	CompanyID       int64     `db:"company_id"       json:"company_id"`
	FirstName       string    `db:"first_name"       json:"first_name"`
	LastName        string    `db:"last_name"        json:"last_name"`
	FullName        string    `db:"full_name"        json:"full_name"`
	Title           string    `db:"title"            json:"title"`
	Email           string    `db:"email"            json:"email"`
	EmailConfidence float64   `db:"email_confidence" json:"email_confidence"`
	Phone           string    `db:"phone"            json:"phone"`
	LinkedInURL     string    `db:"linkedin_url"     json:"linkedin_url"`
	Source          string    `db:"source"           json:"source"`
	SourceURL       string    `db:"source_url"       json:"source_url"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"       json:"updated_at"`
}
