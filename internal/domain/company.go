package domain

import "time"

// Revenue provenance tags.
const (
	RevenueSourceSnippet        = "search_snippet"
	RevenueSourceKnowledgeGraph = "knowledge_graph"
	RevenueSourcePageText       = "page_text"
	RevenueSourceEstimated      = "estimated"
)

// DefaultCountry is assigned to companies without an explicit country.
const DefaultCountry = "US"

// Company is a discovered business. Domain is the natural key.
type Company struct {
	ID                 int64     `db:"id"                   json:"id"`
	Name               string    `db:"name"                 json:"name"`
	Domain             string    `db:"domain"               json:"domain"`
	Website            string    `db:"website"              json:"website"`
	Industry           string    `db:"industry"             json:"industry"`
	SubIndustry        string    `db:"sub_industry"         json:"sub_industry"`
	Description        string    `db:"description"          json:"description"`
	City               string    `db:"city"                 json:"city"`
	State              string    `db:"state"                json:"state"`
	ZipCode            string    `db:"zip_code"             json:"zip_code"`
	Country            string    `db:"country"              json:"country"`
	Phone              string    `db:"phone"                json:"phone"`
	EmployeeCount      *int      `db:"employee_count"       json:"employee_count,omitempty"`
	EmployeeCountRange string    `db:"employee_count_range" json:"employee_count_range"`
	EstimatedRevenue   string    `db:"estimated_revenue"    json:"estimated_revenue"`
	RevenueSource      string    `db:"revenue_source"       json:"revenue_source"`
	Source             string    `db:"source"               json:"source"`
	SourceURL          string    `db:"source_url"           json:"source_url"`
	JobID              *string   `db:"job_id"               json:"job_id,omitempty"`
	CreatedAt          time.Time `db:"created_at"           json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"           json:"updated_at"`
}

// NeedsRevenue reports whether the estimated revenue is unknown.
func (c *Company) NeedsRevenue() bool { return c.EstimatedRevenue == "" }

// NeedsEmployees reports whether the employee count is unknown.
func (c *Company) NeedsEmployees() bool { return c.EmployeeCount == nil || *c.EmployeeCount <= 0 }

// NeedsLocation reports whether the state is unknown.
func (c *Company) NeedsLocation() bool { return c.State == "" }

// NeedsEnrichment reports whether any firmographic field is missing.
func (c *Company) NeedsEnrichment() bool {
	return c.NeedsRevenue() || c.NeedsEmployees() || c.NeedsLocation()
}
