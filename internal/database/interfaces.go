package database

//go:generate mockgen -source=interfaces.go -destination=../../testutils/mocks/mock_repositories.go -package=mocks

import (
	"context"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

// JobRepositoryInterface defines the contract for job data access.
type JobRepositoryInterface interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	GetStatus(ctx context.Context, id string) (string, error)
	List(ctx context.Context, params ListJobsParams) ([]*domain.Job, error)
	Count(ctx context.Context, status string) (int, error)
	TransitionStatus(ctx context.Context, id string, from []string, to string) error
	UpdateProgress(ctx context.Context, id string, p domain.Progress) error
	Delete(ctx context.Context, id string) error
	FailStale(ctx context.Context) ([]string, error)
}

// LogRepositoryInterface defines the contract for job log data access.
type LogRepositoryInterface interface {
	Add(ctx context.Context, entry *domain.LogEntry) error
	ListByJob(ctx context.Context, jobID string, limit, offset int) ([]*domain.LogEntry, error)
}

// CompanyRepositoryInterface defines the contract for company data access.
type CompanyRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Company) (*domain.Company, bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	GetByDomain(ctx context.Context, companyDomain string) (*domain.Company, error)
	ExistsDomain(ctx context.Context, companyDomain string) (bool, error)
	Update(ctx context.Context, c *domain.Company) error
	Delete(ctx context.Context, id int64) error
	ListByJob(ctx context.Context, jobID string) ([]*domain.Company, error)
	ListByIndustries(ctx context.Context, industries []string) ([]*domain.Company, error)
	List(ctx context.Context, filter CompanyFilter) ([]*domain.Company, error)
	Count(ctx context.Context, filter CompanyFilter) (int, error)
}

// ContactRepositoryInterface defines the contract for contact data access.
type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Contact) (bool, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*domain.Contact, error)
	UpdateEmail(ctx context.Context, id int64, email string, confidence float64) (bool, error)
}

// QueueRepositoryInterface defines the contract for queue bookkeeping.
type QueueRepositoryInterface interface {
	Add(ctx context.Context, item *domain.QueueItem) error
	Finish(ctx context.Context, id int64, status string, errMsg string) error
	CountByStatus(ctx context.Context, jobID string) (map[string]int, error)
}

var (
	_ JobRepositoryInterface     = (*JobRepository)(nil)
	_ LogRepositoryInterface     = (*LogRepository)(nil)
	_ CompanyRepositoryInterface = (*CompanyRepository)(nil)
	_ ContactRepositoryInterface = (*ContactRepository)(nil)
	_ QueueRepositoryInterface   = (*QueueRepository)(nil)
)
