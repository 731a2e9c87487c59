package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/prospector/internal/database"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

const testJobID = "9b2f7c1e-3a4d-4e5f-8a6b-7c8d9e0f1a2b"

var companyColumns = []string{
	"id", "name", "domain", "website", "industry", "sub_industry", "description",
	"city", "state", "zip_code", "country", "phone", "employee_count", "employee_count_range",
	"estimated_revenue", "revenue_source", "source", "source_url", "job_id", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "postgres"), mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func companyRow(now time.Time, id int64, companyDomain string) *sqlmock.Rows {
	return sqlmock.NewRows(companyColumns).AddRow(
		id, "Acme Coatings", companyDomain, "https://"+companyDomain, "Specialty Chemicals", "", "",
		"Houston", "TX", "", "US", "", nil, "",
		"", "", "google", "https://"+companyDomain, testJobID, now, now,
	)
}

func TestJobRepository_Create(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewJobRepository(db)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO jobs").
		WithArgs(testJobID, "chem run", domain.JobStatusPending, domain.JobTypeDiscovery,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	job := &domain.Job{
		ID:         testJobID,
		Name:       "chem run",
		JobType:    domain.JobTypeDiscovery,
		Industries: pq.StringArray{"Specialty Chemicals"},
	}
	require.NoError(t, repo.Create(context.Background(), job))

	assert.Equal(t, domain.JobStatusPending, job.Status)
	assert.Equal(t, now, job.CreatedAt)
	assert.NotNil(t, job.Config)
	expectationsMet(t, mock)
}

func TestJobRepository_GetByIDNotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewJobRepository(db)

	mock.ExpectQuery("SELECT .+ FROM jobs WHERE id").
		WithArgs(testJobID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), testJobID)
	require.ErrorIs(t, err, database.ErrNotFound)
	expectationsMet(t, mock)
}

func TestJobRepository_TransitionStatus(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewJobRepository(db)

	mock.ExpectExec("UPDATE jobs .+ status = ANY").
		WithArgs(testJobID, domain.JobStatusPaused, pq.StringArray{domain.JobStatusRunning}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.TransitionStatus(context.Background(), testJobID, []string{domain.JobStatusRunning}, domain.JobStatusPaused)
	require.NoError(t, err)
	expectationsMet(t, mock)
}

func TestJobRepository_TransitionStatusConflict(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewJobRepository(db)

	mock.ExpectExec("UPDATE jobs").
		WithArgs(testJobID, domain.JobStatusPaused, pq.StringArray{domain.JobStatusRunning}).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM jobs WHERE id").
		WithArgs(testJobID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(domain.JobStatusCompleted))

	err := repo.TransitionStatus(context.Background(), testJobID, []string{domain.JobStatusRunning}, domain.JobStatusPaused)
	require.ErrorIs(t, err, database.ErrStatusConflict)
	assert.Contains(t, err.Error(), "completed")
	expectationsMet(t, mock)
}

func TestJobRepository_TransitionStatusMissingJob(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewJobRepository(db)

	mock.ExpectExec("UPDATE jobs").
		WithArgs(testJobID, domain.JobStatusRunning, pq.StringArray{domain.JobStatusPending}).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM jobs WHERE id").
		WithArgs(testJobID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	err := repo.TransitionStatus(context.Background(), testJobID, []string{domain.JobStatusPending}, domain.JobStatusRunning)
	require.ErrorIs(t, err, database.ErrNotFound)
	expectationsMet(t, mock)
}

func TestJobRepository_UpdateProgress(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewJobRepository(db)

	mock.ExpectExec("UPDATE jobs").
		WithArgs(testJobID, 12, 10, 4, 0, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProgress(context.Background(), testJobID, domain.Progress{
		TotalURLs: 12, ProcessedURLs: 10, CompaniesFound: 4, ErrorsCount: 1,
	})
	require.NoError(t, err)
	expectationsMet(t, mock)
}

func TestJobRepository_FailStale(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewJobRepository(db)

	mock.ExpectQuery("UPDATE jobs\\s+SET status = 'failed'").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a").AddRow("b"))

	ids, err := repo.FailStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
	expectationsMet(t, mock)
}

func TestCompanyRepository_CreateNew(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewCompanyRepository(db)
	now := time.Now()

	mock.ExpectExec("INSERT INTO companies .+ ON CONFLICT \\(domain\\) DO NOTHING").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM companies WHERE domain").
		WithArgs("acme.com").
		WillReturnRows(companyRow(now, 7, "acme.com"))

	jobID := testJobID
	stored, created, err := repo.Create(context.Background(), &domain.Company{
		Name: "Acme Coatings", Domain: "acme.com", JobID: &jobID,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(7), stored.ID)
	assert.Equal(t, "TX", stored.State)
	require.NotNil(t, stored.JobID)
	assert.Equal(t, testJobID, *stored.JobID)
	expectationsMet(t, mock)
}

func TestCompanyRepository_CreateExistingDomainReturnsStoredRow(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewCompanyRepository(db)
	now := time.Now()

	mock.ExpectExec("INSERT INTO companies").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM companies WHERE domain").
		WithArgs("acme.com").
		WillReturnRows(companyRow(now, 3, "acme.com"))

	stored, created, err := repo.Create(context.Background(), &domain.Company{
		Name: "Acme Duplicate", Domain: "acme.com",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(3), stored.ID)
	assert.Equal(t, "Acme Coatings", stored.Name)
	expectationsMet(t, mock)
}

func TestCompanyRepository_ListAppliesFilters(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewCompanyRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM companies WHERE industry = \\$1 AND state = \\$2 .+ LIMIT \\$3 OFFSET \\$4").
		WithArgs("Specialty Chemicals", "TX", 50, 0).
		WillReturnRows(companyRow(now, 1, "acme.com"))

	companies, err := repo.List(context.Background(), database.CompanyFilter{
		Industry: "Specialty Chemicals", State: "tx", Limit: 50,
	})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "acme.com", companies[0].Domain)
	expectationsMet(t, mock)
}

func TestCompanyRepository_ListWithoutLimit(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewCompanyRepository(db)

	mock.ExpectQuery("SELECT .+ FROM companies ORDER BY created_at DESC, id DESC$").
		WillReturnRows(sqlmock.NewRows(companyColumns))

	companies, err := repo.List(context.Background(), database.CompanyFilter{})
	require.NoError(t, err)
	assert.Empty(t, companies)
	assert.NotNil(t, companies)
	expectationsMet(t, mock)
}

func TestContactRepository_CreateDuplicateIsNoOp(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewContactRepository(db)

	mock.ExpectQuery("INSERT INTO contacts .+ ON CONFLICT \\(company_id, email\\) DO NOTHING").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}))

	created, err := repo.Create(context.Background(), &domain.Contact{
		CompanyID: 1, Email: "jane.doe@acme.com", EmailConfidence: 100,
	})
	require.NoError(t, err)
	assert.False(t, created)
	expectationsMet(t, mock)
}

func TestContactRepository_CreateStoresNullEmail(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewContactRepository(db)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO contacts").
		WithArgs(int64(1), "Jane", "Doe", "Jane Doe", "CEO", nil, float64(0),
			"", "", "team_page", "https://acme.com/team").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(9), now, now))

	contact := &domain.Contact{
		CompanyID: 1, FirstName: "Jane", LastName: "Doe", FullName: "Jane Doe", Title: "CEO",
		Source: "team_page", SourceURL: "https://acme.com/team",
	}
	created, err := repo.Create(context.Background(), contact)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(9), contact.ID)
	expectationsMet(t, mock)
}

func TestContactRepository_UpdateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  func(sqlmock.Sqlmock)
		want    bool
		wantErr bool
	}{
		{
			name: "back-filled",
			result: func(m sqlmock.Sqlmock) {
				m.ExpectExec("UPDATE contacts").WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: true,
		},
		{
			name: "already has email",
			result: func(m sqlmock.Sqlmock) {
				m.ExpectExec("UPDATE contacts").WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "address taken",
			result: func(m sqlmock.Sqlmock) {
				m.ExpectExec("UPDATE contacts").WillReturnError(&pq.Error{Code: "23505"})
			},
		},
		{
			name: "driver failure",
			result: func(m sqlmock.Sqlmock) {
				m.ExpectExec("UPDATE contacts").WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			repo := database.NewContactRepository(db)
			tt.result(mock)

			updated, err := repo.UpdateEmail(context.Background(), 4, "jane.doe@acme.com", 56)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, updated)
			expectationsMet(t, mock)
		})
	}
}

func TestQueueRepository_CountByStatus(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := database.NewQueueRepository(db)

	mock.ExpectQuery("SELECT status, COUNT").
		WithArgs(testJobID).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(domain.QueueStatusCompleted, 8).
			AddRow(domain.QueueStatusFailed, 2))

	counts, err := repo.CountByStatus(context.Background(), testJobID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"completed": 8, "failed": 2}, counts)
	expectationsMet(t, mock)
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, database.IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, database.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	cfg := database.Config{}.WithDefaults()
	assert.Equal(t, database.DefaultMaxOpenConns, cfg.MaxOpenConns)
	assert.Equal(t, database.DefaultMaxIdleConns, cfg.MaxIdleConns)
	assert.Equal(t, database.DefaultConnMaxLifetime, cfg.ConnMaxLifetime)

	small := database.Config{MaxOpenConns: 2}.WithDefaults()
	assert.Equal(t, 2, small.MaxIdleConns)

	dsn := database.Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "prospector", SSLMode: "disable"}.DSN()
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=prospector sslmode=disable", dsn)
}
