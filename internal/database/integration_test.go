//go:build integration

package database_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jonesrussell/north-cloud/prospector/internal/database"
	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

const (
	postgresImage          = "postgres:16-alpine"
	postgresStartupTimeout = 60 * time.Second
	concurrentWriters      = 8
)

// startPostgres runs a throwaway PostgreSQL container and returns a migrated connection.
func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "prospector",
				"POSTGRES_PASSWORD": "prospector",
				"POSTGRES_DB":       "prospector_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(postgresStartupTimeout),
		},
		Started: true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := database.NewPostgresConnection(ctx, database.Config{
		Host:     host,
		Port:     port.Port(),
		User:     "prospector",
		Password: "prospector",
		DBName:   "prospector_test",
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(ctx, db))
	version, err := database.MigrationVersion(ctx, db)
	require.NoError(t, err)
	require.Positive(t, version)

	return db
}

func TestPostgres_Repositories(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := startPostgres(t)
	ctx := context.Background()

	jobs := database.NewJobRepository(db)
	logs := database.NewLogRepository(db)
	companies := database.NewCompanyRepository(db)
	contacts := database.NewContactRepository(db)

	job, err := domain.NewJob("integration", domain.JobTypeDiscovery, []string{"HVAC"}, domain.JobOptions{Location: "TX"})
	require.NoError(t, err)
	require.NoError(t, jobs.Create(ctx, job))

	t.Run("concurrent creates of one domain store a single company", func(t *testing.T) {
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			created int
			ids     = map[int64]struct{}{}
		)

		for i := range concurrentWriters {
			wg.Add(1)
			go func() {
				defer wg.Done()
				stored, ok, createErr := companies.Create(ctx, &domain.Company{
					Name:     fmt.Sprintf("Acme %d", i),
					Domain:   "acme.com",
					Industry: "HVAC",
					JobID:    &job.ID,
				})
				assert.NoError(t, createErr)
				if stored == nil {
					return
				}

				mu.Lock()
				defer mu.Unlock()
				if ok {
					created++
				}
				ids[stored.ID] = struct{}{}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		assert.Len(t, ids, 1)

		count, countErr := companies.Count(ctx, database.CompanyFilter{JobID: job.ID})
		require.NoError(t, countErr)
		assert.Equal(t, 1, count)
	})

	t.Run("contacts dedupe on company and email", func(t *testing.T) {
		company, getErr := companies.GetByDomain(ctx, "acme.com")
		require.NoError(t, getErr)

		first, createErr := contacts.Create(ctx, &domain.Contact{CompanyID: company.ID, FullName: "Jane Doe", Email: "jane@acme.com"})
		require.NoError(t, createErr)
		assert.True(t, first)

		again, createErr := contacts.Create(ctx, &domain.Contact{CompanyID: company.ID, FullName: "J. Doe", Email: "jane@acme.com"})
		require.NoError(t, createErr)
		assert.False(t, again)

		noEmail := &domain.Contact{CompanyID: company.ID, FirstName: "John", LastName: "Smith", FullName: "John Smith"}
		created, createErr := contacts.Create(ctx, noEmail)
		require.NoError(t, createErr)
		require.True(t, created)

		taken, updateErr := contacts.UpdateEmail(ctx, noEmail.ID, "jane@acme.com", 0.7)
		require.NoError(t, updateErr)
		assert.False(t, taken)

		updated, updateErr := contacts.UpdateEmail(ctx, noEmail.ID, "j.smith@acme.com", 0.7)
		require.NoError(t, updateErr)
		assert.True(t, updated)

		list, listErr := contacts.ListByCompany(ctx, company.ID)
		require.NoError(t, listErr)
		assert.Len(t, list, 2)
	})

	t.Run("job progress logs and stale cleanup", func(t *testing.T) {
		require.NoError(t, jobs.TransitionStatus(ctx, job.ID, []string{domain.JobStatusPending}, domain.JobStatusRunning))
		require.ErrorIs(t,
			jobs.TransitionStatus(ctx, job.ID, []string{domain.JobStatusPending}, domain.JobStatusRunning),
			database.ErrStatusConflict)
		require.NoError(t, jobs.UpdateProgress(ctx, job.ID, domain.Progress{TotalURLs: 4, ProcessedURLs: 2, CompaniesFound: 1}))
		require.NoError(t, logs.Add(ctx, &domain.LogEntry{JobID: job.ID, Level: domain.LogLevelInfo, Message: "Job started"}))

		stored, getErr := jobs.GetByID(ctx, job.ID)
		require.NoError(t, getErr)
		assert.Equal(t, domain.JobStatusRunning, stored.Status)
		assert.Equal(t, 2, stored.ProcessedURLs)
		assert.NotNil(t, stored.StartedAt)

		entries, listErr := logs.ListByJob(ctx, job.ID, 10, 0)
		require.NoError(t, listErr)
		require.Len(t, entries, 1)

		stale, staleErr := jobs.FailStale(ctx)
		require.NoError(t, staleErr)
		assert.Equal(t, []string{job.ID}, stale)

		status, statusErr := jobs.GetStatus(ctx, job.ID)
		require.NoError(t, statusErr)
		assert.Equal(t, domain.JobStatusFailed, status)
	})
}
