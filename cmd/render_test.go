package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/search"
)

func TestRenderJobSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderJobSummary(&buf, &domain.Job{
		ID:             "job-1",
		Name:           "Texas HVAC",
		JobType:        domain.JobTypeFull,
		Status:         domain.JobStatusCompleted,
		Industries:     []string{"HVAC", "Plumbing"},
		TotalURLs:      12,
		ProcessedURLs:  10,
		CompaniesFound: 4,
		ContactsFound:  9,
		ErrorsCount:    1,
	}, 90*time.Second)

	out := buf.String()
	assert.Contains(t, out, "Job job-1")
	assert.Contains(t, out, "HVAC, Plumbing")
	assert.Contains(t, out, "10/12")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "1m30s")
}

func TestRenderJobs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderJobs(&buf, []*domain.Job{
		{ID: "a", Name: "first", JobType: domain.JobTypeDiscovery, Status: domain.JobStatusRunning, Industries: []string{"HVAC"}},
		{ID: "b", Name: "second", JobType: domain.JobTypeEnrichment, Status: domain.JobStatusPaused},
	}, 7)

	out := buf.String()
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "paused")
	assert.Contains(t, out, "7")
}

func TestRenderBalances(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderBalances(&buf, []search.Balance{
		{KeyIndex: 1, Credit: 2500},
		{KeyIndex: 2, Exhausted: true, Error: "status 401"},
	})

	out := buf.String()
	assert.Contains(t, out, "2500")
	assert.Contains(t, out, "status 401")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := newVersionCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "prospector version dev\n", buf.String())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "run", "jobs", "keys", "migrate", "version"} {
		assert.Contains(t, names, want)
	}
}
