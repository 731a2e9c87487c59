package domain_test

import (
	"testing"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_Options(t *testing.T) {
	t.Parallel()

	job := &domain.Job{Config: domain.JSONBMap{
		"sources":  []any{"google", "thomasnet"},
		"location": "  Austin, TX ",
	}}

	opts, err := job.Options()
	require.NoError(t, err)
	assert.Equal(t, []string{"google", "thomasnet"}, opts.Sources)
	assert.Equal(t, "Austin, TX", opts.Location)
	assert.True(t, opts.SourceEnabled("ThomasNet"))
	assert.False(t, opts.SourceEnabled("kompass"))
}

func TestJob_OptionsEmptyEnablesAllSources(t *testing.T) {
	t.Parallel()

	opts, err := (&domain.Job{}).Options()
	require.NoError(t, err)
	assert.True(t, opts.SourceEnabled("kompass"))
	assert.Empty(t, opts.Location)
}

func TestJobOptions_ToConfigRoundTrip(t *testing.T) {
	t.Parallel()

	in := domain.JobOptions{Sources: []string{"industrynet"}, Location: "Ohio"}
	job := &domain.Job{Config: in.ToConfig()}

	out, err := job.Options()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestJSONBMap_Scan(t *testing.T) {
	t.Parallel()

	var m domain.JSONBMap
	require.NoError(t, m.Scan([]byte(`{"location":"Texas"}`)))
	assert.Equal(t, "Texas", m["location"])

	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)

	assert.Error(t, m.Scan(42))
}

func TestCompany_NeedsEnrichment(t *testing.T) {
	t.Parallel()

	count := 40
	c := &domain.Company{EstimatedRevenue: "$12M", EmployeeCount: &count, State: "TX"}
	assert.False(t, c.NeedsEnrichment())

	c.State = ""
	assert.True(t, c.NeedsLocation())
	assert.True(t, c.NeedsEnrichment())
}
