package enrich_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/enrich"
	"github.com/jonesrussell/north-cloud/prospector/internal/search"
)

type stubSearcher struct {
	available bool
	responses map[string]*search.Response
	err       error
	queries   []string
}

func (s *stubSearcher) Search(_ context.Context, req search.Request) (*search.Response, error) {
	s.queries = append(s.queries, req.Query)
	if s.err != nil {
		return nil, s.err
	}
	return s.responses[req.Query], nil
}

func (s *stubSearcher) Available() bool { return s.available }

func TestEnrichCompany_NothingMissing(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{available: true}
	e := enrich.New(s, nil)

	known := enrich.Fields{EstimatedRevenue: "$10M", EmployeeCount: 40, State: "OH"}
	got, err := e.EnrichCompany(context.Background(), "Acme", "acme.com", nil, "", known)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Empty(t, s.queries)
}

func TestEnrichCompany_SuppliedKnowledgeGraphAvoidsSearch(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{available: true}
	kg := map[string]any{
		"revenue": "$45 million",
		"attributes": map[string]any{
			"Employees":    "120",
			"Headquarters": "Austin, Texas",
		},
	}

	got, err := enrich.New(s, nil).EnrichCompany(context.Background(), "Acme", "acme.com", kg, "", enrich.Fields{})
	require.NoError(t, err)
	assert.Equal(t, enrich.Fields{
		EstimatedRevenue:   "$45M",
		RevenueSource:      domain.RevenueSourceKnowledgeGraph,
		EmployeeCount:      120,
		EmployeeCountRange: "51-200",
		City:               "Austin",
		State:              "TX",
	}, got)
	assert.Empty(t, s.queries)
}

func TestEnrichCompany_TargetedSecondSearchAndEstimate(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{available: true, responses: map[string]*search.Response{
		`"Gamma Tools" revenue employees headquarters`: {
			Organic: []search.OrganicResult{{Title: "Gamma Tools", Snippet: "Gamma Tools has 100 employees."}},
		},
		`"Gamma Tools" revenue headquarters location`: {
			AnswerBox: map[string]any{"answer": "Gamma Tools is headquartered in Dayton, Ohio."},
		},
	}}

	got, err := enrich.New(s, nil).EnrichCompany(
		context.Background(), "Gamma Tools", "gammatools.com", nil, "Specialty Chemicals", enrich.Fields{},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`"Gamma Tools" revenue employees headquarters`,
		`"Gamma Tools" revenue headquarters location`,
	}, s.queries)

	assert.Equal(t, 100, got.EmployeeCount)
	assert.Equal(t, "Dayton", got.City)
	assert.Equal(t, "OH", got.State)
	assert.Equal(t, "~$40M", got.EstimatedRevenue)
	assert.Equal(t, domain.RevenueSourceEstimated, got.RevenueSource)
}

func TestEnrichCompany_ReturnsOnlyNewFields(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{available: true, responses: map[string]*search.Response{
		`"Acme" revenue employees headquarters`: {
			Organic: []search.OrganicResult{{Snippet: "Acme, based in Reno, NV, reports $12 million in revenue and has 60 employees."}},
		},
	}}
	known := enrich.Fields{State: "TX", City: "Austin"}

	got, err := enrich.New(s, nil).EnrichCompany(context.Background(), "Acme", "acme.com", nil, "", known)
	require.NoError(t, err)
	assert.Equal(t, "$12M", got.EstimatedRevenue)
	assert.Equal(t, domain.RevenueSourceSnippet, got.RevenueSource)
	assert.Equal(t, 60, got.EmployeeCount)
	assert.Empty(t, got.State, "known location is not returned")
	assert.Len(t, s.queries, 1)
}

func TestEnrichCompany_NoKeys(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{available: false}
	got, err := enrich.New(s, nil).EnrichCompany(
		context.Background(), "Acme", "acme.com", nil, "", enrich.Fields{EmployeeCountRange: "11-50"},
	)
	require.NoError(t, err)
	assert.Empty(t, s.queries)
	assert.Equal(t, "~$9M", got.EstimatedRevenue, "head-count estimate needs no search")
}

func TestEnrichCompany_ContextError(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{available: true, err: context.Canceled}
	_, err := enrich.New(s, nil).EnrichCompany(context.Background(), "Acme", "acme.com", nil, "", enrich.Fields{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFields_ApplyToNeverOverwrites(t *testing.T) {
	t.Parallel()

	count := 25
	c := &domain.Company{EmployeeCount: &count, EmployeeCountRange: "11-50", State: "OH", City: "Dayton"}
	f := enrich.Fields{
		EstimatedRevenue: "$8M", RevenueSource: domain.RevenueSourceSnippet,
		EmployeeCount: 90, EmployeeCountRange: "51-200",
		City: "Austin", State: "TX",
	}

	assert.True(t, f.ApplyTo(c))
	assert.Equal(t, "$8M", c.EstimatedRevenue)
	assert.Equal(t, 25, *c.EmployeeCount)
	assert.Equal(t, "OH", c.State)

	assert.False(t, f.ApplyTo(c), "second apply changes nothing")
}

func TestFields_SummaryAndMissing(t *testing.T) {
	t.Parallel()

	f := enrich.Fields{EstimatedRevenue: "$45M", EmployeeCount: 120, City: "Austin", State: "TX"}
	assert.Equal(t, "rev=$45M, emp=120, loc=Austin, TX", f.Summary())
	assert.Empty(t, f.Missing())

	assert.Equal(t, []string{"revenue", "headquarters location", "employees"}, enrich.Fields{}.Missing())
	assert.Equal(t, "loc=NV", enrich.Fields{State: "NV"}.Summary())
}

func TestFieldsOf(t *testing.T) {
	t.Parallel()

	n := 12
	f := enrich.FieldsOf(&domain.Company{EmployeeCount: &n, State: "WA", City: "Tacoma", EstimatedRevenue: "$3M"})
	assert.Equal(t, 12, f.EmployeeCount)
	assert.Equal(t, "WA", f.State)
	assert.Equal(t, "$3M", f.EstimatedRevenue)
}
