package sources

import (
	"context"
	"strings"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
	"github.com/jonesrussell/north-cloud/prospector/internal/fetcher"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/jonesrussell/north-cloud/prospector/internal/search"
)

// GoogleName is the general web search source.
const GoogleName = "google"

const googleResultsPerQuery = 10

// Google discovers companies from organic web search results.
type Google struct {
	searcher search.Searcher
	fetcher  fetcher.Fetcher
	log      logger.Logger
}

// NewGoogle creates the general search source.
func NewGoogle(s search.Searcher, f fetcher.Fetcher, log logger.Logger) *Google {
	if log == nil {
		log = logger.NewNop()
	}
	return &Google{searcher: s, fetcher: f, log: log}
}

// Name implements Source.
func (g *Google) Name() string { return GoogleName }

// Kind implements Source.
func (g *Google) Kind() Kind { return KindSearch }

// Search runs the query and keeps results that look like company home sites:
// no social, media, directory or government hosts, no large public companies
// and no listing pages. Each domain appears once.
func (g *Google) Search(ctx context.Context, query string) ([]Result, error) {
	resp, err := g.searcher.Search(ctx, search.Request{Query: query, Num: googleResultsPerQuery})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	kgDomain := knowledgeGraphDomain(resp.KnowledgeGraph)
	seen := make(map[string]struct{}, len(resp.Organic))
	results := make([]Result, 0, len(resp.Organic))

	for _, o := range resp.Organic {
		host := extract.DomainOf(o.Link)
		if !isCandidateHost(host) || extract.IsListLikePath(o.Link) {
			continue
		}
		if _, dup := seen[host]; dup {
			continue
		}
		seen[host] = struct{}{}

		r := Result{URL: o.Link, Title: o.Title, Snippet: o.Snippet, Domain: host}
		if len(results) == 0 && kgDomain != "" && kgDomain == host {
			r.KnowledgeGraph = resp.KnowledgeGraph
		}
		results = append(results, r)
	}

	return results, nil
}

// ScrapeCompany builds the draft from the search hit when it names the
// company; otherwise it fetches the page and extracts the company from it.
func (g *Google) ScrapeCompany(ctx context.Context, r Result) (*Draft, error) {
	if name, ok := resultName(r); ok {
		c := draftFromSnippet(r, name)
		return &Draft{Company: c, KnowledgeGraph: r.KnowledgeGraph}, nil
	}

	resp, err := g.fetcher.Get(ctx, r.URL)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	html := resp.Text()
	if extract.HasPublicCompanyIndicators(extract.PageText(html)) {
		g.log.Debug("Skipping public company page", logger.String("url", r.URL))
		return nil, nil
	}

	c, ok := extract.ExtractCompany(r.URL, html)
	if !ok {
		return nil, nil
	}
	c.Source = GoogleName
	return &Draft{Company: *c, KnowledgeGraph: r.KnowledgeGraph}, nil
}

// resultName prefers the knowledge-graph entity title, then the cleaned result title.
func resultName(r Result) (string, bool) {
	if title, ok := r.KnowledgeGraph["title"].(string); ok {
		title = strings.TrimSpace(title)
		if extract.IsValidCompanyName(title) {
			return title, true
		}
	}
	return extract.CleanCompanyName(r.Title)
}

func draftFromSnippet(r Result, name string) domain.Company {
	description := r.Snippet
	if kgDesc, ok := r.KnowledgeGraph["description"].(string); ok && strings.TrimSpace(kgDesc) != "" {
		description = kgDesc
	}

	c := domain.Company{
		Name:        name,
		Domain:      r.Domain,
		Website:     extract.SiteRoot(r.URL),
		Description: extract.Truncate(strings.TrimSpace(description), extract.MaxDescriptionLength),
		Country:     domain.DefaultCountry,
		Source:      GoogleName,
		SourceURL:   r.URL,
	}

	text := r.Title + " " + r.Snippet
	if city, state, ok := extract.ExtractLocation(text); ok {
		c.City, c.State = city, state
	}
	if rev, ok := extract.TextRevenue(text); ok {
		c.EstimatedRevenue = rev
		c.RevenueSource = domain.RevenueSourceSnippet
	}
	if n, rng, ok := extract.TextEmployees(text); ok {
		c.EmployeeCount = &n
		c.EmployeeCountRange = rng
	}
	return c
}

func knowledgeGraphDomain(kg map[string]any) string {
	website, ok := kg["website"].(string)
	if !ok {
		return ""
	}
	return extract.DomainOf(website)
}

// isCandidateHost rejects hosts that cannot be a small or mid-market company site.
func isCandidateHost(host string) bool {
	return host != "" && !extract.IsNonCompanyDomain(host) && !extract.IsPublicCompanyDomain(host)
}
