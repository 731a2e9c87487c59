// Package sources discovers candidate companies. The general web source turns
// search queries into company drafts; directory sources mine supplier
// directories through site-scoped searches.
package sources

import (
	"context"
	"strings"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

// Kind tells the engine how to drive a source.
type Kind int

const (
	// KindSearch sources take every generated web query.
	KindSearch Kind = iota
	// KindDirectory sources take one directory query per industry.
	KindDirectory
)

// Result is one search hit worth scraping.
type Result struct {
	URL     string
	Title   string
	Snippet string
	// Domain is the hit's host without "www.".
	Domain string
	// KnowledgeGraph is set on the first hit when the search engine's entity
	// panel describes the same site.
	KnowledgeGraph map[string]any
}

// Draft is a company candidate produced by a source, not yet persisted.
type Draft struct {
	Company        domain.Company
	KnowledgeGraph map[string]any
}

// Source finds and scrapes company candidates.
type Source interface {
	Name() string
	Kind() Kind
	// Search returns candidate results for a query. Only context errors are returned.
	Search(ctx context.Context, query string) ([]Result, error)
	// ScrapeCompany turns a result into a draft. A nil draft means skip.
	ScrapeCompany(ctx context.Context, r Result) (*Draft, error)
}

// DirectoryQuery builds the per-industry query handed to directory sources.
func DirectoryQuery(industryName, location string) string {
	q := `"` + strings.TrimSpace(industryName) + `"`
	if loc := strings.TrimSpace(location); loc != "" {
		q += " " + loc
	}
	return q
}
