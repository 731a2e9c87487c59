package engine

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
	"github.com/jonesrussell/north-cloud/prospector/internal/fetcher"
)

// contactPaths are the pages scanned for people on every company site.
var contactPaths = []string{
	"/contact",
	"/contact-us",
	"/about",
	"/about-us",
	"/team",
	"/our-team",
	"/leadership",
}

// enrichContacts scrapes the contact pages of the target companies in
// batches of ContactBatchSize concurrent companies.
func (r *run) enrichContacts(ctx context.Context) error {
	r.log(ctx, domain.LogLevelInfo, "Starting contact enrichment phase")
	if r.e.Fetcher == nil {
		r.log(ctx, domain.LogLevelWarning, "No fetcher configured, skipping contact enrichment")
		return nil
	}

	companies, err := r.targetCompanies(ctx)
	if err != nil {
		return err
	}

	before := r.snapshot().ContactsFound

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.e.cfg.ContactBatchSize)

	for _, c := range companies {
		if extract.SiteRoot(c.Website) == "" {
			continue
		}
		if checkErr := r.checkpoint(ctx); checkErr != nil {
			_ = g.Wait()
			return checkErr
		}
		g.Go(func() error {
			return r.scrapeCompanyContacts(gctx, c)
		})
	}
	if waitErr := g.Wait(); waitErr != nil {
		return waitErr
	}

	r.log(ctx, domain.LogLevelInfo, fmt.Sprintf(
		"Enrichment complete: %d contacts", r.snapshot().ContactsFound-before,
	))
	return nil
}

// scrapeCompanyContacts fetches every contact path of one company
// concurrently, saves the people found and fills firmographics the pages
// mention. Only cancellation is returned.
func (r *run) scrapeCompanyContacts(ctx context.Context, c *domain.Company) error {
	root := extract.SiteRoot(c.Website)
	pages := make([]*fetcher.Response, len(contactPaths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range contactPaths {
		g.Go(func() error {
			resp, err := r.e.Fetcher.Get(gctx, root+path)
			if err != nil {
				return err
			}
			pages[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ErrJobCancelled
		}
		r.countError()
		r.logURL(ctx, domain.LogLevelWarning, fmt.Sprintf("Contact fetch failed for %s: %v", c.Name, err), root)
	}

	var texts []string
	for _, page := range pages {
		if page == nil {
			continue
		}
		body := page.Text()
		texts = append(texts, extract.PageText(body))

		for _, contact := range extract.ExtractContacts(body, page.URL) {
			if saveErr := r.saveContact(ctx, c, contact); saveErr != nil {
				return saveErr
			}
		}
	}

	if len(texts) > 0 && c.NeedsEnrichment() {
		if updateErr := r.applyPageFirmographics(ctx, c, strings.Join(texts, " ")); updateErr != nil {
			return updateErr
		}
	}

	r.flush(ctx)
	return nil
}

func (r *run) saveContact(ctx context.Context, c *domain.Company, contact domain.Contact) error {
	contact.CompanyID = c.ID
	created, err := r.e.Contacts.Create(ctx, &contact)
	if err != nil {
		return r.itemFailure(ctx, fmt.Sprintf("Save contact failed for %s", c.Name), err, contact.SourceURL)
	}
	if created {
		r.update(func(p *domain.Progress) { p.ContactsFound++ })
		r.e.Metrics.ContactSaved()
	}
	return nil
}

// applyPageFirmographics stores revenue and head count found on the
// company's own pages.
func (r *run) applyPageFirmographics(ctx context.Context, c *domain.Company, text string) error {
	updated := *c
	extract.ApplyPageFirmographics(&updated, text)
	if updated.EstimatedRevenue == c.EstimatedRevenue && sameCount(updated.EmployeeCount, c.EmployeeCount) {
		return nil
	}

	if err := r.e.Companies.Update(ctx, &updated); err != nil {
		return r.itemFailure(ctx, fmt.Sprintf("Update failed for %s", c.Name), err, c.Website)
	}
	*c = updated
	return nil
}

func sameCount(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
