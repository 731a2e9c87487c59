package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/enrich"
	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
	"github.com/jonesrussell/north-cloud/prospector/internal/industry"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/jonesrussell/north-cloud/prospector/internal/sources"
)

// discover runs every selected search source over the generated queries of
// each industry, then every selected directory source over each industry.
func (r *run) discover(ctx context.Context) error {
	r.log(ctx, domain.LogLevelInfo, "Starting discovery phase")

	selected, unknown := r.e.Sources.Select(r.opts.Sources)
	for _, name := range unknown {
		r.log(ctx, domain.LogLevelWarning, fmt.Sprintf("Unknown source: %s", name))
	}

	var searchSources, directories []sources.Source
	for _, src := range selected {
		if src.Kind() == sources.KindDirectory {
			directories = append(directories, src)
		} else {
			searchSources = append(searchSources, src)
		}
	}

	industries := r.job.Industries
	found := 0

	if len(searchSources) > 0 {
		for _, ind := range industries {
			if err := r.checkpoint(ctx); err != nil {
				return err
			}
			queries := industry.GenerateQueries(ind, r.opts.Location)
			r.log(ctx, domain.LogLevelInfo, fmt.Sprintf("Searching %s (%d queries)", ind, len(queries)))

			for _, src := range searchSources {
				n, err := r.searchQueries(ctx, src, ind, queries)
				found += n
				if err != nil {
					return err
				}
			}
		}
	}

	for _, src := range directories {
		if err := r.checkpoint(ctx); err != nil {
			return err
		}
		n, err := r.searchDirectory(ctx, src, industries)
		found += n
		if err != nil {
			return err
		}
	}

	p := r.snapshot()
	r.log(ctx, domain.LogLevelInfo, fmt.Sprintf(
		"Discovery complete: %d companies from %d URLs across %d industries",
		found, p.ProcessedURLs, len(industries),
	))
	return nil
}

// searchQueries runs one search source over an industry's queries. Results
// whose domain was already seen in this run are not scraped again.
func (r *run) searchQueries(ctx context.Context, src sources.Source, ind string, queries []string) (int, error) {
	found := 0
	for _, q := range queries {
		if err := r.checkpoint(ctx); err != nil {
			return found, err
		}

		results, err := src.Search(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return found, ErrJobCancelled
			}
			r.countError()
			r.log(ctx, domain.LogLevelWarning, fmt.Sprintf("Search failed: %v", err))
			r.flush(ctx)
			continue
		}

		fresh := results[:0:0]
		for _, res := range results {
			if res.Domain != "" && r.claim(res.Domain) {
				fresh = append(fresh, res)
			}
		}
		if len(fresh) == 0 {
			continue
		}
		r.update(func(p *domain.Progress) { p.TotalURLs += len(fresh) })
		r.flush(ctx)

		for _, res := range fresh {
			if err := r.checkpoint(ctx); err != nil {
				return found, err
			}
			saved, candidateErr := r.processCandidate(ctx, src, res, ind, domain.URLTypeSearchResult)
			if candidateErr != nil {
				return found, candidateErr
			}
			if saved {
				found++
			}
		}
	}
	return found, nil
}

// searchDirectory runs a directory source over every industry.
func (r *run) searchDirectory(ctx context.Context, src sources.Source, industries []string) (int, error) {
	r.log(ctx, domain.LogLevelInfo, fmt.Sprintf("Searching %s...", src.Name()))
	found := 0

	for _, ind := range industries {
		if err := r.checkpoint(ctx); err != nil {
			return found, err
		}

		results, err := src.Search(ctx, sources.DirectoryQuery(ind, r.opts.Location))
		if err != nil {
			if ctx.Err() != nil {
				return found, ErrJobCancelled
			}
			r.countError()
			r.log(ctx, domain.LogLevelWarning, fmt.Sprintf("%s search failed: %v", src.Name(), err))
			r.flush(ctx)
			continue
		}
		if len(results) == 0 {
			continue
		}
		r.update(func(p *domain.Progress) { p.TotalURLs += len(results) })
		r.flush(ctx)

		for _, res := range results {
			if err := r.checkpoint(ctx); err != nil {
				return found, err
			}
			saved, candidateErr := r.processCandidate(ctx, src, res, ind, domain.URLTypeCompanyPage)
			if candidateErr != nil {
				return found, candidateErr
			}
			if saved {
				found++
			}
		}
	}

	r.log(ctx, domain.LogLevelInfo, fmt.Sprintf("%s: found %d new companies", src.Name(), found))
	return found, nil
}

// processCandidate scrapes one result and saves, enriches and location-checks
// the company it yields. It reports whether a company was kept. Only
// cancellation is returned as an error; every other failure is logged and
// counted.
func (r *run) processCandidate(
	ctx context.Context, src sources.Source, res sources.Result, ind, urlType string,
) (bool, error) {
	item := r.enqueue(ctx, res.URL, urlType)

	draft, err := src.ScrapeCompany(ctx, res)
	r.update(func(p *domain.Progress) { p.ProcessedURLs++ })
	if err != nil {
		if ctx.Err() != nil {
			return false, ErrJobCancelled
		}
		r.countError()
		r.logURL(ctx, domain.LogLevelError, fmt.Sprintf("Scrape error: %v", err), res.URL)
		r.finishItem(ctx, item, domain.QueueStatusFailed, err.Error())
		r.flush(ctx)
		return false, nil
	}
	r.finishItem(ctx, item, domain.QueueStatusCompleted, "")

	kept, saveErr := r.saveDraft(ctx, src.Name(), res, draft, ind)
	r.flush(ctx)
	return kept, saveErr
}

func (r *run) saveDraft(ctx context.Context, sourceName string, res sources.Result, draft *sources.Draft, ind string) (bool, error) {
	if draft == nil || draft.Company.Name == "" || draft.Company.Domain == "" {
		return false, nil
	}

	c := draft.Company
	c.Domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Domain)), "www.")
	if c.Domain != res.Domain && !r.claim(c.Domain) {
		return false, nil
	}

	exists, err := r.e.Companies.ExistsDomain(ctx, c.Domain)
	if err != nil {
		return false, r.itemFailure(ctx, fmt.Sprintf("Lookup failed for %s", c.Domain), err, res.URL)
	}
	if exists {
		return false, nil
	}

	// Head-count estimates are recomputed with the industry's multiplier.
	if c.RevenueSource == domain.RevenueSourceEstimated {
		c.EstimatedRevenue, c.RevenueSource = "", ""
	}
	c.Industry = ind
	jobID := r.job.ID
	c.JobID = &jobID

	saved, created, err := r.e.Companies.Create(ctx, &c)
	if err != nil {
		return false, r.itemFailure(ctx, fmt.Sprintf("Save failed for %s", c.Domain), err, res.URL)
	}
	if !created {
		return false, nil
	}
	r.logURL(ctx, domain.LogLevelInfo, fmt.Sprintf("Found: %s (%s)", saved.Name, saved.Domain), saved.SourceURL)

	if _, enrichErr := r.enrichCompany(ctx, saved, draft.KnowledgeGraph); enrichErr != nil {
		return false, enrichErr
	}

	if !extract.LocationMatches(saved.State, saved.City, r.filter) {
		if delErr := r.e.Companies.Delete(ctx, saved.ID); delErr != nil {
			return false, r.itemFailure(ctx, fmt.Sprintf("Delete failed for %s", saved.Domain), delErr, res.URL)
		}
		r.log(ctx, domain.LogLevelInfo, fmt.Sprintf(
			"Skipped %s: located in %s, outside %s", saved.Name, locationLabel(saved), r.opts.Location,
		))
		return false, nil
	}

	r.update(func(p *domain.Progress) { p.CompaniesFound++ })
	r.e.Metrics.CompanySaved(sourceName)
	return true, nil
}

// enrichCompany fills a company's missing firmographics and stores any
// change. It reports whether the company was updated.
func (r *run) enrichCompany(ctx context.Context, c *domain.Company, kg map[string]any) (bool, error) {
	if r.e.Enricher == nil || !c.NeedsEnrichment() {
		return false, nil
	}

	fields, err := r.e.Enricher.EnrichCompany(ctx, c.Name, c.Domain, kg, c.Industry, enrich.FieldsOf(c))
	if err == nil && fields.ApplyTo(c) {
		err = r.e.Companies.Update(ctx, c)
		if err == nil {
			r.log(ctx, domain.LogLevelInfo, fmt.Sprintf("Enriched %s: %s", c.Name, fields.Summary()))
			return true, nil
		}
	}
	if err == nil {
		return false, nil
	}
	if ctx.Err() != nil {
		return false, ErrJobCancelled
	}
	r.countError()
	r.log(ctx, domain.LogLevelWarning, fmt.Sprintf("Enrich failed for %s: %v", c.Name, err))
	return false, nil
}

// itemFailure logs and counts a per-candidate failure, or reports cancellation.
func (r *run) itemFailure(ctx context.Context, msg string, err error, url string) error {
	if ctx.Err() != nil {
		return ErrJobCancelled
	}
	r.countError()
	r.logURL(ctx, domain.LogLevelError, fmt.Sprintf("%s: %v", msg, err), url)
	return nil
}

// enqueue records a candidate URL as in progress. Bookkeeping failures are ignored.
func (r *run) enqueue(ctx context.Context, url, urlType string) *domain.QueueItem {
	if r.e.Queue == nil || url == "" {
		return nil
	}
	item := &domain.QueueItem{
		JobID:   r.job.ID,
		URL:     url,
		URLType: urlType,
		Status:  domain.QueueStatusProcessing,
	}
	if err := r.e.Queue.Add(ctx, item); err != nil {
		r.e.Logger.Debug("Failed to record queue item", logger.String("job_id", r.job.ID), logger.Error(err))
		return nil
	}
	return item
}

func (r *run) finishItem(ctx context.Context, item *domain.QueueItem, status, errMsg string) {
	if item == nil {
		return
	}
	if err := r.e.Queue.Finish(ctx, item.ID, status, errMsg); err != nil {
		r.e.Logger.Debug("Failed to finish queue item", logger.String("job_id", r.job.ID), logger.Error(err))
	}
}

func locationLabel(c *domain.Company) string {
	if c.City == "" {
		return c.State
	}
	return c.City + ", " + c.State
}
