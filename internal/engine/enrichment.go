package engine

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

// enrichData fills revenue, head count and headquarters for stored companies
// that are missing any of them.
func (r *run) enrichData(ctx context.Context) error {
	r.log(ctx, domain.LogLevelInfo, "Starting data enrichment (revenue, employees, location)")

	companies, err := r.targetCompanies(ctx)
	if err != nil {
		return err
	}

	var pending []*domain.Company
	for _, c := range companies {
		if c.NeedsEnrichment() {
			pending = append(pending, c)
		}
	}

	enriched := 0
	for _, c := range pending {
		if err := r.checkpoint(ctx); err != nil {
			return err
		}

		updated, enrichErr := r.enrichCompany(ctx, c, nil)
		if enrichErr != nil {
			return enrichErr
		}
		if updated {
			enriched++
		}
		r.flush(ctx)
	}

	r.log(ctx, domain.LogLevelInfo, fmt.Sprintf(
		"Data enrichment complete: %d/%d companies enriched", enriched, len(pending),
	))
	return nil
}
