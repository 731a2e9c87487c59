package engine

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
)

// guessEmails infers each company's mailbox convention from the addresses
// already scraped and gives the best guess to contacts without an email.
func (r *run) guessEmails(ctx context.Context) error {
	r.log(ctx, domain.LogLevelInfo, "Starting email pattern matching")

	companies, err := r.targetCompanies(ctx)
	if err != nil {
		return err
	}

	generated := 0
	for _, c := range companies {
		if c.Domain == "" {
			continue
		}
		if checkErr := r.checkpoint(ctx); checkErr != nil {
			return checkErr
		}

		n, guessErr := r.guessCompanyEmails(ctx, c)
		if guessErr != nil {
			return guessErr
		}
		generated += n
		r.flush(ctx)
	}

	r.log(ctx, domain.LogLevelInfo, fmt.Sprintf("Email patterns: generated %d guesses", generated))
	return nil
}

func (r *run) guessCompanyEmails(ctx context.Context, c *domain.Company) (int, error) {
	contacts, err := r.e.Contacts.ListByCompany(ctx, c.ID)
	if err != nil {
		return 0, r.itemFailure(ctx, fmt.Sprintf("List contacts failed for %s", c.Name), err, "")
	}

	var known []string
	for _, ct := range contacts {
		if ct.Email != "" {
			known = append(known, ct.Email)
		}
	}

	var detected *extract.EmailPattern
	if pattern, ok := extract.DiscoverPattern(known, c.Domain); ok {
		detected = &pattern
	}

	generated := 0
	for _, ct := range contacts {
		if ct.Email != "" {
			continue
		}
		candidates := extract.GenerateCandidates(ct.FirstName, ct.LastName, c.Domain, detected, known)
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		updated, updateErr := r.e.Contacts.UpdateEmail(ctx, ct.ID, best.Email, best.Confidence)
		if updateErr != nil {
			if failErr := r.itemFailure(ctx, fmt.Sprintf("Email update failed for %s", c.Name), updateErr, ""); failErr != nil {
				return generated, failErr
			}
			continue
		}
		if updated {
			known = append(known, best.Email)
			generated++
		}
	}
	return generated, nil
}
