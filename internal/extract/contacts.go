package extract

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

// Contact sources.
const (
	ContactSourceMailto   = "mailto_link"
	ContactSourceRegex    = "page_regex"
	ContactSourceLinkedIn = "linkedin"
	ContactSourceTeamPage = "team_page"
	ContactSourcePattern  = "email_pattern"
)

// Confidence scores for directly observed addresses.
const (
	ConfidenceMailto = 100.0
	ConfidenceRegex  = 90.0
)

const (
	maxNameContext = 60
	maxContactName = 200
	maxNamePart    = 100
)

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	linkedInProfile = regexp.MustCompile(`^https?://(?:www\.)?linkedin\.com/in/[\w-]+/?`)
)

var roleEmailPrefixes = []string{
	"info@", "sales@", "support@", "contact@", "admin@",
	"noreply@", "no-reply@", "help@", "webmaster@", "marketing@",
}

var assetSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".css", ".js"}

var titleKeywords = []string{
	"CEO", "CTO", "CFO", "COO", "CIO", "CMO", "VP", "President",
	"Director", "Manager", "Owner", "Founder", "Partner",
	"General Manager", "Sales Manager", "Engineering Manager",
	"Vice President", "Executive", "Principal", "Head of",
}

const (
	teamSectionSelector = ".team, .staff, .leadership, .management, .about-team"
	teamCardSelector    = ".team-member, .person, .staff-member, article, .card"
	teamNameSelector    = "h2, h3, h4, .name, .team-name"
	teamTitleSelector   = ".title, .position, .role, .team-title"
)

// ExtractContacts finds people and personal addresses on a page.
// Role mailboxes and asset filenames that look like addresses are skipped.
func ExtractContacts(rawHTML, sourceURL string) []domain.Contact {
	doc := parseHTML(rawHTML)
	var contacts []domain.Contact
	seen := map[string]struct{}{}

	doc.Find("a[href^='mailto:']").Each(func(_ int, a *goquery.Selection) {
		email := mailtoAddress(a)
		if !IsPersonalEmail(email) {
			return
		}
		if _, dup := seen[email]; dup {
			return
		}
		seen[email] = struct{}{}

		c := domain.Contact{
			Email:           email,
			EmailConfidence: ConfidenceMailto,
			Source:          ContactSourceMailto,
			SourceURL:       sourceURL,
		}
		nameFromContext(a.Parent(), &c)
		contacts = append(contacts, c)
	})

	for _, match := range emailPattern.FindAllString(visibleText(doc.Selection), -1) {
		email := strings.ToLower(match)
		if _, dup := seen[email]; dup || !IsPersonalEmail(email) {
			continue
		}
		seen[email] = struct{}{}
		contacts = append(contacts, domain.Contact{
			Email:           email,
			EmailConfidence: ConfidenceRegex,
			Source:          ContactSourceRegex,
			SourceURL:       sourceURL,
		})
	}

	doc.Find("a[href*='linkedin.com/in/']").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		profile := linkedInProfile.FindString(href)
		if profile == "" {
			return
		}
		idx := -1
		for i := range contacts {
			if contacts[i].LinkedInURL == profile {
				idx = i
				break
			}
		}
		if idx < 0 {
			contacts = append(contacts, domain.Contact{
				LinkedInURL: profile,
				Source:      ContactSourceLinkedIn,
				SourceURL:   sourceURL,
			})
			idx = len(contacts) - 1
		}
		if name := strings.TrimSpace(a.Text()); name != "" && len(name) < maxNameContext {
			SetName(&contacts[idx], name)
		}
	})

	doc.Find(teamSectionSelector).Each(func(_ int, section *goquery.Selection) {
		section.Find(teamCardSelector).Each(func(_ int, card *goquery.Selection) {
			c := domain.Contact{Source: ContactSourceTeamPage, SourceURL: sourceURL}
			if el := card.Find(teamNameSelector).First(); el.Length() > 0 {
				SetName(&c, strings.TrimSpace(el.Text()))
			}
			if el := card.Find(teamTitleSelector).First(); el.Length() > 0 {
				c.Title = Truncate(strings.TrimSpace(el.Text()), maxContactName)
			}
			if el := card.Find("a[href^='mailto:']").First(); el.Length() > 0 {
				if email := mailtoAddress(el); email != "" {
					c.Email = email
					c.EmailConfidence = ConfidenceMailto
				}
			}
			if c.FullName == "" && c.Email == "" {
				return
			}
			if c.Email != "" {
				if _, dup := seen[c.Email]; dup {
					mergeTeamCard(contacts, c)
					return
				}
				seen[c.Email] = struct{}{}
			}
			contacts = append(contacts, c)
		})
	})

	return contacts
}

// mergeTeamCard copies name and title from a team card onto the contact
// already recorded for the same address.
func mergeTeamCard(contacts []domain.Contact, card domain.Contact) {
	for i := range contacts {
		if contacts[i].Email != card.Email {
			continue
		}
		if contacts[i].FullName == "" && card.FullName != "" {
			contacts[i].FullName = card.FullName
			contacts[i].FirstName = card.FirstName
			contacts[i].LastName = card.LastName
		}
		if contacts[i].Title == "" {
			contacts[i].Title = card.Title
		}
		return
	}
}

func mailtoAddress(a *goquery.Selection) string {
	href, _ := a.Attr("href")
	addr := strings.TrimPrefix(href, "mailto:")
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	if unescaped, err := url.PathUnescape(addr); err == nil {
		addr = unescaped
	}
	return strings.ToLower(strings.TrimSpace(addr))
}

// IsPersonalEmail reports whether an address is worth storing as a contact.
func IsPersonalEmail(email string) bool {
	if email == "" || !strings.Contains(email, "@") {
		return false
	}
	for _, prefix := range roleEmailPrefixes {
		if strings.HasPrefix(email, prefix) {
			return false
		}
	}
	for _, suffix := range assetSuffixes {
		if strings.HasSuffix(email, suffix) {
			return false
		}
	}
	return true
}

// nameFromContext looks for a capitalised 2-4 word name and a job title
// in the text around a mailto link.
func nameFromContext(parent *goquery.Selection, c *domain.Contact) {
	if parent.Length() == 0 {
		return
	}
	lines := textLines(parent)
	for _, line := range lines {
		if looksLikeName(line) {
			SetName(c, line)
			break
		}
	}
	for _, line := range lines {
		if hasTitleKeyword(line) {
			c.Title = Truncate(line, maxContactName)
			return
		}
	}
}

func looksLikeName(line string) bool {
	if strings.Contains(line, "@") || len(line) >= maxNameContext {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if !unicode.IsUpper([]rune(w)[0]) {
			return false
		}
	}
	return true
}

func hasTitleKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range titleKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// SetName stores a full name and splits it into first and last parts.
func SetName(c *domain.Contact, name string) {
	name = strings.TrimSpace(name)
	c.FullName = Truncate(name, maxContactName)
	parts := strings.Fields(name)
	switch {
	case len(parts) >= 2:
		c.FirstName = Truncate(parts[0], maxNamePart)
		c.LastName = Truncate(parts[len(parts)-1], maxNamePart)
	case len(parts) == 1:
		c.FirstName = Truncate(parts[0], maxNamePart)
	}
}
