package sources

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
	"github.com/jonesrussell/north-cloud/prospector/internal/fetcher"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/jonesrussell/north-cloud/prospector/internal/search"
)

const (
	directoryResultsPerQuery = 10
	websiteLookupResults     = 3
	minDirectoryNameLength   = 2
	maxDirectoryNameLength   = 200
)

var (
	titleNameSeparators = []string{" - ", " | ", " — ", " – "}
	titleLocationSuffix = regexp.MustCompile(`^[A-Z][a-z]+.*,\s*[A-Z]{2}`)
	snippetURL          = regexp.MustCompile(`https?://[a-zA-Z0-9.-]+\.[a-z]{2,}`)
	snippetBareDomain   = regexp.MustCompile(`\b((?:www\.)?[a-zA-Z0-9-]+\.[a-z]{2,}(?:\.[a-z]{2,})?)\b`)
)

// DirectoryProfile lists the CSS selectors of a directory's company profile page.
type DirectoryProfile struct {
	Description string
	Location    string
	Website     string
	Phone       string
	Employees   string
}

// DirectoryConfig describes one supplier directory.
type DirectoryConfig struct {
	Name string
	// Host is the directory's registrable domain, e.g. "thomasnet.com".
	Host string
	// SiteFilter scopes searches to profile pages, e.g. "site:thomasnet.com/profile".
	SiteFilter string
	Profile    DirectoryProfile
}

// Directory discovers companies listed in a supplier directory. Each listing
// must resolve to the company's own website or it is discarded.
type Directory struct {
	cfg      DirectoryConfig
	searcher search.Searcher
	fetcher  fetcher.Fetcher
	log      logger.Logger
}

// NewDirectory creates a directory source.
func NewDirectory(cfg DirectoryConfig, s search.Searcher, f fetcher.Fetcher, log logger.Logger) *Directory {
	if log == nil {
		log = logger.NewNop()
	}
	return &Directory{cfg: cfg, searcher: s, fetcher: f, log: log.With(logger.String("source", cfg.Name))}
}

// Name implements Source.
func (d *Directory) Name() string { return d.cfg.Name }

// Kind implements Source.
func (d *Directory) Kind() Kind { return KindDirectory }

// Search runs a site-scoped search and keeps hits on the directory itself.
func (d *Directory) Search(ctx context.Context, query string) ([]Result, error) {
	req := search.Request{
		Query: strings.TrimSpace(d.cfg.SiteFilter + " " + query),
		Num:   directoryResultsPerQuery,
	}
	resp, err := d.searcher.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(resp.Organic))
	var results []Result
	for _, o := range resp.Organic {
		host := extract.DomainOf(o.Link)
		if extract.RegistrableDomain(host) != d.cfg.Host {
			continue
		}
		if _, dup := seen[o.Link]; dup {
			continue
		}
		seen[o.Link] = struct{}{}
		results = append(results, Result{URL: o.Link, Title: o.Title, Snippet: o.Snippet, Domain: host})
	}
	return results, nil
}

// ScrapeCompany resolves the listing's website, cheapest signal first: a
// domain in the snippet, an outbound link on the profile page, then a
// website lookup search. The resolved site is fetched and merged in without
// overwriting what the listing already gave.
func (d *Directory) ScrapeCompany(ctx context.Context, r Result) (*Draft, error) {
	name := TitleName(r.Title)
	if !extract.IsValidCompanyName(name) {
		return nil, nil
	}

	c := domain.Company{
		Name:      name,
		Country:   domain.DefaultCountry,
		Source:    d.cfg.Name,
		SourceURL: r.URL,
	}
	if city, state, ok := extract.ExtractLocation(r.Snippet); ok {
		c.City, c.State = city, state
	}

	host, site := SnippetWebsite(r.Snippet, d.cfg.Host)
	if host == "" {
		var err error
		if host, site, err = d.scrapeProfile(ctx, r.URL, &c); err != nil {
			return nil, err
		}
	}
	if host == "" {
		var err error
		if host, site, err = d.lookupWebsite(ctx, name); err != nil {
			return nil, err
		}
	}
	if host == "" {
		d.log.Debug("Could not resolve website", logger.String("company", name))
		return nil, nil
	}
	if extract.IsPublicCompanyDomain(host) {
		return nil, nil
	}

	c.Domain = host
	c.Website = site

	keep, err := d.mergeWebsite(ctx, &c)
	if err != nil {
		return nil, err
	}
	if !keep {
		return nil, nil
	}
	return &Draft{Company: c}, nil
}

// scrapeProfile reads the directory profile page for details and an outbound website link.
func (d *Directory) scrapeProfile(ctx context.Context, profileURL string, c *domain.Company) (host, site string, err error) {
	resp, err := d.fetcher.Get(ctx, profileURL)
	if err != nil || resp == nil {
		return "", "", err
	}
	doc, parseErr := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if parseErr != nil {
		return "", "", nil
	}

	p := d.cfg.Profile
	if c.Description == "" {
		c.Description = extract.Truncate(selectText(doc, p.Description), extract.MaxDescriptionLength)
	}
	if c.Phone == "" {
		c.Phone = selectText(doc, p.Phone)
	}
	if c.State == "" {
		city, state, zip := ParseDirectoryLocation(selectText(doc, p.Location))
		if state != "" {
			c.City, c.State, c.ZipCode = city, state, zip
		}
	}
	if c.EmployeeCount == nil {
		if raw := selectText(doc, p.Employees); raw != "" {
			if n, ok := extract.ParseEmployeeCount(raw); ok {
				c.EmployeeCount = &n
				c.EmployeeCountRange = extract.CountToRange(n)
			} else {
				c.EmployeeCountRange = extract.Truncate(raw, 50)
			}
		}
	}

	host, site = d.profileWebsite(doc)
	return host, site, nil
}

// profileWebsite picks the configured website link, then a link labelled
// "website", then the first outbound link that is not the directory's own.
func (d *Directory) profileWebsite(doc *goquery.Document) (string, string) {
	if d.cfg.Profile.Website != "" {
		var host, site string
		doc.Find(d.cfg.Profile.Website).EachWithBreak(func(_ int, a *goquery.Selection) bool {
			host, site = d.outboundSite(a)
			return host == ""
		})
		if host != "" {
			return host, site
		}
	}

	var labelled, first [2]string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		host, site := d.outboundSite(a)
		if host == "" {
			return
		}
		if first[0] == "" {
			first = [2]string{host, site}
		}
		if labelled[0] == "" && strings.Contains(strings.ToLower(a.Text()), "website") {
			labelled = [2]string{host, site}
		}
	})
	if labelled[0] != "" {
		return labelled[0], labelled[1]
	}
	return first[0], first[1]
}

func (d *Directory) outboundSite(a *goquery.Selection) (string, string) {
	href, _ := a.Attr("href")
	if !strings.HasPrefix(href, "http") {
		return "", ""
	}
	host := extract.DomainOf(href)
	if !d.isCompanyHost(host) {
		return "", ""
	}
	return host, extract.SiteRoot(href)
}

// lookupWebsite runs one "<name> official website" search.
func (d *Directory) lookupWebsite(ctx context.Context, name string) (string, string, error) {
	resp, err := d.searcher.Search(ctx, search.Request{Query: name + " official website", Num: websiteLookupResults})
	if err != nil || resp == nil {
		return "", "", err
	}
	for _, o := range resp.Organic {
		host := extract.DomainOf(o.Link)
		if d.isCompanyHost(host) {
			return host, extract.SiteRoot(o.Link), nil
		}
	}
	return "", "", nil
}

// mergeWebsite fetches the company site and fills gaps from it. It reports
// false when the site turns out to be a public company.
func (d *Directory) mergeWebsite(ctx context.Context, c *domain.Company) (bool, error) {
	resp, err := d.fetcher.Get(ctx, c.Website)
	if err != nil {
		return false, err
	}
	if resp == nil {
		return true, nil
	}

	html := resp.Text()
	if extract.HasPublicCompanyIndicators(extract.PageText(html)) {
		return false, nil
	}
	if page, ok := extract.ExtractCompany(c.Website, html); ok {
		MergeCompany(c, page)
	}
	return true, nil
}

func (d *Directory) isCompanyHost(host string) bool {
	return host != "" && strings.Contains(host, ".") &&
		extract.RegistrableDomain(host) != d.cfg.Host &&
		!extract.IsNonCompanyDomain(host)
}

// MergeCompany copies fields from src into dst where dst has none. Revenue
// estimates are not copied; they are recomputed once the industry is known.
func MergeCompany(dst, src *domain.Company) {
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.Phone == "" {
		dst.Phone = src.Phone
	}
	if dst.State == "" && src.State != "" {
		dst.City, dst.State, dst.ZipCode = src.City, src.State, src.ZipCode
	}
	if dst.EmployeeCount == nil && src.EmployeeCount != nil {
		n := *src.EmployeeCount
		dst.EmployeeCount = &n
		dst.EmployeeCountRange = src.EmployeeCountRange
	}
	if dst.EstimatedRevenue == "" && src.EstimatedRevenue != "" && src.RevenueSource != domain.RevenueSourceEstimated {
		dst.EstimatedRevenue = src.EstimatedRevenue
		dst.RevenueSource = src.RevenueSource
	}
}

// TitleName extracts the company name from a directory result title such as
// "Acme Valves: Houston, TX 77001 - Thomasnet".
func TitleName(title string) string {
	for _, sep := range titleNameSeparators {
		if i := strings.Index(title, sep); i >= 0 {
			title = title[:i]
			break
		}
	}
	if before, after, found := strings.Cut(title, ": "); found {
		if titleLocationSuffix.MatchString(strings.TrimSpace(after)) {
			title = before
		}
	}
	name := strings.TrimSpace(title)
	if len(name) < minDirectoryNameLength {
		return ""
	}
	return extract.Truncate(name, maxDirectoryNameLength)
}

// SnippetWebsite finds a company website mentioned in a result snippet,
// ignoring the directory itself and social or media hosts.
func SnippetWebsite(snippet, directoryHost string) (string, string) {
	valid := func(host string) bool {
		return host != "" && strings.Contains(host, ".") &&
			extract.RegistrableDomain(host) != directoryHost &&
			!extract.IsNonCompanyDomain(host)
	}

	for _, raw := range snippetURL.FindAllString(snippet, -1) {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if host := extract.DomainOf(raw); valid(host) {
			return host, u.Scheme + "://" + u.Host
		}
	}
	for _, m := range snippetBareDomain.FindAllStringSubmatch(snippet, -1) {
		host := strings.TrimPrefix(strings.ToLower(m[1]), "www.")
		if valid(host) {
			return host, "https://" + host
		}
	}
	return "", ""
}

// ParseDirectoryLocation splits "City, ST 12345" or "Street, City, ST" text.
func ParseDirectoryLocation(text string) (city, state, zip string) {
	parts := strings.Split(text, ",")
	if len(parts) < 2 {
		return "", "", ""
	}
	fields := strings.Fields(parts[len(parts)-1])
	if len(fields) == 0 {
		return "", "", ""
	}
	st, ok := extract.NormalizeState(fields[0])
	if !ok {
		return "", "", ""
	}
	city = strings.TrimSpace(parts[len(parts)-2])
	if len(fields) > 1 {
		zip = fields[1]
	}
	return city, st, zip
}

func selectText(doc *goquery.Document, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find(selector).First().Text()), " ")
}
