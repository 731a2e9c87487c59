package extract

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

// SourceWeb tags companies built from their own website.
const SourceWeb = "web"

const (
	minNameLength    = 2
	maxNameLength    = 150
	minNameLetters   = 2
	maxPhoneText     = 30
	maxPhoneElements = 200

	maxShortField = 50
	maxCityField  = 100
	maxZipField   = 20
)

// badNameIndicators mark page headings, list pages and directory listings.
var badNameIndicators = []string{
	"top ", "best ", "list of ", "category:", "directory", " companies",
	" manufacturers", " suppliers", "wikipedia", "article", "review",
	" - search", "search results", "home page", "official site",
	"official website", "welcome to", "| linkedin", "| indeed",
}

var (
	titleSeparators = regexp.MustCompile(`\s+(?:\||-|—|–|::|>>|»)\s+`)
	legalSuffix     = regexp.MustCompile(`(?i)\b(?:inc|llc|l\.l\.c|corp|corporation|co|ltd|company|group|industries|manufacturing)\b\.?`)
	genericSegment  = regexp.MustCompile(`(?i)^(?:home(?:\s*page)?|official\s+(?:site|website)|welcome|about(?:\s+us)?|contact(?:\s+us)?|products?|services?|solutions)$`)
	genericPrefix   = regexp.MustCompile(`(?i)^(?:welcome\s+to\s+(?:the\s+)?|home\s*[:|]\s*)`)
	genericSuffix   = regexp.MustCompile(`(?i)\s*[:|,-]\s*(?:home(?:\s*page)?|official\s+(?:site|website)|welcome)\s*$`)
	addressSuffix   = []*regexp.Regexp{
		regexp.MustCompile(`\s*[,:]\s*[A-Z][A-Za-z .'-]*,\s*[A-Z]{2}\s+\d{5}(?:-\d{4})?\s*$`),
		regexp.MustCompile(`\s*[,:]\s*[A-Z][A-Za-z .'-]*,\s*[A-Z]{2}\s*$`),
	}
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// CleanCompanyName reduces a page or search-result title to the most
// brand-like segment. The bool is false when the result is not a plausible name.
func CleanCompanyName(title string) (string, bool) {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return "", false
	}

	segments := titleSeparators.Split(title, -1)
	best, bestScore := "", -1<<31
	for i, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		score := segmentScore(seg)
		if i == 0 {
			score++
		}
		if score > bestScore {
			best, bestScore = seg, score
		}
	}

	name := stripNameNoise(best)
	name = Truncate(name, maxTitleLength)
	return name, IsValidCompanyName(name)
}

func segmentScore(seg string) int {
	score := 0
	if legalSuffix.MatchString(seg) {
		score += 3
	}
	if genericSegment.MatchString(seg) {
		score -= 4
	}
	lower := strings.ToLower(seg)
	for _, bad := range badNameIndicators {
		if strings.Contains(lower, bad) {
			score -= 2
			break
		}
	}
	return score
}

func stripNameNoise(name string) string {
	for _, re := range addressSuffix {
		name = re.ReplaceAllString(name, "")
	}
	name = genericPrefix.ReplaceAllString(name, "")
	name = genericSuffix.ReplaceAllString(name, "")
	return strings.Trim(name, " ,:;|-–—»")
}

// IsValidCompanyName rejects list headings, search pages and non-names.
func IsValidCompanyName(name string) bool {
	if len(name) < minNameLength || len(name) > maxNameLength {
		return false
	}
	lower := strings.ToLower(name)
	for _, bad := range badNameIndicators {
		if strings.Contains(lower, bad) {
			return false
		}
	}
	if genericSegment.MatchString(strings.TrimSpace(name)) {
		return false
	}
	letters := 0
	for _, r := range name {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= minNameLetters
}

// NameFromDomain derives a display name from the first domain label.
func NameFromDomain(host string) string {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	label := host
	if i := strings.IndexByte(host, '.'); i > 0 {
		label = host[:i]
	}
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(label))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// ExtractCompany builds a company record from its own web page. Name sources
// are tried in order: structured data, og:site_name, the cleaned <title>,
// then the domain. It reports false when no plausible name results.
func ExtractCompany(pageURL, rawHTML string) (*domain.Company, bool) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Hostname() == "" {
		return nil, false
	}
	doc := parseHTML(rawHTML)
	host := DomainOf(pageURL)

	c := &domain.Company{
		Domain:    host,
		Website:   SiteRoot(pageURL),
		Country:   domain.DefaultCountry,
		Source:    SourceWeb,
		SourceURL: pageURL,
	}

	if org, ok := ExtractOrganization(doc); ok {
		applyOrganization(c, org)
	}
	if c.Name == "" {
		c.Name = siteNameFromMeta(doc)
	}
	if c.Name == "" {
		if name, ok := CleanCompanyName(doc.Find("title").First().Text()); ok {
			c.Name = name
		}
	}
	if c.Name == "" {
		c.Name = NameFromDomain(host)
	}

	if c.Description == "" {
		c.Description = metaDescription(doc)
	}
	if c.Phone == "" {
		c.Phone = findPhone(doc)
	}
	text := visibleText(doc.Selection)
	if c.State == "" {
		applyAddress(c, doc, text)
	}
	ApplyPageFirmographics(c, text)

	if !IsValidCompanyName(c.Name) {
		return nil, false
	}
	return c, true
}

func applyOrganization(c *domain.Company, org Organization) {
	if IsValidCompanyName(org.Name) {
		c.Name = org.Name
	}
	c.Description = Truncate(org.Description, MaxDescriptionLength)
	c.Phone = Truncate(org.Telephone, maxShortField)
	c.City = Truncate(org.Locality, maxCityField)
	if state, ok := NormalizeState(org.Region); ok {
		c.State = state
	} else {
		c.State = Truncate(org.Region, maxShortField)
	}
	c.ZipCode = Truncate(org.PostalCode, maxZipField)
	if org.Employees > 0 {
		n := org.Employees
		c.EmployeeCount = &n
		c.EmployeeCountRange = CountToRange(n)
	}
}

func siteNameFromMeta(doc *goquery.Document) string {
	name, ok := doc.Find("meta[property='og:site_name']").Attr("content")
	if !ok {
		return ""
	}
	name = strings.TrimSpace(name)
	if !IsValidCompanyName(name) {
		return ""
	}
	return name
}

func metaDescription(doc *goquery.Document) string {
	for _, sel := range []string{"meta[property='og:description']", "meta[name='description']"} {
		if desc, ok := doc.Find(sel).Attr("content"); ok && strings.TrimSpace(desc) != "" {
			return Truncate(strings.TrimSpace(desc), MaxDescriptionLength)
		}
	}
	return ""
}

func findPhone(doc *goquery.Document) string {
	var phone string
	doc.Find("a[href^='tel:']").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		for _, candidate := range []string{strings.TrimSpace(a.Text()), strings.TrimPrefix(href, "tel:")} {
			if m := phonePattern.FindString(candidate); m != "" {
				phone = m
				return false
			}
		}
		return true
	})
	if phone != "" {
		return phone
	}

	blocks := doc.Find("span, p, div")
	blocks.Slice(0, min(maxPhoneElements, blocks.Length())).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := strings.TrimSpace(el.Text())
		if len(text) >= maxPhoneText {
			return true
		}
		if m := phonePattern.FindString(text); m != "" {
			phone = m
			return false
		}
		return true
	})
	return phone
}

func applyAddress(c *domain.Company, doc *goquery.Document, pageText string) {
	var found Address
	var ok bool
	doc.Find("footer, address").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		found, ok = ExtractAddress(visibleText(el))
		return !ok
	})
	if !ok {
		found, ok = ExtractAddress(pageText)
	}
	if ok {
		c.City, c.State, c.ZipCode = found.City, found.State, found.ZipCode
	}
}

// ApplyPageFirmographics fills revenue and employee fields from page text
// without overwriting known values, estimating revenue from head count last.
func ApplyPageFirmographics(c *domain.Company, text string) {
	if c.NeedsRevenue() {
		if rev, ok := PageRevenue(text); ok {
			c.EstimatedRevenue = rev
			c.RevenueSource = domain.RevenueSourcePageText
		}
	}
	if c.NeedsEmployees() {
		if n, rng, ok := PageEmployees(text); ok {
			c.EmployeeCount = &n
			if c.EmployeeCountRange == "" {
				c.EmployeeCountRange = rng
			}
		}
	}
	FillEstimate(c)
}
