// Package enrich fills a company's missing firmographics (revenue, head
// count, headquarters) from search knowledge graphs and result text, with a
// per-industry revenue estimate as the last resort.
package enrich

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/jonesrussell/north-cloud/prospector/internal/search"
)

// resultsPerQuery keeps each enrichment search small; at most two run per company.
const resultsPerQuery = 5

var (
	kgRevenueKeys  = []string{"revenue", "annual_revenue", "annualRevenue"}
	kgLocationKeys = []string{"headquarters", "location"}
)

// Fields are the firmographics the enricher can determine.
type Fields struct {
	EstimatedRevenue   string
	RevenueSource      string
	EmployeeCount      int
	EmployeeCountRange string
	City               string
	State              string
}

// FieldsOf returns the firmographics already known for c.
func FieldsOf(c *domain.Company) Fields {
	f := Fields{
		EstimatedRevenue:   c.EstimatedRevenue,
		RevenueSource:      c.RevenueSource,
		EmployeeCountRange: c.EmployeeCountRange,
		City:               c.City,
		State:              c.State,
	}
	if c.EmployeeCount != nil {
		f.EmployeeCount = *c.EmployeeCount
	}
	return f
}

// IsEmpty reports whether no field is set.
func (f Fields) IsEmpty() bool {
	return f.EstimatedRevenue == "" && f.EmployeeCount <= 0 && f.State == ""
}

// Missing names the categories still unknown, in search-query wording.
func (f Fields) Missing() []string {
	var missing []string
	if f.EstimatedRevenue == "" {
		missing = append(missing, "revenue")
	}
	if f.State == "" {
		missing = append(missing, "headquarters location")
	}
	if f.EmployeeCount <= 0 {
		missing = append(missing, "employees")
	}
	return missing
}

// Merge returns f with its empty fields filled from other.
func (f Fields) Merge(other Fields) Fields {
	if f.EstimatedRevenue == "" && other.EstimatedRevenue != "" {
		f.EstimatedRevenue, f.RevenueSource = other.EstimatedRevenue, other.RevenueSource
	}
	if f.EmployeeCount <= 0 && other.EmployeeCount > 0 {
		f.EmployeeCount = other.EmployeeCount
		if f.EmployeeCountRange == "" {
			f.EmployeeCountRange = other.EmployeeCountRange
		}
	}
	if f.State == "" && other.State != "" {
		f.City, f.State = other.City, other.State
	}
	return f
}

// ApplyTo copies f onto c without overwriting known values. It reports
// whether c changed.
func (f Fields) ApplyTo(c *domain.Company) bool {
	changed := false
	if c.NeedsRevenue() && f.EstimatedRevenue != "" {
		c.EstimatedRevenue, c.RevenueSource = f.EstimatedRevenue, f.RevenueSource
		changed = true
	}
	if c.NeedsEmployees() && f.EmployeeCount > 0 {
		n := f.EmployeeCount
		c.EmployeeCount = &n
		if c.EmployeeCountRange == "" {
			c.EmployeeCountRange = f.EmployeeCountRange
		}
		changed = true
	}
	if c.NeedsLocation() && f.State != "" {
		c.City, c.State = f.City, f.State
		changed = true
	}
	return changed
}

// Summary renders the set fields for job logs, e.g. "rev=$45M, emp=120, loc=Austin, TX".
func (f Fields) Summary() string {
	var parts []string
	if f.EstimatedRevenue != "" {
		parts = append(parts, "rev="+f.EstimatedRevenue)
	}
	if f.EmployeeCount > 0 {
		parts = append(parts, fmt.Sprintf("emp=%d", f.EmployeeCount))
	}
	if f.State != "" {
		loc := f.State
		if f.City != "" {
			loc = f.City + ", " + f.State
		}
		parts = append(parts, "loc="+loc)
	}
	return strings.Join(parts, ", ")
}

// Enricher runs enrichment searches.
type Enricher struct {
	searcher search.Searcher
	log      logger.Logger
}

// New creates an Enricher. A nil searcher limits enrichment to offline signals.
func New(s search.Searcher, log logger.Logger) *Enricher {
	if log == nil {
		log = logger.NewNop()
	}
	return &Enricher{searcher: s, log: log}
}

// EnrichCompany determines the fields known does not have and returns only
// those. A knowledge graph handed over by discovery is read before any
// search. A broad search runs first; a second one names only what is still
// missing. Revenue falls back to a head-count estimate for the industry.
// The only error returned is the context's.
func (e *Enricher) EnrichCompany(
	ctx context.Context, name, companyDomain string, kg map[string]any, industry string, known Fields,
) (Fields, error) {
	r := &collector{known: known}
	if r.complete() {
		return Fields{}, nil
	}

	if len(kg) > 0 {
		r.fromKnowledgeGraph(kg)
	}

	if !r.complete() && e.searcher != nil && e.searcher.Available() {
		quoted := `"` + strings.TrimSpace(name) + `"`
		if err := e.searchInto(ctx, quoted+" revenue employees headquarters", r); err != nil {
			return Fields{}, err
		}
		if missing := r.current().Missing(); len(missing) > 0 {
			if err := e.searchInto(ctx, quoted+" "+strings.Join(missing, " "), r); err != nil {
				return Fields{}, err
			}
		}
	}

	cur := r.current()
	if cur.EstimatedRevenue == "" && (cur.EmployeeCount > 0 || cur.EmployeeCountRange != "") {
		if rev, ok := extract.EstimateRevenue(cur.EmployeeCount, cur.EmployeeCountRange, industry); ok {
			r.found.EstimatedRevenue = rev
			r.found.RevenueSource = domain.RevenueSourceEstimated
		}
	}

	if !r.found.IsEmpty() {
		e.log.Debug("Company enriched",
			logger.String("domain", companyDomain),
			logger.String("fields", r.found.Summary()),
		)
	}
	return r.found, nil
}

func (e *Enricher) searchInto(ctx context.Context, query string, r *collector) error {
	resp, err := e.searcher.Search(ctx, search.Request{Query: query, Num: resultsPerQuery})
	if err != nil {
		return err
	}
	if resp == nil {
		return nil
	}
	if len(resp.KnowledgeGraph) > 0 {
		r.fromKnowledgeGraph(resp.KnowledgeGraph)
	}
	r.fromText(ResponseText(resp))
	return nil
}

// ResponseText joins the answer box, organic snippets and titles, and
// people-also-ask snippets of a search response.
func ResponseText(resp *search.Response) string {
	var b strings.Builder
	if resp.AnswerBox != nil {
		if answer := stringValue(resp.AnswerBox["answer"]); answer != "" {
			b.WriteString(" " + answer)
		} else {
			b.WriteString(" " + stringValue(resp.AnswerBox["snippet"]))
		}
	}
	for _, o := range resp.Organic {
		b.WriteString(" " + o.Snippet)
		b.WriteString(" " + o.Title)
	}
	for _, p := range resp.PeopleAlsoAsk {
		b.WriteString(" " + p.Snippet)
	}
	return b.String()
}

// collector accumulates newly found fields on top of the known ones.
type collector struct {
	known Fields
	found Fields
}

func (r *collector) current() Fields { return r.known.Merge(r.found) }

func (r *collector) complete() bool { return len(r.current().Missing()) == 0 }

func (r *collector) needRevenue() bool   { return r.current().EstimatedRevenue == "" }
func (r *collector) needEmployees() bool { return r.current().EmployeeCount <= 0 }
func (r *collector) needLocation() bool  { return r.current().State == "" }

func (r *collector) setRevenue(rev, source string) {
	if r.needRevenue() {
		r.found.EstimatedRevenue, r.found.RevenueSource = rev, source
	}
}

func (r *collector) setEmployees(n int, rng string) {
	if r.needEmployees() {
		if rng == "" {
			rng = extract.CountToRange(n)
		}
		r.found.EmployeeCount, r.found.EmployeeCountRange = n, rng
	}
}

func (r *collector) setLocation(city, state string) {
	if r.needLocation() {
		r.found.City, r.found.State = city, state
	}
}

// fromKnowledgeGraph reads explicit revenue keys, then attributes in key
// order, then the headquarters entry.
func (r *collector) fromKnowledgeGraph(kg map[string]any) {
	for _, key := range kgRevenueKeys {
		if !r.needRevenue() {
			break
		}
		if rev, ok := extract.NormalizeRevenue(stringValue(kg[key])); ok {
			r.setRevenue(rev, domain.RevenueSourceKnowledgeGraph)
		}
	}

	if attrs, ok := kg["attributes"].(map[string]any); ok {
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			lower := strings.ToLower(k)
			val := stringValue(attrs[k])
			if r.needRevenue() && (strings.Contains(lower, "revenue") || strings.Contains(lower, "sales")) {
				if rev, ok := extract.NormalizeRevenue(val); ok {
					r.setRevenue(rev, domain.RevenueSourceKnowledgeGraph)
				}
			}
			if r.needEmployees() && containsAny(lower, "employee", "staff", "size") {
				if n, ok := extract.ParseEmployeeCount(val); ok {
					r.setEmployees(n, "")
				}
			}
			if r.needLocation() && containsAny(lower, "headquarter", "location", "address") {
				if city, state, ok := extract.ParseLocation(val); ok {
					r.setLocation(city, state)
				}
			}
		}
	}

	for _, key := range kgLocationKeys {
		if !r.needLocation() {
			break
		}
		if city, state, ok := extract.ParseLocation(stringValue(kg[key])); ok {
			r.setLocation(city, state)
		}
	}
}

func (r *collector) fromText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if r.needRevenue() {
		if rev, ok := extract.TextRevenue(text); ok {
			r.setRevenue(rev, domain.RevenueSourceSnippet)
		}
	}
	if r.needEmployees() {
		if n, rng, ok := extract.TextEmployees(text); ok {
			r.setEmployees(n, rng)
		}
	}
	if r.needLocation() {
		if city, state, ok := extract.ExtractLocation(text); ok {
			r.setLocation(city, state)
		}
	}
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
