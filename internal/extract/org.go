package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var organizationTypes = []string{"Organization", "Corporation", "LocalBusiness"}

// Organization is the subset of schema.org Organization data the extractors use.
type Organization struct {
	Name        string
	Description string
	Telephone   string
	Email       string
	URL         string
	Locality    string
	Region      string
	PostalCode  string
	// Employees is 0 when the page does not state a head count.
	Employees int
}

// ExtractOrganization reads Organization data from JSON-LD scripts, then microdata.
func ExtractOrganization(doc *goquery.Document) (Organization, bool) {
	var (
		org   Organization
		found bool
	)
	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}
		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return true
		}
		if obj, ok := findOrganization(data); ok {
			org = organizationFromJSONLD(obj)
			found = true
			return false
		}
		return true
	})
	if found {
		return org, true
	}

	item := doc.Find("[itemtype*='Organization']").First()
	if item.Length() == 0 {
		return Organization{}, false
	}
	return organizationFromMicrodata(item), true
}

func findOrganization(data any) (map[string]any, bool) {
	switch v := data.(type) {
	case []any:
		for _, item := range v {
			if obj, ok := findOrganization(item); ok {
				return obj, true
			}
		}
	case map[string]any:
		if isOrganizationType(v["@type"]) {
			return v, true
		}
		if graph, ok := v["@graph"]; ok {
			return findOrganization(graph)
		}
	}
	return nil, false
}

func isOrganizationType(t any) bool {
	var names []string
	switch v := t.(type) {
	case string:
		names = []string{v}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
	}
	joined := strings.Join(names, " ")
	for _, want := range organizationTypes {
		if strings.Contains(joined, want) {
			return true
		}
	}
	return false
}

func organizationFromJSONLD(obj map[string]any) Organization {
	org := Organization{
		Name:        stringField(obj, "name"),
		Description: stringField(obj, "description"),
		Telephone:   stringField(obj, "telephone"),
		Email:       stringField(obj, "email"),
		URL:         stringField(obj, "url"),
	}
	if addr, ok := obj["address"].(map[string]any); ok {
		org.Locality = stringField(addr, "addressLocality")
		org.Region = stringField(addr, "addressRegion")
		org.PostalCode = stringField(addr, "postalCode")
	}
	switch emp := obj["numberOfEmployees"].(type) {
	case map[string]any:
		if n, ok := employeeValue(emp["value"]); ok {
			org.Employees = n
		}
	default:
		if n, ok := employeeValue(emp); ok {
			org.Employees = n
		}
	}
	return org
}

func employeeValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n >= minEmployees && n <= maxEmployees {
			return int(n), true
		}
	case string:
		if c, ok := parseCount(n); ok && c >= minEmployees && c <= maxEmployees {
			return c, true
		}
	}
	return 0, false
}

func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func organizationFromMicrodata(item *goquery.Selection) Organization {
	var org Organization
	item.Find("[itemprop]").Each(func(_ int, prop *goquery.Selection) {
		name, _ := prop.Attr("itemprop")
		value, ok := prop.Attr("content")
		if !ok {
			value = prop.Text()
		}
		value = strings.TrimSpace(value)
		switch name {
		case "name":
			if org.Name == "" {
				org.Name = value
			}
		case "description":
			org.Description = value
		case "telephone":
			org.Telephone = value
		case "email":
			org.Email = value
		case "addressLocality":
			org.Locality = value
		case "addressRegion":
			org.Region = value
		case "postalCode":
			org.PostalCode = value
		}
	})
	return org
}
