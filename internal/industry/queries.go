package industry

import (
	"fmt"
	"strings"
)

// DefaultLocation is substituted when no location is given.
const DefaultLocation = "USA"

// Per-category bounds on generated query volume.
const (
	maxKeywordQueries   = 6
	maxSubIndustries    = 4
	maxDirectoryQueries = 3
)

// broadTemplates work for any industry name.
var broadTemplates = []string{
	`"%[1]s" company %[2]s -wikipedia -fortune -NYSE -NASDAQ`,
	`"%[1]s" supplier %[2]s small business`,
	`"%[1]s" manufacturer %[2]s LLC OR Inc`,
	`"%[1]s" distributor company %[2]s`,
	`"%[1]s" services company %[2]s`,
}

// keywordTemplates expand curated keywords.
var keywordTemplates = []string{
	`"%[1]s" manufacturer company %[2]s`,
	`"%[1]s" supplier %[2]s -wikipedia`,
	`"%[1]s" company %[2]s LLC OR Inc`,
}

const subIndustryTemplate = `"%[1]s" company %[2]s -wikipedia`

// directoryTemplates scope searches to directory profile pages.
var directoryTemplates = []string{
	`site:thomasnet.com/profile "%s"`,
	`site:industrynet.com "%s"`,
}

// GenerateQueries builds the ordered search queries for an industry. Any
// non-empty name yields queries; curated industries get keyword,
// sub-industry and directory variants.
func GenerateQueries(industryName, location string) []string {
	industryName = strings.TrimSpace(industryName)
	if industryName == "" {
		return nil
	}

	location = strings.TrimSpace(location)
	loc := location
	if loc == "" {
		loc = DefaultLocation
	}

	queries := make([]string, 0, len(broadTemplates))
	for _, tpl := range broadTemplates {
		queries = append(queries, fmt.Sprintf(tpl, industryName, loc))
	}

	ind, ok := Lookup(industryName)
	if !ok {
		return append(queries, directoryQueries(industryName, location)...)
	}

	for _, kw := range head(ind.Keywords, maxKeywordQueries) {
		for _, tpl := range keywordTemplates {
			queries = append(queries, fmt.Sprintf(tpl, kw, loc))
		}
	}
	for _, sub := range head(ind.SubIndustries, maxSubIndustries) {
		queries = append(queries, fmt.Sprintf(subIndustryTemplate, sub, loc))
	}
	for _, kw := range head(ind.Keywords, maxDirectoryQueries) {
		queries = append(queries, directoryQueries(kw, location)...)
	}

	return queries
}

func directoryQueries(keyword, location string) []string {
	out := make([]string, 0, len(directoryTemplates))
	for _, tpl := range directoryTemplates {
		q := fmt.Sprintf(tpl, keyword)
		if location != "" {
			q += " " + location
		}
		out = append(out, q)
	}
	return out
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
