package extract

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
)

const (
	minEmployees = 1
	maxEmployees = 500_000

	thousand = 1_000
	million  = 1_000_000
	billion  = 1_000_000_000

	defaultRevenuePerEmployee = 300
)

// Page text patterns, tried in order. Group 1 is the amount, group 2 the optional scale.
var pageRevenuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$\s*([\d,.]+)\s*(billion|million|mil|B|M)\b`),
	regexp.MustCompile(`(?i)revenues?\s+(?:of\s+)?\$\s*([\d,.]+)\s*(billion|million|mil|B|M)?`),
	regexp.MustCompile(`(?i)(?:annual\s+)?sales\s+(?:of\s+)?\$\s*([\d,.]+)\s*(billion|million|mil|B|M)?`),
	regexp.MustCompile(`(?i)\$\s*([\d,.]+)\s*(B|M|K)?\s+(?:in\s+)?(?:revenue|sales|turnover)`),
}

var pageEmployeePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([\d,]+)\s*(?:\+\s*)?employees`),
	regexp.MustCompile(`(?i)(?:team|staff|workforce)\s+(?:of\s+)?([\d,]+)`),
	regexp.MustCompile(`(?i)([\d,]+)\s*(?:\+\s*)?(?:team members|associates|workers|people)`),
	regexp.MustCompile(`(?i)(?:over|approximately|about|nearly|more than)\s+([\d,]+)\s*(?:\+\s*)?(?:employees|people|staff)`),
}

var employeeRangePattern = regexp.MustCompile(`(?i)([\d,]+)\s*[-–to]+\s*([\d,]+)\s*employees`)

// Search snippet patterns. The scale group is mandatory here.
var textRevenuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$\s*([\d,.]+)\s*(billion|million|B|M)\b`),
	regexp.MustCompile(`(?i)revenue[:\s]+\$?\s*([\d,.]+)\s*(billion|million|B|M)`),
	regexp.MustCompile(`(?i)annual\s+(?:revenue|sales)[:\s]+\$?\s*([\d,.]+)\s*(billion|million|B|M)`),
	regexp.MustCompile(`(?i)(?:varies|ranges?)\s+(?:between|from)\s+\$?\s*([\d,.]+)\s*(billion|million|B|M)`),
	regexp.MustCompile(`(?i)revenue\s+of\s+\$?\s*([\d,.]+)\s*(billion|million|B|M)`),
}

var textEmployeePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:has|have|with|about|approximately|nearly|over|around)?\s*([\d,]+)\s*(?:\+\s*)?(?:total\s+)?employees`),
	regexp.MustCompile(`(?i)([\d,]+)\s*(?:\+\s*)?(?:full[ -]time\s+)?employees`),
	regexp.MustCompile(`(?i)(?:employs?|workforce|staff|headcount|team\s+(?:of|size))[:\s]+([\d,]+)`),
	regexp.MustCompile(`(?i)([\d,]+)\s*(?:total\s+)?(?:people|workers|staff|team\s+members)`),
	regexp.MustCompile(`(?i)employee\s+count[:\s]+([\d,]+)`),
	regexp.MustCompile(`(?i)number\s+of\s+employees[:\s]+([\d,]+)`),
	regexp.MustCompile(`(?i)(?:ranges?|varies)\s+from\s+([\d,]+)\s+to\s+[\d,]+`),
}

var (
	bareDollarPattern    = regexp.MustCompile(`\$\s*([\d,.]+)`)
	bareNumberPattern    = regexp.MustCompile(`([\d,]+)`)
	canonicalRevenue     = regexp.MustCompile(`(?i)^\$\s*([\d.]+)\s*(B|M|K)?`)
	employeeRangeNumbers = regexp.MustCompile(`^(\d+)\s*[-–]\s*(\d+)`)
)

// revenuePerEmployee is thousands of USD per employee by industry.
var revenuePerEmployee = map[string]float64{
	"Aerospace & Defense":              350,
	"Industrial Machinery & Equipment": 280,
	"Specialty Chemicals":              400,
	"Commodity Trading":                1500,
	"Medical & Scientific Equipment":   320,
	"Building Materials":               300,
	"Electrical & Electronic Hardware": 300,
}

// rangeToCount maps common employee range labels (commas and spaces removed) to a representative count.
var rangeToCount = map[string]int{
	"1-10":       5,
	"1-50":       25,
	"11-50":      30,
	"10-50":      30,
	"51-200":     125,
	"50-200":     125,
	"201-500":    350,
	"200-500":    350,
	"501-1000":   750,
	"500-1000":   750,
	"1001-5000":  3000,
	"1000-5000":  3000,
	"5001-10000": 7500,
	"5000-10000": 7500,
}

// PageRevenue finds a revenue figure in page text. Source is page_text.
func PageRevenue(text string) (string, bool) {
	for _, re := range pageRevenuePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		if rev, ok := formatPageRevenue(amount, strings.ToUpper(strings.TrimSpace(m[2]))); ok {
			return rev, true
		}
	}
	return "", false
}

func formatPageRevenue(amount float64, scale string) (string, bool) {
	switch scale {
	case "BILLION", "B":
		if amount >= 1 {
			return "$" + formatAmount(amount, 1) + "B", true
		}
		return "$" + formatAmount(amount*thousand, 0) + "M", true
	case "MILLION", "MIL", "M":
		return "$" + formatAmount(amount, 0) + "M", true
	case "K":
		return "$" + formatAmount(amount, 0) + "K", true
	}
	return formatDollars(amount, true)
}

// formatDollars renders a plain dollar figure in canonical form.
func formatDollars(amount float64, allowThousands bool) (string, bool) {
	switch {
	case amount >= billion:
		return "$" + formatAmount(amount/billion, 1) + "B", true
	case amount >= million:
		return "$" + formatAmount(amount/million, 0) + "M", true
	case allowThousands && amount >= thousand:
		return "$" + formatAmount(amount/thousand, 0) + "K", true
	}
	return "", false
}

// PageEmployees finds an employee count in page text. Ranges such as
// "50-100 employees" yield their midpoint and the literal range.
func PageEmployees(text string) (int, string, bool) {
	if m := employeeRangePattern.FindStringSubmatch(text); m != nil {
		low, okLow := parseCount(m[1])
		high, okHigh := parseCount(m[2])
		if okLow && okHigh && validEmployeeCount(low) && validEmployeeCount(high) {
			return (low + high) / 2, formatCount(low) + "-" + formatCount(high), true
		}
	}
	return firstEmployeeCount(pageEmployeePatterns, text)
}

// TextRevenue finds a revenue figure in search snippet text. Source is search_snippet.
func TextRevenue(text string) (string, bool) {
	for _, re := range textRevenuePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		switch strings.ToUpper(m[2]) {
		case "BILLION", "B":
			return "$" + formatAmount(amount, 1) + "B", true
		case "MILLION", "M":
			return "$" + formatAmount(amount, 0) + "M", true
		}
	}
	return "", false
}

// TextEmployees finds an employee count in search snippet text.
func TextEmployees(text string) (int, string, bool) {
	return firstEmployeeCount(textEmployeePatterns, text)
}

func firstEmployeeCount(patterns []*regexp.Regexp, text string) (int, string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, ok := parseCount(m[1])
		if ok && validEmployeeCount(n) {
			return n, CountToRange(n), true
		}
	}
	return 0, "", false
}

// NormalizeRevenue converts a free-form revenue value (knowledge graph
// attributes, "US$ 1.2 billion (2023)") to canonical form.
func NormalizeRevenue(s string) (string, bool) {
	if rev, ok := TextRevenue(s); ok {
		return rev, true
	}
	if m := bareDollarPattern.FindStringSubmatch(s); m != nil {
		if amount, ok := parseNumber(m[1]); ok {
			return formatDollars(amount, false)
		}
	}
	return "", false
}

// ParseEmployeeCount converts a free-form head count value to an integer.
func ParseEmployeeCount(s string) (int, bool) {
	if n, _, ok := TextEmployees(s); ok {
		return n, true
	}
	if m := bareNumberPattern.FindStringSubmatch(s); m != nil {
		if n, ok := parseCount(m[1]); ok && validEmployeeCount(n) {
			return n, true
		}
	}
	return 0, false
}

func validEmployeeCount(n int) bool {
	return n >= minEmployees && n <= maxEmployees
}

// CountToRange buckets an employee count.
func CountToRange(count int) string {
	switch {
	case count <= 10:
		return "1-10"
	case count <= 50:
		return "11-50"
	case count <= 200:
		return "51-200"
	case count <= 500:
		return "201-500"
	case count <= 1000:
		return "501-1,000"
	case count <= 5000:
		return "1,001-5,000"
	case count <= 10000:
		return "5,001-10,000"
	default:
		return "10,000+"
	}
}

// RevenuePerEmployee returns the industry multiplier in thousands of USD.
func RevenuePerEmployee(industry string) float64 {
	if v, ok := revenuePerEmployee[industry]; ok {
		return v
	}
	return defaultRevenuePerEmployee
}

// EstimateRevenue derives a revenue estimate from an exact count or, failing
// that, a range label. Estimates carry a "~" prefix.
func EstimateRevenue(count int, employeeRange, industry string) (string, bool) {
	if count < minEmployees && employeeRange != "" {
		count = countFromRange(employeeRange)
	}
	if count < minEmployees {
		return "", false
	}

	estimated := float64(count) * RevenuePerEmployee(industry)
	switch {
	case estimated >= million:
		return "~$" + formatAmount(estimated/million, 1) + "B", true
	case estimated >= thousand:
		return "~$" + formatAmount(estimated/thousand, 0) + "M", true
	default:
		return "~$" + formatAmount(estimated, 0) + "K", true
	}
}

func countFromRange(label string) int {
	key := strings.NewReplacer(" ", "", ",", "").Replace(label)
	if n, ok := rangeToCount[key]; ok {
		return n
	}
	m := employeeRangeNumbers.FindStringSubmatch(key)
	if m == nil {
		return 0
	}
	low, _ := parseCount(m[1])
	high, _ := parseCount(m[2])
	return (low + high) / 2
}

// ParseRevenue converts a canonical revenue string ("$50M", "~$1.2B") to dollars.
func ParseRevenue(s string) (float64, bool) {
	s = strings.TrimSpace(strings.NewReplacer("~", "", ",", "").Replace(s))
	m := canonicalRevenue.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, ok := parseNumber(m[1])
	if !ok {
		return 0, false
	}
	switch strings.ToUpper(m[2]) {
	case "B":
		return v * billion, true
	case "M":
		return v * million, true
	case "K":
		return v * thousand, true
	}
	return v, true
}

// RevenueBracket is a half-open [Low, High) dollar range.
type RevenueBracket struct {
	Name string
	Low  float64
	High float64
}

// Contains reports whether v falls inside the bracket.
func (b RevenueBracket) Contains(v float64) bool {
	return v >= b.Low && v < b.High
}

// RevenueBrackets lists the filter brackets in ascending order.
var RevenueBrackets = []RevenueBracket{
	{Name: "under_1m", Low: math.Inf(-1), High: million},
	{Name: "1m_10m", Low: million, High: 10 * million},
	{Name: "10m_50m", Low: 10 * million, High: 50 * million},
	{Name: "50m_100m", Low: 50 * million, High: 100 * million},
	{Name: "100m_200m", Low: 100 * million, High: 200 * million},
	{Name: "200m_500m", Low: 200 * million, High: 500 * million},
	{Name: "500m_1b", Low: 500 * million, High: billion},
	{Name: "over_1b", Low: billion, High: math.Inf(1)},
}

// LookupRevenueBracket returns the bracket with the given name.
func LookupRevenueBracket(name string) (RevenueBracket, bool) {
	for _, b := range RevenueBrackets {
		if b.Name == name {
			return b, true
		}
	}
	return RevenueBracket{}, false
}

// RevenueBracketOf returns the bracket name a revenue string falls into.
func RevenueBracketOf(revenue string) (string, bool) {
	v, ok := ParseRevenue(revenue)
	if !ok {
		return "", false
	}
	for _, b := range RevenueBrackets {
		if b.Contains(v) {
			return b.Name, true
		}
	}
	return "", false
}

// FillEstimate sets an estimated revenue on c when it has a head count but no revenue.
func FillEstimate(c *domain.Company) bool {
	if !c.NeedsRevenue() {
		return false
	}
	count := 0
	if c.EmployeeCount != nil {
		count = *c.EmployeeCount
	}
	rev, ok := EstimateRevenue(count, c.EmployeeCountRange, c.Industry)
	if !ok {
		return false
	}
	c.EstimatedRevenue = rev
	c.RevenueSource = domain.RevenueSourceEstimated
	return true
}
