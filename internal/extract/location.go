package extract

import (
	"regexp"
	"sort"
	"strings"
)

var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
}

var stateAbbrevs = func() map[string]struct{} {
	out := make(map[string]struct{}, len(stateNames))
	for _, abbr := range stateNames {
		out[abbr] = struct{}{}
	}
	return out
}()

type cityAlias struct {
	city  string
	state string
}

var cityAliases = map[string]cityAlias{
	"nyc":      {"new york", "NY"},
	"la":       {"los angeles", "CA"},
	"sf":       {"san francisco", "CA"},
	"dc":       {"washington", "DC"},
	"philly":   {"philadelphia", "PA"},
	"vegas":    {"las vegas", "NV"},
	"nola":     {"new orleans", "LA"},
	"kc":       {"kansas city", "MO"},
	"atl":      {"atlanta", "GA"},
	"chi":      {"chicago", "IL"},
	"chitown":  {"chicago", "IL"},
	"bay area": {"san francisco", "CA"},
}

const (
	minCityLength = 2
	maxCityLength = 25
	maxCityWords  = 4
)

var (
	cityShape     = regexp.MustCompile(`^[A-Z][A-Za-z .'-]+$`)
	camelJoin     = regexp.MustCompile(`[a-z][A-Z]`)
	cityAddrWords = map[string]struct{}{
		"street": {}, "avenue": {}, "drive": {}, "road": {}, "blvd": {}, "suite": {},
		"highway": {}, "pkwy": {}, "lane": {}, "court": {}, "circle": {}, "ave": {},
		"rd": {}, "st": {}, "dr": {}, "ct": {}, "hwy": {}, "nw": {}, "ne": {}, "sw": {},
		"se": {}, "way": {}, "place": {}, "ridge": {}, "parkway": {}, "bridge": {},
		"main": {}, "industrial": {}, "center": {}, "corporate": {}, "international": {},
		"county": {}, "located": {}, "employees": {}, "phone": {}, "number": {},
		"the": {}, "units": {},
	}
	cityBadPrefixes = []string{"is ", "are ", "at ", "on ", "in ", "th ", "nd ", "rd "}
)

// Keywords are case-insensitive; city and state captures must be capitalised.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:headquartered|based|located|headquarters|location)[:\s]+(?:(?i:in)\s+)?([A-Z][a-z]+(?:\s[A-Z][a-z]+)*),\s*([A-Z]{2}\b|[A-Z][a-z]+(?:\s[A-Z][a-z]+)?)`),
	regexp.MustCompile(`(?i:location\s+in|office\s+in|based\s+in|located\s+in)\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+)*),\s*([A-Z]{2}\b|[A-Z][a-z]+(?:\s[A-Z][a-z]+)?)`),
	regexp.MustCompile(`(?i:in)\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+)*),\s*([A-Z][a-z]+(?:\s[A-Z][a-z]+)?),\s*\d{5}`),
}

var (
	cityStatePattern   = regexp.MustCompile(`([A-Z][a-z]+(?:\s[A-Z][a-z]+)*),\s*([A-Z]{2})\b`)
	looseLocation      = regexp.MustCompile(`([A-Za-z][A-Za-z\s]*),\s*([A-Z]{2}\b|[A-Za-z][A-Za-z\s]*)`)
	addressWithZipCode = regexp.MustCompile(`([A-Za-z\s]+),\s*([A-Z]{2})\s+(\d{5}(?:-\d{4})?)`)
)

// NormalizeState maps a state name or abbreviation to its two-letter code.
func NormalizeState(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	upper := strings.ToUpper(s)
	if _, ok := stateAbbrevs[upper]; ok {
		return upper, true
	}
	if abbr, ok := stateNames[strings.ToLower(strings.Join(strings.Fields(s), " "))]; ok {
		return abbr, true
	}
	return "", false
}

// IsValidCity applies sanity checks that reject street fragments and prose.
func IsValidCity(name string) bool {
	if len(name) < minCityLength || len(name) > maxCityLength {
		return false
	}
	if !cityShape.MatchString(name) || camelJoin.MatchString(name) {
		return false
	}
	lower := strings.ToLower(name)
	words := strings.Fields(lower)
	if len(words) > maxCityWords {
		return false
	}
	for _, w := range words {
		if _, bad := cityAddrWords[w]; bad {
			return false
		}
	}
	for _, p := range cityBadPrefixes {
		if strings.HasPrefix(lower, p) {
			return false
		}
	}
	return true
}

// ExtractLocation finds a "City, ST" headquarters location in free text.
func ExtractLocation(text string) (string, string, bool) {
	for _, re := range locationPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		city := strings.TrimSpace(m[1])
		if state, ok := NormalizeState(m[2]); ok && IsValidCity(city) {
			return city, state, true
		}
	}

	for _, m := range cityStatePattern.FindAllStringSubmatch(text, -1) {
		city := strings.TrimSpace(m[1])
		if _, ok := stateAbbrevs[m[2]]; ok && IsValidCity(city) {
			return city, m[2], true
		}
	}
	return "", "", false
}

// ParseLocation reads a short "City, State" value such as a knowledge graph headquarters.
func ParseLocation(s string) (string, string, bool) {
	m := looseLocation.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	city := strings.TrimSpace(m[1])
	state, ok := NormalizeState(m[2])
	if !ok || !IsValidCity(city) {
		return "", "", false
	}
	return city, state, true
}

// Address is a US postal location found in page text.
type Address struct {
	City    string
	State   string
	ZipCode string
}

// ExtractAddress finds the first "City, ST 12345" address whose city passes IsValidCity.
// Street words preceding the city are dropped.
func ExtractAddress(text string) (Address, bool) {
	for _, m := range addressWithZipCode.FindAllStringSubmatch(text, -1) {
		if _, ok := stateAbbrevs[m[2]]; !ok {
			continue
		}
		if city, ok := trailingCity(m[1]); ok {
			return Address{City: city, State: m[2], ZipCode: m[3]}, true
		}
	}
	return Address{}, false
}

func trailingCity(raw string) (string, bool) {
	words := strings.Fields(raw)
	start := max(0, len(words)-maxCityWords)
	for i := start; i < len(words); i++ {
		candidate := strings.Join(words[i:], " ")
		if IsValidCity(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Place is a city fragment from a location filter. State is empty when the
// city was given without one.
type Place struct {
	City  string
	State string
}

// LocationFilter is a parsed free-text location filter.
type LocationFilter struct {
	// States holds two-letter state codes given on their own.
	States map[string]struct{}
	// Places holds lower-cased city fragments with the state they came with.
	Places []Place
}

// IsEmpty reports whether the filter accepts everything.
func (f LocationFilter) IsEmpty() bool {
	return len(f.States) == 0 && len(f.Places) == 0
}

// StateList returns every state the filter names, sorted.
func (f LocationFilter) StateList() []string {
	seen := make(map[string]struct{}, len(f.States)+len(f.Places))
	for s := range f.States {
		seen[s] = struct{}{}
	}
	for _, p := range f.Places {
		if p.State != "" {
			seen[p.State] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Cities returns the filter's city fragments in input order.
func (f LocationFilter) Cities() []string {
	out := make([]string, 0, len(f.Places))
	for _, p := range f.Places {
		out = append(out, p.City)
	}
	return out
}

var (
	filterGroupSplit = regexp.MustCompile(`\s*(?:[;/&]|\band\b|\bor\b)\s*`)
	countryWords     = map[string]struct{}{"usa": {}, "us": {}, "u.s.": {}, "united states": {}, "america": {}}
)

// ParseLocationFilter parses text such as "Austin, TX; NYC or Ohio". Within
// one group, a state that follows bare cities ("Springfield, IL") is bound to
// those cities.
func ParseLocationFilter(text string) LocationFilter {
	f := LocationFilter{States: map[string]struct{}{}}
	for _, group := range filterGroupSplit.Split(strings.TrimSpace(text), -1) {
		var pending []string
		for _, part := range strings.Split(group, ",") {
			part = strings.Join(strings.Fields(part), " ")
			if part == "" {
				continue
			}
			if _, ok := countryWords[strings.ToLower(part)]; ok {
				continue
			}
			if state, ok := filterState(part); ok {
				if len(pending) == 0 {
					f.States[state] = struct{}{}
				}
				for _, city := range pending {
					f.addPlace(city, state)
				}
				pending = nil
				continue
			}
			if city, state, ok := filterCityState(part); ok {
				f.addPlace(city, state)
				continue
			}
			pending = append(pending, part)
		}
		for _, city := range pending {
			f.addPlace(city, "")
		}
	}
	return f
}

// filterState resolves a part that is only a state. An upper-case state code
// wins over a city alias, so "LA" is Louisiana and "la" is Los Angeles.
func filterState(part string) (string, bool) {
	if len(part) == 2 && part == strings.ToUpper(part) {
		if _, ok := stateAbbrevs[part]; ok {
			return part, true
		}
	}
	if _, ok := cityAliases[strings.ToLower(part)]; ok {
		return "", false
	}
	return NormalizeState(part)
}

// filterCityState resolves aliases and "City ST" / "City State Name" parts.
func filterCityState(part string) (string, string, bool) {
	if alias, ok := cityAliases[strings.ToLower(part)]; ok {
		return alias.city, alias.state, true
	}
	words := strings.Fields(part)
	for n := min(3, len(words)-1); n >= 1; n-- {
		if state, ok := NormalizeState(strings.Join(words[len(words)-n:], " ")); ok {
			return strings.Join(words[:len(words)-n], " "), state, true
		}
	}
	return "", "", false
}

func (f *LocationFilter) addPlace(city, state string) {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		if state != "" {
			f.States[state] = struct{}{}
		}
		return
	}
	for _, p := range f.Places {
		if p.City == city && p.State == state {
			return
		}
	}
	f.Places = append(f.Places, Place{City: city, State: state})
}

// LocationMatches reports whether a company's stored location is compatible
// with the filter. Missing company data always matches; a known state that
// no filter entry allows never does.
func LocationMatches(state, city string, f LocationFilter) bool {
	if f.IsEmpty() {
		return true
	}
	state = strings.ToUpper(strings.TrimSpace(state))
	city = strings.ToLower(strings.TrimSpace(city))
	if state == "" && city == "" {
		return true
	}

	for s := range f.States {
		if state == "" || state == s {
			return true
		}
	}
	for _, p := range f.Places {
		if p.State != "" && state != "" {
			if state == p.State {
				return true
			}
			continue
		}
		if city == "" || cityMatches(city, p.City) {
			return true
		}
	}
	return false
}

func cityMatches(city, fragment string) bool {
	return strings.Contains(city, fragment) || strings.Contains(fragment, city)
}
