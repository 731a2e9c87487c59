package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Pattern placeholders.
const (
	tokenFirst        = "{first}"
	tokenLast         = "{last}"
	tokenFirstInitial = "{f}"
	tokenLastInitial  = "{l}"
)

const (
	maxDetectedConfidence = 70.0
	defaultPatternWeight  = 0.6
	maxCandidates         = 5
	shortLocalPart        = 2
)

// EmailPattern is a mailbox template with the confidence (0-1) that a domain uses it.
type EmailPattern struct {
	Template   string
	Confidence float64
}

// EmailCandidate is a guessed address with a 0-100 confidence.
type EmailCandidate struct {
	Email      string
	Confidence float64
}

// defaultPatterns is ordered by how common each convention is.
var defaultPatterns = []EmailPattern{
	{Template: "{first}.{last}", Confidence: 0.7},
	{Template: "{first}{last}", Confidence: 0.6},
	{Template: "{f}{last}", Confidence: 0.6},
	{Template: "{first}_{last}", Confidence: 0.5},
	{Template: "{f}.{last}", Confidence: 0.5},
	{Template: "{first}", Confidence: 0.4},
	{Template: "{last}.{first}", Confidence: 0.4},
	{Template: "{last}{f}", Confidence: 0.4},
	{Template: "{last}", Confidence: 0.3},
}

var nonLetters = regexp.MustCompile(`[^a-z]`)

// DiscoverPattern infers the mailbox convention of a domain from its known addresses.
func DiscoverPattern(knownEmails []string, emailDomain string) (EmailPattern, bool) {
	suffix := "@" + strings.ToLower(emailDomain)
	var locals []string
	for _, e := range knownEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if strings.HasSuffix(e, suffix) {
			locals = append(locals, strings.TrimSuffix(e, suffix))
		}
	}
	if len(locals) == 0 {
		return EmailPattern{}, false
	}

	hasDot, hasUnderscore := false, false
	for _, lp := range locals {
		hasDot = hasDot || strings.Contains(lp, ".")
		hasUnderscore = hasUnderscore || strings.Contains(lp, "_")
	}

	sample := locals[0]
	switch {
	case hasDot:
		parts := strings.Split(sample, ".")
		if len(parts) == 2 && len(parts[0]) == 1 {
			return EmailPattern{Template: "{f}.{last}", Confidence: 0.7}, true
		}
		return EmailPattern{Template: "{first}.{last}", Confidence: 0.8}, true
	case hasUnderscore:
		return EmailPattern{Template: "{first}_{last}", Confidence: 0.7}, true
	case len(sample) <= shortLocalPart:
		return EmailPattern{Template: "{f}{l}", Confidence: 0.5}, true
	default:
		return EmailPattern{Template: "{first}{last}", Confidence: 0.6}, true
	}
}

// GenerateCandidates guesses addresses for a person. A detected pattern ranks
// first at up to 70; default conventions follow at 60% of their base
// confidence. Known addresses are excluded. Both names are required.
func GenerateCandidates(firstName, lastName, emailDomain string, detected *EmailPattern, exclude []string) []EmailCandidate {
	first := cleanNamePart(firstName)
	last := cleanNamePart(lastName)
	emailDomain = strings.ToLower(strings.TrimSpace(emailDomain))
	if first == "" || last == "" || emailDomain == "" {
		return nil
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}

	var candidates []EmailCandidate
	add := func(template string, confidence float64) {
		email := applyPattern(template, first, last) + "@" + emailDomain
		if _, known := skip[email]; known {
			return
		}
		skip[email] = struct{}{}
		candidates = append(candidates, EmailCandidate{Email: email, Confidence: confidence})
	}

	if detected != nil {
		add(detected.Template, min(detected.Confidence*100, maxDetectedConfidence))
	}
	for _, p := range defaultPatterns {
		add(p.Template, p.Confidence*100*defaultPatternWeight)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

func applyPattern(template, first, last string) string {
	return strings.NewReplacer(
		tokenFirst, first,
		tokenLast, last,
		tokenFirstInitial, first[:1],
		tokenLastInitial, last[:1],
	).Replace(template)
}

func cleanNamePart(name string) string {
	return nonLetters.ReplaceAllString(strings.ToLower(name), "")
}
