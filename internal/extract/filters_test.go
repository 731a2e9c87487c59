package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
)

func TestRegistrableDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "acme.co.uk", extract.RegistrableDomain("shop.acme.co.uk"))
	assert.Equal(t, "acme.com", extract.RegistrableDomain("www.Acme.com"))
}

func TestIsPublicCompanyDomain(t *testing.T) {
	t.Parallel()

	assert.True(t, extract.IsPublicCompanyDomain("boeing.com"))
	assert.True(t, extract.IsPublicCompanyDomain("www.boeing.com"))
	assert.True(t, extract.IsPublicCompanyDomain("investors.caterpillar.com"))
	assert.False(t, extract.IsPublicCompanyDomain("acmeprecision.com"))
}

func TestHasPublicCompanyIndicators(t *testing.T) {
	t.Parallel()

	assert.True(t, extract.HasPublicCompanyIndicators("Listed on NYSE: ACME. Read our Annual Report."))
	assert.False(t, extract.HasPublicCompanyIndicators("Read our annual report."))
}

func TestIsNonCompanyDomain(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"en.wikipedia.org":   true,
		"www.linkedin.com":   true,
		"thomasnet.com":      true,
		"energy.gov":         true,
		"mit.edu":            true,
		"localhost":          true,
		"":                   true,
		"acmeprecision.com":  false,
		"notwikipedia.org":   false,
		"shop.acme-tool.net": false,
	}
	for host, want := range tests {
		assert.Equal(t, want, extract.IsNonCompanyDomain(host), host)
	}
}

func TestIsListLikePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"https://acme.com/":                        false,
		"https://acme.com/about":                   false,
		"https://example.com/top-10-valve-makers":  true,
		"https://example.com/category/valves":      true,
		"https://example.com/a/b/c/d":              true,
		"https://example.com/search?q=valves":      true,
		"https://example.com/best-suppliers-texas": true,
	}
	for rawURL, want := range tests {
		assert.Equal(t, want, extract.IsListLikePath(rawURL), rawURL)
	}
}
