package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/prospector/internal/domain"
	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
)

// structuredHTML carries a JSON-LD @graph with an Organization node.
const structuredHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Home | Something Else</title>
  <script type="application/ld+json">
  {"@context":"https://schema.org","@graph":[
    {"@type":"WebSite","name":"Site"},
    {"@type":["Organization","Corporation"],"name":"Acme Precision LLC",
     "description":"Precision machining.","telephone":"(512) 555-0100",
     "address":{"addressLocality":"Austin","addressRegion":"Texas","postalCode":"78701"},
     "numberOfEmployees":{"@type":"QuantitativeValue","value":120}}
  ]}
  </script>
</head>
<body><p>We have served customers for 30 years.</p></body>
</html>`

// plainHTML has no structured data; the name comes from the title.
const plainHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Bolt Fasteners Inc - Industrial Fasteners</title>
  <meta name="description" content="Fasteners for industry.">
</head>
<body>
  <div><a href="tel:+15125550199">Call (512) 555-0199</a></div>
  <p>Annual sales of $12 million with 85 employees.</p>
  <footer>Bolt Fasteners Inc, 100 Main Street Round Rock, TX 78664</footer>
</body>
</html>`

func TestCleanCompanyName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		title     string
		want      string
		wantValid bool
	}{
		{name: "generic first segment", title: "Home | Acme Widgets Inc.", want: "Acme Widgets Inc.", wantValid: true},
		{name: "legal suffix first", title: "Acme Corp - Industrial Valves", want: "Acme Corp", wantValid: true},
		{name: "products page", title: "Products - Acme Manufacturing", want: "Acme Manufacturing", wantValid: true},
		{name: "address fragment", title: "Acme Valve Co, Houston, TX 77001", want: "Acme Valve Co", wantValid: true},
		{name: "welcome prefix", title: "Welcome to Acme Industries", want: "Acme Industries", wantValid: true},
		{name: "directory title", title: "Acme Valves: Houston, TX 77001 - Thomasnet", want: "Acme Valves", wantValid: true},
		{name: "list page", title: "Top 10 Valve Manufacturers in Texas", wantValid: false},
		{name: "category heading", title: "Best Industrial Suppliers | Directory", wantValid: false},
		{name: "empty", title: "   ", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := extract.CleanCompanyName(tt.title)
			assert.Equal(t, tt.wantValid, ok)
			if tt.wantValid {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsValidCompanyName(t *testing.T) {
	t.Parallel()

	assert.True(t, extract.IsValidCompanyName("Acme"))
	assert.False(t, extract.IsValidCompanyName("A"))
	assert.False(t, extract.IsValidCompanyName("123 456"))
	assert.False(t, extract.IsValidCompanyName("List of valve companies"))
	assert.False(t, extract.IsValidCompanyName("About Us"))
}

func TestNameFromDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Acme Widgets", extract.NameFromDomain("www.acme-widgets.com"))
	assert.Equal(t, "Boltco", extract.NameFromDomain("boltco.net"))
}

func TestExtractCompany_StructuredData(t *testing.T) {
	t.Parallel()

	c, ok := extract.ExtractCompany("https://www.acmeprecision.com/about", structuredHTML)
	require.True(t, ok)

	assert.Equal(t, "Acme Precision LLC", c.Name)
	assert.Equal(t, "acmeprecision.com", c.Domain)
	assert.Equal(t, "https://www.acmeprecision.com", c.Website)
	assert.Equal(t, "Precision machining.", c.Description)
	assert.Equal(t, "(512) 555-0100", c.Phone)
	assert.Equal(t, "Austin", c.City)
	assert.Equal(t, "TX", c.State)
	assert.Equal(t, "78701", c.ZipCode)
	require.NotNil(t, c.EmployeeCount)
	assert.Equal(t, 120, *c.EmployeeCount)
	assert.Equal(t, "51-200", c.EmployeeCountRange)
	assert.Equal(t, "~$36M", c.EstimatedRevenue)
	assert.Equal(t, domain.RevenueSourceEstimated, c.RevenueSource)
	assert.Equal(t, extract.SourceWeb, c.Source)
	assert.Equal(t, domain.DefaultCountry, c.Country)
}

func TestExtractCompany_PageSignals(t *testing.T) {
	t.Parallel()

	c, ok := extract.ExtractCompany("https://boltfasteners.com/", plainHTML)
	require.True(t, ok)

	assert.Equal(t, "Bolt Fasteners Inc", c.Name)
	assert.Equal(t, "Fasteners for industry.", c.Description)
	assert.Equal(t, "(512) 555-0199", c.Phone)
	assert.Equal(t, "Round Rock", c.City)
	assert.Equal(t, "TX", c.State)
	assert.Equal(t, "78664", c.ZipCode)
	assert.Equal(t, "$12M", c.EstimatedRevenue)
	assert.Equal(t, domain.RevenueSourcePageText, c.RevenueSource)
	require.NotNil(t, c.EmployeeCount)
	assert.Equal(t, 85, *c.EmployeeCount)
	assert.Equal(t, "51-200", c.EmployeeCountRange)
}

func TestExtractCompany_DomainFallback(t *testing.T) {
	t.Parallel()

	c, ok := extract.ExtractCompany("https://delta-tool.com/", `<html><head><title>Top 10 Tools</title></head></html>`)
	require.True(t, ok)
	assert.Equal(t, "Delta Tool", c.Name)
}

func TestExtractCompany_Rejects(t *testing.T) {
	t.Parallel()

	_, ok := extract.ExtractCompany("not a url", plainHTML)
	assert.False(t, ok)

	_, ok = extract.ExtractCompany("https://a.com/", `<html><head><title>Directory</title></head></html>`)
	assert.False(t, ok)
}
