package extract_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
)

func newDoc(t *testing.T, raw string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}

func TestExtractOrganization_Microdata(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, `<html><body>
<div itemscope itemtype="https://schema.org/Organization">
  <span itemprop="name">Delta Tool Co</span>
  <meta itemprop="telephone" content="216-555-0142">
  <div itemprop="address" itemscope itemtype="https://schema.org/PostalAddress">
    <span itemprop="addressLocality">Cleveland</span>
    <span itemprop="addressRegion">OH</span>
    <span itemprop="postalCode">44114</span>
  </div>
</div>
</body></html>`)

	org, ok := extract.ExtractOrganization(doc)
	require.True(t, ok)
	assert.Equal(t, "Delta Tool Co", org.Name)
	assert.Equal(t, "216-555-0142", org.Telephone)
	assert.Equal(t, "Cleveland", org.Locality)
	assert.Equal(t, "OH", org.Region)
	assert.Equal(t, "44114", org.PostalCode)
	assert.Zero(t, org.Employees)
}

func TestExtractOrganization_SkipsInvalidJSONLD(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, `<html><head>
<script type="application/ld+json">{not json</script>
<script type="application/ld+json">[{"@type":"BreadcrumbList"},{"@type":"LocalBusiness","name":"Gamma Plating","numberOfEmployees":"45"}]</script>
</head></html>`)

	org, ok := extract.ExtractOrganization(doc)
	require.True(t, ok)
	assert.Equal(t, "Gamma Plating", org.Name)
	assert.Equal(t, 45, org.Employees)
}

func TestExtractOrganization_None(t *testing.T) {
	t.Parallel()

	_, ok := extract.ExtractOrganization(newDoc(t, `<html><head><title>Plain</title></head></html>`))
	assert.False(t, ok)
}

func TestPageText_SkipsScripts(t *testing.T) {
	t.Parallel()

	text := extract.PageText(`<html><head><style>p{color:red}</style></head>
<body><p>Hello</p><script>var secret = 1;</script><p>World</p></body></html>`)
	assert.Equal(t, "Hello World", strings.TrimSpace(text))
}

func TestDomainOfAndSiteRoot(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "acme.com", extract.DomainOf("https://WWW.Acme.com/about?x=1"))
	assert.Equal(t, "https://www.acme.com", extract.SiteRoot("https://www.acme.com/about"))
}
