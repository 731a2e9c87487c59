package industry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/prospector/internal/industry"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	require.NoError(t, industry.Err())
	assert.Len(t, industry.Names(), 7)

	chem, ok := industry.Lookup("Specialty Chemicals")
	require.True(t, ok)
	assert.Equal(t, []string{"3251", "3252", "3253", "3255", "3259"}, chem.NAICSCodes)
	assert.Equal(t, "adhesives", chem.Keywords[2])
	assert.Contains(t, chem.SubIndustries, "Industrial Gases")

	_, ok = industry.Lookup("Basket Weaving")
	assert.False(t, ok)
}

func TestParseCatalog_RejectsUnnamedEntry(t *testing.T) {
	t.Parallel()

	_, err := industry.ParseCatalog([]byte("industries:\n  - keywords: [x]\n"))
	require.Error(t, err)
}

func TestGenerateQueries_CuratedIndustry(t *testing.T) {
	t.Parallel()

	queries := industry.GenerateQueries("Specialty Chemicals", "")

	// 5 broad + 6 keywords x 3 + 4 sub-industries + 3 keywords x 2 directories
	require.Len(t, queries, 5+18+4+6)
	assert.Equal(t, `"Specialty Chemicals" company USA -wikipedia -fortune -NYSE -NASDAQ`, queries[0])
	assert.Equal(t, `"specialty chemicals" manufacturer company USA`, queries[5])
	assert.Equal(t, `"Adhesives & Sealants" company USA -wikipedia`, queries[23])
	assert.Equal(t, `site:thomasnet.com/profile "specialty chemicals"`, queries[27])
	assert.Equal(t, `site:industrynet.com "adhesives"`, queries[32])
}

func TestGenerateQueries_LocationAppendedToDirectoryQueries(t *testing.T) {
	t.Parallel()

	queries := industry.GenerateQueries("Building Materials", "  Austin, TX ")

	assert.Equal(t, `"Building Materials" supplier Austin, TX small business`, queries[1])
	assert.Equal(t, `site:industrynet.com "lumber" Austin, TX`, queries[len(queries)-1])
}

func TestGenerateQueries_UnknownIndustry(t *testing.T) {
	t.Parallel()

	queries := industry.GenerateQueries("Artisanal Widgets", "Ohio")

	require.Len(t, queries, 7)
	assert.Equal(t, `"Artisanal Widgets" services company Ohio`, queries[4])
	assert.Equal(t, `site:thomasnet.com/profile "Artisanal Widgets" Ohio`, queries[5])
	assert.Equal(t, `site:industrynet.com "Artisanal Widgets" Ohio`, queries[6])
}

func TestGenerateQueries_Deterministic(t *testing.T) {
	t.Parallel()

	for _, name := range append(industry.Names(), "Custom Thing") {
		first := industry.GenerateQueries(name, "Ohio")
		require.NotEmpty(t, first, name)
		assert.Equal(t, first, industry.GenerateQueries(name, "Ohio"), name)
	}

	assert.Empty(t, industry.GenerateQueries("   ", "Ohio"))
}
